package logger

// Level names accepted in LOG_LEVEL; "warning" is an alias of "warn"
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// DefaultServiceName tags every record of the daemon; the CLI appends CLISuffix
const (
	DefaultServiceName = "factorysim"
	CLISuffix          = "-cli"
)

const (
	EnvironmentDev        = "dev"
	EnvironmentStaging    = "staging"
	EnvironmentProduction = "prod"
	EnvironmentTest       = "test"
)

// Attribute keys
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyFacility    = "facility"
	AttrKeyRequestID   = "request_id"
)
