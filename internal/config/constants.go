package config

// Environment keys
const (
	EnvFactoryName        = "FACTORY_NAME"
	EnvPort               = "PORT"
	EnvAPIKey             = "API_KEY"
	EnvTrustedProxies     = "TRUSTED_PROXIES"
	EnvLogLevel           = "LOG_LEVEL"
	EnvLogFormat          = "LOG_FORMAT"
	EnvLogDir             = "LOG_DIR"
	EnvEnvironment        = "ENVIRONMENT"
	EnvVersion            = "VERSION"
	EnvStoreDriver        = "STORE_DRIVER"
	EnvStoreDSN           = "STORE_DSN"
	EnvModPath            = "MOD_PATH"
	EnvAliasesPath        = "ALIASES_PATH"
	EnvAIStrategy         = "AI_STRATEGY"
	EnvAIEnabled          = "AI_ENABLED"
	EnvAIIntervalHours    = "AI_INTERVAL_HOURS"
	EnvAISeed             = "AI_SEED"
	EnvAutosaveSlot       = "AUTOSAVE_SLOT"
	EnvStartTime          = "START_TIME"
	EnvEventDeadLetterLog = "EVENT_DEADLETTER_PATH"
)

// Defaults
const (
	DefaultFactoryName     = "My Factory"
	DefaultPort            = 8080
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultEnvironment     = "dev"
	DefaultVersion         = "dev"
	DefaultStoreDriver     = "sqlite"
	DefaultStoreDSN        = "data/factorysim.db"
	DefaultAIStrategy      = "balanced"
	DefaultAIIntervalHours = 1
	DefaultAutosaveSlot    = "autosave"
	DefaultAliasesPath     = "configs/aliases.json"
	DefaultDeadLetterPath  = "logs/event_deadletter.jsonl"
)

// StoreDriverNone disables save slots
const StoreDriverNone = "none"

// Warning messages
const (
	WarnAuthDisabled   = "API_KEY is empty - the HTTP API accepts unauthenticated requests"
	WarnSQLiteInProd   = "STORE_DRIVER is sqlite in a prod environment - saves live on local disk"
	WarnSavesOff       = "STORE_DRIVER is none - save slots are disabled"
	WarnAutosaveOff    = "AUTOSAVE_SLOT is empty - day rollovers are not persisted"
	WarnOperatorIdling = "AI_ENABLED is false - the operator only runs on explicit requests"
)
