package handler

// Generic HTTP error messages for client responses.
// Domain failures carry their own operator-facing message; these cover everything else.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidID             = "Invalid %s id"
	ErrMsgReadBody              = "Failed to read request body"
	ErrMsgEmptyBody             = "Request body is required"
	ErrMsgBodyTooLarge          = "Request body too large"

	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgNoStore            = "Saves are not configured"
	ErrMsgReloadFailed       = "Failed to reload configuration"
	ErrMsgExportFailed       = "Failed to export bundle"
	ErrMsgSaveFailed         = "Failed to write save"
)

// Success messages for API responses
const (
	MsgOperatorStopped       = "Operator stopped"
	MsgStrategySetFmt        = "Strategy set to %s"
	MsgSavedFmt              = "Saved %s"
	MsgSaveDeletedFmt        = "Deleted save %s"
	MsgConfigReloadedSuccess = "Alias configuration reloaded successfully"
)

// Log messages
const (
	LogMsgDecodeFailed    = "Failed to decode request"
	LogMsgRequestDecoded  = "Request decoded"
	LogMsgCommandFailed   = "Command failed"
	LogMsgCommandDone     = "Command completed"
	LogMsgReadinessFailed = "Readiness check failed"
	LogMsgEncodeFailed    = "Failed to encode JSON response"
	LogMsgWriteFailed     = "Failed to write response buffer"
	LogMsgReloading       = "Reloading naming resolver configuration"
	LogMsgReloadFailed    = "Failed to reload naming resolver"
	LogMsgReloaded        = "Naming resolver configuration reloaded"
)

// Health statuses
const (
	HealthOK          = "ok"
	HealthUnavailable = "unavailable"
	HealthNoStore     = "no save store configured"
	HealthStoreFailed = "save store unreachable"
)

// Query parameters
const (
	QueryFormat = "format"
	FormatText  = "text"
)

// Custom validation tags
const (
	TagStrategy   = "strategy"
	TagEntityName = "entityname"
)
