package store

// Supported drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Connection defaults
const (
	DefaultSQLitePath   = "data/factorysim.db"
	SQLiteBusyTimeoutMS = 5000
	MaxPostgresConns    = 4
)

// Error Messages
const (
	ErrMsgUnsupportedDriver = "unsupported store driver"
	ErrMsgOpen              = "failed to open store"
	ErrMsgPing              = "failed to ping store"
	ErrMsgPragmas           = "failed to apply sqlite pragmas"
	ErrMsgMigrate           = "failed to migrate store"
	ErrMsgEncodeState       = "failed to encode state"
	ErrMsgDecodeState       = "failed to decode state"
	ErrMsgSave              = "failed to save slot"
	ErrMsgLoad              = "failed to load slot"
	ErrMsgList              = "failed to list slots"
	ErrMsgDelete            = "failed to delete slot"
)

// Log Messages
const (
	LogMsgOpened      = "Store opened"
	LogMsgMigrated    = "Store migration applied"
	LogMsgSaved       = "Save slot written"
	LogMsgDeleted     = "Save slot deleted"
	LogMsgCloseFailed = "Failed to close store"
)
