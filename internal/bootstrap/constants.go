package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0644
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept next to the new one
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingFactory     = "Starting factory"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgConfigWarning       = "Configuration warning"
	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Event System Configuration
// =============================================================================

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized    = "Event system initialized"
	ErrMsgFailedCreateDeadLetterDir = "failed to create dead-letter directory"
	ErrMsgFailedOpenDeadLetter      = "failed to open dead-letter log"
)

// Log messages for event handler registration
const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
)

// =============================================================================
// Facility Construction
// =============================================================================

// BundleLines is the number of production lines a facility built from a mod bundle starts with
const BundleLines = 2

// Log and error messages for facility construction
const (
	LogMsgFacilityBuilt    = "Facility built"
	ErrMsgFailedLoadMod    = "failed to load mod bundle"
	ErrMsgFailedBuildStart = "failed to build starter scenario"
	ErrMsgInvalidStrategy  = "invalid operator strategy"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer    = "Shutting down server..."
	LogMsgDrainingJobs          = "Draining background jobs..."
	LogMsgClosingStore          = "Closing save store..."
	LogMsgClosingDeadLetter     = "Closing dead-letter log..."
	LogMsgServerStopped         = "Server stopped"
	LogMsgServerForcedShutdown  = "Server forced to shutdown"
	LogMsgStoreCloseFailed      = "Save store close failed"
	LogMsgDeadLetterCloseFailed = "Dead-letter log close failed"
	LogMsgFinalSaveFailed       = "Final save failed"
	LogMsgFinalSaveWritten      = "Final save written"
)
