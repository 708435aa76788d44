package event

// EventSchemaVersion is stamped on every event built by the New*Event helpers
const EventSchemaVersion = "1.0"

const (
	DeadLetterFilePermissions = 0o644
	MaxDeadLetterLine         = 1 << 20
)

const (
	LogMsgEventDeadLettered     = "Event dead-lettered"
	LogMsgDeadLetterWriteFailed = "Failed to append to dead-letter log"
	LogMsgEventPublishFailed    = "Event handlers failed"
)

// LogMsgHandlerErrorFormat joins the handler errors of one publish
const LogMsgHandlerErrorFormat = "%d handler(s) failed for %s: %v"
