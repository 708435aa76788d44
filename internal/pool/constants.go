package pool

// Log messages
const (
	LogMsgJobFailed = "Background job failed"
	LogMsgJobDone   = "Background job done"
)
