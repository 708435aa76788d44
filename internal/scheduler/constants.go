package scheduler

const (
	LogMsgTaskFailed = "Scheduled task failed"
	LogMsgTasksRan   = "Scheduled tasks ran"
)
