package session

import "time"

// OperatorCadence is how often, in simulated time, the host asks the operator
// whether a pass is due
const OperatorCadence = time.Hour

// Scheduled task names
const (
	TaskOperatorCheck = "operator-check"
	TaskAutosave      = "autosave"
)

// Log Messages
const (
	LogMsgAutosaveQueued  = "Autosave queued"
	LogMsgAutosaveSkipped = "Autosave not queued"
	LogMsgAutosaveDone    = "Autosave written"
	LogMsgOperatorPass    = "Operator pass ran"
	LogMsgOperatorFailed  = "Operator pass failed"
	LogMsgSlotLoaded      = "Save slot loaded"
)

// Errors
const (
	ErrMsgNoStore = "no save store configured"
)
