package domain

import "strconv"

// Simulation constants
const (
	// CraftingThreshold is the progress a crafting station needs per job, regardless of recipe
	CraftingThreshold = 60.0

	// EfficiencyPerSkill is the progress bonus per skill level above 1
	EfficiencyPerSkill = 0.2

	// DayStartHour is the hour the clock resets to on a new day
	DayStartHour = 8

	// ClockLayout is how simulated timestamps are rendered in messages
	ClockLayout = "2006-01-02 15:04"

	// CurrencySymbol prefixes every money amount in messages
	CurrencySymbol = "¥"
)

// Status labels
const (
	StatusRunning    = "Running"
	StatusStopped    = "Stopped"
	StatusWorking    = "Working"
	StatusIdle       = "Idle"
	StatusCompleted  = "Completed"
	StatusInProgress = "In Progress"
	LabelNone        = "None"
)

// Money renders an amount with the shortest exact decimal form (420, 0.5, 12.75)
func Money(amount float64) string {
	return CurrencySymbol + strconv.FormatFloat(amount, 'f', -1, 64)
}
