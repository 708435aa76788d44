package config

import "github.com/osse101/FactorySim_Go/internal/logger"

// Warnings lists settings that are valid but probably unintended
func (c *Config) Warnings() []string {
	var warnings []string
	if c.APIKey == "" {
		warnings = append(warnings, WarnAuthDisabled)
	}
	if c.StoreDriver == DefaultStoreDriver && c.Environment == logger.EnvironmentProduction {
		warnings = append(warnings, WarnSQLiteInProd)
	}
	if c.StoreDriver == StoreDriverNone {
		warnings = append(warnings, WarnSavesOff)
	} else if c.AutosaveSlot == "" {
		warnings = append(warnings, WarnAutosaveOff)
	}
	if !c.AIEnabled {
		warnings = append(warnings, WarnOperatorIdling)
	}
	return warnings
}
