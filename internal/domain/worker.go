package domain

import "fmt"

// Worker is identified by name; whether it is working is derived from unit assignments
type Worker struct {
	Name   string  `json:"name" yaml:"name" validate:"required"`
	Skill  int     `json:"skill_level" yaml:"skill_level" validate:"gte=1"`
	Salary float64 `json:"salary" yaml:"salary" validate:"gte=0"`
}

// Efficiency is the progress a worker adds per tick
func (w Worker) Efficiency() float64 {
	return 1 + float64(w.Skill-1)*EfficiencyPerSkill
}

// Describe renders the worker with its derived working status
func (w Worker) Describe(working bool) string {
	status := StatusIdle
	if working {
		status = StatusWorking
	}
	return fmt.Sprintf("%s (Skill:%d, Salary:%s/day, Status:%s)", w.Name, w.Skill, Money(w.Salary), status)
}
