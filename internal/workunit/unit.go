// Package workunit implements the single-worker job executors shared by
// production lines and crafting stations.
package workunit

import (
	"fmt"

	"github.com/osse101/FactorySim_Go/internal/domain"
)

// Kind distinguishes production lines from crafting stations
type Kind int

const (
	KindLine Kind = iota + 1
	KindStation
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindStation:
		return "station"
	default:
		return "unknown"
	}
}

// State is the lifecycle position of a unit
type State string

const (
	StateIdle    State = "idle"    // no worker, no job
	StateStaffed State = "staffed" // worker, no job
	StateRunning State = "running" // worker and job
	StateStalled State = "stalled" // job kept after the worker left
)

// LineName is the display name of every production line
const LineName = "Production Line"

// Unit is a production line or crafting station.
// Progress only accumulates while a worker is assigned.
type Unit struct {
	kind      Kind
	id        int
	name      string
	capacity  int
	worker    *domain.Worker
	job       *domain.RecipeRef
	threshold float64
	progress  float64
}

// NewLine creates a production line
func NewLine(id, capacity int) *Unit {
	return &Unit{kind: KindLine, id: id, name: LineName, capacity: capacity}
}

// NewStation creates a crafting station
func NewStation(id int, name string, capacity int) *Unit {
	return &Unit{kind: KindStation, id: id, name: name, capacity: capacity}
}

func (u *Unit) Kind() Kind        { return u.kind }
func (u *Unit) ID() int           { return u.id }
func (u *Unit) Name() string      { return u.name }
func (u *Unit) Capacity() int     { return u.capacity }
func (u *Unit) Progress() float64 { return u.progress }

// Active reports whether a worker is assigned
func (u *Unit) Active() bool { return u.worker != nil }

// Worker returns the assigned worker
func (u *Unit) Worker() (domain.Worker, bool) {
	if u.worker == nil {
		return domain.Worker{}, false
	}
	return *u.worker, true
}

// HasWorker reports whether the named worker is assigned here
func (u *Unit) HasWorker(name string) bool {
	return u.worker != nil && u.worker.Name == name
}

// Job returns the current job
func (u *Unit) Job() (domain.RecipeRef, bool) {
	if u.job == nil {
		return domain.RecipeRef{}, false
	}
	return *u.job, true
}

// State derives the lifecycle state
func (u *Unit) State() State {
	switch {
	case u.worker != nil && u.job != nil:
		return StateRunning
	case u.worker != nil:
		return StateStaffed
	case u.job != nil:
		return StateStalled
	default:
		return StateIdle
	}
}

// AssignWorker binds w to the unit, replacing any previous worker.
// Releasing w from other units is the caller's job.
func (u *Unit) AssignWorker(w domain.Worker) {
	u.worker = &w
}

// Unassign releases the worker. The job and its progress are kept.
func (u *Unit) Unassign() (domain.Worker, bool) {
	w, ok := u.Worker()
	u.worker = nil
	return w, ok
}

// AssignJob starts a job with the given completion threshold and zero progress.
// Resources must already have been consumed by the caller.
func (u *Unit) AssignJob(job domain.RecipeRef, threshold float64) error {
	if u.worker == nil {
		return domain.ErrUnitUnstaffed
	}
	if threshold <= 0 {
		return fmt.Errorf("%w: threshold %v", domain.ErrInvalidQuantity, threshold)
	}
	u.job = &job
	u.threshold = threshold
	u.progress = 0
	return nil
}

// Tick advances one step. When the threshold is reached the finished job is
// returned, the job is cleared and progress resets to zero; the worker stays.
func (u *Unit) Tick() (domain.RecipeRef, bool) {
	if u.worker == nil || u.job == nil {
		return domain.RecipeRef{}, false
	}
	u.progress += u.worker.Efficiency()
	if u.progress < u.threshold {
		return domain.RecipeRef{}, false
	}
	done := *u.job
	u.job = nil
	u.progress = 0
	return done, true
}

// ProgressPercent is min(100, floor(100 × progress / threshold)); 0 without a job
func (u *Unit) ProgressPercent() int {
	if u.job == nil || u.threshold <= 0 {
		return 0
	}
	return min(100, int(u.progress/u.threshold*100))
}

// Reset clears worker, job and progress
func (u *Unit) Reset() {
	u.worker = nil
	u.job = nil
	u.threshold = 0
	u.progress = 0
}

// Status is a read-only view of a unit
type Status struct {
	Kind      string  `json:"kind"`
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Capacity  int     `json:"capacity"`
	State     State   `json:"state"`
	Active    bool    `json:"active"`
	Worker    string  `json:"worker,omitempty"`
	Job       string  `json:"job,omitempty"`
	JobKind   string  `json:"job_kind,omitempty"`
	Progress  float64 `json:"progress"`
	Threshold float64 `json:"threshold,omitempty"`
	Percent   int     `json:"percent"`
	Summary   string  `json:"summary"`
}

// Status snapshots the unit
func (u *Unit) Status() Status {
	s := Status{
		Kind:     u.kind.String(),
		ID:       u.id,
		Name:     u.name,
		Capacity: u.capacity,
		State:    u.State(),
		Active:   u.Active(),
		Progress: u.progress,
		Percent:  u.ProgressPercent(),
		Summary:  u.String(),
	}
	if u.worker != nil {
		s.Worker = u.worker.Name
	}
	if u.job != nil {
		s.Job = u.job.Name
		s.JobKind = u.job.Kind.String()
		s.Threshold = u.threshold
	}
	return s
}

func (u *Unit) String() string {
	status := domain.StatusStopped
	if u.Active() {
		status = domain.StatusRunning
	}
	worker := domain.LabelNone
	if u.worker != nil {
		worker = u.worker.Name
	}
	job, jobKind := domain.LabelNone, domain.RecipeProduct
	if u.job != nil {
		job, jobKind = u.job.Name, u.job.Kind
	}

	if u.kind == KindLine {
		return fmt.Sprintf("%s %d (Status:%s, Product:%s, Worker:%s, Progress:%d%%)",
			u.name, u.id, status, job, worker, u.ProgressPercent())
	}
	return fmt.Sprintf("%s %d (Status:%s, Recipe:%s(%s), Worker:%s, Progress:%d%%)",
		u.name, u.id, status, job, jobKind, worker, u.ProgressPercent())
}
