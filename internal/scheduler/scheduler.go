// Package scheduler runs tasks against simulated time. Nothing happens on its
// own: the host advances the clock and then calls RunDue.
package scheduler

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/FactorySim_Go/internal/logger"
)

// Task is work run when its due time has been reached
type Task func(ctx context.Context, now time.Time) error

type entry struct {
	id    uuid.UUID
	name  string
	due   time.Time
	every time.Duration
	seq   uint64
	run   Task
}

// Scheduler holds pending tasks ordered by due time, then registration order
type Scheduler struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entry
	seq     uint64
}

// New creates an empty scheduler
func New() *Scheduler {
	return &Scheduler{entries: make(map[uuid.UUID]*entry)}
}

// At registers a one-off task
func (s *Scheduler) At(name string, due time.Time, task Task) uuid.UUID {
	return s.add(name, due, 0, task)
}

// Every registers a recurring task first due at first. After each run the
// next due time is the run time plus interval, so missed intervals collapse
// into one run.
func (s *Scheduler) Every(name string, first time.Time, interval time.Duration, task Task) uuid.UUID {
	if interval <= 0 {
		interval = time.Hour
	}
	return s.add(name, first, interval, task)
}

func (s *Scheduler) add(name string, due time.Time, every time.Duration, task Task) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	e := &entry{id: uuid.New(), name: name, due: due, every: every, seq: s.seq, run: task}
	s.entries[e.id] = e
	return e.id
}

// Cancel removes a task. It reports whether the task was pending.
func (s *Scheduler) Cancel(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return false
	}
	delete(s.entries, id)
	return true
}

// Pending returns the number of registered tasks
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// NextDue returns the earliest due time
func (s *Scheduler) NextDue() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next time.Time
	found := false
	for _, e := range s.entries {
		if !found || e.due.Before(next) {
			next, found = e.due, true
		}
	}
	return next, found
}

// RunDue runs every task due at or before now, earliest first, and returns
// how many ran. A failing task is logged; recurring tasks stay armed.
func (s *Scheduler) RunDue(ctx context.Context, now time.Time) int {
	due := s.collect(now)
	for _, e := range due {
		if err := e.run(ctx, now); err != nil {
			logger.FromContext(ctx).Warn(LogMsgTaskFailed, "task", e.name, "task_id", e.id, "error", err)
		}
	}
	if len(due) > 0 {
		logger.FromContext(ctx).Debug(LogMsgTasksRan, "count", len(due), "now", now)
	}
	return len(due)
}

// collect removes due one-off tasks and re-arms recurring ones before anything runs,
// so tasks may schedule or cancel freely
func (s *Scheduler) collect(now time.Time) []*entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []*entry
	for id, e := range s.entries {
		if e.due.After(now) {
			continue
		}
		due = append(due, &entry{id: e.id, name: e.name, due: e.due, seq: e.seq, run: e.run})
		if e.every > 0 {
			e.due = now.Add(e.every)
		} else {
			delete(s.entries, id)
		}
	}
	slices.SortFunc(due, func(a, b *entry) int {
		if c := a.due.Compare(b.due); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	return due
}
