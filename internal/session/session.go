// Package session hosts one facility and its operator behind a single lock.
// Commands, time advances and operator passes are each admitted one at a
// time and run to completion; scheduled tasks run on the driver that moved
// the clock.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/FactorySim_Go/internal/factory"
	"github.com/osse101/FactorySim_Go/internal/logger"
	"github.com/osse101/FactorySim_Go/internal/naming"
	"github.com/osse101/FactorySim_Go/internal/operator"
	"github.com/osse101/FactorySim_Go/internal/pool"
	"github.com/osse101/FactorySim_Go/internal/scheduler"
	"github.com/osse101/FactorySim_Go/internal/store"
)

// ErrNoStore is returned by save operations when no store is configured
var ErrNoStore = errors.New(ErrMsgNoStore)

// Store persists facility states in named slots
type Store interface {
	Save(ctx context.Context, slot string, state factory.State) error
	Load(ctx context.Context, slot string) (factory.State, error)
	List(ctx context.Context) ([]store.SaveInfo, error)
	Delete(ctx context.Context, slot string) error
}

// Session serialises every driver of one facility
type Session struct {
	mu sync.Mutex

	fac   *factory.Facility
	op    *operator.Operator
	sched *scheduler.Scheduler

	store        Store
	autosaveSlot string
	jobs         *pool.Pool
	names        naming.Resolver

	operatorTask uuid.UUID
}

// Option configures a Session
type Option func(*Session)

// WithStore enables save slots; a non-empty autosaveSlot is written after every day rollover
func WithStore(st Store, autosaveSlot string) Option {
	return func(s *Session) {
		s.store = st
		s.autosaveSlot = autosaveSlot
	}
}

// WithPool moves autosaves onto a background pool
func WithPool(p *pool.Pool) Option {
	return func(s *Session) { s.jobs = p }
}

// WithResolver keeps a name resolver in step with the catalog and roster
func WithResolver(r naming.Resolver) Option {
	return func(s *Session) { s.names = r }
}

// New hosts fac and op. The operator is asked every OperatorCadence of
// simulated time whether a pass is due.
func New(fac *factory.Facility, op *operator.Operator, opts ...Option) *Session {
	s := &Session{
		fac:   fac,
		op:    op,
		sched: scheduler.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.armOperatorCheck()
	s.syncNames()
	return s
}

func (s *Session) armOperatorCheck() {
	if s.operatorTask != uuid.Nil {
		s.sched.Cancel(s.operatorTask)
	}
	s.operatorTask = s.sched.Every(TaskOperatorCheck, s.fac.Clock().Add(OperatorCadence), OperatorCadence, s.checkOperator)
}

func (s *Session) checkOperator(ctx context.Context, _ time.Time) error {
	result, ran := s.op.Check(ctx)
	if !ran {
		return nil
	}
	if result.Err != nil {
		return result.Err
	}
	logger.FromContext(ctx).Debug(LogMsgOperatorPass, "pass_id", result.ID, "commands", len(result.Actions))
	return nil
}

// Do runs fn with exclusive access to the facility
func (s *Session) Do(fn func(f *factory.Facility) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.syncNames()
	return fn(s.fac)
}

// Names returns the resolver, or nil
func (s *Session) Names() naming.Resolver {
	return s.names
}

// AdvanceTime moves the clock one hour at a time, running due tasks after
// every hour. The merged report lists everything completed on the way.
func (s *Session) AdvanceTime(ctx context.Context, hours int) (factory.TimeReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.syncNames()

	if hours <= 0 || hours > factory.MaxAdvanceHours {
		return s.fac.AdvanceTime(ctx, hours)
	}

	total := factory.TimeReport{Hours: hours}
	for range hours {
		step, err := s.fac.AdvanceTime(ctx, 1)
		if err != nil {
			return total, err
		}
		total.Productions = append(total.Productions, step.Productions...)
		total.Craftings = append(total.Craftings, step.Craftings...)
		total.Overdue = step.Overdue
		s.sched.RunDue(ctx, s.fac.Clock())
	}
	total.Clock = s.fac.Clock()
	return total, nil
}

// NextDay rolls the day over, runs due tasks and queues an autosave
func (s *Session) NextDay(ctx context.Context) (factory.DayReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := s.fac.NextDay(ctx)
	s.sched.RunDue(ctx, s.fac.Clock())
	s.queueAutosave(ctx)
	return report, err
}

func (s *Session) queueAutosave(ctx context.Context) {
	if s.store == nil || s.autosaveSlot == "" {
		return
	}
	state := s.fac.SaveState()
	slot, st := s.autosaveSlot, s.store
	save := func(ctx context.Context) error {
		if err := st.Save(ctx, slot, state); err != nil {
			return err
		}
		logger.FromContext(ctx).Info(LogMsgAutosaveDone, "slot", slot, "day", state.Day)
		return nil
	}

	log := logger.FromContext(ctx)
	if s.jobs == nil {
		if err := save(ctx); err != nil {
			log.Warn(LogMsgAutosaveSkipped, "slot", slot, "error", err)
		}
		return
	}
	if err := s.jobs.Enqueue(pool.Func{JobName: TaskAutosave, Fn: save}); err != nil {
		log.Warn(LogMsgAutosaveSkipped, "slot", slot, "error", err)
		return
	}
	log.Debug(LogMsgAutosaveQueued, "slot", slot, "day", state.Day)
}

// StartOperator arms the operator and runs one pass
func (s *Session) StartOperator(ctx context.Context) operator.PassResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.syncNames()
	return s.logPass(ctx, s.op.Start(ctx))
}

// StopOperator disarms the operator
func (s *Session) StopOperator(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.op.Stop(ctx)
}

// StepOperator runs one pass without arming the loop
func (s *Session) StepOperator(ctx context.Context) operator.PassResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.syncNames()
	return s.logPass(ctx, s.op.Step(ctx))
}

func (s *Session) logPass(ctx context.Context, result operator.PassResult) operator.PassResult {
	if result.Err != nil {
		logger.FromContext(ctx).Warn(LogMsgOperatorFailed, "pass_id", result.ID, "error", result.Err)
	}
	return result
}

// OperatorState reports strategy, whether the loop is armed and its interval
type OperatorState struct {
	Strategy operator.Strategy `json:"strategy"`
	Running  bool              `json:"running"`
	Interval string            `json:"interval"`
}

// Operator returns the operator settings
func (s *Session) Operator() OperatorState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return OperatorState{Strategy: s.op.Strategy(), Running: s.op.Running(), Interval: s.op.Interval().String()}
}

// SetStrategy switches the operator strategy
func (s *Session) SetStrategy(ctx context.Context, strategy operator.Strategy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.op.SetStrategy(ctx, strategy)
}

// Analyze returns the operator's assessment of the facility
func (s *Session) Analyze() operator.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.op.Analyze()
}

// LoadBundle replaces the facility contents with a bundle
func (s *Session) LoadBundle(ctx context.Context, b factory.Bundle) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.syncNames()
	return s.fac.LoadBundle(ctx, b)
}

// Save writes the current state into slot
func (s *Session) Save(ctx context.Context, slot string) error {
	if s.store == nil {
		return ErrNoStore
	}
	s.mu.Lock()
	state := s.fac.SaveState()
	s.mu.Unlock()
	return s.store.Save(ctx, slot, state)
}

// Load restores the state in slot. The operator cadence restarts from the
// restored clock.
func (s *Session) Load(ctx context.Context, slot string) (string, error) {
	if s.store == nil {
		return "", ErrNoStore
	}
	state, err := s.store.Load(ctx, slot)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	msg, err := s.fac.RestoreState(ctx, state)
	if err != nil {
		return "", err
	}
	s.op.Rebase(s.fac.Clock())
	s.armOperatorCheck()

	logger.FromContext(ctx).Info(LogMsgSlotLoaded, "slot", slot, "day", state.Day)
	return msg, nil
}

// Saves lists the save slots
func (s *Session) Saves(ctx context.Context) ([]store.SaveInfo, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	return s.store.List(ctx)
}

// DeleteSave removes a save slot
func (s *Session) DeleteSave(ctx context.Context, slot string) error {
	if s.store == nil {
		return ErrNoStore
	}
	if err := s.store.Delete(ctx, slot); err != nil {
		return fmt.Errorf("delete %q: %w", slot, err)
	}
	return nil
}

// syncNames pushes the current names into the resolver. Callers hold mu.
func (s *Session) syncNames() {
	if s.names == nil {
		return
	}
	products := s.fac.Products()
	pn := make([]string, len(products))
	for i, p := range products {
		pn[i] = p.Name
	}
	materials := s.fac.Materials()
	mn := make([]string, len(materials))
	for i, m := range materials {
		mn[i] = m.Name
	}
	workers := s.fac.Workers()
	wn := make([]string, len(workers))
	for i, w := range workers {
		wn[i] = w.Name
	}
	s.names.Sync(naming.KindProduct, pn)
	s.names.Sync(naming.KindMaterial, mn)
	s.names.Sync(naming.KindWorker, wn)
}
