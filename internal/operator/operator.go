// Package operator is the autonomous facility operator. It issues the same
// commands a human would, on a simulated-time cadence, following one of three
// strategies.
package operator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/FactorySim_Go/internal/domain"
	"github.com/osse101/FactorySim_Go/internal/event"
	"github.com/osse101/FactorySim_Go/internal/factory"
	"github.com/osse101/FactorySim_Go/internal/logger"
	"github.com/osse101/FactorySim_Go/internal/workunit"
)

// Facility is the command and query surface the operator drives
type Facility interface {
	Clock() time.Time
	Balance() float64
	MaterialQty(name string) int
	ProductQty(name string) int
	Products() []domain.Product
	Materials() []domain.Material
	Workers() []domain.Worker
	IsWorking(workerName string) bool
	Lines() []workunit.Status
	Stations() []workunit.Status
	OpenOrderCount() int
	OrderCount() int
	CraftableRecipes() []domain.RecipeRef
	Recipe(ref domain.RecipeRef) (materials, products domain.Requirements, craftable bool, err error)

	Purchase(ctx context.Context, material string, quantity int) (string, error)
	CreateOrder(ctx context.Context, product string, quantity, days int) (domain.Order, string, error)
	AssignWorkerToLine(ctx context.Context, worker string, lineID int) (string, error)
	AssignWorkerToStation(ctx context.Context, worker string, stationID int) (string, error)
	AssignProductToLine(ctx context.Context, product string, lineID int) (string, error)
	AssignRecipeToStation(ctx context.Context, ref domain.RecipeRef, stationID int) (string, error)
	HireWorker(ctx context.Context, name string, skill int, salary float64) (string, error)
	AddProductionLine(ctx context.Context, capacity int) (string, error)
	AddCraftingStation(ctx context.Context, name string, capacity int) (string, error)
}

var _ Facility = (*factory.Facility)(nil)

// PassResult describes one decision pass
type PassResult struct {
	ID       string    `json:"pass_id"`
	Strategy Strategy  `json:"strategy"`
	At       time.Time `json:"at"`
	Actions  []string  `json:"actions"`
	Err      error     `json:"-"`
}

// Operator runs decision passes against a facility. Like the facility it is
// driven by one caller at a time.
type Operator struct {
	fac      Facility
	strategy Strategy
	interval time.Duration
	rng      *rand.Rand
	bus      event.Bus

	running      bool
	lastDecision time.Time

	// one-shot steps (restock, orders, expansion) run once per simulated instant
	lastOneShot time.Time
	oneShotDone bool
}

// Option configures an Operator
type Option func(*Operator)

// WithStrategy selects the starting strategy
func WithStrategy(s Strategy) Option {
	return func(o *Operator) { o.strategy = s }
}

// WithInterval sets the simulated time between passes
func WithInterval(d time.Duration) Option {
	return func(o *Operator) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithSeed makes order creation reproducible
func WithSeed(seed int64) Option {
	return func(o *Operator) { o.rng = rand.New(rand.NewSource(seed)) } //nolint:gosec // simulation randomness
}

// WithEventBus publishes a pass event after every pass
func WithEventBus(bus event.Bus) Option {
	return func(o *Operator) { o.bus = bus }
}

// New creates a stopped operator
func New(fac Facility, opts ...Option) *Operator {
	o := &Operator{
		fac:      fac,
		strategy: Balanced,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // simulation randomness
	}
	return o
}

// Strategy returns the active strategy
func (o *Operator) Strategy() Strategy { return o.strategy }

// SetStrategy switches strategy; it applies from the next pass
func (o *Operator) SetStrategy(ctx context.Context, s Strategy) {
	o.strategy = s
	logger.FromContext(ctx).Info(LogMsgStrategyChanged, "strategy", s.String())
}

// Interval returns the decision interval
func (o *Operator) Interval() time.Duration { return o.interval }

// Running reports whether the recurring loop is armed
func (o *Operator) Running() bool { return o.running }

// Start arms the loop and runs one pass immediately
func (o *Operator) Start(ctx context.Context) PassResult {
	o.running = true
	o.lastDecision = o.fac.Clock()
	logger.FromContext(ctx).Info(LogMsgStarted, "strategy", o.strategy.String(), "interval", o.interval.String())
	return o.pass(ctx)
}

// Stop disarms the loop
func (o *Operator) Stop(ctx context.Context) {
	o.running = false
	logger.FromContext(ctx).Info(LogMsgStopped)
}

// Check runs a pass when the loop is armed and at least one interval of
// simulated time has passed since the last decision. Several elapsed
// intervals still produce a single pass.
func (o *Operator) Check(ctx context.Context) (PassResult, bool) {
	if !o.running {
		return PassResult{}, false
	}
	now := o.fac.Clock()
	if now.Sub(o.lastDecision) < o.interval {
		return PassResult{}, false
	}
	o.lastDecision = now
	return o.pass(ctx), true
}

// Rebase restarts interval counting from t. Hosts call it after the
// facility clock was replaced by a restore.
func (o *Operator) Rebase(t time.Time) {
	o.lastDecision = t
}

// Step runs exactly one pass without arming the loop
func (o *Operator) Step(ctx context.Context) PassResult {
	return o.pass(ctx)
}

func (o *Operator) pass(ctx context.Context) (result PassResult) {
	now := o.fac.Clock()
	result = PassResult{
		ID:       uuid.NewString(),
		Strategy: o.strategy,
		At:       now,
	}
	ctx = logger.WithRequestID(ctx, result.ID)
	log := logger.FromContext(ctx)
	log.Debug(LogMsgPassStarted, "strategy", o.strategy.String(), "at", now.Format(domain.ClockLayout))

	p := &passRun{op: o, ctx: ctx, oneShot: !o.oneShotDone || !o.lastOneShot.Equal(now)}
	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("operator pass %s: %v", result.ID, r)
			log.Error(LogMsgPassPanicked, "error", result.Err)
		}
		result.Actions = p.actions
		o.lastOneShot = now
		o.oneShotDone = true
		log.Info(LogMsgPassCompleted, "strategy", o.strategy.String(), "actions", len(result.Actions))
		o.publish(ctx, result)
	}()

	switch o.strategy {
	case Aggressive:
		p.aggressive()
	case Conservative:
		p.conservative()
	default:
		p.balanced()
	}
	return result
}

func (o *Operator) publish(ctx context.Context, result PassResult) {
	if o.bus == nil {
		return
	}
	evt := event.NewOperatorPassEvent(result.ID, result.Strategy.String(), len(result.Actions), result.Err)
	if err := o.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgCommandRejected, "command", "publish", "error", err)
	}
}
