package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/FactorySim_Go/internal/domain"
	"github.com/osse101/FactorySim_Go/internal/event"
	"github.com/osse101/FactorySim_Go/internal/logger"
)

// TimeReport is the outcome of AdvanceTime
type TimeReport struct {
	Hours       int                `json:"hours"`
	Clock       time.Time          `json:"clock"`
	Productions []string           `json:"completed_productions"`
	Craftings   []domain.RecipeRef `json:"completed_craftings"`
	Overdue     []int              `json:"overdue_orders"`
}

// DayReport is the outcome of NextDay. It is filled in even when payroll fell short.
type DayReport struct {
	Day       int       `json:"day"`
	Clock     time.Time `json:"clock"`
	Payroll   float64   `json:"payroll"`
	Profit    float64   `json:"daily_profit"`
	Balance   float64   `json:"balance"`
	Shortfall bool      `json:"shortfall"`
	Message   string    `json:"message"`
}

// AdvanceTime moves the clock forward and then ticks every unit once per hour,
// lines before stations. Finished production is stocked and credited to the
// first open matching order; finished crafting is only stocked. The report
// lists every order that is overdue at the new time.
func (f *Facility) AdvanceTime(ctx context.Context, hours int) (TimeReport, error) {
	if hours < 0 {
		_, err := fail(ctx, "advance_time", domain.Fail(domain.ErrInvalidQuantity, MsgInvalidHoursFmt, hours))
		return TimeReport{}, err
	}
	if hours > MaxAdvanceHours {
		_, err := fail(ctx, "advance_time", domain.Fail(domain.ErrInvalidQuantity, MsgHoursTooLargeFmt, MaxAdvanceHours, hours))
		return TimeReport{}, err
	}

	f.clock = f.clock.Add(time.Duration(hours) * time.Hour)
	report := TimeReport{Hours: hours}

	for i := 0; i < hours; i++ {
		report.Productions = append(report.Productions, f.tickLines(ctx)...)
		report.Craftings = append(report.Craftings, f.tickStations(ctx)...)
	}

	report.Clock = f.clock
	report.Overdue = f.orders.Overdue(f.clock)

	logger.FromContext(ctx).Debug(LogMsgTimeAdvanced,
		"hours", hours,
		"clock", f.clock.Format(domain.ClockLayout),
		"productions", len(report.Productions),
		"craftings", len(report.Craftings),
		"overdue", len(report.Overdue))
	return report, nil
}

func (f *Facility) tickLines(ctx context.Context) []string {
	var done []string
	for _, line := range f.lines {
		job, ok := line.Tick()
		if !ok {
			continue
		}
		f.ledger.AddProduct(job.Name, 1)
		done = append(done, job.Name)

		orderID := 0
		if fulfilled, matched := f.orders.RecordProduction(job.Name); matched {
			orderID = fulfilled.Order.ID
			if fulfilled.CompletedNow {
				payout := fulfilled.Order.Payout()
				f.ledger.Credit(payout)
				logger.FromContext(ctx).Info(LogMsgOrderCompleted, "order_id", orderID, "payout", payout)
				f.publish(ctx, event.NewOrderEvent(event.OrderCompleted, fulfilled.Order))
			}
		}

		logger.FromContext(ctx).Debug(LogMsgProductionDone, "line_id", line.ID(), "product", job.Name)
		f.publish(ctx, event.NewProductionCompletedEvent(line.ID(), job.Name, orderID, f.clock))
	}
	return done
}

func (f *Facility) tickStations(ctx context.Context) []domain.RecipeRef {
	var done []domain.RecipeRef
	for _, station := range f.stations {
		job, ok := station.Tick()
		if !ok {
			continue
		}
		if job.IsProduct() {
			f.ledger.AddProduct(job.Name, 1)
		} else {
			f.ledger.AddMaterial(job.Name, 1)
		}
		done = append(done, job)

		logger.FromContext(ctx).Debug(LogMsgCraftingDone, "station_id", station.ID(), "recipe", job.String())
		f.publish(ctx, event.NewCraftingCompletedEvent(station.ID(), job, f.clock))
	}
	return done
}

// NextDay starts the next day at 08:00, pays all salaries as one forced
// deduction and closes the daily accumulators. When the balance could not
// cover payroll the deduction still happens and a failure wrapping
// ErrInsufficientFunds is returned alongside the report.
func (f *Facility) NextDay(ctx context.Context) (DayReport, error) {
	log := logger.FromContext(ctx)

	f.day++
	y, m, d := f.clock.Date()
	f.clock = time.Date(y, m, d+1, domain.DayStartHour, 0, 0, 0, f.clock.Location())

	payroll := 0.0
	for _, w := range f.workers {
		payroll += w.Salary
	}

	before := f.ledger.Balance()
	shortfall := !f.ledger.CanAfford(payroll)
	f.ledger.Debit(payroll)

	report := DayReport{
		Day:       f.day,
		Clock:     f.clock,
		Payroll:   payroll,
		Shortfall: shortfall,
	}
	var err error
	if shortfall {
		failure := domain.Fail(domain.ErrInsufficientFunds, MsgPayrollShortfallFmt, domain.Money(payroll), domain.Money(before))
		report.Message = failure.Message
		err = failure
		log.Warn(LogMsgPayrollShortfall, "payroll", payroll, "balance_before", before, "balance", f.ledger.Balance())
	} else {
		report.Message = fmt.Sprintf(MsgPayrollPaidFmt, domain.Money(payroll))
	}

	report.Profit = f.ledger.CloseDay()
	report.Balance = f.ledger.Balance()

	f.publish(ctx, event.NewPayrollEvent(f.day, payroll, report.Balance, shortfall))
	f.publish(ctx, event.NewDayStartedEvent(f.day, report.Profit, report.Balance, f.clock))
	log.Info(LogMsgDayStarted, "day", f.day, "profit", report.Profit, "balance", report.Balance)
	return report, err
}
