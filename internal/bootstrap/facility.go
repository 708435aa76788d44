package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/FactorySim_Go/internal/config"
	"github.com/osse101/FactorySim_Go/internal/event"
	"github.com/osse101/FactorySim_Go/internal/factory"
	"github.com/osse101/FactorySim_Go/internal/mod"
	"github.com/osse101/FactorySim_Go/internal/operator"
)

// BuildFacility creates the facility described by cfg: the bundle at
// cfg.ModPath when set, otherwise the starter scenario.
func BuildFacility(ctx context.Context, cfg *config.Config, loader *mod.Loader, bus event.Bus) (*factory.Facility, error) {
	opts := []factory.Option{factory.WithName(cfg.FactoryName)}
	if bus != nil {
		opts = append(opts, factory.WithEventBus(bus))
	}
	if !cfg.StartTime.IsZero() {
		opts = append(opts, factory.WithClock(cfg.StartTime))
	}

	var (
		fac    *factory.Facility
		source = "starter"
	)
	if cfg.ModPath != "" {
		b, err := loader.LoadFile(cfg.ModPath)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", ErrMsgFailedLoadMod, cfg.ModPath, err)
		}
		if fac, err = factory.NewFromBundle(ctx, b, BundleLines, opts...); err != nil {
			return nil, fmt.Errorf("%s %s: %w", ErrMsgFailedLoadMod, cfg.ModPath, err)
		}
		source = b.Name
	} else {
		var err error
		if fac, err = factory.NewDefault(ctx, opts...); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedBuildStart, err)
		}
	}

	slog.Info(LogMsgFacilityBuilt,
		"name", fac.Name(),
		"source", source,
		"balance", fac.Balance(),
		"clock", fac.Clock())
	return fac, nil
}

// BuildOperator creates the operator for fac from the AI settings in cfg.
// A zero cfg.AISeed leaves order creation randomly seeded.
func BuildOperator(cfg *config.Config, fac *factory.Facility, bus event.Bus) (*operator.Operator, error) {
	strategy, err := operator.ParseStrategy(cfg.AIStrategy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidStrategy, err)
	}
	opts := []operator.Option{
		operator.WithStrategy(strategy),
		operator.WithInterval(cfg.AIInterval()),
	}
	if cfg.AISeed != 0 {
		opts = append(opts, operator.WithSeed(cfg.AISeed))
	}
	if bus != nil {
		opts = append(opts, operator.WithEventBus(bus))
	}
	return operator.New(fac, opts...), nil
}
