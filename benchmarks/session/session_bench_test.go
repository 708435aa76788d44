package session_bench

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/osse101/FactorySim_Go/internal/event"
	"github.com/osse101/FactorySim_Go/internal/factory"
	"github.com/osse101/FactorySim_Go/internal/mod"
	"github.com/osse101/FactorySim_Go/internal/operator"
	"github.com/osse101/FactorySim_Go/internal/session"
)

// --- Stubs (Zero-overhead mocks for benchmarking) ---

type StubBus struct{}

func (s *StubBus) Publish(ctx context.Context, evt event.Event) error { return nil }
func (s *StubBus) Subscribe(eventType event.Type, handler event.Handler) {}

// --- Benchmarks ---

var start = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func newSession(b *testing.B, strategy operator.Strategy) *session.Session {
	b.Helper()
	ctx := context.Background()
	bus := &StubBus{}
	fac, err := factory.NewDefault(ctx, factory.WithClock(start), factory.WithEventBus(bus))
	if err != nil {
		b.Fatalf("NewDefault failed: %v", err)
	}
	op := operator.New(fac, operator.WithStrategy(strategy), operator.WithSeed(1), operator.WithEventBus(bus))
	sess := session.New(fac, op)
	sess.StartOperator(ctx)
	return sess
}

// BenchmarkAdvanceTime_OperatorRunning measures one simulated shift with the
// operator consulted every hour
func BenchmarkAdvanceTime_OperatorRunning(b *testing.B) {
	for _, strategy := range operator.Strategies() {
		b.Run(strategy.String(), func(b *testing.B) {
			sess := newSession(b, strategy)
			ctx := context.Background()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := sess.AdvanceTime(ctx, 8); err != nil {
					b.Fatalf("AdvanceTime failed: %v", err)
				}
			}
		})
	}
}

// BenchmarkSimulateWeek runs seven shifts and rollovers from a fresh facility
func BenchmarkSimulateWeek(b *testing.B) {
	ctx := context.Background()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		sess := newSession(b, operator.Balanced)
		b.StartTimer()

		for d := 0; d < 7; d++ {
			if _, err := sess.AdvanceTime(ctx, 8); err != nil {
				b.Fatalf("AdvanceTime failed: %v", err)
			}
			_, _ = sess.NextDay(ctx) // payroll shortfalls are expected
		}
	}
}

// BenchmarkDecodeBundle compares a cold decode against the digest cache
func BenchmarkDecodeBundle(b *testing.B) {
	data, err := os.ReadFile(filepath.Join("..", "..", "mods", "bakery.yaml"))
	if err != nil {
		b.Fatalf("read bundle: %v", err)
	}

	b.Run("cold", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := mod.NewLoader().Decode(data, mod.FormatYAML); err != nil {
				b.Fatalf("Decode failed: %v", err)
			}
		}
	})

	b.Run("cached", func(b *testing.B) {
		loader := mod.NewLoader(mod.WithCache(8, time.Minute))
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := loader.Decode(data, mod.FormatYAML); err != nil {
				b.Fatalf("Decode failed: %v", err)
			}
		}
	})
}
