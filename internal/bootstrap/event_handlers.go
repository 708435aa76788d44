package bootstrap

import (
	"log/slog"

	"github.com/osse101/FactorySim_Go/internal/event"
	"github.com/osse101/FactorySim_Go/internal/metrics"
)

// RegisterEventHandlers subscribes the process-wide event consumers
func RegisterEventHandlers(bus event.Bus) {
	metrics.NewEventMetricsCollector().Register(bus)
	slog.Info(LogMsgMetricsCollectorRegistered)
}
