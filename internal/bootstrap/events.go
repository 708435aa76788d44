package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/FactorySim_Go/internal/config"
	"github.com/osse101/FactorySim_Go/internal/event"
	"github.com/osse101/FactorySim_Go/internal/metrics"
)

// EventSystem is the bus every component publishes to, plus the resources
// that need closing on shutdown
type EventSystem struct {
	Bus        event.Bus
	DeadLetter *event.DeadLetterWriter
}

// InitializeEventSystem creates the in-memory bus behind a guarded publisher.
// Handler failures are counted and appended to the dead-letter log at
// cfg.DeadLetterPath; an empty path disables the dead-letter log.
func InitializeEventSystem(cfg *config.Config) (*EventSystem, error) {
	var deadLetter *event.DeadLetterWriter
	if cfg.DeadLetterPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.DeadLetterPath), DirPermission); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDeadLetterDir, err)
		}
		dl, err := event.NewDeadLetterWriter(cfg.DeadLetterPath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenDeadLetter, err)
		}
		deadLetter = dl
	}

	publisher := event.NewGuardedPublisher(event.NewMemoryBus(), deadLetter)
	publisher.OnFailure(metrics.RecordHandlerFailure)

	slog.Info(LogMsgEventSystemInitialized, "deadletter_path", cfg.DeadLetterPath)

	return &EventSystem{Bus: publisher, DeadLetter: deadLetter}, nil
}
