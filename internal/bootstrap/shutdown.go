package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/FactorySim_Go/internal/event"
	"github.com/osse101/FactorySim_Go/internal/pool"
	"github.com/osse101/FactorySim_Go/internal/server"
	"github.com/osse101/FactorySim_Go/internal/session"
	"github.com/osse101/FactorySim_Go/internal/store"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Every field except Server may be nil.
type ShutdownComponents struct {
	Server     *server.Server
	Session    *session.Session
	FinalSave  string
	Jobs       *pool.Pool
	Store      *store.Store
	DeadLetter *event.DeadLetterWriter
}

// GracefulShutdown stops the application in dependency order:
// 1. HTTP server (stop accepting new commands)
// 2. Final save into FinalSave, when a session, slot and store are present
// 3. Background pool (finish queued autosaves)
// 4. Save store and dead-letter log
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)
	if err := c.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if c.Session != nil && c.Store != nil && c.FinalSave != "" {
		if err := c.Session.Save(ctx, c.FinalSave); err != nil {
			slog.Error(LogMsgFinalSaveFailed, "slot", c.FinalSave, "error", err)
		} else {
			slog.Info(LogMsgFinalSaveWritten, "slot", c.FinalSave)
		}
	}

	if c.Jobs != nil {
		slog.Info(LogMsgDrainingJobs)
		c.Jobs.Stop()
	}

	if c.Store != nil {
		slog.Info(LogMsgClosingStore)
		if err := c.Store.Close(); err != nil {
			slog.Error(LogMsgStoreCloseFailed, "error", err)
		}
	}

	if c.DeadLetter != nil {
		slog.Info(LogMsgClosingDeadLetter)
		if err := c.DeadLetter.Close(); err != nil {
			slog.Error(LogMsgDeadLetterCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
