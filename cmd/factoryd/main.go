package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/FactorySim_Go/internal/bootstrap"
	"github.com/osse101/FactorySim_Go/internal/config"
	"github.com/osse101/FactorySim_Go/internal/handler"
	"github.com/osse101/FactorySim_Go/internal/mod"
	"github.com/osse101/FactorySim_Go/internal/naming"
	"github.com/osse101/FactorySim_Go/internal/pool"
	"github.com/osse101/FactorySim_Go/internal/server"
	"github.com/osse101/FactorySim_Go/internal/session"
	"github.com/osse101/FactorySim_Go/internal/store"
)

const (
	jobWorkers     = 2
	jobQueueSize   = 16
	bundleCacheLen = 32
	bundleCacheTTL = 30 * time.Minute
	storeTimeout   = 10 * time.Second
	stopTimeout    = 15 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("factoryd failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	events, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}
	bootstrap.RegisterEventHandlers(events.Bus)

	ctx := context.Background()
	loader := mod.NewLoader(mod.WithCache(bundleCacheLen, bundleCacheTTL))

	fac, err := bootstrap.BuildFacility(ctx, cfg, loader, events.Bus)
	if err != nil {
		return err
	}
	op, err := bootstrap.BuildOperator(cfg, fac, events.Bus)
	if err != nil {
		return err
	}

	names, err := naming.NewResolver(cfg.AliasesPath)
	if err != nil {
		return err
	}

	jobs := pool.NewPool(jobWorkers, jobQueueSize)
	jobs.Start()

	opts := []session.Option{session.WithPool(jobs), session.WithResolver(names)}
	deps := server.Deps{
		Loader:      loader,
		Names:       names,
		FactoryName: fac.Name(),
		Version:     cfg.Version,
	}

	var st *store.Store
	if cfg.StoreDriver != config.StoreDriverNone {
		openCtx, cancel := context.WithTimeout(ctx, storeTimeout)
		st, err = store.Open(openCtx, cfg.StoreDriver, cfg.StoreDSN)
		cancel()
		if err != nil {
			return err
		}
		opts = append(opts, session.WithStore(st, cfg.AutosaveSlot))
		// assigned only when set, a nil *store.Store must not become a non-nil Pinger
		deps.Ready = handler.Pinger(st)
	}

	sess := session.New(fac, op, opts...)
	deps.Session = sess
	if cfg.AIEnabled {
		sess.StartOperator(ctx)
	}

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, deps)

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		slog.Info("Signal received", "signal", sig.String())
	case err := <-serveErr:
		if err != nil {
			slog.Error("Server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:     srv,
		Session:    sess,
		FinalSave:  cfg.AutosaveSlot,
		Jobs:       jobs,
		Store:      st,
		DeadLetter: events.DeadLetter,
	})
	return nil
}
