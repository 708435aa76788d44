package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/osse101/FactorySim_Go/internal/config"
	"github.com/osse101/FactorySim_Go/internal/logger"
)

// SetupLogger initializes the default logger from cfg. When cfg.LogDir is set,
// records are also written to a timestamped session file in that directory and
// old session files beyond the retention count are removed.
// Returns the log file handle (nil without a LogDir; caller must close) and any error.
func SetupLogger(cfg *config.Config) (*os.File, error) {
	var (
		w       io.Writer = os.Stdout
		logFile *os.File
	)

	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateLogsDir, err)
		}
		cleanupLogs(cfg.LogDir, LogFileRetentionCount)

		name := filepath.Join(cfg.LogDir, fmt.Sprintf(LogFileNamePattern, time.Now().Format(LogFileTimestampFormat)))
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenLogFile, err)
		}
		logFile = f
		w = io.MultiWriter(os.Stdout, f)
	}

	logCfg := logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Version:     cfg.Version,
		Environment: cfg.Environment,
		Facility:    cfg.FactoryName,
		AddSource:   cfg.Environment == logger.EnvironmentDev,
	}
	logger.InitLoggerWithWriter(logCfg, w)

	slog.Info(LogMsgLoggingInitialized, "level", logCfg.LogLevel(), "format", cfg.LogFormat)
	slog.Info(LogMsgStartingFactory,
		"factory", cfg.FactoryName,
		"environment", cfg.Environment,
		"version", cfg.Version)
	slog.Debug(LogMsgConfigurationLoaded,
		"port", cfg.Port,
		"store_driver", cfg.StoreDriver,
		"mod_path", cfg.ModPath,
		"ai_strategy", cfg.AIStrategy,
		"ai_enabled", cfg.AIEnabled,
		"ai_interval_hours", cfg.AIIntervalHours)

	for _, warning := range cfg.Warnings() {
		slog.Warn(LogMsgConfigWarning, "warning", warning)
	}

	return logFile, nil
}

// cleanupLogs removes the oldest session logs so that at most keep remain.
// Session file names sort chronologically.
func cleanupLogs(logDir string, keep int) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			names = append(names, entry.Name())
		}
	}
	if len(names) <= keep {
		return
	}

	sort.Strings(names)
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(logDir, name)); err != nil {
			slog.Warn(LogMsgFailedDeleteOldLog, "file", name, "error", err)
		}
	}
}
