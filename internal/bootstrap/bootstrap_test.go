package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FactorySim_Go/internal/config"
	"github.com/osse101/FactorySim_Go/internal/domain"
	"github.com/osse101/FactorySim_Go/internal/event"
	"github.com/osse101/FactorySim_Go/internal/factory"
	"github.com/osse101/FactorySim_Go/internal/mod"
	"github.com/osse101/FactorySim_Go/internal/operator"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		FactoryName:     "Test Works",
		LogLevel:        "info",
		LogFormat:       "text",
		Environment:     "test",
		AIStrategy:      "aggressive",
		AIIntervalHours: 2,
		AISeed:          7,
		StartTime:       time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
		DeadLetterPath:  filepath.Join(t.TempDir(), "dl", "events.jsonl"),
	}
}

func TestCleanupLogs(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf(LogFileNamePattern, fmt.Sprintf("2025-01-%02d_00-00-00", i+1))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))

	cleanupLogs(dir, 9)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var logs []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == LogFileExtension {
			logs = append(logs, e.Name())
		}
	}
	assert.Len(t, logs, 9)
	assert.NotContains(t, logs, "session_2025-01-01_00-00-00.log")
	assert.Contains(t, logs, "session_2025-01-12_00-00-00.log")
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestSetupLogger_WritesSessionFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.LogDir = t.TempDir()

	f, err := SetupLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, f)
	defer f.Close()

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestInitializeEventSystem_DeadLettersFailures(t *testing.T) {
	cfg := testConfig(t)
	sys, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	require.NotNil(t, sys.DeadLetter)

	sys.Bus.Subscribe(event.OrderCreated, func(context.Context, event.Event) error {
		return errors.New("handler down")
	})
	err = sys.Bus.Publish(context.Background(), event.NewOrderEvent(event.OrderCreated, domain.Order{ID: 1, Product: "Wooden Chair", Quantity: 2}))
	assert.NoError(t, err, "handler failures stay with the publisher")
	require.NoError(t, sys.DeadLetter.Close())

	data, err := os.ReadFile(cfg.DeadLetterPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "handler down")
}

func TestInitializeEventSystem_NoDeadLetter(t *testing.T) {
	cfg := testConfig(t)
	cfg.DeadLetterPath = ""
	sys, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	assert.Nil(t, sys.DeadLetter)
	RegisterEventHandlers(sys.Bus)
}

func TestBuildFacility_Starter(t *testing.T) {
	cfg := testConfig(t)
	fac, err := BuildFacility(context.Background(), cfg, mod.NewLoader(), nil)
	require.NoError(t, err)

	assert.Equal(t, "Test Works", fac.Name())
	assert.Equal(t, cfg.StartTime, fac.Clock())
	assert.Len(t, fac.Lines(), 2)
	assert.Len(t, fac.Workers(), 4)
}

func TestBuildFacility_FromMod(t *testing.T) {
	cfg := testConfig(t)
	cfg.ModPath = filepath.Join(t.TempDir(), "bakery.json")
	require.NoError(t, mod.WriteFile(cfg.ModPath, factory.Bundle{
		Name:             "Bakery",
		InitialBalance:   75,
		InitialMaterials: map[string]int{"Flour": 10},
		Materials:        []domain.Material{{Name: "Flour", Cost: 1, Unit: "kg"}},
		Products: []domain.Product{
			{Name: "Bread", ProductionTime: 30, SalePrice: 5, MaterialsRequired: domain.Requirements{{Name: "Flour", Quantity: 2}}},
		},
	}))

	fac, err := BuildFacility(context.Background(), cfg, mod.NewLoader(), nil)
	require.NoError(t, err)
	assert.Len(t, fac.Lines(), BundleLines)
	assert.InDelta(t, 75.0, fac.Balance(), 1e-9)
	assert.Equal(t, 10, fac.MaterialQty("Flour"))

	cfg.ModPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = BuildFacility(context.Background(), cfg, mod.NewLoader(), nil)
	assert.ErrorContains(t, err, ErrMsgFailedLoadMod)
}

func TestBuildOperator(t *testing.T) {
	cfg := testConfig(t)
	fac, err := BuildFacility(context.Background(), cfg, mod.NewLoader(), nil)
	require.NoError(t, err)

	op, err := BuildOperator(cfg, fac, nil)
	require.NoError(t, err)
	assert.Equal(t, operator.Aggressive, op.Strategy())
	assert.Equal(t, 2*time.Hour, op.Interval())
	assert.False(t, op.Running())
}
