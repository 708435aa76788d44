package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FactorySim_Go/internal/config"
	"github.com/osse101/FactorySim_Go/internal/event"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvStoreDriver, "sqlite")
	t.Setenv(config.EnvStoreDSN, filepath.Join(dir, "saves.db"))
	t.Setenv(config.EnvModPath, "")
	t.Setenv(config.EnvAIStrategy, "balanced")
	t.Setenv(config.EnvFactoryName, "CLI Works")
	return dir
}

func TestRun(t *testing.T) {
	dir := isolateEnv(t)
	reportPath := filepath.Join(dir, "run.xlsx")

	out, err := execute(t, "run", "--days", "3", "--seed", "5", "--strategy", "conservative", "--report", reportPath)
	require.NoError(t, err)

	assert.Contains(t, out, "CLI Works, strategy conservative, 3 days of 8 hours")
	assert.Contains(t, out, "DAY")
	assert.Contains(t, out, "Report written to "+reportPath)
	assert.FileExists(t, reportPath)
}

func TestRun_RejectsBadFlags(t *testing.T) {
	isolateEnv(t)

	_, err := execute(t, "run", "--days", "0")
	assert.ErrorContains(t, err, "--days")

	_, err = execute(t, "run", "--days", "1", "--strategy", "reckless")
	assert.Error(t, err)
}

func TestModExportAndValidate(t *testing.T) {
	dir := isolateEnv(t)
	path := filepath.Join(dir, "starter.yaml")

	out, err := execute(t, "mod", "export", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported CLI Works")

	out, err = execute(t, "mod", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "CLI Works")
	assert.Contains(t, out, "Premium Chair")
	assert.Contains(t, out, "MATERIAL COST")

	_, err = execute(t, "mod", "validate", filepath.Join(dir, "starter.txt"))
	assert.Error(t, err)
}

func TestSaves(t *testing.T) {
	isolateEnv(t)

	out, err := execute(t, "saves", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No saves found")

	_, err = execute(t, "run", "--days", "1", "--no-operator", "--save", "first")
	require.NoError(t, err)

	out, err = execute(t, "saves", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "CLI Works")

	out, err = execute(t, "saves", "delete", "first")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted save first")
}

func TestSaves_Disabled(t *testing.T) {
	isolateEnv(t)
	t.Setenv(config.EnvStoreDriver, config.StoreDriverNone)

	_, err := execute(t, "saves", "list")
	assert.ErrorIs(t, err, errSavesDisabled)
}

func TestDeadLetters(t *testing.T) {
	dir := isolateEnv(t)
	path := filepath.Join(dir, "dl.jsonl")
	t.Setenv(config.EnvEventDeadLetterLog, path)

	out, err := execute(t, "deadletters")
	require.NoError(t, err)
	assert.Contains(t, out, "No dead-lettered events")

	w, err := event.NewDeadLetterWriter(path)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, w.Write(ctx, event.NewPayrollEvent(2, 400, 100, true), errors.New("ledger sink down")))
	require.NoError(t, w.Write(ctx, event.NewPayrollEvent(3, 400, 0, true), errors.New("ledger sink down")))
	require.NoError(t, w.Close())

	out, err = execute(t, "deadletters", "--tail", "1")
	require.NoError(t, err)
	assert.Contains(t, out, string(event.PayrollPaid))
	assert.Contains(t, out, "ledger sink down")
}
