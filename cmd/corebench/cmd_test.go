package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corebench/corebench/internal/calibration"
	"github.com/corebench/corebench/internal/models"
	"github.com/corebench/corebench/internal/params"
)

func TestRootCommandWiring(t *testing.T) {
	root := newRootCommand()

	names := make(map[string]bool)
	for _, sub := range root.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["run"], "run subcommand missing")
	assert.True(t, names["topology"], "topology subcommand missing")
	assert.True(t, names["calibrate"], "calibrate subcommand missing")
}

func TestRunRejectsUnknownTier(t *testing.T) {
	tierName = "ultra"
	defer func() { tierName = "" }()

	root := newRootCommand()
	root.SetArgs([]string{"run", "--tier", "ultra"})
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tier")
}

func TestResolveTierFromFlag(t *testing.T) {
	tierName = "high"
	defer func() { tierName = "" }()

	tier, err := resolveTier(newRunCommand())
	require.NoError(t, err)
	assert.Equal(t, params.TierHigh, tier)
}

func TestResolveTierDefaultsWithoutTTY(t *testing.T) {
	tierName = ""
	cmd := newRunCommand()
	cmd.SetIn(new(bytes.Buffer))

	tier, err := resolveTier(cmd)
	require.NoError(t, err)
	assert.Equal(t, params.TierMid, tier)
}

func TestDegradedRunErrorMapping(t *testing.T) {
	var err error = &DegradedRunError{Message: "reduced fidelity"}

	var degradedErr *DegradedRunError
	assert.True(t, errors.As(err, &degradedErr))
	assert.Equal(t, "reduced fidelity", err.Error())
}

func TestReferenceTable(t *testing.T) {
	calibrateName = "pixel-test"
	defer func() { calibrateName = "" }()

	summary := &models.RunSummary{
		KernelResults: []models.KernelResult{
			{ID: "prime_sieve", Mode: models.ModeSingleCore, OpsPerSecond: 1e8, IsValid: true},
			{ID: "prime_sieve", Mode: models.ModeMultiCore, OpsPerSecond: 5e8, IsValid: true},
		},
	}

	table := referenceTable(summary)
	assert.Equal(t, calibration.MethodRatio, table.Method)
	assert.Equal(t, "pixel-test", table.Reference)
	assert.Equal(t, 1e8, table.SingleCore["prime_sieve"])
	assert.Equal(t, 5e8, table.MultiCore["prime_sieve"])
}
