package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corebench/corebench/internal/models"
)

func sampleSummary() *models.RunSummary {
	return &models.RunSummary{
		RunID:     "run-1",
		Timestamp: time.Now().UTC(),
		Setup: models.RunSetup{
			Tier:          "mid",
			LogicalCores:  8,
			PrimeCore:     4,
			Workers:       8,
			Pinned:        true,
			ScoringMethod: "factor",
		},
		SingleCoreScore: 500,
		MultiCoreScore:  2000,
		FinalScore:      1475,
		CoreRatio:       4,
		Rating:          models.RatingGood,
		DurationMs:      125_000,
		KernelResults: []models.KernelResult{
			{
				ID: "leibniz_series", DisplayName: "Leibniz π Series",
				Mode: models.ModeSingleCore, ExecutionTimeMs: 350.5,
				OpsPerSecond: 142_857_000, IsValid: true,
			},
			{
				ID: "nqueens", DisplayName: "N-Queens",
				Mode: models.ModeMultiCore, ExecutionTimeMs: 120.0,
				OpsPerSecond: 0, IsValid: false, Error: "board 12: 14199 solutions, expected 14200",
			},
		},
	}
}

func TestFormatMarkdownReport(t *testing.T) {
	out := FormatMarkdownReport(sampleSummary())

	assert.Contains(t, out, "CPU Benchmark Results")
	assert.Contains(t, out, "❌ Validation failures")
	assert.Contains(t, out, "**Score:** 1475.0")
	assert.Contains(t, out, "| Leibniz π Series | single_core | 350.5ms | 142,857,000 ops/s | ✅ |")
	assert.Contains(t, out, "### Failed Validation")
	assert.Contains(t, out, "14199 solutions")
}

func TestFormatMarkdownReportCleanRun(t *testing.T) {
	s := sampleSummary()
	s.KernelResults = s.KernelResults[:1]
	out := FormatMarkdownReport(s)

	assert.Contains(t, out, "✅ Full fidelity")
	assert.NotContains(t, out, "### Failed Validation")
}

func TestFormatMarkdownReportDegraded(t *testing.T) {
	s := sampleSummary()
	s.KernelResults = s.KernelResults[:1]
	s.Degraded = true
	out := FormatMarkdownReport(s)

	assert.Contains(t, out, "⚠️ Degraded fidelity")
}

func TestPadRightHandlesWideNames(t *testing.T) {
	padded := padRight("Leibniz π Series", 20)
	// π is a single display column, so the padded result must line up
	// with an ASCII name padded to the same width.
	require.Equal(t, len([]rune(padRight("Prime Sieve", 20))), 20)
	assert.Equal(t, 20, len([]rune(padded)))
}

func TestPadLeft(t *testing.T) {
	assert.Equal(t, "   5ms", padLeft("5ms", 6))
	assert.Equal(t, "1234567", padLeft("1234567", 6))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500ms", formatDuration(500*time.Millisecond))
	assert.Equal(t, "2m5s", formatDuration(125*time.Second))
}
