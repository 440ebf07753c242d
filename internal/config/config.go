// Package config holds the immutable run configuration, built with
// functional options and read through getters.
package config

import (
	"time"

	"github.com/corebench/corebench/internal/calibration"
	"github.com/corebench/corebench/internal/params"
)

// DefaultCooldown is the thermal settle time between measured kernels.
const DefaultCooldown = 2 * time.Second

// RunConfig carries everything a benchmark run needs to know up front.
type RunConfig struct {
	tier       params.Tier
	cooldown   time.Duration
	workers    int
	verbose    bool
	outputPath string
	table      *calibration.Table
}

// Option mutates a RunConfig during construction only.
type Option func(*RunConfig)

// New builds a RunConfig with mid-tier defaults and the embedded
// calibration table.
func New(opts ...Option) *RunConfig {
	cfg := &RunConfig{
		tier:     params.TierMid,
		cooldown: DefaultCooldown,
		table:    calibration.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithTier selects the workload tier.
func WithTier(t params.Tier) Option {
	return func(c *RunConfig) { c.tier = t }
}

// WithCooldown overrides the inter-kernel cooldown. Zero disables it,
// which tests rely on.
func WithCooldown(d time.Duration) Option {
	return func(c *RunConfig) { c.cooldown = d }
}

// WithWorkers overrides the multi-core fan-out width. Zero means one
// worker per detected logical core.
func WithWorkers(n int) Option {
	return func(c *RunConfig) { c.workers = n }
}

// WithVerbose enables per-kernel progress output.
func WithVerbose(v bool) Option {
	return func(c *RunConfig) { c.verbose = v }
}

// WithOutputPath sets where the run summary is saved. Empty disables
// saving.
func WithOutputPath(path string) Option {
	return func(c *RunConfig) { c.outputPath = path }
}

// WithCalibration replaces the embedded calibration table.
func WithCalibration(t *calibration.Table) Option {
	return func(c *RunConfig) {
		if t != nil {
			c.table = t
		}
	}
}

func (c *RunConfig) Tier() params.Tier         { return c.tier }
func (c *RunConfig) Cooldown() time.Duration   { return c.cooldown }
func (c *RunConfig) Workers() int              { return c.workers }
func (c *RunConfig) Verbose() bool             { return c.verbose }
func (c *RunConfig) OutputPath() string        { return c.outputPath }
func (c *RunConfig) Table() *calibration.Table { return c.table }
