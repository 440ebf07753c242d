// Package models defines the immutable result types the suite produces
// and the reporters consume.
package models

import "time"

// ExecutionMode distinguishes the pinned single-core suite from the
// fan-out multi-core suite.
type ExecutionMode string

const (
	ModeSingleCore ExecutionMode = "single_core"
	ModeMultiCore  ExecutionMode = "multi_core"
)

// KernelResult is one kernel's measurement in one execution mode. For
// multi-core runs it is the aggregate across all workers.
type KernelResult struct {
	ID              string         `json:"id"`
	DisplayName     string         `json:"name"`
	Mode            ExecutionMode  `json:"mode"`
	ExecutionTimeMs float64        `json:"execution_time_ms"`
	OpsPerSecond    float64        `json:"ops_per_second"`
	Checksum        uint64         `json:"checksum"`
	IsValid         bool           `json:"is_valid"`
	Error           string         `json:"error,omitempty"`
	Metrics         map[string]any `json:"metrics,omitempty"`
}

// Rating buckets a final score into a human-readable tier.
type Rating string

const (
	RatingExceptional Rating = "Exceptional"
	RatingHigh        Rating = "High"
	RatingGood        Rating = "Good"
	RatingModerate    Rating = "Moderate"
	RatingBasic       Rating = "Basic"
	RatingLow         Rating = "Low"
)

// Stars returns the original star-grade label for a rating.
func (r Rating) Stars() string {
	switch r {
	case RatingExceptional:
		return "★★★★★"
	case RatingHigh:
		return "★★★★☆"
	case RatingGood:
		return "★★★☆☆"
	case RatingModerate:
		return "★★☆☆☆"
	case RatingBasic:
		return "★☆☆☆☆"
	default:
		return "☆☆☆☆☆"
	}
}

// RunSetup records the conditions the suite actually ran under, so a
// summary is interpretable without the machine it came from.
type RunSetup struct {
	Tier             string `json:"tier"`
	LogicalCores     int    `json:"logical_cores"`
	BigCores         []int  `json:"big_cores,omitempty"`
	PrimeCore        int    `json:"prime_core"`
	Workers          int    `json:"workers"`
	Pinned           bool   `json:"pinned"`
	PriorityElevated bool   `json:"priority_elevated"`
	ScoringMethod    string `json:"scoring_method"`
	CooldownMs       int64  `json:"cooldown_ms"`
}

// RunSummary is the complete outcome of one benchmark run. It is built
// once by the suite and never mutated afterwards.
type RunSummary struct {
	RunID           string         `json:"run_id"`
	Timestamp       time.Time      `json:"timestamp"`
	Setup           RunSetup       `json:"setup"`
	SingleCoreScore float64        `json:"single_core_score"`
	MultiCoreScore  float64        `json:"multi_core_score"`
	FinalScore      float64        `json:"final_score"`
	CoreRatio       float64        `json:"core_ratio"`
	Rating          Rating         `json:"rating"`
	Degraded        bool           `json:"degraded"`
	DurationMs      int64          `json:"duration_ms"`
	KernelResults   []KernelResult `json:"kernel_results"`
}

// ResultsForMode returns the kernel results for one execution mode in
// their published order.
func (s *RunSummary) ResultsForMode(mode ExecutionMode) []KernelResult {
	out := make([]KernelResult, 0, len(s.KernelResults)/2)
	for _, r := range s.KernelResults {
		if r.Mode == mode {
			out = append(out, r)
		}
	}
	return out
}

// InvalidResults returns every kernel result that failed validation.
func (s *RunSummary) InvalidResults() []KernelResult {
	var out []KernelResult
	for _, r := range s.KernelResults {
		if !r.IsValid {
			out = append(out, r)
		}
	}
	return out
}
