// Package params defines the workload tiers the benchmark suites run
// against. Every kernel reads its knobs from a single immutable Workload
// row so two runs on the same tier always execute identical work.
package params

import "fmt"

// Tier selects a workload row. The warmup tier is intentionally tiny and
// is only used for the discarded warm-up pass.
type Tier string

const (
	TierWarmup Tier = "warmup"
	TierLow    Tier = "low"
	TierMid    Tier = "mid"
	TierHigh   Tier = "high"
)

// Tiers lists the selectable tiers in ascending order of work.
func Tiers() []Tier {
	return []Tier{TierWarmup, TierLow, TierMid, TierHigh}
}

// ParseTier maps a user-supplied string to a Tier.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierWarmup, TierLow, TierMid, TierHigh:
		return Tier(s), nil
	}
	return "", fmt.Errorf("unknown tier %q (expected warmup, low, mid or high)", s)
}

// Workload carries every kernel's sizing knobs for one tier.
type Workload struct {
	Tier Tier

	// Prime sieve.
	PrimeRange int

	// Iterative Fibonacci: index advanced per pass, number of passes.
	FibIndex  int
	FibPasses int

	// Matrix multiply: square dimension and repeat count.
	MatrixSize   int
	MatrixPasses int

	// Rolling hash: buffer size in bytes and number of full passes.
	HashBufferBytes int
	HashPasses      int

	// String sort: corpus size and number of sort rounds.
	SortStrings int
	SortRounds  int

	// Ray tracing: image dimensions and reflection depth.
	RayWidth  int
	RayHeight int
	RayDepth  int

	// RLE compression: buffer size and number of roundtrip passes.
	RLEBufferBytes int
	RLEPasses      int

	// Leibniz series term count.
	SeriesTerms int

	// JSON parse payload size in bytes.
	JSONBodyBytes int

	// N-Queens board dimension.
	QueensBoard int
}

var tiers = map[Tier]Workload{
	TierWarmup: {
		Tier:            TierWarmup,
		PrimeRange:      50_000,
		FibIndex:        64,
		FibPasses:       10_000,
		MatrixSize:      64,
		MatrixPasses:    1,
		HashBufferBytes: 256 * 1024,
		HashPasses:      2,
		SortStrings:     5_000,
		SortRounds:      1,
		RayWidth:        64,
		RayHeight:       64,
		RayDepth:        2,
		RLEBufferBytes:  256 * 1024,
		RLEPasses:       2,
		SeriesTerms:     200_000,
		JSONBodyBytes:   64 * 1024,
		QueensBoard:     6,
	},
	TierLow: {
		Tier:            TierLow,
		PrimeRange:      1_000_000,
		FibIndex:        64,
		FibPasses:       2_000_000,
		MatrixSize:      256,
		MatrixPasses:    2,
		HashBufferBytes: 8 * 1024 * 1024,
		HashPasses:      4,
		SortStrings:     100_000,
		SortRounds:      2,
		RayWidth:        256,
		RayHeight:       256,
		RayDepth:        2,
		RLEBufferBytes:  8 * 1024 * 1024,
		RLEPasses:       2,
		SeriesTerms:     25_000_000,
		JSONBodyBytes:   2 * 1024 * 1024,
		QueensBoard:     10,
	},
	TierMid: {
		Tier:            TierMid,
		PrimeRange:      6_000_000,
		FibIndex:        64,
		FibPasses:       5_000_000,
		MatrixSize:      384,
		MatrixPasses:    2,
		HashBufferBytes: 16 * 1024 * 1024,
		HashPasses:      4,
		SortStrings:     250_000,
		SortRounds:      2,
		RayWidth:        300,
		RayHeight:       300,
		RayDepth:        3,
		RLEBufferBytes:  16 * 1024 * 1024,
		RLEPasses:       2,
		SeriesTerms:     50_000_000,
		JSONBodyBytes:   4 * 1024 * 1024,
		QueensBoard:     12,
	},
	TierHigh: {
		Tier:            TierHigh,
		PrimeRange:      12_000_000,
		FibIndex:        64,
		FibPasses:       12_000_000,
		MatrixSize:      512,
		MatrixPasses:    2,
		HashBufferBytes: 32 * 1024 * 1024,
		HashPasses:      6,
		SortStrings:     500_000,
		SortRounds:      2,
		RayWidth:        500,
		RayHeight:       500,
		RayDepth:        5,
		RLEBufferBytes:  32 * 1024 * 1024,
		RLEPasses:       3,
		SeriesTerms:     120_000_000,
		JSONBodyBytes:   8 * 1024 * 1024,
		QueensBoard:     13,
	},
}

// ForTier returns the workload row for the given tier.
func ForTier(t Tier) (Workload, error) {
	w, ok := tiers[t]
	if !ok {
		return Workload{}, fmt.Errorf("no workload table for tier %q", t)
	}
	if err := w.Validate(); err != nil {
		return Workload{}, fmt.Errorf("workload table for tier %q: %w", t, err)
	}
	return w, nil
}

// Validate rejects malformed workloads before any kernel runs. A failure
// here is a configuration error and the caller should abort the run.
func (w Workload) Validate() error {
	positive := []struct {
		name  string
		value int
	}{
		{"prime range", w.PrimeRange},
		{"fibonacci index", w.FibIndex},
		{"fibonacci passes", w.FibPasses},
		{"matrix size", w.MatrixSize},
		{"matrix passes", w.MatrixPasses},
		{"hash buffer bytes", w.HashBufferBytes},
		{"hash passes", w.HashPasses},
		{"sort strings", w.SortStrings},
		{"sort rounds", w.SortRounds},
		{"ray width", w.RayWidth},
		{"ray height", w.RayHeight},
		{"ray depth", w.RayDepth},
		{"rle buffer bytes", w.RLEBufferBytes},
		{"rle passes", w.RLEPasses},
		{"series terms", w.SeriesTerms},
		{"json body bytes", w.JSONBodyBytes},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", p.name, p.value)
		}
	}
	if w.FibIndex > 92 {
		return fmt.Errorf("fibonacci index %d overflows uint64 accumulation", w.FibIndex)
	}
	if w.QueensBoard < 4 || w.QueensBoard > 15 {
		return fmt.Errorf("queens board must be between 4 and 15, got %d", w.QueensBoard)
	}
	return nil
}
