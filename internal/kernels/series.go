package kernels

import (
	"math"
	"time"
)

// runLeibnizSeries approximates π with the Leibniz series
// 4 * (1 - 1/3 + 1/5 - ...). Fully deterministic; the estimate's
// distance from π is a validation signal because the series error
// shrinks as 1/terms. Ops counts terms.
func runLeibnizSeries(w Workload) (Result, error) {
	terms := w.SeriesTerms

	start := time.Now()
	sum := 0.0
	sign := 1.0
	for i := 0; i < terms; i++ {
		sum += sign / float64(2*i+1)
		sign = -sign
	}
	estimate := 4 * sum
	elapsed := time.Since(start)

	return Result{
		Checksum: math.Float64bits(estimate),
		Ops:      float64(terms),
		Elapsed:  elapsed,
		Metrics: map[string]any{
			"terms":    terms,
			"estimate": estimate,
			"error":    math.Abs(estimate - math.Pi),
		},
	}, nil
}
