package kernels

import "time"

// runFibonacci performs repeated iterative Fibonacci walks. The starting
// pair varies with the pass index so no pass can be hoisted out of the
// loop, and every pass folds into the checksum. No memoization: the
// point is pure sequential integer addition.
func runFibonacci(w Workload) (Result, error) {
	start := time.Now()
	var sum uint64
	for pass := 0; pass < w.FibPasses; pass++ {
		a := uint64(pass & 1)
		b := uint64(1)
		for i := 0; i < w.FibIndex; i++ {
			a, b = b, a+b
		}
		sum = sum*31 + a
	}
	elapsed := time.Since(start)

	ops := float64(w.FibPasses) * float64(w.FibIndex)
	return Result{
		Checksum: sum,
		Ops:      ops,
		Elapsed:  elapsed,
		Metrics: map[string]any{
			"index":  w.FibIndex,
			"passes": w.FibPasses,
		},
	}, nil
}
