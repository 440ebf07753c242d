package kernels

import (
	"math"
	"time"
)

// runPrimeSieve counts primes below the configured range with a classic
// sieve of Eratosthenes. The operation count follows the prime counting
// approximation n * ln(ln(n)) so throughput stays comparable across
// range sizes.
func runPrimeSieve(w Workload) (Result, error) {
	n := w.PrimeRange
	composite := make([]bool, n)

	start := time.Now()
	count := 0
	for i := 2; i < n; i++ {
		if composite[i] {
			continue
		}
		count++
		for j := i * 2; j < n; j += i {
			composite[j] = true
		}
	}
	elapsed := time.Since(start)

	ops := float64(n)
	if n > 16 {
		ops = float64(n) * math.Log(math.Log(float64(n)))
	}
	return Result{
		Checksum: uint64(count),
		Ops:      ops,
		Elapsed:  elapsed,
		Metrics: map[string]any{
			"prime_count": count,
			"range":       n,
		},
	}, nil
}
