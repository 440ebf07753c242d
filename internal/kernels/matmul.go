package kernels

import (
	"math"
	"time"
)

// runMatrixMultiply multiplies two n×n float64 matrices. Inputs are
// generated from element indices before the clock starts; one input
// element is perturbed per pass so repeated passes cannot be folded
// into a single product. The inner loops run in i,k,j order for
// sequential access on both operands.
func runMatrixMultiply(w Workload) (Result, error) {
	n := w.MatrixSize
	a := make([]float64, n*n)
	b := make([]float64, n*n)
	c := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a[i*n+j] = float64((i*31+j*17)%64) / 64.0
			b[i*n+j] = float64((i*13+j*29)%64) / 64.0
		}
	}

	start := time.Now()
	var sum uint64
	for pass := 0; pass < w.MatrixPasses; pass++ {
		a[pass%(n*n)] += 1.0 / float64(pass+2)
		for i := range c {
			c[i] = 0
		}
		for i := 0; i < n; i++ {
			for k := 0; k < n; k++ {
				aik := a[i*n+k]
				for j := 0; j < n; j++ {
					c[i*n+j] += aik * b[k*n+j]
				}
			}
		}
		sum ^= math.Float64bits(c[(pass*7)%(n*n)]) + math.Float64bits(c[n*n-1])
	}
	elapsed := time.Since(start)

	ops := 2.0 * float64(n) * float64(n) * float64(n) * float64(w.MatrixPasses)
	return Result{
		Checksum: sum,
		Ops:      ops,
		Elapsed:  elapsed,
		Metrics: map[string]any{
			"size":   n,
			"passes": w.MatrixPasses,
		},
	}, nil
}
