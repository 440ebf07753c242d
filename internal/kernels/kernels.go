// Package kernels implements the ten deterministic compute kernels the
// benchmark measures. Kernels take no random input inside their timed
// regions, reuse their buffers, and fold their work into a checksum the
// caller consumes, so the compiler cannot elide the measured loops.
package kernels

import (
	"time"

	"github.com/corebench/corebench/internal/params"
)

// Result is one kernel invocation's raw measurement. Ops is a kernel
// specific operation count (additions, rays, bytes, search nodes) used
// to derive throughput; Checksum must be consumed by the caller.
type Result struct {
	Checksum uint64
	Ops      float64
	Elapsed  time.Duration
	Metrics  map[string]any
}

// Kernel pairs an identifier with its implementation. Implementations
// time only the measured region; input generation happens before the
// clock starts.
type Kernel struct {
	ID          string
	DisplayName string
	Run         func(w Workload) (Result, error)
}

// Workload aliases the tier parameter row so the suite passes tables
// through unchanged.
type Workload = params.Workload

// Registry lists the kernels in their fixed published order. The order
// is part of the output contract; never reorder.
var Registry = []Kernel{
	{ID: "prime_sieve", DisplayName: "Prime Sieve", Run: runPrimeSieve},
	{ID: "fibonacci", DisplayName: "Iterative Fibonacci", Run: runFibonacci},
	{ID: "matrix_multiply", DisplayName: "Matrix Multiply", Run: runMatrixMultiply},
	{ID: "rolling_hash", DisplayName: "Rolling Hash", Run: runRollingHash},
	{ID: "string_sort", DisplayName: "String Sort", Run: runStringSort},
	{ID: "ray_trace", DisplayName: "Ray Trace", Run: runRayTrace},
	{ID: "rle_compress", DisplayName: "RLE Compress", Run: runRLECompress},
	{ID: "leibniz_series", DisplayName: "Leibniz π Series", Run: runLeibnizSeries},
	{ID: "json_parse", DisplayName: "JSON Parse", Run: runJSONParse},
	{ID: "nqueens", DisplayName: "N-Queens", Run: runNQueens},
}

// ByID returns the registered kernel with the given identifier.
func ByID(id string) (Kernel, bool) {
	for _, k := range Registry {
		if k.ID == id {
			return k, true
		}
	}
	return Kernel{}, false
}
