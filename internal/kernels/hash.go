package kernels

import "time"

// FNV-1a constants, inlined so the hot loop carries no hash.Hash
// interface dispatch.
const (
	fnvOffset = 14695981039346656037
	fnvPrime  = 1099511628211
)

// runRollingHash streams a deterministic byte buffer through FNV-1a.
// The buffer is filled once before timing and reused across passes;
// each pass starts from a pass-dependent seed so passes cannot be
// deduplicated. Ops counts bytes hashed.
func runRollingHash(w Workload) (Result, error) {
	buf := make([]byte, w.HashBufferBytes)
	for i := range buf {
		buf[i] = byte(i*131 + 7)
	}

	start := time.Now()
	var sum uint64
	for pass := 0; pass < w.HashPasses; pass++ {
		h := uint64(fnvOffset) ^ uint64(pass)
		for _, b := range buf {
			h ^= uint64(b)
			h *= fnvPrime
		}
		sum ^= h
	}
	elapsed := time.Since(start)

	bytes := float64(w.HashBufferBytes) * float64(w.HashPasses)
	return Result{
		Checksum: sum,
		Ops:      bytes,
		Elapsed:  elapsed,
		Metrics: map[string]any{
			"buffer_bytes": w.HashBufferBytes,
			"passes":       w.HashPasses,
		},
	}, nil
}
