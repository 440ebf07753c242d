package kernels

import (
	"math"
	"math/rand"
	"sort"
	"time"
)

const sortSeed = 0x5EED_C0DE

// runStringSort sorts a fixed corpus of random-looking strings. The
// corpus is generated from a seeded source before timing; each round
// re-copies the shuffled master slice so every round sorts identical
// input. Ops approximates comparisons as n * log2(n) per round.
func runStringSort(w Workload) (Result, error) {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	rng := rand.New(rand.NewSource(sortSeed))
	master := make([]string, w.SortStrings)
	raw := make([]byte, 24)
	for i := range master {
		for j := range raw {
			raw[j] = chars[rng.Intn(len(chars))]
		}
		master[i] = string(raw)
	}
	work := make([]string, len(master))

	start := time.Now()
	var sum uint64
	sorted := true
	for round := 0; round < w.SortRounds; round++ {
		copy(work, master)
		sort.Strings(work)
		sorted = sorted && sort.StringsAreSorted(work)
		sum = sum*31 + fnvString(work[0]) + fnvString(work[len(work)/2]) + fnvString(work[len(work)-1])
	}
	elapsed := time.Since(start)

	n := float64(w.SortStrings)
	ops := n * math.Log2(n) * float64(w.SortRounds)
	return Result{
		Checksum: sum,
		Ops:      ops,
		Elapsed:  elapsed,
		Metrics: map[string]any{
			"strings": w.SortStrings,
			"rounds":  w.SortRounds,
			"sorted":  sorted,
		},
	}, nil
}

func fnvString(s string) uint64 {
	h := uint64(fnvOffset)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime
	}
	return h
}
