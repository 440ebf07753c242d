package kernels

import "time"

// runNQueens counts all placements of n queens with bitmask column and
// diagonal tracking. Ops counts search nodes (placements attempted),
// which is monotonic with the real work; the solution count is checked
// downstream against the published table.
func runNQueens(w Workload) (Result, error) {
	n := w.QueensBoard

	start := time.Now()
	solutions, nodes := solveQueens(n)
	elapsed := time.Since(start)

	return Result{
		Checksum: solutions,
		Ops:      float64(nodes),
		Elapsed:  elapsed,
		Metrics: map[string]any{
			"board":     n,
			"solutions": solutions,
			"nodes":     nodes,
		},
	}, nil
}

func solveQueens(n int) (solutions, nodes uint64) {
	all := uint32(1<<n) - 1
	var place func(cols, d1, d2 uint32)
	place = func(cols, d1, d2 uint32) {
		if cols == all {
			solutions++
			return
		}
		free := all &^ (cols | d1 | d2)
		for free != 0 {
			bit := free & (-free)
			free ^= bit
			nodes++
			place(cols|bit, (d1|bit)<<1&all, (d2|bit)>>1)
		}
	}
	place(0, 0, 0)
	return solutions, nodes
}
