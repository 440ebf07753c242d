// Package validate checks each kernel's primary correctness signal
// before its throughput is allowed to count toward a score. Validation
// reads the opaque metrics map through typed decoding and never touches
// the measured numbers.
package validate

import (
	"fmt"
	"math"

	"github.com/go-viper/mapstructure/v2"

	"github.com/corebench/corebench/internal/kernels"
	"github.com/corebench/corebench/internal/params"
)

// queensSolutions is the published solution count per board size.
var queensSolutions = map[int]uint64{
	4:  2,
	5:  10,
	6:  4,
	7:  40,
	8:  92,
	9:  352,
	10: 724,
	11: 2_680,
	12: 14_200,
	13: 73_712,
	14: 365_596,
	15: 2_279_184,
}

type check func(w params.Workload, r kernels.Result) (bool, string)

var checks = map[string]check{
	"prime_sieve":     checkPrimeSieve,
	"fibonacci":       checkChecksum,
	"matrix_multiply": checkChecksum,
	"rolling_hash":    checkChecksum,
	"string_sort":     checkStringSort,
	"ray_trace":       checkChecksum,
	"rle_compress":    checkRLE,
	"leibniz_series":  checkSeries,
	"json_parse":      checkJSONParse,
	"nqueens":         checkNQueens,
}

// Result reports whether a kernel result passes its correctness check.
// The second return value carries the failure reason for logging.
func Result(kernelID string, w params.Workload, r kernels.Result) (bool, string) {
	if r.Elapsed <= 0 {
		return false, "elapsed time not positive"
	}
	if r.Ops <= 0 || math.IsNaN(r.Ops) || math.IsInf(r.Ops, 0) {
		return false, "operation count not positive and finite"
	}
	chk, ok := checks[kernelID]
	if !ok {
		return false, fmt.Sprintf("no validation rule for kernel %q", kernelID)
	}
	return chk(w, r)
}

func decodeMetrics[T any](r kernels.Result) (T, error) {
	var out T
	if err := mapstructure.Decode(r.Metrics, &out); err != nil {
		return out, fmt.Errorf("decoding metrics: %w", err)
	}
	return out, nil
}

func checkPrimeSieve(w params.Workload, r kernels.Result) (bool, string) {
	m, err := decodeMetrics[struct {
		PrimeCount int `mapstructure:"prime_count"`
	}](r)
	if err != nil {
		return false, err.Error()
	}
	if m.PrimeCount <= 0 {
		return false, "no primes counted"
	}
	return true, ""
}

func checkChecksum(_ params.Workload, r kernels.Result) (bool, string) {
	if r.Checksum == 0 {
		return false, "zero checksum"
	}
	return true, ""
}

func checkStringSort(_ params.Workload, r kernels.Result) (bool, string) {
	m, err := decodeMetrics[struct {
		Sorted bool `mapstructure:"sorted"`
	}](r)
	if err != nil {
		return false, err.Error()
	}
	if !m.Sorted {
		return false, "output not sorted"
	}
	return true, ""
}

func checkRLE(_ params.Workload, r kernels.Result) (bool, string) {
	m, err := decodeMetrics[struct {
		RoundtripOK bool `mapstructure:"roundtrip_ok"`
	}](r)
	if err != nil {
		return false, err.Error()
	}
	if !m.RoundtripOK {
		return false, "compression roundtrip mismatch"
	}
	return true, ""
}

func checkSeries(w params.Workload, r kernels.Result) (bool, string) {
	m, err := decodeMetrics[struct {
		Estimate float64 `mapstructure:"estimate"`
	}](r)
	if err != nil {
		return false, err.Error()
	}
	// Leibniz converges as 1/terms; allow four times the theoretical
	// error bound.
	tolerance := 4.0 / float64(w.SeriesTerms)
	if diff := math.Abs(m.Estimate - math.Pi); diff > tolerance {
		return false, fmt.Sprintf("estimate %f off π by %g (tolerance %g)", m.Estimate, diff, tolerance)
	}
	return true, ""
}

func checkJSONParse(_ params.Workload, r kernels.Result) (bool, string) {
	m, err := decodeMetrics[struct {
		Elements int `mapstructure:"elements"`
	}](r)
	if err != nil {
		return false, err.Error()
	}
	if m.Elements <= 0 {
		return false, "no elements parsed"
	}
	return true, ""
}

func checkNQueens(w params.Workload, r kernels.Result) (bool, string) {
	m, err := decodeMetrics[struct {
		Board     int    `mapstructure:"board"`
		Solutions uint64 `mapstructure:"solutions"`
	}](r)
	if err != nil {
		return false, err.Error()
	}
	want, ok := queensSolutions[m.Board]
	if !ok {
		return false, fmt.Sprintf("no published solution count for board %d", m.Board)
	}
	if m.Solutions != want {
		return false, fmt.Sprintf("board %d: %d solutions, expected %d", m.Board, m.Solutions, want)
	}
	return true, ""
}
