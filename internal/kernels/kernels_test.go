package kernels

import (
	"math"
	"testing"

	"github.com/corebench/corebench/internal/params"
)

func warmupWorkload(t *testing.T) Workload {
	t.Helper()
	w, err := params.ForTier(params.TierWarmup)
	if err != nil {
		t.Fatalf("loading warmup workload: %v", err)
	}
	return w
}

func TestRegistryOrder(t *testing.T) {
	want := []string{
		"prime_sieve", "fibonacci", "matrix_multiply", "rolling_hash",
		"string_sort", "ray_trace", "rle_compress", "leibniz_series",
		"json_parse", "nqueens",
	}
	if len(Registry) != len(want) {
		t.Fatalf("expected %d kernels, got %d", len(want), len(Registry))
	}
	for i, id := range want {
		if Registry[i].ID != id {
			t.Fatalf("kernel %d: expected %s, got %s", i, id, Registry[i].ID)
		}
		if Registry[i].DisplayName == "" {
			t.Fatalf("kernel %s has no display name", id)
		}
		if Registry[i].Run == nil {
			t.Fatalf("kernel %s has no implementation", id)
		}
	}
}

func TestByID(t *testing.T) {
	k, ok := ByID("fibonacci")
	if !ok || k.ID != "fibonacci" {
		t.Fatalf("ByID(fibonacci) = %v, %v", k.ID, ok)
	}
	if _, ok := ByID("bogus"); ok {
		t.Fatal("ByID(bogus) should not resolve")
	}
}

func TestAllKernelsProduceWork(t *testing.T) {
	w := warmupWorkload(t)
	for _, k := range Registry {
		res, err := k.Run(w)
		if err != nil {
			t.Fatalf("%s failed: %v", k.ID, err)
		}
		if res.Ops <= 0 {
			t.Fatalf("%s reported non-positive ops %f", k.ID, res.Ops)
		}
		if res.Elapsed <= 0 {
			t.Fatalf("%s reported non-positive elapsed %v", k.ID, res.Elapsed)
		}
		if math.IsNaN(res.Ops) || math.IsInf(res.Ops, 0) {
			t.Fatalf("%s reported non-finite ops", k.ID)
		}
	}
}

func TestKernelsAreDeterministic(t *testing.T) {
	w := warmupWorkload(t)
	for _, k := range Registry {
		first, err := k.Run(w)
		if err != nil {
			t.Fatalf("%s first run failed: %v", k.ID, err)
		}
		second, err := k.Run(w)
		if err != nil {
			t.Fatalf("%s second run failed: %v", k.ID, err)
		}
		if first.Checksum != second.Checksum {
			t.Fatalf("%s checksum not deterministic: %d vs %d", k.ID, first.Checksum, second.Checksum)
		}
		if first.Ops != second.Ops {
			t.Fatalf("%s ops not deterministic: %f vs %f", k.ID, first.Ops, second.Ops)
		}
	}
}

func TestFibonacciOpsScaleLinearly(t *testing.T) {
	w := warmupWorkload(t)
	w.FibPasses = 10_000
	single, err := runFibonacci(w)
	if err != nil {
		t.Fatalf("fibonacci failed: %v", err)
	}
	w.FibPasses = 20_000
	double, err := runFibonacci(w)
	if err != nil {
		t.Fatalf("fibonacci failed: %v", err)
	}
	if double.Ops != 2*single.Ops {
		t.Fatalf("ops should scale linearly with passes: %f vs %f", single.Ops, double.Ops)
	}
}

func TestNQueensKnownSolutionCounts(t *testing.T) {
	cases := map[int]uint64{
		4:  2,
		6:  4,
		8:  92,
		10: 724,
		12: 14_200,
	}
	for board, want := range cases {
		solutions, nodes := solveQueens(board)
		if solutions != want {
			t.Fatalf("board %d: expected %d solutions, got %d", board, want, solutions)
		}
		if nodes < solutions {
			t.Fatalf("board %d: node count %d below solution count %d", board, nodes, solutions)
		}
	}
}

func TestLeibnizSeriesAccuracy(t *testing.T) {
	w := warmupWorkload(t)
	w.SeriesTerms = 1_000_000
	res, err := runLeibnizSeries(w)
	if err != nil {
		t.Fatalf("series failed: %v", err)
	}
	estimate := math.Float64frombits(res.Checksum)
	if math.Abs(estimate-math.Pi) > 1e-5 {
		t.Fatalf("estimate %f too far from π", estimate)
	}
}

func TestRLERoundtrip(t *testing.T) {
	src := []byte("aaaabbbcccccccccccccccccccd")
	enc := rleEncode(nil, src)
	dec := rleDecode(nil, enc)
	if string(dec) != string(src) {
		t.Fatalf("roundtrip mismatch: %q vs %q", dec, src)
	}
	if len(enc) >= len(src) {
		t.Fatalf("run-heavy input should compress, got %d -> %d", len(src), len(enc))
	}
}

func TestRLELongRunSplitting(t *testing.T) {
	src := make([]byte, 1000)
	enc := rleEncode(nil, src)
	dec := rleDecode(nil, enc)
	if len(dec) != len(src) {
		t.Fatalf("expected %d decoded bytes, got %d", len(src), len(dec))
	}
}

func TestJSONPayloadParses(t *testing.T) {
	payload := buildJSONPayload(4096)
	if len(payload) < 4096 {
		t.Fatalf("payload short: %d bytes", len(payload))
	}
	w := warmupWorkload(t)
	w.JSONBodyBytes = 4096
	res, err := runJSONParse(w)
	if err != nil {
		t.Fatalf("json parse failed: %v", err)
	}
	if res.Ops < 10 {
		t.Fatalf("expected many elements, got %f", res.Ops)
	}
}

func TestPrimeSieveCount(t *testing.T) {
	w := warmupWorkload(t)
	w.PrimeRange = 100
	res, err := runPrimeSieve(w)
	if err != nil {
		t.Fatalf("sieve failed: %v", err)
	}
	// 25 primes below 100.
	if res.Checksum != 25 {
		t.Fatalf("expected 25 primes below 100, got %d", res.Checksum)
	}
}
