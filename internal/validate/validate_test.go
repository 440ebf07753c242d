package validate

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/corebench/corebench/internal/kernels"
	"github.com/corebench/corebench/internal/params"
)

func workload(t *testing.T) params.Workload {
	t.Helper()
	w, err := params.ForTier(params.TierWarmup)
	if err != nil {
		t.Fatalf("loading workload: %v", err)
	}
	return w
}

func base() kernels.Result {
	return kernels.Result{
		Checksum: 42,
		Ops:      1000,
		Elapsed:  time.Millisecond,
		Metrics:  map[string]any{},
	}
}

func TestRejectsNonPositiveElapsed(t *testing.T) {
	r := base()
	r.Elapsed = 0
	ok, reason := Result("fibonacci", workload(t), r)
	if ok {
		t.Fatal("zero elapsed should fail")
	}
	if !strings.Contains(reason, "elapsed") {
		t.Fatalf("unexpected reason %q", reason)
	}
}

func TestRejectsNonFiniteOps(t *testing.T) {
	w := workload(t)
	for _, ops := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		r := base()
		r.Ops = ops
		if ok, _ := Result("fibonacci", w, r); ok {
			t.Fatalf("ops %f should fail", ops)
		}
	}
}

func TestRejectsUnknownKernel(t *testing.T) {
	if ok, _ := Result("mystery", workload(t), base()); ok {
		t.Fatal("unknown kernel should fail")
	}
}

func TestChecksumRule(t *testing.T) {
	w := workload(t)
	r := base()
	if ok, _ := Result("fibonacci", w, r); !ok {
		t.Fatal("non-zero checksum should pass")
	}
	r.Checksum = 0
	if ok, _ := Result("fibonacci", w, r); ok {
		t.Fatal("zero checksum should fail")
	}
}

func TestPrimeSieveRule(t *testing.T) {
	w := workload(t)
	r := base()
	r.Metrics = map[string]any{"prime_count": 25}
	if ok, reason := Result("prime_sieve", w, r); !ok {
		t.Fatalf("expected pass, got %q", reason)
	}
	r.Metrics = map[string]any{"prime_count": 0}
	if ok, _ := Result("prime_sieve", w, r); ok {
		t.Fatal("zero prime count should fail")
	}
}

func TestSortAndRLERules(t *testing.T) {
	w := workload(t)
	r := base()
	r.Metrics = map[string]any{"sorted": true}
	if ok, _ := Result("string_sort", w, r); !ok {
		t.Fatal("sorted output should pass")
	}
	r.Metrics = map[string]any{"sorted": false}
	if ok, _ := Result("string_sort", w, r); ok {
		t.Fatal("unsorted output should fail")
	}

	r.Metrics = map[string]any{"roundtrip_ok": true}
	if ok, _ := Result("rle_compress", w, r); !ok {
		t.Fatal("clean roundtrip should pass")
	}
	r.Metrics = map[string]any{"roundtrip_ok": false}
	if ok, _ := Result("rle_compress", w, r); ok {
		t.Fatal("failed roundtrip should fail")
	}
}

func TestSeriesAccuracyRule(t *testing.T) {
	w := workload(t)
	w.SeriesTerms = 1_000_000
	r := base()
	r.Metrics = map[string]any{"estimate": math.Pi + 1e-7}
	if ok, reason := Result("leibniz_series", w, r); !ok {
		t.Fatalf("close estimate should pass, got %q", reason)
	}
	r.Metrics = map[string]any{"estimate": 3.0}
	if ok, _ := Result("leibniz_series", w, r); ok {
		t.Fatal("distant estimate should fail")
	}
}

func TestNQueensRule(t *testing.T) {
	w := workload(t)
	r := base()
	r.Metrics = map[string]any{"board": 10, "solutions": 724}
	if ok, reason := Result("nqueens", w, r); !ok {
		t.Fatalf("724 solutions on a 10 board should pass, got %q", reason)
	}
	r.Metrics = map[string]any{"board": 12, "solutions": 14_200}
	if ok, reason := Result("nqueens", w, r); !ok {
		t.Fatalf("14200 solutions on a 12 board should pass, got %q", reason)
	}
	r.Metrics = map[string]any{"board": 10, "solutions": 723}
	if ok, _ := Result("nqueens", w, r); ok {
		t.Fatal("wrong solution count should fail")
	}
	r.Metrics = map[string]any{"board": 30, "solutions": 1}
	if ok, _ := Result("nqueens", w, r); ok {
		t.Fatal("board without a published count should fail")
	}
}

func TestRealKernelOutputsValidate(t *testing.T) {
	w := workload(t)
	for _, k := range kernels.Registry {
		res, err := k.Run(w)
		if err != nil {
			t.Fatalf("%s failed: %v", k.ID, err)
		}
		if ok, reason := Result(k.ID, w, res); !ok {
			t.Fatalf("%s output failed validation: %s", k.ID, reason)
		}
	}
}
