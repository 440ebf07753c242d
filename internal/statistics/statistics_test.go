package statistics

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{2, 4, 6, 8})
	if s.Count != 4 {
		t.Fatalf("count = %d", s.Count)
	}
	if s.Mean != 5 {
		t.Fatalf("mean = %f", s.Mean)
	}
	if s.Min != 2 || s.Max != 8 {
		t.Fatalf("min/max = %f/%f", s.Min, s.Max)
	}
	if math.Abs(s.StdDev-math.Sqrt(5)) > 1e-9 {
		t.Fatalf("stddev = %f", s.StdDev)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s != (Summary{}) {
		t.Fatalf("expected zero summary, got %+v", s)
	}
}

func TestGeometricMean(t *testing.T) {
	got := GeometricMean([]float64{1, 4, 16})
	if math.Abs(got-4) > 1e-9 {
		t.Fatalf("geometric mean = %f, want 4", got)
	}
}

func TestGeometricMeanIdentical(t *testing.T) {
	got := GeometricMean([]float64{3, 3, 3})
	if math.Abs(got-3) > 1e-9 {
		t.Fatalf("geometric mean = %f, want 3", got)
	}
}

func TestGeometricMeanDegenerate(t *testing.T) {
	if GeometricMean(nil) != 0 {
		t.Fatal("empty sample should yield 0")
	}
	if GeometricMean([]float64{1, 0, 4}) != 0 {
		t.Fatal("zero value should yield 0")
	}
	if GeometricMean([]float64{1, -2}) != 0 {
		t.Fatal("negative value should yield 0")
	}
	if GeometricMean([]float64{1, math.NaN()}) != 0 {
		t.Fatal("NaN should yield 0")
	}
	if GeometricMean([]float64{1, math.Inf(1)}) != 0 {
		t.Fatal("Inf should yield 0")
	}
}

func TestStdDevSmallSamples(t *testing.T) {
	if StdDev([]float64{5}, 5) != 0 {
		t.Fatal("single observation has no spread")
	}
	if StdDev(nil, 0) != 0 {
		t.Fatal("empty sample has no spread")
	}
}
