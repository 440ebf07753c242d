package params

import "testing"

func TestForTierKnownTiers(t *testing.T) {
	for _, tier := range Tiers() {
		w, err := ForTier(tier)
		if err != nil {
			t.Fatalf("ForTier(%s) failed: %v", tier, err)
		}
		if w.Tier != tier {
			t.Fatalf("ForTier(%s) returned row for %s", tier, w.Tier)
		}
		if err := w.Validate(); err != nil {
			t.Fatalf("tier %s table invalid: %v", tier, err)
		}
	}
}

func TestForTierUnknown(t *testing.T) {
	if _, err := ForTier(Tier("ultra")); err == nil {
		t.Fatal("expected error for unknown tier")
	}
}

func TestParseTier(t *testing.T) {
	tier, err := ParseTier("mid")
	if err != nil {
		t.Fatalf("ParseTier(mid) failed: %v", err)
	}
	if tier != TierMid {
		t.Fatalf("expected mid, got %s", tier)
	}
	if _, err := ParseTier("MID"); err == nil {
		t.Fatal("tier parsing should be case sensitive")
	}
}

func TestValidateRejectsMalformed(t *testing.T) {
	w, err := ForTier(TierLow)
	if err != nil {
		t.Fatalf("ForTier failed: %v", err)
	}

	bad := w
	bad.PrimeRange = 0
	if err := bad.Validate(); err == nil {
		t.Fatal("zero prime range should be rejected")
	}

	bad = w
	bad.QueensBoard = 3
	if err := bad.Validate(); err == nil {
		t.Fatal("undersized queens board should be rejected")
	}

	bad = w
	bad.FibIndex = 120
	if err := bad.Validate(); err == nil {
		t.Fatal("overflowing fibonacci index should be rejected")
	}
}

func TestTiersAscendInWork(t *testing.T) {
	low, _ := ForTier(TierLow)
	mid, _ := ForTier(TierMid)
	high, _ := ForTier(TierHigh)

	if !(low.PrimeRange < mid.PrimeRange && mid.PrimeRange < high.PrimeRange) {
		t.Fatal("prime range should grow with tier")
	}
	if !(low.SeriesTerms < mid.SeriesTerms && mid.SeriesTerms < high.SeriesTerms) {
		t.Fatal("series terms should grow with tier")
	}
	if !(low.QueensBoard <= mid.QueensBoard && mid.QueensBoard <= high.QueensBoard) {
		t.Fatal("queens board should not shrink with tier")
	}
}
