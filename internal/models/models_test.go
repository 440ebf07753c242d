package models

import "testing"

func TestResultsForMode(t *testing.T) {
	s := &RunSummary{
		KernelResults: []KernelResult{
			{ID: "a", Mode: ModeSingleCore},
			{ID: "b", Mode: ModeSingleCore},
			{ID: "a", Mode: ModeMultiCore},
		},
	}

	single := s.ResultsForMode(ModeSingleCore)
	if len(single) != 2 || single[0].ID != "a" || single[1].ID != "b" {
		t.Fatalf("single results = %+v", single)
	}
	multi := s.ResultsForMode(ModeMultiCore)
	if len(multi) != 1 || multi[0].ID != "a" {
		t.Fatalf("multi results = %+v", multi)
	}
}

func TestInvalidResults(t *testing.T) {
	s := &RunSummary{
		KernelResults: []KernelResult{
			{ID: "a", IsValid: true},
			{ID: "b", IsValid: false},
			{ID: "c", IsValid: false},
		},
	}
	invalid := s.InvalidResults()
	if len(invalid) != 2 {
		t.Fatalf("expected 2 invalid, got %d", len(invalid))
	}
}

func TestRatingStars(t *testing.T) {
	if RatingExceptional.Stars() != "★★★★★" {
		t.Fatalf("exceptional stars = %s", RatingExceptional.Stars())
	}
	if RatingLow.Stars() != "☆☆☆☆☆" {
		t.Fatalf("low stars = %s", RatingLow.Stars())
	}
	if Rating("bogus").Stars() != "☆☆☆☆☆" {
		t.Fatal("unknown rating should render empty stars")
	}
}
