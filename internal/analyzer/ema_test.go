package analyzer

import (
	"math"
	"testing"
)

func TestEMA(t *testing.T) {
	// span 3 => alpha 0.5, seeded by the first close
	closes := []float64{1, 2, 3}
	got := EMA(closes, 3)

	want := []float64{1, 1.5, 2.25}
	if len(got) != len(want) {
		t.Fatalf("Expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("ema[%d]: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestEMAEmptyInput(t *testing.T) {
	if got := EMA(nil, 10); len(got) != 0 {
		t.Errorf("Expected empty result for empty input, got %v", got)
	}
	if got := EMA([]float64{1, 2, 3}, 0); got != nil {
		t.Errorf("Expected nil for non-positive span, got %v", got)
	}
}

func TestEMASingleValue(t *testing.T) {
	got := EMA([]float64{42.5}, 10)
	if len(got) != 1 || got[0] != 42.5 {
		t.Errorf("Expected [42.5], got %v", got)
	}
}

func TestEMAIdempotent(t *testing.T) {
	closes := []float64{100, 101, 99, 102, 98, 103, 97}

	first := EMA(closes, 5)
	second := EMA(closes, 5)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Recomputation differs at %d: %f vs %f", i, first[i], second[i])
		}
	}
}

func TestEMASpanLongerThanSeries(t *testing.T) {
	closes := []float64{100, 110}
	got := EMA(closes, 50)

	if len(got) != 2 {
		t.Fatalf("Expected 2 values, got %d", len(got))
	}
	// alpha = 2/51
	want := 100 + (110-100)*2.0/51.0
	if math.Abs(got[1]-want) > 1e-12 {
		t.Errorf("Expected %f, got %f", want, got[1])
	}
}
