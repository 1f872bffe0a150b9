package analyzer

import (
	"testing"
)

func TestChangeRequiresLookbackPlusOne(t *testing.T) {
	// 30 bars cannot support a 30-candle lookback, 31 can
	if got := Change(rising(30), "1d", 30); got.Valid {
		t.Errorf("Expected unavailable change for 30 bars, got %+v", got)
	}
	if got := Change(rising(31), "1d", 30); !got.Valid {
		t.Errorf("Expected valid change for 31 bars, got %+v", got)
	}
}

func TestChangeValue(t *testing.T) {
	// 100 -> 130 over 30 candles: +30%
	got := Change(rising(31), "1d", 30)
	if !got.Valid {
		t.Fatalf("Expected valid metric, got %+v", got)
	}
	if got.Pct != 30.0 {
		t.Errorf("Expected +30.00, got %v", got.Pct)
	}
	if got.Timeframe != "1d" || got.Lookback != 30 {
		t.Errorf("Metric lost its parameters: %+v", got)
	}
}

func TestChangeNegative(t *testing.T) {
	got := Change(falling(11), "4h", 10)
	if !got.Valid {
		t.Fatalf("Expected valid metric, got %+v", got)
	}
	// 200 -> 190 over 10 candles: -5%
	if got.Pct != -5.0 {
		t.Errorf("Expected -5.00, got %v", got.Pct)
	}
}

func TestChangeRounding(t *testing.T) {
	// 90 -> 91: +1.1111...% rounds to 1.11
	candles := series(90, 91)
	got := Change(candles, "1d", 1)
	if !got.Valid {
		t.Fatalf("Expected valid metric, got %+v", got)
	}
	if got.Pct != 1.11 {
		t.Errorf("Expected 1.11, got %v", got.Pct)
	}
}

func TestChangeDegenerateInputs(t *testing.T) {
	if got := Change(rising(31), "1d", 0); got.Valid {
		t.Errorf("Zero lookback must be unavailable, got %+v", got)
	}
	if got := Change(rising(31), "1d", -5); got.Valid {
		t.Errorf("Negative lookback must be unavailable, got %+v", got)
	}
	if got := Change(nil, "1d", 30); got.Valid {
		t.Errorf("Empty series must be unavailable, got %+v", got)
	}
	if got := Change(series(0, 100), "1d", 1); got.Valid {
		t.Errorf("Zero reference close must be unavailable, got %+v", got)
	}
}
