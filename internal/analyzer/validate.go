package analyzer

import (
	"fmt"
	"math"

	"solarfx/pkg/model"
)

// ValidationError reports a malformed candle series. Well-formedness is the
// data source's responsibility, but a broken series must fail loudly here
// rather than produce a silently wrong regime.
type ValidationError struct {
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid candle series at index %d: %s", e.Index, e.Reason)
}

// ValidateSeries checks that candles are chronologically ordered with unique
// timestamps and that prices are finite and non-negative.
func ValidateSeries(candles []model.Candle) error {
	for i, c := range candles {
		for _, v := range []float64{c.Open, c.High, c.Low, c.Close} {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return &ValidationError{Index: i, Reason: "non-finite or negative price"}
			}
		}
		if c.Volume < 0 || math.IsNaN(c.Volume) {
			return &ValidationError{Index: i, Reason: "negative volume"}
		}
		if i > 0 && !candles[i-1].Time.Before(c.Time) {
			return &ValidationError{Index: i, Reason: "non-increasing timestamp"}
		}
	}
	return nil
}
