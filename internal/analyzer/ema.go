package analyzer

import "solarfx/pkg/model"

// EMA computes an exponential moving average over closes with the given span,
// using smoothing factor 2/(span+1). The first close seeds the recursion
// directly; no warm-up adjustment is applied. The result has the same length
// as the input, and an empty input yields an empty result.
func EMA(closes []float64, span int) []float64 {
	if len(closes) == 0 || span <= 0 {
		return nil
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out := make([]float64, len(closes))
	out[0] = closes[0]
	for i := 1; i < len(closes); i++ {
		out[i] = closes[i]*alpha + out[i-1]*(1-alpha)
	}
	return out
}

// Closes extracts the closing prices of a candle sequence
func Closes(candles []model.Candle) []float64 {
	if len(candles) == 0 {
		return nil
	}
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}
