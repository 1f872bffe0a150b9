package analyzer

import (
	"math"

	"solarfx/pkg/model"
)

// DefaultMaxDiff maps a ±10% EMA20/EMA50 divergence onto the full distance
// score range.
const DefaultMaxDiff = 10.0

// SentimentScorer computes a 0-100 bullishness score from the last bar of a
// series. Unlike the regime classifier it is not path-dependent.
type SentimentScorer struct {
	maxDiff float64
}

// NewSentimentScorer creates a scorer. maxDiff is the EMA divergence (in
// percent) that saturates the distance component; zero or negative falls back
// to DefaultMaxDiff.
func NewSentimentScorer(maxDiff float64) *SentimentScorer {
	if maxDiff <= 0 {
		maxDiff = DefaultMaxDiff
	}
	return &SentimentScorer{maxDiff: maxDiff}
}

// Score computes the sentiment for a candle sequence, or nil if the series
// has fewer than 50 bars.
func (s *SentimentScorer) Score(candles []model.Candle) *model.SentimentScore {
	if len(candles) < minClassifyBars {
		return nil
	}

	closes := Closes(candles)
	ema20 := EMA(closes, 20)
	ema50 := EMA(closes, 50)

	last := len(closes) - 1
	return s.scoreLast(closes[last], ema20[last], ema50[last])
}

// scoreLast combines the trend and distance components for the final bar.
// The third trend award is 33.34 so that all three together reach exactly
// 100.00; keep the literal constants.
func (s *SentimentScorer) scoreLast(close, ema20, ema50 float64) *model.SentimentScore {
	var trend float64
	if close > ema20 {
		trend += 33.33
	}
	if close > ema50 {
		trend += 33.33
	}
	if ema20 > ema50 {
		trend += 33.34
	}

	// Distance component: EMA divergence mapped onto 0-100, centered at 50.
	// Clamped and rounded on its own before entering the composite.
	diff := (ema20 - ema50) / ema50 * 100
	distRaw := 50 + (diff/s.maxDiff)*50
	dist := math.Round(distRaw)
	if dist < 0 {
		dist = 0
	}
	if dist > 100 {
		dist = 100
	}

	composite := int(math.Round(trend*0.5 + dist*0.5))

	return &model.SentimentScore{
		Score: composite,
		Label: sentimentLabel(composite),
	}
}

// sentimentLabel maps a score onto its band. Boundaries are inclusive on the
// lower end of each band.
func sentimentLabel(score int) model.SentimentLabel {
	switch {
	case score >= 70:
		return model.SentimentStrongBull
	case score >= 55:
		return model.SentimentBullish
	case score >= 45:
		return model.SentimentNeutral
	case score >= 30:
		return model.SentimentBearish
	default:
		return model.SentimentStrongBear
	}
}
