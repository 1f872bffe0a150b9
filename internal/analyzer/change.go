package analyzer

import (
	"math"

	"solarfx/pkg/model"
)

// Change computes the percentage price change between the latest close and
// the close lookback candles earlier, rounded to two decimals. The metric is
// marked invalid when the series holds fewer than lookback+1 candles.
func Change(candles []model.Candle, timeframe string, lookback int) model.ChangeMetric {
	metric := model.ChangeMetric{Timeframe: timeframe, Lookback: lookback}
	if lookback <= 0 || len(candles) < lookback+1 {
		return metric
	}

	current := candles[len(candles)-1].Close
	past := candles[len(candles)-1-lookback].Close
	if past == 0 {
		return metric
	}

	metric.Pct = math.Round((current-past)/past*100*100) / 100
	metric.Valid = true
	return metric
}
