package model

import (
	"fmt"
	"time"
)

// Candle represents a single candlestick (OHLCV data)
type Candle struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Pair represents a tradable instrument (FX pair, index, metal, crypto).
// Symbols maps a provider name to that provider's ticker format; providers
// fall back to Name when no mapping exists.
type Pair struct {
	Name     string            `json:"name"`
	Category string            `json:"category"` // major, minor, index, metal, crypto
	Symbols  map[string]string `json:"symbols,omitempty"`
}

// SymbolFor returns the provider-specific ticker for this pair
func (p Pair) SymbolFor(provider string) string {
	if s, ok := p.Symbols[provider]; ok {
		return s
	}
	return p.Name
}

// Regime is the derived trend classification of a candle sequence.
// Accumulation/ReAccumulation are the bullish variants, Distribution/
// ReDistribution the bearish ones. Undetermined means the series was too
// short to classify.
type Regime string

const (
	RegimeAccumulation   Regime = "accumulation"
	RegimeReAccumulation Regime = "re-accumulation"
	RegimeDistribution   Regime = "distribution"
	RegimeReDistribution Regime = "re-distribution"
	RegimeUndetermined   Regime = "undetermined"
)

// Bullish reports whether the regime is a bullish variant
func (r Regime) Bullish() bool {
	return r == RegimeAccumulation || r == RegimeReAccumulation
}

// Bearish reports whether the regime is a bearish variant
func (r Regime) Bearish() bool {
	return r == RegimeDistribution || r == RegimeReDistribution
}

// Short returns the compact display code used in tables
func (r Regime) Short() string {
	switch r {
	case RegimeAccumulation:
		return "ACC"
	case RegimeReAccumulation:
		return "R-ACC"
	case RegimeDistribution:
		return "DIS"
	case RegimeReDistribution:
		return "R-DIS"
	default:
		return "-"
	}
}

// Signal is the discrete aggregate signal across timeframes
type Signal string

const (
	SignalLong         Signal = "long"         // all timeframes bullish
	SignalPartialLong  Signal = "partial-long" // all but one bullish
	SignalShort        Signal = "short"        // all timeframes bearish
	SignalPartialShort Signal = "partial-short"
	SignalMixed        Signal = "mixed"
)

// SentimentLabel categorizes a sentiment score
type SentimentLabel string

const (
	SentimentStrongBull SentimentLabel = "strong-bull"
	SentimentBullish    SentimentLabel = "bullish"
	SentimentNeutral    SentimentLabel = "neutral"
	SentimentBearish    SentimentLabel = "bearish"
	SentimentStrongBear SentimentLabel = "strong-bear"
)

// SentimentScore is a 0-100 bullishness score with its label
type SentimentScore struct {
	Score int            `json:"score"`
	Label SentimentLabel `json:"label"`
}

// ChangeMetric is the percentage price change over a configured number of
// trailing candles on a configured timeframe. Valid is false when the series
// was too short (fewer than Lookback+1 candles).
type ChangeMetric struct {
	Timeframe string  `json:"timeframe"`
	Lookback  int     `json:"lookback"`
	Pct       float64 `json:"pct"`
	Valid     bool    `json:"valid"`
}

// PairAnalysis is one pair's aggregate result: per-timeframe regimes, the
// derived signal, and supporting metrics. It is an immutable snapshot; a new
// scan produces an entirely new batch.
type PairAnalysis struct {
	Pair       Pair              `json:"pair"`
	Timeframes []string          `json:"timeframes"` // configured order
	Regimes    map[string]Regime `json:"regimes"`    // keyed by timeframe
	Signal     Signal            `json:"signal"`
	Strength   int               `json:"strength"`  // in {-N, -(N-1), 0, N-1, N}
	Alignment  int               `json:"alignment"` // max(bull, bear) out of N
	Sentiment  *SentimentScore   `json:"sentiment,omitempty"`
	Changes    []ChangeMetric    `json:"changes,omitempty"`
}

// TimeframeCount returns N, the configured number of timeframes
func (a *PairAnalysis) TimeframeCount() int {
	return len(a.Timeframes)
}

// AlignmentString formats alignment as "k/N"
func (a *PairAnalysis) AlignmentString() string {
	return fmt.Sprintf("%d/%d", a.Alignment, len(a.Timeframes))
}

// FullyBullish reports whether every configured timeframe is in the single
// state Accumulation. Stricter than a bullish signal: re-accumulation does
// not qualify.
func (a *PairAnalysis) FullyBullish() bool {
	if len(a.Timeframes) == 0 {
		return false
	}
	for _, tf := range a.Timeframes {
		if a.Regimes[tf] != RegimeAccumulation {
			return false
		}
	}
	return true
}

// FullyBearish reports whether every configured timeframe is in the single
// state Distribution. Re-distribution does not qualify.
func (a *PairAnalysis) FullyBearish() bool {
	if len(a.Timeframes) == 0 {
		return false
	}
	for _, tf := range a.Timeframes {
		if a.Regimes[tf] != RegimeDistribution {
			return false
		}
	}
	return true
}

// ScanResult represents the final scan output
type ScanResult struct {
	ScanID       string         `json:"scan_id"`
	TotalScanned int            `json:"total_scanned"`
	Results      []PairAnalysis `json:"results"`
	ScanTime     time.Duration  `json:"scan_time"`
}
