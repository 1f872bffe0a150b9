package analyzer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"solarfx/internal/provider"
	"solarfx/pkg/model"
)

// ChangeConfig selects one candle-change analysis: percentage change over
// Lookback candles on Timeframe.
type ChangeConfig struct {
	Timeframe string
	Lookback  int
}

// ScreenerConfig holds the analysis parameters for one scan
type ScreenerConfig struct {
	Timeframes         []string // ordered, e.g. 5m, 15m, 4h, 1d, 1wk
	SentimentTimeframe string   // series used for the sentiment score
	MaxDiff            float64  // EMA divergence saturating the sentiment distance
	HistoryBars        int      // candles requested per timeframe
	Changes            []ChangeConfig
}

// DefaultScreenerConfig mirrors the classic five-timeframe setup
func DefaultScreenerConfig() ScreenerConfig {
	return ScreenerConfig{
		Timeframes:         []string{"5m", "15m", "4h", "1d", "1wk"},
		SentimentTimeframe: "1d",
		MaxDiff:            DefaultMaxDiff,
		HistoryBars:        260,
		Changes:            []ChangeConfig{{Timeframe: "1d", Lookback: 30}},
	}
}

// PairAnalyzer classifies one pair across all configured timeframes and
// assembles the aggregate record. Each timeframe's classifier starts fresh;
// no state crosses timeframe boundaries.
type PairAnalyzer struct {
	config    ScreenerConfig
	provider  provider.Provider
	sentiment *SentimentScorer
	logger    zerolog.Logger
}

// NewPairAnalyzer creates a new pair analyzer
func NewPairAnalyzer(cfg ScreenerConfig, p provider.Provider) *PairAnalyzer {
	if cfg.HistoryBars < minClassifyBars {
		cfg.HistoryBars = 260
	}
	return &PairAnalyzer{
		config:    cfg,
		provider:  p,
		sentiment: NewSentimentScorer(cfg.MaxDiff),
		logger:    log.With().Str("component", "pair_analyzer").Logger(),
	}
}

// AnalyzePair analyzes a single pair across all configured timeframes.
// Missing or short data is a silent, recoverable outcome (undetermined
// regimes, unavailable metrics); only a malformed series is an error.
func (a *PairAnalyzer) AnalyzePair(ctx context.Context, pair model.Pair) (*model.PairAnalysis, error) {
	result := &model.PairAnalysis{
		Pair:       pair,
		Timeframes: append([]string(nil), a.config.Timeframes...),
		Regimes:    make(map[string]model.Regime, len(a.config.Timeframes)),
	}

	for _, tf := range a.config.Timeframes {
		candles, err := a.fetch(ctx, pair, tf)
		if err != nil {
			return nil, err
		}
		result.Regimes[tf] = Classify(candles)
	}

	bull, bear := 0, 0
	for _, tf := range a.config.Timeframes {
		switch {
		case result.Regimes[tf].Bullish():
			bull++
		case result.Regimes[tf].Bearish():
			bear++
		}
	}
	result.Signal, result.Strength = deriveSignal(bull, bear, len(a.config.Timeframes))
	result.Alignment = bull
	if bear > bull {
		result.Alignment = bear
	}

	if a.config.SentimentTimeframe != "" {
		candles, err := a.fetch(ctx, pair, a.config.SentimentTimeframe)
		if err != nil {
			return nil, err
		}
		result.Sentiment = a.sentiment.Score(candles)
	}

	for _, cc := range a.config.Changes {
		candles, err := a.fetch(ctx, pair, cc.Timeframe)
		if err != nil {
			return nil, err
		}
		result.Changes = append(result.Changes, Change(candles, cc.Timeframe, cc.Lookback))
	}

	return result, nil
}

// fetch retrieves and validates one series. Provider failures degrade to an
// empty series so the pair still produces a (undetermined) record; a
// malformed series fails fast.
func (a *PairAnalyzer) fetch(ctx context.Context, pair model.Pair, timeframe string) ([]model.Candle, error) {
	candles, err := a.provider.GetCandles(ctx, pair, timeframe, a.config.HistoryBars)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		a.logger.Debug().Err(err).
			Str("pair", pair.Name).
			Str("timeframe", timeframe).
			Msg("no data for timeframe")
		return nil, nil
	}
	if err := ValidateSeries(candles); err != nil {
		return nil, fmt.Errorf("%s %s: %w", pair.Name, timeframe, err)
	}
	return candles, nil
}

// deriveSignal applies the two fixed agreement cut points: full alignment and
// alignment minus one. Anything below is mixed with zero strength.
func deriveSignal(bull, bear, n int) (model.Signal, int) {
	switch {
	case n > 0 && bull == n:
		return model.SignalLong, n
	case n > 0 && bear == n:
		return model.SignalShort, -n
	case n >= 2 && bull == n-1:
		return model.SignalPartialLong, n - 1
	case n >= 2 && bear == n-1:
		return model.SignalPartialShort, -(n - 1)
	default:
		return model.SignalMixed, 0
	}
}
