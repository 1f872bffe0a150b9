package analyzer

import (
	"solarfx/pkg/model"
)

// minClassifyBars is the minimum series length for regime classification.
// Below this the EMA(50) baseline is meaningless and the regime is reported
// as undetermined.
const minClassifyBars = 50

// RegimeMachine is the four-state machine that tracks the market regime of
// one candle sequence. State persists across bars: the same final bar can map
// to different regimes depending on the path taken to reach it. Each sequence
// gets its own machine; state is never shared across timeframes or pairs.
type RegimeMachine struct {
	state model.Regime
}

// NewRegimeMachine creates a machine in its initial Accumulation state
func NewRegimeMachine() *RegimeMachine {
	return &RegimeMachine{state: model.RegimeAccumulation}
}

// State returns the current regime
func (m *RegimeMachine) State() model.Regime {
	return m.state
}

// Step advances the machine by one bar. The comparison operators differ
// between states on purpose (they mirror the charting indicator this logic
// came from) and must not be unified.
func (m *RegimeMachine) Step(close, ema10, ema20, ema50 float64) model.Regime {
	switch m.state {
	case model.RegimeAccumulation:
		if close <= ema10 {
			m.state = model.RegimeReAccumulation
		}
	case model.RegimeReAccumulation:
		if close < ema50 {
			m.state = model.RegimeDistribution
		} else if close > ema10 {
			m.state = model.RegimeAccumulation
		}
	case model.RegimeDistribution:
		if close >= ema20 {
			m.state = model.RegimeReDistribution
		}
	case model.RegimeReDistribution:
		if close > ema50 {
			m.state = model.RegimeAccumulation
		} else if close < ema20 {
			m.state = model.RegimeDistribution
		}
	}
	return m.state
}

// Classify replays the full candle sequence, oldest bar first, through a
// fresh machine and returns the terminal regime. Sequences shorter than 50
// bars yield RegimeUndetermined; there is no other failure mode.
func Classify(candles []model.Candle) model.Regime {
	if len(candles) < minClassifyBars {
		return model.RegimeUndetermined
	}

	closes := Closes(candles)
	ema10 := EMA(closes, 10)
	ema20 := EMA(closes, 20)
	ema50 := EMA(closes, 50)

	m := NewRegimeMachine()
	for i := range closes {
		m.Step(closes[i], ema10[i], ema20[i], ema50[i])
	}
	return m.State()
}
