package provider

import (
	"context"

	"solarfx/pkg/model"
)

// Timeframe names understood by all providers
const (
	Timeframe5m  = "5m"
	Timeframe15m = "15m"
	Timeframe4h  = "4h"
	Timeframe1d  = "1d"
	Timeframe1w  = "1wk"
)

// Timeframes lists the supported timeframe names in ascending order
var Timeframes = []string{Timeframe5m, Timeframe15m, Timeframe4h, Timeframe1d, Timeframe1w}

// KnownTimeframe reports whether name is a supported timeframe
func KnownTimeframe(name string) bool {
	for _, tf := range Timeframes {
		if tf == name {
			return true
		}
	}
	return false
}

// Provider defines the interface for historical candle data sources
type Provider interface {
	// Name returns the provider name
	Name() string

	// GetCandles fetches up to bars candles for a pair on the given
	// timeframe, ordered oldest first. Each provider resolves the pair to
	// its own ticker format.
	GetCandles(ctx context.Context, pair model.Pair, timeframe string, bars int) ([]model.Candle, error)

	// IsAvailable checks if the provider is usable (has valid API key)
	IsAvailable() bool

	// RateLimit returns the rate limit per minute
	RateLimit() int
}

// ProviderError represents a provider-specific error
type ProviderError struct {
	Provider  string
	Err       error
	Retryable bool
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// FallbackProvider tries multiple providers in order
type FallbackProvider struct {
	providers []Provider
}

// NewFallbackProvider creates a new fallback provider from the available
// subset of the given providers
func NewFallbackProvider(providers ...Provider) *FallbackProvider {
	available := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if p.IsAvailable() {
			available = append(available, p)
		}
	}
	return &FallbackProvider{providers: available}
}

// Name returns the combined provider name
func (f *FallbackProvider) Name() string {
	return "fallback"
}

// GetCandles tries each provider in order until one succeeds
func (f *FallbackProvider) GetCandles(ctx context.Context, pair model.Pair, timeframe string, bars int) ([]model.Candle, error) {
	var lastErr error
	for _, p := range f.providers {
		candles, err := p.GetCandles(ctx, pair, timeframe, bars)
		if err == nil {
			return candles, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

// IsAvailable returns true if any provider is available
func (f *FallbackProvider) IsAvailable() bool {
	return len(f.providers) > 0
}

// RateLimit returns the highest rate limit among providers
func (f *FallbackProvider) RateLimit() int {
	maxRate := 0
	for _, p := range f.providers {
		if p.RateLimit() > maxRate {
			maxRate = p.RateLimit()
		}
	}
	return maxRate
}

// Providers returns the list of underlying providers
func (f *FallbackProvider) Providers() []Provider {
	return f.providers
}
