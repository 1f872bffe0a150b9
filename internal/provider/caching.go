package provider

import (
	"context"
	"sync"

	"solarfx/pkg/model"
)

// CachingProvider wraps a Provider with an in-memory per-scan cache keyed by
// (pair, timeframe). The aggregator, sentiment scorer and change calculator
// all read the same series for a pair; caching collapses those into one fetch.
type CachingProvider struct {
	inner   Provider
	cache   map[cacheKey][]model.Candle
	mu      sync.Mutex
	maxBars int
}

type cacheKey struct {
	pair      string
	timeframe string
}

// NewCachingProvider creates a caching wrapper. maxBars is the number of
// candles to fetch on a cache miss regardless of the requested count, so one
// fetch satisfies every consumer in the scan.
func NewCachingProvider(inner Provider, maxBars int) *CachingProvider {
	return &CachingProvider{
		inner:   inner,
		cache:   make(map[cacheKey][]model.Candle),
		maxBars: maxBars,
	}
}

func (p *CachingProvider) Name() string      { return p.inner.Name() }
func (p *CachingProvider) IsAvailable() bool { return p.inner.IsAvailable() }
func (p *CachingProvider) RateLimit() int    { return p.inner.RateLimit() }

// GetCandles returns cached candles when present, fetching otherwise
func (p *CachingProvider) GetCandles(ctx context.Context, pair model.Pair, timeframe string, bars int) ([]model.Candle, error) {
	key := cacheKey{pair: pair.Name, timeframe: timeframe}

	p.mu.Lock()
	if cached, ok := p.cache[key]; ok {
		p.mu.Unlock()
		if len(cached) >= bars {
			return cached[len(cached)-bars:], nil
		}
		return cached, nil
	}
	p.mu.Unlock()

	fetchBars := p.maxBars
	if bars > fetchBars {
		fetchBars = bars
	}

	candles, err := p.inner.GetCandles(ctx, pair, timeframe, fetchBars)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.cache[key] = candles
	p.mu.Unlock()

	if len(candles) > bars {
		return candles[len(candles)-bars:], nil
	}
	return candles, nil
}
