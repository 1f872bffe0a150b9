package provider

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"solarfx/pkg/model"
)

type countingProvider struct {
	calls int64
	fail  bool
}

func (c *countingProvider) Name() string      { return "counting" }
func (c *countingProvider) IsAvailable() bool { return true }
func (c *countingProvider) RateLimit() int    { return 0 }

func (c *countingProvider) GetCandles(_ context.Context, _ model.Pair, _ string, bars int) ([]model.Candle, error) {
	atomic.AddInt64(&c.calls, 1)
	if c.fail {
		return nil, errors.New("upstream down")
	}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return hourly(start, make([]float64, bars)...), nil
}

func TestCachingProviderCollapsesFetches(t *testing.T) {
	inner := &countingProvider{}
	p := NewCachingProvider(inner, 100)
	pair := model.Pair{Name: "EUR/USD"}

	for i := 0; i < 5; i++ {
		if _, err := p.GetCandles(context.Background(), pair, "1d", 60); err != nil {
			t.Fatalf("GetCandles failed: %v", err)
		}
	}
	if got := atomic.LoadInt64(&inner.calls); got != 1 {
		t.Errorf("Expected 1 upstream fetch, got %d", got)
	}
}

func TestCachingProviderSeparateKeys(t *testing.T) {
	inner := &countingProvider{}
	p := NewCachingProvider(inner, 100)

	ctx := context.Background()
	p.GetCandles(ctx, model.Pair{Name: "EUR/USD"}, "1d", 60)
	p.GetCandles(ctx, model.Pair{Name: "EUR/USD"}, "4h", 60)
	p.GetCandles(ctx, model.Pair{Name: "GBP/USD"}, "1d", 60)

	if got := atomic.LoadInt64(&inner.calls); got != 3 {
		t.Errorf("Expected 3 upstream fetches for 3 distinct keys, got %d", got)
	}
}

func TestCachingProviderTrimsToRequest(t *testing.T) {
	p := NewCachingProvider(&countingProvider{}, 100)
	pair := model.Pair{Name: "EUR/USD"}

	got, err := p.GetCandles(context.Background(), pair, "1d", 30)
	if err != nil {
		t.Fatalf("GetCandles failed: %v", err)
	}
	if len(got) != 30 {
		t.Errorf("Expected 30 candles, got %d", len(got))
	}

	// Second request for more bars is served from the over-fetched cache
	got, err = p.GetCandles(context.Background(), pair, "1d", 80)
	if err != nil {
		t.Fatalf("GetCandles failed: %v", err)
	}
	if len(got) != 80 {
		t.Errorf("Expected 80 candles from cache, got %d", len(got))
	}
}

func TestCachingProviderDoesNotCacheErrors(t *testing.T) {
	inner := &countingProvider{fail: true}
	p := NewCachingProvider(inner, 100)
	pair := model.Pair{Name: "EUR/USD"}

	ctx := context.Background()
	if _, err := p.GetCandles(ctx, pair, "1d", 60); err == nil {
		t.Fatal("Expected an error")
	}
	inner.fail = false
	if _, err := p.GetCandles(ctx, pair, "1d", 60); err != nil {
		t.Fatalf("Recovery fetch failed: %v", err)
	}
	if got := atomic.LoadInt64(&inner.calls); got != 2 {
		t.Errorf("Expected a retry after the failed fetch, got %d calls", got)
	}
}
