package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"solarfx/pkg/model"
)

const twelveDataBaseURL = "https://api.twelvedata.com"

// twelveDataIntervals maps screener timeframes to Twelve Data intervals
var twelveDataIntervals = map[string]string{
	Timeframe5m:  "5min",
	Timeframe15m: "15min",
	Timeframe4h:  "4h",
	Timeframe1d:  "1day",
	Timeframe1w:  "1week",
}

// TwelveDataProvider implements the Provider interface for the Twelve Data
// time-series API (requires an API key)
type TwelveDataProvider struct {
	apiKey    string
	baseURL   string
	client    *retryClient
	rateLimit int
	logger    zerolog.Logger
}

// NewTwelveDataProvider creates a new Twelve Data provider. perMinute is the
// plan's request quota (the free tier allows 8).
func NewTwelveDataProvider(apiKey string, perMinute int) *TwelveDataProvider {
	if perMinute <= 0 {
		perMinute = 8
	}
	rps := perMinute / 60
	if rps < 1 {
		rps = 1
	}
	return &TwelveDataProvider{
		apiKey:  apiKey,
		baseURL: twelveDataBaseURL,
		client: &retryClient{
			httpClient: &http.Client{Timeout: 30 * time.Second},
			limiter:    newPerMinuteLimiter(perMinute),
			maxElapsed: 30 * time.Second,
		},
		rateLimit: perMinute,
		logger:    log.With().Str("component", "twelvedata_client").Logger(),
	}
}

// Name returns the provider name
func (p *TwelveDataProvider) Name() string {
	return "twelvedata"
}

// IsAvailable reports whether an API key is configured
func (p *TwelveDataProvider) IsAvailable() bool {
	return p.apiKey != ""
}

// RateLimit returns the rate limit per minute
func (p *TwelveDataProvider) RateLimit() int {
	return p.rateLimit
}

// twelveDataResponse represents the time_series API response. Prices come
// back as strings.
type twelveDataResponse struct {
	Values []struct {
		Datetime string `json:"datetime"`
		Open     string `json:"open"`
		High     string `json:"high"`
		Low      string `json:"low"`
		Close    string `json:"close"`
		Volume   string `json:"volume"`
	} `json:"values"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// GetCandles fetches candles for a pair on the given timeframe
func (p *TwelveDataProvider) GetCandles(ctx context.Context, pair model.Pair, timeframe string, bars int) ([]model.Candle, error) {
	interval, ok := twelveDataIntervals[timeframe]
	if !ok {
		return nil, &ProviderError{Provider: p.Name(), Err: fmt.Errorf("unsupported timeframe %q", timeframe), Retryable: false}
	}

	symbol := pair.SymbolFor(p.Name())
	url := fmt.Sprintf("%s/time_series?symbol=%s&interval=%s&outputsize=%d&apikey=%s",
		p.baseURL, symbol, interval, bars, p.apiKey)

	p.logger.Debug().Str("symbol", symbol).Str("interval", interval).Msg("Fetching candles")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := p.client.Do(ctx, req)
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Err: err, Retryable: true}
	}
	defer resp.Body.Close()

	var data twelveDataResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	if data.Status == "error" {
		p.logger.Error().Str("message", data.Message).Msg("Twelve Data API error")
		return nil, &ProviderError{Provider: p.Name(), Err: fmt.Errorf("API error: %s", data.Message), Retryable: false}
	}

	if len(data.Values) == 0 {
		return nil, &ProviderError{Provider: p.Name(), Err: fmt.Errorf("no data available"), Retryable: false}
	}

	candles := make([]model.Candle, 0, len(data.Values))
	for _, v := range data.Values {
		ts, err := parseTwelveDataTime(v.Datetime)
		if err != nil {
			p.logger.Warn().Str("datetime", v.Datetime).Msg("Skipping candle with bad timestamp")
			continue
		}

		open, err1 := strconv.ParseFloat(v.Open, 64)
		high, err2 := strconv.ParseFloat(v.High, 64)
		low, err3 := strconv.ParseFloat(v.Low, 64)
		closePx, err4 := strconv.ParseFloat(v.Close, 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}

		// Volume is absent for FX symbols
		volume, _ := strconv.ParseFloat(v.Volume, 64)

		candles = append(candles, model.Candle{
			Time:   ts,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePx,
			Volume: volume,
		})
	}

	// Values come back newest first
	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Time.Before(candles[j].Time)
	})

	if len(candles) > bars {
		candles = candles[len(candles)-bars:]
	}

	return candles, nil
}

// parseTwelveDataTime handles both intraday and daily datetime formats
func parseTwelveDataTime(s string) (time.Time, error) {
	if ts, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02", s)
}
