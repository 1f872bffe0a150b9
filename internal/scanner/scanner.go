package scanner

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"solarfx/internal/analyzer"
	"solarfx/internal/provider"
	"solarfx/pkg/model"
)

// ProgressCallback is called with progress updates
type ProgressCallback func(scanned, total int)

// Scanner analyzes a batch of pairs in parallel. Every (pair, timeframe)
// computation is independent, so pairs fan out across workers freely; a pair
// that fails is logged and skipped without aborting the batch.
type Scanner struct {
	provider     provider.Provider
	config       analyzer.ScreenerConfig
	workers      int
	timeout      time.Duration
	progressFunc ProgressCallback
	logger       zerolog.Logger
}

// NewScanner creates a new scanner
func NewScanner(p provider.Provider, cfg analyzer.ScreenerConfig, workers int, timeout time.Duration) *Scanner {
	if workers < 1 {
		workers = 1
	}
	return &Scanner{
		provider: p,
		config:   cfg,
		workers:  workers,
		timeout:  timeout,
		logger:   log.With().Str("component", "scanner").Logger(),
	}
}

// SetProgressCallback sets the progress callback function
func (s *Scanner) SetProgressCallback(fn ProgressCallback) {
	s.progressFunc = fn
}

// Scan analyzes all given pairs and returns the batch of results. Result
// order follows the input pair order so that ranking ties stay stable.
func (s *Scanner) Scan(ctx context.Context, pairs []model.Pair) (*model.ScanResult, error) {
	startTime := time.Now()
	scanID := uuid.NewString()

	if len(pairs) == 0 {
		return &model.ScanResult{
			ScanID:       scanID,
			TotalScanned: 0,
			Results:      []model.PairAnalysis{},
			ScanTime:     time.Since(startTime),
		}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type job struct {
		index int
		pair  model.Pair
	}

	jobChan := make(chan job, len(pairs))
	for i, p := range pairs {
		jobChan <- job{index: i, pair: p}
	}
	close(jobChan)

	// Indexed slots keep results in input order without extra sorting
	slots := make([]*model.PairAnalysis, len(pairs))
	var scannedCount int64

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pairAnalyzer := analyzer.NewPairAnalyzer(s.config, s.provider)

			for j := range jobChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				result, err := pairAnalyzer.AnalyzePair(ctx, j.pair)
				if err != nil {
					s.logger.Warn().Err(err).Str("pair", j.pair.Name).Msg("Skipping pair")
				} else {
					slots[j.index] = result
				}

				count := atomic.AddInt64(&scannedCount, 1)
				if s.progressFunc != nil {
					s.progressFunc(int(count), len(pairs))
				}
			}
		}()
	}
	wg.Wait()

	results := make([]model.PairAnalysis, 0, len(pairs))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}

	s.logger.Info().
		Str("scan_id", scanID).
		Int("pairs", len(pairs)).
		Int("results", len(results)).
		Dur("elapsed", time.Since(startTime)).
		Msg("Scan complete")

	return &model.ScanResult{
		ScanID:       scanID,
		TotalScanned: len(pairs),
		Results:      results,
		ScanTime:     time.Since(startTime),
	}, nil
}
