package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"solarfx/internal/analyzer"
	"solarfx/internal/provider"
	"solarfx/internal/ranking"
	"solarfx/internal/scanner"
	"solarfx/internal/symbols"
	"solarfx/pkg/model"
)

var validate = validator.New()

// scanRequest is the POST /api/scan payload. Pairs are universe names or
// custom tickers; SortBy selects zero or more ranking criteria.
type scanRequest struct {
	Pairs  []string `json:"pairs" validate:"min=1,max=100,dive,required"`
	SortBy []string `json:"sort_by" validate:"max=3"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// handlePairs returns the built-in pair universe
func (s *Server) handlePairs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"pairs":      symbols.All(),
		"categories": symbols.Categories(),
	})
}

// handleScan runs a scan over the requested pairs and returns the ranked
// batch
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var criteria []ranking.Criterion
	for _, name := range req.SortBy {
		c, ok := ranking.ParseCriterion(name)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown sort criterion: "+name)
			return
		}
		criteria = append(criteria, c)
	}

	pairs := make([]model.Pair, 0, len(req.Pairs))
	for _, name := range req.Pairs {
		if p, ok := symbols.Lookup(name); ok {
			pairs = append(pairs, p)
			continue
		}
		pairs = append(pairs, model.Pair{Name: name, Category: "custom"})
	}

	screenerCfg := analyzer.ScreenerConfig{
		Timeframes:         s.config.Screener.Timeframes,
		SentimentTimeframe: s.config.Screener.SentimentTimeframe,
		MaxDiff:            s.config.Screener.MaxDiff,
		HistoryBars:        s.config.Screener.HistoryBars,
	}
	for _, cc := range s.config.Screener.Changes {
		screenerCfg.Changes = append(screenerCfg.Changes, analyzer.ChangeConfig{
			Timeframe: cc.Timeframe,
			Lookback:  cc.Lookback,
		})
	}

	// Fresh cache per request: the aggregator and change calculator share
	// series fetches within one scan, nothing survives across scans
	cached := provider.NewCachingProvider(s.provider, s.config.Screener.HistoryBars)
	sc := scanner.NewScanner(cached, screenerCfg, s.config.Scanner.Workers, s.config.Scanner.Timeout)
	result, err := sc.Scan(r.Context(), pairs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	ranking.Sort(result.Results, ranking.NewCriteria(criteria))
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
