package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config must validate: %v", err)
	}
	if len(cfg.Screener.Timeframes) != 5 {
		t.Errorf("Expected 5 default timeframes, got %d", len(cfg.Screener.Timeframes))
	}
	if cfg.Screener.SentimentTimeframe != "1d" {
		t.Errorf("Expected daily sentiment, got %s", cfg.Screener.SentimentTimeframe)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Missing file should not error: %v", err)
	}
	if cfg.Web.Port != 8080 || cfg.Scanner.Workers != 10 {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
screener:
  timeframes: ["15m", "1d"]
  sentiment_timeframe: "1d"
  max_diff: 5
  history_bars: 120
scanner:
  workers: 3
  timeout: 2m
web:
  port: 9090
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Screener.Timeframes) != 2 {
		t.Errorf("Expected 2 timeframes, got %v", cfg.Screener.Timeframes)
	}
	if cfg.Screener.MaxDiff != 5 {
		t.Errorf("Expected max_diff 5, got %v", cfg.Screener.MaxDiff)
	}
	if cfg.Scanner.Workers != 3 || cfg.Scanner.Timeout != 2*time.Minute {
		t.Errorf("Scanner overrides not applied: %+v", cfg.Scanner)
	}
	if cfg.Web.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Web.Port)
	}
	// Untouched sections keep their defaults
	if cfg.Log.Level != "info" {
		t.Errorf("Expected default log level, got %s", cfg.Log.Level)
	}
}

func TestLoadEnvKeyWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "api:\n  twelvedata:\n    key: from-file\n    rate_limit: 8\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TWELVEDATA_API_KEY", "from-env")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.TwelveData.Key != "from-env" {
		t.Errorf("Expected env key to win, got %s", cfg.API.TwelveData.Key)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("scanner: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Malformed YAML must error")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no timeframes", func(c *Config) { c.Screener.Timeframes = nil }},
		{"zero max_diff", func(c *Config) { c.Screener.MaxDiff = 0 }},
		{"too few history bars", func(c *Config) { c.Screener.HistoryBars = 10 }},
		{"zero workers", func(c *Config) { c.Scanner.Workers = 0 }},
		{"bad port", func(c *Config) { c.Web.Port = 0 }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"missing sentiment timeframe", func(c *Config) { c.Screener.SentimentTimeframe = "" }},
		{"zero lookback", func(c *Config) { c.Screener.Changes[0].Lookback = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}
