package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	API      APIConfig      `yaml:"api"`
	Screener ScreenerConfig `yaml:"screener"`
	Scanner  ScannerConfig  `yaml:"scanner"`
	Web      WebConfig      `yaml:"web"`
	Log      LogConfig      `yaml:"log"`
}

// APIConfig holds API provider configurations
type APIConfig struct {
	TwelveData ProviderConfig `yaml:"twelvedata"`
}

// ProviderConfig holds individual provider settings
type ProviderConfig struct {
	Key       string `yaml:"key"`
	RateLimit int    `yaml:"rate_limit" validate:"min=0"` // requests per minute
}

// ScreenerConfig holds analysis settings
type ScreenerConfig struct {
	Timeframes         []string       `yaml:"timeframes" validate:"min=1,dive,required"`
	SentimentTimeframe string         `yaml:"sentiment_timeframe"`
	MaxDiff            float64        `yaml:"max_diff" validate:"gt=0"`
	HistoryBars        int            `yaml:"history_bars" validate:"min=50"`
	Changes            []ChangeConfig `yaml:"changes" validate:"max=2,dive"`
	SortBy             []string       `yaml:"sort_by"`
}

// ChangeConfig selects one candle-change analysis
type ChangeConfig struct {
	Timeframe string `yaml:"timeframe" validate:"required"`
	Lookback  int    `yaml:"lookback" validate:"min=1,max=500"`
}

// ScannerConfig holds scanner settings
type ScannerConfig struct {
	Workers int           `yaml:"workers" validate:"min=1"`
	Timeout time.Duration `yaml:"timeout" validate:"min=1s"`
}

// WebConfig holds web server settings
type WebConfig struct {
	Port int `yaml:"port" validate:"min=1,max=65535"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" validate:"oneof=console json"`
}

// DefaultConfig returns the default configuration: the classic five
// timeframes, daily sentiment, one 30-candle daily change metric.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			TwelveData: ProviderConfig{
				Key:       os.Getenv("TWELVEDATA_API_KEY"),
				RateLimit: 8,
			},
		},
		Screener: ScreenerConfig{
			Timeframes:         []string{"5m", "15m", "4h", "1d", "1wk"},
			SentimentTimeframe: "1d",
			MaxDiff:            10.0,
			HistoryBars:        260,
			Changes: []ChangeConfig{
				{Timeframe: "1d", Lookback: 30},
			},
			SortBy: []string{"largest-mover"},
		},
		Scanner: ScannerConfig{
			Workers: 10,
			Timeout: 5 * time.Minute,
		},
		Web: WebConfig{
			Port: 8080,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults when
// the file does not exist
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Environment wins over file for credentials
	if key := os.Getenv("TWELVEDATA_API_KEY"); key != "" {
		cfg.API.TwelveData.Key = key
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Screener.SentimentTimeframe == "" {
		return fmt.Errorf("sentiment_timeframe is required")
	}
	return nil
}
