package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"solarfx/internal/analyzer"
	"solarfx/internal/config"
	"solarfx/internal/provider"
	"solarfx/internal/ranking"
	"solarfx/internal/scanner"
	"solarfx/internal/symbols"
	"solarfx/internal/web"
	"solarfx/pkg/model"
)

var (
	cfgFile        string
	pairList       string
	category       string
	timeframeList  string
	sortBy         []string
	changeTF       string
	changeLookback int
	workers        int
	format         string
	verbose        bool
)

func main() {
	// .env is optional; real deployments set TWELVEDATA_API_KEY directly
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "solarfx",
		Short: "Multi-timeframe FX regime screener",
		Long: `SolarFX screens FX pairs, indices, metals and crypto across multiple
timeframes (5m, 15m, 4h, 1D, 1W), classifying each series into an
accumulation/distribution regime and aggregating the result into a
directional signal.

Examples:
  solarfx --pairs EUR/USD,GBP/USD,XAUUSD
  solarfx --category major --sort fully-bullish --sort largest-mover
  solarfx serve --config config.yaml`,
		RunE: runScan,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "show debug output")

	rootCmd.Flags().StringVar(&pairList, "pairs", "", "comma-separated pair names (default: whole universe)")
	rootCmd.Flags().StringVar(&category, "category", "", "scan one category: major, minor, index, metal, crypto")
	rootCmd.Flags().StringVar(&timeframeList, "timeframes", "", "comma-separated timeframes (default from config)")
	rootCmd.Flags().StringArrayVar(&sortBy, "sort", nil, "sort criteria: largest-mover, fully-bullish, fully-bearish (repeatable)")
	rootCmd.Flags().StringVar(&changeTF, "change-tf", "", "timeframe for the % change metric")
	rootCmd.Flags().IntVar(&changeLookback, "change-lookback", 0, "candles back for the % change metric")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "number of parallel workers")
	rootCmd.Flags().StringVar(&format, "format", "table", "output format: table, json")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the JSON API server",
		RunE:  runServe,
	}
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Log.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, tf := range cfg.Screener.Timeframes {
		if !provider.KnownTimeframe(tf) {
			return nil, fmt.Errorf("unknown timeframe %q in config", tf)
		}
	}
	return cfg, nil
}

func createProvider(cfg *config.Config) (provider.Provider, error) {
	var providers []provider.Provider

	// Twelve Data first when keyed (cleaner FX data), Yahoo as keyless
	// fallback
	if cfg.API.TwelveData.Key != "" {
		providers = append(providers, provider.NewTwelveDataProvider(cfg.API.TwelveData.Key, cfg.API.TwelveData.RateLimit))
	}
	providers = append(providers, provider.NewYahooProvider())

	fallback := provider.NewFallbackProvider(providers...)
	if !fallback.IsAvailable() {
		return nil, fmt.Errorf("no available data providers")
	}
	return fallback, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	if workers > 0 {
		cfg.Scanner.Workers = workers
	}
	if timeframeList != "" {
		var tfs []string
		for _, raw := range strings.Split(timeframeList, ",") {
			tf := strings.TrimSpace(raw)
			if tf == "" {
				continue
			}
			if !provider.KnownTimeframe(tf) {
				return fmt.Errorf("unknown timeframe %q", tf)
			}
			tfs = append(tfs, tf)
		}
		if len(tfs) == 0 {
			return fmt.Errorf("empty timeframe list")
		}
		cfg.Screener.Timeframes = tfs
	}
	if cmd.Flags().Changed("change-tf") || cmd.Flags().Changed("change-lookback") {
		tf := changeTF
		if tf == "" {
			tf = "1d"
		}
		lookback := changeLookback
		if lookback <= 0 {
			lookback = 30
		}
		if !provider.KnownTimeframe(tf) {
			return fmt.Errorf("unknown timeframe %q", tf)
		}
		cfg.Screener.Changes = []config.ChangeConfig{{Timeframe: tf, Lookback: lookback}}
	}
	if len(sortBy) > 0 {
		cfg.Screener.SortBy = sortBy
	}

	var criteria []ranking.Criterion
	for _, name := range cfg.Screener.SortBy {
		c, ok := ranking.ParseCriterion(name)
		if !ok {
			return fmt.Errorf("unknown sort criterion %q", name)
		}
		criteria = append(criteria, c)
	}

	// Resolve the pair selection
	var pairs []model.Pair
	switch {
	case pairList != "":
		pairs, err = symbols.Select(pairList)
		if err != nil {
			return err
		}
	case category != "":
		pairs = symbols.ByCategory(category)
		if len(pairs) == 0 {
			return fmt.Errorf("unknown category %q", category)
		}
	default:
		pairs = symbols.All()
	}

	dataProvider, err := createProvider(cfg)
	if err != nil {
		return err
	}
	cached := provider.NewCachingProvider(dataProvider, cfg.Screener.HistoryBars)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted. Stopping scan...")
		cancel()
	}()

	screenerCfg := analyzer.ScreenerConfig{
		Timeframes:         cfg.Screener.Timeframes,
		SentimentTimeframe: cfg.Screener.SentimentTimeframe,
		MaxDiff:            cfg.Screener.MaxDiff,
		HistoryBars:        cfg.Screener.HistoryBars,
	}
	for _, cc := range cfg.Screener.Changes {
		screenerCfg.Changes = append(screenerCfg.Changes, analyzer.ChangeConfig{
			Timeframe: cc.Timeframe,
			Lookback:  cc.Lookback,
		})
	}

	s := scanner.NewScanner(cached, screenerCfg, cfg.Scanner.Workers, cfg.Scanner.Timeout)

	fmt.Printf("Scanning %d pairs across %s...\n\n", len(pairs), strings.Join(cfg.Screener.Timeframes, ", "))

	bar := progressbar.NewOptions(len(pairs),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Scanning"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]█[reset]",
			SaucerHead:    "[green]█[reset]",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	s.SetProgressCallback(func(scanned, total int) {
		bar.Set(scanned)
	})

	result, err := s.Scan(ctx, pairs)
	if err != nil {
		return fmt.Errorf("scanning: %w", err)
	}

	bar.Finish()
	fmt.Println()

	ranking.Sort(result.Results, ranking.NewCriteria(criteria))

	if format == "json" {
		return outputJSON(result)
	}
	return outputTable(result, cfg.Screener.Timeframes)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	dataProvider, err := createProvider(cfg)
	if err != nil {
		return err
	}

	srv := web.NewServer(cfg, dataProvider)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info().Msg("Shutting down")
		srv.Shutdown(context.Background())
	}()

	return srv.Start()
}

func outputJSON(result *model.ScanResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputTable(result *model.ScanResult, timeframes []string) error {
	if len(result.Results) == 0 {
		fmt.Println("No pairs analyzed.")
		fmt.Printf("Scanned %d pairs in %s\n", result.TotalScanned, result.ScanTime.Round(time.Millisecond))
		return nil
	}

	// Summary counts
	perfectLongs, perfectShorts, watchList, mixed := 0, 0, 0, 0
	for _, r := range result.Results {
		n := r.TimeframeCount()
		switch {
		case r.Strength == n:
			perfectLongs++
		case r.Strength == -n:
			perfectShorts++
		case abs(r.Strength) == n-1:
			watchList++
		default:
			mixed++
		}
	}
	fmt.Printf("Perfect longs: %d | Perfect shorts: %d | Watch list: %d | Mixed: %d\n\n",
		perfectLongs, perfectShorts, watchList, mixed)

	header := []string{"Pair", "Signal"}
	header = append(header, timeframes...)
	header = append(header, "Align", "Sentiment")
	for _, c := range result.Results[0].Changes {
		header = append(header, fmt.Sprintf("Δ%% (%s, %dc)", c.Timeframe, c.Lookback))
	}

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader(header),
	)

	for _, r := range result.Results {
		row := []string{r.Pair.Name, formatSignal(&r)}
		for _, tf := range timeframes {
			row = append(row, r.Regimes[tf].Short())
		}
		row = append(row, r.AlignmentString(), formatSentiment(r.Sentiment))
		for _, c := range r.Changes {
			row = append(row, formatChange(c))
		}
		table.Append(row)
	}

	table.Render()

	// Trade ideas: perfect alignment first, watch list otherwise
	printRecommendations(result.Results)

	fmt.Printf("\nScanned %d pairs in %s\n", result.TotalScanned, result.ScanTime.Round(time.Second))
	return nil
}

func printRecommendations(results []model.PairAnalysis) {
	var perfect, watch []model.PairAnalysis
	for _, r := range results {
		n := r.TimeframeCount()
		switch abs(r.Strength) {
		case n:
			perfect = append(perfect, r)
		case n - 1:
			watch = append(watch, r)
		}
	}

	if len(perfect) > 0 {
		fmt.Println("\n--- Perfect Setups (all timeframes aligned) ---")
		for _, r := range perfect {
			if r.Strength > 0 {
				fmt.Printf("  %s  %s — look for LONG entries on pullbacks\n", r.Pair.Name, formatSignal(&r))
			} else {
				fmt.Printf("  %s  %s — look for SHORT entries on rallies\n", r.Pair.Name, formatSignal(&r))
			}
		}
		return
	}

	fmt.Println("\nNo perfect alignment setups at the moment.")
	if len(watch) > 0 {
		fmt.Println("Watch list (one timeframe away):")
		for _, r := range watch {
			fmt.Printf("  %s  %s\n", r.Pair.Name, formatSignal(&r))
		}
	}
}

func formatSignal(r *model.PairAnalysis) string {
	n := r.TimeframeCount()
	switch r.Signal {
	case model.SignalLong:
		return fmt.Sprintf("LONG (%d/%d)", n, n)
	case model.SignalPartialLong:
		return fmt.Sprintf("Long (%d/%d)", n-1, n)
	case model.SignalShort:
		return fmt.Sprintf("SHORT (%d/%d)", n, n)
	case model.SignalPartialShort:
		return fmt.Sprintf("Short (%d/%d)", n-1, n)
	default:
		return "Mixed"
	}
}

func formatSentiment(s *model.SentimentScore) string {
	if s == nil {
		return "-"
	}
	return fmt.Sprintf("%d%% %s", s.Score, s.Label)
}

func formatChange(c model.ChangeMetric) string {
	if !c.Valid {
		return "-"
	}
	if c.Pct > 0 {
		return fmt.Sprintf("+%.2f%%", c.Pct)
	}
	return fmt.Sprintf("%.2f%%", c.Pct)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
