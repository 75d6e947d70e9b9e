package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"fashionetl/internal/config"
	"fashionetl/internal/crawler"
	"fashionetl/internal/db"
	"fashionetl/internal/etl"
	"fashionetl/internal/logger"
	"fashionetl/internal/observability"
	"fashionetl/internal/report"
	"fashionetl/internal/repository"
	"fashionetl/internal/sink"
	"fashionetl/internal/transform"
)

// go run ./cmd/etl
// go run ./cmd/etl --max-pages=3 --no-db --no-sheet
// go run ./cmd/etl --dry-run
// go run ./cmd/etl last
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type flags struct {
	baseURL   string
	maxPages  int
	csvPath   string
	sheetPath string
	noCSV     bool
	noDB      bool
	noSheet   bool
	dryRun    bool
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           "fashion-etl",
		Short:         "Scrape the fashion catalog, clean it and save it to CSV, Postgres and a spreadsheet",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			applyFlags(cmd, cfg, f)
			return runETL(cmd.Context(), cfg, f.dryRun)
		},
	}

	cmd.Flags().StringVar(&f.baseURL, "base-url", "", "catalog base URL (overrides BASE_URL)")
	cmd.Flags().IntVar(&f.maxPages, "max-pages", 0, "maximum pages to scrape (overrides MAX_PAGES)")
	cmd.Flags().StringVar(&f.csvPath, "csv", "", "CSV output path (overrides CSV_PATH)")
	cmd.Flags().StringVar(&f.sheetPath, "sheet", "", "spreadsheet output path (overrides SHEET_PATH)")
	cmd.Flags().BoolVar(&f.noCSV, "no-csv", false, "skip the CSV sink")
	cmd.Flags().BoolVar(&f.noDB, "no-db", false, "skip the Postgres sink")
	cmd.Flags().BoolVar(&f.noSheet, "no-sheet", false, "skip the spreadsheet sink")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "stop after the transform")

	cmd.AddCommand(newLastCmd())
	return cmd
}

func applyFlags(cmd *cobra.Command, cfg *config.Config, f flags) {
	fl := cmd.Flags()
	if fl.Changed("base-url") {
		cfg.BaseURL = f.baseURL
	}
	if fl.Changed("max-pages") {
		cfg.MaxPages = f.maxPages
	}
	if fl.Changed("csv") {
		cfg.CSVPath = f.csvPath
	}
	if fl.Changed("sheet") {
		cfg.SheetPath = f.sheetPath
	}
	cfg.SaveCSV = cfg.SaveCSV && !f.noCSV
	cfg.SaveDB = cfg.SaveDB && !f.noDB
	cfg.SaveSheet = cfg.SaveSheet && !f.noSheet
}

func runETL(ctx context.Context, cfg *config.Config, dryRun bool) error {
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	if cfg.MetricsPort != "" {
		observability.Start(cfg.MetricsPort)
	}

	opts := transform.DefaultOptions()
	opts.Rate = cfg.ConversionRate

	runner := &etl.Runner{
		Extractor: &crawler.Scraper{
			BaseURL:   cfg.BaseURL,
			MaxPages:  cfg.MaxPages,
			Delay:     cfg.PageDelay,
			UserAgent: cfg.UserAgent,
			Log:       log,
		},
		Transformer: transform.New(opts, log),
		Loader:      &sink.Loader{Sinks: buildSinks(ctx, cfg, log, dryRun), Log: log},
		DryRun:      dryRun,
		Log:         log,
	}

	if cfg.RedisURL != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
		defer client.Close()
		runner.Reports = &report.Store{Client: client, TTL: cfg.ReportTTL}
	}

	rep, err := runner.Run(ctx)
	printSummary(rep)
	return err
}

func buildSinks(ctx context.Context, cfg *config.Config, log logger.Logger, dryRun bool) []sink.Sink {
	if dryRun {
		return nil
	}
	var sinks []sink.Sink
	if cfg.SaveCSV {
		sinks = append(sinks, &sink.CSVSink{Path: cfg.CSVPath})
	}
	if cfg.SaveDB {
		sinks = appendPostgres(ctx, sinks, cfg, log)
	}
	if cfg.SaveSheet {
		sinks = append(sinks, &sink.SheetSink{Path: cfg.SheetPath, Sheet: cfg.SheetName})
	}
	return sinks
}

// appendPostgres adds the database sink when it can connect. The sink is
// left out otherwise and reported as failed by the loader.
func appendPostgres(ctx context.Context, sinks []sink.Sink, cfg *config.Config, log logger.Logger) []sink.Sink {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set, skipping Postgres sink")
		return sinks
	}
	conn, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("Postgres unavailable, skipping sink", logger.Err(err))
		return sinks
	}
	return append(sinks, &sink.PostgresSink{
		Repo: &repository.ProductRepository{DB: conn, Table: cfg.DBTable},
	})
}

func printSummary(rep report.Report) {
	fmt.Println("=== ETL result ===")
	fmt.Printf("Run:         %s\n", rep.RunID)
	fmt.Printf("Extracted:   %d\n", rep.Extracted)
	fmt.Printf("Transformed: %d\n", rep.Transformed)
	names := make([]string, 0, len(rep.Sinks))
	for name := range rep.Sinks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		result := "failed"
		if rep.Sinks[name] {
			result = "ok"
		}
		fmt.Printf("%-12s %s\n", name+":", result)
	}
	if rep.Error != "" {
		fmt.Printf("Error:       %s\n", rep.Error)
	}
}

func newLastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "last",
		Short: "Print the report of the most recent run stored in Redis",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			if cfg.RedisURL == "" {
				return fmt.Errorf("REDIS_URL is not set")
			}
			client := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
			defer client.Close()

			rep, err := (&report.Store{Client: client}).Last(cmd.Context())
			if err != nil {
				return err
			}
			if rep == nil {
				fmt.Println("no runs recorded")
				return nil
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		},
	}
}
