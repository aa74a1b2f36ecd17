package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yukimura/cfp-tracker/internal/catalogue"
	"github.com/yukimura/cfp-tracker/internal/conference"
	"github.com/yukimura/cfp-tracker/internal/config"
	"github.com/yukimura/cfp-tracker/internal/logger"
	"github.com/yukimura/cfp-tracker/internal/wikicfp"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var flagVerbose bool

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cfp-tracker",
		Short: "Track conference call-for-papers deadlines",
		Long: `A CLI tool that maintains per-year deadline records for a catalogue of
conferences. It scrapes WikiCFP for live call-for-papers data, picks the
best-matching event per conference and year, and predicts the following
year's dates when no live data exists yet.`,
	}

	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	cmd.AddCommand(newIngestCmd())
	cmd.AddCommand(newUpdateCmd())

	return cmd
}

// setupLogging applies the configured log level, with --verbose forcing
// debug.
func setupLogging(cfg *config.Config) {
	level := logger.ParseLevel(cfg.LogLevel)
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, os.Stderr))
}

func newIngestCmd() *cobra.Command {
	var (
		csvPath string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Build the catalogue JSON from a source CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			setupLogging(cfg)

			records, err := catalogue.ReadCSV(csvPath)
			if err != nil {
				return fmt.Errorf("reading conferences: %w", err)
			}

			cat := catalogue.FromRecords(records)
			if err := cat.Save(outPath); err != nil {
				return fmt.Errorf("saving catalogue: %w", err)
			}

			fmt.Printf("Saved %d conferences (%d themes) to %s\n",
				len(cat.Conferences), len(cat.Themes), outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "Path to the source conferences CSV (required)")
	cmd.Flags().StringVar(&outPath, "out", "conferences_base.json", "Output catalogue JSON path")
	cmd.MarkFlagRequired("csv")

	return cmd
}

func newUpdateCmd() *cobra.Command {
	var (
		inPath  string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Scrape WikiCFP and update per-year deadline records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			setupLogging(cfg)

			cat, err := catalogue.Load(inPath)
			if err != nil {
				return fmt.Errorf("loading catalogue: %w", err)
			}

			client := wikicfp.New(wikicfp.Options{
				BaseURL:    cfg.BaseURL,
				Timeout:    cfg.Timeout(),
				MaxEvents:  cfg.MaxEvents,
				MaxRetries: cfg.MaxRetries,
			})
			updater := conference.NewUpdater(client, cfg.WindowYears)

			logger.Info("starting update run", logger.Fields{
				"conferences":  len(cat.Conferences),
				"target_years": conference.TargetYears(time.Now(), cfg.WindowYears),
			})
			updater.UpdateAll(cat.Conferences, cfg.RequestDelay())

			if err := cat.Save(outPath); err != nil {
				return fmt.Errorf("saving catalogue: %w", err)
			}

			printSummary(os.Stdout, outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&inPath, "in", "conferences_base.json", "Input catalogue JSON path")
	cmd.Flags().StringVar(&outPath, "out", "conferences_with_cfp.json", "Output catalogue JSON path")

	return cmd
}

// printSummary reports run totals from the metrics tracker.
func printSummary(w io.Writer, outPath string) {
	snapshot := logger.GetMetricsSnapshot()
	counters, _ := snapshot["counters"].(map[string]int64)

	fmt.Fprintf(w, "Update complete: %d years from scraped data (%d replacing predictions), %d predicted, %d conferences without data\n",
		counters["years.found"], counters["years.replaced"],
		counters["years.predicted"], counters["conferences.no_data"])
	fmt.Fprintf(w, "Saved catalogue to %s\n", outPath)
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
