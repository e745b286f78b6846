package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sdsymphony/hist2json/internal/convert"
	"github.com/sdsymphony/hist2json/pkg/config"
	"github.com/sdsymphony/hist2json/pkg/logger"
)

var version = "0.1.0"

func main() {
	_ = godotenv.Load() // ignore error if .env doesn't exist

	cfg := config.NewRunConfig()
	var configFile string
	var debug bool

	root := &cobra.Command{
		Use:   "hist2json",
		Short: "Decode SirsiDynix Symphony history logs into JSON",
		Long: `hist2json converts SirsiDynix Symphony ILS history logs into structured
JSON. A history log is a caret-delimited transaction journal; each line is
decoded against the command, data, and client-type code tables and emitted
as a self-describing record with human-readable keys.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cfg, configFile, debug)
		},
	}

	root.Flags().StringVar(&cfg.HistPath, "hist", "", "path to the history log file (required)")
	root.Flags().StringVar(&cfg.CommandCodePath, "cmd-codes", "", "path to the command code table (required)")
	root.Flags().StringVar(&cfg.DataCodePath, "data-codes", "", "path to the data code table (required)")
	root.Flags().StringVar(&cfg.ClientCodePath, "client-codes", "", "path to the client-type code table (optional)")
	root.Flags().StringVar(&cfg.ItemIndexPath, "items", "", "path to the item barcode index (optional, enables item_id enrichment)")
	root.Flags().StringVar(&cfg.RangeStart, "start", "", "inclusive range-gate lower bound, YYYYMMDDhhmmss prefix")
	root.Flags().StringVar(&cfg.RangeEnd, "end", "", "exclusive range-gate upper bound, YYYYMMDDhhmmss prefix")
	root.Flags().StringVar(&cfg.OutputPath, "output", "", "output path (default: stdout)")
	root.Flags().BoolVar(&cfg.DocumentStore, "document-store", false, "emit newline-delimited JSON instead of a JSON array")
	root.Flags().StringVar(&configFile, "config", "", "optional YAML file overlaying these flags")
	root.Flags().BoolVarP(&debug, "debug", "v", false, "verbose logging and an end-of-run code-usage report")

	_ = root.MarkFlagRequired("hist")
	_ = root.MarkFlagRequired("cmd-codes")
	_ = root.MarkFlagRequired("data-codes")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("hist2json v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDecode(cfg *config.RunConfig, configFile string, debug bool) error {
	if configFile != "" {
		if err := config.Load(configFile, cfg); err != nil {
			return fmt.Errorf("failed to load config file %s: %w", configFile, err)
		}
	}
	cfg.Debug = debug

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level := "info"
	if debug {
		level = "debug"
	}
	if err := logger.Init(logger.Config{Level: level}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	result, err := convert.Run(cfg)
	if err != nil {
		return err
	}

	log := logger.Get()
	log.Info("run summary",
		zap.Int64("lines_read", result.Summary.LinesRead),
		zap.Int64("lines_gated", result.Summary.LinesGated),
		zap.Int64("records_decoded", result.Summary.RecordsDecoded),
		zap.Int64("records_skipped", result.Summary.RecordsSkipped),
		zap.Int("lines_with_missing_codes", len(result.Journal)))

	if debug {
		for tag, count := range result.Summary.MissingCodes {
			fmt.Fprintf(os.Stderr, "missing data code %s: %d occurrence(s)\n", tag, count)
		}
	}

	return nil
}
