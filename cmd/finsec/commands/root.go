package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/meenmo/finsec/config"
	"github.com/meenmo/finsec/definition"
	"github.com/meenmo/finsec/logger"
	"github.com/meenmo/finsec/pricing"
	"github.com/meenmo/finsec/utils"
)

var (
	// Global flags
	logLevel  string
	logFormat string
	workers   int
	asOf      string

	cfg *config.Config
	log = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "finsec",
	Short: "Fixed income schedules, cashflows and valuations",
	Long: `finsec reads an instrument book (YAML or JSON) and prints accrual
schedules, cashflow tables or valuations as JSON.

Examples:
  finsec schedule book.yaml
  finsec cashflows book.yaml --as-of 2025-06-02
  finsec npv book.yaml --shift-bp 1`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides FINSEC_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format json|console (overrides FINSEC_LOG_FORMAT)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "concurrent valuations (overrides "+config.EnvPrefix+config.WorkersKey+")")
	rootCmd.PersistentFlags().StringVar(&asOf, "as-of", "", "valuation date YYYY-MM-DD (default: the book's valuation_date)")
}

func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load()
	if err != nil {
		return err
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if logFormat != "" {
		c.LogFormat = logFormat
	}
	if workers > 0 {
		c.ValuationWorkers = workers
	}
	if err := c.Validate(); err != nil {
		return err
	}
	config.SetConfig(*c)
	cfg = c

	opts := logger.FromConfig(c)
	opts.Writer = cmd.ErrOrStderr()
	log = logger.New(opts).With().Str("cmd", cmd.Name()).Logger()
	return nil
}

// loadBook reads and builds the book at path.
func loadBook(path string) (*definition.Book, *definition.Portfolio, error) {
	start := time.Now()
	book, err := definition.Load(path)
	if err != nil {
		return nil, nil, err
	}
	port, err := book.Build()
	if err != nil {
		return nil, nil, err
	}
	log.Debug().
		Str("book", path).
		Int("legs", len(port.Legs)).
		Int("bonds", len(port.Bonds)).
		Int("swaps", len(port.Swaps)).
		Dur("elapsed", time.Since(start)).
		Msg("book loaded")
	return book, port, nil
}

// engineOptions applies --as-of.
func engineOptions() (pricing.EngineOptions, error) {
	if asOf == "" {
		return pricing.EngineOptions{}, nil
	}
	d, err := utils.ParseDate(asOf)
	if err != nil {
		return pricing.EngineOptions{}, fmt.Errorf("--as-of: %w", err)
	}
	return pricing.EngineOptions{ValuationDate: d}, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
