package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/salestar/salestar/internal/datagen"
	"github.com/salestar/salestar/internal/ingest"
	"github.com/salestar/salestar/internal/logging"
)

var (
	generateOutput    string
	generateStartDate string
	generateEndDate   string
	generateSeed      int64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic raw transaction CSV",
	Long: `Generate synthetic sales transactions covering every day in the
configured date range and write them as a raw CSV. The output has
realistic seasonality (holiday surge in November and December),
channel-dependent discounting, and price noise, while staying fully
reproducible: the same seed and date range always produce the same
file.

Example:
  salestar generate --seed 42 --start-date 2023-01-01 --end-date 2025-12-31`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateOutput, "output", "",
		"output CSV path (default: data/raw/sales_transactions.csv)")
	generateCmd.Flags().StringVar(&generateStartDate, "start-date", "",
		"first order date, YYYY-MM-DD")
	generateCmd.Flags().StringVar(&generateEndDate, "end-date", "",
		"last order date, YYYY-MM-DD")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0,
		"random seed for reproducible output (0 = pick randomly)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if generateOutput != "" {
		cfg.Generate.Output = generateOutput
	}
	if generateStartDate != "" {
		cfg.Generate.StartDate = generateStartDate
	}
	if generateEndDate != "" {
		cfg.Generate.EndDate = generateEndDate
	}
	if cmd.Flags().Changed("seed") {
		cfg.Generate.Seed = generateSeed
	}

	if err := cfg.ValidateGenerate(); err != nil {
		return err
	}

	start, err := time.Parse("2006-01-02", cfg.Generate.StartDate)
	if err != nil {
		return err
	}
	end, err := time.Parse("2006-01-02", cfg.Generate.EndDate)
	if err != nil {
		return err
	}

	logging.Info().
		Str("start", cfg.Generate.StartDate).
		Str("end", cfg.Generate.EndDate).
		Int64("seed", cfg.Generate.Seed).
		Msg("Generating transactions")

	records := datagen.Generate(datagen.Params{
		StartDate: start,
		EndDate:   end,
		Seed:      cfg.Generate.Seed,
	})

	if err := ingest.WriteTransactions(cfg.Generate.Output, records); err != nil {
		return err
	}

	logging.Info().
		Str("output", cfg.Generate.Output).
		Int("records", len(records)).
		Msg("Transaction CSV written")

	return nil
}
