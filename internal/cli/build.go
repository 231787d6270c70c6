package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salestar/salestar/internal/db"
	"github.com/salestar/salestar/internal/ingest"
	"github.com/salestar/salestar/internal/logging"
	"github.com/salestar/salestar/internal/warehouse"
)

var buildInput string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the star-schema warehouse from a raw transaction CSV",
	Long: `Read a raw transaction CSV, derive the dimension tables and the fact
table, and load them into PostgreSQL. The load is a full replace inside
a single transaction: if any step fails, the previous warehouse is left
untouched.

Example:
  salestar build --input data/raw/sales_transactions.csv \
    --connection postgres://localhost/sales`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildInput, "input", "",
		"raw transaction CSV path (default: data/raw/sales_transactions.csv)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if buildInput != "" {
		cfg.Build.Input = buildInput
	}

	if err := cfg.ValidateBuild(); err != nil {
		return err
	}

	records, err := ingest.ReadTransactions(cfg.Build.Input)
	if err != nil {
		return err
	}

	logging.Info().
		Str("input", cfg.Build.Input).
		Int("records", len(records)).
		Msg("Transforming raw transactions")

	wh, err := warehouse.Transform(records)
	if err != nil {
		return fmt.Errorf("transform failed: %w", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	loader := warehouse.NewLoader(pool)
	if err := loader.Load(ctx, wh, cfg.Build.Input); err != nil {
		return err
	}

	return nil
}
