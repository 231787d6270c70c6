package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salestar/salestar/internal/db"
	"github.com/salestar/salestar/internal/logging"
	"github.com/salestar/salestar/internal/report"
)

var (
	reportOutputDir string
	reportThreshold float64
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export analytical rollups from a built warehouse",
	Long: `Run the analytical queries against a built warehouse and export the
results as CSV tables: KPI summary, monthly performance, regional and
category rollups, and the seasonality profile. Months whose net revenue
deviates from the series mean by at least the outlier threshold (in
standard deviations) are flagged and exported separately.

Example:
  salestar report --output-dir outputs/tables --outlier-threshold 2.0`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportOutputDir, "output-dir", "",
		"directory for exported CSV tables (default: outputs/tables)")
	reportCmd.Flags().Float64Var(&reportThreshold, "outlier-threshold", 0,
		"z-score magnitude at which a month counts as an outlier")
}

func runReport(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if reportOutputDir != "" {
		cfg.Report.OutputDir = reportOutputDir
	}
	if reportThreshold > 0 {
		cfg.Report.OutlierThreshold = reportThreshold
	}

	if err := cfg.ValidateReport(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Refuse to report on an empty or never-built warehouse.
	meta, err := db.GetAllMetadata(ctx, pool)
	if err != nil || meta["source"] == "" {
		return fmt.Errorf(
			"warehouse has not been built; run 'salestar build' first")
	}

	logging.Info().
		Str("source", meta["source"]).
		Str("fact_rows", meta["fact_rows"]).
		Str("loaded_at", meta["loaded_at"]).
		Msg("Reporting on warehouse build")

	return report.Run(ctx, pool, report.Options{
		OutputDir: cfg.Report.OutputDir,
		Threshold: cfg.Report.OutlierThreshold,
	})
}
