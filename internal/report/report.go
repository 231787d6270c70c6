//-------------------------------------------------------------------------
//
// Salestar Warehouse Builder
//
// Copyright (c) 2025 - 2026, the Salestar authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package report runs the analytical queries against a built warehouse
// and exports the rollups as CSV tables.
package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/salestar/salestar/internal/analysis"
	"github.com/salestar/salestar/internal/db"
	"github.com/salestar/salestar/internal/logging"
	"github.com/salestar/salestar/internal/warehouse"
)

// Options controls a report run.
type Options struct {
	OutputDir string
	Threshold float64
}

// Run executes every warehouse rollup, detects revenue outliers in the
// monthly series, and writes one CSV per table under opts.OutputDir.
func Run(ctx context.Context, q db.Executor, opts Options) error {
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", opts.OutputDir, err)
	}

	kpi, err := warehouse.QueryKPI(ctx, q)
	if err != nil {
		return fmt.Errorf("kpi query: %w", err)
	}
	monthly, err := warehouse.QueryMonthly(ctx, q)
	if err != nil {
		return fmt.Errorf("monthly query: %w", err)
	}
	byRegion, err := warehouse.QueryRegions(ctx, q)
	if err != nil {
		return fmt.Errorf("region query: %w", err)
	}
	byCategory, err := warehouse.QueryCategories(ctx, q)
	if err != nil {
		return fmt.Errorf("category query: %w", err)
	}
	seasonal, err := warehouse.QuerySeasonality(ctx, q)
	if err != nil {
		return fmt.Errorf("seasonality query: %w", err)
	}

	series := make([]analysis.MonthlyRevenue, len(monthly))
	for i, m := range monthly {
		series[i] = analysis.MonthlyRevenue{
			Period:  fmt.Sprintf("%04d-%02d", m.Year, m.Month),
			Revenue: m.NetRevenue,
		}
	}
	outliers := analysis.DetectOutliers(series, opts.Threshold)

	tables := []struct {
		file   string
		header []string
		rows   [][]string
	}{
		{"kpi_summary.csv", kpiHeader, kpiRows(kpi)},
		{"monthly_performance.csv", monthlyHeader, monthlyRows(monthly)},
		{"region_performance.csv", regionHeader, regionRows(byRegion)},
		{"category_performance.csv", categoryHeader, categoryRows(byCategory)},
		{"seasonality_profile.csv", seasonalityHeader, seasonalityRows(seasonal)},
		{"monthly_outliers.csv", outlierHeader, outlierRows(outliers)},
	}

	for _, tbl := range tables {
		path := filepath.Join(opts.OutputDir, tbl.file)
		if err := writeCSV(path, tbl.header, tbl.rows); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	for _, o := range outliers {
		logging.Warn().
			Str("period", o.Period).
			Float64("revenue", o.Revenue).
			Float64("z_score", o.ZScore).
			Msg("Revenue outlier")
	}

	logging.Info().
		Int("months", len(monthly)).
		Int("outliers", len(outliers)).
		Str("output_dir", opts.OutputDir).
		Msg("Report written")

	return nil
}

var (
	kpiHeader         = []string{"total_orders", "total_revenue", "total_profit", "avg_order_value", "profit_margin_pct"}
	monthlyHeader     = []string{"year", "month", "month_name", "net_revenue", "profit", "margin_pct", "orders"}
	regionHeader      = []string{"region", "revenue", "profit", "margin_pct"}
	categoryHeader    = []string{"category", "revenue", "profit", "units_sold"}
	seasonalityHeader = []string{"month", "month_name", "avg_daily_revenue"}
	outlierHeader     = []string{"period", "net_revenue", "z_score"}
)

func kpiRows(k *warehouse.KPISummary) [][]string {
	return [][]string{{
		strconv.FormatInt(k.TotalOrders, 10),
		money(k.TotalRevenue),
		money(k.TotalProfit),
		money(k.AvgOrderValue),
		money(k.ProfitMarginPct),
	}}
}

func monthlyRows(monthly []warehouse.MonthlyPerformance) [][]string {
	rows := make([][]string, len(monthly))
	for i, m := range monthly {
		rows[i] = []string{
			strconv.Itoa(m.Year),
			strconv.Itoa(m.Month),
			m.MonthName,
			money(m.NetRevenue),
			money(m.Profit),
			money(m.MarginPct),
			strconv.FormatInt(m.Orders, 10),
		}
	}
	return rows
}

func regionRows(regions []warehouse.RegionPerformance) [][]string {
	rows := make([][]string, len(regions))
	for i, r := range regions {
		rows[i] = []string{r.Region, money(r.Revenue), money(r.Profit), money(r.MarginPct)}
	}
	return rows
}

func categoryRows(categories []warehouse.CategoryPerformance) [][]string {
	rows := make([][]string, len(categories))
	for i, c := range categories {
		rows[i] = []string{
			c.Category, money(c.Revenue), money(c.Profit),
			strconv.FormatInt(c.UnitsSold, 10),
		}
	}
	return rows
}

func seasonalityRows(seasonal []warehouse.SeasonalityRow) [][]string {
	rows := make([][]string, len(seasonal))
	for i, s := range seasonal {
		rows[i] = []string{strconv.Itoa(s.Month), s.MonthName, money(s.AvgDailyRevenue)}
	}
	return rows
}

func outlierRows(outliers []analysis.Outlier) [][]string {
	rows := make([][]string, len(outliers))
	for i, o := range outliers {
		rows[i] = []string{
			o.Period,
			money(o.Revenue),
			strconv.FormatFloat(o.ZScore, 'f', 4, 64),
		}
	}
	return rows
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Sync()
}
