//-------------------------------------------------------------------------
//
// Salestar Warehouse Builder
//
// Copyright (c) 2025 - 2026, the Salestar authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"context"
	"time"

	"github.com/salestar/salestar/internal/db"
)

// The fixed query surface consumed by the report generator and the
// dashboard. Aggregation happens in SQL over the star-schema join; the
// transform itself never precomputes summaries.

const kpiQuery = `
SELECT
    COUNT(*) AS total_orders,
    COALESCE(ROUND(SUM(net_revenue), 2), 0) AS total_revenue,
    COALESCE(ROUND(SUM(profit), 2), 0) AS total_profit,
    COALESCE(ROUND(AVG(net_revenue), 2), 0) AS avg_order_value,
    COALESCE(ROUND((SUM(profit) / NULLIF(SUM(net_revenue), 0)) * 100, 2), 0) AS profit_margin_pct
FROM fact_sales
`

const monthlyQuery = `
SELECT
    d.year,
    d.month,
    d.month_name,
    ROUND(SUM(f.net_revenue), 2) AS net_revenue,
    ROUND(SUM(f.profit), 2) AS profit,
    COALESCE(ROUND((SUM(f.profit) / NULLIF(SUM(f.net_revenue), 0)) * 100, 2), 0) AS margin_pct,
    COUNT(*) AS orders
FROM fact_sales f
JOIN dim_date d ON d.date_id = f.date_id
GROUP BY d.year, d.month, d.month_name
ORDER BY d.year, d.month
`

const regionQuery = `
SELECT
    r.region_name AS region,
    ROUND(SUM(f.net_revenue), 2) AS revenue,
    ROUND(SUM(f.profit), 2) AS profit,
    COALESCE(ROUND((SUM(f.profit) / NULLIF(SUM(f.net_revenue), 0)) * 100, 2), 0) AS margin_pct
FROM fact_sales f
JOIN dim_region r ON r.region_id = f.region_id
GROUP BY r.region_name
ORDER BY revenue DESC
`

const categoryQuery = `
SELECT
    c.category_name AS category,
    ROUND(SUM(f.net_revenue), 2) AS revenue,
    ROUND(SUM(f.profit), 2) AS profit,
    SUM(f.units_sold) AS units_sold
FROM fact_sales f
JOIN dim_product p ON p.product_id = f.product_id
JOIN dim_category c ON c.category_id = p.category_id
GROUP BY c.category_name
ORDER BY revenue DESC
`

const seasonalityQuery = `
SELECT
    d.month,
    d.month_name,
    ROUND(AVG(daily.daily_revenue), 2) AS avg_daily_revenue
FROM (
    SELECT
        f.date_id,
        SUM(f.net_revenue) AS daily_revenue
    FROM fact_sales f
    GROUP BY f.date_id
) daily
JOIN dim_date d ON d.date_id = daily.date_id
GROUP BY d.month, d.month_name
ORDER BY d.month
`

const salesDetailQuery = `
SELECT
    f.order_id,
    d.order_date,
    r.region_name,
    ch.channel_name,
    s.segment_name,
    c.category_name,
    p.product_name,
    f.units_sold,
    f.unit_price,
    f.discount_pct,
    f.gross_revenue,
    f.net_revenue,
    f.cost,
    f.profit
FROM fact_sales f
JOIN dim_date d ON d.date_id = f.date_id
JOIN dim_region r ON r.region_id = f.region_id
JOIN dim_channel ch ON ch.channel_id = f.channel_id
JOIN dim_customer_segment s ON s.segment_id = f.segment_id
JOIN dim_product p ON p.product_id = f.product_id
JOIN dim_category c ON c.category_id = p.category_id
ORDER BY f.order_id
`

// KPISummary is the warehouse-wide headline figures.
type KPISummary struct {
	TotalOrders     int64
	TotalRevenue    float64
	TotalProfit     float64
	AvgOrderValue   float64
	ProfitMarginPct float64
}

// MonthlyPerformance is one calendar month's rollup.
type MonthlyPerformance struct {
	Year       int
	Month      int
	MonthName  string
	NetRevenue float64
	Profit     float64
	MarginPct  float64
	Orders     int64
}

// RegionPerformance is one region's rollup.
type RegionPerformance struct {
	Region    string
	Revenue   float64
	Profit    float64
	MarginPct float64
}

// CategoryPerformance is one category's rollup.
type CategoryPerformance struct {
	Category  string
	Revenue   float64
	Profit    float64
	UnitsSold int64
}

// SeasonalityRow is the average daily revenue for one calendar month
// across all years.
type SeasonalityRow struct {
	Month           int
	MonthName       string
	AvgDailyRevenue float64
}

// QueryKPI returns the warehouse-wide KPI summary.
func QueryKPI(ctx context.Context, q db.Executor) (*KPISummary, error) {
	var k KPISummary
	err := q.QueryRow(ctx, kpiQuery).Scan(
		&k.TotalOrders, &k.TotalRevenue, &k.TotalProfit, &k.AvgOrderValue, &k.ProfitMarginPct)
	if err != nil {
		return nil, err
	}
	return &k, nil
}

// QueryMonthly returns the monthly performance series ordered by
// (year, month) ascending.
func QueryMonthly(ctx context.Context, q db.Executor) ([]MonthlyPerformance, error) {
	rows, err := q.Query(ctx, monthlyQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthlyPerformance
	for rows.Next() {
		var m MonthlyPerformance
		if err := rows.Scan(&m.Year, &m.Month, &m.MonthName,
			&m.NetRevenue, &m.Profit, &m.MarginPct, &m.Orders); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// QueryRegions returns per-region rollups ordered by revenue descending.
func QueryRegions(ctx context.Context, q db.Executor) ([]RegionPerformance, error) {
	rows, err := q.Query(ctx, regionQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RegionPerformance
	for rows.Next() {
		var r RegionPerformance
		if err := rows.Scan(&r.Region, &r.Revenue, &r.Profit, &r.MarginPct); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// QueryCategories returns per-category rollups ordered by revenue
// descending.
func QueryCategories(ctx context.Context, q db.Executor) ([]CategoryPerformance, error) {
	rows, err := q.Query(ctx, categoryQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CategoryPerformance
	for rows.Next() {
		var c CategoryPerformance
		if err := rows.Scan(&c.Category, &c.Revenue, &c.Profit, &c.UnitsSold); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// QuerySeasonality returns the seasonality profile ordered by calendar
// month.
func QuerySeasonality(ctx context.Context, q db.Executor) ([]SeasonalityRow, error) {
	rows, err := q.Query(ctx, seasonalityQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SeasonalityRow
	for rows.Next() {
		var s SeasonalityRow
		if err := rows.Scan(&s.Month, &s.MonthName, &s.AvgDailyRevenue); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// QuerySalesDetail returns the denormalized analytic rows, one per
// order: the fixed join of fact_sales to all six dimensions.
func QuerySalesDetail(ctx context.Context, q db.Executor) ([]RawTransaction, error) {
	rows, err := q.Query(ctx, salesDetailQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RawTransaction
	for rows.Next() {
		var (
			t         RawTransaction
			orderDate time.Time
		)
		if err := rows.Scan(&t.OrderID, &orderDate, &t.Region, &t.Channel,
			&t.CustomerSegment, &t.Category, &t.ProductName,
			&t.UnitsSold, &t.UnitPrice, &t.DiscountPct,
			&t.GrossRevenue, &t.NetRevenue, &t.Cost, &t.Profit); err != nil {
			return nil, err
		}
		t.OrderDate = orderDate.Format(dateLayout)
		out = append(out, t)
	}
	return out, rows.Err()
}
