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
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salestar/salestar/internal/db"
	"github.com/salestar/salestar/internal/logging"
)

// Loader owns the warehouse schema lifecycle. Every load is a full
// replace: drop, recreate, bulk insert, all inside one transaction so a
// failure at any step leaves the previous warehouse intact.
type Loader struct {
	pool *pgxpool.Pool
}

// NewLoader creates a Loader on the given connection pool.
func NewLoader(pool *pgxpool.Pool) *Loader {
	return &Loader{pool: pool}
}

// Load atomically rebuilds the warehouse from an assembled star schema.
// Dimensions are inserted before the fact table to satisfy its foreign
// keys. Any failure returns a LoadError naming the failed stage and
// rolls the transaction back.
func (l *Loader) Load(ctx context.Context, wh *Warehouse, source string) error {
	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return &LoadError{Stage: "begin", Err: err}
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, dropSchemaSQL); err != nil {
		return &LoadError{Stage: "drop", Err: err}
	}
	// Metadata from the previous build goes too; the rebuild is a full
	// replace including provenance.
	if err := db.DropMetadata(ctx, tx); err != nil {
		return &LoadError{Stage: "drop", Err: err}
	}
	if _, err := tx.Exec(ctx, createSchemaSQL); err != nil {
		return &LoadError{Stage: "create", Err: err}
	}

	if err := copyDates(ctx, tx, wh.Dates); err != nil {
		return &LoadError{Stage: "dim_date", Err: err}
	}
	if err := copyDimension(ctx, tx, "dim_region", wh.Regions); err != nil {
		return &LoadError{Stage: "dim_region", Err: err}
	}
	if err := copyDimension(ctx, tx, "dim_channel", wh.Channels); err != nil {
		return &LoadError{Stage: "dim_channel", Err: err}
	}
	if err := copyDimension(ctx, tx, "dim_customer_segment", wh.Segments); err != nil {
		return &LoadError{Stage: "dim_customer_segment", Err: err}
	}
	if err := copyDimension(ctx, tx, "dim_category", wh.Categories); err != nil {
		return &LoadError{Stage: "dim_category", Err: err}
	}
	if err := copyProducts(ctx, tx, wh.Products); err != nil {
		return &LoadError{Stage: "dim_product", Err: err}
	}
	if err := copyFacts(ctx, tx, wh.Facts); err != nil {
		return &LoadError{Stage: "fact_sales", Err: err}
	}

	info := db.BuildInfo{Source: source, FactRows: len(wh.Facts)}
	if err := db.SaveBuildMetadata(ctx, tx, info); err != nil {
		return &LoadError{Stage: "metadata", Err: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return &LoadError{Stage: "commit", Err: err}
	}

	logging.Info().
		Int("fact_rows", len(wh.Facts)).
		Int("dates", len(wh.Dates)).
		Int("regions", len(wh.Regions.Rows)).
		Int("channels", len(wh.Channels.Rows)).
		Int("segments", len(wh.Segments.Rows)).
		Int("categories", len(wh.Categories.Rows)).
		Int("products", len(wh.Products)).
		Msg("Warehouse rebuilt")

	return nil
}

func copyDates(ctx context.Context, tx pgx.Tx, rows []DateRow) error {
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"dim_date"},
		[]string{"date_id", "order_date", "year", "month", "month_name", "quarter"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := rows[i]
			return []any{r.DateID, r.OrderDate, r.Year, r.Month, r.MonthName, r.Quarter}, nil
		}),
	)
	return err
}

func copyDimension(ctx context.Context, tx pgx.Tx, table string, dim DimensionTable) error {
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{table},
		[]string{dim.KeyColumn, dim.ValueColumn},
		pgx.CopyFromSlice(len(dim.Rows), func(i int) ([]any, error) {
			return []any{dim.Rows[i].Key, dim.Rows[i].Value}, nil
		}),
	)
	return err
}

func copyProducts(ctx context.Context, tx pgx.Tx, rows []ProductRow) error {
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"dim_product"},
		[]string{"product_id", "product_name", "category_id"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := rows[i]
			return []any{r.ProductID, r.ProductName, r.CategoryID}, nil
		}),
	)
	return err
}

func copyFacts(ctx context.Context, tx pgx.Tx, rows []FactRow) error {
	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"fact_sales"},
		[]string{
			"order_id", "date_id", "region_id", "channel_id", "segment_id", "product_id",
			"units_sold", "unit_price", "discount_pct",
			"gross_revenue", "net_revenue", "cost", "profit",
		},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := rows[i]
			return []any{
				r.OrderID, r.DateID, r.RegionID, r.ChannelID, r.SegmentID, r.ProductID,
				r.UnitsSold, r.UnitPrice, r.DiscountPct,
				r.GrossRevenue, r.NetRevenue, r.Cost, r.Profit,
			}, nil
		}),
	)
	if err != nil {
		return err
	}
	if copied != int64(len(rows)) {
		return fmt.Errorf("copied %d of %d fact rows", copied, len(rows))
	}
	return nil
}
