package warehouse

import (
	"context"
	"testing"
	"time"

	"github.com/salestar/salestar/internal/db"
	"github.com/salestar/salestar/internal/testutil"
)

func TestLoaderLoad(t *testing.T) {
	baseConnStr := testutil.SkipIfNoPostgres(t)

	testConnStr := testutil.CreateTestDB(t, baseConnStr, "loader")
	dbName := testutil.GetDBNameFromConnStr(testConnStr)
	cleanup := testutil.NewTestCleanup(t, baseConnStr, dbName)
	defer cleanup.Cleanup()

	pool := testutil.ConnectTestDB(t, testConnStr)
	cleanup.SetPool(pool)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	records := sampleRecords()
	wh, err := Transform(records)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	loader := NewLoader(pool)
	if err := loader.Load(ctx, wh, "test.csv"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tables := map[string]int{
		"dim_date":             len(wh.Dates),
		"dim_region":           len(wh.Regions.Rows),
		"dim_channel":          len(wh.Channels.Rows),
		"dim_customer_segment": len(wh.Segments.Rows),
		"dim_category":         len(wh.Categories.Rows),
		"dim_product":          len(wh.Products),
		"fact_sales":           len(wh.Facts),
	}
	for table, want := range tables {
		var got int
		err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&got)
		if err != nil {
			t.Fatalf("counting %s: %v", table, err)
		}
		if got != want {
			t.Errorf("%s has %d rows, want %d", table, got, want)
		}
	}

	meta, err := db.GetAllMetadata(ctx, pool)
	if err != nil {
		t.Fatalf("reading metadata: %v", err)
	}
	if meta["source"] != "test.csv" {
		t.Errorf("metadata source = %q, want test.csv", meta["source"])
	}
	for _, key := range []string{"fact_rows", "version", "loaded_at"} {
		if meta[key] == "" {
			t.Errorf("metadata key %s missing", key)
		}
	}
}

func TestLoaderRebuild(t *testing.T) {
	baseConnStr := testutil.SkipIfNoPostgres(t)

	testConnStr := testutil.CreateTestDB(t, baseConnStr, "rebuild")
	dbName := testutil.GetDBNameFromConnStr(testConnStr)
	cleanup := testutil.NewTestCleanup(t, baseConnStr, dbName)
	defer cleanup.Cleanup()

	pool := testutil.ConnectTestDB(t, testConnStr)
	cleanup.SetPool(pool)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	records := sampleRecords()
	wh, err := Transform(records)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	loader := NewLoader(pool)
	if err := loader.Load(ctx, wh, "first.csv"); err != nil {
		t.Fatalf("first load failed: %v", err)
	}

	// A key from outside the loader must not survive the rebuild.
	_, err = pool.Exec(ctx,
		"INSERT INTO warehouse_metadata (key, value) VALUES ('stale', 'x')")
	if err != nil {
		t.Fatalf("inserting stale metadata: %v", err)
	}

	// Second load over the first: full replace, no duplicate rows.
	smaller, err := Transform(records[:1])
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if err := loader.Load(ctx, smaller, "second.csv"); err != nil {
		t.Fatalf("second load failed: %v", err)
	}

	var factCount int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM fact_sales").Scan(&factCount); err != nil {
		t.Fatalf("counting facts: %v", err)
	}
	if factCount != 1 {
		t.Errorf("fact_sales has %d rows after rebuild, want 1", factCount)
	}

	meta, err := db.GetAllMetadata(ctx, pool)
	if err != nil {
		t.Fatalf("reading metadata: %v", err)
	}
	if meta["source"] != "second.csv" {
		t.Errorf("metadata source = %q, want second.csv", meta["source"])
	}
	if _, ok := meta["stale"]; ok {
		t.Error("metadata from before the rebuild survived the full replace")
	}
}

func TestLoaderQueries(t *testing.T) {
	baseConnStr := testutil.SkipIfNoPostgres(t)

	testConnStr := testutil.CreateTestDB(t, baseConnStr, "queries")
	dbName := testutil.GetDBNameFromConnStr(testConnStr)
	cleanup := testutil.NewTestCleanup(t, baseConnStr, dbName)
	defer cleanup.Cleanup()

	pool := testutil.ConnectTestDB(t, testConnStr)
	cleanup.SetPool(pool)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	records := sampleRecords()
	wh, err := Transform(records)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if err := NewLoader(pool).Load(ctx, wh, "test.csv"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	source, err := db.GetMetadataValue(ctx, pool, "source")
	if err != nil {
		t.Fatalf("reading metadata: %v", err)
	}
	if source != "test.csv" {
		t.Errorf("metadata source = %q, want test.csv", source)
	}

	kpi, err := QueryKPI(ctx, pool)
	if err != nil {
		t.Fatalf("QueryKPI failed: %v", err)
	}
	if kpi.TotalOrders != int64(len(records)) {
		t.Errorf("total_orders = %d, want %d", kpi.TotalOrders, len(records))
	}
	if kpi.TotalRevenue <= 0 {
		t.Errorf("total_revenue = %f, want positive", kpi.TotalRevenue)
	}

	monthly, err := QueryMonthly(ctx, pool)
	if err != nil {
		t.Fatalf("QueryMonthly failed: %v", err)
	}
	if len(monthly) != 1 {
		t.Fatalf("expected 1 monthly row, got %d", len(monthly))
	}
	if monthly[0].Year != 2024 || monthly[0].Month != 3 {
		t.Errorf("monthly row is %d-%d, want 2024-3", monthly[0].Year, monthly[0].Month)
	}

	regions, err := QueryRegions(ctx, pool)
	if err != nil {
		t.Fatalf("QueryRegions failed: %v", err)
	}
	if len(regions) != 2 {
		t.Errorf("expected 2 region rows, got %d", len(regions))
	}

	detail, err := QuerySalesDetail(ctx, pool)
	if err != nil {
		t.Fatalf("QuerySalesDetail failed: %v", err)
	}
	if len(detail) != len(records) {
		t.Fatalf("expected %d detail rows, got %d", len(records), len(detail))
	}
	// The denormalized rows round-trip the raw input.
	if detail[0].OrderID != records[0].OrderID ||
		detail[0].Region != records[0].Region ||
		detail[0].ProductName != records[0].ProductName {
		t.Errorf("detail row mismatch:\n got %+v\nwant %+v", detail[0], records[0])
	}
}
