package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/salestar/salestar/internal/warehouse"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp csv: %v", err)
	}
	return path
}

const validCSV = `order_id,order_date,region,channel,customer_segment,category,product_name,units_sold,unit_price,discount_pct,gross_revenue,net_revenue,cost,profit
100001,2024-03-07,West,Online,Consumer,Electronics,Laptop,2,899.99,0.1000,1799.98,1619.98,1100.00,519.98
100002,2024-03-08,South,Retail,Corporate,Furniture,Desk,1,320.50,0.0500,320.50,304.48,180.00,124.48
`

func TestReadTransactions(t *testing.T) {
	path := writeTempCSV(t, validCSV)

	records, err := ReadTransactions(path)
	if err != nil {
		t.Fatalf("ReadTransactions failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	want := warehouse.RawTransaction{
		OrderID: 100001, OrderDate: "2024-03-07",
		Region: "West", Channel: "Online", CustomerSegment: "Consumer",
		Category: "Electronics", ProductName: "Laptop",
		UnitsSold: 2, UnitPrice: 899.99, DiscountPct: 0.10,
		GrossRevenue: 1799.98, NetRevenue: 1619.98, Cost: 1100.00, Profit: 519.98,
	}
	if !reflect.DeepEqual(records[0], want) {
		t.Errorf("record mismatch:\n got %+v\nwant %+v", records[0], want)
	}
}

func TestReadTransactionsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.csv")

	_, err := ReadTransactions(path)
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}

	var notFound *SourceNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected *SourceNotFoundError, got %T: %v", err, err)
	}
	if notFound.Path != path {
		t.Errorf("error path = %q, want %q", notFound.Path, path)
	}
}

func TestReadTransactionsBadHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"wrong column name", strings.Replace(validCSV, "order_date", "date", 1)},
		{"missing column", strings.Replace(validCSV, ",profit", "", 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempCSV(t, tt.header)
			if _, err := ReadTransactions(path); err == nil {
				t.Error("expected header validation error, got nil")
			}
		})
	}
}

func TestReadTransactionsBadRow(t *testing.T) {
	bad := validCSV + "not-a-number,2024-03-09,West,Online,Consumer,Electronics,Mouse,1,25.00,0.0000,25.00,25.00,12.00,13.00\n"
	path := writeTempCSV(t, bad)

	_, err := ReadTransactions(path)
	if err == nil {
		t.Fatal("expected parse error, got nil")
	}
	if !strings.Contains(err.Error(), "line 4") {
		t.Errorf("error does not name the failing line: %v", err)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	records := []warehouse.RawTransaction{
		{
			OrderID: 100010, OrderDate: "2025-01-15",
			Region: "Midwest", Channel: "Wholesale", CustomerSegment: "Small Business",
			Category: "Office Supplies", ProductName: "Stapler",
			UnitsSold: 12, UnitPrice: 8.50, DiscountPct: 0.15,
			GrossRevenue: 102.00, NetRevenue: 86.70, Cost: 48.96, Profit: 37.74,
		},
	}

	path := filepath.Join(t.TempDir(), "out", "transactions.csv")
	if err := WriteTransactions(path, records); err != nil {
		t.Fatalf("WriteTransactions failed: %v", err)
	}

	got, err := ReadTransactions(path)
	if err != nil {
		t.Fatalf("ReadTransactions failed: %v", err)
	}
	if !reflect.DeepEqual(got, records) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, records)
	}
}
