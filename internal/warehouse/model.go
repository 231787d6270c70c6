// Package warehouse implements the star-schema transform and the
// PostgreSQL loader for the sales warehouse. The transform turns flat
// raw transactions into six dimension tables and one fact table held
// entirely in memory; the loader persists them in a single atomic
// rebuild.
package warehouse

import "time"

const dateLayout = "2006-01-02"

// RawTransaction is one denormalized sale as read from the raw source.
// All monetary fields are at transaction grain; the transform never
// recomputes them.
type RawTransaction struct {
	OrderID         int64
	OrderDate       string // ISO YYYY-MM-DD
	Region          string
	Channel         string
	CustomerSegment string
	Category        string
	ProductName     string
	UnitsSold       int
	UnitPrice       float64
	DiscountPct     float64
	GrossRevenue    float64
	NetRevenue      float64
	Cost            float64
	Profit          float64
}

// DimensionRow maps one natural value to its surrogate key.
type DimensionRow struct {
	Key   int
	Value string
}

// DimensionTable is a simple single-column dimension. Surrogate keys
// are a dense 1..N sequence assigned in sorted order of the distinct
// natural values, so a rebuild over identical input reproduces the
// same keys.
type DimensionTable struct {
	KeyColumn   string
	ValueColumn string
	Rows        []DimensionRow
}

// Lookup returns the natural-value to surrogate-key map for this table.
func (t DimensionTable) Lookup() map[string]int {
	m := make(map[string]int, len(t.Rows))
	for _, r := range t.Rows {
		m[r.Value] = r.Key
	}
	return m
}

// DateRow is one row of the date dimension. DateID is derived from the
// calendar date (YYYYMMDD as an integer), never from a counter, so it
// is stable across rebuilds.
type DateRow struct {
	DateID    int
	OrderDate time.Time
	Year      int
	Month     int
	MonthName string
	Quarter   string
}

// ProductKey is the composite natural key of the product dimension.
// The same product name may legitimately recur under a different
// category without collapsing into one row.
type ProductKey struct {
	Name     string
	Category string
}

// ProductRow is one row of the product dimension.
type ProductRow struct {
	ProductID   int
	ProductName string
	CategoryID  int
}

// FactRow is one row of fact_sales: the order id, five resolved foreign
// keys, then the seven pass-through measures. The column order is the
// stored schema and downstream queries assume it.
type FactRow struct {
	OrderID      int64
	DateID       int
	RegionID     int
	ChannelID    int
	SegmentID    int
	ProductID    int
	UnitsSold    int
	UnitPrice    float64
	DiscountPct  float64
	GrossRevenue float64
	NetRevenue   float64
	Cost         float64
	Profit       float64
}

// Warehouse holds a fully assembled star schema ready for loading.
type Warehouse struct {
	Dates      []DateRow
	Regions    DimensionTable
	Channels   DimensionTable
	Segments   DimensionTable
	Categories DimensionTable
	Products   []ProductRow
	Facts      []FactRow
}
