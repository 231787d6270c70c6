package warehouse

import (
	"errors"
	"testing"
)

func sampleRecords() []RawTransaction {
	return []RawTransaction{
		{
			OrderID: 100001, OrderDate: "2024-03-07",
			Region: "West", Channel: "Online", CustomerSegment: "Consumer",
			Category: "Electronics", ProductName: "Laptop",
			UnitsSold: 2, UnitPrice: 899.99, DiscountPct: 0.10,
			GrossRevenue: 1799.98, NetRevenue: 1619.98, Cost: 1100.00, Profit: 519.98,
		},
		{
			OrderID: 100002, OrderDate: "2024-03-08",
			Region: "South", Channel: "Retail", CustomerSegment: "Corporate",
			Category: "Furniture", ProductName: "Desk",
			UnitsSold: 1, UnitPrice: 320.50, DiscountPct: 0.05,
			GrossRevenue: 320.50, NetRevenue: 304.48, Cost: 180.00, Profit: 124.48,
		},
	}
}

func buildLookups(t *testing.T, records []RawTransaction) Lookups {
	t.Helper()

	orderDates := make([]string, len(records))
	regions := make([]string, len(records))
	channels := make([]string, len(records))
	segments := make([]string, len(records))
	categories := make([]string, len(records))
	pairs := make([]ProductKey, len(records))
	for i, r := range records {
		orderDates[i] = r.OrderDate
		regions[i] = r.Region
		channels[i] = r.Channel
		segments[i] = r.CustomerSegment
		categories[i] = r.Category
		pairs[i] = ProductKey{Name: r.ProductName, Category: r.Category}
	}

	dates, err := BuildDateDimension(orderDates)
	if err != nil {
		t.Fatalf("BuildDateDimension failed: %v", err)
	}
	dateLookup := make(map[string]int, len(dates))
	for _, d := range dates {
		dateLookup[d.OrderDate.Format(dateLayout)] = d.DateID
	}

	categoryDim := ExtractDimension(categories, "category_id", "category_name")
	_, productLookup, err := ResolveProducts(pairs, categoryDim)
	if err != nil {
		t.Fatalf("ResolveProducts failed: %v", err)
	}

	return Lookups{
		Dates:    dateLookup,
		Regions:  ExtractDimension(regions, "region_id", "region_name").Lookup(),
		Channels: ExtractDimension(channels, "channel_id", "channel_name").Lookup(),
		Segments: ExtractDimension(segments, "segment_id", "segment_name").Lookup(),
		Products: productLookup,
	}
}

func TestAssembleFacts(t *testing.T) {
	records := sampleRecords()
	lk := buildLookups(t, records)

	facts, err := AssembleFacts(records, lk)
	if err != nil {
		t.Fatalf("AssembleFacts failed: %v", err)
	}
	if len(facts) != len(records) {
		t.Fatalf("expected %d fact rows, got %d", len(records), len(facts))
	}

	f := facts[0]
	if f.OrderID != 100001 {
		t.Errorf("order_id = %d, want 100001", f.OrderID)
	}
	if f.DateID != 20240307 {
		t.Errorf("date_id = %d, want 20240307", f.DateID)
	}
	if f.RegionID != lk.Regions["West"] {
		t.Errorf("region_id = %d, want %d", f.RegionID, lk.Regions["West"])
	}
	if f.ProductID != lk.Products[ProductKey{Name: "Laptop", Category: "Electronics"}] {
		t.Errorf("unexpected product_id %d", f.ProductID)
	}

	// Measures pass through untouched.
	if f.UnitsSold != 2 || f.UnitPrice != 899.99 || f.NetRevenue != 1619.98 {
		t.Errorf("measures altered during assembly: %+v", f)
	}
}

func TestAssembleFactsReferentialClosure(t *testing.T) {
	records := sampleRecords()
	lk := buildLookups(t, records)

	facts, err := AssembleFacts(records, lk)
	if err != nil {
		t.Fatalf("AssembleFacts failed: %v", err)
	}

	regionIDs := map[int]bool{}
	for _, id := range lk.Regions {
		regionIDs[id] = true
	}
	for _, f := range facts {
		if !regionIDs[f.RegionID] {
			t.Errorf("fact %d references unknown region_id %d", f.OrderID, f.RegionID)
		}
	}
}

func TestAssembleFactsUnresolvedValue(t *testing.T) {
	records := sampleRecords()
	lk := buildLookups(t, records)

	tests := []struct {
		name       string
		mutate     func(*RawTransaction)
		wantColumn string
	}{
		{"unknown date", func(r *RawTransaction) { r.OrderDate = "1999-01-01" }, "order_date"},
		{"unknown region", func(r *RawTransaction) { r.Region = "Atlantis" }, "region"},
		{"unknown channel", func(r *RawTransaction) { r.Channel = "Carrier Pigeon" }, "channel"},
		{"unknown segment", func(r *RawTransaction) { r.CustomerSegment = "Ghosts" }, "customer_segment"},
		{"unknown product", func(r *RawTransaction) { r.ProductName = "Hoverboard" }, "product_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := make([]RawTransaction, len(records))
			copy(bad, records)
			tt.mutate(&bad[0])

			_, err := AssembleFacts(bad, lk)
			if err == nil {
				t.Fatal("expected resolution error, got nil")
			}
			var resErr *ResolutionError
			if !errors.As(err, &resErr) {
				t.Fatalf("expected *ResolutionError, got %T", err)
			}
			if resErr.Column != tt.wantColumn {
				t.Errorf("error column = %q, want %q", resErr.Column, tt.wantColumn)
			}
		})
	}
}
