package warehouse

// Lookups holds the natural-key to surrogate-key maps produced by the
// dimension builders. They are threaded into AssembleFacts explicitly
// rather than shared as ambient state, so extraction and assembly stay
// independently testable.
type Lookups struct {
	Dates    map[string]int
	Regions  map[string]int
	Channels map[string]int
	Segments map[string]int
	Products map[ProductKey]int
}

// AssembleFacts rewrites every raw record into a fact row by replacing
// each natural-key column with its surrogate key. Measures pass through
// unchanged. Any lookup miss returns a ResolutionError naming the
// offending column and value; a miss is never coerced to a default key.
func AssembleFacts(records []RawTransaction, lk Lookups) ([]FactRow, error) {
	facts := make([]FactRow, 0, len(records))
	for _, r := range records {
		dateID, ok := lk.Dates[r.OrderDate]
		if !ok {
			return nil, &ResolutionError{Column: "order_date", Value: r.OrderDate}
		}
		regionID, ok := lk.Regions[r.Region]
		if !ok {
			return nil, &ResolutionError{Column: "region", Value: r.Region}
		}
		channelID, ok := lk.Channels[r.Channel]
		if !ok {
			return nil, &ResolutionError{Column: "channel", Value: r.Channel}
		}
		segmentID, ok := lk.Segments[r.CustomerSegment]
		if !ok {
			return nil, &ResolutionError{Column: "customer_segment", Value: r.CustomerSegment}
		}
		productID, ok := lk.Products[ProductKey{Name: r.ProductName, Category: r.Category}]
		if !ok {
			return nil, &ResolutionError{
				Column: "product_name",
				Value:  r.ProductName + " (" + r.Category + ")",
			}
		}

		facts = append(facts, FactRow{
			OrderID:      r.OrderID,
			DateID:       dateID,
			RegionID:     regionID,
			ChannelID:    channelID,
			SegmentID:    segmentID,
			ProductID:    productID,
			UnitsSold:    r.UnitsSold,
			UnitPrice:    r.UnitPrice,
			DiscountPct:  r.DiscountPct,
			GrossRevenue: r.GrossRevenue,
			NetRevenue:   r.NetRevenue,
			Cost:         r.Cost,
			Profit:       r.Profit,
		})
	}
	return facts, nil
}
