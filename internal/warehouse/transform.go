//-------------------------------------------------------------------------
//
// Salestar Warehouse Builder
//
// Copyright (c) 2025 - 2026, the Salestar authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

// Transform runs the full star-schema transform over a raw record set:
// dimension extraction, composite product resolution, then fact
// assembly. Each stage's output is a full input to the next, so the
// stages run strictly in sequence. Given identical input the result is
// identical, which is what makes warehouse rebuilds reproducible.
func Transform(records []RawTransaction) (*Warehouse, error) {
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
		return nil, err
	}
	regionDim := ExtractDimension(regions, "region_id", "region_name")
	channelDim := ExtractDimension(channels, "channel_id", "channel_name")
	segmentDim := ExtractDimension(segments, "segment_id", "segment_name")
	categoryDim := ExtractDimension(categories, "category_id", "category_name")

	products, productLookup, err := ResolveProducts(pairs, categoryDim)
	if err != nil {
		return nil, err
	}

	dateLookup := make(map[string]int, len(dates))
	for _, d := range dates {
		dateLookup[d.OrderDate.Format(dateLayout)] = d.DateID
	}

	facts, err := AssembleFacts(records, Lookups{
		Dates:    dateLookup,
		Regions:  regionDim.Lookup(),
		Channels: channelDim.Lookup(),
		Segments: segmentDim.Lookup(),
		Products: productLookup,
	})
	if err != nil {
		return nil, err
	}

	return &Warehouse{
		Dates:      dates,
		Regions:    regionDim,
		Channels:   channelDim,
		Segments:   segmentDim,
		Categories: categoryDim,
		Products:   products,
		Facts:      facts,
	}, nil
}
