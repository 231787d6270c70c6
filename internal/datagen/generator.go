//-------------------------------------------------------------------------
//
// Salestar Warehouse Builder
//
// Copyright (c) 2025 - 2026, the Salestar authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package datagen produces synthetic sales transactions with realistic
// seasonality, channel mix and price noise.
package datagen

import (
	"math"
	"time"

	"github.com/salestar/salestar/internal/logging"
	"github.com/salestar/salestar/internal/warehouse"
)

type product struct {
	name      string
	basePrice float64
}

type categoryProfile struct {
	name      string
	weight    float64
	costRatio float64
	products  []product
}

var categoryProfiles = []categoryProfile{
	{
		name: "Electronics", weight: 31, costRatio: 0.68,
		products: []product{
			{"Laptop", 899.99}, {"Smartphone", 649.00}, {"Tablet", 379.00},
			{"Monitor", 229.50}, {"Headphones", 89.99}, {"Wireless Mouse", 24.99},
		},
	},
	{
		name: "Furniture", weight: 20, costRatio: 0.55,
		products: []product{
			{"Office Desk", 320.50}, {"Ergonomic Chair", 275.00},
			{"Bookshelf", 145.75}, {"Filing Cabinet", 189.00},
		},
	},
	{
		name: "Office Supplies", weight: 24, costRatio: 0.48,
		products: []product{
			{"Printer Paper", 12.49}, {"Stapler", 8.50}, {"Pen Set", 15.25},
			{"Notebook Pack", 9.99}, {"Desk Organizer", 22.00},
		},
	},
	{
		name: "Apparel", weight: 17, costRatio: 0.42,
		products: []product{
			{"Polo Shirt", 34.99}, {"Jacket", 89.50},
			{"Running Shoes", 74.95}, {"Baseball Cap", 18.00},
		},
	},
	{
		name: "Food & Beverage", weight: 8, costRatio: 0.62,
		products: []product{
			{"Coffee Beans", 16.75}, {"Snack Box", 24.50}, {"Tea Sampler", 13.25},
		},
	},
}

var (
	regions       = []string{"Northeast", "Midwest", "South", "West"}
	regionWeights = []float64{24, 22, 31, 23}

	channels       = []string{"Online", "Retail", "Wholesale"}
	channelWeights = []float64{56, 30, 14}

	segments       = []string{"Consumer", "Corporate", "Small Business", "Government"}
	segmentWeights = []float64{52, 21, 14, 13}
)

// Average daily order volume scales with the calendar month; November
// and December carry the holiday surge.
var seasonality = map[time.Month]float64{
	time.January: 0.92, time.February: 0.88, time.March: 0.98,
	time.April: 1.00, time.May: 1.04, time.June: 1.02,
	time.July: 0.96, time.August: 0.99, time.September: 1.03,
	time.October: 1.08, time.November: 1.24, time.December: 1.38,
}

// Discount ranges per channel. Wholesale buys in volume and gets the
// deepest cuts.
var discountRange = map[string][2]float64{
	"Online":    {0.05, 0.18},
	"Retail":    {0.01, 0.12},
	"Wholesale": {0.10, 0.28},
}

const (
	baseDailyOrders = 30.0
	minDailyOrders  = 8
	firstOrderID    = 100000

	bulkOrderChance  = 0.008
	priceNoiseRatio  = 0.14
	costRatioStddev  = 0.04
	holidayBumpOdds  = 0.18
	maxDiscount      = 0.40
	minUnitPrice     = 3.0
	progressInterval = 10000
)

// Params controls a generation run.
type Params struct {
	StartDate time.Time
	EndDate   time.Time

	// Seed makes the run reproducible; zero picks a random seed.
	Seed int64
}

// Generate produces one synthetic transaction set covering every day in
// [StartDate, EndDate]. The same non-zero seed and date range always
// produce the same records.
func Generate(p Params) []warehouse.RawTransaction {
	f := NewFaker()
	if p.Seed != 0 {
		f = NewFakerWithSeed(uint64(p.Seed))
	}

	var records []warehouse.RawTransaction
	orderID := int64(firstOrderID)

	for day := p.StartDate; !day.After(p.EndDate); day = day.AddDate(0, 0, 1) {
		factor := seasonality[day.Month()]
		count := f.Poisson(baseDailyOrders * factor)
		if count < minDailyOrders {
			count = minDailyOrders
		}

		for i := 0; i < count; i++ {
			records = append(records, generateOrder(f, day, orderID))
			orderID++

			if len(records)%progressInterval == 0 {
				logging.Debug().
					Int("records", len(records)).
					Str("date", day.Format("2006-01-02")).
					Msg("Generation progress")
			}
		}
	}

	logging.Info().
		Int("records", len(records)).
		Str("start", p.StartDate.Format("2006-01-02")).
		Str("end", p.EndDate.Format("2006-01-02")).
		Msg("Generated transactions")

	return records
}

func generateOrder(f *Faker, day time.Time, orderID int64) warehouse.RawTransaction {
	weights := make([]float64, len(categoryProfiles))
	for i, c := range categoryProfiles {
		weights[i] = c.weight
	}
	cat := ChooseWeighted(f, categoryProfiles, weights)
	prod := Choose(f, cat.products)

	channel := ChooseWeighted(f, channels, channelWeights)

	units := f.Int(1, 4)
	if f.Float64(0, 1) < bulkOrderChance {
		units *= f.Int(6, 14)
	}

	price := round2(f.Normal(prod.basePrice, prod.basePrice*priceNoiseRatio))
	if price < minUnitPrice {
		price = minUnitPrice
	}

	bounds := discountRange[channel]
	discount := f.Float64(bounds[0], bounds[1])
	if m := day.Month(); m == time.November || m == time.December {
		if f.Float64(0, 1) < holidayBumpOdds {
			discount += f.Float64(0.02, 0.08)
		}
	}
	if discount > maxDiscount {
		discount = maxDiscount
	}
	discount = round4(discount)

	ratio := f.Normal(cat.costRatio, costRatioStddev)
	if ratio < 0.35 {
		ratio = 0.35
	} else if ratio > 0.90 {
		ratio = 0.90
	}

	gross := round2(float64(units) * price)
	net := round2(gross * (1 - discount))
	cost := round2(gross * ratio)
	profit := round2(net - cost)

	return warehouse.RawTransaction{
		OrderID:         orderID,
		OrderDate:       day.Format("2006-01-02"),
		Region:          ChooseWeighted(f, regions, regionWeights),
		Channel:         channel,
		CustomerSegment: ChooseWeighted(f, segments, segmentWeights),
		Category:        cat.name,
		ProductName:     prod.name,
		UnitsSold:       units,
		UnitPrice:       price,
		DiscountPct:     discount,
		GrossRevenue:    gross,
		NetRevenue:      net,
		Cost:            cost,
		Profit:          profit,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
