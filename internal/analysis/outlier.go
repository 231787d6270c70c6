//-------------------------------------------------------------------------
//
// Salestar Warehouse Builder
//
// Copyright (c) 2025 - 2026, the Salestar authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package analysis flags anomalous periods in warehouse revenue series.
package analysis

import (
	"math"
	"sort"
)

// DefaultThreshold is the z-score magnitude at which a month counts as
// an outlier.
const DefaultThreshold = 2.0

// MonthlyRevenue is one period of the revenue series under test.
type MonthlyRevenue struct {
	Period  string
	Revenue float64
}

// Outlier is a flagged period with its z-score.
type Outlier struct {
	MonthlyRevenue
	ZScore float64
}

// DetectOutliers flags every period whose revenue deviates from the
// series mean by at least threshold standard deviations. The standard
// deviation is the population form (divisor N). A flat series has zero
// deviation, so every z-score is defined as 0 and nothing is flagged.
// Results come back ordered by z-score descending, most anomalous
// first.
func DetectOutliers(series []MonthlyRevenue, threshold float64) []Outlier {
	if len(series) == 0 {
		return nil
	}

	var sum float64
	for _, m := range series {
		sum += m.Revenue
	}
	mean := sum / float64(len(series))

	var sqDiff float64
	for _, m := range series {
		d := m.Revenue - mean
		sqDiff += d * d
	}
	std := math.Sqrt(sqDiff / float64(len(series)))

	var out []Outlier
	for _, m := range series {
		z := 0.0
		if std > 0 {
			z = (m.Revenue - mean) / std
		}
		if math.Abs(z) >= threshold {
			out = append(out, Outlier{MonthlyRevenue: m, ZScore: z})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ZScore > out[j].ZScore
	})
	return out
}
