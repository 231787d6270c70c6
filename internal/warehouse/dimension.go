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
	"fmt"
	"sort"
	"time"
)

// ExtractDimension builds a single-column dimension from a column of
// natural-key values. Missing values are dropped, the remainder
// deduplicated and sorted (case-sensitive), and surrogate keys 1..N
// assigned in that order. An empty input yields an empty table, which
// is valid; fact resolution against it fails later if any row needs it.
func ExtractDimension(values []string, keyColumn, valueColumn string) DimensionTable {
	seen := make(map[string]struct{}, len(values))
	distinct := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		distinct = append(distinct, v)
	}
	sort.Strings(distinct)

	rows := make([]DimensionRow, len(distinct))
	for i, v := range distinct {
		rows[i] = DimensionRow{Key: i + 1, Value: v}
	}
	return DimensionTable{KeyColumn: keyColumn, ValueColumn: valueColumn, Rows: rows}
}

// BuildDateDimension builds the date dimension from the raw order-date
// column (ISO YYYY-MM-DD strings). Dates are deduplicated and sorted
// ascending; each row's DateID is the date reformatted as an 8-digit
// integer, computed directly from the date so two runs over the same
// input always agree.
func BuildDateDimension(rawDates []string) ([]DateRow, error) {
	seen := make(map[string]struct{}, len(rawDates))
	distinct := make([]string, 0, len(rawDates))
	for _, d := range rawDates {
		if d == "" {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		distinct = append(distinct, d)
	}
	// ISO dates sort chronologically as strings.
	sort.Strings(distinct)

	rows := make([]DateRow, 0, len(distinct))
	for _, d := range distinct {
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			return nil, fmt.Errorf("invalid order date %q: %w", d, err)
		}
		month := int(t.Month())
		rows = append(rows, DateRow{
			DateID:    t.Year()*10000 + month*100 + t.Day(),
			OrderDate: t,
			Year:      t.Year(),
			Month:     month,
			MonthName: t.Format("Jan"),
			Quarter:   fmt.Sprintf("Q%d", (month+2)/3),
		})
	}
	return rows, nil
}

// ResolveProducts builds the product dimension from the distinct
// (product, category) pairs. Uniqueness is on the pair, not the product
// name alone. Pairs are sorted by (category, name) before surrogate
// assignment, and each category is resolved against the already-built
// category dimension; a missing category is a referential error even
// though it cannot happen when both were built from the same raw set.
func ResolveProducts(pairs []ProductKey, categories DimensionTable) ([]ProductRow, map[ProductKey]int, error) {
	seen := make(map[ProductKey]struct{}, len(pairs))
	distinct := make([]ProductKey, 0, len(pairs))
	for _, p := range pairs {
		if p.Name == "" || p.Category == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		distinct = append(distinct, p)
	}
	sort.Slice(distinct, func(i, j int) bool {
		if distinct[i].Category != distinct[j].Category {
			return distinct[i].Category < distinct[j].Category
		}
		return distinct[i].Name < distinct[j].Name
	})

	categoryLookup := categories.Lookup()
	rows := make([]ProductRow, 0, len(distinct))
	lookup := make(map[ProductKey]int, len(distinct))
	for i, p := range distinct {
		categoryID, ok := categoryLookup[p.Category]
		if !ok {
			return nil, nil, &ResolutionError{Column: "category", Value: p.Category}
		}
		id := i + 1
		rows = append(rows, ProductRow{
			ProductID:   id,
			ProductName: p.Name,
			CategoryID:  categoryID,
		})
		lookup[p] = id
	}
	return rows, lookup, nil
}
