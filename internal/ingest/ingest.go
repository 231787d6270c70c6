//-------------------------------------------------------------------------
//
// Salestar Warehouse Builder
//
// Copyright (c) 2025 - 2026, the Salestar authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package ingest reads and writes the raw sales transaction CSV that
// feeds the warehouse build.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/salestar/salestar/internal/logging"
	"github.com/salestar/salestar/internal/warehouse"
)

// Header is the exact column order of the raw transaction CSV. Readers
// reject files whose header deviates from it in any way.
var Header = []string{
	"order_id", "order_date", "region", "channel", "customer_segment",
	"category", "product_name", "units_sold", "unit_price", "discount_pct",
	"gross_revenue", "net_revenue", "cost", "profit",
}

// SourceNotFoundError reports a missing input file. It is distinct from
// parse errors so callers can tell "nothing to build from" apart from
// "corrupt data".
type SourceNotFoundError struct {
	Path string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("source file not found: %s", e.Path)
}

// ReadTransactions loads the raw transaction CSV at path. A missing
// file yields *SourceNotFoundError; a malformed header or row yields a
// parse error naming the line.
func ReadTransactions(path string) ([]warehouse.RawTransaction, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &SourceNotFoundError{Path: path}
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(Header)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	if err := validateHeader(header); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var records []warehouse.RawTransaction
	line := 1
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		rec, err := parseRecord(fields)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		records = append(records, rec)
	}

	logging.Debug().
		Str("path", path).
		Int("records", len(records)).
		Msg("Loaded raw transactions")

	return records, nil
}

func validateHeader(header []string) error {
	if len(header) != len(Header) {
		return fmt.Errorf("header has %d columns, want %d", len(header), len(Header))
	}
	for i, col := range header {
		if col != Header[i] {
			return fmt.Errorf("header column %d is %q, want %q", i+1, col, Header[i])
		}
	}
	return nil
}

func parseRecord(fields []string) (warehouse.RawTransaction, error) {
	var rec warehouse.RawTransaction

	orderID, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return rec, fmt.Errorf("order_id %q: %w", fields[0], err)
	}
	unitsSold, err := strconv.Atoi(fields[7])
	if err != nil {
		return rec, fmt.Errorf("units_sold %q: %w", fields[7], err)
	}

	measures := make([]float64, 6)
	for i, name := range []string{"unit_price", "discount_pct", "gross_revenue", "net_revenue", "cost", "profit"} {
		v, err := strconv.ParseFloat(fields[8+i], 64)
		if err != nil {
			return rec, fmt.Errorf("%s %q: %w", name, fields[8+i], err)
		}
		measures[i] = v
	}

	rec = warehouse.RawTransaction{
		OrderID:         orderID,
		OrderDate:       fields[1],
		Region:          fields[2],
		Channel:         fields[3],
		CustomerSegment: fields[4],
		Category:        fields[5],
		ProductName:     fields[6],
		UnitsSold:       unitsSold,
		UnitPrice:       measures[0],
		DiscountPct:     measures[1],
		GrossRevenue:    measures[2],
		NetRevenue:      measures[3],
		Cost:            measures[4],
		Profit:          measures[5],
	}
	return rec, nil
}

// WriteTransactions writes records to a CSV at path, creating parent
// directories as needed. The generator uses this to emit its output.
func WriteTransactions(path string, records []warehouse.RawTransaction) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			strconv.FormatInt(rec.OrderID, 10),
			rec.OrderDate,
			rec.Region,
			rec.Channel,
			rec.CustomerSegment,
			rec.Category,
			rec.ProductName,
			strconv.Itoa(rec.UnitsSold),
			formatMoney(rec.UnitPrice),
			strconv.FormatFloat(rec.DiscountPct, 'f', 4, 64),
			formatMoney(rec.GrossRevenue),
			formatMoney(rec.NetRevenue),
			formatMoney(rec.Cost),
			formatMoney(rec.Profit),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Sync()
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
