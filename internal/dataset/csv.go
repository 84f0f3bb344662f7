package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/soulfoods/morsels/internal/model"
)

// Header is the CSV header of the normalized sales file.
const Header = "sales,date,region"

const (
	numFields = 3
	colSales  = 0
	colDate   = 1
	colRegion = 2
)

// ReadRecords reads all records from a normalized sales CSV.
func ReadRecords(r io.Reader) ([]model.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading sales CSV: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}
	if err := checkHeader(rows[0]); err != nil {
		return nil, err
	}

	var records []model.Record
	for i, row := range rows[1:] {
		rec, err := UnmarshalRecord(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// WriteRecords writes records to w, including the header.
func WriteRecords(w io.Writer, records []model.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, rec := range records {
		if err := cw.Write(MarshalRecord(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRecord converts a Record to a CSV row.
func MarshalRecord(rec model.Record) []string {
	row := make([]string, numFields)
	row[colSales] = formatSales(rec.Sales)
	row[colDate] = rec.Date.Format(model.DateFormat)
	row[colRegion] = rec.Region
	return row
}

// formatSales writes at least two decimal places and never rounds, so totals
// computed from a reloaded file match the ones computed at ingestion.
func formatSales(d decimal.Decimal) string {
	if d.Exponent() < -2 {
		return d.String()
	}
	return d.StringFixed(2)
}

// UnmarshalRecord converts a CSV row to a Record.
func UnmarshalRecord(row []string) (model.Record, error) {
	if len(row) != numFields {
		return model.Record{}, fmt.Errorf("expected %d fields, got %d", numFields, len(row))
	}

	sales, err := decimal.NewFromString(row[colSales])
	if err != nil {
		return model.Record{}, fmt.Errorf("parsing sales %q: %w", row[colSales], err)
	}

	date, err := time.Parse(model.DateFormat, row[colDate])
	if err != nil {
		return model.Record{}, fmt.Errorf("parsing date %q: %w", row[colDate], err)
	}

	return model.Record{
		Sales:  sales,
		Date:   date,
		Region: strings.ToLower(row[colRegion]),
	}, nil
}

func checkHeader(row []string) error {
	want := strings.Split(Header, ",")
	for i, name := range want {
		if !strings.EqualFold(strings.TrimSpace(row[i]), name) {
			return fmt.Errorf("unexpected header %q, want %q", strings.Join(row, ","), Header)
		}
	}
	return nil
}
