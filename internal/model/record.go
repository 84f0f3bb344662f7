package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the calendar date layout used in every CSV the tool reads or writes.
const DateFormat = "2006-01-02"

// RawRecord is one row of a transaction CSV as it arrives from the shop.
type RawRecord struct {
	Product  string
	Quantity int64
	Price    decimal.Decimal
	Date     time.Time
	Region   string
}

// Sales returns quantity × price.
func (r RawRecord) Sales() decimal.Decimal {
	return r.Price.Mul(decimal.NewFromInt(r.Quantity))
}

// Record is a normalized sales row: one target-product line with its revenue.
type Record struct {
	Sales  decimal.Decimal
	Date   time.Time // UTC midnight
	Region string    // lower-cased
}

// SeriesPoint is the total sales for a single day.
type SeriesPoint struct {
	Date       time.Time
	TotalSales decimal.Decimal
}

// Day truncates t to a calendar date at UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
