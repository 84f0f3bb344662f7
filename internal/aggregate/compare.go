package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/soulfoods/morsels/internal/model"
)

// Period summarizes the days on one side of a pivot date.
type Period struct {
	Days     int
	Total    decimal.Decimal
	DailyAvg decimal.Decimal
	First    time.Time
	Last     time.Time
}

// Comparison splits a series at a pivot date. Before holds days strictly
// earlier than the pivot; After holds the pivot day and later.
type Comparison struct {
	Pivot  time.Time
	Before Period
	After  Period
}

// Change returns the relative change in average daily sales from Before to
// After, or false when Before has no sales to compare against.
func (c Comparison) Change() (decimal.Decimal, bool) {
	if c.Before.DailyAvg.IsZero() {
		return decimal.Zero, false
	}
	return c.After.DailyAvg.Sub(c.Before.DailyAvg).Div(c.Before.DailyAvg), true
}

// Compare splits points at pivot and totals each side.
func Compare(points []model.SeriesPoint, pivot time.Time) Comparison {
	pivot = model.Day(pivot)
	c := Comparison{Pivot: pivot, Before: Period{Total: decimal.Zero}, After: Period{Total: decimal.Zero}}
	for _, p := range points {
		side := &c.After
		if p.Date.Before(pivot) {
			side = &c.Before
		}
		if side.Days == 0 || p.Date.Before(side.First) {
			side.First = p.Date
		}
		if side.Days == 0 || p.Date.After(side.Last) {
			side.Last = p.Date
		}
		side.Days++
		side.Total = side.Total.Add(p.TotalSales)
	}
	c.Before.DailyAvg = average(c.Before)
	c.After.DailyAvg = average(c.After)
	return c
}

func average(p Period) decimal.Decimal {
	if p.Days == 0 {
		return decimal.Zero
	}
	return p.Total.Div(decimal.NewFromInt(int64(p.Days)))
}
