// Package aggregate turns normalized sales records into a daily time series,
// optionally restricted to one region.
package aggregate

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/soulfoods/morsels/internal/dataset"
	"github.com/soulfoods/morsels/internal/model"
)

// ErrInvalidSelector reports a region selector that names nothing.
var ErrInvalidSelector = errors.New("invalid region selector")

// Selector restricts aggregation to one region, or to none with All.
type Selector string

// All selects every region.
const All Selector = "all"

// ParseSelector normalizes a user supplied selector. Matching is
// case-insensitive, so the result is lower-cased.
func ParseSelector(s string) (Selector, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", ErrInvalidSelector
	}
	return Selector(s), nil
}

// Matches reports whether a record in region passes the selector.
func (s Selector) Matches(region string) bool {
	return s == All || strings.EqualFold(string(s), region)
}

// Choices lists the selectors offered for ds: All first, then each region in
// sorted order. A data region named "all" is only reachable through All.
func Choices(ds *dataset.Dataset) []Selector {
	choices := []Selector{All}
	for _, r := range ds.Regions() {
		if Selector(r) == All {
			continue
		}
		choices = append(choices, Selector(r))
	}
	return choices
}

// Aggregate filters ds by sel, sums sales per date and returns the totals in
// ascending date order. A selector matching no region yields an empty series.
func Aggregate(ds *dataset.Dataset, sel Selector) []model.SeriesPoint {
	totals := make(map[time.Time]decimal.Decimal)
	for _, r := range ds.Records() {
		if !sel.Matches(r.Region) {
			continue
		}
		day := model.Day(r.Date)
		totals[day] = totals[day].Add(r.Sales)
	}

	points := make([]model.SeriesPoint, 0, len(totals))
	for day, total := range totals {
		points = append(points, model.SeriesPoint{Date: day, TotalSales: total})
	}
	slices.SortFunc(points, func(a, b model.SeriesPoint) int {
		return a.Date.Compare(b.Date)
	})
	return points
}

// Total sums a series.
func Total(points []model.SeriesPoint) decimal.Decimal {
	total := decimal.Zero
	for _, p := range points {
		total = total.Add(p.TotalSales)
	}
	return total
}
