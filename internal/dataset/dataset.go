package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/soulfoods/morsels/internal/model"
)

// Dataset is the read-only set of normalized sales records loaded at startup.
// Nothing mutates it after construction, so it is safe to share between
// concurrent requests.
type Dataset struct {
	records []model.Record
	regions []string
}

// New builds a Dataset from a copy of records.
func New(records []model.Record) *Dataset {
	own := slices.Clone(records)

	seen := make(map[string]bool)
	var regions []string
	for _, r := range own {
		if !seen[r.Region] {
			seen[r.Region] = true
			regions = append(regions, r.Region)
		}
	}
	slices.Sort(regions)

	return &Dataset{records: own, regions: regions}
}

// Load reads a normalized sales file and returns a Dataset.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sales file: %w", err)
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("reading sales file %s: %w", path, err)
	}
	return New(records), nil
}

// Save writes records to path sorted by date, creating parent directories.
func Save(path string, records []model.Record) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating sales file: %w", err)
	}
	defer f.Close()

	if err := WriteRecords(f, SortByDate(records)); err != nil {
		return fmt.Errorf("writing sales file: %w", err)
	}
	return f.Close()
}

// SortByDate returns a copy of records ordered by date. Records sharing a date
// keep their relative order.
func SortByDate(records []model.Record) []model.Record {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b model.Record) int {
		return a.Date.Compare(b.Date)
	})
	return sorted
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns a copy of all records.
func (d *Dataset) Records() []model.Record {
	return slices.Clone(d.records)
}

// Regions returns the distinct regions, sorted.
func (d *Dataset) Regions() []string {
	return slices.Clone(d.regions)
}

// HasRegion reports whether region occurs in the data, ignoring case.
func (d *Dataset) HasRegion(region string) bool {
	_, found := slices.BinarySearch(d.regions, strings.ToLower(region))
	return found
}

// DateRange returns the earliest and latest record dates.
func (d *Dataset) DateRange() (first, last time.Time, ok bool) {
	for i, r := range d.records {
		if i == 0 || r.Date.Before(first) {
			first = r.Date
		}
		if i == 0 || r.Date.After(last) {
			last = r.Date
		}
	}
	return first, last, len(d.records) > 0
}

// Total returns the sum of all sales.
func (d *Dataset) Total() decimal.Decimal {
	total := decimal.Zero
	for _, r := range d.records {
		total = total.Add(r.Sales)
	}
	return total
}
