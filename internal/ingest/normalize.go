package ingest

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/soulfoods/morsels/internal/model"
)

// DefaultProduct is the product the sales dashboard tracks.
const DefaultProduct = "Pink Morsels"

// Source is a named transaction input that can be opened once.
type Source struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// FileSource returns a Source reading the file at path.
func FileSource(path string) Source {
	return Source{
		Name: path,
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// ReaderSource wraps an in-memory reader as a Source.
func ReaderSource(name string, r io.Reader) Source {
	return Source{
		Name: name,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(r), nil },
	}
}

// Normalize reads every source in order and returns the target product's rows
// as normalized records. Row order is preserved across sources. An input with
// no matching rows yields an empty, non-nil slice and no error.
func Normalize(sources []Source, product string) ([]model.Record, error) {
	records := []model.Record{}
	for _, src := range sources {
		raws, err := readSource(src)
		if err != nil {
			return nil, err
		}
		records = append(records, NormalizeRecords(raws, product)...)
	}
	return records, nil
}

// NormalizeRecords filters raws to product (exact match) and projects them to
// {sales, date, region} with the region lower-cased.
func NormalizeRecords(raws []model.RawRecord, product string) []model.Record {
	records := make([]model.Record, 0, len(raws))
	for _, raw := range raws {
		if raw.Product != product {
			continue
		}
		records = append(records, model.Record{
			Sales:  raw.Sales(),
			Date:   raw.Date,
			Region: strings.ToLower(raw.Region),
		})
	}
	return records
}

func readSource(src Source) ([]model.RawRecord, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", src.Name, err)
	}
	defer rc.Close()

	return ReadRaw(rc, src.Name)
}
