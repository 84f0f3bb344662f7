package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/soulfoods/morsels/internal/model"
)

const (
	colProduct  = "product"
	colQuantity = "quantity"
	colPrice    = "price"
	colDate     = "date"
	colRegion   = "region"

	currencySign = "$"
	utf8BOM      = "\ufeff"
)

// requiredColumns lists the header columns every transaction file must carry.
var requiredColumns = []string{colProduct, colQuantity, colPrice, colDate, colRegion}

// columnIndex maps a required column name to its position in a row.
type columnIndex map[string]int

// ReadRaw reads a transaction CSV. Header names are matched case-insensitively
// and in any order; extra columns are ignored. source names the input in errors.
// The product field is kept verbatim so product matching stays exact.
func ReadRaw(r io.Reader, source string) ([]model.RawRecord, error) {
	cr := csv.NewReader(r)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}

	var header []string
	if len(records) > 0 {
		header = records[0]
	}
	idx, err := mapHeader(header, source)
	if err != nil {
		return nil, err
	}

	if len(records) <= 1 {
		return nil, nil
	}

	raws := make([]model.RawRecord, 0, len(records)-1)
	for i, rec := range records[1:] {
		raw, err := parseRow(rec, idx, source, i+2)
		if err != nil {
			return nil, err
		}
		raws = append(raws, raw)
	}
	return raws, nil
}

func mapHeader(header []string, source string) (columnIndex, error) {
	idx := make(columnIndex, len(requiredColumns))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		name := strings.ToLower(strings.TrimSpace(h))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, &ColumnError{Source: source, Column: col}
		}
	}
	return idx, nil
}

func parseRow(rec []string, idx columnIndex, source string, line int) (model.RawRecord, error) {
	field := func(col string) string {
		return strings.TrimSpace(rec[idx[col]])
	}
	fail := func(col string, err error) error {
		return &ParseError{Source: source, Line: line, Column: col, Value: field(col), Err: err}
	}

	qty, err := strconv.ParseInt(field(colQuantity), 10, 64)
	if err != nil {
		return model.RawRecord{}, fail(colQuantity, err)
	}

	price, err := decimal.NewFromString(strings.TrimPrefix(field(colPrice), currencySign))
	if err != nil {
		return model.RawRecord{}, fail(colPrice, err)
	}

	date, err := time.Parse(model.DateFormat, field(colDate))
	if err != nil {
		return model.RawRecord{}, fail(colDate, err)
	}

	return model.RawRecord{
		Product:  rec[idx[colProduct]],
		Quantity: qty,
		Price:    price,
		Date:     date,
		Region:   field(colRegion),
	}, nil
}
