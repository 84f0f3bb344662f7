package ingest

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soulfoods/morsels/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

const scenarioCSV = `product,quantity,price,date,region
Pink Morsels,2,3.5,2021-01-10,North
Pink Morsels,1,3.5,2021-01-10,South
Other,5,1.0,2021-01-10,North
`

func TestNormalize_Scenario(t *testing.T) {
	records, err := Normalize([]Source{ReaderSource("scenario.csv", strings.NewReader(scenarioCSV))}, DefaultProduct)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.True(t, records[0].Sales.Equal(dec("7.0")), "sales: got %s", records[0].Sales)
	assert.True(t, records[1].Sales.Equal(dec("3.5")), "sales: got %s", records[1].Sales)
	for _, r := range records {
		assert.Equal(t, date(2021, 1, 10), r.Date)
	}
	assert.Equal(t, "north", records[0].Region)
	assert.Equal(t, "south", records[1].Region)
}

func TestNormalize_MultipleSourcesKeepOrder(t *testing.T) {
	sources := []Source{
		FileSource(filepath.Join("..", "..", "testdata", "transactions_a.csv")),
		FileSource(filepath.Join("..", "..", "testdata", "transactions_b.csv")),
	}
	records, err := Normalize(sources, DefaultProduct)
	require.NoError(t, err)
	require.Len(t, records, 5)

	regions := make([]string, len(records))
	for i, r := range records {
		regions[i] = r.Region
	}
	assert.Equal(t, []string{"north", "south", "east", "west", "north"}, regions)
	assert.Equal(t, "30.00", records[0].Sales.StringFixed(2))
	assert.Equal(t, "15.00", records[3].Sales.StringFixed(2))
}

func TestNormalize_OnlyTargetProduct(t *testing.T) {
	raws := []model.RawRecord{
		{Product: "Pink Morsels", Quantity: 1, Price: dec("1"), Date: date(2021, 1, 1), Region: "NORTH"},
		{Product: "pink morsels", Quantity: 1, Price: dec("1"), Date: date(2021, 1, 1), Region: "north"},
		{Product: "PINK MORSELS", Quantity: 1, Price: dec("1"), Date: date(2021, 1, 1), Region: "north"},
		{Product: "Pink Morsels ", Quantity: 1, Price: dec("1"), Date: date(2021, 1, 1), Region: "north"},
		{Product: "Gold Morsels", Quantity: 1, Price: dec("1"), Date: date(2021, 1, 1), Region: "north"},
	}
	records := NormalizeRecords(raws, DefaultProduct)
	require.Len(t, records, 1)
	assert.Equal(t, "north", records[0].Region)
}

func TestNormalize_PaddedProductIsNotTarget(t *testing.T) {
	in := "product,quantity,price,date,region\n" +
		"  Pink Morsels,2,3.5,2021-01-10,north\n" +
		"Pink Morsels ,1,3.5,2021-01-10,north\n" +
		"Pink Morsels, 4 , 1.5 ,2021-01-11, South\n"
	records, err := Normalize([]Source{ReaderSource("padded.csv", strings.NewReader(in))}, DefaultProduct)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "6.00", records[0].Sales.StringFixed(2))
	assert.Equal(t, "south", records[0].Region)
}

func TestReadRaw_KeepsProductVerbatim(t *testing.T) {
	in := "product,quantity,price,date,region\n  Pink Morsels,2,3.5,2021-01-10,north\n"
	raws, err := ReadRaw(strings.NewReader(in), "padded.csv")
	require.NoError(t, err)
	require.Len(t, raws, 1)
	assert.Equal(t, "  Pink Morsels", raws[0].Product)
}

func TestNormalize_EmptyAfterFilter(t *testing.T) {
	in := "product,quantity,price,date,region\nOther,5,1.0,2021-01-10,North\n"
	records, err := Normalize([]Source{ReaderSource("other.csv", strings.NewReader(in))}, DefaultProduct)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestNormalize_NoSources(t *testing.T) {
	records, err := Normalize(nil, DefaultProduct)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestNormalize_MissingColumnAborts(t *testing.T) {
	good := ReaderSource("good.csv", strings.NewReader(scenarioCSV))
	bad := ReaderSource("bad.csv", strings.NewReader("product,quantity,price,date\n"))
	_, err := Normalize([]Source{good, bad}, DefaultProduct)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "bad.csv")
	assert.Contains(t, err.Error(), "region")
}

func TestNormalize_OpenError(t *testing.T) {
	src := Source{Name: "gone.csv", Open: func() (io.ReadCloser, error) { return nil, errors.New("boom") }}
	_, err := Normalize([]Source{src}, DefaultProduct)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening gone.csv")
}

func TestNormalize_MissingFile(t *testing.T) {
	_, err := Normalize([]Source{FileSource(filepath.Join(t.TempDir(), "nope.csv"))}, DefaultProduct)
	require.Error(t, err)
}
