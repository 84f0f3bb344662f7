package chart

import (
	"encoding/json"
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

func TestBuild(t *testing.T) {
	points := []model.SeriesPoint{
		{Date: date(2021, 1, 10), TotalSales: decimal.RequireFromString("10.5")},
		{Date: date(2021, 1, 16), TotalSales: decimal.RequireFromString("99.999")},
	}

	fig := Build(points, DefaultOptions())
	assert.Equal(t, "line", fig.ChartType)
	assert.Equal(t, "Pink Morsels Sales Over Time", fig.Title)
	assert.Equal(t, "Date", fig.XAxis)
	assert.Equal(t, "Sales", fig.YAxis)
	assert.False(t, fig.Empty)
	assert.Empty(t, fig.Message)

	require.Len(t, fig.Series, 1)
	require.Len(t, fig.Series[0].Data, 2)
	assert.Equal(t, Point{Date: "2021-01-10", Value: 10.5}, fig.Series[0].Data[0])
	assert.InDelta(t, 100.0, fig.Series[0].Data[1].Value, 0.0001)

	require.Len(t, fig.Markers, 1)
	assert.Equal(t, Marker{
		Date:     "2021-01-15",
		Label:    "Price Increase (2021-01-15)",
		Dash:     "dash",
		Position: "top left",
	}, fig.Markers[0])
}

func TestBuild_Empty(t *testing.T) {
	fig := Build(nil, DefaultOptions())
	assert.True(t, fig.Empty)
	assert.Equal(t, noDataMessage, fig.Message)
	require.Len(t, fig.Series, 1)
	assert.NotNil(t, fig.Series[0].Data)
	assert.Len(t, fig.Markers, 1, "marker is shown even without data")
}

func TestBuild_CustomOptions(t *testing.T) {
	fig := Build(nil, Options{Title: "North", Subtitle: "Region: north", ReferenceLabel: "ignored"})
	assert.Equal(t, "North", fig.Title)
	assert.Equal(t, "Region: north", fig.Subtitle)
	assert.Empty(t, fig.Markers, "no reference date means no marker")

	fig = Build(nil, Options{ReferenceDate: date(2022, 3, 1), ReferenceLabel: "Promo"})
	assert.Equal(t, defaultTitle, fig.Title)
	require.Len(t, fig.Markers, 1)
	assert.Equal(t, "Promo", fig.Markers[0].Label)
	assert.Equal(t, "2022-03-01", fig.Markers[0].Date)
}

func TestFigureJSON(t *testing.T) {
	fig := Build([]model.SeriesPoint{{Date: date(2021, 1, 10), TotalSales: decimal.RequireFromString("7")}}, DefaultOptions())
	data, err := json.Marshal(fig)
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"chartType":"line"`)
	assert.Contains(t, s, `"data":[{"date":"2021-01-10","value":7}]`)
	assert.Contains(t, s, `"markers":[{"date":"2021-01-15"`)
	assert.Contains(t, s, `"empty":false`)
	assert.NotContains(t, s, `"message"`)
}
