// Package chart describes the sales line chart declaratively. Rendering is left
// to the browser; this package only decides what goes on it.
package chart

import (
	"time"

	"github.com/soulfoods/morsels/internal/model"
)

const (
	defaultTitle     = "Pink Morsels Sales Over Time"
	defaultSeries    = "Sales"
	defaultLineColor = "#db2777"
	noDataMessage    = "No sales data for this selection"
)

// PriceIncreaseDate is the day the Pink Morsel price went up.
var PriceIncreaseDate = time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC)

// Figure is a line chart ready to be serialized for the page.
type Figure struct {
	ChartType string   `json:"chartType"`
	Title     string   `json:"title"`
	Subtitle  string   `json:"subtitle,omitempty"`
	XAxis     string   `json:"xAxis"`
	YAxis     string   `json:"yAxis"`
	Series    []Series `json:"series"`
	Markers   []Marker `json:"markers"`
	Empty     bool     `json:"empty"`
	Message   string   `json:"message,omitempty"`
}

// Series is one line on the chart.
type Series struct {
	Name  string  `json:"name"`
	Color string  `json:"color"`
	Data  []Point `json:"data"`
}

// Point is a date on the X axis and a sales total on the Y axis.
type Point struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Marker is a vertical reference line with an annotation.
type Marker struct {
	Date     string `json:"date"`
	Label    string `json:"label"`
	Dash     string `json:"dash"`
	Position string `json:"position"`
}

// Options controls the fixed decorations of a Figure.
type Options struct {
	Title          string
	Subtitle       string
	ReferenceDate  time.Time
	ReferenceLabel string
}

// DefaultOptions returns the dashboard's standard chart decorations.
func DefaultOptions() Options {
	return Options{
		Title:         defaultTitle,
		ReferenceDate: PriceIncreaseDate,
	}
}

// ReferenceLabel returns the annotation text for a reference date.
func ReferenceLabel(day time.Time) string {
	return "Price Increase (" + day.Format(model.DateFormat) + ")"
}

// Build lays points out as a single line series with the reference marker.
// An empty series still carries its axes and marker, flagged Empty.
func Build(points []model.SeriesPoint, opts Options) Figure {
	title := opts.Title
	if title == "" {
		title = defaultTitle
	}

	data := make([]Point, 0, len(points))
	for _, p := range points {
		data = append(data, Point{
			Date:  p.Date.Format(model.DateFormat),
			Value: p.TotalSales.Round(2).InexactFloat64(),
		})
	}

	fig := Figure{
		ChartType: "line",
		Title:     title,
		Subtitle:  opts.Subtitle,
		XAxis:     "Date",
		YAxis:     "Sales",
		Series: []Series{{
			Name:  defaultSeries,
			Color: defaultLineColor,
			Data:  data,
		}},
		Markers: []Marker{},
	}

	if !opts.ReferenceDate.IsZero() {
		label := opts.ReferenceLabel
		if label == "" {
			label = ReferenceLabel(opts.ReferenceDate)
		}
		fig.Markers = append(fig.Markers, Marker{
			Date:     opts.ReferenceDate.Format(model.DateFormat),
			Label:    label,
			Dash:     "dash",
			Position: "top left",
		})
	}

	if len(data) == 0 {
		fig.Empty = true
		fig.Message = noDataMessage
	}
	return fig
}
