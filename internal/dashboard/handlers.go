package dashboard

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/soulfoods/morsels/internal/aggregate"
	"github.com/soulfoods/morsels/internal/chart"
	"github.com/soulfoods/morsels/internal/logging"
	"github.com/soulfoods/morsels/internal/model"
)

// SeriesResponse is the chart for one selector plus its summary figures.
type SeriesResponse struct {
	Region     string          `json:"region"`
	Total      string          `json:"total"`
	Figure     chart.Figure    `json:"figure"`
	Comparison *ComparisonView `json:"comparison,omitempty"`
}

// ComparisonView reports sales before and after the reference date.
type ComparisonView struct {
	Pivot          string `json:"pivot"`
	BeforeDays     int    `json:"beforeDays"`
	BeforeTotal    string `json:"beforeTotal"`
	BeforeDailyAvg string `json:"beforeDailyAvg"`
	AfterDays      int    `json:"afterDays"`
	AfterTotal     string `json:"afterTotal"`
	AfterDailyAvg  string `json:"afterDailyAvg"`
	Change         string `json:"change,omitempty"`
}

type regionsResponse struct {
	Regions []string `json:"regions"`
}

type pageData struct {
	Heading string
	Goal    string
	Regions []string
	Initial SeriesResponse
}

// Series recomputes the chart for sel. The page calls it through
// /api/series each time the region selector changes.
func (s *Server) Series(sel aggregate.Selector) SeriesResponse {
	points := aggregate.Aggregate(s.data, sel)

	opts := s.opts.Chart
	if opts.Subtitle == "" {
		opts.Subtitle = subtitle(sel)
	}

	resp := SeriesResponse{
		Region: string(sel),
		Total:  aggregate.Total(points).StringFixed(2),
		Figure: chart.Build(points, opts),
	}
	if !opts.ReferenceDate.IsZero() {
		resp.Comparison = comparisonView(aggregate.Compare(points, opts.ReferenceDate))
	}
	return resp
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	data := pageData{
		Heading: s.opts.Heading,
		Goal:    goal(s.opts.Chart),
		Regions: s.choices(),
		Initial: s.initial,
	}
	c.Type("html", "utf-8")
	return pageTemplate.Execute(c.Response().BodyWriter(), data)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.SendString("ok")
}

func (s *Server) handleRegions(c *fiber.Ctx) error {
	return c.JSON(regionsResponse{
		Regions: s.choices(),
	})
}

func (s *Server) handleSeries(c *fiber.Ctx) error {
	raw := string(aggregate.All)
	if args := c.Context().QueryArgs(); args.Has("region") {
		raw = string(args.Peek("region"))
	}

	sel, err := aggregate.ParseSelector(raw)
	if err != nil {
		s.log.Warn("rejected selector", logging.FieldRegion, raw, logging.FieldError, err)
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	resp := s.Series(sel)
	if resp.Figure.Empty {
		s.log.Debug("no data for selector", logging.FieldRegion, string(sel))
	}
	return c.JSON(resp)
}

func (s *Server) choices() []string {
	sels := aggregate.Choices(s.data)
	out := make([]string, len(sels))
	for i, sel := range sels {
		out[i] = string(sel)
	}
	return out
}

func subtitle(sel aggregate.Selector) string {
	if sel == aggregate.All {
		return "All regions"
	}
	return "Region: " + string(sel)
}

func goal(opts chart.Options) string {
	if opts.ReferenceDate.IsZero() {
		return "Daily Pink Morsels sales by region."
	}
	return fmt.Sprintf("Goal: Determine whether sales were higher before or after the Pink Morsel price increase on %s.",
		opts.ReferenceDate.Format("Jan 2, 2006"))
}

func comparisonView(c aggregate.Comparison) *ComparisonView {
	v := &ComparisonView{
		Pivot:          c.Pivot.Format(model.DateFormat),
		BeforeDays:     c.Before.Days,
		BeforeTotal:    c.Before.Total.StringFixed(2),
		BeforeDailyAvg: c.Before.DailyAvg.StringFixed(2),
		AfterDays:      c.After.Days,
		AfterTotal:     c.After.Total.StringFixed(2),
		AfterDailyAvg:  c.After.DailyAvg.StringFixed(2),
	}
	if change, ok := c.Change(); ok {
		pct := change.Mul(decimal.NewFromInt(100))
		sign := ""
		if pct.IsPositive() {
			sign = "+"
		}
		v.Change = sign + pct.StringFixed(1) + "%"
	}
	return v
}
