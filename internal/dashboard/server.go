// Package dashboard serves the sales visualiser: one page with a region
// selector and a line chart, backed by a small JSON API.
package dashboard

import (
	"context"
	_ "embed"
	"errors"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/soulfoods/morsels/internal/aggregate"
	"github.com/soulfoods/morsels/internal/chart"
	"github.com/soulfoods/morsels/internal/dataset"
	"github.com/soulfoods/morsels/internal/logging"
)

//go:embed templates/index.html
var indexHTML string

var pageTemplate = template.Must(template.New("index").Parse(indexHTML))

const defaultHeading = "Soul Foods Pink Morsels Sales Visualiser"

// Options configures the dashboard.
type Options struct {
	Heading string
	Chart   chart.Options
	Logger  *slog.Logger
}

// Server owns the fiber app and the dataset it charts.
type Server struct {
	app     *fiber.App
	data    *dataset.Dataset
	opts    Options
	log     *slog.Logger
	initial SeriesResponse
}

// New builds the dashboard around a loaded dataset. The chart for all regions
// is computed once here and embedded in the page.
func New(ds *dataset.Dataset, opts Options) *Server {
	if opts.Heading == "" {
		opts.Heading = defaultHeading
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	s := &Server{
		data: ds,
		opts: opts,
		log:  logging.WithComponent(logger, logging.ComponentDashboard),
	}
	s.initial = s.Series(aggregate.All)

	s.app = fiber.New(fiber.Config{
		AppName:               "morsels",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		IdleTimeout:           60 * time.Second,
	})
	s.app.Use(requestLogger(logging.WithComponent(logger, logging.ComponentHTTP)))
	s.app.Use(recover.New())

	s.app.Get("/", s.handleIndex)
	s.app.Get("/healthz", s.handleHealth)
	api := s.app.Group("/api")
	api.Get("/regions", s.handleRegions)
	api.Get("/series", s.handleSeries)

	return s
}

// App exposes the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves HTTP on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.log.Info("dashboard listening", "addr", addr, logging.FieldRows, s.data.Len())
	return s.app.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"status": "error", "message": err.Error()})
}

func requestLogger(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		logger.Log(c.UserContext(), logging.StatusLevel(status), "request",
			"method", c.Method(),
			"path", c.Path(),
			"query", strings.Clone(string(c.Request().URI().QueryString())),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}
}
