package logging

import (
	"io"
	"log/slog"
)

// Field keys shared across components.
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldFile      = "file"
	FieldRegion    = "region"
	FieldRows      = "rows"
)

// Component names.
const (
	ComponentIngest    = "ingest"
	ComponentDashboard = "dashboard"
	ComponentHTTP      = "http"
)

// New creates a text logger writing to w at level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// WithComponent returns logger tagged with a component name.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With(FieldComponent, component)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// StatusLevel picks the level for an HTTP response status.
func StatusLevel(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
