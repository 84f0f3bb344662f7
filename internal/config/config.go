package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/soulfoods/morsels/internal/model"
)

// FileName is the project configuration file looked up by the CLI.
const FileName = "morsels.yaml"

// Environment variables that override file values.
const (
	EnvProduct  = "MORSELS_PRODUCT"
	EnvDataDir  = "MORSELS_DATA_DIR"
	EnvOutput   = "MORSELS_OUTPUT"
	EnvAddr     = "MORSELS_ADDR"
	EnvLogLevel = "MORSELS_LOG_LEVEL"
)

// Config represents the top-level morsels.yaml configuration.
type Config struct {
	Product       string          `yaml:"product"`
	DataDir       string          `yaml:"data_dir"`
	Output        string          `yaml:"output"`
	ReferenceDate string          `yaml:"reference_date"` // YYYY-MM-DD
	Dashboard     DashboardConfig `yaml:"dashboard"`
	Log           LogConfig       `yaml:"log"`
}

// DashboardConfig controls the web dashboard.
type DashboardConfig struct {
	Addr  string `yaml:"addr"`
	Title string `yaml:"title"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Load reads a morsels.yaml file from disk. Keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Product:       "Pink Morsels",
		DataDir:       "data",
		Output:        "output.csv",
		ReferenceDate: "2021-01-15",
		Dashboard: DashboardConfig{
			Addr:  ":8050",
			Title: "Soul Foods Pink Morsels Sales Visualiser",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Resolve loads the project configuration for the CLI. A missing file at path
// falls back to defaults. A .env file next to the config is loaded into the
// process environment, then MORSELS_* variables override file values. Relative
// paths are made relative to the config file's directory.
func Resolve(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(path)
	if err := LoadDotEnv(filepath.Join(baseDir, ".env")); err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.LookupEnv)
	cfg.MakePathsRelative(baseDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads variables from a dotenv file without overriding variables
// already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	overrides := []struct {
		key string
		dst *string
	}{
		{EnvProduct, &c.Product},
		{EnvDataDir, &c.DataDir},
		{EnvOutput, &c.Output},
		{EnvAddr, &c.Dashboard.Addr},
		{EnvLogLevel, &c.Log.Level},
	}
	for _, o := range overrides {
		if v, ok := lookup(o.key); ok && v != "" {
			*o.dst = v
		}
	}
}

// MakePathsRelative anchors relative data and output paths at baseDir.
func (c *Config) MakePathsRelative(baseDir string) {
	if c.DataDir != "" && !filepath.IsAbs(c.DataDir) {
		c.DataDir = filepath.Join(baseDir, c.DataDir)
	}
	if c.Output != "" && !filepath.IsAbs(c.Output) {
		c.Output = filepath.Join(baseDir, c.Output)
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Product) == "" {
		errs = append(errs, errors.New("product must not be empty"))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output must not be empty"))
	}
	if _, err := c.ReferenceDay(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ReferenceDay parses the reference date. An empty value disables the marker
// and yields the zero time.
func (c *Config) ReferenceDay() (time.Time, error) {
	if c.ReferenceDate == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(model.DateFormat, c.ReferenceDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("reference_date %q: want YYYY-MM-DD", c.ReferenceDate)
	}
	return t, nil
}

// LogLevel converts the configured level name to a slog.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level %q: %w", c.Log.Level, err)
	}
	return level, nil
}
