package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"transport-stats/domain/config"
	"transport-stats/domain/transport"
)

const (
	// DefaultPath is used when CONFIG_PATH is not set.
	DefaultPath        = "./config.yml"
	DefaultDatasetPath = "./data/transport.csv"
	DefaultAddr        = ":8080"
	DefaultUI          = "./ui/dist"
)

// Load parses the YAML configuration file at path over the defaults: keys present
// in the file win, missing keys keep their default value.
func Load(path string) (*config.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.Scoring.UsageScale <= 0 {
		return nil, fmt.Errorf("parse %s: scoring.usage_scale must be positive, got %g", path, c.Scoring.UsageScale)
	}
	slog.Info("config.loaded", "path", path)
	return c, nil
}

// Resolve loads the file named by CONFIG_PATH (default ./config.yml). A missing
// file is not an error: the defaults are returned instead.
func Resolve() (*config.Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultPath
	}
	c, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("config.missing", "path", path)
		return Default(), nil
	}
	return c, err
}

// Default returns the configuration used when no file is present.
func Default() *config.Config {
	c := &config.Config{
		Scoring:  transport.DefaultScoring(),
		Insights: transport.DefaultThresholds(),
		Report: config.Report{
			DefaultCountries: 5,
			TopPerformers:    10,
			HistogramStep:    0.2,
			ExportPrefix:     "transport_analysis",
		},
	}
	c.Dataset.Path = DefaultDatasetPath
	c.Web.Addr = DefaultAddr
	c.Web.UI = DefaultUI
	return c
}
