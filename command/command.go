// Package command holds the setup shared by the subcommands.
package command

import (
	"fmt"
	"strconv"
	"strings"

	"transport-stats/analytics"
	ccsv "transport-stats/connectors/csv"
	"transport-stats/domain/config"
	"transport-stats/domain/transport"
)

// Filter parameter names, shared by CLI flags and query strings.
const (
	ParamCountries       = "countries"
	ParamTypes           = "types"
	ParamFrom            = "from"
	ParamTo              = "to"
	ParamMinSatisfaction = "min_satisfaction"
)

// LoadEngine reads the dataset at path (config default when empty) and wraps it
// in an analytics engine configured from cfg.
func LoadEngine(cfg *config.Config, path string) (*analytics.Engine, error) {
	if path == "" {
		path = cfg.Dataset.Path
	}
	data, err := ccsv.LoadDataset(path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return NewEngine(cfg, data), nil
}

// NewEngine wraps data in an engine configured from cfg.
func NewEngine(cfg *config.Config, data *transport.Dataset) *analytics.Engine {
	return analytics.New(data,
		analytics.WithScoring(cfg.Scoring),
		analytics.WithThresholds(cfg.Insights),
		analytics.WithTopN(cfg.Report.TopPerformers),
		analytics.WithHistogramStep(cfg.Report.HistogramStep),
	)
}

// Lookup returns the raw value of a named parameter and whether it was given.
type Lookup func(name string) (string, bool)

// ParseParams overrides defaults with every parameter lookup reports as given.
// Lists are comma separated; a given but empty list selects nothing.
func ParseParams(lookup Lookup, defaults transport.FilterParams) (transport.FilterParams, error) {
	p := defaults
	if v, ok := lookup(ParamCountries); ok {
		p.Countries = SplitList(v)
	}
	if v, ok := lookup(ParamTypes); ok {
		p.TransportTypes = SplitList(v)
	}
	for _, year := range []struct {
		name string
		dst  *int
	}{{ParamFrom, &p.Years.From}, {ParamTo, &p.Years.To}} {
		v, ok := lookup(year.name)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return p, fmt.Errorf("invalid %s %q: %w", year.name, v, err)
		}
		*year.dst = n
	}
	if v, ok := lookup(ParamMinSatisfaction); ok && strings.TrimSpace(v) != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return p, fmt.Errorf("invalid %s %q: %w", ParamMinSatisfaction, v, err)
		}
		p.MinSatisfaction = f
	}
	if p.Years.From > p.Years.To {
		return p, fmt.Errorf("invalid year range %d-%d", p.Years.From, p.Years.To)
	}
	return p, nil
}

// SplitList splits comma separated values and drops blanks.
func SplitList(values ...string) []string {
	out := []string{}
	for _, v := range values {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
