package config

import "transport-stats/domain/transport"

// Config represents the structure of config.yml used by the tool.
// Keys missing from the file keep their default value.
type Config struct {
	Dataset struct {
		Path string `yaml:"path"`
		URL  string `yaml:"url"`
	} `yaml:"dataset"`
	Scoring  transport.Scoring           `yaml:"scoring"`
	Insights transport.InsightThresholds `yaml:"insights"`
	Report   Report                      `yaml:"report"`
	Web      struct {
		Addr string `yaml:"addr"`
		UI   string `yaml:"ui"`
	} `yaml:"web"`
}

type Report struct {
	DefaultCountries int     `yaml:"default_countries"`
	TopPerformers    int     `yaml:"top_performers"`
	HistogramStep    float64 `yaml:"histogram_step"`
	ExportPrefix     string  `yaml:"export_prefix"`
}
