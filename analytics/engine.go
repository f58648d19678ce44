// Package analytics computes filters, KPIs, grouped aggregates, performance
// rankings and insights over a transport usage dataset.
//
// Every function is a pure function of its inputs. The raw dataset is owned by
// the caller and injected into an Engine, which never mutates it.
package analytics

import (
	"transport-stats/domain/transport"
)

// DefaultTopN is how many ranked groups the benchmark view keeps.
const DefaultTopN = 10

// Option configures an Engine.
type Option func(*Engine)

// WithScoring replaces the score coefficients.
func WithScoring(s transport.Scoring) Option {
	return func(e *Engine) { e.scoring = s }
}

// WithThresholds replaces the insight trigger levels.
func WithThresholds(t transport.InsightThresholds) Option {
	return func(e *Engine) { e.thresholds = t }
}

// WithTopN sets how many top performers the report keeps (<= 0 keeps all).
func WithTopN(n int) Option {
	return func(e *Engine) { e.topN = n }
}

// WithHistogramStep sets the satisfaction bin width.
func WithHistogramStep(step float64) Option {
	return func(e *Engine) { e.histogramStep = step }
}

// Engine runs the full analysis against one read-only dataset.
// It is safe for concurrent use.
type Engine struct {
	data          *transport.Dataset
	scoring       transport.Scoring
	thresholds    transport.InsightThresholds
	topN          int
	histogramStep float64
}

// New builds an Engine over data.
func New(data *transport.Dataset, opts ...Option) *Engine {
	e := &Engine{
		data:          data,
		scoring:       transport.DefaultScoring(),
		thresholds:    transport.DefaultThresholds(),
		topN:          DefaultTopN,
		histogramStep: DefaultHistogramStep,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dataset returns the injected raw dataset.
func (e *Engine) Dataset() *transport.Dataset { return e.data }

// Options returns the filter domain of the dataset.
func (e *Engine) Options() FilterOptions { return Options(e.data) }

// Report is everything computed for one set of filter parameters.
type Report struct {
	Params        transport.FilterParams     `json:"params"`
	Filtered      []transport.Record         `json:"-"`
	Rows          int                        `json:"rows"`
	KPIs          transport.KPIResult        `json:"kpis"`
	Trends        []transport.GroupAggregate `json:"trends"`
	Benchmark     []transport.GroupAggregate `json:"benchmark"`
	Ranking       []transport.Performance    `json:"ranking"`
	TopPerformers []transport.Performance    `json:"top_performers"`
	TopPerformer  string                     `json:"top_performer"`
	Insights      []transport.Insight        `json:"insights"`
	Correlation   CorrelationMatrix          `json:"correlation"`
	Distribution  []HistogramBin             `json:"distribution"`
}

// Analyze filters the dataset and computes every derived view. It returns
// ErrEmptyResult (wrapped) without computing anything when no row matches.
func (e *Engine) Analyze(p transport.FilterParams) (*Report, error) {
	filtered, err := Filter(e.data.Records(), p)
	if err != nil {
		return nil, err
	}
	kpis, err := ComputeKPIs(filtered, e.data, p, e.scoring)
	if err != nil {
		return nil, err
	}
	ranking := ScoreAndRank(filtered, BenchmarkKeys, e.scoring)
	top := TopPerformer(ranking)
	return &Report{
		Params:        p,
		Filtered:      filtered,
		Rows:          len(filtered),
		KPIs:          kpis,
		Trends:        AggregateBy(filtered, TrendKeys),
		Benchmark:     AggregateBy(filtered, BenchmarkKeys),
		Ranking:       ranking,
		TopPerformers: Top(ranking, e.topN),
		TopPerformer:  top,
		Insights:      GenerateInsights(kpis, top, e.thresholds),
		Correlation:   Correlate(filtered),
		Distribution:  SatisfactionHistogram(filtered, e.histogramStep),
	}, nil
}

// NamedTable pairs a table with the name it is exported under. TextColumns names
// the label columns that must never be read as numbers.
type NamedTable struct {
	Name        string
	Table       transport.Table
	TextColumns []string
}

// Tables returns the report's presentation tables in export order.
func (r *Report) Tables() []NamedTable {
	return []NamedTable{
		{Name: "benchmark", Table: AggregateTable(r.Benchmark, BenchmarkKeys), TextColumns: keyColumns(BenchmarkKeys)},
		{Name: "trends", Table: AggregateTable(r.Trends, TrendKeys), TextColumns: keyColumns(TrendKeys)},
		{Name: "performance", Table: PerformanceTable(r.Ranking, BenchmarkKeys), TextColumns: keyColumns(BenchmarkKeys)},
		{Name: "kpis", Table: KPITable(r.KPIs), TextColumns: []string{"Metric"}},
		{Name: "insights", Table: InsightTable(r.Insights), TextColumns: []string{"Category", "Insight"}},
	}
}
