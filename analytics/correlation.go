package analytics

import (
	"math"

	lo "github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"transport-stats/domain/transport"
)

// CorrelationMatrix holds pairwise Pearson coefficients between numeric columns.
// Values[i][j] correlates Metrics[i] with Metrics[j].
type CorrelationMatrix struct {
	Metrics []string            `json:"metrics"`
	Values  [][]transport.Ratio `json:"values"`
}

type metric struct {
	name  string
	value func(transport.Record) float64
}

var correlatedMetrics = []metric{
	{transport.ColAnnualUsage, func(r transport.Record) float64 { return r.AnnualUsage }},
	{transport.ColSatisfaction, func(r transport.Record) float64 { return r.Satisfaction }},
	{transport.ColCO2, func(r transport.Record) float64 { return r.CO2PerPassenger }},
	{transport.ColUrbanization, func(r transport.Record) float64 { return r.UrbanizationRate }},
}

// Correlate computes the correlation matrix of the numeric columns. A coefficient
// is unavailable when there are fewer than two rows or a column has no variance.
func Correlate(filtered []transport.Record) CorrelationMatrix {
	cols := lo.Map(correlatedMetrics, func(m metric, _ int) []float64 {
		return lo.Map(filtered, func(r transport.Record, _ int) float64 { return m.value(r) })
	})
	m := CorrelationMatrix{
		Metrics: lo.Map(correlatedMetrics, func(m metric, _ int) string { return m.name }),
		Values:  make([][]transport.Ratio, len(cols)),
	}
	for i := range cols {
		m.Values[i] = make([]transport.Ratio, len(cols))
		for j := range cols {
			m.Values[i][j] = correlation(cols[i], cols[j])
		}
	}
	return m
}

func correlation(x, y []float64) transport.Ratio {
	if len(x) < 2 {
		return transport.Unavailable
	}
	c := stat.Correlation(x, y, nil)
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return transport.Unavailable
	}
	return transport.Known(c)
}
