package analytics

import (
	"strings"

	lo "github.com/samber/lo"

	"transport-stats/domain/transport"
)

// Key sets used by the report views.
var (
	TrendKeys     = []transport.Field{transport.FieldYear, transport.FieldTransportType}
	BenchmarkKeys = []transport.Field{transport.FieldCountry, transport.FieldTransportType}
)

type group struct {
	key  []string
	rows []transport.Record
}

// groupRecords partitions records by the values of keys. Groups come out in the
// order their first record appears.
func groupRecords(records []transport.Record, keys []transport.Field) []group {
	index := map[string]int{}
	var groups []group
	for _, r := range records {
		key := lo.Map(keys, func(f transport.Field, _ int) string { return f.Value(r) })
		id := strings.Join(key, "\x00")
		i, ok := index[id]
		if !ok {
			i = len(groups)
			index[id] = i
			groups = append(groups, group{key: key})
		}
		groups[i].rows = append(groups[i].rows, r)
	}
	return groups
}

// AggregateBy computes per-group statistics for every key combination present in
// filtered. Ratios are derived from the group means, after aggregation.
func AggregateBy(filtered []transport.Record, keys []transport.Field) []transport.GroupAggregate {
	groups := groupRecords(filtered, keys)
	out := make([]transport.GroupAggregate, 0, len(groups))
	for _, g := range groups {
		out = append(out, aggregate(keys, g))
	}
	return out
}

func aggregate(keys []transport.Field, g group) transport.GroupAggregate {
	a := transport.GroupAggregate{
		Fields:          keys,
		Key:             g.key,
		Rows:            len(g.rows),
		TotalUsage:      lo.SumBy(g.rows, func(r transport.Record) float64 { return r.AnnualUsage }),
		AvgUsage:        mean(g.rows, func(r transport.Record) float64 { return r.AnnualUsage }),
		AvgSatisfaction: mean(g.rows, func(r transport.Record) float64 { return r.Satisfaction }),
		AvgCO2Emissions: mean(g.rows, func(r transport.Record) float64 { return r.CO2PerPassenger }),
		AvgUrbanization: mean(g.rows, func(r transport.Record) float64 { return r.UrbanizationRate }),
	}
	a.UsagePerUrbanPercent = ratio(a.TotalUsage, a.AvgUrbanization)
	a.SatisfactionEfficiency = ratio(a.AvgSatisfaction, a.AvgCO2Emissions)
	return a
}
