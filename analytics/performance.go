package analytics

import (
	"sort"

	"transport-stats/domain/transport"
)

// ScoreAndRank scores each group as the mean of its rows' performance score and
// sorts the groups by descending score. Ties keep aggregation order.
func ScoreAndRank(filtered []transport.Record, keys []transport.Field, s transport.Scoring) []transport.Performance {
	if len(keys) == 0 {
		keys = BenchmarkKeys
	}
	groups := groupRecords(filtered, keys)
	ranked := make([]transport.Performance, 0, len(groups))
	for _, g := range groups {
		ranked = append(ranked, transport.Performance{
			Group: aggregate(keys, g),
			Score: mean(g.rows, s.RowScore),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	return ranked
}

// TopPerformer names the transport type of the best ranked group, or
// transport.NotAvailable when nothing was ranked.
func TopPerformer(ranked []transport.Performance) string {
	if len(ranked) == 0 {
		return transport.NotAvailable
	}
	if t := ranked[0].Group.Value(transport.FieldTransportType); t != "" {
		return t
	}
	return transport.NotAvailable
}

// Top returns at most n leading entries of ranked. n <= 0 means all.
func Top(ranked []transport.Performance, n int) []transport.Performance {
	if n <= 0 || n >= len(ranked) {
		return ranked
	}
	return ranked[:n]
}
