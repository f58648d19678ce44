package analytics

import (
	"math"
	"sort"

	"transport-stats/domain/transport"
)

// DefaultHistogramStep is the satisfaction bin width.
const DefaultHistogramStep = 0.2

// HistogramBin counts records of one transport type with a satisfaction score in [Lower, Upper).
type HistogramBin struct {
	TransportType string  `json:"transport_type"`
	Lower         float64 `json:"lower"`
	Upper         float64 `json:"upper"`
	Count         int     `json:"count"`
}

// SatisfactionHistogram bins satisfaction scores per transport type. Bins are
// ordered by transport type (first seen) then by lower bound; empty bins are omitted.
func SatisfactionHistogram(filtered []transport.Record, step float64) []HistogramBin {
	if step <= 0 {
		step = DefaultHistogramStep
	}
	var out []HistogramBin
	for _, g := range groupRecords(filtered, []transport.Field{transport.FieldTransportType}) {
		counts := map[int]int{}
		for _, r := range g.rows {
			// the epsilon keeps 4.6/0.2 from landing in the bin below
			counts[int(math.Floor(r.Satisfaction/step+1e-9))]++
		}
		bins := make([]int, 0, len(counts))
		for b := range counts {
			bins = append(bins, b)
		}
		sort.Ints(bins)
		for _, b := range bins {
			out = append(out, HistogramBin{
				TransportType: g.key[0],
				Lower:         round(float64(b)*step, 6),
				Upper:         round(float64(b+1)*step, 6),
				Count:         counts[b],
			})
		}
	}
	return out
}
