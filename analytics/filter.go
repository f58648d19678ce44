package analytics

import (
	"fmt"

	lo "github.com/samber/lo"

	"transport-stats/domain/transport"
)

// Filter keeps the records matching every predicate of p, in their original order.
// Empty country or transport type sets match nothing. An empty result is reported
// as ErrEmptyResult so callers never compute over zero rows.
func Filter(records []transport.Record, p transport.FilterParams) ([]transport.Record, error) {
	countries := toSet(p.Countries)
	types := toSet(p.TransportTypes)
	out := lo.Filter(records, func(r transport.Record, _ int) bool {
		_, okCountry := countries[r.Country]
		_, okType := types[r.TransportType]
		return okCountry && okType && p.Years.Contains(r.Year) && r.Satisfaction >= p.MinSatisfaction
	})
	if len(out) == 0 {
		return nil, fmt.Errorf("filter countries=%d types=%d years=%d-%d min_satisfaction=%g: %w",
			len(p.Countries), len(p.TransportTypes), p.Years.From, p.Years.To, p.MinSatisfaction, ErrEmptyResult)
	}
	return out, nil
}

func toSet(values []string) map[string]struct{} {
	return lo.SliceToMap(values, func(s string) (string, struct{}) { return s, struct{}{} })
}
