package analytics

import (
	lo "github.com/samber/lo"

	"transport-stats/domain/transport"
)

// DefaultCountryLimit is how many countries the default filter selects.
const DefaultCountryLimit = 5

// FilterOptions is the domain of every filter control, derived from the raw dataset.
type FilterOptions struct {
	Countries       []string            `json:"countries"`
	TransportTypes  []string            `json:"transport_types"`
	Years           transport.YearRange `json:"years"`
	MinSatisfaction float64             `json:"min_satisfaction"`
	MaxSatisfaction float64             `json:"max_satisfaction"`
}

// Options lists distinct countries and transport types in first-seen order along
// with the observed year and satisfaction bounds.
func Options(d *transport.Dataset) FilterOptions {
	records := d.Records()
	if len(records) == 0 {
		return FilterOptions{}
	}
	o := FilterOptions{
		Countries:      lo.Uniq(lo.Map(records, func(r transport.Record, _ int) string { return r.Country })),
		TransportTypes: lo.Uniq(lo.Map(records, func(r transport.Record, _ int) string { return r.TransportType })),
	}
	years := lo.Map(records, func(r transport.Record, _ int) int { return r.Year })
	o.Years = transport.YearRange{From: lo.Min(years), To: lo.Max(years)}
	scores := lo.Map(records, func(r transport.Record, _ int) float64 { return r.Satisfaction })
	o.MinSatisfaction, o.MaxSatisfaction = lo.Min(scores), lo.Max(scores)
	return o
}

// DefaultParams selects the first countryLimit countries, every transport type,
// the full year range and the lowest observed satisfaction.
func DefaultParams(o FilterOptions, countryLimit int) transport.FilterParams {
	if countryLimit <= 0 {
		countryLimit = DefaultCountryLimit
	}
	countries := o.Countries
	if len(countries) > countryLimit {
		countries = countries[:countryLimit]
	}
	return transport.FilterParams{
		Countries:       append([]string(nil), countries...),
		Years:           o.Years,
		TransportTypes:  append([]string(nil), o.TransportTypes...),
		MinSatisfaction: o.MinSatisfaction,
	}
}
