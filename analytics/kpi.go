package analytics

import (
	lo "github.com/samber/lo"

	"transport-stats/domain/transport"
)

// ComputeKPIs summarizes a filtered dataset. raw is only used for the satisfaction
// ceiling (best score over the whole, unfiltered dataset).
func ComputeKPIs(filtered []transport.Record, raw *transport.Dataset, p transport.FilterParams, s transport.Scoring) (transport.KPIResult, error) {
	if len(filtered) == 0 {
		return transport.KPIResult{}, ErrEmptyResult
	}

	k := transport.KPIResult{
		TotalUsage:      lo.SumBy(filtered, func(r transport.Record) float64 { return r.AnnualUsage }),
		AvgSatisfaction: mean(filtered, func(r transport.Record) float64 { return r.Satisfaction }),
		AvgEmissions:    mean(filtered, func(r transport.Record) float64 { return r.CO2PerPassenger }),
		MarketsAnalyzed: len(lo.Uniq(lo.Map(filtered, func(r transport.Record, _ int) string { return r.Country }))),
	}
	k.GrowthRatePercent, k.GrowthUndefined = growthRate(filtered, p.Years)

	k.BestSatisfactionOverall = k.AvgSatisfaction
	if all := raw.Records(); len(all) > 0 {
		k.BestSatisfactionOverall = lo.MaxBy(all, func(a, b transport.Record) bool { return a.Satisfaction > b.Satisfaction }).Satisfaction
	}
	k.SatisfactionGap = k.AvgSatisfaction - k.BestSatisfactionOverall

	k.EfficiencyScore = ratio(k.AvgSatisfaction*k.TotalUsage/s.UsageScale, k.AvgEmissions)
	return k, nil
}

// growthRate compares total usage in the last year of the range against the first,
// summed over every country. It returns (0, true) when the first year has no usage.
func growthRate(filtered []transport.Record, years transport.YearRange) (float64, bool) {
	if years.From == years.To {
		return 0, false
	}
	usageIn := func(year int) float64 {
		return lo.SumBy(filtered, func(r transport.Record) float64 {
			if r.Year != year {
				return 0
			}
			return r.AnnualUsage
		})
	}
	start, end := usageIn(years.From), usageIn(years.To)
	v, err := divide(end-start, start)
	if err != nil {
		return 0, true
	}
	return v * 100, false
}

func mean(records []transport.Record, f func(transport.Record) float64) float64 {
	if len(records) == 0 {
		return 0
	}
	return lo.SumBy(records, f) / float64(len(records))
}
