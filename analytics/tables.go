package analytics

import (
	"math"
	"strconv"

	lo "github.com/samber/lo"

	"transport-stats/domain/transport"
)

// Presented numbers carry two decimals; everything upstream keeps full precision.
const presentationPlaces = 2

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(round(v, presentationPlaces), 'f', -1, 64)
}

// formatRatio renders an unavailable ratio as an empty cell.
func formatRatio(r transport.Ratio) string {
	if !r.Valid {
		return ""
	}
	return formatNumber(r.Value)
}

func keyColumns(fields []transport.Field) []string {
	return lo.Map(fields, func(f transport.Field, _ int) string { return f.Column() })
}

// AggregateTable lays out group aggregates as the detailed metrics table.
func AggregateTable(groups []transport.GroupAggregate, keys []transport.Field) transport.Table {
	t := transport.Table{Columns: append(keyColumns(keys),
		"Total_Usage", "Avg_Annual_Usage", "Avg_Satisfaction", "Avg_CO2_Emissions",
		"Avg_Urbanization", "Usage_per_Urban_%", "Satisfaction_Efficiency")}
	for _, g := range groups {
		row := lo.Map(keys, func(f transport.Field, _ int) string { return g.Value(f) })
		row = append(row,
			formatNumber(g.TotalUsage),
			formatNumber(g.AvgUsage),
			formatNumber(g.AvgSatisfaction),
			formatNumber(g.AvgCO2Emissions),
			formatNumber(g.AvgUrbanization),
			formatRatio(g.UsagePerUrbanPercent),
			formatRatio(g.SatisfactionEfficiency),
		)
		t.Rows = append(t.Rows, row)
	}
	return t
}

// PerformanceTable lays out a ranking with its supporting metrics.
func PerformanceTable(ranked []transport.Performance, keys []transport.Field) transport.Table {
	t := transport.Table{Columns: append(append([]string{"Rank"}, keyColumns(keys)...),
		"Performance_Score", "Annual_Usage", "Customer_Satisfaction_Score", "CO2_Emissions_kg_per_passenger")}
	for i, p := range ranked {
		row := []string{strconv.Itoa(i + 1)}
		row = append(row, lo.Map(keys, func(f transport.Field, _ int) string { return p.Group.Value(f) })...)
		row = append(row,
			formatNumber(p.Score),
			formatNumber(p.Group.TotalUsage),
			formatNumber(p.Group.AvgSatisfaction),
			formatNumber(p.Group.AvgCO2Emissions),
		)
		t.Rows = append(t.Rows, row)
	}
	return t
}

// InsightTable lists insights one per row.
func InsightTable(insights []transport.Insight) transport.Table {
	t := transport.Table{Columns: []string{"Category", "Insight"}}
	for _, in := range insights {
		t.Rows = append(t.Rows, []string{in.Category, in.Text})
	}
	return t
}

// KPITable lists the scalar metrics as name/value pairs.
func KPITable(k transport.KPIResult) transport.Table {
	growth := formatNumber(k.GrowthRatePercent)
	if k.GrowthUndefined {
		growth = ""
	}
	return transport.Table{
		Columns: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total_Usage", formatNumber(k.TotalUsage)},
			{"Growth_Rate_%", growth},
			{"Avg_Satisfaction", formatNumber(k.AvgSatisfaction)},
			{"Best_Satisfaction_Overall", formatNumber(k.BestSatisfactionOverall)},
			{"Satisfaction_Gap", formatNumber(k.SatisfactionGap)},
			{"Avg_CO2_Emissions", formatNumber(k.AvgEmissions)},
			{"Efficiency_Score", formatRatio(k.EfficiencyScore)},
			{"Markets_Analyzed", strconv.Itoa(k.MarketsAnalyzed)},
		},
	}
}
