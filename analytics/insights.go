package analytics

import (
	"fmt"

	"transport-stats/domain/transport"
)

// Insight categories.
const (
	InsightStrongGrowth     = "strong-growth"
	InsightDecliningUsage   = "declining-usage"
	InsightHighSatisfaction = "high-satisfaction"
	InsightLowSatisfaction  = "low-satisfaction"
	InsightEcoFriendly      = "eco-friendly"
	InsightHighEmissions    = "high-emissions"
	InsightTopPerformer     = "top-performer"
)

// GenerateInsights evaluates every rule independently against the KPIs. The
// top performer summary is always last.
func GenerateInsights(k transport.KPIResult, topPerformer string, t transport.InsightThresholds) []transport.Insight {
	var out []transport.Insight
	add := func(category, format string, args ...any) {
		out = append(out, transport.Insight{Category: category, Text: fmt.Sprintf(format, args...)})
	}

	switch {
	case k.GrowthRatePercent > t.StrongGrowth:
		add(InsightStrongGrowth, "Strong Growth: %.1f%% growth indicates expanding market adoption", k.GrowthRatePercent)
	case k.GrowthRatePercent < t.DecliningUsage:
		add(InsightDecliningUsage, "Declining Usage: %.1f%% decline suggests market challenges", k.GrowthRatePercent)
	}

	switch {
	case k.AvgSatisfaction > t.HighSatisfaction:
		add(InsightHighSatisfaction, "High Satisfaction: customer satisfaction exceeds %.1f, indicating excellent service quality", t.HighSatisfaction)
	case k.AvgSatisfaction < t.LowSatisfaction:
		add(InsightLowSatisfaction, "Low Satisfaction: customer satisfaction below %.1f requires immediate attention", t.LowSatisfaction)
	}

	switch {
	case k.AvgEmissions < t.LowEmissions:
		add(InsightEcoFriendly, "Eco-Friendly: low emissions indicate environmentally sustainable transport")
	case k.AvgEmissions > t.HighEmissions:
		add(InsightHighEmissions, "High Emissions: consider green initiatives to reduce environmental impact")
	}

	if topPerformer == "" {
		topPerformer = transport.NotAvailable
	}
	add(InsightTopPerformer, "Top Performer: %s shows the best overall performance score", topPerformer)
	return out
}
