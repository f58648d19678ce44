package transport

// Scoring holds the coefficients of the composite scores.
//
//	performance = satisfaction*SatisfactionWeight + (EmissionsBaseline-co2)*EmissionsWeight
//	efficiency  = (avgSatisfaction * totalUsage / UsageScale) / avgEmissions
type Scoring struct {
	SatisfactionWeight float64 `yaml:"satisfaction_weight" json:"satisfaction_weight"`
	EmissionsBaseline  float64 `yaml:"emissions_baseline" json:"emissions_baseline"`
	EmissionsWeight    float64 `yaml:"emissions_weight" json:"emissions_weight"`
	UsageScale         float64 `yaml:"usage_scale" json:"usage_scale"`
}

// DefaultScoring returns the standard coefficients.
func DefaultScoring() Scoring {
	return Scoring{
		SatisfactionWeight: 20,
		EmissionsBaseline:  100,
		EmissionsWeight:    0.5,
		UsageScale:         1_000_000,
	}
}

// RowScore is the performance contribution of a single record.
// CO2 above the baseline makes the environmental term negative; it is not clamped.
func (s Scoring) RowScore(r Record) float64 {
	return r.Satisfaction*s.SatisfactionWeight + (s.EmissionsBaseline-r.CO2PerPassenger)*s.EmissionsWeight
}

// InsightThresholds are the trigger levels of the insight rules.
type InsightThresholds struct {
	StrongGrowth     float64 `yaml:"strong_growth" json:"strong_growth"`
	DecliningUsage   float64 `yaml:"declining_usage" json:"declining_usage"`
	HighSatisfaction float64 `yaml:"high_satisfaction" json:"high_satisfaction"`
	LowSatisfaction  float64 `yaml:"low_satisfaction" json:"low_satisfaction"`
	LowEmissions     float64 `yaml:"low_emissions" json:"low_emissions"`
	HighEmissions    float64 `yaml:"high_emissions" json:"high_emissions"`
}

// DefaultThresholds returns the standard insight trigger levels.
func DefaultThresholds() InsightThresholds {
	return InsightThresholds{
		StrongGrowth:     10,
		DecliningUsage:   -5,
		HighSatisfaction: 4.0,
		LowSatisfaction:  3.0,
		LowEmissions:     2.0,
		HighEmissions:    5.0,
	}
}
