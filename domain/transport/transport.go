package transport

import (
	"encoding/json"
	"slices"
	"strconv"
)

// Column names of the source dataset.
const (
	ColCountry       = "Country"
	ColYear          = "Year"
	ColTransportType = "Transport_Type"
	ColAnnualUsage   = "Annual_Usage"
	ColSatisfaction  = "Customer_Satisfaction_Score"
	ColCO2           = "CO2_Emissions_kg_per_passenger"
	ColUrbanization  = "Urbanization_Rate_%"
)

// Columns lists the required dataset columns in file order.
var Columns = []string{ColCountry, ColYear, ColTransportType, ColAnnualUsage, ColSatisfaction, ColCO2, ColUrbanization}

// Record is one row of the transport usage dataset.
type Record struct {
	Country          string  `json:"country"`
	Year             int     `json:"year"`
	TransportType    string  `json:"transport_type"`
	AnnualUsage      float64 `json:"annual_usage"`
	Satisfaction     float64 `json:"customer_satisfaction_score"`
	CO2PerPassenger  float64 `json:"co2_emissions_kg_per_passenger"`
	UrbanizationRate float64 `json:"urbanization_rate_percent"`
}

// Dataset is the raw table. It is read-only once built: callers only ever get copies.
type Dataset struct {
	records []Record
}

// NewDataset copies records into a new read-only Dataset.
func NewDataset(records []Record) *Dataset {
	return &Dataset{records: slices.Clone(records)}
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Records returns a copy of every row in load order.
func (d *Dataset) Records() []Record {
	if d == nil {
		return nil
	}
	return slices.Clone(d.records)
}

// YearRange is an inclusive [From, To] interval.
type YearRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Contains reports whether year lies within the range.
func (y YearRange) Contains(year int) bool { return y.From <= year && year <= y.To }

// FilterParams narrows the raw dataset for one analysis request.
type FilterParams struct {
	Countries       []string  `json:"countries"`
	Years           YearRange `json:"years"`
	TransportTypes  []string  `json:"transport_types"`
	MinSatisfaction float64   `json:"min_satisfaction"`
}

// Ratio is the result of a division that may have no defined value.
// An invalid Ratio is reported as unavailable instead of NaN or Inf.
type Ratio struct {
	Value float64
	Valid bool
}

// Unavailable is the invalid Ratio.
var Unavailable = Ratio{}

// Known wraps a defined value.
func Known(v float64) Ratio { return Ratio{Value: v, Valid: true} }

// String formats the ratio for text output; unavailable ratios print as N/A.
func (r Ratio) String() string {
	if !r.Valid {
		return NotAvailable
	}
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

func (r *Ratio) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*r = Unavailable
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = Known(v)
	return nil
}

// NotAvailable labels a value that cannot be computed.
const NotAvailable = "N/A"

// KPIResult bundles the scalar summary metrics of a filtered dataset.
type KPIResult struct {
	TotalUsage        float64 `json:"total_usage"`
	GrowthRatePercent float64 `json:"growth_rate_percent"`
	// GrowthUndefined is set when the start-year usage is zero; GrowthRatePercent is then 0.
	GrowthUndefined         bool    `json:"growth_undefined"`
	AvgSatisfaction         float64 `json:"avg_satisfaction"`
	BestSatisfactionOverall float64 `json:"best_satisfaction_overall"`
	SatisfactionGap         float64 `json:"satisfaction_gap"`
	AvgEmissions            float64 `json:"avg_emissions"`
	EfficiencyScore         Ratio   `json:"efficiency_score"`
	MarketsAnalyzed         int     `json:"markets_analyzed"`
}

// Field is a groupable record attribute.
type Field string

const (
	FieldCountry       Field = "country"
	FieldYear          Field = "year"
	FieldTransportType Field = "transport_type"
)

// Value returns the field of r as a string key.
func (f Field) Value(r Record) string {
	switch f {
	case FieldCountry:
		return r.Country
	case FieldYear:
		return strconv.Itoa(r.Year)
	case FieldTransportType:
		return r.TransportType
	}
	return ""
}

// Column returns the dataset column name the field comes from.
func (f Field) Column() string {
	switch f {
	case FieldCountry:
		return ColCountry
	case FieldYear:
		return ColYear
	case FieldTransportType:
		return ColTransportType
	}
	return string(f)
}

// GroupAggregate holds the statistics of all records sharing one key combination.
type GroupAggregate struct {
	Fields                 []Field  `json:"fields"`
	Key                    []string `json:"key"`
	Rows                   int      `json:"rows"`
	TotalUsage             float64  `json:"total_usage"`
	AvgUsage               float64  `json:"avg_usage"`
	AvgSatisfaction        float64  `json:"avg_satisfaction"`
	AvgCO2Emissions        float64  `json:"avg_co2_emissions"`
	AvgUrbanization        float64  `json:"avg_urbanization"`
	UsagePerUrbanPercent   Ratio    `json:"usage_per_urban_percent"`
	SatisfactionEfficiency Ratio    `json:"satisfaction_efficiency"`
}

// Value returns the group's key value for f, or "" if f is not a key of the group.
func (g GroupAggregate) Value(f Field) string {
	if i := slices.Index(g.Fields, f); i >= 0 && i < len(g.Key) {
		return g.Key[i]
	}
	return ""
}

// Performance is a ranked group with its composite score.
type Performance struct {
	Group GroupAggregate `json:"group"`
	Score float64        `json:"performance_score"`
}

// Insight is a rule-triggered observation.
type Insight struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

func (i Insight) String() string { return i.Text }

// Table is the presentation and export shape of a computed result.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}
