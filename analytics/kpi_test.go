package analytics

import (
	"errors"
	"testing"

	"transport-stats/domain/transport"
)

func TestComputeKPIs_Example(t *testing.T) {
	records := sampleRecords()
	raw := transport.NewDataset(records)
	k, err := ComputeKPIs(records, raw, sampleParams(), transport.DefaultScoring())
	if err != nil {
		t.Fatalf("ComputeKPIs failed: %v", err)
	}

	assertClose(t, "TotalUsage", k.TotalUsage, 450)
	// 2020 sums both countries (100+200), 2021 only has A (150).
	assertClose(t, "GrowthRatePercent", k.GrowthRatePercent, -50)
	if k.GrowthUndefined {
		t.Errorf("expected growth to be defined")
	}
	assertClose(t, "AvgSatisfaction", k.AvgSatisfaction, (4.5+4.6+3.0)/3)
	assertClose(t, "BestSatisfactionOverall", k.BestSatisfactionOverall, 4.6)
	assertClose(t, "SatisfactionGap", k.SatisfactionGap, (4.5+4.6+3.0)/3-4.6)
	assertClose(t, "AvgEmissions", k.AvgEmissions, (1.0+1.1+3.0)/3)
	if !k.EfficiencyScore.Valid {
		t.Fatalf("expected efficiency score to be available")
	}
	assertClose(t, "EfficiencyScore", k.EfficiencyScore.Value, (k.AvgSatisfaction*450/1_000_000)/k.AvgEmissions)
	if k.MarketsAnalyzed != 2 {
		t.Errorf("expected MarketsAnalyzed 2, got %d", k.MarketsAnalyzed)
	}
}

func TestComputeKPIs_BestSatisfactionUsesRawDataset(t *testing.T) {
	records := sampleRecords()
	raw := transport.NewDataset(append(records, transport.Record{Country: "C", Year: 2020, TransportType: "Tram", Satisfaction: 4.9, CO2PerPassenger: 1}))
	k, err := ComputeKPIs(records[2:], raw, sampleParams(), transport.DefaultScoring())
	if err != nil {
		t.Fatalf("ComputeKPIs failed: %v", err)
	}
	assertClose(t, "BestSatisfactionOverall", k.BestSatisfactionOverall, 4.9)
	assertClose(t, "AvgSatisfaction", k.AvgSatisfaction, 3.0)
}

func TestComputeKPIs_SingleYearRangeHasZeroGrowth(t *testing.T) {
	records := sampleRecords()
	for _, year := range []int{2020, 2021} {
		p := sampleParams()
		p.Years = transport.YearRange{From: year, To: year}
		k, err := ComputeKPIs(records, transport.NewDataset(records), p, transport.DefaultScoring())
		if err != nil {
			t.Fatalf("ComputeKPIs failed: %v", err)
		}
		if k.GrowthRatePercent != 0 || k.GrowthUndefined {
			t.Errorf("year %d: expected growth 0 (defined), got %v undefined=%v", year, k.GrowthRatePercent, k.GrowthUndefined)
		}
	}
}

func TestComputeKPIs_ZeroStartUsageIsUndefinedGrowth(t *testing.T) {
	records := sampleRecords()
	p := sampleParams()
	p.Years = transport.YearRange{From: 2019, To: 2021}
	k, err := ComputeKPIs(records, transport.NewDataset(records), p, transport.DefaultScoring())
	if err != nil {
		t.Fatalf("ComputeKPIs failed: %v", err)
	}
	if !k.GrowthUndefined {
		t.Errorf("expected growth to be flagged undefined")
	}
	if k.GrowthRatePercent != 0 {
		t.Errorf("expected growth 0, got %v", k.GrowthRatePercent)
	}
}

func TestComputeKPIs_ZeroEmissionsMakesEfficiencyUnavailable(t *testing.T) {
	records := []transport.Record{
		{Country: "A", Year: 2020, TransportType: "Bike", AnnualUsage: 10, Satisfaction: 4, CO2PerPassenger: 0},
	}
	k, err := ComputeKPIs(records, transport.NewDataset(records), sampleParams(), transport.DefaultScoring())
	if err != nil {
		t.Fatalf("ComputeKPIs failed: %v", err)
	}
	if k.EfficiencyScore.Valid {
		t.Errorf("expected efficiency score unavailable, got %v", k.EfficiencyScore.Value)
	}
}

func TestComputeKPIs_EmptyInput(t *testing.T) {
	_, err := ComputeKPIs(nil, transport.NewDataset(sampleRecords()), sampleParams(), transport.DefaultScoring())
	if !errors.Is(err, ErrEmptyResult) {
		t.Errorf("expected ErrEmptyResult, got %v", err)
	}
}
