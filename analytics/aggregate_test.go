package analytics

import (
	"encoding/json"
	"slices"
	"strings"
	"testing"

	"transport-stats/domain/transport"
)

func TestAggregateBy_Benchmark(t *testing.T) {
	groups := AggregateBy(sampleRecords(), BenchmarkKeys)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	a := groups[0]
	if !slices.Equal(a.Key, []string{"A", "Bus"}) {
		t.Fatalf("expected first group A/Bus, got %v", a.Key)
	}
	if a.Rows != 2 {
		t.Errorf("expected 2 rows, got %d", a.Rows)
	}
	assertClose(t, "TotalUsage", a.TotalUsage, 250)
	assertClose(t, "AvgUsage", a.AvgUsage, 125)
	assertClose(t, "AvgSatisfaction", a.AvgSatisfaction, 4.55)
	assertClose(t, "AvgCO2Emissions", a.AvgCO2Emissions, 1.05)
	assertClose(t, "AvgUrbanization", a.AvgUrbanization, 51)
	assertClose(t, "UsagePerUrbanPercent", a.UsagePerUrbanPercent.Value, 250.0/51)
	assertClose(t, "SatisfactionEfficiency", a.SatisfactionEfficiency.Value, 4.55/1.05)

	if got := groups[1].Value(transport.FieldCountry); got != "B" {
		t.Errorf("expected second group country B, got %q", got)
	}
}

func TestAggregateBy_TrendsKeepFirstSeenOrder(t *testing.T) {
	groups := AggregateBy(sampleRecords(), TrendKeys)
	var keys []string
	for _, g := range groups {
		keys = append(keys, strings.Join(g.Key, "/"))
	}
	want := []string{"2020/Bus", "2021/Bus", "2020/Rail"}
	if !slices.Equal(keys, want) {
		t.Errorf("expected %v, got %v", want, keys)
	}
}

func TestAggregateBy_IsPartition(t *testing.T) {
	records := sampleRecords()
	records = append(records,
		transport.Record{Country: "B", Year: 2021, TransportType: "Rail", AnnualUsage: 220, Satisfaction: 3.2, CO2PerPassenger: 2.9, UrbanizationRate: 61},
		transport.Record{Country: "A", Year: 2020, TransportType: "Rail", AnnualUsage: 80, Satisfaction: 3.9, CO2PerPassenger: 2.0, UrbanizationRate: 50},
	)
	for _, keys := range [][]transport.Field{TrendKeys, BenchmarkKeys, {transport.FieldCountry}} {
		groups := AggregateBy(records, keys)
		rows := 0
		usage := 0.0
		seen := map[string]bool{}
		for _, g := range groups {
			id := strings.Join(g.Key, "/")
			if seen[id] {
				t.Errorf("keys %v: group %s appears twice", keys, id)
			}
			seen[id] = true
			rows += g.Rows
			usage += g.TotalUsage
		}
		if rows != len(records) {
			t.Errorf("keys %v: expected %d rows across groups, got %d", keys, len(records), rows)
		}
		assertClose(t, "usage across groups", usage, 750)
	}
}

func TestAggregateBy_ZeroDenominatorsAreUnavailable(t *testing.T) {
	records := []transport.Record{
		{Country: "A", Year: 2020, TransportType: "Bike", AnnualUsage: 10, Satisfaction: 4.8, CO2PerPassenger: 0, UrbanizationRate: 0},
	}
	g := AggregateBy(records, BenchmarkKeys)[0]
	if g.SatisfactionEfficiency.Valid {
		t.Errorf("expected satisfaction efficiency unavailable, got %v", g.SatisfactionEfficiency.Value)
	}
	if g.UsagePerUrbanPercent.Valid {
		t.Errorf("expected usage per urban percent unavailable, got %v", g.UsagePerUrbanPercent.Value)
	}

	b, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(b), `"satisfaction_efficiency":null`) {
		t.Errorf("expected null satisfaction_efficiency in %s", b)
	}
}

func TestAggregateBy_Empty(t *testing.T) {
	if groups := AggregateBy(nil, TrendKeys); len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}
}
