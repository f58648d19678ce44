package analytics

import (
	"math"
	"testing"

	"transport-stats/domain/transport"
)

// sampleRecords is the three row dataset used across the engine tests.
func sampleRecords() []transport.Record {
	return []transport.Record{
		{Country: "A", Year: 2020, TransportType: "Bus", AnnualUsage: 100, Satisfaction: 4.5, CO2PerPassenger: 1.0, UrbanizationRate: 50},
		{Country: "A", Year: 2021, TransportType: "Bus", AnnualUsage: 150, Satisfaction: 4.6, CO2PerPassenger: 1.1, UrbanizationRate: 52},
		{Country: "B", Year: 2020, TransportType: "Rail", AnnualUsage: 200, Satisfaction: 3.0, CO2PerPassenger: 3.0, UrbanizationRate: 60},
	}
}

func sampleParams() transport.FilterParams {
	return transport.FilterParams{
		Countries:       []string{"A", "B"},
		Years:           transport.YearRange{From: 2020, To: 2021},
		TransportTypes:  []string{"Bus", "Rail"},
		MinSatisfaction: 0,
	}
}

func assertClose(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s: expected %v, got %v", name, want, got)
	}
}
