package analytics

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	"transport-stats/domain/transport"
)

func TestFilter_KeepsAllMatchingRowsInOrder(t *testing.T) {
	records := sampleRecords()
	got, err := Filter(records, sampleParams())
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if !slices.Equal(got, records) {
		t.Errorf("expected all rows in raw order, got %+v", got)
	}
}

func TestFilter_Predicates(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*transport.FilterParams)
		want   []int // indices into sampleRecords
	}{
		{"country", func(p *transport.FilterParams) { p.Countries = []string{"B"} }, []int{2}},
		{"transport type", func(p *transport.FilterParams) { p.TransportTypes = []string{"Bus"} }, []int{0, 1}},
		{"single year", func(p *transport.FilterParams) { p.Years = transport.YearRange{From: 2021, To: 2021} }, []int{1}},
		{"min satisfaction inclusive", func(p *transport.FilterParams) { p.MinSatisfaction = 4.5 }, []int{0, 1}},
		{"unknown country ignored", func(p *transport.FilterParams) { p.Countries = []string{"A", "Z"} }, []int{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := sampleParams()
			tt.modify(&p)
			got, err := Filter(sampleRecords(), p)
			if err != nil {
				t.Fatalf("Filter failed: %v", err)
			}
			var want []transport.Record
			for _, i := range tt.want {
				want = append(want, sampleRecords()[i])
			}
			if !slices.Equal(got, want) {
				t.Errorf("expected %+v, got %+v", want, got)
			}
		})
	}
}

func TestFilter_EmptyResult(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*transport.FilterParams)
	}{
		{"no countries", func(p *transport.FilterParams) { p.Countries = nil }},
		{"no transport types", func(p *transport.FilterParams) { p.TransportTypes = []string{} }},
		{"years outside data", func(p *transport.FilterParams) { p.Years = transport.YearRange{From: 1990, To: 1991} }},
		{"satisfaction above max", func(p *transport.FilterParams) { p.MinSatisfaction = 4.7 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := sampleParams()
			tt.modify(&p)
			got, err := Filter(sampleRecords(), p)
			if !errors.Is(err, ErrEmptyResult) {
				t.Fatalf("expected ErrEmptyResult, got %v", err)
			}
			if got != nil {
				t.Errorf("expected no rows, got %d", len(got))
			}
		})
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	records := sampleRecords()
	p := sampleParams()
	p.Countries = []string{"B"}
	if _, err := Filter(records, p); err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if !slices.Equal(records, sampleRecords()) {
		t.Errorf("input records were modified")
	}
}

func TestFilter_RandomizedPredicates(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	countries := []string{"A", "B", "C", "D"}
	types := []string{"Bus", "Rail", "Tram"}
	records := make([]transport.Record, 400)
	for i := range records {
		records[i] = transport.Record{
			Country:       countries[rng.Intn(len(countries))],
			Year:          2015 + rng.Intn(8),
			TransportType: types[rng.Intn(len(types))],
			AnnualUsage:   float64(rng.Intn(10000)),
			Satisfaction:  1 + rng.Float64()*4,
		}
	}

	for round := 0; round < 50; round++ {
		from := 2015 + rng.Intn(8)
		p := transport.FilterParams{
			Countries:       countries[:1+rng.Intn(len(countries))],
			TransportTypes:  types[rng.Intn(len(types)):],
			Years:           transport.YearRange{From: from, To: from + rng.Intn(4)},
			MinSatisfaction: rng.Float64() * 4,
		}
		matches := func(r transport.Record) bool {
			return slices.Contains(p.Countries, r.Country) && slices.Contains(p.TransportTypes, r.TransportType) &&
				r.Year >= p.Years.From && r.Year <= p.Years.To && r.Satisfaction >= p.MinSatisfaction
		}
		var want []transport.Record
		for _, r := range records {
			if matches(r) {
				want = append(want, r)
			}
		}

		got, err := Filter(records, p)
		if len(want) == 0 {
			if !errors.Is(err, ErrEmptyResult) {
				t.Fatalf("round %d: expected ErrEmptyResult, got %v", round, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("round %d: Filter failed: %v", round, err)
		}
		if !slices.Equal(got, want) {
			t.Fatalf("round %d: expected %d rows, got %d", round, len(want), len(got))
		}
	}
}
