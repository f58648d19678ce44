package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"transport-stats/domain/transport"
)

var (
	errMissingColumn = errors.New("missing column")
	errNotNumeric    = errors.New("not a number")
	errEmptyValue    = errors.New("empty value")
	errOutOfRange    = errors.New("out of range")
)

// LoadDataset reads the transport usage CSV at path.
func LoadDataset(path string) (*transport.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := ReadDataset(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Info("dataset.loaded", "path", path, "rows", d.Len())
	return d, nil
}

// ReadDataset parses a transport usage CSV. Extra columns are ignored. A missing
// required column, a non-finite number, a negative usage or CO2 value and an
// urbanization rate outside [0, 100] are reported as *transport.SchemaError.
func ReadDataset(in io.Reader) (*transport.Dataset, error) {
	r := csv.NewReader(in)
	head, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &transport.SchemaError{Column: transport.ColCountry, Err: errMissingColumn}
		}
		return nil, err
	}
	idx := indexMap(head)
	for _, col := range transport.Columns {
		if _, ok := idx[normalize(col)]; !ok {
			return nil, &transport.SchemaError{Column: col, Err: errMissingColumn}
		}
	}

	var records []transport.Record
	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row, err := parseRecord(rec, idx, line)
		if err != nil {
			return nil, err
		}
		records = append(records, row)
	}
	return transport.NewDataset(records), nil
}

func parseRecord(rec []string, idx map[string]int, line int) (transport.Record, error) {
	field := func(col string) string { return strings.TrimSpace(rec[idx[normalize(col)]]) }
	// number parses a finite value within [low, high].
	number := func(col string, low, high float64) (float64, error) {
		v := field(col)
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, &transport.SchemaError{Column: col, Line: line, Value: v, Err: errNotNumeric}
		}
		if f < low || f > high {
			return 0, &transport.SchemaError{Column: col, Line: line, Value: v, Err: errOutOfRange}
		}
		return f, nil
	}
	unbounded := math.Inf(1)

	row := transport.Record{
		Country:       field(transport.ColCountry),
		TransportType: field(transport.ColTransportType),
	}
	if row.Country == "" {
		return row, &transport.SchemaError{Column: transport.ColCountry, Line: line, Err: errEmptyValue}
	}
	year := field(transport.ColYear)
	y, err := strconv.Atoi(year)
	if err != nil {
		return row, &transport.SchemaError{Column: transport.ColYear, Line: line, Value: year, Err: errNotNumeric}
	}
	row.Year = y
	if row.AnnualUsage, err = number(transport.ColAnnualUsage, 0, unbounded); err != nil {
		return row, err
	}
	if row.Satisfaction, err = number(transport.ColSatisfaction, -unbounded, unbounded); err != nil {
		return row, err
	}
	if row.CO2PerPassenger, err = number(transport.ColCO2, 0, unbounded); err != nil {
		return row, err
	}
	if row.UrbanizationRate, err = number(transport.ColUrbanization, 0, 100); err != nil {
		return row, err
	}
	return row, nil
}

func indexMap(headers []string) map[string]int {
	m := map[string]int{}
	for i, h := range headers {
		m[normalize(h)] = i
	}
	return m
}

func normalize(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
}
