package calculate

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"transport-stats/analytics"
)

const dataset = `Country,Year,Transport_Type,Annual_Usage,Customer_Satisfaction_Score,CO2_Emissions_kg_per_passenger,Urbanization_Rate_%
A,2020,Bus,100,4.5,1.0,50
A,2021,Bus,150,4.6,1.1,52
B,2020,Rail,200,3.0,3.0,60
`

func setup(t *testing.T) (dataPath, outDir string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CONFIG_PATH", filepath.Join(dir, "absent.yml"))
	dataPath = filepath.Join(dir, "transport.csv")
	if err := os.WriteFile(dataPath, []byte(dataset), 0o644); err != nil {
		t.Fatal(err)
	}
	return dataPath, filepath.Join(dir, "out")
}

func TestRun(t *testing.T) {
	dataPath, outDir := setup(t)
	var stdout bytes.Buffer
	now := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	if err := run([]string{"-data", dataPath, "-out", outDir, "-xlsx"}, &stdout, now); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, name := range []string{"benchmark.csv", "trends.csv", "performance.csv", "kpis.csv", "insights.csv",
		"transport_analysis_20240115.csv", "transport_analysis_20240115.xlsx"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
	kpis, err := os.ReadFile(filepath.Join(outDir, "kpis.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(kpis), "Total_Usage,450\n") || !strings.Contains(string(kpis), "Growth_Rate_%,-50\n") {
		t.Errorf("unexpected kpis.csv %q", kpis)
	}

	out := stdout.String()
	for _, want := range []string{"Total_Usage", "Declining Usage: -50.0% decline", "Top Performer: Bus"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRun_Filters(t *testing.T) {
	dataPath, outDir := setup(t)
	var stdout bytes.Buffer
	err := run([]string{"-data", dataPath, "-out", outDir, "-countries", "B", "-types", "Rail"}, &stdout, time.Now())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	bench, err := os.ReadFile(filepath.Join(outDir, "benchmark.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(strings.TrimSpace(string(bench)), "\n"); len(lines) != 2 || !strings.HasPrefix(lines[1], "B,Rail,200,") {
		t.Errorf("unexpected benchmark.csv %q", bench)
	}
}

func TestRun_EmptyResult(t *testing.T) {
	dataPath, outDir := setup(t)
	err := run([]string{"-data", dataPath, "-out", outDir, "-min_satisfaction", "5"}, &bytes.Buffer{}, time.Now())
	if !errors.Is(err, analytics.ErrEmptyResult) {
		t.Fatalf("expected ErrEmptyResult, got %v", err)
	}
	if _, err := os.Stat(outDir); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected no output written, got %v", err)
	}
}

func TestRun_BadArguments(t *testing.T) {
	dataPath, outDir := setup(t)
	if err := run([]string{"-data", dataPath, "-out", outDir, "-from", "later"}, &bytes.Buffer{}, time.Now()); err == nil {
		t.Error("expected error for invalid year")
	}
	if err := run([]string{"-data", dataPath, "extra"}, &bytes.Buffer{}, time.Now()); err == nil {
		t.Error("expected error for positional argument")
	}
}
