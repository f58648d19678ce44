package calculate

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"transport-stats/analytics"
	"transport-stats/command"
	cconfig "transport-stats/connectors/config"
	ccsv "transport-stats/connectors/csv"
	"transport-stats/connectors/xlsx"
	"transport-stats/domain/transport"
)

// Run executes the calculate command: one analysis from flags, every table written
// as CSV under -out, and a summary printed to stdout.
func Run(args []string) error {
	return run(args, os.Stdout, time.Now())
}

func run(args []string, stdout io.Writer, now time.Time) error {
	fs := flag.NewFlagSet("calculate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	dataPath := fs.String("data", "", "dataset CSV (default from config dataset.path)")
	outDir := fs.String("out", "./data", "directory receiving the computed CSV files")
	withXLSX := fs.Bool("xlsx", false, "also write an .xlsx workbook with one sheet per table")
	fs.String(command.ParamCountries, "", "comma-separated countries (default: first countries of the dataset)")
	fs.String(command.ParamTypes, "", "comma-separated transport types (default: all)")
	fs.String(command.ParamFrom, "", "first year (default: dataset minimum)")
	fs.String(command.ParamTo, "", "last year (default: dataset maximum)")
	fs.String(command.ParamMinSatisfaction, "", "minimum satisfaction score (default: dataset minimum)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return fmt.Errorf("calculate: unexpected arguments %v", fs.Args())
	}

	cfg, err := cconfig.Resolve()
	if err != nil {
		return err
	}
	engine, err := command.LoadEngine(cfg, *dataPath)
	if err != nil {
		return err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	lookup := func(name string) (string, bool) {
		if !set[name] {
			return "", false
		}
		return fs.Lookup(name).Value.String(), true
	}
	params, err := command.ParseParams(lookup, analytics.DefaultParams(engine.Options(), cfg.Report.DefaultCountries))
	if err != nil {
		return fmt.Errorf("calculate: %w", err)
	}

	slog.Info("calculate.start", "countries", params.Countries, "types", params.TransportTypes,
		"from", params.Years.From, "to", params.Years.To, "min_satisfaction", params.MinSatisfaction)
	report, err := engine.Analyze(params)
	if err != nil {
		slog.Error("calculate.analyze.error", "error", err)
		return err
	}

	tables := report.Tables()
	for _, t := range tables {
		path := filepath.Join(*outDir, t.Name+".csv")
		if err := ccsv.WriteTable(path, t.Table); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	exportPath := filepath.Join(*outDir, ccsv.ExportFilename(cfg.Report.ExportPrefix, now))
	if err := ccsv.WriteTable(exportPath, tables[0].Table); err != nil {
		return fmt.Errorf("write %s: %w", exportPath, err)
	}
	if *withXLSX {
		path := strings.TrimSuffix(exportPath, ".csv") + ".xlsx"
		if err := writeWorkbook(path, tables); err != nil {
			return err
		}
	}

	printSummary(stdout, report)
	slog.Info("calculate.done", "rows", report.Rows, "groups", len(report.Benchmark), "out", *outDir)
	return nil
}

func writeWorkbook(path string, tables []analytics.NamedTable) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	sheets := make([]xlsx.Sheet, 0, len(tables))
	for _, t := range tables {
		sheets = append(sheets, xlsx.Sheet{Name: t.Name, Table: t.Table, TextColumns: t.TextColumns})
	}
	if err := xlsx.Write(f, sheets); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func printSummary(w io.Writer, r *analytics.Report) {
	renderTable(w, analytics.KPITable(r.KPIs))
	fmt.Fprintln(w)
	renderTable(w, analytics.PerformanceTable(r.TopPerformers, analytics.BenchmarkKeys))
	fmt.Fprintln(w)
	for _, in := range r.Insights {
		fmt.Fprintf(w, "- %s\n", in.Text)
	}
}

func renderTable(w io.Writer, t transport.Table) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(t.Columns)
	tw.SetAutoFormatHeaders(false)
	tw.AppendBulk(t.Rows)
	tw.Render()
}
