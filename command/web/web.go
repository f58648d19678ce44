package web

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"transport-stats/analytics"
	"transport-stats/command"
	cconfig "transport-stats/connectors/config"
	ccsv "transport-stats/connectors/csv"
	"transport-stats/connectors/xlsx"
	"transport-stats/domain/config"
)

// Run starts an Echo web server exposing the analysis as JSON APIs and an optional SPA dashboard.
//
// Usage:
//
//	transport-stats web [-addr :8080] [-data ./data/transport.csv] [-ui ./ui/dist]
//
// Every analysis endpoint accepts the filter query parameters countries, types
// (comma separated or repeated), from, to and min_satisfaction. Omitted
// parameters take the dataset defaults advertised by /api/options.
//
//	GET /api/options       -> filter domain and default parameters
//	GET /api/report        -> every view at once
//	GET /api/kpis          -> scalar KPIs
//	GET /api/trends        -> year x transport type aggregates
//	GET /api/benchmark     -> country x transport type aggregates
//	GET /api/performance   -> ranked performance scores
//	GET /api/insights      -> rule-based insights
//	GET /api/correlation   -> correlation matrix of the numeric columns
//	GET /api/distribution  -> satisfaction histogram
//	GET /api/export        -> benchmark table as a CSV download
//	GET /api/export.xlsx   -> every table as an XLSX download
//
// The dataset is read once at startup and shared read-only by all requests.
func Run(args []string) error {
	cfg, err := cconfig.Resolve()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	addr := fs.String("addr", cfg.Web.Addr, "http listen address (host:port)")
	dataPath := fs.String("data", cfg.Dataset.Path, "dataset CSV")
	uiDir := fs.String("ui", cfg.Web.UI, "directory containing built UI (Vite dist)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	engine, err := command.LoadEngine(cfg, *dataPath)
	if err != nil {
		return err
	}
	e := newServer(engine, cfg, time.Now)
	serveUI(e, *uiDir)

	slog.Info("web.start", "addr", *addr, "rows", engine.Dataset().Len())
	return e.Start(*addr)
}

type server struct {
	engine *analytics.Engine
	cfg    *config.Config
	now    func() time.Time
}

func newServer(engine *analytics.Engine, cfg *config.Config, now func() time.Time) *echo.Echo {
	s := &server{engine: engine, cfg: cfg, now: now}
	e := echo.New()
	e.HideBanner = true

	e.GET("/api/options", s.options)
	e.GET("/api/report", s.view(func(r *analytics.Report) any { return r }))
	e.GET("/api/kpis", s.view(func(r *analytics.Report) any { return r.KPIs }))
	e.GET("/api/trends", s.view(func(r *analytics.Report) any { return r.Trends }))
	e.GET("/api/benchmark", s.view(func(r *analytics.Report) any { return r.Benchmark }))
	e.GET("/api/performance", s.view(func(r *analytics.Report) any {
		return map[string]any{"top_performer": r.TopPerformer, "ranking": r.Ranking}
	}))
	e.GET("/api/insights", s.view(func(r *analytics.Report) any { return r.Insights }))
	e.GET("/api/correlation", s.view(func(r *analytics.Report) any { return r.Correlation }))
	e.GET("/api/distribution", s.view(func(r *analytics.Report) any { return r.Distribution }))
	e.GET("/api/export", s.exportCSV)
	e.GET("/api/export.xlsx", s.exportXLSX)
	return e
}

func (s *server) options(c echo.Context) error {
	opts := s.engine.Options()
	return c.JSON(http.StatusOK, map[string]any{
		"options":  opts,
		"defaults": analytics.DefaultParams(opts, s.cfg.Report.DefaultCountries),
	})
}

func (s *server) view(pick func(*analytics.Report) any) echo.HandlerFunc {
	return func(c echo.Context) error {
		r, err := s.analyze(c)
		if err != nil {
			return s.fail(c, err)
		}
		return c.JSON(http.StatusOK, pick(r))
	}
}

func (s *server) exportCSV(c echo.Context) error {
	r, err := s.analyze(c)
	if err != nil {
		return s.fail(c, err)
	}
	b, err := ccsv.ToDelimited(analytics.AggregateTable(r.Benchmark, analytics.BenchmarkKeys))
	if err != nil {
		return s.fail(c, err)
	}
	name := ccsv.ExportFilename(s.cfg.Report.ExportPrefix, s.now())
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", b)
}

func (s *server) exportXLSX(c echo.Context) error {
	r, err := s.analyze(c)
	if err != nil {
		return s.fail(c, err)
	}
	var sheets []xlsx.Sheet
	for _, t := range r.Tables() {
		sheets = append(sheets, xlsx.Sheet{Name: t.Name, Table: t.Table, TextColumns: t.TextColumns})
	}
	var buf bytes.Buffer
	if err := xlsx.Write(&buf, sheets); err != nil {
		return s.fail(c, err)
	}
	name := strings.TrimSuffix(ccsv.ExportFilename(s.cfg.Report.ExportPrefix, s.now()), ".csv") + ".xlsx"
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

type badRequestError struct{ err error }

func (e badRequestError) Error() string { return e.err.Error() }
func (e badRequestError) Unwrap() error { return e.err }

func (s *server) analyze(c echo.Context) (*analytics.Report, error) {
	query := c.QueryParams()
	lookup := func(name string) (string, bool) {
		vs, ok := query[name]
		if !ok {
			return "", false
		}
		return strings.Join(vs, ","), true
	}
	params, err := command.ParseParams(lookup, analytics.DefaultParams(s.engine.Options(), s.cfg.Report.DefaultCountries))
	if err != nil {
		return nil, badRequestError{err}
	}
	return s.engine.Analyze(params)
}

func (s *server) fail(c echo.Context, err error) error {
	var bad badRequestError
	switch {
	case errors.As(err, &bad):
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	case errors.Is(err, analytics.ErrEmptyResult):
		slog.Warn("web.analyze.empty", "path", c.Path(), "query", c.QueryString())
		return c.JSON(http.StatusNotFound, map[string]any{
			"error":   "no matching data",
			"message": "No data matches your filters. Please adjust your selection.",
		})
	default:
		slog.Error("web.analyze.error", "path", c.Path(), "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": err.Error()})
	}
}

// serveUI serves a built Vite app at / when uiDir contains index.html. Unknown
// non-API routes fall back to index.html for SPA routing.
func serveUI(e *echo.Echo, uiDir string) {
	indexPath := filepath.Join(uiDir, "index.html")
	fi, err := os.Stat(indexPath)
	if err != nil || fi.IsDir() {
		return
	}
	e.Static("/", uiDir)
	e.GET("/", func(c echo.Context) error { return c.File(indexPath) })
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if he, ok := err.(*echo.HTTPError); ok && he.Code == http.StatusNotFound {
			if !strings.HasPrefix(c.Request().URL.Path, "/api") {
				_ = c.File(indexPath)
				return
			}
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
