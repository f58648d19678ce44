package cmdimport

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	cconfig "transport-stats/connectors/config"
	ccsv "transport-stats/connectors/csv"
	"transport-stats/connectors/source"
)

// Run executes the import subcommand: download the dataset CSV, check it matches
// the expected schema and store it where calculate and web read it from.
func Run(args []string) error {
	return run(context.Background(), args, source.New(nil))
}

func run(ctx context.Context, args []string, client *source.Client) error {
	cfg, err := cconfig.Resolve()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	url := fs.String("url", cfg.Dataset.URL, "dataset CSV URL (optional if config has dataset.url)")
	out := fs.String("out", cfg.Dataset.Path, "where to store the dataset")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *url == "" {
		slog.Error("import.validation.error", "reason", "missing url")
		return fmt.Errorf("missing required -url or CONFIG_PATH with dataset.url")
	}

	slog.Info("import.start", "url", *url, "out", *out)
	body, err := client.Fetch(ctx, *url)
	if err != nil {
		slog.Error("import.fetch.error", "url", *url, "error", err)
		return err
	}
	data, err := ccsv.ReadDataset(bytes.NewReader(body))
	if err != nil {
		slog.Error("import.schema.error", "url", *url, "error", err)
		return fmt.Errorf("validate %s: %w", *url, err)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(*out, body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}
	slog.Info("import.done", "rows", data.Len(), "bytes", len(body), "out", *out)
	return nil
}
