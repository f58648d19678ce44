package csv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	lo "github.com/samber/lo"

	"transport-stats/domain/transport"
)

// DefaultExportPrefix names downloaded analysis files.
const DefaultExportPrefix = "transport_analysis"

// ToDelimited serializes t as CSV: a header row of column names, then one line per row.
// Line breaks inside cells are written as LF, so CRLF in a cell reads back as LF.
func ToDelimited(t transport.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTable(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseDelimited reads back the output of ToDelimited.
func ParseDelimited(b []byte) (transport.Table, error) {
	r := csv.NewReader(bytes.NewReader(b))
	head, err := r.Read()
	if errors.Is(err, io.EOF) {
		return transport.Table{}, nil
	}
	if err != nil {
		return transport.Table{}, err
	}
	t := transport.Table{Columns: head}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return transport.Table{}, err
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

// WriteTable writes t as CSV to path, creating parent directories.
func WriteTable(path string, t transport.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeTable(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeTable(out io.Writer, t transport.Table) error {
	w := csv.NewWriter(out)
	write := func(record []string) error {
		record = lo.Map(record, func(v string, _ int) string { return strings.ReplaceAll(v, "\r\n", "\n") })
		// csv.Writer emits a lone empty field as a blank line, which readers skip.
		if len(record) == 1 && record[0] == "" {
			w.Flush()
			if err := w.Error(); err != nil {
				return err
			}
			_, err := io.WriteString(out, "\"\"\n")
			return err
		}
		return w.Write(record)
	}
	if err := write(t.Columns); err != nil {
		return err
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("row %d has %d fields, want %d", i, len(row), len(t.Columns))
		}
		if err := write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ExportFilename returns "<prefix>_YYYYMMDD.csv" for the given day.
func ExportFilename(prefix string, now time.Time) string {
	if prefix == "" {
		prefix = DefaultExportPrefix
	}
	return fmt.Sprintf("%s_%s.csv", prefix, now.Format("20060102"))
}
