package xlsx

import (
	"fmt"
	"io"
	"math"
	"strconv"

	lo "github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	"transport-stats/domain/transport"
)

// Sheet is one worksheet of an exported workbook. Cells of TextColumns are always
// written as text; other cells that hold a finite number are stored as numbers.
type Sheet struct {
	Name        string
	Table       transport.Table
	TextColumns []string
}

const columnWidth = 18

// Write renders one worksheet per sheet into a new workbook and writes it to w.
func Write(w io.Writer, sheets []Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("xlsx: no sheets")
	}
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Name); err != nil {
				return fmt.Errorf("xlsx: rename sheet %s: %w", s.Name, err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return fmt.Errorf("xlsx: new sheet %s: %w", s.Name, err)
		}
		if err := writeSheet(f, s); err != nil {
			return fmt.Errorf("xlsx: sheet %s: %w", s.Name, err)
		}
	}
	return f.Write(w)
}

func writeSheet(f *excelize.File, s Sheet) error {
	for i, header := range s.Table.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(s.Name, cell, header); err != nil {
			return err
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(s.Name, col, col, columnWidth); err != nil {
			return err
		}
	}
	text := lo.SliceToMap(s.TextColumns, func(c string) (string, bool) { return c, true })
	for r, row := range s.Table.Rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			var value any = v
			if c >= len(s.Table.Columns) || !text[s.Table.Columns[c]] {
				value = cellValue(v)
			}
			if err := f.SetCellValue(s.Name, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func cellValue(v string) any {
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return v
	}
	return n
}
