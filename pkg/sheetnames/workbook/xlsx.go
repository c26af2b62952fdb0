package workbook

import (
	"github.com/xuri/excelize/v2"

	"github.com/k-nishizono/sheetnames-go/pkg/sheetnames/probe"
)

// xlsxBook reads OOXML workbooks through excelize.
type xlsxBook struct {
	f *excelize.File
}

func openXLSX(path, password string) (Workbook, error) {
	f, err := excelize.OpenFile(path, excelize.Options{Password: password})
	if err != nil {
		return nil, err
	}
	return &xlsxBook{f: f}, nil
}

func (b *xlsxBook) Sheets() []string {
	return b.f.GetSheetList()
}

// Extent combines the worksheet dimension with the value bounds. The
// dimension covers formatted-but-empty cells, but files written by
// other producers may carry a stale or collapsed one, so it never
// shrinks the extent below the populated cells.
func (b *xlsxBook) Extent(sheet string) (int, int, error) {
	grid, err := b.Grid(sheet)
	if err != nil {
		return 0, 0, err
	}
	rows, cols := probe.ValueBounds(grid)

	if dim, err := b.f.GetSheetDimension(sheet); err == nil {
		if r, c, ok := parseDimension(dim); ok {
			if r > rows {
				rows = r
			}
			if c > cols {
				cols = c
			}
		}
	}

	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return rows, cols, nil
}

func (b *xlsxBook) Grid(sheet string) ([][]string, error) {
	return b.f.GetRows(sheet)
}

func (b *xlsxBook) Cell(sheet, ref string) (string, error) {
	return b.f.GetCellValue(sheet, ref, excelize.Options{RawCellValue: true})
}

func (b *xlsxBook) Close() error {
	return b.f.Close()
}
