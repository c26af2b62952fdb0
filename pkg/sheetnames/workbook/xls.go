package workbook

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/extrame/xls"
)

// xlsBook reads legacy BIFF workbooks through extrame/xls. The file is
// loaded into memory up front so Close never has to chase an open
// handle inside the reader.
type xlsBook struct {
	wb *xls.WorkBook
}

func openXLS(path string) (Workbook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	if err := parseSheets(wb); err != nil {
		return nil, err
	}
	return &xlsBook{wb: wb}, nil
}

// parseSheets forces every sheet substream through the reader. The
// reader parses sheets lazily and panics on malformed content, so the
// parse runs here where it can still fail the open.
func parseSheets(wb *xls.WorkBook) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse sheets: %v", r)
		}
	}()
	for i := 0; i < wb.NumSheets(); i++ {
		if wb.GetSheet(i) == nil {
			return fmt.Errorf("sheet %d missing", i)
		}
	}
	return nil
}

// recoverXLS turns reader panics into errors. Cell content handlers
// index the shared-string table without bounds checks.
func recoverXLS(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("xls read: %v", r)
	}
}

// sheetRow is Row with the reader's nil-map panic translated back into
// a missing row. Rows holding no cells and no ROW record are absent
// from the sheet's row map.
func sheetRow(ws *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return ws.Row(i)
}

func (b *xlsBook) Sheets() []string {
	names := make([]string, 0, b.wb.NumSheets())
	for i := 0; i < b.wb.NumSheets(); i++ {
		names = append(names, b.wb.GetSheet(i).Name)
	}
	return names
}

func (b *xlsBook) Extent(sheet string) (int, int, error) {
	ws, err := b.sheetByName(sheet)
	if err != nil {
		return 0, 0, err
	}

	rows := int(ws.MaxRow) + 1
	cols := 1
	for i := 0; i <= int(ws.MaxRow); i++ {
		row := sheetRow(ws, i)
		if row == nil {
			continue
		}
		if row.LastCol() > cols {
			cols = row.LastCol()
		}
	}
	return rows, cols, nil
}

func (b *xlsBook) Grid(sheet string) (grid [][]string, err error) {
	defer recoverXLS(&err)

	ws, err := b.sheetByName(sheet)
	if err != nil {
		return nil, err
	}

	grid = make([][]string, 0, int(ws.MaxRow)+1)
	for i := 0; i <= int(ws.MaxRow); i++ {
		row := sheetRow(ws, i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for j := 0; j < row.LastCol(); j++ {
			cells[j] = row.Col(j)
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

func (b *xlsBook) Cell(sheet, ref string) (s string, err error) {
	defer recoverXLS(&err)

	ws, err := b.sheetByName(sheet)
	if err != nil {
		return "", err
	}
	row, col, err := parseRef(ref)
	if err != nil {
		return "", err
	}
	if row > int(ws.MaxRow)+1 {
		return "", nil
	}
	r := sheetRow(ws, row-1)
	if r == nil || col > r.LastCol() {
		return "", nil
	}
	return r.Col(col - 1), nil
}

func (b *xlsBook) Close() error {
	return nil
}

func (b *xlsBook) sheetByName(name string) (*xls.WorkSheet, error) {
	for i := 0; i < b.wb.NumSheets(); i++ {
		if ws := b.wb.GetSheet(i); ws != nil && ws.Name == name {
			return ws, nil
		}
	}
	return nil, fmt.Errorf("unknown sheet %q", name)
}
