// Package workbook opens spreadsheet files behind a format-neutral,
// read-only handle used by the sheet inspector. The backend is picked
// by file extension: OOXML workbooks via excelize, legacy BIFF
// workbooks via extrame/xls, delimited text via encoding/csv.
package workbook

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnknownFormat indicates the file extension maps to no backend.
var ErrUnknownFormat = errors.New("not a recognized spreadsheet format")

// Workbook is a read-only view of one opened spreadsheet file.
// Implementations are not safe for concurrent use.
type Workbook interface {
	// Sheets returns the worksheet names in the file's native order.
	Sheets() []string
	// Extent returns the 1-based bottom-right position of the named
	// sheet's used range, counting cells that carry a value or
	// formatting. An empty sheet reports (1, 1).
	Extent(sheet string) (rows, cols int, err error)
	// Grid returns the sheet's displayed cell values, row-major, with
	// the 1-based position (r, c) stored at [r-1][c-1]. Trailing empty
	// cells may be trimmed per row.
	Grid(sheet string) ([][]string, error)
	// Cell returns the raw value at an A1-style reference, or the
	// empty string when the cell holds nothing.
	Cell(sheet, ref string) (string, error)
	// Close releases the underlying file resources.
	Close() error
}

// Open opens path with the backend matching its extension. The
// password is applied by backends that support protected files and
// ignored elsewhere.
func Open(path, password string) (Workbook, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return openXLSX(path, password)
	case ".xls":
		return openXLS(path)
	case ".csv":
		return openCSV(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// parseRef converts an A1-style reference like "B12" or "$B$12" to a
// 1-based (row, col) position.
func parseRef(ref string) (row, col int, err error) {
	c, r, err := excelize.CellNameToCoordinates(strings.ReplaceAll(ref, "$", ""))
	if err != nil {
		return 0, 0, err
	}
	return r, c, nil
}

// parseDimension converts a dimension reference like "A1:E10" (or a
// single cell like "A1") to the 1-based position of its bottom-right
// cell.
func parseDimension(dim string) (rows, cols int, ok bool) {
	dim = strings.ReplaceAll(dim, "$", "")
	parts := strings.Split(dim, ":")
	end := strings.TrimSpace(parts[len(parts)-1])

	c, r, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return 0, 0, false
	}
	return r, c, true
}
