package workbook

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// csvBook presents a delimited text file as a workbook with a single
// sheet named after the file, the way a spreadsheet host opens one.
type csvBook struct {
	sheet   string
	records [][]string
}

func openCSV(path string) (Workbook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	base := filepath.Base(path)
	return &csvBook{
		sheet:   strings.TrimSuffix(base, filepath.Ext(base)),
		records: records,
	}, nil
}

func (b *csvBook) Sheets() []string {
	return []string{b.sheet}
}

func (b *csvBook) Extent(sheet string) (int, int, error) {
	if err := b.checkSheet(sheet); err != nil {
		return 0, 0, err
	}
	rows := len(b.records)
	cols := 0
	for _, rec := range b.records {
		if len(rec) > cols {
			cols = len(rec)
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

func (b *csvBook) Grid(sheet string) ([][]string, error) {
	if err := b.checkSheet(sheet); err != nil {
		return nil, err
	}
	return b.records, nil
}

func (b *csvBook) Cell(sheet, ref string) (string, error) {
	if err := b.checkSheet(sheet); err != nil {
		return "", err
	}
	row, col, err := parseRef(ref)
	if err != nil {
		return "", err
	}
	if row > len(b.records) {
		return "", nil
	}
	rec := b.records[row-1]
	if col > len(rec) {
		return "", nil
	}
	return rec[col-1], nil
}

func (b *csvBook) Close() error {
	return nil
}

func (b *csvBook) checkSheet(sheet string) error {
	if sheet != b.sheet {
		return fmt.Errorf("unknown sheet %q", sheet)
	}
	return nil
}
