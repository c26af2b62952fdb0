package sheetnames

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/k-nishizono/sheetnames-go/pkg/sheetnames/models"
	"github.com/k-nishizono/sheetnames-go/pkg/sheetnames/probe"
	"github.com/k-nishizono/sheetnames-go/pkg/sheetnames/workbook"
)

// InspectFile produces one record per worksheet of the given input, in
// the workbook's native sheet order.
//
// A string input is resolved on the filesystem first; a path that does
// not resolve to a file yields a FileError wrapping ErrFileNotFound. A
// models.FileRef input is taken as already resolved. Inputs of any
// other type are skipped without records or error, so heterogeneous
// producer streams can be fed through unfiltered.
//
// Failures of the file itself (unreadable, wrong password, corrupt)
// come back as a *FileError; the batch stays usable for further files.
func (b *Batch) InspectFile(input interface{}, opts Options) ([]models.SheetRecord, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return b.inspect(input, opts)
}

// inspect is InspectFile without the options validation, shared with
// Stream which validates once up front.
func (b *Batch) inspect(input interface{}, opts Options) ([]models.SheetRecord, error) {
	if b.ended {
		return nil, ErrBatchEnded
	}

	ref, ok, err := resolveInput(input)
	if err != nil {
		return nil, err
	}
	if !ok {
		log.Debug().Str("type", fmt.Sprintf("%T", input)).Msg("Skipping unsupported input")
		return nil, nil
	}

	if b.current != nil {
		return nil, ErrWorkbookOpen
	}
	wb, err := workbook.Open(ref.Path, b.password)
	if err != nil {
		return nil, NewFileError(ref.Path, err)
	}
	b.current = wb
	defer b.closeWorkbook(ref.Path, wb)

	log.Debug().Str("file", ref.Path).Msg("Workbook opened")

	records, err := inspectSheets(wb, ref, opts)
	if err != nil {
		return nil, NewFileError(ref.Path, err)
	}
	return records, nil
}

// resolveInput turns a supported input into a FileRef. Unsupported
// input types report ok=false with no error.
func resolveInput(input interface{}) (models.FileRef, bool, error) {
	switch v := input.(type) {
	case string:
		fi, err := os.Stat(v)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return models.FileRef{}, false, NewFileError(v, ErrFileNotFound)
			}
			return models.FileRef{}, false, NewFileError(v, err)
		}
		if fi.IsDir() {
			return models.FileRef{}, false, NewFileError(v, ErrFileNotFound)
		}
		return models.FileRef{
			Path:    v,
			Name:    filepath.Base(v),
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		}, true, nil
	case models.FileRef:
		return v, true, nil
	default:
		return models.FileRef{}, false, nil
	}
}

// inspectSheets builds one record per sheet. The first sheet-level
// failure aborts the remaining sheets of this file.
func inspectSheets(wb workbook.Workbook, ref models.FileRef, opts Options) ([]models.SheetRecord, error) {
	sheets := wb.Sheets()
	records := make([]models.SheetRecord, 0, len(sheets))
	for _, sheet := range sheets {
		fields, err := probeSheet(wb, sheet, opts)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}
		records = append(records, models.SheetRecord{
			Sheet:  sheet,
			File:   ref,
			Fields: fields,
		})
	}
	return records, nil
}

// probeSheet attaches the requested optional fields for one sheet.
// Field order is fixed: last-cell positions, then cell probes, then
// left titles, then top titles, each set in request order.
func probeSheet(wb workbook.Workbook, sheet string, opts Options) (models.FieldList, error) {
	var fields models.FieldList

	var grid [][]string
	gridLoaded := false
	loadGrid := func() ([][]string, error) {
		if gridLoaded {
			return grid, nil
		}
		g, err := wb.Grid(sheet)
		if err != nil {
			return nil, err
		}
		grid, gridLoaded = g, true
		return grid, nil
	}

	switch {
	case opts.FindLastValueCell:
		g, err := loadGrid()
		if err != nil {
			return nil, err
		}
		maxRow, maxCol, err := wb.Extent(sheet)
		if err != nil {
			return nil, err
		}
		row, col := probe.LastValueCell(g, maxRow, maxCol)
		fields = append(fields,
			models.Field{Name: FieldLastRow, Value: row},
			models.Field{Name: FieldLastColumn, Value: col},
		)
	case opts.FindLastCell:
		maxRow, maxCol, err := wb.Extent(sheet)
		if err != nil {
			return nil, err
		}
		fields = append(fields,
			models.Field{Name: FieldLastRow, Value: maxRow},
			models.Field{Name: FieldLastColumn, Value: maxCol},
		)
	}

	for _, p := range opts.Cells {
		value, err := wb.Cell(sheet, p.Ref)
		if err != nil {
			return nil, err
		}
		fields = append(fields, models.Field{Name: p.Field, Value: probe.TypedValue(value)})
	}

	if len(opts.LeftTitles) > 0 || len(opts.TopTitles) > 0 {
		g, err := loadGrid()
		if err != nil {
			return nil, err
		}
		maxRow, maxCol := probe.ValueBounds(g)

		for _, p := range opts.LeftTitles {
			value := ""
			if row, col, found := probe.FindTitle(g, p.Title); found {
				r, c := probe.ExtendRight(g, row, col, maxCol)
				value = probe.ValueAt(g, r, c)
			}
			fields = append(fields, models.Field{Name: p.Field, Value: probe.TypedValue(value)})
		}
		for _, p := range opts.TopTitles {
			value := ""
			if row, col, found := probe.FindTitle(g, p.Title); found {
				r, c := probe.ExtendDown(g, row, col, maxRow)
				value = probe.ValueAt(g, r, c)
			}
			fields = append(fields, models.Field{Name: p.Field, Value: probe.TypedValue(value)})
		}
	}

	return fields, nil
}
