package sheetnames

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/k-nishizono/sheetnames-go/pkg/sheetnames/models"
)

// buildXLSX writes a workbook built by build to a temp file.
func buildXLSX(t *testing.T, build func(f *excelize.File), opts ...excelize.Options) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if build != nil {
		build(f)
	}
	path := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(path, opts...); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

// fillBlock sets rows x cols cells to "x" starting at A1.
func fillBlock(f *excelize.File, sheet string, rows, cols int) {
	for r := 1; r <= rows; r++ {
		for c := 1; c <= cols; c++ {
			cell, _ := excelize.CoordinatesToCellName(c, r)
			f.SetCellValue(sheet, cell, "x")
		}
	}
}

func startTestBatch(t *testing.T) *Batch {
	t.Helper()
	b, err := StartBatch(BatchConfig{})
	if err != nil {
		t.Fatalf("StartBatch failed: %v", err)
	}
	t.Cleanup(func() { b.End() })
	return b
}

func TestInspectFileRecordPerSheet(t *testing.T) {
	path := buildXLSX(t, func(f *excelize.File) {
		f.SetSheetName("Sheet1", "Zebra")
		f.NewSheet("Alpha")
		f.NewSheet("Mango")
	})

	b := startTestBatch(t)
	records, err := b.InspectFile(path, Options{})
	if err != nil {
		t.Fatalf("InspectFile failed: %v", err)
	}

	expected := []string{"Zebra", "Alpha", "Mango"}
	if len(records) != len(expected) {
		t.Fatalf("expected %d records, got %d", len(expected), len(records))
	}
	for i, rec := range records {
		if rec.Sheet != expected[i] {
			t.Errorf("record %d: expected sheet %q, got %q", i, expected[i], rec.Sheet)
		}
		if rec.File.Name != "test.xlsx" {
			t.Errorf("record %d: expected file name test.xlsx, got %q", i, rec.File.Name)
		}
		if rec.File.Path != path {
			t.Errorf("record %d: expected path %q, got %q", i, path, rec.File.Path)
		}
		if len(rec.Fields) != 0 {
			t.Errorf("record %d: expected no fields, got %v", i, rec.Fields)
		}
	}
}

func TestInspectFileMissingPath(t *testing.T) {
	b := startTestBatch(t)

	missing := filepath.Join(t.TempDir(), "gone.xlsx")
	records, err := b.InspectFile(missing, Options{})
	if records != nil {
		t.Errorf("expected no records, got %v", records)
	}
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}

	var fe *FileError
	if !errors.As(err, &fe) {
		t.Fatalf("expected a *FileError, got %T", err)
	}
	if fe.Path != missing {
		t.Errorf("expected path %q in error, got %q", missing, fe.Path)
	}
}

func TestInspectFileDirectoryPath(t *testing.T) {
	b := startTestBatch(t)

	_, err := b.InspectFile(t.TempDir(), Options{})
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound for a directory, got %v", err)
	}
}

func TestInspectFileUnsupportedInput(t *testing.T) {
	b := startTestBatch(t)

	records, err := b.InspectFile(42, Options{})
	if err != nil {
		t.Fatalf("expected unsupported input to be skipped, got %v", err)
	}
	if records != nil {
		t.Errorf("expected no records, got %v", records)
	}
}

func TestInspectFileRefInput(t *testing.T) {
	path := buildXLSX(t, nil)

	b := startTestBatch(t)
	records, err := b.InspectFile(models.FileRef{Path: path, Name: "given.xlsx"}, Options{})
	if err != nil {
		t.Fatalf("InspectFile failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].File.Name != "given.xlsx" {
		t.Errorf("expected the given FileRef to be kept, got %q", records[0].File.Name)
	}
}

func TestInspectFileLastCell(t *testing.T) {
	// Values fill 7x3; the dimension claims 10x5 of formatted cells.
	path := buildXLSX(t, func(f *excelize.File) {
		fillBlock(f, "Sheet1", 7, 3)
		f.SetSheetDimension("Sheet1", "A1:E10")
	})

	b := startTestBatch(t)
	records, err := b.InspectFile(path, Options{FindLastCell: true})
	if err != nil {
		t.Fatalf("InspectFile failed: %v", err)
	}

	fields := records[0].Fields
	if v, _ := fields.Get(FieldLastRow); v != 10 {
		t.Errorf("expected LastRow 10, got %v", v)
	}
	if v, _ := fields.Get(FieldLastColumn); v != 5 {
		t.Errorf("expected LastColumn 5, got %v", v)
	}
}

func TestInspectFileLastValueCell(t *testing.T) {
	path := buildXLSX(t, func(f *excelize.File) {
		fillBlock(f, "Sheet1", 7, 3)
		f.SetSheetDimension("Sheet1", "A1:E10")
	})

	b := startTestBatch(t)
	records, err := b.InspectFile(path, Options{FindLastValueCell: true})
	if err != nil {
		t.Fatalf("InspectFile failed: %v", err)
	}

	fields := records[0].Fields
	if v, _ := fields.Get(FieldLastRow); v != 7 {
		t.Errorf("expected LastRow 7, got %v", v)
	}
	if v, _ := fields.Get(FieldLastColumn); v != 3 {
		t.Errorf("expected LastColumn 3, got %v", v)
	}
}

func TestInspectFileLastValueCellWinsOverLastCell(t *testing.T) {
	path := buildXLSX(t, func(f *excelize.File) {
		fillBlock(f, "Sheet1", 7, 3)
		f.SetSheetDimension("Sheet1", "A1:E10")
	})

	b := startTestBatch(t)
	records, err := b.InspectFile(path, Options{
		FindLastCell:      true,
		FindLastValueCell: true,
	})
	if err != nil {
		t.Fatalf("InspectFile failed: %v", err)
	}

	fields := records[0].Fields
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if v, _ := fields.Get(FieldLastRow); v != 7 {
		t.Errorf("expected LastRow 7, got %v", v)
	}
	if v, _ := fields.Get(FieldLastColumn); v != 3 {
		t.Errorf("expected LastColumn 3, got %v", v)
	}
}

func TestInspectFileLastValueCellEmptySheet(t *testing.T) {
	path := buildXLSX(t, nil)

	b := startTestBatch(t)
	records, err := b.InspectFile(path, Options{FindLastValueCell: true})
	if err != nil {
		t.Fatalf("InspectFile failed: %v", err)
	}

	fields := records[0].Fields
	if v, _ := fields.Get(FieldLastRow); v != 1 {
		t.Errorf("expected LastRow 1, got %v", v)
	}
	if v, _ := fields.Get(FieldLastColumn); v != 1 {
		t.Errorf("expected LastColumn 1, got %v", v)
	}
}

func TestInspectFileCellProbes(t *testing.T) {
	path := buildXLSX(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "B1", "Hello")
	})

	b := startTestBatch(t)
	records, err := b.InspectFile(path, Options{
		Cells: []CellProbe{
			{Field: "Title", Ref: "B1"},
			{Field: "Blank", Ref: "D9"},
		},
	})
	if err != nil {
		t.Fatalf("InspectFile failed: %v", err)
	}

	fields := records[0].Fields
	if v, _ := fields.Get("Title"); v != "Hello" {
		t.Errorf("expected Title=Hello, got %v", v)
	}
	if v, ok := fields.Get("Blank"); !ok || v != "" {
		t.Errorf("expected Blank to be present and empty, got %v (ok=%v)", v, ok)
	}
}

func TestInspectFileLeftTitle(t *testing.T) {
	path := buildXLSX(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "C3", "BY")
		f.SetCellValue("Sheet1", "E3", "Zono")
	})

	b := startTestBatch(t)
	records, err := b.InspectFile(path, Options{
		LeftTitles: []TitleProbe{
			{Field: "Author", Title: "BY"},
			{Field: "Missing", Title: "NOBODY"},
		},
	})
	if err != nil {
		t.Fatalf("InspectFile failed: %v", err)
	}

	fields := records[0].Fields
	if v, _ := fields.Get("Author"); v != "Zono" {
		t.Errorf("expected Author=Zono, got %v", v)
	}
	if v, ok := fields.Get("Missing"); !ok || v != "" {
		t.Errorf("expected Missing to be present and empty, got %v (ok=%v)", v, ok)
	}
}

func TestInspectFileTopTitle(t *testing.T) {
	path := buildXLSX(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "B1", "Date")
		f.SetCellValue("Sheet1", "B5", "March")
	})

	b := startTestBatch(t)
	records, err := b.InspectFile(path, Options{
		TopTitles: []TitleProbe{{Field: "Month", Title: "Date"}},
	})
	if err != nil {
		t.Fatalf("InspectFile failed: %v", err)
	}

	if v, _ := records[0].Fields.Get("Month"); v != "March" {
		t.Errorf("expected Month=March, got %v", v)
	}
}

func TestInspectFileFieldOrder(t *testing.T) {
	path := buildXLSX(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "B1", "Hello")
		f.SetCellValue("Sheet1", "C3", "BY")
		f.SetCellValue("Sheet1", "D3", "Zono")
		f.SetCellValue("Sheet1", "A5", "Date")
		f.SetCellValue("Sheet1", "A6", "March")
	})

	b := startTestBatch(t)
	records, err := b.InspectFile(path, Options{
		FindLastValueCell: true,
		Cells:             []CellProbe{{Field: "Title", Ref: "B1"}},
		LeftTitles:        []TitleProbe{{Field: "Author", Title: "BY"}},
		TopTitles:         []TitleProbe{{Field: "Month", Title: "Date"}},
	})
	if err != nil {
		t.Fatalf("InspectFile failed: %v", err)
	}

	expected := []string{FieldLastRow, FieldLastColumn, "Title", "Author", "Month"}
	fields := records[0].Fields
	if len(fields) != len(expected) {
		t.Fatalf("expected %d fields, got %d", len(expected), len(fields))
	}
	for i, name := range expected {
		if fields[i].Name != name {
			t.Errorf("field %d: expected %q, got %q", i, name, fields[i].Name)
		}
	}
}

func TestInspectFileWrongPassword(t *testing.T) {
	locked := buildXLSX(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "secret")
	}, excelize.Options{Password: "open123"})
	plain := buildXLSX(t, nil)

	b, err := StartBatch(BatchConfig{Password: "wrong"})
	if err != nil {
		t.Fatalf("StartBatch failed: %v", err)
	}
	defer b.End()

	if _, err := b.InspectFile(locked, Options{}); err == nil {
		t.Fatal("expected an error with a wrong password")
	} else {
		var fe *FileError
		if !errors.As(err, &fe) {
			t.Fatalf("expected a *FileError, got %T", err)
		}
	}

	// The failure is scoped to that file; the batch carries on.
	records, err := b.InspectFile(plain, Options{})
	if err != nil {
		t.Fatalf("expected the batch to stay usable, got %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 record, got %d", len(records))
	}
}

func TestInspectFileBatchPassword(t *testing.T) {
	locked := buildXLSX(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "B2", "inside")
	}, excelize.Options{Password: "open123"})

	b, err := StartBatch(BatchConfig{Password: "open123"})
	if err != nil {
		t.Fatalf("StartBatch failed: %v", err)
	}
	defer b.End()

	records, err := b.InspectFile(locked, Options{
		Cells: []CellProbe{{Field: "Inside", Ref: "B2"}},
	})
	if err != nil {
		t.Fatalf("InspectFile failed: %v", err)
	}
	if v, _ := records[0].Fields.Get("Inside"); v != "inside" {
		t.Errorf("expected Inside=inside, got %v", v)
	}
}

func TestInspectFileCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	if err := os.WriteFile(path, []byte("name,qty\nwidget,3\n"), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	b := startTestBatch(t)
	records, err := b.InspectFile(path, Options{FindLastValueCell: true})
	if err != nil {
		t.Fatalf("InspectFile failed: %v", err)
	}
	if len(records) != 1 || records[0].Sheet != "report" {
		t.Fatalf("expected one record for sheet report, got %v", records)
	}
	if v, _ := records[0].Fields.Get(FieldLastRow); v != 2 {
		t.Errorf("expected LastRow 2, got %v", v)
	}
}

func TestInspectFileXLS(t *testing.T) {
	path := filepath.Join("workbook", "testdata", "table.xls")

	b := startTestBatch(t)
	records, err := b.InspectFile(path, Options{
		FindLastValueCell: true,
		Cells:             []CellProbe{{Field: "Header", Ref: "A1"}},
		TopTitles:         []TitleProbe{{Field: "LastName", Title: "Name"}},
	})
	if err != nil {
		t.Fatalf("InspectFile failed: %v", err)
	}
	if len(records) != 1 || records[0].Sheet != "Table" {
		t.Fatalf("expected one record for sheet Table, got %v", records)
	}

	fields := records[0].Fields
	if v, _ := fields.Get(FieldLastRow); v != 12 {
		t.Errorf("expected LastRow 12, got %v", v)
	}
	if v, _ := fields.Get(FieldLastColumn); v != 3 {
		t.Errorf("expected LastColumn 3, got %v", v)
	}
	if v, _ := fields.Get("Header"); v != "Code" {
		t.Errorf("expected Header=Code, got %v", v)
	}
	if v, _ := fields.Get("LastName"); v != "name11" {
		t.Errorf("expected LastName=name11, got %v", v)
	}
}

func TestInspectFileNonFiniteCellText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.csv")
	if err := os.WriteFile(path, []byte("loss,NaN\ngain,Inf\n"), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	b := startTestBatch(t)
	records, err := b.InspectFile(path, Options{
		Cells: []CellProbe{
			{Field: "Loss", Ref: "B1"},
			{Field: "Gain", Ref: "B2"},
		},
	})
	if err != nil {
		t.Fatalf("InspectFile failed: %v", err)
	}

	fields := records[0].Fields
	if v, _ := fields.Get("Loss"); v != "NaN" {
		t.Errorf("expected Loss to stay the text NaN, got %v (%T)", v, v)
	}
	if v, _ := fields.Get("Gain"); v != "Inf" {
		t.Errorf("expected Gain to stay the text Inf, got %v (%T)", v, v)
	}

	// Records holding such cells must still encode.
	if _, err := json.Marshal(records); err != nil {
		t.Errorf("marshalling records failed: %v", err)
	}
}

func TestInspectFileInvalidOptions(t *testing.T) {
	b := startTestBatch(t)

	_, err := b.InspectFile("whatever.xlsx", Options{
		Cells: []CellProbe{
			{Field: "A", Ref: "A1"},
			{Field: "A", Ref: "B1"},
		},
	})
	if err == nil {
		t.Fatal("expected a validation error for duplicate field names")
	}
}

func TestBatchEndBlocksFurtherUse(t *testing.T) {
	path := buildXLSX(t, nil)

	b, err := StartBatch(BatchConfig{})
	if err != nil {
		t.Fatalf("StartBatch failed: %v", err)
	}
	if err := b.End(); err != nil {
		t.Fatalf("End failed: %v", err)
	}

	if _, err := b.InspectFile(path, Options{}); !errors.Is(err, ErrBatchEnded) {
		t.Fatalf("expected ErrBatchEnded, got %v", err)
	}
}
