// Package models defines the record types emitted by the sheet inspector.
package models

// SheetRecord describes one worksheet of one inspected file.
type SheetRecord struct {
	// Sheet is the worksheet name.
	Sheet string `json:"sheet"`
	// File references the workbook file the sheet belongs to.
	File FileRef `json:"file"`
	// Fields holds the optional probe results in request order.
	Fields FieldList `json:"fields,omitempty"`
}
