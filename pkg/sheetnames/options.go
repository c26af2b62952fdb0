// Package sheetnames enumerates the worksheets of spreadsheet files
// and optionally probes each sheet for last-cell positions, fixed
// cells, and title-relative values, producing one record per sheet.
package sheetnames

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Field names attached by the last-cell probes.
const (
	FieldLastRow    = "LastRow"
	FieldLastColumn = "LastColumn"
)

// CellProbe names a direct cell lookup.
type CellProbe struct {
	// Field is the record field name the value is attached under.
	Field string
	// Ref is the A1-style reference of the cell to read.
	Ref string
}

// TitleProbe names a label-relative lookup.
type TitleProbe struct {
	// Field is the record field name the value is attached under.
	Field string
	// Title is the exact cell text to search for.
	Title string
}

// Options configures the optional fields attached to each sheet
// record. The zero value produces plain records carrying sheet and
// file identity only.
type Options struct {
	// FindLastCell attaches LastRow and LastColumn for the
	// bottom-right cell of the used range, counting cells that are
	// formatted but empty.
	FindLastCell bool
	// FindLastValueCell attaches LastRow and LastColumn for the last
	// row and column actually holding a value. Takes precedence over
	// FindLastCell when both are set.
	FindLastValueCell bool
	// Cells attaches the raw values at fixed cell references.
	Cells []CellProbe
	// LeftTitles attaches, per probe, the value reached to the right
	// of the first cell matching the title.
	LeftTitles []TitleProbe
	// TopTitles attaches, per probe, the value reached below the first
	// cell matching the title.
	TopTitles []TitleProbe
}

// Validate checks field names and references before any file is
// touched. Field names must be non-empty and unique across all probes,
// and must not collide with LastRow or LastColumn while a last-cell
// probe is requested.
func (o Options) Validate() error {
	seen := make(map[string]bool)
	if o.FindLastCell || o.FindLastValueCell {
		seen[FieldLastRow] = true
		seen[FieldLastColumn] = true
	}

	claim := func(name string) error {
		if name == "" {
			return fmt.Errorf("empty field name")
		}
		if seen[name] {
			return fmt.Errorf("duplicate field name %q", name)
		}
		seen[name] = true
		return nil
	}

	for _, p := range o.Cells {
		if err := claim(p.Field); err != nil {
			return err
		}
		if _, _, err := excelize.CellNameToCoordinates(strings.ReplaceAll(p.Ref, "$", "")); err != nil {
			return fmt.Errorf("cell probe %q: invalid reference %q", p.Field, p.Ref)
		}
	}
	for _, p := range o.LeftTitles {
		if err := claim(p.Field); err != nil {
			return err
		}
		if p.Title == "" {
			return fmt.Errorf("title probe %q: empty title", p.Field)
		}
	}
	for _, p := range o.TopTitles {
		if err := claim(p.Field); err != nil {
			return err
		}
		if p.Title == "" {
			return fmt.Errorf("title probe %q: empty title", p.Field)
		}
	}
	return nil
}
