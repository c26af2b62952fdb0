// Package probe implements the cell scans behind the optional sheet
// record fields: value bounds, last-cell lookups, and title-relative
// navigation.
//
// All functions work on the row-major value grid produced by the
// workbook backends: rows in sheet order, each row holding displayed
// cell values, trailing empty cells possibly trimmed. Positions are
// 1-based throughout.
package probe

// ValueBounds returns the 1-based row and column of the bottom-right
// cell holding a value. A grid without values reports (0, 0).
func ValueBounds(grid [][]string) (rows, cols int) {
	for rowIdx, row := range grid {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			if rowIdx+1 > rows {
				rows = rowIdx + 1
			}
			if colIdx+1 > cols {
				cols = colIdx + 1
			}
		}
	}
	return rows, cols
}

// LastValueCell returns the 1-based row and column of the last cell
// holding a value, scanned backward from the given extent. The two
// axes are probed independently: the row scan looks for the last row
// with any value, the column scan for the last column with any value.
// An axis with no values at all reports 1.
func LastValueCell(grid [][]string, maxRow, maxCol int) (row, col int) {
	row, col = 1, 1
	for r := maxRow; r >= 1; r-- {
		if rowHasValue(grid, r) {
			row = r
			break
		}
	}
	for c := maxCol; c >= 1; c-- {
		if colHasValue(grid, c) {
			col = c
			break
		}
	}
	return row, col
}

func rowHasValue(grid [][]string, row int) bool {
	if row < 1 || row > len(grid) {
		return false
	}
	for _, cell := range grid[row-1] {
		if cell != "" {
			return true
		}
	}
	return false
}

func colHasValue(grid [][]string, col int) bool {
	if col < 1 {
		return false
	}
	for _, row := range grid {
		if col <= len(row) && row[col-1] != "" {
			return true
		}
	}
	return false
}
