package probe

// FindTitle returns the 1-based position of the first cell whose value
// equals title exactly, scanning rows top to bottom and cells left to
// right.
func FindTitle(grid [][]string, title string) (row, col int, found bool) {
	for rowIdx, cells := range grid {
		for colIdx, cell := range cells {
			if cell == title {
				return rowIdx + 1, colIdx + 1, true
			}
		}
	}
	return 0, 0, false
}

// ExtendRight returns the position reached from (row, col) by an
// end-mode jump to the right, the way Ctrl+Arrow moves in a
// spreadsheet UI: a filled right neighbour walks to the last cell of
// the contiguous filled run, an empty neighbour seeks the next filled
// cell. When nothing is filled out to maxCol the reported column is
// maxCol+1, where the grid reads empty.
func ExtendRight(grid [][]string, row, col, maxCol int) (int, int) {
	if ValueAt(grid, row, col+1) != "" {
		c := col + 1
		for c < maxCol && ValueAt(grid, row, c+1) != "" {
			c++
		}
		return row, c
	}
	for c := col + 1; c <= maxCol; c++ {
		if ValueAt(grid, row, c) != "" {
			return row, c
		}
	}
	return row, maxCol + 1
}

// ExtendDown is the downward counterpart of ExtendRight, jumping along
// the column below (row, col) out to maxRow.
func ExtendDown(grid [][]string, row, col, maxRow int) (int, int) {
	if ValueAt(grid, row+1, col) != "" {
		r := row + 1
		for r < maxRow && ValueAt(grid, r+1, col) != "" {
			r++
		}
		return r, col
	}
	for r := row + 1; r <= maxRow; r++ {
		if ValueAt(grid, r, col) != "" {
			return r, col
		}
	}
	return maxRow + 1, col
}

// ValueAt returns the value at the 1-based position, or the empty
// string when the position falls outside the grid.
func ValueAt(grid [][]string, row, col int) string {
	if row < 1 || row > len(grid) {
		return ""
	}
	cells := grid[row-1]
	if col < 1 || col > len(cells) {
		return ""
	}
	return cells[col-1]
}
