package engine

// IndexToCoords converts a flat index to (column, row) on an N-wide grid.
func IndexToCoords(index, size int) (x, y int) {
	return index % size, index / size
}

// CoordsToIndex converts (column, row) to a flat index on an N-wide grid.
func CoordsToIndex(x, y, size int) int {
	return y*size + x
}

// CountRevealed counts the open cells in a cell slice.
func CountRevealed(cells []Cell) int {
	count := 0
	for _, c := range cells {
		if c.Revealed {
			count++
		}
	}
	return count
}

// CountFlags counts the flagged cells in a cell slice.
func CountFlags(cells []Cell) int {
	count := 0
	for _, c := range cells {
		if c.Flagged {
			count++
		}
	}
	return count
}

// CountMines counts the true entries of a mine layout.
func CountMines(mines []bool) int {
	count := 0
	for _, m := range mines {
		if m {
			count++
		}
	}
	return count
}
