package engine

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	// ErrInvalidSize is returned when a board cannot be built at the
	// requested size: non-positive, too large, or too small to hold the
	// fixed mine ratio with at least one safe cell left over.
	ErrInvalidSize = errors.New("invalid board size")

	// ErrIndexOutOfBounds is returned when an operation addresses a cell
	// outside [0, size²). This is a programmer error, never silently clamped.
	ErrIndexOutOfBounds = errors.New("cell index out of bounds")
)

// Board owns the flat cell array, the mine layout, and the adjacency
// geometry of an N×N grid addressed by flat index i -> (i%N, i/N).
// It knows nothing about game outcome.
type Board struct {
	size      int
	mineCount int
	cells     []Cell
	mines     []bool
}

// NewBoard creates a board of the given size with a fresh uniform random
// mine layout of MineCountFor(size) mines.
func NewBoard(size int) (*Board, error) {
	if size < MinBoardSize || size > MaxBoardSize {
		return nil, fmt.Errorf("%w: %d (want %d..%d)", ErrInvalidSize, size, MinBoardSize, MaxBoardSize)
	}

	b := &Board{
		size:      size,
		mineCount: MineCountFor(size),
		cells:     make([]Cell, size*size),
		mines:     make([]bool, size*size),
	}
	b.shuffleMines()
	return b, nil
}

// NewBoardWithMines creates a board with an explicit mine layout. Hosts use
// it for deterministic scenarios; the layout may hold any number of mines,
// including zero or all cells. Reset still regenerates a random layout at
// the standard ratio.
func NewBoardWithMines(size int, mines []bool) (*Board, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if len(mines) != size*size {
		return nil, fmt.Errorf("%w: mine layout has %d entries, want %d", ErrInvalidSize, len(mines), size*size)
	}

	b := &Board{
		size:  size,
		cells: make([]Cell, size*size),
		mines: make([]bool, size*size),
	}
	copy(b.mines, mines)
	for _, m := range mines {
		if m {
			b.mineCount++
		}
	}
	return b, nil
}

// Reset closes every cell and regenerates a uniform random mine layout at
// the standard ratio, keeping the size fixed.
func (b *Board) Reset() {
	b.mineCount = MineCountFor(b.size)
	for i := range b.cells {
		b.cells[i] = Cell{}
	}
	b.shuffleMines()
}

// shuffleMines lays out exactly mineCount mines and applies a uniform
// random permutation, so every placement is equiprobable.
func (b *Board) shuffleMines() {
	for i := range b.mines {
		b.mines[i] = i < b.mineCount
	}
	rand.Shuffle(len(b.mines), func(i, j int) {
		b.mines[i], b.mines[j] = b.mines[j], b.mines[i]
	})
}

// Size returns the board's edge length N.
func (b *Board) Size() int {
	return b.size
}

// MineCount returns the number of mines in the current layout.
func (b *Board) MineCount() int {
	return b.mineCount
}

// Cell returns the cell at the given flat index.
func (b *Board) Cell(index int) (Cell, error) {
	if err := b.checkIndex(index); err != nil {
		return Cell{}, err
	}
	return b.cells[index], nil
}

// Cells returns a copy of the full cell array for rendering.
func (b *Board) Cells() []Cell {
	out := make([]Cell, len(b.cells))
	copy(out, b.cells)
	return out
}

// MineLayout returns a copy of the mine layout. Intended for loss disclosure
// and offline analysis, not for gameplay decisions.
func (b *Board) MineLayout() []bool {
	out := make([]bool, len(b.mines))
	copy(out, b.mines)
	return out
}

// UnrevealedCount returns the number of cells still closed, flagged or not.
func (b *Board) UnrevealedCount() int {
	n := 0
	for _, c := range b.cells {
		if !c.Revealed {
			n++
		}
	}
	return n
}

// AdjacentIndices returns the in-bounds neighbor indices of a cell, up to 8.
// Column wraparound is suppressed explicitly: offsets reaching column -1 are
// dropped on the left edge (index%N == 0) and offsets reaching column N are
// dropped on the right edge ((index+1)%N == 0). Row overflow falls out of the
// final bounds filter.
func (b *Board) AdjacentIndices(index int) []int {
	n := b.size
	leftEdge := index%n == 0
	rightEdge := (index+1)%n == 0

	offsets := [8]int{-n - 1, -n, -n + 1, -1, 1, n - 1, n, n + 1}
	out := make([]int, 0, 8)
	for _, off := range offsets {
		if leftEdge && (off == -n-1 || off == -1 || off == n-1) {
			continue
		}
		if rightEdge && (off == -n+1 || off == 1 || off == n+1) {
			continue
		}
		adj := index + off
		if adj >= 0 && adj < n*n {
			out = append(out, adj)
		}
	}
	return out
}

// adjacentMineCount counts the mines among a cell's neighbors.
func (b *Board) adjacentMineCount(index int) int {
	count := 0
	for _, adj := range b.AdjacentIndices(index) {
		if b.mines[adj] {
			count++
		}
	}
	return count
}

// Open reveals the cell at index. It returns false when the player opened a
// mine, true otherwise (including the no-op on an already-open cell). A flag
// on the target has no effect on reveal logic and is cleared by the reveal.
//
// Opening a cell with zero adjacent mines flood-fills the maximal connected
// zero region and its numbered frontier. The fill runs on an explicit
// work list rather than recursion, and it never reveals a mine: expansion
// stops at the mine's boundary.
func (b *Board) Open(index int) (bool, error) {
	if err := b.checkIndex(index); err != nil {
		return false, err
	}
	if b.cells[index].Revealed {
		return true, nil
	}
	if b.mines[index] {
		b.cells[index] = Cell{Revealed: true, Content: ContentMine}
		return false, nil
	}
	b.reveal(index)
	return true, nil
}

// reveal opens start and expands through zero-adjacency cells. Cells pulled
// off the work list during expansion are skipped when already open or mined,
// which is what keeps flood fill from ever detonating.
func (b *Board) reveal(start int) {
	frontier := []int{start}
	for len(frontier) > 0 {
		i := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		if b.cells[i].Revealed || b.mines[i] {
			continue
		}

		adjacent := b.adjacentMineCount(i)
		if adjacent == 0 {
			b.cells[i] = Cell{Revealed: true, Content: ContentEmpty}
			for _, adj := range b.AdjacentIndices(i) {
				if !b.cells[adj].Revealed {
					frontier = append(frontier, adj)
				}
			}
		} else {
			b.cells[i] = Cell{Revealed: true, Content: ContentNumber, Adjacent: adjacent}
		}
	}
}

// ToggleFlag flips the flag on a closed cell. Flagging an open cell is a
// deliberate no-op, not an error.
func (b *Board) ToggleFlag(index int) error {
	if err := b.checkIndex(index); err != nil {
		return err
	}
	if b.cells[index].Revealed {
		return nil
	}
	b.cells[index].Flagged = !b.cells[index].Flagged
	return nil
}

func (b *Board) checkIndex(index int) error {
	if index < 0 || index >= b.size*b.size {
		return fmt.Errorf("%w: %d on a %dx%d board", ErrIndexOutOfBounds, index, b.size, b.size)
	}
	return nil
}
