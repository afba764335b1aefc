package engine

import "github.com/vovakirdan/tui-tetris/internal/core"

// Cell is one board position: empty, or filled with the color of the piece
// that locked there.
type Cell struct {
	Filled bool
	Color  core.Color
}

// Board is the fixed-size grid of locked cells. Row 0 is the bottom.
type Board struct {
	cols  int
	rows  int
	cells [][]Cell // cells[y][x]
}

// NewBoard returns an empty cols×rows board.
func NewBoard(cols, rows int) *Board {
	b := &Board{cols: cols, rows: rows, cells: make([][]Cell, rows)}
	for y := range b.cells {
		b.cells[y] = make([]Cell, cols)
	}
	return b
}

// Columns returns the board width.
func (b *Board) Columns() int { return b.cols }

// Rows returns the board height.
func (b *Board) Rows() int { return b.rows }

// InBounds reports whether (x, y) lies on the board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.cols && y >= 0 && y < b.rows
}

// Occupied reports whether a locked block sits at (x, y).
// Callers must range-check with InBounds first.
func (b *Board) Occupied(x, y int) bool {
	return b.cells[y][x].Filled
}

// Blocked reports whether a piece cell may not move to (x, y): the position is
// off the board or already occupied.
func (b *Board) Blocked(x, y int) bool {
	return !b.InBounds(x, y) || b.Occupied(x, y)
}

// Cell returns the cell at (x, y), or an empty cell when out of range.
func (b *Board) Cell(x, y int) Cell {
	if !b.InBounds(x, y) {
		return Cell{}
	}
	return b.cells[y][x]
}

// Fill marks (x, y) as occupied with color c. Out-of-range writes are dropped.
func (b *Board) Fill(x, y int, c core.Color) {
	if b.InBounds(x, y) {
		b.cells[y][x] = Cell{Filled: true, Color: c}
	}
}

// Lock writes the piece's cells into the board. Cells outside the grid,
// including any above the top row, are dropped.
func (b *Board) Lock(p *Piece) {
	for _, c := range p.Cells() {
		b.Fill(c.X, c.Y, p.color)
	}
}

// RowFull reports whether every cell in row y is occupied.
func (b *Board) RowFull(y int) bool {
	for _, c := range b.cells[y] {
		if !c.Filled {
			return false
		}
	}
	return true
}

// RowHasBlocks reports whether any cell in row y is occupied.
func (b *Board) RowHasBlocks(y int) bool {
	if y < 0 || y >= b.rows {
		return false
	}
	for _, c := range b.cells[y] {
		if c.Filled {
			return true
		}
	}
	return false
}

// ClearFullRowsAndCompact removes every full row, lets the rows above fall
// into the gaps and refills the top with empty rows. Returns the number of
// rows removed.
func (b *Board) ClearFullRowsAndCompact() int {
	kept := make([][]Cell, 0, b.rows)
	for y := range b.cells {
		if !b.RowFull(y) {
			kept = append(kept, b.cells[y])
		}
	}

	cleared := b.rows - len(kept)
	for len(kept) < b.rows {
		kept = append(kept, make([]Cell, b.cols))
	}
	b.cells = kept
	return cleared
}

// Grid returns a copy of the cells, indexed [y][x].
func (b *Board) Grid() [][]Cell {
	out := make([][]Cell, b.rows)
	for y, row := range b.cells {
		out[y] = make([]Cell, b.cols)
		copy(out[y], row)
	}
	return out
}
