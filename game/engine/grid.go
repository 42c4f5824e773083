package engine

import (
	"fmt"
	"strings"
)

// Grid is a rectangular board indexed [row][col], row 0 at the top.
type Grid [][]Cell

// NewGrid returns a rows x cols grid of blank cells.
func NewGrid(rows, cols int) Grid {
	g := make(Grid, rows)
	for r := range g {
		g[r] = make([]Cell, cols)
	}
	return g
}

// Rows returns the grid height.
func (g Grid) Rows() int { return len(g) }

// Cols returns the grid width.
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// InBounds reports whether c addresses a cell of g.
func (g Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < len(g) && c.Col >= 0 && c.Col < len(g[c.Row])
}

// At returns the cell at c. c must be in bounds.
func (g Grid) At(c Coord) Cell {
	return g[c.Row][c.Col]
}

// Clone returns a deep copy of g.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for r, row := range g {
		out[r] = append([]Cell(nil), row...)
	}
	return out
}

// Equal reports whether both grids have the same shape and cells.
func (g Grid) Equal(o Grid) bool {
	if len(g) != len(o) {
		return false
	}
	for r := range g {
		if len(g[r]) != len(o[r]) {
			return false
		}
		for c := range g[r] {
			if g[r][c] != o[r][c] {
				return false
			}
		}
	}
	return true
}

// Validate checks that g is non-empty, rectangular and holds only letters,
// blanks and blocked cells.
func (g Grid) Validate() error {
	if len(g) == 0 || len(g[0]) == 0 {
		return fmt.Errorf("%w: grid is empty", ErrInvalidBoard)
	}
	cols := len(g[0])
	for r, row := range g {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidBoard, r, len(row), cols)
		}
		for c, cell := range row {
			if cell.Letter != Blank && cell.Letter != Blocked && !cell.Letter.IsLetter() {
				return fmt.Errorf("%w: cell (%d,%d) holds %q", ErrInvalidBoard, r, c, byte(cell.Letter))
			}
		}
	}
	return nil
}

// Word spells the letters along path. Coordinates outside the grid are
// skipped.
func (g Grid) Word(path []Coord) string {
	var b strings.Builder
	b.Grow(len(path))
	for _, c := range path {
		if g.InBounds(c) && g.At(c).Letter.IsLetter() {
			b.WriteByte(byte(g.At(c).Letter))
		}
	}
	return b.String()
}

// Render draws the grid as text, one line per row. Multiplier cells are
// followed by '*', blanks shown as '.'.
func (g Grid) Render() string {
	var b strings.Builder
	for r, row := range g {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c, cell := range row {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(cell.Letter.String())
			if cell.Multiplier {
				b.WriteByte('*')
			} else {
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}

func (g Grid) rowBlank(r int) bool {
	for _, cell := range g[r] {
		if cell.Letter != Blank {
			return false
		}
	}
	return true
}
