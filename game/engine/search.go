package engine

import (
	"github.com/wricardo/boggle-blast/game/dict"
)

// neighbors is the fixed visiting order for the eight adjacent cells.
var neighbors = [8]Coord{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Solver enumerates every dictionary word that can be traced on a grid.
// It is safe for concurrent use on distinct grids.
type Solver struct {
	index  *dict.PrefixIndex
	maxLen int
}

// NewSolver returns a Solver backed by index. Search depth is bounded by the
// longest word in the index.
func NewSolver(index *dict.PrefixIndex) *Solver {
	return &Solver{index: index, maxLen: index.MaxWordLen()}
}

// Solve returns every path of three or more cells spelling a dictionary
// word, in discovery order: start cells row-major, then neighbors in the
// fixed order. The same word may appear more than once with different
// paths.
//
// Cells on the current path are temporarily overwritten while the search
// runs; g is restored before Solve returns, even on panic.
func (s *Solver) Solve(g Grid) []Found {
	found := []Found{}
	if s.maxLen == 0 {
		return found
	}

	w := walker{
		solver:  s,
		grid:    g,
		letters: make([]byte, 0, s.maxLen),
		path:    make([]Coord, 0, s.maxLen),
		found:   &found,
	}
	root := s.index.Root()
	for r := range g {
		for c := range g[r] {
			w.visit(r, c, root)
		}
	}
	return found
}

type walker struct {
	solver  *Solver
	grid    Grid
	letters []byte
	path    []Coord
	mult    int
	found   *[]Found
}

func (w *walker) visit(row, col, node int) {
	if row < 0 || row >= len(w.grid) || col < 0 || col >= len(w.grid[row]) {
		return
	}
	cell := w.grid[row][col]
	if !cell.Letter.IsLetter() || len(w.letters) == w.solver.maxLen {
		return
	}
	next := w.solver.index.Step(node, byte(cell.Letter))
	if next == dict.NoNode {
		return
	}

	w.letters = append(w.letters, byte(cell.Letter))
	w.path = append(w.path, Coord{Row: row, Col: col})
	if cell.Multiplier {
		w.mult++
	}
	defer w.pop(cell.Multiplier)

	if w.solver.index.Terminal(next) && len(w.letters) >= MinWordLength {
		*w.found = append(*w.found, Found{
			Word:  string(w.letters),
			Path:  append([]Coord(nil), w.path...),
			Score: ScoreWord(string(w.letters), w.mult),
		})
	}

	restore := w.grid.mark(row, col)
	defer restore()

	for _, d := range neighbors {
		w.visit(row+d.Row, col+d.Col, next)
	}
}

func (w *walker) pop(multiplier bool) {
	w.letters = w.letters[:len(w.letters)-1]
	w.path = w.path[:len(w.path)-1]
	if multiplier {
		w.mult--
	}
}

// mark flags a cell as in use and returns the function that restores it.
func (g Grid) mark(row, col int) func() {
	prev := g[row][col].Letter
	g[row][col].Letter = inUse
	return func() { g[row][col].Letter = prev }
}
