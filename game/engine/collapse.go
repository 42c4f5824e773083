package engine

import (
	"errors"
	"fmt"
	"sort"
)

var ErrInvalidPath = errors.New("invalid path")

// orthogonal lists the four edge-sharing offsets.
var orthogonal = [4]Coord{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// CollapseReport describes what a collapse removed.
type CollapseReport struct {
	Removed    []Coord `json:"removed"`
	Blast      []Coord `json:"blast,omitempty"`
	RowsBefore int     `json:"rows_before"`
	RowsAfter  int     `json:"rows_after"`
}

// RemovalSet returns the cells a collapse of path clears: the path itself,
// plus each in-bounds orthogonal neighbor of a path cell when the path is
// longer than BlastThreshold or the neighbor is blocked. The result is in
// row-major order.
func RemovalSet(g Grid, path []Coord) ([]Coord, error) {
	if err := validatePath(g, path); err != nil {
		return nil, err
	}
	set := removalSet(g, path)
	return sortedCoords(set), nil
}

// Collapse removes the cells of path (and any blasted neighbors) from g and
// lets the remaining cells fall. Each column keeps its surviving cells in
// order, is padded with blanks at the top to the original height, and gains
// one extra blank row at the bottom. All-blank rows are then trimmed from
// the top while more than one row remains.
//
// g is not modified; a new grid is returned.
func Collapse(g Grid, path []Coord) (Grid, *CollapseReport, error) {
	if err := validatePath(g, path); err != nil {
		return nil, nil, err
	}

	removed := removalSet(g, path)
	rows, cols := g.Rows(), g.Cols()

	out := NewGrid(rows+1, cols)
	for c := 0; c < cols; c++ {
		dst := rows - 1
		for r := rows - 1; r >= 0; r-- {
			if _, gone := removed[Coord{Row: r, Col: c}]; gone {
				continue
			}
			out[dst][c] = g[r][c]
			dst--
		}
	}

	for len(out) > 1 && out.rowBlank(0) {
		out = out[1:]
	}

	onPath := make(map[Coord]struct{}, len(path))
	for _, p := range path {
		onPath[p] = struct{}{}
	}
	var blast []Coord
	all := sortedCoords(removed)
	for _, c := range all {
		if _, ok := onPath[c]; !ok {
			blast = append(blast, c)
		}
	}

	return out, &CollapseReport{
		Removed:    all,
		Blast:      blast,
		RowsBefore: rows,
		RowsAfter:  len(out),
	}, nil
}

func validatePath(g Grid, path []Coord) error {
	if len(path) < MinWordLength {
		return fmt.Errorf("%w: %d cells, need at least %d", ErrInvalidPath, len(path), MinWordLength)
	}
	if err := g.Validate(); err != nil {
		return err
	}
	for _, c := range path {
		if !g.InBounds(c) {
			return fmt.Errorf("%w: %s is outside the %dx%d grid", ErrInvalidPath, c, g.Rows(), g.Cols())
		}
	}
	return nil
}

func removalSet(g Grid, path []Coord) map[Coord]struct{} {
	blastAll := len(path) > BlastThreshold
	set := make(map[Coord]struct{}, len(path)*5)
	for _, p := range path {
		set[p] = struct{}{}
		for _, d := range orthogonal {
			n := Coord{Row: p.Row + d.Row, Col: p.Col + d.Col}
			if !g.InBounds(n) {
				continue
			}
			if blastAll || g.At(n).IsBlocked() {
				set[n] = struct{}{}
			}
		}
	}
	return set
}

func sortedCoords(set map[Coord]struct{}) []Coord {
	out := make([]Coord, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}
