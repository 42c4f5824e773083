package engine

import (
	"errors"
	"fmt"
)

var ErrInvalidEdit = errors.New("invalid edit")

// CellEdit replaces one cell. Text uses the board encoding: lowercase for a
// normal letter, uppercase for a multiplier letter, "#" for blocked, and ""
// or "." for blank.
type CellEdit struct {
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	Text string `json:"text"`
}

// ApplyEdits returns a copy of g with every edit applied in order. Nothing
// is applied if any edit is invalid.
func ApplyEdits(g Grid, edits []CellEdit) (Grid, error) {
	if len(edits) == 0 {
		return nil, fmt.Errorf("%w: no edits", ErrInvalidEdit)
	}
	if len(edits) > MaxEditsPerRequest {
		return nil, fmt.Errorf("%w: %d edits exceeds limit of %d", ErrInvalidEdit, len(edits), MaxEditsPerRequest)
	}

	out := g.Clone()
	for i, e := range edits {
		at := Coord{Row: e.Row, Col: e.Col}
		if !out.InBounds(at) {
			return nil, fmt.Errorf("%w: edit %d at %s is outside the %dx%d grid", ErrInvalidEdit, i, at, g.Rows(), g.Cols())
		}
		cell, err := ParseCell(e.Text)
		if err != nil {
			return nil, fmt.Errorf("%w: edit %d: %v", ErrInvalidEdit, i, err)
		}
		out[e.Row][e.Col] = cell
	}
	return out, nil
}
