package engine

import (
	"fmt"
	"strings"
)

// Letter is the content of a grid cell: an uppercase letter A-Z, Blank, or
// Blocked.
type Letter byte

const (
	Blank   Letter = 0
	Blocked Letter = '#'

	// inUse marks a cell on the current search path. It never escapes a
	// Solve call.
	inUse Letter = '*'
)

const (
	// MinWordLength is the shortest word the search reports.
	MinWordLength = 3

	// BlastThreshold is the path length above which a collapse also clears
	// every orthogonal neighbor of the path.
	BlastThreshold = 4

	// Validation constants
	MaxBoardWidth       = 50
	MaxBoardHeight      = 50
	MaxEditsPerRequest  = 256
	WebSocketBufferSize = 256
)

// IsLetter reports whether l is one of A-Z.
func (l Letter) IsLetter() bool {
	return l >= 'A' && l <= 'Z'
}

// String renders blanks as "." so grids stay aligned in text output.
func (l Letter) String() string {
	switch {
	case l == Blank:
		return "."
	case l == Blocked:
		return "#"
	default:
		return string(rune(l))
	}
}

// MarshalText encodes a blank as "", a blocked cell as "#", and letters as
// themselves.
func (l Letter) MarshalText() ([]byte, error) {
	if l == Blank {
		return []byte{}, nil
	}
	if l != Blocked && !l.IsLetter() {
		return nil, fmt.Errorf("letter %q cannot be encoded", byte(l))
	}
	return []byte{byte(l)}, nil
}

// UnmarshalText accepts "", ".", "#", or a single letter in either case.
func (l *Letter) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	switch {
	case s == "" || s == ".":
		*l = Blank
	case s == "#":
		*l = Blocked
	case len(s) == 1 && isASCIILetter(s[0]):
		*l = Letter(upper(s[0]))
	default:
		return fmt.Errorf("invalid letter %q", s)
	}
	return nil
}

// Cell is a single grid square.
type Cell struct {
	Letter     Letter `json:"letter"`
	Multiplier bool   `json:"multiplier,omitempty"`
}

// IsBlank reports whether the cell holds nothing.
func (c Cell) IsBlank() bool { return c.Letter == Blank }

// IsBlocked reports whether the cell is impassable.
func (c Cell) IsBlocked() bool { return c.Letter == Blocked }

// Coord addresses a cell; row 0 is the top of the grid.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Found is one word traced on the grid.
type Found struct {
	Word  string  `json:"word"`
	Path  []Coord `json:"path"`
	Score int     `json:"score"`
}

// CollapseEntry records one word removed from the grid.
type CollapseEntry struct {
	Number     int     `json:"number"`
	Word       string  `json:"word"`
	Path       []Coord `json:"path"`
	Score      int     `json:"score"`
	Removed    []Coord `json:"removed"`
	Blast      []Coord `json:"blast,omitempty"`
	RowsBefore int     `json:"rows_before"`
	RowsAfter  int     `json:"rows_after"`
	Timestamp  int64   `json:"timestamp"`
}

// BoardConfig describes a starting board in the column-oriented text form.
// Each column string runs top to bottom; lowercase letters are normal
// cells, uppercase letters are multiplier cells, '#' is blocked and '.' is
// an explicit blank. Short columns are padded with blanks at the top.
type BoardConfig struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Columns     []string `json:"columns"`
}

// GameState is the complete state of one board.
type GameState struct {
	Grid       Grid    `json:"grid"`
	Found      []Found `json:"found"`
	TotalWords int     `json:"total_words"`
	Score      int     `json:"score"`
	Message    string  `json:"message"`
	GameOver   bool    `json:"game_over"`
	ConfigName string  `json:"config_name"`

	// History is cumulative and survives Reset; Collapses counts only the
	// collapses since the last reset.
	History        []CollapseEntry `json:"history"`
	TotalCollapses int             `json:"total_collapses"`
	Collapses      int             `json:"collapses"`
}

// Snapshot returns a copy of s that shares nothing mutable with it. The
// grid is cloned because Solve marks cells in place.
func (s *GameState) Snapshot() *GameState {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Grid = s.Grid.Clone()
	cp.Found = make([]Found, len(s.Found))
	copy(cp.Found, s.Found)
	cp.History = make([]CollapseEntry, len(s.History))
	copy(cp.History, s.History)
	return &cp
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
