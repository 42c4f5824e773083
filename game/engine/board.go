package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrInvalidBoard = errors.New("invalid board")

// ValidateBoardConfig validates a board configuration for correctness and playability
func ValidateBoardConfig(config *BoardConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidBoard)
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required: %w", ErrInvalidBoard)
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required: %w", ErrInvalidBoard)
	}
	if len(config.Columns) == 0 || len(config.Columns) > MaxBoardWidth {
		return fmt.Errorf("config validation: columns must number between 1 and %d, got %d: %w",
			MaxBoardWidth, len(config.Columns), ErrInvalidBoard)
	}

	letters := 0
	for i, col := range config.Columns {
		if len(col) > MaxBoardHeight {
			return fmt.Errorf("config validation: column %d is taller than %d: %w", i+1, MaxBoardHeight, ErrInvalidBoard)
		}
		for j := 0; j < len(col); j++ {
			ch := col[j]
			switch {
			case isASCIILetter(ch):
				letters++
			case ch == '#' || ch == '.':
			default:
				return fmt.Errorf("config validation: invalid character '%c' in column %d, position %d: %w",
					ch, i+1, j+1, ErrInvalidBoard)
			}
		}
	}
	if letters == 0 {
		return fmt.Errorf("config validation: board must contain at least one letter: %w", ErrInvalidBoard)
	}
	return nil
}

// ParseCell decodes one board character: lowercase is a normal letter,
// uppercase a multiplier letter, '#' blocked and '.' or "" blank.
func ParseCell(text string) (Cell, error) {
	switch {
	case text == "" || text == ".":
		return Cell{}, nil
	case text == "#":
		return Cell{Letter: Blocked}, nil
	case len(text) == 1 && text[0] >= 'a' && text[0] <= 'z':
		return Cell{Letter: Letter(upper(text[0]))}, nil
	case len(text) == 1 && text[0] >= 'A' && text[0] <= 'Z':
		return Cell{Letter: Letter(text[0]), Multiplier: true}, nil
	}
	return Cell{}, fmt.Errorf("%w: cell text %q", ErrInvalidBoard, text)
}

// FormatCell is the inverse of ParseCell.
func FormatCell(c Cell) string {
	switch {
	case c.Letter == Blocked:
		return "#"
	case c.Letter.IsLetter() && c.Multiplier:
		return string(rune(c.Letter))
	case c.Letter.IsLetter():
		return strings.ToLower(string(rune(c.Letter)))
	}
	return "."
}

// ParseColumns builds a grid from top-to-bottom column strings. The grid
// height is the longest column; shorter columns get blanks at the top.
func ParseColumns(columns []string) (Grid, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrInvalidBoard)
	}
	height := 0
	for _, col := range columns {
		if len(col) > height {
			height = len(col)
		}
	}
	if height == 0 {
		return nil, fmt.Errorf("%w: all columns are empty", ErrInvalidBoard)
	}

	g := NewGrid(height, len(columns))
	for c, col := range columns {
		pad := height - len(col)
		for i := 0; i < len(col); i++ {
			cell, err := ParseCell(col[i : i+1])
			if err != nil {
				return nil, fmt.Errorf("column %d: %w", c+1, err)
			}
			g[pad+i][c] = cell
		}
	}
	return g, nil
}

// FormatColumns encodes g as column strings with leading blanks trimmed.
func FormatColumns(g Grid) []string {
	cols := make([]string, g.Cols())
	for c := range cols {
		var b strings.Builder
		started := false
		for r := 0; r < g.Rows(); r++ {
			cell := g[r][c]
			if !started && cell.IsBlank() {
				continue
			}
			started = true
			b.WriteString(FormatCell(cell))
		}
		cols[c] = b.String()
	}
	return cols
}

// LoadBoardConfig loads a board configuration from a JSON file
func LoadBoardConfig(filename string) (*BoardConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config BoardConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse board file '%s': %w", filename, err)
	}

	if err := ValidateBoardConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadBoardConfigByName loads <dir>/<name>.json.
func LoadBoardConfigByName(dir, name string) (*BoardConfig, error) {
	if !strings.HasSuffix(name, ".json") {
		name = name + ".json"
	}
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("board file '%s' not found", name)
	}
	config, err := LoadBoardConfig(path)
	if err != nil {
		return nil, fmt.Errorf("invalid board '%s': %w", name, err)
	}
	return config, nil
}

// DefaultBoardConfig returns the built-in classic board.
func DefaultBoardConfig() *BoardConfig {
	return &BoardConfig{
		Name:        "classic",
		Description: "The original nine column board with a C multiplier",
		Columns: []string{
			"iuzttcl",
			"asl",
			"n",
			"h",
			"s",
			"eym",
			"uiC",
			"oheyw",
			"drsdirp",
		},
	}
}

// InitGameStateFromConfig creates a fresh game state for config. A nil config
// uses the classic board. The caller fills in Found.
func InitGameStateFromConfig(config *BoardConfig) (*GameState, error) {
	if config == nil {
		config = DefaultBoardConfig()
	}

	grid, err := ParseColumns(config.Columns)
	if err != nil {
		return nil, err
	}

	return &GameState{
		Grid:       grid,
		Found:      []Found{},
		ConfigName: config.Name,
		History:    []CollapseEntry{},
	}, nil
}
