package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wricardo/boggle-blast/game/dict"
)

var ErrNoSuchWord = errors.New("word not found on board")

const (
	msgFound     = "%d words on the board"
	msgNoWords   = "No words left on the board"
	msgCollapsed = "Blasted %s for %d points"
	msgEdited    = "Board edited, %d words on the board"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	IsGameOver() bool
	GetScore() int
	GetGrid() Grid

	// Word operations
	Solve() []Found
	GetFound() []Found
	Collapse(path []Coord) (*CollapseEntry, error)
	CollapseFound(rank int) (*CollapseEntry, error)
	CollapseWord(word string) (*CollapseEntry, error)
	Edit(edits []CellEdit) error

	// Configuration
	GetConfig() *BoardConfig
	SetConfig(config *BoardConfig) error

	// History
	GetHistory() []CollapseEntry
	GetLastCollapse() *CollapseEntry
}

// GameEngine implements the Engine interface. It is not safe for concurrent
// use; callers serialise access.
type GameEngine struct {
	state  *GameState
	config *BoardConfig
	solver *Solver

	// initial is the parsed starting grid. Reset clones it, so later
	// changes to config cannot make a reset fail.
	initial Grid
}

var _ Engine = (*GameEngine)(nil)

// NewEngine creates a game engine for config, solving against index. A nil
// config uses the classic board.
func NewEngine(config *BoardConfig, index *dict.PrefixIndex) (*GameEngine, error) {
	if index == nil {
		return nil, errors.New("engine: prefix index is required")
	}
	if config == nil {
		config = DefaultBoardConfig()
	}
	if err := ValidateBoardConfig(config); err != nil {
		return nil, err
	}

	state, err := InitGameStateFromConfig(config)
	if err != nil {
		return nil, err
	}

	e := &GameEngine{
		config:  config,
		state:   state,
		solver:  NewSolver(index),
		initial: state.Grid.Clone(),
	}
	e.refresh()
	return e, nil
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// SetState replaces the game state and re-solves its grid.
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if err := state.Grid.Validate(); err != nil {
		return err
	}
	e.state = state
	e.refresh()
	return nil
}

// Reset restores the configured board. Cumulative history survives.
func (e *GameEngine) Reset() *GameState {
	e.state = &GameState{
		Grid:           e.initial.Clone(),
		Found:          []Found{},
		ConfigName:     e.config.Name,
		History:        e.state.History,
		TotalCollapses: e.state.TotalCollapses,
	}
	e.refresh()
	return e.state
}

// IsGameOver reports whether no words remain on the board.
func (e *GameEngine) IsGameOver() bool {
	return e.state.GameOver
}

// GetScore returns the score accumulated since the last reset.
func (e *GameEngine) GetScore() int {
	return e.state.Score
}

// GetGrid returns the current grid.
func (e *GameEngine) GetGrid() Grid {
	return e.state.Grid
}

// Solve re-runs the word search on the current grid.
func (e *GameEngine) Solve() []Found {
	e.refresh()
	return e.state.Found
}

// GetFound returns the ranked words from the last solve.
func (e *GameEngine) GetFound() []Found {
	return e.state.Found
}

// Collapse removes the word traced by path. The path must be one of the
// currently found words.
func (e *GameEngine) Collapse(path []Coord) (*CollapseEntry, error) {
	for i := range e.state.Found {
		if SamePath(e.state.Found[i].Path, path) {
			return e.collapse(e.state.Found[i])
		}
	}
	if err := validatePath(e.state.Grid, path); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: path %v does not trace a found word", ErrInvalidPath, path)
}

// CollapseFound removes the found word at rank (0 is the best score).
func (e *GameEngine) CollapseFound(rank int) (*CollapseEntry, error) {
	if rank < 0 || rank >= len(e.state.Found) {
		return nil, fmt.Errorf("%w: rank %d of %d", ErrNoSuchWord, rank, len(e.state.Found))
	}
	return e.collapse(e.state.Found[rank])
}

// CollapseWord removes the best scoring path spelling word.
func (e *GameEngine) CollapseWord(word string) (*CollapseEntry, error) {
	matches := FindWord(e.state.Found, word)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchWord, strings.ToUpper(word))
	}
	return e.collapse(matches[0])
}

func (e *GameEngine) collapse(f Found) (*CollapseEntry, error) {
	grid, report, err := Collapse(e.state.Grid, f.Path)
	if err != nil {
		return nil, err
	}

	entry := CollapseEntry{
		Number:     e.state.TotalCollapses + 1,
		Word:       f.Word,
		Path:       append([]Coord(nil), f.Path...),
		Score:      f.Score,
		Removed:    report.Removed,
		Blast:      report.Blast,
		RowsBefore: report.RowsBefore,
		RowsAfter:  report.RowsAfter,
		Timestamp:  time.Now().Unix(),
	}

	e.state.Grid = grid
	e.state.Score += f.Score
	e.state.History = append(e.state.History, entry)
	e.state.TotalCollapses++
	e.state.Collapses++
	e.refresh()
	if !e.state.GameOver {
		e.state.Message = fmt.Sprintf(msgCollapsed, f.Word, f.Score)
	}
	return &entry, nil
}

// Edit applies cell edits and re-solves. Either every edit applies or none.
func (e *GameEngine) Edit(edits []CellEdit) error {
	grid, err := ApplyEdits(e.state.Grid, edits)
	if err != nil {
		return err
	}
	e.state.Grid = grid
	e.refresh()
	if !e.state.GameOver {
		e.state.Message = fmt.Sprintf(msgEdited, len(e.state.Found))
	}
	return nil
}

// GetConfig returns the current board configuration
func (e *GameEngine) GetConfig() *BoardConfig {
	return e.config
}

// SetConfig sets a new board configuration and starts over on it
func (e *GameEngine) SetConfig(config *BoardConfig) error {
	if err := ValidateBoardConfig(config); err != nil {
		return err
	}
	state, err := InitGameStateFromConfig(config)
	if err != nil {
		return err
	}
	e.config = config
	e.state = state
	e.initial = state.Grid.Clone()
	e.refresh()
	return nil
}

// GetHistory returns every collapse, across resets.
func (e *GameEngine) GetHistory() []CollapseEntry {
	return e.state.History
}

// GetLastCollapse returns the most recent collapse, or nil if none
func (e *GameEngine) GetLastCollapse() *CollapseEntry {
	if len(e.state.History) == 0 {
		return nil
	}
	return &e.state.History[len(e.state.History)-1]
}

func (e *GameEngine) refresh() {
	found := e.solver.Solve(e.state.Grid)
	RankFound(found)
	e.state.Found = found
	e.state.TotalWords = len(found)
	e.state.GameOver = len(found) == 0
	if e.state.GameOver {
		e.state.Message = msgNoWords
	} else {
		e.state.Message = fmt.Sprintf(msgFound, len(found))
	}
}
