package service

import (
	"time"

	"github.com/wricardo/boggle-blast/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string              `json:"id"`
	ConfigName     string              `json:"config_name"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	GameState      *engine.GameState   `json:"game_state"`
	BoardConfig    *engine.BoardConfig `json:"board_config"`
}

// SolveOptions filters the found-word listing
type SolveOptions struct {
	Limit     int    `json:"limit"`      // 0 means no limit
	MinLength int    `json:"min_length"` // words shorter than this are dropped
	Unique    bool   `json:"unique"`     // keep only the best path per word
	Word      string `json:"word"`       // only paths spelling this word
}

// SolveResult contains the ranked words for a board
type SolveResult struct {
	Words      []engine.Found    `json:"words"`
	TotalWords int               `json:"total_words"` // before filtering
	Returned   int               `json:"returned"`
	Truncated  bool              `json:"truncated,omitempty"`
	GameOver   bool              `json:"game_over"`
	GameState  *engine.GameState `json:"game_state"`
}

// CollapseRequest selects the word to remove. Exactly one of Rank, Word or
// Path must be set.
type CollapseRequest struct {
	Rank *int           `json:"rank,omitempty"`
	Word string         `json:"word,omitempty"`
	Path []engine.Coord `json:"path,omitempty"`
}

// CollapseResult contains the outcome of a collapse
type CollapseResult struct {
	Collapse   *engine.CollapseEntry `json:"collapse"`
	ScoreDelta int                   `json:"score_delta"`
	WordsLeft  int                   `json:"words_left"`
	GameOver   bool                  `json:"game_over"`
	Message    string                `json:"message"`
	Events     []GameEvent           `json:"events"`
	GameState  *engine.GameState     `json:"game_state"`
}

// GameEvent represents an event that occurred during play
type GameEvent struct {
	Type      string    `json:"type"` // "collapse", "blast", "game_over", "reset", "edit"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryOptions configures collapse history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated collapse history
type HistoryResponse struct {
	Collapses      []engine.CollapseEntry `json:"collapses"`
	TotalCollapses int                    `json:"total_collapses"`
	Page           int                    `json:"page"`
	PageSize       int                    `json:"page_size"`
	TotalPages     int                    `json:"total_pages"`
	HasNext        bool                   `json:"has_next"`
	HasPrevious    bool                   `json:"has_previous"`
}

// ConfigInfo provides information about a board configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	Multipliers int    `json:"multipliers"`
	Blocked     int    `json:"blocked"`
}

// Definition is a dictionary entry with its unmultiplied score.
type Definition struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	BaseScore  int    `json:"base_score"`
}
