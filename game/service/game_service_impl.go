package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/boggle-blast/game/dict"
	"github.com/wricardo/boggle-blast/game/engine"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrConfigNotFound  = errors.New("configuration not found")
	ErrInvalidRequest  = errors.New("invalid request")
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	words    WordLookup
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance. words may be nil, in
// which case Define always reports the word as missing.
func NewGameService(sessions SessionManager, configs ConfigManager, words WordLookup) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		words:    words,
	}
}

// getConfigID returns the config_id for a given board name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// getSession looks a session up and marks it accessed. Callers hold s.mu.
func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrSessionNotFound, sessionID, err)
	}
	if err := s.sessions.UpdateLastAccessed(sessionID); err != nil {
		log.Debug().Err(err).Str("session", sessionID).Msg("failed to touch session")
	}
	return sess, nil
}

func sessionInfo(sess *Session, configID string) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessed(),
		GameState:      sess.Engine.GetState().Snapshot(),
		BoardConfig:    sess.Config,
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.BoardConfig
	if configName != "" {
		var err error
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found, available configs: %v: %w", configName, configIDs, err)
				}
				return nil, fmt.Errorf("config '%s' not found, use /api/configs to list available boards: %w", configName, err)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	state := sess.Engine.GetState()
	log.Info().
		Str("session", sess.ID).
		Str("config", configID).
		Int("words", state.TotalWords).
		Msg("session created")

	return sessionInfo(sess, configID), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionInfo(sess, s.getConfigID(sess.Config.Name)), nil
}

// ListSessions returns all active sessions, oldest first
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess, s.getConfigID(sess.Config.Name)))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	log.Info().Str("session", sessionID).Msg("session deleted")
	return nil
}

// Solve re-runs the word search and returns the filtered, ranked listing.
func (s *gameServiceImpl) Solve(ctx context.Context, sessionID string, opts SolveOptions) (*SolveResult, error) {
	if opts.Limit < 0 || opts.MinLength < 0 {
		return nil, fmt.Errorf("%w: limit and min_length must not be negative", ErrInvalidRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	sess.Engine.Solve()
	state := sess.Engine.GetState().Snapshot()
	log.Debug().
		Str("session", sessionID).
		Int("words", state.TotalWords).
		Dur("took", time.Since(start)).
		Msg("board solved")

	return buildSolveResult(state, opts), nil
}

func buildSolveResult(state *engine.GameState, opts SolveOptions) *SolveResult {
	words := state.Found
	if opts.Word != "" {
		words = engine.FindWord(words, opts.Word)
	}
	if opts.MinLength > 0 {
		words = engine.FilterMinLength(words, opts.MinLength)
	}
	if opts.Unique {
		words = engine.UniqueWords(words)
	}

	result := &SolveResult{
		TotalWords: len(state.Found),
		GameOver:   state.GameOver,
		GameState:  state,
	}
	if opts.Limit > 0 && len(words) > opts.Limit {
		words = words[:opts.Limit]
		result.Truncated = true
	}
	if words == nil {
		words = []engine.Found{}
	}
	result.Words = words
	result.Returned = len(words)
	return result
}

// Collapse removes one found word from the board
func (s *gameServiceImpl) Collapse(ctx context.Context, sessionID string, req CollapseRequest) (*CollapseResult, error) {
	set := 0
	if req.Rank != nil {
		set++
	}
	if req.Word != "" {
		set++
	}
	if len(req.Path) > 0 {
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("%w: exactly one of rank, word or path is required", ErrInvalidRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	var entry *engine.CollapseEntry
	switch {
	case req.Rank != nil:
		entry, err = sess.Engine.CollapseFound(*req.Rank)
	case req.Word != "":
		entry, err = sess.Engine.CollapseWord(req.Word)
	default:
		entry, err = sess.Engine.Collapse(req.Path)
	}
	if err != nil {
		return nil, err
	}

	state := sess.Engine.GetState().Snapshot()
	now := time.Now()
	events := []GameEvent{{
		Type:      "collapse",
		Message:   fmt.Sprintf("Collapsed %s for %d points", entry.Word, entry.Score),
		Timestamp: now,
	}}
	if len(entry.Blast) > 0 {
		events = append(events, GameEvent{
			Type:      "blast",
			Message:   fmt.Sprintf("Blast cleared %d neighboring cells", len(entry.Blast)),
			Timestamp: now,
		})
	}
	if state.GameOver {
		events = append(events, GameEvent{
			Type:      "game_over",
			Message:   state.Message,
			Timestamp: now,
		})
	}

	log.Info().
		Str("session", sessionID).
		Str("word", entry.Word).
		Int("score", entry.Score).
		Int("removed", len(entry.Removed)).
		Int("rows", entry.RowsAfter).
		Msg("word collapsed")

	return &CollapseResult{
		Collapse:   entry,
		ScoreDelta: entry.Score,
		WordsLeft:  state.TotalWords,
		GameOver:   state.GameOver,
		Message:    state.Message,
		Events:     events,
		GameState:  state,
	}, nil
}

// EditBoard applies cell edits and returns the re-solved listing
func (s *gameServiceImpl) EditBoard(ctx context.Context, sessionID string, edits []engine.CellEdit) (*SolveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	if err := sess.Engine.Edit(edits); err != nil {
		return nil, err
	}

	state := sess.Engine.GetState().Snapshot()
	log.Info().
		Str("session", sessionID).
		Int("edits", len(edits)).
		Int("words", state.TotalWords).
		Msg("board edited")

	return buildSolveResult(state, SolveOptions{}), nil
}

// Reset resets a game session to its starting board
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.Reset().Snapshot()
	log.Info().Str("session", sessionID).Msg("board reset")
	return state, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.GetState().Snapshot(), nil
}

// GetHistory returns paginated collapse history
func (s *gameServiceImpl) GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Engine.GetHistory()
	total := len(history)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultHistoryLimit
	}
	if opts.Limit > maxHistoryLimit {
		opts.Limit = maxHistoryLimit
	}
	opts.Order = strings.ToLower(opts.Order)
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	collapses := []engine.CollapseEntry{}
	if opts.Order == "desc" {
		// most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			collapses = append(collapses, history[i])
		}
	} else if start < total {
		collapses = append(collapses, history[start:end]...)
	}

	return &HistoryResponse{
		Collapses:      collapses,
		TotalCollapses: total,
		Page:           opts.Page,
		PageSize:       opts.Limit,
		TotalPages:     totalPages,
		HasNext:        opts.Page < totalPages,
		HasPrevious:    opts.Page > 1,
	}, nil
}

// ListConfigs returns available boards
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific board configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.BoardConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a board configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.BoardConfig) error {
	if configName == "" {
		return fmt.Errorf("%w: config name is required", ErrInvalidRequest)
	}
	return s.configs.SaveConfig(configName, config)
}

// Define looks a word up in the dictionary
func (s *gameServiceImpl) Define(ctx context.Context, word string) (*Definition, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, fmt.Errorf("%w: word is required", ErrInvalidRequest)
	}
	if s.words == nil {
		return nil, fmt.Errorf("%w: %s", dict.ErrWordNotFound, strings.ToUpper(word))
	}

	entry, err := s.words.Define(word)
	if err != nil {
		return nil, err
	}
	return &Definition{
		Word:       entry.Word,
		Definition: entry.Definition,
		BaseScore:  engine.ScoreWord(entry.Word, 0),
	}, nil
}
