package service

import (
	"context"
	"sync"
	"time"

	"github.com/wricardo/boggle-blast/game/dict"
	"github.com/wricardo/boggle-blast/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Board Operations
	Solve(ctx context.Context, sessionID string, opts SolveOptions) (*SolveResult, error)
	Collapse(ctx context.Context, sessionID string, req CollapseRequest) (*CollapseResult, error)
	EditBoard(ctx context.Context, sessionID string, edits []engine.CellEdit) (*SolveResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.BoardConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.BoardConfig) error

	// Dictionary
	Define(ctx context.Context, word string) (*Definition, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.BoardConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.BoardConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles board configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.BoardConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.BoardConfig
	SaveConfig(name string, config *engine.BoardConfig) error
}

// WordLookup resolves definitions. *dict.Dictionary satisfies it.
type WordLookup interface {
	Define(word string) (*dict.Entry, error)
}

// Session represents an active game session. The engine is guarded by the
// service lock; the access time has its own lock because lookups only hold
// the service read lock.
type Session struct {
	ID        string
	Engine    *engine.GameEngine
	Config    *engine.BoardConfig
	CreatedAt time.Time

	mu           sync.Mutex
	lastAccessed time.Time
}

// NewSession creates a session created and last accessed at now.
func NewSession(id string, eng *engine.GameEngine, config *engine.BoardConfig, now time.Time) *Session {
	return &Session{
		ID:           id,
		Engine:       eng,
		Config:       config,
		CreatedAt:    now,
		lastAccessed: now,
	}
}

// Touch records an access at t.
func (s *Session) Touch(t time.Time) {
	s.mu.Lock()
	s.lastAccessed = t
	s.mu.Unlock()
}

// LastAccessed returns the time of the latest access.
func (s *Session) LastAccessed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccessed
}
