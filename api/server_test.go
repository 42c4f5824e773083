package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gws "github.com/gorilla/websocket"

	"github.com/wricardo/boggle-blast/game/config"
	"github.com/wricardo/boggle-blast/game/dict"
	"github.com/wricardo/boggle-blast/game/engine"
	"github.com/wricardo/boggle-blast/game/service"
	"github.com/wricardo/boggle-blast/game/session"
	"github.com/wricardo/boggle-blast/transport/websocket"
)

// MockGameService implements service.GameService for testing
type MockGameService struct {
	// Session Management
	CreateSessionFunc func(ctx context.Context, configName string) (*service.SessionInfo, error)
	GetSessionFunc    func(ctx context.Context, sessionID string) (*service.SessionInfo, error)
	ListSessionsFunc  func(ctx context.Context) ([]*service.SessionInfo, error)
	DeleteSessionFunc func(ctx context.Context, sessionID string) error

	// Board Operations
	SolveFunc     func(ctx context.Context, sessionID string, opts service.SolveOptions) (*service.SolveResult, error)
	CollapseFunc  func(ctx context.Context, sessionID string, req service.CollapseRequest) (*service.CollapseResult, error)
	EditBoardFunc func(ctx context.Context, sessionID string, edits []engine.CellEdit) (*service.SolveResult, error)
	ResetFunc     func(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Game State
	GetGameStateFunc func(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetHistoryFunc   func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error)

	// Configuration
	ListConfigsFunc func(ctx context.Context) ([]*service.ConfigInfo, error)
	LoadConfigFunc  func(ctx context.Context, configName string) (*engine.BoardConfig, error)
	SaveConfigFunc  func(ctx context.Context, configName string, config *engine.BoardConfig) error

	// Dictionary
	DefineFunc func(ctx context.Context, word string) (*service.Definition, error)
}

func (m *MockGameService) CreateSession(ctx context.Context, configName string) (*service.SessionInfo, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, configName)
	}
	return &service.SessionInfo{
		ID:         "test-session",
		ConfigName: configName,
		CreatedAt:  time.Now(),
	}, nil
}

func (m *MockGameService) GetSession(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID)
	}
	return &service.SessionInfo{
		ID:         sessionID,
		ConfigName: "test-config",
		CreatedAt:  time.Now(),
	}, nil
}

func (m *MockGameService) ListSessions(ctx context.Context) ([]*service.SessionInfo, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx)
	}
	return []*service.SessionInfo{}, nil
}

func (m *MockGameService) DeleteSession(ctx context.Context, sessionID string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockGameService) Solve(ctx context.Context, sessionID string, opts service.SolveOptions) (*service.SolveResult, error) {
	if m.SolveFunc != nil {
		return m.SolveFunc(ctx, sessionID, opts)
	}
	return &service.SolveResult{Words: []engine.Found{}, GameState: &engine.GameState{}}, nil
}

func (m *MockGameService) Collapse(ctx context.Context, sessionID string, req service.CollapseRequest) (*service.CollapseResult, error) {
	if m.CollapseFunc != nil {
		return m.CollapseFunc(ctx, sessionID, req)
	}
	return &service.CollapseResult{GameState: &engine.GameState{}}, nil
}

func (m *MockGameService) EditBoard(ctx context.Context, sessionID string, edits []engine.CellEdit) (*service.SolveResult, error) {
	if m.EditBoardFunc != nil {
		return m.EditBoardFunc(ctx, sessionID, edits)
	}
	return &service.SolveResult{Words: []engine.Found{}, GameState: &engine.GameState{}}, nil
}

func (m *MockGameService) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, sessionID)
	}
	return &engine.GameState{}, nil
}

func (m *MockGameService) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if m.GetGameStateFunc != nil {
		return m.GetGameStateFunc(ctx, sessionID)
	}
	return &engine.GameState{}, nil
}

func (m *MockGameService) GetHistory(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
	if m.GetHistoryFunc != nil {
		return m.GetHistoryFunc(ctx, sessionID, opts)
	}
	return &service.HistoryResponse{
		Collapses:  []engine.CollapseEntry{},
		Page:       opts.Page,
		PageSize:   opts.Limit,
		TotalPages: 1,
	}, nil
}

func (m *MockGameService) ListConfigs(ctx context.Context) ([]*service.ConfigInfo, error) {
	if m.ListConfigsFunc != nil {
		return m.ListConfigsFunc(ctx)
	}
	return []*service.ConfigInfo{}, nil
}

func (m *MockGameService) LoadConfig(ctx context.Context, configName string) (*engine.BoardConfig, error) {
	if m.LoadConfigFunc != nil {
		return m.LoadConfigFunc(ctx, configName)
	}
	return &engine.BoardConfig{
		Name:        configName,
		Description: "Test config",
		Columns:     []string{"cd", "ao", "tg"},
	}, nil
}

func (m *MockGameService) SaveConfig(ctx context.Context, configName string, config *engine.BoardConfig) error {
	if m.SaveConfigFunc != nil {
		return m.SaveConfigFunc(ctx, configName, config)
	}
	return nil
}

func (m *MockGameService) Define(ctx context.Context, word string) (*service.Definition, error) {
	if m.DefineFunc != nil {
		return m.DefineFunc(ctx, word)
	}
	return &service.Definition{Word: strings.ToUpper(word)}, nil
}

// Test helpers
func setupTestServer(t *testing.T, mockService service.GameService) (*Server, *websocket.Hub) {
	t.Helper()
	hub := websocket.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return NewServer(mockService, hub), hub
}

func makeRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), target); err != nil {
		t.Fatalf("Failed to parse response %q: %v", w.Body.String(), err)
	}
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]interface{}
	parseResponse(t, w, &resp)
	msg, _ := resp["error"].(string)
	return msg
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrSessionNotFound, http.StatusNotFound},
		{fmt.Errorf("load: %w", service.ErrConfigNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: ZZZ", dict.ErrWordNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: rank 9 of 2", engine.ErrNoSuchWord), http.StatusNotFound},
		{fmt.Errorf("%w: need one", service.ErrInvalidRequest), http.StatusBadRequest},
		{fmt.Errorf("%w: too short", engine.ErrInvalidPath), http.StatusBadRequest},
		{fmt.Errorf("%w: bad text", engine.ErrInvalidEdit), http.StatusBadRequest},
		{fmt.Errorf("%w: empty", engine.ErrInvalidBoard), http.StatusBadRequest},
		{fmt.Errorf("%w: x", config.ErrInvalidConfig), http.StatusBadRequest},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// Session Management Tests

func TestCreateSession(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]string
		setupMock      func(*MockGameService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:        "Create session with default config",
			requestBody: nil,
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string) (*service.SessionInfo, error) {
					if configName != "" {
						t.Errorf("Expected empty config name, got %s", configName)
					}
					return &service.SessionInfo{ID: "ab12", ConfigName: "classic"}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.SessionInfo
				parseResponse(t, w, &resp)
				if resp.ID != "ab12" {
					t.Errorf("Expected session ID ab12, got %s", resp.ID)
				}
			},
		},
		{
			name:        "Create session with config_id",
			requestBody: map[string]string{"config_id": "tiny"},
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string) (*service.SessionInfo, error) {
					return &service.SessionInfo{ID: "cd34", ConfigName: configName}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.SessionInfo
				parseResponse(t, w, &resp)
				if resp.ConfigName != "tiny" {
					t.Errorf("Expected config name 'tiny', got %s", resp.ConfigName)
				}
			},
		},
		{
			name:        "Create session with legacy config_name",
			requestBody: map[string]string{"config_name": "classic"},
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string) (*service.SessionInfo, error) {
					return &service.SessionInfo{ID: "ef56", ConfigName: configName}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.SessionInfo
				parseResponse(t, w, &resp)
				if resp.ConfigName != "classic" {
					t.Errorf("Expected config name 'classic', got %s", resp.ConfigName)
				}
			},
		},
		{
			name:        "Unknown config",
			requestBody: map[string]string{"config_id": "missing"},
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("config 'missing' not found: %w", service.ErrConfigNotFound)
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:        "Handle service error",
			requestBody: nil,
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("service error")
				}
			},
			expectedStatus: http.StatusInternalServerError,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				if msg := errorMessage(t, w); msg != "service error" {
					t.Errorf("Expected error message 'service error', got %s", msg)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server, _ := setupTestServer(t, mockService)
			w := httptest.NewRecorder()
			var body interface{}
			if tt.requestBody != nil {
				body = tt.requestBody
			}
			req := makeRequest("POST", "/api/sessions", body)

			server.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestListSessions(t *testing.T) {
	now := time.Now()
	sessions := func() []*service.SessionInfo {
		return []*service.SessionInfo{
			{ID: "old", CreatedAt: now.Add(-2 * time.Hour), LastAccessedAt: now},
			{ID: "mid", CreatedAt: now.Add(-1 * time.Hour), LastAccessedAt: now.Add(-30 * time.Minute)},
			{ID: "new", CreatedAt: now, LastAccessedAt: now.Add(-time.Hour)},
		}
	}

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedIDs    []string
	}{
		{"default sorts by access, newest first", "", http.StatusOK, []string{"old", "mid", "new"}},
		{"created ascending", "?sort=created&order=asc", http.StatusOK, []string{"old", "mid", "new"}},
		{"created descending with limit", "?sort=created&limit=2", http.StatusOK, []string{"new", "mid"}},
		{"bad sort", "?sort=name", http.StatusBadRequest, nil},
		{"bad order", "?order=up", http.StatusBadRequest, nil},
		{"bad limit", "?limit=-1", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{
				ListSessionsFunc: func(ctx context.Context) ([]*service.SessionInfo, error) {
					return sessions(), nil
				},
			}
			server, _ := setupTestServer(t, mockService)
			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest("GET", "/api/sessions"+tt.query, nil))

			if w.Code != tt.expectedStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedIDs == nil {
				return
			}

			var resp struct {
				Count    int                    `json:"count"`
				Total    int                    `json:"total"`
				Sessions []*service.SessionInfo `json:"sessions"`
			}
			parseResponse(t, w, &resp)
			if resp.Total != 3 {
				t.Errorf("Expected total 3, got %d", resp.Total)
			}
			if resp.Count != len(tt.expectedIDs) {
				t.Fatalf("Expected count %d, got %d", len(tt.expectedIDs), resp.Count)
			}
			for i, id := range tt.expectedIDs {
				if resp.Sessions[i].ID != id {
					t.Errorf("Position %d: expected %s, got %s", i, id, resp.Sessions[i].ID)
				}
			}
		})
	}
}

func TestGetAndDeleteSession(t *testing.T) {
	mockService := &MockGameService{
		GetSessionFunc: func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
			if sessionID != "ab12" {
				return nil, service.ErrSessionNotFound
			}
			return &service.SessionInfo{ID: sessionID}, nil
		},
		DeleteSessionFunc: func(ctx context.Context, sessionID string) error {
			if sessionID != "ab12" {
				return service.ErrSessionNotFound
			}
			return nil
		},
	}
	server, _ := setupTestServer(t, mockService)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{"GET", "/api/sessions/ab12", http.StatusOK},
		{"GET", "/api/sessions/zz99", http.StatusNotFound},
		{"DELETE", "/api/sessions/ab12", http.StatusOK},
		{"DELETE", "/api/sessions/zz99", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest(tt.method, tt.path, nil))
			if w.Code != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, w.Code)
			}
		})
	}
}

// Board Operation Tests

func TestListWordsQueryOptions(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedOpts   service.SolveOptions
	}{
		{"no options", "", http.StatusOK, service.SolveOptions{}},
		{"all options", "?limit=5&min_length=4&unique=true&word=cat", http.StatusOK,
			service.SolveOptions{Limit: 5, MinLength: 4, Unique: true, Word: "cat"}},
		{"bad limit", "?limit=abc", http.StatusBadRequest, service.SolveOptions{}},
		{"bad min_length", "?min_length=-2", http.StatusBadRequest, service.SolveOptions{}},
		{"bad unique", "?unique=maybe", http.StatusBadRequest, service.SolveOptions{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got service.SolveOptions
			called := false
			mockService := &MockGameService{
				SolveFunc: func(ctx context.Context, sessionID string, opts service.SolveOptions) (*service.SolveResult, error) {
					called = true
					got = opts
					return &service.SolveResult{Words: []engine.Found{}}, nil
				},
			}
			server, _ := setupTestServer(t, mockService)
			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest("GET", "/api/sessions/ab12/words"+tt.query, nil))

			if w.Code != tt.expectedStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedStatus != http.StatusOK {
				if called {
					t.Error("Service should not be called for invalid query")
				}
				return
			}
			if got != tt.expectedOpts {
				t.Errorf("Expected options %+v, got %+v", tt.expectedOpts, got)
			}
		})
	}
}

func TestSolveBody(t *testing.T) {
	mockService := &MockGameService{
		SolveFunc: func(ctx context.Context, sessionID string, opts service.SolveOptions) (*service.SolveResult, error) {
			if opts.Limit != 3 || !opts.Unique {
				t.Errorf("Unexpected options %+v", opts)
			}
			return &service.SolveResult{
				Words:      []engine.Found{{Word: "CAT", Path: []engine.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}, Score: 15}},
				TotalWords: 2,
				Returned:   1,
			}, nil
		},
	}
	server, _ := setupTestServer(t, mockService)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/sessions/ab12/words", map[string]interface{}{"limit": 3, "unique": true}))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp service.SolveResult
	parseResponse(t, w, &resp)
	if len(resp.Words) != 1 || resp.Words[0].Word != "CAT" || resp.Words[0].Score != 15 {
		t.Errorf("Unexpected words: %+v", resp.Words)
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/sessions/ab12/words", strings.NewReader("{not json"))
	server.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed body, got %d", w.Code)
	}
}

func TestCollapse(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		serviceErr     error
		expectedStatus int
	}{
		{"by rank", map[string]interface{}{"rank": 0}, nil, http.StatusOK},
		{"by word", map[string]interface{}{"word": "cat"}, nil, http.StatusOK},
		{"by path", map[string]interface{}{"path": []map[string]int{{"row": 0, "col": 0}, {"row": 0, "col": 1}, {"row": 0, "col": 2}}}, nil, http.StatusOK},
		{"word not on board", map[string]interface{}{"word": "zzz"}, fmt.Errorf("%w: ZZZ", engine.ErrNoSuchWord), http.StatusNotFound},
		{"invalid path", map[string]interface{}{"path": []map[string]int{{"row": 0, "col": 0}}}, fmt.Errorf("%w: too short", engine.ErrInvalidPath), http.StatusBadRequest},
		{"ambiguous request", map[string]interface{}{}, fmt.Errorf("%w: exactly one", service.ErrInvalidRequest), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got service.CollapseRequest
			mockService := &MockGameService{
				CollapseFunc: func(ctx context.Context, sessionID string, req service.CollapseRequest) (*service.CollapseResult, error) {
					got = req
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return &service.CollapseResult{
						Collapse:   &engine.CollapseEntry{Number: 1, Word: "CAT", Score: 15},
						ScoreDelta: 15,
						WordsLeft:  1,
						GameState:  &engine.GameState{Score: 15},
					}, nil
				},
			}
			server, _ := setupTestServer(t, mockService)
			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest("POST", "/api/sessions/ab12/collapse", tt.body))

			if w.Code != tt.expectedStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.name == "by rank" && (got.Rank == nil || *got.Rank != 0) {
				t.Errorf("Expected rank 0 to be forwarded, got %+v", got)
			}
			if tt.name == "by path" && len(got.Path) != 3 {
				t.Errorf("Expected 3-cell path to be forwarded, got %+v", got.Path)
			}
			if tt.expectedStatus == http.StatusOK {
				var resp service.CollapseResult
				parseResponse(t, w, &resp)
				if resp.ScoreDelta != 15 || resp.Collapse.Word != "CAT" {
					t.Errorf("Unexpected collapse result: %+v", resp)
				}
			}
		})
	}
}

func TestEditAndReset(t *testing.T) {
	var gotEdits []engine.CellEdit
	mockService := &MockGameService{
		EditBoardFunc: func(ctx context.Context, sessionID string, edits []engine.CellEdit) (*service.SolveResult, error) {
			gotEdits = edits
			if len(edits) == 0 {
				return nil, fmt.Errorf("%w: no edits", engine.ErrInvalidEdit)
			}
			return &service.SolveResult{Words: []engine.Found{}, GameState: &engine.GameState{}}, nil
		},
		ResetFunc: func(ctx context.Context, sessionID string) (*engine.GameState, error) {
			if sessionID != "ab12" {
				return nil, service.ErrSessionNotFound
			}
			return &engine.GameState{Message: "fresh"}, nil
		},
	}
	server, _ := setupTestServer(t, mockService)

	w := httptest.NewRecorder()
	body := map[string]interface{}{"edits": []map[string]interface{}{{"row": 2, "col": 0, "text": "h"}}}
	server.ServeHTTP(w, makeRequest("POST", "/api/sessions/ab12/edit", body))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(gotEdits) != 1 || gotEdits[0] != (engine.CellEdit{Row: 2, Col: 0, Text: "h"}) {
		t.Errorf("Edits not forwarded: %+v", gotEdits)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/sessions/ab12/edit", map[string]interface{}{"edits": []interface{}{}}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty edits, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/sessions/ab12/reset", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var resp struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}
	parseResponse(t, w, &resp)
	if resp.State == nil || resp.State.Message != "fresh" {
		t.Errorf("Unexpected reset response: %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/sessions/zz99/reset", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown session, got %d", w.Code)
	}
}

func TestGetHistory(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		expectedOpts service.HistoryOptions
	}{
		{"defaults", "", service.HistoryOptions{Page: 1, Limit: 20, Order: "desc"}},
		{"custom", "?page=2&limit=5&order=asc", service.HistoryOptions{Page: 2, Limit: 5, Order: "asc"}},
		{"invalid values fall back", "?page=0&limit=x&order=sideways", service.HistoryOptions{Page: 1, Limit: 20, Order: "desc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got service.HistoryOptions
			mockService := &MockGameService{
				GetHistoryFunc: func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
					got = opts
					return &service.HistoryResponse{Collapses: []engine.CollapseEntry{}}, nil
				},
			}
			server, _ := setupTestServer(t, mockService)
			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest("GET", "/api/sessions/ab12/history"+tt.query, nil))

			if w.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d", w.Code)
			}
			if got != tt.expectedOpts {
				t.Errorf("Expected %+v, got %+v", tt.expectedOpts, got)
			}
		})
	}
}

// Configuration Tests

func TestConfigs(t *testing.T) {
	var saved *engine.BoardConfig
	var savedID string
	mockService := &MockGameService{
		ListConfigsFunc: func(ctx context.Context) ([]*service.ConfigInfo, error) {
			return []*service.ConfigInfo{{Filename: "classic.json", ConfigID: "classic", Name: "Classic", Rows: 7, Cols: 9}}, nil
		},
		LoadConfigFunc: func(ctx context.Context, configName string) (*engine.BoardConfig, error) {
			if configName != "classic" {
				return nil, fmt.Errorf("%s: %w", configName, service.ErrConfigNotFound)
			}
			return engine.DefaultBoardConfig(), nil
		},
		SaveConfigFunc: func(ctx context.Context, configName string, cfg *engine.BoardConfig) error {
			if err := engine.ValidateBoardConfig(cfg); err != nil {
				return fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
			}
			savedID, saved = configName, cfg
			return nil
		},
	}
	server, _ := setupTestServer(t, mockService)

	t.Run("list", func(t *testing.T) {
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("GET", "/api/configs", nil))
		var resp []service.ConfigInfo
		parseResponse(t, w, &resp)
		if len(resp) != 1 || resp[0].ConfigID != "classic" || resp[0].Rows != 7 {
			t.Errorf("Unexpected configs: %+v", resp)
		}
	})

	t.Run("get strips json extension", func(t *testing.T) {
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("GET", "/api/configs/classic.json", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		var resp engine.BoardConfig
		parseResponse(t, w, &resp)
		if len(resp.Columns) != 9 {
			t.Errorf("Expected 9 columns, got %d", len(resp.Columns))
		}
	})

	t.Run("get missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("GET", "/api/configs/nope", nil))
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})

	t.Run("create derives id from name", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := engine.BoardConfig{Name: "Tiny Board", Description: "Small", Columns: []string{"cd", "ao", "tg"}}
		server.ServeHTTP(w, makeRequest("POST", "/api/configs", body))
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
		if savedID != "tiny_board" || saved == nil || saved.Name != "Tiny Board" {
			t.Errorf("Unexpected save: id=%q config=%+v", savedID, saved)
		}
	})

	t.Run("create with explicit id", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := map[string]interface{}{"config_id": "mine", "name": "Mine", "description": "d", "columns": []string{"abc"}}
		server.ServeHTTP(w, makeRequest("POST", "/api/configs", body))
		if w.Code != http.StatusCreated || savedID != "mine" {
			t.Errorf("Expected save under 'mine', got status %d id %q", w.Code, savedID)
		}
	})

	t.Run("create invalid", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := engine.BoardConfig{Name: "Broken", Description: "Bad", Columns: []string{"a1"}}
		server.ServeHTTP(w, makeRequest("POST", "/api/configs", body))
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("create without name", func(t *testing.T) {
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("POST", "/api/configs", map[string]interface{}{"columns": []string{"abc"}}))
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestConfigIDFromName(t *testing.T) {
	tests := map[string]string{
		"Classic":       "classic",
		"  Tiny Board ": "tiny_board",
		"Big/Board?":    "bigboard",
		"level-2_hard":  "level-2_hard",
		"":              "",
	}
	for name, want := range tests {
		if got := configIDFromName(name); got != want {
			t.Errorf("configIDFromName(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestDefine(t *testing.T) {
	mockService := &MockGameService{
		DefineFunc: func(ctx context.Context, word string) (*service.Definition, error) {
			if word != "cat" {
				return nil, fmt.Errorf("%w: %s", dict.ErrWordNotFound, word)
			}
			return &service.Definition{Word: "CAT", Definition: "a small feline", BaseScore: 5}, nil
		},
	}
	server, _ := setupTestServer(t, mockService)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/dictionary/cat", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var def service.Definition
	parseResponse(t, w, &def)
	if def.Word != "CAT" || def.BaseScore != 5 {
		t.Errorf("Unexpected definition: %+v", def)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/dictionary/qqq", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestHealthAndNotFound(t *testing.T) {
	server, _ := setupTestServer(t, &MockGameService{})

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 from health, got %d", w.Code)
	}
	if w.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected JSON response, got %q", w.Header().Get("Content-Type"))
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/unknown", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown route, got %d", w.Code)
	}
	if msg := errorMessage(t, w); !strings.Contains(msg, "/api/unknown") {
		t.Errorf("Expected path in error message, got %q", msg)
	}
}

func TestRecoversFromPanic(t *testing.T) {
	mockService := &MockGameService{
		GetGameStateFunc: func(ctx context.Context, sessionID string) (*engine.GameState, error) {
			panic("boom")
		},
	}
	server, _ := setupTestServer(t, mockService)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/sessions/ab12/state", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500 after panic, got %d", w.Code)
	}
}

// WebSocket Tests

func TestWebSocketRequestValidation(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    string
		expectedStatus int
	}{
		{"Missing session parameter", "", http.StatusBadRequest},
		{"Unknown session", "?session=zz99", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{
				GetSessionFunc: func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
					return nil, service.ErrSessionNotFound
				},
			}
			server, _ := setupTestServer(t, mockService)
			w := httptest.NewRecorder()
			server.ServeHTTP(w, httptest.NewRequest("GET", "/ws"+tt.queryParams, nil))

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}

	t.Run("No hub", func(t *testing.T) {
		server := NewServer(&MockGameService{}, nil)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, httptest.NewRequest("GET", "/ws?session=ab12", nil))
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected 503 without hub, got %d", w.Code)
		}
	})
}

// newIntegrationServer wires the real service stack over the embedded
// dictionary and the built-in classic board.
func newIntegrationServer(t *testing.T) (*Server, *websocket.Hub) {
	t.Helper()
	words, err := dict.Default()
	if err != nil {
		t.Fatalf("dict.Default: %v", err)
	}
	configs, err := config.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("config.NewManager: %v", err)
	}
	svc := service.NewGameService(session.NewManager(words.Index()), configs, words)
	return setupTestServer(t, svc)
}

func TestIntegration_PlayClassicBoard(t *testing.T) {
	server, _ := newIntegrationServer(t)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/sessions", nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("Create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var info service.SessionInfo
	parseResponse(t, w, &info)
	if info.GameState == nil || info.GameState.Grid.Rows() != 7 {
		t.Fatalf("Expected a 7-row classic board, got %+v", info.GameState)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/sessions/"+info.ID+"/words?limit=5", nil))
	var words service.SolveResult
	parseResponse(t, w, &words)
	if words.TotalWords == 0 || words.Returned == 0 || words.Returned > 5 {
		t.Fatalf("Unexpected word listing: total=%d returned=%d", words.TotalWords, words.Returned)
	}
	best := words.Words[0]

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/sessions/"+info.ID+"/collapse", map[string]int{"rank": 0}))
	if w.Code != http.StatusOK {
		t.Fatalf("Collapse: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var collapsed service.CollapseResult
	parseResponse(t, w, &collapsed)
	if collapsed.Collapse.Word != best.Word || collapsed.ScoreDelta != best.Score {
		t.Errorf("Expected to collapse %s for %d, got %s for %d",
			best.Word, best.Score, collapsed.Collapse.Word, collapsed.ScoreDelta)
	}
	if collapsed.GameState.Score != best.Score {
		t.Errorf("Expected score %d, got %d", best.Score, collapsed.GameState.Score)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/sessions/"+info.ID+"/history", nil))
	var history service.HistoryResponse
	parseResponse(t, w, &history)
	if history.TotalCollapses != 1 || len(history.Collapses) != 1 {
		t.Errorf("Expected one collapse in history, got %+v", history)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/dictionary/cat", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Define: expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/sessions/"+info.ID+"/collapse", map[string]string{"word": "qzqz"}))
	if w.Code != http.StatusNotFound {
		t.Errorf("Collapse unknown word: expected 404, got %d", w.Code)
	}
}

func TestIntegration_CollapseBroadcastsToWebSocket(t *testing.T) {
	server, hub := newIntegrationServer(t)
	ts := httptest.NewServer(server)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/sessions", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	var info service.SessionInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	// Upper case ID still reaches the same subscribers
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?session=" + strings.ToUpper(info.ID)
	conn, _, err := gws.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(time.Second)
	for hub.Watchers(strings.ToLower(info.ID)) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	resp, err = http.Post(ts.URL+"/api/sessions/"+info.ID+"/collapse", "application/json", strings.NewReader(`{"rank":0}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Collapse: expected 200, got %d", resp.StatusCode)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	sawCollapse, sawState := false, false
	for !sawState {
		var msg websocket.Update
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("Failed to read message: %v", err)
		}
		switch msg.Event {
		case "collapse":
			sawCollapse = true
		case websocket.EventStateUpdate:
			sawState = true
			if msg.GameState == nil || msg.GameState.Score == 0 {
				t.Error("Expected state update to carry the new score")
			}
		}
	}
	if !sawCollapse {
		t.Error("Expected collapse event before state update")
	}
}
