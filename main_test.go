package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/wricardo/boggle-blast/game/dict"
	"github.com/wricardo/boggle-blast/game/engine"
	"github.com/wricardo/boggle-blast/game/session"
	"github.com/wricardo/boggle-blast/transport/mcp"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName != "Boggle Blast Server" {
		t.Errorf("Unexpected app name %s", AppName)
	}
}

func withFlag[T any](t *testing.T, p *T, v T) {
	t.Helper()
	orig := *p
	*p = v
	t.Cleanup(func() { *p = orig })
}

func TestInitializeServices(t *testing.T) {
	withFlag(t, configDir, t.TempDir())
	withFlag(t, dictFile, "")
	withFlag(t, dictDB, "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gameService, err := initializeServices(ctx)
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}

	info, err := gameService.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if info.GameState.TotalWords == 0 {
		t.Error("Expected the default board to have words")
	}
}

func TestInitializeServices_SQLiteDictionary(t *testing.T) {
	withFlag(t, configDir, t.TempDir())
	withFlag(t, dictFile, "")
	withFlag(t, dictDB, filepath.Join(t.TempDir(), "dict.db"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gameService, err := initializeServices(ctx)
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	def, err := gameService.Define(ctx, "cat")
	if err != nil {
		t.Fatalf("Define failed: %v", err)
	}
	if def.Definition == "" {
		t.Error("Expected definition seeded from the embedded list")
	}
}

func TestInitializeServices_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing config dir", func(t *testing.T) {
		withFlag(t, configDir, "/non/existent/path")
		if _, err := initializeServices(ctx); err == nil {
			t.Error("Expected error for non-existent config directory")
		}
	})

	t.Run("missing word list", func(t *testing.T) {
		withFlag(t, configDir, t.TempDir())
		withFlag(t, dictFile, filepath.Join(t.TempDir(), "missing.txt"))
		if _, err := initializeServices(ctx); err == nil {
			t.Error("Expected error for missing dictionary file")
		}
	})
}

func TestFlagDefaults(t *testing.T) {
	if *port <= 0 || *port > 65535 {
		t.Errorf("Invalid default port: %d", *port)
	}
	if *host == "" {
		t.Error("Host should have a default value")
	}
	if *configDir == "" {
		t.Error("Config directory should have a default value")
	}
	if *sessionTTL <= 0 {
		t.Error("Session TTL should be positive")
	}
}

func TestEnvDefault(t *testing.T) {
	t.Setenv("BOGGLE_TEST_VALUE", "from-env")
	if got := envDefault("BOGGLE_TEST_VALUE", "fallback"); got != "from-env" {
		t.Errorf("Expected env value, got %s", got)
	}
	if got := envDefault("BOGGLE_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("Expected fallback, got %s", got)
	}
}

func TestSetupLogging(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	tests := []struct {
		level string
		debug bool
		want  zerolog.Level
	}{
		{"", false, zerolog.InfoLevel},
		{"warn", false, zerolog.WarnLevel},
		{"nonsense", false, zerolog.InfoLevel},
		{"error", true, zerolog.DebugLevel},
	}
	for _, tt := range tests {
		setupLogging(tt.level, tt.debug, false)
		if got := zerolog.GlobalLevel(); got != tt.want {
			t.Errorf("setupLogging(%q, %v): expected %s, got %s", tt.level, tt.debug, tt.want, got)
		}
	}
}

func TestNgrokShouldRun(t *testing.T) {
	withFlag(t, ngrokEnabled, false)

	t.Setenv("NGROK_ENABLED", "")
	if ngrokShouldRun() {
		t.Error("Expected ngrok disabled by default")
	}
	t.Setenv("NGROK_ENABLED", "1")
	if !ngrokShouldRun() {
		t.Error("Expected NGROK_ENABLED=1 to enable ngrok")
	}
}

func TestSessionCleanupRoutine(t *testing.T) {
	words, err := dict.Default()
	if err != nil {
		t.Fatal(err)
	}
	manager := session.NewManager(words.Index())
	s, err := manager.Create("old", engine.DefaultBoardConfig())
	if err != nil {
		t.Fatal(err)
	}
	s.Touch(time.Now().Add(-2 * time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sessionCleanupRoutine(ctx, manager, time.Hour, 5*time.Millisecond)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for manager.Count() > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	if manager.Count() != 0 {
		t.Error("Expected the idle session to be removed")
	}
}

func TestMCPEndpoint(t *testing.T) {
	api := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	router := newRouter(api, mcp.NewClient("http://127.0.0.1:0"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/mcp", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405 for GET /mcp, got %d", w.Code)
	}

	body := []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/mcp", bytes.NewReader(body)))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var resp struct {
		Result struct {
			Tools []struct {
				Name string `json:"name"`
			} `json:"tools"`
		} `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON-RPC response: %v", err)
	}
	found := false
	for _, tool := range resp.Result.Tools {
		if tool.Name == "collapse_word" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected collapse_word in tools list, got %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/health", nil))
	if w.Code != http.StatusTeapot {
		t.Errorf("Expected other paths to reach the API handler, got %d", w.Code)
	}
}
