// Command boggle-blast starts the Boggle Blast server.
//
// It supports two modes:
//  1. "server" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "stdio-mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Flags control host/port, the board directory, the dictionary source,
// logging, version output, and optional ngrok tunneling for external access
// during development.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/boggle-blast/api"
	"github.com/wricardo/boggle-blast/game/config"
	"github.com/wricardo/boggle-blast/game/dict"
	"github.com/wricardo/boggle-blast/game/service"
	"github.com/wricardo/boggle-blast/game/session"
	"github.com/wricardo/boggle-blast/transport/mcp"
	"github.com/wricardo/boggle-blast/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Boggle Blast Server"
)

// Configuration flags control how the server starts and which services are enabled.
var (
	port         = flag.Int("port", 8080, "HTTP server port")
	host         = flag.String("host", "localhost", "HTTP server host")
	configDir    = flag.String("config-dir", envDefault("CONFIG_DIR", "configs"), "Directory containing board configurations")
	dictFile     = flag.String("dictionary", envDefault("DICTIONARY_FILE", ""), "Word list file (WORD<TAB>definition); embedded list when empty")
	dictDB       = flag.String("dictionary-db", envDefault("DICTIONARY_DB", ""), "SQLite dictionary database; seeded from -dictionary when empty")
	debug        = flag.Bool("debug", false, "Enable debug logging")
	pretty       = flag.Bool("pretty", false, "Human-readable console logs")
	version      = flag.Bool("version", false, "Show version information")
	sessionTTL   = flag.Duration("session-ttl", 24*time.Hour, "Remove sessions idle for longer than this")
	ngrokEnabled = flag.Bool("ngrok", false, "Enable ngrok tunnel")
	ngrokAuth    = flag.String("ngrok-auth", "", "Ngrok auth token (or use NGROK_AUTHTOKEN env var)")
	ngrokDomain  = flag.String("ngrok-domain", "", "Custom ngrok domain (optional)")
)

// envDefault returns the environment variable key, or def when it is unset.
func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [MODE]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s v%s\n\n", AppName, Version)
		fmt.Fprintf(os.Stderr, "Available modes:\n")
		fmt.Fprintf(os.Stderr, "  server, http     Run HTTP server with API, WebSocket, and MCP endpoint (default)\n")
		fmt.Fprintf(os.Stderr, "  stdio-mcp        Run MCP stdio server with internal HTTP server\n")
		fmt.Fprintf(os.Stderr, "  mcp-stdio        Alias for stdio-mcp\n")
		fmt.Fprintf(os.Stderr, "  mcp              Alias for stdio-mcp\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                              # Run HTTP server on default port 8080\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -port 9090                   # Run HTTP server on port 9090\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -dictionary-db dict.db       # Serve words from SQLite\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s stdio-mcp                    # Run MCP stdio server\n", os.Args[0])
	}
}

// main parses flags, initializes services, and starts the selected mode.
func main() {
	// Load .env file if it exists
	envErr := godotenv.Load()

	flag.Parse()

	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	setupLogging(os.Getenv("LOG_LEVEL"), *debug, *pretty)

	if envErr == nil {
		log.Info().Msg("loaded environment variables from .env file")
	} else if !os.IsNotExist(envErr) {
		log.Warn().Err(envErr).Msg("error loading .env file")
	}

	// Determine mode from command
	mode := "server"
	if args := flag.Args(); len(args) > 0 {
		mode = args[0]
	}

	log.Info().Str("version", Version).Str("mode", mode).Msgf("starting %s", AppName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gameService, err := initializeServices(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize services")
	}

	switch mode {
	case "stdio-mcp", "mcp-stdio", "mcp":
		runStdioMCPWithInternalServer(ctx, gameService)

	case "server", "http":
		runHTTPServer(ctx, gameService)

	default:
		log.Fatal().Str("mode", mode).Msg("unknown mode, use 'server' (default) or 'stdio-mcp'")
	}
}

// setupLogging configures the global zerolog logger. LOG_LEVEL sets the
// level (default info); debug forces debug.
func setupLogging(level string, debug, pretty bool) {
	zerolog.TimeFieldFormat = time.RFC3339

	lvl := zerolog.InfoLevel
	if level != "" {
		if parsed, err := zerolog.ParseLevel(level); err == nil {
			lvl = parsed
		}
	}
	if debug {
		lvl = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled (via flag or environment), it also provisions a public tunnel.
func runHTTPServer(ctx context.Context, gameService service.GameService) {
	hub := websocket.NewHub()
	go hub.Run(ctx)

	apiServer := api.NewServer(gameService, hub)

	addr := fmt.Sprintf("%s:%d", *host, *port)

	// The /mcp endpoint proxies back to this server's own API
	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))

	mainRouter := newRouter(apiServer, mcpClient)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Info().
			Str("addr", addr).
			Str("api", fmt.Sprintf("http://%s/api", addr)).
			Str("websocket", fmt.Sprintf("ws://%s/ws?session=<session_id>", addr)).
			Str("mcp", fmt.Sprintf("http://%s/mcp", addr)).
			Msg("HTTP server listening")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	if ngrokShouldRun() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, mainRouter)
		}()
	}

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	wg.Wait()
	log.Info().Msg("server stopped")
}

// newRouter mounts the API at the root and the MCP JSON-RPC endpoint at /mcp.
func newRouter(apiServer http.Handler, mcpClient *mcp.Client) *http.ServeMux {
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)

	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	return mainRouter
}

// ngrokShouldRun reports whether the tunnel is enabled by flag or NGROK_ENABLED.
func ngrokShouldRun() bool {
	if *ngrokEnabled {
		return true
	}
	env := os.Getenv("NGROK_ENABLED")
	return env == "true" || env == "1"
}

// runNgrokTunnel serves handler through an ngrok tunnel until ctx is done.
func runNgrokTunnel(ctx context.Context, handler http.Handler) {
	// Auth token from flag or environment (both naming conventions)
	authToken := *ngrokAuth
	if authToken == "" {
		authToken = envDefault("NGROK_AUTHTOKEN", os.Getenv("NGROK_AUTH_TOKEN"))
	}
	if authToken == "" {
		log.Warn().Msg("ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN)")
		return
	}

	domain := *ngrokDomain
	if domain == "" {
		domain = os.Getenv("NGROK_DOMAIN")
	}

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Info().Str("domain", domain).Msg("using custom ngrok domain")
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	log.Info().Msg("starting ngrok tunnel")
	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Error().Err(err).Msg("failed to start ngrok tunnel")
		return
	}

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close ngrok tunnel")
		}
	}()

	ngrokURL := tun.URL()
	log.Info().
		Str("url", ngrokURL).
		Str("api", ngrokURL+"/api").
		Str("websocket", ngrokURL+"/ws?session=<session_id>").
		Str("mcp", ngrokURL+"/mcp").
		Msg("ngrok tunnel established")

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed && ctx.Err() == nil {
		log.Error().Err(err).Msg("ngrok server error")
	}
	log.Info().Msg("ngrok tunnel closed")
}

// initializeServices loads the dictionary and wires the session/config
// managers into the game service. It also starts a background routine that
// prunes idle sessions until ctx is done.
func initializeServices(ctx context.Context) (service.GameService, error) {
	configManager, err := config.NewManager(*configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	words, err := dict.Source{File: *dictFile, DB: *dictDB}.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary: %w", err)
	}
	log.Info().Int("words", words.Len()).Int("max_len", words.MaxWordLen()).Msg("dictionary ready")

	sessionManager := session.NewManager(words.Index())
	gameService := service.NewGameService(sessionManager, configManager, words)

	go sessionCleanupRoutine(ctx, sessionManager, *sessionTTL, time.Hour)

	return gameService, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within ttl.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, ttl, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(ttl); removed > 0 {
				log.Info().Int("removed", removed).Msg("cleaned up expired sessions")
			}
		}
	}
}

// runStdioMCPWithInternalServer runs an MCP stdio server.
// It tries to reuse an external API at http://localhost:8080; if unavailable, it
// starts a minimal internal HTTP API bound to a random loopback port and targets that.
func runStdioMCPWithInternalServer(ctx context.Context, gameService service.GameService) {
	externalURL := "http://localhost:8080"
	baseURL := externalURL

	log.Info().Str("url", externalURL).Msg("checking for external API server")

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/api/health")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Info().Str("url", externalURL).Msg("external API server found, using it for MCP")
	} else {
		if resp != nil {
			resp.Body.Close()
		}
		log.Info().Msg("no external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			log.Fatal().Err(err).Msg("failed to get available port")
		}
		internalAddr := listener.Addr().String()

		hub := websocket.NewHub()
		go hub.Run(ctx)

		httpServer := &http.Server{Handler: api.NewServer(gameService, hub)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("internal HTTP server error")
			}
		}()
		go func() {
			<-ctx.Done()
			httpServer.Close()
		}()

		baseURL = fmt.Sprintf("http://%s", internalAddr)
		log.Info().Str("addr", internalAddr).Msg("internal HTTP server started for MCP stdio")
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Info().Str("api", baseURL).Msg("MCP stdio server ready")

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		log.Fatal().Err(err).Msg("MCP stdio server error")
	}
}
