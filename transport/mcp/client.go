package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/boggle-blast/game/engine"
	"github.com/wricardo/boggle-blast/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Boggle Blast",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Boggle Blast - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Find words on a letter grid and blast them off the board. Each collapse scores
the word, removes its cells, lets the columns fall, and re-solves the board.
The game ends when no words remain.

AVAILABLE TOOLS:
- create_session: Create new board session
- list_sessions: List all active sessions
- get_session: Get session details
- board_state: Show the current grid and score
- list_words: Ranked words currently on the board
- collapse_word: Blast a word by rank, by spelling, or by path
- edit_board: Type letters into cells, then re-solve
- reset_board: Restore the starting board
- collapse_history: View past collapses
- list_configs: List available boards
- define_word: Look up a word in the dictionary
- describe_cell: Inspect a single grid cell
- game_instructions: Full rules and scoring`),
	)

	c.registerTools()
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new board session with optional board selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Board to start from (see list_configs). Defaults to the classic board.",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active board sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Board operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "board_state",
		Description: "Show the current grid, score and the best words",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleBoardState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_words",
		Description: "List the words on the board, best score first. Rank numbers can be passed to collapse_word.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of words to return (0 = all)",
				},
				"min_length": map[string]interface{}{
					"type":        "integer",
					"description": "Drop words shorter than this",
				},
				"unique": map[string]interface{}{
					"type":        "boolean",
					"description": "Show only the best path for each word",
				},
				"word": map[string]interface{}{
					"type":        "string",
					"description": "Only show paths spelling this word",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleListWords)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "collapse_word",
		Description: "Blast a word off the board. Give exactly one of rank, word, or path.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"rank": map[string]interface{}{
					"type":        "integer",
					"description": "Rank from list_words (0 = best)",
				},
				"word": map[string]interface{}{
					"type":        "string",
					"description": "Word to blast; its best-scoring path is used",
				},
				"path": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"row": map[string]interface{}{"type": "integer"},
							"col": map[string]interface{}{"type": "integer"},
						},
						"required": []string{"row", "col"},
					},
					"description": "Exact cell path of a listed word",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of why this word was chosen",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleCollapseWord)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "edit_board",
		Description: "Set cells on the board, then re-solve. Text is a letter (uppercase marks a multiplier), '#' for blocked, or '.' for blank.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"edits": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"row":  map[string]interface{}{"type": "integer"},
							"col":  map[string]interface{}{"type": "integer"},
							"text": map[string]interface{}{"type": "string"},
						},
						"required": []string{"row", "col", "text"},
					},
				},
			},
			Required: []string{"session_id", "edits"},
		},
	}, c.handleEditBoard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_board",
		Description: "Reset the board to its starting layout",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleResetBoard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "collapse_history",
		Description: "Get the collapse history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Oldest or newest first",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleCollapseHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available boards",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "define_word",
		Description: "Look up a word's definition and base score",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"word": map[string]interface{}{
					"type":        "string",
					"description": "Word to look up",
				},
			},
			Required: []string{"word"},
		},
	}, c.handleDefineWord)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Get detailed information about one grid cell: its letter, value, multiplier flag, and the words passing through it.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row of the cell (0-based, top row is 0)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column of the cell (0-based)",
				},
			},
			Required: []string{"session_id", "row", "col"},
		},
	}, c.handleDescribeCell)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the rules, scoring, and strategy notes",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// apiCall sends a JSON request to the REST API and decodes the response
// into result when it is non-nil.
func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

// Argument helpers. Numbers arrive as float64 from JSON.

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

func stringArg(args map[string]interface{}, name string) string {
	s, _ := args[name].(string)
	return strings.TrimSpace(s)
}

func intArg(args map[string]interface{}, name string) (int, bool) {
	switch v := args[name].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

func sessionPath(args map[string]interface{}, suffix string) (string, error) {
	id := stringArg(args, "session_id")
	if id == "" {
		return "", fmt.Errorf("session_id is required")
	}
	return "/api/sessions/" + url.PathEscape(id) + suffix, nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	body := map[string]string{}
	if configID := stringArg(args, "config_id"); configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nBoard: %s\n\n%s", session.ID, session.ConfigName, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}
	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		score, words := 0, 0
		if s.GameState != nil {
			score, words = s.GameState.Score, s.GameState.TotalWords
		}
		fmt.Fprintf(&b, "- %s (Board: %s, Score: %d, Words left: %d, Created: %s)\n",
			s.ID, s.ConfigName, score, words, s.CreatedAt.Format("15:04:05"))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", path, nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleBoardState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/state")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", path, nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatGameState(&state)
	if top := formatWords(state.Found, 5); top != "" {
		result += "\n\nBest words:\n" + top
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListWords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/words")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var opts service.SolveOptions
	opts.Limit, _ = intArg(args, "limit")
	opts.MinLength, _ = intArg(args, "min_length")
	opts.Unique, _ = args["unique"].(bool)
	opts.Word = stringArg(args, "word")

	var result service.SolveResult
	if err := c.apiCall(ctx, "POST", path, opts, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSolveResult(&result)), nil
}

func (c *Client) handleCollapseWord(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/collapse")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var req service.CollapseRequest
	if rank, ok := intArg(args, "rank"); ok {
		req.Rank = &rank
	}
	req.Word = stringArg(args, "word")
	if raw, ok := args["path"].([]interface{}); ok {
		req.Path, err = parseCoords(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	var result service.CollapseResult
	if err := c.apiCall(ctx, "POST", path, req, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatCollapseResult(&result)), nil
}

func (c *Client) handleEditBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/edit")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	raw, _ := args["edits"].([]interface{})
	edits := make([]engine.CellEdit, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("edit %d must be an object", i)), nil
		}
		row, okRow := intArg(m, "row")
		col, okCol := intArg(m, "col")
		if !okRow || !okCol {
			return mcp.NewToolResultError(fmt.Sprintf("edit %d needs row and col", i)), nil
		}
		text, _ := m["text"].(string)
		edits = append(edits, engine.CellEdit{Row: row, Col: col, Text: text})
	}

	var result service.SolveResult
	body := map[string]interface{}{"edits": edits}
	if err := c.apiCall(ctx, "POST", path, body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := fmt.Sprintf("Applied %d edit(s)\n\n%s\n\n%s",
		len(edits), formatGameState(result.GameState), formatSolveResult(&result))
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleResetBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/reset")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}
	if err := c.apiCall(ctx, "POST", path, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleCollapseHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/history")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	params := url.Values{}
	if page, ok := intArg(args, "page"); ok {
		params.Set("page", fmt.Sprint(page))
	}
	if limit, ok := intArg(args, "limit"); ok {
		params.Set("limit", fmt.Sprint(limit))
	}
	if order := stringArg(args, "order"); order != "" {
		params.Set("order", order)
	}
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Boards:\n\n")
	for _, cfg := range configs {
		fmt.Fprintf(&b, "• %s (config_id: %s)\n  %s\n  Grid: %dx%d, Multipliers: %d, Blocked: %d\n\n",
			cfg.Name, cfg.ConfigID, cfg.Description, cfg.Rows, cfg.Cols, cfg.Multipliers, cfg.Blocked)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleDefineWord(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	word := stringArg(arguments(request), "word")
	if word == "" {
		return mcp.NewToolResultError("word is required"), nil
	}

	var def service.Definition
	if err := c.apiCall(ctx, "GET", "/api/dictionary/"+url.PathEscape(word), nil, &def); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s (base score %d)\n%s", def.Word, def.BaseScore, def.Definition)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/state")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	row, okRow := intArg(args, "row")
	col, okCol := intArg(args, "col")
	if !okRow || !okCol {
		return mcp.NewToolResultError("row and col are required"), nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", path, nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	at := engine.Coord{Row: row, Col: col}
	if !state.Grid.InBounds(at) {
		return mcp.NewToolResultError(fmt.Sprintf("Cell (%d,%d) is out of bounds. Grid is %d rows x %d columns (rows 0-%d, columns 0-%d)",
			row, col, state.Grid.Rows(), state.Grid.Cols(), state.Grid.Rows()-1, state.Grid.Cols()-1)), nil
	}

	return mcp.NewToolResultText(describeCell(&state, at)), nil
}

func describeCell(state *engine.GameState, at engine.Coord) string {
	cell := state.Grid[at.Row][at.Col]

	var kind, note string
	switch {
	case cell.IsBlank():
		kind = "Blank"
		note = "Empty cell. Words cannot pass through it; edit_board can fill it."
	case cell.IsBlocked():
		kind = "Blocked"
		note = "Words cannot pass through it. A blast next to it clears it."
	case cell.Multiplier:
		kind = "Multiplier letter"
		note = "Each multiplier on a path doubles the word's score."
	default:
		kind = "Letter"
		note = "Normal letter cell."
	}

	var words []string
	seen := map[string]bool{}
	for _, f := range state.Found {
		for _, p := range f.Path {
			if p == at && !seen[f.Word] {
				seen[f.Word] = true
				words = append(words, f.Word)
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Cell at %s:\n", at)
	b.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(&b, "Text: %s\n", engine.FormatCell(cell))
	fmt.Fprintf(&b, "Type: %s\n", kind)
	if cell.Letter.IsLetter() {
		fmt.Fprintf(&b, "Letter value: %d\n", engine.LetterValue(cell.Letter))
	}
	fmt.Fprintf(&b, "Description: %s\n", note)
	if len(words) > 0 {
		fmt.Fprintf(&b, "Words through this cell: %s\n", strings.Join(words, ", "))
	} else {
		b.WriteString("Words through this cell: none\n")
	}
	return b.String()
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Boggle Blast - Complete Instructions

GAME OBJECTIVE:
Score as many points as possible by blasting words off the board until no
words are left.

FINDING WORDS:
• A word is a path of at least 3 cells, each adjacent to the previous one in
  any of the 8 directions (including diagonals)
• A cell can be used only once per word
• Blank (.) and blocked (#) cells cannot be part of a word
• Only words in the dictionary count

GRID LEGEND (board_state):
• A letter followed by '*' is a multiplier cell
• '.' is a blank cell
• '#' is a blocked cell
• Rows are numbered from 0 at the top; columns from 0 at the left

SCORING:
• Word score = length x (sum of letter values), doubled once for every
  multiplier cell on the path
• Letter values follow Scrabble: E=1, D=2, B=3, F=4, K=5, J=8, Q=10, ...

COLLAPSING:
• Blasting a word removes its cells
• Blocked cells orthogonally next to the word are also removed
• Words longer than 4 letters blast every orthogonal neighbor, letters included
• Columns then fall so the remaining cells sit on the bottom; a fresh blank
  row appears at the bottom for edit_board
• Blank rows at the top are dropped
• The board is re-solved after every collapse

STRATEGY:
• list_words ranks by score; rank 0 is the best immediate move
• Long words clear more of the board but may destroy other good words
• describe_cell shows which words use a cell before you blast near it
• Use collapse_history to review how the board evolved

SESSION MANAGEMENT:
• Multiple sessions can run at once, each with a 4-character ID
• reset_board restores the starting layout; history is kept`
	return mcp.NewToolResultText(instructions), nil
}

// parseCoords converts [{"row":r,"col":c}, ...] arguments into coordinates
func parseCoords(raw []interface{}) ([]engine.Coord, error) {
	path := make([]engine.Coord, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("path step %d must be an object with row and col", i)
		}
		row, okRow := intArg(m, "row")
		col, okCol := intArg(m, "col")
		if !okRow || !okCol {
			return nil, fmt.Errorf("path step %d needs row and col", i)
		}
		path = append(path, engine.Coord{Row: row, Col: col})
	}
	return path, nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nBoard: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Score: %d | Words on board: %d | Collapses: %d\n\n",
		state.Score, state.TotalWords, state.Collapses)

	result.WriteString(formatGrid(state.Grid))

	if state.GameOver {
		result.WriteString("\n\nGAME OVER")
	}
	if state.Message != "" {
		fmt.Fprintf(&result, "\nMessage: %s", state.Message)
	}
	return result.String()
}

// formatGrid renders the grid with row and column indices
func formatGrid(g engine.Grid) string {
	if g.Rows() == 0 {
		return "(empty board)"
	}

	var b strings.Builder
	b.WriteString("    ")
	for c := 0; c < g.Cols(); c++ {
		fmt.Fprintf(&b, "%-3d", c)
	}
	b.WriteString("\n")
	for r, row := range g {
		fmt.Fprintf(&b, "%2d  ", r)
		for _, cell := range row {
			b.WriteString(cell.Letter.String())
			if cell.Multiplier {
				b.WriteString("* ")
			} else {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatPath(path []engine.Coord) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = p.String()
	}
	return strings.Join(parts, "→")
}

// formatWords lists up to limit words with their ranks; limit <= 0 lists all
func formatWords(words []engine.Found, limit int) string {
	if limit <= 0 || limit > len(words) {
		limit = len(words)
	}
	var b strings.Builder
	for i := 0; i < limit; i++ {
		f := words[i]
		fmt.Fprintf(&b, "%d. %s (%d pts) %s\n", i, f.Word, f.Score, formatPath(f.Path))
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatSolveResult(result *service.SolveResult) string {
	if result == nil {
		return "No words available"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Words: showing %d of %d", result.Returned, result.TotalWords)
	if result.Truncated {
		b.WriteString(" (truncated)")
	}
	b.WriteString("\n")
	if len(result.Words) == 0 {
		b.WriteString("No matching words.")
		if result.GameOver {
			b.WriteString(" The board is cleared of words: GAME OVER.")
		}
		return b.String()
	}
	b.WriteString(formatWords(result.Words, 0))
	return b.String()
}

func formatCollapseResult(result *service.CollapseResult) string {
	var b strings.Builder
	if entry := result.Collapse; entry != nil {
		fmt.Fprintf(&b, "✓ Blasted %s for %d points\n", entry.Word, entry.Score)
		fmt.Fprintf(&b, "Path: %s\n", formatPath(entry.Path))
		fmt.Fprintf(&b, "Cells removed: %d", len(entry.Removed))
		if len(entry.Blast) > 0 {
			fmt.Fprintf(&b, " (blast cleared %d neighbors)", len(entry.Blast))
		}
		fmt.Fprintf(&b, "\nRows: %d → %d\n", entry.RowsBefore, entry.RowsAfter)
	}
	fmt.Fprintf(&b, "Words left: %d\n", result.WordsLeft)

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			fmt.Fprintf(&b, "- %s: %s\n", event.Type, event.Message)
		}
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Collapse History (Page %d/%d, Total: %d):\n\n",
		history.Page, history.TotalPages, history.TotalCollapses)

	if len(history.Collapses) == 0 {
		b.WriteString("No collapses yet.\n")
	}
	for _, entry := range history.Collapses {
		blast := ""
		if len(entry.Blast) > 0 {
			blast = fmt.Sprintf(", blast %d", len(entry.Blast))
		}
		fmt.Fprintf(&b, "#%d %s +%d (removed %d%s, rows %d→%d)\n",
			entry.Number, entry.Word, entry.Score, len(entry.Removed), blast, entry.RowsBefore, entry.RowsAfter)
	}

	if history.HasNext {
		b.WriteString("\nMore entries on the next page.")
	}
	return b.String()
}
