// Package mcp exposes Boggle Blast to AI agents over the Model Context
// Protocol.
//
// The Client is a thin proxy: every tool call becomes a request against the
// REST API, and the JSON response is rendered as text for the agent. The
// server process does not need to run in the same process as the MCP
// client; point NewClient at any running API.
//
// MCP Tools:
//   - create_session, list_sessions, get_session: session management
//   - board_state: grid with row/column indices plus the best words
//   - list_words: ranked words, with limit, min_length, unique and word filters
//   - collapse_word: blast a word by rank, by spelling, or by exact path
//   - edit_board: replace cells, then re-solve
//   - reset_board: restore the starting board
//   - collapse_history: paginated history of collapses
//   - list_configs: boards available for create_session
//   - define_word: dictionary lookup with base score
//   - describe_cell: one cell's value, type, and the words through it
//   - game_instructions: rules and scoring
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
