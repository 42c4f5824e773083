// Package api provides the HTTP REST API for Boggle Blast.
//
// The api package implements:
//   - Session management endpoints
//   - Solve, collapse, edit and reset endpoints
//   - Paginated collapse history
//   - Board configuration listing, lookup and upload
//   - Dictionary lookups
//   - WebSocket upgrade handling for live board updates
//
// Routing uses gorilla/mux. Every request passes through chi middleware
// (request IDs, real client IP, panic recovery) and a zerolog request log;
// /api routes are additionally bounded by a handler timeout.
//
// Endpoints:
//
// Sessions:
//   - POST   /api/sessions                  create ({"config_id": "classic"}, optional)
//   - GET    /api/sessions                  list (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET    /api/sessions/{id}             session info with board state
//   - DELETE /api/sessions/{id}             delete
//
// Board:
//   - GET    /api/sessions/{id}/state       current game state
//   - GET    /api/sessions/{id}/words       ranked words (?limit&min_length&unique&word)
//   - POST   /api/sessions/{id}/words       same, options in the JSON body
//   - POST   /api/sessions/{id}/collapse    {"rank": 0} | {"word": "cat"} | {"path": [{"row":0,"col":0}, ...]}
//   - POST   /api/sessions/{id}/edit        {"edits": [{"row": 7, "col": 2, "text": "e"}]}
//   - POST   /api/sessions/{id}/reset       back to the starting board
//   - GET    /api/sessions/{id}/history     collapse history (?page&limit&order)
//
// Configuration and dictionary:
//   - GET    /api/configs                   list boards
//   - POST   /api/configs                   save a board
//   - GET    /api/configs/{name}            board definition
//   - GET    /api/dictionary/{word}         definition and base score
//   - GET    /api/health                    liveness
//
// WebSocket:
//   - GET    /ws?session={id}               live state updates for one session
//
// Error Handling:
//
// Errors are returned as JSON with the HTTP status code:
//
//	{
//	  "error": "session not found",
//	  "code": 404
//	}
//
// Unknown sessions, boards, and words map to 404; malformed paths, edits,
// boards and requests map to 400; anything else is a 500.
package api
