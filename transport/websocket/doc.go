// Package websocket pushes live board updates to browser clients.
//
// A Hub tracks the sockets watching each board session. Every watcher has
// a goroutine forwarding queued frames and one discarding inbound frames;
// the hub's Run loop owns joins, leaves and delivery.
//
// Watchers connect with ?session=<id>. After a collapse, edit or reset the
// API publishes the new board state to that session's watchers. Each frame
// is one JSON Update:
//
//	{"session_id": "ab12", "event": "state_update", "game_state": {...}}
//	{"session_id": "ab12", "event": "collapse", "data": {...}}
//
// Clients do not send commands over the socket; board changes go through the
// REST API.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
package websocket
