package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/wricardo/boggle-blast/game/engine"
)

const (
	writeWait = 10 * time.Second

	// A watcher that stays silent (no pong) this long is disconnected.
	pongWait = 60 * time.Second

	// Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Watchers never send commands, so inbound frames stay small.
	maxInboundSize = 512
)

// Event names carried by an Update.
const (
	EventStateUpdate = "state_update"
	EventCollapse    = "collapse"
	EventGameOver    = "game_over"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Update is one JSON frame sent to the watchers of a board.
type Update struct {
	SessionID string            `json:"session_id"`
	GameState *engine.GameState `json:"game_state,omitempty"`
	Event     string            `json:"event,omitempty"`
	Data      interface{}       `json:"data,omitempty"`
}

// watcher is one socket following a board session.
type watcher struct {
	hub       *Hub
	conn      *websocket.Conn
	out       chan []byte
	sessionID string
}

// Hub fans board updates out to the sockets watching each session. Its Run
// loop is the only writer of the watcher sets.
type Hub struct {
	boards map[string]map[*watcher]struct{}
	mu     sync.RWMutex

	updates chan *Update
	join    chan *watcher
	leave   chan *watcher

	// closed when Run returns
	stopped chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		boards:  make(map[string]map[*watcher]struct{}),
		updates: make(chan *Update, engine.WebSocketBufferSize),
		join:    make(chan *watcher),
		leave:   make(chan *watcher),
		stopped: make(chan struct{}),
	}
}

// Run processes joins, leaves and updates until ctx is cancelled, then
// disconnects every watcher.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.stopped)
	for {
		select {
		case <-ctx.Done():
			h.disconnectAll()
			return
		case w := <-h.join:
			h.watch(w)
		case w := <-h.leave:
			h.unwatch(w)
		case u := <-h.updates:
			h.deliver(u)
		}
	}
}

// ServeWS upgrades the request and makes the socket a watcher of sessionID.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("websocket upgrade failed")
		return
	}

	ws := &watcher{
		hub:       h,
		conn:      conn,
		out:       make(chan []byte, engine.WebSocketBufferSize),
		sessionID: sessionID,
	}

	select {
	case h.join <- ws:
	case <-h.stopped:
		conn.Close()
		return
	}

	go ws.forward()
	go ws.discardInbound()
}

// PublishState sends the board's new state to its watchers.
func (h *Hub) PublishState(sessionID string, state *engine.GameState) {
	h.enqueue(&Update{
		SessionID: sessionID,
		GameState: state,
		Event:     EventStateUpdate,
	})
}

// PublishEvent sends a named event, such as a collapse, to the board's
// watchers.
func (h *Hub) PublishEvent(sessionID string, event string, data interface{}) {
	h.enqueue(&Update{
		SessionID: sessionID,
		Event:     event,
		Data:      data,
	})
}

// Watchers returns how many sockets follow sessionID.
func (h *Hub) Watchers(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.boards[sessionID])
}

// enqueue never blocks a collapse; updates are dropped when the hub is
// behind.
func (h *Hub) enqueue(u *Update) {
	select {
	case h.updates <- u:
	default:
		log.Warn().Str("session", u.SessionID).Str("event", u.Event).Msg("board update queue full, update dropped")
	}
}

func (h *Hub) watch(w *watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set := h.boards[w.sessionID]
	if set == nil {
		set = make(map[*watcher]struct{})
		h.boards[w.sessionID] = set
	}
	set[w] = struct{}{}
	log.Debug().Str("session", w.sessionID).Int("watchers", len(set)).Msg("board watcher joined")
}

func (h *Hub) unwatch(w *watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(w)
}

// dropLocked removes w and closes its outbound queue once. Callers hold h.mu.
func (h *Hub) dropLocked(w *watcher) {
	set, ok := h.boards[w.sessionID]
	if !ok {
		return
	}
	if _, ok := set[w]; !ok {
		return
	}
	delete(set, w)
	close(w.out)
	if len(set) == 0 {
		delete(h.boards, w.sessionID)
	}
	log.Debug().Str("session", w.sessionID).Int("watchers", len(set)).Msg("board watcher left")
}

// deliver encodes u once and queues it for every watcher of its board. A
// watcher whose queue is full is dropped.
func (h *Hub) deliver(u *Update) {
	frame, err := json.Marshal(u)
	if err != nil {
		log.Error().Err(err).Str("session", u.SessionID).Msg("failed to encode board update")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for w := range h.boards[u.SessionID] {
		select {
		case w.out <- frame:
		default:
			h.dropLocked(w)
		}
	}
}

func (h *Hub) disconnectAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, set := range h.boards {
		for w := range set {
			h.dropLocked(w)
		}
	}
}

// discardInbound keeps reading so pongs and close frames are handled. Board
// changes go through the REST API, so any payload is ignored.
func (w *watcher) discardInbound() {
	defer func() {
		select {
		case w.hub.leave <- w:
		case <-w.hub.stopped:
		}
		w.conn.Close()
	}()

	w.conn.SetReadLimit(maxInboundSize)
	w.conn.SetReadDeadline(time.Now().Add(pongWait))
	w.conn.SetPongHandler(func(string) error {
		return w.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := w.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("session", w.sessionID).Msg("board watcher read failed")
			}
			return
		}
	}
}

// forward writes queued frames to the socket and pings it between updates.
func (w *watcher) forward() {
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ping.Stop()
		w.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-w.out:
			w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// dropped by the hub
				w.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := w.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ping.C:
			w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := w.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
