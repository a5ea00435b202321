// Package ws is the websocket transport that relays per-viewer reveal
// decisions to connected game clients. It is an external collaborator to
// the culling core (spec.md "Explicitly out of scope: ... the wire
// transport that actually relays positions"): the core never imports this
// package, it only emits RevealFunc callbacks that a host wires here.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"loscull/internal/telemetry"
)

// RevealMessage is the wire shape pushed to a viewer's own connection on
// every tick an enemy is revealed to them. Only the viewer's socket ever
// receives a given target's position — that is the entire point of the
// culling core upstream of this package.
type RevealMessage struct {
	Type     string  `json:"type"`
	Tick     uint64  `json:"tick"`
	TargetID string  `json:"targetId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
}

// Hub tracks one websocket connection per viewer id and fans reveal
// messages out to the owning connection only.
type Hub struct {
	logger telemetry.Logger

	mu    sync.RWMutex
	conns map[string]*websocket.Conn
}

// NewHub constructs an empty connection registry.
func NewHub(logger telemetry.Logger) *Hub {
	if logger == nil {
		logger = telemetry.LoggerFunc(func(string, ...any) {})
	}
	return &Hub{logger: logger, conns: make(map[string]*websocket.Conn)}
}

func (h *Hub) register(viewerID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if previous, ok := h.conns[viewerID]; ok {
		previous.Close()
	}
	h.conns[viewerID] = conn
}

func (h *Hub) unregister(viewerID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if current, ok := h.conns[viewerID]; ok && current == conn {
		delete(h.conns, viewerID)
	}
}

// Reveal pushes one reveal message to viewerID's own connection, if
// connected. It is safe to call from the engine's tick goroutine.
func (h *Hub) Reveal(viewerID string, msg RevealMessage) {
	h.mu.RLock()
	conn := h.conns[viewerID]
	h.mu.RUnlock()
	if conn == nil {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Printf("ws: failed to marshal reveal for %s: %v", viewerID, err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		h.logger.Printf("ws: write failed for %s: %v", viewerID, err)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handle upgrades an incoming request to a websocket connection and
// registers it under the ?id= query parameter until the client disconnects.
func (h *Hub) Handle(w http.ResponseWriter, r *http.Request) {
	viewerID := r.URL.Query().Get("id")
	if viewerID == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("ws: upgrade failed for %s: %v", viewerID, err)
		return
	}

	h.register(viewerID, conn)
	defer func() {
		h.unregister(viewerID, conn)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
