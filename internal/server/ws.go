package server

import (
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// analysisEvent is pushed to every WebSocket client when a new
// analysis snapshot becomes available.
type analysisEvent struct {
	Event  string         `json:"event"`
	RunID  string         `json:"run_id"`
	Counts map[string]int `json:"counts"`
}

// hub tracks connected WebSocket clients for broadcast notifications.
type hub struct {
	mu     sync.Mutex
	conns  map[*websocket.Conn]bool
	logger *log.Logger
}

func newHub(logger *log.Logger) *hub {
	return &hub{
		conns:  make(map[*websocket.Conn]bool),
		logger: logger,
	}
}

func (h *hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()
}

func (h *hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
}

// broadcast sends the event to every client, dropping connections
// whose writes fail.
func (h *hub) broadcast(event analysisEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		if err := conn.WriteJSON(event); err != nil {
			h.logger.Debug("websocket write failed, dropping client", "error", err)
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade", "error", err)
		return
	}
	s.hub.add(conn)
	defer func() {
		s.hub.remove(conn)
		conn.Close()
	}()

	// Clients only listen; drain reads until the peer goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("websocket read", "error", err)
			}
			return
		}
	}
}
