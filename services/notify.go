package services

import (
	"sync"

	"hr_timekeeping/utils"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// Notifier pushes events to connected clients, fire-and-forget.
type Notifier interface {
	NotifyEmailConfirmed(token string)
}

type wsEvent struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// Hub tracks connected websocket clients and broadcasts events to all of
// them. A failed write just drops that client.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]bool)}
}

// Serve registers the connection and blocks reading it until the client
// disconnects. Incoming messages are ignored; the channel is push-only.
func (h *Hub) Serve(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) NotifyEmailConfirmed(token string) {
	h.broadcast(wsEvent{Type: "EMAIL_CONFIRMED", Token: token})
}

func (h *Hub) broadcast(event wsEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteJSON(event); err != nil {
			utils.Logger.Warn("Dropping websocket client", zap.Error(err))
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
