// Package ws fans change events out to websocket subscribers. Delivery is
// at-most-once: a full buffer or a broken socket drops the event, never the
// movement that produced it.
package ws

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"

	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/event"
	"github.com/d2much2/WarehouseTracker-1-sub000/pkg/logger"
)

var _ event.Notifier = (*Hub)(nil)

const broadcastBuffer = 256

// Hub tracks connected subscribers and broadcasts change events to them.
type Hub struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan []byte
	log        *logger.Logger
	mu         sync.Mutex
}

// NewHub builds the hub. Call Run in its own goroutine before serving.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan []byte, broadcastBuffer),
		log:        log,
	}
}

// Publish implements event.Notifier. It never blocks: when the broadcast
// buffer is full the event is dropped and logged.
func (h *Hub) Publish(ev event.ChangeEvent) {
	msg, err := json.Marshal(ev)
	if err != nil {
		h.log.Error().Err(err).Str("type", ev.Type).Msg("marshal change event")
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.log.Warn().Str("type", ev.Type).Msg("notifier buffer full, event dropped")
	}
}

// Run processes register/unregister/broadcast until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()
			h.log.Debug().Msg("ws subscriber connected")

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Handler returns the fiber handler for GET /ws. Subscribers only receive;
// inbound frames are read and discarded to keep the connection alive.
func (h *Hub) Handler() func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		h.register <- conn
		defer func() { h.unregister <- conn }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
