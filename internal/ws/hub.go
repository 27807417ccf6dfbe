package ws

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// TextMessage matches websocket.TextMessage.
const TextMessage = 1

// ErrHubClosed is returned once Run has exited.
var ErrHubClosed = errors.New("ws hub closed")

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type Subscription struct {
	StoreID string
	Conn    Conn
}

type Message struct {
	StoreID string
	Payload []byte
}

// Hub groups connections by store. A message is written only to the
// connections of the store it was addressed to. Once Run returns, every
// method returns without blocking.
type Hub struct {
	clients    map[string]map[Conn]bool
	register   chan Subscription
	unregister chan Subscription
	broadcast  chan Message
	done       chan struct{}
	mutex      sync.Mutex
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[Conn]bool),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
		broadcast:  make(chan Message, 256),
		done:       make(chan struct{}),
		logger:     logger.With(zap.String("component", "ws_hub")),
	}
}

// Subscribe adds sub to its store's connections. After shutdown it returns
// ErrHubClosed and the caller keeps ownership of the connection.
func (h *Hub) Subscribe(sub Subscription) error {
	select {
	case h.register <- sub:
		return nil
	case <-h.done:
		return ErrHubClosed
	}
}

// Unsubscribe removes and closes sub. It is a no-op after shutdown, when
// Run has already closed every connection.
func (h *Hub) Unsubscribe(sub Subscription) {
	select {
	case h.unregister <- sub:
	case <-h.done:
	}
}

// Deliver queues payload for storeID's subscribers.
func (h *Hub) Deliver(ctx context.Context, storeID string, payload []byte) error {
	select {
	case <-h.done:
		return ErrHubClosed
	default:
	}

	select {
	case h.broadcast <- Message{StoreID: storeID, Payload: payload}:
		return nil
	case <-h.done:
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribers returns the number of open connections for storeID.
func (h *Hub) Subscribers(storeID string) int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients[storeID])
}

// Run serves the hub until ctx is cancelled, then closes every connection.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case sub := <-h.register:
			h.mutex.Lock()
			conns, ok := h.clients[sub.StoreID]
			if !ok {
				conns = make(map[Conn]bool)
				h.clients[sub.StoreID] = conns
			}
			conns[sub.Conn] = true
			h.mutex.Unlock()
			h.logger.Debug("feed client connected", zap.String("store_id", sub.StoreID))

		case sub := <-h.unregister:
			h.mutex.Lock()
			if conns, ok := h.clients[sub.StoreID]; ok {
				if _, ok := conns[sub.Conn]; ok {
					delete(conns, sub.Conn)
					sub.Conn.Close()
				}
				if len(conns) == 0 {
					delete(h.clients, sub.StoreID)
				}
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.mutex.Lock()
			for conn := range h.clients[message.StoreID] {
				if err := conn.WriteMessage(TextMessage, message.Payload); err != nil {
					h.logger.Debug("dropping feed client", zap.String("store_id", message.StoreID), zap.Error(err))
					conn.Close()
					delete(h.clients[message.StoreID], conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for storeID, conns := range h.clients {
		for conn := range conns {
			conn.Close()
		}
		delete(h.clients, storeID)
	}
}
