package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/veloraeats/dispatch-service/internal/entities"
)

type message struct {
	room string
	data []byte
}

// Hub is the room-based broadcast fabric. A single goroutine owns the
// room membership maps; registration and publishing go through
// channels, so no lock is ever taken on the hot path. Delivery is
// best-effort at-most-once: a client that cannot keep up is dropped.
type Hub struct {
	logger *slog.Logger

	rooms map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan message

	done chan struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:     logger.With(slog.String("service", "ws")),
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan message, 256),
		done:       make(chan struct{}),
	}
}

// Run owns the membership maps until ctx is cancelled. Must be started
// before any client connects or event is published.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return nil
		case client := <-h.register:
			for _, room := range client.rooms {
				if h.rooms[room] == nil {
					h.rooms[room] = make(map[*Client]bool)
				}
				h.rooms[room][client] = true
			}
			h.logger.Debug("client joined", "rooms", client.rooms)
		case client := <-h.unregister:
			h.drop(client)
		case msg := <-h.broadcast:
			for client := range h.rooms[msg.room] {
				select {
				case client.send <- msg.data:
				default:
					// Slow consumer, cut it loose.
					h.drop(client)
				}
			}
		}
	}
}

// Publish serializes the event and queues it for every session joined
// to the room. Safe for concurrent use.
func (h *Hub) Publish(ctx context.Context, room string, event entities.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	select {
	case h.broadcast <- message{room: room, data: data}:
		return nil
	case <-h.done:
		return fmt.Errorf("hub is stopped")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Register hands a new session to the run loop.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) drop(client *Client) {
	var found bool
	for _, room := range client.rooms {
		if h.rooms[room][client] {
			found = true
			delete(h.rooms[room], client)
			if len(h.rooms[room]) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	if found {
		close(client.send)
	}
}

func (h *Hub) closeAll() {
	closed := make(map[*Client]bool)
	for room, clients := range h.rooms {
		for client := range clients {
			if !closed[client] {
				closed[client] = true
				close(client.send)
			}
		}
		delete(h.rooms, room)
	}
}
