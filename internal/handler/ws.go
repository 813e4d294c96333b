package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/veloraeats/dispatch-service/internal/entities"
	"github.com/veloraeats/dispatch-service/internal/service"
	"github.com/veloraeats/dispatch-service/internal/ws"
)

const joinTimeout = 10 * time.Second

// joinMessage is the first frame a session must send: who it is. Room
// membership is derived from it, never chosen directly by the client.
type joinMessage struct {
	Role string    `json:"role"`
	ID   uuid.UUID `json:"id"`
}

type joinedMessage struct {
	Rooms []string `json:"rooms"`
}

type WSHandler struct {
	logger   *slog.Logger
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

func NewWSHandler(logger *slog.Logger, hub *ws.Hub) *WSHandler {
	return &WSHandler{
		logger: logger.With(slog.String("handler", "ws")),
		hub:    hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin policing happens at the gateway.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *WSHandler) Init(r chi.Router) {
	r.Get("/ws", h.Serve)
}

// Serve upgrades the connection, waits for the join handshake and
// attaches the session to its rooms.
func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("failed to upgrade connection", slog.Any("error", err))
		return
	}

	conn.SetReadDeadline(time.Now().Add(joinTimeout))
	var join joinMessage
	if err := conn.ReadJSON(&join); err != nil {
		conn.WriteJSON(map[string]string{"error": "expected join message"})
		conn.Close()
		return
	}

	rooms, ok := h.roomsFor(join)
	if !ok {
		conn.WriteJSON(map[string]string{"error": "unknown role"})
		conn.Close()
		return
	}

	conn.SetWriteDeadline(time.Now().Add(joinTimeout))
	if err := conn.WriteJSON(joinedMessage{Rooms: rooms}); err != nil {
		conn.Close()
		return
	}
	conn.SetWriteDeadline(time.Time{})

	wsSessions.Inc()
	client := ws.NewClient(h.hub, h.logger, conn, rooms)
	client.OnClose(wsSessions.Dec)
	client.Serve()
}

func (h *WSHandler) roomsFor(join joinMessage) ([]string, bool) {
	switch join.Role {
	case service.RoleCustomer:
		return []string{entities.RoomCustomer(join.ID)}, true
	case service.RoleCourier:
		return []string{entities.RoomCourier(join.ID), entities.RoomCouriers}, true
	case service.RoleOperator:
		return []string{entities.RoomOperators}, true
	default:
		return nil, false
	}
}
