package entities

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventOrderUpdated       EventType = "order-updated"
	EventDeliveryAssigned   EventType = "delivery-assigned"
	EventLocationUpdate     EventType = "location-update"
	EventETAUpdate          EventType = "eta-update"
	EventDeliveryCompleted  EventType = "delivery-completed"
	EventApplicationUpdated EventType = "application-updated"
	EventCourierOffline     EventType = "courier-offline"
)

// Event is a self-describing realtime notification. Identifiers are
// carried in every payload so a reconnecting client can reconcile by
// re-fetching state, without a "what did I miss" query.
type Event struct {
	Type      EventType `json:"type"`
	OrderID   uuid.UUID `json:"order_id,omitempty"`
	CourierID uuid.UUID `json:"courier_id,omitempty"`
	Payload   any       `json:"payload,omitempty"`
	At        time.Time `json:"at"`
}

// Room names of the broadcast fabric. Sessions join rooms by declared
// role at connection time.
const (
	RoomCouriers  = "couriers"
	RoomOperators = "operators"
)

func RoomCustomer(id uuid.UUID) string { return "customer:" + id.String() }
func RoomCourier(id uuid.UUID) string  { return "courier:" + id.String() }
