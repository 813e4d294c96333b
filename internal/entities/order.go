package entities

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderConfirmed      OrderStatus = "confirmed"
	OrderPreparing      OrderStatus = "preparing"
	OrderReady          OrderStatus = "ready"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	_, ok := allowedNext[s]
	return ok
}

func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// allowedNext is the transition table of the order lifecycle. Lookup,
// not inference: a transition is legal iff the requested status is in
// the set for the current one.
var allowedNext = map[OrderStatus]map[OrderStatus]bool{
	OrderPending:        {OrderConfirmed: true, OrderCancelled: true},
	OrderConfirmed:      {OrderPreparing: true, OrderCancelled: true},
	OrderPreparing:      {OrderReady: true, OrderCancelled: true},
	OrderReady:          {OrderOutForDelivery: true, OrderCancelled: true},
	OrderOutForDelivery: {OrderDelivered: true, OrderCancelled: true},
	OrderDelivered:      {},
	OrderCancelled:      {},
}

// CanTransition reports whether the lifecycle table allows moving from
// the order's current status to next.
func (o Order) CanTransition(next OrderStatus) bool {
	return allowedNext[o.Status][next]
}

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash_on_delivery"
	PaymentCard PaymentMethod = "card"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

type OrderItem struct {
	FoodID    uuid.UUID
	Name      string
	Quantity  int
	UnitPrice float64
}

type Order struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Items      []OrderItem
	Total      float64

	DeliveryAddress string
	CustomerGeo     *GeoPoint

	CourierID *uuid.UUID
	Status    OrderStatus

	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus

	EstimatedDeliveryAt *time.Time
	ActualDeliveryAt    *time.Time
	AssignedAt          *time.Time

	DeliveryNotes string
	CourierRating int
	FoodRating    int

	// Version is the optimistic concurrency token. Every mutation bumps
	// it; a transition with a stale version fails with ErrConflict.
	Version int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActiveDelivery reports whether the order currently occupies its courier.
func (o Order) ActiveDelivery() bool {
	return o.Status == OrderReady || o.Status == OrderOutForDelivery
}
