package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/veloraeats/dispatch-service/internal/entities"
)

// GeoPoint is a coordinate pair in request and response bodies.
type GeoPoint struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	FoodID    uuid.UUID `json:"food_id" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gte=1"`
	UnitPrice float64   `json:"unit_price" validate:"gt=0"`
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	CustomerID      uuid.UUID   `json:"customer_id" validate:"required"`
	Items           []OrderItem `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress string      `json:"delivery_address" validate:"required"`
	CustomerGeo     *GeoPoint   `json:"customer_geo" validate:"required"`
	PaymentMethod   string      `json:"payment_method" validate:"required,oneof=cash_on_delivery card"`
	DeliveryNotes   string      `json:"delivery_notes,omitempty"`
}

// TransitionBody is the body of PUT /orders/{order_id}/status. A
// courier id assigns that courier together with the status change,
// for orders auto-assignment left unplaced.
type TransitionBody struct {
	Status              string     `json:"status" validate:"required,oneof=pending confirmed preparing ready out_for_delivery delivered cancelled"`
	Version             int64      `json:"version" validate:"required,gte=1"`
	DeliveryNotes       *string    `json:"delivery_notes,omitempty"`
	CourierID           *uuid.UUID `json:"courier_id,omitempty"`
	EstimatedDeliveryAt *time.Time `json:"estimated_delivery_at,omitempty"`
}

// VersionedBody carries just the concurrency token, for the
// complete/cancel shortcuts.
type VersionedBody struct {
	Version int64 `json:"version" validate:"required,gte=1"`
}

// RatingBody is the body of PUT /orders/{order_id}/rating.
type RatingBody struct {
	CourierRating int `json:"courier_rating" validate:"required,gte=1,lte=5"`
	FoodRating    int `json:"food_rating" validate:"required,gte=1,lte=5"`
}

// LocationBody is the body of POST /couriers/{courier_id}/location.
type LocationBody struct {
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Accuracy   float64    `json:"accuracy" validate:"gte=0"`
	Speed      float64    `json:"speed" validate:"gte=0"`
	Heading    float64    `json:"heading" validate:"gte=0,lte=360"`
	CapturedAt *time.Time `json:"captured_at,omitempty"`
}

// AvailabilityBody is the body of PUT /couriers/{courier_id}/availability.
type AvailabilityBody struct {
	Available *bool `json:"available" validate:"required"`
}

// ApplicationBody is the body of PUT /couriers/{courier_id}/application.
type ApplicationBody struct {
	Approve *bool `json:"approve" validate:"required"`
}

// Order is the JSON representation of an order.
type Order struct {
	ID                  uuid.UUID   `json:"id"`
	CustomerID          uuid.UUID   `json:"customer_id"`
	Items               []OrderItem `json:"items"`
	Total               float64     `json:"total"`
	DeliveryAddress     string      `json:"delivery_address"`
	CustomerGeo         *GeoPoint   `json:"customer_geo,omitempty"`
	CourierID           *uuid.UUID  `json:"courier_id,omitempty"`
	Status              string      `json:"status"`
	PaymentMethod       string      `json:"payment_method"`
	PaymentStatus       string      `json:"payment_status"`
	EstimatedDeliveryAt *time.Time  `json:"estimated_delivery_at,omitempty"`
	ActualDeliveryAt    *time.Time  `json:"actual_delivery_at,omitempty"`
	AssignedAt          *time.Time  `json:"assigned_at,omitempty"`
	DeliveryNotes       string      `json:"delivery_notes,omitempty"`
	CourierRating       int         `json:"courier_rating,omitempty"`
	FoodRating          int         `json:"food_rating,omitempty"`
	Version             int64       `json:"version"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

func CreateOrderToEntity(req CreateOrderRequest) entities.Order {
	order := entities.Order{
		CustomerID:      req.CustomerID,
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   entities.PaymentMethod(req.PaymentMethod),
		PaymentStatus:   entities.PaymentPending,
		DeliveryNotes:   req.DeliveryNotes,
	}
	if req.CustomerGeo != nil {
		order.CustomerGeo = &entities.GeoPoint{
			Latitude:  req.CustomerGeo.Latitude,
			Longitude: req.CustomerGeo.Longitude,
		}
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, entities.OrderItem{
			FoodID:    item.FoodID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
		order.Total += item.UnitPrice * float64(item.Quantity)
	}
	return order
}

func OrderEntityToJSON(o entities.Order) Order {
	out := Order{
		ID:                  o.ID,
		CustomerID:          o.CustomerID,
		Items:               make([]OrderItem, 0, len(o.Items)),
		Total:               o.Total,
		DeliveryAddress:     o.DeliveryAddress,
		CourierID:           o.CourierID,
		Status:              string(o.Status),
		PaymentMethod:       string(o.PaymentMethod),
		PaymentStatus:       string(o.PaymentStatus),
		EstimatedDeliveryAt: o.EstimatedDeliveryAt,
		ActualDeliveryAt:    o.ActualDeliveryAt,
		AssignedAt:          o.AssignedAt,
		DeliveryNotes:       o.DeliveryNotes,
		CourierRating:       o.CourierRating,
		FoodRating:          o.FoodRating,
		Version:             o.Version,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
	if o.CustomerGeo != nil {
		out.CustomerGeo = &GeoPoint{
			Latitude:  o.CustomerGeo.Latitude,
			Longitude: o.CustomerGeo.Longitude,
		}
	}
	for _, item := range o.Items {
		out.Items = append(out.Items, OrderItem{
			FoodID:    item.FoodID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return out
}

// Ping is a courier position report as it arrives on the kafka topic.
type Ping struct {
	CourierID  uuid.UUID  `json:"courier_id" validate:"required"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Accuracy   float64    `json:"accuracy" validate:"gte=0"`
	Speed      float64    `json:"speed" validate:"gte=0"`
	Heading    float64    `json:"heading" validate:"gte=0,lte=360"`
	CapturedAt *time.Time `json:"captured_at,omitempty"`
}

func PingToEntity(p Ping) entities.LocationPing {
	ping := entities.LocationPing{
		CourierID: p.CourierID,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Accuracy:  p.Accuracy,
		Speed:     p.Speed,
		Heading:   p.Heading,
	}
	if p.CapturedAt != nil {
		ping.CreatedAt = p.CapturedAt.UTC()
	}
	return ping
}

// TripStatusChange is one entry of a trip's status-history log.
type TripStatusChange struct {
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
	Location  *GeoPoint `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Trip is the JSON representation of a delivery trip.
type Trip struct {
	ID             uuid.UUID          `json:"id"`
	OrderID        uuid.UUID          `json:"order_id"`
	CourierID      uuid.UUID          `json:"courier_id"`
	Pickup         *GeoPoint          `json:"pickup,omitempty"`
	Dropoff        *GeoPoint          `json:"dropoff,omitempty"`
	Status         string             `json:"status"`
	StatusHistory  []TripStatusChange `json:"status_history"`
	DistanceMeters float64            `json:"distance_meters"`
	DurationSec    float64            `json:"duration_sec"`
	AvgSpeedKmh    float64            `json:"avg_speed_kmh"`
	CreatedAt      time.Time          `json:"created_at"`
	ClosedAt       *time.Time         `json:"closed_at,omitempty"`
}

func TripEntityToJSON(t entities.DeliveryTrip) Trip {
	out := Trip{
		ID:             t.ID,
		OrderID:        t.OrderID,
		CourierID:      t.CourierID,
		Status:         string(t.Status),
		StatusHistory:  make([]TripStatusChange, 0, len(t.StatusHistory)),
		DistanceMeters: t.Metrics.DistanceMeters,
		DurationSec:    t.Metrics.Duration.Seconds(),
		AvgSpeedKmh:    t.Metrics.AvgSpeedKmh,
		CreatedAt:      t.CreatedAt,
		ClosedAt:       t.ClosedAt,
	}
	if t.Pickup != nil {
		out.Pickup = &GeoPoint{Latitude: t.Pickup.Latitude, Longitude: t.Pickup.Longitude}
	}
	if t.Dropoff != nil {
		out.Dropoff = &GeoPoint{Latitude: t.Dropoff.Latitude, Longitude: t.Dropoff.Longitude}
	}
	for _, c := range t.StatusHistory {
		change := TripStatusChange{
			Status:    string(c.Status),
			Note:      c.Note,
			CreatedAt: c.CreatedAt,
		}
		if c.Location != nil {
			change.Location = &GeoPoint{Latitude: c.Location.Latitude, Longitude: c.Location.Longitude}
		}
		out.StatusHistory = append(out.StatusHistory, change)
	}
	return out
}
