package entities

import (
	"time"

	"github.com/google/uuid"
)

type TripStatus string

const (
	TripOpen   TripStatus = "open"
	TripClosed TripStatus = "closed"
	TripFailed TripStatus = "failed"
)

// RoutePoint is one recorded position of a courier during a trip.
type RoutePoint struct {
	Latitude  float64
	Longitude float64
	Speed     float64
	Heading   float64
	CreatedAt time.Time
}

// TripStatusChange is one entry of the trip's status-history log.
type TripStatusChange struct {
	Status    TripStatus
	Note      string
	Location  *GeoPoint
	CreatedAt time.Time
}

// TripMetrics are derived from the ordered route points and are safe
// to recompute repeatedly.
type TripMetrics struct {
	DistanceMeters float64
	Duration       time.Duration
	AvgSpeedKmh    float64
}

// DeliveryTrip is the telemetry record of one courier's journey for
// one order. Created on assignment, closed when delivered or failed.
type DeliveryTrip struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	CourierID  uuid.UUID
	CustomerID uuid.UUID

	Pickup  *GeoPoint
	Dropoff *GeoPoint

	Status        TripStatus
	RoutePoints   []RoutePoint
	StatusHistory []TripStatusChange
	Metrics       TripMetrics

	CreatedAt time.Time
	ClosedAt  *time.Time
}
