package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/veloraeats/dispatch-service/internal/entities"
	"github.com/veloraeats/dispatch-service/internal/routing"
)

type OrderRepo interface {
	CreateOrder(ctx context.Context, o entities.Order) error
	GetOrderByID(ctx context.Context, orderID uuid.UUID) (entities.Order, error)
	GetActiveOrderByCourier(ctx context.Context, courierID uuid.UUID) (entities.Order, error)
	UpdateOrder(ctx context.Context, o entities.Order) error
	UpdateRatings(ctx context.Context, orderID uuid.UUID, courierRating, foodRating int) error
}

type CourierRepo interface {
	GetCourierByID(ctx context.Context, courierID uuid.UUID) (entities.Courier, error)
	ListDispatchable(ctx context.Context) ([]entities.Courier, error)
	UpdateLocation(ctx context.Context, courierID uuid.UUID, p entities.GeoPoint) error
	SetAvailability(ctx context.Context, courierID uuid.UUID, available bool) error
	UpdateApplicationStatus(ctx context.Context, courierID uuid.UUID, status entities.ApplicationStatus) error
	CountActiveDeliveries(ctx context.Context, courierID uuid.UUID) (int, error)
	UpdateTripStats(ctx context.Context, courierID uuid.UUID, completedTrips int, avgSpeedKmh float64) error
}

type TripRepo interface {
	CreateTrip(ctx context.Context, t entities.DeliveryTrip) error
	GetTripByOrder(ctx context.Context, orderID uuid.UUID) (entities.DeliveryTrip, error)
	GetOpenTripByCourier(ctx context.Context, courierID uuid.UUID) (entities.DeliveryTrip, error)
	AppendRoutePoint(ctx context.Context, tripID uuid.UUID, p entities.RoutePoint) error
	AppendStatusChange(ctx context.Context, tripID uuid.UUID, c entities.TripStatusChange) error
	RoutePoints(ctx context.Context, tripID uuid.UUID) ([]entities.RoutePoint, error)
	LastRoutePoints(ctx context.Context, tripID uuid.UUID, limit int) ([]entities.RoutePoint, error)
	StatusHistory(ctx context.Context, tripID uuid.UUID) ([]entities.TripStatusChange, error)
	UpdateMetrics(ctx context.Context, tripID uuid.UUID, m entities.TripMetrics) error
	CloseTrip(ctx context.Context, tripID uuid.UUID, status entities.TripStatus, closedAt time.Time) error
	ListOpenTripIDs(ctx context.Context) ([]uuid.UUID, error)
}

type PingRepo interface {
	AppendPing(ctx context.Context, p entities.LocationPing) error
	ListRecent(ctx context.Context, courierID uuid.UUID, limit int) ([]entities.LocationPing, error)
}

// EventPublisher fans realtime events out to a named room. Best-effort,
// at-most-once; publish failures are logged, never surfaced to callers.
type EventPublisher interface {
	Publish(ctx context.Context, room string, event entities.Event) error
}

// SnapshotCache lets mutating services drop a memoized tracking view
// when its order changes, so polling clients see the new status on the
// next request instead of after the TTL.
type SnapshotCache interface {
	Invalidate(key string)
}

// SpeedAdjuster is a pluggable correction applied on top of the base
// speed model, e.g. a weather provider. The default is a no-op.
type SpeedAdjuster interface {
	Adjust(ctx context.Context, courier entities.Courier, speedKmh float64) float64
}

// PaymentConfirmer is the one-way trigger into the payment collaborator
// fired when a cash-on-delivery order reaches delivered.
type PaymentConfirmer interface {
	ConfirmCashOnDelivery(ctx context.Context, orderID uuid.UUID) error
}

type RouteProvider interface {
	Route(ctx context.Context, from, to entities.GeoPoint) (*routing.Route, error)
}
