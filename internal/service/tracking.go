package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/veloraeats/dispatch-service/internal/entities"
	"github.com/veloraeats/dispatch-service/internal/routing"
	"github.com/veloraeats/dispatch-service/pkg/cache"
)

// Snapshot is the full live-tracking view of an order: current status,
// courier position, recent trajectory, forecast and, when a routing
// backend answered, the driving route.
type Snapshot struct {
	OrderID             uuid.UUID              `json:"order_id"`
	Status              entities.OrderStatus   `json:"status"`
	CourierID           *uuid.UUID             `json:"courier_id,omitempty"`
	CourierLocation     *entities.GeoPoint     `json:"courier_location,omitempty"`
	Trajectory          []entities.RoutePoint  `json:"trajectory"`
	Estimate            *Estimate              `json:"estimate,omitempty"`
	Route               *routing.Route         `json:"route,omitempty"`
	EstimatedDeliveryAt *time.Time             `json:"estimated_delivery_at,omitempty"`
	GeneratedAt         time.Time              `json:"generated_at"`
}

type TrackingService struct {
	logger          *slog.Logger
	orders          OrderRepo
	couriers        CourierRepo
	trips           TripRepo
	pings           PingRepo
	eta             *ETACalculator
	routes          RouteProvider
	cache           *cache.LRUCache[Snapshot]
	trajectoryLimit int
	now             func() time.Time
}

func NewTrackingService(
	logger *slog.Logger,
	orders OrderRepo,
	couriers CourierRepo,
	trips TripRepo,
	pings PingRepo,
	eta *ETACalculator,
	routes RouteProvider,
	snapshots *cache.LRUCache[Snapshot],
	trajectoryLimit int,
) *TrackingService {
	return &TrackingService{
		logger:          logger.With(slog.String("service", "tracking")),
		orders:          orders,
		couriers:        couriers,
		trips:           trips,
		pings:           pings,
		eta:             eta,
		routes:          routes,
		cache:           snapshots,
		trajectoryLimit: trajectoryLimit,
		now:             time.Now,
	}
}

func (s *TrackingService) WithClock(now func() time.Time) *TrackingService {
	s.now = now
	return s
}

// Track assembles the tracking snapshot for an order. Snapshots are
// cached briefly so a crowd of polling customers does not hammer the
// database during a busy delivery.
func (s *TrackingService) Track(ctx context.Context, orderID uuid.UUID) (Snapshot, error) {
	if snap, ok := s.cache.Get(orderID.String()); ok {
		return snap, nil
	}

	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		OrderID:             order.ID,
		Status:              order.Status,
		CourierID:           order.CourierID,
		Trajectory:          []entities.RoutePoint{},
		EstimatedDeliveryAt: order.EstimatedDeliveryAt,
		GeneratedAt:         s.now().UTC(),
	}

	if order.CourierID != nil {
		s.fillCourier(ctx, order, &snap)
	}

	s.cache.Set(orderID.String(), snap)
	return snap, nil
}

// ETA returns just the delivery forecast for an order.
func (s *TrackingService) ETA(ctx context.Context, orderID uuid.UUID) (*Estimate, error) {
	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.eta.Recompute(ctx, order)
}

func (s *TrackingService) fillCourier(ctx context.Context, order entities.Order, snap *Snapshot) {
	courier, err := s.couriers.GetCourierByID(ctx, *order.CourierID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load courier",
			slog.String("courier_id", order.CourierID.String()),
			slog.Any("error", err),
		)
		return
	}
	snap.CourierLocation = courier.Location

	snap.Trajectory = s.trajectory(ctx, order, courier.ID)

	if estimate, err := s.eta.Forecast(ctx, order, courier); err == nil {
		snap.Estimate = estimate
	}

	if courier.Location != nil && order.CustomerGeo != nil && order.ActiveDelivery() {
		route, err := s.routes.Route(ctx, *courier.Location, *order.CustomerGeo)
		if err != nil {
			if !errors.Is(err, routing.ErrRouteUnavailable) {
				s.logger.WarnContext(ctx, "failed to resolve route", slog.Any("error", err))
			}
		} else {
			snap.Route = route
		}
	}
}

// trajectory prefers the open trip's recorded route and falls back to
// the courier's raw recent pings when no trip exists yet.
func (s *TrackingService) trajectory(ctx context.Context, order entities.Order, courierID uuid.UUID) []entities.RoutePoint {
	trip, err := s.trips.GetTripByOrder(ctx, order.ID)
	if err == nil {
		points, err := s.trips.LastRoutePoints(ctx, trip.ID, s.trajectoryLimit)
		if err == nil {
			return points
		}
		s.logger.WarnContext(ctx, "failed to load route points", slog.Any("error", err))
	} else if !errors.Is(err, entities.ErrTripNotFound) {
		s.logger.WarnContext(ctx, "failed to load trip", slog.Any("error", err))
	}

	pings, err := s.pings.ListRecent(ctx, courierID, s.trajectoryLimit)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load recent pings", slog.Any("error", err))
		return []entities.RoutePoint{}
	}

	points := make([]entities.RoutePoint, 0, len(pings))
	for i := len(pings) - 1; i >= 0; i-- {
		p := pings[i]
		points = append(points, entities.RoutePoint{
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
			Speed:     p.Speed,
			Heading:   p.Heading,
			CreatedAt: p.CreatedAt,
		})
	}
	return points
}
