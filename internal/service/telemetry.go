package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/veloraeats/dispatch-service/internal/entities"
	"github.com/veloraeats/dispatch-service/pkg/geo"
)

// Telemetry derives trip metrics from recorded route points and folds
// finished trips into the courier's historical speed profile.
type Telemetry struct {
	logger   *slog.Logger
	trips    TripRepo
	couriers CourierRepo
}

func NewTelemetry(logger *slog.Logger, trips TripRepo, couriers CourierRepo) *Telemetry {
	return &Telemetry{
		logger:   logger.With(slog.String("service", "telemetry")),
		trips:    trips,
		couriers: couriers,
	}
}

// ComputeMetrics walks consecutive route points and sums segment
// distances. Pure and idempotent: recomputing over the same points
// yields the same metrics.
func ComputeMetrics(points []entities.RoutePoint) entities.TripMetrics {
	var m entities.TripMetrics
	if len(points) < 2 {
		return m
	}

	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		m.DistanceMeters += geo.Distance(
			prev.Latitude, prev.Longitude,
			cur.Latitude, cur.Longitude,
		)
	}

	m.Duration = points[len(points)-1].CreatedAt.Sub(points[0].CreatedAt)
	if m.Duration > 0 {
		m.AvgSpeedKmh = (m.DistanceMeters / 1000) / m.Duration.Hours()
	}
	return m
}

// RefreshMetrics recomputes and stores metrics for a trip from its
// full route.
func (s *Telemetry) RefreshMetrics(ctx context.Context, tripID uuid.UUID) (entities.TripMetrics, error) {
	points, err := s.trips.RoutePoints(ctx, tripID)
	if err != nil {
		return entities.TripMetrics{}, fmt.Errorf("failed to load route points: %w", err)
	}

	metrics := ComputeMetrics(points)
	if err := s.trips.UpdateMetrics(ctx, tripID, metrics); err != nil {
		return entities.TripMetrics{}, fmt.Errorf("failed to update metrics: %w", err)
	}
	return metrics, nil
}

// AddStatusChange appends an entry to the trip's status-history log.
func (s *Telemetry) AddStatusChange(ctx context.Context, orderID uuid.UUID, status entities.TripStatus, note string, at time.Time) error {
	trip, err := s.trips.GetTripByOrder(ctx, orderID)
	if err != nil {
		return err
	}

	change := entities.TripStatusChange{
		Status:    status,
		Note:      note,
		CreatedAt: at,
	}
	if err := s.trips.AppendStatusChange(ctx, trip.ID, change); err != nil {
		return fmt.Errorf("failed to append status change: %w", err)
	}
	return nil
}

// TripDetail returns the trip for an order with its status-history
// log attached.
func (s *Telemetry) TripDetail(ctx context.Context, orderID uuid.UUID) (entities.DeliveryTrip, error) {
	trip, err := s.trips.GetTripByOrder(ctx, orderID)
	if err != nil {
		return entities.DeliveryTrip{}, err
	}

	history, err := s.trips.StatusHistory(ctx, trip.ID)
	if err != nil {
		return entities.DeliveryTrip{}, fmt.Errorf("failed to load status history: %w", err)
	}
	trip.StatusHistory = history
	return trip, nil
}

// CloseForOrder finalizes the trip of a delivered order: recomputes
// metrics one last time, closes the trip and updates the courier's
// rolling average speed. Closing an already-closed trip is a no-op.
func (s *Telemetry) CloseForOrder(ctx context.Context, orderID uuid.UUID, at time.Time) error {
	trip, err := s.trips.GetTripByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if trip.Status != entities.TripOpen {
		return nil
	}

	metrics, err := s.RefreshMetrics(ctx, trip.ID)
	if err != nil {
		return err
	}
	if err := s.trips.CloseTrip(ctx, trip.ID, entities.TripClosed, at); err != nil {
		return fmt.Errorf("failed to close trip: %w", err)
	}

	if err := s.foldCourierStats(ctx, trip.CourierID, metrics); err != nil {
		// Stats are advisory; the trip is already closed.
		s.logger.WarnContext(ctx, "failed to update courier stats",
			slog.String("courier_id", trip.CourierID.String()),
			slog.Any("error", err),
		)
	}
	return nil
}

func (s *Telemetry) foldCourierStats(ctx context.Context, courierID uuid.UUID, metrics entities.TripMetrics) error {
	courier, err := s.couriers.GetCourierByID(ctx, courierID)
	if err != nil {
		return err
	}

	completed := courier.CompletedTrips + 1
	avg := courier.AvgSpeedKmh
	if metrics.AvgSpeedKmh > 0 {
		avg = ((courier.AvgSpeedKmh * float64(courier.CompletedTrips)) + metrics.AvgSpeedKmh) / float64(completed)
	}

	return s.couriers.UpdateTripStats(ctx, courierID, completed, avg)
}
