package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/veloraeats/dispatch-service/internal/entities"
	"github.com/veloraeats/dispatch-service/pkg/trm"
)

// Ingestor validates courier position reports, persists them and feeds
// the live-tracking fan-out.
type Ingestor struct {
	logger            *slog.Logger
	txManager         trm.Manager
	pings             PingRepo
	couriers          CourierRepo
	orders            OrderRepo
	trips             TripRepo
	eta               *ETACalculator
	publisher         EventPublisher
	accuracyThreshold float64
	now               func() time.Time
}

func NewIngestor(
	logger *slog.Logger,
	txManager trm.Manager,
	pings PingRepo,
	couriers CourierRepo,
	orders OrderRepo,
	trips TripRepo,
	eta *ETACalculator,
	publisher EventPublisher,
	accuracyThresholdMeters float64,
) *Ingestor {
	return &Ingestor{
		logger:            logger.With(slog.String("service", "location")),
		txManager:         txManager,
		pings:             pings,
		couriers:          couriers,
		orders:            orders,
		trips:             trips,
		eta:               eta,
		publisher:         publisher,
		accuracyThreshold: accuracyThresholdMeters,
		now:               time.Now,
	}
}

// Ingest records a single ping. Rejected pings (out of range, poor
// accuracy) leave the courier's stored position untouched. An accepted
// ping updates the courier, extends the open trip's route and pushes
// location and ETA updates to subscribers.
func (s *Ingestor) Ingest(ctx context.Context, ping entities.LocationPing) error {
	if !ping.Point().InRange() {
		return fmt.Errorf("%w: lat=%f lon=%f", entities.ErrOutOfRange, ping.Latitude, ping.Longitude)
	}
	if ping.Accuracy > s.accuracyThreshold {
		return fmt.Errorf("%w: %.0fm exceeds %.0fm", entities.ErrPoorAccuracy, ping.Accuracy, s.accuracyThreshold)
	}

	ping.ID = uuid.New()
	ping.Active = true
	if ping.CreatedAt.IsZero() {
		ping.CreatedAt = s.now().UTC()
	}

	var trip *entities.DeliveryTrip
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.pings.AppendPing(ctx, ping); err != nil {
			return fmt.Errorf("failed to append ping: %w", err)
		}
		if err := s.couriers.UpdateLocation(ctx, ping.CourierID, ping.Point()); err != nil {
			return fmt.Errorf("failed to update courier location: %w", err)
		}

		open, err := s.trips.GetOpenTripByCourier(ctx, ping.CourierID)
		if err != nil {
			if errors.Is(err, entities.ErrTripNotFound) {
				return nil
			}
			return fmt.Errorf("failed to find open trip: %w", err)
		}
		trip = &open

		point := entities.RoutePoint{
			Latitude:  ping.Latitude,
			Longitude: ping.Longitude,
			Speed:     ping.Speed,
			Heading:   ping.Heading,
			CreatedAt: ping.CreatedAt,
		}
		if err := s.trips.AppendRoutePoint(ctx, open.ID, point); err != nil {
			return fmt.Errorf("failed to append route point: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if trip != nil {
		s.notify(ctx, *trip, ping)
	}
	return nil
}

// notify pushes the position and a freshly recomputed ETA to the
// customer and operator rooms. Failures here never fail the ingest.
func (s *Ingestor) notify(ctx context.Context, trip entities.DeliveryTrip, ping entities.LocationPing) {
	rooms := []string{entities.RoomCustomer(trip.CustomerID), entities.RoomOperators}

	s.fanout(ctx, rooms, entities.Event{
		Type:      entities.EventLocationUpdate,
		OrderID:   trip.OrderID,
		CourierID: ping.CourierID,
		Payload: map[string]any{
			"latitude":  ping.Latitude,
			"longitude": ping.Longitude,
			"speed":     ping.Speed,
			"heading":   ping.Heading,
		},
		At: ping.CreatedAt,
	})

	order, err := s.orders.GetOrderByID(ctx, trip.OrderID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load order for eta update",
			slog.String("order_id", trip.OrderID.String()),
			slog.Any("error", err),
		)
		return
	}

	estimate, err := s.eta.Recompute(ctx, order)
	if err != nil {
		if !errors.Is(err, entities.ErrUnavailable) {
			s.logger.WarnContext(ctx, "failed to recompute eta",
				slog.String("order_id", order.ID.String()),
				slog.Any("error", err),
			)
		}
		return
	}

	s.fanout(ctx, rooms, entities.Event{
		Type:      entities.EventETAUpdate,
		OrderID:   order.ID,
		CourierID: ping.CourierID,
		Payload:   estimate,
		At:        s.now().UTC(),
	})
}

func (s *Ingestor) fanout(ctx context.Context, rooms []string, event entities.Event) {
	for _, room := range rooms {
		if err := s.publisher.Publish(ctx, room, event); err != nil {
			s.logger.WarnContext(ctx, "failed to publish event",
				slog.String("room", room),
				slog.String("type", string(event.Type)),
				slog.Any("error", err),
			)
		}
	}
}
