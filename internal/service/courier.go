package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/veloraeats/dispatch-service/internal/entities"
)

type CourierService struct {
	logger    *slog.Logger
	couriers  CourierRepo
	orders    OrderRepo
	publisher EventPublisher
	now       func() time.Time
}

func NewCourierService(logger *slog.Logger, couriers CourierRepo, orders OrderRepo, publisher EventPublisher) *CourierService {
	return &CourierService{
		logger:    logger.With(slog.String("service", "courier")),
		couriers:  couriers,
		orders:    orders,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *CourierService) GetCourierByID(ctx context.Context, courierID uuid.UUID) (entities.Courier, error) {
	return s.couriers.GetCourierByID(ctx, courierID)
}

// ActiveOrder returns the delivery the courier is currently carrying.
func (s *CourierService) ActiveOrder(ctx context.Context, courierID uuid.UUID) (entities.Order, error) {
	if _, err := s.couriers.GetCourierByID(ctx, courierID); err != nil {
		return entities.Order{}, err
	}
	return s.orders.GetActiveOrderByCourier(ctx, courierID)
}

// SetAvailability flips the courier's duty flag. Going off duty is
// refused while a delivery is in flight so an assigned order is never
// silently orphaned.
func (s *CourierService) SetAvailability(ctx context.Context, courierID uuid.UUID, available bool) error {
	courier, err := s.couriers.GetCourierByID(ctx, courierID)
	if err != nil {
		return err
	}
	if courier.Status != entities.ApplicationActive {
		return fmt.Errorf("%w: courier is not active", entities.ErrInvalidCourier)
	}

	if !available {
		active, err := s.couriers.CountActiveDeliveries(ctx, courierID)
		if err != nil {
			return fmt.Errorf("failed to count active deliveries: %w", err)
		}
		if active > 0 {
			return entities.ErrActiveDelivery
		}
	}

	if err := s.couriers.SetAvailability(ctx, courierID, available); err != nil {
		return err
	}
	s.logger.Info("courier availability changed",
		"courier_id", courierID,
		"available", available,
	)
	return nil
}

// ReviewApplication resolves a pending courier application and tells
// the applicant the outcome.
func (s *CourierService) ReviewApplication(ctx context.Context, courierID uuid.UUID, approve bool) error {
	courier, err := s.couriers.GetCourierByID(ctx, courierID)
	if err != nil {
		return err
	}
	if courier.Status != entities.ApplicationPending {
		return fmt.Errorf("%w: application already %s", entities.ErrInvalidCourier, courier.Status)
	}

	status := entities.ApplicationRejected
	if approve {
		status = entities.ApplicationActive
	}
	if err := s.couriers.UpdateApplicationStatus(ctx, courierID, status); err != nil {
		return err
	}

	event := entities.Event{
		Type:      entities.EventApplicationUpdated,
		CourierID: courierID,
		Payload:   map[string]any{"status": status},
		At:        s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, entities.RoomCourier(courierID), event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish event",
			slog.String("type", string(entities.EventApplicationUpdated)),
			slog.Any("error", err),
		)
	}
	return nil
}
