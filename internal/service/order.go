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
	"github.com/veloraeats/dispatch-service/pkg/utils"
)

// Actor identifies who is asking for a state change. Authentication
// happens upstream; here we only enforce role rules.
type Actor struct {
	ID   uuid.UUID
	Role string
}

const (
	RoleCustomer = "customer"
	RoleCourier  = "courier"
	RoleOperator = "operator"
)

// TransitionRequest carries the desired change plus the version the
// caller last observed. CourierID binds a courier by hand together
// with the status change, for orders auto-assignment could not place;
// EstimatedDeliveryAt overrides the computed forecast.
type TransitionRequest struct {
	Next                entities.OrderStatus
	Version             int64
	DeliveryNotes       *string
	CourierID           *uuid.UUID
	EstimatedDeliveryAt *time.Time
}

// TripFinalizer closes the delivery trip when an order reaches a
// terminal status.
type TripFinalizer interface {
	AddStatusChange(ctx context.Context, orderID uuid.UUID, status entities.TripStatus, note string, at time.Time) error
	CloseForOrder(ctx context.Context, orderID uuid.UUID, at time.Time) error
}

type OrderService struct {
	logger     *slog.Logger
	txManager  trm.Manager
	orders     OrderRepo
	dispatcher *Dispatcher
	telemetry  TripFinalizer
	payments   PaymentConfirmer
	publisher  EventPublisher
	snapshots  SnapshotCache
	now        func() time.Time
}

func NewOrderService(
	logger *slog.Logger,
	txManager trm.Manager,
	orders OrderRepo,
	dispatcher *Dispatcher,
	telemetry TripFinalizer,
	payments PaymentConfirmer,
	publisher EventPublisher,
	snapshots SnapshotCache,
) *OrderService {
	return &OrderService{
		logger:     logger.With(slog.String("service", "order")),
		txManager:  txManager,
		orders:     orders,
		dispatcher: dispatcher,
		telemetry:  telemetry,
		payments:   payments,
		publisher:  publisher,
		snapshots:  snapshots,
		now:        time.Now,
	}
}

func (s *OrderService) WithClock(now func() time.Time) *OrderService {
	s.now = now
	return s
}

// CreateOrder persists a new order and immediately tries to assign the
// nearest courier. Assignment failures are logged, never returned: an
// unassigned order stays in the queue for manual dispatch.
func (s *OrderService) CreateOrder(ctx context.Context, order entities.Order) (entities.Order, error) {
	now := s.now().UTC()
	order.ID = uuid.New()
	order.Status = entities.OrderPending
	order.Version = 1
	order.CreatedAt = now
	order.UpdatedAt = now

	cfg := utils.RetryConfig{
		InitialDelay: 100 * time.Millisecond,
		MaxAttempts:  5,
		Multiplier:   2,
	}
	err := utils.Retry(cfg, func() error {
		return s.orders.CreateOrder(ctx, order)
	})
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to create order: %w", err)
	}
	s.logger.Debug("order created", "order_id", order.ID)

	assignment, err := s.dispatcher.AutoAssign(ctx, order)
	if err != nil {
		s.logger.ErrorContext(ctx, "auto-assignment failed",
			slog.String("order_id", order.ID.String()),
			slog.Any("error", err),
		)
		return order, nil
	}
	if assignment != nil {
		order = assignment.Order
	}

	s.publish(ctx, order, entities.EventOrderUpdated, nil)
	return order, nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, orderID uuid.UUID) (entities.Order, error) {
	var order entities.Order
	cfg := utils.RetryConfig{
		InitialDelay: 100 * time.Millisecond,
		MaxAttempts:  5,
		Multiplier:   2,
	}
	err := utils.Retry(cfg, func() error {
		var err error
		order, err = s.orders.GetOrderByID(ctx, orderID)
		return err
	}, entities.ErrOrderNotFound)
	if err != nil {
		return entities.Order{}, err
	}
	return order, nil
}

// Transition moves an order to the requested status, enforcing the
// version token, the actor's role and the lifecycle table, in that
// order. A courier id on the request binds that courier in the same
// transaction as the status change. Requesting the current status with
// fresh delivery notes is a metadata update; with nothing new it is
// ErrNoOp.
func (s *OrderService) Transition(ctx context.Context, actor Actor, orderID uuid.UUID, req TransitionRequest) (entities.Order, error) {
	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}

	if req.Version != order.Version {
		return entities.Order{}, entities.ErrConflict
	}
	if err := s.authorize(actor, order, req.Next); err != nil {
		return entities.Order{}, err
	}

	notesChanged := req.DeliveryNotes != nil && *req.DeliveryNotes != order.DeliveryNotes
	if req.Next == order.Status {
		if !notesChanged {
			return entities.Order{}, entities.ErrNoOp
		}
		order.DeliveryNotes = *req.DeliveryNotes
		order.UpdatedAt = s.now().UTC()
		if err := s.orders.UpdateOrder(ctx, order); err != nil {
			return entities.Order{}, err
		}
		order.Version++
		s.snapshots.Invalidate(order.ID.String())
		return order, nil
	}

	if !order.CanTransition(req.Next) {
		return entities.Order{}, fmt.Errorf("%w: %s -> %s", entities.ErrInvalidTransition, order.Status, req.Next)
	}

	assigning := false
	if req.CourierID != nil {
		switch {
		case order.CourierID == nil:
			assigning = true
		case *order.CourierID != *req.CourierID:
			return entities.Order{}, fmt.Errorf("%w: order is already assigned", entities.ErrInvalidCourier)
		}
	}

	now := s.now().UTC()
	order.Status = req.Next
	order.UpdatedAt = now
	if notesChanged {
		order.DeliveryNotes = *req.DeliveryNotes
	}
	if req.EstimatedDeliveryAt != nil && !assigning {
		eta := req.EstimatedDeliveryAt.UTC()
		order.EstimatedDeliveryAt = &eta
	}
	if req.Next == entities.OrderDelivered {
		order.ActualDeliveryAt = &now
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if assigning {
			if err := s.dispatcher.ManualAssign(ctx, &order, *req.CourierID, req.EstimatedDeliveryAt); err != nil {
				return err
			}
		}
		if err := s.orders.UpdateOrder(ctx, order); err != nil {
			return err
		}
		return s.finalizeTrip(ctx, order, now)
	})
	if err != nil {
		return entities.Order{}, err
	}
	order.Version++
	s.snapshots.Invalidate(order.ID.String())

	if req.Next == entities.OrderDelivered {
		s.confirmCashPayment(ctx, order)
	}

	if assigning {
		payload := map[string]any{"status": order.Status}
		if order.EstimatedDeliveryAt != nil {
			payload["estimated_delivery_at"] = *order.EstimatedDeliveryAt
		}
		if err := s.publisher.Publish(ctx, entities.RoomCourier(*order.CourierID), entities.Event{
			Type:      entities.EventDeliveryAssigned,
			OrderID:   order.ID,
			CourierID: *order.CourierID,
			Payload:   payload,
			At:        now,
		}); err != nil {
			s.logger.WarnContext(ctx, "failed to publish event",
				slog.String("room", entities.RoomCourier(*order.CourierID)),
				slog.String("type", string(entities.EventDeliveryAssigned)),
				slog.Any("error", err),
			)
		}
	}

	s.publish(ctx, order, entities.EventOrderUpdated, nil)
	if req.Next == entities.OrderDelivered {
		s.publish(ctx, order, entities.EventDeliveryCompleted, map[string]any{
			"delivered_at": now,
		})
	}
	return order, nil
}

// Rate records customer feedback on a delivered order. Only the
// order's customer and operators may rate; couriers never rate their
// own deliveries.
func (s *OrderService) Rate(ctx context.Context, actor Actor, orderID uuid.UUID, courierRating, foodRating int) (entities.Order, error) {
	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	switch actor.Role {
	case RoleOperator:
	case RoleCustomer:
		if actor.ID != order.CustomerID {
			return entities.Order{}, entities.ErrForbidden
		}
	default:
		return entities.Order{}, entities.ErrForbidden
	}
	if order.Status != entities.OrderDelivered {
		return entities.Order{}, fmt.Errorf("%w: only delivered orders can be rated", entities.ErrInvalidTransition)
	}

	order.CourierRating = courierRating
	order.FoodRating = foodRating
	order.UpdatedAt = s.now().UTC()

	if err := s.orders.UpdateRatings(ctx, order.ID, courierRating, foodRating); err != nil {
		return entities.Order{}, err
	}
	return order, nil
}

func (s *OrderService) authorize(actor Actor, order entities.Order, next entities.OrderStatus) error {
	switch actor.Role {
	case RoleOperator:
		return nil
	case RoleCourier:
		if order.CourierID == nil || *order.CourierID != actor.ID {
			return entities.ErrForbidden
		}
		if next != entities.OrderOutForDelivery && next != entities.OrderDelivered {
			return entities.ErrForbidden
		}
		return nil
	case RoleCustomer:
		if actor.ID != order.CustomerID {
			return entities.ErrForbidden
		}
		if next != entities.OrderCancelled && next != order.Status {
			return entities.ErrForbidden
		}
		return nil
	default:
		return entities.ErrForbidden
	}
}

func (s *OrderService) finalizeTrip(ctx context.Context, order entities.Order, at time.Time) error {
	if order.CourierID == nil {
		return nil
	}

	switch order.Status {
	case entities.OrderDelivered:
		if err := s.telemetry.AddStatusChange(ctx, order.ID, entities.TripClosed, "order delivered", at); err != nil {
			return err
		}
		return s.telemetry.CloseForOrder(ctx, order.ID, at)
	case entities.OrderCancelled:
		if err := s.telemetry.AddStatusChange(ctx, order.ID, entities.TripFailed, "order cancelled", at); err != nil {
			// A cancelled order may predate trip creation.
			if errors.Is(err, entities.ErrTripNotFound) {
				return nil
			}
			return err
		}
		return nil
	default:
		return nil
	}
}

func (s *OrderService) confirmCashPayment(ctx context.Context, order entities.Order) {
	if order.PaymentMethod != entities.PaymentCash || order.PaymentStatus != entities.PaymentPending {
		return
	}
	if err := s.payments.ConfirmCashOnDelivery(ctx, order.ID); err != nil {
		s.logger.ErrorContext(ctx, "failed to confirm cash payment",
			slog.String("order_id", order.ID.String()),
			slog.Any("error", err),
		)
	}
}

func (s *OrderService) publish(ctx context.Context, order entities.Order, eventType entities.EventType, payload map[string]any) {
	if payload == nil {
		payload = map[string]any{}
	}
	payload["status"] = order.Status
	payload["version"] = order.Version

	event := entities.Event{
		Type:    eventType,
		OrderID: order.ID,
		Payload: payload,
		At:      s.now().UTC(),
	}
	if order.CourierID != nil {
		event.CourierID = *order.CourierID
	}

	rooms := []string{entities.RoomCustomer(order.CustomerID), entities.RoomOperators}
	if order.CourierID != nil {
		rooms = append(rooms, entities.RoomCourier(*order.CourierID))
	}
	for _, room := range rooms {
		if err := s.publisher.Publish(ctx, room, event); err != nil {
			s.logger.WarnContext(ctx, "failed to publish event",
				slog.String("room", room),
				slog.String("type", string(eventType)),
				slog.Any("error", err),
			)
		}
	}
}
