package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/veloraeats/dispatch-service/internal/entities"
	"github.com/veloraeats/dispatch-service/pkg/geo"
	"github.com/veloraeats/dispatch-service/pkg/trm"
)

// trafficBuffer is the flat reserve added to every travel estimate for
// traffic and stops.
const trafficBuffer = 1.1

// Assignment is the outcome of a successful auto-assignment.
type Assignment struct {
	Order          entities.Order
	Courier        entities.Courier
	DistanceMeters float64
	SpeedKmh       float64
	EstimatedAt    time.Time
}

type Dispatcher struct {
	logger    *slog.Logger
	txManager trm.Manager
	orders    OrderRepo
	couriers  CourierRepo
	trips     TripRepo
	speed     *SpeedModel
	publisher EventPublisher
	cutoff    float64
	now       func() time.Time
}

func NewDispatcher(
	logger *slog.Logger,
	txManager trm.Manager,
	orders OrderRepo,
	couriers CourierRepo,
	trips TripRepo,
	speed *SpeedModel,
	publisher EventPublisher,
	cutoffMeters float64,
) *Dispatcher {
	return &Dispatcher{
		logger:    logger.With(slog.String("service", "dispatch")),
		txManager: txManager,
		orders:    orders,
		couriers:  couriers,
		trips:     trips,
		speed:     speed,
		publisher: publisher,
		cutoff:    cutoffMeters,
		now:       time.Now,
	}
}

func (d *Dispatcher) WithClock(now func() time.Time) *Dispatcher {
	d.now = now
	return d
}

// AutoAssign picks the nearest dispatchable courier within the cutoff
// radius and binds them to the order. A nil Assignment with a nil error
// means no courier qualified; the caller falls back to manual
// assignment and must not treat that as a failure.
func (d *Dispatcher) AutoAssign(ctx context.Context, order entities.Order) (*Assignment, error) {
	if order.CustomerGeo == nil {
		return nil, nil
	}

	couriers, err := d.couriers.ListDispatchable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list couriers: %w", err)
	}

	best, bestDistance := d.nearest(*order.CustomerGeo, couriers)
	if best == nil {
		d.logger.InfoContext(ctx, "no courier in range",
			slog.String("order_id", order.ID.String()),
			slog.Int("candidates", len(couriers)),
		)
		return nil, nil
	}

	speed := d.speed.Estimate(ctx, *best)
	now := d.now().UTC()
	travel := time.Duration(float64(geo.TravelTime(bestDistance, speed)) * trafficBuffer)
	estimatedAt := now.Add(travel + prepBuffer(order.Status))

	order.CourierID = &best.ID
	order.EstimatedDeliveryAt = &estimatedAt
	order.AssignedAt = &now

	err = d.txManager.Do(ctx, func(ctx context.Context) error {
		if err := d.orders.UpdateOrder(ctx, order); err != nil {
			return fmt.Errorf("failed to assign order: %w", err)
		}

		trip := entities.DeliveryTrip{
			ID:         uuid.New(),
			OrderID:    order.ID,
			CourierID:  best.ID,
			CustomerID: order.CustomerID,
			Pickup:     best.Location,
			Dropoff:    order.CustomerGeo,
			Status:     entities.TripOpen,
			CreatedAt:  now,
		}
		if err := d.trips.CreateTrip(ctx, trip); err != nil {
			return fmt.Errorf("failed to open trip: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	order.Version++

	d.publish(ctx, entities.RoomCourier(best.ID), entities.Event{
		Type:      entities.EventDeliveryAssigned,
		OrderID:   order.ID,
		CourierID: best.ID,
		Payload: map[string]any{
			"distance_meters":       bestDistance,
			"estimated_delivery_at": estimatedAt,
		},
		At: now,
	})

	return &Assignment{
		Order:          order,
		Courier:        *best,
		DistanceMeters: bestDistance,
		SpeedKmh:       speed,
		EstimatedAt:    estimatedAt,
	}, nil
}

// ManualAssign binds a specific courier to the order after verifying
// they are registered, approved and on duty; ErrInvalidCourier covers
// every failed check. It runs inside the caller's transaction: the
// order row is written by the caller, ManualAssign only mutates the
// order and opens the delivery trip alongside it.
func (d *Dispatcher) ManualAssign(ctx context.Context, order *entities.Order, courierID uuid.UUID, etaOverride *time.Time) error {
	courier, err := d.couriers.GetCourierByID(ctx, courierID)
	if err != nil {
		if errors.Is(err, entities.ErrCourierNotFound) {
			return fmt.Errorf("%w: unknown courier %s", entities.ErrInvalidCourier, courierID)
		}
		return fmt.Errorf("failed to load courier: %w", err)
	}
	if courier.Status != entities.ApplicationActive {
		return fmt.Errorf("%w: application is %s", entities.ErrInvalidCourier, courier.Status)
	}
	if !courier.Available {
		return fmt.Errorf("%w: courier is off duty", entities.ErrInvalidCourier)
	}

	now := d.now().UTC()
	order.CourierID = &courier.ID
	order.AssignedAt = &now

	switch {
	case etaOverride != nil:
		eta := etaOverride.UTC()
		order.EstimatedDeliveryAt = &eta
	case courier.Location != nil && order.CustomerGeo != nil:
		distance := geo.Distance(
			courier.Location.Latitude, courier.Location.Longitude,
			order.CustomerGeo.Latitude, order.CustomerGeo.Longitude,
		)
		speed := d.speed.Estimate(ctx, courier)
		travel := time.Duration(float64(geo.TravelTime(distance, speed)) * trafficBuffer)
		eta := now.Add(travel + prepBuffer(order.Status))
		order.EstimatedDeliveryAt = &eta
	}

	trip := entities.DeliveryTrip{
		ID:         uuid.New(),
		OrderID:    order.ID,
		CourierID:  courier.ID,
		CustomerID: order.CustomerID,
		Pickup:     courier.Location,
		Dropoff:    order.CustomerGeo,
		Status:     entities.TripOpen,
		CreatedAt:  now,
	}
	if err := d.trips.CreateTrip(ctx, trip); err != nil {
		return fmt.Errorf("failed to open trip: %w", err)
	}
	return nil
}

// nearest scans candidates in their natural order and keeps the first
// strictly-closest one, so ties resolve to the first found.
func (d *Dispatcher) nearest(target entities.GeoPoint, couriers []entities.Courier) (*entities.Courier, float64) {
	var (
		best         *entities.Courier
		bestDistance float64
	)

	for i := range couriers {
		c := couriers[i]
		if !c.Dispatchable() {
			continue
		}

		distance := geo.Distance(
			c.Location.Latitude, c.Location.Longitude,
			target.Latitude, target.Longitude,
		)
		if distance > d.cutoff {
			continue
		}
		if best == nil || distance < bestDistance {
			best = &couriers[i]
			bestDistance = distance
		}
	}
	return best, bestDistance
}

func (d *Dispatcher) publish(ctx context.Context, room string, event entities.Event) {
	if err := d.publisher.Publish(ctx, room, event); err != nil {
		d.logger.WarnContext(ctx, "failed to publish event",
			slog.String("room", room),
			slog.String("type", string(event.Type)),
			slog.Any("error", err),
		)
	}
}

// prepBuffer is the kitchen preparation reserve, shrinking as the order
// advances through the lifecycle.
func prepBuffer(status entities.OrderStatus) time.Duration {
	switch status {
	case entities.OrderPending, entities.OrderConfirmed:
		return 15 * time.Minute
	case entities.OrderPreparing:
		return 10 * time.Minute
	case entities.OrderReady:
		return 5 * time.Minute
	default:
		return 0
	}
}
