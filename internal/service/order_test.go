package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/veloraeats/dispatch-service/internal/entities"
	"github.com/veloraeats/dispatch-service/internal/service"
	"github.com/veloraeats/dispatch-service/internal/service/mocks"
	"github.com/veloraeats/dispatch-service/pkg/cache"
	"github.com/veloraeats/dispatch-service/pkg/trm/trmtest"
)

type orderServiceDeps struct {
	orders    *mocks.MockOrderRepo
	couriers  *mocks.MockCourierRepo
	trips     *mocks.MockTripRepo
	telemetry *mocks.MockTripFinalizer
	payments  *mocks.MockPaymentConfirmer
	publisher *mocks.MockEventPublisher
	snapshots *cache.LRUCache[service.Snapshot]
}

func newOrderService(t *testing.T, now time.Time) (*service.OrderService, orderServiceDeps) {
	deps := orderServiceDeps{
		orders:    mocks.NewMockOrderRepo(t),
		couriers:  mocks.NewMockCourierRepo(t),
		trips:     mocks.NewMockTripRepo(t),
		telemetry: mocks.NewMockTripFinalizer(t),
		payments:  mocks.NewMockPaymentConfirmer(t),
		publisher: mocks.NewMockEventPublisher(t),
		snapshots: cache.NewLRUCache[service.Snapshot](8, time.Minute),
	}

	clock := func() time.Time { return now }
	speed := service.NewSpeedModel(dispatchConfig(), service.NoopAdjuster{}).WithClock(clock)
	dispatcher := service.NewDispatcher(
		testLogger(), trmtest.Manager{}, deps.orders, deps.couriers, deps.trips, speed, deps.publisher, 50_000,
	).WithClock(clock)

	svc := service.NewOrderService(
		testLogger(), trmtest.Manager{}, deps.orders, dispatcher, deps.telemetry, deps.payments, deps.publisher, deps.snapshots,
	).WithClock(clock)

	return svc, deps
}

func TestOrderService_CreateOrder(t *testing.T) {
	noon := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	customerID := uuid.New()

	newOrder := entities.Order{
		CustomerID:      customerID,
		DeliveryAddress: "1 Main St",
		CustomerGeo:     &entities.GeoPoint{Latitude: 40.7128, Longitude: -74.0060},
		PaymentMethod:   entities.PaymentCard,
		PaymentStatus:   entities.PaymentPending,
	}

	t.Run("creates and assigns", func(t *testing.T) {
		svc, deps := newOrderService(t, noon)
		courier := activeCourier(uuid.New(), 40.7150, -74.0080)

		deps.orders.EXPECT().CreateOrder(mock.Anything, mock.Anything).Return(nil)
		deps.couriers.EXPECT().ListDispatchable(mock.Anything).Return([]entities.Courier{courier}, nil)
		deps.orders.EXPECT().UpdateOrder(mock.Anything, mock.Anything).Return(nil)
		deps.trips.EXPECT().CreateTrip(mock.Anything, mock.Anything).Return(nil)
		deps.publisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).Return(nil)

		order, err := svc.CreateOrder(context.Background(), newOrder)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, order.ID)
		assert.Equal(t, entities.OrderPending, order.Status)
		require.NotNil(t, order.CourierID)
		assert.Equal(t, courier.ID, *order.CourierID)
		assert.NotNil(t, order.EstimatedDeliveryAt)
	})

	t.Run("assignment failure leaves the order unassigned", func(t *testing.T) {
		svc, deps := newOrderService(t, noon)

		deps.orders.EXPECT().CreateOrder(mock.Anything, mock.Anything).Return(nil)
		deps.couriers.EXPECT().ListDispatchable(mock.Anything).Return(nil, errors.New("db down"))
		deps.publisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

		order, err := svc.CreateOrder(context.Background(), newOrder)

		require.NoError(t, err)
		assert.Nil(t, order.CourierID)
		assert.Equal(t, entities.OrderPending, order.Status)
	})

	t.Run("retries transient create failures", func(t *testing.T) {
		svc, deps := newOrderService(t, noon)

		deps.orders.EXPECT().CreateOrder(mock.Anything, mock.Anything).
			Once().Return(errors.New("temporary error"))
		deps.orders.EXPECT().CreateOrder(mock.Anything, mock.Anything).
			Once().Return(nil)
		deps.couriers.EXPECT().ListDispatchable(mock.Anything).Return(nil, nil)
		deps.publisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).Return(nil)

		_, err := svc.CreateOrder(context.Background(), newOrder)
		require.NoError(t, err)
	})
}

func TestOrderService_Transition(t *testing.T) {
	noon := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	orderID := uuid.New()
	customerID := uuid.New()
	courierID := uuid.New()
	operator := service.Actor{ID: uuid.New(), Role: service.RoleOperator}

	baseOrder := func(status entities.OrderStatus) entities.Order {
		return entities.Order{
			ID:         orderID,
			CustomerID: customerID,
			CourierID:  &courierID,
			Status:     status,
			Version:    3,
		}
	}

	t.Run("stale version is a conflict", func(t *testing.T) {
		svc, deps := newOrderService(t, noon)
		deps.orders.EXPECT().GetOrderByID(mock.Anything, orderID).Return(baseOrder(entities.OrderPending), nil)

		_, err := svc.Transition(context.Background(), operator, orderID, service.TransitionRequest{
			Next: entities.OrderConfirmed, Version: 2,
		})
		assert.ErrorIs(t, err, entities.ErrConflict)
	})

	t.Run("lifecycle table is enforced", func(t *testing.T) {
		svc, deps := newOrderService(t, noon)
		deps.orders.EXPECT().GetOrderByID(mock.Anything, orderID).Return(baseOrder(entities.OrderPending), nil)

		_, err := svc.Transition(context.Background(), operator, orderID, service.TransitionRequest{
			Next: entities.OrderDelivered, Version: 3,
		})
		assert.ErrorIs(t, err, entities.ErrInvalidTransition)
	})

	t.Run("same status with nothing new is a no-op", func(t *testing.T) {
		svc, deps := newOrderService(t, noon)
		deps.orders.EXPECT().GetOrderByID(mock.Anything, orderID).Return(baseOrder(entities.OrderPreparing), nil)

		_, err := svc.Transition(context.Background(), operator, orderID, service.TransitionRequest{
			Next: entities.OrderPreparing, Version: 3,
		})
		assert.ErrorIs(t, err, entities.ErrNoOp)
	})

	t.Run("same status with new notes is a metadata update", func(t *testing.T) {
		svc, deps := newOrderService(t, noon)
		deps.orders.EXPECT().GetOrderByID(mock.Anything, orderID).Return(baseOrder(entities.OrderPreparing), nil)
		deps.orders.EXPECT().UpdateOrder(mock.Anything, mock.MatchedBy(func(o entities.Order) bool {
			return o.DeliveryNotes == "ring twice" && o.Status == entities.OrderPreparing
		})).Return(nil)

		notes := "ring twice"
		order, err := svc.Transition(context.Background(), operator, orderID, service.TransitionRequest{
			Next: entities.OrderPreparing, Version: 3, DeliveryNotes: &notes,
		})

		require.NoError(t, err)
		assert.Equal(t, "ring twice", order.DeliveryNotes)
		assert.Equal(t, int64(4), order.Version)
	})

	t.Run("ordinary advance publishes an update", func(t *testing.T) {
		svc, deps := newOrderService(t, noon)
		deps.orders.EXPECT().GetOrderByID(mock.Anything, orderID).Return(baseOrder(entities.OrderPending), nil)
		deps.orders.EXPECT().UpdateOrder(mock.Anything, mock.Anything).Return(nil)
		deps.publisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.MatchedBy(func(e entities.Event) bool {
			return e.Type == entities.EventOrderUpdated
		})).Return(nil)

		order, err := svc.Transition(context.Background(), operator, orderID, service.TransitionRequest{
			Next: entities.OrderConfirmed, Version: 3,
		})

		require.NoError(t, err)
		assert.Equal(t, entities.OrderConfirmed, order.Status)
		assert.Equal(t, int64(4), order.Version)
	})

	t.Run("delivered closes the trip and confirms cash", func(t *testing.T) {
		svc, deps := newOrderService(t, noon)
		order := baseOrder(entities.OrderOutForDelivery)
		order.PaymentMethod = entities.PaymentCash
		order.PaymentStatus = entities.PaymentPending

		deps.orders.EXPECT().GetOrderByID(mock.Anything, orderID).Return(order, nil)
		deps.orders.EXPECT().UpdateOrder(mock.Anything, mock.MatchedBy(func(o entities.Order) bool {
			return o.Status == entities.OrderDelivered && o.ActualDeliveryAt != nil
		})).Return(nil)
		deps.telemetry.EXPECT().AddStatusChange(mock.Anything, orderID, entities.TripClosed, mock.Anything, noon).Return(nil)
		deps.telemetry.EXPECT().CloseForOrder(mock.Anything, orderID, noon).Return(nil)
		deps.payments.EXPECT().ConfirmCashOnDelivery(mock.Anything, orderID).Return(nil)
		deps.publisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).Return(nil)

		got, err := svc.Transition(context.Background(), operator, orderID, service.TransitionRequest{
			Next: entities.OrderDelivered, Version: 3,
		})

		require.NoError(t, err)
		assert.Equal(t, entities.OrderDelivered, got.Status)
		require.NotNil(t, got.ActualDeliveryAt)
		assert.Equal(t, noon, *got.ActualDeliveryAt)
	})

	t.Run("card payment is not confirmed on delivery", func(t *testing.T) {
		svc, deps := newOrderService(t, noon)
		order := baseOrder(entities.OrderOutForDelivery)
		order.PaymentMethod = entities.PaymentCard
		order.PaymentStatus = entities.PaymentPaid

		deps.orders.EXPECT().GetOrderByID(mock.Anything, orderID).Return(order, nil)
		deps.orders.EXPECT().UpdateOrder(mock.Anything, mock.Anything).Return(nil)
		deps.telemetry.EXPECT().AddStatusChange(mock.Anything, orderID, entities.TripClosed, mock.Anything, noon).Return(nil)
		deps.telemetry.EXPECT().CloseForOrder(mock.Anything, orderID, noon).Return(nil)
		deps.publisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).Return(nil)

		_, err := svc.Transition(context.Background(), operator, orderID, service.TransitionRequest{
			Next: entities.OrderDelivered, Version: 3,
		})
		require.NoError(t, err)
	})

	t.Run("cancellation marks the trip failed", func(t *testing.T) {
		svc, deps := newOrderService(t, noon)
		deps.orders.EXPECT().GetOrderByID(mock.Anything, orderID).Return(baseOrder(entities.OrderReady), nil)
		deps.orders.EXPECT().UpdateOrder(mock.Anything, mock.Anything).Return(nil)
		deps.telemetry.EXPECT().AddStatusChange(mock.Anything, orderID, entities.TripFailed, mock.Anything, noon).Return(nil)
		deps.publisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).Return(nil)

		got, err := svc.Transition(context.Background(), operator, orderID, service.TransitionRequest{
			Next: entities.OrderCancelled, Version: 3,
		})

		require.NoError(t, err)
		assert.Equal(t, entities.OrderCancelled, got.Status)
	})

	t.Run("manual assignment binds the courier with the status", func(t *testing.T) {
		svc, deps := newOrderService(t, noon)
		courier := activeCourier(uuid.New(), 40.7150, -74.0080)

		order := baseOrder(entities.OrderReady)
		order.CourierID = nil
		order.CustomerGeo = &entities.GeoPoint{Latitude: 40.7128, Longitude: -74.0060}

		deps.orders.EXPECT().GetOrderByID(mock.Anything, orderID).Return(order, nil)
		deps.couriers.EXPECT().GetCourierByID(mock.Anything, courier.ID).Return(courier, nil)
		deps.trips.EXPECT().CreateTrip(mock.Anything, mock.MatchedBy(func(tr entities.DeliveryTrip) bool {
			return tr.OrderID == orderID && tr.CourierID == courier.ID
		})).Return(nil)
		deps.orders.EXPECT().UpdateOrder(mock.Anything, mock.MatchedBy(func(o entities.Order) bool {
			return o.Status == entities.OrderOutForDelivery && o.CourierID != nil && *o.CourierID == courier.ID
		})).Return(nil)

		var published []entities.EventType
		deps.publisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				published = append(published, args.Get(2).(entities.Event).Type)
			}).Return(nil)

		got, err := svc.Transition(context.Background(), operator, orderID, service.TransitionRequest{
			Next: entities.OrderOutForDelivery, Version: 3, CourierID: &courier.ID,
		})

		require.NoError(t, err)
		require.NotNil(t, got.CourierID)
		assert.Equal(t, courier.ID, *got.CourierID)
		require.NotNil(t, got.AssignedAt)
		require.NotNil(t, got.EstimatedDeliveryAt)
		assert.True(t, got.EstimatedDeliveryAt.After(noon))
		assert.Contains(t, published, entities.EventDeliveryAssigned)
	})

	t.Run("manual assignment honors the forecast override", func(t *testing.T) {
		svc, deps := newOrderService(t, noon)
		courier := activeCourier(uuid.New(), 40.7150, -74.0080)
		eta := noon.Add(45 * time.Minute)

		order := baseOrder(entities.OrderReady)
		order.CourierID = nil

		deps.orders.EXPECT().GetOrderByID(mock.Anything, orderID).Return(order, nil)
		deps.couriers.EXPECT().GetCourierByID(mock.Anything, courier.ID).Return(courier, nil)
		deps.trips.EXPECT().CreateTrip(mock.Anything, mock.Anything).Return(nil)
		deps.orders.EXPECT().UpdateOrder(mock.Anything, mock.Anything).Return(nil)
		deps.publisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).Return(nil)

		got, err := svc.Transition(context.Background(), operator, orderID, service.TransitionRequest{
			Next: entities.OrderOutForDelivery, Version: 3, CourierID: &courier.ID, EstimatedDeliveryAt: &eta,
		})

		require.NoError(t, err)
		require.NotNil(t, got.EstimatedDeliveryAt)
		assert.Equal(t, eta, *got.EstimatedDeliveryAt)
	})

	t.Run("ineligible couriers cannot be assigned", func(t *testing.T) {
		offDuty := activeCourier(uuid.New(), 40.7150, -74.0080)
		offDuty.Available = false
		applicant := activeCourier(uuid.New(), 40.7150, -74.0080)
		applicant.Status = entities.ApplicationPending

		testCases := []struct {
			name    string
			courier entities.Courier
			loadErr error
		}{
			{name: "unknown courier", loadErr: entities.ErrCourierNotFound},
			{name: "off duty", courier: offDuty},
			{name: "pending application", courier: applicant},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				svc, deps := newOrderService(t, noon)

				order := baseOrder(entities.OrderReady)
				order.CourierID = nil

				candidateID := tc.courier.ID
				if candidateID == uuid.Nil {
					candidateID = uuid.New()
				}

				deps.orders.EXPECT().GetOrderByID(mock.Anything, orderID).Return(order, nil)
				deps.couriers.EXPECT().GetCourierByID(mock.Anything, candidateID).Return(tc.courier, tc.loadErr)

				_, err := svc.Transition(context.Background(), operator, orderID, service.TransitionRequest{
					Next: entities.OrderOutForDelivery, Version: 3, CourierID: &candidateID,
				})
				assert.ErrorIs(t, err, entities.ErrInvalidCourier)
			})
		}
	})

	t.Run("an assigned order cannot be handed to another courier", func(t *testing.T) {
		svc, deps := newOrderService(t, noon)
		deps.orders.EXPECT().GetOrderByID(mock.Anything, orderID).Return(baseOrder(entities.OrderReady), nil)

		other := uuid.New()
		_, err := svc.Transition(context.Background(), operator, orderID, service.TransitionRequest{
			Next: entities.OrderOutForDelivery, Version: 3, CourierID: &other,
		})
		assert.ErrorIs(t, err, entities.ErrInvalidCourier)
	})

	t.Run("transition drops the cached tracking snapshot", func(t *testing.T) {
		svc, deps := newOrderService(t, noon)
		deps.snapshots.Set(orderID.String(), service.Snapshot{OrderID: orderID})

		deps.orders.EXPECT().GetOrderByID(mock.Anything, orderID).Return(baseOrder(entities.OrderPending), nil)
		deps.orders.EXPECT().UpdateOrder(mock.Anything, mock.Anything).Return(nil)
		deps.publisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).Return(nil)

		_, err := svc.Transition(context.Background(), operator, orderID, service.TransitionRequest{
			Next: entities.OrderConfirmed, Version: 3,
		})

		require.NoError(t, err)
		_, ok := deps.snapshots.Get(orderID.String())
		assert.False(t, ok)
	})

	t.Run("courier may only advance their own delivery", func(t *testing.T) {
		svc, deps := newOrderService(t, noon)

		stranger := service.Actor{ID: uuid.New(), Role: service.RoleCourier}
		deps.orders.EXPECT().GetOrderByID(mock.Anything, orderID).Return(baseOrder(entities.OrderReady), nil)

		_, err := svc.Transition(context.Background(), stranger, orderID, service.TransitionRequest{
			Next: entities.OrderOutForDelivery, Version: 3,
		})
		assert.ErrorIs(t, err, entities.ErrForbidden)
	})

	t.Run("customer cannot advance the kitchen flow", func(t *testing.T) {
		svc, deps := newOrderService(t, noon)

		customer := service.Actor{ID: customerID, Role: service.RoleCustomer}
		deps.orders.EXPECT().GetOrderByID(mock.Anything, orderID).Return(baseOrder(entities.OrderPending), nil)

		_, err := svc.Transition(context.Background(), customer, orderID, service.TransitionRequest{
			Next: entities.OrderConfirmed, Version: 3,
		})
		assert.ErrorIs(t, err, entities.ErrForbidden)
	})

	t.Run("customer can cancel their own order", func(t *testing.T) {
		svc, deps := newOrderService(t, noon)

		customer := service.Actor{ID: customerID, Role: service.RoleCustomer}
		deps.orders.EXPECT().GetOrderByID(mock.Anything, orderID).Return(baseOrder(entities.OrderPending), nil)
		deps.orders.EXPECT().UpdateOrder(mock.Anything, mock.Anything).Return(nil)
		deps.telemetry.EXPECT().AddStatusChange(mock.Anything, orderID, entities.TripFailed, mock.Anything, noon).
			Return(entities.ErrTripNotFound)
		deps.publisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).Return(nil)

		got, err := svc.Transition(context.Background(), customer, orderID, service.TransitionRequest{
			Next: entities.OrderCancelled, Version: 3,
		})

		require.NoError(t, err)
		assert.Equal(t, entities.OrderCancelled, got.Status)
	})
}

func TestOrderService_Rate(t *testing.T) {
	noon := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	orderID := uuid.New()
	customerID := uuid.New()
	customer := service.Actor{ID: customerID, Role: service.RoleCustomer}

	t.Run("rates a delivered order", func(t *testing.T) {
		svc, deps := newOrderService(t, noon)
		deps.orders.EXPECT().GetOrderByID(mock.Anything, orderID).Return(entities.Order{
			ID: orderID, CustomerID: customerID, Status: entities.OrderDelivered,
		}, nil)
		deps.orders.EXPECT().UpdateRatings(mock.Anything, orderID, 5, 4).Return(nil)

		order, err := svc.Rate(context.Background(), customer, orderID, 5, 4)

		require.NoError(t, err)
		assert.Equal(t, 5, order.CourierRating)
		assert.Equal(t, 4, order.FoodRating)
	})

	t.Run("undelivered orders cannot be rated", func(t *testing.T) {
		svc, deps := newOrderService(t, noon)
		deps.orders.EXPECT().GetOrderByID(mock.Anything, orderID).Return(entities.Order{
			ID: orderID, CustomerID: customerID, Status: entities.OrderOutForDelivery,
		}, nil)

		_, err := svc.Rate(context.Background(), customer, orderID, 5, 4)
		assert.ErrorIs(t, err, entities.ErrInvalidTransition)
	})

	t.Run("someone else's order is forbidden", func(t *testing.T) {
		svc, deps := newOrderService(t, noon)
		deps.orders.EXPECT().GetOrderByID(mock.Anything, orderID).Return(entities.Order{
			ID: orderID, CustomerID: uuid.New(), Status: entities.OrderDelivered,
		}, nil)

		_, err := svc.Rate(context.Background(), customer, orderID, 5, 4)
		assert.ErrorIs(t, err, entities.ErrForbidden)
	})

	t.Run("couriers cannot rate deliveries", func(t *testing.T) {
		svc, deps := newOrderService(t, noon)
		courierID := uuid.New()
		deps.orders.EXPECT().GetOrderByID(mock.Anything, orderID).Return(entities.Order{
			ID: orderID, CustomerID: customerID, CourierID: &courierID, Status: entities.OrderDelivered,
		}, nil)

		courier := service.Actor{ID: courierID, Role: service.RoleCourier}
		_, err := svc.Rate(context.Background(), courier, orderID, 5, 4)
		assert.ErrorIs(t, err, entities.ErrForbidden)
	})
}
