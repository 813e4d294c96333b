package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/veloraeats/dispatch-service/internal/entities"
	"github.com/veloraeats/dispatch-service/internal/service"
	"github.com/veloraeats/dispatch-service/internal/service/mocks"
)

func newCalculator(couriers *mocks.MockCourierRepo, now time.Time) *service.ETACalculator {
	speed := service.NewSpeedModel(dispatchConfig(), service.NoopAdjuster{}).
		WithClock(func() time.Time { return now })
	return service.NewETACalculator(couriers, speed).
		WithClock(func() time.Time { return now })
}

func TestETACalculator_Recompute(t *testing.T) {
	noon := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	courierID := uuid.New()
	customerGeo := &entities.GeoPoint{Latitude: 40.7128, Longitude: -74.0060}

	t.Run("forecast for an assigned order", func(t *testing.T) {
		couriers := mocks.NewMockCourierRepo(t)
		// ~10km away, car midday
		couriers.EXPECT().GetCourierByID(mock.Anything, courierID).
			Return(activeCourier(courierID, 40.6228, -74.0060), nil)

		calc := newCalculator(couriers, noon)
		estimate, err := calc.Recompute(context.Background(), entities.Order{
			ID:          uuid.New(),
			CourierID:   &courierID,
			CustomerGeo: customerGeo,
			Status:      entities.OrderOutForDelivery,
		})

		require.NoError(t, err)
		assert.InDelta(t, 10_000, estimate.DistanceMeters, 100)
		// 24 min travel * 1.1, no prep buffer out for delivery
		assert.InDelta(t, 26, estimate.RemainingMinutes, 1)
		assert.WithinDuration(t, noon.Add(26*time.Minute), estimate.EstimatedArrival, time.Minute)
	})

	t.Run("prep buffer shrinks with progress", func(t *testing.T) {
		order := entities.Order{
			ID:          uuid.New(),
			CourierID:   &courierID,
			CustomerGeo: customerGeo,
		}

		buffers := map[entities.OrderStatus]float64{
			entities.OrderPending:        15,
			entities.OrderConfirmed:      15,
			entities.OrderPreparing:      10,
			entities.OrderReady:          5,
			entities.OrderOutForDelivery: 0,
		}

		for status, buffer := range buffers {
			couriers := mocks.NewMockCourierRepo(t)
			couriers.EXPECT().GetCourierByID(mock.Anything, courierID).
				Return(activeCourier(courierID, 40.6228, -74.0060), nil)

			order.Status = status
			estimate, err := newCalculator(couriers, noon).Recompute(context.Background(), order)

			require.NoError(t, err)
			assert.InDelta(t, 26+buffer, estimate.RemainingMinutes, 1.5, "status %s", status)
		}
	})

	t.Run("repeated calls are identical", func(t *testing.T) {
		couriers := mocks.NewMockCourierRepo(t)
		couriers.EXPECT().GetCourierByID(mock.Anything, courierID).
			Return(activeCourier(courierID, 40.6228, -74.0060), nil)

		calc := newCalculator(couriers, noon)
		order := entities.Order{ID: uuid.New(), CourierID: &courierID, CustomerGeo: customerGeo}

		first, err := calc.Recompute(context.Background(), order)
		require.NoError(t, err)
		second, err := calc.Recompute(context.Background(), order)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("unassigned order has no forecast", func(t *testing.T) {
		couriers := mocks.NewMockCourierRepo(t)

		_, err := newCalculator(couriers, noon).Recompute(context.Background(), entities.Order{
			ID:          uuid.New(),
			CustomerGeo: customerGeo,
		})
		assert.ErrorIs(t, err, entities.ErrUnavailable)
	})

	t.Run("courier without a position has no forecast", func(t *testing.T) {
		couriers := mocks.NewMockCourierRepo(t)
		couriers.EXPECT().GetCourierByID(mock.Anything, courierID).
			Return(entities.Courier{ID: courierID, Status: entities.ApplicationActive}, nil)

		_, err := newCalculator(couriers, noon).Recompute(context.Background(), entities.Order{
			ID:          uuid.New(),
			CourierID:   &courierID,
			CustomerGeo: customerGeo,
		})
		assert.ErrorIs(t, err, entities.ErrUnavailable)
	})
}
