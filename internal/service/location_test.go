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
	"github.com/veloraeats/dispatch-service/pkg/trm/trmtest"
)

type ingestorDeps struct {
	pings     *mocks.MockPingRepo
	couriers  *mocks.MockCourierRepo
	orders    *mocks.MockOrderRepo
	trips     *mocks.MockTripRepo
	publisher *mocks.MockEventPublisher
}

func newIngestor(t *testing.T, now time.Time) (*service.Ingestor, ingestorDeps) {
	deps := ingestorDeps{
		pings:     mocks.NewMockPingRepo(t),
		couriers:  mocks.NewMockCourierRepo(t),
		orders:    mocks.NewMockOrderRepo(t),
		trips:     mocks.NewMockTripRepo(t),
		publisher: mocks.NewMockEventPublisher(t),
	}

	clock := func() time.Time { return now }
	speed := service.NewSpeedModel(dispatchConfig(), service.NoopAdjuster{}).WithClock(clock)
	eta := service.NewETACalculator(deps.couriers, speed).WithClock(clock)

	ingestor := service.NewIngestor(
		testLogger(), trmtest.Manager{}, deps.pings, deps.couriers, deps.orders, deps.trips, eta, deps.publisher, 100,
	)
	return ingestor, deps
}

func TestIngestor_Ingest(t *testing.T) {
	noon := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	courierID := uuid.New()
	customerID := uuid.New()
	orderID := uuid.New()
	tripID := uuid.New()

	validPing := entities.LocationPing{
		CourierID: courierID,
		Latitude:  40.7128,
		Longitude: -74.0060,
		Accuracy:  15,
		Speed:     6.5,
		Heading:   120,
		CreatedAt: noon,
	}

	openTrip := entities.DeliveryTrip{
		ID:         tripID,
		OrderID:    orderID,
		CourierID:  courierID,
		CustomerID: customerID,
		Status:     entities.TripOpen,
	}

	t.Run("rejects coordinates off the globe", func(t *testing.T) {
		ingestor, _ := newIngestor(t, noon)

		ping := validPing
		ping.Latitude = 91.5

		err := ingestor.Ingest(context.Background(), ping)
		assert.ErrorIs(t, err, entities.ErrOutOfRange)
	})

	t.Run("rejects imprecise fixes", func(t *testing.T) {
		ingestor, _ := newIngestor(t, noon)

		ping := validPing
		ping.Accuracy = 500

		err := ingestor.Ingest(context.Background(), ping)
		assert.ErrorIs(t, err, entities.ErrPoorAccuracy)
	})

	t.Run("accepted ping extends the trip and notifies subscribers", func(t *testing.T) {
		ingestor, deps := newIngestor(t, noon)

		courierGeo := &entities.GeoPoint{Latitude: 40.7128, Longitude: -74.0060}
		customerGeo := &entities.GeoPoint{Latitude: 40.7328, Longitude: -74.0060}

		deps.pings.EXPECT().AppendPing(mock.Anything, mock.MatchedBy(func(p entities.LocationPing) bool {
			return p.ID != uuid.Nil && p.Active && p.CourierID == courierID
		})).Return(nil)
		deps.couriers.EXPECT().UpdateLocation(mock.Anything, courierID, validPing.Point()).Return(nil)
		deps.trips.EXPECT().GetOpenTripByCourier(mock.Anything, courierID).Return(openTrip, nil)
		deps.trips.EXPECT().AppendRoutePoint(mock.Anything, tripID, mock.MatchedBy(func(p entities.RoutePoint) bool {
			return p.Latitude == validPing.Latitude && p.Speed == validPing.Speed
		})).Return(nil)

		deps.orders.EXPECT().GetOrderByID(mock.Anything, orderID).Return(entities.Order{
			ID:          orderID,
			CourierID:   &courierID,
			Status:      entities.OrderOutForDelivery,
			CustomerGeo: customerGeo,
		}, nil)
		deps.couriers.EXPECT().GetCourierByID(mock.Anything, courierID).Return(entities.Courier{
			ID:       courierID,
			Vehicle:  entities.VehicleCar,
			Location: courierGeo,
		}, nil)

		var types []entities.EventType
		var rooms []string
		deps.publisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				rooms = append(rooms, args.String(1))
				types = append(types, args.Get(2).(entities.Event).Type)
			}).Return(nil)

		err := ingestor.Ingest(context.Background(), validPing)

		require.NoError(t, err)
		assert.Equal(t, []entities.EventType{
			entities.EventLocationUpdate, entities.EventLocationUpdate,
			entities.EventETAUpdate, entities.EventETAUpdate,
		}, types)
		assert.Equal(t, []string{
			entities.RoomCustomer(customerID), entities.RoomOperators,
			entities.RoomCustomer(customerID), entities.RoomOperators,
		}, rooms)
	})

	t.Run("no open trip means store only", func(t *testing.T) {
		ingestor, deps := newIngestor(t, noon)

		deps.pings.EXPECT().AppendPing(mock.Anything, mock.Anything).Return(nil)
		deps.couriers.EXPECT().UpdateLocation(mock.Anything, courierID, validPing.Point()).Return(nil)
		deps.trips.EXPECT().GetOpenTripByCourier(mock.Anything, courierID).
			Return(entities.DeliveryTrip{}, entities.ErrTripNotFound)

		err := ingestor.Ingest(context.Background(), validPing)
		require.NoError(t, err)
	})

	t.Run("unassigned order skips the eta push", func(t *testing.T) {
		ingestor, deps := newIngestor(t, noon)

		deps.pings.EXPECT().AppendPing(mock.Anything, mock.Anything).Return(nil)
		deps.couriers.EXPECT().UpdateLocation(mock.Anything, courierID, validPing.Point()).Return(nil)
		deps.trips.EXPECT().GetOpenTripByCourier(mock.Anything, courierID).Return(openTrip, nil)
		deps.trips.EXPECT().AppendRoutePoint(mock.Anything, tripID, mock.Anything).Return(nil)
		deps.orders.EXPECT().GetOrderByID(mock.Anything, orderID).Return(entities.Order{
			ID: orderID, Status: entities.OrderOutForDelivery,
		}, nil)

		var types []entities.EventType
		deps.publisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				types = append(types, args.Get(2).(entities.Event).Type)
			}).Return(nil)

		err := ingestor.Ingest(context.Background(), validPing)

		require.NoError(t, err)
		assert.Equal(t, []entities.EventType{entities.EventLocationUpdate, entities.EventLocationUpdate}, types)
	})
}
