package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/veloraeats/dispatch-service/internal/entities"
	"github.com/veloraeats/dispatch-service/internal/handler"
	"github.com/veloraeats/dispatch-service/internal/handler/mocks"
	"github.com/veloraeats/dispatch-service/internal/service"
)

type handlerDeps struct {
	orders    *mocks.MockOrderService
	tracking  *mocks.MockTrackingService
	locations *mocks.MockLocationIngestor
	couriers  *mocks.MockCourierService
	telemetry *mocks.MockTelemetryService
}

func newTestServer(t *testing.T) (*httptest.Server, handlerDeps) {
	deps := handlerDeps{
		orders:    mocks.NewMockOrderService(t),
		tracking:  mocks.NewMockTrackingService(t),
		locations: mocks.NewMockLocationIngestor(t),
		couriers:  mocks.NewMockCourierService(t),
		telemetry: mocks.NewMockTelemetryService(t),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handler.NewHTTPHandler(logger, deps.orders, deps.tracking, deps.locations, deps.couriers, deps.telemetry)

	router := chi.NewRouter()
	h.Init(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, deps
}

func doJSON(t *testing.T, method, url string, body any, headers map[string]string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHTTPHandler_CreateOrder(t *testing.T) {
	customerID := uuid.New()
	validBody := map[string]any{
		"customer_id": customerID,
		"items": []map[string]any{
			{"food_id": uuid.New(), "name": "Pad Thai", "quantity": 2, "unit_price": 11.5},
		},
		"delivery_address": "1 Main St",
		"customer_geo":     map[string]any{"latitude": 40.7128, "longitude": -74.0060},
		"payment_method":   "card",
	}

	t.Run("201 with the created order", func(t *testing.T) {
		srv, deps := newTestServer(t)

		orderID := uuid.New()
		deps.orders.EXPECT().CreateOrder(mock.Anything, mock.MatchedBy(func(o entities.Order) bool {
			return o.CustomerID == customerID && o.Total == 23.0
		})).Return(entities.Order{
			ID: orderID, CustomerID: customerID, Status: entities.OrderPending, Version: 1,
		}, nil)

		resp := doJSON(t, http.MethodPost, srv.URL+"/orders", validBody, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var got map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, orderID.String(), got["id"])
		assert.Equal(t, "pending", got["status"])
	})

	t.Run("400 on malformed json", func(t *testing.T) {
		srv, _ := newTestServer(t)

		req, err := http.NewRequest(http.MethodPost, srv.URL+"/orders", bytes.NewBufferString("{"))
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("400 on empty items", func(t *testing.T) {
		srv, _ := newTestServer(t)

		body := map[string]any{
			"customer_id":      customerID,
			"items":            []map[string]any{},
			"delivery_address": "1 Main St",
			"customer_geo":     map[string]any{"latitude": 40.7128, "longitude": -74.0060},
			"payment_method":   "card",
		}
		resp := doJSON(t, http.MethodPost, srv.URL+"/orders", body, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("400 without a delivery location", func(t *testing.T) {
		srv, _ := newTestServer(t)

		body := map[string]any{}
		for k, v := range validBody {
			body[k] = v
		}
		delete(body, "customer_geo")

		resp := doJSON(t, http.MethodPost, srv.URL+"/orders", body, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("400 on a zero-priced item", func(t *testing.T) {
		srv, _ := newTestServer(t)

		body := map[string]any{}
		for k, v := range validBody {
			body[k] = v
		}
		body["items"] = []map[string]any{
			{"food_id": uuid.New(), "name": "Water", "quantity": 1, "unit_price": 0},
		}

		resp := doJSON(t, http.MethodPost, srv.URL+"/orders", body, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestHTTPHandler_TransitionOrder(t *testing.T) {
	orderID := uuid.New()
	actorID := uuid.New()
	headers := map[string]string{
		"X-Actor-Role": service.RoleOperator,
		"X-Actor-ID":   actorID.String(),
	}

	t.Run("200 on applied transition", func(t *testing.T) {
		srv, deps := newTestServer(t)

		deps.orders.EXPECT().Transition(mock.Anything,
			service.Actor{ID: actorID, Role: service.RoleOperator},
			orderID,
			service.TransitionRequest{Next: entities.OrderConfirmed, Version: 1},
		).Return(entities.Order{ID: orderID, Status: entities.OrderConfirmed, Version: 2}, nil)

		resp := doJSON(t, http.MethodPut, srv.URL+"/orders/"+orderID.String()+"/status",
			map[string]any{"status": "confirmed", "version": 1}, headers)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "confirmed", got["status"])
		assert.EqualValues(t, 2, got["version"])
	})

	t.Run("200 with manual courier assignment", func(t *testing.T) {
		srv, deps := newTestServer(t)
		courierID := uuid.New()

		deps.orders.EXPECT().Transition(mock.Anything,
			service.Actor{ID: actorID, Role: service.RoleOperator},
			orderID,
			mock.MatchedBy(func(req service.TransitionRequest) bool {
				return req.Next == entities.OrderOutForDelivery &&
					req.CourierID != nil && *req.CourierID == courierID
			}),
		).Return(entities.Order{
			ID: orderID, CourierID: &courierID, Status: entities.OrderOutForDelivery, Version: 2,
		}, nil)

		resp := doJSON(t, http.MethodPut, srv.URL+"/orders/"+orderID.String()+"/status",
			map[string]any{"status": "out_for_delivery", "version": 1, "courier_id": courierID}, headers)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, courierID.String(), got["courier_id"])
	})

	t.Run("400 on unknown status", func(t *testing.T) {
		srv, _ := newTestServer(t)

		resp := doJSON(t, http.MethodPut, srv.URL+"/orders/"+orderID.String()+"/status",
			map[string]any{"status": "teleported", "version": 1}, headers)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("400 on invalid order id", func(t *testing.T) {
		srv, _ := newTestServer(t)

		resp := doJSON(t, http.MethodPut, srv.URL+"/orders/not-a-uuid/status",
			map[string]any{"status": "confirmed", "version": 1}, headers)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	domainErrors := []struct {
		name string
		err  error
		code int
	}{
		{"404 when the order is missing", entities.ErrOrderNotFound, http.StatusNotFound},
		{"409 on a stale version", entities.ErrConflict, http.StatusConflict},
		{"403 when the actor may not act", entities.ErrForbidden, http.StatusForbidden},
		{"422 on a forbidden transition", entities.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{"422 when nothing changes", entities.ErrNoOp, http.StatusUnprocessableEntity},
		{"422 on an ineligible courier", entities.ErrInvalidCourier, http.StatusUnprocessableEntity},
	}
	for _, tc := range domainErrors {
		t.Run(tc.name, func(t *testing.T) {
			srv, deps := newTestServer(t)

			deps.orders.EXPECT().Transition(mock.Anything, mock.Anything, orderID, mock.Anything).
				Return(entities.Order{}, fmt.Errorf("transition: %w", tc.err))

			resp := doJSON(t, http.MethodPut, srv.URL+"/orders/"+orderID.String()+"/status",
				map[string]any{"status": "confirmed", "version": 1}, headers)
			assert.Equal(t, tc.code, resp.StatusCode)
		})
	}

	t.Run("complete shortcut requests delivered", func(t *testing.T) {
		srv, deps := newTestServer(t)

		deps.orders.EXPECT().Transition(mock.Anything, mock.Anything, orderID,
			service.TransitionRequest{Next: entities.OrderDelivered, Version: 4},
		).Return(entities.Order{ID: orderID, Status: entities.OrderDelivered, Version: 5}, nil)

		resp := doJSON(t, http.MethodPost, srv.URL+"/orders/"+orderID.String()+"/complete",
			map[string]any{"version": 4}, headers)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("cancel shortcut requests cancelled", func(t *testing.T) {
		srv, deps := newTestServer(t)

		deps.orders.EXPECT().Transition(mock.Anything, mock.Anything, orderID,
			service.TransitionRequest{Next: entities.OrderCancelled, Version: 4},
		).Return(entities.Order{ID: orderID, Status: entities.OrderCancelled, Version: 5}, nil)

		resp := doJSON(t, http.MethodPost, srv.URL+"/orders/"+orderID.String()+"/cancel",
			map[string]any{"version": 4}, headers)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestHTTPHandler_RateOrder(t *testing.T) {
	orderID := uuid.New()
	customerID := uuid.New()
	headers := map[string]string{
		"X-Actor-Role": service.RoleCustomer,
		"X-Actor-ID":   customerID.String(),
	}

	t.Run("200 on accepted rating", func(t *testing.T) {
		srv, deps := newTestServer(t)

		deps.orders.EXPECT().Rate(mock.Anything,
			service.Actor{ID: customerID, Role: service.RoleCustomer}, orderID, 5, 4,
		).Return(entities.Order{ID: orderID, Status: entities.OrderDelivered, CourierRating: 5, FoodRating: 4}, nil)

		resp := doJSON(t, http.MethodPut, srv.URL+"/orders/"+orderID.String()+"/rating",
			map[string]any{"courier_rating": 5, "food_rating": 4}, headers)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("400 on out of scale rating", func(t *testing.T) {
		srv, _ := newTestServer(t)

		resp := doJSON(t, http.MethodPut, srv.URL+"/orders/"+orderID.String()+"/rating",
			map[string]any{"courier_rating": 9, "food_rating": 4}, headers)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestHTTPHandler_Tracking(t *testing.T) {
	orderID := uuid.New()

	t.Run("200 with the snapshot", func(t *testing.T) {
		srv, deps := newTestServer(t)

		deps.tracking.EXPECT().Track(mock.Anything, orderID).Return(service.Snapshot{
			OrderID: orderID,
			Status:  entities.OrderOutForDelivery,
		}, nil)

		resp := doJSON(t, http.MethodGet, srv.URL+"/orders/"+orderID.String()+"/tracking", nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, orderID.String(), got["order_id"])
		assert.Equal(t, "out_for_delivery", got["status"])
	})

	t.Run("404 for an unknown order", func(t *testing.T) {
		srv, deps := newTestServer(t)

		deps.tracking.EXPECT().Track(mock.Anything, orderID).
			Return(service.Snapshot{}, entities.ErrOrderNotFound)

		resp := doJSON(t, http.MethodGet, srv.URL+"/orders/"+orderID.String()+"/tracking", nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("404 when no eta can be computed", func(t *testing.T) {
		srv, deps := newTestServer(t)

		deps.tracking.EXPECT().ETA(mock.Anything, orderID).Return(nil, entities.ErrUnavailable)

		resp := doJSON(t, http.MethodGet, srv.URL+"/orders/"+orderID.String()+"/eta", nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("200 with the estimate", func(t *testing.T) {
		srv, deps := newTestServer(t)

		deps.tracking.EXPECT().ETA(mock.Anything, orderID).Return(&service.Estimate{
			DistanceMeters:   1200,
			RemainingMinutes: 7,
		}, nil)

		resp := doJSON(t, http.MethodGet, srv.URL+"/orders/"+orderID.String()+"/eta", nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.EqualValues(t, 1200, got["distance_meters"])
	})
}

func TestHTTPHandler_ReportLocation(t *testing.T) {
	courierID := uuid.New()

	t.Run("202 on accepted ping", func(t *testing.T) {
		srv, deps := newTestServer(t)

		deps.locations.EXPECT().Ingest(mock.Anything, mock.MatchedBy(func(p entities.LocationPing) bool {
			return p.CourierID == courierID && p.Latitude == 40.7128
		})).Return(nil)

		resp := doJSON(t, http.MethodPost, srv.URL+"/couriers/"+courierID.String()+"/location",
			map[string]any{"latitude": 40.7128, "longitude": -74.0060, "accuracy": 10, "speed": 4, "heading": 90}, nil)
		assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	})

	t.Run("422 on rejected ping", func(t *testing.T) {
		srv, deps := newTestServer(t)

		deps.locations.EXPECT().Ingest(mock.Anything, mock.Anything).
			Return(fmt.Errorf("ingest: %w", entities.ErrPoorAccuracy))

		resp := doJSON(t, http.MethodPost, srv.URL+"/couriers/"+courierID.String()+"/location",
			map[string]any{"latitude": 40.7128, "longitude": -74.0060, "accuracy": 500, "speed": 4, "heading": 90}, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestHTTPHandler_Couriers(t *testing.T) {
	courierID := uuid.New()

	t.Run("204 on availability change", func(t *testing.T) {
		srv, deps := newTestServer(t)

		deps.couriers.EXPECT().SetAvailability(mock.Anything, courierID, true).Return(nil)

		resp := doJSON(t, http.MethodPut, srv.URL+"/couriers/"+courierID.String()+"/availability",
			map[string]any{"available": true}, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("409 while a delivery is in flight", func(t *testing.T) {
		srv, deps := newTestServer(t)

		deps.couriers.EXPECT().SetAvailability(mock.Anything, courierID, false).
			Return(entities.ErrActiveDelivery)

		resp := doJSON(t, http.MethodPut, srv.URL+"/couriers/"+courierID.String()+"/availability",
			map[string]any{"available": false}, nil)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("400 when the flag is missing", func(t *testing.T) {
		srv, _ := newTestServer(t)

		resp := doJSON(t, http.MethodPut, srv.URL+"/couriers/"+courierID.String()+"/availability",
			map[string]any{}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("204 on application review", func(t *testing.T) {
		srv, deps := newTestServer(t)

		deps.couriers.EXPECT().ReviewApplication(mock.Anything, courierID, true).Return(nil)

		resp := doJSON(t, http.MethodPut, srv.URL+"/couriers/"+courierID.String()+"/application",
			map[string]any{"approve": true}, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("422 on an already resolved application", func(t *testing.T) {
		srv, deps := newTestServer(t)

		deps.couriers.EXPECT().ReviewApplication(mock.Anything, courierID, false).
			Return(fmt.Errorf("review: %w", entities.ErrInvalidCourier))

		resp := doJSON(t, http.MethodPut, srv.URL+"/couriers/"+courierID.String()+"/application",
			map[string]any{"approve": false}, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestHTTPHandler_GetTrip(t *testing.T) {
	orderID := uuid.New()

	t.Run("200 with the trip record", func(t *testing.T) {
		srv, deps := newTestServer(t)

		deps.telemetry.EXPECT().TripDetail(mock.Anything, orderID).Return(entities.DeliveryTrip{
			ID:      uuid.New(),
			OrderID: orderID,
			Status:  entities.TripClosed,
			StatusHistory: []entities.TripStatusChange{
				{Status: entities.TripOpen},
				{Status: entities.TripClosed, Note: "order delivered"},
			},
			Metrics: entities.TripMetrics{DistanceMeters: 3120, AvgSpeedKmh: 18.7},
		}, nil)

		resp := doJSON(t, http.MethodGet, srv.URL+"/orders/"+orderID.String()+"/trip", nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "closed", got["status"])
		assert.Len(t, got["status_history"], 2)
		assert.EqualValues(t, 3120, got["distance_meters"])
	})

	t.Run("404 before a courier is assigned", func(t *testing.T) {
		srv, deps := newTestServer(t)

		deps.telemetry.EXPECT().TripDetail(mock.Anything, orderID).
			Return(entities.DeliveryTrip{}, entities.ErrTripNotFound)

		resp := doJSON(t, http.MethodGet, srv.URL+"/orders/"+orderID.String()+"/trip", nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestHTTPHandler_GetActiveOrder(t *testing.T) {
	courierID := uuid.New()

	t.Run("200 with the active order", func(t *testing.T) {
		srv, deps := newTestServer(t)

		orderID := uuid.New()
		deps.couriers.EXPECT().ActiveOrder(mock.Anything, courierID).Return(entities.Order{
			ID: orderID, CourierID: &courierID, Status: entities.OrderOutForDelivery,
		}, nil)

		resp := doJSON(t, http.MethodGet, srv.URL+"/couriers/"+courierID.String()+"/active-order", nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, orderID.String(), got["id"])
	})

	t.Run("404 when nothing is assigned", func(t *testing.T) {
		srv, deps := newTestServer(t)

		deps.couriers.EXPECT().ActiveOrder(mock.Anything, courierID).
			Return(entities.Order{}, entities.ErrOrderNotFound)

		resp := doJSON(t, http.MethodGet, srv.URL+"/couriers/"+courierID.String()+"/active-order", nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
