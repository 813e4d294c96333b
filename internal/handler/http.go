package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/veloraeats/dispatch-service/internal/entities"
	"github.com/veloraeats/dispatch-service/internal/service"
	"github.com/veloraeats/dispatch-service/pkg/utils"
)

type OrderService interface {
	CreateOrder(ctx context.Context, order entities.Order) (entities.Order, error)
	GetOrderByID(ctx context.Context, orderID uuid.UUID) (entities.Order, error)
	Transition(ctx context.Context, actor service.Actor, orderID uuid.UUID, req service.TransitionRequest) (entities.Order, error)
	Rate(ctx context.Context, actor service.Actor, orderID uuid.UUID, courierRating, foodRating int) (entities.Order, error)
}

type TrackingService interface {
	Track(ctx context.Context, orderID uuid.UUID) (service.Snapshot, error)
	ETA(ctx context.Context, orderID uuid.UUID) (*service.Estimate, error)
}

type LocationIngestor interface {
	Ingest(ctx context.Context, ping entities.LocationPing) error
}

type CourierService interface {
	ActiveOrder(ctx context.Context, courierID uuid.UUID) (entities.Order, error)
	SetAvailability(ctx context.Context, courierID uuid.UUID, available bool) error
	ReviewApplication(ctx context.Context, courierID uuid.UUID, approve bool) error
}

type TelemetryService interface {
	TripDetail(ctx context.Context, orderID uuid.UUID) (entities.DeliveryTrip, error)
}

type HTTPHandler struct {
	logger    *slog.Logger
	validate  *validator.Validate
	orders    OrderService
	tracking  TrackingService
	locations LocationIngestor
	couriers  CourierService
	telemetry TelemetryService
}

func NewHTTPHandler(
	logger *slog.Logger,
	orders OrderService,
	tracking TrackingService,
	locations LocationIngestor,
	couriers CourierService,
	telemetry TelemetryService,
) *HTTPHandler {
	return &HTTPHandler{
		logger:    logger.With(slog.String("handler", "http")),
		validate:  validator.New(),
		orders:    orders,
		tracking:  tracking,
		locations: locations,
		couriers:  couriers,
		telemetry: telemetry,
	}
}

func (h *HTTPHandler) Init(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/{order_id}", h.GetOrder)
		r.Put("/{order_id}/status", h.TransitionOrder)
		r.Post("/{order_id}/complete", h.CompleteOrder)
		r.Post("/{order_id}/cancel", h.CancelOrder)
		r.Put("/{order_id}/rating", h.RateOrder)
		r.Get("/{order_id}/tracking", h.TrackOrder)
		r.Get("/{order_id}/eta", h.OrderETA)
		r.Get("/{order_id}/trip", h.GetTrip)
	})
	r.Route("/couriers", func(r chi.Router) {
		r.Get("/{courier_id}/active-order", h.GetActiveOrder)
		r.Post("/{courier_id}/location", h.ReportLocation)
		r.Put("/{courier_id}/availability", h.SetAvailability)
		r.Put("/{courier_id}/application", h.ReviewApplication)
	})
}

// CreateOrder registers a new order and triggers auto-assignment.
// @Summary      Create order
// @Description  Registers a new delivery order and tries to assign the nearest courier
// @Tags         orders
// @Accept       json
// @Param        order  body  CreateOrderRequest  true  "Order to create"
// @Success      201  {object}  Order
// @Failure      400  {object}  utils.ValidationErrorResponse
// @Failure      500  {object}  utils.ErrorResponse
// @Router       /orders [post]
func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateOrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.orders.CreateOrder(ctx, CreateOrderToEntity(req))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create order", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ordersCreated.Inc()
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusCreated)
}

// GetOrder returns an order by ID.
// @Summary      Get order
// @Tags         orders
// @Param        order_id  path  string  true  "Order ID"
// @Success      200  {object}  Order
// @Failure      404  {object}  utils.ErrorResponse
// @Failure      500  {object}  utils.ErrorResponse
// @Router       /orders/{order_id} [get]
func (h *HTTPHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, ok := h.pathID(w, r, "order_id")
	if !ok {
		return
	}

	order, err := h.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		h.writeDomainError(ctx, w, err, "failed to get order")
		return
	}
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// TransitionOrder moves an order to a new status.
// @Summary      Change order status
// @Description  Applies a lifecycle transition, guarded by the version token
// @Tags         orders
// @Accept       json
// @Param        order_id  path  string          true  "Order ID"
// @Param        body      body  TransitionBody  true  "Target status and version"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.ValidationErrorResponse
// @Failure      403  {object}  utils.ErrorResponse
// @Failure      409  {object}  utils.ErrorResponse "Stale version"
// @Failure      422  {object}  utils.ErrorResponse "Transition not allowed"
// @Router       /orders/{order_id}/status [put]
func (h *HTTPHandler) TransitionOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, ok := h.pathID(w, r, "order_id")
	if !ok {
		return
	}
	var body TransitionBody
	if err := utils.DecodeBody(r, &body); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(body); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.orders.Transition(ctx, h.actor(r), orderID, service.TransitionRequest{
		Next:                entities.OrderStatus(body.Status),
		Version:             body.Version,
		DeliveryNotes:       body.DeliveryNotes,
		CourierID:           body.CourierID,
		EstimatedDeliveryAt: body.EstimatedDeliveryAt,
	})
	if err != nil {
		h.writeDomainError(ctx, w, err, "failed to transition order")
		return
	}

	transitionsApplied.WithLabelValues(body.Status).Inc()
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// CompleteOrder marks an order delivered.
// @Summary      Complete order
// @Tags         orders
// @Accept       json
// @Param        order_id  path  string         true  "Order ID"
// @Param        body      body  VersionedBody  true  "Version token"
// @Success      200  {object}  Order
// @Failure      409  {object}  utils.ErrorResponse
// @Failure      422  {object}  utils.ErrorResponse
// @Router       /orders/{order_id}/complete [post]
func (h *HTTPHandler) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	h.shortTransition(w, r, entities.OrderDelivered)
}

// CancelOrder cancels an order.
// @Summary      Cancel order
// @Tags         orders
// @Accept       json
// @Param        order_id  path  string         true  "Order ID"
// @Param        body      body  VersionedBody  true  "Version token"
// @Success      200  {object}  Order
// @Failure      409  {object}  utils.ErrorResponse
// @Failure      422  {object}  utils.ErrorResponse
// @Router       /orders/{order_id}/cancel [post]
func (h *HTTPHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	h.shortTransition(w, r, entities.OrderCancelled)
}

func (h *HTTPHandler) shortTransition(w http.ResponseWriter, r *http.Request, next entities.OrderStatus) {
	ctx := r.Context()

	orderID, ok := h.pathID(w, r, "order_id")
	if !ok {
		return
	}
	var body VersionedBody
	if err := utils.DecodeBody(r, &body); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(body); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.orders.Transition(ctx, h.actor(r), orderID, service.TransitionRequest{
		Next:    next,
		Version: body.Version,
	})
	if err != nil {
		h.writeDomainError(ctx, w, err, "failed to transition order")
		return
	}

	transitionsApplied.WithLabelValues(string(next)).Inc()
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// RateOrder records customer ratings for a delivered order.
// @Summary      Rate order
// @Tags         orders
// @Accept       json
// @Param        order_id  path  string      true  "Order ID"
// @Param        body      body  RatingBody  true  "Ratings"
// @Success      200  {object}  Order
// @Failure      422  {object}  utils.ErrorResponse
// @Router       /orders/{order_id}/rating [put]
func (h *HTTPHandler) RateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, ok := h.pathID(w, r, "order_id")
	if !ok {
		return
	}
	var body RatingBody
	if err := utils.DecodeBody(r, &body); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(body); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.orders.Rate(ctx, h.actor(r), orderID, body.CourierRating, body.FoodRating)
	if err != nil {
		h.writeDomainError(ctx, w, err, "failed to rate order")
		return
	}
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// TrackOrder returns the live-tracking snapshot for an order.
// @Summary      Track order
// @Description  Current status, courier position, recent trajectory, ETA and route
// @Tags         tracking
// @Param        order_id  path  string  true  "Order ID"
// @Success      200  {object}  service.Snapshot
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /orders/{order_id}/tracking [get]
func (h *HTTPHandler) TrackOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, ok := h.pathID(w, r, "order_id")
	if !ok {
		return
	}

	snap, err := h.tracking.Track(ctx, orderID)
	if err != nil {
		h.writeDomainError(ctx, w, err, "failed to build tracking snapshot")
		return
	}
	utils.WriteJSON(w, snap, http.StatusOK)
}

// OrderETA returns just the delivery forecast.
// @Summary      Order ETA
// @Tags         tracking
// @Param        order_id  path  string  true  "Order ID"
// @Success      200  {object}  service.Estimate
// @Failure      404  {object}  utils.ErrorResponse "Order unknown or forecast unavailable"
// @Router       /orders/{order_id}/eta [get]
func (h *HTTPHandler) OrderETA(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, ok := h.pathID(w, r, "order_id")
	if !ok {
		return
	}

	estimate, err := h.tracking.ETA(ctx, orderID)
	if err != nil {
		h.writeDomainError(ctx, w, err, "failed to compute eta")
		return
	}
	utils.WriteJSON(w, estimate, http.StatusOK)
}

// GetTrip returns the telemetry record of an order's delivery trip.
// @Summary      Get delivery trip
// @Tags         tracking
// @Param        order_id  path  string  true  "Order ID"
// @Success      200  {object}  Trip
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /orders/{order_id}/trip [get]
func (h *HTTPHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, ok := h.pathID(w, r, "order_id")
	if !ok {
		return
	}

	trip, err := h.telemetry.TripDetail(ctx, orderID)
	if err != nil {
		h.writeDomainError(ctx, w, err, "failed to load trip")
		return
	}
	utils.WriteJSON(w, TripEntityToJSON(trip), http.StatusOK)
}

// GetActiveOrder returns the delivery a courier is currently carrying.
// @Summary      Get courier's active order
// @Tags         couriers
// @Param        courier_id  path  string  true  "Courier ID"
// @Success      200  {object}  Order
// @Failure      404  {object}  utils.ErrorResponse "No courier or no active delivery"
// @Router       /couriers/{courier_id}/active-order [get]
func (h *HTTPHandler) GetActiveOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	courierID, ok := h.pathID(w, r, "courier_id")
	if !ok {
		return
	}

	order, err := h.couriers.ActiveOrder(ctx, courierID)
	if err != nil {
		h.writeDomainError(ctx, w, err, "failed to load active order")
		return
	}
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// ReportLocation ingests a position report over HTTP, for devices that
// cannot speak kafka.
// @Summary      Report courier location
// @Tags         couriers
// @Accept       json
// @Param        courier_id  path  string        true  "Courier ID"
// @Param        body        body  LocationBody  true  "Position report"
// @Success      202
// @Failure      422  {object}  utils.ErrorResponse "Rejected ping"
// @Router       /couriers/{courier_id}/location [post]
func (h *HTTPHandler) ReportLocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	courierID, ok := h.pathID(w, r, "courier_id")
	if !ok {
		return
	}
	var body LocationBody
	if err := utils.DecodeBody(r, &body); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(body); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	ping := entities.LocationPing{
		CourierID: courierID,
		Latitude:  body.Latitude,
		Longitude: body.Longitude,
		Accuracy:  body.Accuracy,
		Speed:     body.Speed,
		Heading:   body.Heading,
	}
	if body.CapturedAt != nil {
		ping.CreatedAt = body.CapturedAt.UTC()
	}

	if err := h.locations.Ingest(ctx, ping); err != nil {
		h.writeDomainError(ctx, w, err, "failed to ingest location")
		return
	}

	pingsAccepted.Inc()
	w.WriteHeader(http.StatusAccepted)
}

// SetAvailability flips a courier's duty flag.
// @Summary      Set courier availability
// @Tags         couriers
// @Accept       json
// @Param        courier_id  path  string            true  "Courier ID"
// @Param        body        body  AvailabilityBody  true  "Desired state"
// @Success      204
// @Failure      409  {object}  utils.ErrorResponse "Delivery in flight"
// @Router       /couriers/{courier_id}/availability [put]
func (h *HTTPHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	courierID, ok := h.pathID(w, r, "courier_id")
	if !ok {
		return
	}
	var body AvailabilityBody
	if err := utils.DecodeBody(r, &body); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(body); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	if err := h.couriers.SetAvailability(ctx, courierID, *body.Available); err != nil {
		h.writeDomainError(ctx, w, err, "failed to set availability")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReviewApplication resolves a pending courier application.
// @Summary      Review courier application
// @Tags         couriers
// @Accept       json
// @Param        courier_id  path  string           true  "Courier ID"
// @Param        body        body  ApplicationBody  true  "Verdict"
// @Success      204
// @Failure      422  {object}  utils.ErrorResponse
// @Router       /couriers/{courier_id}/application [put]
func (h *HTTPHandler) ReviewApplication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	courierID, ok := h.pathID(w, r, "courier_id")
	if !ok {
		return
	}
	var body ApplicationBody
	if err := utils.DecodeBody(r, &body); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(body); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	if err := h.couriers.ReviewApplication(ctx, courierID, *body.Approve); err != nil {
		h.writeDomainError(ctx, w, err, "failed to review application")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HTTPHandler) pathID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		utils.WriteError(w, "invalid "+param, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

// actor reads the caller identity set by the gateway. Requests without
// identity headers are treated as operator tooling.
func (h *HTTPHandler) actor(r *http.Request) service.Actor {
	actor := service.Actor{Role: r.Header.Get("X-Actor-Role")}
	if actor.Role == "" {
		actor.Role = service.RoleOperator
	}
	if id, err := uuid.Parse(r.Header.Get("X-Actor-ID")); err == nil {
		actor.ID = id
	}
	return actor
}

func (h *HTTPHandler) writeDomainError(ctx context.Context, w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, entities.ErrOrderNotFound),
		errors.Is(err, entities.ErrCourierNotFound),
		errors.Is(err, entities.ErrTripNotFound):
		utils.WriteError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, entities.ErrConflict):
		utils.WriteError(w, "version conflict, refetch the order", http.StatusConflict)
	case errors.Is(err, entities.ErrActiveDelivery):
		utils.WriteError(w, "courier has a delivery in flight", http.StatusConflict)
	case errors.Is(err, entities.ErrForbidden):
		utils.WriteError(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, entities.ErrNoOp):
		utils.WriteError(w, "nothing to change", http.StatusUnprocessableEntity)
	case errors.Is(err, entities.ErrInvalidTransition),
		errors.Is(err, entities.ErrInvalidCourier),
		errors.Is(err, entities.ErrOutOfRange),
		errors.Is(err, entities.ErrPoorAccuracy):
		utils.WriteError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, entities.ErrUnavailable):
		utils.WriteError(w, "estimate unavailable", http.StatusNotFound)
	default:
		h.logger.ErrorContext(ctx, msg, slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}
