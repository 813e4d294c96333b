package entities

import "errors"

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrCourierNotFound = errors.New("courier not found")
	ErrTripNotFound    = errors.New("trip not found")

	// State machine contract violations.
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNoOp              = errors.New("request changes nothing")
	ErrInvalidCourier    = errors.New("courier is not eligible for assignment")
	ErrForbidden         = errors.New("actor is not allowed to modify this order")
	ErrConflict          = errors.New("order was modified concurrently")

	// Location ingestion rejections.
	ErrOutOfRange   = errors.New("coordinates are out of range")
	ErrPoorAccuracy = errors.New("ping accuracy is above the accepted threshold")

	// ErrUnavailable means a dependent piece of data is not there yet,
	// e.g. no courier location has been reported. Not a failure.
	ErrUnavailable = errors.New("required data is not available yet")

	ErrActiveDelivery = errors.New("courier has active deliveries")

	// ErrRouteUnavailable is the degraded result of a mapping provider
	// timeout or error. Tracking endpoints return a null route instead
	// of failing the whole request.
	ErrRouteUnavailable = errors.New("route is unavailable")
)
