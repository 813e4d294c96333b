package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/veloraeats/dispatch-service/internal/entities"
	"github.com/veloraeats/dispatch-service/pkg/geo"
)

// Estimate is a point-in-time delivery forecast.
type Estimate struct {
	DistanceMeters   float64   `json:"distance_meters"`
	RemainingMinutes float64   `json:"remaining_minutes"`
	EstimatedArrival time.Time `json:"estimated_arrival"`
}

type ETACalculator struct {
	couriers CourierRepo
	speed    *SpeedModel
	now      func() time.Time
}

func NewETACalculator(couriers CourierRepo, speed *SpeedModel) *ETACalculator {
	return &ETACalculator{
		couriers: couriers,
		speed:    speed,
		now:      time.Now,
	}
}

func (c *ETACalculator) WithClock(now func() time.Time) *ETACalculator {
	c.now = now
	return c
}

// Recompute forecasts arrival for an order using its courier's latest
// known position. Returns ErrUnavailable when the order has no courier,
// no destination, or the courier has never reported a position.
func (c *ETACalculator) Recompute(ctx context.Context, order entities.Order) (*Estimate, error) {
	if order.CourierID == nil || order.CustomerGeo == nil {
		return nil, entities.ErrUnavailable
	}

	courier, err := c.couriers.GetCourierByID(ctx, *order.CourierID)
	if err != nil {
		return nil, fmt.Errorf("failed to get courier: %w", err)
	}

	return c.Forecast(ctx, order, courier)
}

// Forecast is Recompute with the courier already in hand, for callers
// that just loaded it.
func (c *ETACalculator) Forecast(ctx context.Context, order entities.Order, courier entities.Courier) (*Estimate, error) {
	if order.CustomerGeo == nil || courier.Location == nil {
		return nil, entities.ErrUnavailable
	}

	distance := geo.Distance(
		courier.Location.Latitude, courier.Location.Longitude,
		order.CustomerGeo.Latitude, order.CustomerGeo.Longitude,
	)
	speed := c.speed.Estimate(ctx, courier)

	travel := time.Duration(float64(geo.TravelTime(distance, speed)) * trafficBuffer)
	remaining := travel + prepBuffer(order.Status)

	return &Estimate{
		DistanceMeters:   math.Round(distance),
		RemainingMinutes: math.Round(remaining.Minutes()),
		EstimatedArrival: c.now().UTC().Add(remaining),
	}, nil
}
