package service

import (
	"context"
	"time"

	"github.com/veloraeats/dispatch-service/internal/config"
	"github.com/veloraeats/dispatch-service/internal/entities"
)

// historicalTripsMin is how many completed trips a courier needs before
// their own average replaces the vehicle base speed.
const historicalTripsMin = 5

// Night hours bracket the low-traffic multiplier window.
const (
	nightFrom = 22
	nightTo   = 6
)

// SpeedModel estimates a courier's effective speed in km/h: vehicle
// base speed, overridden by the courier's historical average, scaled by
// a time-of-day multiplier, then passed through the pluggable adjuster.
type SpeedModel struct {
	cfg      config.Dispatch
	adjuster SpeedAdjuster
	now      func() time.Time
}

func NewSpeedModel(cfg config.Dispatch, adjuster SpeedAdjuster) *SpeedModel {
	return &SpeedModel{
		cfg:      cfg,
		adjuster: adjuster,
		now:      time.Now,
	}
}

// WithClock pins the model's notion of now. Used by tests and by the
// ETA calculator to keep repeated estimates deterministic.
func (m *SpeedModel) WithClock(now func() time.Time) *SpeedModel {
	m.now = now
	return m
}

func (m *SpeedModel) Estimate(ctx context.Context, courier entities.Courier) float64 {
	speed := m.baseSpeed(courier.Vehicle)
	if courier.CompletedTrips > historicalTripsMin && courier.AvgSpeedKmh > 0 {
		speed = courier.AvgSpeedKmh
	}

	speed *= m.timeOfDayMultiplier(m.now())
	return m.adjuster.Adjust(ctx, courier, speed)
}

func (m *SpeedModel) baseSpeed(vehicle entities.VehicleType) float64 {
	switch vehicle {
	case entities.VehicleBicycle:
		return m.cfg.BicycleSpeedKmh
	case entities.VehicleScooter:
		return m.cfg.ScooterSpeedKmh
	case entities.VehicleCar:
		return m.cfg.CarSpeedKmh
	case entities.VehicleMotorcycle:
		return m.cfg.MotorcycleSpeedKmh
	default:
		return m.cfg.WalkingSpeedKmh
	}
}

func (m *SpeedModel) timeOfDayMultiplier(t time.Time) float64 {
	hour := t.Hour()
	if (hour >= m.cfg.MorningRushFrom && hour < m.cfg.MorningRushTo) ||
		(hour >= m.cfg.EveningRushFrom && hour < m.cfg.EveningRushTo) {
		return m.cfg.RushMultiplier
	}
	if hour >= nightFrom || hour < nightTo {
		return m.cfg.NightMultiplier
	}
	return 1.0
}

// NoopAdjuster leaves the modeled speed untouched. A real deployment
// can plug a weather-aware implementation instead.
type NoopAdjuster struct{}

func (NoopAdjuster) Adjust(_ context.Context, _ entities.Courier, speedKmh float64) float64 {
	return speedKmh
}
