package entities

import (
	"time"

	"github.com/google/uuid"
)

type VehicleType string

const (
	VehicleWalking    VehicleType = "walking"
	VehicleBicycle    VehicleType = "bicycle"
	VehicleScooter    VehicleType = "scooter"
	VehicleCar        VehicleType = "car"
	VehicleMotorcycle VehicleType = "motorcycle"
)

func (v VehicleType) Valid() bool {
	switch v {
	case VehicleWalking, VehicleBicycle, VehicleScooter, VehicleCar, VehicleMotorcycle:
		return true
	}
	return false
}

// ApplicationStatus is the onboarding state of a courier account.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationActive   ApplicationStatus = "active"
	ApplicationRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationActive, ApplicationRejected:
		return true
	}
	return false
}

type Courier struct {
	ID        uuid.UUID
	Name      string
	Vehicle   VehicleType
	Status    ApplicationStatus
	Available bool

	// Last known good position, maintained exclusively by the
	// location ingestion pipeline.
	Location *GeoPoint

	// Historical averages derived from closed trips. AvgSpeedKmh
	// overrides the vehicle base speed once CompletedTrips > 5.
	CompletedTrips int
	AvgSpeedKmh    float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Dispatchable reports whether the courier can be considered by
// auto-assignment: active account, toggled available, known location.
func (c Courier) Dispatchable() bool {
	return c.Status == ApplicationActive && c.Available && c.Location != nil
}
