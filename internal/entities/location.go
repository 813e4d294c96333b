package entities

import (
	"time"

	"github.com/google/uuid"
)

// GeoPoint is a WGS84 coordinate pair with optional capture metadata.
type GeoPoint struct {
	Latitude   float64
	Longitude  float64
	Accuracy   float64
	CapturedAt time.Time
}

func (p GeoPoint) InRange() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

// LocationPing is a single position report from a courier device.
// Pings are append-only; superseded pings are marked inactive.
type LocationPing struct {
	ID        uuid.UUID
	CourierID uuid.UUID
	Latitude  float64
	Longitude float64
	Accuracy  float64
	Speed     float64
	Heading   float64
	Active    bool
	CreatedAt time.Time
}

func (p LocationPing) Point() GeoPoint {
	return GeoPoint{
		Latitude:   p.Latitude,
		Longitude:  p.Longitude,
		Accuracy:   p.Accuracy,
		CapturedAt: p.CreatedAt,
	}
}
