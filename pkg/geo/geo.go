package geo

import (
	"math"
	"time"
)

// EarthRadiusMeters is the mean Earth radius used by the Haversine formula.
const EarthRadiusMeters = 6_371_000

// Distance returns the great-circle distance in meters between two
// WGS84 coordinate pairs.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// TravelTime converts a distance in meters and a speed in km/h into a
// duration. A non-positive speed yields zero to keep callers from
// producing infinite estimates.
func TravelTime(distanceMeters, speedKmh float64) time.Duration {
	if speedKmh <= 0 || distanceMeters <= 0 {
		return 0
	}
	hours := (distanceMeters / 1000) / speedKmh
	return time.Duration(hours * float64(time.Hour))
}
