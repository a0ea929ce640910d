// Package geo provides great-circle geometry over WGS84 coordinates.
package geo

import (
	"math"

	"github.com/sage-glasses/service-navigation/internal/domain/navigation"
)

const earthRadiusMeters = 6371000.0

// Distance returns the haversine great-circle distance between two
// coordinates in meters. Symmetric in its arguments.
func Distance(a, b navigation.Coordinate) float64 {
	lat1 := degreesToRadians(a.Latitude)
	lat2 := degreesToRadians(b.Latitude)
	dLat := degreesToRadians(b.Latitude - a.Latitude)
	dLon := degreesToRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
