package domain

import "math"

// Mean Earth radius used for great-circle distances.
const earthRadiusKm = 6371.0

// Immutable geographic coordinates in decimal degrees (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lon float64
}

// Round2 rounds a coordinate or distance value to two decimal places,
// half away from zero. Persisted coordinates carry at most two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// DistanceKm returns the great-circle (haversine) distance between two points
// in kilometers, rounded to two decimal places half away from zero.
func DistanceKm(a, b Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return Round2(2 * earthRadiusKm * math.Asin(math.Sqrt(h)))
}
