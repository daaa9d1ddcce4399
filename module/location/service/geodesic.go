package service

import "math"

const EarthRadiusKm = 6371.0

// Distance returns the great-circle distance in km between two points given
// in decimal degrees, on a spherical earth.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	if lat1 == lat2 && lng1 == lng2 {
		return 0
	}
	sinDLat := math.Sin(toRad(lat2-lat1) / 2)
	sinDLng := math.Sin(toRad(lng2-lng1) / 2)
	a := sinDLat*sinDLat + math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*sinDLng*sinDLng
	// rounding can push a just outside [0, 1]
	a = math.Max(0, math.Min(1, a))
	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(a))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
