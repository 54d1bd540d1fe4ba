package domain

import "math"

// earthRadius is the WGS-84 semi-major axis in metres, the sphere radius
// used by EPSG:3857.
const earthRadius = 6378137.0

// maxMercatorLat bounds latitude so the projection stays finite; EPSG:3857
// is undefined at the poles.
const maxMercatorLat = 85.05112878

// ProjectWebMercator converts geographic coordinates (EPSG:4326, degrees)
// to spherical Web Mercator easting/northing in metres (EPSG:3857).
// Latitudes beyond the Mercator limit are clamped to it.
func ProjectWebMercator(lon, lat float64) (x, y float64) {
	if lat > maxMercatorLat {
		lat = maxMercatorLat
	}
	if lat < -maxMercatorLat {
		lat = -maxMercatorLat
	}

	x = earthRadius * lon * math.Pi / 180
	y = earthRadius * math.Log(math.Tan(math.Pi/4+lat*math.Pi/360))
	return x, y
}
