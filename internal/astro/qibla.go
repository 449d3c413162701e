package astro

import "math"

// Kaaba coordinates, the fixed reference point for the qibla bearing.
const (
	kaabaLat = 21.4225
	kaabaLon = 39.8262
)

// compassOctants are the eight compass labels, 45 degrees apart from North.
var compassOctants = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// QiblaBearing returns the great-circle initial bearing from the given
// coordinates to the Kaaba, in degrees clockwise from true North,
// normalized to [0, 360).
//
// At the exact antipode of the Kaaba every direction is equally short and
// the bearing is mathematically indeterminate; atan2(0, 0) = 0 there, so
// North is returned deterministically.
func QiblaBearing(lat, lon float64) float64 {
	phi1 := radians(lat)
	phi2 := radians(kaabaLat)
	dLon := radians(kaabaLon - lon)

	y := math.Sin(dLon) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLon)

	bearing := degrees(math.Atan2(y, x))
	return math.Mod(bearing+360, 360)
}

// Compass maps a bearing in [0, 360) to the nearest of the eight compass
// octants.
func Compass(bearing float64) string {
	idx := int(math.Round(bearing/45)) % 8
	return compassOctants[idx]
}
