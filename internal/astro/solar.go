// Package astro computes prayer times and the qibla bearing from solar
// geometry alone. Everything here is a pure function of its inputs: the
// same date and coordinates always yield the same result, which keeps the
// package trivially testable and lets the resolver chain treat it as a
// deterministic fallback when the remote lookup fails.
package astro

import "math"

const degToRad = math.Pi / 180

func radians(deg float64) float64 { return deg * degToRad }
func degrees(rad float64) float64 { return rad / degToRad }

// Declination returns the solar declination in radians for the given day
// of the year (1..366), using Cooper's approximation. The declination
// peaks near the June solstice (day 173 anchor) at about +23.44 degrees.
func Declination(dayOfYear int) float64 {
	return math.Asin(0.39795 * math.Cos(radians(0.98563*(float64(dayOfYear)-173))))
}

// EquationOfTime returns the apparent-vs-mean solar time correction in
// minutes for the given day of the year, as a four-term Fourier series
// anchored at day 81. The correction stays under a minute all year.
func EquationOfTime(dayOfYear int) float64 {
	b := radians(0.98563 * (float64(dayOfYear) - 81))
	return 4 * (0.000075 +
		0.001868*math.Cos(b) -
		0.032077*math.Sin(b) -
		0.014615*math.Cos(2*b) -
		0.040849*math.Sin(2*b))
}
