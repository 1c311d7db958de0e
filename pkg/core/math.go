package core

import "math"

// Epsilon is the float64 machine epsilon, the gap between 1 and the next
// representable value.
var Epsilon = math.Nextafter(1, 2) - 1

// EqualFloats reports whether a and b differ by at most Epsilon.
// The tolerance is absolute, so it is only meaningful for values near 1.
func EqualFloats(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// DegreesToRadians converts an angle in degrees to radians
func DegreesToRadians(deg float64) float64 {
	return deg / 180.0 * math.Pi
}

// RadiansToDegrees converts an angle in radians to degrees
func RadiansToDegrees(rad float64) float64 {
	return rad / math.Pi * 180.0
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
