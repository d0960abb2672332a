package mathhelp

import "math"

// Round rounds f half away from zero to the given number of decimal places.
func Round(f float64, decimals uint) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	pow := math.Pow(10, float64(decimals))
	r := math.Round(f*pow) / pow
	if r == 0 {
		// no negative zeros in the output
		return 0
	}
	return r
}

// Lerp interpolates linearly between p and q, t=0 being p and t=1 being q.
func Lerp(p, q, t float64) float64 {
	return p + (q-p)*t
}

func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
