package reproject

import (
	"errors"
	"math"

	"github.com/pdok/reproject/geomhelp"
)

func nan() float64 { return math.NaN() }

func inf() float64 { return math.Inf(1) }

var identity = ProjectorFunc(func(c [2]float64) ([2]float64, error) {
	return c, nil
})

// sinusoidalInverse bends meridians the way an inverse sinusoidal projection
// on a unit sphere would, with degrees in and out.
var sinusoidalInverse = ProjectorFunc(func(c [2]float64) ([2]float64, error) {
	return [2]float64{c[0] * math.Cos(c[1]*math.Pi/180), c[1]}, nil
})

// jitter moves every coordinate by a pseudo random (but deterministic) amount
// of up to a unit, so refining never settles.
var jitter = ProjectorFunc(func(c [2]float64) ([2]float64, error) {
	h := math.Sin(c[0]*12.9898+c[1]*78.233) * 43758.5453
	return [2]float64{c[0] + h - math.Floor(h), c[1]}, nil
})

var errOutOfBounds = errors.New("out of bounds")

// failAbove fails for every coordinate with a y above limit.
func failAbove(limit float64) ProjectorFunc {
	return func(c [2]float64) ([2]float64, error) {
		if c[1] > limit {
			return c, errOutOfBounds
		}
		return c, nil
	}
}

// maxDeviation is the largest distance from a point of reference to the path of ring.
func maxDeviation(reference, ring [][2]float64) float64 {
	maxDist := 0.
	for _, p := range reference {
		minDist := math.Inf(1)
		for i := 1; i < len(ring); i++ {
			minDist = math.Min(minDist, geomhelp.SegmentDistance(p, ring[i-1], ring[i]))
		}
		maxDist = math.Max(maxDist, minDist)
	}
	return maxDist
}
