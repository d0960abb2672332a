package crs

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ctessum/geom/proj"
)

const deg = math.Pi / 180

var errOutsideProjection = errors.New("outside the sinusoidal projection")

func isSinusoidal(sr *proj.SR) bool {
	return strings.EqualFold(sr.Name, "sinusoidal") || strings.EqualFold(sr.Name, "sinu")
}

// geographic is the geographic side of a sinusoidal CRS. The sinusoidal grids in use
// (MODIS, VIIRS) are defined on a sphere without datum, so their latitudes and
// longitudes are taken as WGS 84 ones, without a datum shift.
func geographic() (*proj.SR, error) {
	return proj.Parse(epsgDefinitions[4326])
}

// sinusoidal is the spherical sinusoidal projection. Longitudes and latitudes are in degrees.
type sinusoidal struct {
	radius float64
	long0  float64 // radians
	x0, y0 float64
}

func newSinusoidal(sr *proj.SR) (sinusoidal, error) {
	if !(sr.A > 0) || math.IsInf(sr.A, 0) {
		return sinusoidal{}, fmt.Errorf("sinusoidal projection needs a positive radius, got %v", sr.A)
	}
	// WKT carries the central meridian as longitude_of_center, proj4 as lon_0.
	long0 := sr.Long0
	if math.IsNaN(long0) {
		long0 = sr.LongC
	}
	return sinusoidal{radius: sr.A, long0: orZero(long0), x0: orZero(sr.X0), y0: orZero(sr.Y0)}, nil
}

// orZero maps parameters the definition left out (NaN) to 0.
func orZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func (s sinusoidal) forward(lon, lat float64) (float64, float64, error) {
	phi := lat * deg
	if math.Abs(phi) > math.Pi/2 {
		return 0, 0, fmt.Errorf("%w: latitude %v", errOutsideProjection, lat)
	}
	lambda := math.Remainder(lon*deg-s.long0, 2*math.Pi)
	return s.x0 + s.radius*lambda*math.Cos(phi), s.y0 + s.radius*phi, nil
}

func (s sinusoidal) inverse(x, y float64) (float64, float64, error) {
	phi := (y - s.y0) / s.radius
	if math.Abs(phi) > math.Pi/2+1e-12 {
		return 0, 0, fmt.Errorf("%w: (%v, %v)", errOutsideProjection, x, y)
	}
	lambda := 0.
	if c := math.Cos(phi); c > 1e-12 {
		lambda = (x - s.x0) / (s.radius * c)
	}
	if math.Abs(lambda) > math.Pi+1e-12 {
		return 0, 0, fmt.Errorf("%w: (%v, %v)", errOutsideProjection, x, y)
	}
	return (s.long0 + lambda) / deg, phi / deg, nil
}
