package reproject

import (
	"fmt"

	"github.com/pdok/reproject/geomhelp"
	"github.com/pdok/reproject/mathhelp"
)

// Projector maps a single coordinate from the source CRS to the destination CRS.
type Projector interface {
	Project(c [2]float64) ([2]float64, error)
}

// ProjectorFunc adapts a function to a Projector.
type ProjectorFunc func(c [2]float64) ([2]float64, error)

func (f ProjectorFunc) Project(c [2]float64) ([2]float64, error) {
	return f(c)
}

// ReprojectRing projects every coordinate of the ring, one to one.
// The first coordinate that cannot be projected fails the whole ring with ErrProjection.
func ReprojectRing(ring [][2]float64, projector Projector) ([][2]float64, error) {
	closed := geomhelp.IsClosed(ring)
	projected := make([][2]float64, len(ring))
	for i, c := range ring {
		if closed && i == len(ring)-1 {
			projected[i] = projected[0]
			break
		}
		p, err := projector.Project(c)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrProjection, err)
		}
		if !mathhelp.IsFinite(p[0]) || !mathhelp.IsFinite(p[1]) {
			return nil, fmt.Errorf("%w: %v projects to %v", ErrProjection, c, p)
		}
		projected[i] = p
	}
	return projected, nil
}
