package processing

import (
	"context"

	"github.com/go-spatial/geom"
)

type Source interface {
	ReadGeometry() (geom.Geometry, error)
}

type Target interface {
	WriteGeometry(geom.Geometry) error
}

// RingID locates a ring: the polygon's index within its (multi)polygon and the
// ring's index within the polygon, 0 being the exterior.
type RingID struct {
	Polygon int
	Ring    int
}

func (id RingID) IsExterior() bool {
	return id.Ring == 0
}

// RingFunc produces the replacement of a single ring.
type RingFunc func(ctx context.Context, id RingID, ring [][2]float64) ([][2]float64, error)
