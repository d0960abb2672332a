// Package processing takes care of the logistics around reading and writing geometries
// and walking over their rings. Not the processing operation(s) itself.
package processing

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-spatial/geom"
	"golang.org/x/sync/errgroup"
)

var ErrUnsupportedGeometry = errors.New("unsupported geometry type")

// Polygons returns the polygons of a Polygon or MultiPolygon (value or pointer),
// along with whether g is a MultiPolygon.
func Polygons(g geom.Geometry) (polygons []geom.Polygon, multi bool, err error) {
	switch gg := g.(type) {
	case geom.Polygon:
		return []geom.Polygon{gg}, false, nil
	case *geom.Polygon:
		if gg == nil {
			return nil, false, fmt.Errorf("%w: nil polygon", ErrUnsupportedGeometry)
		}
		return []geom.Polygon{*gg}, false, nil
	case geom.MultiPolygon:
		return multiPolygonToPolygons(gg), true, nil
	case *geom.MultiPolygon:
		if gg == nil {
			return nil, true, fmt.Errorf("%w: nil multipolygon", ErrUnsupportedGeometry)
		}
		return multiPolygonToPolygons(*gg), true, nil
	default:
		return nil, false, fmt.Errorf("%w: %T", ErrUnsupportedGeometry, g)
	}
}

func multiPolygonToPolygons(mp geom.MultiPolygon) []geom.Polygon {
	polygons := make([]geom.Polygon, len(mp))
	for i := range mp {
		polygons[i] = mp[i]
	}
	return polygons
}

// ProcessGeometry applies f to every ring of a Polygon or MultiPolygon and reassembles
// the results into a geometry of the same type, with polygons and rings in input order.
// Rings are independent, so they are processed concurrently, at most concurrency at
// a time (0 means no limit). The first error cancels the remaining rings and is returned
// without a geometry.
func ProcessGeometry(ctx context.Context, g geom.Geometry, f RingFunc, concurrency int) (geom.Geometry, error) {
	polygons, multi, err := Polygons(g)
	if err != nil {
		return nil, err
	}

	newPolygons := make([]geom.Polygon, len(polygons))
	for i, p := range polygons {
		newPolygons[i] = make(geom.Polygon, len(p))
	}

	group, groupCtx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		group.SetLimit(concurrency)
	}
	for polygonIdx, p := range polygons {
		for ringIdx, ring := range p {
			ring := ring
			id := RingID{Polygon: polygonIdx, Ring: ringIdx}
			group.Go(func() error {
				if err := groupCtx.Err(); err != nil {
					return err
				}
				newRing, err := f(groupCtx, id, ring)
				if err != nil {
					return fmt.Errorf("polygon %d ring %d: %w", id.Polygon, id.Ring, err)
				}
				// every goroutine owns exactly one slot
				newPolygons[id.Polygon][id.Ring] = newRing
				return nil
			})
		}
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	if multi {
		newMultiPolygon := make(geom.MultiPolygon, len(newPolygons))
		for i := range newPolygons {
			newMultiPolygon[i] = newPolygons[i]
		}
		return newMultiPolygon, nil
	}
	return newPolygons[0], nil
}
