package reproject

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/go-spatial/geom"

	"github.com/pdok/reproject/geomhelp"
	"github.com/pdok/reproject/mathhelp"
	"github.com/pdok/reproject/processing"
)

// Geometry reprojects a Polygon or MultiPolygon ring by ring (see ResolveRing) and
// rounds the result to opts.Precision decimals. The result has the same type as g,
// with polygons and rings in the same order.
//
// The geometry and options are validated before anything is projected. Any error
// aborts the whole geometry. When one or more rings did not converge, the complete
// geometry is returned together with an error wrapping ErrToleranceNotGuaranteed.
func Geometry(ctx context.Context, g geom.Geometry, projector Projector, opts Options) (geom.Geometry, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := validateGeometry(g); err != nil {
		return nil, err
	}

	log := opts.Logger
	var unconverged atomic.Int32
	result, err := processing.ProcessGeometry(ctx, g, func(ctx context.Context, id processing.RingID, ring [][2]float64) ([][2]float64, error) {
		resolved, err := ResolveRing(ctx, ring, projector, opts.Tolerance, opts)
		if err != nil {
			return nil, err
		}
		if !resolved.Converged {
			unconverged.Add(1)
		}
		log.V(1).Info("resolved ring", "polygon", id.Polygon, "ring", id.Ring, "exterior", id.IsExterior(),
			"vertices in", len(ring), "vertices out", len(resolved.Ring),
			"iterations", resolved.Iterations, "spacing", resolved.Spacing, "converged", resolved.Converged)
		return geomhelp.RoundRing(resolved.Ring, opts.Precision), nil
	}, opts.Concurrency)
	if err != nil {
		return nil, err
	}

	if n := unconverged.Load(); n > 0 {
		return result, fmt.Errorf("%w: %d ring(s) did not converge within %d iterations",
			ErrToleranceNotGuaranteed, n, opts.MaxIterations)
	}
	return result, nil
}

func validateGeometry(g geom.Geometry) error {
	polygons, _, err := processing.Polygons(g)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	if len(polygons) == 0 {
		return fmt.Errorf("%w: empty geometry", ErrInvalidParameter)
	}
	for polygonIdx, polygon := range polygons {
		if len(polygon) == 0 {
			return fmt.Errorf("%w: polygon %d has no exterior ring", ErrInvalidParameter, polygonIdx)
		}
		for ringIdx, ring := range polygon {
			if err := validateRing(ring); err != nil {
				return fmt.Errorf("%w: polygon %d ring %d %w", ErrInvalidParameter, polygonIdx, ringIdx, err)
			}
		}
	}
	return nil
}

func validateRing(ring [][2]float64) error {
	if len(ring) < 4 {
		return fmt.Errorf("has %d coordinates, at least 4 needed", len(ring))
	}
	for i, c := range ring {
		if !mathhelp.IsFinite(c[0]) || !mathhelp.IsFinite(c[1]) {
			return fmt.Errorf("has a non-finite coordinate at %d", i)
		}
	}
	if !geomhelp.IsClosed(ring) {
		return fmt.Errorf("is not closed: %s", geomhelp.WktEncodeRing(ring, 80))
	}
	if !(geomhelp.Perimeter(ring) > 0) {
		return fmt.Errorf("has no length: %s", geomhelp.WktEncodeRing(ring, 80))
	}
	return nil
}
