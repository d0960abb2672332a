package reproject

import (
	"context"
	"fmt"
	"math"

	"github.com/pdok/reproject/geomhelp"
)

// RingResult is the outcome of resolving a single ring.
type RingResult struct {
	Ring [][2]float64
	// Densification spacing (source CRS units) of the accepted candidate. 0 on the fast path.
	Spacing    float64
	Iterations int
	// False when the iteration ceiling was reached before two successive spacings agreed.
	Converged bool
}

// ResolveRing reprojects a ring so that it deviates at most tolerance from its exact
// image in the destination CRS, without keeping more vertices than that requires.
//
// The ring is densified with a spacing that halves every iteration, starting at its
// perimeter divided by opts.InitialSegments. Every densification is reprojected and
// simplified with the tolerance. Once halving the spacing no longer changes the number
// of vertices that survive simplification, the finer of the two candidates is accepted.
// After opts.MaxIterations halvings the densest candidate is returned unconverged.
//
// A nil tolerance reprojects the ring as is.
func ResolveRing(ctx context.Context, ring [][2]float64, projector Projector, tolerance *float64, opts Options) (RingResult, error) {
	if tolerance == nil {
		projected, err := ReprojectRing(ring, projector)
		if err != nil {
			return RingResult{}, err
		}
		return RingResult{Ring: projected, Converged: true}, nil
	}
	tol := *tolerance
	if !(tol >= 0) || math.IsInf(tol, 0) {
		return RingResult{}, fmt.Errorf("%w: tolerance should be a non-negative finite number, got %v", ErrInvalidParameter, tol)
	}
	if opts.InitialSegments <= 0 || opts.MaxIterations <= 0 {
		return RingResult{}, fmt.Errorf("%w: initial segments (%d) and max iterations (%d) should be positive",
			ErrInvalidParameter, opts.InitialSegments, opts.MaxIterations)
	}
	perimeter := geomhelp.Perimeter(ring)
	if !(perimeter > 0) || math.IsInf(perimeter, 0) {
		return RingResult{}, fmt.Errorf("%w: cannot derive a densification spacing from ring with perimeter %v: %s",
			ErrInvalidParameter, perimeter, geomhelp.WktEncodeRing(ring, 80))
	}

	log := opts.Logger
	spacing := perimeter / float64(opts.InitialSegments)
	current, err := candidate(ctx, ring, projector, tol, spacing)
	if err != nil {
		return RingResult{}, err
	}
	log.V(2).Info("densified", "iteration", 0, "spacing", spacing, "vertices", len(current))

	for i := 1; i <= opts.MaxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return RingResult{}, err
		}
		spacing /= 2
		next, err := candidate(ctx, ring, projector, tol, spacing)
		if err != nil {
			return RingResult{}, err
		}
		log.V(2).Info("densified", "iteration", i, "spacing", spacing, "vertices", len(next))
		if len(next) == len(current) {
			return RingResult{Ring: next, Spacing: spacing, Iterations: i, Converged: true}, nil
		}
		current = next
	}
	return RingResult{Ring: current, Spacing: spacing, Iterations: opts.MaxIterations, Converged: false}, nil
}

func candidate(ctx context.Context, ring [][2]float64, projector Projector, tolerance, spacing float64) ([][2]float64, error) {
	densified, err := Densify(ring, spacing)
	if err != nil {
		return nil, err
	}
	projected, err := ReprojectRing(densified, projector)
	if err != nil {
		return nil, err
	}
	return SimplifyRing(ctx, projected, tolerance)
}
