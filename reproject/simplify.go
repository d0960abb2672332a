package reproject

import (
	"context"
	"fmt"

	"github.com/go-spatial/geom/planar/simplify"

	"github.com/pdok/reproject/geomhelp"
)

// SimplifyRing removes vertices that lie within tolerance of the simplified path
// (Douglas-Peucker, measuring the distance to the segments of the path). The result is
// an ordered subsequence of ring that keeps its first and last coordinate.
// A tolerance of 0 only removes vertices that lie exactly on the simplified path.
// A closed ring keeps at least 4 coordinates.
func SimplifyRing(ctx context.Context, ring [][2]float64, tolerance float64) ([][2]float64, error) {
	if !(tolerance >= 0) {
		return nil, fmt.Errorf("%w: tolerance should not be negative, got %v", ErrInvalidParameter, tolerance)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(ring) <= 4 {
		return clone(ring), nil
	}

	var keep []int
	if tolerance == 0 {
		keep = collinearPruned(ring)
	} else {
		// The ring repeats its first coordinate, so it is simplified as a line string.
		// The simplifier may reuse the backing array of its input.
		dp := simplify.DouglasPeucker{Tolerance: tolerance, Dist: segmentDistance}
		simplified, err := dp.Simplify(ctx, clone(ring), false)
		if err != nil {
			return nil, err
		}
		var ok bool
		if keep, ok = subsequence(ring, simplified); !ok {
			return nil, fmt.Errorf("simplified ring is not a subsequence of its input: %s", geomhelp.WktEncodeRing(simplified, 80))
		}
		keep = pruned(ring, keep, tolerance)
	}

	if len(keep) >= 4 || !geomhelp.IsClosed(ring) {
		return pick(ring, keep), nil
	}
	return collapsed(ring, keep), nil
}

// segmentDistance adapts geomhelp.SegmentDistance to planar.PointLineDistanceFunc.
// On a closed ring the first base line is a single point, the distance to it is used.
func segmentDistance(line [2][2]float64, point [2]float64) float64 {
	return geomhelp.SegmentDistance(point, line[0], line[1])
}

// subsequence finds the indices in ring of the coordinates of sub, in order.
// The last coordinate of sub is matched with the last of ring.
func subsequence(ring, sub [][2]float64) ([]int, bool) {
	if len(sub) < 2 || sub[0] != ring[0] || sub[len(sub)-1] != ring[len(ring)-1] {
		return nil, false
	}
	indices := make([]int, 0, len(sub))
	indices = append(indices, 0)
	i := 1
	for _, c := range sub[1 : len(sub)-1] {
		for i < len(ring)-1 && ring[i] != c {
			i++
		}
		if i == len(ring)-1 {
			return nil, false
		}
		indices = append(indices, i)
		i++
	}
	return append(indices, len(ring)-1), true
}

// pruned drops kept vertices whose span is already covered by their neighbours:
// every vertex of ring between the neighbours lies within tolerance of the segment
// joining them. A vertex kept for an early split can become redundant this way.
func pruned(ring [][2]float64, keep []int, tolerance float64) []int {
	result := append(make([]int, 0, len(keep)), keep[0])
	for m := 1; m < len(keep)-1; m++ {
		from, to := result[len(result)-1], keep[m+1]
		if !within(ring, from, to, tolerance) {
			result = append(result, keep[m])
		}
	}
	return append(result, keep[len(keep)-1])
}

func within(ring [][2]float64, from, to int, tolerance float64) bool {
	for i := from + 1; i < to; i++ {
		if geomhelp.SegmentDistance(ring[i], ring[from], ring[to]) > tolerance {
			return false
		}
	}
	return true
}

// collinearPruned keeps every vertex that does not lie exactly on the segment from
// the previously kept vertex to the next one.
func collinearPruned(ring [][2]float64) []int {
	keep := append(make([]int, 0, len(ring)), 0)
	for i := 1; i < len(ring)-1; i++ {
		if geomhelp.SegmentDistance(ring[i], ring[keep[len(keep)-1]], ring[i+1]) > 0 {
			keep = append(keep, i)
		}
	}
	return append(keep, len(ring)-1)
}

// collapsed repairs a closed ring reduced to (start, split, start) by adding the
// vertex farthest from the line through start and split.
func collapsed(ring [][2]float64, keep []int) [][2]float64 {
	split := 1
	if len(keep) == 3 {
		split = keep[1]
	} else {
		for i := 2; i < len(ring)-1; i++ {
			if geomhelp.EdgeLength(ring[0], ring[i]) > geomhelp.EdgeLength(ring[0], ring[split]) {
				split = i
			}
		}
	}
	apex, maxDist := -1, -1.
	for i := 1; i < len(ring)-1; i++ {
		if i == split {
			continue
		}
		if d := geomhelp.SegmentDistance(ring[i], ring[0], ring[split]); apex < 0 || d > maxDist {
			apex, maxDist = i, d
		}
	}
	if apex < split {
		return [][2]float64{ring[0], ring[apex], ring[split], ring[0]}
	}
	return [][2]float64{ring[0], ring[split], ring[apex], ring[0]}
}

func pick(ring [][2]float64, indices []int) [][2]float64 {
	picked := make([][2]float64, len(indices))
	for i, idx := range indices {
		picked[i] = ring[idx]
	}
	return picked
}

func clone(ring [][2]float64) [][2]float64 {
	c := make([][2]float64, len(ring))
	copy(c, ring)
	return c
}
