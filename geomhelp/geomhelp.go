package geomhelp

import (
	"fmt"
	"math"

	"github.com/go-spatial/geom"
	"github.com/go-spatial/geom/encoding/wkt"
	"github.com/muesli/reflow/truncate"

	"github.com/pdok/reproject/mathhelp"
)

// EdgeLength is the Euclidean distance between p and q.
func EdgeLength(p, q [2]float64) float64 {
	return math.Hypot(q[0]-p[0], q[1]-p[1])
}

// Perimeter sums the edge lengths of a ring. The closing edge is only counted
// when the ring repeats its first coordinate at the end.
func Perimeter(ring [][2]float64) float64 {
	sum := 0.
	for i := 1; i < len(ring); i++ {
		sum += EdgeLength(ring[i-1], ring[i])
	}
	return sum
}

func IsClosed(ring [][2]float64) bool {
	return len(ring) > 1 && ring[0] == ring[len(ring)-1]
}

// RoundRing returns a copy of the ring with all ordinates rounded to the given decimals.
func RoundRing(ring [][2]float64, decimals uint) [][2]float64 {
	rounded := make([][2]float64, len(ring))
	for i, c := range ring {
		rounded[i] = [2]float64{mathhelp.Round(c[0], decimals), mathhelp.Round(c[1], decimals)}
	}
	return rounded
}

// WktEncodeRing encodes a (possibly degenerate) ring for use in messages.
// Rings the WKT encoder refuses, like a ring of identical points, are formatted with %v.
func WktEncodeRing(ring [][2]float64, maxLen uint) string {
	var g geom.Geometry
	switch len(ring) {
	case 0:
		return "LINESTRING EMPTY"
	case 1:
		g = geom.Point(ring[0])
	default:
		g = geom.LineString(ring)
	}
	s, err := wkt.EncodeString(g)
	if err != nil {
		s = fmt.Sprintf("%v", ring)
	}
	if maxLen == 0 {
		return s
	}
	return truncate.StringWithTail(s, maxLen, "...")
}

// SegmentDistance is the distance from p to the closest point on the segment a-b.
// A degenerate segment (a == b) is treated as a point.
func SegmentDistance(p, a, b [2]float64) float64 {
	dx, dy := b[0]-a[0], b[1]-a[1]
	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return EdgeLength(p, a)
	}
	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / lengthSq
	switch {
	case t <= 0:
		return EdgeLength(p, a)
	case t >= 1:
		return EdgeLength(p, b)
	}
	// exactly 0 for points on axis-aligned segments
	return math.Abs(dx*(p[1]-a[1])-dy*(p[0]-a[0])) / math.Sqrt(lengthSq)
}
