package reproject

import (
	"fmt"
	"math"

	"github.com/pdok/reproject/geomhelp"
	"github.com/pdok/reproject/mathhelp"
)

// Densify inserts evenly spaced vertices on every edge longer than maxSegmentLength,
// ceil(length/maxSegmentLength)-1 of them per edge. Original vertices keep their order.
func Densify(ring [][2]float64, maxSegmentLength float64) ([][2]float64, error) {
	if !(maxSegmentLength > 0) || math.IsInf(maxSegmentLength, 0) {
		return nil, fmt.Errorf("%w: segment length should be positive and finite, got %v", ErrInvalidParameter, maxSegmentLength)
	}
	if len(ring) == 0 {
		return [][2]float64{}, nil
	}

	densified := make([][2]float64, 0, len(ring))
	densified = append(densified, ring[0])
	for i := 1; i < len(ring); i++ {
		p, q := ring[i-1], ring[i]
		length := geomhelp.EdgeLength(p, q)
		if length > maxSegmentLength {
			parts := int(math.Ceil(length / maxSegmentLength))
			for j := 1; j < parts; j++ {
				t := float64(j) / float64(parts)
				densified = append(densified, [2]float64{mathhelp.Lerp(p[0], q[0], t), mathhelp.Lerp(p[1], q[1], t)})
			}
		}
		densified = append(densified, q)
	}
	return densified, nil
}
