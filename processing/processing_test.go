package processing

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-spatial/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	square = [][2]float64{{0, 0}, {0, 10}, {10, 10}, {10, 0}, {0, 0}}
	hole   = [][2]float64{{2, 2}, {4, 2}, {4, 4}, {2, 4}, {2, 2}}
	other  = [][2]float64{{15, 15}, {15, 20}, {20, 20}, {20, 15}, {15, 15}}
)

func shift(dx float64) RingFunc {
	return func(_ context.Context, _ RingID, ring [][2]float64) ([][2]float64, error) {
		shifted := make([][2]float64, len(ring))
		for i, c := range ring {
			shifted[i] = [2]float64{c[0] + dx, c[1]}
		}
		return shifted, nil
	}
}

func shifted(ring [][2]float64, dx float64) [][2]float64 {
	r, _ := shift(dx)(context.Background(), RingID{}, ring)
	return r
}

func TestProcessGeometry(t *testing.T) {
	tests := []struct {
		name string
		geom geom.Geometry
		want geom.Geometry
	}{
		{
			name: "polygon",
			geom: geom.Polygon{square},
			want: geom.Polygon{shifted(square, 1)},
		},
		{
			name: "polygon with hole",
			geom: geom.Polygon{square, hole},
			want: geom.Polygon{shifted(square, 1), shifted(hole, 1)},
		},
		{
			name: "polygon pointer",
			geom: &geom.Polygon{square},
			want: geom.Polygon{shifted(square, 1)},
		},
		{
			name: "multipolygon keeps order",
			geom: geom.MultiPolygon{{square, hole}, {other}},
			want: geom.MultiPolygon{{shifted(square, 1), shifted(hole, 1)}, {shifted(other, 1)}},
		},
		{
			name: "multipolygon pointer",
			geom: &geom.MultiPolygon{{other}, {square}},
			want: geom.MultiPolygon{{shifted(other, 1)}, {shifted(square, 1)}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, concurrency := range []int{0, 1, 3} {
				got, err := ProcessGeometry(context.Background(), tt.geom, shift(1), concurrency)
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestProcessGeometryRingIDs(t *testing.T) {
	var exteriors, holes atomic.Int32
	f := func(_ context.Context, id RingID, ring [][2]float64) ([][2]float64, error) {
		if id.IsExterior() {
			exteriors.Add(1)
		} else {
			holes.Add(1)
		}
		return ring, nil
	}
	_, err := ProcessGeometry(context.Background(), geom.MultiPolygon{{square, hole, hole}, {other}}, f, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(2), exteriors.Load())
	assert.Equal(t, int32(2), holes.Load())
}

func TestProcessGeometryError(t *testing.T) {
	errBoom := errors.New("boom")
	f := func(_ context.Context, id RingID, ring [][2]float64) ([][2]float64, error) {
		if id.Polygon == 1 {
			return nil, errBoom
		}
		return ring, nil
	}
	got, err := ProcessGeometry(context.Background(), geom.MultiPolygon{{square}, {other}}, f, 0)
	require.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "polygon 1 ring 0")
	assert.Nil(t, got)
}

func TestProcessGeometryUnsupported(t *testing.T) {
	tests := []struct {
		name string
		geom geom.Geometry
	}{
		{name: "point", geom: geom.Point{1, 2}},
		{name: "linestring", geom: geom.LineString{{1, 2}, {3, 4}}},
		{name: "nil", geom: nil},
		{name: "nil polygon pointer", geom: (*geom.Polygon)(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ProcessGeometry(context.Background(), tt.geom, shift(1), 0)
			assert.ErrorIs(t, err, ErrUnsupportedGeometry)
		})
	}
}

func TestProcessGeometryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ProcessGeometry(ctx, geom.Polygon{square}, shift(1), 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPolygons(t *testing.T) {
	polygons, multi, err := Polygons(geom.MultiPolygon{{square}, {other}})
	require.NoError(t, err)
	assert.True(t, multi)
	assert.Len(t, polygons, 2)

	polygons, multi, err = Polygons(geom.Polygon{square, hole})
	require.NoError(t, err)
	assert.False(t, multi)
	require.Len(t, polygons, 1)
	assert.Len(t, polygons[0], 2)
}

func TestProcessGeometryConcurrencyLimit(t *testing.T) {
	g := geom.MultiPolygon{{square, hole}, {other, hole}, {square, hole}}

	var inFlight, maxInFlight atomic.Int32
	f := func(_ context.Context, _ RingID, ring [][2]float64) ([][2]float64, error) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			m := maxInFlight.Load()
			if n <= m || maxInFlight.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		return ring, nil
	}
	_, err := ProcessGeometry(context.Background(), g, f, 2)
	require.NoError(t, err)
	assert.LessOrEqual(t, maxInFlight.Load(), int32(2))
}

func TestProcessGeometryNoConcurrencyLimit(t *testing.T) {
	g := geom.MultiPolygon{{square, hole}, {other, hole}, {square, hole}}

	// every ring waits for all others, which only finishes when all run at the same time
	var arrived sync.WaitGroup
	arrived.Add(6)
	f := func(_ context.Context, _ RingID, ring [][2]float64) ([][2]float64, error) {
		arrived.Done()
		done := make(chan struct{})
		go func() {
			arrived.Wait()
			close(done)
		}()
		select {
		case <-done:
			return ring, nil
		case <-time.After(10 * time.Second):
			return nil, errors.New("rings did not run concurrently")
		}
	}
	_, err := ProcessGeometry(context.Background(), g, f, 0)
	assert.NoError(t, err)
}
