package reproject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReprojectRing(t *testing.T) {
	shiftUp := ProjectorFunc(func(c [2]float64) ([2]float64, error) {
		return [2]float64{c[0], c[1] + 100}, nil
	})

	tests := []struct {
		name      string
		ring      [][2]float64
		projector Projector
		want      [][2]float64
		wantErr   error
	}{
		{
			name:      "closed ring",
			ring:      [][2]float64{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}},
			projector: shiftUp,
			want:      [][2]float64{{0, 100}, {0, 101}, {1, 101}, {1, 100}, {0, 100}},
		},
		{
			name:      "open ring",
			ring:      [][2]float64{{0, 0}, {0, 1}, {1, 1}},
			projector: shiftUp,
			want:      [][2]float64{{0, 100}, {0, 101}, {1, 101}},
		},
		{
			name:      "projector error",
			ring:      [][2]float64{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}},
			projector: failAbove(0.5),
			wantErr:   errOutOfBounds,
		},
		{
			name: "non-finite result",
			ring: [][2]float64{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}},
			projector: ProjectorFunc(func(c [2]float64) ([2]float64, error) {
				return [2]float64{c[0] / c[1], c[1]}, nil
			}),
			wantErr: ErrProjection,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReprojectRing(tt.ring, tt.projector)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrProjection)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReprojectRingClosesRing(t *testing.T) {
	calls := 0
	p := ProjectorFunc(func(c [2]float64) ([2]float64, error) {
		calls++
		return [2]float64{c[0] + float64(calls)*1e-12, c[1]}, nil
	})
	ring := [][2]float64{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}}

	got, err := ReprojectRing(ring, p)
	require.NoError(t, err)
	assert.Equal(t, 4, calls)
	assert.Equal(t, got[0], got[len(got)-1])
}
