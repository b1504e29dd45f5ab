package ignition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGizmoRadius(t *testing.T) {
	tests := []struct {
		name           string
		radius, sx, sy float64
		want           float64
	}{
		{name: "unit", radius: 0.35, sx: 1, sy: 1, want: 0.35},
		{name: "largest_axis", radius: 0.5, sx: 1.5, sy: 3, want: 1.5},
		{name: "mirrored", radius: 1, sx: -2, sy: 1, want: 2},
		{name: "flat", radius: 1, sx: 0, sy: 0, want: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, GizmoRadius(tc.radius, tc.sx, tc.sy), 1e-12)
		})
	}
}

func TestPointLen(t *testing.T) {
	p := Point{X: 3, Y: 4}
	assert.Equal(t, 5.0, p.Len())
	assert.Equal(t, Point{X: 2, Y: 3, Z: -1}, Point{X: 3, Y: 4}.Sub(Point{X: 1, Y: 1, Z: 1}))
}
