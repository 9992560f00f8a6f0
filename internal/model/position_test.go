package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosition_DistanceSquared(t *testing.T) {
	tests := []struct {
		name string
		a, b Position
		want float64
	}{
		{"same point", NewPosition(1, 2, 3), NewPosition(1, 2, 3), 0},
		{"3-4-5 triangle", NewPosition(0, 0, 0), NewPosition(3, 4, 0), 25},
		{"all axes", NewPosition(-1, -1, -1), NewPosition(1, 1, 1), 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.a.DistanceSquared(tt.b), 1e-9)
			assert.InDelta(t, tt.want, tt.b.DistanceSquared(tt.a), 1e-9)
		})
	}
}

func TestPosition_IsFinite(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	assert.True(t, NewPosition(1, -2, 3).IsFinite())
	assert.False(t, NewPosition(nan, 0, 0).IsFinite())
	assert.False(t, NewPosition(0, inf, 0).IsFinite())
	assert.False(t, NewPosition(0, 0, -inf).IsFinite())
}
