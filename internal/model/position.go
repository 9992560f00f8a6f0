package model

import "math"

// Position is a point in zone space. Y is the vertical axis.
// Value type, passed by value.
type Position struct {
	X float32
	Y float32
	Z float32
}

// NewPosition creates a Position.
func NewPosition(x, y, z float32) Position {
	return Position{X: x, Y: y, Z: z}
}

// DistanceSquared returns the squared euclidean distance to other (no sqrt on the hot path).
func (p Position) DistanceSquared(other Position) float64 {
	dx := float64(p.X) - float64(other.X)
	dy := float64(p.Y) - float64(other.Y)
	dz := float64(p.Z) - float64(other.Z)
	return dx*dx + dy*dy + dz*dz
}

// IsFinite reports whether no component is NaN or ±Inf.
func (p Position) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y) && isFinite(p.Z)
}

func isFinite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
