package component

import (
	"math"

	"tesla-tower/internal/ecs"
)

const (
	CPosition ecs.ComponentType = 1
	CVelocity ecs.ComponentType = 8
)

// Position is a point in arena units. The arena origin is its top-left corner.
type Position struct {
	X, Y float64
}

func (Position) Type() ecs.ComponentType { return CPosition }

// Dist returns the Euclidean distance between p and q.
func (p Position) Dist(q Position) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Velocity moves an effect each tick, in arena units per 16ms of scaled time.
type Velocity struct {
	DX, DY float64
}

func (Velocity) Type() ecs.ComponentType { return CVelocity }
