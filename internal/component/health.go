package component

import "tesla-tower/internal/ecs"

const CHealth ecs.ComponentType = 2

// Health only ever goes down for enemies; nothing heals them.
type Health struct {
	Current, Max int
}

func (Health) Type() ecs.ComponentType { return CHealth }

// Dead reports whether the entity is due for removal.
func (h Health) Dead() bool { return h.Current <= 0 }
