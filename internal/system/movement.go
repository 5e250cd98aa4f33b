package system

import (
	"time"

	"tesla-tower/internal/component"
	"tesla-tower/internal/ecs"
)

// Frame is the time step enemy speeds are expressed in: an enemy with speed
// 1 covers one arena unit per Frame of scaled time.
const Frame = 16 * time.Millisecond

// Steps converts a scaled time delta into frame units.
func Steps(dt time.Duration) float64 {
	return float64(dt) / float64(Frame)
}

// MoveEnemies walks every enemy straight at the tower. An enemy that would
// cross the contact boundary stops on it, so contact distance is exact.
func MoveEnemies(w *ecs.World, t *component.Tower, dt time.Duration) {
	if dt <= 0 {
		return
	}
	steps := Steps(dt)
	center := t.Position()
	for _, id := range w.Query(component.CEnemy, component.CPosition) {
		e := w.Get(id, component.CEnemy).(component.Enemy)
		pos := w.Get(id, component.CPosition).(component.Position)
		dist := pos.Dist(center)
		reach := t.Radius + e.Radius
		if dist <= reach {
			continue
		}
		travel := min(e.Speed*steps, dist-reach)
		pos.X += (center.X - pos.X) / dist * travel
		pos.Y += (center.Y - pos.Y) / dist * travel
		w.Add(id, pos)
	}
}

// InContact reports whether an enemy at pos with radius r is touching the tower.
func InContact(t *component.Tower, pos component.Position, r float64) bool {
	return pos.Dist(t.Position()) <= t.Radius+r+1e-9
}
