package system

import (
	"time"

	"tesla-tower/internal/component"
	"tesla-tower/internal/ecs"
	"tesla-tower/internal/event"
)

// ContactResult sums the damage enemies dealt to the tower in one tick.
type ContactResult struct {
	Hits       int
	HealthLost int
	Absorbed   int
}

// ApplyContact lets every touching enemy whose own cooldown has elapsed hit
// the tower once. Cooldowns run on the unscaled clock. It stops as soon as
// the tower is destroyed.
func ApplyContact(w *ecs.World, t *component.Tower, now time.Duration, ev *event.Events) ContactResult {
	var res ContactResult
	for _, id := range w.Query(component.CEnemy, component.CPosition) {
		if t.Destroyed() {
			break
		}
		e := w.Get(id, component.CEnemy).(component.Enemy)
		pos := w.Get(id, component.CPosition).(component.Position)
		if !InContact(t, pos, e.Radius) || now-e.LastDamage < e.DamageInterval {
			continue
		}
		e.LastDamage = now
		w.Add(id, e)

		res.Hits++
		shieldBefore := t.Shield
		lost := t.TakeHit(e.ContactDamage)
		res.HealthLost += lost
		res.Absorbed += shieldBefore - t.Shield
		if lost > 0 {
			ev.Burst(t.X, t.Y, 3, event.BurstHurt)
		} else {
			ev.Burst(t.X, t.Y, 3, event.BurstShield)
		}
	}
	return res
}
