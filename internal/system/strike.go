package system

import (
	"strconv"

	"tesla-tower/internal/component"
	"tesla-tower/internal/ecs"
	"tesla-tower/internal/event"
)

// StrikeResult is the outcome of one manual strike.
type StrikeResult struct {
	Hit    bool
	Target ecs.EntityID
	Damage int
	Killed bool
}

// Strike is a manual lightning strike at (x, y). It draws a bolt from the
// tower and damages at most one living enemy, the nearest within radius.
// Strikes never chain and never crit.
func Strike(w *ecs.World, t *component.Tower, x, y, radius float64, dmg int, ev *event.Events) StrikeResult {
	ev.Bolt(event.Bolt{FromX: t.X, FromY: t.Y, ToX: x, ToY: y, Click: true})
	ev.Burst(x, y, 3, event.BurstStrike)

	near := living(w, component.Position{X: x, Y: y}, radius, nil)
	if len(near) == 0 {
		return StrikeResult{}
	}
	target := near[0]
	hp := w.Get(target.id, component.CHealth).(component.Health)
	hp.Current -= dmg
	w.Add(target.id, hp)

	ev.Number(target.pos.X, target.pos.Y, strconv.Itoa(dmg), false)
	ev.Burst(target.pos.X, target.pos.Y, 4, event.BurstHurt)
	return StrikeResult{Hit: true, Target: target.id, Damage: dmg, Killed: hp.Dead()}
}
