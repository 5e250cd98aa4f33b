package system

import (
	"math"
	"time"

	"tesla-tower/internal/component"
	"tesla-tower/internal/ecs"
)

// particleDrag slows moving effects each frame.
const particleDrag = 0.95

// AgeEffects advances every transient effect by the scaled delta dt, moving
// those with a velocity and destroying those whose life has run out.
func AgeEffects(w *ecs.World, dt time.Duration) {
	if dt <= 0 {
		return
	}
	steps := Steps(dt)
	drag := math.Pow(particleDrag, steps)
	for _, id := range w.Query(component.CEffect) {
		e := w.Get(id, component.CEffect).(component.Effect)
		e.Life -= dt
		if e.Life <= 0 {
			w.DestroyEntity(id)
			continue
		}
		w.Add(id, e)

		vc := w.Get(id, component.CVelocity)
		pc := w.Get(id, component.CPosition)
		if vc == nil || pc == nil {
			continue
		}
		v := vc.(component.Velocity)
		p := pc.(component.Position)
		p.X += v.DX * steps
		p.Y += v.DY * steps
		if e.Kind == component.EffectParticle || e.Kind == component.EffectSpark {
			v.DX *= drag
			v.DY *= drag
			w.Add(id, v)
		}
		w.Add(id, p)
	}
}

// ClearEffects destroys every transient effect.
func ClearEffects(w *ecs.World) {
	for _, id := range w.Query(component.CEffect) {
		w.DestroyEntity(id)
	}
}
