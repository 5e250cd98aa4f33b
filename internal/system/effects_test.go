package system

import (
	"math"
	"testing"
	"time"

	"tesla-tower/internal/component"
	"tesla-tower/internal/ecs"
)

func TestAgeEffectsExpires(t *testing.T) {
	w := ecs.NewWorld()
	id := w.CreateEntity()
	w.Add(id, component.Position{X: 10, Y: 10})
	w.Add(id, component.Velocity{DX: 2})
	w.Add(id, component.Effect{Kind: component.EffectParticle, Life: 100 * time.Millisecond, MaxLife: 100 * time.Millisecond})

	AgeEffects(w, Frame)
	p := w.Get(id, component.CPosition).(component.Position)
	if p.X != 12 {
		t.Errorf("x = %v; want 12 after one frame", p.X)
	}
	if v := w.Get(id, component.CVelocity).(component.Velocity); v.DX >= 2 {
		t.Errorf("particle velocity %v did not decay", v.DX)
	}
	AgeEffects(w, 100*time.Millisecond)
	if w.Alive(id) {
		t.Error("expired effect still alive")
	}
}

func TestParticleDragIndependentOfTickSize(t *testing.T) {
	spawn := func(w *ecs.World) ecs.EntityID {
		id := w.CreateEntity()
		w.Add(id, component.Position{})
		w.Add(id, component.Velocity{DX: 4})
		w.Add(id, component.Effect{Kind: component.EffectSpark, Life: time.Second, MaxLife: time.Second})
		return id
	}
	fine, coarse := ecs.NewWorld(), ecs.NewWorld()
	a, b := spawn(fine), spawn(coarse)
	for range 4 {
		AgeEffects(fine, Frame)
	}
	AgeEffects(coarse, 4*Frame)

	va := fine.Get(a, component.CVelocity).(component.Velocity).DX
	vb := coarse.Get(b, component.CVelocity).(component.Velocity).DX
	if d := va - vb; d > 1e-9 || d < -1e-9 {
		t.Errorf("velocity after 4 frames = %v, after one 4-frame tick = %v", va, vb)
	}
	if want := 4 * math.Pow(particleDrag, 4); va-want > 1e-9 || want-va > 1e-9 {
		t.Errorf("velocity = %v; want %v", va, want)
	}
}

func TestClearEffectsLeavesEnemies(t *testing.T) {
	w := ecs.NewWorld()
	enemy := addEnemy(w, 0, 0, 10)
	fx := w.CreateEntity()
	w.Add(fx, component.Effect{Life: time.Second})
	ClearEffects(w)
	if w.Alive(fx) || !w.Alive(enemy) {
		t.Error("ClearEffects should remove only effects")
	}
}
