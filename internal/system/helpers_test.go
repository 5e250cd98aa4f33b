package system

import (
	"time"

	"tesla-tower/internal/component"
	"tesla-tower/internal/ecs"
)

func newTower() *component.Tower {
	return &component.Tower{
		X: 400, Y: 300, Radius: 30,
		Health: 100, MaxHealth: 100,
		Damage: 10, Range: 150,
		FireInterval: time.Second,
		MaxTargets:   1,
		ChainRange:   80,
		LastFire:     -time.Hour,
		Level:        1,
	}
}

func addEnemy(w *ecs.World, x, y float64, hp int) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, component.Position{X: x, Y: y})
	w.Add(id, component.Health{Current: hp, Max: hp})
	w.Add(id, component.Enemy{
		Kind:           component.KindNormal,
		Radius:         15,
		Speed:          1,
		ContactDamage:  5,
		DamageInterval: time.Second,
		LastDamage:     -time.Hour,
		GoldValue:      10,
	})
	return id
}

func healthOf(w *ecs.World, id ecs.EntityID) int {
	return w.Get(id, component.CHealth).(component.Health).Current
}
