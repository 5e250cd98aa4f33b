package system

import (
	"math"
	"testing"
	"time"

	"tesla-tower/internal/component"
	"tesla-tower/internal/ecs"
)

func posOf(w *ecs.World, id ecs.EntityID) component.Position {
	return w.Get(id, component.CPosition).(component.Position)
}

func TestMoveEnemiesTowardTower(t *testing.T) {
	w := ecs.NewWorld()
	tw := newTower()
	id := addEnemy(w, 400, 0, 10)
	MoveEnemies(w, tw, 10*Frame)
	if p := posOf(w, id); math.Abs(p.Y-10) > 1e-9 || p.X != 400 {
		t.Errorf("position = (%v,%v); want (400,10)", p.X, p.Y)
	}
}

func TestMoveEnemiesStopsAtContact(t *testing.T) {
	w := ecs.NewWorld()
	tw := newTower()
	id := addEnemy(w, 400, 250, 10)
	MoveEnemies(w, tw, time.Second)
	p := posOf(w, id)
	if d := p.Dist(tw.Position()); math.Abs(d-45) > 1e-9 {
		t.Errorf("distance = %v; want 45 (tower+enemy radius)", d)
	}
	if !InContact(tw, p, 15) {
		t.Error("clamped enemy should be in contact")
	}
	MoveEnemies(w, tw, time.Second)
	if q := posOf(w, id); q != p {
		t.Errorf("enemy in contact moved from %v to %v", p, q)
	}
}

func TestMoveEnemiesZeroDelta(t *testing.T) {
	w := ecs.NewWorld()
	id := addEnemy(w, 0, 0, 10)
	MoveEnemies(w, newTower(), 0)
	if p := posOf(w, id); p.X != 0 || p.Y != 0 {
		t.Errorf("enemy moved on zero delta: %v", p)
	}
}
