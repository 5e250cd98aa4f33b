package system

import (
	"math"
	"testing"

	"tesla-tower/internal/component"
	"tesla-tower/internal/config"
	"tesla-tower/internal/ecs"
	"tesla-tower/internal/event"
	"tesla-tower/internal/generate"
)

func reapContext(wave int, tw *component.Tower) ReapContext {
	b := config.Default()
	return ReapContext{
		Wave:           wave,
		Tower:          tw,
		GoldMultiplier: 1,
		XPMultiplier:   1,
		Spawner:        generate.NewSpawner(b),
		Explosion:      b.Enemies.Explosion,
		Split:          b.Enemies.Split,
	}
}

func kill(w *ecs.World, id ecs.EntityID, mut func(*component.Enemy)) {
	e := w.Get(id, component.CEnemy).(component.Enemy)
	mut(&e)
	w.Add(id, e)
	w.Add(id, component.Health{Current: 0, Max: 10})
}

func TestReapAwardsAndRemoves(t *testing.T) {
	w := ecs.NewWorld()
	tw := newTower()
	dead := addEnemy(w, 100, 100, 10)
	kill(w, dead, func(e *component.Enemy) { e.GoldValue = 15 })
	alive := addEnemy(w, 120, 100, 10)

	ctx := reapContext(1, tw)
	ctx.GoldMultiplier = 1.2
	ctx.XPMultiplier = 1.45
	var ev event.Events
	res := Reap(w, ctx, &ev)

	if w.Alive(dead) || !w.Alive(alive) {
		t.Fatal("reap must remove exactly the dead enemy")
	}
	if res.Gold != 18 || res.Kills != 1 {
		t.Errorf("gold/kills = %d/%d; want 18/1", res.Gold, res.Kills)
	}
	if len(ev.Coins) != 1 || ev.Coins[0].Amount != 18 {
		t.Errorf("coins = %+v; want one of 18", ev.Coins)
	}
}

func explosionParticles(ev *event.Events) int {
	n := 0
	for _, b := range ev.Bursts {
		if b.Kind == event.BurstExplosion {
			n += b.Count
		}
	}
	return n
}

func TestExploderFarAwayDoesNoDamage(t *testing.T) {
	w := ecs.NewWorld()
	tw := newTower()
	id := addEnemy(w, 650, 300, 10)
	kill(w, id, func(e *component.Enemy) { e.Kind = component.KindExploder; e.Explodes = true })

	var ev event.Events
	res := Reap(w, reapContext(10, tw), &ev)
	if tw.Health != 100 || res.HealthLost != 0 {
		t.Errorf("health = %d; want 100 after distant explosion", tw.Health)
	}
	if res.Deaths[0].Exploded {
		t.Error("distant exploder flagged as exploded")
	}
	if n := explosionParticles(&ev); n != 8 {
		t.Errorf("explosion particles = %d; want 8", n)
	}
}

func TestExploderNearbyHitsShieldFirst(t *testing.T) {
	w := ecs.NewWorld()
	tw := newTower()
	id := addEnemy(w, 500, 300, 10)
	kill(w, id, func(e *component.Enemy) { e.Kind = component.KindExploder; e.Explodes = true })

	var ev event.Events
	res := Reap(w, reapContext(16, tw), &ev)
	if d := res.Deaths[0]; !d.Exploded || d.ExplosionDamage != 13 {
		t.Fatalf("death = %+v; want explosion for 13", d)
	}
	if tw.Health != 87 || res.HealthLost != 13 {
		t.Errorf("health = %d; want 87", tw.Health)
	}
	if n := explosionParticles(&ev); n != 15 {
		t.Errorf("explosion particles = %d; want 15", n)
	}

	tw2 := newTower()
	tw2.Shield = 4
	w2 := ecs.NewWorld()
	id2 := addEnemy(w2, 500, 300, 10)
	kill(w2, id2, func(e *component.Enemy) { e.Explodes = true })
	Reap(w2, reapContext(16, tw2), &ev)
	if tw2.Shield != 0 || tw2.Health != 100 {
		t.Errorf("shield/health = %d/%d; want 0/100", tw2.Shield, tw2.Health)
	}
}

func TestSpawnerSplitsIntoTwo(t *testing.T) {
	w := ecs.NewWorld()
	tw := newTower()
	id := addEnemy(w, 200, 300, 10)
	addEnemy(w, 100, 100, 10)
	kill(w, id, func(e *component.Enemy) { e.Kind = component.KindSpawner; e.Splits = true })
	before := w.Count(component.CEnemy)

	var ev event.Events
	res := Reap(w, reapContext(10, tw), &ev)
	if got := w.Count(component.CEnemy); got != before+1 {
		t.Fatalf("enemies = %d; want %d (net +1)", got, before+1)
	}
	children := res.Deaths[0].Children
	if len(children) != 2 {
		t.Fatalf("children = %d; want 2", len(children))
	}
	for _, c := range children {
		e := w.Get(c, component.CEnemy).(component.Enemy)
		hp := w.Get(c, component.CHealth).(component.Health)
		if e.Kind != component.KindNormal || hp.Max != 45 {
			t.Errorf("child = %v/%d HP; want normal/45", e.Kind, hp.Max)
		}
		if math.Abs(e.Speed-1.3) > 1e-9 || math.Abs(e.GoldValue-18) > 1e-9 {
			t.Errorf("child speed/gold = %v/%v; want 1.3/18", e.Speed, e.GoldValue)
		}
		if !w.Has(c, component.CTagSpawnling) {
			t.Error("child missing spawnling tag")
		}
		p := posOf(w, c)
		if d := p.Dist(component.Position{X: 200, Y: 300}); math.Abs(d-30) > 1e-9 {
			t.Errorf("child distance = %v; want 30", d)
		}
	}
}

func TestSpawnerChildrenAngledFromXAxis(t *testing.T) {
	w := ecs.NewWorld()
	id := addEnemy(w, 400, 100, 10)
	kill(w, id, func(e *component.Enemy) { e.Kind = component.KindSpawner; e.Splits = true })

	var ev event.Events
	res := Reap(w, reapContext(10, newTower()), &ev)
	children := res.Deaths[0].Children
	if len(children) != 2 {
		t.Fatalf("children = %d; want 2", len(children))
	}
	for i, want := range []float64{-0.5, 0.5} {
		p := posOf(w, children[i])
		if got := math.Atan2(p.Y-100, p.X-400); math.Abs(got-want) > 1e-9 {
			t.Errorf("child %d angle = %v; want %v", i, got, want)
		}
	}
}
