package system

import (
	"math/rand"
	"testing"
	"time"

	"tesla-tower/internal/ecs"
	"tesla-tower/internal/event"
)

func TestChainStopsOutsideChainRange(t *testing.T) {
	w := ecs.NewWorld()
	tw := newTower()
	tw.ChainJumps = 2
	first := addEnemy(w, 450, 300, 100)
	second := addEnemy(w, 500, 300, 100)
	third := addEnemy(w, 600, 300, 100)

	var ev event.Events
	v := FireTower(w, rand.New(rand.NewSource(1)), tw, 0, 0, &ev)
	if !v.Fired {
		t.Fatal("tower should fire with a target in range")
	}
	if len(v.Hits) != 2 {
		t.Fatalf("hits = %d; want 2", len(v.Hits))
	}
	if healthOf(w, first) != 90 || healthOf(w, second) != 90 {
		t.Errorf("first/second HP = %d/%d; want 90/90", healthOf(w, first), healthOf(w, second))
	}
	if healthOf(w, third) != 100 {
		t.Errorf("third HP = %d; want 100 (beyond chain range)", healthOf(w, third))
	}
	if v.Hits[1].Depth != 1 || !ev.Bolts[1].Chain {
		t.Error("second hit should be a chained bolt")
	}
	if v.Damage != 20 {
		t.Errorf("volley damage = %d; want 20", v.Damage)
	}
}

func TestChainBoundAndExclusive(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		w := ecs.NewWorld()
		tw := newTower()
		tw.ChainJumps = rng.Intn(6)
		tw.ChainRange = 40 + rng.Float64()*120
		for i := 0; i < 3+rng.Intn(12); i++ {
			addEnemy(w, 250+rng.Float64()*300, 150+rng.Float64()*300, 1000)
		}
		var ev event.Events
		v := FireTower(w, rng, tw, 0, 0, &ev)
		if len(v.Hits) > tw.ChainJumps+1 {
			t.Fatalf("trial %d: %d hits with %d jumps", trial, len(v.Hits), tw.ChainJumps)
		}
		seen := map[ecs.EntityID]bool{}
		for _, h := range v.Hits {
			if seen[h.Target] {
				t.Fatalf("trial %d: enemy %d hit twice", trial, h.Target)
			}
			seen[h.Target] = true
		}
	}
}

func TestFireTowerRespectsCooldown(t *testing.T) {
	w := ecs.NewWorld()
	tw := newTower()
	tw.LastFire = 0
	addEnemy(w, 450, 300, 100)
	var ev event.Events
	if v := FireTower(w, nil, tw, 999*time.Millisecond, 0, &ev); v.Fired {
		t.Fatal("tower fired before its interval elapsed")
	}
	if v := FireTower(w, nil, tw, time.Second, 0, &ev); !v.Fired {
		t.Fatal("tower should fire once the interval has elapsed")
	}
	if tw.LastFire != time.Second {
		t.Errorf("LastFire = %v; want 1s", tw.LastFire)
	}
}

func TestFireTowerNoTargetKeepsCooldown(t *testing.T) {
	w := ecs.NewWorld()
	tw := newTower()
	addEnemy(w, 400, 500, 100)
	var ev event.Events
	if v := FireTower(w, nil, tw, 5*time.Second, 0, &ev); v.Fired {
		t.Fatal("tower fired with nothing in range")
	}
	if tw.LastFire != -time.Hour {
		t.Errorf("LastFire changed to %v without a target", tw.LastFire)
	}
	if !ev.Empty() {
		t.Error("idle tower emitted events")
	}
}

func TestFireTowerPicksNearestTargets(t *testing.T) {
	w := ecs.NewWorld()
	tw := newTower()
	tw.MaxTargets = 2
	far := addEnemy(w, 540, 300, 100)
	near := addEnemy(w, 420, 300, 100)
	mid := addEnemy(w, 400, 200, 100)
	var ev event.Events
	v := FireTower(w, nil, tw, 0, 0, &ev)
	if len(v.Hits) != 2 || v.Hits[0].Target != near || v.Hits[1].Target != mid {
		t.Fatalf("hits = %+v; want near then mid", v.Hits)
	}
	if healthOf(w, far) != 100 {
		t.Error("farthest enemy should be untouched")
	}
}

func TestIndependentChainsMayShareEnemies(t *testing.T) {
	w := ecs.NewWorld()
	tw := newTower()
	tw.MaxTargets = 2
	tw.ChainJumps = 1
	a := addEnemy(w, 450, 300, 100)
	b := addEnemy(w, 460, 300, 100)
	var ev event.Events
	v := FireTower(w, nil, tw, 0, 0, &ev)
	if len(v.Hits) != 4 {
		t.Fatalf("hits = %d; want 4 (two chains of two)", len(v.Hits))
	}
	if healthOf(w, a) != 80 || healthOf(w, b) != 80 {
		t.Errorf("HP = %d/%d; want 80/80", healthOf(w, a), healthOf(w, b))
	}
}

func TestDeadEnemiesAreNotTargeted(t *testing.T) {
	w := ecs.NewWorld()
	tw := newTower()
	tw.MaxTargets = 2
	tw.ChainJumps = 3
	a := addEnemy(w, 450, 300, 10)
	b := addEnemy(w, 470, 300, 100)
	var ev event.Events
	v := FireTower(w, nil, tw, 0, 0, &ev)
	if v.Kills() != 1 {
		t.Fatalf("kills = %d; want 1", v.Kills())
	}
	if healthOf(w, a) != 0 {
		t.Errorf("dead enemy HP = %d; want 0 (hit once)", healthOf(w, a))
	}
	if healthOf(w, b) != 80 {
		t.Errorf("survivor HP = %d; want 80", healthOf(w, b))
	}
}

func TestPrimaryKilledByEarlierChainIsSkipped(t *testing.T) {
	w := ecs.NewWorld()
	tw := newTower()
	tw.MaxTargets = 2
	tw.ChainJumps = 1
	a := addEnemy(w, 450, 300, 100)
	b := addEnemy(w, 470, 300, 10)
	var ev event.Events
	v := FireTower(w, nil, tw, 0, 0, &ev)

	if len(v.Hits) != 2 {
		t.Fatalf("hits = %+v; want 2 (A, then the chain to B)", v.Hits)
	}
	if v.Kills() != 1 {
		t.Errorf("kills = %d; want 1", v.Kills())
	}
	if v.Damage != 20 {
		t.Errorf("volley damage = %d; want 20", v.Damage)
	}
	if healthOf(w, b) != 0 {
		t.Errorf("B HP = %d; want 0 (hit once)", healthOf(w, b))
	}
	if healthOf(w, a) != 90 {
		t.Errorf("A HP = %d; want 90", healthOf(w, a))
	}
}

func TestCritDoublesDamage(t *testing.T) {
	w := ecs.NewWorld()
	tw := newTower()
	id := addEnemy(w, 450, 300, 100)
	var ev event.Events
	v := FireTower(w, rand.New(rand.NewSource(1)), tw, 0, 1, &ev)
	if !v.Hits[0].Crit || healthOf(w, id) != 80 {
		t.Errorf("crit hit = %+v, HP %d; want crit for 20", v.Hits[0], healthOf(w, id))
	}
	if !ev.Numbers[0].Crit {
		t.Error("crit damage number not flagged")
	}
}
