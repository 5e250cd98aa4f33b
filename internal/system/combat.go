package system

import (
	"math/rand"
	"slices"
	"strconv"
	"time"

	"tesla-tower/internal/component"
	"tesla-tower/internal/ecs"
	"tesla-tower/internal/event"
)

// Particle counts emitted by tower attacks.
const (
	sparkParticles  = 6
	impactParticles = 8
	cyanParticles   = 3
	deathParticles  = 4
)

// Hit records one enemy damaged by a tower volley.
type Hit struct {
	Target ecs.EntityID
	Damage int
	Crit   bool
	Killed bool
	Depth  int
}

// Volley is the outcome of one FireTower call.
type Volley struct {
	Fired  bool
	Hits   []Hit
	Damage int
}

// Kills counts the enemies this volley brought to zero health.
func (v Volley) Kills() int {
	n := 0
	for _, h := range v.Hits {
		if h.Killed {
			n++
		}
	}
	return n
}

type candidate struct {
	id   ecs.EntityID
	pos  component.Position
	dist float64
}

// FireTower resolves one tower attack at unscaled time now. The tower fires
// only when its cooldown has elapsed and at least one living enemy is inside
// its range; the MaxTargets nearest enemies each start an independent chain
// with an empty hit set. Dead enemies awaiting removal are never targeted.
func FireTower(w *ecs.World, rng *rand.Rand, t *component.Tower, now time.Duration, critChance float64, ev *event.Events) Volley {
	var v Volley
	if now-t.LastFire < t.FireInterval {
		return v
	}
	origin := t.Position()
	targets := living(w, origin, t.Range, nil)
	n := min(len(targets), t.MaxTargets)
	if n <= 0 {
		return v
	}
	targets = targets[:n]
	v.Fired = true
	t.LastFire = now
	ev.Burst(t.X, t.Y, sparkParticles, event.BurstSpark)

	c := chainer{w: w, rng: rng, tower: t, crit: critChance, ev: ev, volley: &v}
	for _, target := range targets {
		c.attack(target.id, origin, make(map[ecs.EntityID]struct{}), 0)
	}
	return v
}

type chainer struct {
	w      *ecs.World
	rng    *rand.Rand
	tower  *component.Tower
	crit   float64
	ev     *event.Events
	volley *Volley
}

// attack damages target and then jumps to the nearest un-hit living enemy
// within chain range of it. Depth never exceeds the tower's jump count. A
// target killed earlier in the same volley is left alone.
func (c *chainer) attack(target ecs.EntityID, from component.Position, hit map[ecs.EntityID]struct{}, depth int) {
	if _, seen := hit[target]; seen || depth > c.tower.ChainJumps {
		return
	}
	hpc := c.w.Get(target, component.CHealth)
	pc := c.w.Get(target, component.CPosition)
	if hpc == nil || pc == nil {
		return
	}
	hp := hpc.(component.Health)
	if hp.Dead() {
		return
	}
	pos := pc.(component.Position)

	dmg := c.tower.Damage
	crit := false
	if c.crit > 0 && c.rng.Float64() < c.crit {
		dmg *= 2
		crit = true
	}
	hp.Current -= dmg
	c.w.Add(target, hp)
	hit[target] = struct{}{}

	killed := hp.Dead()
	c.volley.Damage += dmg
	c.volley.Hits = append(c.volley.Hits, Hit{Target: target, Damage: dmg, Crit: crit, Killed: killed, Depth: depth})

	text := strconv.Itoa(dmg)
	if crit {
		text += "!"
	}
	c.ev.Number(pos.X, pos.Y, text, crit)
	c.ev.Bolt(event.Bolt{FromX: from.X, FromY: from.Y, ToX: pos.X, ToY: pos.Y, Chain: depth > 0, Crit: crit})
	c.ev.Burst(pos.X, pos.Y, impactParticles, event.BurstImpact)
	c.ev.Burst(pos.X, pos.Y, cyanParticles, event.BurstSpark)
	if killed {
		c.ev.Burst(pos.X, pos.Y, deathParticles, event.BurstHurt)
	}

	if depth >= c.tower.ChainJumps {
		return
	}
	next := living(c.w, pos, c.tower.ChainRange, hit)
	if len(next) == 0 {
		return
	}
	c.attack(next[0].id, pos, hit, depth+1)
}

// living returns enemies with health left within radius of p, nearest first
// with ties broken by ID. Entities in skip are left out.
func living(w *ecs.World, p component.Position, radius float64, skip map[ecs.EntityID]struct{}) []candidate {
	var out []candidate
	for _, id := range w.Query(component.CEnemy, component.CPosition, component.CHealth) {
		if _, ok := skip[id]; ok {
			continue
		}
		if w.Get(id, component.CHealth).(component.Health).Dead() {
			continue
		}
		pos := w.Get(id, component.CPosition).(component.Position)
		d := p.Dist(pos)
		if d > radius {
			continue
		}
		out = append(out, candidate{id: id, pos: pos, dist: d})
	}
	slices.SortStableFunc(out, func(a, b candidate) int {
		switch {
		case a.dist < b.dist:
			return -1
		case a.dist > b.dist:
			return 1
		}
		return 0
	})
	return out
}
