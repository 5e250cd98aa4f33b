package system

import (
	"math"

	"tesla-tower/internal/component"
	"tesla-tower/internal/config"
	"tesla-tower/internal/ecs"
	"tesla-tower/internal/event"
	"tesla-tower/internal/factory"
	"tesla-tower/internal/generate"
	"tesla-tower/internal/stats"
)

// ReapContext carries what death handling needs from the session.
type ReapContext struct {
	Wave           int
	Tower          *component.Tower
	GoldMultiplier float64
	XPMultiplier   float64
	Spawner        *generate.Spawner
	Explosion      config.Explosion
	Split          config.Split
}

// Death describes one removed enemy.
type Death struct {
	ID        ecs.EntityID
	Kind      component.EnemyKind
	Gold      int
	Kills     int
	Spawnling bool
	// Exploded is set when an exploder died close enough to hurt the tower.
	Exploded        bool
	ExplosionDamage int
	Children        []ecs.EntityID
}

// ReapResult sums a reap pass.
type ReapResult struct {
	Deaths     []Death
	Gold       int
	Kills      int
	HealthLost int
}

// Reap removes every enemy with no health left, in ID order, awarding gold
// and kills and running death behavior. Children of a dying spawner are
// created after it is removed and are not reaped in the same pass.
func Reap(w *ecs.World, ctx ReapContext, ev *event.Events) ReapResult {
	var res ReapResult
	kills := stats.Floor(ctx.XPMultiplier)
	for _, id := range w.Query(component.CEnemy, component.CHealth, component.CPosition) {
		if !w.Get(id, component.CHealth).(component.Health).Dead() {
			continue
		}
		e := w.Get(id, component.CEnemy).(component.Enemy)
		pos := w.Get(id, component.CPosition).(component.Position)
		d := Death{
			ID:        id,
			Kind:      e.Kind,
			Gold:      stats.Floor(e.GoldValue * ctx.GoldMultiplier),
			Kills:     kills,
			Spawnling: w.Has(id, component.CTagSpawnling),
		}
		w.DestroyEntity(id)
		ev.Coin(pos.X, pos.Y, d.Gold)

		switch {
		case e.Explodes:
			explode(&d, pos, ctx, &res, ev)
		case e.Splits:
			d.Children = split(w, pos, ctx)
			ev.Burst(pos.X, pos.Y, 12, event.BurstSmoke)
		default:
			ev.Burst(pos.X, pos.Y, 5, event.BurstHurt)
		}

		res.Gold += d.Gold
		res.Kills += d.Kills
		res.Deaths = append(res.Deaths, d)
	}
	return res
}

// ExplosionDamage is the tower damage of an exploder dying at wave.
func ExplosionDamage(x config.Explosion, wave int) int {
	if x.WavesPerDamage <= 0 {
		return x.Damage
	}
	return x.Damage + wave/x.WavesPerDamage
}

func explode(d *Death, pos component.Position, ctx ReapContext, res *ReapResult, ev *event.Events) {
	t := ctx.Tower
	if pos.Dist(t.Position()) >= ctx.Explosion.Radius {
		ev.Burst(pos.X, pos.Y, ctx.Explosion.ParticlesFar, event.BurstExplosion)
		return
	}
	d.Exploded = true
	d.ExplosionDamage = ExplosionDamage(ctx.Explosion, ctx.Wave)
	res.HealthLost += t.TakeHit(d.ExplosionDamage)
	ev.Burst(pos.X, pos.Y, ctx.Explosion.ParticlesNear, event.BurstExplosion)
}

// split places the children on an arc of fixed radius around the death
// point, spread symmetrically about angle zero.
func split(w *ecs.World, pos component.Position, ctx ReapContext) []ecs.EntityID {
	n := ctx.Split.Count
	spec := ctx.Spawner.Spawnling(ctx.Wave)
	ids := make([]ecs.EntityID, 0, n)
	for j := 0; j < n; j++ {
		angle := 0.0
		if n > 1 {
			angle = ctx.Split.Spread * (2*float64(j)/float64(n-1) - 1)
		}
		x := pos.X + math.Cos(angle)*ctx.Split.Distance
		y := pos.Y + math.Sin(angle)*ctx.Split.Distance
		ids = append(ids, factory.NewSpawnling(w, spec, x, y))
	}
	return ids
}
