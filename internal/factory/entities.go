package factory

import (
	"math"
	"math/rand"
	"time"

	"tesla-tower/assets"
	"tesla-tower/internal/component"
	"tesla-tower/internal/ecs"
	"tesla-tower/internal/event"
	"tesla-tower/internal/generate"

	"github.com/gdamore/tcell/v2"
)

// Effect lifetimes in scaled time.
const (
	BoltLife      = 200 * time.Millisecond
	ClickBoltLife = 130 * time.Millisecond
	ParticleLife  = 400 * time.Millisecond
	NumberLife    = 800 * time.Millisecond
	CoinLife      = 700 * time.Millisecond
)

// neverHit predates any session clock value, so a fresh enemy may strike on
// its first contact tick.
const neverHit = -time.Hour

// NewEnemy creates an enemy entity from a spawn spec at (x, y).
func NewEnemy(w *ecs.World, spec generate.EnemySpec, x, y float64) ecs.EntityID {
	def := assets.EnemyFor(spec.Kind)
	id := w.CreateEntity()
	w.Add(id, component.Position{X: x, Y: y})
	w.Add(id, component.Health{Current: spec.Health, Max: spec.Health})
	w.Add(id, component.Enemy{
		Kind:           spec.Kind,
		Radius:         spec.Radius,
		Speed:          spec.Speed,
		ContactDamage:  spec.Damage,
		DamageInterval: spec.Interval,
		LastDamage:     neverHit,
		GoldValue:      spec.Gold,
		Explodes:       spec.Explodes,
		Splits:         spec.Splits,
	})
	order := 5
	if spec.Kind == component.KindBoss {
		order = 6
	}
	w.Add(id, component.Renderable{Glyph: def.Glyph, FGColor: def.Color, RenderOrder: order})
	return id
}

// NewSpawnling creates a child of a dead spawner. It behaves like a normal
// enemy but draws with its own glyph.
func NewSpawnling(w *ecs.World, spec generate.EnemySpec, x, y float64) ecs.EntityID {
	id := NewEnemy(w, spec, x, y)
	w.Add(id, component.Renderable{Glyph: assets.GlyphSpawnling, FGColor: tcell.ColorLightGreen, RenderOrder: 5})
	w.Add(id, component.TagSpawnling{})
	return id
}

// Materialize turns one tick's events into short-lived effect entities.
func Materialize(w *ecs.World, ev *event.Events, rng *rand.Rand) {
	for _, b := range ev.Bolts {
		life := BoltLife
		if b.Click {
			life = ClickBoltLife
		}
		id := w.CreateEntity()
		w.Add(id, component.Position{X: b.FromX, Y: b.FromY})
		w.Add(id, component.Effect{
			Kind: component.EffectBolt, Life: life, MaxLife: life,
			ToX: b.ToX, ToY: b.ToY, Chain: b.Chain, Crit: b.Crit,
		})
		w.Add(id, component.Renderable{Glyph: "⚡", FGColor: boltColor(b), RenderOrder: 8})
	}
	for _, b := range ev.Bursts {
		for i := 0; i < b.Count; i++ {
			newParticle(w, rng, b)
		}
	}
	for _, n := range ev.Numbers {
		id := w.CreateEntity()
		w.Add(id, component.Position{X: n.X, Y: n.Y})
		w.Add(id, component.Velocity{DY: -1})
		w.Add(id, component.Effect{Kind: component.EffectDamageNumber, Life: NumberLife, MaxLife: NumberLife, Text: n.Text, Crit: n.Crit})
		fg := tcell.ColorWhite
		if n.Crit {
			fg = tcell.ColorGold
		}
		w.Add(id, component.Renderable{FGColor: fg, RenderOrder: 9})
	}
	for _, c := range ev.Coins {
		id := w.CreateEntity()
		w.Add(id, component.Position{X: c.X, Y: c.Y})
		w.Add(id, component.Velocity{DY: -2})
		w.Add(id, component.Effect{Kind: component.EffectCoin, Life: CoinLife, MaxLife: CoinLife})
		w.Add(id, component.Renderable{Glyph: assets.GlyphCoin, FGColor: tcell.ColorGold, RenderOrder: 9})
	}
}

func newParticle(w *ecs.World, rng *rand.Rand, b event.Burst) {
	angle := rng.Float64() * 2 * math.Pi
	speed := 2 + rng.Float64()*3
	kind := component.EffectParticle
	if b.Kind == event.BurstSpark {
		kind = component.EffectSpark
	}
	id := w.CreateEntity()
	w.Add(id, component.Position{X: b.X, Y: b.Y})
	w.Add(id, component.Velocity{DX: math.Cos(angle) * speed, DY: math.Sin(angle) * speed})
	w.Add(id, component.Effect{Kind: kind, Life: ParticleLife, MaxLife: ParticleLife})
	w.Add(id, component.Renderable{Glyph: "·", FGColor: burstColor(b.Kind), RenderOrder: 7})
}

func boltColor(b event.Bolt) tcell.Color {
	switch {
	case b.Crit:
		return tcell.ColorGold
	case b.Click:
		return tcell.ColorYellow
	case b.Chain:
		return tcell.ColorLightCyan
	}
	return tcell.ColorAqua
}

func burstColor(k event.BurstKind) tcell.Color {
	switch k {
	case event.BurstHurt:
		return tcell.ColorRed
	case event.BurstShield:
		return tcell.NewHexColor(0x00ddff)
	case event.BurstExplosion:
		return tcell.ColorOrangeRed
	case event.BurstSmoke:
		return tcell.ColorGray
	case event.BurstStrike:
		return tcell.ColorYellow
	case event.BurstSpark:
		return tcell.ColorAqua
	}
	return tcell.ColorLightCyan
}
