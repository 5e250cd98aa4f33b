package generate

import (
	"math/rand"
	"time"

	"tesla-tower/internal/component"
	"tesla-tower/internal/config"
	"tesla-tower/internal/stats"
)

// EnemySpec describes one enemy to create. The spawner never touches the
// world; callers hand the spec to factory.NewEnemy.
type EnemySpec struct {
	Kind     component.EnemyKind
	Health   int
	Speed    float64
	Radius   float64
	Gold     float64
	Damage   int
	Interval time.Duration
	Explodes bool
	Splits   bool
}

// SpawnPoint is an arena coordinate where an enemy appears.
type SpawnPoint struct {
	X, Y float64
}

// Spawner picks enemy variants and spawn points for a wave.
type Spawner struct {
	enemies   config.Enemies
	bossEvery int
	viewport  config.Viewport
	gates     []gate
}

type gate struct {
	kind    component.EnemyKind
	minWave int
	below   float64
}

// NewSpawner builds a Spawner from the balance table. Gates naming unknown
// kinds are skipped; config validation rejects them earlier.
func NewSpawner(b *config.Balance) *Spawner {
	s := &Spawner{enemies: b.Enemies, bossEvery: b.Waves.BossEvery, viewport: b.Viewport}
	for _, g := range b.Enemies.Gates {
		k, ok := component.ParseEnemyKind(g.Kind)
		if !ok {
			continue
		}
		s.gates = append(s.gates, gate{kind: k, minWave: g.MinWave, below: g.Below})
	}
	return s
}

// Next decides the enemy for one spawn tick. A boss always wins on every
// bossEvery-th wave until one has been spawned; otherwise a single draw is
// tested against the gates in order and the first match wins, falling back
// to a normal enemy. The second result reports whether a boss was chosen.
func (s *Spawner) Next(wave int, bossSpawned bool, rng *rand.Rand) (EnemySpec, bool) {
	if wave%s.bossEvery == 0 && !bossSpawned {
		return s.Build(component.KindBoss, wave), true
	}
	r := rng.Float64()
	for _, g := range s.gates {
		if wave >= g.minWave && r < g.below {
			return s.Build(g.kind, wave), false
		}
	}
	return s.Build(component.KindNormal, wave), false
}

// Build returns the wave-scaled stats of the given kind.
func (s *Spawner) Build(kind component.EnemyKind, wave int) EnemySpec {
	v := s.enemies.Variants[kind.String()]
	if kind == component.KindBoss {
		v = s.enemies.Boss
	}
	spec := fromVariant(v, wave)
	spec.Kind = kind
	spec.Explodes = kind == component.KindExploder
	spec.Splits = kind == component.KindSpawner
	return spec
}

// Spawnling returns the stats of a child left behind by a dying spawner. It
// counts as a normal enemy but is cheaper and weaker than a wave spawn.
func (s *Spawner) Spawnling(wave int) EnemySpec {
	spec := fromVariant(s.enemies.Spawnling, wave)
	spec.Kind = component.KindNormal
	return spec
}

// EdgePoint returns a uniformly random point just outside one of the four
// viewport edges, the edge itself chosen uniformly.
func (s *Spawner) EdgePoint(rng *rand.Rand) SpawnPoint {
	w, h, off := s.viewport.Width, s.viewport.Height, s.viewport.SpawnOffset
	switch rng.Intn(4) {
	case 0:
		return SpawnPoint{X: rng.Float64() * w, Y: -off}
	case 1:
		return SpawnPoint{X: w + off, Y: rng.Float64() * h}
	case 2:
		return SpawnPoint{X: rng.Float64() * w, Y: h + off}
	default:
		return SpawnPoint{X: -off, Y: rng.Float64() * h}
	}
}

func fromVariant(v config.Variant, wave int) EnemySpec {
	w := float64(wave)
	return EnemySpec{
		Health:   stats.Floor(v.Health + v.HealthPerWave*w),
		Speed:    v.Speed + v.SpeedPerWave*w,
		Radius:   v.Radius,
		Gold:     v.Gold + v.GoldPerWave*w,
		Damage:   v.Damage,
		Interval: config.Millis(v.IntervalMS),
	}
}
