package component

import (
	"time"

	"tesla-tower/internal/ecs"
)

const CEffect ecs.ComponentType = 7

// EffectKind describes what a transient effect draws.
type EffectKind uint8

const (
	EffectBolt EffectKind = iota
	EffectParticle
	EffectDamageNumber
	EffectCoin
	EffectSpark
)

// Effect is a visual-only entity. It ages on scaled time and is destroyed once
// Life runs out. Bolts are drawn from their Position to (ToX, ToY).
type Effect struct {
	Kind    EffectKind
	Life    time.Duration
	MaxLife time.Duration
	ToX     float64
	ToY     float64
	Text    string
	Chain   bool
	Crit    bool
}

func (Effect) Type() ecs.ComponentType { return CEffect }

// Fraction returns the remaining share of the effect's life in [0,1].
func (e Effect) Fraction() float64 {
	if e.MaxLife <= 0 {
		return 0
	}
	f := float64(e.Life) / float64(e.MaxLife)
	if f < 0 {
		return 0
	}
	return f
}
