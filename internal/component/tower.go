package component

import "time"

// Tower is the singleton the player defends. The session owns it directly
// instead of storing it in the world.
type Tower struct {
	X, Y         float64
	Radius       float64
	Health       int
	MaxHealth    int
	Shield       int
	MaxShield    int
	Damage       int
	Range        float64
	FireInterval time.Duration
	MaxTargets   int
	ChainJumps   int
	ChainRange   float64
	LastFire     time.Duration
	Level        int
}

// Position returns the tower center.
func (t *Tower) Position() Position { return Position{X: t.X, Y: t.Y} }

// TakeHit applies incoming damage shield first. While any shield remains the
// whole hit lands on the shield and the overflow is discarded; health is only
// touched once the shield is already empty. It returns the health lost.
func (t *Tower) TakeHit(dmg int) int {
	if dmg <= 0 {
		return 0
	}
	if t.Shield > 0 {
		t.Shield = max(0, t.Shield-dmg)
		return 0
	}
	t.Health -= dmg
	return dmg
}

// Destroyed reports whether the run is lost.
func (t *Tower) Destroyed() bool { return t.Health <= 0 }

// Heal restores up to n health without exceeding the maximum and returns the
// amount actually restored.
func (t *Tower) Heal(n int) int {
	if n <= 0 || t.Health >= t.MaxHealth {
		return 0
	}
	before := t.Health
	t.Health = min(t.MaxHealth, t.Health+n)
	return t.Health - before
}
