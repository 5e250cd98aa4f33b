// Package stats derives the tower's effective numbers from base values,
// purchased permanent bonuses and gem levels.
package stats

import (
	"math"
	"time"

	"tesla-tower/internal/config"
)

// Base holds the unmodified starting values of a run.
type Base struct {
	Damage      int
	MaxHealth   int
	ClickDamage int
	StartGold   int
}

// BaseFrom reads the base values out of the balance table.
func BaseFrom(b *config.Balance) Base {
	return Base{
		Damage:      b.Tower.Damage,
		MaxHealth:   b.Tower.Health,
		ClickDamage: b.Click.Damage,
		StartGold:   b.Tower.StartGold,
	}
}

// Bonuses are the additive upgrades bought with lifetime kills.
type Bonuses struct {
	Damage    int `json:"bonusDamage"`
	Health    int `json:"bonusHealth"`
	Click     int `json:"bonusClickDamage"`
	StartGold int `json:"bonusStartGold"`
}

// GemLevels are the multiplicative upgrades bought with gems.
type GemLevels struct {
	Damage int `json:"damageMultiplier"`
	Health int `json:"healthMultiplier"`
	Gold   int `json:"goldMultiplier"`
	XP     int `json:"xpMultiplier"`
	Crit   int `json:"critChance"`
	Regen  int `json:"healthRegen"`
}

// Effective is the result of Compute.
type Effective struct {
	Damage         int
	MaxHealth      int
	ClickDamage    int
	StartGold      int
	GoldMultiplier float64
	XPMultiplier   float64
	CritChance     float64
	RegenAmount    int
	RegenInterval  time.Duration
}

// Model applies a fixed set of per-level rates.
type Model struct {
	Rates config.Rates
}

// NewModel returns a Model using the balance rates.
func NewModel(b *config.Balance) Model { return Model{Rates: b.Rates} }

// Compute always recomputes from its three inputs and never mutates them, so
// calling it repeatedly with the same arguments yields the same result.
func (m Model) Compute(base Base, bonus Bonuses, gems GemLevels) Effective {
	r := m.Rates
	return Effective{
		Damage:         scale(base.Damage+bonus.Damage, gems.Damage, r.Damage),
		MaxHealth:      scale(base.MaxHealth+bonus.Health, gems.Health, r.Health),
		ClickDamage:    base.ClickDamage + bonus.Click,
		StartGold:      scale(base.StartGold+bonus.StartGold, gems.Gold, r.Gold),
		GoldMultiplier: 1 + float64(gems.Gold)*r.Gold,
		XPMultiplier:   1 + float64(gems.XP)*r.XP,
		CritChance:     float64(gems.Crit) * r.Crit,
		RegenAmount:    gems.Regen * r.RegenPerLevel,
		RegenInterval:  config.Millis(r.RegenIntervalMS),
	}
}

// Floor truncates v toward negative infinity, absorbing the float noise
// left by decimal rates (1.1*110 must give 121, not 120).
func Floor(v float64) int { return int(math.Floor(v + 1e-9)) }

func scale(v, level int, rate float64) int {
	return Floor(float64(v) * (1 + float64(level)*rate))
}
