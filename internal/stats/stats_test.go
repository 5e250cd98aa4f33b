package stats

import (
	"testing"
	"time"

	"tesla-tower/internal/config"
)

func newModel() (Model, Base) {
	b := config.Default()
	return NewModel(b), BaseFrom(b)
}

func TestComputeNoBonuses(t *testing.T) {
	m, base := newModel()
	eff := m.Compute(base, Bonuses{}, GemLevels{})
	if eff.Damage != 10 || eff.MaxHealth != 100 || eff.ClickDamage != 5 || eff.StartGold != 100 {
		t.Errorf("eff = %+v; want base values", eff)
	}
	if eff.GoldMultiplier != 1 || eff.XPMultiplier != 1 {
		t.Errorf("multipliers = %v/%v; want 1/1", eff.GoldMultiplier, eff.XPMultiplier)
	}
	if eff.CritChance != 0 || eff.RegenAmount != 0 {
		t.Errorf("crit/regen = %v/%d; want 0/0", eff.CritChance, eff.RegenAmount)
	}
	if eff.RegenInterval != 5*time.Second {
		t.Errorf("regen interval = %v; want 5s", eff.RegenInterval)
	}
}

func TestComputeAdditiveThenMultiplicative(t *testing.T) {
	m, base := newModel()
	eff := m.Compute(base,
		Bonuses{Damage: 4, Health: 20, Click: 2, StartGold: 50},
		GemLevels{Damage: 2, Health: 1, Gold: 3, XP: 2, Crit: 3, Regen: 2})

	cases := []struct {
		name      string
		got, want int
	}{
		{"damage (10+4)*1.2", eff.Damage, 16},
		{"health (100+20)*1.1", eff.MaxHealth, 132},
		{"click 5+2", eff.ClickDamage, 7},
		{"gold (100+50)*1.6", eff.StartGold, 240},
		{"regen", eff.RegenAmount, 2},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s = %d; want %d", tc.name, tc.got, tc.want)
		}
	}
	if d := eff.XPMultiplier - 1.3; d > 1e-9 || d < -1e-9 {
		t.Errorf("xp multiplier = %v; want 1.3", eff.XPMultiplier)
	}
	if d := eff.CritChance - 0.15; d > 1e-9 || d < -1e-9 {
		t.Errorf("crit = %v; want 0.15", eff.CritChance)
	}
}

func TestComputeIdempotent(t *testing.T) {
	m, base := newModel()
	bonus := Bonuses{Damage: 6, Health: 40}
	gems := GemLevels{Damage: 7, Health: 3, Gold: 1}
	a := m.Compute(base, bonus, gems)
	b := m.Compute(base, bonus, gems)
	if a != b {
		t.Errorf("second call differs: %+v vs %+v", a, b)
	}
	if bonus.Damage != 6 || gems.Damage != 7 {
		t.Error("inputs mutated")
	}
}

func TestFloorAbsorbsFloatNoise(t *testing.T) {
	if got := Floor(110 * 1.1); got != 121 {
		t.Errorf("Floor(110*1.1) = %d; want 121", got)
	}
	if got := Floor(12.9); got != 12 {
		t.Errorf("Floor(12.9) = %d; want 12", got)
	}
}
