package component

import "testing"

func TestTakeHitShieldDoesNotCarryOver(t *testing.T) {
	tw := &Tower{Health: 100, MaxHealth: 100, Shield: 3, MaxShield: 5}
	lost := tw.TakeHit(5)
	if tw.Shield != 0 {
		t.Errorf("shield = %d; want 0", tw.Shield)
	}
	if tw.Health != 100 || lost != 0 {
		t.Errorf("health = %d lost = %d; want 100 and 0", tw.Health, lost)
	}

	lost = tw.TakeHit(5)
	if tw.Health != 95 || lost != 5 {
		t.Errorf("health = %d lost = %d; want 95 and 5 once shield is empty", tw.Health, lost)
	}
}

func TestTakeHitIgnoresNonPositive(t *testing.T) {
	tw := &Tower{Health: 10, MaxHealth: 10}
	if lost := tw.TakeHit(0); lost != 0 || tw.Health != 10 {
		t.Errorf("TakeHit(0) changed health to %d", tw.Health)
	}
}

func TestDestroyedAtZero(t *testing.T) {
	tw := &Tower{Health: 2, MaxHealth: 10}
	tw.TakeHit(2)
	if !tw.Destroyed() {
		t.Error("tower at 0 health should be destroyed")
	}
}

func TestHealCapsAtMax(t *testing.T) {
	tw := &Tower{Health: 95, MaxHealth: 100}
	if got := tw.Heal(10); got != 5 {
		t.Errorf("Heal = %d; want 5", got)
	}
	if tw.Health != 100 {
		t.Errorf("health = %d; want 100", tw.Health)
	}
	if got := tw.Heal(10); got != 0 {
		t.Errorf("Heal at full = %d; want 0", got)
	}
}

func TestEnemyKindNames(t *testing.T) {
	for _, k := range EnemyKinds {
		got, ok := ParseEnemyKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseEnemyKind(%q) = %v,%v; want %v", k.String(), got, ok, k)
		}
	}
	if _, ok := ParseEnemyKind("dragon"); ok {
		t.Error("unknown kind parsed")
	}
	if EnemyKind(42).String() != "unknown" {
		t.Error("out of range kind should be unknown")
	}
}

func TestEffectFraction(t *testing.T) {
	e := Effect{Life: 50, MaxLife: 200}
	if f := e.Fraction(); f != 0.25 {
		t.Errorf("Fraction = %v; want 0.25", f)
	}
	if f := (Effect{Life: -5, MaxLife: 10}).Fraction(); f != 0 {
		t.Errorf("expired Fraction = %v; want 0", f)
	}
}
