package sim

import (
	"errors"
	"fmt"
	"time"

	"tesla-tower/internal/config"
	"tesla-tower/internal/progress"
	"tesla-tower/internal/system"
)

// UpgradeKind is one of the in-run upgrades bought with gold.
type UpgradeKind uint8

const (
	UpgradeDamage UpgradeKind = iota
	UpgradeRange
	UpgradeFireRate
	UpgradeHealth
	UpgradeTargets
	UpgradeClickDamage
	UpgradeChainLightning
	UpgradeShield
)

// UpgradeKinds lists the upgrades in shop order.
var UpgradeKinds = []UpgradeKind{
	UpgradeDamage, UpgradeRange, UpgradeFireRate, UpgradeHealth,
	UpgradeTargets, UpgradeClickDamage, UpgradeChainLightning, UpgradeShield,
}

var upgradeNames = [...]string{"damage", "range", "fireRate", "health", "targets", "clickDamage", "chainLightning", "shield"}

func (k UpgradeKind) String() string {
	if int(k) < len(upgradeNames) {
		return upgradeNames[k]
	}
	return "unknown"
}

// ParseUpgradeKind is the inverse of String.
func ParseUpgradeKind(s string) (UpgradeKind, bool) {
	for i, n := range upgradeNames {
		if n == s {
			return UpgradeKind(i), true
		}
	}
	return 0, false
}

func upgradeRow(u config.Upgrades, k UpgradeKind) (config.Upgrade, bool) {
	switch k {
	case UpgradeDamage:
		return u.Damage, true
	case UpgradeRange:
		return u.Range, true
	case UpgradeFireRate:
		return u.FireRate, true
	case UpgradeHealth:
		return u.Health, true
	case UpgradeTargets:
		return u.Targets, true
	case UpgradeClickDamage:
		return u.ClickDamage, true
	case UpgradeChainLightning:
		return u.ChainLightning, true
	case UpgradeShield:
		return u.Shield, true
	}
	return config.Upgrade{}, false
}

func baseCosts(u config.Upgrades) map[UpgradeKind]int {
	costs := make(map[UpgradeKind]int, len(UpgradeKinds))
	for _, k := range UpgradeKinds {
		row, _ := upgradeRow(u, k)
		costs[k] = row.Cost
	}
	return costs
}

// Cost returns the current gold price of k.
func (s *Session) Cost(k UpgradeKind) int { return s.costs[k] }

// Upgrade buys one level of k with gold. It is allowed while a run is under
// way, paused or not, and never mutates anything when it fails.
func (s *Session) Upgrade(k UpgradeKind) error {
	row, ok := upgradeRow(s.cfg.Upgrades, k)
	if !ok {
		return fmt.Errorf("upgrade %v: %w", k, ErrUnknownUpgrade)
	}
	if s.state != Running && s.state != Paused {
		return fmt.Errorf("upgrade %v: %w", k, ErrNotRunning)
	}
	cost := s.costs[k]
	if s.gold < cost {
		s.addMessage(MsgBad, "Not enough gold! %s costs %d", k, cost)
		return fmt.Errorf("upgrade %v for %d gold: %w", k, cost, ErrInsufficientGold)
	}
	if k == UpgradeHealth && s.tower.Health >= s.tower.MaxHealth {
		s.addMessage(MsgBad, "Tower is already at full health!")
		return fmt.Errorf("upgrade %v: %w", k, ErrFullHealth)
	}

	t := &s.tower
	step := row.Step
	switch k {
	case UpgradeDamage:
		t.Damage += int(step)
	case UpgradeRange:
		t.Range += step
	case UpgradeFireRate:
		minimum := config.Millis(s.cfg.Upgrades.MinFireRateMS)
		t.FireInterval = max(minimum, t.FireInterval-time.Duration(step)*time.Millisecond)
	case UpgradeHealth:
		t.Heal(int(step))
	case UpgradeTargets:
		t.MaxTargets += int(step)
	case UpgradeClickDamage:
		s.clickDamage += int(step)
	case UpgradeChainLightning:
		t.ChainJumps += int(step)
	case UpgradeShield:
		t.MaxShield += int(step)
		t.Shield = t.MaxShield
	}
	s.gold -= cost
	s.costs[k] = row.Next(cost)
	t.Level++
	s.run.UpgradesUsed++
	s.addMessage(MsgGood, "Upgraded %s! Level %d", k, t.Level)
	return nil
}

// BuyPermanent spends lifetime kills and applies the new bonus to the
// current tower at once.
func (s *Session) BuyPermanent(k progress.PermKind) error {
	if _, err := s.prog.BuyPermanent(k); err != nil {
		if errors.Is(err, progress.ErrInsufficientKills) {
			s.addMessage(MsgBad, "Not enough total kills!")
		}
		return err
	}
	s.refreshEffective()
	s.addMessage(MsgGood, "Permanent Upgrade Purchased! ✓")
	return nil
}

// BuyGem spends gems and applies the new multipliers at once.
func (s *Session) BuyGem(k progress.GemKind) error {
	if _, err := s.prog.BuyGem(k); err != nil {
		if errors.Is(err, progress.ErrInsufficientGems) {
			s.addMessage(MsgBad, "Not enough gems!")
		}
		return err
	}
	s.refreshEffective()
	s.addMessage(MsgGood, "Gem Upgrade Purchased! 💎")
	return nil
}

// UnlockTheme buys a theme with gems.
func (s *Session) UnlockTheme(id string) error {
	if err := s.prog.UnlockTheme(id); err != nil {
		switch {
		case errors.Is(err, progress.ErrThemeLocked):
			s.addMessage(MsgBad, "Theme locked! Earn its achievement first.")
		case errors.Is(err, progress.ErrInsufficientGems):
			s.addMessage(MsgBad, "Not enough gems!")
		}
		return err
	}
	s.addMessage(MsgGood, "Theme unlocked! 🎨")
	return nil
}

// ApplyTheme switches to an owned theme.
func (s *Session) ApplyTheme(id string) error {
	if err := s.prog.ApplyTheme(id); err != nil {
		return err
	}
	s.addMessage(MsgGood, "Theme applied: %s", s.prog.Theme().Name)
	return nil
}

// refreshEffective recomputes effective stats and carries the differences
// into the live tower, click damage and purse.
func (s *Session) refreshEffective() {
	old := s.eff
	s.eff = s.prog.Effective()
	s.tower.Damage += s.eff.Damage - old.Damage
	if d := s.eff.MaxHealth - old.MaxHealth; d != 0 {
		s.tower.MaxHealth += d
		s.tower.Health = min(s.tower.MaxHealth, max(1, s.tower.Health+d))
	}
	s.clickDamage += s.eff.ClickDamage - old.ClickDamage
	s.gold += s.eff.StartGold - old.StartGold
}

// ClickDamage returns the manual strike damage.
func (s *Session) ClickDamage() int { return s.clickDamage }

// PressStrike fires a manual strike near (x, y) and keeps repeating it from
// Tick while held.
func (s *Session) PressStrike(x, y float64) error {
	if s.state != Running {
		return ErrNotRunning
	}
	s.strike.held = true
	s.strike.x, s.strike.y = x, y
	s.strikeAt(x, y)
	return nil
}

// MoveStrike retargets a held strike.
func (s *Session) MoveStrike(x, y float64) {
	s.strike.x, s.strike.y = x, y
}

// ReleaseStrike stops repeating.
func (s *Session) ReleaseStrike() { s.strike.held = false }

// strikeAt lands one strike scattered around (x, y).
func (s *Session) strikeAt(x, y float64) {
	c := s.cfg.Click
	s.strike.last = s.clock
	s.run.Clicks++
	px := x + (s.rng.Float64()-0.5)*2*c.Scatter
	py := y + (s.rng.Float64()-0.5)*2*c.Scatter
	res := system.Strike(s.world, &s.tower, px, py, c.Radius, s.clickDamage, &s.pending)
	if !res.Hit {
		return
	}
	s.run.Damage += res.Damage
	if res.Killed {
		s.run.ClickKills++
	}
}
