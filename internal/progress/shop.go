package progress

import (
	"fmt"
	"math"
	"time"

	"tesla-tower/assets"
	"tesla-tower/internal/config"
)

// PermKind is a permanent upgrade bought with lifetime kills.
type PermKind uint8

const (
	PermDamage PermKind = iota
	PermHealth
	PermClick
	PermGold
)

// PermKinds lists the permanent upgrades in shop order.
var PermKinds = []PermKind{PermDamage, PermHealth, PermClick, PermGold}

func (k PermKind) String() string {
	switch k {
	case PermDamage:
		return "damage"
	case PermHealth:
		return "health"
	case PermClick:
		return "click"
	case PermGold:
		return "gold"
	}
	return "unknown"
}

// GemKind is a multiplicative upgrade bought with gems.
type GemKind uint8

const (
	GemDamage GemKind = iota
	GemHealth
	GemGold
	GemXP
	GemCrit
	GemRegen
)

// GemKinds lists the gem upgrades in shop order.
var GemKinds = []GemKind{GemDamage, GemHealth, GemGold, GemXP, GemCrit, GemRegen}

func (k GemKind) String() string {
	switch k {
	case GemDamage:
		return "damageMultiplier"
	case GemHealth:
		return "healthMultiplier"
	case GemGold:
		return "goldMultiplier"
	case GemXP:
		return "xpMultiplier"
	case GemCrit:
		return "critChance"
	case GemRegen:
		return "healthRegen"
	}
	return "unknown"
}

func (s *Store) permanent(k PermKind) (*int, config.PermanentUpgrade, bool) {
	p := s.balance.Permanent
	switch k {
	case PermDamage:
		return &s.state.Bonuses.Damage, p.Damage, true
	case PermHealth:
		return &s.state.Bonuses.Health, p.Health, true
	case PermClick:
		return &s.state.Bonuses.Click, p.Click, true
	case PermGold:
		return &s.state.Bonuses.StartGold, p.Gold, true
	}
	return nil, config.PermanentUpgrade{}, false
}

// PermanentCost is the kill price of the next purchase of k:
// base + owned*increment, where owned counts earlier purchases.
func (s *Store) PermanentCost(k PermKind) int {
	bonus, u, ok := s.permanent(k)
	if !ok {
		return 0
	}
	owned := 0
	if u.Step > 0 {
		owned = *bonus / u.Step
	}
	return u.Cost + owned*u.Increment
}

// BuyPermanent spends lifetime kills on k. It mutates nothing when the
// balance is short.
func (s *Store) BuyPermanent(k PermKind) (int, error) {
	bonus, u, ok := s.permanent(k)
	if !ok {
		return 0, fmt.Errorf("buy %v: %w", k, ErrUnknownUpgrade)
	}
	cost := s.PermanentCost(k)
	if s.state.TotalKills < cost {
		return cost, fmt.Errorf("buy %v for %d kills: %w", k, cost, ErrInsufficientKills)
	}
	s.state.TotalKills -= cost
	*bonus += u.Step
	s.persist()
	s.log.WithField("upgrade", k.String()).WithField("cost", cost).Info("permanent upgrade bought")
	return cost, nil
}

func (s *Store) gem(k GemKind) (*int, int, bool) {
	g := s.balance.Gems
	lv := &s.state.GemUpgrades
	switch k {
	case GemDamage:
		return &lv.Damage, g.Damage, true
	case GemHealth:
		return &lv.Health, g.Health, true
	case GemGold:
		return &lv.Gold, g.Gold, true
	case GemXP:
		return &lv.XP, g.XP, true
	case GemCrit:
		return &lv.Crit, g.Crit, true
	case GemRegen:
		return &lv.Regen, g.Regen, true
	}
	return nil, 0, false
}

// GemCost is floor(base * growth^level).
func (s *Store) GemCost(k GemKind) int {
	level, base, ok := s.gem(k)
	if !ok {
		return 0
	}
	return int(math.Floor(float64(base)*math.Pow(s.balance.Gems.Growth, float64(*level)) + 1e-9))
}

// BuyGem spends gems on one level of k.
func (s *Store) BuyGem(k GemKind) (int, error) {
	level, _, ok := s.gem(k)
	if !ok {
		return 0, fmt.Errorf("buy %v: %w", k, ErrUnknownUpgrade)
	}
	cost := s.GemCost(k)
	if s.state.Gems < cost {
		return cost, fmt.Errorf("buy %v for %d gems: %w", k, cost, ErrInsufficientGems)
	}
	s.state.Gems -= cost
	*level++
	s.persist()
	s.log.WithField("upgrade", k.String()).WithField("level", *level).Info("gem upgrade bought")
	return cost, nil
}

// Reward is one daily login payout.
type Reward struct {
	Streak int
	Gems   int
	Kills  int
	Weekly bool
}

// DailyReward computes the payout for a streak length.
func DailyReward(cfg config.DailyReward, streak int) Reward {
	r := Reward{Streak: streak, Gems: cfg.Gems, Kills: cfg.Kills}
	if cfg.TierDays > 0 {
		tier := streak / cfg.TierDays
		r.Gems += tier * cfg.GemsPerTier
		r.Kills += tier * cfg.KillsPerTier
	}
	if cfg.WeekDays > 0 && streak > 0 && streak%cfg.WeekDays == 0 {
		r.Gems += cfg.WeekGems
		r.Kills += cfg.WeekKills
		r.Weekly = true
	}
	return r
}

// CheckDailyReward pays the login reward for today's calendar day. The
// streak grows when the previous claim was yesterday and restarts at 1
// otherwise. A second claim on the same day fails with ErrAlreadyClaimed.
func (s *Store) CheckDailyReward(today time.Time) (Reward, error) {
	day := today.Format(dateLayout)
	dr := &s.state.DailyRewards
	if dr.LastLogin == day {
		return Reward{}, ErrAlreadyClaimed
	}
	streak := 1
	if last, err := time.Parse(dateLayout, dr.LastLogin); err == nil {
		cur, _ := time.Parse(dateLayout, day)
		if cur.Sub(last) == 24*time.Hour {
			streak = dr.Streak + 1
		}
	}
	r := DailyReward(s.balance.DailyReward, streak)
	dr.Streak = streak
	dr.LastLogin = day
	s.state.Gems += r.Gems
	s.state.TotalKills += r.Kills
	s.persist()
	s.log.WithField("streak", streak).Info("daily reward claimed")
	return r, nil
}

// UnlockTheme buys a theme with gems once its required achievement is
// earned. Owning it already is not an error.
func (s *Store) UnlockTheme(id string) error {
	def, ok := assets.ThemeByID(id)
	if !ok {
		return fmt.Errorf("unlock %q: %w", id, ErrUnknownTheme)
	}
	if s.state.HasTheme(id) {
		return nil
	}
	if !s.requirementMet(def.Requires) {
		return fmt.Errorf("unlock %q: %w", id, ErrThemeLocked)
	}
	if s.state.Gems < def.Cost {
		return fmt.Errorf("unlock %q for %d gems: %w", id, def.Cost, ErrInsufficientGems)
	}
	s.state.Gems -= def.Cost
	s.state.Themes.Unlocked = append(s.state.Themes.Unlocked, id)
	s.persist()
	return nil
}

// ApplyTheme switches to an owned theme.
func (s *Store) ApplyTheme(id string) error {
	if _, ok := assets.ThemeByID(id); !ok {
		return fmt.Errorf("apply %q: %w", id, ErrUnknownTheme)
	}
	if !s.state.HasTheme(id) {
		return fmt.Errorf("apply %q: %w", id, ErrThemeLocked)
	}
	s.state.Themes.Current = id
	s.persist()
	return nil
}

// Theme returns the active theme.
func (s *Store) Theme() assets.ThemeDef {
	if def, ok := assets.ThemeByID(s.state.Themes.Current); ok {
		return def
	}
	def, _ := assets.ThemeByID(assets.DefaultTheme)
	return def
}

func (s *Store) requirementMet(req string) bool {
	switch req {
	case "":
		return true
	case assets.RequireAllAchievements:
		return s.UnlockedCount() == len(assets.Achievements)
	}
	return s.achievements[req]
}
