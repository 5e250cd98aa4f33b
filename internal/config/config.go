package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed balance.yaml
var defaultBalance []byte

// Balance holds every tunable number in the game.
type Balance struct {
	TickRate    int         `yaml:"tick_rate"`
	Viewport    Viewport    `yaml:"viewport"`
	Tower       Tower       `yaml:"tower"`
	Click       Click       `yaml:"click"`
	Upgrades    Upgrades    `yaml:"upgrades"`
	Waves       Waves       `yaml:"waves"`
	Enemies     Enemies     `yaml:"enemies"`
	Permanent   Permanent   `yaml:"permanent"`
	Gems        Gems        `yaml:"gems"`
	Rates       Rates       `yaml:"rates"`
	DailyReward DailyReward `yaml:"daily_reward"`
}

// Viewport is the arena size in world units.
type Viewport struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	SpawnOffset float64 `yaml:"spawn_offset"`
}

// Center returns the arena center, where the tower stands.
func (v Viewport) Center() (float64, float64) { return v.Width / 2, v.Height / 2 }

// Tower holds the base tower stats before any bonus.
type Tower struct {
	Radius     float64 `yaml:"radius"`
	Health     int     `yaml:"health"`
	Damage     int     `yaml:"damage"`
	Range      float64 `yaml:"range"`
	FireRateMS int     `yaml:"fire_rate_ms"`
	MaxTargets int     `yaml:"max_targets"`
	ChainRange float64 `yaml:"chain_range"`
	StartGold  int     `yaml:"start_gold"`
}

// FireInterval returns the base time between volleys.
func (t Tower) FireInterval() time.Duration { return Millis(t.FireRateMS) }

// Click configures the manual strike.
type Click struct {
	Damage     int     `yaml:"damage"`
	IntervalMS int     `yaml:"interval_ms"`
	Radius     float64 `yaml:"radius"`
	Scatter    float64 `yaml:"scatter"`
}

// Interval is the repeat rate while the strike is held.
func (c Click) Interval() time.Duration { return Millis(c.IntervalMS) }

// Upgrade is one row of the in-run upgrade table.
type Upgrade struct {
	Cost   int     `yaml:"cost"`
	Growth float64 `yaml:"growth"`
	Step   float64 `yaml:"step"`
}

// Next returns the cost after one more purchase at the given cost.
func (u Upgrade) Next(cost int) int {
	if u.Growth <= 1 {
		return cost
	}
	return int(math.Floor(float64(cost) * u.Growth))
}

// Upgrades is the in-run upgrade table.
type Upgrades struct {
	MinFireRateMS  int     `yaml:"min_fire_rate_ms"`
	Damage         Upgrade `yaml:"damage"`
	Range          Upgrade `yaml:"range"`
	FireRate       Upgrade `yaml:"fire_rate"`
	Health         Upgrade `yaml:"health"`
	Targets        Upgrade `yaml:"targets"`
	ClickDamage    Upgrade `yaml:"click_damage"`
	ChainLightning Upgrade `yaml:"chain_lightning"`
	Shield         Upgrade `yaml:"shield"`
}

// Waves configures the difficulty curve.
type Waves struct {
	InitialQuota      int     `yaml:"initial_quota"`
	QuotaBase         float64 `yaml:"quota_base"`
	QuotaPerWave      float64 `yaml:"quota_per_wave"`
	InitialIntervalMS int     `yaml:"initial_interval_ms"`
	IntervalBaseMS    int     `yaml:"interval_base_ms"`
	IntervalPerWaveMS int     `yaml:"interval_per_wave_ms"`
	MinIntervalMS     int     `yaml:"min_interval_ms"`
	BossEvery         int     `yaml:"boss_every"`
}

// Variant holds the linear-in-wave stat formula for one enemy kind.
type Variant struct {
	Health        float64 `yaml:"health"`
	HealthPerWave float64 `yaml:"health_per_wave"`
	Speed         float64 `yaml:"speed"`
	SpeedPerWave  float64 `yaml:"speed_per_wave"`
	Radius        float64 `yaml:"radius"`
	Gold          float64 `yaml:"gold"`
	GoldPerWave   float64 `yaml:"gold_per_wave"`
	Damage        int     `yaml:"damage"`
	IntervalMS    int     `yaml:"interval_ms"`
}

// Gate selects a variant when wave >= MinWave and the draw is below Below.
type Gate struct {
	Kind    string  `yaml:"kind"`
	MinWave int     `yaml:"min_wave"`
	Below   float64 `yaml:"below"`
}

// Explosion configures the exploder death burst.
type Explosion struct {
	Damage         int     `yaml:"damage"`
	WavesPerDamage int     `yaml:"waves_per_damage"`
	Radius         float64 `yaml:"radius"`
	ParticlesNear  int     `yaml:"particles_near"`
	ParticlesFar   int     `yaml:"particles_far"`
}

// Split configures the spawner death split.
type Split struct {
	Count    int     `yaml:"count"`
	Distance float64 `yaml:"distance"`
	Spread   float64 `yaml:"spread"`
}

// Enemies is the enemy table.
type Enemies struct {
	Variants  map[string]Variant `yaml:"variants"`
	Boss      Variant            `yaml:"boss"`
	Spawnling Variant            `yaml:"spawnling"`
	Gates     []Gate             `yaml:"gates"`
	Explosion Explosion          `yaml:"explosion"`
	Split     Split              `yaml:"split"`
}

// PermanentUpgrade is one kill-currency upgrade row.
type PermanentUpgrade struct {
	Cost      int `yaml:"cost"`
	Increment int `yaml:"increment"`
	Step      int `yaml:"step"`
}

// Permanent is the kill-currency shop.
type Permanent struct {
	Damage PermanentUpgrade `yaml:"damage"`
	Health PermanentUpgrade `yaml:"health"`
	Click  PermanentUpgrade `yaml:"click"`
	Gold   PermanentUpgrade `yaml:"gold"`
}

// Gems is the gem shop: base cost per upgrade and the per-level growth.
type Gems struct {
	Growth float64 `yaml:"growth"`
	Damage int     `yaml:"damage"`
	Health int     `yaml:"health"`
	Gold   int     `yaml:"gold"`
	XP     int     `yaml:"xp"`
	Crit   int     `yaml:"crit"`
	Regen  int     `yaml:"regen"`
}

// Rates are the per-level gem modifiers.
type Rates struct {
	Damage          float64 `yaml:"damage"`
	Health          float64 `yaml:"health"`
	Gold            float64 `yaml:"gold"`
	XP              float64 `yaml:"xp"`
	Crit            float64 `yaml:"crit"`
	RegenPerLevel   int     `yaml:"regen_per_level"`
	RegenIntervalMS int     `yaml:"regen_interval_ms"`
}

// DailyReward configures the login streak payout.
type DailyReward struct {
	Gems         int `yaml:"gems"`
	GemsPerTier  int `yaml:"gems_per_tier"`
	Kills        int `yaml:"kills"`
	KillsPerTier int `yaml:"kills_per_tier"`
	TierDays     int `yaml:"tier_days"`
	WeekDays     int `yaml:"week_days"`
	WeekGems     int `yaml:"week_gems"`
	WeekKills    int `yaml:"week_kills"`
}

// Millis converts a millisecond count from the balance file.
func Millis(ms int) time.Duration { return time.Duration(ms) * time.Millisecond }

// Default returns the embedded balance.
func Default() *Balance {
	b, err := Parse(defaultBalance, nil)
	if err != nil {
		panic(fmt.Sprintf("embedded balance: %v", err))
	}
	return b
}

// Parse decodes YAML on top of base. A nil base starts from zero values.
func Parse(data []byte, base *Balance) (*Balance, error) {
	b := &Balance{}
	if base != nil {
		*b = *base
		b.Enemies.Variants = make(map[string]Variant, len(base.Enemies.Variants))
		for k, v := range base.Enemies.Variants {
			b.Enemies.Variants[k] = v
		}
	}
	if err := yaml.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("parse balance: %w", err)
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Load reads a balance override from path and layers it over the defaults.
// An empty path returns the defaults.
func Load(path string) (*Balance, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read balance: %w", err)
	}
	return Parse(data, Default())
}

func (b *Balance) validate() error {
	switch {
	case b.TickRate <= 0:
		return fmt.Errorf("balance: tick_rate must be positive")
	case b.Viewport.Width <= 0 || b.Viewport.Height <= 0:
		return fmt.Errorf("balance: viewport must be positive")
	case b.Waves.BossEvery <= 0:
		return fmt.Errorf("balance: waves.boss_every must be positive")
	case b.Rates.RegenIntervalMS <= 0:
		return fmt.Errorf("balance: rates.regen_interval_ms must be positive")
	}
	for _, g := range b.Enemies.Gates {
		if _, ok := b.Enemies.Variants[g.Kind]; !ok {
			return fmt.Errorf("balance: gate references unknown variant %q", g.Kind)
		}
	}
	if _, ok := b.Enemies.Variants["normal"]; !ok {
		return fmt.Errorf("balance: variant \"normal\" is required")
	}
	return nil
}
