// Package wave paces enemy spawns and advances the wave counter.
package wave

import (
	"math"
	"time"

	"tesla-tower/internal/config"
)

// State is the part of the controller a save game records.
type State struct {
	Wave        int
	Spawned     int
	Quota       int
	Interval    time.Duration
	BossSpawned bool
}

// Controller decides when the next enemy appears. Spawn pacing reads the
// session clock; the interval shrinks as the speed multiplier grows.
type Controller struct {
	State
	cfg       config.Waves
	lastSpawn time.Duration
}

// New returns a controller positioned at the start of wave 1.
func New(cfg config.Waves) *Controller {
	c := &Controller{cfg: cfg}
	c.Reset()
	return c
}

// Reset returns to wave 1 with the opening quota and interval.
func (c *Controller) Reset() {
	c.State = State{
		Wave:     1,
		Quota:    c.cfg.InitialQuota,
		Interval: config.Millis(c.cfg.InitialIntervalMS),
	}
	c.lastSpawn = 0
}

// Restore resumes at a saved wave. The spawned count and boss flag restart.
// A missing quota or interval is derived from the wave.
func (c *Controller) Restore(wave, quota int, interval time.Duration) {
	c.Reset()
	if wave <= 1 {
		wave = 1
	} else {
		c.Quota = Quota(c.cfg, wave)
		c.Interval = Interval(c.cfg, wave)
	}
	c.Wave = wave
	if quota > 0 {
		c.Quota = quota
	}
	if interval > 0 {
		c.Interval = interval
	}
}

// Start anchors spawn pacing at now.
func (c *Controller) Start(now time.Duration) { c.lastSpawn = now }

// Due reports whether strictly more than Interval/speed has passed since the
// last spawn.
func (c *Controller) Due(now time.Duration, speed float64) bool {
	if speed <= 0 {
		speed = 1
	}
	return float64(now-c.lastSpawn) > float64(c.Interval)/speed
}

// RecordSpawn counts one spawn at now. It returns true when the spawn filled
// the quota and the controller moved on to the next wave.
func (c *Controller) RecordSpawn(now time.Duration, boss bool) bool {
	c.lastSpawn = now
	c.Spawned++
	if boss {
		c.BossSpawned = true
	}
	if c.Spawned < c.Quota {
		return false
	}
	c.Wave++
	c.Spawned = 0
	c.BossSpawned = false
	c.Quota = Quota(c.cfg, c.Wave)
	c.Interval = Interval(c.cfg, c.Wave)
	return true
}

// BossWave reports whether the current wave has a boss to spawn.
func (c *Controller) BossWave() bool {
	return c.cfg.BossEvery > 0 && c.Wave%c.cfg.BossEvery == 0
}

// Quota is the number of spawns that end the given wave.
func Quota(cfg config.Waves, wave int) int {
	return int(math.Floor(cfg.QuotaBase + cfg.QuotaPerWave*float64(wave)))
}

// Interval is the gap between spawns during the given wave.
func Interval(cfg config.Waves, wave int) time.Duration {
	ms := max(cfg.MinIntervalMS, cfg.IntervalBaseMS-cfg.IntervalPerWaveMS*wave)
	return config.Millis(ms)
}
