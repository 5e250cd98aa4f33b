package sim

import (
	"strconv"
	"time"

	"tesla-tower/assets"
	"tesla-tower/internal/component"
	"tesla-tower/internal/factory"
	"tesla-tower/internal/progress"
	"tesla-tower/internal/system"

	"github.com/sirupsen/logrus"
)

// Tick advances the session to host time now, a monotonic timestamp. Only a
// running session simulates; otherwise Tick just tracks the host clock so
// that resuming does not replay the pause.
//
// Movement and effect aging use the delta scaled by the speed multiplier.
// Spawn pacing divides its interval by the multiplier. Tower fire, enemy
// contact cooldowns, held strikes and regeneration compare unscaled session
// time.
func (s *Session) Tick(now time.Duration) {
	delta := time.Duration(0)
	if s.ticked {
		delta = min(max(now-s.lastNow, 0), MaxFrame)
	}
	s.lastNow = now
	s.ticked = true
	if s.state != Running {
		return
	}
	s.clock += delta
	scaled := time.Duration(float64(delta) * s.speed)

	s.spawn()
	system.MoveEnemies(s.world, &s.tower, scaled)

	contact := system.ApplyContact(s.world, &s.tower, s.clock, &s.pending)
	s.run.DamageTaken += contact.HealthLost

	volley := system.FireTower(s.world, s.rng, &s.tower, s.clock, s.eff.CritChance, &s.pending)
	s.run.Damage += volley.Damage

	if s.strike.held && s.clock-s.strike.last >= s.cfg.Click.Interval() {
		s.strikeAt(s.strike.x, s.strike.y)
	}

	s.reap()
	s.checkHealth()
	if s.tower.Destroyed() {
		s.gameOver()
	}

	system.AgeEffects(s.world, scaled)
	if s.state == Running {
		s.regen()
	}
	s.flushEvents()
}

func (s *Session) spawn() {
	if !s.waves.Due(s.clock, s.speed) {
		return
	}
	spec, boss := s.spawner.Next(s.waves.Wave, s.waves.BossSpawned, s.rng)
	pt := s.spawner.EdgePoint(s.rng)
	factory.NewEnemy(s.world, spec, pt.X, pt.Y)
	if boss {
		s.addMessage(MsgWarn, "%s", pick(s.fx, assets.BossWarnings))
	}
	if !s.waves.RecordSpawn(s.clock, boss) {
		return
	}
	w := s.waves.Wave
	if w%s.cfg.Waves.BossEvery == 0 {
		s.addMessage(MsgWarn, "%s", assets.WaveBanner(w))
	}
	if w == 20 && s.wave20 == 0 {
		s.wave20 = s.clock - s.runStart
	}
	s.log.WithFields(logrus.Fields{"wave": w, "quota": s.waves.Quota, "interval": s.waves.Interval}).Debug("wave advanced")
}

func (s *Session) reap() {
	res := system.Reap(s.world, system.ReapContext{
		Wave:           s.waves.Wave,
		Tower:          &s.tower,
		GoldMultiplier: s.eff.GoldMultiplier,
		XPMultiplier:   s.eff.XPMultiplier,
		Spawner:        s.spawner,
		Explosion:      s.cfg.Enemies.Explosion,
		Split:          s.cfg.Enemies.Split,
	}, &s.pending)
	s.gold += res.Gold
	s.run.GoldEarned += res.Gold
	s.kills += res.Kills
	s.run.DamageTaken += res.HealthLost
	for _, d := range res.Deaths {
		s.run.KillsByKind[d.Kind]++
		switch {
		case d.Kind == component.KindBoss:
			s.run.Bosses++
			s.addMessage(MsgGold, "👑 Boss defeated! +%d gold", d.Gold)
		case d.Exploded:
			s.addMessage(MsgBad, "💥 EXPLOSION! -%d HP", d.ExplosionDamage)
		case len(d.Children) > 0:
			s.addMessage(MsgInfo, "👥 SPAWNER SPLIT!")
		}
	}
}

// checkHealth raises the critical warning once per run.
func (s *Session) checkHealth() {
	if s.critWarned || s.tower.Destroyed() || s.tower.MaxHealth <= 0 {
		return
	}
	if float64(s.tower.Health)/float64(s.tower.MaxHealth) <= 0.25 {
		s.critWarned = true
		s.addMessage(MsgBad, "%s", assets.CriticalHealth)
	}
}

func (s *Session) regen() {
	if s.eff.RegenAmount <= 0 || s.eff.RegenInterval <= 0 {
		return
	}
	if s.clock-s.lastRegen < s.eff.RegenInterval {
		return
	}
	s.lastRegen = s.clock
	if healed := s.tower.Heal(s.eff.RegenAmount); healed > 0 {
		s.pending.Number(s.tower.X, s.tower.Y-s.tower.Radius, "+"+strconv.Itoa(healed), false)
	}
}

func (s *Session) gameOver() {
	if s.state == GameOver {
		return
	}
	s.state = GameOver
	s.strike.held = false
	s.addMessage(MsgBad, "%s", pick(s.fx, assets.GameOverLines))
	s.commit()
}

// commit folds the run into lifetime progress exactly once.
func (s *Session) commit() {
	if s.committed {
		return
	}
	s.committed = true
	report := s.prog.CommitRun(s.runResult())
	s.report = &report
	for _, a := range report.Achievements {
		s.addMessage(MsgGold, "🏆 Achievement: %s %s (+%d gems)", a.Icon, a.Name, a.GemReward)
	}
	for _, c := range report.Challenges {
		s.addMessage(MsgGold, "🏆 Challenge Complete! %s +%d Total Kills!", c.Name, c.Reward)
	}
	s.log.WithFields(logrus.Fields{
		"run":   s.runID,
		"wave":  s.waves.Wave,
		"kills": s.kills,
		"state": s.state.String(),
	}).Info("run ended")
}

func (s *Session) runResult() progress.RunResult {
	kinds := make(map[component.EnemyKind]int, len(s.run.KillsByKind))
	for k, v := range s.run.KillsByKind {
		kinds[k] = v
	}
	return progress.RunResult{
		ID:           s.runID,
		Name:         s.name,
		Wave:         s.waves.Wave,
		Kills:        s.kills,
		Damage:       s.run.Damage,
		Clicks:       s.run.Clicks,
		GoldEarned:   s.run.GoldEarned,
		Bosses:       s.run.Bosses,
		KillsByKind:  kinds,
		UpgradesUsed: s.run.UpgradesUsed,
		ClickKills:   s.run.ClickKills,
		DamageTaken:  s.run.DamageTaken,
		Duration:     s.clock - s.runStart,
		Wave20:       s.wave20,
	}
}

// flushEvents turns the tick's events into effect entities and keeps them
// for the next snapshot.
func (s *Session) flushEvents() {
	factory.Materialize(s.world, &s.pending, s.fx)
	s.last = s.pending.Clone()
	s.pending.Reset()
}
