package progress

import (
	"time"

	"tesla-tower/assets"
	"tesla-tower/internal/component"
	"tesla-tower/internal/save"

	"github.com/sirupsen/logrus"
)

// RunResult is what a finished run contributes to lifetime progress.
type RunResult struct {
	ID           string
	Name         string
	Wave         int
	Kills        int
	Damage       int
	Clicks       int
	GoldEarned   int
	Bosses       int
	KillsByKind  map[component.EnemyKind]int
	UpgradesUsed int
	ClickKills   int
	DamageTaken  int
	Duration     time.Duration
	// Wave20 is the run time when wave 20 was reached, zero if it never was.
	Wave20 time.Duration
}

// Counter reads a run counter by its challenge name.
func (r RunResult) Counter(name string) int {
	switch name {
	case assets.RunWave:
		return r.Wave
	case assets.RunUpgradesUsed:
		return r.UpgradesUsed
	case assets.RunClickKills:
		return r.ClickKills
	case assets.RunDamageTaken:
		return r.DamageTaken
	}
	return 0
}

// CommitReport lists what a commit newly awarded.
type CommitReport struct {
	Achievements []assets.AchievementDef
	Challenges   []assets.ChallengeDef
	GemsAwarded  int
	KillsAwarded int
	// Ranks maps a leaderboard name to the run's 1-based place, for the
	// boards it made.
	Ranks map[string]int
}

// CommitRun folds a finished run into lifetime progress, then awards
// achievements and daily challenges and updates the leaderboards. A run is
// committed at most once; repeating a run ID is a no-op.
func (s *Store) CommitRun(run RunResult) CommitReport {
	if run.ID != "" && run.ID == s.state.LastRun {
		return CommitReport{}
	}
	st := &s.state
	st.LastRun = run.ID
	st.TotalKills += run.Kills
	st.TotalDamageDealt += run.Damage
	st.TotalClicks += run.Clicks
	st.TotalGoldEarned += run.GoldEarned
	st.BossesKilled += run.Bosses
	st.TotalGamesPlayed++
	for k, n := range run.KillsByKind {
		st.ZombieKills[k] += n
	}
	st.HighestWave = max(st.HighestWave, run.Wave)

	report := s.CheckAchievements()
	done := s.checkChallenges(run)
	report.Challenges = done
	for _, c := range done {
		report.KillsAwarded += c.Reward
	}
	report.Ranks = s.updateLeaderboards(run)
	s.persist()
	s.appendRunLog(run, report)

	s.log.WithFields(logrus.Fields{
		"wave":         run.Wave,
		"kills":        run.Kills,
		"achievements": len(report.Achievements),
		"challenges":   len(report.Challenges),
	}).Info("run committed")
	return report
}

// CheckAchievements unlocks every locked achievement whose statistic has
// reached its requirement and credits the gems. Earned achievements are
// never re-evaluated.
func (s *Store) CheckAchievements() CommitReport {
	var r CommitReport
	for _, a := range assets.Achievements {
		if s.achievements[a.ID] || s.state.Stat(a.Stat) < a.Requirement {
			continue
		}
		s.achievements[a.ID] = true
		s.state.Gems += a.GemReward
		r.GemsAwarded += a.GemReward
		r.Achievements = append(r.Achievements, a)
	}
	return r
}

// ChallengeStatus is one daily challenge with its completion flag.
type ChallengeStatus struct {
	assets.ChallengeDef
	Completed bool
}

type challengeDoc struct {
	Date       string          `json:"date"`
	Challenges []challengeFlag `json:"challenges"`
}

type challengeFlag struct {
	ID        int  `json:"id"`
	Completed bool `json:"completed"`
}

// Challenges returns today's challenges. A stored list from an earlier day
// is discarded.
func (s *Store) Challenges() []ChallengeStatus {
	doc := s.loadChallenges()
	done := make(map[int]bool, len(doc.Challenges))
	for _, c := range doc.Challenges {
		done[c.ID] = c.Completed
	}
	out := make([]ChallengeStatus, 0, len(assets.DailyChallenges))
	for _, def := range assets.DailyChallenges {
		out = append(out, ChallengeStatus{ChallengeDef: def, Completed: done[def.ID]})
	}
	return out
}

func (s *Store) loadChallenges() challengeDoc {
	var doc challengeDoc
	if err := s.read(save.KeyDailyChallenges, &doc); err != nil {
		s.log.WithError(err).Warn("daily challenges unreadable, regenerating")
		doc = challengeDoc{}
	}
	if doc.Date != s.today() {
		doc = challengeDoc{Date: s.today()}
		for _, def := range assets.DailyChallenges {
			doc.Challenges = append(doc.Challenges, challengeFlag{ID: def.ID})
		}
		s.write(save.KeyDailyChallenges, doc)
	}
	return doc
}

func (s *Store) checkChallenges(run RunResult) []assets.ChallengeDef {
	doc := s.loadChallenges()
	var done []assets.ChallengeDef
	for i, flag := range doc.Challenges {
		if flag.Completed {
			continue
		}
		def, ok := challengeByID(flag.ID)
		if !ok || !Satisfied(def.Conditions, run) {
			continue
		}
		doc.Challenges[i].Completed = true
		s.state.TotalKills += def.Reward
		done = append(done, def)
	}
	if len(done) > 0 {
		s.write(save.KeyDailyChallenges, doc)
	}
	return done
}

func challengeByID(id int) (assets.ChallengeDef, bool) {
	for _, def := range assets.DailyChallenges {
		if def.ID == id {
			return def, true
		}
	}
	return assets.ChallengeDef{}, false
}

// Satisfied reports whether every condition holds for the run. An unknown
// operator never holds.
func Satisfied(conds []assets.ConditionDef, run RunResult) bool {
	for _, c := range conds {
		v := run.Counter(c.Stat)
		var ok bool
		switch c.Op {
		case ">=":
			ok = v >= c.Threshold
		case "<=":
			ok = v <= c.Threshold
		case "==":
			ok = v == c.Threshold
		case ">":
			ok = v > c.Threshold
		case "<":
			ok = v < c.Threshold
		}
		if !ok {
			return false
		}
	}
	return true
}
