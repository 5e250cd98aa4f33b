// Package progress owns everything that outlives a run: lifetime totals,
// permanent upgrades, gems, achievements, daily challenges, leaderboards,
// login rewards and themes. A Store is bound to one save slot.
package progress

import (
	"encoding/json"
	"errors"
	"time"

	"tesla-tower/assets"
	"tesla-tower/internal/component"
	"tesla-tower/internal/config"
	"tesla-tower/internal/save"
	"tesla-tower/internal/stats"
	"tesla-tower/internal/store"

	"github.com/sirupsen/logrus"
)

var (
	ErrInsufficientKills = errors.New("progress: not enough lifetime kills")
	ErrInsufficientGems  = errors.New("progress: not enough gems")
	ErrAlreadyClaimed    = errors.New("progress: daily reward already claimed")
	ErrThemeLocked       = errors.New("progress: theme locked")
	ErrUnknownTheme      = errors.New("progress: unknown theme")
	ErrUnknownUpgrade    = errors.New("progress: unknown upgrade")
)

// dateLayout keys calendar days in persisted documents.
const dateLayout = "2006-01-02"

// DailyRewards tracks the login streak.
type DailyRewards struct {
	LastLogin string `json:"lastLogin"`
	Streak    int    `json:"streak"`
}

// ThemeState lists the owned themes and the one in use.
type ThemeState struct {
	Unlocked []string `json:"unlocked"`
	Current  string   `json:"current"`
}

// State is the lifetime progress of one slot. TotalKills doubles as the
// currency of the permanent shop, so spending lowers it.
type State struct {
	TotalKills int `json:"totalKills"`
	stats.Bonuses
	Gems             int                         `json:"gems"`
	GemUpgrades      stats.GemLevels             `json:"gemUpgrades"`
	TotalDamageDealt int                         `json:"totalDamageDealt"`
	TotalClicks      int                         `json:"totalClicks"`
	HighestWave      int                         `json:"highestWave"`
	TotalGamesPlayed int                         `json:"totalGamesPlayed"`
	TotalGoldEarned  int                         `json:"totalGoldEarned"`
	BossesKilled     int                         `json:"bossesKilled"`
	ZombieKills      map[component.EnemyKind]int `json:"zombieKills"`
	DailyRewards     DailyRewards                `json:"dailyRewards"`
	Themes           ThemeState                  `json:"themes"`
	LastRun          string                      `json:"lastRun,omitempty"`
}

// NewState returns the progress of a fresh slot.
func NewState() State {
	s := State{}
	s.fill()
	return s
}

// fill repairs documents written before a field existed.
func (s *State) fill() {
	if s.ZombieKills == nil {
		s.ZombieKills = make(map[component.EnemyKind]int)
	}
	for _, k := range component.EnemyKinds {
		if _, ok := s.ZombieKills[k]; !ok {
			s.ZombieKills[k] = 0
		}
	}
	if len(s.Themes.Unlocked) == 0 {
		s.Themes.Unlocked = []string{assets.DefaultTheme}
	}
	if s.Themes.Current == "" {
		s.Themes.Current = assets.DefaultTheme
	}
}

// Stat reads a lifetime statistic by its achievement name.
func (s State) Stat(name string) int {
	switch name {
	case assets.StatKills:
		return s.TotalKills
	case assets.StatWave:
		return s.HighestWave
	case assets.StatDamage:
		return s.TotalDamageDealt
	case assets.StatClicks:
		return s.TotalClicks
	case assets.StatBosses:
		return s.BossesKilled
	case assets.StatGold:
		return s.TotalGoldEarned
	case assets.StatGames:
		return s.TotalGamesPlayed
	}
	return 0
}

// HasTheme reports whether id is owned.
func (s State) HasTheme(id string) bool {
	for _, u := range s.Themes.Unlocked {
		if u == id {
			return true
		}
	}
	return false
}

// Store reads and writes the progress of one slot.
type Store struct {
	kv      store.KV
	slot    int
	balance *config.Balance
	model   stats.Model
	base    stats.Base
	log     logrus.FieldLogger

	state        State
	achievements map[string]bool

	// Now is the wall clock used for calendar days and leaderboard dates.
	Now func() time.Time
	// RunLogDir receives runs.jsonl; empty disables the run log.
	RunLogDir string
}

// New binds a store to slot of kv and loads it.
func New(kv store.KV, slot int, b *config.Balance, log logrus.FieldLogger) *Store {
	s := &Store{
		kv:      kv,
		slot:    slot,
		balance: b,
		model:   stats.NewModel(b),
		base:    stats.BaseFrom(b),
		log:     log.WithField("slot", slot),
		Now:     time.Now,
	}
	s.Load()
	return s
}

// Slot returns the bound slot.
func (s *Store) Slot() int { return s.slot }

// KV returns the underlying key-value store.
func (s *Store) KV() store.KV { return s.kv }

// State returns a copy of the lifetime progress.
func (s *Store) State() State {
	st := s.state
	st.ZombieKills = make(map[component.EnemyKind]int, len(s.state.ZombieKills))
	for k, v := range s.state.ZombieKills {
		st.ZombieKills[k] = v
	}
	st.Themes.Unlocked = append([]string(nil), s.state.Themes.Unlocked...)
	return st
}

// Unlocked reports whether an achievement has been earned.
func (s *Store) Unlocked(id string) bool { return s.achievements[id] }

// UnlockedCount returns how many achievements have been earned.
func (s *Store) UnlockedCount() int {
	n := 0
	for _, a := range assets.Achievements {
		if s.achievements[a.ID] {
			n++
		}
	}
	return n
}

// Effective recomputes the run's starting stats from the current bonuses.
func (s *Store) Effective() stats.Effective {
	return s.model.Compute(s.base, s.state.Bonuses, s.state.GemUpgrades)
}

// Load rereads the slot. Missing documents give a fresh slot; corrupt ones
// are logged and replaced by defaults.
func (s *Store) Load() {
	s.state = NewState()
	s.achievements = make(map[string]bool)
	if err := s.read(save.PermanentKey(s.slot), &s.state); err != nil {
		s.log.WithError(err).Warn("progress unreadable, starting fresh")
		s.state = NewState()
	}
	s.state.fill()
	if err := s.read(save.AchievementsKey(s.slot), &s.achievements); err != nil {
		s.log.WithError(err).Warn("achievements unreadable, starting fresh")
		s.achievements = make(map[string]bool)
	}
	if s.achievements == nil {
		s.achievements = make(map[string]bool)
	}
}

func (s *Store) read(key string, v any) error {
	data, ok, err := s.kv.Get(key)
	if err != nil || !ok {
		return err
	}
	return json.Unmarshal([]byte(data), v)
}

func (s *Store) write(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Error("encode failed")
		return
	}
	if err := s.kv.Set(key, string(data)); err != nil {
		s.log.WithError(err).WithField("key", key).Error("write failed")
	}
}

func (s *Store) persist() {
	s.write(save.PermanentKey(s.slot), s.state)
	s.write(save.AchievementsKey(s.slot), s.achievements)
}

func (s *Store) today() string { return s.Now().Format(dateLayout) }

// ForSlot returns a store for another slot of the same backing store,
// keeping the clock and run log directory.
func (s *Store) ForSlot(slot int) *Store {
	other := &Store{
		kv:        s.kv,
		slot:      slot,
		balance:   s.balance,
		model:     s.model,
		base:      s.base,
		log:       s.log.WithField("slot", slot),
		Now:       s.Now,
		RunLogDir: s.RunLogDir,
	}
	other.Load()
	return other
}
