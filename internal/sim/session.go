// Package sim runs one game session: the tower, the enemies, the wave
// pacing and the run's economy. A Session is driven by Tick and is not safe
// for concurrent use; hosts call it from a single goroutine and hand
// Snapshots to other goroutines.
package sim

import (
	"errors"
	"math/rand"
	"time"

	"tesla-tower/assets"
	"tesla-tower/internal/component"
	"tesla-tower/internal/config"
	"tesla-tower/internal/ecs"
	"tesla-tower/internal/event"
	"tesla-tower/internal/generate"
	"tesla-tower/internal/progress"
	"tesla-tower/internal/stats"
	"tesla-tower/internal/wave"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrInsufficientGold = errors.New("sim: not enough gold")
	ErrFullHealth       = errors.New("sim: tower already at full health")
	ErrNoSave           = errors.New("sim: no saved game")
	ErrCorruptSave      = errors.New("sim: saved game is corrupt")
	ErrNotRunning       = errors.New("sim: no game in progress")
	ErrAlreadyStarted   = errors.New("sim: game already started")
	ErrInvalidSlot      = errors.New("sim: invalid save slot")
	ErrUnknownUpgrade   = errors.New("sim: unknown upgrade")
)

// MaxFrame bounds the time a single Tick may simulate, so a stalled host
// does not teleport enemies into the tower.
const MaxFrame = 250 * time.Millisecond

// State is the run state machine.
type State uint8

const (
	NotStarted State = iota
	Running
	Paused
	GameOver
)

var stateNames = [...]string{"notStarted", "running", "paused", "gameOver"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// RunStats are the counters of the current run that feed lifetime progress
// and daily challenges.
type RunStats struct {
	Damage       int
	Clicks       int
	GoldEarned   int
	Bosses       int
	UpgradesUsed int
	ClickKills   int
	DamageTaken  int
	KillsByKind  map[component.EnemyKind]int
}

type strikeState struct {
	held bool
	x, y float64
	last time.Duration
}

// Session is one player's game.
type Session struct {
	cfg     *config.Balance
	prog    *progress.Store
	rng     *rand.Rand
	fx      *rand.Rand
	log     logrus.FieldLogger
	world   *ecs.World
	spawner *generate.Spawner
	waves   *wave.Controller

	tower       component.Tower
	eff         stats.Effective
	state       State
	gold        int
	kills       int
	clickDamage int
	costs       map[UpgradeKind]int
	speed       float64

	// clock is session time: it only advances while Running.
	clock     time.Duration
	lastNow   time.Duration
	ticked    bool
	lastRegen time.Duration
	runStart  time.Duration
	wave20    time.Duration

	run        RunStats
	runID      string
	name       string
	critWarned bool
	committed  bool
	strike     strikeState
	report     *progress.CommitReport

	pending  event.Events
	last     event.Events
	messages []Message
}

// New creates a session bound to a progress store. The session starts in
// NotStarted with a fresh run.
func New(cfg *config.Balance, prog *progress.Store, rng *rand.Rand, log logrus.FieldLogger) *Session {
	s := &Session{
		cfg:     cfg,
		prog:    prog,
		rng:     rng,
		fx:      rand.New(rand.NewSource(rng.Int63())),
		log:     log.WithField("component", "sim"),
		world:   ecs.NewWorld(),
		spawner: generate.NewSpawner(cfg),
		waves:   wave.New(cfg.Waves),
		name:    progress.PlayerName(prog.KV()),
	}
	s.reset()
	return s
}

// reset prepares a fresh run from base stats plus lifetime bonuses.
func (s *Session) reset() {
	s.world.Clear()
	s.eff = s.prog.Effective()
	cx, cy := s.cfg.Viewport.Center()
	t := s.cfg.Tower
	s.tower = component.Tower{
		X: cx, Y: cy,
		Radius:       t.Radius,
		Health:       s.eff.MaxHealth,
		MaxHealth:    s.eff.MaxHealth,
		Damage:       s.eff.Damage,
		Range:        t.Range,
		FireInterval: t.FireInterval(),
		MaxTargets:   t.MaxTargets,
		ChainRange:   t.ChainRange,
		LastFire:     -time.Hour,
		Level:        1,
	}
	s.gold = s.eff.StartGold
	s.kills = 0
	s.clickDamage = s.eff.ClickDamage
	s.costs = baseCosts(s.cfg.Upgrades)
	s.speed = 1
	s.waves.Reset()
	s.run = RunStats{KillsByKind: make(map[component.EnemyKind]int)}
	s.runID = uuid.NewString()
	s.wave20 = 0
	s.critWarned = false
	s.committed = false
	s.strike = strikeState{last: -time.Hour}
	s.report = nil
	s.lastRegen = s.clock
	s.pending.Reset()
	s.last = event.Events{}
	s.state = NotStarted
}

// State returns the run state.
func (s *Session) State() State { return s.state }

// Progress exposes the lifetime store for shop and stats panels.
func (s *Session) Progress() *progress.Store { return s.prog }

// Balance returns the tuning table in use.
func (s *Session) Balance() *config.Balance { return s.cfg }

// Tower returns a copy of the tower.
func (s *Session) Tower() component.Tower { return s.tower }

// Gold returns the run's gold.
func (s *Session) Gold() int { return s.gold }

// Kills returns the run's kill count.
func (s *Session) Kills() int { return s.kills }

// Wave returns the current wave.
func (s *Session) Wave() int { return s.waves.Wave }

// Speed returns the speed multiplier.
func (s *Session) Speed() float64 { return s.speed }

// Run returns the run counters.
func (s *Session) Run() RunStats { return s.run }

// Report returns what the last committed run awarded, or nil.
func (s *Session) Report() *progress.CommitReport { return s.report }

// Elapsed is session time since the run started.
func (s *Session) Elapsed() time.Duration {
	if s.state == NotStarted {
		return 0
	}
	return s.clock - s.runStart
}

// Start begins play from NotStarted.
func (s *Session) Start() error {
	if s.state != NotStarted {
		return ErrAlreadyStarted
	}
	s.state = Running
	s.runStart = s.clock
	s.lastRegen = s.clock
	s.waves.Start(s.clock)
	s.addMessage(MsgInfo, "%s", pick(s.fx, assets.StartLines))
	s.log.WithFields(logrus.Fields{"run": s.runID, "wave": s.waves.Wave}).Info("run started")
	return nil
}

// Pause freezes a running game.
func (s *Session) Pause() {
	if s.state == Running {
		s.state = Paused
		s.strike.held = false
	}
}

// Resume continues a paused game.
func (s *Session) Resume() {
	if s.state == Paused {
		s.state = Running
	}
}

// TogglePause flips between Running and Paused.
func (s *Session) TogglePause() {
	switch s.state {
	case Running:
		s.Pause()
		s.addMessage(MsgInfo, "Paused")
	case Paused:
		s.Resume()
		s.addMessage(MsgInfo, "Resumed")
	}
}

// Restart abandons the current run, committing it first if it was under
// way, and returns to NotStarted with a fresh run.
func (s *Session) Restart() {
	s.endRun()
	s.reset()
	s.log.Info("run reset")
}

// End commits a run under way. Hosts call it when the player quits.
func (s *Session) End() { s.endRun() }

// ClaimDailyReward pays today's login reward, if not already claimed.
func (s *Session) ClaimDailyReward(today time.Time) (progress.Reward, error) {
	r, err := s.prog.CheckDailyReward(today)
	if err != nil {
		return r, err
	}
	s.addMessage(MsgGold, "🎁 Daily reward, day %d: +%d gems, +%d total kills", r.Streak, r.Gems, r.Kills)
	if r.Weekly {
		s.addMessage(MsgGold, "🎉 Weekly streak bonus!")
	}
	return r, nil
}

// endRun commits a started run that has not been committed yet.
func (s *Session) endRun() {
	if s.state == NotStarted || s.committed {
		return
	}
	s.commit()
}

// CycleSpeed steps the speed multiplier 1x, 2x, 4x and back.
func (s *Session) CycleSpeed() float64 {
	switch s.speed {
	case 1:
		s.speed = 2
	case 2:
		s.speed = 4
	default:
		s.speed = 1
	}
	s.addMessage(MsgInfo, "Speed: %gx", s.speed)
	return s.speed
}

// Name returns the player name.
func (s *Session) Name() string { return s.name }

// SetName stores a new player name.
func (s *Session) SetName(name string) error {
	if err := progress.SetPlayerName(s.prog.KV(), name); err != nil {
		return err
	}
	s.name = progress.PlayerName(s.prog.KV())
	return nil
}

// Slot returns the active progress slot.
func (s *Session) Slot() int { return s.prog.Slot() }

func pick(rng *rand.Rand, lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return lines[rng.Intn(len(lines))]
}
