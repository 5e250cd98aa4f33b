// Package game is the terminal front-end: it owns a tcell screen, drives a
// sim.Session from a ticker and turns keys and mouse presses into session
// calls. Local play and every SSH connection each run one Game.
package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"tesla-tower/assets"
	"tesla-tower/internal/config"
	"tesla-tower/internal/progress"
	"tesla-tower/internal/render"
	"tesla-tower/internal/sim"
	"tesla-tower/internal/store"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
)

// TickRate is how often the session is advanced and the screen redrawn.
const TickRate = 30

// publishEvery is the number of ticks between spectator snapshots.
const publishEvery = 3

// Publisher receives snapshots for spectators. It must not block.
type Publisher interface {
	Publish(sim.Snapshot) bool
}

// Panel is the modal overlay currently open.
type Panel uint8

const (
	PanelNone Panel = iota
	PanelUpgrades
	PanelShop
	PanelSlots
	PanelStats
	PanelThemes
	PanelName
)

// slot panel modes
const (
	modeSave   = "save"
	modeLoad   = "load"
	modeSwitch = "switch"
	modeDelete = "delete"
)

// Options configures a Game.
type Options struct {
	Balance   *config.Balance
	KV        store.KV
	Slot      int // 0 uses the stored current slot
	Name      string
	Log       logrus.FieldLogger
	Feed      Publisher
	RunLogDir string
	Seed      int64
}

// Game is the top-level orchestrator of one terminal.
type Game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	session  *sim.Session
	log      logrus.FieldLogger
	feed     Publisher

	panel       Panel
	resume      bool // resume play when the open panel closes
	slotMode    string
	themeCursor int
	input       []rune
	mouseDown   bool
	ticks       int

	start time.Time
	clock func() time.Duration
}

// NewScreen creates and initializes a terminal screen with mouse support.
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return screen, nil
}

// New binds a game to an initialized screen. It loads the player's progress
// and pays the daily login reward.
func New(screen tcell.Screen, opts Options) *Game {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	b := opts.Balance
	if b == nil {
		b = config.Default()
	}
	slot := opts.Slot
	if slot == 0 {
		slot = progress.CurrentSlot(opts.KV)
	}
	prog := progress.New(opts.KV, slot, b, log)
	prog.RunLogDir = opts.RunLogDir
	prog.Load()
	if opts.Name != "" {
		if err := progress.SetPlayerName(opts.KV, opts.Name); err != nil {
			log.WithError(err).Warn("player name not stored")
		}
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	screen.EnableMouse()
	g := &Game{
		screen:   screen,
		renderer: render.NewRenderer(screen),
		session:  sim.New(b, prog, rand.New(rand.NewSource(seed)), log),
		log:      log.WithField("component", "game"),
		feed:     opts.Feed,
		start:    time.Now(),
	}
	g.clock = func() time.Duration { return time.Since(g.start) }
	if _, err := g.session.ClaimDailyReward(time.Now()); err != nil && !errors.Is(err, progress.ErrAlreadyClaimed) {
		g.log.WithError(err).Warn("daily reward failed")
	}
	return g
}

// Session exposes the game session.
func (g *Game) Session() *sim.Session { return g.session }

// Panel returns the open panel.
func (g *Game) Panel() Panel { return g.panel }

// Run is the main loop. Input is read on its own goroutine and delivered
// through a channel; the session ticks on a ticker. Run returns when the
// player quits, the screen closes or ctx is done, committing any run under
// way, and finalizes the screen.
func (g *Game) Run(ctx context.Context) {
	defer g.screen.Fini()
	defer g.session.End()

	events := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / TickRate)
	defer ticker.Stop()

	g.session.Tick(g.clock())
	g.draw()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if !g.handleEvent(ev) {
				return
			}
			g.draw()
		case <-ticker.C:
			g.tick()
			g.draw()
		}
	}
}

func (g *Game) tick() {
	g.session.Tick(g.clock())
	g.ticks++
	if g.feed != nil && g.ticks%publishEvery == 0 {
		g.feed.Publish(g.session.Snapshot())
	}
}

// handleEvent applies one input event. It returns false when the player
// quits.
func (g *Game) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
	case *tcell.EventKey:
		return g.handleKey(ev)
	case *tcell.EventMouse:
		g.handleMouse(ev)
	}
	return true
}

func (g *Game) handleKey(ev *tcell.EventKey) bool {
	if g.session.State() == sim.GameOver && g.panel == PanelNone {
		switch keyToAction(ev) {
		case ActionRestart, ActionStart:
			g.session.Restart()
		case ActionQuit:
			return false
		}
		return true
	}
	if g.panel != PanelNone {
		return g.handlePanelKey(ev)
	}

	s := g.session
	switch keyToAction(ev) {
	case ActionStart:
		switch s.State() {
		case sim.NotStarted:
			s.Start()
		case sim.Paused:
			s.Resume()
		}
	case ActionPause:
		s.TogglePause()
	case ActionSpeed:
		s.CycleSpeed()
	case ActionRestart:
		s.Restart()
	case ActionUpgrades:
		g.open(PanelUpgrades)
	case ActionShop:
		g.open(PanelShop)
	case ActionStats:
		g.open(PanelStats)
	case ActionThemes:
		g.themeCursor = 0
		g.open(PanelThemes)
	case ActionName:
		g.input = []rune(s.Name())
		g.open(PanelName)
	case ActionSave:
		g.slotMode = modeSave
		g.open(PanelSlots)
	case ActionLoad:
		g.slotMode = modeLoad
		g.open(PanelSlots)
	case ActionQuit:
		return false
	}
	return true
}

// open shows a panel, pausing a running game behind it.
func (g *Game) open(p Panel) {
	g.panel = p
	g.mouseDown = false
	g.session.ReleaseStrike()
	if g.session.State() == sim.Running {
		g.session.Pause()
		g.resume = true
	}
}

func (g *Game) close() {
	g.panel = PanelNone
	if g.resume && g.session.State() == sim.Paused {
		g.session.Resume()
	}
	g.resume = false
}

func (g *Game) handlePanelKey(ev *tcell.EventKey) bool {
	if g.panel == PanelName {
		g.handleNameKey(ev)
		return true
	}
	act := keyToAction(ev)
	if act == ActionClose {
		g.close()
		return true
	}
	s := g.session
	switch g.panel {
	case PanelUpgrades:
		if n := digit(ev); n > 0 && n <= len(sim.UpgradeKinds) {
			s.Upgrade(sim.UpgradeKinds[n-1])
		} else if act == ActionUpgrades {
			g.close()
		}
	case PanelShop:
		i := letter(ev)
		switch {
		case i >= 0 && i < len(progress.PermKinds):
			s.BuyPermanent(progress.PermKinds[i])
		case i >= len(progress.PermKinds) && i < len(progress.PermKinds)+len(progress.GemKinds):
			s.BuyGem(progress.GemKinds[i-len(progress.PermKinds)])
		case act == ActionShop:
			g.close()
		}
	case PanelStats:
		if act == ActionStats {
			g.close()
		}
	case PanelThemes:
		g.handleThemeKey(ev)
	case PanelSlots:
		g.handleSlotKey(ev)
	}
	return true
}

func (g *Game) handleSlotKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyRune {
		switch ev.Rune() {
		case 's', 'S':
			g.slotMode = modeSwitch
			return
		case 'd', 'D':
			g.slotMode = modeDelete
			return
		}
	}
	n := digit(ev)
	if n == 0 {
		return
	}
	s := g.session
	var err error
	switch g.slotMode {
	case modeSave:
		err = s.Save(n)
	case modeLoad:
		err = s.Load(n)
	case modeSwitch:
		err = s.SwitchSlot(n)
	case modeDelete:
		err = s.DeleteSave(n)
	}
	if err != nil {
		g.log.WithError(err).WithField("slot", n).Debug(g.slotMode + " failed")
		return
	}
	if g.slotMode == modeLoad || g.slotMode == modeSwitch {
		// the previous run is gone; nothing to resume
		g.resume = false
	}
	g.close()
}

func (g *Game) handleThemeKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp:
		g.themeCursor = (g.themeCursor - 1 + len(assets.Themes)) % len(assets.Themes)
	case tcell.KeyDown:
		g.themeCursor = (g.themeCursor + 1) % len(assets.Themes)
	case tcell.KeyEnter:
		id := assets.Themes[g.themeCursor].ID
		p := g.session.Progress()
		if !p.State().HasTheme(id) {
			if err := g.session.UnlockTheme(id); err != nil {
				return
			}
		}
		g.session.ApplyTheme(id)
	}
}

func (g *Game) handleNameKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		g.close()
	case tcell.KeyEnter:
		if err := g.session.SetName(string(g.input)); err != nil {
			g.log.WithError(err).Warn("player name not stored")
		}
		g.close()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(g.input) > 0 {
			g.input = g.input[:len(g.input)-1]
		}
	case tcell.KeyRune:
		if len(g.input) < progress.MaxNameLen {
			g.input = append(g.input, ev.Rune())
		}
	}
}

// handleMouse turns the left button into a held manual strike.
func (g *Game) handleMouse(ev *tcell.EventMouse) {
	if g.panel != PanelNone {
		return
	}
	sx, sy := ev.Position()
	cam := g.renderer.Camera()
	ax, ay := cam.ScreenToArena(sx, sy)
	down := ev.Buttons()&tcell.Button1 != 0
	switch {
	case down && !g.mouseDown:
		if !cam.Contains(sx, sy) {
			return
		}
		if g.session.PressStrike(ax, ay) == nil {
			g.mouseDown = true
		}
	case down:
		g.session.MoveStrike(ax, ay)
	case g.mouseDown:
		g.mouseDown = false
		g.session.ReleaseStrike()
	}
}

func (g *Game) draw() {
	snap := g.session.Snapshot()
	r := g.renderer
	r.DrawFrame(&snap)
	switch g.panel {
	case PanelUpgrades:
		r.DrawUpgrades(&snap)
	case PanelShop:
		r.DrawShop(g.session.Progress())
	case PanelSlots:
		r.DrawSlots(g.session.Slots(), g.session.Slot(), g.slotMode)
	case PanelStats:
		r.DrawStats(g.session.Progress())
	case PanelThemes:
		r.DrawThemes(g.session.Progress(), g.themeCursor)
	case PanelName:
		r.DrawPrompt("PLAYER NAME", string(g.input))
	default:
		if snap.State == sim.GameOver {
			r.DrawGameOver(&snap, g.session.Run(), g.session.Report())
		}
	}
	r.Show()
}
