package render

import (
	"math"
	"strconv"

	"tesla-tower/assets"
	"tesla-tower/internal/component"
	"tesla-tower/internal/sim"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const (
	statusRows = 1 // status line above the arena
	logRows    = 4 // separator plus three messages below it
	ringPoints = 96
)

// Renderer draws snapshots onto a tcell screen. It never touches a session.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
	styles Styles
	theme  string
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	r := &Renderer{screen: screen}
	r.setTheme(assets.DefaultTheme)
	r.camera = NewCamera(1, 1, 0, statusRows, 1, 1)
	return r
}

// Camera returns the camera of the last drawn frame, used to map mouse
// cells back to arena points.
func (r *Renderer) Camera() *Camera { return r.camera }

// Styles returns the active theme styles.
func (r *Renderer) Styles() Styles { return r.styles }

// Screen returns the target screen.
func (r *Renderer) Screen() tcell.Screen { return r.screen }

func (r *Renderer) setTheme(id string) {
	if id == r.theme {
		return
	}
	r.theme = id
	r.styles = ThemeStyles(id)
}

// layout fits the arena between the status line and the message log.
func (r *Renderer) layout(snap *sim.Snapshot) {
	w, h := r.screen.Size()
	rows := max(h-statusRows-logRows, 1)
	r.camera = NewCamera(snap.Width, snap.Height, 0, statusRows, w, rows)
}

// DrawFrame clears the screen and draws the arena and HUD. Callers add
// panels on top and then Show.
func (r *Renderer) DrawFrame(snap *sim.Snapshot) {
	r.setTheme(snap.Theme)
	r.layout(snap)
	r.screen.SetStyle(r.styles.Base)
	r.screen.Clear()
	r.drawRange(snap.Tower)
	r.drawEffects(snap.Effects, false)
	r.drawTower(snap.Tower)
	r.drawEnemies(snap.Enemies)
	r.drawEffects(snap.Effects, true)
	r.DrawHUD(snap)
}

// Show flushes the frame to the terminal.
func (r *Renderer) Show() { r.screen.Show() }

func (r *Renderer) drawRange(t sim.TowerView) {
	style := r.styles.Dim
	for i := 0; i < ringPoints; i++ {
		a := 2 * math.Pi * float64(i) / ringPoints
		sx, sy, ok := r.camera.ArenaToScreen(t.X+math.Cos(a)*t.Range, t.Y+math.Sin(a)*t.Range)
		if ok {
			r.screen.SetContent(sx, sy, '·', nil, style)
		}
	}
}

func (r *Renderer) drawTower(t sim.TowerView) {
	sx, sy, ok := r.camera.ArenaToScreen(t.X, t.Y)
	if !ok {
		return
	}
	style := r.styles.Primary
	if t.Shield > 0 {
		style = r.styles.Secondary
	}
	r.putGlyph(sx-1, sy, assets.GlyphTower, style)
}

// drawEnemies draws bosses last so they stay on top of the crowd.
func (r *Renderer) drawEnemies(enemies []sim.EnemyView) {
	for pass := 0; pass < 2; pass++ {
		for _, e := range enemies {
			if (e.Kind == component.KindBoss) != (pass == 1) {
				continue
			}
			sx, sy, ok := r.camera.ArenaToScreen(e.X, e.Y)
			if !ok {
				continue
			}
			glyph := e.Glyph
			if glyph == "" {
				glyph = assets.EnemyFor(e.Kind).Glyph
			}
			r.putGlyph(sx, sy, glyph, r.styles.hexStyle(e.Color))
			if e.Kind == component.KindBoss && e.MaxHealth > 0 {
				r.drawBar(sx-2, sy-1, 6, float64(e.Health)/float64(e.MaxHealth))
			}
		}
	}
}

// drawEffects draws bolts and particles when top is false, and floating
// text when it is true.
func (r *Renderer) drawEffects(effects []sim.EffectView, top bool) {
	for _, e := range effects {
		text := e.Kind == component.EffectDamageNumber || e.Kind == component.EffectCoin
		if text != top {
			continue
		}
		switch e.Kind {
		case component.EffectBolt:
			style := r.styles.Primary
			switch {
			case e.Crit:
				style = r.styles.Gold
			case e.Chain:
				style = r.styles.Secondary
			}
			r.drawLine(e.X, e.Y, e.ToX, e.ToY, style)
		case component.EffectDamageNumber, component.EffectCoin:
			sx, sy, ok := r.camera.ArenaToScreen(e.X, e.Y)
			if !ok {
				continue
			}
			style := r.styles.Danger
			if e.Kind == component.EffectCoin {
				style = r.styles.Gold
			}
			if e.Crit {
				style = r.styles.Gold.Bold(true)
			}
			label := e.Text
			if label == "" {
				label = e.Glyph
			}
			r.drawText(sx, sy, label, style)
		default:
			sx, sy, ok := r.camera.ArenaToScreen(e.X, e.Y)
			if !ok {
				continue
			}
			ch := '*'
			if e.Life < 0.4 {
				ch = '.'
			}
			r.screen.SetContent(sx, sy, ch, nil, r.styles.hexStyle(e.Color))
		}
	}
}

// drawLine plots a bolt cell by cell between two arena points.
func (r *Renderer) drawLine(ax0, ay0, ax1, ay1 float64, style tcell.Style) {
	x0, y0, ok0 := r.camera.ArenaToScreen(ax0, ay0)
	x1, y1, ok1 := r.camera.ArenaToScreen(ax1, ay1)
	if !ok0 || !ok1 {
		return
	}
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	for {
		r.screen.SetContent(x0, y0, '·', nil, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// drawBar draws a width-cell gauge filled to frac.
func (r *Renderer) drawBar(x, y, width int, frac float64) {
	frac = min(max(frac, 0), 1)
	filled := int(math.Ceil(frac * float64(width)))
	style := r.styles.Health(frac)
	for i := 0; i < width; i++ {
		ch := '░'
		if i < filled {
			ch = '█'
		}
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	r.screen.SetContent(x, y, runes[0], runes[1:], style)
	if runewidth.StringWidth(glyph) == 2 {
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}

// drawText writes text from (x, y) and returns the column after it. Wide
// runes take two columns; zero-width runes are attached to the previous
// cell.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) int {
	col := x
	var last rune
	lastCol := -1
	var comb []rune
	flush := func() {
		if lastCol >= 0 {
			r.screen.SetContent(lastCol, y, last, comb, style)
		}
	}
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 && lastCol >= 0 {
			comb = append(comb, ch)
			continue
		}
		flush()
		last, lastCol, comb = ch, col, nil
		col += max(w, 1)
	}
	flush()
	return col
}

// TextWidth is the column width of text as drawText lays it out.
func TextWidth(text string) int {
	n := 0
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 && n > 0 {
			continue
		}
		n += max(w, 1)
	}
	return n
}

func itoa(n int) string { return strconv.Itoa(n) }

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
