package render

import (
	"fmt"
	"time"

	"tesla-tower/internal/sim"

	"github.com/gdamore/tcell/v2"
)

// DrawHUD renders the status line above the arena and the message log
// below it.
func (r *Renderer) DrawHUD(snap *sim.Snapshot) {
	w, h := r.screen.Size()
	st := r.styles
	r.fillRow(0, st.Base)

	t := snap.Tower
	col := r.drawText(0, 0, fmt.Sprintf("⚡ Wave %d ", snap.Wave), st.Primary)
	col = r.drawText(col, 0, fmt.Sprintf("(%d/%d)  ", snap.Spawned, snap.Quota), st.Dim)
	frac := 0.0
	if t.MaxHealth > 0 {
		frac = float64(t.Health) / float64(t.MaxHealth)
	}
	col = r.drawText(col, 0, fmt.Sprintf("❤ %d/%d  ", t.Health, t.MaxHealth), st.Health(frac))
	if t.MaxShield > 0 {
		col = r.drawText(col, 0, fmt.Sprintf("🛡 %d/%d  ", t.Shield, t.MaxShield), st.Secondary)
	}
	col = r.drawText(col, 0, fmt.Sprintf("💰 %d  ", snap.Gold), st.Gold)
	col = r.drawText(col, 0, fmt.Sprintf("☠ %d  ", snap.Kills), st.Base)
	col = r.drawText(col, 0, fmt.Sprintf("x%g  ", snap.Speed), st.Secondary)
	r.drawText(col, 0, Clock(snap.Elapsed), st.Dim)

	badge := fmt.Sprintf("[%s · slot %d]", snap.Player, snap.Slot)
	if bw := TextWidth(badge); bw < w-col-8 {
		r.drawText(w-bw-1, 0, badge, st.Dim)
	}

	top := h - logRows
	r.drawHLine(top, st.Dim)
	msgs := snap.Messages
	if n := logRows - 1; len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	for i, m := range msgs {
		r.drawText(1, top+1+i, m.Text, st.Message(m.Kind))
	}

	switch snap.State {
	case sim.NotStarted:
		r.DrawBanner("TESLA TOWER DEFENSE", []string{
			"[Space] Start   [U] Upgrades   [K] Shop   [T] Stats",
			"[W] Save   [L] Load   [H] Themes   [N] Name   [Q] Quit",
			"Click or hold the mouse to strike by hand",
		})
	case sim.Paused:
		r.DrawBanner("PAUSED", []string{"[Space] or [P] to resume"})
	}
}

// DrawBanner draws a centered box with a title and lines.
func (r *Renderer) DrawBanner(title string, lines []string) {
	width := TextWidth(title)
	for _, l := range lines {
		width = max(width, TextWidth(l))
	}
	x, y := r.box(width+4, len(lines)+4, title)
	for i, l := range lines {
		r.drawText(x+2, y+2+i, l, r.styles.Base)
	}
}

// box clears a centered w×h rectangle, frames it and returns its corner.
func (r *Renderer) box(w, h int, title string) (int, int) {
	sw, sh := r.screen.Size()
	w, h = min(w, sw), min(h, sh)
	x, y := (sw-w)/2, (sh-h)/2
	st := r.styles
	for row := y; row < y+h; row++ {
		for c := x; c < x+w; c++ {
			ch := ' '
			switch {
			case row == y || row == y+h-1:
				ch = '─'
			case c == x || c == x+w-1:
				ch = '│'
			}
			r.screen.SetContent(c, row, ch, nil, st.Primary)
		}
	}
	r.screen.SetContent(x, y, '┌', nil, st.Primary)
	r.screen.SetContent(x+w-1, y, '┐', nil, st.Primary)
	r.screen.SetContent(x, y+h-1, '└', nil, st.Primary)
	r.screen.SetContent(x+w-1, y+h-1, '┘', nil, st.Primary)
	if title != "" {
		r.drawText(x+max((w-TextWidth(title))/2, 1), y, " "+title+" ", st.Primary.Bold(true))
	}
	return x, y
}

func (r *Renderer) drawHLine(y int, style tcell.Style) {
	w, _ := r.screen.Size()
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

func (r *Renderer) fillRow(y int, style tcell.Style) {
	w, _ := r.screen.Size()
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// Clock formats a duration as m:ss.
func Clock(d time.Duration) string {
	s := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
