package render

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"tesla-tower/assets"
	"tesla-tower/internal/component"
	"tesla-tower/internal/progress"
	"tesla-tower/internal/sim"
	"tesla-tower/internal/stats"
)

var upgradeLabels = map[sim.UpgradeKind]string{
	sim.UpgradeDamage:         "⚡ Damage +5",
	sim.UpgradeRange:          "📡 Range +30",
	sim.UpgradeFireRate:       "⏱ Fire rate -100ms",
	sim.UpgradeHealth:         "🔧 Repair +50 HP",
	sim.UpgradeTargets:        "🎯 Targets +1",
	sim.UpgradeClickDamage:    "👆 Strike damage +2",
	sim.UpgradeChainLightning: "🔗 Chain lightning +1",
	sim.UpgradeShield:         "🛡 Shield +5",
}

// DrawUpgrades lists the gold upgrades with their prices; affordable ones
// are highlighted.
func (r *Renderer) DrawUpgrades(snap *sim.Snapshot) {
	st := r.styles
	x, y := r.box(46, len(sim.UpgradeKinds)+6, "UPGRADES")
	r.drawText(x+2, y+1, fmt.Sprintf("💰 %d gold   tower level %d", snap.Gold, snap.Tower.Level), st.Gold)
	for i, k := range sim.UpgradeKinds {
		cost := snap.Costs[k.String()]
		style := st.Dim
		if snap.Gold >= cost {
			style = st.Base
		}
		row := y + 3 + i
		r.drawText(x+2, row, fmt.Sprintf("[%d] %s", i+1, upgradeLabels[k]), style)
		r.drawText(x+36, row, fmt.Sprintf("%5d", cost), st.Gold)
	}
	r.drawText(x+2, y+4+len(sim.UpgradeKinds), "[1-8] buy   [U/Esc] close", st.Dim)
}

var permLabels = map[progress.PermKind]string{
	progress.PermDamage: "Damage +2",
	progress.PermHealth: "Max health +20",
	progress.PermClick:  "Strike damage +1",
	progress.PermGold:   "Starting gold +50",
}

var gemLabels = map[progress.GemKind]string{
	progress.GemDamage: "Damage +10%",
	progress.GemHealth: "Health +10%",
	progress.GemGold:   "Gold +20%",
	progress.GemXP:     "Kill credit +15%",
	progress.GemCrit:   "Crit chance +5%",
	progress.GemRegen:  "Regen +1 HP/5s",
}

func gemLevel(g stats.GemLevels, k progress.GemKind) int {
	switch k {
	case progress.GemDamage:
		return g.Damage
	case progress.GemHealth:
		return g.Health
	case progress.GemGold:
		return g.Gold
	case progress.GemXP:
		return g.XP
	case progress.GemCrit:
		return g.Crit
	case progress.GemRegen:
		return g.Regen
	}
	return 0
}

// DrawShop shows the permanent upgrades paid in lifetime kills (keys a-d)
// and the gem upgrades (keys e-j).
func (r *Renderer) DrawShop(p *progress.Store) {
	st := r.styles
	s := p.State()
	rows := len(progress.PermKinds) + len(progress.GemKinds)
	x, y := r.box(52, rows+9, "PERMANENT SHOP")
	r.drawText(x+2, y+1, fmt.Sprintf("☠ %d total kills   💎 %d gems", s.TotalKills, s.Gems), st.Gold)

	row := y + 3
	r.drawText(x+2, row, "Paid in kills", st.Secondary)
	for i, k := range progress.PermKinds {
		row++
		cost := p.PermanentCost(k)
		style := st.Dim
		if s.TotalKills >= cost {
			style = st.Base
		}
		r.drawText(x+2, row, fmt.Sprintf("[%c] %s", 'a'+i, permLabels[k]), style)
		r.drawText(x+40, row, fmt.Sprintf("%6d", cost), st.Gold)
	}
	row += 2
	r.drawText(x+2, row, "Paid in gems", st.Secondary)
	for i, k := range progress.GemKinds {
		row++
		cost := p.GemCost(k)
		style := st.Dim
		if s.Gems >= cost {
			style = st.Base
		}
		key := 'a' + rune(len(progress.PermKinds)+i)
		r.drawText(x+2, row, fmt.Sprintf("[%c] %s (lv %d)", key, gemLabels[k], gemLevel(s.GemUpgrades, k)), style)
		r.drawText(x+40, row, fmt.Sprintf("%6d", cost), st.Gold)
	}
	r.drawText(x+2, row+2, "[a-j] buy   [K/Esc] close", st.Dim)
}

// DrawSlots shows the save slots. mode names the action the digit keys
// perform ("save" or "load").
func (r *Renderer) DrawSlots(slots []sim.SlotInfo, current int, mode string) {
	st := r.styles
	x, y := r.box(58, len(slots)*2+6, "SAVE SLOTS")
	for i, info := range slots {
		row := y + 2 + i*2
		style := st.Base
		marker := "  "
		if info.Slot == current {
			marker = "► "
			style = st.Primary
		}
		var line string
		switch info.Status {
		case sim.SlotPresent:
			line = fmt.Sprintf("%s%d: %s  wave %d  %d kills  %s", marker, info.Slot, info.Name, info.Wave, info.Kills, info.Saved.Format("2006-01-02 15:04"))
		case sim.SlotCorrupt:
			line = fmt.Sprintf("%s%d: corrupt save", marker, info.Slot)
			style = st.Danger
		default:
			line = fmt.Sprintf("%s%d: empty", marker, info.Slot)
			style = st.Dim
		}
		r.drawText(x+2, row, line, style)
		r.drawText(x+6, row+1, fmt.Sprintf("best wave %d  ☠ %d  💎 %d", info.HighestWave, info.TotalKills, info.Gems), st.Dim)
	}
	r.drawText(x+2, y+3+len(slots)*2, fmt.Sprintf("[1-3] %s   [S] switch profile   [D] delete   [Esc] close", mode), st.Dim)
}

// DrawStats shows lifetime statistics, kills per enemy kind, achievements,
// today's challenges and the leaderboards.
func (r *Renderer) DrawStats(p *progress.Store) {
	st := r.styles
	s := p.State()
	_, sh := r.screen.Size()
	x, y := r.box(72, sh-2, "STATISTICS")
	row := y + 1
	put := func(col int, text string) {
		r.drawText(x+col, row, text, st.Base)
	}
	put(2, fmt.Sprintf("Games %d   Best wave %d   Kills %d   Bosses %d", s.TotalGamesPlayed, s.HighestWave, s.TotalKills, s.BossesKilled))
	row++
	put(2, fmt.Sprintf("Damage %d   Clicks %d   Gold earned %d", s.TotalDamageDealt, s.TotalClicks, s.TotalGoldEarned))
	row += 2

	r.drawText(x+2, row, "Enemies defeated", st.Secondary)
	row++
	for i, k := range component.EnemyKinds {
		def := assets.EnemyFor(k)
		r.drawText(x+2+(i%4)*17, row, fmt.Sprintf("%s %-8.8s %d", def.Glyph, def.Name, s.ZombieKills[k]), st.Base)
		if i%4 == 3 {
			row++
		}
	}
	row += 2

	r.drawText(x+2, row, fmt.Sprintf("Achievements %d/%d", p.UnlockedCount(), len(assets.Achievements)), st.Secondary)
	row++
	for i, a := range assets.Achievements {
		style, mark := st.Dim, "·"
		if p.Unlocked(a.ID) {
			style, mark = st.Success, "✓"
		}
		col := 2 + (i%2)*34
		r.drawText(x+col, row, fmt.Sprintf("%s %s %s", mark, a.Icon, a.Name), style)
		if i%2 == 1 {
			row++
		}
	}
	row++

	r.drawText(x+2, row, "Daily challenges", st.Secondary)
	row++
	for _, c := range p.Challenges() {
		style, mark := st.Base, "·"
		if c.Completed {
			style, mark = st.Success, "✓"
		}
		r.drawText(x+2, row, fmt.Sprintf("%s %s: %s (+%d kills)", mark, c.Name, c.Desc, c.Reward), style)
		row++
	}
	row++

	boards := p.Leaderboards()
	cols := []struct {
		title   string
		entries []progress.Entry
		format  func(int) string
	}{
		{"Highest wave", boards.HighestWave, itoa},
		{"Most kills", boards.MostKills, itoa},
		{"Fastest to 20", boards.FastestToWave20, func(n int) string { return Clock(time.Duration(n) * time.Second) }},
	}
	for i, c := range cols {
		cx := x + 2 + i*23
		r.drawText(cx, row, c.title, st.Secondary)
		for j, e := range c.entries[:min(len(c.entries), 5)] {
			r.drawText(cx, row+1+j, fmt.Sprintf("%d. %-10.10s %s", j+1, e.Name, c.format(e.Score)), st.Base)
		}
	}
	r.drawText(x+2, y+sh-4, "[T/Esc] close", st.Dim)
}

// DrawThemes lists the themes with their price and lock state.
func (r *Renderer) DrawThemes(p *progress.Store, cursor int) {
	st := r.styles
	s := p.State()
	current := p.Theme().ID
	x, y := r.box(64, len(assets.Themes)+6, "THEMES")
	r.drawText(x+2, y+1, fmt.Sprintf("💎 %d gems", s.Gems), st.Gold)
	for i, t := range assets.Themes {
		row := y + 3 + i
		status := fmt.Sprintf("%d 💎", t.Cost)
		switch {
		case t.ID == current:
			status = "active"
		case s.HasTheme(t.ID):
			status = "owned"
		case t.Requires == assets.RequireAllAchievements:
			status += " (all achievements)"
		case t.Requires != "" && !p.Unlocked(t.Requires):
			status += " (locked)"
		}
		style := NewStyles(t.Palette).Primary
		if i == cursor {
			style = st.Selected
		}
		r.drawText(x+2, row, fmt.Sprintf("%-14s %s", t.Name, t.Desc), style)
		r.drawText(x+44, row, status, st.Dim)
	}
	r.drawText(x+2, y+4+len(assets.Themes), "[↑/↓] choose   [Enter] unlock or apply   [Esc] close", st.Dim)
}

// DrawGameOver summarizes a finished run and what it earned.
func (r *Renderer) DrawGameOver(snap *sim.Snapshot, run sim.RunStats, report *progress.CommitReport) {
	st := r.styles
	lines := []string{
		fmt.Sprintf("Wave reached   %d", snap.Wave),
		fmt.Sprintf("Zombies slain  %d", snap.Kills),
		fmt.Sprintf("Damage dealt   %d", run.Damage),
		fmt.Sprintf("Damage taken   %d", run.DamageTaken),
		fmt.Sprintf("Gold earned    %d", run.GoldEarned),
		fmt.Sprintf("Strikes        %d (%d kills)", run.Clicks, run.ClickKills),
		fmt.Sprintf("Survived       %s", Clock(snap.Elapsed)),
	}
	if report != nil {
		for _, a := range report.Achievements {
			lines = append(lines, fmt.Sprintf("🏆 %s %s +%d 💎", a.Icon, a.Name, a.GemReward))
		}
		for _, c := range report.Challenges {
			lines = append(lines, fmt.Sprintf("🏆 %s +%d kills", c.Name, c.Reward))
		}
		for _, board := range slices.Sorted(maps.Keys(report.Ranks)) {
			lines = append(lines, fmt.Sprintf("📈 #%d on %s", report.Ranks[board], board))
		}
	}
	x, y := r.box(48, len(lines)+6, "THE TOWER HAS FALLEN")
	for i, l := range lines {
		r.drawText(x+2, y+2+i, l, st.Base)
	}
	r.drawText(x+2, y+3+len(lines), "[R] try again   [Q] quit", st.Danger)
}

// DrawPrompt shows a one-line text input.
func (r *Renderer) DrawPrompt(title, value string) {
	x, y := r.box(40, 5, title)
	col := r.drawText(x+2, y+2, value, r.styles.Base)
	r.screen.SetContent(col, y+2, '_', nil, r.styles.Primary)
}
