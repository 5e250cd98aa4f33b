package render

import (
	"tesla-tower/assets"
	"tesla-tower/internal/sim"

	"github.com/gdamore/tcell/v2"
)

// Styles is a theme palette turned into ready tcell styles. Every style
// shares the theme background.
type Styles struct {
	Base      tcell.Style
	Primary   tcell.Style
	Secondary tcell.Style
	Success   tcell.Style
	Danger    tcell.Style
	Gold      tcell.Style
	Dim       tcell.Style
	Selected  tcell.Style
}

// NewStyles builds the styles of a palette.
func NewStyles(p assets.Palette) Styles {
	base := tcell.StyleDefault.Background(p.Background).Foreground(p.Text)
	return Styles{
		Base:      base,
		Primary:   base.Foreground(p.Primary),
		Secondary: base.Foreground(p.Secondary),
		Success:   base.Foreground(p.Success),
		Danger:    base.Foreground(p.Danger),
		Gold:      base.Foreground(p.Gold),
		Dim:       base.Foreground(tcell.ColorGray),
		Selected:  base.Foreground(p.Background).Background(p.Primary),
	}
}

// ThemeStyles looks the theme up, falling back to the default theme.
func ThemeStyles(id string) Styles {
	def, ok := assets.ThemeByID(id)
	if !ok {
		def, _ = assets.ThemeByID(assets.DefaultTheme)
	}
	return NewStyles(def.Palette)
}

// Message picks the style of a log line.
func (s Styles) Message(kind sim.MsgKind) tcell.Style {
	switch kind {
	case sim.MsgGood:
		return s.Success
	case sim.MsgWarn:
		return s.Secondary
	case sim.MsgBad:
		return s.Danger
	case sim.MsgGold:
		return s.Gold
	}
	return s.Base
}

// Health colors a bar by the remaining fraction.
func (s Styles) Health(frac float64) tcell.Style {
	switch {
	case frac > 0.5:
		return s.Success
	case frac > 0.25:
		return s.Gold
	}
	return s.Danger
}

// hexStyle draws in a snapshot color on the theme background.
func (s Styles) hexStyle(hex int32) tcell.Style {
	if hex < 0 {
		return s.Base
	}
	return s.Base.Foreground(tcell.NewHexColor(hex))
}
