package assets

import (
	"tesla-tower/internal/component"

	"github.com/gdamore/tcell/v2"
)

// Glyphs drawn by the terminal renderer.
const (
	GlyphTower     = "🗼"
	GlyphNormal    = "🧟"
	GlyphStrong    = "🧟‍♂️"
	GlyphRunner    = "🏃"
	GlyphTank      = "🛡️"
	GlyphExploder  = "💣"
	GlyphSpawner   = "👥"
	GlyphBoss      = "👑"
	GlyphSpawnling = "🧟‍♀️"
	GlyphCoin      = "🪙"
)

// EnemyDef is the presentation data of one enemy kind.
type EnemyDef struct {
	Name  string
	Glyph string
	Color tcell.Color
}

// Enemies is indexed by component.EnemyKind.
var Enemies = map[component.EnemyKind]EnemyDef{
	component.KindNormal:   {Name: "Zombie", Glyph: GlyphNormal, Color: tcell.ColorGreen},
	component.KindStrong:   {Name: "Brute", Glyph: GlyphStrong, Color: tcell.ColorDarkGreen},
	component.KindRunner:   {Name: "Runner", Glyph: GlyphRunner, Color: tcell.ColorYellow},
	component.KindTank:     {Name: "Tank", Glyph: GlyphTank, Color: tcell.ColorSilver},
	component.KindExploder: {Name: "Exploder", Glyph: GlyphExploder, Color: tcell.ColorOrangeRed},
	component.KindSpawner:  {Name: "Spawner", Glyph: GlyphSpawner, Color: tcell.ColorPurple},
	component.KindBoss:     {Name: "Boss", Glyph: GlyphBoss, Color: tcell.ColorGold},
}

// EnemyFor returns the presentation of kind, falling back to the normal zombie.
func EnemyFor(kind component.EnemyKind) EnemyDef {
	if d, ok := Enemies[kind]; ok {
		return d
	}
	return Enemies[component.KindNormal]
}
