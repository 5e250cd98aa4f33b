package assets

import "github.com/gdamore/tcell/v2"

// Palette is the set of colors a theme applies to the terminal surface.
type Palette struct {
	Primary    tcell.Color
	Secondary  tcell.Color
	Background tcell.Color
	Text       tcell.Color
	Success    tcell.Color
	Danger     tcell.Color
	Gold       tcell.Color
}

// RequireAllAchievements is the theme requirement satisfied only once every
// achievement is unlocked.
const RequireAllAchievements = "all"

// ThemeDef is a cosmetic theme sold for gems. Requires names the achievement
// that must be unlocked first ("" for none).
type ThemeDef struct {
	ID       string
	Name     string
	Desc     string
	Cost     int
	Requires string
	Palette  Palette
}

// DefaultTheme is owned from the start.
const DefaultTheme = "classic"

// Themes in shop order.
var Themes = []ThemeDef{
	{ID: "classic", Name: "Classic", Desc: "The original Tesla Tower theme", Cost: 0,
		Palette: palette(0x00ffff, 0xff00ff, 0x0a0a1a, 0xffffff, 0x00ff00, 0xff0000, 0xffd700)},
	{ID: "darkPurple", Name: "Dark Purple", Desc: "Mystical purple energy", Cost: 50, Requires: "wave_5",
		Palette: palette(0x9d4edd, 0xc77dff, 0x10002b, 0xe0aaff, 0x06ffa5, 0xff006e, 0xffd60a)},
	{ID: "oceanBlue", Name: "Ocean Blue", Desc: "Deep sea currents", Cost: 75, Requires: "wave_10",
		Palette: palette(0x0077b6, 0x00b4d8, 0x03045e, 0xcaf0f8, 0x06ffa5, 0xe63946, 0xffd60a)},
	{ID: "forestGreen", Name: "Forest Green", Desc: "Nature's power", Cost: 100, Requires: "wave_20",
		Palette: palette(0x2d6a4f, 0x52b788, 0x081c15, 0xd8f3dc, 0x95d5b2, 0xd00000, 0xffd60a)},
	{ID: "sunsetOrange", Name: "Sunset Orange", Desc: "Blazing fire energy", Cost: 125, Requires: "kills_100",
		Palette: palette(0xff6d00, 0xff9e00, 0x1a0800, 0xffe5d9, 0x06ffa5, 0xc9184a, 0xffe169)},
	{ID: "neonPink", Name: "Neon Pink", Desc: "Cyberpunk vibes", Cost: 150, Requires: "boss_1",
		Palette: palette(0xff006e, 0xff0a54, 0x000000, 0xffccd5, 0x06ffa5, 0xfb5607, 0xffd60a)},
	{ID: "goldenRoyal", Name: "Golden Royal", Desc: "Luxurious gold and purple", Cost: 200, Requires: RequireAllAchievements,
		Palette: palette(0xffd700, 0x7209b7, 0x0f0a1e, 0xf6e8ff, 0x06ffa5, 0xd00000, 0xffea00)},
}

// ThemeByID looks a theme up by its identifier.
func ThemeByID(id string) (ThemeDef, bool) {
	for _, t := range Themes {
		if t.ID == id {
			return t, true
		}
	}
	return ThemeDef{}, false
}

func palette(primary, secondary, bg, text, success, danger, gold int32) Palette {
	return Palette{
		Primary:    tcell.NewHexColor(primary),
		Secondary:  tcell.NewHexColor(secondary),
		Background: tcell.NewHexColor(bg),
		Text:       tcell.NewHexColor(text),
		Success:    tcell.NewHexColor(success),
		Danger:     tcell.NewHexColor(danger),
		Gold:       tcell.NewHexColor(gold),
	}
}
