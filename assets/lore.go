package assets

import "fmt"

// WaveBanner is shown when a milestone wave begins.
func WaveBanner(wave int) string {
	return fmt.Sprintf("⚡ Wave %d Incoming! ⚡", wave)
}

// BossWarnings are picked at random when a boss enters the arena.
var BossWarnings = []string{
	"A crowned horror shambles out of the dark. The coils whine in anticipation.",
	"The ground shakes. Something big has heard the hum of the tower.",
	"👑 A boss approaches. Every volt counts now.",
}

// CriticalHealth is shown once per run when the tower drops below a quarter
// of its health.
const CriticalHealth = "⚠️ Tower integrity critical! Repair or perish."

// StartLines greet the player when a run begins.
var StartLines = []string{
	"The Tesla coil crackles to life. Here they come.",
	"Capacitors charged. Hold the line.",
	"The horde smells electricity. Give them a taste.",
}

// GameOverLines close a run.
var GameOverLines = []string{
	"The tower falls silent. The horde moves on.",
	"The last arc fades. For now.",
}
