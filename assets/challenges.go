package assets

// Run counters a daily challenge condition can test.
const (
	RunWave         = "wave"
	RunUpgradesUsed = "upgradesUsed"
	RunClickKills   = "clickKills"
	RunDamageTaken  = "damageTaken"
)

// ConditionDef is one comparison of a run counter against a threshold.
// Op is one of ">=", "<=", "==", ">", "<".
type ConditionDef struct {
	Stat      string
	Op        string
	Threshold int
}

// ChallengeDef is a daily challenge template. Every condition must hold.
// Rewards are paid in lifetime kills.
type ChallengeDef struct {
	ID         int
	Name       string
	Desc       string
	Conditions []ConditionDef
	Reward     int
}

// DailyChallenges are issued fresh every calendar day.
var DailyChallenges = []ChallengeDef{
	{
		ID:   1,
		Name: "No Upgrades Challenge",
		Desc: "Survive 10 waves without using any upgrades",
		Conditions: []ConditionDef{
			{Stat: RunWave, Op: ">=", Threshold: 10},
			{Stat: RunUpgradesUsed, Op: "==", Threshold: 0},
		},
		Reward: 100,
	},
	{
		ID:         2,
		Name:       "Click Master",
		Desc:       "Kill 100 zombies using only click damage",
		Conditions: []ConditionDef{{Stat: RunClickKills, Op: ">=", Threshold: 100}},
		Reward:     150,
	},
	{
		ID:   3,
		Name: "Untouchable",
		Desc: "Beat wave 15 without taking any damage",
		Conditions: []ConditionDef{
			{Stat: RunWave, Op: ">=", Threshold: 15},
			{Stat: RunDamageTaken, Op: "==", Threshold: 0},
		},
		Reward: 200,
	},
}
