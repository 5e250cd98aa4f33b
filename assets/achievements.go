package assets

// Lifetime statistics an achievement can be measured against.
const (
	StatKills  = "totalKills"
	StatWave   = "highestWave"
	StatDamage = "totalDamageDealt"
	StatClicks = "totalClicks"
	StatBosses = "bossesKilled"
	StatGold   = "totalGoldEarned"
	StatGames  = "totalGamesPlayed"
)

// AchievementDef is one entry of the achievement catalogue.
type AchievementDef struct {
	ID          string
	Name        string
	Desc        string
	Icon        string
	Stat        string
	Requirement int
	GemReward   int
}

// Achievements is the full catalogue in display order.
var Achievements = []AchievementDef{
	{ID: "kills_10", Name: "First Blood", Desc: "Kill 10 zombies", Icon: "🩸", Stat: StatKills, Requirement: 10, GemReward: 5},
	{ID: "kills_100", Name: "Zombie Slayer", Desc: "Kill 100 zombies", Icon: "⚔️", Stat: StatKills, Requirement: 100, GemReward: 10},
	{ID: "kills_500", Name: "Zombie Hunter", Desc: "Kill 500 zombies", Icon: "🏹", Stat: StatKills, Requirement: 500, GemReward: 25},
	{ID: "kills_1000", Name: "Zombie Destroyer", Desc: "Kill 1000 zombies", Icon: "💀", Stat: StatKills, Requirement: 1000, GemReward: 50},

	{ID: "wave_5", Name: "Getting Started", Desc: "Reach wave 5", Icon: "🌊", Stat: StatWave, Requirement: 5, GemReward: 5},
	{ID: "wave_10", Name: "Wave Master", Desc: "Reach wave 10", Icon: "🌀", Stat: StatWave, Requirement: 10, GemReward: 15},
	{ID: "wave_20", Name: "Wave Legend", Desc: "Reach wave 20", Icon: "🌪️", Stat: StatWave, Requirement: 20, GemReward: 30},
	{ID: "wave_30", Name: "Wave God", Desc: "Reach wave 30", Icon: "⚡", Stat: StatWave, Requirement: 30, GemReward: 75},

	{ID: "damage_10000", Name: "Power Striker", Desc: "Deal 10,000 damage", Icon: "💥", Stat: StatDamage, Requirement: 10000, GemReward: 10},
	{ID: "damage_100000", Name: "Damage Dealer", Desc: "Deal 100,000 damage", Icon: "💣", Stat: StatDamage, Requirement: 100000, GemReward: 40},

	{ID: "clicks_500", Name: "Click Happy", Desc: "Click 500 times", Icon: "👆", Stat: StatClicks, Requirement: 500, GemReward: 10},
	{ID: "clicks_5000", Name: "Click Master", Desc: "Click 5000 times", Icon: "🖱️", Stat: StatClicks, Requirement: 5000, GemReward: 35},

	{ID: "boss_1", Name: "Boss Buster", Desc: "Kill your first boss", Icon: "👑", Stat: StatBosses, Requirement: 1, GemReward: 20},
	{ID: "boss_10", Name: "Boss Hunter", Desc: "Kill 10 bosses", Icon: "🏆", Stat: StatBosses, Requirement: 10, GemReward: 50},

	{ID: "gold_5000", Name: "Gold Collector", Desc: "Earn 5000 gold", Icon: "💰", Stat: StatGold, Requirement: 5000, GemReward: 15},
	{ID: "gold_50000", Name: "Gold Tycoon", Desc: "Earn 50,000 gold", Icon: "💎", Stat: StatGold, Requirement: 50000, GemReward: 45},

	{ID: "games_10", Name: "Dedicated", Desc: "Play 10 games", Icon: "🎮", Stat: StatGames, Requirement: 10, GemReward: 10},
	{ID: "games_50", Name: "Persistent", Desc: "Play 50 games", Icon: "🕹️", Stat: StatGames, Requirement: 50, GemReward: 40},
}
