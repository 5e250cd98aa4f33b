// Package save defines the persisted documents and the keys they live under.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"time"
)

// Version is written into every new save record. Records without a version
// predate shields and chain lightning.
const Version = 1

// Slots is the number of save slots per player.
const Slots = 3

// Global keys.
const (
	KeyLeaderboards    = "leaderboards"
	KeyDailyChallenges = "dailyChallenges"
	KeyPlayerName      = "playerName"
	KeyCurrentSlot     = "currentSlot"
)

// ErrCorrupt wraps every decode failure.
var ErrCorrupt = errors.New("save: corrupt record")

// SaveKey is where the run in slot n is stored.
func SaveKey(slot int) string { return fmt.Sprintf("teslaTowerSave_slot%d", slot) }

// PermanentKey is where the lifetime progress of slot n is stored.
func PermanentKey(slot int) string { return fmt.Sprintf("teslaTowerPermanent_slot%d", slot) }

// AchievementsKey is where the unlocked achievements of slot n are stored.
func AchievementsKey(slot int) string { return fmt.Sprintf("teslaTowerAchievements_slot%d", slot) }

// ValidSlot reports whether n names a slot.
func ValidSlot(n int) bool { return n >= 1 && n <= Slots }

// Tower is the tower part of a save record.
type Tower struct {
	Health         int     `json:"health"`
	MaxHealth      int     `json:"maxHealth"`
	Level          int     `json:"level"`
	Damage         int     `json:"damage"`
	Range          float64 `json:"range"`
	FireRateMS     int     `json:"fireRate"`
	MaxTargets     int     `json:"maxTargets"`
	ChainLightning int     `json:"chainLightning"`
	Shield         int     `json:"shield"`
	MaxShield      int     `json:"maxShield"`
}

// Record is one saved run. Unknown fields are ignored and missing ones keep
// the defaults passed to Decode.
type Record struct {
	Version        int            `json:"version"`
	PlayerName     string         `json:"playerName"`
	Wave           int            `json:"wave"`
	Kills          int            `json:"kills"`
	Gold           int            `json:"gold"`
	Tower          Tower          `json:"tower"`
	ClickDamage    int            `json:"clickDamage"`
	UpgradeCosts   map[string]int `json:"upgradeCosts"`
	ZombiesPerWave int            `json:"zombiesPerWave"`
	SpawnRateMS    int            `json:"spawnRate"`
	Timestamp      int64          `json:"timestamp"`
}

// Saved returns the record's timestamp.
func (r Record) Saved() time.Time { return time.UnixMilli(r.Timestamp) }

// Encode stamps the current version and marshals r.
func Encode(r Record) (string, error) {
	r.Version = Version
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("save: encode: %w", err)
	}
	return string(data), nil
}

// Decode parses a record on top of defaults, then migrates it. Fields the
// stored document lacks keep their default value; upgrade costs merge key by
// key.
func Decode(data string, defaults Record) (Record, error) {
	r := defaults
	r.UpgradeCosts = nil
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	costs := maps.Clone(defaults.UpgradeCosts)
	if costs == nil {
		costs = make(map[string]int)
	}
	for k, v := range r.UpgradeCosts {
		if v > 0 {
			costs[k] = v
		}
	}
	r.UpgradeCosts = costs
	if r.Wave < 1 {
		return Record{}, fmt.Errorf("%w: wave %d", ErrCorrupt, r.Wave)
	}
	if r.Tower.Health <= 0 {
		return Record{}, fmt.Errorf("%w: tower health %d", ErrCorrupt, r.Tower.Health)
	}
	return Migrate(r, defaults), nil
}

// Migrate brings an old record up to Version. Unversioned records could
// carry a shield above its maximum and a zero tower level.
func Migrate(r, defaults Record) Record {
	if r.Version < Version {
		r.Tower.MaxShield = max(r.Tower.MaxShield, r.Tower.Shield)
		r.Tower.Level = max(r.Tower.Level, 1)
	}
	if r.PlayerName == "" {
		r.PlayerName = defaults.PlayerName
	}
	if r.Tower.MaxHealth <= 0 {
		r.Tower.MaxHealth = defaults.Tower.MaxHealth
	}
	r.Tower.Health = min(r.Tower.Health, r.Tower.MaxHealth)
	r.Version = Version
	return r
}
