package save

import (
	"errors"
	"testing"
)

func defaults() Record {
	return Record{
		PlayerName: "Player",
		Wave:       1,
		Tower: Tower{
			Health: 100, MaxHealth: 100, Level: 1, Damage: 10,
			Range: 150, FireRateMS: 1000, MaxTargets: 1,
		},
		ClickDamage:    5,
		UpgradeCosts:   map[string]int{"damage": 50, "shield": 100, "chainLightning": 200},
		ZombiesPerWave: 5,
		SpawnRateMS:    2000,
	}
}

func TestEncodeDecodePreservesRun(t *testing.T) {
	r := defaults()
	r.Wave, r.Kills, r.Gold = 7, 42, 310
	r.Tower.Shield, r.Tower.MaxShield = 5, 10
	r.UpgradeCosts["damage"] = 112
	data, err := Encode(r)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(data, defaults())
	if err != nil {
		t.Fatal(err)
	}
	if got.Version != Version || got.Wave != 7 || got.Kills != 42 || got.Gold != 310 {
		t.Errorf("got %+v", got)
	}
	if got.Tower.Shield != 5 || got.UpgradeCosts["damage"] != 112 || got.UpgradeCosts["shield"] != 100 {
		t.Errorf("tower/costs = %+v / %v", got.Tower, got.UpgradeCosts)
	}
}

func TestDecodeOldRecordKeepsDefaults(t *testing.T) {
	old := `{"playerName":"Ada","wave":4,"kills":20,"gold":80,
		"tower":{"health":70,"maxHealth":150,"level":3,"damage":15,"range":180,"fireRate":900,"maxTargets":2},
		"clickDamage":7,"upgradeCosts":{"damage":75},"zombiesPerWave":11,"spawnRate":1850}`
	got, err := Decode(old, defaults())
	if err != nil {
		t.Fatal(err)
	}
	if got.Version != Version {
		t.Errorf("version = %d; want %d", got.Version, Version)
	}
	if got.UpgradeCosts["shield"] != 100 || got.UpgradeCosts["chainLightning"] != 200 {
		t.Errorf("missing costs not defaulted: %v", got.UpgradeCosts)
	}
	if got.UpgradeCosts["damage"] != 75 {
		t.Errorf("damage cost = %d; want 75", got.UpgradeCosts["damage"])
	}
	if got.Tower.Shield != 0 || got.Tower.ChainLightning != 0 || got.Tower.MaxHealth != 150 {
		t.Errorf("tower = %+v", got.Tower)
	}
}

func TestDecodeDoesNotShareDefaultCosts(t *testing.T) {
	d := defaults()
	got, err := Decode(`{"wave":2}`, d)
	if err != nil {
		t.Fatal(err)
	}
	got.UpgradeCosts["damage"] = 1
	if d.UpgradeCosts["damage"] != 50 {
		t.Error("decoded record aliases the defaults' cost map")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, data := range []string{"not json", `{"wave":0}`, `{"wave":3,"tower":{"health":0}}`} {
		if _, err := Decode(data, defaults()); !errors.Is(err, ErrCorrupt) {
			t.Errorf("Decode(%q) err = %v; want ErrCorrupt", data, err)
		}
	}
}

func TestMigrateClampsTower(t *testing.T) {
	r := defaults()
	r.Tower.Health = 500
	r.Tower.Level = 0
	r.Tower.Shield = 9
	got := Migrate(r, defaults())
	if got.Tower.Health != 100 || got.Tower.Level != 1 || got.Tower.MaxShield != 9 {
		t.Errorf("tower = %+v", got.Tower)
	}
}

func TestKeys(t *testing.T) {
	if SaveKey(2) != "teslaTowerSave_slot2" || PermanentKey(1) != "teslaTowerPermanent_slot1" ||
		AchievementsKey(3) != "teslaTowerAchievements_slot3" {
		t.Error("unexpected key layout")
	}
	if ValidSlot(0) || !ValidSlot(3) || ValidSlot(4) {
		t.Error("ValidSlot bounds wrong")
	}
}
