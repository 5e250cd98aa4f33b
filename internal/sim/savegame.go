package sim

import (
	"fmt"
	"time"

	"tesla-tower/internal/progress"
	"tesla-tower/internal/save"
)

// SlotStatus describes what a save slot holds.
type SlotStatus uint8

const (
	SlotEmpty SlotStatus = iota
	SlotPresent
	SlotCorrupt
)

func (s SlotStatus) String() string {
	switch s {
	case SlotPresent:
		return "present"
	case SlotCorrupt:
		return "corrupt"
	}
	return "empty"
}

// SlotInfo summarizes one save slot for the slot picker.
type SlotInfo struct {
	Slot        int
	Status      SlotStatus
	Name        string
	Wave        int
	Kills       int
	Saved       time.Time
	HighestWave int
	TotalKills  int
	Gems        int
}

func (s *Session) defaultRecord() save.Record {
	t := s.cfg.Tower
	return save.Record{
		PlayerName: progress.DefaultPlayerName,
		Wave:       1,
		Tower: save.Tower{
			Health: t.Health, MaxHealth: t.Health, Level: 1, Damage: t.Damage,
			Range: t.Range, FireRateMS: t.FireRateMS, MaxTargets: t.MaxTargets,
		},
		ClickDamage:  s.cfg.Click.Damage,
		UpgradeCosts: costNames(baseCosts(s.cfg.Upgrades)),
	}
}

func costNames(costs map[UpgradeKind]int) map[string]int {
	out := make(map[string]int, len(costs))
	for k, v := range costs {
		out[k.String()] = v
	}
	return out
}

// Save writes the current run to slot. Only a run under way can be saved.
func (s *Session) Save(slot int) error {
	if !save.ValidSlot(slot) {
		return fmt.Errorf("save slot %d: %w", slot, ErrInvalidSlot)
	}
	if s.state != Running && s.state != Paused {
		s.addMessage(MsgBad, "No game to save!")
		return fmt.Errorf("save slot %d: %w", slot, ErrNotRunning)
	}
	t := s.tower
	rec := save.Record{
		PlayerName: s.name,
		Wave:       s.waves.Wave,
		Kills:      s.kills,
		Gold:       s.gold,
		Tower: save.Tower{
			Health:         t.Health,
			MaxHealth:      t.MaxHealth,
			Level:          t.Level,
			Damage:         t.Damage,
			Range:          t.Range,
			FireRateMS:     int(t.FireInterval / time.Millisecond),
			MaxTargets:     t.MaxTargets,
			ChainLightning: t.ChainJumps,
			Shield:         t.Shield,
			MaxShield:      t.MaxShield,
		},
		ClickDamage:    s.clickDamage,
		UpgradeCosts:   costNames(s.costs),
		ZombiesPerWave: s.waves.Quota,
		SpawnRateMS:    int(s.waves.Interval / time.Millisecond),
		Timestamp:      s.prog.Now().UnixMilli(),
	}
	data, err := save.Encode(rec)
	if err != nil {
		return err
	}
	if err := s.prog.KV().Set(save.SaveKey(slot), data); err != nil {
		s.addMessage(MsgBad, "Save failed!")
		return fmt.Errorf("save slot %d: %w", slot, err)
	}
	s.addMessage(MsgGood, "Game Saved! ✓")
	s.log.WithField("slot", slot).WithField("wave", rec.Wave).Info("game saved")
	return nil
}

// Load replaces the session with the run saved in slot. The current run is
// ended first. The loaded run waits in NotStarted; Start resumes it. A
// missing or corrupt save leaves the session untouched.
func (s *Session) Load(slot int) error {
	if !save.ValidSlot(slot) {
		return fmt.Errorf("load slot %d: %w", slot, ErrInvalidSlot)
	}
	data, ok, err := s.prog.KV().Get(save.SaveKey(slot))
	if err != nil {
		return fmt.Errorf("load slot %d: %w", slot, err)
	}
	if !ok {
		s.addMessage(MsgBad, "No saved game in Slot %d!", slot)
		return fmt.Errorf("load slot %d: %w", slot, ErrNoSave)
	}
	rec, err := save.Decode(data, s.defaultRecord())
	if err != nil {
		s.addMessage(MsgBad, "Failed to load game!")
		s.log.WithError(err).WithField("slot", slot).Warn("corrupt save")
		return fmt.Errorf("load slot %d: %w: %w", slot, ErrCorruptSave, err)
	}

	s.endRun()
	s.reset()
	s.waves.Restore(rec.Wave, rec.ZombiesPerWave, time.Duration(rec.SpawnRateMS)*time.Millisecond)
	s.kills = rec.Kills
	s.gold = rec.Gold
	t := &s.tower
	t.Health = rec.Tower.Health
	t.MaxHealth = rec.Tower.MaxHealth
	t.Level = rec.Tower.Level
	t.Damage = rec.Tower.Damage
	t.Range = rec.Tower.Range
	t.FireInterval = time.Duration(rec.Tower.FireRateMS) * time.Millisecond
	t.MaxTargets = rec.Tower.MaxTargets
	t.ChainJumps = rec.Tower.ChainLightning
	t.Shield = rec.Tower.Shield
	t.MaxShield = rec.Tower.MaxShield
	s.clickDamage = rec.ClickDamage
	for name, cost := range rec.UpgradeCosts {
		if k, ok := ParseUpgradeKind(name); ok {
			s.costs[k] = cost
		}
	}
	s.addMessage(MsgGood, "Game Loaded! Wave %d", rec.Wave)
	s.log.WithField("slot", slot).WithField("wave", rec.Wave).Info("game loaded")
	return nil
}

// DeleteSave removes the run saved in slot.
func (s *Session) DeleteSave(slot int) error {
	if !save.ValidSlot(slot) {
		return fmt.Errorf("delete slot %d: %w", slot, ErrInvalidSlot)
	}
	if err := s.prog.KV().Delete(save.SaveKey(slot)); err != nil {
		return fmt.Errorf("delete slot %d: %w", slot, err)
	}
	s.addMessage(MsgInfo, "Slot %d cleared", slot)
	return nil
}

// Slots describes every save slot.
func (s *Session) Slots() []SlotInfo {
	out := make([]SlotInfo, 0, save.Slots)
	for n := 1; n <= save.Slots; n++ {
		out = append(out, s.slotInfo(n))
	}
	return out
}

func (s *Session) slotInfo(n int) SlotInfo {
	info := SlotInfo{Slot: n}
	p := s.prog
	if n != p.Slot() {
		p = p.ForSlot(n)
	}
	st := p.State()
	info.HighestWave, info.TotalKills, info.Gems = st.HighestWave, st.TotalKills, st.Gems

	data, ok, err := s.prog.KV().Get(save.SaveKey(n))
	if err != nil || !ok {
		return info
	}
	rec, err := save.Decode(data, s.defaultRecord())
	if err != nil {
		info.Status = SlotCorrupt
		return info
	}
	info.Status = SlotPresent
	info.Name, info.Wave, info.Kills, info.Saved = rec.PlayerName, rec.Wave, rec.Kills, rec.Saved()
	return info
}

// SwitchSlot ends the current run and binds the session to another
// progress slot.
func (s *Session) SwitchSlot(n int) error {
	if !save.ValidSlot(n) {
		return fmt.Errorf("switch to slot %d: %w", n, ErrInvalidSlot)
	}
	if n == s.prog.Slot() {
		return nil
	}
	s.endRun()
	s.prog = s.prog.ForSlot(n)
	if err := progress.SetCurrentSlot(s.prog.KV(), n); err != nil {
		s.log.WithError(err).Warn("current slot not stored")
	}
	s.reset()
	s.addMessage(MsgInfo, "Switched to Slot %d", n)
	return nil
}
