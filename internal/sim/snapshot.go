package sim

import (
	"time"

	"tesla-tower/internal/component"
	"tesla-tower/internal/event"
)

// TowerView is the tower as seen by renderers.
type TowerView struct {
	X          float64 `json:"x" msgpack:"x"`
	Y          float64 `json:"y" msgpack:"y"`
	Radius     float64 `json:"radius" msgpack:"radius"`
	Health     int     `json:"health" msgpack:"health"`
	MaxHealth  int     `json:"maxHealth" msgpack:"maxHealth"`
	Shield     int     `json:"shield" msgpack:"shield"`
	MaxShield  int     `json:"maxShield" msgpack:"maxShield"`
	Damage     int     `json:"damage" msgpack:"damage"`
	Range      float64 `json:"range" msgpack:"range"`
	FireRateMS int     `json:"fireRate" msgpack:"fireRate"`
	MaxTargets int     `json:"maxTargets" msgpack:"maxTargets"`
	Chain      int     `json:"chainLightning" msgpack:"chainLightning"`
	Level      int     `json:"level" msgpack:"level"`
}

// EnemyView is one enemy as seen by renderers.
type EnemyView struct {
	ID        uint64              `json:"id" msgpack:"id"`
	Kind      component.EnemyKind `json:"kind" msgpack:"kind"`
	X         float64             `json:"x" msgpack:"x"`
	Y         float64             `json:"y" msgpack:"y"`
	Radius    float64             `json:"radius" msgpack:"radius"`
	Health    int                 `json:"health" msgpack:"health"`
	MaxHealth int                 `json:"maxHealth" msgpack:"maxHealth"`
	Glyph     string              `json:"glyph" msgpack:"glyph"`
	Color     int32               `json:"color" msgpack:"color"`
	Spawnling bool                `json:"spawnling,omitempty" msgpack:"spawnling,omitempty"`
}

// EffectView is one live effect.
type EffectView struct {
	Kind  component.EffectKind `json:"kind" msgpack:"kind"`
	X     float64              `json:"x" msgpack:"x"`
	Y     float64              `json:"y" msgpack:"y"`
	ToX   float64              `json:"toX,omitempty" msgpack:"toX,omitempty"`
	ToY   float64              `json:"toY,omitempty" msgpack:"toY,omitempty"`
	Life  float64              `json:"life" msgpack:"life"`
	Text  string               `json:"text,omitempty" msgpack:"text,omitempty"`
	Glyph string               `json:"glyph,omitempty" msgpack:"glyph,omitempty"`
	Color int32                `json:"color" msgpack:"color"`
	Chain bool                 `json:"chain,omitempty" msgpack:"chain,omitempty"`
	Crit  bool                 `json:"crit,omitempty" msgpack:"crit,omitempty"`
}

// Snapshot is a read-only copy of everything a renderer needs. It shares no
// memory with the session.
type Snapshot struct {
	State       State          `json:"state" msgpack:"state"`
	Player      string         `json:"player" msgpack:"player"`
	Slot        int            `json:"slot" msgpack:"slot"`
	Wave        int            `json:"wave" msgpack:"wave"`
	Spawned     int            `json:"spawned" msgpack:"spawned"`
	Quota       int            `json:"quota" msgpack:"quota"`
	Kills       int            `json:"kills" msgpack:"kills"`
	Gold        int            `json:"gold" msgpack:"gold"`
	Speed       float64        `json:"speed" msgpack:"speed"`
	ClickDamage int            `json:"clickDamage" msgpack:"clickDamage"`
	Elapsed     time.Duration  `json:"elapsed" msgpack:"elapsed"`
	Width       float64        `json:"width" msgpack:"width"`
	Height      float64        `json:"height" msgpack:"height"`
	Theme       string         `json:"theme" msgpack:"theme"`
	Tower       TowerView      `json:"tower" msgpack:"tower"`
	Costs       map[string]int `json:"costs" msgpack:"costs"`
	Enemies     []EnemyView    `json:"enemies" msgpack:"enemies"`
	Effects     []EffectView   `json:"effects" msgpack:"effects"`
	Events      event.Events   `json:"events" msgpack:"events"`
	Messages    []Message      `json:"messages" msgpack:"messages"`
}

// Snapshot captures the session for rendering.
func (s *Session) Snapshot() Snapshot {
	t := s.tower
	snap := Snapshot{
		State:       s.state,
		Player:      s.name,
		Slot:        s.prog.Slot(),
		Wave:        s.waves.Wave,
		Spawned:     s.waves.Spawned,
		Quota:       s.waves.Quota,
		Kills:       s.kills,
		Gold:        s.gold,
		Speed:       s.speed,
		ClickDamage: s.clickDamage,
		Elapsed:     s.Elapsed(),
		Width:       s.cfg.Viewport.Width,
		Height:      s.cfg.Viewport.Height,
		Theme:       s.prog.Theme().ID,
		Tower: TowerView{
			X: t.X, Y: t.Y, Radius: t.Radius,
			Health: t.Health, MaxHealth: t.MaxHealth,
			Shield: t.Shield, MaxShield: t.MaxShield,
			Damage: t.Damage, Range: t.Range,
			FireRateMS: int(t.FireInterval / time.Millisecond),
			MaxTargets: t.MaxTargets, Chain: t.ChainJumps, Level: t.Level,
		},
		Costs:    costNames(s.costs),
		Events:   s.last.Clone(),
		Messages: s.Messages(),
	}
	for _, id := range s.world.Query(component.CEnemy, component.CPosition, component.CHealth) {
		e := s.world.Get(id, component.CEnemy).(component.Enemy)
		p := s.world.Get(id, component.CPosition).(component.Position)
		h := s.world.Get(id, component.CHealth).(component.Health)
		v := EnemyView{
			ID: uint64(id), Kind: e.Kind, X: p.X, Y: p.Y, Radius: e.Radius,
			Health: h.Current, MaxHealth: h.Max,
			Spawnling: s.world.Has(id, component.CTagSpawnling),
		}
		if rc := s.world.Get(id, component.CRenderable); rc != nil {
			r := rc.(component.Renderable)
			v.Glyph, v.Color = r.Glyph, r.FGColor.Hex()
		}
		snap.Enemies = append(snap.Enemies, v)
	}
	for _, id := range s.world.Query(component.CEffect, component.CPosition) {
		e := s.world.Get(id, component.CEffect).(component.Effect)
		p := s.world.Get(id, component.CPosition).(component.Position)
		v := EffectView{
			Kind: e.Kind, X: p.X, Y: p.Y, ToX: e.ToX, ToY: e.ToY,
			Life: e.Fraction(), Text: e.Text, Chain: e.Chain, Crit: e.Crit,
		}
		if rc := s.world.Get(id, component.CRenderable); rc != nil {
			r := rc.(component.Renderable)
			v.Glyph, v.Color = r.Glyph, r.FGColor.Hex()
		}
		snap.Effects = append(snap.Effects, v)
	}
	return snap
}
