package component

import (
	"time"

	"tesla-tower/internal/ecs"
)

const CEnemy ecs.ComponentType = 4

// EnemyKind enumerates the enemy variants.
type EnemyKind uint8

const (
	KindNormal EnemyKind = iota
	KindStrong
	KindRunner
	KindTank
	KindExploder
	KindSpawner
	KindBoss
)

// EnemyKinds lists every kind in declaration order.
var EnemyKinds = []EnemyKind{KindNormal, KindStrong, KindRunner, KindTank, KindExploder, KindSpawner, KindBoss}

var kindNames = [...]string{"normal", "strong", "runner", "tank", "exploder", "spawner", "boss"}

func (k EnemyKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseEnemyKind is the inverse of String.
func ParseEnemyKind(s string) (EnemyKind, bool) {
	for i, n := range kindNames {
		if n == s {
			return EnemyKind(i), true
		}
	}
	return 0, false
}

// MarshalText lets kinds key JSON maps by name.
func (k EnemyKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText accepts the names produced by MarshalText.
func (k *EnemyKind) UnmarshalText(b []byte) error {
	if v, ok := ParseEnemyKind(string(b)); ok {
		*k = v
	}
	return nil
}

// Enemy carries everything the combat systems need about one attacker.
// Timestamps are on the session's unscaled clock.
type Enemy struct {
	Kind           EnemyKind
	Radius         float64
	Speed          float64
	ContactDamage  int
	DamageInterval time.Duration
	LastDamage     time.Duration
	GoldValue      float64
	Explodes       bool
	Splits         bool
}

func (Enemy) Type() ecs.ComponentType { return CEnemy }
