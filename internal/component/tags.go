package component

import "tesla-tower/internal/ecs"

const CTagSpawnling ecs.ComponentType = 9

// TagSpawnling marks an enemy created by a spawner's death rather than by the
// wave spawner.
type TagSpawnling struct{}

func (TagSpawnling) Type() ecs.ComponentType { return CTagSpawnling }
