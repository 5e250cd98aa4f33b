package ecs

// EntityID identifies an entity in a World. Enemies have no identity beyond it.
type EntityID uint64

// NilEntity is never handed out by CreateEntity.
const NilEntity EntityID = 0

// ComponentType keys a component store.
type ComponentType uint8

// Component is implemented by every value stored in the world.
type Component interface {
	Type() ComponentType
}
