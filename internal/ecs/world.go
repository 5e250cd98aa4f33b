package ecs

import "slices"

// World owns every live entity in a session: enemies and transient effects.
// It is not safe for concurrent use; one session goroutine mutates it.
type World struct {
	nextID     EntityID
	alive      map[EntityID]struct{}
	components map[ComponentType]map[EntityID]Component
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{
		nextID:     1,
		alive:      make(map[EntityID]struct{}),
		components: make(map[ComponentType]map[EntityID]Component),
	}
}

// CreateEntity mints a new entity ID and marks it alive. IDs are never reused,
// so they double as a stable creation order.
func (w *World) CreateEntity() EntityID {
	id := w.nextID
	w.nextID++
	w.alive[id] = struct{}{}
	return id
}

// DestroyEntity forgets the entity and all its components. Destroying an
// unknown or already destroyed entity is a no-op.
func (w *World) DestroyEntity(id EntityID) {
	if _, ok := w.alive[id]; !ok {
		return
	}
	delete(w.alive, id)
	for _, store := range w.components {
		delete(store, id)
	}
}

// Alive reports whether the entity exists.
func (w *World) Alive(id EntityID) bool {
	_, ok := w.alive[id]
	return ok
}

// Len returns the number of live entities.
func (w *World) Len() int { return len(w.alive) }

// Add attaches a component to an entity, replacing any of the same type.
// Components are values, so callers Get, modify and Add back.
func (w *World) Add(id EntityID, c Component) {
	if !w.Alive(id) {
		return
	}
	t := c.Type()
	if w.components[t] == nil {
		w.components[t] = make(map[EntityID]Component)
	}
	w.components[t][id] = c
}

// Get returns the component of the given type for entity id, or nil.
func (w *World) Get(id EntityID, t ComponentType) Component {
	return w.components[t][id]
}

// Remove detaches a component from an entity.
func (w *World) Remove(id EntityID, t ComponentType) {
	if store := w.components[t]; store != nil {
		delete(store, id)
	}
}

// Has reports whether entity id has a component of the given type.
func (w *World) Has(id EntityID, t ComponentType) bool {
	return w.Get(id, t) != nil
}

// Query returns every live entity carrying all the listed component types,
// in ascending ID order so that iteration is deterministic.
func (w *World) Query(types ...ComponentType) []EntityID {
	if len(types) == 0 {
		return nil
	}
	smallest := types[0]
	for _, t := range types[1:] {
		if len(w.components[t]) < len(w.components[smallest]) {
			smallest = t
		}
	}
	var result []EntityID
	for id := range w.components[smallest] {
		if !w.Alive(id) || !w.hasAll(id, types) {
			continue
		}
		result = append(result, id)
	}
	slices.Sort(result)
	return result
}

// Count returns how many live entities carry all the listed types.
func (w *World) Count(types ...ComponentType) int {
	return len(w.Query(types...))
}

// Clear destroys every entity but keeps the ID counter running.
func (w *World) Clear() {
	clear(w.alive)
	clear(w.components)
}

func (w *World) hasAll(id EntityID, types []ComponentType) bool {
	for _, t := range types {
		if !w.Has(id, t) {
			return false
		}
	}
	return true
}
