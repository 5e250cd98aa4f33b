package ecs

import "testing"

type hpComp struct{ hp int }

func (hpComp) Type() ComponentType { return 1 }

type posComp struct{ x, y float64 }

func (posComp) Type() ComponentType { return 2 }

func TestCreateEntityIsAlive(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	if id == NilEntity {
		t.Fatal("expected non-nil entity ID")
	}
	if !w.Alive(id) {
		t.Fatal("expected entity to be alive after creation")
	}
	if w.Len() != 1 {
		t.Errorf("Len = %d; want 1", w.Len())
	}
}

func TestAddGetReplace(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	w.Add(id, hpComp{hp: 42})
	w.Add(id, hpComp{hp: 7})

	c, ok := w.Get(id, 1).(hpComp)
	if !ok {
		t.Fatal("wrong component type returned")
	}
	if c.hp != 7 {
		t.Errorf("hp = %d; want 7 after replace", c.hp)
	}
}

func TestAddToDestroyedEntityIgnored(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	w.DestroyEntity(id)
	w.Add(id, hpComp{hp: 1})
	if w.Has(id, 1) {
		t.Fatal("component attached to destroyed entity")
	}
}

func TestDestroyEntityForgetsEverything(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	w.Add(id, hpComp{hp: 7})
	w.DestroyEntity(id)
	w.DestroyEntity(id)

	if w.Alive(id) {
		t.Fatal("entity should not be alive after DestroyEntity")
	}
	if w.Get(id, 1) != nil {
		t.Fatal("component should be gone after DestroyEntity")
	}
	if w.Len() != 0 {
		t.Errorf("Len = %d; want 0", w.Len())
	}
}

func TestQueryFiltersAndSorts(t *testing.T) {
	w := NewWorld()
	var both []EntityID
	for i := 0; i < 20; i++ {
		id := w.CreateEntity()
		w.Add(id, hpComp{})
		if i%2 == 0 {
			w.Add(id, posComp{})
			both = append(both, id)
		}
	}

	got := w.Query(1, 2)
	if len(got) != len(both) {
		t.Fatalf("Query returned %d; want %d", len(got), len(both))
	}
	for i := range got {
		if got[i] != both[i] {
			t.Fatalf("Query[%d] = %d; want %d (ascending)", i, got[i], both[i])
		}
	}
	if n := w.Count(1); n != 20 {
		t.Errorf("Count(1) = %d; want 20", n)
	}
}

func TestQueryExcludesDestroyed(t *testing.T) {
	w := NewWorld()
	alive := w.CreateEntity()
	w.Add(alive, hpComp{})
	dead := w.CreateEntity()
	w.Add(dead, hpComp{})
	w.DestroyEntity(dead)

	got := w.Query(1)
	if len(got) != 1 || got[0] != alive {
		t.Fatalf("expected only the alive entity; got %v", got)
	}
}

func TestQueryNoTypes(t *testing.T) {
	w := NewWorld()
	w.CreateEntity()
	if got := w.Query(); got != nil {
		t.Errorf("Query() = %v; want nil", got)
	}
}

func TestRemoveAndHas(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	if w.Has(id, 1) {
		t.Fatal("Has should return false before Add")
	}
	w.Add(id, hpComp{hp: 1})
	if !w.Has(id, 1) {
		t.Fatal("Has should return true after Add")
	}
	w.Remove(id, 1)
	w.Remove(id, 99)
	if w.Has(id, 1) {
		t.Fatal("Has should return false after Remove")
	}
}

func TestClearKeepsIDsMonotonic(t *testing.T) {
	w := NewWorld()
	first := w.CreateEntity()
	w.Add(first, hpComp{})
	w.Clear()
	if w.Len() != 0 || w.Count(1) != 0 {
		t.Fatal("Clear left entities behind")
	}
	if next := w.CreateEntity(); next <= first {
		t.Errorf("id after Clear = %d; want > %d", next, first)
	}
}
