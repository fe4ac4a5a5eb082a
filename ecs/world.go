package ecs

import (
	"github.com/milk9111/robotgrabber/ecs/component"
)

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// Kind is implemented by every component.ComponentKind.
type Kind interface {
	ID() component.ComponentID
}

// World owns entities and their component storage.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and marks it dead.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns all live entities in id order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.entities()
}

func (w *World) store(kind Kind, create bool) *SparseSet {
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s := w.stores[kind.ID()]
	if s == nil && create {
		s = &SparseSet{}
		w.stores[kind.ID()] = s
	}
	return s
}

// AddComponent attaches or replaces a component value on e.
func (w *World) AddComponent(e Entity, kind Kind, value any) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if kind == nil || kind.ID() == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	w.store(kind, true).Set(e, value)
	return nil
}

// RemoveComponent detaches a component from e.
func (w *World) RemoveComponent(e Entity, kind Kind) bool {
	if w == nil || kind == nil {
		return false
	}
	return w.store(kind, false).Remove(e)
}

// HasComponent reports whether e carries the component kind.
func (w *World) HasComponent(e Entity, kind Kind) bool {
	if w == nil || kind == nil {
		return false
	}
	return w.store(kind, false).Has(e)
}

// GetComponent returns the raw stored component value.
func (w *World) GetComponent(e Entity, kind Kind) (any, bool) {
	if w == nil || kind == nil {
		return nil, false
	}
	v := w.store(kind, false).Get(e)
	return v, v != nil
}

// Query returns the entities that carry every given kind, in the dense order of
// the smallest matching store.
func (w *World) Query(kinds ...Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	var smallest *SparseSet
	for _, k := range kinds {
		s := w.store(k, false)
		if s == nil || s.Len() == 0 {
			return nil
		}
		if smallest == nil || s.Len() < smallest.Len() {
			smallest = s
		}
	}
	out := make([]Entity, 0, smallest.Len())
	for _, e := range smallest.Entities() {
		match := true
		for _, k := range kinds {
			if !w.store(k, false).Has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first entity carrying all kinds.
func (w *World) First(kinds ...Kind) (Entity, bool) {
	ents := w.Query(kinds...)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}
