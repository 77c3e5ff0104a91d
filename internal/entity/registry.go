package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// Registry owns the entities of a scene and looks them up by ID or name.
type Registry struct {
	byID map[uuid.UUID]*Entity
	all  []*Entity
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[uuid.UUID]*Entity)}
}

// Add registers e. Adding a second entity with the same ID is an error.
func (r *Registry) Add(e *Entity) error {
	if e == nil {
		return fmt.Errorf("entity: nil entity")
	}
	if _, exists := r.byID[e.ID]; exists {
		return fmt.Errorf("entity: duplicate id %s", e.ID)
	}
	r.byID[e.ID] = e
	r.all = append(r.all, e)
	return nil
}

// Remove unregisters the entity with the given ID and returns it, or nil.
// Callers must also vacate it from any grid that references it.
func (r *Registry) Remove(id uuid.UUID) *Entity {
	e := r.byID[id]
	if e == nil {
		return nil
	}
	delete(r.byID, id)
	for i, other := range r.all {
		if other == e {
			r.all = append(r.all[:i], r.all[i+1:]...)
			break
		}
	}
	return e
}

// GetByID returns the entity with the given ID, or nil if not found.
func (r *Registry) GetByID(id uuid.UUID) *Entity {
	return r.byID[id]
}

// GetByName returns the first entity with the given name, or nil if not found.
func (r *Registry) GetByName(name string) *Entity {
	for _, e := range r.all {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// All returns the entities in insertion order.
func (r *Registry) All() []*Entity {
	return r.all
}

// Count returns the number of registered entities.
func (r *Registry) Count() int {
	return len(r.all)
}
