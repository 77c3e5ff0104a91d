// Package entity provides the scene objects that occupy grid cells.
package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind classifies a scene entity.
type Kind int

const (
	KindWall Kind = iota
	KindProp
	KindDoor
	KindActor
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindWall:
		return "wall"
	case KindProp:
		return "prop"
	case KindDoor:
		return "door"
	case KindActor:
		return "actor"
	default:
		return "unknown"
	}
}

// Symbol returns the default display symbol for a kind.
func (k Kind) Symbol() rune {
	switch k {
	case KindWall:
		return '#'
	case KindProp:
		return 'o'
	case KindDoor:
		return '+'
	case KindActor:
		return '@'
	default:
		return '?'
	}
}

// ParseKind converts a kind name back to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "wall", "":
		return KindWall, nil
	case "prop":
		return KindProp, nil
	case "door":
		return KindDoor, nil
	case "actor":
		return KindActor, nil
	default:
		return KindWall, fmt.Errorf("unknown entity kind %q", s)
	}
}

// Entity is a scene object. Grid cells hold *Entity as a lookup reference;
// the scene that created the entity owns it.
type Entity struct {
	ID     uuid.UUID
	Name   string
	Kind   Kind
	Symbol rune
}

// New creates an entity with a fresh random ID.
func New(name string, kind Kind) *Entity {
	return &Entity{
		ID:     uuid.New(),
		Name:   name,
		Kind:   kind,
		Symbol: kind.Symbol(),
	}
}

// String returns the entity name and short ID.
func (e *Entity) String() string {
	if e == nil {
		return "<none>"
	}
	return fmt.Sprintf("%s(%s)", e.Name, e.ID.String()[:8])
}
