package tilemap

import (
	"math"
	"time"

	"github.com/samdwyer/isogrid/internal/geom"
)

// StepLength is the distance the ray advances between samples.
// Obstacles thinner than a step can be skipped.
const StepLength = 0.2

const rayDebugDuration = 500 * time.Millisecond

// RayOptions tunes a Raycast. The zero value casts the full from-to segment.
type RayOptions[T comparable] struct {
	// MaxDistance, when positive and finite, is the exact ray length and
	// overrides both the segment length and LengthCap. Zero, negative,
	// infinite and NaN values mean unset.
	MaxDistance float64
	// LengthCap, when positive and finite, limits the segment length.
	LengthCap float64
	// Ignore skips blocked cells whose occupant is this reference.
	Ignore T
	// Debug sends every sampled cell to the attached Drawer.
	Debug bool
}

// Hit is the result of a Raycast. Callers must check Hit before reading
// the other fields.
type Hit[T comparable] struct {
	Hit bool
	// Occupant is the blocking cell's occupant, possibly the zero value.
	Occupant T
	// Position is the ray sample at which the block was detected.
	Position geom.Vec2
	// Cell is the grid coordinate of the blocking cell.
	Cell geom.Vec2
}

// Raycast marches from toward to in StepLength increments and stops at the
// first sample whose plus-shaped footprint contains an impassable cell not
// occupied by opts.Ignore.
func (g *Grid[T]) Raycast(from, to geom.Vec2, opts RayOptions[T]) Hit[T] {
	diff := to.Sub(from)

	length := opts.MaxDistance
	if !validLength(length) {
		length = diff.Len()
		if validLength(opts.LengthCap) && opts.LengthCap < length {
			length = opts.LengthCap
		}
	}

	steps := int(math.RoundToEven(length / StepLength))
	step := diff.Normalized().Scale(StepLength)
	pos := from
	for i := 0; i < steps; i++ {
		pos = pos.Add(step)
		coord := g.transform.Snap(pos)
		if opts.Debug {
			g.draw(coord, ColorRay, 0.3, rayDebugDuration)
		}

		cell, at, blocked := g.footprintBlocker(coord, opts.Ignore)
		if blocked {
			return Hit[T]{
				Hit:      true,
				Occupant: cell.Occupant,
				Position: pos,
				Cell:     at,
			}
		}
	}
	return Hit[T]{}
}

// validLength reports whether a ray length option is set.
func validLength(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
