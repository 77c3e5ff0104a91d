// Package tilemap provides the fixed-size passability and occupancy grid and
// the point, ray and box queries answered over it.
package tilemap

import (
	"errors"
	"fmt"
	"math"

	"github.com/samdwyer/isogrid/internal/geom"
	"github.com/samdwyer/isogrid/internal/iso"
)

var (
	// ErrInvalidSize is returned when a grid is created with a non-positive dimension.
	ErrInvalidSize = errors.New("tilemap: grid dimensions must be positive")
	// ErrOutOfRange is returned when a write addresses a cell outside the grid.
	ErrOutOfRange = errors.New("tilemap: coordinate out of range")
)

// Cell is a single grid cell.
// The zero value of T means the cell has no occupant.
type Cell[T comparable] struct {
	Passable bool
	Occupant T
}

// Occupied returns true if the cell references an occupant.
func (c Cell[T]) Occupied() bool {
	var zero T
	return c.Occupant != zero
}

// Grid is a width x height array of cells addressed by centered grid
// coordinates. Occupants are lookup references only: the grid never owns
// them and is never told when they go away (see Vacate).
//
// A Grid is not safe for concurrent use. Mutations must not overlap queries.
type Grid[T comparable] struct {
	width     int
	height    int
	origin    int
	cells     []Cell[T]
	transform iso.Transform
	drawer    Drawer
}

// New creates a grid with every cell passable and unoccupied.
// A nil transform defaults to iso.Orthogonal{}.
func New[T comparable](width, height int, transform iso.Transform) (*Grid[T], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if transform == nil {
		transform = iso.Orthogonal{}
	}

	g := &Grid[T]{
		width:     width,
		height:    height,
		origin:    (width * height) / 2,
		cells:     make([]Cell[T], width*height),
		transform: transform,
	}
	g.Reset()
	return g, nil
}

// MustNew creates a grid, panicking on invalid dimensions.
func MustNew[T comparable](width, height int, transform iso.Transform) *Grid[T] {
	g, err := New[T](width, height, transform)
	if err != nil {
		panic(err)
	}
	return g
}

// Width returns the number of columns.
func (g *Grid[T]) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid[T]) Height() int { return g.height }

// Origin returns the array index of grid coordinate (0,0).
func (g *Grid[T]) Origin() int { return g.origin }

// Transform returns the world/grid transform the grid snaps through.
func (g *Grid[T]) Transform() iso.Transform { return g.transform }

// Bounds returns the inclusive min and exclusive max of the centered
// coordinate range. Coordinates inside it may still fall off the array on
// the bottom row, because origin is width*height/2 rather than the exact
// center cell; use Contains for the authoritative check.
func (g *Grid[T]) Bounds() (lo, hi geom.Vec2) {
	lo = geom.V(float64(-g.width/2), float64(-g.height/2))
	hi = geom.V(float64(g.width-g.width/2), float64(g.height-g.height/2))
	return lo, hi
}

// Reset returns every cell to passable and unoccupied.
func (g *Grid[T]) Reset() {
	for i := range g.cells {
		g.cells[i] = Cell[T]{Passable: true}
	}
}

// Index linearizes a grid coordinate without any bounds check.
// Rows are not clamped: an x beyond the row edge lands in the next row.
func (g *Grid[T]) Index(coord geom.Vec2) int {
	return g.origin + int(math.RoundToEven(coord.X+coord.Y*float64(g.width)))
}

// Lookup linearizes a grid coordinate and reports whether it addresses a cell.
func (g *Grid[T]) Lookup(coord geom.Vec2) (int, bool) {
	i := g.Index(coord)
	return i, g.inRange(i)
}

// Contains returns true if the grid coordinate addresses a cell.
func (g *Grid[T]) Contains(coord geom.Vec2) bool {
	_, ok := g.Lookup(coord)
	return ok
}

func (g *Grid[T]) inRange(i int) bool {
	return i >= 0 && i < len(g.cells)
}

// Cell returns the cell at a continuous position, snapped to the nearest
// grid coordinate. Positions outside the grid read as a blocked, empty cell.
func (g *Grid[T]) Cell(pos geom.Vec2) Cell[T] {
	return g.CellAt(g.transform.Snap(pos))
}

// SetCell replaces the cell at a continuous position, snapped to the
// nearest grid coordinate.
func (g *Grid[T]) SetCell(pos geom.Vec2, cell Cell[T]) error {
	return g.SetCellAt(g.transform.Snap(pos), cell)
}

// CellAt returns the cell at a grid coordinate.
// Coordinates outside the grid read as a blocked, empty cell.
func (g *Grid[T]) CellAt(coord geom.Vec2) Cell[T] {
	i, ok := g.Lookup(coord)
	if !ok {
		return Cell[T]{}
	}
	return g.cells[i]
}

// SetCellAt replaces the cell at a grid coordinate.
func (g *Grid[T]) SetCellAt(coord geom.Vec2, cell Cell[T]) error {
	i, ok := g.Lookup(coord)
	if !ok {
		return outOfRange(coord)
	}
	g.cells[i] = cell
	return nil
}

// SetPassable changes the passability of a single cell at a grid coordinate,
// leaving its occupant untouched.
func (g *Grid[T]) SetPassable(coord geom.Vec2, passable bool) error {
	i, ok := g.Lookup(coord)
	if !ok {
		return outOfRange(coord)
	}
	g.cells[i].Passable = passable
	return nil
}

// Vacate clears every cell referencing occupant and makes it passable again.
// Owners call it when the occupant is destroyed. Returns the number of cells
// cleared; the zero occupant is never matched.
func (g *Grid[T]) Vacate(occupant T) int {
	var zero T
	if occupant == zero {
		return 0
	}
	n := 0
	for i := range g.cells {
		if g.cells[i].Occupant == occupant {
			g.cells[i] = Cell[T]{Passable: true}
			n++
		}
	}
	return n
}

func outOfRange(coord geom.Vec2) error {
	return fmt.Errorf("%w: (%g,%g)", ErrOutOfRange, coord.X, coord.Y)
}
