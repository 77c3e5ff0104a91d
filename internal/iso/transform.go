// Package iso provides the coordinate transforms between continuous world
// space and the discrete, axis-aligned grid space the tile map indexes.
package iso

import "github.com/samdwyer/isogrid/internal/geom"

// Transform converts between world and grid space.
// Implementations must be pure: the grid calls them on every query.
type Transform interface {
	// WorldToGrid maps a world position into continuous grid space.
	WorldToGrid(world geom.Vec2) geom.Vec2
	// GridToWorld maps a grid position back into world space.
	GridToWorld(grid geom.Vec2) geom.Vec2
	// Snap quantizes a grid-space position to the nearest cell.
	Snap(grid geom.Vec2) geom.Vec2
}

// Default isometric tile size in world units (2:1 diamond).
const (
	DefaultTileWidth  = 2.0
	DefaultTileHeight = 1.0
)

// Isometric is a 2:1 diamond projection. Grid +X runs down-right on
// screen and grid +Y runs down-left.
type Isometric struct {
	TileWidth  float64
	TileHeight float64
}

// NewIsometric returns an isometric transform with the given tile size,
// falling back to the defaults for non-positive values.
func NewIsometric(tileWidth, tileHeight float64) Isometric {
	if tileWidth <= 0 {
		tileWidth = DefaultTileWidth
	}
	if tileHeight <= 0 {
		tileHeight = DefaultTileHeight
	}
	return Isometric{TileWidth: tileWidth, TileHeight: tileHeight}
}

func (t Isometric) halves() (float64, float64) {
	w, h := t.TileWidth, t.TileHeight
	if w <= 0 {
		w = DefaultTileWidth
	}
	if h <= 0 {
		h = DefaultTileHeight
	}
	return w / 2, h / 2
}

// WorldToGrid implements Transform.
func (t Isometric) WorldToGrid(world geom.Vec2) geom.Vec2 {
	hw, hh := t.halves()
	a := world.X / hw
	b := world.Y / hh
	return geom.Vec2{X: (a + b) / 2, Y: (b - a) / 2}
}

// GridToWorld implements Transform.
func (t Isometric) GridToWorld(grid geom.Vec2) geom.Vec2 {
	hw, hh := t.halves()
	return geom.Vec2{X: (grid.X - grid.Y) * hw, Y: (grid.X + grid.Y) * hh}
}

// Snap implements Transform.
func (t Isometric) Snap(grid geom.Vec2) geom.Vec2 {
	return grid.Round()
}

// Orthogonal is a plain scaled mapping: one cell is CellSize world units
// on each axis. The zero value uses a cell size of 1.
type Orthogonal struct {
	CellSize float64
}

func (t Orthogonal) size() float64 {
	if t.CellSize <= 0 {
		return 1
	}
	return t.CellSize
}

// WorldToGrid implements Transform.
func (t Orthogonal) WorldToGrid(world geom.Vec2) geom.Vec2 {
	return world.Scale(1 / t.size())
}

// GridToWorld implements Transform.
func (t Orthogonal) GridToWorld(grid geom.Vec2) geom.Vec2 {
	return grid.Scale(t.size())
}

// Snap implements Transform.
func (t Orthogonal) Snap(grid geom.Vec2) geom.Vec2 {
	return grid.Round()
}

// MacroTile returns the cell containing a world position, snapped.
func MacroTile(t Transform, world geom.Vec2) geom.Vec2 {
	return t.Snap(t.WorldToGrid(world))
}
