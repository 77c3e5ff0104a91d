package tilemap

import "github.com/samdwyer/isogrid/internal/geom"

// footprintOffsets is the plus-shaped sample used by FootprintPassable:
// the center cell, then its left, right, lower and upper neighbors.
var footprintOffsets = [5]geom.Vec2{
	{X: 0, Y: 0},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
	{X: 0, Y: -1},
	{X: 0, Y: 1},
}

// Passable returns true if the cell nearest to pos is passable.
func (g *Grid[T]) Passable(pos geom.Vec2) bool {
	return g.PassableTile(g.transform.Snap(pos))
}

// PassableTile returns true if the cell at a grid coordinate is passable.
// Coordinates outside the grid are impassable.
func (g *Grid[T]) PassableTile(coord geom.Vec2) bool {
	i, ok := g.Lookup(coord)
	return ok && g.cells[i].Passable
}

// FootprintPassable checks the fixed five-cell plus shape around the cell
// nearest to pos: the center and its four orthogonal neighbors must all be
// passable. Diagonal neighbors are never sampled.
func (g *Grid[T]) FootprintPassable(pos geom.Vec2) bool {
	return g.footprintPassable(g.transform.Snap(pos), false)
}

// FootprintPassableDebug is FootprintPassable with every sampled cell sent
// to the attached Drawer.
func (g *Grid[T]) FootprintPassableDebug(pos geom.Vec2) bool {
	return g.footprintPassable(g.transform.Snap(pos), true)
}

// PassableRadius keeps the legacy radius form of the passability query.
// Radius 0 checks the single nearest cell; any other radius runs the
// five-cell plus shape, whatever its value.
func (g *Grid[T]) PassableRadius(pos geom.Vec2, radius int) bool {
	if radius == 0 {
		return g.Passable(pos)
	}
	return g.FootprintPassable(pos)
}

func (g *Grid[T]) footprintPassable(coord geom.Vec2, debug bool) bool {
	center := g.Index(coord)
	passable := g.passableIndex(center) &&
		g.passableIndex(center-1) &&
		g.passableIndex(center+1) &&
		g.passableIndex(center-g.width) &&
		g.passableIndex(center+g.width)

	if debug {
		for _, off := range footprintOffsets {
			g.draw(coord.Add(off), ColorFootprint, 0.1, 0)
		}
	}
	return passable
}

// footprintBlocker returns the first impassable cell of the plus shape around
// coord whose occupant is not ignore. The zero ignore matches nothing.
func (g *Grid[T]) footprintBlocker(coord geom.Vec2, ignore T) (Cell[T], geom.Vec2, bool) {
	var zero T
	center := g.Index(coord)
	for _, off := range footprintOffsets {
		i := center + int(off.X) + int(off.Y)*g.width
		if g.passableIndex(i) {
			continue
		}
		var cell Cell[T]
		if g.inRange(i) {
			cell = g.cells[i]
		}
		if ignore != zero && cell.Occupant == ignore {
			continue
		}
		return cell, coord.Add(off), true
	}
	return Cell[T]{}, geom.Vec2{}, false
}

func (g *Grid[T]) passableIndex(i int) bool {
	return g.inRange(i) && g.cells[i].Passable
}
