package tilemap

import (
	"image/color"
	"time"

	"github.com/samdwyer/isogrid/internal/geom"
)

// Drawer receives debug highlights for individual cells.
// It is purely observational and must not touch the grid.
type Drawer interface {
	DrawCell(coord geom.Vec2, c color.RGBA, opacity float64, duration time.Duration)
}

// DrawerFunc adapts a function to the Drawer interface.
type DrawerFunc func(coord geom.Vec2, c color.RGBA, opacity float64, duration time.Duration)

// DrawCell implements Drawer.
func (f DrawerFunc) DrawCell(coord geom.Vec2, c color.RGBA, opacity float64, duration time.Duration) {
	f(coord, c, opacity, duration)
}

// Debug highlight colors.
var (
	ColorBlocked   = color.RGBA{R: 255, A: 255}
	ColorFootprint = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ColorRay       = color.RGBA{G: 200, B: 255, A: 255}
)

// SetDrawer attaches the debug drawer. Nil detaches it.
func (g *Grid[T]) SetDrawer(d Drawer) {
	g.drawer = d
}

func (g *Grid[T]) draw(coord geom.Vec2, c color.RGBA, opacity float64, duration time.Duration) {
	if g.drawer != nil {
		g.drawer.DrawCell(coord, c, opacity, duration)
	}
}

// DrawBlocked highlights every impassable cell in a width x height window
// centered on a grid position. Returns the number of cells drawn.
func (g *Grid[T]) DrawBlocked(center geom.Vec2, width, height int) int {
	if g.drawer == nil {
		return 0
	}
	corner := g.transform.Snap(center).Sub(geom.V(float64(width/2), float64(height/2)))
	drawn := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			coord := corner.Add(geom.V(float64(x), float64(y)))
			if !g.PassableTile(coord) && g.Contains(coord) {
				g.draw(coord, ColorBlocked, 0.3, 0)
				drawn++
			}
		}
	}
	return drawn
}
