package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/isogrid/internal/entity"
	"github.com/samdwyer/isogrid/internal/geom"
	"github.com/samdwyer/isogrid/internal/tilemap"
)

// StatusLines is the number of rows below the map reserved for text.
const StatusLines = 2

// Glyphs for cells without an occupant symbol.
const (
	GlyphFloor   = '.'
	GlyphBlocked = 'X'
	GlyphOpen    = '\'' // Passable cell that still has an occupant
	GlyphCursor  = '@'
	GlyphAnchor  = '*'
)

// View is what a frame shows: a grid neighbourhood around the cursor.
type View struct {
	Grid    *tilemap.Grid[*entity.Entity]
	Cursor  geom.Vec2
	Anchor  *geom.Vec2
	Overlay *Overlay
}

// Renderer handles drawing the grid to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// MapSize returns the number of grid cells visible on screen.
func (r *Renderer) MapSize() (cols, rows int) {
	w, h := r.screen.Size()
	return w, max(0, h-StatusLines)
}

// Corner returns the grid coordinate drawn at the top-left screen cell when
// the view is centered on cursor.
func (r *Renderer) Corner(cursor geom.Vec2) geom.Vec2 {
	cols, rows := r.MapSize()
	return cursor.Round().Sub(geom.V(float64(cols/2), float64(rows/2)))
}

// Render draws the grid around the cursor, overlay tints on top, then the
// anchor and cursor markers. It does not call Show so status text can be
// added to the same frame.
func (r *Renderer) Render(v View) {
	r.screen.Clear()
	cols, rows := r.MapSize()
	corner := r.Corner(v.Cursor)

	for sy := 0; sy < rows; sy++ {
		for sx := 0; sx < cols; sx++ {
			coord := corner.Add(geom.V(float64(sx), float64(sy)))
			if !v.Grid.Contains(coord) {
				continue
			}
			ch, style := cellGlyph(v.Grid.CellAt(coord))
			if v.Overlay != nil {
				if bg, ok := v.Overlay.At(coord); ok {
					style = style.Background(bg)
				}
			}
			r.screen.SetContent(sx, sy, ch, style)
		}
	}
	if v.Overlay != nil {
		v.Overlay.markShown()
	}

	if v.Anchor != nil {
		r.marker(corner, *v.Anchor, GlyphAnchor, tcell.StyleDefault.Foreground(tcell.ColorAqua))
	}
	r.marker(corner, v.Cursor, GlyphCursor, tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))
}

func (r *Renderer) marker(corner, coord geom.Vec2, ch rune, style tcell.Style) {
	sx, sy := coord.Round().Sub(corner).Ints()
	cols, rows := r.MapSize()
	if sx >= 0 && sx < cols && sy >= 0 && sy < rows {
		r.screen.SetContent(sx, sy, ch, style)
	}
}

// cellGlyph returns the rune and style for a cell.
func cellGlyph(c tilemap.Cell[*entity.Entity]) (rune, tcell.Style) {
	switch {
	case c.Passable && c.Occupied():
		return GlyphOpen, tcell.StyleDefault.Foreground(tcell.ColorOlive)
	case c.Passable:
		return GlyphFloor, tcell.StyleDefault.Foreground(tcell.ColorGray)
	case c.Occupied():
		return c.Occupant.Symbol, kindStyle(c.Occupant.Kind)
	default:
		return GlyphBlocked, tcell.StyleDefault.Foreground(tcell.ColorMaroon)
	}
}

// kindStyle returns the appropriate style for an occupant kind.
func kindStyle(k entity.Kind) tcell.Style {
	switch k {
	case entity.KindWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case entity.KindProp:
		return tcell.StyleDefault.Foreground(tcell.ColorOlive)
	case entity.KindDoor:
		return tcell.StyleDefault.Foreground(tcell.ColorTeal)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite)
	}
}

// RenderMessage displays a message on a screen row.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range []rune(msg) {
		r.screen.SetContent(i, y, ch, style)
	}
}

// Show flushes the frame.
func (r *Renderer) Show() {
	r.screen.Show()
}
