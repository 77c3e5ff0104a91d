package ui

import (
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/isogrid/internal/geom"
)

// mark is one debug-drawn cell.
type mark struct {
	color   color.RGBA
	opacity float64
	expires time.Time
	shown   bool
}

// Overlay collects debug-drawn cells from grid queries and tints them on the
// next frames. It implements tilemap.Drawer.
type Overlay struct {
	marks map[geom.Vec2]mark
	now   func() time.Time
}

// NewOverlay creates an empty overlay.
func NewOverlay() *Overlay {
	return &Overlay{
		marks: make(map[geom.Vec2]mark),
		now:   time.Now,
	}
}

// DrawCell records a mark at a grid coordinate. A later mark on the same
// cell replaces the earlier one. Every mark is shown at least once, even with
// a zero duration.
func (o *Overlay) DrawCell(coord geom.Vec2, c color.RGBA, opacity float64, duration time.Duration) {
	o.marks[coord.Round()] = mark{
		color:   c,
		opacity: opacity,
		expires: o.now().Add(duration),
	}
}

// At returns the tint for a grid coordinate, if any.
func (o *Overlay) At(coord geom.Vec2) (tcell.Color, bool) {
	m, ok := o.marks[coord]
	if !ok {
		return tcell.ColorDefault, false
	}
	return blend(m.color, m.opacity), true
}

// Len returns the number of live marks.
func (o *Overlay) Len() int {
	return len(o.marks)
}

// Clear drops every mark.
func (o *Overlay) Clear() {
	clear(o.marks)
}

// markShown flags every current mark as rendered.
func (o *Overlay) markShown() {
	for k, m := range o.marks {
		m.shown = true
		o.marks[k] = m
	}
}

// Prune drops marks that have been shown and whose duration has elapsed.
func (o *Overlay) Prune() {
	now := o.now()
	for k, m := range o.marks {
		if m.shown && !now.Before(m.expires) {
			delete(o.marks, k)
		}
	}
}

// blend scales c by opacity over a black background.
func blend(c color.RGBA, opacity float64) tcell.Color {
	opacity = max(0, min(1, opacity))
	return tcell.NewRGBColor(
		int32(float64(c.R)*opacity),
		int32(float64(c.G)*opacity),
		int32(float64(c.B)*opacity),
	)
}
