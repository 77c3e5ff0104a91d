package ui

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/isogrid/internal/entity"
	"github.com/samdwyer/isogrid/internal/geom"
	"github.com/samdwyer/isogrid/internal/iso"
	"github.com/samdwyer/isogrid/internal/tilemap"
)

func newTestScreen(t *testing.T, w, h int) (tcell.SimulationScreen, *Screen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	sim.SetSize(w, h)
	t.Cleanup(screen.Close)
	return sim, screen
}

func newTestGrid(t *testing.T) *tilemap.Grid[*entity.Entity] {
	t.Helper()
	g, err := tilemap.New[*entity.Entity](16, 16, iso.Orthogonal{})
	if err != nil {
		t.Fatalf("Failed to create grid: %v", err)
	}
	return g
}

func runeAt(sim tcell.SimulationScreen, x, y int) rune {
	r, _, _, _ := sim.GetContent(x, y)
	return r
}

func TestRenderGlyphs(t *testing.T) {
	sim, screen := newTestScreen(t, 11, 7)
	r := NewRenderer(screen)
	g := newTestGrid(t)

	wall := entity.New("wall", entity.KindWall)
	if err := g.SetCellAt(geom.V(1, 0), tilemap.Cell[*entity.Entity]{Occupant: wall}); err != nil {
		t.Fatalf("SetCellAt failed: %v", err)
	}
	if err := g.SetPassable(geom.V(2, 0), false); err != nil {
		t.Fatalf("SetPassable failed: %v", err)
	}
	door := entity.New("door", entity.KindDoor)
	if err := g.SetCellAt(geom.V(3, 0), tilemap.Cell[*entity.Entity]{Passable: true, Occupant: door}); err != nil {
		t.Fatalf("SetCellAt failed: %v", err)
	}

	r.Render(View{Grid: g, Cursor: geom.V(0, 0)})

	if cols, rows := r.MapSize(); cols != 11 || rows != 5 {
		t.Fatalf("MapSize = %dx%d, want 11x5", cols, rows)
	}
	// Corner is (-5,-2), so grid (x,0) is on screen row 2 at column x+5.
	tests := []struct {
		x, y int
		want rune
	}{
		{0, 0, GlyphFloor},
		{5, 2, GlyphCursor},
		{6, 2, '#'},
		{7, 2, GlyphBlocked},
		{8, 2, GlyphOpen},
	}
	for _, tt := range tests {
		if got := runeAt(sim, tt.x, tt.y); got != tt.want {
			t.Errorf("Screen (%d,%d) = %q, want %q", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRenderOutsideGrid(t *testing.T) {
	sim, screen := newTestScreen(t, 11, 7)
	r := NewRenderer(screen)
	g := newTestGrid(t)

	// Row -10 is below index 0 on a 16x16 grid.
	r.Render(View{Grid: g, Cursor: geom.V(0, -8)})

	if got := runeAt(sim, 0, 0); got != ' ' {
		t.Errorf("Cell outside the grid = %q, want blank", got)
	}
	if got := runeAt(sim, 5, 2); got != GlyphCursor {
		t.Errorf("Cursor = %q, want %q", got, GlyphCursor)
	}
}

func TestRenderAnchorAndMessage(t *testing.T) {
	sim, screen := newTestScreen(t, 11, 7)
	r := NewRenderer(screen)
	g := newTestGrid(t)

	anchor := geom.V(-2, 1)
	r.Render(View{Grid: g, Cursor: geom.V(0, 0), Anchor: &anchor})
	r.RenderMessage("hi", 5)

	if got := runeAt(sim, 3, 3); got != GlyphAnchor {
		t.Errorf("Anchor = %q, want %q", got, GlyphAnchor)
	}
	if got := runeAt(sim, 1, 5); got != 'i' {
		t.Errorf("Message = %q, want 'i'", got)
	}
}

func TestRenderOverlayTint(t *testing.T) {
	sim, screen := newTestScreen(t, 11, 7)
	r := NewRenderer(screen)
	g := newTestGrid(t)
	o := NewOverlay()
	g.SetDrawer(o)

	if err := g.SetPassable(geom.V(1, 0), false); err != nil {
		t.Fatalf("SetPassable failed: %v", err)
	}
	if n := g.DrawBlocked(geom.V(0, 0), 5, 5); n != 1 {
		t.Fatalf("DrawBlocked drew %d cells, want 1", n)
	}

	r.Render(View{Grid: g, Cursor: geom.V(0, 0), Overlay: o})

	_, _, style, _ := sim.GetContent(6, 2)
	_, bg, _ := style.Decompose()
	if want := tcell.NewRGBColor(76, 0, 0); bg != want {
		t.Errorf("Tinted background = %v, want %v", bg, want)
	}
	_, _, style, _ = sim.GetContent(0, 0)
	if _, bg, _ := style.Decompose(); bg == tcell.NewRGBColor(76, 0, 0) {
		t.Error("Unmarked cell should not be tinted")
	}
}

func TestOverlayExpiry(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	o := NewOverlay()
	o.now = func() time.Time { return clock }

	o.DrawCell(geom.V(1, 1), tilemap.ColorRay, 1, 0)
	o.DrawCell(geom.V(2.2, 1.9), tilemap.ColorRay, 1, time.Second)

	if _, ok := o.At(geom.V(2, 2)); !ok {
		t.Error("Mark should be stored at the rounded coordinate")
	}

	o.Prune()
	if o.Len() != 2 {
		t.Fatalf("Unshown marks were pruned, %d left", o.Len())
	}

	o.markShown()
	o.Prune()
	if o.Len() != 1 {
		t.Fatalf("Zero-duration mark should go after one frame, %d left", o.Len())
	}

	clock = clock.Add(500 * time.Millisecond)
	o.Prune()
	if o.Len() != 1 {
		t.Errorf("Mark expired early")
	}

	clock = clock.Add(500 * time.Millisecond)
	o.Prune()
	if o.Len() != 0 {
		t.Errorf("Mark outlived its duration")
	}
}

func TestOverlayLastMarkWins(t *testing.T) {
	o := NewOverlay()
	o.DrawCell(geom.V(0, 0), tilemap.ColorRay, 1, 0)
	o.DrawCell(geom.V(0, 0), tilemap.ColorBlocked, 1, 0)

	got, _ := o.At(geom.V(0, 0))
	if want := tcell.NewRGBColor(255, 0, 0); got != want {
		t.Errorf("Mark color = %v, want %v", got, want)
	}

	o.Clear()
	if o.Len() != 0 {
		t.Error("Clear left marks behind")
	}
}
