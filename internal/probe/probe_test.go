package probe

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/isogrid/internal/geom"
	"github.com/samdwyer/isogrid/internal/ui"
)

func newTestProbe(t *testing.T, cfg Config) (*Probe, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := ui.NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	sim.SetSize(40, 12)

	p := New(cfg, screen)
	if err := p.Init(context.Background()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(p.Close)
	return p, sim
}

func orthoConfig() Config {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 64, 64
	cfg.Transform = "ortho"
	cfg.TileWidth = 1
	return cfg
}

func TestInitDefaultScene(t *testing.T) {
	p, _ := newTestProbe(t, orthoConfig())

	if p.Scene().Name != "courtyard" {
		t.Errorf("Scene = %q, want courtyard", p.Scene().Name)
	}
	// The well covers (-1..1, -1..1), so the nearest walker spot is a ring-2 corner.
	if want := geom.V(-2, -2); p.Cursor() != want {
		t.Errorf("Start = %v, want %v", p.Cursor(), want)
	}
	if !p.Grid().FootprintPassable(p.Cursor()) {
		t.Error("Start position should be passable")
	}
}

func TestInitIsometric(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 64, 64
	p, _ := newTestProbe(t, cfg)

	gate := p.Scene().Entities.GetByName("gate")
	if got := p.Grid().CellAt(geom.V(12, 1)).Occupant; got != gate {
		t.Errorf("Gate cell occupant = %v, want gate", got)
	}
}

func TestInitGenerated(t *testing.T) {
	cfg := orthoConfig()
	cfg.Width, cfg.Height = 128, 128
	cfg.Scene = SceneGenerate
	cfg.Seed = 42
	p, _ := newTestProbe(t, cfg)

	rooms := p.Scene().Rooms()
	if len(rooms) == 0 {
		t.Fatal("Generated scene has no rooms")
	}
	if p.Cursor() != rooms[0] {
		t.Errorf("Start = %v, want first room center %v", p.Cursor(), rooms[0])
	}
}

func TestInitSceneFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pillar.json")
	content := `{"name": "pillar", "space": "grid", "tiles": [{"name": "pillar", "x": 0, "y": 0, "width": 1, "height": 1}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg := orthoConfig()
	cfg.Scene = path
	p, _ := newTestProbe(t, cfg)

	if p.Scene().Name != "pillar" {
		t.Errorf("Scene = %q, want pillar", p.Scene().Name)
	}
	if p.Grid().PassableTile(geom.V(0, 0)) {
		t.Error("Pillar cell should be blocked")
	}
}

func TestInitErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad transform", func(c *Config) { c.Transform = "hex" }},
		{"bad size", func(c *Config) { c.Width = 0 }},
		{"missing scene", func(c *Config) { c.Scene = "/nonexistent/scene.yaml" }},
		{"scene too large", func(c *Config) { c.Width, c.Height = 16, 16 }},
		{"generated too small", func(c *Config) { c.Width, c.Height, c.Scene = 20, 20, SceneGenerate }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := tcell.NewSimulationScreen("UTF-8")
			screen, err := ui.NewScreenFrom(sim)
			if err != nil {
				t.Fatalf("Failed to init simulation screen: %v", err)
			}
			defer screen.Close()

			cfg := orthoConfig()
			tt.mutate(&cfg)
			if err := New(cfg, screen).Init(context.Background()); err == nil {
				t.Error("Expected Init to fail")
			}
		})
	}
}

func TestMoveWalkerAndFree(t *testing.T) {
	p, _ := newTestProbe(t, orthoConfig())

	// East of the start the footprint reaches the well.
	if p.Move(1, 0) {
		t.Error("Walker should not move next to the well")
	}
	if !strings.HasPrefix(p.Message(), "Blocked") {
		t.Errorf("Message = %q, want Blocked...", p.Message())
	}
	if !p.Move(0, -1) {
		t.Error("Walker should move north")
	}

	p.ToggleMode()
	if p.Mode() != ModeFree {
		t.Fatalf("Mode = %v, want free", p.Mode())
	}
	p.cursor = geom.V(-2, -2)
	if !p.Move(1, 0) {
		t.Error("Free cursor should move anywhere inside the grid")
	}
}

func TestMoveEdge(t *testing.T) {
	p, _ := newTestProbe(t, orthoConfig())
	p.ToggleMode()

	// Index 0 is (0,-32) on a 64x64 grid.
	p.cursor = geom.V(0, -32)
	if p.Move(-1, 0) {
		t.Error("Cursor should not leave the grid")
	}
	if p.Message() != "Edge of grid" {
		t.Errorf("Message = %q", p.Message())
	}
}

func TestCastRay(t *testing.T) {
	p, _ := newTestProbe(t, orthoConfig())

	if hit := p.CastRay(context.Background()); hit.Hit {
		t.Error("Ray without anchor should not hit")
	}

	p.cursor = geom.V(3, -3)
	p.SetAnchor()
	p.cursor = geom.V(20, -3)
	hit := p.CastRay(context.Background())

	if !hit.Hit {
		t.Fatal("Expected ray to hit the east wall")
	}
	if hit.Occupant.Name != "east-wall-north" || hit.Cell != geom.V(12, -3) {
		t.Errorf("Hit %s at %v, want east-wall-north at (12,-3)", hit.Occupant, hit.Cell)
	}
	if !strings.HasPrefix(p.Message(), "Hit east-wall-north") {
		t.Errorf("Message = %q", p.Message())
	}
	if p.overlay.Len() == 0 {
		t.Error("Ray debug drawing left no marks")
	}
}

func TestCastRayFromInsideOccupant(t *testing.T) {
	p, _ := newTestProbe(t, orthoConfig())

	p.cursor = geom.V(0, 0)
	p.SetAnchor()
	p.cursor = geom.V(0, -8)

	if hit := p.CastRay(context.Background()); hit.Hit {
		t.Errorf("Ray from inside the well hit %s", hit.Occupant)
	}
}

func TestOverlap(t *testing.T) {
	p, _ := newTestProbe(t, orthoConfig())
	well := p.Scene().Entities.GetByName("well")

	p.cursor = geom.V(0, 0)
	found := p.Overlap()
	if len(found) != overlapCapacity {
		t.Fatalf("Found %d occupants, want buffer capacity %d", len(found), overlapCapacity)
	}
	for i, e := range found {
		if e != well {
			t.Errorf("found[%d] = %s, want well", i, e)
		}
	}

	p.cursor = geom.V(-5, -5)
	if found := p.Overlap(); len(found) != 0 {
		t.Errorf("Found %d occupants in open ground", len(found))
	}
	if p.Message() != "Nothing nearby" {
		t.Errorf("Message = %q", p.Message())
	}
}

func TestToggleDoor(t *testing.T) {
	p, _ := newTestProbe(t, orthoConfig())
	gate := p.Scene().Entities.GetByName("gate")

	p.cursor = geom.V(12, 1)
	p.ToggleDoor()
	c := p.Grid().CellAt(p.cursor)
	if !c.Passable || c.Occupant != gate {
		t.Errorf("Opened gate cell = %+v, want passable with gate occupant", c)
	}

	p.ToggleDoor()
	if p.Grid().PassableTile(p.cursor) {
		t.Error("Closed gate cell should be blocked")
	}
}

func TestVacateAtCursor(t *testing.T) {
	p, _ := newTestProbe(t, orthoConfig())
	well := p.Scene().Entities.GetByName("well")

	p.cursor = geom.V(0, 0)
	if n := p.VacateAtCursor(); n != 9 {
		t.Errorf("Vacated %d cells, want 9", n)
	}
	if p.Scene().Entities.GetByID(well.ID) != nil {
		t.Error("Well still registered")
	}
	if !p.Grid().FootprintPassable(p.cursor) {
		t.Error("Vacated cells should be passable")
	}
	if n := p.VacateAtCursor(); n != 0 {
		t.Errorf("Vacating an empty cell cleared %d cells", n)
	}
}

func TestRender(t *testing.T) {
	p, sim := newTestProbe(t, orthoConfig())
	p.render()

	// 40x12 screen leaves a 40x10 map centered on the cursor.
	if r, _, _, _ := sim.GetContent(20, 5); r != ui.GlyphCursor {
		t.Errorf("Cursor glyph = %q, want %q", r, ui.GlyphCursor)
	}

	var status strings.Builder
	for x := 0; x < 9; x++ {
		r, _, _, _ := sim.GetContent(x, 10)
		status.WriteRune(r)
	}
	if status.String() != "courtyard" {
		t.Errorf("Status line = %q, want courtyard prefix", status.String())
	}
	if p.overlay.Len() == 0 {
		t.Error("Blocked cells near the start should be marked")
	}
}

func TestRunQuits(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := ui.NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	sim.SetSize(40, 12)
	sim.InjectKey(tcell.KeyRune, 'm', tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	p := New(orthoConfig(), screen)
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if p.Mode() != ModeFree {
		t.Errorf("Mode = %v, want free after m", p.Mode())
	}
}
