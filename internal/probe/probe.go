package probe

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/isogrid/internal/entity"
	"github.com/samdwyer/isogrid/internal/geom"
	"github.com/samdwyer/isogrid/internal/scene"
	"github.com/samdwyer/isogrid/internal/telemetry"
	"github.com/samdwyer/isogrid/internal/tilemap"
	"github.com/samdwyer/isogrid/internal/ui"
)

// Query parameters used by the probe's key bindings.
const (
	overlapSize     = 5  // OverlapBox edge in cells
	overlapCapacity = 8  // Result buffer size
	blockedWindow   = 9  // DrawBlocked window edge around the cursor
	maxGenWidth     = 80 // Generated scene size cap
	maxGenHeight    = 48
)

// Probe holds the grid, the scene that populated it and the cursor state.
type Probe struct {
	cfg      Config
	screen   *ui.Screen
	renderer *ui.Renderer
	overlay  *ui.Overlay

	grid  *tilemap.Grid[*entity.Entity]
	scene *scene.Scene

	cursor  geom.Vec2
	anchor  *geom.Vec2
	mode    Mode
	hits    []*entity.Entity
	message string
	running bool
}

// New creates a probe drawing to screen. Call Init or Run to build the grid.
func New(cfg Config, screen *ui.Screen) *Probe {
	return &Probe{
		cfg:      cfg,
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		overlay:  ui.NewOverlay(),
		mode:     ModeWalker,
		hits:     make([]*entity.Entity, overlapCapacity),
		running:  true,
	}
}

// Init builds the grid, loads the scene, populates the grid and places the
// cursor on the first spot a walker fits.
func (p *Probe) Init(ctx context.Context) error {
	tracer := telemetry.Tracer("probe")
	ctx, span := tracer.Start(ctx, "probe.init")
	defer span.End()

	tr, err := p.cfg.NewTransform()
	if err != nil {
		return err
	}
	grid, err := tilemap.New[*entity.Entity](p.cfg.Width, p.cfg.Height, tr)
	if err != nil {
		return err
	}

	sc, err := p.loadScene(ctx)
	if err != nil {
		return err
	}
	stats, err := grid.Populate(ctx, sc.Tiles(tr))
	if err != nil {
		return fmt.Errorf("populate scene %s: %w", sc.Name, err)
	}
	grid.SetDrawer(p.overlay)

	p.grid = grid
	p.scene = sc
	p.cursor = p.findStart()
	p.message = fmt.Sprintf("Loaded %s: %d tiles, %d cells blocked", sc.Name, stats.Tiles, stats.Cells)

	span.SetAttributes(
		attribute.String("scene.name", sc.Name),
		attribute.String("grid.transform", p.cfg.Transform),
		attribute.Int("grid.width", p.cfg.Width),
		attribute.Int("grid.height", p.cfg.Height),
		attribute.Int("scene.entities", sc.Entities.Count()),
		attribute.Float64("cursor.x", p.cursor.X),
		attribute.Float64("cursor.y", p.cursor.Y),
	)
	return nil
}

func (p *Probe) loadScene(ctx context.Context) (*scene.Scene, error) {
	switch p.cfg.Scene {
	case "":
		return scene.LoadEmbedded(scene.DefaultScene)
	case SceneGenerate:
		seed := p.cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewSource(seed))
		w := min(p.cfg.Width/2, maxGenWidth)
		h := min(p.cfg.Height/2, maxGenHeight)
		return scene.Generate(ctx, rng, w, h)
	default:
		return scene.Load(p.cfg.Scene)
	}
}

// findStart returns the first room center of a generated scene, otherwise the
// nearest cell to the origin where a walker fits.
func (p *Probe) findStart() geom.Vec2 {
	for _, c := range p.scene.Rooms() {
		if p.grid.FootprintPassable(c) {
			return c
		}
	}
	limit := max(p.grid.Width(), p.grid.Height()) / 2
	for r := 0; r < limit; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if max(abs(dx), abs(dy)) != r {
					continue
				}
				c := geom.V(float64(dx), float64(dy))
				if p.grid.Contains(c) && p.grid.FootprintPassable(c) {
					return c
				}
			}
		}
	}
	return geom.Vec2{}
}

// Grid returns the probe's grid.
func (p *Probe) Grid() *tilemap.Grid[*entity.Entity] { return p.grid }

// Scene returns the loaded scene.
func (p *Probe) Scene() *scene.Scene { return p.scene }

// Cursor returns the cursor position in grid space.
func (p *Probe) Cursor() geom.Vec2 { return p.cursor }

// Mode returns the movement mode.
func (p *Probe) Mode() Mode { return p.mode }

// Message returns the last status message.
func (p *Probe) Message() string { return p.message }

// Move attempts to move the cursor by the given delta. In walker mode the
// target must pass the footprint check.
func (p *Probe) Move(dx, dy int) bool {
	target := p.cursor.Add(geom.V(float64(dx), float64(dy)))
	if !p.grid.Contains(target) {
		p.message = "Edge of grid"
		return false
	}
	if p.mode == ModeWalker && !p.grid.FootprintPassable(target) {
		p.message = fmt.Sprintf("Blocked at (%g,%g)", target.X, target.Y)
		return false
	}
	p.cursor = target
	return true
}

// ToggleMode switches between walker and free movement.
func (p *Probe) ToggleMode() {
	if p.mode == ModeWalker {
		p.mode = ModeFree
	} else {
		p.mode = ModeWalker
	}
	p.message = "Mode: " + p.mode.String()
}

// SetAnchor sets the ray origin to the cursor.
func (p *Probe) SetAnchor() {
	a := p.cursor
	p.anchor = &a
	p.message = fmt.Sprintf("Anchor at (%g,%g)", a.X, a.Y)
}

// CastRay casts from the anchor to the cursor with debug drawing. The
// occupant under the anchor is ignored so a ray can start inside an object.
func (p *Probe) CastRay(ctx context.Context) tilemap.Hit[*entity.Entity] {
	if p.anchor == nil {
		p.message = "No anchor set (press a)"
		return tilemap.Hit[*entity.Entity]{}
	}

	tracer := telemetry.Tracer("probe")
	_, span := tracer.Start(ctx, "probe.raycast")
	defer span.End()

	hit := p.grid.Raycast(*p.anchor, p.cursor, tilemap.RayOptions[*entity.Entity]{
		Ignore: p.grid.CellAt(*p.anchor).Occupant,
		Debug:  true,
	})
	if hit.Hit {
		p.message = fmt.Sprintf("Hit %s at (%g,%g)", hit.Occupant, hit.Cell.X, hit.Cell.Y)
	} else {
		p.message = "Clear line"
	}

	span.SetAttributes(
		attribute.Bool("ray.hit", hit.Hit),
		attribute.Float64("ray.length", p.anchor.Dist(p.cursor)),
	)
	return hit
}

// Overlap lists the occupants in a box centered on the cursor.
func (p *Probe) Overlap() []*entity.Entity {
	n := p.grid.OverlapBox(p.cursor, geom.V(overlapSize, overlapSize), p.hits)
	found := p.hits[:n]

	if n == 0 {
		p.message = "Nothing nearby"
		return found
	}
	names := make([]string, n)
	for i, e := range found {
		names[i] = e.Name
	}
	p.message = fmt.Sprintf("Nearby (%d): %s", n, strings.Join(names, ", "))
	return found
}

// ToggleDoor flips the passable flag of the cell under the cursor, keeping
// its occupant.
func (p *Probe) ToggleDoor() {
	c := p.grid.CellAt(p.cursor)
	if err := p.grid.SetPassable(p.cursor, !c.Passable); err != nil {
		p.message = err.Error()
		return
	}
	state := "closed"
	if !c.Passable {
		state = "opened"
	}
	p.message = fmt.Sprintf("%s %s", c.Occupant, state)
}

// VacateAtCursor removes the occupant under the cursor from the grid and the
// scene registry. Returns the number of cells cleared.
func (p *Probe) VacateAtCursor() int {
	occ := p.grid.CellAt(p.cursor).Occupant
	if occ == nil {
		p.message = "Nothing here"
		return 0
	}
	n := p.grid.Vacate(occ)
	p.scene.Entities.Remove(occ.ID)
	p.message = fmt.Sprintf("Removed %s (%d cells)", occ, n)
	return n
}

// Run initializes the probe and executes the input loop until quit.
func (p *Probe) Run(ctx context.Context) error {
	if err := p.Init(ctx); err != nil {
		return err
	}

	for p.running {
		p.render()
		p.handleInput(ctx)
	}

	p.screen.Close()
	return nil
}

func (p *Probe) render() {
	p.overlay.Prune()
	p.grid.DrawBlocked(p.cursor, blockedWindow, blockedWindow)

	view := ui.View{Grid: p.grid, Cursor: p.cursor, Anchor: p.anchor, Overlay: p.overlay}
	p.renderer.Render(view)

	_, rows := p.renderer.MapSize()
	p.renderer.RenderMessage(p.status(), rows)
	p.renderer.RenderMessage(p.message, rows+1)
	p.renderer.Show()
}

func (p *Probe) status() string {
	occ := p.grid.CellAt(p.cursor).Occupant
	return fmt.Sprintf("%s | %s | (%g,%g) %s | arrows a r b d x m q",
		p.scene.Name, p.mode, p.cursor.X, p.cursor.Y, occ)
}

// handleInput processes a single input event.
func (p *Probe) handleInput(ctx context.Context) {
	switch ev := p.screen.PollEvent().(type) {
	case nil:
		p.running = false
	case *tcell.EventKey:
		p.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		p.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (p *Probe) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		p.running = false

	case tcell.KeyUp:
		p.Move(0, -1)
	case tcell.KeyDown:
		p.Move(0, 1)
	case tcell.KeyLeft:
		p.Move(-1, 0)
	case tcell.KeyRight:
		p.Move(1, 0)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			p.running = false
		case 'm':
			p.ToggleMode()
		case 'a':
			p.SetAnchor()
		case 'r':
			p.CastRay(ctx)
		case 'b':
			p.Overlap()
		case 'd':
			p.ToggleDoor()
		case 'x':
			p.VacateAtCursor()
		}
	}
}

// Close cleans up probe resources.
func (p *Probe) Close() {
	if p.screen != nil {
		p.screen.Close()
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
