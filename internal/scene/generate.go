package scene

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/isogrid/internal/geom"
	"github.com/samdwyer/isogrid/internal/telemetry"
)

// BSP parameters for generated scenes.
const (
	minRoomSize = 4  // Smallest room edge
	maxRoomSize = 10 // Largest room edge
	minLeafSize = 7  // Regions smaller than twice this are not split
)

// region is a node of the BSP tree.
type region struct {
	x, y, w, h  int
	left, right *region
	room        *rect
}

type rect struct {
	x, y, w, h int
}

func (r rect) center() (int, int) {
	return r.x + r.w/2, r.y + r.h/2
}

// layout is the floor mask being carved, indexed [y][x].
type layout struct {
	width, height int
	floor         [][]bool
	rooms         []rect
	rng           *rand.Rand
}

// Generate builds a dungeon scene of width x height cells: BSP rooms joined
// by L-shaped corridors. Every solid cell touching floor becomes wall, merged
// into one tile record per horizontal run, and each room gets one crate.
// Positions are in grid space, centered on the scene.
func Generate(ctx context.Context, rng *rand.Rand, width, height int) (*Scene, error) {
	tracer := telemetry.Tracer("scene")
	_, span := tracer.Start(ctx, "scene.generate")
	defer span.End()
	startTime := time.Now()

	fail := func(err error) (*Scene, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if width < 2*minLeafSize+2 || height < 2*minLeafSize+2 {
		return fail(fmt.Errorf("scene: generated size %dx%d too small (min %d)", width, height, 2*minLeafSize+2))
	}

	l := &layout{width: width, height: height, rng: rng}
	l.floor = make([][]bool, height)
	for y := range l.floor {
		l.floor[y] = make([]bool, width)
	}

	root := &region{x: 1, y: 1, w: width - 2, h: height - 2}
	l.split(root)
	l.carve(root)

	file := &File{Name: "generated", Space: SpaceGrid}
	file.Tiles = append(file.Tiles, l.walls()...)
	file.Tiles = append(file.Tiles, l.crates()...)

	span.SetAttributes(
		attribute.Int("scene.width", width),
		attribute.Int("scene.height", height),
		attribute.Int("scene.rooms", len(l.rooms)),
		attribute.Int("scene.tiles", len(file.Tiles)),
		attribute.Int64("scene.generation_ms", time.Since(startTime).Milliseconds()),
	)
	sc, err := Build(file)
	if err != nil {
		return fail(err)
	}
	for _, room := range l.rooms {
		cx, cy := room.center()
		sc.rooms = append(sc.rooms, geom.V(float64(cx-width/2), float64(cy-height/2)))
	}
	return sc, nil
}

func (l *layout) split(r *region) {
	canSplitH := r.h >= 2*minLeafSize
	canSplitV := r.w >= 2*minLeafSize
	if !canSplitH && !canSplitV {
		return
	}

	// Cut across the longer side when both are possible.
	horizontal := canSplitH && (!canSplitV || r.h > r.w)
	extent := r.w
	if horizontal {
		extent = r.h
	}
	cut := minLeafSize + l.rng.Intn(extent-2*minLeafSize+1)

	if horizontal {
		r.left = &region{x: r.x, y: r.y, w: r.w, h: cut}
		r.right = &region{x: r.x, y: r.y + cut, w: r.w, h: r.h - cut}
	} else {
		r.left = &region{x: r.x, y: r.y, w: cut, h: r.h}
		r.right = &region{x: r.x + cut, y: r.y, w: r.w - cut, h: r.h}
	}
	l.split(r.left)
	l.split(r.right)
}

func (l *layout) carve(r *region) {
	if r.left == nil {
		l.carveRoom(r)
		return
	}
	l.carve(r.left)
	l.carve(r.right)

	a, b := r.left.anyRoom(), r.right.anyRoom()
	if a == nil || b == nil {
		return
	}
	x1, y1 := a.center()
	x2, y2 := b.center()
	if l.rng.Intn(2) == 0 {
		l.fill(min(x1, x2), y1, abs(x2-x1)+1, 1)
		l.fill(x2, min(y1, y2), 1, abs(y2-y1)+1)
	} else {
		l.fill(x1, min(y1, y2), 1, abs(y2-y1)+1)
		l.fill(min(x1, x2), y2, abs(x2-x1)+1, 1)
	}
}

func (l *layout) carveRoom(r *region) {
	maxW, maxH := min(maxRoomSize, r.w-2), min(maxRoomSize, r.h-2)
	if maxW < minRoomSize || maxH < minRoomSize {
		return
	}
	w := minRoomSize + l.rng.Intn(maxW-minRoomSize+1)
	h := minRoomSize + l.rng.Intn(maxH-minRoomSize+1)
	room := rect{
		x: r.x + 1 + l.rng.Intn(r.w-w-1),
		y: r.y + 1 + l.rng.Intn(r.h-h-1),
		w: w,
		h: h,
	}
	r.room = &room
	l.rooms = append(l.rooms, room)
	l.fill(room.x, room.y, room.w, room.h)
}

func (r *region) anyRoom() *rect {
	if r == nil {
		return nil
	}
	if r.room != nil {
		return r.room
	}
	if room := r.left.anyRoom(); room != nil {
		return room
	}
	return r.right.anyRoom()
}

// fill marks a rectangle as floor, leaving the outer border solid.
func (l *layout) fill(x, y, w, h int) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			if xx > 0 && xx < l.width-1 && yy > 0 && yy < l.height-1 {
				l.floor[yy][xx] = true
			}
		}
	}
}

func (l *layout) isFloor(x, y int) bool {
	return x >= 0 && x < l.width && y >= 0 && y < l.height && l.floor[y][x]
}

func (l *layout) isWall(x, y int) bool {
	if l.isFloor(x, y) {
		return false
	}
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if l.isFloor(x+dx, y+dy) {
				return true
			}
		}
	}
	return false
}

// walls emits one tile per horizontal run of wall cells.
func (l *layout) walls() []TileDef {
	var defs []TileDef
	for y := 0; y < l.height; y++ {
		for x := 0; x < l.width; {
			if !l.isWall(x, y) {
				x++
				continue
			}
			start := x
			for x < l.width && l.isWall(x, y) {
				x++
			}
			run := x - start
			defs = append(defs, TileDef{
				Name:   fmt.Sprintf("wall-%d-%d", start, y),
				Kind:   "wall",
				X:      float64(start + run/2 - l.width/2),
				Y:      float64(y - l.height/2),
				Width:  run,
				Height: 1,
			})
		}
	}
	return defs
}

// crates places one single-cell prop along the top row of each room, which
// keeps room centers clear.
func (l *layout) crates() []TileDef {
	defs := make([]TileDef, 0, len(l.rooms))
	for i, room := range l.rooms {
		x := room.x + l.rng.Intn(room.w)
		y := room.y
		defs = append(defs, TileDef{
			Name:   fmt.Sprintf("crate-%d", i),
			Kind:   "prop",
			X:      float64(x - l.width/2),
			Y:      float64(y - l.height/2),
			Width:  1,
			Height: 1,
		})
	}
	return defs
}

// Rooms returns the room centers of a generated scene in grid space.
// Scenes loaded from files have no rooms.
func (s *Scene) Rooms() []geom.Vec2 {
	return s.rooms
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
