package tilemap

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/isogrid/internal/geom"
	"github.com/samdwyer/isogrid/internal/iso"
	"github.com/samdwyer/isogrid/internal/telemetry"
)

// Tile describes a scene object whose footprint is stamped into the grid.
type Tile[T comparable] struct {
	Position geom.Vec2 // World position of the footprint center
	Width    int       // Footprint width in cells
	Height   int       // Footprint height in cells
	OffsetX  float64   // Grid-space shift applied after centering
	OffsetY  float64
	Passable bool
	Entity   T
}

// Origin returns the grid coordinate of the footprint's first cell: the
// position in grid space, moved back by half the footprint (integer halves)
// and shifted by the offset.
func (t Tile[T]) Origin(tr iso.Transform) geom.Vec2 {
	pos := tr.WorldToGrid(t.Position)
	pos.X -= float64(t.Width / 2)
	pos.Y -= float64(t.Height / 2)
	pos.X += t.OffsetX
	pos.Y += t.OffsetY
	return pos
}

// PopulateStats summarizes a Populate pass.
type PopulateStats struct {
	Tiles   int // Impassable tiles stamped
	Skipped int // Passable tiles ignored
	Cells   int // Cell writes, overlaps counted each time
}

// Populate stamps every impassable tile's footprint into the grid, marking
// each cell blocked and occupied by the tile's entity. Passable tiles are
// skipped, so population never unblocks a cell. Tiles are applied in order
// and a later footprint overwrites an earlier one where they overlap.
//
// A footprint cell outside the grid is a configuration error: Populate stops
// and returns an error wrapping ErrOutOfRange. Cells already written stay.
func (g *Grid[T]) Populate(ctx context.Context, tiles []Tile[T]) (PopulateStats, error) {
	tracer := telemetry.Tracer("tilemap")
	ctx, span := tracer.Start(ctx, "tilemap.populate")
	defer span.End()

	startTime := time.Now()
	var stats PopulateStats

	fail := func(err error) (PopulateStats, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return stats, err
	}

	for n, tile := range tiles {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}
		if tile.Passable {
			stats.Skipped++
			continue
		}

		origin := tile.Origin(g.transform)
		for x := 0; x < tile.Width; x++ {
			for y := 0; y < tile.Height; y++ {
				coord := origin.Add(geom.V(float64(x), float64(y)))
				i, ok := g.Lookup(coord)
				if !ok {
					return fail(fmt.Errorf("tile %d footprint: %w", n, outOfRange(coord)))
				}
				g.cells[i] = Cell[T]{Passable: false, Occupant: tile.Entity}
				stats.Cells++
			}
		}
		stats.Tiles++
	}

	span.SetAttributes(
		attribute.Int("grid.width", g.width),
		attribute.Int("grid.height", g.height),
		attribute.Int("populate.tiles", stats.Tiles),
		attribute.Int("populate.skipped", stats.Skipped),
		attribute.Int("populate.cells", stats.Cells),
		attribute.Int64("populate.duration_us", time.Since(startTime).Microseconds()),
	)
	return stats, nil
}
