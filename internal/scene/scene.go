package scene

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/samdwyer/isogrid/internal/entity"
	"github.com/samdwyer/isogrid/internal/geom"
	"github.com/samdwyer/isogrid/internal/iso"
	"github.com/samdwyer/isogrid/internal/tilemap"
)

// Scene is a decoded tile feed together with the entities it references.
type Scene struct {
	Name     string
	Space    string
	Entities *entity.Registry

	defs  []TileDef
	refs  []*entity.Entity // refs[i] occupies defs[i]
	rooms []geom.Vec2
}

// Build validates a scene file and creates its entities.
func Build(file *File) (*Scene, error) {
	space := file.Space
	if space == "" {
		space = SpaceWorld
	}
	if space != SpaceWorld && space != SpaceGrid {
		return nil, fmt.Errorf("scene %q: unknown space %q", file.Name, file.Space)
	}

	s := &Scene{
		Name:     file.Name,
		Space:    space,
		Entities: entity.NewRegistry(),
		defs:     file.Tiles,
		refs:     make([]*entity.Entity, len(file.Tiles)),
	}

	byName := make(map[string]*entity.Entity)
	for i, def := range file.Tiles {
		if !def.Passable && (def.Width <= 0 || def.Height <= 0) {
			return nil, fmt.Errorf("tile %d (%s): footprint %dx%d must be positive", i, def.Name, def.Width, def.Height)
		}
		if e := byName[def.Name]; e != nil && def.Name != "" {
			s.refs[i] = e
			continue
		}

		e, err := newEntity(def)
		if err != nil {
			return nil, fmt.Errorf("tile %d (%s): %w", i, def.Name, err)
		}
		if err := s.Entities.Add(e); err != nil {
			return nil, fmt.Errorf("tile %d (%s): %w", i, def.Name, err)
		}
		byName[def.Name] = e
		s.refs[i] = e
	}
	return s, nil
}

func newEntity(def TileDef) (*entity.Entity, error) {
	kind, err := entity.ParseKind(def.Kind)
	if err != nil {
		return nil, err
	}
	e := entity.New(def.Name, kind)
	if def.ID != "" {
		id, err := uuid.Parse(def.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid id: %w", err)
		}
		e.ID = id
	}
	return e, nil
}

// Len returns the number of tile records.
func (s *Scene) Len() int {
	return len(s.defs)
}

// Tiles converts the scene into the grid's tile feed. Grid-space scenes are
// projected into world space through tr so population can map them back.
func (s *Scene) Tiles(tr iso.Transform) []tilemap.Tile[*entity.Entity] {
	tiles := make([]tilemap.Tile[*entity.Entity], len(s.defs))
	for i, def := range s.defs {
		pos := geom.V(def.X, def.Y)
		if s.Space == SpaceGrid {
			pos = tr.GridToWorld(pos)
		}
		tiles[i] = tilemap.Tile[*entity.Entity]{
			Position: pos,
			Width:    def.Width,
			Height:   def.Height,
			OffsetX:  def.OffsetX,
			OffsetY:  def.OffsetY,
			Passable: def.Passable,
			Entity:   s.refs[i],
		}
	}
	return tiles
}

// File converts the scene back into its on-disk layout, with entity IDs filled in.
func (s *Scene) File() *File {
	file := &File{Name: s.Name, Space: s.Space, Tiles: make([]TileDef, len(s.defs))}
	for i, def := range s.defs {
		def.ID = s.refs[i].ID.String()
		file.Tiles[i] = def
	}
	return file
}
