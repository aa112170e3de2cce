package generate

import (
	"fmt"
	"math"

	"dungeon-mapgen/internal/gamemap"
	"dungeon-mapgen/internal/rng"
)

const (
	dwarfFortName = "Dwarven Fortress"
	lairDepth     = 6
	dragonClear   = 25.0
)

// DwarfFortBuilderChain returns the chain for the fortress level: BSP halls
// cut through by an insectoid dragon's lair.
func DwarfFortBuilderChain(depth, width, height int, r *rng.Rng, opts ...Option) *BuilderChain {
	c := NewBuilderChain(depth, width, height, dwarfFortName, r, opts...)
	c.StartWith(&BspDungeonBuilder{})
	c.With(RoomSorter{Sort: SortCentral})
	c.With(RoomDrawer{})
	c.With(BspCorridors{})
	c.With(CorridorSpawner{})
	c.With(DragonsLair{})
	c.With(AreaStartingPosition{X: XLeft, Y: YTop})
	c.With(CullUnreachable{})
	c.With(AreaEndingPosition{X: XRight, Y: YBottom})
	c.With(VoronoiSpawning{})
	c.With(DistantExit{})
	c.With(DragonSpawner{})
	return c
}

// DragonsLair builds a second, insectoid cave map with its own chain and
// carves it into the current map. The nested chain shares the generator,
// so the result stays reproducible from the outer seed.
type DragonsLair struct{}

// BuildMeta implements MetaMapBuilder.
func (DragonsLair) BuildMeta(b *BuildData) error {
	b.Map.Depth = 7
	b.TakeSnapshot()

	lair := NewBuilderChain(lairDepth, b.Width, b.Height, "New Map", b.Rng, b.options()...)
	lair.StartWith(DLAInsectoid())
	if err := lair.Build(); err != nil {
		return fmt.Errorf("lair: %w", err)
	}

	b.History = append(b.History, lair.Data.History...)
	b.TakeSnapshot()

	b.Map.Tiles = MergeWalkable(b.Map, lair.Data.Map)
	b.TakeSnapshot()
	return nil
}

// MergeWalkable returns primary's tiles with every wall that is walkable in
// secondary opened up as floor. Neither map is modified.
func MergeWalkable(primary, secondary *gamemap.Map) []gamemap.TileType {
	out := append([]gamemap.TileType(nil), primary.Tiles...)
	for i, t := range out {
		if t == gamemap.TileWall && i < len(secondary.Tiles) && secondary.Tiles[i].Walkable() {
			out[i] = gamemap.TileFloor
		}
	}
	return out
}

// DragonSpawner places the dragon on the walkable tile nearest the map
// centre and clears every queued spawn within 25 tiles of it.
type DragonSpawner struct{}

// BuildMeta implements MetaMapBuilder.
func (DragonSpawner) BuildMeta(b *BuildData) error {
	m := b.Map
	lair, ok := nearestWalkable(m, m.Width/2, m.Height/2)
	if !ok {
		return stageError("DragonSpawner", KindNoWalkableTile, "no tile for the dragon")
	}
	lx, ly := m.XY(lair)
	kept := b.SpawnList[:0]
	for _, s := range b.SpawnList {
		sx, sy := m.XY(s.Idx)
		if math.Hypot(float64(sx-lx), float64(sy-ly)) > dragonClear {
			kept = append(kept, s)
		}
	}
	b.SpawnList = kept
	b.AddSpawn(lair, "Black Dragon")
	return nil
}
