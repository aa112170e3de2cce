package generate

import (
	"dungeon-mapgen/internal/gamemap"
	"dungeon-mapgen/internal/pathing"
	"dungeon-mapgen/internal/rng"
)

const forestName = "Into the Woods"

// ForestBuilderChain returns the chain for the woodland level: a cave
// layout read as trees, a road across it and a stream off to one side.
func ForestBuilderChain(depth, width, height int, r *rng.Rng, opts ...Option) *BuilderChain {
	c := NewBuilderChain(depth, width, height, forestName, r, opts...)
	c.StartWith(CellularAutomataBuilder{})
	c.With(AreaStartingPosition{X: XCentre, Y: YMiddle})
	c.With(CullUnreachable{})
	c.With(AreaStartingPosition{X: XLeft, Y: YMiddle})
	c.With(VoronoiSpawning{})
	c.With(YellowBrickRoad{})
	return c
}

// YellowBrickRoad paves a three-wide road from the start to the east edge,
// places the exit at a corner and runs a stream from it to the south edge.
type YellowBrickRoad struct{}

// BuildMeta implements MetaMapBuilder.
func (YellowBrickRoad) BuildMeta(b *BuildData) error {
	const stage = "YellowBrickRoad"
	start, err := b.RequireStart(stage)
	if err != nil {
		return err
	}
	m := b.Map
	startIdx := m.Idx(start.X, start.Y)
	endIdx, ok := nearestWalkable(m, m.Width-2, m.Height/2)
	if !ok {
		return stageError(stage, KindNoWalkableTile, "no tile for the road's end")
	}
	road, ok := pathing.New(m).Path(startIdx, endIdx)
	if !ok {
		return stageError(stage, KindNoValidPath, "no route from the start to the east edge")
	}
	for _, idx := range road {
		x, y := m.XY(idx)
		for _, d := range [5][2]int{{0, 0}, {-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			paintRoad(m, x+d[0], y+d[1])
		}
	}
	m.Tiles[endIdx] = gamemap.TileDownStairs
	b.TakeSnapshot()

	seedX, seedY := m.Width-1, 1
	streamX, streamY := 0, m.Height-1
	if b.Rng.RollDice(1, 2) != 1 {
		seedX, seedY = m.Width-1, m.Height-1
		streamX, streamY = 1, m.Height-1
	}
	stairs, ok := nearestWalkable(m, seedX, seedY)
	if !ok {
		return stageError(stage, KindNoWalkableTile, "no tile for the stairs")
	}
	b.TakeSnapshot()

	streamEnd, ok := nearestWalkable(m, streamX, streamY)
	if !ok {
		return stageError(stage, KindNoWalkableTile, "no tile for the stream")
	}
	if stream, ok := pathing.New(m).Path(stairs, streamEnd); ok {
		for _, idx := range stream {
			if m.Tiles[idx] == gamemap.TileFloor {
				m.Tiles[idx] = gamemap.TileShallowWater
			}
		}
	}
	m.Tiles[stairs] = gamemap.TileDownStairs
	b.TakeSnapshot()
	return nil
}

func paintRoad(m *gamemap.Map, x, y int) {
	if x < 1 || x > m.Width-2 || y < 1 || y > m.Height-2 {
		return
	}
	if m.At(x, y) != gamemap.TileDownStairs {
		m.Set(x, y, gamemap.TileRoad)
	}
}
