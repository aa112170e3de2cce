package generate

import (
	"slices"

	"dungeon-mapgen/internal/gamemap"
	"dungeon-mapgen/internal/noise"
)

const (
	voronoiFrequency = 0.08
	voronoiScale     = 10240
)

// VoronoiSpawning partitions the floor into cellular-noise regions and hands
// each region to the spawn table.
type VoronoiSpawning struct{}

// BuildMeta implements MetaMapBuilder.
func (VoronoiSpawning) BuildMeta(b *BuildData) error {
	m := b.Map
	cells := noise.NewCellular(int64(b.Rng.RollDice(1, 65536)), voronoiFrequency)
	regions := map[int][]int{}
	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			idx := m.Idx(x, y)
			if m.Tiles[idx] != gamemap.TileFloor {
				continue
			}
			key := int(cells.At(float64(x), float64(y)) * voronoiScale)
			regions[key] = append(regions[key], idx)
		}
	}

	keys := make([]int, 0, len(regions))
	for k := range regions {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		b.SpawnRegion(regions[k])
	}
	return nil
}
