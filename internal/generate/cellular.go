package generate

import "dungeon-mapgen/internal/gamemap"

const (
	caFloorPercent = 55
	caIterations   = 15
)

// CellularAutomataBuilder grows caves from noise. As an initial builder it
// seeds the interior and smooths it caIterations times; as a meta builder
// it applies a single smoothing pass to whatever map it is given.
type CellularAutomataBuilder struct{}

// BuildInitial implements InitialMapBuilder.
func (CellularAutomataBuilder) BuildInitial(b *BuildData) error {
	m := b.Map
	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			if b.Rng.RollDice(1, 100) <= caFloorPercent {
				m.Set(x, y, gamemap.TileFloor)
			} else {
				m.Set(x, y, gamemap.TileWall)
			}
		}
	}
	b.TakeSnapshot()
	for range caIterations {
		smooth(b)
	}
	return nil
}

// BuildMeta implements MetaMapBuilder.
func (CellularAutomataBuilder) BuildMeta(b *BuildData) error {
	smooth(b)
	return nil
}

// smooth runs one automaton generation: an interior cell with more than four
// wall neighbours, or none at all, becomes wall; anything else becomes
// floor. Every cell reads the previous generation.
func smooth(b *BuildData) {
	m := b.Map
	next := append([]gamemap.TileType(nil), m.Tiles...)
	w := m.Width
	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			idx := m.Idx(x, y)
			walls := 0
			for _, n := range [8]int{idx - 1, idx + 1, idx - w, idx + w, idx - w - 1, idx - w + 1, idx + w - 1, idx + w + 1} {
				if m.Tiles[n] == gamemap.TileWall {
					walls++
				}
			}
			if walls > 4 || walls == 0 {
				next[idx] = gamemap.TileWall
			} else {
				next[idx] = gamemap.TileFloor
			}
		}
	}
	m.Tiles = next
	b.TakeSnapshot()
}
