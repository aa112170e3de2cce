// Package spawn decides what to place on tiles a map builder marks as
// spawn-eligible. Builders only choose regions; a Table chooses tiles within
// the region and the tag for each.
package spawn

import (
	"bytes"
	"fmt"
	"io"
	"slices"

	"dungeon-mapgen/assets"
	"dungeon-mapgen/internal/gamemap"
	"dungeon-mapgen/internal/rng"

	"gopkg.in/yaml.v3"
)

// Entry is one queued spawn: a tile index and the tag of what appears there.
type Entry struct {
	Idx  int
	Name string
}

// Table turns a region of tile indices into spawns for the given depth.
type Table interface {
	SpawnRegion(m *gamemap.Map, area []int, depth int, r *rng.Rng) []Entry
}

// TableEntry is one row of a WeightedTable.
type TableEntry struct {
	Name       string `yaml:"name"`
	Weight     int    `yaml:"weight"`
	MinDepth   int    `yaml:"min_depth"`
	MaxDepth   int    `yaml:"max_depth"`
	DepthBonus int    `yaml:"depth_bonus"`
}

// WeightedTable picks tags by depth-adjusted weight.
type WeightedTable struct {
	MaxPerRegion int          `yaml:"max_per_region"`
	Entries      []TableEntry `yaml:"entries"`
}

// LoadTable decodes a YAML spawn table.
func LoadTable(r io.Reader) (*WeightedTable, error) {
	var t WeightedTable
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("decode spawn table: %w", err)
	}
	if t.MaxPerRegion < 1 {
		return nil, fmt.Errorf("spawn table: max_per_region must be positive, got %d", t.MaxPerRegion)
	}
	for _, e := range t.Entries {
		if e.Name == "" {
			return nil, fmt.Errorf("spawn table: entry with empty name")
		}
		if e.Weight < 0 {
			return nil, fmt.Errorf("spawn table: %s has negative weight", e.Name)
		}
	}
	return &t, nil
}

// DefaultTable returns the table embedded in assets. The embedded data is
// validated by tests, so a decode failure here is a build defect.
func DefaultTable() *WeightedTable {
	t, err := LoadTable(bytes.NewReader(assets.SpawnTableYAML))
	if err != nil {
		panic(err)
	}
	return t
}

func (t *WeightedTable) weight(e TableEntry, depth int) int {
	if depth < e.MinDepth || depth > e.MaxDepth {
		return 0
	}
	return e.Weight + e.DepthBonus*(depth-e.MinDepth)
}

// Roll picks one tag for depth, or "" when nothing is eligible.
func (t *WeightedTable) Roll(depth int, r *rng.Rng) string {
	total := 0
	for _, e := range t.Entries {
		total += t.weight(e, depth)
	}
	if total == 0 {
		return ""
	}
	n := r.RollDice(1, total) - 1
	for _, e := range t.Entries {
		w := t.weight(e, depth)
		if n < w {
			return e.Name
		}
		n -= w
	}
	return ""
}

// SpawnRegion chooses up to MaxPerRegion+depth distinct walkable tiles from
// area and rolls a tag for each.
func (t *WeightedTable) SpawnRegion(m *gamemap.Map, area []int, depth int, r *rng.Rng) []Entry {
	areas := slices.DeleteFunc(slices.Clone(area), func(idx int) bool {
		return !m.ValidIdx(idx) || !m.Tiles[idx].Walkable()
	})
	n := min(len(areas), r.RollDice(1, t.MaxPerRegion+3)+depth-3)
	if n <= 0 {
		return nil
	}

	points := make([]int, 0, n)
	for range n {
		i := 0
		if len(areas) > 1 {
			i = r.RollDice(1, len(areas)) - 1
		}
		points = append(points, areas[i])
		areas = slices.Delete(areas, i, i+1)
	}

	var out []Entry
	for _, idx := range points {
		if name := t.Roll(depth, r); name != "" {
			out = append(out, Entry{Idx: idx, Name: name})
		}
	}
	return out
}
