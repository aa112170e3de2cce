package generate

import (
	"testing"

	"dungeon-mapgen/internal/gamemap"
)

// allFloorRow checks that every tile at y between x1 and x2 (inclusive) is floor.
func allFloorRow(m *gamemap.Map, x1, x2, y int) bool {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		if m.At(x, y) != gamemap.TileFloor {
			return false
		}
	}
	return true
}

// allFloorCol checks that every tile at x between y1 and y2 (inclusive) is floor.
func allFloorCol(m *gamemap.Map, y1, y2, x int) bool {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		if m.At(x, y) != gamemap.TileFloor {
			return false
		}
	}
	return true
}

func TestCarveH(t *testing.T) {
	m := gamemap.New(1, 20, 20, "test")
	dug := carveH(m, 3, 8, 5)

	if !allFloorRow(m, 3, 8, 5) {
		t.Error("carveH(3,8,5) should carve floor tiles from x=3 to x=8 at y=5")
	}
	if m.IsWalkable(2, 5) || m.IsWalkable(9, 5) {
		t.Error("tiles outside the segment should remain wall")
	}
	if len(dug) != 6 {
		t.Errorf("carveH returned %d indices, want 6", len(dug))
	}
}

func TestCarveV(t *testing.T) {
	m := gamemap.New(1, 20, 20, "test")
	carveV(m, 12, 4, 7) // reversed bounds

	if !allFloorCol(m, 4, 12, 7) {
		t.Error("carveV(12,4,7) should carve floor tiles from y=4 to y=12 at x=7")
	}
	if m.IsWalkable(7, 3) || m.IsWalkable(7, 13) {
		t.Error("tiles outside the segment should remain wall")
	}
}

func TestCarveReportsOnlyNewFloor(t *testing.T) {
	m := gamemap.New(1, 20, 20, "test")
	carveH(m, 2, 6, 3)
	dug := carveV(m, 1, 5, 4)
	for _, idx := range dug {
		if idx == m.Idx(4, 3) {
			t.Error("an already carved tile should not be reported again")
		}
	}
	if len(dug) != 4 {
		t.Errorf("carveV returned %d indices, want 4", len(dug))
	}
}

func TestCarveNeverTouchesFirstTile(t *testing.T) {
	m := gamemap.New(1, 10, 10, "test")
	carveH(m, 0, 5, 0)
	if m.Tiles[0] != gamemap.TileWall {
		t.Error("index 0 should never be carved")
	}
	if m.At(1, 0) != gamemap.TileFloor {
		t.Error("index 1 should be carved")
	}
}

func TestDrawCorridor(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 int
	}{
		{"right-down", 2, 2, 10, 8},
		{"left-up", 15, 12, 3, 1},
		{"same tile", 5, 5, 5, 5},
		{"vertical", 4, 2, 4, 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := gamemap.New(1, 20, 20, "test")
			steps := drawCorridor(m, tt.x1, tt.y1, tt.x2, tt.y2)

			want := abs(tt.x2-tt.x1) + abs(tt.y2-tt.y1) + 1
			if len(steps) != want {
				t.Fatalf("len(steps) = %d, want %d", len(steps), want)
			}
			if steps[0] != m.Idx(tt.x1, tt.y1) {
				t.Error("corridor should start at the first point")
			}
			if steps[len(steps)-1] != m.Idx(tt.x2, tt.y2) {
				t.Error("corridor should end at the second point")
			}
			for _, idx := range steps {
				if m.Tiles[idx] != gamemap.TileFloor {
					t.Errorf("tile %d on the corridor is %v, want floor", idx, m.Tiles[idx])
				}
			}
		})
	}
}
