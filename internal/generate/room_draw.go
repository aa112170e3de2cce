package generate

import (
	"math"

	"dungeon-mapgen/internal/gamemap"
)

// RoomDrawer carves every room into the map, one in four as a circle and
// the rest as rectangles.
type RoomDrawer struct{}

// BuildMeta implements MetaMapBuilder.
func (RoomDrawer) BuildMeta(b *BuildData) error {
	rooms, err := b.RequireRooms("RoomDrawer")
	if err != nil {
		return err
	}
	for _, room := range rooms {
		if b.Rng.RollDice(1, 4) == 1 {
			drawCircle(b.Map, room)
		} else {
			drawRectangle(b.Map, room)
		}
		b.TakeSnapshot()
	}
	return nil
}

// carvable excludes the first and last tile of the map, which rooms never
// claim.
func carvable(m *gamemap.Map, x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	idx := m.Idx(x, y)
	return idx > 0 && idx < len(m.Tiles)-1
}

func drawRectangle(m *gamemap.Map, room gamemap.Rect) {
	for y := room.Y1 + 1; y <= room.Y2; y++ {
		for x := room.X1 + 1; x <= room.X2; x++ {
			if carvable(m, x, y) {
				m.Set(x, y, gamemap.TileFloor)
			}
		}
	}
}

func drawCircle(m *gamemap.Map, room gamemap.Rect) {
	radius := float64(min(room.Width(), room.Height())) / 2
	cx, cy := room.Center()
	for y := room.Y1; y <= room.Y2; y++ {
		for x := room.X1; x <= room.X2; x++ {
			dist := math.Hypot(float64(x-cx), float64(y-cy))
			if dist <= radius && carvable(m, x, y) {
				m.Set(x, y, gamemap.TileFloor)
			}
		}
	}
}
