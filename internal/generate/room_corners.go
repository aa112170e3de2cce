package generate

import "dungeon-mapgen/internal/gamemap"

// RoomCornerRounder fills in the four inner corners of each room that are
// boxed in by exactly two walls.
type RoomCornerRounder struct{}

// BuildMeta implements MetaMapBuilder.
func (RoomCornerRounder) BuildMeta(b *BuildData) error {
	rooms, err := b.RequireRooms("RoomCornerRounder")
	if err != nil {
		return err
	}
	for _, room := range rooms {
		fillIfCorner(b.Map, room.X1+1, room.Y1+1)
		fillIfCorner(b.Map, room.X2, room.Y1+1)
		fillIfCorner(b.Map, room.X1+1, room.Y2)
		fillIfCorner(b.Map, room.X2, room.Y2)
		b.TakeSnapshot()
	}
	return nil
}

func fillIfCorner(m *gamemap.Map, x, y int) {
	if !m.InBounds(x, y) {
		return
	}
	walls := 0
	if x > 0 && m.At(x-1, y) == gamemap.TileWall {
		walls++
	}
	if y > 0 && m.At(x, y-1) == gamemap.TileWall {
		walls++
	}
	if x < m.Width-2 && m.At(x+1, y) == gamemap.TileWall {
		walls++
	}
	if y < m.Height-2 && m.At(x, y+1) == gamemap.TileWall {
		walls++
	}
	if walls == 2 {
		m.Set(x, y, gamemap.TileWall)
	}
}
