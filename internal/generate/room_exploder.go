package generate

import "dungeon-mapgen/internal/gamemap"

const exploderLife = 20

// RoomExploder sends drunken diggers out of each room's centre, roughening
// the room into a cave-like blob.
type RoomExploder struct{}

// BuildMeta implements MetaMapBuilder.
func (RoomExploder) BuildMeta(b *BuildData) error {
	rooms, err := b.RequireRooms("RoomExploder")
	if err != nil {
		return err
	}
	m := b.Map
	for _, room := range rooms {
		sx, sy := room.Center()
		diggers := b.Rng.RollDice(1, 20) - 5
		for range max(diggers, 0) {
			x, y := sx, sy
			dug := false
			for range exploderLife {
				idx := m.Idx(x, y)
				if m.Tiles[idx] == gamemap.TileWall {
					dug = true
				}
				// Mark the trail so the snapshot shows where the digger went.
				m.Tiles[idx] = gamemap.TileDownStairs
				x, y = stagger(b, x, y)
			}
			if dug {
				b.TakeSnapshot()
			}
			for i, t := range m.Tiles {
				if t == gamemap.TileDownStairs {
					m.Tiles[i] = gamemap.TileFloor
				}
			}
		}
	}
	return nil
}
