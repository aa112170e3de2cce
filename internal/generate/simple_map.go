package generate

import "dungeon-mapgen/internal/gamemap"

const (
	simpleMaxRooms    = 30
	simpleMinRoomSize = 6
	simpleMaxRoomSize = 10
)

// SimpleMapBuilder scatters non-overlapping rectangles. It only records
// rooms; a RoomDrawer carves them.
type SimpleMapBuilder struct{}

// BuildInitial implements InitialMapBuilder.
func (SimpleMapBuilder) BuildInitial(b *BuildData) error {
	rooms := []gamemap.Rect{}
	for range simpleMaxRooms {
		w := b.Rng.Range(simpleMinRoomSize, simpleMaxRoomSize)
		h := b.Rng.Range(simpleMinRoomSize, simpleMaxRoomSize)
		x := b.Rng.RollDice(1, b.Map.Width-w-1) - 1
		y := b.Rng.RollDice(1, b.Map.Height-h-1) - 1
		candidate := gamemap.NewRect(x, y, w, h)
		ok := true
		for _, other := range rooms {
			if candidate.Intersects(other) {
				ok = false
				break
			}
		}
		if ok {
			rooms = append(rooms, candidate)
		}
	}
	b.setRooms(rooms)
	return nil
}
