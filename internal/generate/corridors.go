package generate

import "dungeon-mapgen/internal/gamemap"

// DoglegCorridors joins consecutive rooms centre to centre with an L-shaped
// tunnel, choosing at random which leg comes first.
type DoglegCorridors struct{}

// BuildMeta implements MetaMapBuilder.
func (DoglegCorridors) BuildMeta(b *BuildData) error {
	rooms, err := b.RequireRooms("DoglegCorridors")
	if err != nil {
		return err
	}
	corridors := [][]int{}
	for i := 1; i < len(rooms); i++ {
		nx, ny := rooms[i].Center()
		px, py := rooms[i-1].Center()
		var c []int
		if b.Rng.Range(0, 2) == 1 {
			c = append(carveH(b.Map, px, nx, py), carveV(b.Map, py, ny, nx)...)
		} else {
			c = append(carveV(b.Map, py, ny, px), carveH(b.Map, px, nx, ny)...)
		}
		corridors = append(corridors, c)
		b.TakeSnapshot()
	}
	b.setCorridors(corridors)
	return nil
}

// BspCorridors joins consecutive rooms from a random interior point of one
// to a random interior point of the next.
type BspCorridors struct{}

// BuildMeta implements MetaMapBuilder.
func (BspCorridors) BuildMeta(b *BuildData) error {
	rooms, err := b.RequireRooms("BspCorridors")
	if err != nil {
		return err
	}
	corridors := linkRandomPoints(b, rooms)
	b.setCorridors(corridors)
	return nil
}

// linkRandomPoints digs a corridor from a random point of each room to a
// random point of the next and returns every corridor's traversed tiles.
func linkRandomPoints(b *BuildData, rooms []gamemap.Rect) [][]int {
	corridors := [][]int{}
	for i := 0; i+1 < len(rooms); i++ {
		room, next := rooms[i], rooms[i+1]
		sx := room.X1 + b.Rng.RollDice(1, abs(room.X1-room.X2)) - 1
		sy := room.Y1 + b.Rng.RollDice(1, abs(room.Y1-room.Y2)) - 1
		ex := next.X1 + b.Rng.RollDice(1, abs(next.X1-next.X2)) - 1
		ey := next.Y1 + b.Rng.RollDice(1, abs(next.Y1-next.Y2)) - 1
		corridors = append(corridors, drawCorridor(b.Map, sx, sy, ex, ey))
		b.TakeSnapshot()
	}
	return corridors
}

// CorridorSpawner treats each corridor as a spawn region.
type CorridorSpawner struct{}

// BuildMeta implements MetaMapBuilder.
func (CorridorSpawner) BuildMeta(b *BuildData) error {
	corridors, err := b.RequireCorridors("CorridorSpawner")
	if err != nil {
		return err
	}
	for _, c := range corridors {
		b.SpawnRegion(c)
	}
	return nil
}
