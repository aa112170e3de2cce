package generate

import (
	"math"
	"slices"

	"dungeon-mapgen/internal/gamemap"
)

// RoomSort orders rooms for the stages that treat the first or last room
// specially.
type RoomSort uint8

const (
	SortLeftmost RoomSort = iota
	SortRightmost
	SortTopmost
	SortBottommost
	SortCentral
)

// RoomSorter reorders BuildData.Rooms. Equal rooms keep their relative order.
type RoomSorter struct {
	Sort RoomSort
}

// BuildMeta implements MetaMapBuilder.
func (s RoomSorter) BuildMeta(b *BuildData) error {
	rooms, err := b.RequireRooms("RoomSorter")
	if err != nil {
		return err
	}
	cx, cy := b.Map.Width/2, b.Map.Height/2
	centreDist := func(r gamemap.Rect) float64 {
		x, y := r.Center()
		return math.Hypot(float64(x-cx), float64(y-cy))
	}
	slices.SortStableFunc(rooms, func(a, c gamemap.Rect) int {
		switch s.Sort {
		case SortRightmost:
			return c.X2 - a.X2
		case SortTopmost:
			return a.Y1 - c.Y1
		case SortBottommost:
			return c.Y2 - a.Y2
		case SortCentral:
			da, dc := centreDist(a), centreDist(c)
			switch {
			case da < dc:
				return -1
			case da > dc:
				return 1
			}
			return 0
		}
		return a.X1 - c.X1
	})
	return nil
}

// RoomBasedStartingPosition starts the player in the centre of the first room.
type RoomBasedStartingPosition struct{}

// BuildMeta implements MetaMapBuilder.
func (RoomBasedStartingPosition) BuildMeta(b *BuildData) error {
	rooms, err := b.RequireRooms("RoomBasedStartingPosition")
	if err != nil {
		return err
	}
	if len(rooms) == 0 {
		return stageError("RoomBasedStartingPosition", KindMissingRooms, "no rooms were placed")
	}
	x, y := rooms[0].Center()
	b.StartingPosition = &gamemap.Position{X: x, Y: y}
	return nil
}

// RoomBasedStairs puts the down stairs in the centre of the last room.
type RoomBasedStairs struct{}

// BuildMeta implements MetaMapBuilder.
func (RoomBasedStairs) BuildMeta(b *BuildData) error {
	rooms, err := b.RequireRooms("RoomBasedStairs")
	if err != nil {
		return err
	}
	if len(rooms) == 0 {
		return stageError("RoomBasedStairs", KindMissingRooms, "no rooms were placed")
	}
	x, y := rooms[len(rooms)-1].Center()
	b.Map.Set(x, y, gamemap.TileDownStairs)
	b.TakeSnapshot()
	return nil
}

// RoomBasedSpawner populates every room except the first, where the player
// starts.
type RoomBasedSpawner struct{}

// BuildMeta implements MetaMapBuilder.
func (RoomBasedSpawner) BuildMeta(b *BuildData) error {
	rooms, err := b.RequireRooms("RoomBasedSpawner")
	if err != nil {
		return err
	}
	for i, room := range rooms {
		if i == 0 {
			continue
		}
		b.SpawnRegion(roomFloor(b.Map, room))
	}
	return nil
}

// roomFloor lists the carved floor tiles inside a room.
func roomFloor(m *gamemap.Map, room gamemap.Rect) []int {
	var area []int
	for y := room.Y1 + 1; y <= room.Y2; y++ {
		for x := room.X1 + 1; x <= room.X2; x++ {
			if m.InBounds(x, y) && m.At(x, y) == gamemap.TileFloor {
				area = append(area, m.Idx(x, y))
			}
		}
	}
	return area
}
