package generate

import "dungeon-mapgen/internal/gamemap"

const interiorMinRoomSize = 8

// BspInteriorBuilder splits the whole map into adjoining rooms, like the
// floor plan of a building, and joins consecutive rooms with corridors.
type BspInteriorBuilder struct {
	rects []gamemap.Rect
}

// BuildInitial implements InitialMapBuilder.
func (bi *BspInteriorBuilder) BuildInitial(b *BuildData) error {
	m := b.Map
	bi.rects = bi.rects[:0]
	first := gamemap.NewRect(1, 1, m.Width-2, m.Height-2)
	bi.rects = append(bi.rects, first)
	bi.addSubrects(b, first)

	rooms := make([]gamemap.Rect, len(bi.rects))
	copy(rooms, bi.rects)
	for _, room := range rooms {
		room.Each(func(x, y int) {
			idx := m.Idx(x, y)
			if idx > 0 && idx < len(m.Tiles)-1 {
				m.Tiles[idx] = gamemap.TileFloor
			}
		})
		b.TakeSnapshot()
	}

	corridors := linkRandomPoints(b, rooms)
	b.setRooms(rooms)
	b.setCorridors(corridors)
	return nil
}

// addSubrects replaces the most recent partition with its two halves,
// splitting further while a half is still wider (or taller) than the
// minimum room size.
func (bi *BspInteriorBuilder) addSubrects(b *BuildData, rect gamemap.Rect) {
	if len(bi.rects) > 0 {
		bi.rects = bi.rects[:len(bi.rects)-1]
	}
	w, h := rect.Width(), rect.Height()
	halfW, halfH := w/2, h/2

	if b.Rng.RollDice(1, 4) <= 2 {
		left := gamemap.NewRect(rect.X1, rect.Y1, halfW-1, h)
		bi.rects = append(bi.rects, left)
		if halfW > interiorMinRoomSize {
			bi.addSubrects(b, left)
		}
		right := gamemap.NewRect(rect.X1+halfW, rect.Y1, halfW, h)
		bi.rects = append(bi.rects, right)
		if halfW > interiorMinRoomSize {
			bi.addSubrects(b, right)
		}
		return
	}
	top := gamemap.NewRect(rect.X1, rect.Y1, w, halfH-1)
	bi.rects = append(bi.rects, top)
	if halfH > interiorMinRoomSize {
		bi.addSubrects(b, top)
	}
	bottom := gamemap.NewRect(rect.X1, rect.Y1+halfH, w, halfH)
	bi.rects = append(bi.rects, bottom)
	if halfH > interiorMinRoomSize {
		bi.addSubrects(b, bottom)
	}
}
