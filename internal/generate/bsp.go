package generate

import "dungeon-mapgen/internal/gamemap"

const (
	bspIterations = 240
	bspPadding    = 2
	bspMaxRoom    = 20
)

// BspDungeonBuilder recursively quarters the map and tries to fit a room into
// a randomly chosen partition. Only rooms are recorded.
type BspDungeonBuilder struct {
	rects []gamemap.Rect
}

// BuildInitial implements InitialMapBuilder.
func (bb *BspDungeonBuilder) BuildInitial(b *BuildData) error {
	rooms := []gamemap.Rect{}
	bb.rects = bb.rects[:0]
	first := gamemap.NewRect(2, 2, b.Map.Width-5, b.Map.Height-5)
	bb.rects = append(bb.rects, first)
	bb.addSubrects(first)

	for range bspIterations {
		rect := bb.randomRect(b)
		candidate := randomSubRect(b, rect)
		if bspFits(b.Map, candidate, rooms) {
			rooms = append(rooms, candidate)
			bb.addSubrects(rect)
		}
	}
	b.setRooms(rooms)
	return nil
}

// addSubrects queues the four quadrants of rect.
func (bb *BspDungeonBuilder) addSubrects(rect gamemap.Rect) {
	halfW := max(abs(rect.X1-rect.X2)/2, 1)
	halfH := max(abs(rect.Y1-rect.Y2)/2, 1)
	bb.rects = append(bb.rects,
		gamemap.NewRect(rect.X1, rect.Y1, halfW, halfH),
		gamemap.NewRect(rect.X1, rect.Y1+halfH, halfW, halfH),
		gamemap.NewRect(rect.X1+halfW, rect.Y1, halfW, halfH),
		gamemap.NewRect(rect.X1+halfW, rect.Y1+halfH, halfW, halfH),
	)
}

func (bb *BspDungeonBuilder) randomRect(b *BuildData) gamemap.Rect {
	if len(bb.rects) == 1 {
		return bb.rects[0]
	}
	return bb.rects[b.Rng.RollDice(1, len(bb.rects))-1]
}

// randomSubRect picks a room of at least 4x4 somewhere near the partition's
// top-left corner. It may spill past the partition; bspFits decides.
func randomSubRect(b *BuildData, rect gamemap.Rect) gamemap.Rect {
	w := max(3, b.Rng.RollDice(1, min(abs(rect.X1-rect.X2), bspMaxRoom))-1) + 1
	h := max(3, b.Rng.RollDice(1, min(abs(rect.Y1-rect.Y2), bspMaxRoom))-1) + 1
	out := rect
	out.X1 += b.Rng.RollDice(1, 6) - 1
	out.Y1 += b.Rng.RollDice(1, 6) - 1
	out.X2 = out.X1 + w
	out.Y2 = out.Y1 + h
	return out
}

// bspFits reports whether candidate overlaps no accepted room and its
// padded bounds stay inside the map over solid wall. Overlap is tested on
// the unpadded rectangle.
func bspFits(m *gamemap.Map, candidate gamemap.Rect, rooms []gamemap.Rect) bool {
	for _, r := range rooms {
		if r.Intersects(candidate) {
			return false
		}
	}
	for y := candidate.Y1 - bspPadding; y <= candidate.Y2+bspPadding; y++ {
		for x := candidate.X1 - bspPadding; x <= candidate.X2+bspPadding; x++ {
			if x > m.Width-2 || y > m.Height-2 || x < 1 || y < 1 {
				return false
			}
			if m.At(x, y) != gamemap.TileWall {
				return false
			}
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
