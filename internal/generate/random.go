package generate

import "dungeon-mapgen/internal/rng"

const randomName = "New Map"

// RandomBuilder assembles a chain from randomly chosen stages: either a
// room layout with room-aware stages or an open layout with area-based
// stages.
func RandomBuilder(depth, width, height int, r *rng.Rng, opts ...Option) *BuilderChain {
	c := NewBuilderChain(depth, width, height, randomName, r, opts...)
	if r.RollDice(1, 2) == 1 {
		randomRoomBuilder(c, r)
	} else {
		randomShapeBuilder(c, r)
	}
	return c
}

func randomRoomBuilder(c *BuilderChain, r *rng.Rng) {
	interior := false
	switch r.RollDice(1, 3) {
	case 1:
		c.StartWith(SimpleMapBuilder{})
	case 2:
		c.StartWith(&BspDungeonBuilder{})
	default:
		c.StartWith(&BspInteriorBuilder{})
		interior = true
	}

	// Interior layouts come with their rooms drawn and joined already.
	if !interior {
		sorts := [...]RoomSort{SortLeftmost, SortRightmost, SortTopmost, SortBottommost, SortCentral}
		c.With(RoomSorter{Sort: sorts[r.RollDice(1, len(sorts))-1]})
		c.With(RoomDrawer{})

		if r.RollDice(1, 2) == 1 {
			c.With(DoglegCorridors{})
		} else {
			c.With(BspCorridors{})
		}
		if r.RollDice(1, 2) == 1 {
			c.With(CorridorSpawner{})
		}

		switch r.RollDice(1, 6) {
		case 1:
			c.With(RoomExploder{})
		case 2:
			c.With(RoomCornerRounder{})
		}
	}

	if r.RollDice(1, 2) == 1 {
		c.With(RoomBasedStartingPosition{})
	} else {
		x, y := randomAnchor(r)
		c.With(AreaStartingPosition{X: x, Y: y})
	}
	if r.RollDice(1, 2) == 1 {
		c.With(RoomBasedStairs{})
	} else {
		c.With(DistantExit{})
	}
	if r.RollDice(1, 2) == 1 {
		c.With(RoomBasedSpawner{})
	} else {
		c.With(VoronoiSpawning{})
	}
}

func randomShapeBuilder(c *BuilderChain, r *rng.Rng) {
	switch r.RollDice(1, 4) {
	case 1:
		c.StartWith(CellularAutomataBuilder{})
	case 2:
		c.StartWith(DLAWalkInwards())
	case 3:
		c.StartWith(DLAWalkOutwards())
	default:
		c.StartWith(DLAInsectoid())
	}
	c.With(AreaStartingPosition{X: XCentre, Y: YMiddle})
	c.With(CullUnreachable{})
	x, y := randomAnchor(r)
	c.With(AreaStartingPosition{X: x, Y: y})
	c.With(VoronoiSpawning{})
	c.With(DistantExit{})
}

func randomAnchor(r *rng.Rng) (XAnchor, YAnchor) {
	xs := [...]XAnchor{XLeft, XCentre, XRight}
	ys := [...]YAnchor{YTop, YMiddle, YBottom}
	return xs[r.RollDice(1, 3)-1], ys[r.RollDice(1, 3)-1]
}
