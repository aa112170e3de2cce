package generate

import "dungeon-mapgen/internal/gamemap"

// DLAAlgorithm selects how diggers travel in diffusion-limited aggregation.
type DLAAlgorithm uint8

const (
	// WalkInwards starts diggers at random spots and stops them on the first
	// floor tile they touch.
	WalkInwards DLAAlgorithm = iota
	// WalkOutwards starts diggers at the centre and stops them at the first
	// wall.
	WalkOutwards
)

// Symmetry mirrors each painted tile around the map centre.
type Symmetry uint8

const (
	SymmetryNone Symmetry = iota
	SymmetryHorizontal
	SymmetryVertical
	SymmetryBoth
)

// DLABuilder grows an organic cave by repeatedly sending a random walker
// until it touches the existing structure and painting where it stopped.
type DLABuilder struct {
	Algorithm    DLAAlgorithm
	BrushSize    int
	Symmetry     Symmetry
	FloorPercent float64
}

// DLAWalkInwards is a thin, branching cave.
func DLAWalkInwards() *DLABuilder {
	return &DLABuilder{Algorithm: WalkInwards, BrushSize: 1, FloorPercent: 0.25}
}

// DLAWalkOutwards is a chunky cave grown from the centre.
func DLAWalkOutwards() *DLABuilder {
	return &DLABuilder{Algorithm: WalkOutwards, BrushSize: 2, FloorPercent: 0.25}
}

// DLAInsectoid is mirrored left to right, which reads as a hive.
func DLAInsectoid() *DLABuilder {
	return &DLABuilder{Algorithm: WalkInwards, BrushSize: 2, Symmetry: SymmetryHorizontal, FloorPercent: 0.25}
}

// BuildInitial implements InitialMapBuilder.
func (d *DLABuilder) BuildInitial(b *BuildData) error {
	m := b.Map
	cx, cy := m.Width/2, m.Height/2
	b.TakeSnapshot()
	for _, p := range [5][2]int{{0, 0}, {-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		m.Set(cx+p[0], cy+p[1], gamemap.TileFloor)
	}

	desired := int(d.FloorPercent * float64(len(m.Tiles)))
	maxWalk := len(m.Tiles) * 16
	floors := countTiles(m, gamemap.TileFloor)
	for attempt := 0; floors < desired && attempt < len(m.Tiles)*4; attempt++ {
		var x, y int
		var ok bool
		switch d.Algorithm {
		case WalkOutwards:
			x, y, ok = d.walkOutwards(b, cx, cy, maxWalk)
		default:
			x, y, ok = d.walkInwards(b, maxWalk)
		}
		if !ok {
			continue
		}
		d.paint(m, x, y)
		b.TakeSnapshot()
		floors = countTiles(m, gamemap.TileFloor)
	}
	return nil
}

// walkInwards returns the last wall tile a random walker crossed before
// reaching floor.
func (d *DLABuilder) walkInwards(b *BuildData, maxSteps int) (int, int, bool) {
	m := b.Map
	x := b.Rng.RollDice(1, m.Width-3) + 1
	y := b.Rng.RollDice(1, m.Height-3) + 1
	px, py := x, y
	for steps := 0; m.At(x, y) == gamemap.TileWall; steps++ {
		if steps == maxSteps {
			return 0, 0, false
		}
		px, py = x, y
		x, y = stagger(b, x, y)
	}
	return px, py, true
}

// walkOutwards returns the first wall tile a walker from the centre reaches.
func (d *DLABuilder) walkOutwards(b *BuildData, x, y, maxSteps int) (int, int, bool) {
	m := b.Map
	for steps := 0; m.At(x, y) == gamemap.TileFloor; steps++ {
		if steps == maxSteps {
			return 0, 0, false
		}
		x, y = stagger(b, x, y)
	}
	return x, y, true
}

// stagger moves one step in a random cardinal direction, staying two tiles
// clear of the edge.
func stagger(b *BuildData, x, y int) (int, int) {
	m := b.Map
	switch b.Rng.RollDice(1, 4) {
	case 1:
		if x > 2 {
			x--
		}
	case 2:
		if x < m.Width-2 {
			x++
		}
	case 3:
		if y > 2 {
			y--
		}
	default:
		if y < m.Height-2 {
			y++
		}
	}
	return x, y
}

func (d *DLABuilder) paint(m *gamemap.Map, x, y int) {
	cx, cy := m.Width/2, m.Height/2
	dx, dy := abs(cx-x), abs(cy-y)
	switch d.Symmetry {
	case SymmetryHorizontal:
		d.brush(m, cx+dx, y)
		d.brush(m, cx-dx, y)
	case SymmetryVertical:
		d.brush(m, x, cy+dy)
		d.brush(m, x, cy-dy)
	case SymmetryBoth:
		d.brush(m, cx+dx, cy+dy)
		d.brush(m, cx-dx, cy+dy)
		d.brush(m, cx+dx, cy-dy)
		d.brush(m, cx-dx, cy-dy)
	default:
		d.brush(m, x, y)
	}
}

func (d *DLABuilder) brush(m *gamemap.Map, x, y int) {
	if d.BrushSize <= 1 {
		if m.InBounds(x, y) {
			m.Set(x, y, gamemap.TileFloor)
		}
		return
	}
	half := d.BrushSize / 2
	for by := y - half; by < y+half; by++ {
		for bx := x - half; bx < x+half; bx++ {
			if bx > 1 && bx < m.Width-1 && by > 1 && by < m.Height-1 {
				m.Set(bx, by, gamemap.TileFloor)
			}
		}
	}
}

func countTiles(m *gamemap.Map, t gamemap.TileType) int {
	n := 0
	for _, tt := range m.Tiles {
		if tt == t {
			n++
		}
	}
	return n
}
