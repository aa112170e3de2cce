package gamemap

import "github.com/zyedidia/generic/mapset"

// Rect is an axis-aligned rectangle used for rooms. X2/Y2 are X1+w/Y1+h.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// NewRect builds a rectangle from its top-left corner and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Intersects reports whether r overlaps other (inclusive edges).
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}

func (r Rect) Width() int  { return r.X2 - r.X1 }
func (r Rect) Height() int { return r.Y2 - r.Y1 }
func (r Rect) Area() int   { return r.Width() * r.Height() }

// Each calls fn for every cell in [X1,X2) x [Y1,Y2), row by row.
func (r Rect) Each(fn func(x, y int)) {
	for y := r.Y1; y < r.Y2; y++ {
		for x := r.X1; x < r.X2; x++ {
			fn(x, y)
		}
	}
}

// Position is a tile coordinate.
type Position struct {
	X, Y int
}

// Map is the generated grid for one level. Tiles are stored row-major:
// idx = y*Width + x.
type Map struct {
	Name          string
	Width, Height int
	Depth         int
	Tiles         []TileType
	Revealed      []bool
	Visible       []bool
	Blocked       []bool
	Light         []float64
	Bloodstains   mapset.Set[int]
	Outdoors      bool
}

// New creates a Map filled with walls.
func New(depth, width, height int, name string) *Map {
	n := width * height
	m := &Map{
		Name:        name,
		Width:       width,
		Height:      height,
		Depth:       depth,
		Tiles:       make([]TileType, n),
		Revealed:    make([]bool, n),
		Visible:     make([]bool, n),
		Blocked:     make([]bool, n),
		Light:       make([]float64, n),
		Bloodstains: mapset.New[int](),
		Outdoors:    true,
	}
	for i := range m.Tiles {
		m.Tiles[i] = TileWall
	}
	return m
}

// Idx converts (x, y) to a linear tile index.
func (m *Map) Idx(x, y int) int { return y*m.Width + x }

// XY converts a linear tile index back to (x, y).
func (m *Map) XY(idx int) (int, int) { return idx % m.Width, idx / m.Width }

// InBounds reports whether (x, y) is within the map boundaries.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// ValidIdx reports whether idx addresses a tile of this map.
func (m *Map) ValidIdx(idx int) bool { return idx >= 0 && idx < len(m.Tiles) }

// At returns the tile at (x, y). Panics if out of bounds.
func (m *Map) At(x, y int) TileType { return m.Tiles[m.Idx(x, y)] }

// Set replaces the tile at (x, y).
func (m *Map) Set(x, y int, t TileType) { m.Tiles[m.Idx(x, y)] = t }

// IsWalkable returns true when (x, y) is in bounds and walkable.
func (m *Map) IsWalkable(x, y int) bool {
	return m.InBounds(x, y) && m.At(x, y).Walkable()
}

// IsTransparent returns true when (x, y) is in bounds and does not block sight.
func (m *Map) IsTransparent(x, y int) bool {
	return m.InBounds(x, y) && !m.At(x, y).Opaque()
}

// PopulateBlocked recomputes Blocked from tile walkability.
func (m *Map) PopulateBlocked() {
	for i, t := range m.Tiles {
		m.Blocked[i] = !t.Walkable()
	}
}

// WalkableCount returns the number of walkable tiles.
func (m *Map) WalkableCount() int {
	n := 0
	for _, t := range m.Tiles {
		if t.Walkable() {
			n++
		}
	}
	return n
}

// RevealAll marks every tile revealed and visible.
func (m *Map) RevealAll() {
	for i := range m.Tiles {
		m.Revealed[i] = true
		m.Visible[i] = true
	}
}

// Clone returns a deep copy of the map.
func (m *Map) Clone() *Map {
	c := *m
	c.Tiles = append([]TileType(nil), m.Tiles...)
	c.Revealed = append([]bool(nil), m.Revealed...)
	c.Visible = append([]bool(nil), m.Visible...)
	c.Blocked = append([]bool(nil), m.Blocked...)
	c.Light = append([]float64(nil), m.Light...)
	c.Bloodstains = mapset.New[int]()
	m.Bloodstains.Each(func(idx int) { c.Bloodstains.Put(idx) })
	return &c
}
