package generate

import "dungeon-mapgen/internal/gamemap"

// carveH digs a horizontal tunnel on row y and returns the indices it turned
// into floor. The outermost tiles of the map are never touched.
func carveH(m *gamemap.Map, x1, x2, y int) []int {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	var dug []int
	for x := x1; x <= x2; x++ {
		idx := m.Idx(x, y)
		if idx > 0 && idx < len(m.Tiles) && m.Tiles[idx] != gamemap.TileFloor {
			dug = append(dug, idx)
			m.Tiles[idx] = gamemap.TileFloor
		}
	}
	return dug
}

// carveV digs a vertical tunnel on column x.
func carveV(m *gamemap.Map, y1, y2, x int) []int {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	var dug []int
	for y := y1; y <= y2; y++ {
		idx := m.Idx(x, y)
		if idx > 0 && idx < len(m.Tiles) && m.Tiles[idx] != gamemap.TileFloor {
			dug = append(dug, idx)
			m.Tiles[idx] = gamemap.TileFloor
		}
	}
	return dug
}

// drawCorridor walks from (x1,y1) to (x2,y2), closing the x gap first and
// then the y gap, and paints every tile it steps on. The returned list holds
// every traversed index, the starting tile included.
func drawCorridor(m *gamemap.Map, x1, y1, x2, y2 int) []int {
	x, y := x1, y1
	steps := []int{m.Idx(x, y)}
	m.Set(x, y, gamemap.TileFloor)
	for x != x2 || y != y2 {
		switch {
		case x < x2:
			x++
		case x > x2:
			x--
		case y < y2:
			y++
		case y > y2:
			y--
		}
		idx := m.Idx(x, y)
		steps = append(steps, idx)
		m.Tiles[idx] = gamemap.TileFloor
	}
	return steps
}
