package gamemap

// Octant transform matrices for recursive shadowcasting:
//
//	worldX = cx + dx*xx + dy*xy
//	worldY = cy + dx*yx + dy*yy
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// ComputeFOV clears Visible and recomputes it from (x, y). Every tile that
// becomes visible is also marked Revealed.
func (m *Map) ComputeFOV(x, y, radius int) {
	for i := range m.Visible {
		m.Visible[i] = false
	}
	if !m.InBounds(x, y) {
		return
	}
	m.light(x, y)
	for _, o := range octants {
		m.castLight(x, y, 1, 1.0, 0.0, radius, o[0], o[1], o[2], o[3])
	}
}

func (m *Map) light(x, y int) {
	idx := m.Idx(x, y)
	m.Visible[idx] = true
	m.Revealed[idx] = true
}

// castLight scans one octant row by row, recursing past each opaque run.
func (m *Map) castLight(cx, cy, row int, start, end float64, radius, xx, xy, yx, yy int) {
	if start < end {
		return
	}
	radiusSq := radius * radius
	newStart := start

	for j := row; j <= radius; j++ {
		dy := -j
		blocked := false

		for dx := -j; dx <= 0; dx++ {
			wx := cx + dx*xx + dy*xy
			wy := cy + dx*yx + dy*yy

			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)
			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			if dx*dx+dy*dy < radiusSq && m.InBounds(wx, wy) {
				m.light(wx, wy)
			}

			opaque := !m.IsTransparent(wx, wy)
			if blocked {
				if opaque {
					newStart = rSlope
				} else {
					blocked = false
					start = newStart
				}
			} else if opaque && j < radius {
				blocked = true
				m.castLight(cx, cy, j+1, start, lSlope, radius, xx, xy, yx, yy)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
