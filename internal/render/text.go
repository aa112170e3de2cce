package render

import (
	"strings"

	"dungeon-mapgen/assets"
)

// Text renders f as rows of glyphs, one line per map row. FOV is ignored.
func Text(f Frame) string {
	m := f.Map
	palette := assets.PaletteFor(m.Name)
	cells := make([]string, len(m.Tiles))
	for i, t := range m.Tiles {
		cells[i] = TileGlyph(palette, t, true)
	}
	for _, s := range f.Spawns {
		if m.ValidIdx(s.Idx) {
			cells[s.Idx] = assets.SpawnGlyph(s.Name)
		}
	}
	if f.Start != nil && m.InBounds(f.Start.X, f.Start.Y) {
		cells[m.Idx(f.Start.X, f.Start.Y)] = assets.GlyphStart
	}

	var b strings.Builder
	for y := 0; y < m.Height; y++ {
		row := cells[y*m.Width : (y+1)*m.Width]
		b.WriteString(strings.Join(row, ""))
		b.WriteByte('\n')
	}
	return b.String()
}
