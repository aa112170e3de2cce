package render

import (
	"dungeon-mapgen/assets"
	"dungeon-mapgen/internal/gamemap"
	"dungeon-mapgen/internal/spawn"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// HUDRows is the number of screen rows reserved below the map.
const HUDRows = 4

// Frame is one picture of a level: a map snapshot plus optional overlays.
type Frame struct {
	Map    *gamemap.Map
	Spawns []spawn.Entry
	Start  *gamemap.Position
	// FOV draws only tiles the map marks Visible or Revealed, and hides
	// spawns outside Visible.
	FOV bool
}

// Renderer draws frames onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(0, 0, w, max(h-HUDRows, 1)),
	}
}

// Resize re-reads the screen size, keeping the camera's offset.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.ViewWidth = w
	r.camera.ViewHeight = max(h-HUDRows, 1)
}

// CenterOn recenters the camera on world position (x, y).
func (r *Renderer) CenterOn(x, y int) { r.camera.Center(x, y) }

// Pan scrolls the view by (dx, dy) tiles.
func (r *Renderer) Pan(dx, dy int) { r.camera.Pan(dx, dy) }

// Camera exposes the renderer's camera.
func (r *Renderer) Camera() *Camera { return r.camera }

// DrawFrame clears the screen and renders tiles, spawns and the start marker.
func (r *Renderer) DrawFrame(f Frame) {
	r.screen.Clear()
	if f.Map == nil {
		return
	}
	r.camera.Clamp(f.Map.Width, f.Map.Height)
	r.drawMap(f)
	r.drawSpawns(f)
	if f.Start != nil && r.shown(f, f.Map.Idx(f.Start.X, f.Start.Y)) {
		r.putWorld(f.Start.X, f.Start.Y, assets.GlyphStart)
	}
}

func (r *Renderer) drawMap(f Frame) {
	m := f.Map
	palette := assets.PaletteFor(m.Name)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			idx := m.Idx(x, y)
			lit := true
			if f.FOV {
				switch {
				case m.Visible[idx]:
				case m.Revealed[idx]:
					lit = false
				default:
					continue
				}
			}
			r.putWorld(x, y, TileGlyph(palette, m.Tiles[idx], lit))
		}
	}
}

func (r *Renderer) drawSpawns(f Frame) {
	for _, s := range f.Spawns {
		if !f.Map.ValidIdx(s.Idx) || (f.FOV && !f.Map.Visible[s.Idx]) {
			continue
		}
		x, y := f.Map.XY(s.Idx)
		r.putWorld(x, y, assets.SpawnGlyph(s.Name))
	}
}

func (r *Renderer) shown(f Frame, idx int) bool {
	return !f.FOV || f.Map.Visible[idx]
}

// TileGlyph picks the glyph for a tile. Unlit tiles are remembered but not
// in view.
func TileGlyph(p assets.Palette, t gamemap.TileType, lit bool) string {
	if !lit {
		if t.Opaque() {
			return p.DimWall
		}
		return p.DimFloor
	}
	if g, ok := assets.TileGlyphs[t]; ok {
		return g
	}
	if t == gamemap.TileWall {
		return p.Wall
	}
	return p.Floor
}

func (r *Renderer) putWorld(x, y int, glyph string) {
	sx, sy, onScreen := r.camera.WorldToScreen(x, y)
	if !onScreen {
		return
	}
	r.putGlyph(sx, sy, glyph, styleMap)
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, mainc, combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		// Fill the second column to avoid rendering artifacts.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
