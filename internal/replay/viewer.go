// Package replay steps through the snapshots recorded while a level was
// built.
package replay

import (
	"fmt"

	"dungeon-mapgen/assets"
	"dungeon-mapgen/internal/gamemap"
	"dungeon-mapgen/internal/generate"
	"dungeon-mapgen/internal/render"
)

// Action is one viewer command.
type Action int

const (
	ActionNone Action = iota
	ActionPrev
	ActionNext
	ActionFirst
	ActionLast
	ActionTogglePlay
	ActionToggleFOV
	ActionToggleSpawns
	ActionNewLevel
	ActionPanLeft
	ActionPanRight
	ActionPanUp
	ActionPanDown
	ActionQuit
)

const helpLine = "←/→ step  home/end jump  space play  f fov  e spawns  wasd pan  n new  q quit"

// Viewer holds the replay position for one level. It does no I/O.
type Viewer struct {
	level     *generate.Level
	frames    []*gamemap.Map
	frame     int
	playing   bool
	fov       bool
	spawns    bool
	fovRadius int
}

// NewViewer opens a level at its first frame.
func NewViewer(level *generate.Level, fovRadius int) *Viewer {
	v := &Viewer{fovRadius: fovRadius, spawns: true}
	v.Load(level)
	return v
}

// Load swaps in a new level and rewinds.
func (v *Viewer) Load(level *generate.Level) {
	v.level = level
	v.frames = append(v.frames[:0], level.History...)
	if n := len(v.frames); n == 0 || !sameTiles(v.frames[n-1], level.Map) {
		v.frames = append(v.frames, level.Map)
	}
	v.frame = 0
	v.playing = len(v.frames) > 1
	v.fov = false
}

// Level returns the level being shown.
func (v *Viewer) Level() *generate.Level { return v.level }

// Frame returns the current frame index and the frame count.
func (v *Viewer) Frame() (int, int) { return v.frame, len(v.frames) }

// Playing reports whether autoplay is on.
func (v *Viewer) Playing() bool { return v.playing }

// AtEnd reports whether the final frame is showing.
func (v *Viewer) AtEnd() bool { return v.frame == len(v.frames)-1 }

// Apply runs a stepping or toggle action. Pan, new-level and quit actions
// belong to the caller and are ignored here.
func (v *Viewer) Apply(a Action) {
	last := len(v.frames) - 1
	switch a {
	case ActionPrev:
		v.playing = false
		v.frame = max(v.frame-1, 0)
	case ActionNext:
		v.playing = false
		v.frame = min(v.frame+1, last)
	case ActionFirst:
		v.playing = false
		v.frame = 0
	case ActionLast:
		v.playing = false
		v.frame = last
	case ActionTogglePlay:
		if !v.playing && v.frame == last {
			v.frame = 0
		}
		v.playing = !v.playing
	case ActionToggleFOV:
		v.fov = !v.fov && v.level.Start != nil
	case ActionToggleSpawns:
		v.spawns = !v.spawns
	}
}

// Tick advances autoplay by one frame and stops at the end.
func (v *Viewer) Tick() {
	if !v.playing {
		return
	}
	if v.frame < len(v.frames)-1 {
		v.frame++
	}
	if v.frame == len(v.frames)-1 {
		v.playing = false
	}
}

// RenderFrame builds what the renderer should draw. Spawns and the start
// marker only appear on the final frame. With FOV on, the frame is a copy
// lit from the start position.
func (v *Viewer) RenderFrame() render.Frame {
	m := v.frames[v.frame]
	f := render.Frame{Map: m}
	if v.AtEnd() {
		f.Start = v.level.Start
		if v.spawns {
			f.Spawns = v.level.Spawns
		}
	}
	if v.fov && v.level.Start != nil {
		lit := m.Clone()
		clear(lit.Revealed)
		lit.ComputeFOV(v.level.Start.X, v.level.Start.Y, v.fovRadius)
		f.Map = lit
		f.FOV = true
		f.Start = v.level.Start
	}
	return f
}

// Status builds the HUD text.
func (v *Viewer) Status() render.Status {
	l := v.level
	info := fmt.Sprintf("depth %d  seed %d  frame %d/%d", l.Map.Depth, l.Seed, v.frame+1, len(v.frames))
	if l.Attempts > 1 {
		info += fmt.Sprintf("  (attempt %d)", l.Attempts)
	}
	if v.playing {
		info += "  ▶"
	}
	if v.fov {
		info += "  [fov]"
	}
	if v.AtEnd() {
		info += fmt.Sprintf("  rooms %d  spawns %d", len(l.Rooms), len(l.Spawns))
	}
	return render.Status{
		Title: l.Name,
		Info:  info,
		Lore:  assets.LoreFor(l.Name, l.Seed),
		Help:  helpLine,
	}
}

// Focus is the tile the camera should center on.
func (v *Viewer) Focus() (int, int) {
	if s := v.level.Start; s != nil {
		return s.X, s.Y
	}
	return v.level.Map.Width / 2, v.level.Map.Height / 2
}

func sameTiles(a, b *gamemap.Map) bool {
	if len(a.Tiles) != len(b.Tiles) {
		return false
	}
	for i := range a.Tiles {
		if a.Tiles[i] != b.Tiles[i] {
			return false
		}
	}
	return true
}
