package generate

import (
	"dungeon-mapgen/internal/gamemap"
	"dungeon-mapgen/internal/pathing"
)

// XAnchor picks a column relative to the map edges.
type XAnchor uint8

const (
	XLeft XAnchor = iota
	XCentre
	XRight
)

// YAnchor picks a row relative to the map edges.
type YAnchor uint8

const (
	YTop YAnchor = iota
	YMiddle
	YBottom
)

func anchorPoint(m *gamemap.Map, ax XAnchor, ay YAnchor) (int, int) {
	x, y := 1, 1
	switch ax {
	case XCentre:
		x = m.Width / 2
	case XRight:
		x = m.Width - 2
	}
	switch ay {
	case YMiddle:
		y = m.Height / 2
	case YBottom:
		y = m.Height - 2
	}
	return x, y
}

// nearestWalkable returns the walkable tile closest to (x, y) by squared
// Euclidean distance. Ties go to the tile met first in row-major order.
func nearestWalkable(m *gamemap.Map, x, y int) (int, bool) {
	best, bestDist := -1, 0
	for idx, t := range m.Tiles {
		if !t.Walkable() {
			continue
		}
		tx, ty := m.XY(idx)
		d := (tx-x)*(tx-x) + (ty-y)*(ty-y)
		if best < 0 || d < bestDist {
			best, bestDist = idx, d
		}
	}
	return best, best >= 0
}

// AreaStartingPosition starts the player on the walkable tile nearest to an
// anchor point.
type AreaStartingPosition struct {
	X XAnchor
	Y YAnchor
}

// BuildMeta implements MetaMapBuilder.
func (a AreaStartingPosition) BuildMeta(b *BuildData) error {
	x, y := anchorPoint(b.Map, a.X, a.Y)
	idx, ok := nearestWalkable(b.Map, x, y)
	if !ok {
		return stageError("AreaStartingPosition", KindNoWalkableTile, "map has no walkable tile")
	}
	sx, sy := b.Map.XY(idx)
	b.StartingPosition = &gamemap.Position{X: sx, Y: sy}
	return nil
}

// AreaEndingPosition puts down stairs on the walkable tile nearest to an
// anchor point.
type AreaEndingPosition struct {
	X XAnchor
	Y YAnchor
}

// BuildMeta implements MetaMapBuilder.
func (a AreaEndingPosition) BuildMeta(b *BuildData) error {
	x, y := anchorPoint(b.Map, a.X, a.Y)
	idx, ok := nearestWalkable(b.Map, x, y)
	if !ok {
		return stageError("AreaEndingPosition", KindNoWalkableTile, "map has no walkable tile")
	}
	b.Map.Tiles[idx] = gamemap.TileDownStairs
	b.TakeSnapshot()
	return nil
}

// CullUnreachable walls off every walkable tile the player cannot walk to
// from the starting position.
type CullUnreachable struct{}

// BuildMeta implements MetaMapBuilder.
func (CullUnreachable) BuildMeta(b *BuildData) error {
	start, err := b.RequireStart("CullUnreachable")
	if err != nil {
		return err
	}
	m := b.Map
	reach := pathing.New(m).Reachable(m.Idx(start.X, start.Y))
	for i, t := range m.Tiles {
		if t.Walkable() && !reach[i] {
			m.Tiles[i] = gamemap.TileWall
		}
	}
	m.PopulateBlocked()
	return nil
}

// DistantExit puts down stairs on the reachable walkable tile that is the
// longest walk from the starting position.
type DistantExit struct{}

// BuildMeta implements MetaMapBuilder.
func (DistantExit) BuildMeta(b *BuildData) error {
	start, err := b.RequireStart("DistantExit")
	if err != nil {
		return err
	}
	m := b.Map
	dist := pathing.New(m).Distances(m.Idx(start.X, start.Y))
	exit, far := -1, 0
	for i, t := range m.Tiles {
		if t.Walkable() && dist[i] != pathing.Unreachable && dist[i] > far {
			exit, far = i, dist[i]
		}
	}
	if exit < 0 {
		return stageError("DistantExit", KindNoWalkableTile, "nothing reachable beyond the start")
	}
	m.Tiles[exit] = gamemap.TileDownStairs
	b.TakeSnapshot()
	return nil
}
