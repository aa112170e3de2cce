// Package pathing answers shortest-path and reachability queries over a
// gamemap.Map. Movement is 8-way over walkable tiles and is priced by
// gamemap.TileType.Cost.
package pathing

import (
	"dungeon-mapgen/internal/gamemap"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
)

// Unreachable is the distance reported for tiles that cannot be reached.
const Unreachable = -1

const (
	costScale    = 100 // integer cost of a 1.0 orthogonal step
	diagonalCost = 145 // per costScale, for a diagonal step
	minStepCost  = 80  // cheapest tile (road) per costScale; keeps the estimate admissible
)

// Pather runs path queries against one map. Tile walkability is read from
// the map's Blocked slice, which New refreshes.
type Pather struct {
	m   *gamemap.Map
	pr  *paths.PathRange
	nbs paths.Neighbors
}

// New refreshes m.Blocked and returns a Pather over m.
func New(m *gamemap.Map) *Pather {
	m.PopulateBlocked()
	return &Pather{
		m:  m,
		pr: paths.NewPathRange(gruid.NewRange(0, 0, m.Width, m.Height)),
	}
}

func (p *Pather) point(idx int) gruid.Point {
	x, y := p.m.XY(idx)
	return gruid.Point{X: x, Y: y}
}

func (p *Pather) passable(q gruid.Point) bool {
	return p.m.InBounds(q.X, q.Y) && !p.m.Blocked[p.m.Idx(q.X, q.Y)]
}

// Neighbors implements paths.Pather.
func (p *Pather) Neighbors(q gruid.Point) []gruid.Point {
	return p.nbs.All(q, p.passable)
}

// Cost implements paths.Dijkstra. Entering a tile costs its movement cost,
// with a premium for diagonal steps.
func (p *Pather) Cost(from, to gruid.Point) int {
	base := costScale
	if from.X != to.X && from.Y != to.Y {
		base = diagonalCost
	}
	c := int(float64(base) * p.m.At(to.X, to.Y).Cost())
	return max(c, 1)
}

// Estimation implements paths.Astar.
func (p *Pather) Estimation(from, to gruid.Point) int {
	return paths.DistanceChebyshev(from, to) * minStepCost
}

// Path returns the cheapest route from one tile index to another, both ends
// included. ok is false when no route exists.
func (p *Pather) Path(from, to int) (steps []int, ok bool) {
	if !p.m.ValidIdx(from) || !p.m.ValidIdx(to) {
		return nil, false
	}
	if from == to {
		return []int{from}, true
	}
	pts := p.pr.AstarPath(p, p.point(from), p.point(to))
	if len(pts) == 0 {
		return nil, false
	}
	steps = make([]int, len(pts))
	for i, q := range pts {
		steps[i] = p.m.Idx(q.X, q.Y)
	}
	return steps, true
}

// Reachable floods outward from one tile and reports, per index, whether the
// tile can be reached by walking.
func (p *Pather) Reachable(from int) []bool {
	out := make([]bool, len(p.m.Tiles))
	if !p.m.ValidIdx(from) {
		return out
	}
	maxCost := len(p.m.Tiles)
	for _, n := range p.pr.BreadthFirstMap(p, []gruid.Point{p.point(from)}, maxCost) {
		out[p.m.Idx(n.P.X, n.P.Y)] = true
	}
	out[from] = true
	return out
}

// Distances returns the walking cost from one tile to every other tile, or
// Unreachable.
func (p *Pather) Distances(from int) []int {
	out := make([]int, len(p.m.Tiles))
	for i := range out {
		out[i] = Unreachable
	}
	if !p.m.ValidIdx(from) {
		return out
	}
	maxCost := len(p.m.Tiles) * diagonalCost * 2
	for _, n := range p.pr.DijkstraMap(p, []gruid.Point{p.point(from)}, maxCost) {
		out[p.m.Idx(n.P.X, n.P.Y)] = n.Cost
	}
	out[from] = 0
	return out
}
