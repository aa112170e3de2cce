package generate

import (
	"fmt"
	"math"
	"slices"

	"dungeon-mapgen/internal/gamemap"
	"dungeon-mapgen/internal/pathing"
	"dungeon-mapgen/internal/rng"

	"github.com/zyedidia/generic/mapset"
)

const (
	townName         = "The Town of Bracketon"
	townWallX        = 30
	townMaxBuildings = 12
	// townPlaceBudget bounds the building rejection sampler.
	townPlaceBudget = 2000
	// narrowTownWidth is the walled width below which buildings are drawn
	// from a smaller size range so a dozen still fit.
	narrowTownWidth = 48
	townMinWidth    = 50
	townMinHeight   = 30
)

// BuildingRole is the narrative purpose assigned to a town building.
type BuildingRole uint8

const (
	RoleUnassigned BuildingRole = iota
	RolePub
	RoleTemple
	RoleBlacksmith
	RoleClothier
	RoleAlchemist
	RolePlayerHouse
	RoleHovel
	RoleAbandoned
)

func (r BuildingRole) String() string {
	switch r {
	case RolePub:
		return "pub"
	case RoleTemple:
		return "temple"
	case RoleBlacksmith:
		return "blacksmith"
	case RoleClothier:
		return "clothier"
	case RoleAlchemist:
		return "alchemist"
	case RolePlayerHouse:
		return "player house"
	case RoleHovel:
		return "hovel"
	case RoleAbandoned:
		return "abandoned"
	}
	return "unassigned"
}

// fixedRoles go to the largest buildings, in order of decreasing area.
var fixedRoles = [...]BuildingRole{RolePub, RoleTemple, RoleBlacksmith, RoleClothier, RoleAlchemist, RolePlayerHouse}

// roleProps lists what furnishes each role, placed front to back.
var roleProps = map[BuildingRole][]string{
	RolePub:         {"Barkeep", "Shady Salesman", "Patron", "Patron", "Keg", "Table", "Chair", "Table", "Chair"},
	RoleTemple:      {"Priest", "Altar", "Parishioner", "Parishioner", "Chair", "Chair", "Candle", "Candle"},
	RoleBlacksmith:  {"Blacksmith", "Anvil", "Water Trough", "Weapon Rack", "Armor Stand"},
	RoleClothier:    {"Clothier", "Cabinet", "Table", "Loom", "Hide Rack"},
	RoleAlchemist:   {"Alchemist", "Chemistry Set", "Dead Thing", "Chair", "Table"},
	RolePlayerHouse: {"Mom", "Bed", "Cabinet", "Chair", "Table"},
	RoleHovel:       {"Peasant", "Bed", "Chair", "Table"},
}

// Building is one placed town building. The rectangle includes its walls.
type Building struct {
	gamemap.Rect
	Role BuildingRole
}

// TownBuilder lays out a walled harbour town. After a build, Buildings holds
// every placed building with its assigned role, in placement order.
type TownBuilder struct {
	Buildings []Building
}

// TownBuilderChain returns the chain for the surface town.
func TownBuilderChain(depth, width, height int, r *rng.Rng, opts ...Option) *BuilderChain {
	c := NewBuilderChain(depth, width, height, townName, r, opts...)
	c.StartWith(&TownBuilder{})
	return c
}

// BuildInitial implements InitialMapBuilder.
func (t *TownBuilder) BuildInitial(b *BuildData) error {
	if b.Map.Width < townMinWidth || b.Map.Height < townMinHeight {
		return stageError("TownBuilder", KindMapTooSmall, fmt.Sprintf("need at least %dx%d tiles, got %dx%d",
			townMinWidth, townMinHeight, b.Map.Width, b.Map.Height))
	}
	t.Buildings = nil

	t.grass(b)
	t.waterAndPiers(b)
	available, gapY := t.walls(b)
	t.placeBuildings(b, available)
	doors := t.addDoors(b, gapY)
	t.addPaths(b, doors)

	m := b.Map
	for y := gapY - 3; y < gapY+4; y++ {
		m.Set(m.Width-2, y, gamemap.TileDownStairs)
	}

	t.assignRoles()
	for _, bld := range t.Buildings {
		t.furnish(b, bld)
	}
	spawnDockers(b)
	spawnTownsfolk(b, available)

	m.RevealAll()
	b.TakeSnapshot()
	return nil
}

func (t *TownBuilder) grass(b *BuildData) {
	for i := range b.Map.Tiles {
		b.Map.Tiles[i] = gamemap.TileGrass
	}
	b.TakeSnapshot()
}

// waterAndPiers floods the west edge with a sine-perturbed coastline and
// runs a handful of piers out over it.
func (t *TownBuilder) waterAndPiers(b *BuildData) {
	m := b.Map
	n := float64(b.Rng.RollDice(1, 65535)) / 65535
	waterWidth := make([]int, m.Height)
	for y := range m.Height {
		nWater := int(math.Sin(n)*10) + 14 + b.Rng.RollDice(1, 6)
		waterWidth[y] = nWater
		n += 0.1
		for x := 0; x < nWater && x < m.Width; x++ {
			m.Set(x, y, gamemap.TileDeepWater)
		}
		for x := nWater; x < nWater+3 && x < m.Width; x++ {
			m.Set(x, y, gamemap.TileShallowWater)
		}
	}
	b.TakeSnapshot()

	piers := b.Rng.RollDice(1, 4) + 6
	for range piers {
		y := b.Rng.RollDice(1, m.Height) - 1
		for x := 2 + b.Rng.RollDice(1, 6); x < waterWidth[y]+4 && x < m.Width; x++ {
			m.Set(x, y, gamemap.TileBridge)
		}
	}
	b.TakeSnapshot()
}

// walls builds the town enclosure with a road gap on the east side and
// returns the gravel tiles still free for buildings plus the gap's centre row.
func (t *TownBuilder) walls(b *BuildData) (mapset.Set[int], int) {
	m := b.Map
	available := mapset.New[int]()
	gapY := b.Rng.RollDice(1, m.Height-9) + 5
	for y := 1; y < m.Height-2; y++ {
		if y > gapY-4 && y < gapY+4 {
			for x := townWallX; x < m.Width; x++ {
				m.Set(x, y, gamemap.TileRoad)
			}
			continue
		}
		m.Set(townWallX, y, gamemap.TileWall)
		m.Set(townWallX-1, y, gamemap.TileFloor)
		m.Set(m.Width-2, y, gamemap.TileWall)
		for x := townWallX + 1; x < m.Width-2; x++ {
			m.Set(x, y, gamemap.TileGravel)
			if y > 2 && y < m.Height-1 {
				available.Put(m.Idx(x, y))
			}
		}
	}
	b.TakeSnapshot()

	for x := townWallX; x < m.Width-1; x++ {
		m.Set(x, 1, gamemap.TileWall)
		m.Set(x, m.Height-2, gamemap.TileWall)
	}
	b.TakeSnapshot()
	return available, gapY
}

// placeBuildings rejection-samples up to townMaxBuildings rectangles made
// only of available tiles. Each accepted building also withdraws a one tile
// halo from the available set so no two buildings touch.
func (t *TownBuilder) placeBuildings(b *BuildData, available mapset.Set[int]) {
	m := b.Map
	sizeSides, sizeBase := 8, 4
	if m.Width-32 < narrowTownWidth {
		sizeSides, sizeBase = 6, 3
	}
	for attempt := 0; attempt < townPlaceBudget && len(t.Buildings) < townMaxBuildings; attempt++ {
		bx := b.Rng.RollDice(1, m.Width-32) + townWallX
		by := b.Rng.RollDice(1, m.Height) - 2
		bw := b.Rng.RollDice(1, sizeSides) + sizeBase
		bh := b.Rng.RollDice(1, sizeSides) + sizeBase
		rect := gamemap.NewRect(bx, by, bw, bh)

		possible := true
		rect.Each(func(x, y int) {
			if !m.InBounds(x, y) || !available.Has(m.Idx(x, y)) {
				possible = false
			}
		})
		if !possible {
			continue
		}

		t.Buildings = append(t.Buildings, Building{Rect: rect})
		rect.Each(func(x, y int) {
			idx := m.Idx(x, y)
			m.Tiles[idx] = gamemap.TileWoodFloor
			for _, n := range [5]int{idx, idx + 1, idx - 1, idx + m.Width, idx - m.Width} {
				available.Remove(n)
			}
		})
		b.TakeSnapshot()
	}

	// Outline every building: floor with any non-floor neighbour is wall.
	outlined := b.Map.Clone()
	for y := 2; y < m.Height-2; y++ {
		for x := 32; x < m.Width-2; x++ {
			idx := m.Idx(x, y)
			if m.Tiles[idx] != gamemap.TileWoodFloor {
				continue
			}
			for _, n := range [4]int{idx - 1, idx + 1, idx - m.Width, idx + m.Width} {
				if m.Tiles[n] != gamemap.TileWoodFloor {
					outlined.Tiles[idx] = gamemap.TileWall
					break
				}
			}
		}
	}
	b.Map = outlined
	b.TakeSnapshot()
}

// addDoors cuts one door per building in the long wall facing the road gap.
func (t *TownBuilder) addDoors(b *BuildData, gapY int) []int {
	m := b.Map
	doors := make([]int, 0, len(t.Buildings))
	for _, bld := range t.Buildings {
		doorX := bld.X1 + 1 + b.Rng.RollDice(1, bld.Width()-3)
		cy := bld.Y1 + bld.Height()/2
		var idx int
		if cy > gapY {
			idx = m.Idx(doorX, bld.Y1)
		} else {
			idx = m.Idx(doorX, bld.Y2-1)
		}
		m.Tiles[idx] = gamemap.TileFloor
		b.AddSpawn(idx, "Door")
		doors = append(doors, idx)
	}
	b.TakeSnapshot()
	return doors
}

// addPaths links every door to the closest road tile with the cheapest
// walking route and paves it. Paved tiles become road for later doors.
func (t *TownBuilder) addPaths(b *BuildData, doors []int) {
	m := b.Map
	var roads []int
	for idx, tt := range m.Tiles {
		if tt == gamemap.TileRoad {
			roads = append(roads, idx)
		}
	}
	if len(roads) == 0 {
		return
	}

	p := pathing.New(m)
	for _, door := range doors {
		dx, dy := m.XY(door)
		best, bestDist := roads[0], math.MaxInt
		for _, r := range roads {
			rx, ry := m.XY(r)
			if d := (rx-dx)*(rx-dx) + (ry-dy)*(ry-dy); d < bestDist {
				best, bestDist = r, d
			}
		}
		steps, ok := p.Path(door, best)
		if ok {
			for _, idx := range steps {
				if idx == door {
					continue
				}
				m.Tiles[idx] = gamemap.TileRoad
				roads = append(roads, idx)
			}
		}
		b.TakeSnapshot()
	}
}

// assignRoles ranks buildings by area: the six largest get the fixed roles,
// the smallest is abandoned and the rest are hovels.
func (t *TownBuilder) assignRoles() {
	if len(t.Buildings) == 0 {
		return
	}
	order := make([]int, len(t.Buildings))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, c int) int {
		return t.Buildings[c].Area() - t.Buildings[a].Area()
	})
	for rank, i := range order {
		if rank < len(fixedRoles) {
			t.Buildings[i].Role = fixedRoles[rank]
		} else {
			t.Buildings[i].Role = RoleHovel
		}
	}
	t.Buildings[order[len(order)-1]].Role = RoleAbandoned
}

func (t *TownBuilder) furnish(b *BuildData, bld Building) {
	m := b.Map
	if bld.Role == RoleAbandoned {
		bld.Each(func(x, y int) {
			idx := m.Idx(x, y)
			if m.Tiles[idx] == gamemap.TileWoodFloor && idx != 0 && b.Rng.RollDice(1, 2) == 1 {
				b.AddSpawn(idx, "Rat")
			}
		})
		return
	}

	exclude := 0
	if bld.Role == RolePub {
		cx, cy := bld.X1+bld.Width()/2, bld.Y1+bld.Height()/2
		b.StartingPosition = &gamemap.Position{X: cx, Y: cy}
		exclude = m.Idx(cx, cy)
	}
	props := slices.Clone(roleProps[bld.Role])
	bld.Each(func(x, y int) {
		idx := m.Idx(x, y)
		if m.Tiles[idx] == gamemap.TileWoodFloor && idx != exclude &&
			b.Rng.RollDice(1, 3) == 1 && len(props) > 0 {
			b.AddSpawn(idx, props[0])
			props = props[1:]
		}
	})
}

func spawnDockers(b *BuildData) {
	for idx, tt := range b.Map.Tiles {
		if tt != gamemap.TileBridge || b.Rng.RollDice(1, 6) != 1 {
			continue
		}
		switch b.Rng.RollDice(1, 3) {
		case 1:
			b.AddSpawn(idx, "Dock Worker")
		case 2:
			b.AddSpawn(idx, "Wannabe Pirate")
		default:
			b.AddSpawn(idx, "Fisher")
		}
	}
}

// spawnTownsfolk scatters people over the open gravel, visiting tiles in
// index order so a seed always gives the same crowd.
func spawnTownsfolk(b *BuildData, available mapset.Set[int]) {
	tiles := make([]int, 0, available.Size())
	available.Each(func(idx int) { tiles = append(tiles, idx) })
	slices.Sort(tiles)
	for _, idx := range tiles {
		if b.Rng.RollDice(1, 10) != 1 {
			continue
		}
		switch b.Rng.RollDice(1, 4) {
		case 1:
			b.AddSpawn(idx, "Peasant")
		case 2:
			b.AddSpawn(idx, "Drunk")
		case 3:
			b.AddSpawn(idx, "Dock Worker")
		default:
			b.AddSpawn(idx, "Fisher")
		}
	}
}
