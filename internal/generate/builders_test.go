package generate

import (
	"context"
	"slices"
	"testing"

	"dungeon-mapgen/internal/gamemap"
	"dungeon-mapgen/internal/noise"
	"dungeon-mapgen/internal/pathing"
	"dungeon-mapgen/internal/rng"
	"dungeon-mapgen/internal/spawn"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleMapRoomsDoNotOverlap(t *testing.T) {
	c := NewBuilderChain(1, 50, 50, "simple", rng.New(42))
	c.StartWith(SimpleMapBuilder{})
	require.NoError(t, c.Build())

	rooms := c.Data.Rooms
	require.NotEmpty(t, rooms)
	assert.LessOrEqual(t, len(rooms), simpleMaxRooms)
	for i := range rooms {
		for j := i + 1; j < len(rooms); j++ {
			assert.False(t, rooms[i].Intersects(rooms[j]), "rooms %d and %d overlap", i, j)
		}
	}
}

func TestRoomsChainConnectsEveryRoom(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		c := RoomsBuilderChain(4, 60, 40, rng.New(seed))
		require.NoError(t, c.Build())
		d := c.Data
		require.NotNil(t, d.StartingPosition)
		assert.Len(t, d.Corridors, len(d.Rooms)-1)

		m := d.Map
		reach := pathing.New(m).Reachable(m.Idx(d.StartingPosition.X, d.StartingPosition.Y))
		for i, room := range d.Rooms {
			x, y := room.Center()
			assert.True(t, reach[m.Idx(x, y)], "seed=%d: room %d centre unreachable", seed, i)
		}
	}
}

func TestCellularAutomata(t *testing.T) {
	c := NewBuilderChain(1, 40, 40, "cave", rng.New(7))
	c.StartWith(CellularAutomataBuilder{})
	require.NoError(t, c.Build())

	m := c.Data.Map
	for x := range m.Width {
		assert.Equal(t, gamemap.TileWall, m.At(x, 0))
		assert.Equal(t, gamemap.TileWall, m.At(x, m.Height-1))
	}
	for y := range m.Height {
		assert.Equal(t, gamemap.TileWall, m.At(0, y))
		assert.Equal(t, gamemap.TileWall, m.At(m.Width-1, y))
	}

	h := c.Data.History
	require.Len(t, h, caIterations+1)
	prev, last := h[len(h)-2], h[len(h)-1]
	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			walls := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if (dx != 0 || dy != 0) && prev.At(x+dx, y+dy) == gamemap.TileWall {
						walls++
					}
				}
			}
			want := gamemap.TileFloor
			if walls > 4 || walls == 0 {
				want = gamemap.TileWall
			}
			require.Equal(t, want, last.At(x, y), "tile (%d,%d) with %d wall neighbours", x, y, walls)
		}
	}
}

func TestCellularAutomataMetaRunsOnePass(t *testing.T) {
	c := NewBuilderChain(1, 30, 30, "cave", rng.New(2))
	c.StartWith(CellularAutomataBuilder{}).With(CellularAutomataBuilder{})
	require.NoError(t, c.Build())
	assert.Len(t, c.Data.History, caIterations+2)
}

func TestCullLeavesEveryWalkableTileReachable(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		c := CaveBuilderChain(5, 60, 40, rng.New(seed))
		require.NoError(t, c.Build())
		d := c.Data
		m := d.Map
		reach := pathing.New(m).Reachable(m.Idx(d.StartingPosition.X, d.StartingPosition.Y))
		for i, tt := range m.Tiles {
			if tt.Walkable() {
				require.True(t, reach[i], "seed=%d: walkable tile %d unreachable", seed, i)
			}
		}
	}
}

func TestNearestWalkableTieGoesToLowerIndex(t *testing.T) {
	m := gamemap.New(1, 10, 10, "t")
	m.Set(1, 2, gamemap.TileFloor)
	m.Set(2, 1, gamemap.TileFloor)

	idx, ok := nearestWalkable(m, 1, 1)
	require.True(t, ok)
	assert.Equal(t, m.Idx(2, 1), idx)

	b := &BuildData{Map: m}
	require.NoError(t, AreaStartingPosition{X: XLeft, Y: YTop}.BuildMeta(b))
	assert.Equal(t, gamemap.Position{X: 2, Y: 1}, *b.StartingPosition)
}

func TestDistantExitPicksFarthestTile(t *testing.T) {
	m := gamemap.New(1, 12, 5, "t")
	for x := 1; x <= 10; x++ {
		m.Set(x, 2, gamemap.TileFloor)
	}
	b := &BuildData{Map: m, StartingPosition: &gamemap.Position{X: 1, Y: 2}}
	require.NoError(t, DistantExit{}.BuildMeta(b))
	assert.Equal(t, gamemap.TileDownStairs, m.At(10, 2))
}

func TestMergeWalkableIsUnion(t *testing.T) {
	primary := gamemap.New(1, 8, 8, "a")
	secondary := gamemap.New(1, 8, 8, "b")
	primary.Set(1, 1, gamemap.TileFloor)
	primary.Set(2, 2, gamemap.TileRoad)
	secondary.Set(3, 3, gamemap.TileFloor)
	secondary.Set(2, 2, gamemap.TileFloor)
	before := append([]gamemap.TileType(nil), primary.Tiles...)

	merged := MergeWalkable(primary, secondary)

	assert.Equal(t, before, primary.Tiles, "primary must not change")
	for i := range merged {
		if primary.Tiles[i].Walkable() {
			assert.Equal(t, primary.Tiles[i], merged[i])
		}
		if primary.Tiles[i].Walkable() || secondary.Tiles[i].Walkable() {
			assert.True(t, merged[i].Walkable(), "tile %d should be open", i)
		} else {
			assert.Equal(t, gamemap.TileWall, merged[i])
		}
	}
}

func TestDragonSpawnerClearsNearbySpawns(t *testing.T) {
	m := gamemap.New(1, 80, 20, "t")
	for y := 1; y < 19; y++ {
		for x := 1; x < 79; x++ {
			m.Set(x, y, gamemap.TileFloor)
		}
	}
	near, far := m.Idx(45, 10), m.Idx(75, 10)
	b := &BuildData{Map: m, SpawnList: []spawn.Entry{{Idx: near, Name: "Goblin"}, {Idx: far, Name: "Orc"}}}
	require.NoError(t, DragonSpawner{}.BuildMeta(b))

	require.Len(t, b.SpawnList, 2)
	assert.Equal(t, "Orc", b.SpawnList[0].Name)
	assert.Equal(t, spawn.Entry{Idx: m.Idx(40, 10), Name: "Black Dragon"}, b.SpawnList[1])
}

func TestRoomSorter(t *testing.T) {
	rooms := []gamemap.Rect{
		gamemap.NewRect(30, 5, 4, 4),
		gamemap.NewRect(2, 20, 4, 4),
		gamemap.NewRect(18, 10, 4, 4),
	}
	tests := []struct {
		sort  RoomSort
		first gamemap.Rect
	}{
		{SortLeftmost, rooms[1]},
		{SortRightmost, rooms[0]},
		{SortTopmost, rooms[0]},
		{SortBottommost, rooms[1]},
		{SortCentral, rooms[2]},
	}
	for _, tt := range tests {
		b := &BuildData{Map: gamemap.New(1, 40, 26, "t"), Rooms: append([]gamemap.Rect(nil), rooms...)}
		require.NoError(t, RoomSorter{Sort: tt.sort}.BuildMeta(b))
		assert.Equal(t, tt.first, b.Rooms[0], "sort %d", tt.sort)
	}
}

func TestRoomCornerRounder(t *testing.T) {
	m := gamemap.New(1, 20, 20, "t")
	room := gamemap.NewRect(4, 4, 6, 6)
	drawRectangle(m, room)
	b := &BuildData{Map: m, Rooms: []gamemap.Rect{room}}
	require.NoError(t, RoomCornerRounder{}.BuildMeta(b))

	assert.Equal(t, gamemap.TileWall, m.At(5, 5))
	assert.Equal(t, gamemap.TileWall, m.At(10, 5))
	assert.Equal(t, gamemap.TileWall, m.At(5, 10))
	assert.Equal(t, gamemap.TileWall, m.At(10, 10))
	assert.Equal(t, gamemap.TileFloor, m.At(7, 7))
}

func TestRoomExploderRestoresStairs(t *testing.T) {
	c := NewBuilderChain(1, 60, 40, "t", rng.New(9))
	c.StartWith(SimpleMapBuilder{}).With(RoomDrawer{}).With(RoomExploder{})
	require.NoError(t, c.Build())
	for _, tt := range c.Data.Map.Tiles {
		assert.NotEqual(t, gamemap.TileDownStairs, tt)
	}
}

func TestTownLayout(t *testing.T) {
	town := &TownBuilder{}
	c := NewBuilderChain(1, 60, 40, townName, rng.New(1))
	c.StartWith(town)
	require.NoError(t, c.Build())

	bs := town.Buildings
	require.GreaterOrEqual(t, len(bs), 7)

	roles := map[BuildingRole]int{}
	minFixed, maxOther := 1<<30, 0
	minArea := 1 << 30
	for _, b := range bs {
		roles[b.Role]++
		minArea = min(minArea, b.Area())
		if b.Role >= RolePub && b.Role <= RolePlayerHouse {
			minFixed = min(minFixed, b.Area())
		} else {
			maxOther = max(maxOther, b.Area())
		}
	}
	for _, r := range fixedRoles {
		assert.Equal(t, 1, roles[r], "role %s", r)
	}
	assert.Equal(t, 1, roles[RoleAbandoned])
	assert.Equal(t, len(bs)-7, roles[RoleHovel])
	assert.GreaterOrEqual(t, minFixed, maxOther, "fixed roles must go to the largest buildings")
	for _, b := range bs {
		if b.Role == RoleAbandoned {
			assert.Equal(t, minArea, b.Area())
		}
	}

	for i, a := range bs {
		for j := i + 1; j < len(bs); j++ {
			assert.False(t, a.Intersects(bs[j].Rect), "buildings %d and %d touch", i, j)
		}
	}

	d := c.Data
	require.NotNil(t, d.StartingPosition)
	doors := 0
	for _, s := range d.SpawnList {
		require.True(t, d.Map.ValidIdx(s.Idx))
		if s.Name == "Door" {
			doors++
		}
	}
	assert.Equal(t, len(bs), doors)
	assert.True(t, d.Map.Visible[0], "town should be fully visible")
}

func TestTownRejectsSmallMaps(t *testing.T) {
	cases := []struct {
		w, h int
	}{
		{30, 30},
		{49, 40},
		{50, 29},
		{50, 20},
	}
	for _, tc := range cases {
		c := TownBuilderChain(1, tc.w, tc.h, rng.New(1))
		err := c.Build()
		assert.ErrorIs(t, err, ErrMapTooSmall, "%dx%d", tc.w, tc.h)
	}
}

func TestGenerateDoesNotRetryUndersizedTown(t *testing.T) {
	lvl, err := Generate(context.Background(), Request{Seed: 1, Theme: ThemeTown, Width: 40, Height: 25, Retries: 5})
	require.ErrorIs(t, err, ErrMapTooSmall)
	assert.Nil(t, lvl)
	assert.NotContains(t, err.Error(), "attempts")
}

func TestForestRoadAndExit(t *testing.T) {
	c := ForestBuilderChain(2, 80, 50, rng.New(11))
	require.NoError(t, c.Build())
	roads, stairs := 0, 0
	for _, tt := range c.Data.Map.Tiles {
		switch tt {
		case gamemap.TileRoad:
			roads++
		case gamemap.TileDownStairs:
			stairs++
		}
	}
	assert.Positive(t, roads)
	assert.GreaterOrEqual(t, stairs, 1)
}

func TestDwarfFortAppendsLairHistory(t *testing.T) {
	c := DwarfFortBuilderChain(6, 80, 50, rng.New(4))
	require.NoError(t, c.Build())
	d := c.Data
	assert.Equal(t, 7, d.Map.Depth)
	names := map[string]bool{}
	for _, h := range d.History {
		names[h.Name] = true
	}
	assert.True(t, names["New Map"], "lair snapshots should be in the history")
	assert.True(t, names[dwarfFortName])

	dragons := 0
	for _, s := range d.SpawnList {
		if s.Name == "Black Dragon" {
			dragons++
		}
	}
	assert.Equal(t, 1, dragons)
}

func TestIndicesInRange(t *testing.T) {
	for _, theme := range Themes {
		t.Run(string(theme), func(t *testing.T) {
			c := ThemeBuilder(theme, 3, 80, 50, rng.New(8))
			if err := c.Build(); err != nil {
				var be *BuildError
				require.ErrorAs(t, err, &be)
				return
			}
			d := c.Data
			n := len(d.Map.Tiles)
			require.Equal(t, 80*50, n)
			for _, s := range d.SpawnList {
				assert.True(t, s.Idx >= 0 && s.Idx < n, "spawn index %d", s.Idx)
			}
			for _, corr := range d.Corridors {
				for _, idx := range corr {
					assert.True(t, idx >= 0 && idx < n, "corridor index %d", idx)
				}
			}
			if p := d.StartingPosition; p != nil {
				assert.True(t, d.Map.InBounds(p.X, p.Y))
			}
		})
	}
}

// recordingTable remembers every region it is handed and spawns nothing.
type recordingTable struct {
	areas [][]int
}

func (r *recordingTable) SpawnRegion(_ *gamemap.Map, area []int, _ int, _ *rng.Rng) []spawn.Entry {
	r.areas = append(r.areas, slices.Clone(area))
	return nil
}

// roomsStart records rooms, optionally carving their floors first.
type roomsStart struct {
	rooms []gamemap.Rect
	carve bool
}

func (s roomsStart) BuildInitial(b *BuildData) error {
	if s.carve {
		for _, r := range s.rooms {
			for y := r.Y1 + 1; y <= r.Y2; y++ {
				for x := r.X1 + 1; x <= r.X2; x++ {
					b.Map.Set(x, y, gamemap.TileFloor)
				}
			}
		}
	}
	b.setRooms(s.rooms)
	return nil
}

// placeStart sets the starting position.
type placeStart struct{ x, y int }

func (p placeStart) BuildMeta(b *BuildData) error {
	b.StartingPosition = &gamemap.Position{X: p.x, Y: p.y}
	return nil
}

func TestVoronoiSpawningPartitionsFloor(t *testing.T) {
	const seed = 17
	rec := &recordingTable{}
	c := NewBuilderChain(1, 40, 30, "voronoi", rng.New(seed), WithSpawnTable(rec))
	// Tile 41 is (1,1): walkable road, which is not floor.
	c.StartWith(openStart{}).With(flipTile{idx: 41}).With(VoronoiSpawning{})
	require.NoError(t, c.Build())
	m := c.Data.Map

	// The stages before VoronoiSpawning draw nothing, so its first roll is
	// the noise seed.
	cells := noise.NewCellular(int64(rng.New(seed).RollDice(1, 65536)), voronoiFrequency)
	key := func(idx int) int {
		x, y := m.XY(idx)
		return int(cells.At(float64(x), float64(y)) * voronoiScale)
	}

	require.NotEmpty(t, rec.areas)
	seen := map[int]bool{}
	lastKey := 0
	for i, area := range rec.areas {
		require.NotEmpty(t, area, "region %d", i)
		k := key(area[0])
		if i > 0 {
			assert.Greater(t, k, lastKey, "regions must come in key order")
		}
		lastKey = k
		for _, idx := range area {
			assert.Equal(t, gamemap.TileFloor, m.Tiles[idx], "region %d holds a non-floor tile", i)
			assert.Equal(t, k, key(idx), "region %d mixes noise cells", i)
			assert.False(t, seen[idx], "tile %d in two regions", idx)
			seen[idx] = true
		}
	}
	assert.False(t, seen[41], "road tile must not be spawned on")
	assert.Len(t, seen, 38*28-1, "every interior floor tile belongs to a region")
}

func TestRoomBasedSpawnerSkipsFirstRoom(t *testing.T) {
	rooms := []gamemap.Rect{
		gamemap.NewRect(2, 2, 5, 5),
		gamemap.NewRect(10, 2, 5, 5),
		gamemap.NewRect(2, 10, 5, 5),
	}
	rec := &recordingTable{}
	c := NewBuilderChain(1, 20, 20, "rooms", rng.New(3), WithSpawnTable(rec))
	c.StartWith(roomsStart{rooms: rooms, carve: true}).With(RoomBasedSpawner{})
	require.NoError(t, c.Build())
	m := c.Data.Map

	require.Len(t, rec.areas, len(rooms)-1)
	first := roomFloor(m, rooms[0])
	for i, area := range rec.areas {
		assert.Equal(t, roomFloor(m, rooms[i+1]), area, "region %d", i)
		assert.Len(t, area, 25)
		for _, idx := range area {
			assert.NotContains(t, first, idx, "spawn region reaches the start room")
		}
	}
}

func TestRoomBasedSpawnerNeedsRooms(t *testing.T) {
	c := NewBuilderChain(1, 20, 20, "rooms", rng.New(3))
	c.StartWith(openStart{}).With(RoomBasedSpawner{})
	assert.ErrorIs(t, c.Build(), ErrMissingRooms)
}

func TestDoglegCorridorsBendOrder(t *testing.T) {
	// Rooms climb diagonally so no corridor crosses another; room floors are
	// left as wall so every corridor tile is newly dug.
	rooms := []gamemap.Rect{
		gamemap.NewRect(3, 3, 4, 4),
		gamemap.NewRect(13, 10, 4, 4),
		gamemap.NewRect(23, 17, 4, 4),
		gamemap.NewRect(33, 24, 4, 4),
	}
	sawH, sawV := false, false
	for seed := int64(1); seed <= 8; seed++ {
		c := NewBuilderChain(1, 45, 35, "dogleg", rng.New(seed))
		c.StartWith(roomsStart{rooms: rooms}).With(DoglegCorridors{})
		require.NoError(t, c.Build())
		m := c.Data.Map
		corridors := c.Data.Corridors
		require.Len(t, corridors, len(rooms)-1)

		// The stage draws one coin per corridor and nothing else.
		coins := rng.New(seed)
		for i, cor := range corridors {
			require.NotEmpty(t, cor)
			for _, idx := range cor {
				assert.Equal(t, gamemap.TileFloor, m.Tiles[idx])
			}
			px, py := rooms[i].Center()
			nx, ny := rooms[i+1].Center()
			assert.Contains(t, cor, m.Idx(nx, ny), "corridor %d ends at the next centre", i)

			bend, other := m.Idx(px, ny), m.Idx(nx, py)
			if coins.Range(0, 2) == 1 {
				bend, other = other, bend
				sawH = true
			} else {
				sawV = true
			}
			assert.Contains(t, cor, bend, "seed %d corridor %d bends at the wrong corner", seed, i)
			assert.Equal(t, gamemap.TileWall, m.Tiles[other], "seed %d corridor %d dug both corners", seed, i)
		}
	}
	assert.True(t, sawH && sawV, "both bend orders should occur")
}

func TestYellowBrickRoad(t *testing.T) {
	c := NewBuilderChain(2, 40, 20, "road", rng.New(9))
	c.StartWith(openStart{}).With(placeStart{1, 10}).With(YellowBrickRoad{})
	require.NoError(t, c.Build())
	m := c.Data.Map

	for _, p := range [][2]int{{1, 10}, {2, 10}, {1, 9}, {1, 11}} {
		assert.Equal(t, gamemap.TileRoad, m.At(p[0], p[1]), "road should be three wide at %v", p)
	}
	assert.Equal(t, gamemap.TileDownStairs, m.At(38, 10), "road ends on stairs")
	top, bottom := m.At(38, 1) == gamemap.TileDownStairs, m.At(38, 18) == gamemap.TileDownStairs
	assert.True(t, top != bottom, "exactly one corner gets the relocated exit")

	stairs, water := 0, 0
	for idx, tt := range m.Tiles {
		x, y := m.XY(idx)
		border := x == 0 || y == 0 || x == m.Width-1 || y == m.Height-1
		switch tt {
		case gamemap.TileDownStairs:
			stairs++
		case gamemap.TileShallowWater:
			water++
			assert.False(t, border, "stream on the border at (%d,%d)", x, y)
		case gamemap.TileRoad:
			assert.False(t, border, "road on the border at (%d,%d)", x, y)
		}
	}
	assert.Equal(t, 2, stairs, "the stream must not wash out either staircase")
	assert.Positive(t, water)
}

func TestYellowBrickRoadNeedsStart(t *testing.T) {
	c := NewBuilderChain(2, 40, 20, "road", rng.New(9))
	c.StartWith(openStart{}).With(YellowBrickRoad{})
	assert.ErrorIs(t, c.Build(), ErrMissingStartPosition)
}
