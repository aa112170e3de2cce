package generate

import (
	"errors"
	"testing"

	"dungeon-mapgen/internal/gamemap"
	"dungeon-mapgen/internal/rng"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blankStart leaves the map as solid wall.
type blankStart struct{}

func (blankStart) BuildInitial(*BuildData) error { return nil }

// openStart carves the whole interior.
type openStart struct{}

func (openStart) BuildInitial(b *BuildData) error {
	for y := 1; y < b.Map.Height-1; y++ {
		for x := 1; x < b.Map.Width-1; x++ {
			b.Map.Set(x, y, gamemap.TileFloor)
		}
	}
	return nil
}

// flipTile changes one tile without snapshotting.
type flipTile struct{ idx int }

func (f flipTile) BuildMeta(b *BuildData) error {
	b.Map.Tiles[f.idx] = gamemap.TileRoad
	return nil
}

// noop leaves the map alone.
type noop struct{}

func (noop) BuildMeta(*BuildData) error { return nil }

func TestChainMisuse(t *testing.T) {
	t.Run("no initial builder", func(t *testing.T) {
		c := NewBuilderChain(1, 20, 20, "t", rng.New(1))
		err := c.Build()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrChainMisuse)
	})
	t.Run("two initial builders", func(t *testing.T) {
		c := NewBuilderChain(1, 20, 20, "t", rng.New(1))
		c.StartWith(openStart{}).StartWith(blankStart{})
		assert.ErrorIs(t, c.Build(), ErrChainMisuse)
	})
	t.Run("built twice", func(t *testing.T) {
		c := NewBuilderChain(1, 20, 20, "t", rng.New(1))
		c.StartWith(openStart{})
		require.NoError(t, c.Build())
		assert.ErrorIs(t, c.Build(), ErrChainMisuse)
	})
}

func TestChainSnapshotsOnlyChangedLayouts(t *testing.T) {
	c := NewBuilderChain(1, 20, 20, "t", rng.New(1))
	c.StartWith(openStart{}).With(noop{}).With(flipTile{idx: 21}).With(noop{})
	require.NoError(t, c.Build())

	h := c.Data.History
	require.Len(t, h, 2)
	assert.Equal(t, gamemap.TileFloor, h[0].Tiles[21])
	assert.Equal(t, gamemap.TileRoad, h[1].Tiles[21])
}

func TestSnapshotsAreDeepCopies(t *testing.T) {
	c := NewBuilderChain(1, 20, 20, "t", rng.New(1))
	c.StartWith(openStart{}).With(flipTile{idx: 21})
	require.NoError(t, c.Build())

	c.Data.Map.Tiles[22] = gamemap.TileDeepWater
	for _, snap := range c.Data.History {
		assert.NotEqual(t, gamemap.TileDeepWater, snap.Tiles[22])
	}
}

func TestHistoryOptOut(t *testing.T) {
	c := RoomsBuilderChain(4, 50, 50, rng.New(42), WithHistory(false))
	require.NoError(t, c.Build())
	assert.Empty(t, c.Data.History)
}

func TestStageErrors(t *testing.T) {
	tests := []struct {
		name  string
		start InitialMapBuilder
		meta  MetaMapBuilder
		want  error
		stage string
	}{
		{"drawer without rooms", CellularAutomataBuilder{}, RoomDrawer{}, ErrMissingRooms, "RoomDrawer"},
		{"sorter without rooms", CellularAutomataBuilder{}, RoomSorter{}, ErrMissingRooms, "RoomSorter"},
		{"dogleg without rooms", CellularAutomataBuilder{}, DoglegCorridors{}, ErrMissingRooms, "DoglegCorridors"},
		{"corridor spawner without corridors", SimpleMapBuilder{}, CorridorSpawner{}, ErrMissingCorridors, "CorridorSpawner"},
		{"cull without start", CellularAutomataBuilder{}, CullUnreachable{}, ErrMissingStartPosition, "CullUnreachable"},
		{"exit without start", CellularAutomataBuilder{}, DistantExit{}, ErrMissingStartPosition, "DistantExit"},
		{"road without start", CellularAutomataBuilder{}, YellowBrickRoad{}, ErrMissingStartPosition, "YellowBrickRoad"},
		{"start on solid rock", blankStart{}, AreaStartingPosition{}, ErrNoWalkableTile, "AreaStartingPosition"},
		{"exit on solid rock", blankStart{}, AreaEndingPosition{}, ErrNoWalkableTile, "AreaEndingPosition"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewBuilderChain(1, 40, 30, "t", rng.New(3))
			c.StartWith(tt.start).With(tt.meta)
			err := c.Build()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var be *BuildError
			require.True(t, errors.As(err, &be))
			assert.Equal(t, tt.stage, be.Stage)
			assert.Contains(t, err.Error(), tt.stage)
		})
	}
}

func TestBuildErrorIsMatchesKindOnly(t *testing.T) {
	err := stageError("X", KindNoValidPath, "detail")
	assert.ErrorIs(t, err, ErrNoValidPath)
	assert.NotErrorIs(t, err, ErrNoWalkableTile)
	assert.Equal(t, "X: no valid path: detail", err.Error())
}
