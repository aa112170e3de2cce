package generate

import (
	"log/slog"

	"dungeon-mapgen/internal/gamemap"
	"dungeon-mapgen/internal/rng"
	"dungeon-mapgen/internal/spawn"
)

// BuildData is the state threaded through every stage of a chain. Rooms,
// Corridors and StartingPosition stay nil until a stage produces them.
type BuildData struct {
	Depth, Width, Height int

	Map              *gamemap.Map
	Rooms            []gamemap.Rect
	Corridors        [][]int
	StartingPosition *gamemap.Position
	SpawnList        []spawn.Entry
	History          []*gamemap.Map

	Rng    *rng.Rng
	Spawns spawn.Table
	Logger *slog.Logger

	keepHistory bool
}

// TakeSnapshot appends a deep copy of the current map to History.
func (b *BuildData) TakeSnapshot() {
	if !b.keepHistory {
		return
	}
	b.History = append(b.History, b.Map.Clone())
}

// AddSpawn queues one spawn.
func (b *BuildData) AddSpawn(idx int, name string) {
	b.SpawnList = append(b.SpawnList, spawn.Entry{Idx: idx, Name: name})
}

// SpawnRegion asks the spawn table for entries in area at the map's depth.
func (b *BuildData) SpawnRegion(area []int) {
	b.SpawnList = append(b.SpawnList, b.Spawns.SpawnRegion(b.Map, area, b.Map.Depth, b.Rng)...)
}

// setRooms stores rooms, recording an empty layout as present-but-empty.
func (b *BuildData) setRooms(rooms []gamemap.Rect) {
	if rooms == nil {
		rooms = []gamemap.Rect{}
	}
	b.Rooms = rooms
}

func (b *BuildData) setCorridors(corridors [][]int) {
	if corridors == nil {
		corridors = [][]int{}
	}
	b.Corridors = corridors
}

// RequireRooms returns the room list or a MissingRooms error naming stage.
func (b *BuildData) RequireRooms(stage string) ([]gamemap.Rect, error) {
	if b.Rooms == nil {
		return nil, stageError(stage, KindMissingRooms, "requires a room-based initial builder")
	}
	return b.Rooms, nil
}

// RequireCorridors returns the corridor list or a MissingCorridors error.
func (b *BuildData) RequireCorridors(stage string) ([][]int, error) {
	if b.Corridors == nil {
		return nil, stageError(stage, KindMissingCorridors, "requires a corridor builder earlier in the chain")
	}
	return b.Corridors, nil
}

// RequireStart returns the starting position or a MissingStartPosition error.
func (b *BuildData) RequireStart(stage string) (gamemap.Position, error) {
	if b.StartingPosition == nil {
		return gamemap.Position{}, stageError(stage, KindMissingStartPosition, "requires a starting position stage earlier in the chain")
	}
	return *b.StartingPosition, nil
}

// tilesChanged reports whether the map differs from the last snapshot.
func (b *BuildData) tilesChanged() bool {
	if len(b.History) == 0 {
		return true
	}
	last := b.History[len(b.History)-1]
	if len(last.Tiles) != len(b.Map.Tiles) {
		return true
	}
	for i, t := range b.Map.Tiles {
		if last.Tiles[i] != t {
			return true
		}
	}
	return false
}
