package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"dungeon-mapgen/internal/gamemap"
	"dungeon-mapgen/internal/rng"
	"dungeon-mapgen/internal/spawn"
)

// Theme names a fixed chain. ThemeAuto picks one from the depth.
type Theme string

const (
	ThemeAuto      Theme = ""
	ThemeTown      Theme = "town"
	ThemeForest    Theme = "forest"
	ThemeInterior  Theme = "interior"
	ThemeRooms     Theme = "rooms"
	ThemeCave      Theme = "cave"
	ThemeDwarfFort Theme = "dwarf-fort"
	ThemeRandom    Theme = "random"
)

// Themes lists every selectable theme except ThemeAuto.
var Themes = []Theme{ThemeTown, ThemeForest, ThemeInterior, ThemeRooms, ThemeCave, ThemeDwarfFort, ThemeRandom}

// ParseTheme accepts a theme name, case-insensitively. "" and "auto" give
// ThemeAuto.
func ParseTheme(s string) (Theme, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "auto" {
		return ThemeAuto, nil
	}
	for _, t := range Themes {
		if string(t) == s {
			return t, nil
		}
	}
	return ThemeAuto, fmt.Errorf("unknown theme %q", s)
}

// themeForDepth maps a dungeon depth to its theme.
func themeForDepth(depth int) Theme {
	switch depth {
	case 1:
		return ThemeTown
	case 2:
		return ThemeForest
	case 3:
		return ThemeInterior
	case 4:
		return ThemeRooms
	case 5:
		return ThemeCave
	case 6:
		return ThemeDwarfFort
	}
	return ThemeRandom
}

// LevelBuilder returns the chain for a depth.
func LevelBuilder(depth, width, height int, r *rng.Rng, opts ...Option) *BuilderChain {
	return ThemeBuilder(themeForDepth(depth), depth, width, height, r, opts...)
}

// ThemeBuilder returns the chain for a theme. ThemeAuto defers to the depth.
func ThemeBuilder(theme Theme, depth, width, height int, r *rng.Rng, opts ...Option) *BuilderChain {
	switch theme {
	case ThemeAuto:
		return LevelBuilder(depth, width, height, r, opts...)
	case ThemeTown:
		return TownBuilderChain(depth, width, height, r, opts...)
	case ThemeForest:
		return ForestBuilderChain(depth, width, height, r, opts...)
	case ThemeInterior:
		return InteriorBuilderChain(depth, width, height, r, opts...)
	case ThemeRooms:
		return RoomsBuilderChain(depth, width, height, r, opts...)
	case ThemeCave:
		return CaveBuilderChain(depth, width, height, r, opts...)
	case ThemeDwarfFort:
		return DwarfFortBuilderChain(depth, width, height, r, opts...)
	}
	return RandomBuilder(depth, width, height, r, opts...)
}

// InteriorBuilderChain is a building floor plan: adjoining rooms, start in
// the first, stairs in the last.
func InteriorBuilderChain(depth, width, height int, r *rng.Rng, opts ...Option) *BuilderChain {
	c := NewBuilderChain(depth, width, height, "Abandoned Barracks", r, opts...)
	c.StartWith(&BspInteriorBuilder{})
	c.With(RoomBasedStartingPosition{})
	c.With(RoomBasedStairs{})
	c.With(RoomBasedSpawner{})
	return c
}

// RoomsBuilderChain is the classic rooms and corridors dungeon.
func RoomsBuilderChain(depth, width, height int, r *rng.Rng, opts ...Option) *BuilderChain {
	c := NewBuilderChain(depth, width, height, "Old Cellars", r, opts...)
	c.StartWith(SimpleMapBuilder{})
	c.With(RoomSorter{Sort: SortLeftmost})
	c.With(RoomDrawer{})
	c.With(DoglegCorridors{})
	c.With(RoomBasedStartingPosition{})
	c.With(RoomBasedStairs{})
	c.With(RoomBasedSpawner{})
	return c
}

// CaveBuilderChain is an open cavern with the exit as far from the start as
// the cave allows.
func CaveBuilderChain(depth, width, height int, r *rng.Rng, opts ...Option) *BuilderChain {
	c := NewBuilderChain(depth, width, height, "Limestone Caverns", r, opts...)
	c.StartWith(CellularAutomataBuilder{})
	c.With(AreaStartingPosition{X: XCentre, Y: YMiddle})
	c.With(CullUnreachable{})
	c.With(AreaStartingPosition{X: XLeft, Y: YMiddle})
	c.With(VoronoiSpawning{})
	c.With(DistantExit{})
	return c
}

// Request describes one level to generate.
type Request struct {
	Seed          int64
	Depth         int
	Width, Height int
	Theme         Theme
	// Retries is how many extra seeds to try after a chain fails.
	Retries int
	// NoHistory skips snapshot recording.
	NoHistory bool
	Spawns    spawn.Table
	Logger    *slog.Logger
}

// Level is a finished map plus everything the chain recorded about it.
type Level struct {
	Name      string
	Theme     Theme
	Seed      int64
	Attempts  int
	Map       *gamemap.Map
	Rooms     []gamemap.Rect
	Corridors [][]int
	Start     *gamemap.Position
	Spawns    []spawn.Entry
	History   []*gamemap.Map
}

// Generate builds a level. When a chain fails with a BuildError it is rerun
// from scratch on a new seed, up to req.Retries times.
func Generate(ctx context.Context, req Request) (*Level, error) {
	if req.Width < 10 || req.Height < 10 {
		return nil, fmt.Errorf("map %dx%d is too small", req.Width, req.Height)
	}
	logger := req.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	opts := []Option{WithLogger(logger), WithHistory(!req.NoHistory)}
	if req.Spawns != nil {
		opts = append(opts, WithSpawnTable(req.Spawns))
	}
	theme := req.Theme
	if theme == ThemeAuto {
		theme = themeForDepth(req.Depth)
	}

	seed := req.Seed
	var lastErr error
	for attempt := 0; attempt <= max(req.Retries, 0); attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		chain := ThemeBuilder(theme, req.Depth, req.Width, req.Height, rng.New(seed), opts...)
		err := chain.Build()
		if err == nil {
			d := chain.Data
			return &Level{
				Name:      chain.Name(),
				Theme:     theme,
				Seed:      seed,
				Attempts:  attempt + 1,
				Map:       d.Map,
				Rooms:     d.Rooms,
				Corridors: d.Corridors,
				Start:     d.StartingPosition,
				Spawns:    d.SpawnList,
				History:   d.History,
			}, nil
		}
		var be *BuildError
		if !errors.As(err, &be) || be.Kind == KindChainMisuse || be.Kind == KindMapTooSmall {
			return nil, err
		}
		logger.Warn("level build failed, retrying", "seed", seed, "attempt", attempt+1, "error", err)
		lastErr = err
		seed = nextSeed(seed)
	}
	return nil, fmt.Errorf("generate %s level after %d attempts: %w", theme, max(req.Retries, 0)+1, lastErr)
}

// nextSeed steps a 64-bit LCG so retries walk a fixed seed sequence.
func nextSeed(s int64) int64 {
	return int64(uint64(s)*6364136223846793005 + 1442695040888963407)
}
