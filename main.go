// dungeon-mapgen generates a level and replays its construction in the
// terminal.
//
//	dungeon-mapgen [-config configs/mapgen.yaml] [-seed N] [-depth N] [-theme NAME] [-width W] [-height H] [-dump]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"dungeon-mapgen/internal/config"
	"dungeon-mapgen/internal/generate"
	"dungeon-mapgen/internal/levellog"
	"dungeon-mapgen/internal/render"
	"dungeon-mapgen/internal/replay"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfgPath := flag.String("config", "", "Path to a YAML settings file")
	seed := flag.Int64("seed", 0, "Level seed (0 picks one from the clock)")
	depth := flag.Int("depth", 0, "Dungeon depth (overrides the config file)")
	theme := flag.String("theme", "", "Level theme: auto, town, forest, interior, rooms, cave, dwarf-fort, random")
	width := flag.Int("width", 0, "Map width in tiles")
	height := flag.Int("height", 0, "Map height in tiles")
	dump := flag.Bool("dump", false, "Print the finished level and exit instead of starting the viewer")
	verbose := flag.Bool("v", false, "Log build stages to stderr")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(*cfgPath, overrides{*seed, *depth, *theme, *width, *height}, *dump, logger); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type overrides struct {
	seed          int64
	depth         int
	theme         string
	width, height int
}

func (o overrides) apply(cfg config.Config) (config.Config, error) {
	if o.seed != 0 {
		cfg.Seed = o.seed
	}
	if o.depth != 0 {
		cfg.Depth = o.depth
	}
	if o.theme != "" {
		cfg.Theme = o.theme
	}
	if o.width != 0 {
		cfg.Width = o.width
	}
	if o.height != 0 {
		cfg.Height = o.height
	}
	return cfg, cfg.Validate()
}

func run(cfgPath string, o overrides, dump bool, logger *slog.Logger) error {
	cfg, err := config.LoadFile(cfgPath)
	if err != nil {
		return err
	}
	if cfg, err = o.apply(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	gen := func(ctx context.Context, seed int64) (*generate.Level, error) {
		req, err := cfg.Request(seed)
		if err != nil {
			return nil, err
		}
		req.Logger = logger
		level, err := generate.Generate(ctx, req)
		if err != nil {
			return nil, err
		}
		levellog.Save(levellog.FromLevel(level, "local", ""), logger)
		return level, nil
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	level, err := gen(ctx, seed)
	if err != nil {
		return err
	}

	if dump {
		fmt.Printf("%s  depth %d  seed %d\n", level.Name, level.Map.Depth, level.Seed)
		fmt.Print(render.Text(render.Frame{Map: level.Map, Spawns: level.Spawns, Start: level.Start}))
		return nil
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	replay.Run(ctx, screen, level, replay.Options{
		Interval:  cfg.Replay.Interval,
		FOVRadius: cfg.Replay.FOVRadius,
		Logger:    logger,
		Next: func(ctx context.Context) (*generate.Level, error) {
			return gen(ctx, time.Now().UnixNano())
		},
	})
	return nil
}
