package generate

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"

	"dungeon-mapgen/internal/gamemap"
	"dungeon-mapgen/internal/rng"
	"dungeon-mapgen/internal/spawn"
)

// InitialMapBuilder creates a map from nothing.
type InitialMapBuilder interface {
	BuildInitial(b *BuildData) error
}

// MetaMapBuilder refines an existing map.
type MetaMapBuilder interface {
	BuildMeta(b *BuildData) error
}

// BuilderChain runs one initial builder followed by any number of meta
// builders over a shared BuildData.
type BuilderChain struct {
	name    string
	starter InitialMapBuilder
	meta    []MetaMapBuilder
	built   bool
	misuse  string
	Data    *BuildData
}

// Option configures a BuilderChain.
type Option func(*BuildData)

// WithLogger routes stage logging to l.
func WithLogger(l *slog.Logger) Option {
	return func(b *BuildData) { b.Logger = l }
}

// WithSpawnTable replaces the default spawn table.
func WithSpawnTable(t spawn.Table) Option {
	return func(b *BuildData) { b.Spawns = t }
}

// WithHistory turns snapshot recording on or off. It is on by default.
func WithHistory(on bool) Option {
	return func(b *BuildData) { b.keepHistory = on }
}

// NewBuilderChain prepares an empty chain for a depth x width x height map.
func NewBuilderChain(depth, width, height int, name string, r *rng.Rng, opts ...Option) *BuilderChain {
	b := &BuildData{
		Depth:       depth,
		Width:       width,
		Height:      height,
		Map:         gamemap.New(depth, width, height, name),
		Rng:         r,
		keepHistory: true,
	}
	for _, o := range opts {
		o(b)
	}
	if b.Spawns == nil {
		b.Spawns = spawn.DefaultTable()
	}
	if b.Logger == nil {
		b.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &BuilderChain{name: name, Data: b}
}

// options rebuilds the Option list behind b, so nested chains share the
// spawn table, logger and history policy.
func (b *BuildData) options() []Option {
	return []Option{
		WithLogger(b.Logger),
		WithSpawnTable(b.Spawns),
		WithHistory(b.keepHistory),
	}
}

// StartWith sets the initial builder. Setting it twice makes Build fail.
func (c *BuilderChain) StartWith(s InitialMapBuilder) *BuilderChain {
	if c.starter != nil {
		c.misuse = "initial builder set twice"
		return c
	}
	c.starter = s
	return c
}

// With appends a meta builder.
func (c *BuilderChain) With(m MetaMapBuilder) *BuilderChain {
	c.meta = append(c.meta, m)
	return c
}

// Name returns the map name the chain was created with.
func (c *BuilderChain) Name() string { return c.name }

// Build runs the chain once. After every stage the map is snapshotted
// unless the last snapshot already shows the same tiles. A stage error
// aborts the run; the BuildData is left as the failing stage saw it.
func (c *BuilderChain) Build() error {
	switch {
	case c.built:
		return c.misuseError("chain already built")
	case c.misuse != "":
		return c.misuseError(c.misuse)
	case c.starter == nil:
		return c.misuseError("no initial builder")
	}
	c.built = true

	b := c.Data
	log := b.Logger.With("chain", c.name)

	stage := stageName(c.starter)
	if err := c.starter.BuildInitial(b); err != nil {
		return fmt.Errorf("%s: %s: %w", c.name, stage, err)
	}
	if b.keepHistory && b.tilesChanged() {
		b.TakeSnapshot()
	}
	log.Debug("stage done", "stage", stage, "snapshots", len(b.History))

	for _, m := range c.meta {
		stage = stageName(m)
		if err := m.BuildMeta(b); err != nil {
			return fmt.Errorf("%s: %s: %w", c.name, stage, err)
		}
		if b.keepHistory && b.tilesChanged() {
			b.TakeSnapshot()
		}
		log.Debug("stage done", "stage", stage, "snapshots", len(b.History))
	}

	log.Info("map built",
		"depth", b.Depth,
		"rooms", len(b.Rooms),
		"spawns", len(b.SpawnList),
		"snapshots", len(b.History),
	)
	return nil
}

func (c *BuilderChain) misuseError(detail string) error {
	return fmt.Errorf("%s: %w", c.name, stageError("chain", KindChainMisuse, detail))
}

func stageName(v any) string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
