// Package levellog appends a summary of every generated level to a JSONL
// file under the user's data directory.
package levellog

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"dungeon-mapgen/internal/generate"
)

const (
	appDir   = "dungeon-mapgen"
	fileName = "levels.jsonl"
)

// Record is one line of levels.jsonl.
type Record struct {
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	User      string    `json:"user,omitempty"`
	Name      string    `json:"name"`
	Theme     string    `json:"theme"`
	Seed      int64     `json:"seed"`
	Depth     int       `json:"depth"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Attempts  int       `json:"attempts"`
	Rooms     int       `json:"rooms"`
	Walkable  int       `json:"walkable"`
	Spawns    int       `json:"spawns"`
	Snapshots int       `json:"snapshots"`
	Start     []int     `json:"start,omitempty"`
}

// FromLevel summarises l. source says who asked for it ("local" or "ssh").
func FromLevel(l *generate.Level, source, user string) Record {
	rec := Record{
		Timestamp: time.Now().UTC(),
		Source:    source,
		User:      user,
		Name:      l.Name,
		Theme:     string(l.Theme),
		Seed:      l.Seed,
		Depth:     l.Map.Depth,
		Width:     l.Map.Width,
		Height:    l.Map.Height,
		Attempts:  l.Attempts,
		Rooms:     len(l.Rooms),
		Walkable:  l.Map.WalkableCount(),
		Spawns:    len(l.Spawns),
		Snapshots: len(l.History),
	}
	if l.Start != nil {
		rec.Start = []int{l.Start.X, l.Start.Y}
	}
	return rec
}

// Save appends rec as a single JSON line to levels.jsonl.
// Errors are logged but never returned.
func Save(rec Record, logger *slog.Logger) {
	dir, err := Dir()
	if err != nil {
		logger.Warn("level log: cannot determine data dir", "error", err)
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("level log: cannot create data dir", "error", err)
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, fileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Warn("level log: cannot open file", "error", err)
		return
	}
	defer f.Close()
	data, err := json.Marshal(rec)
	if err != nil {
		logger.Warn("level log: cannot marshal JSON", "error", err)
		return
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		logger.Warn("level log: write failed", "error", err)
	}
}

// Dir is $XDG_DATA_HOME/dungeon-mapgen, defaulting XDG_DATA_HOME to
// ~/.local/share.
func Dir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appDir), nil
}
