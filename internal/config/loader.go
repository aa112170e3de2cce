package config

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Loader reads YAML settings files from a file system.
type Loader struct {
	fsys fs.FS
}

// NewLoader reads files relative to basePath on disk.
func NewLoader(basePath string) *Loader {
	return &Loader{fsys: os.DirFS(basePath)}
}

// NewFSLoader reads files from fsys.
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Load reads name over the defaults and validates the result. Keys missing
// from the file keep their default value; unknown keys are an error.
func (l *Loader) Load(name string) (Config, error) {
	cfg := Default()
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return cfg, fmt.Errorf("failed to read %s: %w", name, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid %s: %w", name, err)
	}
	return cfg, nil
}

// LoadFile loads a settings file by path. An empty path gives the defaults.
func LoadFile(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	return NewLoader(filepath.Dir(path)).Load(filepath.Base(path))
}
