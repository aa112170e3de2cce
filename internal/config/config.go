// Package config holds the settings shared by the local viewer and the SSH
// server.
package config

import (
	"errors"
	"fmt"
	"time"

	"dungeon-mapgen/internal/generate"
)

// Config is the full settings file.
type Config struct {
	// Seed 0 means "pick one from the clock".
	Seed    int64  `yaml:"seed"`
	Depth   int    `yaml:"depth"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Theme   string `yaml:"theme"`
	History bool   `yaml:"history"`
	Retries int    `yaml:"retries"`

	Replay ReplayConfig `yaml:"replay"`
	Server ServerConfig `yaml:"server"`
}

// ReplayConfig tunes the history viewer.
type ReplayConfig struct {
	// Interval between frames while autoplaying.
	Interval  time.Duration `yaml:"interval"`
	FOVRadius int           `yaml:"fov_radius"`
}

// ServerConfig configures the SSH server.
type ServerConfig struct {
	Port    int    `yaml:"port"`
	HostKey string `yaml:"host_key"`
	// MaxSessions caps concurrent viewers; 0 means unlimited.
	MaxSessions int  `yaml:"max_sessions"`
	LogLevels   bool `yaml:"log_levels"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Depth:   1,
		Width:   80,
		Height:  50,
		History: true,
		Retries: 5,
		Replay: ReplayConfig{
			Interval:  120 * time.Millisecond,
			FOVRadius: 8,
		},
		Server: ServerConfig{
			Port:        2222,
			HostKey:     "server_host_key",
			MaxSessions: 16,
			LogLevels:   true,
		},
	}
}

// Validate reports every problem with c at once.
func (c Config) Validate() error {
	var errs []error
	if c.Depth < 1 {
		errs = append(errs, fmt.Errorf("depth must be at least 1, got %d", c.Depth))
	}
	if c.Width < 20 || c.Height < 20 {
		errs = append(errs, fmt.Errorf("map must be at least 20x20, got %dx%d", c.Width, c.Height))
	}
	if _, err := generate.ParseTheme(c.Theme); err != nil {
		errs = append(errs, err)
	}
	if c.Retries < 0 {
		errs = append(errs, fmt.Errorf("retries must not be negative, got %d", c.Retries))
	}
	if c.Replay.Interval <= 0 {
		errs = append(errs, fmt.Errorf("replay interval must be positive, got %s", c.Replay.Interval))
	}
	if c.Replay.FOVRadius < 1 {
		errs = append(errs, fmt.Errorf("fov radius must be positive, got %d", c.Replay.FOVRadius))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server port %d out of range", c.Server.Port))
	}
	if c.Server.MaxSessions < 0 {
		errs = append(errs, fmt.Errorf("max sessions must not be negative, got %d", c.Server.MaxSessions))
	}
	return errors.Join(errs...)
}

// Request turns the settings into a generation request for seed.
func (c Config) Request(seed int64) (generate.Request, error) {
	theme, err := generate.ParseTheme(c.Theme)
	if err != nil {
		return generate.Request{}, err
	}
	return generate.Request{
		Seed:      seed,
		Depth:     c.Depth,
		Width:     c.Width,
		Height:    c.Height,
		Theme:     theme,
		Retries:   c.Retries,
		NoHistory: !c.History,
	}, nil
}
