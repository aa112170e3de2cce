// dungeon-mapgen-server serves the level replay viewer over SSH. Every
// connection gets its own freshly generated level. Build:
//
//	go build -o dungeon-mapgen-server ./cmd/server
//
// Usage:
//
//	./dungeon-mapgen-server [--config configs/mapgen.yaml] [--port 2222] [--key server_host_key]
//
// Connect, optionally asking for a particular level:
//
//	ssh -t -p 2222 localhost
//	ssh -t -p 2222 localhost seed=1234 theme=cave depth=5
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"dungeon-mapgen/internal/config"
	"dungeon-mapgen/internal/generate"
	"dungeon-mapgen/internal/levellog"
	"dungeon-mapgen/internal/replay"
	internalssh "dungeon-mapgen/internal/ssh"

	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"
)

const maxNameBytes = 16

func main() {
	cfgPath := flag.String("config", "", "Path to a YAML settings file")
	port := flag.Int("port", 0, "SSH server port (overrides the config file)")
	keyFile := flag.String("key", "", "Path to the PEM-encoded host key, auto-generated if absent (overrides the config file)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.LoadFile(*cfgPath)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *keyFile != "" {
		cfg.Server.HostKey = *keyFile
	}

	signer, err := loadOrCreateHostKey(cfg.Server.HostKey, logger)
	if err != nil {
		logger.Error("host key", "error", err)
		os.Exit(1)
	}

	h := newHandler(cfg, logger)
	srv := &gossh.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: h.handleSession,
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// Accept any authentication; the server only shows generated maps.
		HostSigners: []gossh.Signer{signer},
	}

	logger.Info("dungeon-mapgen SSH server listening", "port", cfg.Server.Port)
	logger.Info("connect with", "cmd", fmt.Sprintf("ssh -t -p %d -o StrictHostKeyChecking=no localhost", cfg.Server.Port))
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// ─── sessions ───────────────────────────────────────────────────────────────

type handler struct {
	cfg    config.Config
	logger *slog.Logger
	// slots caps concurrent viewers; nil means unlimited.
	slots chan struct{}
}

func newHandler(cfg config.Config, logger *slog.Logger) *handler {
	h := &handler{cfg: cfg, logger: logger}
	if cfg.Server.MaxSessions > 0 {
		h.slots = make(chan struct{}, cfg.Server.MaxSessions)
	}
	return h
}

// handleSession is the gliderlabs SSH handler for one connection.
// It blocks for the duration of the connection so the SSH session stays open.
func (h *handler) handleSession(s gossh.Session) {
	name := sanitizeName(s.User())
	logger := h.logger.With("user", name, "remote", s.RemoteAddr().String())

	if h.slots != nil {
		select {
		case h.slots <- struct{}{}:
			defer func() { <-h.slots }()
		default:
			fmt.Fprintln(s, "The server is full. Try again in a minute.")
			return
		}
	}

	if _, _, ok := s.Pty(); !ok {
		fmt.Fprintf(s, "The viewer requires a PTY. Connect with: ssh -t -p %d <host>\n", h.cfg.Server.Port)
		return
	}

	req, err := parseCommand(s.Command(), h.cfg, newSeed())
	if err != nil {
		fmt.Fprintf(s, "%v\nUsage: ssh -t -p %d <host> [seed=N] [theme=NAME] [depth=N]\n", err, h.cfg.Server.Port)
		return
	}
	req.Logger = logger

	gen := func(ctx context.Context, req generate.Request) (*generate.Level, error) {
		level, err := generate.Generate(ctx, req)
		if err != nil {
			return nil, err
		}
		logger.Info("level generated", "name", level.Name, "seed", level.Seed, "attempts", level.Attempts)
		if h.cfg.Server.LogLevels {
			levellog.Save(levellog.FromLevel(level, "ssh", name), logger)
		}
		return level, nil
	}

	level, err := gen(s.Context(), req)
	if err != nil {
		fmt.Fprintf(s, "Level generation failed: %v\n", err)
		logger.Warn("level generation failed", "error", err)
		return
	}

	screen, err := internalssh.NewScreen(s)
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}
	defer screen.Fini()

	replay.Run(s.Context(), screen, level, replay.Options{
		Interval:  h.cfg.Replay.Interval,
		FOVRadius: h.cfg.Replay.FOVRadius,
		Logger:    logger,
		Next: func(ctx context.Context) (*generate.Level, error) {
			next := req
			next.Seed = newSeed()
			return gen(ctx, next)
		},
	})
	logger.Info("session closed")
}

// parseCommand reads key=value overrides from the SSH command line.
func parseCommand(args []string, cfg config.Config, seed int64) (generate.Request, error) {
	if cfg.Seed != 0 {
		seed = cfg.Seed
	}
	req, err := cfg.Request(seed)
	if err != nil {
		return req, err
	}
	for _, arg := range args {
		key, val, ok := strings.Cut(arg, "=")
		if !ok {
			return req, fmt.Errorf("argument %q is not key=value", arg)
		}
		switch key {
		case "seed":
			n, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return req, fmt.Errorf("bad seed %q", val)
			}
			req.Seed = n
		case "depth":
			n, err := strconv.Atoi(val)
			if err != nil || n < 1 {
				return req, fmt.Errorf("bad depth %q", val)
			}
			req.Depth = n
		case "theme":
			t, err := generate.ParseTheme(val)
			if err != nil {
				return req, err
			}
			req.Theme = t
		default:
			return req, fmt.Errorf("unknown argument %q", key)
		}
	}
	return req, nil
}

func newSeed() int64 { return time.Now().UnixNano() }

// sanitizeName strips control characters from an SSH user name and cuts it
// to maxNameBytes without splitting a rune.
func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		if b.Len()+utf8.RuneLen(r) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ─── host key ───────────────────────────────────────────────────────────────

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, logger *slog.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Info("loaded host key", "path", path)
			return signer, nil
		}
	}

	logger.Info("generating new ed25519 host key", "path", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Persist for next run (non-fatal if it fails).
	pemBlock, err := xssh.MarshalPrivateKey(key, "dungeon-mapgen server")
	if err == nil {
		err = os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600)
	}
	if err != nil {
		logger.Warn("cannot persist host key", "path", path, "error", err)
	}
	return signer, nil
}
