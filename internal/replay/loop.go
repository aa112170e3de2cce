package replay

import (
	"context"
	"log/slog"
	"time"

	"dungeon-mapgen/internal/generate"
	"dungeon-mapgen/internal/render"

	"github.com/gdamore/tcell/v2"
)

// NextLevel produces the level shown after the viewer asks for a new one.
type NextLevel func(ctx context.Context) (*generate.Level, error)

// Options configures Run.
type Options struct {
	Interval  time.Duration
	FOVRadius int
	// Next is called on ActionNewLevel. Nil disables the key.
	Next   NextLevel
	Logger *slog.Logger
}

// Run shows level on screen until the user quits, the screen closes or ctx
// is cancelled. The caller owns the screen's Init and Fini.
func Run(ctx context.Context, screen tcell.Screen, level *generate.Level, opts Options) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Interval <= 0 {
		opts.Interval = 120 * time.Millisecond
	}

	v := NewViewer(level, opts.FOVRadius)
	r := render.NewRenderer(screen)
	r.CenterOn(v.Focus())
	var lastErr string

	// Start an async input reader goroutine.
	eventCh := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(eventCh)
				return
			}
			eventCh <- ev
		}
	}()

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	draw := func() {
		r.DrawFrame(v.RenderFrame())
		st := v.Status()
		st.Err = lastErr
		r.DrawHUD(st)
		screen.Show()
	}
	draw()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !v.Playing() {
				continue
			}
			v.Tick()
			draw()
		case ev, ok := <-eventCh:
			if !ok {
				return // screen closed / disconnected
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				r.Resize()
			case *tcell.EventKey:
				switch a := keyToAction(ev); a {
				case ActionQuit:
					return
				case ActionPanLeft:
					r.Pan(-4, 0)
				case ActionPanRight:
					r.Pan(4, 0)
				case ActionPanUp:
					r.Pan(0, -4)
				case ActionPanDown:
					r.Pan(0, 4)
				case ActionNewLevel:
					if opts.Next == nil {
						continue
					}
					screen.Clear()
					r.DrawCentered("Generating…", tcell.StyleDefault.Foreground(tcell.ColorYellow))
					screen.Show()
					next, err := opts.Next(ctx)
					if err != nil {
						logger.Warn("replay: new level failed", "error", err)
						lastErr = err.Error()
						break
					}
					lastErr = ""
					v.Load(next)
					r.CenterOn(v.Focus())
				default:
					v.Apply(a)
				}
			}
			draw()
		}
	}
}
