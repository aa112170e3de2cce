package replay

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dungeon-mapgen/internal/gamemap"
	"dungeon-mapgen/internal/generate"
	"dungeon-mapgen/internal/spawn"
)

// testLevel has three history frames; the last one matches the final map.
func testLevel() *generate.Level {
	m0 := gamemap.New(2, 10, 6, "Old Cellars")
	m1 := m0.Clone()
	for x := 1; x < 9; x++ {
		m1.Set(x, 2, gamemap.TileFloor)
	}
	m2 := m1.Clone()
	m2.Set(8, 2, gamemap.TileDownStairs)
	return &generate.Level{
		Name:    "Old Cellars",
		Theme:   generate.ThemeRooms,
		Seed:    42,
		Map:     m2.Clone(),
		Start:   &gamemap.Position{X: 1, Y: 2},
		Spawns:  []spawn.Entry{{Idx: m2.Idx(4, 2), Name: "Rat"}},
		History: []*gamemap.Map{m0, m1, m2},
	}
}

func TestNewViewerFrames(t *testing.T) {
	v := NewViewer(testLevel(), 6)
	cur, n := v.Frame()
	assert.Equal(t, 0, cur)
	assert.Equal(t, 3, n, "final map equal to last snapshot is not repeated")
	assert.True(t, v.Playing())

	l := testLevel()
	l.History = nil
	v = NewViewer(l, 6)
	_, n = v.Frame()
	assert.Equal(t, 1, n)
	assert.False(t, v.Playing(), "a single frame has nothing to play")
	assert.True(t, v.AtEnd())
}

func TestViewerStepping(t *testing.T) {
	v := NewViewer(testLevel(), 6)
	steps := []struct {
		action  Action
		want    int
		playing bool
	}{
		{ActionNext, 1, false},
		{ActionNext, 2, false},
		{ActionNext, 2, false},
		{ActionPrev, 1, false},
		{ActionFirst, 0, false},
		{ActionPrev, 0, false},
		{ActionLast, 2, false},
		{ActionTogglePlay, 0, true},
		{ActionTogglePlay, 0, false},
	}
	for i, s := range steps {
		v.Apply(s.action)
		cur, _ := v.Frame()
		assert.Equal(t, s.want, cur, "step %d", i)
		assert.Equal(t, s.playing, v.Playing(), "step %d", i)
	}
}

func TestViewerTickStopsAtEnd(t *testing.T) {
	v := NewViewer(testLevel(), 6)
	v.Tick()
	v.Tick()
	assert.True(t, v.AtEnd())
	assert.False(t, v.Playing())
	v.Tick()
	cur, _ := v.Frame()
	assert.Equal(t, 2, cur)
}

func TestRenderFrameOverlaysOnlyAtEnd(t *testing.T) {
	v := NewViewer(testLevel(), 6)
	f := v.RenderFrame()
	assert.Nil(t, f.Start)
	assert.Empty(t, f.Spawns)

	v.Apply(ActionLast)
	f = v.RenderFrame()
	require.NotNil(t, f.Start)
	assert.Len(t, f.Spawns, 1)

	v.Apply(ActionToggleSpawns)
	assert.Empty(t, v.RenderFrame().Spawns)
}

func TestRenderFrameFOV(t *testing.T) {
	l := testLevel()
	v := NewViewer(l, 3)
	v.Apply(ActionLast)
	v.Apply(ActionToggleFOV)

	f := v.RenderFrame()
	require.True(t, f.FOV)
	assert.NotSame(t, l.Map, f.Map, "fov lights a copy")
	assert.True(t, f.Map.Visible[f.Map.Idx(2, 2)])
	assert.False(t, f.Map.Visible[f.Map.Idx(8, 2)], "outside the radius")
	assert.False(t, l.Map.Visible[l.Map.Idx(2, 2)], "level map untouched")

	l.Start = nil
	v = NewViewer(l, 3)
	v.Apply(ActionToggleFOV)
	assert.False(t, v.RenderFrame().FOV, "no start, no fov")
}

func TestStatus(t *testing.T) {
	v := NewViewer(testLevel(), 6)
	st := v.Status()
	assert.Equal(t, "Old Cellars", st.Title)
	assert.Contains(t, st.Info, "seed 42")
	assert.Contains(t, st.Info, "frame 1/3")
	assert.NotEmpty(t, st.Lore)

	v.Apply(ActionLast)
	assert.Contains(t, v.Status().Info, "spawns 1")
}

func TestKeyToAction(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want Action
	}{
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), ActionPrev},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), ActionNext},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionQuit},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), ActionTogglePlay},
		{tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone), ActionToggleFOV},
		{tcell.NewEventKey(tcell.KeyRune, 'e', tcell.ModNone), ActionToggleSpawns},
		{tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone), ActionNewLevel},
		{tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone), ActionPanDown},
		{tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), ActionNone},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, keyToAction(tc.ev), "key %v rune %q", tc.ev.Key(), tc.ev.Rune())
	}
}

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, ss.Init())
	ss.SetSize(60, 20)
	t.Cleanup(ss.Fini)
	return ss
}

func runAsync(ctx context.Context, ss tcell.Screen, opts Options) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		Run(ctx, ss, testLevel(), opts)
		close(done)
	}()
	return done
}

func TestRunQuitsOnKey(t *testing.T) {
	ss := newSimScreen(t)
	ss.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case <-runAsync(context.Background(), ss, Options{Interval: time.Hour}):
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after q")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ss := newSimScreen(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, ss, Options{Interval: time.Hour})
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunNewLevel(t *testing.T) {
	ss := newSimScreen(t)
	calls := make(chan struct{}, 2)
	opts := Options{
		Interval: time.Hour,
		Next: func(context.Context) (*generate.Level, error) {
			calls <- struct{}{}
			if len(calls) == 1 {
				return nil, errors.New("no luck")
			}
			return testLevel(), nil
		},
	}
	ss.InjectKey(tcell.KeyRune, 'n', tcell.ModNone)
	ss.InjectKey(tcell.KeyRune, 'n', tcell.ModNone)
	ss.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case <-runAsync(context.Background(), ss, opts):
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
	assert.Len(t, calls, 2)
}
