package app

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/shooterboi/pkg/config"
	"github.com/decker502/shooterboi/pkg/game"
	"github.com/decker502/shooterboi/pkg/gui"
	"github.com/decker502/shooterboi/pkg/input"
	"github.com/decker502/shooterboi/pkg/render"
	"github.com/decker502/shooterboi/pkg/scenes"
)

type fakeBackend struct {
	err     error
	renders int
	resized int
}

func (b *fakeBackend) Resize(int, int, float64) { b.resized++ }

func (b *fakeBackend) Render(render.RenderingInfo, []render.RenderQueueData) error {
	b.renders++
	return b.err
}

type fakeWindow struct{ grabbed bool }

func (w *fakeWindow) SetCursorGrabbed(grabbed bool) { w.grabbed = grabbed }
func (w *fakeWindow) SetFullscreen(bool)            {}

// stubScene 记录回调次数，Init 时打开游戏画面渲染
type stubScene struct {
	updates, prerenders int
	op                  game.SceneOp
}

func (s *stubScene) Init(ctx *game.Context, _ game.Message) { ctx.Renderer.RenderGame = true }
func (s *stubScene) Deinit(*game.Context)                   {}

func (s *stubScene) Update(*game.Context, float64) game.SceneOp {
	s.updates++
	op := s.op
	s.op = game.None()
	return op
}

func (s *stubScene) Prerender(*game.Context, float64) { s.prerenders++ }

func newTestApp(t *testing.T) (*App, *fakeBackend) {
	t.Helper()
	audio := game.NewAudioManager(nil, nil)
	require.NoError(t, audio.LoadClips(context.Background(), game.DefaultClips()))

	backend := &fakeBackend{}
	gctx := &game.Context{
		Window:   &fakeWindow{},
		Renderer: render.NewRenderer(backend, 800, 600),
		GUI:      gui.NewEbitenUI(),
		Audio:    audio,
		Database: game.NewScoreDatabase(nil),
		Settings: game.NewSettingsManager(nil),
		Input:    input.NewSnapshot(),
		Config:   config.DefaultGameplayConfig(),
		Rand:     rand.New(rand.NewPCG(1, 2)),
	}
	return newApp(gctx, 800, 600), backend
}

func TestStepTerminatesOnEmptyStack(t *testing.T) {
	a, _ := newTestApp(t)
	assert.ErrorIs(t, a.step(0.016), ebiten.Termination)
}

func TestStepRunsTopScene(t *testing.T) {
	a, backend := newTestApp(t)
	s := &stubScene{}
	a.stack.Apply(game.Push(s, nil))

	require.NoError(t, a.step(0.5))
	require.NoError(t, a.step(0.5))

	assert.Equal(t, 2, s.updates)
	assert.Equal(t, 2, s.prerenders)
	assert.Equal(t, 2, backend.renders)
	assert.InDelta(t, 1.0, a.elapsed, 1e-9)
}

func TestStepExitsAfterPopAll(t *testing.T) {
	a, _ := newTestApp(t)
	s := &stubScene{op: game.PopAll()}
	a.stack.Apply(game.Push(s, nil))

	var err error
	for i := 0; i < 3 && err == nil; i++ {
		err = a.step(0.016)
	}
	assert.ErrorIs(t, err, ebiten.Termination)
	assert.Equal(t, 0, a.stack.Len())
}

func TestRenderErrorPolicy(t *testing.T) {
	a, backend := newTestApp(t)
	a.stack.Apply(game.Push(&stubScene{}, nil))

	backend.err = render.ErrSurfaceLost
	require.NoError(t, a.step(0.016))
	assert.Equal(t, 1, backend.resized, "lost surface should be reconfigured")

	backend.err = render.ErrSurfaceOutdated
	require.NoError(t, a.step(0.016))
	assert.Equal(t, 2, backend.resized)

	backend.err = errors.New("driver hiccup")
	require.NoError(t, a.step(0.016))
	assert.Equal(t, 2, backend.resized, "unknown errors are only logged")

	backend.err = render.ErrOutOfMemory
	err := a.step(0.016)
	require.Error(t, err)
	assert.ErrorIs(t, err, render.ErrOutOfMemory)
}

func TestStartShowsMainMenu(t *testing.T) {
	a, _ := newTestApp(t)
	a.start(nil)

	require.Equal(t, 1, a.stack.Len())
	assert.IsType(t, &scenes.MainMenuScene{}, a.stack.Top())
	assert.True(t, a.ctx.Audio.HasChannel("bgm"))
}

func TestStartQuickStartPushesGame(t *testing.T) {
	a, _ := newTestApp(t)
	a.start(&QuickStart{Mode: game.ModeElimination, Difficulty: game.DifficultyHard})

	require.Equal(t, 3, a.stack.Len())
	assert.IsType(t, &scenes.EliminationScene{}, a.stack.Top())
	assert.True(t, a.ctx.Window.(*fakeWindow).grabbed)
	assert.False(t, a.ctx.Audio.HasChannel("bgm"))
}
