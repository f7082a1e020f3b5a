package scenes

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/shooterboi/pkg/config"
	"github.com/decker502/shooterboi/pkg/game"
	"github.com/decker502/shooterboi/pkg/gui"
	"github.com/decker502/shooterboi/pkg/input"
	"github.com/decker502/shooterboi/pkg/render"
)

// fakeUI 按 id 预设点击和滑块值，记录本帧绘制的文本
type fakeUI struct {
	clicks  map[string]bool
	sliders map[string]float64
	labels  []string
	buttons []string
}

func newFakeUI() *fakeUI {
	return &fakeUI{clicks: make(map[string]bool), sliders: make(map[string]float64)}
}

// click 下一次绘制该按钮时返回 true
func (u *fakeUI) click(id string) { u.clicks[id] = true }

func (u *fakeUI) Begin(*input.Snapshot, int, int) {
	u.labels = u.labels[:0]
	u.buttons = u.buttons[:0]
}

func (u *fakeUI) Size() (int, int) { return 800, 600 }

func (u *fakeUI) Panel(gui.Rect) {}

func (u *fakeUI) Label(text string, _, _ float64) {
	u.labels = append(u.labels, text)
}

func (u *fakeUI) Button(id, _ string, _ gui.Rect) bool {
	u.buttons = append(u.buttons, id)
	if u.clicks[id] {
		delete(u.clicks, id)
		return true
	}
	return false
}

func (u *fakeUI) Slider(id, _ string, _ gui.Rect, value, _, _ float64) (float64, bool) {
	if v, ok := u.sliders[id]; ok {
		delete(u.sliders, id)
		return v, true
	}
	return value, false
}

// hasLabel 本帧是否绘制了包含 sub 的文本
func (u *fakeUI) hasLabel(sub string) bool {
	for _, l := range u.labels {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}

type fakeAudio struct {
	sounds   []string
	channels map[string]string
	volume   float64
}

func newFakeAudio() *fakeAudio {
	return &fakeAudio{channels: make(map[string]string), volume: 1}
}

func (a *fakeAudio) PlaySound(id string) bool {
	a.sounds = append(a.sounds, id)
	return true
}

func (a *fakeAudio) PlayChannel(name, clip string) bool {
	if _, ok := a.channels[name]; !ok {
		a.channels[name] = clip
	}
	return true
}

func (a *fakeAudio) StopChannel(name string)     { delete(a.channels, name) }
func (a *fakeAudio) HasChannel(name string) bool { _, ok := a.channels[name]; return ok }
func (a *fakeAudio) SetVolume(v float64)         { a.volume = v }
func (a *fakeAudio) Volume() float64             { return a.volume }
func (a *fakeAudio) count(id string) (n int) {
	for _, s := range a.sounds {
		if s == id {
			n++
		}
	}
	return n
}

type fakeWindow struct {
	grabbed    bool
	fullscreen bool
}

func (w *fakeWindow) SetCursorGrabbed(grabbed bool) { w.grabbed = grabbed }
func (w *fakeWindow) SetFullscreen(fullscreen bool) { w.fullscreen = fullscreen }

// testEnv 场景测试用的协作者
type testEnv struct {
	ctx    *game.Context
	ui     *fakeUI
	audio  *fakeAudio
	window *fakeWindow
	in     *input.Snapshot
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		ui:     newFakeUI(),
		audio:  newFakeAudio(),
		window: &fakeWindow{},
		in:     input.NewSnapshot(),
	}
	env.ctx = &game.Context{
		Window:   env.window,
		Renderer: render.NewRenderer(nil, 800, 600),
		GUI:      env.ui,
		Audio:    env.audio,
		Database: game.NewScoreDatabase(nil),
		Settings: game.NewSettingsManager(nil),
		Input:    env.in,
		Config:   config.DefaultGameplayConfig(),
		Rand:     rand.New(rand.NewPCG(1, 2)),
	}
	return env
}

// update 推进一帧，帧末清空输入边沿
func (e *testEnv) update(s game.Scene, dt float64) game.SceneOp {
	e.ui.Begin(e.in, 800, 600)
	op := s.Update(e.ctx, dt)
	e.in.Clear()
	return op
}

// startRound 从 Preround 推进到 Round 的第一帧
// Prepare 的最后一帧用很小的 dt，避免敌人在生成当帧走完计时
func (e *testEnv) startRound(t *testing.T, s game.Scene) {
	t.Helper()
	e.in.PressMouse(ebiten.MouseButtonRight, true)
	e.update(s, 0.016)
	prepare := e.ctx.Config.Round.PrepareDuration
	e.update(s, prepare-0.01)
	e.update(s, 0.02)
}
