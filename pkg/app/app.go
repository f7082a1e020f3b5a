// Package app 把场景栈接到 ebiten 主循环上
//
// 每个 tick：采集输入 -> 栈顶场景 Update -> Prerender -> 提交渲染 -> 回收音效。
// 桌面入口 main.go 通过 NewApp() 创建并交给 ebiten.RunGame。
package app

import (
	"context"
	"fmt"
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"

	"github.com/decker502/shooterboi/pkg/config"
	"github.com/decker502/shooterboi/pkg/game"
	"github.com/decker502/shooterboi/pkg/gui"
	"github.com/decker502/shooterboi/pkg/input"
	"github.com/decker502/shooterboi/pkg/logger"
	"github.com/decker502/shooterboi/pkg/render"
	"github.com/decker502/shooterboi/pkg/scenes"
)

// maxFrameDelta 单帧时间上限，窗口拖动或断点恢复后避免一次性推进太久
const maxFrameDelta = 0.25

var clearColor = color.RGBA{R: 16, G: 16, B: 24, A: 255}

// QuickStart 跳过菜单直接进入对局
type QuickStart struct {
	Mode       game.GameMode
	Difficulty game.Difficulty
}

// Config 定义应用启动配置
type Config struct {
	// Gameplay 玩法参数，为 nil 时使用内置默认值
	Gameplay *config.GameplayConfig
	// Storage 为 nil 时设置和成绩只保存在内存中
	Storage *gdata.Manager
	// QuickStart 非 nil 时在菜单之上直接压入对局场景
	QuickStart *QuickStart
}

// App 实现 ebiten.Game 接口
type App struct {
	ctx     *game.Context
	stack   *game.SceneStack
	poller  *input.Poller
	window  *EbitenWindow
	backend *render.PreviewBackend
	ui      *gui.EbitenUI
	audio   *game.AudioManager

	width, height int
	elapsed       float64
	lastTick      time.Time
	log           *zap.Logger
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
//
// 参数:
//   - ctx: 控制音频合成，取消后返回错误
//   - cfg: 启动配置
//
// 返回:
//   - *App: 已压入初始场景的应用
//   - error: 音频资源合成失败时返回错误
func NewApp(ctx context.Context, cfg Config) (*App, error) {
	gameplay := cfg.Gameplay
	if gameplay == nil {
		gameplay = config.DefaultGameplayConfig()
	}
	width, height := gameplay.Window.Width, gameplay.Window.Height

	settings := game.NewSettingsManager(cfg.Storage)
	audioManager := game.NewAudioManager(audio.NewContext(game.SampleRate), settings)
	if err := audioManager.LoadClips(ctx, game.DefaultClips()); err != nil {
		return nil, fmt.Errorf("failed to load audio: %w", err)
	}

	backend := render.NewPreviewBackend(width, height)
	ui := gui.NewEbitenUI()
	window := NewEbitenWindow(width, height)
	window.SetFullscreen(settings.GetSettings().Fullscreen)

	seed := uint64(time.Now().UnixNano())
	gctx := &game.Context{
		Window:   window,
		Renderer: render.NewRenderer(backend, width, height),
		GUI:      ui,
		Audio:    audioManager,
		Database: game.NewScoreDatabase(cfg.Storage),
		Settings: settings,
		Input:    input.NewSnapshot(),
		Config:   gameplay,
		Rand:     rand.New(rand.NewPCG(seed, seed>>1|1)),
	}

	a := newApp(gctx, width, height)
	a.poller = input.NewPoller()
	a.window = window
	a.backend = backend
	a.ui = ui
	a.audio = audioManager
	a.start(cfg.QuickStart)
	return a, nil
}

func newApp(gctx *game.Context, width, height int) *App {
	return &App{
		ctx:    gctx,
		stack:  game.NewSceneStack(gctx),
		width:  width,
		height: height,
		log:    logger.Named("app"),
	}
}

// start 压入初始场景；快速开始时保留菜单和模式选择，退出对局后能正常返回
func (a *App) start(quick *QuickStart) {
	a.stack.Apply(game.Push(scenes.NewMainMenuScene(), nil))
	if quick == nil {
		return
	}
	a.log.Info("quick start",
		zap.String("mode", quick.Mode.Key()),
		zap.String("difficulty", quick.Difficulty.String()))
	a.stack.Apply(game.Push(scenes.NewGameSelectionScene(), nil))
	a.stack.Apply(game.Push(scenes.NewGameScene(a.ctx, quick.Mode, quick.Difficulty), nil))
}

// Update 更新游戏逻辑
// 每个 tick 调用一次；场景栈清空时返回 ebiten.Termination
func (a *App) Update() error {
	now := time.Now()
	dt := 1.0 / float64(ebiten.TPS())
	if !a.lastTick.IsZero() {
		dt = min(now.Sub(a.lastTick).Seconds(), maxFrameDelta)
	}
	a.lastTick = now

	a.window.update()
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		a.ctx.Settings.SetFullscreen(fullscreen)
		a.window.SetFullscreen(fullscreen)
	}

	a.ctx.Input = a.poller.Poll(a.window.CursorGrabbed())
	if err := a.step(dt); err != nil {
		return err
	}
	a.backend.ShowCrosshair = a.ctx.Renderer.RenderGame && a.ctx.Renderer.RenderCrosshair
	a.audio.Collect()
	return nil
}

// step 推进一帧：场景更新、预渲染、提交渲染
func (a *App) step(dt float64) error {
	a.ctx.GUI.Begin(a.ctx.Input, a.width, a.height)
	if !a.stack.Update(dt) {
		a.log.Info("scene stack empty, exiting")
		return ebiten.Termination
	}
	a.stack.Prerender(dt)
	a.elapsed += dt
	return a.render()
}

// render 提交本帧渲染并按错误类型处理
//
// 返回:
//   - error: 只有不可恢复的错误才返回，主循环随之终止
func (a *App) render() error {
	r := a.ctx.Renderer
	err := r.Render(a.elapsed)
	switch {
	case err == nil:
		return nil
	case render.IsRecoverable(err):
		a.log.Debug("reconfiguring render surface", zap.Error(err))
		r.Reconfigure()
		return nil
	case render.IsFatal(err):
		a.log.Error("fatal render error", zap.Error(err))
		return fmt.Errorf("render: %w", err)
	default:
		a.log.Warn("render error", zap.Error(err))
		return nil
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(clearColor)
	if a.ctx.Renderer.RenderGame {
		a.backend.Draw(screen)
	}
	if a.ctx.Renderer.RenderGUI {
		a.ui.Draw(screen)
	}
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时两侧填黑，画面用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

// Flush 退出前保存设置
func (a *App) Flush() {
	if err := a.ctx.Settings.Save(); err != nil {
		a.log.Warn("failed to save settings", zap.Error(err))
	}
}
