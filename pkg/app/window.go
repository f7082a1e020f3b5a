package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/decker502/shooterboi/pkg/logger"
)

// windowResetFrames 退出全屏后等待的帧数，窗口管理器需要时间处理
const windowResetFrames = 3

// EbitenWindow 用 ebiten 的全局窗口接口实现 game.Window
type EbitenWindow struct {
	width, height int
	grabbed       bool

	// 退出全屏后延迟恢复窗口大小
	pendingReset   bool
	resetCountdown int

	log *zap.Logger
}

// NewEbitenWindow 创建窗口控制器
//
// 参数:
//   - width, height: 退出全屏后恢复的窗口大小
func NewEbitenWindow(width, height int) *EbitenWindow {
	return &EbitenWindow{width: width, height: height, log: logger.Named("window")}
}

// SetCursorGrabbed 对局中锁定并隐藏光标，菜单中恢复
func (w *EbitenWindow) SetCursorGrabbed(grabbed bool) {
	w.grabbed = grabbed
	if grabbed {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
}

// CursorGrabbed 光标是否被锁定
func (w *EbitenWindow) CursorGrabbed() bool {
	return w.grabbed
}

// SetFullscreen 切换全屏
func (w *EbitenWindow) SetFullscreen(fullscreen bool) {
	if fullscreen == ebiten.IsFullscreen() {
		return
	}
	ebiten.SetFullscreen(fullscreen)
	if fullscreen {
		return
	}
	if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
		ebiten.RestoreWindow()
	}
	w.pendingReset = true
	w.resetCountdown = windowResetFrames
	w.log.Debug("exit fullscreen, window size reset scheduled", zap.Int("frames", windowResetFrames))
}

// update 每帧调用，处理延迟的窗口大小恢复
func (w *EbitenWindow) update() {
	if !w.pendingReset {
		return
	}
	w.resetCountdown--
	if w.resetCountdown > 0 {
		return
	}
	w.pendingReset = false
	ebiten.SetWindowSize(w.width, w.height)
	w.log.Debug("window size restored", zap.Int("width", w.width), zap.Int("height", w.height))
}
