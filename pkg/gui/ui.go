// Package gui 即时模式的菜单与 HUD 控件
//
// 场景每帧在 Update 中调用控件函数，交互结果同步返回；
// EbitenUI 记录本帧的绘制指令，在 Draw 回调中统一绘制。
package gui

import "github.com/decker502/shooterboi/pkg/input"

// Rect 屏幕矩形（像素）
type Rect struct {
	X, Y, W, H float64
}

// Contains 点是否在矩形内
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Center 返回矩形中心
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// UI 场景使用的 GUI 接口
type UI interface {
	// Begin 开始新的一帧，清空上一帧的控件
	Begin(in *input.Snapshot, width, height int)
	// Size 返回当前屏幕尺寸
	Size() (int, int)
	// Panel 半透明背景面板
	Panel(r Rect)
	// Label 在 (x, y) 处绘制文本
	Label(text string, x, y float64)
	// Button 按钮，本帧被点击时返回 true
	Button(id, text string, r Rect) bool
	// Slider 滑块，返回新值以及本帧是否改变
	Slider(id, text string, r Rect, value, lo, hi float64) (float64, bool)
}
