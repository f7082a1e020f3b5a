// Package input 每帧的键盘、鼠标状态快照
package input

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// ArrowLookSpeed 方向键每秒叠加到视角移动量上的值
const ArrowLookSpeed = 400.0

// arrowLookStep 每个 tick 的方向键视角移动量（ebiten 默认 60 TPS）
const arrowLookStep = ArrowLookSpeed / 60

// Snapshot 一帧的输入状态
// 场景只读取快照，不直接查询 ebiten
type Snapshot struct {
	keys          map[ebiten.Key]bool
	justKeys      map[ebiten.Key]bool
	mouse         map[ebiten.MouseButton]bool
	justMouse     map[ebiten.MouseButton]bool
	mouseMovement mgl32.Vec2
	cursorX       int
	cursorY       int
}

// NewSnapshot 创建空快照
func NewSnapshot() *Snapshot {
	return &Snapshot{
		keys:      make(map[ebiten.Key]bool),
		justKeys:  make(map[ebiten.Key]bool),
		mouse:     make(map[ebiten.MouseButton]bool),
		justMouse: make(map[ebiten.MouseButton]bool),
	}
}

// IsKeyPressed 按键是否处于按下状态
func (s *Snapshot) IsKeyPressed(k ebiten.Key) bool { return s.keys[k] }

// IsKeyJustPressed 按键是否在本帧刚按下
func (s *Snapshot) IsKeyJustPressed(k ebiten.Key) bool { return s.justKeys[k] }

// IsMousePressed 鼠标键是否处于按下状态
func (s *Snapshot) IsMousePressed(b ebiten.MouseButton) bool { return s.mouse[b] }

// IsMouseJustPressed 鼠标键是否在本帧刚按下
func (s *Snapshot) IsMouseJustPressed(b ebiten.MouseButton) bool { return s.justMouse[b] }

// IsAnyMouseJustPressed 任意鼠标键在本帧刚按下
func (s *Snapshot) IsAnyMouseJustPressed() bool {
	for _, pressed := range s.justMouse {
		if pressed {
			return true
		}
	}
	return false
}

// MouseMovement 本帧的视角移动量（鼠标位移加方向键）
func (s *Snapshot) MouseMovement() mgl32.Vec2 { return s.mouseMovement }

// CursorPosition 光标位置（GUI 使用）
func (s *Snapshot) CursorPosition() (int, int) { return s.cursorX, s.cursorY }

// Clear 清空所有状态
func (s *Snapshot) Clear() {
	clear(s.keys)
	clear(s.justKeys)
	clear(s.mouse)
	clear(s.justMouse)
	s.mouseMovement = mgl32.Vec2{}
}

// PressKey 标记按键按下，just 为 true 时同时标记为本帧刚按下
// 供 Poller 和测试构造快照
func (s *Snapshot) PressKey(k ebiten.Key, just bool) {
	s.keys[k] = true
	if just {
		s.justKeys[k] = true
	}
}

// PressMouse 标记鼠标键按下
func (s *Snapshot) PressMouse(b ebiten.MouseButton, just bool) {
	s.mouse[b] = true
	if just {
		s.justMouse[b] = true
	}
}

// SetMouseMovement 设置视角移动量
func (s *Snapshot) SetMouseMovement(v mgl32.Vec2) { s.mouseMovement = v }

// SetCursorPosition 设置光标位置
func (s *Snapshot) SetCursorPosition(x, y int) { s.cursorX, s.cursorY = x, y }
