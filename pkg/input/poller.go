package input

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Device 原始输入源
// 用于依赖注入，支持测试时 mock
type Device interface {
	AppendPressedKeys(keys []ebiten.Key) []ebiten.Key
	AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key
	IsMouseButtonPressed(b ebiten.MouseButton) bool
	IsMouseButtonJustPressed(b ebiten.MouseButton) bool
	CursorPosition() (int, int)
}

type ebitenDevice struct{}

func (ebitenDevice) AppendPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendPressedKeys(keys)
}

func (ebitenDevice) AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustPressedKeys(keys)
}

func (ebitenDevice) IsMouseButtonPressed(b ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(b)
}

func (ebitenDevice) IsMouseButtonJustPressed(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(b)
}

func (ebitenDevice) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

var mouseButtons = []ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonRight,
	ebiten.MouseButtonMiddle,
}

// Poller 每帧从设备采集一次快照
type Poller struct {
	device   Device
	snapshot *Snapshot
	keyBuf   []ebiten.Key

	lastX, lastY int
	hasLast      bool
}

// NewPoller 使用 ebiten 作为输入源
func NewPoller() *Poller {
	return NewPollerWithDevice(ebitenDevice{})
}

// NewPollerWithDevice 使用自定义输入源（用于测试）
func NewPollerWithDevice(device Device) *Poller {
	return &Poller{device: device, snapshot: NewSnapshot()}
}

// Poll 采集本帧输入
//
// 参数:
//   - lookActive: 光标被锁定时为 true，此时光标位移和方向键计入视角移动
//
// 返回:
//   - *Snapshot: 本帧快照，下一次 Poll 时会被复用
func (p *Poller) Poll(lookActive bool) *Snapshot {
	s := p.snapshot
	s.Clear()

	p.keyBuf = p.device.AppendPressedKeys(p.keyBuf[:0])
	for _, k := range p.keyBuf {
		s.PressKey(k, false)
	}
	p.keyBuf = p.device.AppendJustPressedKeys(p.keyBuf[:0])
	for _, k := range p.keyBuf {
		s.PressKey(k, true)
	}
	for _, b := range mouseButtons {
		if p.device.IsMouseButtonPressed(b) {
			s.PressMouse(b, p.device.IsMouseButtonJustPressed(b))
		}
	}

	x, y := p.device.CursorPosition()
	s.SetCursorPosition(x, y)
	if !p.hasLast {
		p.lastX, p.lastY, p.hasLast = x, y, true
	}
	if lookActive {
		// 向右移动光标减小 yaw，向上移动增大 pitch
		movement := mgl32.Vec2{float32(p.lastX - x), float32(p.lastY - y)}
		movement = movement.Add(arrowMovement(s))
		s.SetMouseMovement(movement)
	}
	p.lastX, p.lastY = x, y
	return s
}

func arrowMovement(s *Snapshot) mgl32.Vec2 {
	var d mgl32.Vec2
	if s.IsKeyPressed(ebiten.KeyArrowLeft) {
		d[0] += arrowLookStep
	} else if s.IsKeyPressed(ebiten.KeyArrowRight) {
		d[0] -= arrowLookStep
	}
	if s.IsKeyPressed(ebiten.KeyArrowUp) {
		d[1] += arrowLookStep
	} else if s.IsKeyPressed(ebiten.KeyArrowDown) {
		d[1] -= arrowLookStep
	}
	return d
}
