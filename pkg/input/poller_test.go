package input

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
)

type fakeDevice struct {
	pressed     []ebiten.Key
	justPressed []ebiten.Key
	mouse       map[ebiten.MouseButton]bool
	justMouse   map[ebiten.MouseButton]bool
	x, y        int
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		mouse:     make(map[ebiten.MouseButton]bool),
		justMouse: make(map[ebiten.MouseButton]bool),
	}
}

func (f *fakeDevice) AppendPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return append(keys, f.pressed...)
}

func (f *fakeDevice) AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return append(keys, f.justPressed...)
}

func (f *fakeDevice) IsMouseButtonPressed(b ebiten.MouseButton) bool     { return f.mouse[b] }
func (f *fakeDevice) IsMouseButtonJustPressed(b ebiten.MouseButton) bool { return f.justMouse[b] }
func (f *fakeDevice) CursorPosition() (int, int)                         { return f.x, f.y }

func TestPollKeysAndMouse(t *testing.T) {
	dev := newFakeDevice()
	dev.pressed = []ebiten.Key{ebiten.KeyW, ebiten.KeyEscape}
	dev.justPressed = []ebiten.Key{ebiten.KeyEscape}
	dev.mouse[ebiten.MouseButtonLeft] = true
	dev.justMouse[ebiten.MouseButtonLeft] = true

	p := NewPollerWithDevice(dev)
	s := p.Poll(false)

	assert.True(t, s.IsKeyPressed(ebiten.KeyW))
	assert.False(t, s.IsKeyJustPressed(ebiten.KeyW))
	assert.True(t, s.IsKeyJustPressed(ebiten.KeyEscape))
	assert.True(t, s.IsMousePressed(ebiten.MouseButtonLeft))
	assert.True(t, s.IsAnyMouseJustPressed())

	// 下一帧按键松开
	dev.pressed, dev.justPressed = nil, nil
	dev.mouse[ebiten.MouseButtonLeft] = false
	dev.justMouse[ebiten.MouseButtonLeft] = false
	s = p.Poll(false)
	assert.False(t, s.IsKeyPressed(ebiten.KeyW))
	assert.False(t, s.IsAnyMouseJustPressed())
}

func TestPollMouseMovement(t *testing.T) {
	dev := newFakeDevice()
	dev.x, dev.y = 100, 100
	p := NewPollerWithDevice(dev)

	s := p.Poll(true)
	assert.Equal(t, mgl32.Vec2{}, s.MouseMovement(), "first frame has no previous position")

	dev.x, dev.y = 110, 95
	s = p.Poll(true)
	assert.Equal(t, mgl32.Vec2{-10, 5}, s.MouseMovement())

	// 光标未锁定时不产生视角移动
	dev.x = 200
	s = p.Poll(false)
	assert.Equal(t, mgl32.Vec2{}, s.MouseMovement())
	x, _ := s.CursorPosition()
	assert.Equal(t, 200, x)
}

func TestPollArrowKeys(t *testing.T) {
	dev := newFakeDevice()
	dev.pressed = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyArrowDown}
	p := NewPollerWithDevice(dev)

	s := p.Poll(true)
	assert.Equal(t, mgl32.Vec2{arrowLookStep, -arrowLookStep}, s.MouseMovement())
}

func TestSnapshotClear(t *testing.T) {
	s := NewSnapshot()
	s.PressKey(ebiten.KeyA, true)
	s.PressMouse(ebiten.MouseButtonRight, true)
	s.SetMouseMovement(mgl32.Vec2{1, 2})

	s.Clear()
	assert.False(t, s.IsKeyPressed(ebiten.KeyA))
	assert.False(t, s.IsMouseJustPressed(ebiten.MouseButtonRight))
	assert.Equal(t, mgl32.Vec2{}, s.MouseMovement())
}
