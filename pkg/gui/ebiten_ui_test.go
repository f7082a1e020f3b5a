package gui

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"

	"github.com/decker502/shooterboi/pkg/input"
)

func TestColumnIsCentered(t *testing.T) {
	rects := Column(800, 600, 3, 200, 40, 10)

	assert.Len(t, rects, 3)
	assert.Equal(t, Rect{X: 300, Y: 230, W: 200, H: 40}, rects[0])
	assert.Equal(t, 330.0, rects[2].Y)
	assert.Nil(t, Column(800, 600, 0, 1, 1, 1))
}

func TestButtonClick(t *testing.T) {
	ui := NewEbitenUI()
	r := Rect{X: 10, Y: 10, W: 100, H: 30}

	in := input.NewSnapshot()
	in.SetCursorPosition(50, 20)
	ui.Begin(in, 800, 600)
	assert.False(t, ui.Button("start", "Start", r), "hover alone is not a click")

	in.PressMouse(ebiten.MouseButtonLeft, true)
	ui.Begin(in, 800, 600)
	assert.True(t, ui.Button("start", "Start", r))

	in.SetCursorPosition(500, 500)
	ui.Begin(in, 800, 600)
	assert.False(t, ui.Button("start", "Start", r))
}

func TestSliderDrag(t *testing.T) {
	ui := NewEbitenUI()
	r := Rect{X: 0, Y: 0, W: 100, H: 20}
	in := input.NewSnapshot()

	in.SetCursorPosition(25, 10)
	in.PressMouse(ebiten.MouseButtonLeft, true)
	ui.Begin(in, 800, 600)
	v, changed := ui.Slider("vol", "Volume", r, 1, 0, 2)
	assert.True(t, changed)
	assert.InDelta(t, 0.5, v, 1e-9)

	// 拖出范围后被夹紧
	in.Clear()
	in.PressMouse(ebiten.MouseButtonLeft, false)
	in.SetCursorPosition(300, 10)
	ui.Begin(in, 800, 600)
	v, _ = ui.Slider("vol", "Volume", r, v, 0, 2)
	assert.InDelta(t, 2, v, 1e-9)

	// 松开后不再跟随
	in.Clear()
	in.SetCursorPosition(10, 10)
	ui.Begin(in, 800, 600)
	v2, changed := ui.Slider("vol", "Volume", r, v, 0, 2)
	assert.False(t, changed)
	assert.Equal(t, v, v2)
}
