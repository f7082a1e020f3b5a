package gui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/shooterboi/pkg/input"
)

var (
	panelColor       = color.RGBA{R: 255, G: 255, B: 255, A: 60}
	buttonColor      = color.RGBA{R: 40, G: 40, B: 40, A: 200}
	buttonHoverColor = color.RGBA{R: 80, G: 80, B: 80, A: 220}
	sliderTrackColor = color.RGBA{R: 30, G: 30, B: 30, A: 200}
	sliderFillColor  = color.RGBA{R: 230, G: 160, B: 40, A: 255}
	borderColor      = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

const defaultFrameWidth = 1280

type drawKind int

const (
	drawPanel drawKind = iota
	drawText
	drawButton
	drawSlider
)

type drawCmd struct {
	kind  drawKind
	rect  Rect
	text  string
	x, y  float64
	hover bool
	fill  float64
}

// EbitenUI 基于 ebiten 的 UI 实现
type EbitenUI struct {
	in       *input.Snapshot
	width    int
	height   int
	commands []drawCmd
	// active 正在拖动的滑块
	active string
}

// NewEbitenUI 创建 UI
func NewEbitenUI() *EbitenUI {
	return &EbitenUI{width: defaultFrameWidth, height: defaultFrameWidth * 3 / 4}
}

// Begin 开始新的一帧
func (u *EbitenUI) Begin(in *input.Snapshot, width, height int) {
	u.in = in
	u.width, u.height = width, height
	u.commands = u.commands[:0]
}

// Size 返回当前屏幕尺寸
func (u *EbitenUI) Size() (int, int) {
	return u.width, u.height
}

func (u *EbitenUI) cursor() (float64, float64) {
	if u.in == nil {
		return -1, -1
	}
	x, y := u.in.CursorPosition()
	return float64(x), float64(y)
}

func (u *EbitenUI) leftJustPressed() bool {
	return u.in != nil && u.in.IsMouseJustPressed(ebiten.MouseButtonLeft)
}

func (u *EbitenUI) leftPressed() bool {
	return u.in != nil && u.in.IsMousePressed(ebiten.MouseButtonLeft)
}

// Panel 背景面板
func (u *EbitenUI) Panel(r Rect) {
	u.commands = append(u.commands, drawCmd{kind: drawPanel, rect: r})
}

// Label 文本
func (u *EbitenUI) Label(text string, x, y float64) {
	u.commands = append(u.commands, drawCmd{kind: drawText, text: text, x: x, y: y})
}

// Button 按钮
func (u *EbitenUI) Button(_ string, text string, r Rect) bool {
	hover := r.Contains(u.cursor())
	u.commands = append(u.commands, drawCmd{kind: drawButton, rect: r, text: text, hover: hover})
	return hover && u.leftJustPressed()
}

// Slider 滑块
// 在滑块上按下后开始拖动，松开前即使移出范围也继续跟随
func (u *EbitenUI) Slider(id, text string, r Rect, value, lo, hi float64) (float64, bool) {
	x, y := u.cursor()
	if u.leftJustPressed() && r.Contains(x, y) {
		u.active = id
	}
	if !u.leftPressed() && u.active == id {
		u.active = ""
	}

	newValue := value
	if u.active == id && r.W > 0 {
		t := (x - r.X) / r.W
		newValue = lo + clamp01(t)*(hi-lo)
	}

	fill := 0.0
	if hi > lo {
		fill = (newValue - lo) / (hi - lo)
	}
	u.commands = append(u.commands, drawCmd{kind: drawSlider, rect: r, text: text, fill: fill})
	return newValue, newValue != value
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Draw 绘制最近一帧记录的控件
func (u *EbitenUI) Draw(screen *ebiten.Image) {
	for _, c := range u.commands {
		x, y, w, h := float32(c.rect.X), float32(c.rect.Y), float32(c.rect.W), float32(c.rect.H)
		switch c.kind {
		case drawPanel:
			vector.DrawFilledRect(screen, x, y, w, h, panelColor, false)
		case drawText:
			ebitenutil.DebugPrintAt(screen, c.text, int(c.x), int(c.y))
		case drawButton:
			clr := buttonColor
			if c.hover {
				clr = buttonHoverColor
			}
			vector.DrawFilledRect(screen, x, y, w, h, clr, false)
			vector.StrokeRect(screen, x, y, w, h, 1, borderColor, false)
			tx, ty := CenteredText(c.text, c.rect)
			ebitenutil.DebugPrintAt(screen, c.text, int(tx), int(ty))
		case drawSlider:
			vector.DrawFilledRect(screen, x, y, w, h, sliderTrackColor, false)
			vector.DrawFilledRect(screen, x, y, w*float32(c.fill), h, sliderFillColor, false)
			vector.StrokeRect(screen, x, y, w, h, 1, borderColor, false)
			tx, ty := CenteredText(c.text, c.rect)
			ebitenutil.DebugPrintAt(screen, c.text, int(tx), int(ty))
		}
	}
}
