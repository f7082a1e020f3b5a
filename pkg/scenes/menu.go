package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/shooterboi/pkg/game"
	"github.com/decker502/shooterboi/pkg/gui"
)

// bgmChannel 背景音乐通道名
const bgmChannel = "bgm"

// 菜单按钮尺寸
const (
	buttonWidth  = 240
	buttonHeight = 40
	buttonGap    = 12
)

// NewGameScene 按模式创建对局场景
func NewGameScene(ctx *game.Context, mode game.GameMode, difficulty game.Difficulty) game.Scene {
	switch mode {
	case game.ModeElimination:
		return NewEliminationScene(ctx, difficulty)
	case game.ModeHitAndDodge:
		return NewHitAndDodgeScene(ctx, difficulty)
	default:
		return NewClassicScene(ctx, difficulty)
	}
}

// showMenu 菜单场景的公共渲染状态：只绘制 GUI，释放鼠标
func showMenu(ctx *game.Context) {
	r := ctx.Renderer
	r.RenderGame = false
	r.RenderGUI = true
	r.RenderCrosshair = false
	ctx.Window.SetCursorGrabbed(false)
}

// playBGM 消息没有 start_bgm=false 时播放背景音乐
func playBGM(ctx *game.Context, msg game.Message) {
	if msg.BoolOr(game.KeyStartBGM, true) {
		ctx.Audio.PlayChannel(bgmChannel, game.ClipBGM)
	}
}

// menuButtons 在屏幕中央纵向排列 count 个按钮
func menuButtons(ui gui.UI, count int) []gui.Rect {
	w, h := ui.Size()
	return gui.Column(w, h, count, buttonWidth, buttonHeight, buttonGap)
}

// title 在屏幕顶部居中绘制标题
func title(ui gui.UI, text string) {
	w, _ := ui.Size()
	x, y := gui.CenteredText(text, gui.Rect{W: float64(w), H: 120})
	ui.Label(text, x, y)
}

// backPressed Esc 或返回按钮
func backPressed(ctx *game.Context, r gui.Rect) bool {
	clicked := ctx.GUI.Button("back", "Back", r)
	return clicked || ctx.Input.IsKeyJustPressed(ebiten.KeyEscape)
}

// modeMessage 带模式和难度的消息
func modeMessage(mode game.GameMode, difficulty game.Difficulty) game.Message {
	return game.NewMessage().
		With(game.KeyMode, game.IntValue(int64(mode))).
		With(game.KeyDifficulty, game.IntValue(int64(difficulty)))
}
