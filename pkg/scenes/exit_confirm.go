package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/shooterboi/pkg/game"
)

// ExitConfirmScene 退出确认
type ExitConfirmScene struct{}

// NewExitConfirmScene 创建退出确认界面
func NewExitConfirmScene() *ExitConfirmScene {
	return &ExitConfirmScene{}
}

// Init 实现 game.Scene
func (s *ExitConfirmScene) Init(ctx *game.Context, _ game.Message) {
	showMenu(ctx)
}

// Update 实现 game.Scene
// 确认后弹出所有场景，栈空时程序退出
func (s *ExitConfirmScene) Update(ctx *game.Context, _ float64) game.SceneOp {
	ui := ctx.GUI
	title(ui, "Are you sure you want to exit?")

	rects := menuButtons(ui, 2)
	switch {
	case ui.Button("yes", "Yes", rects[0]):
		return game.PopAll()
	case ui.Button("no", "No", rects[1]) || ctx.Input.IsKeyJustPressed(ebiten.KeyEscape):
		return game.Pop(1, nil)
	}
	return game.None()
}

// Deinit 实现 game.Scene
func (s *ExitConfirmScene) Deinit(*game.Context) {}
