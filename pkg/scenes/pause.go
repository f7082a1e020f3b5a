package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/shooterboi/pkg/game"
)

// PauseScene 对局中按 Esc 打开的暂停菜单
type PauseScene struct{}

// NewPauseScene 创建暂停菜单
func NewPauseScene() *PauseScene {
	return &PauseScene{}
}

// Init 实现 game.Scene
func (s *PauseScene) Init(ctx *game.Context, _ game.Message) {
	showMenu(ctx)
}

// Update 实现 game.Scene
//
// 继续游戏时带上 from_pause，对局场景据此重新倒计时
func (s *PauseScene) Update(ctx *game.Context, _ float64) game.SceneOp {
	ui := ctx.GUI
	title(ui, "Paused")

	rects := menuButtons(ui, 3)
	switch {
	case ui.Button("resume", "Resume", rects[0]) || ctx.Input.IsKeyJustPressed(ebiten.KeyEscape):
		return game.Pop(1, game.NewMessage().With(game.KeyFromPause, game.BoolValue(true)))
	case ui.Button("settings", "Settings", rects[1]):
		return game.Push(NewSettingsScene(), nil)
	case ui.Button("quit", "Quit", rects[2]):
		return game.Pop(2, nil)
	}
	return game.None()
}

// Deinit 实现 game.Scene
func (s *PauseScene) Deinit(*game.Context) {}
