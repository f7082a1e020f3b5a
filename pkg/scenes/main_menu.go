package scenes

import (
	"github.com/decker502/shooterboi/pkg/game"
)

// MainMenuScene 主菜单
type MainMenuScene struct{}

// NewMainMenuScene 创建主菜单
func NewMainMenuScene() *MainMenuScene {
	return &MainMenuScene{}
}

// Init 实现 game.Scene
func (s *MainMenuScene) Init(ctx *game.Context, msg game.Message) {
	showMenu(ctx)
	playBGM(ctx, msg)
}

// Update 实现 game.Scene
func (s *MainMenuScene) Update(ctx *game.Context, _ float64) game.SceneOp {
	ui := ctx.GUI
	title(ui, "Shooterboi")

	rects := menuButtons(ui, 4)
	switch {
	case ui.Button("start", "Start", rects[0]):
		return game.Push(NewGameSelectionScene(), nil)
	case ui.Button("settings", "Settings", rects[1]):
		return game.Push(NewSettingsScene(), nil)
	case ui.Button("guide", "Guide", rects[2]):
		return game.Push(NewGuideScene(), nil)
	case ui.Button("exit", "Exit", rects[3]):
		return game.Push(NewExitConfirmScene(), nil)
	}
	return game.None()
}

// Deinit 实现 game.Scene
func (s *MainMenuScene) Deinit(ctx *game.Context) {
	ctx.Audio.StopChannel(bgmChannel)
}
