package scenes

import (
	"github.com/decker502/shooterboi/pkg/game"
	"github.com/decker502/shooterboi/pkg/gui"
)

var guideLines = []string{
	"Mouse: look around",
	"Arrow keys: look around",
	"Left click: shoot",
	"W A S D: move",
	"Esc: pause",
	"",
	"Classic: hit the target before it disappears.",
	"  Yellow targets are fake, do not shoot them.",
	"Elimination: clear every target around the tower.",
	"Hit and Dodge: shoot the gunmen, dodge their bullets",
	"  and keep away from the swordmen.",
}

// GuideScene 操作说明
type GuideScene struct{}

// NewGuideScene 创建说明界面
func NewGuideScene() *GuideScene {
	return &GuideScene{}
}

// Init 实现 game.Scene
func (s *GuideScene) Init(ctx *game.Context, _ game.Message) {
	showMenu(ctx)
}

// Update 实现 game.Scene
func (s *GuideScene) Update(ctx *game.Context, _ float64) game.SceneOp {
	ui := ctx.GUI
	title(ui, "Guide")

	w, h := ui.Size()
	panel := gui.Rect{X: float64(w)/2 - 260, Y: 100, W: 520, H: float64(len(guideLines))*22 + 24}
	ui.Panel(panel)
	for i, line := range guideLines {
		ui.Label(line, panel.X+16, panel.Y+12+float64(i)*22)
	}

	back := gui.Rect{X: (float64(w) - buttonWidth) / 2, Y: float64(h) - buttonHeight - 40, W: buttonWidth, H: buttonHeight}
	if backPressed(ctx, back) {
		return game.Pop(1, nil)
	}
	return game.None()
}

// Deinit 实现 game.Scene
func (s *GuideScene) Deinit(*game.Context) {}
