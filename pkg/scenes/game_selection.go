package scenes

import (
	"fmt"

	"github.com/decker502/shooterboi/pkg/game"
	"github.com/decker502/shooterboi/pkg/gui"
)

// GameSelectionScene 选择模式和难度
type GameSelectionScene struct {
	mode       game.GameMode
	difficulty game.Difficulty
}

// NewGameSelectionScene 创建选择界面，默认经典模式、简单难度
func NewGameSelectionScene() *GameSelectionScene {
	return &GameSelectionScene{mode: game.ModeClassic, difficulty: game.DifficultyEasy}
}

// Init 实现 game.Scene
func (s *GameSelectionScene) Init(ctx *game.Context, msg game.Message) {
	showMenu(ctx)
	playBGM(ctx, msg)
}

// Update 实现 game.Scene
func (s *GameSelectionScene) Update(ctx *game.Context, _ float64) game.SceneOp {
	ui := ctx.GUI
	title(ui, "Select Game")

	w, h := ui.Size()
	const colW = 200
	left := float64(w)/2 - colW - buttonGap
	right := float64(w)/2 + buttonGap

	modes := gui.Column(w, h, len(game.GameModes), colW, buttonHeight, buttonGap)
	for i, mode := range game.GameModes {
		r := modes[i]
		r.X = left
		if ui.Button("mode_"+mode.Key(), selected(mode.String(), mode == s.mode), r) {
			s.mode = mode
		}
	}
	difficulties := gui.Column(w, h, len(game.Difficulties), colW, buttonHeight, buttonGap)
	for i, d := range game.Difficulties {
		r := difficulties[i]
		r.X = right
		if ui.Button("difficulty_"+d.String(), selected(d.String(), d == s.difficulty), r) {
			s.difficulty = d
		}
	}

	bottom := modes[len(modes)-1].Y + buttonHeight + 3*buttonGap
	row := func(i int) gui.Rect {
		return gui.Rect{X: left + float64(i)*(colW+buttonGap)*2/3, Y: bottom, W: colW * 2 / 3, H: buttonHeight}
	}
	switch {
	case ui.Button("play", "Play", row(0)):
		return game.Push(NewGameScene(ctx, s.mode, s.difficulty), nil)
	case ui.Button("scores", "Scores", row(1)):
		return game.Push(NewScoreHistoryScene(), modeMessage(s.mode, s.difficulty))
	case backPressed(ctx, row(2)):
		return game.Pop(1, game.NewMessage().With(game.KeyStartBGM, game.BoolValue(false)))
	}
	return game.None()
}

// Deinit 实现 game.Scene
func (s *GameSelectionScene) Deinit(*game.Context) {}

// selected 选中项的按钮文本加上标记
func selected(text string, on bool) string {
	if on {
		return fmt.Sprintf("> %s <", text)
	}
	return text
}
