package scenes

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/decker502/shooterboi/pkg/game"
	"github.com/decker502/shooterboi/pkg/gui"
	"github.com/decker502/shooterboi/pkg/logger"
)

// historyRows 最多显示的记录条数
const historyRows = 10

// ScoreHistoryScene 某个模式的历史成绩，可以切换难度
type ScoreHistoryScene struct {
	mode       game.GameMode
	difficulty game.Difficulty
	records    []game.ScoreRecord
	loadErr    error
	log        *zap.Logger
}

// NewScoreHistoryScene 创建历史成绩界面，模式和难度由 Init 的消息传入
func NewScoreHistoryScene() *ScoreHistoryScene {
	return &ScoreHistoryScene{log: logger.Named("history")}
}

// Init 实现 game.Scene
func (s *ScoreHistoryScene) Init(ctx *game.Context, msg game.Message) {
	showMenu(ctx)
	s.mode = game.GameModeFrom(msg, game.ModeClassic)
	s.difficulty = game.DifficultyFrom(msg)
	s.reload(ctx)
}

func (s *ScoreHistoryScene) reload(ctx *game.Context) {
	s.records, s.loadErr = ctx.Database.List(s.mode, s.difficulty)
	if s.loadErr != nil {
		s.log.Error("failed to load scores",
			zap.Stringer("mode", s.mode),
			zap.Stringer("difficulty", s.difficulty),
			zap.Error(s.loadErr))
	}
}

// Update 实现 game.Scene
func (s *ScoreHistoryScene) Update(ctx *game.Context, _ float64) game.SceneOp {
	ui := ctx.GUI
	title(ui, s.mode.String()+" Scores")

	w, h := ui.Size()
	tabs := 0.0
	for _, d := range game.Difficulties {
		r := gui.Rect{X: 40 + tabs, Y: 100, W: 120, H: 32}
		tabs += r.W + buttonGap
		if ui.Button("difficulty_"+d.String(), selected(d.String(), d == s.difficulty), r) && d != s.difficulty {
			s.difficulty = d
			s.reload(ctx)
		}
	}

	ui.Panel(gui.Rect{X: 40, Y: 144, W: float64(w) - 80, H: float64(historyRows+1)*24 + 16})
	ui.Label("Date                 Score   Hit  Miss  Accuracy  Avg.", 52, 152)
	switch {
	case s.loadErr != nil:
		ui.Label("Failed to load scores", 52, 176)
	case len(s.records) == 0:
		ui.Label("No scores yet", 52, 176)
	}
	for i, rec := range s.records {
		if i == historyRows {
			break
		}
		line := fmt.Sprintf("%-20s %6d %5d %5d %8.2f%% %5.2fs",
			rec.CreatedAt.Local().Format("2006-01-02 15:04"),
			rec.Score, rec.Hit, rec.Miss, rec.Accuracy, rec.AvgHitTime)
		ui.Label(line, 52, 176+float64(i)*24)
	}

	back := gui.Rect{X: (float64(w) - buttonWidth) / 2, Y: float64(h) - buttonHeight - 40, W: buttonWidth, H: buttonHeight}
	if backPressed(ctx, back) {
		return game.Pop(1, nil)
	}
	return game.None()
}

// Deinit 实现 game.Scene
func (s *ScoreHistoryScene) Deinit(*game.Context) {}
