package scenes

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/decker502/shooterboi/pkg/game"
	"github.com/decker502/shooterboi/pkg/logger"
)

// GameScoreScene 对局结束后的成绩界面，进入时把成绩写入数据库
type GameScoreScene struct {
	mode       game.GameMode
	difficulty game.Difficulty
	score      game.Score
	saved      bool
	log        *zap.Logger
}

// NewGameScoreScene 创建成绩界面，成绩由 Init 的消息传入
func NewGameScoreScene() *GameScoreScene {
	return &GameScoreScene{log: logger.Named("score")}
}

// Init 实现 game.Scene
func (s *GameScoreScene) Init(ctx *game.Context, msg game.Message) {
	showMenu(ctx)
	if s.saved {
		return
	}
	s.mode = game.GameModeFrom(msg, game.ModeClassic)
	s.difficulty = game.DifficultyFrom(msg)
	s.score = game.ScoreFromMessage(msg)
	s.saved = true

	// 写入失败只影响历史记录，成绩照常显示
	if err := ctx.Database.Insert(game.NewScoreRecord(s.mode, s.difficulty, s.score)); err != nil {
		s.log.Error("failed to save score", zap.Error(err))
	}
}

// lines 要显示的成绩行，只显示当前模式有意义的字段
func (s *GameScoreScene) lines() []string {
	lines := []string{
		fmt.Sprintf("%s - %s", s.mode, s.difficulty),
		fmt.Sprintf("Score: %d", s.score.Score),
		fmt.Sprintf("Hit: %d", s.score.Hit),
		fmt.Sprintf("Miss: %d", s.score.Miss),
		fmt.Sprintf("Accuracy: %.2f%%", s.score.Accuracy()),
		fmt.Sprintf("Avg. hit time: %.2fs", s.score.AvgHitTime()),
	}
	switch s.mode {
	case game.ModeClassic:
		lines = append(lines, fmt.Sprintf("Fake target hit: %d", s.score.HitFakeTarget))
	case game.ModeHitAndDodge:
		lines = append(lines, fmt.Sprintf("Hit taken: %d", s.score.HitTaken))
	}
	return lines
}

// Update 实现 game.Scene
func (s *GameScoreScene) Update(ctx *game.Context, _ float64) game.SceneOp {
	ui := ctx.GUI
	title(ui, "Result")

	w, _ := ui.Size()
	for i, line := range s.lines() {
		ui.Label(line, float64(w)/2-100, 120+float64(i)*24)
	}

	rects := menuButtons(ui, 2)
	for i := range rects {
		rects[i].Y += 150
	}
	switch {
	case ui.Button("next", "Next", rects[0]):
		return game.Pop(1, nil)
	case ui.Button("history", "History", rects[1]):
		return game.Replace(NewScoreHistoryScene(), modeMessage(s.mode, s.difficulty))
	}
	return game.None()
}

// Deinit 实现 game.Scene
func (s *GameScoreScene) Deinit(*game.Context) {}
