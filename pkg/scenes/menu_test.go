package scenes

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/shooterboi/pkg/game"
)

func TestMainMenuBGM(t *testing.T) {
	env := newTestEnv(t)
	s := NewMainMenuScene()

	s.Init(env.ctx, game.NewMessage().With(game.KeyStartBGM, game.BoolValue(false)))
	assert.False(t, env.audio.HasChannel(bgmChannel))

	s.Init(env.ctx, nil)
	assert.True(t, env.audio.HasChannel(bgmChannel))
	assert.False(t, env.ctx.Renderer.RenderGame)
	assert.False(t, env.window.grabbed)
}

func TestMainMenuButtons(t *testing.T) {
	tests := []struct {
		id   string
		want game.Scene
	}{
		{"start", &GameSelectionScene{}},
		{"settings", &SettingsScene{}},
		{"guide", &GuideScene{}},
		{"exit", &ExitConfirmScene{}},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			env := newTestEnv(t)
			s := NewMainMenuScene()
			s.Init(env.ctx, nil)

			env.ui.click(tt.id)
			op := env.update(s, 0.016)
			require.Equal(t, game.OpPush, op.Kind)
			assert.IsType(t, tt.want, op.Scene)
		})
	}
}

func TestMenuNavigationThroughStack(t *testing.T) {
	env := newTestEnv(t)
	stack := game.NewSceneStack(env.ctx)
	stack.Apply(game.Push(NewMainMenuScene(), nil))

	env.ui.click("start")
	env.ui.Begin(env.in, 800, 600)
	require.True(t, stack.Update(0.016))
	require.Equal(t, 2, stack.Len())

	env.ui.click("back")
	env.ui.Begin(env.in, 800, 600)
	require.True(t, stack.Update(0.016))
	assert.Equal(t, 1, stack.Len())
	assert.IsType(t, &MainMenuScene{}, stack.Top())
	assert.True(t, env.audio.HasChannel(bgmChannel), "music keeps playing")

	env.ui.click("exit")
	env.ui.Begin(env.in, 800, 600)
	stack.Update(0.016)
	env.ui.click("yes")
	env.ui.Begin(env.in, 800, 600)
	assert.False(t, stack.Update(0.016), "confirming exit empties the stack")
	assert.False(t, env.audio.HasChannel(bgmChannel))
}

func TestGameSelectionStartsSelectedMode(t *testing.T) {
	env := newTestEnv(t)
	s := NewGameSelectionScene()
	s.Init(env.ctx, nil)

	env.ui.click("mode_" + game.ModeElimination.Key())
	env.ui.click("difficulty_" + game.DifficultyHard.String())
	env.update(s, 0.016)
	assert.Equal(t, game.ModeElimination, s.mode)
	assert.Equal(t, game.DifficultyHard, s.difficulty)

	env.ui.click("play")
	op := env.update(s, 0.016)
	require.Equal(t, game.OpPush, op.Kind)
	elim, ok := op.Scene.(*EliminationScene)
	require.True(t, ok)
	assert.Equal(t, game.DifficultyHard, elim.difficulty)

	env.ui.click("scores")
	op = env.update(s, 0.016)
	require.Equal(t, game.OpPush, op.Kind)
	assert.IsType(t, &ScoreHistoryScene{}, op.Scene)
	assert.Equal(t, game.ModeElimination, game.GameModeFrom(op.Message, game.ModeClassic))
}

func TestGameSelectionBackKeepsMusic(t *testing.T) {
	env := newTestEnv(t)
	s := NewGameSelectionScene()
	s.Init(env.ctx, nil)

	env.in.PressKey(ebiten.KeyEscape, true)
	op := env.update(s, 0.016)
	require.Equal(t, game.OpPop, op.Kind)
	assert.Equal(t, 1, op.Count)
	assert.False(t, op.Message.BoolOr(game.KeyStartBGM, true))
}

func TestPauseOps(t *testing.T) {
	env := newTestEnv(t)
	s := NewPauseScene()
	env.ctx.Renderer.RenderGame = true
	s.Init(env.ctx, nil)
	assert.False(t, env.ctx.Renderer.RenderGame)

	env.ui.click("resume")
	op := env.update(s, 0.016)
	require.Equal(t, game.OpPop, op.Kind)
	assert.Equal(t, 1, op.Count)
	assert.True(t, op.Message.BoolOr(game.KeyFromPause, false))

	env.ui.click("settings")
	op = env.update(s, 0.016)
	assert.Equal(t, game.OpPush, op.Kind)

	env.ui.click("quit")
	op = env.update(s, 0.016)
	require.Equal(t, game.OpPop, op.Kind)
	assert.Equal(t, 2, op.Count)
}

func TestPauseQuitReturnsToSelection(t *testing.T) {
	env := newTestEnv(t)
	stack := game.NewSceneStack(env.ctx)
	stack.Apply(game.Push(NewGameSelectionScene(), nil))
	stack.Apply(game.Push(NewClassicScene(env.ctx, game.DifficultyEasy), nil))
	assert.False(t, env.audio.HasChannel(bgmChannel))

	stack.Apply(game.Push(NewPauseScene(), nil))
	env.ui.click("quit")
	env.ui.Begin(env.in, 800, 600)
	stack.Update(0.016)

	assert.Equal(t, 1, stack.Len())
	assert.IsType(t, &GameSelectionScene{}, stack.Top())
	assert.True(t, env.audio.HasChannel(bgmChannel))
	assert.False(t, env.window.grabbed)
	assert.Equal(t, 0, env.ctx.Renderer.Queue.StaticLen())
}

func TestGameScoreInsertsOnce(t *testing.T) {
	env := newTestEnv(t)
	msg := modeMessage(game.ModeHitAndDodge, game.DifficultyMedium)
	game.Score{Hit: 4, Miss: 1, Score: 700, HitTaken: 2}.WriteMessage(msg)

	s := NewGameScoreScene()
	s.Init(env.ctx, msg)
	s.Init(env.ctx, nil)

	records, err := env.ctx.Database.List(game.ModeHitAndDodge, game.DifficultyMedium)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 700, records[0].Score)
	assert.Equal(t, 2, records[0].HitTaken)
	assert.InDelta(t, 80, records[0].Accuracy, 1e-9)

	env.update(s, 0.016)
	assert.True(t, env.ui.hasLabel("Hit taken: 2"))
	assert.False(t, env.ui.hasLabel("Fake target"))

	env.ui.click("history")
	op := env.update(s, 0.016)
	require.Equal(t, game.OpReplace, op.Kind)
	assert.IsType(t, &ScoreHistoryScene{}, op.Scene)
	assert.Equal(t, game.DifficultyMedium, game.DifficultyFrom(op.Message))

	env.ui.click("next")
	op = env.update(s, 0.016)
	require.Equal(t, game.OpPop, op.Kind)
	assert.Equal(t, 1, op.Count)
}

func TestScoreHistoryListsAndSwitchesDifficulty(t *testing.T) {
	env := newTestEnv(t)
	db := env.ctx.Database
	require.NoError(t, db.Insert(game.NewScoreRecord(game.ModeClassic, game.DifficultyEasy, game.Score{Hit: 1, Score: 250})))
	require.NoError(t, db.Insert(game.NewScoreRecord(game.ModeClassic, game.DifficultyHard, game.Score{Hit: 2, Score: 480})))

	s := NewScoreHistoryScene()
	s.Init(env.ctx, modeMessage(game.ModeClassic, game.DifficultyEasy))
	require.Len(t, s.records, 1)
	env.update(s, 0.016)
	assert.True(t, env.ui.hasLabel("250"))

	env.ui.click("difficulty_" + game.DifficultyHard.String())
	env.update(s, 0.016)
	require.Len(t, s.records, 1)
	assert.Equal(t, 480, s.records[0].Score)

	env.ui.click("difficulty_" + game.DifficultyMedium.String())
	env.update(s, 0.016)
	env.update(s, 0.016)
	assert.True(t, env.ui.hasLabel("No scores yet"))

	env.ui.click("back")
	op := env.update(s, 0.016)
	assert.Equal(t, game.OpPop, op.Kind)
}

func TestSettingsApplyImmediately(t *testing.T) {
	env := newTestEnv(t)
	s := NewSettingsScene()
	s.Init(env.ctx, nil)

	env.ui.sliders["volume"] = 0.3
	env.ui.sliders["sensitivity"] = 1.5
	env.ui.sliders["raymarch"] = 120
	env.ui.sliders["ao"] = 2
	env.ui.click("fullscreen")
	env.update(s, 0.016)

	settings := env.ctx.Settings.GetSettings()
	assert.InDelta(t, 0.3, env.audio.Volume(), 1e-9)
	assert.InDelta(t, 1.5, settings.MouseSensitivity, 1e-9)
	assert.InDelta(t, 1.5, env.ctx.Renderer.Camera.Sensitivity, 1e-6)
	assert.Equal(t, uint32(120), env.ctx.Renderer.Info.MaxRaymarchStep)
	assert.Equal(t, uint32(2), env.ctx.Renderer.Info.AOStep)
	assert.True(t, settings.Fullscreen)
	assert.True(t, env.window.fullscreen)

	env.ui.click("back")
	op := env.update(s, 0.016)
	assert.Equal(t, game.OpPop, op.Kind)
}

func TestGuideAndExitConfirm(t *testing.T) {
	env := newTestEnv(t)

	guide := NewGuideScene()
	guide.Init(env.ctx, nil)
	env.update(guide, 0.016)
	assert.True(t, env.ui.hasLabel("Left click: shoot"))
	env.in.PressKey(ebiten.KeyEscape, true)
	assert.Equal(t, game.OpPop, env.update(guide, 0.016).Kind)

	exit := NewExitConfirmScene()
	exit.Init(env.ctx, nil)
	env.ui.click("no")
	op := env.update(exit, 0.016)
	require.Equal(t, game.OpPop, op.Kind)
	assert.Equal(t, 1, op.Count)

	env.ui.click("yes")
	op = env.update(exit, 0.016)
	require.Equal(t, game.OpPop, op.Kind)
	assert.Equal(t, -1, op.Count)
}
