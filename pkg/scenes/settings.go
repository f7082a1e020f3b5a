package scenes

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/decker502/shooterboi/pkg/game"
	"github.com/decker502/shooterboi/pkg/logger"
)

// minRaymarchStep 画质滑块的下限
const minRaymarchStep = 10

// SettingsScene 设置界面：音量、鼠标灵敏度、画质和全屏
//
// 修改立即生效，离开界面或点击保存时持久化
type SettingsScene struct {
	log *zap.Logger
}

// NewSettingsScene 创建设置界面
func NewSettingsScene() *SettingsScene {
	return &SettingsScene{log: logger.Named("settings")}
}

// Init 实现 game.Scene
func (s *SettingsScene) Init(ctx *game.Context, _ game.Message) {
	showMenu(ctx)
}

// Update 实现 game.Scene
func (s *SettingsScene) Update(ctx *game.Context, _ float64) game.SceneOp {
	ui := ctx.GUI
	title(ui, "Settings")
	settings := ctx.Settings.GetSettings()

	rects := menuButtons(ui, 7)
	for i := range rects {
		rects[i].X -= 80
		rects[i].W += 160
	}

	if v, ok := ui.Slider("volume", fmt.Sprintf("Volume: %.0f%%", ctx.Audio.Volume()*100),
		rects[0], ctx.Audio.Volume(), 0, 1); ok {
		ctx.Audio.SetVolume(v)
	}
	if v, ok := ui.Slider("sensitivity", fmt.Sprintf("Mouse sensitivity: %.2f", settings.MouseSensitivity),
		rects[1], settings.MouseSensitivity, game.MinMouseSensitivity, game.MaxMouseSensitivity); ok {
		ctx.Settings.SetMouseSensitivity(v)
		ctx.Renderer.Camera.Sensitivity = float32(ctx.Settings.GetSettings().MouseSensitivity)
	}
	if v, ok := ui.Slider("raymarch", fmt.Sprintf("Maximum raymarch step: %d", settings.MaximumRaymarchStep),
		rects[2], float64(settings.MaximumRaymarchStep), minRaymarchStep, game.MaxRaymarchStep); ok {
		ctx.Settings.SetMaximumRaymarchStep(uint32(v))
		ctx.Renderer.Info.MaxRaymarchStep = ctx.Settings.GetSettings().MaximumRaymarchStep
	}
	if v, ok := ui.Slider("ao", fmt.Sprintf("AO step: %d", settings.AOStep),
		rects[3], float64(settings.AOStep), 0, game.MaxAOStep); ok {
		ctx.Settings.SetAOStep(uint32(v))
		ctx.Renderer.Info.AOStep = ctx.Settings.GetSettings().AOStep
	}
	if ui.Button("fullscreen", fmt.Sprintf("Fullscreen: %s", onOff(settings.Fullscreen)), rects[4]) {
		ctx.Settings.SetFullscreen(!settings.Fullscreen)
		ctx.Window.SetFullscreen(ctx.Settings.GetSettings().Fullscreen)
	}
	if ui.Button("save", "Save", rects[5]) {
		s.save(ctx)
	}
	if backPressed(ctx, rects[6]) {
		return game.Pop(1, nil)
	}
	return game.None()
}

func (s *SettingsScene) save(ctx *game.Context) {
	if err := ctx.Settings.Save(); err != nil {
		s.log.Error("failed to save settings", zap.Error(err))
	}
}

// Deinit 实现 game.Scene
func (s *SettingsScene) Deinit(ctx *game.Context) {
	s.save(ctx)
}

func onOff(b bool) string {
	if b {
		return "On"
	}
	return "Off"
}
