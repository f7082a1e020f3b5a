package game

import (
	"math/rand/v2"

	"github.com/decker502/shooterboi/pkg/config"
	"github.com/decker502/shooterboi/pkg/gui"
	"github.com/decker502/shooterboi/pkg/input"
	"github.com/decker502/shooterboi/pkg/render"
)

// Window 窗口能力
type Window interface {
	// SetCursorGrabbed 捕获或释放鼠标（对局中隐藏并锁定光标）
	SetCursorGrabbed(grabbed bool)
	// SetFullscreen 切换全屏
	SetFullscreen(fullscreen bool)
}

// Audio 音频能力
type Audio interface {
	// PlaySound 播放一次性音效
	PlaySound(id string) bool
	// PlayChannel 在命名通道上循环播放，通道已存在时不重复播放
	PlayChannel(name, clip string) bool
	// StopChannel 停止并移除命名通道
	StopChannel(name string)
	// HasChannel 通道是否存在
	HasChannel(name string) bool
	// SetVolume 设置全局音量并应用到所有通道
	SetVolume(volume float64)
	// Volume 返回全局音量
	Volume() float64
}

// Context 每帧传给场景的协作者集合
//
// 所有字段都由 app 持有，场景只在自己的回调期间使用
type Context struct {
	Window   Window
	Renderer *render.Renderer
	GUI      gui.UI
	Audio    Audio
	Database *ScoreDatabase
	Settings *SettingsManager
	Input    *input.Snapshot
	Config   *config.GameplayConfig
	Rand     *rand.Rand
}
