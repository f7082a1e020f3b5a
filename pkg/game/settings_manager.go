package game

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/decker502/shooterboi/pkg/logger"
)

// 设置项取值范围
const (
	MinMouseSensitivity = 0.05
	MaxMouseSensitivity = 2.0
	MaxRaymarchStep     = 200
	MaxAOStep           = 10
)

// GameSettings 全局游戏设置
type GameSettings struct {
	// 音频设置
	AudioVolume float64 `yaml:"audioVolume"` // 全局音量 0.0 ~ 1.0

	// 操作设置
	MouseSensitivity float64 `yaml:"mouseSensitivity"`

	// 画质设置（传给渲染后端）
	MaximumRaymarchStep uint32 `yaml:"maximumRaymarchStep"`
	AOStep              uint32 `yaml:"aoStep"`

	// 显示设置
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		AudioVolume:         1.0,
		MouseSensitivity:    0.5,
		MaximumRaymarchStep: 50,
		AOStep:              5,
		Fullscreen:          false,
	}
}

// SettingsManager 设置管理器
// 负责游戏设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *GameSettings  // 当前设置
	log          *zap.Logger
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例，加载失败时使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
		log:          logger.Named("settings"),
	}

	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		sm.log.Warn("failed to load settings, using defaults", zap.Error(err))
	}
	return sm
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
//
// 返回：
//   - error: 如果反序列化失败返回错误
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 先填默认值，旧版本文件缺少的字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.normalize()

	sm.settings = loaded
	sm.log.Debug("settings loaded")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	sm.log.Debug("settings saved")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// SetAudioVolume 设置全局音量，限制在 0.0 ~ 1.0
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetAudioVolume(volume float64) {
	sm.settings.AudioVolume = clampVolume(volume)
}

// SetMouseSensitivity 设置鼠标灵敏度
func (sm *SettingsManager) SetMouseSensitivity(v float64) {
	sm.settings.MouseSensitivity = min(max(v, MinMouseSensitivity), MaxMouseSensitivity)
}

// SetMaximumRaymarchStep 设置光线步进最大步数（0 ~ 200）
func (sm *SettingsManager) SetMaximumRaymarchStep(step uint32) {
	sm.settings.MaximumRaymarchStep = min(step, MaxRaymarchStep)
}

// SetAOStep 设置环境光遮蔽采样步数（0 ~ 10）
func (sm *SettingsManager) SetAOStep(step uint32) {
	sm.settings.AOStep = min(step, MaxAOStep)
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// normalize 把越界的值拉回合法范围
func (s *GameSettings) normalize() {
	s.AudioVolume = clampVolume(s.AudioVolume)
	s.MouseSensitivity = min(max(s.MouseSensitivity, MinMouseSensitivity), MaxMouseSensitivity)
	s.MaximumRaymarchStep = min(s.MaximumRaymarchStep, MaxRaymarchStep)
	s.AOStep = min(s.AOStep, MaxAOStep)
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
