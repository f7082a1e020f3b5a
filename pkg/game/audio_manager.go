package game

import (
	"bytes"
	"context"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"

	"github.com/decker502/shooterboi/pkg/logger"
)

// channel 命名的持续播放通道（如背景音乐）
type channel struct {
	clip   string
	player *audio.Player
}

// AudioManager 音频管理器
// 职责：
//   - 播放一次性音效和命名通道上的循环音频
//   - 全局音量控制，与 SettingsManager 联动
//   - 每帧回收已播放完的一次性音效
//
// audioContext 为 nil 时为静音模式：通道与音量逻辑照常工作，但不发声
type AudioManager struct {
	audioContext    *audio.Context
	settingsManager *SettingsManager
	clips           map[string][]byte
	channels        map[string]*channel
	oneShots        []*audio.Player
	volume          float64
	log             *zap.Logger
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil（静音模式）
//   - sm: SettingsManager 实例（用于读取和保存音量，可为 nil）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	volume := 1.0
	if sm != nil {
		volume = sm.GetSettings().AudioVolume
	}
	return &AudioManager{
		audioContext:    ctx,
		settingsManager: sm,
		clips:           make(map[string][]byte),
		channels:        make(map[string]*channel),
		volume:          volume,
		log:             logger.Named("audio"),
	}
}

// LoadClips 并行合成音频数据，在主循环开始前调用
func (am *AudioManager) LoadClips(ctx context.Context, specs []ClipSpec) error {
	clips, err := synthesizeAll(ctx, specs)
	if err != nil {
		return err
	}
	for id, pcm := range clips {
		am.clips[id] = pcm
	}
	am.log.Debug("clips loaded", zap.Int("count", len(clips)))
	return nil
}

// HasClip 是否已加载指定音频
func (am *AudioManager) HasClip(id string) bool {
	_, ok := am.clips[id]
	return ok
}

// PlaySound 播放一次性音效
//
// 返回：
//   - bool: 音频不存在或处于静音模式时返回 false
func (am *AudioManager) PlaySound(id string) bool {
	pcm, ok := am.clips[id]
	if !ok {
		am.log.Warn("sound not found", zap.String("id", id))
		return false
	}
	if am.audioContext == nil {
		return false
	}

	player := am.audioContext.NewPlayerFromBytes(pcm)
	player.SetVolume(am.volume)
	player.Play()
	am.oneShots = append(am.oneShots, player)
	return true
}

// PlayChannel 在命名通道上循环播放音频
// 通道已存在时不重复播放
//
// 返回：
//   - bool: 音频不存在时返回 false
func (am *AudioManager) PlayChannel(name, clip string) bool {
	if _, exists := am.channels[name]; exists {
		return true
	}
	pcm, ok := am.clips[clip]
	if !ok {
		am.log.Warn("channel clip not found", zap.String("channel", name), zap.String("clip", clip))
		return false
	}

	ch := &channel{clip: clip}
	if am.audioContext != nil {
		loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
		player, err := am.audioContext.NewPlayer(loop)
		if err != nil {
			am.log.Warn("failed to create channel player", zap.String("channel", name), zap.Error(err))
			return false
		}
		player.SetVolume(am.volume)
		player.Play()
		ch.player = player
	}
	am.channels[name] = ch
	am.log.Debug("channel started", zap.String("channel", name), zap.String("clip", clip))
	return true
}

// StopChannel 停止并移除命名通道
func (am *AudioManager) StopChannel(name string) {
	ch, ok := am.channels[name]
	if !ok {
		return
	}
	if ch.player != nil {
		ch.player.Pause()
		if err := ch.player.Close(); err != nil {
			am.log.Warn("failed to close channel player", zap.String("channel", name), zap.Error(err))
		}
	}
	delete(am.channels, name)
}

// HasChannel 通道是否存在
func (am *AudioManager) HasChannel(name string) bool {
	_, ok := am.channels[name]
	return ok
}

// SetVolume 设置全局音量并立即应用到所有正在播放的音频
// 同时写入 SettingsManager（持久化由设置界面负责）
func (am *AudioManager) SetVolume(volume float64) {
	am.volume = clampVolume(volume)
	if am.settingsManager != nil {
		am.settingsManager.SetAudioVolume(am.volume)
	}
	for _, ch := range am.channels {
		if ch.player != nil {
			ch.player.SetVolume(am.volume)
		}
	}
	for _, p := range am.oneShots {
		p.SetVolume(am.volume)
	}
}

// Volume 返回全局音量
func (am *AudioManager) Volume() float64 {
	return am.volume
}

// Collect 回收已播放完的一次性音效，每帧调用一次
func (am *AudioManager) Collect() {
	alive := am.oneShots[:0]
	for _, p := range am.oneShots {
		if p.IsPlaying() {
			alive = append(alive, p)
			continue
		}
		if err := p.Close(); err != nil {
			am.log.Debug("failed to close sound player", zap.Error(err))
		}
	}
	for i := len(alive); i < len(am.oneShots); i++ {
		am.oneShots[i] = nil
	}
	am.oneShots = alive
}

// ActiveSounds 返回尚未回收的一次性音效数量
func (am *AudioManager) ActiveSounds() int {
	return len(am.oneShots)
}
