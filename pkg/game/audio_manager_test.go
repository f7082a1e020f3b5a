package game

import (
	"context"
	"testing"
)

func newSilentAudio(t *testing.T, sm *SettingsManager) *AudioManager {
	t.Helper()
	am := NewAudioManager(nil, sm)
	if err := am.LoadClips(context.Background(), DefaultClips()); err != nil {
		t.Fatalf("LoadClips: %v", err)
	}
	return am
}

func TestLoadClipsSynthesizesAll(t *testing.T) {
	am := newSilentAudio(t, nil)

	for _, spec := range DefaultClips() {
		if !am.HasClip(spec.ID) {
			t.Errorf("clip %q not loaded", spec.ID)
			continue
		}
		// 16 位立体声，每个采样 4 字节
		want := int(spec.Duration*SampleRate) * 4
		if got := len(am.clips[spec.ID]); got != want {
			t.Errorf("clip %q: got %d bytes, want %d", spec.ID, got, want)
		}
	}
}

func TestLoadClipsRejectsBadSpecs(t *testing.T) {
	am := NewAudioManager(nil, nil)

	dup := []ClipSpec{
		{ID: "a", Duration: 0.1, Synth: func(float64) float64 { return 0 }},
		{ID: "a", Duration: 0.1, Synth: func(float64) float64 { return 0 }},
	}
	if err := am.LoadClips(context.Background(), dup); err == nil {
		t.Error("duplicate ids should fail")
	}

	invalid := []ClipSpec{{ID: "b", Duration: 0}}
	if err := am.LoadClips(context.Background(), invalid); err == nil {
		t.Error("zero duration should fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := am.LoadClips(ctx, DefaultClips()); err == nil {
		t.Error("cancelled context should fail")
	}
	if am.HasClip(ClipShoot) {
		t.Error("failed load should not register clips")
	}
}

func TestSynthesizePCMClampsSamples(t *testing.T) {
	pcm := synthesizePCM(ClipSpec{ID: "loud", Duration: 0.001, Synth: func(float64) float64 { return 5 }})
	if len(pcm) < 4 {
		t.Fatalf("pcm too short: %d", len(pcm))
	}
	// 0x7fff 小端
	if pcm[0] != 0xff || pcm[1] != 0x7f {
		t.Errorf("sample not clamped: % x", pcm[:4])
	}
}

func TestChannelsInSilentMode(t *testing.T) {
	am := newSilentAudio(t, nil)

	if !am.PlayChannel("bgm", ClipBGM) {
		t.Fatal("PlayChannel failed")
	}
	if !am.HasChannel("bgm") {
		t.Error("channel should exist after PlayChannel")
	}
	// 重复播放同名通道不会替换
	if !am.PlayChannel("bgm", ClipShoot) {
		t.Error("PlayChannel on existing channel should succeed")
	}
	if am.channels["bgm"].clip != ClipBGM {
		t.Errorf("channel clip replaced: %q", am.channels["bgm"].clip)
	}

	am.StopChannel("bgm")
	if am.HasChannel("bgm") {
		t.Error("channel should be removed after StopChannel")
	}
	am.StopChannel("bgm")

	if am.PlayChannel("bgm", "missing") {
		t.Error("unknown clip should fail")
	}
}

func TestPlaySoundSilent(t *testing.T) {
	am := newSilentAudio(t, nil)
	if am.PlaySound(ClipShoot) {
		t.Error("silent mode should not report playback")
	}
	if am.PlaySound("missing") {
		t.Error("unknown sound should fail")
	}
	am.Collect()
	if am.ActiveSounds() != 0 {
		t.Errorf("ActiveSounds: got %d, want 0", am.ActiveSounds())
	}
}

func TestSetVolumeUpdatesSettings(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetAudioVolume(0.4)
	am := newSilentAudio(t, sm)

	if am.Volume() != 0.4 {
		t.Errorf("initial volume: got %v, want 0.4", am.Volume())
	}
	am.SetVolume(1.7)
	if am.Volume() != 1.0 {
		t.Errorf("volume not clamped: %v", am.Volume())
	}
	if sm.GetSettings().AudioVolume != 1.0 {
		t.Errorf("settings not updated: %v", sm.GetSettings().AudioVolume)
	}
}
