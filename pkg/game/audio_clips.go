package game

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"golang.org/x/sync/errgroup"
)

// SampleRate 音频采样率
const SampleRate = 48000

// 内置音频资源 ID
const (
	ClipShoot   = "shoot"
	ClipShooted = "shooted"
	ClipBGM     = "bgm"
)

// ClipSpec 合成一段音频的参数
type ClipSpec struct {
	ID       string
	Duration float64 // 秒
	Loop     bool
	// Synth 返回 t 秒处的采样值，范围 [-1, 1]
	Synth func(t float64) float64
}

// DefaultClips 返回游戏使用的全部音频
func DefaultClips() []ClipSpec {
	noise := rand.New(rand.NewPCG(7, 11))
	var noiseMu sync.Mutex

	return []ClipSpec{
		{
			ID:       ClipShoot,
			Duration: 0.15,
			Synth: func(t float64) float64 {
				noiseMu.Lock()
				n := noise.Float64()*2 - 1
				noiseMu.Unlock()
				env := math.Exp(-t * 30)
				return 0.6 * env * (0.7*n + 0.3*math.Sin(2*math.Pi*110*t))
			},
		},
		{
			ID:       ClipShooted,
			Duration: 0.1,
			Synth: func(t float64) float64 {
				return 0.4 * math.Exp(-t*25) * math.Sin(2*math.Pi*880*t)
			},
		},
		{
			ID:       ClipBGM,
			Duration: 4,
			Loop:     true,
			Synth:    bgmSynth,
		},
	}
}

// bgmSynth 四个和弦循环的简单琶音
func bgmSynth(t float64) float64 {
	chords := [4][3]float64{
		{220.00, 261.63, 329.63},
		{174.61, 220.00, 261.63},
		{196.00, 246.94, 293.66},
		{164.81, 207.65, 246.94},
	}
	const noteLen = 1.0 / 6
	chord := chords[int(t)%len(chords)]
	step := int(t/noteLen) % 3
	local := math.Mod(t, noteLen)
	env := math.Exp(-local * 8)
	return 0.15 * env * math.Sin(2*math.Pi*chord[step]*t)
}

// synthesizePCM 生成 16 位小端立体声 PCM
func synthesizePCM(spec ClipSpec) []byte {
	n := int(spec.Duration * SampleRate)
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		v := spec.Synth(float64(i) / SampleRate)
		v = max(-1, min(1, v))
		s := uint16(int16(v * math.MaxInt16))
		binary.LittleEndian.PutUint16(buf[i*4:], s)
		binary.LittleEndian.PutUint16(buf[i*4+2:], s)
	}
	return buf
}

// synthesizeAll 并行合成所有音频
//
// 返回:
//   - map[string][]byte: 资源 ID 到 PCM 数据
//   - error: ID 重复、参数非法或 ctx 被取消时返回错误
func synthesizeAll(ctx context.Context, specs []ClipSpec) (map[string][]byte, error) {
	var mu sync.Mutex
	clips := make(map[string][]byte, len(specs))
	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		if seen[spec.ID] {
			return nil, fmt.Errorf("duplicate clip id %q", spec.ID)
		}
		seen[spec.ID] = true
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, spec := range specs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if spec.Duration <= 0 || spec.Synth == nil {
				return fmt.Errorf("clip %q: invalid spec", spec.ID)
			}
			pcm := synthesizePCM(spec)

			mu.Lock()
			clips[spec.ID] = pcm
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("synthesize clips: %w", err)
	}
	return clips, nil
}
