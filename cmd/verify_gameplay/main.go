// verify_gameplay 无窗口地跑完一局，用随机输入验证对局流程
//
// 用法:
//
//	go run ./cmd/verify_gameplay -mode elimination -difficulty hard -seed 42
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/shooterboi/pkg/config"
	"github.com/decker502/shooterboi/pkg/game"
	"github.com/decker502/shooterboi/pkg/gui"
	"github.com/decker502/shooterboi/pkg/input"
	"github.com/decker502/shooterboi/pkg/logger"
	"github.com/decker502/shooterboi/pkg/render"
	"github.com/decker502/shooterboi/pkg/scenes"
)

const (
	frameDt   = 1.0 / 60
	maxFrames = 60 * 60 * 5
	// fireInterval 机器人两次开火的间隔（秒）
	fireInterval = 0.5
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	modeFlag   = flag.String("mode", "classic", "模式：classic、elimination、hit_and_dodge")
	difficulty = flag.String("difficulty", "easy", "难度：easy、medium、hard")
	seed       = flag.Uint64("seed", 1, "随机种子")
)

// headlessWindow 无窗口运行时忽略光标和全屏请求
type headlessWindow struct{}

func (headlessWindow) SetCursorGrabbed(bool) {}
func (headlessWindow) SetFullscreen(bool)    {}

func main() {
	flag.Parse()
	if err := logger.Init(*verbose); err != nil {
		fmt.Printf("❌ 初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	mode, err := game.ParseGameMode(*modeFlag)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(2)
	}
	diff, err := game.ParseDifficulty(*difficulty)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(2)
	}

	audio := game.NewAudioManager(nil, nil)
	if err := audio.LoadClips(context.Background(), game.DefaultClips()); err != nil {
		fmt.Printf("❌ 合成音频失败: %v\n", err)
		os.Exit(1)
	}

	cfg := config.DefaultGameplayConfig()
	ctx := &game.Context{
		Window:   headlessWindow{},
		Renderer: render.NewRenderer(nil, cfg.Window.Width, cfg.Window.Height),
		GUI:      gui.NewEbitenUI(),
		Audio:    audio,
		Database: game.NewScoreDatabase(nil),
		Settings: game.NewSettingsManager(nil),
		Input:    input.NewSnapshot(),
		Config:   cfg,
		Rand:     rand.New(rand.NewPCG(*seed, *seed+1)),
	}
	bot := rand.New(rand.NewPCG(*seed, 7))

	stack := game.NewSceneStack(ctx)
	stack.Apply(game.Push(scenes.NewGameScene(ctx, mode, diff), nil))

	var (
		frames    int
		sinceShot float64
		visible   int
	)
	for ; frames < maxFrames; frames++ {
		in := ctx.Input
		in.Clear()
		if frames == 0 {
			in.PressMouse(ebiten.MouseButtonRight, true)
		}
		in.SetMouseMovement(mgl32.Vec2{
			float32(bot.NormFloat64() * 4),
			float32(bot.NormFloat64() * 2),
		})
		sinceShot += frameDt
		if sinceShot >= fireInterval {
			sinceShot = 0
			in.PressMouse(ebiten.MouseButtonLeft, true)
		}

		ctx.GUI.Begin(in, cfg.Window.Width, cfg.Window.Height)
		if !stack.Update(frameDt) {
			break
		}
		stack.Prerender(frameDt)
		if err := ctx.Renderer.Render(float64(frames) * frameDt); err != nil {
			fmt.Printf("❌ 渲染失败: %v\n", err)
			os.Exit(1)
		}
		visible += int(ctx.Renderer.Info.QueueCount)

		if _, done := stack.Top().(*scenes.GameScoreScene); done {
			break
		}
	}

	records, err := ctx.Database.List(mode, diff)
	if err != nil || len(records) == 0 {
		fmt.Printf("❌ 对局未结束（%d 帧）: %v\n", frames, err)
		os.Exit(1)
	}
	r := records[0]
	fmt.Printf("✅ %s / %s 完成，共 %d 帧（%.1fs）\n", mode, diff, frames, float64(frames)*frameDt)
	fmt.Printf("   得分 %d，命中 %d，未命中 %d，准确率 %.1f%%\n", r.Score, r.Hit, r.Miss, r.Accuracy)
	fmt.Printf("   受击 %d，假靶 %d，平均每帧可见对象 %.1f\n", r.HitTaken, r.HitFakeTarget, float64(visible)/float64(max(frames, 1)))
}
