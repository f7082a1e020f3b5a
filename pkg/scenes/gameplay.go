package scenes

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/decker502/shooterboi/pkg/components"
	"github.com/decker502/shooterboi/pkg/ecs"
	"github.com/decker502/shooterboi/pkg/game"
	"github.com/decker502/shooterboi/pkg/gui"
	"github.com/decker502/shooterboi/pkg/logger"
	"github.com/decker502/shooterboi/pkg/physics"
	"github.com/decker502/shooterboi/pkg/render"
	"github.com/decker502/shooterboi/pkg/systems"
)

// 相机的初始朝向（-Z）
const (
	initialYaw   = 270
	initialPitch = 0
)

// gameplay 三种对局模式共用的部分
//
// 实体管理器和物理世界归场景所有，场景出栈后随场景一起释放
type gameplay struct {
	mode       game.GameMode
	difficulty game.Difficulty
	background render.BackgroundType

	entityManager *ecs.EntityManager
	world         *physics.World
	player        *systems.PlayerSystem
	gun           *systems.Gun

	round      roundState
	roundTimer components.Timer
	sinceHit   components.Stopwatch
	score      game.Score
	finishText string

	// enqueueStatic 在 Init 时写入静态几何
	enqueueStatic func(queue *render.RenderQueue)

	log *zap.Logger
}

// newGameplay 创建物理世界和玩家
//
// 参数:
//   - ctx: 提供玩法配置
//   - mode, difficulty: 成绩记录用
//   - roundDuration: 对局时长（秒）
//   - playerPos: 玩家出生点
//   - background: 渲染背景
func newGameplay(ctx *game.Context, mode game.GameMode, difficulty game.Difficulty,
	roundDuration float64, playerPos mgl32.Vec3, background render.BackgroundType) *gameplay {
	cfg := ctx.Config
	world := physics.NewWorld()
	body := systems.SetupPlayer(world, playerPos)

	return &gameplay{
		mode:          mode,
		difficulty:    difficulty,
		background:    background,
		entityManager: ecs.NewEntityManager(),
		world:         world,
		player:        systems.NewPlayerSystem(world, body, ctx.Renderer.Camera, cfg.Player.Speed),
		gun:           systems.NewGun(cfg.Shoot),
		round:         newRoundState(cfg.Round),
		roundTimer:    components.NewTimer(roundDuration),
		finishText:    "Time out!",
		enqueueStatic: func(*render.RenderQueue) {},
		log:           logger.Named("scene").With(zap.Stringer("mode", mode), zap.Stringer("difficulty", difficulty)),
	}
}

// enter 场景成为栈顶：设置渲染参数、捕获鼠标、停止背景音乐
// 消息带 from_pause 时冻结并重新倒计时
func (g *gameplay) enter(ctx *game.Context, msg game.Message) {
	r := ctx.Renderer
	r.RenderGame = true
	r.RenderGUI = true
	r.Info.BackgroundType = g.background

	settings := ctx.Settings.GetSettings()
	r.Camera.Sensitivity = float32(settings.MouseSensitivity)
	r.Info.MaxRaymarchStep = settings.MaximumRaymarchStep
	r.Info.AOStep = settings.AOStep

	r.Queue.Clear()
	g.enqueueStatic(r.Queue)

	g.player.SyncCamera()
	ctx.Window.SetCursorGrabbed(true)
	ctx.Audio.StopChannel(bgmChannel)

	if msg.BoolOr(game.KeyFromPause, false) {
		g.round.resume()
		r.RenderCrosshair = false
		g.log.Debug("resumed from pause")
		return
	}
	r.Camera.SetYawPitch(initialYaw, initialPitch)
	r.RenderCrosshair = g.round.isLive()
}

// leave 场景出栈：复位后坐视角、清空渲染队列、释放鼠标
func (g *gameplay) leave(ctx *game.Context) {
	r := ctx.Renderer
	r.Info.FovShootAnim[1] = 0
	r.Queue.Clear()
	r.RenderCrosshair = false
	ctx.Window.SetCursorGrabbed(false)
}

// step 推进物理和玩家移动，冻结期间只返回玩家位置
// 顺序：Step → UpdateQueryPipeline → 玩家移动，之后才能做射线检测
func (g *gameplay) step(ctx *game.Context, dt float64) mgl32.Vec3 {
	if g.round.freeze {
		rb, ok := g.world.RigidBody(g.player.Body())
		if !ok {
			panic("scenes: player rigid body missing")
		}
		return rb.Translation()
	}
	g.world.Step()
	g.world.UpdateQueryPipeline()
	return g.player.Update(dt, ctx.Input)
}

// advance 推进阶段和计时器
//
// 返回:
//   - spawn: 首次进入 Round
//   - done: 收尾结束
func (g *gameplay) advance(ctx *game.Context, dt float64) (spawn, done bool) {
	spawn, done = g.round.update(dt, ctx.Input.IsAnyMouseJustPressed())
	if spawn {
		ctx.Renderer.RenderCrosshair = true
		g.log.Info("round started")
	}

	switch g.round.phase {
	case phaseRound:
		g.roundTimer.Update(dt)
		g.sinceHit.Update(dt)
		g.gun.Update(dt)
	case phaseFinishing:
		g.gun.Update(dt)
	}
	return spawn, done
}

// fire 按下左键且冷却结束时开火并结算
//
// 返回:
//   - systems.ShotKind: 命中类别
//   - bool: 本帧是否开火
func (g *gameplay) fire(ctx *game.Context, hooks systems.ShotHooks) (systems.ShotKind, bool) {
	if !g.round.isLive() || !g.gun.TryFire(ctx.Input.IsMousePressed(ebiten.MouseButtonLeft)) {
		return systems.ShotMissed, false
	}
	ctx.Audio.PlaySound(game.ClipShoot)
	return systems.ResolveShot(g.entityManager, g.world, g.gun, ctx.Renderer.Camera, hooks), true
}

// takeHitTime 返回距上次命中的时间并重新计时，同时累计到总用时
func (g *gameplay) takeHitTime() float64 {
	t := g.sinceHit.Elapsed()
	g.sinceHit.Reset()
	g.score.TotalShootTime += t
	return t
}

// finish 进入收尾阶段
func (g *gameplay) finish(text string) {
	if !g.round.isLive() {
		return
	}
	g.finishText = text
	g.round.finish()
	g.log.Info("round finished",
		zap.Int("score", g.score.Score),
		zap.Int("hit", g.score.Hit),
		zap.Int("miss", g.score.Miss))
}

// drawHUD 剩余时间、得分和阶段提示
func (g *gameplay) drawHUD(ui gui.UI) {
	w, h := ui.Size()

	clock := gui.Rect{X: float64(w)/2 - 60, Y: 10, W: 120, H: 30}
	ui.Panel(clock)
	remaining := int(g.roundTimer.Remaining())
	text := fmt.Sprintf("%02d:%02d", remaining/60, remaining%60)
	x, y := gui.CenteredText(text, clock)
	ui.Label(text, x, y)
	ui.Label(fmt.Sprintf("Score: %d", g.score.Score), 20, 20)

	var status string
	switch g.round.phase {
	case phasePreround:
		status = "Press any mouse key to start"
	case phasePrepare:
		status = fmt.Sprintf("%.1f", g.round.timer.Remaining())
	case phaseFinishing:
		status = g.finishText
	}
	if status != "" {
		x, y := gui.CenteredText(status, gui.Rect{W: float64(w), H: float64(h)})
		ui.Label(status, x, y)
	}
}

// scoreMessage 成绩界面需要的消息
func (g *gameplay) scoreMessage() game.Message {
	msg := game.NewMessage().
		With(game.KeyMode, game.IntValue(int64(g.mode))).
		With(game.KeyDifficulty, game.IntValue(int64(g.difficulty)))
	g.score.WriteMessage(msg)
	return msg
}

// exit 帧末的场景切换：收尾结束进入成绩界面，Esc 打开暂停菜单
func (g *gameplay) exit(ctx *game.Context, done bool) game.SceneOp {
	g.entityManager.RemoveMarkedEntities()

	if done {
		return game.Replace(NewGameScoreScene(), g.scoreMessage())
	}
	if ctx.Input.IsKeyJustPressed(ebiten.KeyEscape) {
		return game.Push(NewPauseScene(), nil)
	}
	return game.None()
}

// prerender 写入后坐视角偏移
func (g *gameplay) prerender(ctx *game.Context) {
	g.gun.ApplyRecoil(&ctx.Renderer.Info)
}
