package scenes

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/decker502/shooterboi/pkg/components"
	"github.com/decker502/shooterboi/pkg/config"
	"github.com/decker502/shooterboi/pkg/ecs"
	"github.com/decker502/shooterboi/pkg/game"
	"github.com/decker502/shooterboi/pkg/render"
	"github.com/decker502/shooterboi/pkg/systems"
)

// 歼灭模式：玩家站在高台顶端，靶子环绕高台分层生成
var (
	eliminationPlayerSpawn = mgl32.Vec3{0, 71, 0}
	eliminationPillarPos   = mgl32.Vec3{0, 35, 0}
	eliminationPillarHalf  = mgl32.Vec3{3, 35, 3}
)

// EliminationScene 歼灭模式：Prepare 结束时一次性生成全部靶子，全部击中或超时结束
type EliminationScene struct {
	*gameplay
	cfg     config.EliminationConfig
	targets *systems.TargetSystem
}

// NewEliminationScene 创建歼灭模式场景
func NewEliminationScene(ctx *game.Context, difficulty game.Difficulty) *EliminationScene {
	cfg := ctx.Config.Elimination
	g := newGameplay(ctx, game.ModeElimination, difficulty, cfg.RoundDuration, eliminationPlayerSpawn, render.BackgroundCity)
	systems.SpawnWall(g.entityManager, g.world, labelGround, eliminationPillarPos, eliminationPillarHalf)

	g.enqueueStatic = func(queue *render.RenderQueue) {
		systems.EnqueueWalls(g.entityManager, g.world, queue, labelGround, render.MaterialCobblestonePaving)
	}
	return &EliminationScene{
		gameplay: g,
		cfg:      cfg,
		targets:  systems.NewTargetSystem(g.entityManager, g.world),
	}
}

// Init 实现 game.Scene
func (s *EliminationScene) Init(ctx *game.Context, msg game.Message) {
	s.enter(ctx, msg)
}

// Update 实现 game.Scene
func (s *EliminationScene) Update(ctx *game.Context, dt float64) game.SceneOp {
	s.step(ctx, dt)
	spawn, done := s.advance(ctx, dt)
	if spawn {
		n := s.spawnTargets(ctx.Rand)
		s.log.Info("targets spawned", zap.Int("count", n))
	}

	if s.round.isLive() {
		s.targets.Update(dt)

		s.fire(ctx, systems.ShotHooks{
			Miss: s.miss,
			Target: func(_ ecs.EntityID, t *components.Target) {
				if !t.TryShoot() {
					s.miss()
					return
				}
				ctx.Audio.PlaySound(game.ClipShooted)
				s.score.Hit++
				s.score.Score += s.cfg.Hit.Points(s.takeHitTime())
			},
		})

		switch {
		case s.targets.Count() == 0:
			s.finish("All targets eliminated!")
		case s.roundTimer.IsFinished():
			s.finish("Time out!")
		}
	}

	s.drawHUD(ctx.GUI)
	return s.exit(ctx, done)
}

func (s *EliminationScene) miss() {
	s.score.Miss++
	s.score.Score -= s.cfg.MissPenalty
}

// spawnTargets 每行 Columns 个靶子，半径和角度随机，行高从 BaseHeight 起逐行 +1
func (s *EliminationScene) spawnTargets(rng *rand.Rand) int {
	n := 0
	for row := 0; row < s.cfg.Rows; row++ {
		for col := 0; col < s.cfg.Columns; col++ {
			pos := eliminationTargetPos(rng, s.cfg, row)
			systems.SpawnTarget(s.entityManager, s.world, pos, components.NewTarget(nil, components.Patrol{}))
			n++
		}
	}
	return n
}

func eliminationTargetPos(rng *rand.Rand, cfg config.EliminationConfig, row int) mgl32.Vec3 {
	r := cfg.MinRadius + rng.Float32()*(cfg.MaxRadius-cfg.MinRadius)
	angle := (rng.Float64()*2 - 1) * math.Pi
	return mgl32.Vec3{
		r * float32(math.Cos(angle)),
		cfg.BaseHeight + float32(row),
		r * float32(math.Sin(angle)),
	}
}

// Prerender 实现 game.Prerenderer
func (s *EliminationScene) Prerender(ctx *game.Context, _ float64) {
	s.prerender(ctx)
	s.targets.Enqueue(ctx.Renderer.Queue)
}

// Deinit 实现 game.Scene
func (s *EliminationScene) Deinit(ctx *game.Context) {
	s.leave(ctx)
}
