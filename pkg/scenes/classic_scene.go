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

// 经典模式场地：地面顶面 y=0，四周木箱墙
var (
	classicPlayerSpawn = mgl32.Vec3{0, 1.5, 0}
	classicArena       = systems.ArenaSize{
		HalfWidth:  20,
		HalfDepth:  20,
		WallHeight: 6,
		Thickness:  0.5,
	}
)

const (
	labelGround = "Ground"
	labelWall   = "Wall"
)

// ClassicScene 经典模式：同一时间只有一个靶子，限时内尽量多地击中
//
// 中等难度的靶子沿圆弧巡逻，困难难度的靶子真假切换并沿直线巡逻
type ClassicScene struct {
	*gameplay
	cfg     config.ClassicConfig
	targets *systems.TargetSystem
}

// NewClassicScene 创建经典模式场景
func NewClassicScene(ctx *game.Context, difficulty game.Difficulty) *ClassicScene {
	cfg := ctx.Config.Classic
	g := newGameplay(ctx, game.ModeClassic, difficulty, cfg.RoundDuration, classicPlayerSpawn, render.BackgroundSky)

	systems.SpawnWall(g.entityManager, g.world, labelGround, mgl32.Vec3{0, -1, 0},
		mgl32.Vec3{classicArena.HalfWidth + 1, 1, classicArena.HalfDepth + 1})
	systems.SpawnArenaWalls(g.entityManager, g.world, classicArena)

	s := &ClassicScene{
		gameplay: g,
		cfg:      cfg,
		targets:  systems.NewTargetSystem(g.entityManager, g.world),
	}
	g.enqueueStatic = func(queue *render.RenderQueue) {
		systems.EnqueueWalls(g.entityManager, g.world, queue, labelGround, render.MaterialChecker)
		systems.EnqueueWalls(g.entityManager, g.world, queue, labelWall, render.MaterialCrate)
	}
	return s
}

// Init 实现 game.Scene
func (s *ClassicScene) Init(ctx *game.Context, msg game.Message) {
	s.enter(ctx, msg)
}

// Update 实现 game.Scene
func (s *ClassicScene) Update(ctx *game.Context, dt float64) game.SceneOp {
	s.step(ctx, dt)
	spawn, done := s.advance(ctx, dt)
	if spawn {
		s.spawnTarget(ctx.Rand)
	}

	if s.round.isLive() {
		removed := s.targets.Update(dt)
		if removed.Expired > 0 {
			s.log.Debug("target expired", zap.Int("count", removed.Expired))
		}

		s.fire(ctx, systems.ShotHooks{
			Miss: s.miss,
			Target: func(_ ecs.EntityID, t *components.Target) {
				s.shootTarget(ctx, t)
			},
		})

		if s.targets.Count() == 0 {
			s.spawnTarget(ctx.Rand)
		}
		if s.roundTimer.IsFinished() {
			s.finish("Time out!")
		}
	}

	s.drawHUD(ctx.GUI)
	return s.exit(ctx, done)
}

// shootTarget 击中真靶按反应时间计分；假靶或已击中的靶子算失误
func (s *ClassicScene) shootTarget(ctx *game.Context, t *components.Target) {
	if t.TryShoot() {
		ctx.Audio.PlaySound(game.ClipShooted)
		s.score.Hit++
		s.score.Score += s.cfg.Hit.Points(s.takeHitTime())
		return
	}
	if t.IsFake() {
		s.score.HitFakeTarget++
	}
	s.miss()
}

func (s *ClassicScene) miss() {
	s.score.Miss++
	s.score.Score -= s.cfg.MissPenalty
}

// spawnTarget 在玩家前方随机位置生成一个靶子
func (s *ClassicScene) spawnTarget(rng *rand.Rand) ecs.EntityID {
	pos, target := classicTarget(rng, s.cfg, s.difficulty)
	return systems.SpawnTarget(s.entityManager, s.world, pos, target)
}

// classicTarget 按难度决定靶子的位置、巡逻方式和真假切换
func classicTarget(rng *rand.Rand, cfg config.ClassicConfig, difficulty game.Difficulty) (mgl32.Vec3, *components.Target) {
	x := (rng.Float32()*2 - 1) * cfg.SpawnHalfWidth
	y := cfg.MinHeight + rng.Float32()*(cfg.MaxHeight-cfg.MinHeight)
	pos := mgl32.Vec3{x, y, -cfg.SpawnDistance}

	var (
		validity *components.Validity
		patrol   components.Patrol
	)
	switch difficulty {
	case game.DifficultyMedium:
		radius := float32(math.Hypot(float64(pos.X()), float64(pos.Z())))
		angle := float32(math.Atan2(float64(pos.Z()), float64(pos.X())))
		patrol = components.PolarPatrol(mgl32.Vec3{0, y, 0}, radius,
			angle-cfg.PatrolArc/2, angle+cfg.PatrolArc/2, angle)
	case game.DifficultyHard:
		validity = &components.Validity{
			ValidDuration:   cfg.ValidDuration,
			InvalidDuration: cfg.InvalidDuration,
		}
		half := mgl32.Vec3{cfg.PatrolLength / 2, 0, 0}
		patrol = components.LinearPatrol(pos.Sub(half), pos.Add(half))
	}
	return pos, components.NewTargetWithLifetime(cfg.TargetLifetime, validity, patrol)
}

// Prerender 实现 game.Prerenderer
func (s *ClassicScene) Prerender(ctx *game.Context, _ float64) {
	s.prerender(ctx)
	s.targets.Enqueue(ctx.Renderer.Queue)
}

// Deinit 实现 game.Scene
func (s *ClassicScene) Deinit(ctx *game.Context) {
	s.leave(ctx)
}
