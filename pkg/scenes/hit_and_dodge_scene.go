package scenes

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/decker502/shooterboi/pkg/components"
	"github.com/decker502/shooterboi/pkg/config"
	"github.com/decker502/shooterboi/pkg/ecs"
	"github.com/decker502/shooterboi/pkg/game"
	"github.com/decker502/shooterboi/pkg/physics"
	"github.com/decker502/shooterboi/pkg/render"
	"github.com/decker502/shooterboi/pkg/systems"
)

// 攻防模式场地：20x20 的石墙围栏
var (
	hitAndDodgePlayerSpawn = mgl32.Vec3{0, 2.5, 0}
	hitAndDodgeGroundHalf  = mgl32.Vec3{10, 1, 10}
	hitAndDodgeWalls       = []struct{ pos, half mgl32.Vec3 }{
		{mgl32.Vec3{0, 1.4, -9.5}, mgl32.Vec3{10, 0.398, 0.5}},
		{mgl32.Vec3{0, 1.4, 9.5}, mgl32.Vec3{10, 0.398, 0.5}},
		{mgl32.Vec3{-9.5, 1.4, 0}, mgl32.Vec3{0.5, 0.398, 9.99}},
		{mgl32.Vec3{9.5, 1.4, 0}, mgl32.Vec3{0.5, 0.398, 9.99}},
	}
)

// HitAndDodgeScene 攻防模式：击中枪手得分，同时躲避子弹和剑士
type HitAndDodgeScene struct {
	*gameplay
	cfg      config.HitAndDodgeConfig
	gunmen   *systems.GunmanSystem
	swordmen *systems.SwordmanSystem
	bullets  *systems.BulletSystem
}

// NewHitAndDodgeScene 创建攻防模式场景，敌人在构造时生成
func NewHitAndDodgeScene(ctx *game.Context, difficulty game.Difficulty) *HitAndDodgeScene {
	cfg := ctx.Config.HitAndDodge
	g := newGameplay(ctx, game.ModeHitAndDodge, difficulty, cfg.RoundDuration, hitAndDodgePlayerSpawn, render.BackgroundForest)

	// 物理地面远大于可见地面，防止玩家和敌人从边缘掉落
	g.world.InsertCollider(physics.ColliderDesc{Shape: physics.Cuboid(1000, 1, 1000)})
	for _, wall := range hitAndDodgeWalls {
		systems.SpawnWall(g.entityManager, g.world, labelWall, wall.pos, wall.half)
	}

	s := &HitAndDodgeScene{
		gameplay: g,
		cfg:      cfg,
		gunmen:   systems.NewGunmanSystem(g.entityManager, g.world, ctx.Rand),
		swordmen: systems.NewSwordmanSystem(g.entityManager, g.world),
		bullets:  systems.NewBulletSystem(g.entityManager, g.world, cfg.BulletMaxDistance),
	}

	level := int(difficulty)
	systems.SpawnGunman(g.entityManager, g.world, cfg.GunmanSpawn.Vec(),
		components.NewGunman(ctx.Rand, ctx.Config.Gunman.For(level)))
	if level >= cfg.SwordmanMinLevel {
		systems.SpawnSwordman(g.entityManager, g.world, cfg.SwordmanSpawn.Vec(), components.NewSwordman())
	}

	g.enqueueStatic = func(queue *render.RenderQueue) {
		slot := queue.NextStatic()
		obj := slot.Data()
		obj.Shape = render.ShapeBox
		obj.ShapeData1 = hitAndDodgeGroundHalf.Vec4(0)
		obj.Materials[0] = render.MaterialCobblestonePaving
		slot.FitBound()

		systems.EnqueueWalls(g.entityManager, g.world, queue, labelWall, render.MaterialStoneWall)
	}
	return s
}

// Init 实现 game.Scene
func (s *HitAndDodgeScene) Init(ctx *game.Context, msg game.Message) {
	s.enter(ctx, msg)
}

// Update 实现 game.Scene
func (s *HitAndDodgeScene) Update(ctx *game.Context, dt float64) game.SceneOp {
	player := s.step(ctx, dt)
	// 子弹的接触事件每次 Step 后都要清空，只有对局中才计入被击中次数
	hits := s.bullets.Dispose()
	_, done := s.advance(ctx, dt)

	if s.round.isLive() {
		// 枪手开火只生成子弹，被击中由子弹接触或剑士挥砍结算
		if shots := s.gunmen.Update(dt, player); shots > 0 {
			s.log.Debug("gunman fired", zap.Int("bullets", shots))
		}
		hits += s.swordmen.Update(dt, player)
		s.bullets.Update()
		s.score.HitTaken += hits

		s.fire(ctx, systems.ShotHooks{
			Miss: s.miss,
			Gunman: func(_ ecs.EntityID, g *components.Gunman) {
				g.Hit()
				ctx.Audio.PlaySound(game.ClipShooted)
				s.score.Hit++
				s.score.Score += s.cfg.Hit.Points(s.takeHitTime())
			},
			Swordman: func(_ ecs.EntityID, sw *components.Swordman) {
				sw.Hit()
				s.miss()
			},
		})

		if s.roundTimer.IsFinished() {
			s.finish("Time out!")
		}
	}

	s.drawHUD(ctx.GUI)
	return s.exit(ctx, done)
}

func (s *HitAndDodgeScene) miss() {
	s.score.Miss++
	s.score.Score -= s.cfg.MissPenalty
}

// Prerender 实现 game.Prerenderer
func (s *HitAndDodgeScene) Prerender(ctx *game.Context, _ float64) {
	s.prerender(ctx)
	queue := ctx.Renderer.Queue
	s.gunmen.Enqueue(queue)
	s.swordmen.Enqueue(queue)
	s.bullets.Enqueue(queue)
}

// Deinit 实现 game.Scene
func (s *HitAndDodgeScene) Deinit(ctx *game.Context) {
	s.leave(ctx)
}
