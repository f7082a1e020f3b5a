package systems

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/decker502/shooterboi/pkg/components"
	"github.com/decker502/shooterboi/pkg/ecs"
	"github.com/decker502/shooterboi/pkg/logger"
	"github.com/decker502/shooterboi/pkg/physics"
	"github.com/decker502/shooterboi/pkg/render"
)

// SpawnBullet 在 pos 处生成沿 dir 飞行的子弹
// 子弹不受重力，碰撞体开启接触事件，由 BulletSystem.Dispose 回收
func SpawnBullet(em *ecs.EntityManager, w *physics.World, pos, dir mgl32.Vec3) ecs.EntityID {
	id := em.CreateEntity()
	body := w.InsertRigidBody(physics.RigidBodyDesc{
		Type:           physics.Dynamic,
		Translation:    pos,
		Linvel:         dir.Mul(components.BulletSpeed),
		DisableGravity: true,
	})
	w.InsertColliderWithParent(
		physics.ColliderDesc{
			Shape:        physics.Ball(components.BulletRadius),
			ActiveEvents: true,
		}.WithUserData(id.Bits()),
		body,
	)

	ecs.AddComponent(em, id, &components.Bullet{})
	ecs.AddComponent(em, id, &components.RigidBody{Handle: body})
	return id
}

// BulletSystem 回收碰撞或飞出场地的子弹
type BulletSystem struct {
	entityManager *ecs.EntityManager
	world         *physics.World
	maxDistance   float32
	log           *zap.Logger
}

// NewBulletSystem 创建子弹系统
// 子弹离原点超过 maxDistance 后被删除
func NewBulletSystem(em *ecs.EntityManager, w *physics.World, maxDistance float32) *BulletSystem {
	return &BulletSystem{
		entityManager: em,
		world:         w,
		maxDistance:   maxDistance,
		log:           logger.Named("bullets"),
	}
}

// Dispose 处理本帧的接触事件
// 任一方为子弹的 ContactStarted 都会删除该子弹；另一方是玩家时计一次受击
//
// 返回:
//   - int: 本帧玩家被子弹击中的次数
func (s *BulletSystem) Dispose() int {
	hitTaken := 0
	for _, ev := range s.world.DrainContactEvents() {
		if ev.Kind != physics.ContactStarted {
			continue
		}
		if s.disposeIfBullet(ev.Collider1, ev.Collider2) {
			hitTaken++
		}
		if s.disposeIfBullet(ev.Collider2, ev.Collider1) {
			hitTaken++
		}
	}
	return hitTaken
}

// disposeIfBullet bullet 属于子弹时删除它，返回 other 是否为玩家
func (s *BulletSystem) disposeIfBullet(bullet, other physics.ColliderHandle) bool {
	id, ok := entityOf(s.entityManager, s.world, bullet)
	if !ok || !ecs.HasComponent[*components.Bullet](s.entityManager, id) {
		return false
	}

	hitPlayer := false
	if c, ok := s.world.Collider(other); ok {
		hitPlayer = c.IsPlayer()
	}
	s.remove(id)
	if hitPlayer {
		s.log.Debug("player hit by bullet", zap.Uint64("bullet", id.Bits()))
	}
	return hitPlayer
}

func (s *BulletSystem) remove(id ecs.EntityID) {
	handle := ecs.MustGetComponent[*components.RigidBody](s.entityManager, id).Handle
	s.world.RemoveRigidBody(handle)
	s.entityManager.DestroyEntity(id)
}

// Update 删除飞出场地的子弹
//
// 返回:
//   - int: 删除的子弹数
func (s *BulletSystem) Update() int {
	removed := 0
	for _, id := range ecs.GetEntitiesWith2[*components.Bullet, *components.RigidBody](s.entityManager) {
		handle := ecs.MustGetComponent[*components.RigidBody](s.entityManager, id).Handle
		rb, ok := s.world.RigidBody(handle)
		if !ok {
			continue
		}
		if rb.Translation().Len() > s.maxDistance {
			s.remove(id)
			removed++
		}
	}
	return removed
}

// Count 返回尚未删除的子弹数量
func (s *BulletSystem) Count() int {
	n := 0
	for _, id := range ecs.GetEntitiesWith2[*components.Bullet, *components.RigidBody](s.entityManager) {
		if _, ok := s.world.RigidBody(ecs.MustGetComponent[*components.RigidBody](s.entityManager, id).Handle); ok {
			n++
		}
	}
	return n
}

// Enqueue 把子弹写入动态渲染队列
func (s *BulletSystem) Enqueue(queue *render.RenderQueue) {
	for _, id := range ecs.GetEntitiesWith2[*components.Bullet, *components.RigidBody](s.entityManager) {
		bullet := ecs.MustGetComponent[*components.Bullet](s.entityManager, id)
		rb, ok := s.world.RigidBody(ecs.MustGetComponent[*components.RigidBody](s.entityManager, id).Handle)
		if !ok {
			continue
		}

		slot := queue.Next()
		obj := slot.Data()
		obj.Position = rb.Translation()
		obj.Shape = render.ShapeSphere
		obj.ShapeData1[0] = components.BulletRadius
		obj.Materials[0] = bullet.Material()
		slot.FitBound()
	}
}
