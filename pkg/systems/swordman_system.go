package systems

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/decker502/shooterboi/pkg/components"
	"github.com/decker502/shooterboi/pkg/ecs"
	"github.com/decker502/shooterboi/pkg/physics"
	"github.com/decker502/shooterboi/pkg/render"
)

// swordmanShape 剑士的一个碰撞体（未缩放的模型坐标）
type swordmanShape struct {
	a, b   mgl32.Vec3
	radius float32
	ball   bool
}

// swordmanShapes 双臂、头、双腿，与渲染模型对齐
var swordmanShapes = []swordmanShape{
	{a: mgl32.Vec3{1.1, 1.4, 0}, b: mgl32.Vec3{1.1, -0.9, 0}, radius: 0.4},
	{a: mgl32.Vec3{-1.1, 1.6, 0}, b: mgl32.Vec3{-1.1, 1.6, 2.3}, radius: 0.4},
	{a: mgl32.Vec3{0, 3.1, 0}, radius: 0.2, ball: true},
	{a: mgl32.Vec3{0.5, -2, 0}, b: mgl32.Vec3{0.5, -4.5, 0}, radius: 0.4},
	{a: mgl32.Vec3{-0.5, -2, 0}, b: mgl32.Vec3{-0.5, -4.5, 0}, radius: 0.4},
}

// SpawnSwordman 在 pos 处生成剑士
// 剑士是位置驱动的运动学刚体，附带按 SwordmanScale 缩放的五个碰撞体
func SpawnSwordman(em *ecs.EntityManager, w *physics.World, pos mgl32.Vec3, swordman *components.Swordman) ecs.EntityID {
	id := em.CreateEntity()
	body := w.InsertRigidBody(physics.RigidBodyDesc{
		Type:        physics.KinematicPositionBased,
		Translation: pos,
	})

	const scale = components.SwordmanScale
	for _, s := range swordmanShapes {
		var desc physics.ColliderDesc
		if s.ball {
			desc = physics.ColliderDesc{Shape: physics.Ball(s.radius * scale), Translation: s.a.Mul(scale)}
		} else {
			desc = physics.ColliderDesc{Shape: physics.Capsule(s.a.Mul(scale), s.b.Mul(scale), s.radius*scale)}
		}
		w.InsertColliderWithParent(desc.WithUserData(id.Bits()), body)
	}

	ecs.AddComponent(em, id, swordman)
	ecs.AddComponent(em, id, &components.RigidBody{Handle: body})
	return id
}

// SwordmanSystem 驱动剑士追击和挥砍
type SwordmanSystem struct {
	entityManager *ecs.EntityManager
	world         *physics.World
}

// NewSwordmanSystem 创建剑士系统
func NewSwordmanSystem(em *ecs.EntityManager, w *physics.World) *SwordmanSystem {
	return &SwordmanSystem{entityManager: em, world: w}
}

// Update 推进所有剑士并结算挥砍
// 挥砍从剑士位置沿朝向做长度 SwordmanStrikeRange 的射线检测，忽略剑士自身
// 调用前物理世界必须已刷新查询快照
//
// 返回:
//   - int: 本帧命中玩家的挥砍次数
func (s *SwordmanSystem) Update(dt float64, player mgl32.Vec3) int {
	hitTaken := 0
	for _, id := range ecs.GetEntitiesWith2[*components.Swordman, *components.RigidBody](s.entityManager) {
		swordman := ecs.MustGetComponent[*components.Swordman](s.entityManager, id)
		handle := ecs.MustGetComponent[*components.RigidBody](s.entityManager, id).Handle
		rb := rigidBodyOf(s.entityManager, s.world, id)

		pos := rb.Translation()
		op := swordman.Update(dt, &pos, player)
		rb.SetTranslation(pos, true)
		rb.SetRotation(mgl32.QuatRotate(swordman.Rotation(), mgl32.Vec3{0, 1, 0}), true)

		if !op.Strike {
			continue
		}
		ray := physics.NewRay(op.Origin, op.Dir)
		hit, ok := s.world.CastRay(ray, components.SwordmanStrikeRange, true, physics.ExcludeRigidBody(handle))
		if !ok {
			continue
		}
		if c, ok := s.world.Collider(hit.Collider); ok && c.IsPlayer() {
			hitTaken++
		}
	}
	return hitTaken
}

// Count 返回剑士数量
func (s *SwordmanSystem) Count() int {
	return len(ecs.GetEntitiesWith1[*components.Swordman](s.entityManager))
}

// Enqueue 把剑士写入动态渲染队列
// Materials[1] 为剑的材质
func (s *SwordmanSystem) Enqueue(queue *render.RenderQueue) {
	for _, id := range ecs.GetEntitiesWith2[*components.Swordman, *components.RigidBody](s.entityManager) {
		swordman := ecs.MustGetComponent[*components.Swordman](s.entityManager, id)
		rb := rigidBodyOf(s.entityManager, s.world, id)

		slot := queue.Next()
		obj := slot.Data()
		obj.Position = rb.Translation()
		obj.Scale = components.SwordmanScale
		obj.Rotation = rb.Rotation().Mat4()
		obj.Shape = render.ShapeSwordman
		obj.ShapeData1[0] = swordman.HitAnim()
		obj.Materials[0] = swordman.Material()
		obj.Materials[1] = render.MaterialGreen
		slot.FitBound()
	}
}
