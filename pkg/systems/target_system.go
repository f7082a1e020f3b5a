package systems

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/decker502/shooterboi/pkg/components"
	"github.com/decker502/shooterboi/pkg/ecs"
	"github.com/decker502/shooterboi/pkg/physics"
	"github.com/decker502/shooterboi/pkg/render"
)

// SpawnTarget 在 pos 处生成靶子
// 靶子是无父刚体的球形碰撞体，user data 为实体编码
func SpawnTarget(em *ecs.EntityManager, w *physics.World, pos mgl32.Vec3, target *components.Target) ecs.EntityID {
	id := em.CreateEntity()
	collider := w.InsertCollider(physics.ColliderDesc{
		Shape:       physics.Ball(components.TargetRadius),
		Translation: pos,
	}.WithUserData(id.Bits()))

	ecs.AddComponent(em, id, target)
	ecs.AddComponent(em, id, &components.Collider{Handle: collider})
	return id
}

// TargetSystem 推进靶子状态并清理到期的靶子
type TargetSystem struct {
	entityManager *ecs.EntityManager
	world         *physics.World
}

// NewTargetSystem 创建靶子系统
func NewTargetSystem(em *ecs.EntityManager, w *physics.World) *TargetSystem {
	return &TargetSystem{entityManager: em, world: w}
}

// TargetRemoval 一次清理的统计
type TargetRemoval struct {
	Shot    int // 被击中后删除
	Expired int // 未被击中、存在时间耗尽
}

// Update 推进巡逻和计时，把位置写回碰撞体，删除到期的靶子
// 碰撞体立即删除，实体标记为待删除
// 结束时刷新查询快照，同一帧的射线检测看到的是移动后的位置
func (s *TargetSystem) Update(dt float64) TargetRemoval {
	var removed TargetRemoval
	ids := ecs.GetEntitiesWith2[*components.Target, *components.Collider](s.entityManager)
	for _, id := range ids {
		target := ecs.MustGetComponent[*components.Target](s.entityManager, id)
		handle := ecs.MustGetComponent[*components.Collider](s.entityManager, id).Handle
		collider, ok := s.world.Collider(handle)
		if !ok {
			panic("systems: target collider missing " + handle.String())
		}

		pos, _ := s.world.ColliderTranslation(handle)
		target.Update(dt, &pos)
		collider.SetTranslation(pos)

		if target.IsNeedToBeDeleted() {
			if target.IsShot() {
				removed.Shot++
			} else {
				removed.Expired++
			}
			s.world.RemoveCollider(handle)
			s.entityManager.DestroyEntity(id)
		}
	}
	if len(ids) > 0 {
		s.world.UpdateQueryPipeline()
	}
	return removed
}

// Count 返回尚未标记删除的靶子数量
func (s *TargetSystem) Count() int {
	n := 0
	for _, id := range ecs.GetEntitiesWith2[*components.Target, *components.Collider](s.entityManager) {
		handle := ecs.MustGetComponent[*components.Collider](s.entityManager, id).Handle
		if _, ok := s.world.Collider(handle); ok {
			n++
		}
	}
	return n
}

// Enqueue 把靶子写入动态渲染队列
func (s *TargetSystem) Enqueue(queue *render.RenderQueue) {
	for _, id := range ecs.GetEntitiesWith2[*components.Target, *components.Collider](s.entityManager) {
		target := ecs.MustGetComponent[*components.Target](s.entityManager, id)
		handle := ecs.MustGetComponent[*components.Collider](s.entityManager, id).Handle
		collider, ok := s.world.Collider(handle)
		if !ok {
			continue
		}
		pos, _ := s.world.ColliderTranslation(handle)

		slot := queue.Next()
		obj := slot.Data()
		obj.Position = pos
		obj.Shape = render.ShapeSphere
		obj.Materials[0] = target.Material()
		obj.ShapeData1[0] = collider.Shape().Radius
		slot.FitBound()
	}
}
