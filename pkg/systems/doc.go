// Package systems 场景共用的实体系统
//
// 每个系统持有场景的 EntityManager 和物理世界，按帧调用 Update，
// 在 Prerender 阶段调用 Enqueue 写入渲染队列。
// 删除实体时先立即删除物理对象，实体本身通过 DestroyEntity 延迟到帧末的
// RemoveMarkedEntities 统一清理。
package systems

import (
	"github.com/decker502/shooterboi/pkg/components"
	"github.com/decker502/shooterboi/pkg/ecs"
	"github.com/decker502/shooterboi/pkg/physics"
)

// entityOf 返回碰撞体所属的存活实体
// 没有 user data、是玩家或实体已不存在时返回 false
func entityOf(em *ecs.EntityManager, w *physics.World, h physics.ColliderHandle) (ecs.EntityID, bool) {
	c, ok := w.Collider(h)
	if !ok {
		return 0, false
	}
	bits, ok := c.UserData()
	if !ok {
		return 0, false
	}
	id, ok := ecs.FromBits(bits)
	if !ok || !em.IsAlive(id) {
		return 0, false
	}
	return id, true
}

// rigidBodyOf 返回实体的刚体，刚体必须存在
func rigidBodyOf(em *ecs.EntityManager, w *physics.World, id ecs.EntityID) *physics.RigidBody {
	handle := ecs.MustGetComponent[*components.RigidBody](em, id)
	rb, ok := w.RigidBody(handle.Handle)
	if !ok {
		panic("systems: entity refers to a removed rigid body " + handle.Handle.String())
	}
	return rb
}
