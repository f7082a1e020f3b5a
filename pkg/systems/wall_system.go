package systems

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/decker502/shooterboi/pkg/components"
	"github.com/decker502/shooterboi/pkg/ecs"
	"github.com/decker502/shooterboi/pkg/physics"
	"github.com/decker502/shooterboi/pkg/render"
)

// SpawnWall 生成静态盒子（墙或地面）
//
// 参数:
//   - em: 场景实体管理器
//   - w: 物理世界
//   - label: 调试名称
//   - pos: 盒子中心
//   - half: 半尺寸
func SpawnWall(em *ecs.EntityManager, w *physics.World, label string, pos, half mgl32.Vec3) ecs.EntityID {
	id := em.CreateEntity()
	body := w.InsertRigidBody(physics.RigidBodyDesc{
		Type:        physics.Static,
		Translation: pos,
	})
	w.InsertColliderWithParent(physics.ColliderDesc{Shape: physics.Cuboid(half.X(), half.Y(), half.Z())}, body)

	ecs.AddComponent(em, id, &components.Wall{HalfExtents: half})
	ecs.AddComponent(em, id, &components.RigidBody{Handle: body})
	ecs.AddComponent(em, id, &components.Label{Name: label})
	return id
}

// ArenaSize 四面墙围成的场地
type ArenaSize struct {
	Center     mgl32.Vec3 // 场地地面中心
	HalfWidth  float32    // x 方向半宽
	HalfDepth  float32    // z 方向半深
	WallHeight float32
	Thickness  float32 // 墙的半厚度
}

// SpawnArenaWalls 沿场地四周生成四面墙
func SpawnArenaWalls(em *ecs.EntityManager, w *physics.World, a ArenaSize) []ecs.EntityID {
	h := a.WallHeight / 2
	y := a.Center.Y() + h
	return []ecs.EntityID{
		SpawnWall(em, w, "Wall", mgl32.Vec3{a.Center.X(), y, a.Center.Z() - a.HalfDepth - a.Thickness},
			mgl32.Vec3{a.HalfWidth + 2*a.Thickness, h, a.Thickness}),
		SpawnWall(em, w, "Wall", mgl32.Vec3{a.Center.X(), y, a.Center.Z() + a.HalfDepth + a.Thickness},
			mgl32.Vec3{a.HalfWidth + 2*a.Thickness, h, a.Thickness}),
		SpawnWall(em, w, "Wall", mgl32.Vec3{a.Center.X() - a.HalfWidth - a.Thickness, y, a.Center.Z()},
			mgl32.Vec3{a.Thickness, h, a.HalfDepth}),
		SpawnWall(em, w, "Wall", mgl32.Vec3{a.Center.X() + a.HalfWidth + a.Thickness, y, a.Center.Z()},
			mgl32.Vec3{a.Thickness, h, a.HalfDepth}),
	}
}

// EnqueueWalls 把带指定标签的墙写入静态渲染队列（场景 Init 时调用一次）
func EnqueueWalls(em *ecs.EntityManager, w *physics.World, queue *render.RenderQueue, label string, material render.MaterialType) int {
	n := 0
	for _, id := range ecs.GetEntitiesWith3[*components.Wall, *components.RigidBody, *components.Label](em) {
		if ecs.MustGetComponent[*components.Label](em, id).Name != label {
			continue
		}
		wall := ecs.MustGetComponent[*components.Wall](em, id)
		rb := rigidBodyOf(em, w, id)

		slot := queue.NextStatic()
		obj := slot.Data()
		obj.Position = rb.Translation()
		obj.Shape = render.ShapeBox
		obj.ShapeData1 = wall.HalfExtents.Vec4(0)
		obj.Materials[0] = material
		slot.FitBound()
		n++
	}
	return n
}
