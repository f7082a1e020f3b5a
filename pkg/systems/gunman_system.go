package systems

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/decker502/shooterboi/pkg/components"
	"github.com/decker502/shooterboi/pkg/ecs"
	"github.com/decker502/shooterboi/pkg/physics"
	"github.com/decker502/shooterboi/pkg/render"
)

// 枪手胶囊体：线段 (0,1,0)-(0,-1,0)，半径 0.5
var (
	gunmanCapsuleA = mgl32.Vec3{0, 1, 0}
	gunmanCapsuleB = mgl32.Vec3{0, -1, 0}
)

const (
	gunmanRadius = 0.5
	// bulletSpawnOffset 子弹生成点距枪手中心的距离，避免与枪手自身接触
	bulletSpawnOffset = 1.0
)

// SpawnGunman 在 pos 处生成枪手刚体和碰撞体
func SpawnGunman(em *ecs.EntityManager, w *physics.World, pos mgl32.Vec3, gunman *components.Gunman) ecs.EntityID {
	id := em.CreateEntity()
	body := w.InsertRigidBody(physics.RigidBodyDesc{
		Type:        physics.Dynamic,
		Translation: pos,
	})
	w.InsertColliderWithParent(
		physics.ColliderDesc{Shape: physics.Capsule(gunmanCapsuleA, gunmanCapsuleB, gunmanRadius)}.
			WithUserData(id.Bits()),
		body,
	)

	ecs.AddComponent(em, id, gunman)
	ecs.AddComponent(em, id, &components.RigidBody{Handle: body})
	return id
}

// GunmanSystem 驱动枪手状态机并发射子弹
type GunmanSystem struct {
	entityManager *ecs.EntityManager
	world         *physics.World
	rng           *rand.Rand
}

// NewGunmanSystem 创建枪手系统
//
// 参数:
//   - em: 场景实体管理器
//   - w: 物理世界
//   - rng: 游走目的地的随机源
func NewGunmanSystem(em *ecs.EntityManager, w *physics.World, rng *rand.Rand) *GunmanSystem {
	return &GunmanSystem{entityManager: em, world: w, rng: rng}
}

// Update 推进所有枪手，位置写回刚体，开火时生成子弹
//
// 返回:
//   - int: 本帧发射的子弹数
func (s *GunmanSystem) Update(dt float64, player mgl32.Vec3) int {
	shots := 0
	for _, id := range ecs.GetEntitiesWith2[*components.Gunman, *components.RigidBody](s.entityManager) {
		gunman := ecs.MustGetComponent[*components.Gunman](s.entityManager, id)
		rb := rigidBodyOf(s.entityManager, s.world, id)

		pos := rb.Translation()
		op := gunman.Update(s.rng, dt, &pos, player)
		rb.SetTranslation(pos, true)
		rb.SetRotation(mgl32.QuatRotate(gunman.Rotation(), mgl32.Vec3{0, 1, 0}), true)

		if op.Shoot {
			SpawnBullet(s.entityManager, s.world, op.Pos.Add(op.Dir.Mul(bulletSpawnOffset)), op.Dir)
			shots++
		}
	}
	return shots
}

// Count 返回枪手数量
func (s *GunmanSystem) Count() int {
	return len(ecs.GetEntitiesWith1[*components.Gunman](s.entityManager))
}

// Enqueue 把枪手写入动态渲染队列
// Materials[1] 为枪的材质
func (s *GunmanSystem) Enqueue(queue *render.RenderQueue) {
	for _, id := range ecs.GetEntitiesWith2[*components.Gunman, *components.RigidBody](s.entityManager) {
		gunman := ecs.MustGetComponent[*components.Gunman](s.entityManager, id)
		rb := rigidBodyOf(s.entityManager, s.world, id)

		slot := queue.Next()
		obj := slot.Data()
		obj.Position = rb.Translation()
		obj.Shape = render.ShapeGunman
		obj.ShapeData1[0] = gunman.ShootAnim()
		obj.ShapeData1[1] = gunman.Rotation()
		obj.Materials[0] = gunman.Material()
		obj.Materials[1] = render.MaterialBlack
		slot.FitBound()
	}
}
