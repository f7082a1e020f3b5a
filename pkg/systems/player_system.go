package systems

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/shooterboi/pkg/input"
	"github.com/decker502/shooterboi/pkg/physics"
	"github.com/decker502/shooterboi/pkg/render"
)

// 玩家胶囊体：线段 (0,-1,0)-(0,0.5,0)，半径 0.5
var (
	playerCapsuleA = mgl32.Vec3{0, -1, 0}
	playerCapsuleB = mgl32.Vec3{0, 0.5, 0}
)

const playerRadius = 0.5

// SetupPlayer 在 pos 处创建玩家刚体
// 碰撞体的 user data 为 physics.PlayerUserData，用于识别子弹和挥砍命中
func SetupPlayer(w *physics.World, pos mgl32.Vec3) physics.RigidBodyHandle {
	body := w.InsertRigidBody(physics.RigidBodyDesc{
		Type:        physics.Dynamic,
		Translation: pos,
	})
	w.InsertColliderWithParent(
		physics.ColliderDesc{Shape: physics.Capsule(playerCapsuleA, playerCapsuleB, playerRadius)}.
			WithUserData(physics.PlayerUserData),
		body,
	)
	return body
}

// PlayerSystem 根据 WASD 移动玩家，相机跟随玩家刚体
type PlayerSystem struct {
	world  *physics.World
	body   physics.RigidBodyHandle
	camera *render.Camera
	speed  float32
}

// NewPlayerSystem 创建玩家移动系统
//
// 参数:
//   - w: 物理世界
//   - body: SetupPlayer 返回的刚体
//   - camera: 渲染相机
//   - speed: 移动速度（单位/秒）
func NewPlayerSystem(w *physics.World, body physics.RigidBodyHandle, camera *render.Camera, speed float32) *PlayerSystem {
	return &PlayerSystem{world: w, body: body, camera: camera, speed: speed}
}

// Body 返回玩家刚体句柄
func (s *PlayerSystem) Body() physics.RigidBodyHandle {
	return s.body
}

// SyncCamera 把相机移到玩家刚体位置（场景 Init 时调用）
func (s *PlayerSystem) SyncCamera() {
	rb, ok := s.world.RigidBody(s.body)
	if !ok {
		panic("systems: player rigid body missing " + s.body.String())
	}
	s.camera.Position = rb.Translation()
}

// Update 应用视角移动和 WASD 移动，返回玩家新位置
// A/D 与 W/S 各自互斥，A、W 优先
func (s *PlayerSystem) Update(dt float64, in *input.Snapshot) mgl32.Vec3 {
	rb, ok := s.world.RigidBody(s.body)
	if !ok {
		panic("systems: player rigid body missing " + s.body.String())
	}

	s.camera.MoveDirection(in.MouseMovement())

	pos := rb.Translation()
	step := s.speed * float32(dt)
	right := s.camera.DirectionRight()
	forward := s.camera.DirectionWithoutPitch()

	if in.IsKeyPressed(ebiten.KeyA) {
		pos = pos.Sub(right.Mul(step))
	} else if in.IsKeyPressed(ebiten.KeyD) {
		pos = pos.Add(right.Mul(step))
	}
	if in.IsKeyPressed(ebiten.KeyW) {
		pos = pos.Add(forward.Mul(step))
	} else if in.IsKeyPressed(ebiten.KeyS) {
		pos = pos.Sub(forward.Mul(step))
	}

	rb.SetTranslation(pos, true)
	s.camera.Position = pos
	return pos
}
