package components

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/decker502/shooterboi/pkg/physics"
)

// RigidBody 实体对应的刚体句柄
type RigidBody struct {
	Handle physics.RigidBodyHandle
}

// Collider 实体对应的碰撞体句柄
type Collider struct {
	Handle physics.ColliderHandle
}

// Label 调试用名称标签（如 "Wall"）
type Label struct {
	Name string
}

// Wall 墙体，渲染为半尺寸 HalfExtents 的盒子
type Wall struct {
	HalfExtents mgl32.Vec3
}
