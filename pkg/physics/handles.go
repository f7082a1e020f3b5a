package physics

import "fmt"

// RigidBodyHandle 刚体句柄，零值无效
type RigidBodyHandle struct {
	index      uint32
	generation uint32
}

// IsValid 句柄是否可能指向一个刚体（不检查是否已被删除）
func (h RigidBodyHandle) IsValid() bool {
	return h.generation != 0
}

func (h RigidBodyHandle) String() string {
	return fmt.Sprintf("RigidBody(%d:%d)", h.index, h.generation)
}

// ColliderHandle 碰撞体句柄，零值无效
type ColliderHandle struct {
	index      uint32
	generation uint32
}

// IsValid 句柄是否可能指向一个碰撞体（不检查是否已被删除）
func (h ColliderHandle) IsValid() bool {
	return h.generation != 0
}

func (h ColliderHandle) String() string {
	return fmt.Sprintf("Collider(%d:%d)", h.index, h.generation)
}

// colliderPair 无序碰撞体对，first 的 index 较小
type colliderPair struct {
	first, second ColliderHandle
}

func makePair(a, b ColliderHandle) colliderPair {
	if b.index < a.index || (b.index == a.index && b.generation < a.generation) {
		a, b = b, a
	}
	return colliderPair{first: a, second: b}
}
