package physics

import "github.com/go-gl/mathgl/mgl32"

// RigidBodyType 刚体类型
type RigidBodyType int

const (
	// Dynamic 受重力和接触影响
	Dynamic RigidBodyType = iota
	// Static 不动，不参与积分
	Static
	// KinematicPositionBased 只由 SetTranslation 移动，不受接触影响
	KinematicPositionBased
)

// RigidBodyDesc 创建刚体的参数
type RigidBodyDesc struct {
	Type        RigidBodyType
	Translation mgl32.Vec3
	Linvel      mgl32.Vec3
	// DisableGravity 为 true 时不受重力影响（如子弹）
	DisableGravity bool
}

// RigidBody 刚体
//
// 旋转只用于变换所附碰撞体的局部偏移，不做角速度积分
type RigidBody struct {
	bodyType       RigidBodyType
	translation    mgl32.Vec3
	rotation       mgl32.Quat
	linvel         mgl32.Vec3
	disableGravity bool
	sleeping       bool
	colliders      []ColliderHandle
}

func newRigidBody(desc RigidBodyDesc) RigidBody {
	return RigidBody{
		bodyType:       desc.Type,
		translation:    desc.Translation,
		rotation:       mgl32.QuatIdent(),
		linvel:         desc.Linvel,
		disableGravity: desc.DisableGravity,
	}
}

// Type 返回刚体类型
func (b *RigidBody) Type() RigidBodyType { return b.bodyType }

// IsDynamic 是否为动态刚体
func (b *RigidBody) IsDynamic() bool { return b.bodyType == Dynamic }

// Translation 返回位置
func (b *RigidBody) Translation() mgl32.Vec3 { return b.translation }

// SetTranslation 设置位置，wake 为 true 时唤醒休眠的刚体
func (b *RigidBody) SetTranslation(p mgl32.Vec3, wake bool) {
	b.translation = p
	if wake {
		b.WakeUp()
	}
}

// Rotation 返回朝向
func (b *RigidBody) Rotation() mgl32.Quat { return b.rotation }

// SetRotation 设置朝向
func (b *RigidBody) SetRotation(q mgl32.Quat, wake bool) {
	b.rotation = q.Normalize()
	if wake {
		b.WakeUp()
	}
}

// Linvel 返回线速度
func (b *RigidBody) Linvel() mgl32.Vec3 { return b.linvel }

// SetLinvel 设置线速度
func (b *RigidBody) SetLinvel(v mgl32.Vec3, wake bool) {
	b.linvel = v
	if wake {
		b.WakeUp()
	}
}

// IsSleeping 是否处于休眠
func (b *RigidBody) IsSleeping() bool { return b.sleeping }

// WakeUp 唤醒刚体
func (b *RigidBody) WakeUp() { b.sleeping = false }

// Colliders 返回附着在刚体上的碰撞体
func (b *RigidBody) Colliders() []ColliderHandle {
	return b.colliders
}
