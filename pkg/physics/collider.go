package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// PlayerUserData 玩家碰撞体的 user data 哨兵值
const PlayerUserData uint64 = math.MaxUint64

// InteractionGroups 碰撞分组掩码
// 两个碰撞体互相的 Memberships 与 Filter 有交集时才会发生接触
type InteractionGroups struct {
	Memberships uint32
	Filter      uint32
}

// AllGroups 与所有分组交互
func AllGroups() InteractionGroups {
	return InteractionGroups{Memberships: math.MaxUint32, Filter: math.MaxUint32}
}

// Test 两个分组是否交互
func (g InteractionGroups) Test(o InteractionGroups) bool {
	return g.Memberships&o.Filter != 0 && o.Memberships&g.Filter != 0
}

// ColliderDesc 创建碰撞体的参数
type ColliderDesc struct {
	Shape Shape
	// Translation 有父刚体时为局部偏移，否则为世界位置
	Translation mgl32.Vec3
	// Sensor 只产生事件，不参与穿透修正
	Sensor bool
	// ActiveEvents 为 true 时该碰撞体参与的接触会产生 ContactEvent
	ActiveEvents bool
	UserData     uint64
	HasUserData  bool
	// Groups 零值视为 AllGroups()
	Groups InteractionGroups
}

// WithUserData 返回设置了 user data 的副本
func (d ColliderDesc) WithUserData(data uint64) ColliderDesc {
	d.UserData = data
	d.HasUserData = true
	return d
}

// Collider 碰撞体
type Collider struct {
	shape        Shape
	translation  mgl32.Vec3
	parent       RigidBodyHandle
	sensor       bool
	activeEvents bool
	userData     uint64
	hasUserData  bool
	groups       InteractionGroups
}

func newCollider(desc ColliderDesc) Collider {
	groups := desc.Groups
	if groups == (InteractionGroups{}) {
		groups = AllGroups()
	}
	return Collider{
		shape:        desc.Shape,
		translation:  desc.Translation,
		sensor:       desc.Sensor,
		activeEvents: desc.ActiveEvents,
		userData:     desc.UserData,
		hasUserData:  desc.HasUserData,
		groups:       groups,
	}
}

// Shape 返回形状
func (c *Collider) Shape() Shape { return c.shape }

// Parent 返回父刚体
func (c *Collider) Parent() (RigidBodyHandle, bool) {
	return c.parent, c.parent.IsValid()
}

// UserData 返回 user data，未设置时第二个返回值为 false
func (c *Collider) UserData() (uint64, bool) {
	return c.userData, c.hasUserData
}

// IsPlayer 是否为玩家碰撞体
func (c *Collider) IsPlayer() bool {
	return c.hasUserData && c.userData == PlayerUserData
}

// IsSensor 是否为传感器
func (c *Collider) IsSensor() bool { return c.sensor }

// Groups 返回碰撞分组
func (c *Collider) Groups() InteractionGroups { return c.groups }

// SetTranslation 设置位置（有父刚体时为局部偏移）
func (c *Collider) SetTranslation(p mgl32.Vec3) {
	c.translation = p
}
