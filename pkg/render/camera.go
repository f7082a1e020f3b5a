package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// ZNear 近平面距离
	ZNear = 0.1
	// ZFar 远平面距离
	ZFar = 100.0
	// FrustumAspect 视锥水平/垂直半宽比
	FrustumAspect = 1.5

	defaultYaw         = 270.0
	defaultFovDegrees  = 90.0
	defaultSensitivity = 0.5
	maxPitch           = 89.0
)

// Camera 第一人称相机，yaw/pitch 以角度保存
type Camera struct {
	Position    mgl32.Vec3
	Fov         float32 // 弧度
	Sensitivity float32

	yaw   float32
	pitch float32
}

// NewCamera 创建默认相机：位于 (0, 0.6, 0)，朝向 -Z
func NewCamera() *Camera {
	return &Camera{
		Position:    mgl32.Vec3{0, 0.6, 0},
		Fov:         mgl32.DegToRad(defaultFovDegrees),
		Sensitivity: defaultSensitivity,
		yaw:         defaultYaw,
	}
}

// Yaw 返回偏航角（度）
func (c *Camera) Yaw() float32 { return c.yaw }

// Pitch 返回俯仰角（度）
func (c *Camera) Pitch() float32 { return c.pitch }

// SetYawPitch 直接设置朝向（度），pitch 会被限制在 ±89°
func (c *Camera) SetYawPitch(yaw, pitch float32) {
	c.yaw = yaw
	c.pitch = mgl32.Clamp(pitch, -maxPitch, maxPitch)
}

// MoveDirection 按鼠标位移调整朝向
// 水平位移减小 yaw，垂直位移增加 pitch
func (c *Camera) MoveDirection(offset mgl32.Vec2) {
	o := offset.Mul(c.Sensitivity)
	c.yaw -= o.X()
	c.pitch = mgl32.Clamp(c.pitch+o.Y(), -maxPitch, maxPitch)
}

// Direction 返回视线方向（单位向量）
func (c *Camera) Direction() mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(c.yaw))
	pitch := float64(mgl32.DegToRad(c.pitch))
	return mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
}

// DirectionWithoutPitch 返回水平视线方向
func (c *Camera) DirectionWithoutPitch() mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(c.yaw))
	return mgl32.Vec3{float32(math.Cos(yaw)), 0, float32(math.Sin(yaw))}.Normalize()
}

// DirectionRight 返回水平右方向
func (c *Camera) DirectionRight() mgl32.Vec3 {
	return c.DirectionWithoutPitch().Cross(mgl32.Vec3{0, 1, 0}).Normalize()
}

// Frustum 由当前相机参数构造视锥
func (c *Camera) Frustum() Frustum {
	halfV := float32(ZFar * math.Tan(float64(c.Fov)*0.5))
	halfH := halfV * FrustumAspect
	right := c.DirectionRight()
	dir := c.Direction()
	up := mgl32.Vec3{0, 1, 0}
	frontFar := dir.Mul(ZFar)

	return Frustum{
		Near:   NewFrustumPlane(c.Position.Add(dir.Mul(ZNear)), dir),
		Far:    NewFrustumPlane(c.Position.Add(frontFar), dir.Mul(-1)),
		Top:    NewFrustumPlane(c.Position, frontFar.Add(up.Mul(halfV)).Cross(right)),
		Bottom: NewFrustumPlane(c.Position, right.Cross(frontFar.Sub(up.Mul(halfV)))),
		Left:   NewFrustumPlane(c.Position, frontFar.Sub(right.Mul(halfH)).Cross(up)),
		Right:  NewFrustumPlane(c.Position, up.Cross(frontFar.Add(right.Mul(halfH)))),
	}
}

// ViewMatrix 返回 look-at 视图矩阵
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Direction()), mgl32.Vec3{0, 1, 0})
}
