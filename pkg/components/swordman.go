package components

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/decker502/shooterboi/pkg/render"
)

const (
	// SwordmanSpeed 追击速度（单位/秒）
	SwordmanSpeed = 3.0
	// SwordmanAttackRange 水平距离小于该值时发起攻击
	SwordmanAttackRange = 0.5
	// SwordmanStrikeRange 挥砍射线长度
	SwordmanStrikeRange = 1.5
	// SwordmanScale 渲染缩放
	SwordmanScale = 0.2

	swordmanAttackForward  = 0.2
	swordmanAttackBackward = 0.2
)

// SwordmanState 剑士状态
type SwordmanState int

const (
	// SwordmanChase 追击玩家
	SwordmanChase SwordmanState = iota
	// SwordmanAttack 挥砍
	SwordmanAttack
)

// String 返回状态名称
func (s SwordmanState) String() string {
	if s == SwordmanAttack {
		return "Attack"
	}
	return "Chase"
}

// SwordmanOp Update 产生的副作用
// Strike 为 true 时调用方应从 Origin 沿 Dir 做一次短距离射线检测
type SwordmanOp struct {
	Strike bool
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// Swordman 剑士行为组件
type Swordman struct {
	state     SwordmanState
	animation InOutAnimation
	facing    facing
	flash     HitFlash
}

// NewSwordman 创建剑士，初始朝向 -Z
func NewSwordman() *Swordman {
	return &Swordman{
		state:  SwordmanChase,
		facing: newFacing(mgl32.Vec3{0, 0, -1}),
	}
}

// Update 推进剑士状态机
//
// 攻击动画从正向切到回退的那一帧返回 Strike，整个攻击只触发一次
func (s *Swordman) Update(dt float64, pos *mgl32.Vec3, player mgl32.Vec3) SwordmanOp {
	s.flash.Update(dt)

	if desired, ok := horizontalDirection(*pos, player); ok {
		s.facing.steerToward(desired, dt)
	}

	var op SwordmanOp
	switch s.state {
	case SwordmanAttack:
		before := s.animation.State()
		s.animation.Update(dt)
		after := s.animation.State()
		if before == AnimationForward && after != AnimationForward {
			op = SwordmanOp{Strike: true, Origin: *pos, Dir: s.Direction()}
		}
		if after == AnimationStopped {
			s.state = SwordmanChase
		}
	case SwordmanChase:
		target := mgl32.Vec2{player.X(), player.Z()}
		if distanceXZ(*pos, target) <= SwordmanAttackRange {
			s.state = SwordmanAttack
			s.animation = NewStartedInOutAnimation(swordmanAttackForward, swordmanAttackBackward)
		} else {
			moveTowardXZ(pos, target, SwordmanSpeed, dt)
		}
	}
	return op
}

// Hit 受击闪烁
func (s *Swordman) Hit() {
	s.flash.Trigger()
}

// State 返回当前状态
func (s *Swordman) State() SwordmanState {
	return s.state
}

// Direction 返回单位化的水平朝向
func (s *Swordman) Direction() mgl32.Vec3 {
	if s.facing.dir.Len() < 1e-6 {
		return mgl32.Vec3{0, 0, 1}
	}
	return s.facing.dir.Normalize()
}

// Rotation 返回绕 Y 轴的旋转角
func (s *Swordman) Rotation() float32 {
	return s.facing.rotationY
}

// HitAnim 挥砍动画偏移量，供渲染使用
func (s *Swordman) HitAnim() float32 {
	if s.state != SwordmanAttack {
		return 0
	}
	return float32(-s.animation.Value())
}

// Material 返回渲染材质
func (s *Swordman) Material() render.MaterialType {
	return s.flash.Material(render.MaterialWhite)
}
