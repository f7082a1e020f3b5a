package components

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/decker502/shooterboi/pkg/render"
)

const (
	// TargetLinearSpeed 直线巡逻速度（单位/秒）
	TargetLinearSpeed = 5.0
	// TargetPolarSpeed 圆弧巡逻角速度（弧度/秒）
	TargetPolarSpeed = 0.3
	// TargetDeleteDelay 被击中后到移除的延迟（秒）
	TargetDeleteDelay = 0.3
	// TargetLinearTurnDistance 直线巡逻到达端点的判定距离
	TargetLinearTurnDistance = 0.5
	// TargetRadius 靶子碰撞球半径
	TargetRadius = 0.5
)

// Validity 真假靶切换周期
type Validity struct {
	ValidDuration   float64
	InvalidDuration float64
}

// ValidityKind 靶子当前的真假状态
type ValidityKind int

const (
	// ValidityNone 无真假切换，始终可击中
	ValidityNone ValidityKind = iota
	// ValidityValid 真靶
	ValidityValid
	// ValidityInvalid 假靶（击中算失误）
	ValidityInvalid
)

// PatrolKind 巡逻方式
type PatrolKind int

const (
	PatrolNone PatrolKind = iota
	PatrolLinear
	PatrolPolar
)

// Patrol 巡逻描述
//
// Linear: 在 A、B 两点间往返
// Polar: 以 Origin 为圆心、Radius 为半径，角度在 AngleA、AngleB 之间往返，Angle 为当前角度
type Patrol struct {
	Kind   PatrolKind
	A, B   mgl32.Vec3
	Origin mgl32.Vec3
	Radius float32
	AngleA float32
	AngleB float32
	Angle  float32
}

// LinearPatrol 创建直线巡逻
func LinearPatrol(a, b mgl32.Vec3) Patrol {
	return Patrol{Kind: PatrolLinear, A: a, B: b}
}

// PolarPatrol 创建圆弧巡逻，起始角度为 start
func PolarPatrol(origin mgl32.Vec3, radius, angleA, angleB, start float32) Patrol {
	return Patrol{
		Kind:   PatrolPolar,
		Origin: origin,
		Radius: radius,
		AngleA: angleA,
		AngleB: angleB,
		Angle:  start,
	}
}

// Target 靶子行为组件
type Target struct {
	shot        bool
	deleteTimer *Timer
	lifetime    *Timer

	validity      *Validity
	validityKind  ValidityKind
	validityTimer Timer

	patrol   Patrol
	towardsB bool
}

// NewTarget 创建靶子
//
// 参数:
//   - validity: 真假切换周期，nil 表示始终为真靶
//   - patrol: 巡逻方式
func NewTarget(validity *Validity, patrol Patrol) *Target {
	t := &Target{
		validity: validity,
		patrol:   patrol,
		towardsB: true,
	}
	if validity != nil {
		t.validityKind = ValidityValid
		t.validityTimer = NewTimer(validity.ValidDuration)
	}
	return t
}

// NewTargetWithLifetime 创建限时存在的靶子，lifetime 秒后自动待删除
func NewTargetWithLifetime(lifetime float64, validity *Validity, patrol Patrol) *Target {
	t := NewTarget(validity, patrol)
	timer := NewTimer(lifetime)
	t.lifetime = &timer
	return t
}

// Update 推进真假切换、巡逻和删除计时
// pos 为靶子当前位置，巡逻时会被原地修改
func (t *Target) Update(dt float64, pos *mgl32.Vec3) {
	t.updateValidity(dt)

	switch t.patrol.Kind {
	case PatrolLinear:
		t.updateLinear(dt, pos)
	case PatrolPolar:
		t.updatePolar(dt, pos)
	}

	if t.deleteTimer != nil {
		t.deleteTimer.Update(dt)
	}
	if t.lifetime != nil {
		t.lifetime.Update(dt)
	}
}

func (t *Target) updateValidity(dt float64) {
	if t.validity == nil {
		return
	}
	// 一帧内可能跨越多个周期
	for dt > 0 {
		remaining := t.validityTimer.Remaining()
		if dt < remaining {
			t.validityTimer.Update(dt)
			return
		}
		dt -= remaining
		if t.validityKind == ValidityValid {
			t.validityKind = ValidityInvalid
			t.validityTimer = NewTimer(t.validity.InvalidDuration)
		} else {
			t.validityKind = ValidityValid
			t.validityTimer = NewTimer(t.validity.ValidDuration)
		}
		if t.validity.ValidDuration <= 0 && t.validity.InvalidDuration <= 0 {
			return
		}
	}
}

func (t *Target) updateLinear(dt float64, pos *mgl32.Vec3) {
	dest := t.patrol.B
	if !t.towardsB {
		dest = t.patrol.A
	}

	delta := dest.Sub(*pos)
	dist := delta.Len()
	if dist <= TargetLinearTurnDistance {
		t.towardsB = !t.towardsB
		return
	}

	step := float32(TargetLinearSpeed * dt)
	if step > dist {
		step = dist
	}
	*pos = pos.Add(delta.Mul(step / dist))
}

func (t *Target) updatePolar(dt float64, pos *mgl32.Vec3) {
	p := &t.patrol
	bound := p.AngleB
	if !t.towardsB {
		bound = p.AngleA
	}

	step := float32(TargetPolarSpeed * dt)
	diff := bound - p.Angle
	if float32(math.Abs(float64(diff))) <= step {
		// 到达端点后夹紧再反向，保证角度连续
		p.Angle = bound
		t.towardsB = !t.towardsB
	} else if diff > 0 {
		p.Angle += step
	} else {
		p.Angle -= step
	}

	c := float64(p.Angle)
	pos[0] = p.Origin.X() + p.Radius*float32(math.Cos(c))
	pos[2] = p.Origin.Z() + p.Radius*float32(math.Sin(c))
}

// TryShoot 尝试击中靶子
//
// 返回:
//   - bool: 已被击中过或当前为假靶时返回 false；否则标记击中、开始删除倒计时并返回 true
func (t *Target) TryShoot() bool {
	if t.shot || t.IsFake() {
		return false
	}
	t.shot = true
	timer := NewTimer(TargetDeleteDelay)
	t.deleteTimer = &timer
	return true
}

// IsShot 是否已被击中
func (t *Target) IsShot() bool {
	return t.shot
}

// IsFake 当前是否为假靶
func (t *Target) IsFake() bool {
	return t.validityKind == ValidityInvalid
}

// Validity 返回当前真假状态
func (t *Target) Validity() ValidityKind {
	return t.validityKind
}

// ValidityRemaining 返回当前真假阶段的剩余时间；无切换时返回 false
func (t *Target) ValidityRemaining() (float64, bool) {
	if t.validity == nil {
		return 0, false
	}
	return t.validityTimer.Remaining(), true
}

// Patrol 返回巡逻状态
func (t *Target) Patrol() Patrol {
	return t.patrol
}

// IsNeedToBeDeleted 被击中后的删除倒计时结束，或存在时间耗尽时返回 true
func (t *Target) IsNeedToBeDeleted() bool {
	if t.deleteTimer != nil && t.deleteTimer.IsFinished() {
		return true
	}
	return t.lifetime != nil && t.lifetime.IsFinished()
}

// Material 返回渲染材质
func (t *Target) Material() render.MaterialType {
	if t.IsFake() {
		return render.MaterialYellow
	}
	if t.shot {
		return render.MaterialTargetDimmed
	}
	return render.MaterialTarget
}
