package components

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/decker502/shooterboi/pkg/render"
)

const (
	// EnemyRotationSpeed 敌人转向速率
	EnemyRotationSpeed = 3.0
	// EnemyRotationDeadzone 朝向差小于该值的轴不再调整，避免抖动
	EnemyRotationDeadzone = 0.01
	// HitFlashDuration 受击闪烁持续时间（秒）
	HitFlashDuration = 0.1
)

// HitFlash 受击闪烁状态，仅影响渲染材质
type HitFlash struct {
	active bool
	timer  Timer
}

// Trigger 进入受击状态
func (h *HitFlash) Trigger() {
	h.active = true
	h.timer = NewTimer(HitFlashDuration)
}

// Update 推进计时，到时自动清除
func (h *HitFlash) Update(dt float64) {
	if !h.active {
		return
	}
	h.timer.Update(dt)
	if h.timer.IsFinished() {
		h.active = false
	}
}

// IsActive 是否处于受击状态
func (h *HitFlash) IsActive() bool {
	return h.active
}

// Material 受击时为红色，否则为 base
func (h *HitFlash) Material(base render.MaterialType) render.MaterialType {
	if h.active {
		return render.MaterialRed
	}
	return base
}

// facing 水平朝向，x/z 分量逐轴平滑逼近目标方向
type facing struct {
	dir       mgl32.Vec3
	rotationY float32
}

func newFacing(dir mgl32.Vec3) facing {
	f := facing{dir: mgl32.Vec3{dir.X(), 0, dir.Z()}}
	f.rotationY = float32(math.Atan2(float64(f.dir.X()), float64(f.dir.Z())))
	return f
}

// steerToward 向 desired 转动
//
// 只调整差值超过死区的轴，调整量为 差值 * dt * 转向速率
//
// 返回:
//   - bool: 本帧是否仍在转动
func (f *facing) steerToward(desired mgl32.Vec3, dt float64) bool {
	delta := desired.Sub(f.dir)
	step := float32(dt * EnemyRotationSpeed)
	if step > 1 {
		step = 1
	}

	moving := false
	if abs32(delta.X()) > EnemyRotationDeadzone {
		f.dir[0] += delta.X() * step
		moving = true
	}
	if abs32(delta.Z()) > EnemyRotationDeadzone {
		f.dir[2] += delta.Z() * step
		moving = true
	}
	if moving {
		f.rotationY = float32(math.Atan2(float64(f.dir.X()), float64(f.dir.Z())))
	}
	return moving
}

// isAligned 朝向与 desired 的差值在死区内
func (f *facing) isAligned(desired mgl32.Vec3) bool {
	delta := desired.Sub(f.dir)
	return abs32(delta.X()) <= EnemyRotationDeadzone && abs32(delta.Z()) <= EnemyRotationDeadzone
}

// horizontalDirection 返回 from 指向 to 的水平单位向量，重合时返回 false
func horizontalDirection(from, to mgl32.Vec3) (mgl32.Vec3, bool) {
	d := mgl32.Vec3{to.X() - from.X(), 0, to.Z() - from.Z()}
	l := d.Len()
	if l < 1e-6 {
		return mgl32.Vec3{}, false
	}
	return d.Mul(1 / l), true
}

// moveTowardXZ 在水平面上以 speed 向 dest 移动，不越过终点
func moveTowardXZ(pos *mgl32.Vec3, dest mgl32.Vec2, speed float32, dt float64) {
	d := mgl32.Vec2{dest.X() - pos.X(), dest.Y() - pos.Z()}
	l := d.Len()
	if l < 1e-6 {
		return
	}
	step := speed * float32(dt)
	if step > l {
		step = l
	}
	d = d.Mul(step / l)
	pos[0] += d.X()
	pos[2] += d.Y()
}

func distanceXZ(pos mgl32.Vec3, dest mgl32.Vec2) float32 {
	return mgl32.Vec2{dest.X() - pos.X(), dest.Y() - pos.Z()}.Len()
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
