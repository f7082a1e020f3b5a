package components

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/decker502/shooterboi/pkg/render"
)

const (
	// BulletSpeed 子弹速度（单位/秒）
	BulletSpeed = 50.0
	// BulletRadius 子弹碰撞球半径
	BulletRadius = 0.2

	gunmanArrivalDistance = 0.5
	gunmanFirstWanderArea = 13.0
	gunmanWanderArea      = 9.0
	gunmanShootAnimScale  = 1.5
)

// GunmanState 枪手状态
type GunmanState int

const (
	// GunmanIdle 转向玩家，并在计时期间游走
	GunmanIdle GunmanState = iota
	// GunmanFocus 瞄准
	GunmanFocus
	// GunmanShoot 开火动画
	GunmanShoot
)

// String 返回状态名称
func (s GunmanState) String() string {
	switch s {
	case GunmanFocus:
		return "Focus"
	case GunmanShoot:
		return "Shoot"
	default:
		return "Idle"
	}
}

// GunmanConfig 枪手参数（随难度变化）
type GunmanConfig struct {
	IdleDuration          float64 `yaml:"idleDuration"`
	FocusDuration         float64 `yaml:"focusDuration"`
	WalkSpeed             float32 `yaml:"walkSpeed"`
	ShootForwardDuration  float64 `yaml:"shootForwardDuration"`
	ShootBackwardDuration float64 `yaml:"shootBackwardDuration"`
}

// DefaultGunmanConfig 返回默认枪手参数
func DefaultGunmanConfig() GunmanConfig {
	return GunmanConfig{
		IdleDuration:          0.5,
		FocusDuration:         0.5,
		WalkSpeed:             3.0,
		ShootForwardDuration:  0.05,
		ShootBackwardDuration: 0.25,
	}
}

// GunmanOp Update 产生的副作用
// Shoot 为 true 时调用方应从 Pos 沿 Dir 发射子弹
type GunmanOp struct {
	Shoot bool
	Pos   mgl32.Vec3
	Dir   mgl32.Vec3
}

// Gunman 枪手行为组件
// 位置以刚体为准，Update 修改传入的位置副本，由调用方写回刚体
type Gunman struct {
	config    GunmanConfig
	state     GunmanState
	timer     Timer
	animation InOutAnimation
	facing    facing
	flash     HitFlash
	nextDest  mgl32.Vec2
}

// NewGunman 创建枪手，初始朝向 -Z
func NewGunman(rng *rand.Rand, config GunmanConfig) *Gunman {
	return NewGunmanFacing(rng, config, mgl32.Vec3{0, 0, -1})
}

// NewGunmanFacing 创建指定初始朝向的枪手
func NewGunmanFacing(rng *rand.Rand, config GunmanConfig, dir mgl32.Vec3) *Gunman {
	return &Gunman{
		config:   config,
		state:    GunmanIdle,
		timer:    NewTimer(config.IdleDuration),
		facing:   newFacing(dir),
		nextDest: randomDestination(rng, gunmanFirstWanderArea),
	}
}

// Update 推进枪手状态机
//
// 参数:
//   - rng: 选择游走目的地用的随机源
//   - dt: 帧间隔（秒）
//   - pos: 枪手当前位置，会被原地修改
//   - player: 玩家位置
//
// 返回:
//   - GunmanOp: Focus 结束时 Shoot 为 true
func (g *Gunman) Update(rng *rand.Rand, dt float64, pos *mgl32.Vec3, player mgl32.Vec3) GunmanOp {
	g.flash.Update(dt)

	var op GunmanOp
	switch g.state {
	case GunmanIdle:
		g.timer.Update(dt)
		// Idle 期间始终游走，瞄准与移动同时进行
		g.wander(rng, dt, pos)

		desired, ok := horizontalDirection(*pos, player)
		turning := ok && g.facing.steerToward(desired, dt)
		if !turning && g.timer.IsFinished() {
			g.state = GunmanFocus
			g.timer = NewTimer(g.config.FocusDuration)
		}
	case GunmanFocus:
		g.timer.Update(dt)
		if g.timer.IsFinished() {
			op = GunmanOp{Shoot: true, Pos: *pos, Dir: g.Direction()}
			g.state = GunmanShoot
			g.animation = NewStartedInOutAnimation(g.config.ShootForwardDuration, g.config.ShootBackwardDuration)
		}
	case GunmanShoot:
		g.animation.Update(dt)
		if g.animation.State() == AnimationStopped {
			g.state = GunmanIdle
			g.timer = NewTimer(g.config.IdleDuration)
		}
	}
	return op
}

func (g *Gunman) wander(rng *rand.Rand, dt float64, pos *mgl32.Vec3) {
	if g.config.WalkSpeed <= 0 {
		return
	}
	if distanceXZ(*pos, g.nextDest) <= gunmanArrivalDistance {
		g.nextDest = randomDestination(rng, gunmanWanderArea)
		return
	}
	moveTowardXZ(pos, g.nextDest, g.config.WalkSpeed, dt)
}

func randomDestination(rng *rand.Rand, area float32) mgl32.Vec2 {
	if rng == nil {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{
		(rng.Float32()*2 - 1) * area,
		(rng.Float32()*2 - 1) * area,
	}
}

// Hit 受击闪烁
func (g *Gunman) Hit() {
	g.flash.Trigger()
}

// State 返回当前状态
func (g *Gunman) State() GunmanState {
	return g.state
}

// Direction 返回单位化的水平朝向
func (g *Gunman) Direction() mgl32.Vec3 {
	if g.facing.dir.Len() < 1e-6 {
		return mgl32.Vec3{0, 0, 1}
	}
	return g.facing.dir.Normalize()
}

// RawDirection 返回未单位化的朝向（测试死区用）
func (g *Gunman) RawDirection() mgl32.Vec3 {
	return g.facing.dir
}

// IsAimedAt 朝向与指向 target 的方向差在死区内
func (g *Gunman) IsAimedAt(pos, target mgl32.Vec3) bool {
	desired, ok := horizontalDirection(pos, target)
	return ok && g.facing.isAligned(desired)
}

// Rotation 返回绕 Y 轴的旋转角
func (g *Gunman) Rotation() float32 {
	return g.facing.rotationY
}

// ShootAnim 开火动画偏移量，供渲染使用
func (g *Gunman) ShootAnim() float32 {
	if g.state != GunmanShoot {
		return 0
	}
	return float32(-g.animation.Value() * gunmanShootAnimScale)
}

// Material 返回渲染材质
func (g *Gunman) Material() render.MaterialType {
	return g.flash.Material(render.MaterialWhite)
}

// IsHitFlashing 是否处于受击闪烁
func (g *Gunman) IsHitFlashing() bool {
	return g.flash.IsActive()
}

// Bullet 枪手子弹标记
type Bullet struct{}

// Material 子弹为黑色
func (Bullet) Material() render.MaterialType {
	return render.MaterialBlack
}
