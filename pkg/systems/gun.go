package systems

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/decker502/shooterboi/pkg/components"
	"github.com/decker502/shooterboi/pkg/config"
	"github.com/decker502/shooterboi/pkg/ecs"
	"github.com/decker502/shooterboi/pkg/physics"
	"github.com/decker502/shooterboi/pkg/render"
)

// Gun 玩家的枪：开火冷却与后坐动画
type Gun struct {
	cfg      config.ShootConfig
	cooldown components.Timer
	recoil   components.InOutAnimation
}

// NewGun 创建可以立即开火的枪
func NewGun(cfg config.ShootConfig) *Gun {
	return &Gun{
		cfg:      cfg,
		cooldown: components.NewFinishedTimer(),
		recoil:   components.NewInOutAnimation(cfg.AnimForward, cfg.AnimBackward),
	}
}

// Update 推进冷却和后坐动画
func (g *Gun) Update(dt float64) {
	g.cooldown.Update(dt)
	g.recoil.Update(dt)
}

// TryFire 按下开火键且冷却结束时开火：重置冷却并触发后坐
//
// 返回:
//   - bool: 本帧是否开火
func (g *Gun) TryFire(pressed bool) bool {
	if !pressed || !g.cooldown.IsFinished() {
		return false
	}
	g.cooldown.Reset(g.cfg.Cooldown)
	g.recoil.Trigger()
	return true
}

// FovKick 后坐造成的视角偏移（弧度），在 0 到 -fovKickDegrees 之间线性插值
func (g *Gun) FovKick() float32 {
	return float32(g.recoil.Value()) * -mgl32.DegToRad(g.cfg.FovKickDegrees)
}

// ApplyRecoil 把后坐偏移写入渲染参数
func (g *Gun) ApplyRecoil(info *render.RenderingInfo) {
	info.FovShootAnim[1] = g.FovKick()
}

// CastShot 从相机前方 rayOffset 处沿视线发射射线
//
// 返回:
//   - physics.RayHit: 最近命中
//   - bool: 是否命中
func (g *Gun) CastShot(w *physics.World, camera *render.Camera) (physics.RayHit, bool) {
	dir := camera.Direction()
	ray := physics.NewRay(camera.Position.Add(dir.Mul(g.cfg.RayOffset)), dir)
	return w.CastRay(ray, g.cfg.MaxRayDistance, true, nil)
}

// ShotKind 射线命中的对象类别
type ShotKind int

const (
	// ShotMissed 未命中任何碰撞体
	ShotMissed ShotKind = iota
	// ShotOther 命中了不属于靶子或敌人的碰撞体（墙、地面等）
	ShotOther
	ShotTarget
	ShotGunman
	ShotSwordman
)

// String 返回类别名称
func (k ShotKind) String() string {
	switch k {
	case ShotOther:
		return "Other"
	case ShotTarget:
		return "Target"
	case ShotGunman:
		return "Gunman"
	case ShotSwordman:
		return "Swordman"
	default:
		return "Missed"
	}
}

// ShotHooks 各模式的计分回调
// 命中对象对应的回调为 nil 时按 Miss 处理
type ShotHooks struct {
	Miss     func()
	Target   func(id ecs.EntityID, t *components.Target)
	Gunman   func(id ecs.EntityID, g *components.Gunman)
	Swordman func(id ecs.EntityID, s *components.Swordman)
}

// ResolveShot 发射一次射线并按命中对象分发到计分回调
//
// 参数:
//   - em: 场景实体管理器
//   - w: 物理世界（必须已经 Step 并刷新查询快照）
//   - gun: 提供射线参数
//   - camera: 射线起点和方向
//   - hooks: 计分回调
//
// 返回:
//   - ShotKind: 命中对象类别
func ResolveShot(em *ecs.EntityManager, w *physics.World, gun *Gun, camera *render.Camera, hooks ShotHooks) ShotKind {
	kind := ShotMissed
	hit, ok := gun.CastShot(w, camera)
	if ok {
		kind = ShotOther
		if id, ok := entityOf(em, w, hit.Collider); ok {
			if t, ok := ecs.GetComponent[*components.Target](em, id); ok {
				kind = ShotTarget
				if hooks.Target != nil {
					hooks.Target(id, t)
					return kind
				}
			} else if g, ok := ecs.GetComponent[*components.Gunman](em, id); ok {
				kind = ShotGunman
				if hooks.Gunman != nil {
					hooks.Gunman(id, g)
					return kind
				}
			} else if s, ok := ecs.GetComponent[*components.Swordman](em, id); ok {
				kind = ShotSwordman
				if hooks.Swordman != nil {
					hooks.Swordman(id, s)
					return kind
				}
			}
		}
	}
	if hooks.Miss != nil {
		hooks.Miss()
	}
	return kind
}
