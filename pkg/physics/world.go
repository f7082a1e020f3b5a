// Package physics 提供游戏用的简化刚体世界
//
// 只覆盖场景需要的能力：刚体与碰撞体的增删、按帧步进、
// 穿透修正、接触事件和射线检测。调用顺序必须是
// Step → UpdateQueryPipeline → CastRay，射线读取的是最近一次刷新的快照。
package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/decker502/shooterboi/pkg/logger"
)

// DefaultGravity 默认重力
var DefaultGravity = mgl32.Vec3{0, -9.81, 0}

// IntegrationParameters 积分参数
type IntegrationParameters struct {
	// Dt 每次 Step 推进的时间（秒）
	Dt float32
	// PositionIterations 穿透修正的迭代次数
	PositionIterations int
}

// DefaultIntegrationParameters 60Hz，2 次修正迭代
func DefaultIntegrationParameters() IntegrationParameters {
	return IntegrationParameters{Dt: 1.0 / 60.0, PositionIterations: 2}
}

// ContactEventKind 接触事件类型
type ContactEventKind int

const (
	ContactStarted ContactEventKind = iota
	ContactStopped
)

func (k ContactEventKind) String() string {
	if k == ContactStarted {
		return "Started"
	}
	return "Stopped"
}

// ContactEvent 两个碰撞体开始或停止接触
type ContactEvent struct {
	Kind      ContactEventKind
	Collider1 ColliderHandle
	Collider2 ColliderHandle
}

// World 物理世界，由单个场景独占
type World struct {
	Gravity mgl32.Vec3
	Params  IntegrationParameters

	bodies    arena[RigidBody]
	colliders arena[Collider]

	broad   broadPhase
	islands islandManager
	query   queryPipeline

	touching map[colliderPair]bool
	events   []ContactEvent

	log *zap.Logger
}

// NewWorld 创建空的物理世界
func NewWorld() *World {
	return &World{
		Gravity:  DefaultGravity,
		Params:   DefaultIntegrationParameters(),
		islands:  newIslandManager(),
		touching: make(map[colliderPair]bool),
		log:      logger.Named("physics"),
	}
}

// InsertRigidBody 插入刚体
func (w *World) InsertRigidBody(desc RigidBodyDesc) RigidBodyHandle {
	index, gen := w.bodies.insert(newRigidBody(desc))
	return RigidBodyHandle{index: index, generation: gen}
}

// RigidBody 按句柄查找刚体
func (w *World) RigidBody(h RigidBodyHandle) (*RigidBody, bool) {
	return w.bodies.get(h.index, h.generation)
}

// RemoveRigidBody 删除刚体及其附着的碰撞体，返回是否存在
func (w *World) RemoveRigidBody(h RigidBodyHandle) bool {
	body, ok := w.bodies.remove(h.index, h.generation)
	if !ok {
		w.log.Debug("remove unknown rigid body", zap.Stringer("handle", h))
		return false
	}
	for _, ch := range body.colliders {
		w.removeColliderOnly(ch)
	}
	w.islands.forget(h)
	return true
}

// InsertCollider 插入无父刚体的碰撞体（静态几何）
func (w *World) InsertCollider(desc ColliderDesc) ColliderHandle {
	index, gen := w.colliders.insert(newCollider(desc))
	return ColliderHandle{index: index, generation: gen}
}

// InsertColliderWithParent 插入附着在刚体上的碰撞体
// 父刚体不存在时 panic
func (w *World) InsertColliderWithParent(desc ColliderDesc, parent RigidBodyHandle) ColliderHandle {
	body, ok := w.RigidBody(parent)
	if !ok {
		panic("physics: insert collider with unknown parent " + parent.String())
	}
	c := newCollider(desc)
	c.parent = parent
	index, gen := w.colliders.insert(c)
	h := ColliderHandle{index: index, generation: gen}
	body.colliders = append(body.colliders, h)
	body.WakeUp()
	return h
}

// Collider 按句柄查找碰撞体
func (w *World) Collider(h ColliderHandle) (*Collider, bool) {
	return w.colliders.get(h.index, h.generation)
}

// RemoveCollider 删除碰撞体，返回是否存在
func (w *World) RemoveCollider(h ColliderHandle) bool {
	c, ok := w.Collider(h)
	if !ok {
		return false
	}
	if parent, ok := c.Parent(); ok {
		if body, ok := w.RigidBody(parent); ok {
			for i, ch := range body.colliders {
				if ch == h {
					body.colliders = append(body.colliders[:i], body.colliders[i+1:]...)
					break
				}
			}
		}
	}
	w.removeColliderOnly(h)
	return true
}

func (w *World) removeColliderOnly(h ColliderHandle) {
	w.colliders.remove(h.index, h.generation)
	for pair := range w.touching {
		if pair.first == h || pair.second == h {
			delete(w.touching, pair)
		}
	}
}

// ColliderTranslation 返回碰撞体的世界位置
func (w *World) ColliderTranslation(h ColliderHandle) (mgl32.Vec3, bool) {
	c, ok := w.Collider(h)
	if !ok {
		return mgl32.Vec3{}, false
	}
	if parent, ok := c.Parent(); ok {
		body, ok := w.RigidBody(parent)
		if !ok {
			return mgl32.Vec3{}, false
		}
		return body.translation.Add(body.rotation.Rotate(c.translation)), true
	}
	return c.translation, true
}

// RigidBodyCount 返回刚体数量
func (w *World) RigidBodyCount() int { return w.bodies.len }

// ColliderCount 返回碰撞体数量
func (w *World) ColliderCount() int { return w.colliders.len }

// Step 推进一帧：积分、宽检测、窄检测、穿透修正、接触事件、休眠
func (w *World) Step() {
	dt := w.Params.Dt
	w.integrate(dt)

	iterations := max(w.Params.PositionIterations, 1)
	var pairs []colliderPair
	var lookup map[ColliderHandle]*proxy
	current := make(map[colliderPair]bool)
	touchingBodies := make(map[RigidBodyHandle]bool)

	for iter := 0; iter < iterations; iter++ {
		pairs = w.broad.update(w.collectProxies())
		lookup = w.broad.lookup()
		for _, pair := range pairs {
			w.narrowPhase(pair, lookup, current, touchingBodies)
		}
	}

	w.emitEvents(current)
	w.touching = current
	w.islands.update(w, dt, touchingBodies)
}

func (w *World) integrate(dt float32) {
	w.bodies.each(func(_, _ uint32, b *RigidBody) {
		if !b.IsDynamic() || b.sleeping {
			return
		}
		if !b.disableGravity {
			b.linvel = b.linvel.Add(w.Gravity.Mul(dt))
		}
		b.translation = b.translation.Add(b.linvel.Mul(dt))
	})
}

func (w *World) collectProxies() []proxy {
	proxies := make([]proxy, 0, w.colliders.len)
	w.colliders.each(func(index, generation uint32, c *Collider) {
		translation, rotation := c.translation, mgl32.QuatIdent()
		offset := mgl32.Vec3{}
		if parent, ok := c.Parent(); ok {
			body, ok := w.RigidBody(parent)
			if !ok {
				return
			}
			translation, rotation, offset = body.translation, body.rotation, c.translation
		}
		shape := c.shape.toWorld(translation, rotation, offset)
		proxies = append(proxies, proxy{
			handle: ColliderHandle{index: index, generation: generation},
			shape:  shape,
			bounds: shape.bounds(),
		})
	})
	return proxies
}

// narrowPhase 处理一对候选碰撞体
func (w *World) narrowPhase(pair colliderPair, lookup map[ColliderHandle]*proxy,
	current map[colliderPair]bool, touchingBodies map[RigidBodyHandle]bool) {
	c1, ok1 := w.Collider(pair.first)
	c2, ok2 := w.Collider(pair.second)
	if !ok1 || !ok2 || !c1.groups.Test(c2.groups) {
		return
	}
	p1, p2 := c1.parent, c2.parent
	if p1.IsValid() && p1 == p2 {
		return
	}

	ct, ok := contactBetween(lookup[pair.first].shape, lookup[pair.second].shape)
	if !ok {
		return
	}
	current[pair] = true

	b1, _ := w.RigidBody(p1)
	b2, _ := w.RigidBody(p2)
	if b1 != nil {
		touchingBodies[p1] = true
	}
	if b2 != nil {
		touchingBodies[p2] = true
	}
	if c1.sensor || c2.sensor {
		return
	}
	w.resolve(b1, b2, ct)
}

// resolve 把动态刚体沿法线推出
// 两个都是动态刚体时各承担一半
func (w *World) resolve(b1, b2 *RigidBody, ct contact) {
	dyn1 := b1 != nil && b1.IsDynamic()
	dyn2 := b2 != nil && b2.IsDynamic()
	if !dyn1 && !dyn2 {
		return
	}

	if dyn1 && dyn2 {
		if b1.sleeping != b2.sleeping {
			b1.WakeUp()
			b2.WakeUp()
		}
		push := ct.normal.Mul(ct.depth / 2)
		b1.translation = b1.translation.Add(push)
		b2.translation = b2.translation.Sub(push)
		removeApproach(b1, ct.normal)
		removeApproach(b2, ct.normal.Mul(-1))
		return
	}

	if dyn1 {
		b1.translation = b1.translation.Add(ct.normal.Mul(ct.depth))
		removeApproach(b1, ct.normal)
	} else {
		b2.translation = b2.translation.Sub(ct.normal.Mul(ct.depth))
		removeApproach(b2, ct.normal.Mul(-1))
	}
}

// removeApproach 去掉速度中朝向接触面的分量
func removeApproach(b *RigidBody, normal mgl32.Vec3) {
	if v := b.linvel.Dot(normal); v < 0 {
		b.linvel = b.linvel.Sub(normal.Mul(v))
	}
}

func (w *World) emitEvents(current map[colliderPair]bool) {
	wantsEvents := func(pair colliderPair) bool {
		c1, ok1 := w.Collider(pair.first)
		c2, ok2 := w.Collider(pair.second)
		return (ok1 && c1.activeEvents) || (ok2 && c2.activeEvents)
	}
	for pair := range current {
		if !w.touching[pair] && wantsEvents(pair) {
			w.events = append(w.events, ContactEvent{Kind: ContactStarted, Collider1: pair.first, Collider2: pair.second})
		}
	}
	for pair := range w.touching {
		if !current[pair] && wantsEvents(pair) {
			w.events = append(w.events, ContactEvent{Kind: ContactStopped, Collider1: pair.first, Collider2: pair.second})
		}
	}
}

// DrainContactEvents 取出并清空累积的接触事件
func (w *World) DrainContactEvents() []ContactEvent {
	events := w.events
	w.events = nil
	return events
}

// UpdateQueryPipeline 用当前状态刷新射线检测快照
func (w *World) UpdateQueryPipeline() {
	w.query.update(w.collectProxies())
}

// CastRay 在最近一次刷新的快照上做射线检测
//
// 参数:
//   - ray: 射线
//   - maxToi: 最大命中时间（以 ray.Dir 的长度为单位）
//   - solid: 起点在形状内部时是否视为 toi=0 命中
//   - filter: 可为 nil
//
// 返回:
//   - RayHit: 最近命中的碰撞体和 toi
//   - bool: 是否命中
func (w *World) CastRay(ray Ray, maxToi float32, solid bool, filter QueryFilter) (RayHit, bool) {
	return w.query.castRay(w, ray, maxToi, solid, filter)
}
