package physics

import "github.com/go-gl/mathgl/mgl32"

const (
	rayMarchMaxSteps = 256
	rayMarchEpsilon  = 1e-4
)

// Ray 射线，Dir 不要求单位化，toi 以 Dir 的长度为单位
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// NewRay 创建射线
func NewRay(origin, dir mgl32.Vec3) Ray {
	return Ray{Origin: origin, Dir: dir}
}

// PointAt 返回 origin + dir*toi
func (r Ray) PointAt(toi float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(toi))
}

// RayHit 射线命中结果
type RayHit struct {
	Collider ColliderHandle
	Toi      float32
}

// QueryFilter 返回 false 的碰撞体会被射线忽略
type QueryFilter func(h ColliderHandle, c *Collider) bool

// ExcludeRigidBody 忽略附着在指定刚体上的碰撞体
func ExcludeRigidBody(body RigidBodyHandle) QueryFilter {
	return func(_ ColliderHandle, c *Collider) bool {
		parent, ok := c.Parent()
		return !ok || parent != body
	}
}

// ExcludeSensors 忽略传感器
func ExcludeSensors() QueryFilter {
	return func(_ ColliderHandle, c *Collider) bool {
		return !c.IsSensor()
	}
}

// queryPipeline 碰撞体世界形状的快照
// 只在 UpdateQueryPipeline 时刷新，射线检测读取快照
type queryPipeline struct {
	entries []proxy
}

func (q *queryPipeline) update(proxies []proxy) {
	q.entries = append(q.entries[:0], proxies...)
}

// castRay 对快照中的每个形状做球面追踪，返回最近命中
func (q *queryPipeline) castRay(w *World, ray Ray, maxToi float32, solid bool, filter QueryFilter) (RayHit, bool) {
	length := ray.Dir.Len()
	if length < 1e-8 || maxToi <= 0 {
		return RayHit{}, false
	}
	dir := ray.Dir.Mul(1 / length)
	maxDist := maxToi * length

	best := RayHit{}
	bestDist := maxDist
	found := false

	for i := range q.entries {
		e := &q.entries[i]
		c, ok := w.colliders.get(e.handle.index, e.handle.generation)
		if !ok {
			// 快照之后已被删除
			continue
		}
		if filter != nil && !filter(e.handle, c) {
			continue
		}
		if !e.bounds.rayIntersects(ray.Origin, dir, bestDist) {
			continue
		}
		if d, hit := marchShape(e.shape, ray.Origin, dir, bestDist, solid); hit && (!found || d < bestDist) {
			best = RayHit{Collider: e.handle, Toi: d / length}
			bestDist = d
			found = true
		}
	}
	return best, found
}

// marchShape 沿单位方向 dir 追踪到形状表面
// 起点在形状内部时，solid 直接返回 0，否则追踪到出射点
func marchShape(s worldShape, origin, dir mgl32.Vec3, maxDist float32, solid bool) (float32, bool) {
	d0 := s.distance(origin)
	inside := d0 < 0
	if inside && solid {
		return 0, true
	}

	t := float32(0)
	for i := 0; i < rayMarchMaxSteps; i++ {
		d := s.distance(origin.Add(dir.Mul(t)))
		if inside {
			d = -d
		}
		if d < rayMarchEpsilon {
			return t, true
		}
		t += d
		if t > maxDist {
			return 0, false
		}
	}
	return 0, false
}
