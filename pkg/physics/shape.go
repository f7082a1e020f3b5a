package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ShapeKind 碰撞形状类型
type ShapeKind int

const (
	ShapeBall ShapeKind = iota
	ShapeCapsule
	ShapeCuboid
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBall:
		return "Ball"
	case ShapeCapsule:
		return "Capsule"
	case ShapeCuboid:
		return "Cuboid"
	default:
		return "Unknown"
	}
}

// Shape 碰撞形状，坐标均为局部坐标
//
// Capsule 为线段 A-B 扫过半径 Radius 的球；Cuboid 始终与坐标轴对齐，
// 刚体旋转只影响其中心位置
type Shape struct {
	Kind        ShapeKind
	Radius      float32
	A, B        mgl32.Vec3
	HalfExtents mgl32.Vec3
}

// Ball 以原点为球心的球
func Ball(radius float32) Shape {
	return Shape{Kind: ShapeBall, Radius: radius}
}

// Capsule 线段 a-b 扫过半径 radius 的胶囊
func Capsule(a, b mgl32.Vec3, radius float32) Shape {
	return Shape{Kind: ShapeCapsule, A: a, B: b, Radius: radius}
}

// Cuboid 半尺寸为 (hx, hy, hz) 的长方体
func Cuboid(hx, hy, hz float32) Shape {
	return Shape{Kind: ShapeCuboid, HalfExtents: mgl32.Vec3{hx, hy, hz}}
}

// worldShape 世界坐标下的形状
// 球和胶囊统一表示为线段 a-b（球的 a == b）加半径
type worldShape struct {
	kind   ShapeKind
	a, b   mgl32.Vec3
	radius float32
	center mgl32.Vec3
	half   mgl32.Vec3
}

func (s Shape) toWorld(translation mgl32.Vec3, rotation mgl32.Quat, offset mgl32.Vec3) worldShape {
	origin := translation.Add(rotation.Rotate(offset))
	switch s.Kind {
	case ShapeCapsule:
		return worldShape{
			kind:   ShapeCapsule,
			a:      origin.Add(rotation.Rotate(s.A)),
			b:      origin.Add(rotation.Rotate(s.B)),
			radius: s.Radius,
		}
	case ShapeCuboid:
		return worldShape{kind: ShapeCuboid, center: origin, half: s.HalfExtents}
	default:
		return worldShape{kind: ShapeBall, a: origin, b: origin, radius: s.Radius}
	}
}

type aabb struct {
	min, max mgl32.Vec3
}

func (b aabb) intersects(o aabb) bool {
	return b.min.X() <= o.max.X() && b.max.X() >= o.min.X() &&
		b.min.Y() <= o.max.Y() && b.max.Y() >= o.min.Y() &&
		b.min.Z() <= o.max.Z() && b.max.Z() >= o.min.Z()
}

// rayIntersects 射线与包围盒的 slab 测试，返回是否在 [0, maxToi] 内相交
func (b aabb) rayIntersects(origin, dir mgl32.Vec3, maxToi float32) bool {
	tmin, tmax := float32(0), maxToi
	for i := 0; i < 3; i++ {
		if abs32(dir[i]) < 1e-8 {
			if origin[i] < b.min[i] || origin[i] > b.max[i] {
				return false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (b.min[i] - origin[i]) * inv
		t2 := (b.max[i] - origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
		if tmin > tmax {
			return false
		}
	}
	return true
}

func (s worldShape) bounds() aabb {
	if s.kind == ShapeCuboid {
		return aabb{min: s.center.Sub(s.half), max: s.center.Add(s.half)}
	}
	r := mgl32.Vec3{s.radius, s.radius, s.radius}
	lo := mgl32.Vec3{min(s.a.X(), s.b.X()), min(s.a.Y(), s.b.Y()), min(s.a.Z(), s.b.Z())}
	hi := mgl32.Vec3{max(s.a.X(), s.b.X()), max(s.a.Y(), s.b.Y()), max(s.a.Z(), s.b.Z())}
	return aabb{min: lo.Sub(r), max: hi.Add(r)}
}

// distance 有向距离场，形状内部为负
func (s worldShape) distance(p mgl32.Vec3) float32 {
	if s.kind == ShapeCuboid {
		return boxDistance(p.Sub(s.center), s.half)
	}
	return p.Sub(closestOnSegment(s.a, s.b, p)).Len() - s.radius
}

func boxDistance(p, half mgl32.Vec3) float32 {
	q := mgl32.Vec3{abs32(p.X()) - half.X(), abs32(p.Y()) - half.Y(), abs32(p.Z()) - half.Z()}
	outside := mgl32.Vec3{max(q.X(), 0), max(q.Y(), 0), max(q.Z(), 0)}.Len()
	inside := min(max(q.X(), max(q.Y(), q.Z())), 0)
	return outside + inside
}

// contact 两个形状的接触信息
// normal 指向把第一个形状推离第二个形状的方向
type contact struct {
	normal mgl32.Vec3
	depth  float32
}

// contactBetween 计算 s1 与 s2 的穿透，不相交时返回 false
func contactBetween(s1, s2 worldShape) (contact, bool) {
	switch {
	case s1.kind != ShapeCuboid && s2.kind != ShapeCuboid:
		return roundedContact(s1, s2)
	case s1.kind == ShapeCuboid && s2.kind == ShapeCuboid:
		return boxBoxContact(s1, s2)
	case s1.kind == ShapeCuboid:
		c, ok := roundedBoxContact(s2, s1)
		c.normal = c.normal.Mul(-1)
		return c, ok
	default:
		return roundedBoxContact(s1, s2)
	}
}

func roundedContact(s1, s2 worldShape) (contact, bool) {
	p1, p2 := closestBetweenSegments(s1.a, s1.b, s2.a, s2.b)
	delta := p1.Sub(p2)
	dist := delta.Len()
	depth := s1.radius + s2.radius - dist
	if depth <= 0 {
		return contact{}, false
	}
	normal := mgl32.Vec3{0, 1, 0}
	if dist > 1e-6 {
		normal = delta.Mul(1 / dist)
	}
	return contact{normal: normal, depth: depth}, true
}

// roundedBoxContact 球或胶囊（s）与长方体（box）
func roundedBoxContact(s, box worldShape) (contact, bool) {
	// 线段上点到长方体的距离是凸函数，三分法求最近点
	lo, hi := float32(0), float32(1)
	segPoint := func(t float32) mgl32.Vec3 { return s.a.Add(s.b.Sub(s.a).Mul(t)) }
	dist := func(t float32) float32 { return boxDistance(segPoint(t).Sub(box.center), box.half) }
	for i := 0; i < 32; i++ {
		m1 := lo + (hi-lo)/3
		m2 := hi - (hi-lo)/3
		if dist(m1) < dist(m2) {
			hi = m2
		} else {
			lo = m1
		}
	}
	p := segPoint((lo + hi) / 2)
	local := p.Sub(box.center)

	closest := mgl32.Vec3{
		mgl32.Clamp(local.X(), -box.half.X(), box.half.X()),
		mgl32.Clamp(local.Y(), -box.half.Y(), box.half.Y()),
		mgl32.Clamp(local.Z(), -box.half.Z(), box.half.Z()),
	}
	delta := local.Sub(closest)
	d := delta.Len()
	if d > 1e-6 {
		if d >= s.radius {
			return contact{}, false
		}
		return contact{normal: delta.Mul(1 / d), depth: s.radius - d}, true
	}

	// 中心在长方体内部：沿穿透最小的轴推出
	axis, pen := 0, float32(math.MaxFloat32)
	for i := 0; i < 3; i++ {
		if v := box.half[i] - abs32(local[i]); v < pen {
			axis, pen = i, v
		}
	}
	var normal mgl32.Vec3
	normal[axis] = 1
	if local[axis] < 0 {
		normal[axis] = -1
	}
	return contact{normal: normal, depth: pen + s.radius}, true
}

func boxBoxContact(s1, s2 worldShape) (contact, bool) {
	delta := s1.center.Sub(s2.center)
	axis, pen := -1, float32(math.MaxFloat32)
	for i := 0; i < 3; i++ {
		overlap := s1.half[i] + s2.half[i] - abs32(delta[i])
		if overlap <= 0 {
			return contact{}, false
		}
		if overlap < pen {
			axis, pen = i, overlap
		}
	}
	var normal mgl32.Vec3
	normal[axis] = 1
	if delta[axis] < 0 {
		normal[axis] = -1
	}
	return contact{normal: normal, depth: pen}, true
}

func closestOnSegment(a, b, p mgl32.Vec3) mgl32.Vec3 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 < 1e-12 {
		return a
	}
	t := mgl32.Clamp(p.Sub(a).Dot(ab)/l2, 0, 1)
	return a.Add(ab.Mul(t))
}

// closestBetweenSegments 返回线段 p1-q1 与 p2-q2 上距离最近的一对点
func closestBetweenSegments(p1, q1, p2, q2 mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	const eps = 1e-12
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)
	a := d1.Dot(d1)
	e := d2.Dot(d2)
	f := d2.Dot(r)

	var s, t float32
	switch {
	case a <= eps && e <= eps:
		return p1, p2
	case a <= eps:
		t = mgl32.Clamp(f/e, 0, 1)
	default:
		c := d1.Dot(r)
		if e <= eps {
			s = mgl32.Clamp(-c/a, 0, 1)
		} else {
			b := d1.Dot(d2)
			denom := a*e - b*b
			if denom > eps {
				s = mgl32.Clamp((b*f-c*e)/denom, 0, 1)
			}
			t = (b*s + f) / e
			if t < 0 {
				t = 0
				s = mgl32.Clamp(-c/a, 0, 1)
			} else if t > 1 {
				t = 1
				s = mgl32.Clamp((b-c)/a, 0, 1)
			}
		}
	}
	return p1.Add(d1.Mul(s)), p2.Add(d2.Mul(t))
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
