package render

import "github.com/go-gl/mathgl/mgl32"

// FrustumPlane 视锥平面，Distance = Normal · 平面上任一点
type FrustumPlane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// NewFrustumPlane 由平面上一点和法线构造平面，法线会被单位化
func NewFrustumPlane(point, normal mgl32.Vec3) FrustumPlane {
	n := normal.Normalize()
	return FrustumPlane{Normal: n, Distance: n.Dot(point)}
}

// SignedDistance 返回点到平面的有向距离（法线一侧为正）
func (p FrustumPlane) SignedDistance(point mgl32.Vec3) float32 {
	return p.Normal.Dot(point) - p.Distance
}

// Frustum 六平面视锥，各平面法线朝向视锥内部
type Frustum struct {
	Top, Bottom, Left, Right, Near, Far FrustumPlane
}

// Planes 按固定顺序返回六个平面
func (f *Frustum) Planes() [6]FrustumPlane {
	return [6]FrustumPlane{f.Top, f.Bottom, f.Left, f.Right, f.Near, f.Far}
}

// IsOnFrustum 判断包围体是否与视锥相交
// 球体在每个平面上的有向距离都大于 -r 时可见；无包围体的对象总是可见
// f 为 nil 时不做裁剪
func (f *Frustum) IsOnFrustum(position mgl32.Vec3, bound ObjectBound) bool {
	if f == nil || !bound.HasSphere {
		return true
	}
	for _, plane := range f.Planes() {
		if plane.SignedDistance(position) <= -bound.Radius {
			return false
		}
	}
	return true
}

// ObjectBound 渲染对象的包围体：无（总是可见）或球体
type ObjectBound struct {
	HasSphere bool
	Radius    float32
}

// NoBound 无包围体
func NoBound() ObjectBound {
	return ObjectBound{}
}

// SphereBound 半径为 r 的包围球
func SphereBound(r float32) ObjectBound {
	return ObjectBound{HasSphere: true, Radius: r}
}
