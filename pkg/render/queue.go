package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ShapeType 渲染形状
type ShapeType uint32

const (
	ShapeNone ShapeType = iota
	ShapeBox
	ShapeSphere
	ShapeCylinder
	ShapeSwordman
	ShapeGunman
)

// MaterialType 渲染材质
type MaterialType uint32

const (
	MaterialGreen MaterialType = iota
	MaterialYellow
	MaterialWhite
	MaterialBlack
	MaterialChecker
	MaterialRed
	MaterialOrange
	MaterialCrate
	MaterialStoneWall
	MaterialCobblestonePaving
	MaterialAsphalt
	MaterialTarget
	MaterialTargetDimmed
)

// characterBoundRadius 枪手、剑士使用的固定包围球半径
const characterBoundRadius = 3.0

// RenderQueueData 单个渲染对象，每帧由场景的 Prerender 重新填充
//
// ShapeData1/ShapeData2 的含义由 Shape 决定：
//   - Box: ShapeData1.xyz 为半尺寸
//   - Sphere: ShapeData1.x 为半径
//   - Cylinder: ShapeData1.x 为半径，ShapeData1.y 为半高
//   - Gunman: ShapeData1.x 为开火动画量，ShapeData1.y 为绕 Y 旋转角
//   - Swordman: ShapeData1.x 为挥砍动画量
type RenderQueueData struct {
	Position   mgl32.Vec3
	Scale      float32
	Rotation   mgl32.Mat4
	ShapeData1 mgl32.Vec4
	ShapeData2 mgl32.Vec4
	Shape      ShapeType
	// Materials[0] 为主体材质，其余为附件（枪、剑）材质
	Materials [3]MaterialType
}

// NewRenderQueueData 返回单位缩放、无旋转的空对象
func NewRenderQueueData() RenderQueueData {
	return RenderQueueData{
		Scale:     1,
		Rotation:  mgl32.Ident4(),
		Shape:     ShapeNone,
		Materials: [3]MaterialType{MaterialRed, MaterialRed, MaterialRed},
	}
}

// BoundingSphereRadius 根据形状参数估算包围体
func (d *RenderQueueData) BoundingSphereRadius() ObjectBound {
	scale := d.Scale
	if scale == 0 {
		scale = 1
	}
	switch d.Shape {
	case ShapeBox:
		return SphereBound(d.ShapeData1.Vec3().Len() * scale)
	case ShapeSphere:
		return SphereBound(d.ShapeData1.X() * scale)
	case ShapeCylinder:
		r, h := float64(d.ShapeData1.X()), float64(d.ShapeData1.Y())
		return SphereBound(float32(math.Hypot(r, h)) * scale)
	case ShapeGunman, ShapeSwordman:
		return SphereBound(characterBoundRadius)
	default:
		return NoBound()
	}
}

type queueEntry struct {
	data  RenderQueueData
	bound ObjectBound
}

// RenderQueue 渲染队列
//
// static 列表在场景 Init 时填充，整个场景生命周期内保留；
// dynamic 列表每帧由 Prerender 填充，每次提取后清空
type RenderQueue struct {
	dynamic []queueEntry
	static  []queueEntry
}

// NewRenderQueue 创建空队列
func NewRenderQueue() *RenderQueue {
	return &RenderQueue{
		dynamic: make([]queueEntry, 0, QueueSize),
		static:  make([]queueEntry, 0, QueueSize),
	}
}

// Slot 队列中的一个待填充对象
// 仅在下一次 Next/NextStatic 调用之前有效
type Slot struct {
	entry *queueEntry
}

// Data 返回待填充的渲染数据
func (s Slot) Data() *RenderQueueData {
	return &s.entry.data
}

// SetBound 设置包围体
func (s Slot) SetBound(b ObjectBound) {
	s.entry.bound = b
}

// FitBound 根据当前形状参数设置包围体
func (s Slot) FitBound() {
	s.entry.bound = s.entry.data.BoundingSphereRadius()
}

// Next 追加一个动态对象
func (q *RenderQueue) Next() Slot {
	q.dynamic = append(q.dynamic, queueEntry{data: NewRenderQueueData()})
	return Slot{entry: &q.dynamic[len(q.dynamic)-1]}
}

// NextStatic 追加一个静态对象
func (q *RenderQueue) NextStatic() Slot {
	q.static = append(q.static, queueEntry{data: NewRenderQueueData()})
	return Slot{entry: &q.static[len(q.static)-1]}
}

// Clear 清空静态与动态列表（场景 Deinit 时调用）
func (q *RenderQueue) Clear() {
	q.dynamic = q.dynamic[:0]
	q.static = q.static[:0]
}

// StaticLen 返回静态对象数量
func (q *RenderQueue) StaticLen() int {
	return len(q.static)
}

// DynamicLen 返回本帧已追加的动态对象数量
func (q *RenderQueue) DynamicLen() int {
	return len(q.dynamic)
}

// ObjectsAndActiveLen 提取本帧可见对象
//
// 先静态后动态，按插入顺序做视锥测试，最多取 QueueSize 个，超出部分直接丢弃。
// 提取后清空动态列表。
//
// 返回:
//   - [QueueSize]RenderQueueData: 输出缓冲，前 n 项有效
//   - int: 有效对象数量 n
func (q *RenderQueue) ObjectsAndActiveLen(frustum *Frustum) ([QueueSize]RenderQueueData, int) {
	var out [QueueSize]RenderQueueData
	n := 0

	collect := func(entries []queueEntry) {
		for i := range entries {
			if n >= QueueSize {
				return
			}
			e := &entries[i]
			if frustum.IsOnFrustum(e.data.Position, e.bound) {
				out[n] = e.data
				n++
			}
		}
	}
	collect(q.static)
	collect(q.dynamic)

	q.dynamic = q.dynamic[:0]
	return out, n
}
