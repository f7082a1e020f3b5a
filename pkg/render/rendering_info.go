package render

import "github.com/go-gl/mathgl/mgl32"

// BackgroundType 场景背景
type BackgroundType uint32

const (
	BackgroundSky BackgroundType = iota
	BackgroundForest
	BackgroundCity
)

// RenderingInfo 每帧提交给渲染后端的全局参数
type RenderingInfo struct {
	// ResoTime x/y 为分辨率，z 为累计时间
	ResoTime mgl32.Vec3
	CamPos   mgl32.Vec3
	CamDir   mgl32.Vec3
	Fov      float32
	// FovShootAnim.y 为开火动画造成的视角偏移（弧度）
	FovShootAnim mgl32.Vec2

	QueueCount      uint32
	BackgroundType  BackgroundType
	MaxRaymarchStep uint32
	AOStep          uint32
}

// NewRenderingInfo 创建指定分辨率的渲染参数
func NewRenderingInfo(width, height int) RenderingInfo {
	return RenderingInfo{
		ResoTime:        mgl32.Vec3{float32(width), float32(height), 0},
		CamPos:          mgl32.Vec3{0, 0.5, 0},
		CamDir:          mgl32.Vec3{0, 0, -1},
		Fov:             mgl32.DegToRad(defaultFovDegrees),
		QueueCount:      1,
		MaxRaymarchStep: 50,
		AOStep:          5,
	}
}

// Resize 更新分辨率
func (r *RenderingInfo) Resize(width, height int) {
	r.ResoTime[0] = float32(width)
	r.ResoTime[1] = float32(height)
}

// Update 写入时间与相机参数
func (r *RenderingInfo) Update(time float32, camera *Camera) {
	r.ResoTime[2] = time
	r.CamPos = camera.Position
	r.CamDir = camera.Direction()
	r.Fov = camera.Fov
}
