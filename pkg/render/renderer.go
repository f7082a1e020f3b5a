// Package render 提供渲染队列、相机与视锥，以及渲染后端接口
//
// 场景只通过 Renderer 写入渲染状态；真正的绘制由 Backend 完成。
package render

import (
	"errors"
	"fmt"
)

// 渲染后端返回的表面错误
var (
	// ErrSurfaceLost 渲染目标失效，需要重新配置后重试
	ErrSurfaceLost = errors.New("render surface lost")
	// ErrSurfaceOutdated 渲染目标尺寸过期，需要重新配置后重试
	ErrSurfaceOutdated = errors.New("render surface outdated")
	// ErrOutOfMemory 设备内存耗尽，无法继续
	ErrOutOfMemory = errors.New("render device out of memory")
)

// IsRecoverable 判断错误是否可以通过重新配置表面恢复
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrSurfaceLost) || errors.Is(err, ErrSurfaceOutdated)
}

// IsFatal 判断错误是否必须终止主循环
func IsFatal(err error) bool {
	return errors.Is(err, ErrOutOfMemory)
}

// Backend 渲染后端
// 每帧接收全局参数和可见对象列表
type Backend interface {
	Resize(width, height int, scaleFactor float64)
	Render(info RenderingInfo, objects []RenderQueueData) error
}

// Renderer 长生命周期的渲染状态，同一帧只允许当前场景修改
type Renderer struct {
	Queue  *RenderQueue
	Camera *Camera
	Info   RenderingInfo

	RenderGame      bool
	RenderGUI       bool
	RenderCrosshair bool

	backend Backend
	width   int
	height  int
	scale   float64
}

// NewRenderer 创建渲染状态
func NewRenderer(backend Backend, width, height int) *Renderer {
	return &Renderer{
		Queue:     NewRenderQueue(),
		Camera:    NewCamera(),
		Info:      NewRenderingInfo(width, height),
		RenderGUI: true,
		backend:   backend,
		width:     width,
		height:    height,
		scale:     1,
	}
}

// Resize 更新分辨率并重新配置后端
func (r *Renderer) Resize(width, height int, scaleFactor float64) {
	r.width, r.height, r.scale = width, height, scaleFactor
	r.Info.Resize(width, height)
	if r.backend != nil {
		r.backend.Resize(width, height, scaleFactor)
	}
}

// Reconfigure 用当前尺寸重新配置后端（表面丢失后调用）
func (r *Renderer) Reconfigure() {
	r.Resize(r.width, r.height, r.scale)
}

// Size 返回当前分辨率
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Render 提取可见对象并提交给后端
//
// 参数:
//   - time: 累计运行时间（秒）
//
// 返回:
//   - error: 后端错误，调用方据此决定重试或终止
func (r *Renderer) Render(time float64) error {
	r.Info.Update(float32(time), r.Camera)

	var objects []RenderQueueData
	if r.RenderGame {
		frustum := r.Camera.Frustum()
		buf, n := r.Queue.ObjectsAndActiveLen(&frustum)
		objects = buf[:n]
		r.Info.QueueCount = uint32(n)
	} else {
		// 不渲染游戏画面时也要丢弃本帧的动态对象
		r.Queue.dynamic = r.Queue.dynamic[:0]
		r.Info.QueueCount = 0
	}

	if r.backend == nil {
		return nil
	}
	if err := r.backend.Render(r.Info, objects); err != nil {
		return fmt.Errorf("render frame: %w", err)
	}
	return nil
}
