package render

import (
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// PreviewBackend 基于 ebiten 的预览渲染后端
//
// 将每个对象的中心投影到屏幕，按包围半径画成圆或矩形，远处先画。
// Render 只保存帧数据，实际绘制在 ebiten 的 Draw 回调里通过 Draw(screen) 完成。
type PreviewBackend struct {
	// ShowCrosshair 是否绘制准星，由 app 每帧同步
	ShowCrosshair bool

	width   int
	height  int
	info    RenderingInfo
	objects []RenderQueueData
}

// NewPreviewBackend 创建指定尺寸的预览后端
func NewPreviewBackend(width, height int) *PreviewBackend {
	return &PreviewBackend{width: width, height: height}
}

// Resize 重新配置目标尺寸
func (p *PreviewBackend) Resize(width, height int, _ float64) {
	p.width, p.height = width, height
}

// Render 保存本帧数据
// 参数中的分辨率与当前配置不一致时返回 ErrSurfaceOutdated
func (p *PreviewBackend) Render(info RenderingInfo, objects []RenderQueueData) error {
	if int(info.ResoTime.X()) != p.width || int(info.ResoTime.Y()) != p.height {
		return ErrSurfaceOutdated
	}
	p.info = info
	p.objects = append(p.objects[:0], objects...)
	return nil
}

type projected struct {
	x, y, r float32
	depth   float32
	data    *RenderQueueData
}

// Draw 把最近一次 Render 的帧画到 screen 上
func (p *PreviewBackend) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor(p.info.BackgroundType))

	w, h := float32(p.width), float32(p.height)
	if w <= 0 || h <= 0 {
		return
	}

	fov := p.info.Fov + p.info.FovShootAnim.Y()
	if fov <= 0.01 {
		fov = 0.01
	}
	proj := mgl32.Perspective(fov, w/h, ZNear, ZFar)
	view := mgl32.LookAtV(p.info.CamPos, p.info.CamPos.Add(p.info.CamDir), mgl32.Vec3{0, 1, 0})
	vp := proj.Mul4(view)
	focal := h / 2 / float32(math.Tan(float64(fov)/2))

	items := make([]projected, 0, len(p.objects))
	for i := range p.objects {
		obj := &p.objects[i]
		clip := vp.Mul4x1(obj.Position.Vec4(1))
		if clip.W() <= ZNear {
			continue
		}
		ndc := clip.Vec3().Mul(1 / clip.W())
		radius := obj.BoundingSphereRadius().Radius
		if obj.Shape == ShapeSwordman || obj.Shape == ShapeGunman {
			radius = 0.5
		}
		items = append(items, projected{
			x:     (ndc.X() + 1) / 2 * w,
			y:     (1 - ndc.Y()) / 2 * h,
			r:     radius * focal / clip.W(),
			depth: clip.W(),
			data:  obj,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].depth > items[j].depth })

	for _, it := range items {
		clr := materialColor(it.data.Materials[0])
		switch it.data.Shape {
		case ShapeBox:
			hx := it.data.ShapeData1.X() * focal / it.depth
			hy := it.data.ShapeData1.Y() * focal / it.depth
			vector.DrawFilledRect(screen, it.x-hx, it.y-hy, hx*2, hy*2, clr, false)
		default:
			vector.DrawFilledCircle(screen, it.x, it.y, it.r, clr, true)
		}
	}

	if p.ShowCrosshair {
		cx, cy := w/2, h/2
		white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
		vector.StrokeLine(screen, cx-8, cy, cx-3, cy, 2, white, true)
		vector.StrokeLine(screen, cx+3, cy, cx+8, cy, 2, white, true)
		vector.StrokeLine(screen, cx, cy-8, cx, cy-3, 2, white, true)
		vector.StrokeLine(screen, cx, cy+3, cx, cy+8, 2, white, true)
	}
}

func backgroundColor(t BackgroundType) color.Color {
	switch t {
	case BackgroundForest:
		return color.RGBA{R: 34, G: 62, B: 40, A: 255}
	case BackgroundCity:
		return color.RGBA{R: 70, G: 76, B: 92, A: 255}
	default:
		return color.RGBA{R: 120, G: 170, B: 220, A: 255}
	}
}

var materialColors = map[MaterialType]color.RGBA{
	MaterialGreen:             {R: 60, G: 170, B: 70, A: 255},
	MaterialYellow:            {R: 230, G: 200, B: 40, A: 255},
	MaterialWhite:             {R: 235, G: 235, B: 235, A: 255},
	MaterialBlack:             {R: 20, G: 20, B: 20, A: 255},
	MaterialChecker:           {R: 150, G: 150, B: 150, A: 255},
	MaterialRed:               {R: 210, G: 40, B: 40, A: 255},
	MaterialOrange:            {R: 240, G: 140, B: 30, A: 255},
	MaterialCrate:             {R: 150, G: 110, B: 60, A: 255},
	MaterialStoneWall:         {R: 110, G: 110, B: 105, A: 255},
	MaterialCobblestonePaving: {R: 90, G: 85, B: 80, A: 255},
	MaterialAsphalt:           {R: 50, G: 50, B: 55, A: 255},
	MaterialTarget:            {R: 220, G: 60, B: 60, A: 255},
	MaterialTargetDimmed:      {R: 120, G: 60, B: 60, A: 255},
}

func materialColor(m MaterialType) color.RGBA {
	if c, ok := materialColors[m]; ok {
		return c
	}
	return color.RGBA{R: 255, G: 0, B: 255, A: 255}
}
