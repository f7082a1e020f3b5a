package gui

// Column 在屏幕水平居中排列 count 个等高控件
//
// 参数:
//   - screenW, screenH: 屏幕尺寸
//   - count: 控件数量
//   - w, h: 单个控件尺寸
//   - gap: 控件间距
//
// 返回:
//   - []Rect: 自上而下的控件矩形，整体垂直居中
func Column(screenW, screenH, count int, w, h, gap float64) []Rect {
	if count <= 0 {
		return nil
	}
	total := float64(count)*h + float64(count-1)*gap
	x := (float64(screenW) - w) / 2
	y := (float64(screenH) - total) / 2

	rects := make([]Rect, count)
	for i := range rects {
		rects[i] = Rect{X: x, Y: y + float64(i)*(h+gap), W: w, H: h}
	}
	return rects
}

// CenteredText 返回使文本在 r 中居中的起点
// 按 ebitenutil 调试字体的字形尺寸估算
func CenteredText(text string, r Rect) (float64, float64) {
	const glyphW, glyphH = 6, 16
	cx, cy := r.Center()
	return cx - float64(len(text)*glyphW)/2, cy - glyphH/2
}
