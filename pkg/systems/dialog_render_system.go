package systems

import (
	"image/color"
	"math"

	"github.com/decker502/dialogkit/pkg/config"
	"github.com/decker502/dialogkit/pkg/dialog"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// DialogRenderSystem 对话框渲染系统
// 负责渲染当前对话框会话
//
// 渲染顺序：
//  1. 半透明遮罩（覆盖整个屏幕，alpha 随过渡进度变化）
//  2. 面板（背景 + 边框 + 标题 + 正文，整体随过渡进度缩放）
//  3. 按钮 / 输入框 / "不再提示"勾选项
//
// 面板内容先绘制到离屏缓冲，再围绕面板中心整体缩放——
// 入场的回弹和出场的收缩都只是一次缩放绘制。
//
// Story 20.3: 渲染层解耦
type DialogRenderSystem struct {
	seq    *dialog.Sequencer
	input  *DialogInputSystem // 输入框文本与光标状态的来源
	theme  config.DialogTheme
	labels config.DialogLabels
	face   text.Face

	windowWidth  int
	windowHeight int

	whitePixel  *ebiten.Image // 1x1 白色图片，缩放后用于绘制纯色矩形
	panelBuffer *ebiten.Image // 面板离屏缓冲，尺寸不变时复用
}

// NewDialogRenderSystem 创建对话框渲染系统
//
// 参数:
//   - seq: 序列器实例
//   - input: 交互系统（渲染输入框文本时读取，可为 nil）
//   - cfg: 对话框配置（配色与文字）
//   - face: 文字字体
//   - windowWidth, windowHeight: 逻辑屏幕尺寸
func NewDialogRenderSystem(seq *dialog.Sequencer, input *DialogInputSystem, cfg *config.DialogConfig, face text.Face, windowWidth, windowHeight int) *DialogRenderSystem {
	whitePixel := ebiten.NewImage(1, 1)
	whitePixel.Fill(color.White)

	return &DialogRenderSystem{
		seq:          seq,
		input:        input,
		theme:        cfg.Theme,
		labels:       cfg.Labels,
		face:         face,
		windowWidth:  windowWidth,
		windowHeight: windowHeight,
		whitePixel:   whitePixel,
	}
}

// Draw 渲染当前对话框
// 没有活动会话时不绘制任何内容
func (s *DialogRenderSystem) Draw(screen *ebiten.Image) {
	session := s.seq.ActiveSession()
	if session == nil {
		return
	}

	// 1. 遮罩
	backdropAlpha := session.BackdropAlpha() * s.theme.BackdropAlpha
	if backdropAlpha > 0 {
		s.fillRect(screen, 0, 0, float64(s.windowWidth), float64(s.windowHeight),
			color.RGBA{A: uint8(math.Round(backdropAlpha * 255))})
	}

	scale := session.PanelScale()
	if scale <= 0.01 {
		return
	}

	// 2. 面板内容绘制到离屏缓冲（坐标相对面板左上角）
	layout := computeDialogLayout(session, s.labels, s.windowWidth, s.windowHeight)
	buffer := s.ensurePanelBuffer(int(layout.PanelW), int(layout.PanelH))
	buffer.Clear()
	s.drawPanelContent(buffer, session, &layout)

	// 3. 围绕面板中心整体缩放绘制
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-layout.PanelW/2.0, -layout.PanelH/2.0)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(layout.PanelX+layout.PanelW/2.0, layout.PanelY+layout.PanelH/2.0)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(buffer, op)
}

// drawPanelContent 将面板内容绘制到缓冲（原点为面板左上角）
func (s *DialogRenderSystem) drawPanelContent(dst *ebiten.Image, session *dialog.Session, layout *dialogLayout) {
	ox, oy := layout.PanelX, layout.PanelY
	panelW, panelH := layout.PanelW, layout.PanelH

	// 面板背景与边框
	s.fillRect(dst, 0, 0, panelW, panelH, rgba(s.theme.PanelColor))
	s.strokeRect(dst, 0, 0, panelW, panelH, 2, rgba(s.theme.BorderColor))

	// 提示对话框在顶部绘制级别色条
	if session.Kind() == dialog.KindAlert {
		s.fillRect(dst, 2, 2, panelW-4, 6, s.severityColor(session.Request().Alert.Severity))
	}

	// 标题与正文
	y := dialogPadding
	s.drawText(dst, layout.Title, dialogPadding, y, rgba(s.theme.TitleColor))
	y += dialogTitleHeight + dialogLineHeight/2
	for _, line := range layout.MessageLines {
		s.drawText(dst, line, dialogPadding, y, rgba(s.theme.MessageColor))
		y += dialogLineHeight
	}

	// 输入框
	if layout.HasInput {
		s.drawInputBox(dst, session, layout, ox, oy)
	}

	// 按钮
	for _, btn := range layout.Buttons {
		btnColor := rgba(s.theme.ButtonColor)
		if btn.Danger {
			btnColor = rgba(s.theme.DangerColor)
		}
		bx, by := btn.X-ox, btn.Y-oy
		s.fillRect(dst, bx, by, btn.W, btn.H, btnColor)
		s.strokeRect(dst, bx, by, btn.W, btn.H, 1, rgba(s.theme.BorderColor))

		labelW, labelH := text.Measure(btn.Label, s.face, dialogLineHeight)
		s.drawText(dst, btn.Label,
			bx+(btn.W-labelW)/2.0,
			by+(btn.H-labelH)/2.0,
			rgba(s.theme.TitleColor))
	}

	// "不再提示"勾选项
	if layout.HasCheckbox {
		cx, cy := layout.CheckboxX-ox, layout.CheckboxY-oy
		s.strokeRect(dst, cx, cy, dialogCheckboxSize, dialogCheckboxSize, 1, rgba(s.theme.BorderColor))
		if session.RememberChoice() {
			s.fillRect(dst, cx+3, cy+3, dialogCheckboxSize-6, dialogCheckboxSize-6, rgba(s.theme.TitleColor))
		}
		s.drawText(dst, layout.CheckboxLabel, cx+dialogCheckboxSize+8, cy-2, rgba(s.theme.MessageColor))
	}
}

// drawInputBox 绘制输入框（文本、占位符、光标）
func (s *DialogRenderSystem) drawInputBox(dst *ebiten.Image, session *dialog.Session, layout *dialogLayout, ox, oy float64) {
	ix, iy := layout.InputX-ox, layout.InputY-oy
	s.fillRect(dst, ix, iy, layout.InputW, layout.InputH, rgba(s.theme.InputBgColor))
	s.strokeRect(dst, ix, iy, layout.InputW, layout.InputH, 1, rgba(s.theme.BorderColor))

	value := ""
	if s.input != nil {
		value = s.input.Text()
	}

	textX := ix + 8
	textY := iy + (layout.InputH-dialogLineHeight)/2.0
	if value == "" && layout.Placeholder != "" {
		// 占位符使用低对比度的正文色
		c := rgba(s.theme.MessageColor)
		c.A = 120
		s.drawText(dst, layout.Placeholder, textX, textY, c)
	} else {
		s.drawText(dst, value, textX, textY, rgba(s.theme.MessageColor))
	}

	// 光标：仅 Active 状态下闪烁显示
	if session.State() == dialog.StateActive && s.input != nil && s.input.CaretVisible() {
		w, _ := text.Measure(value, s.face, dialogLineHeight)
		s.fillRect(dst, textX+w+1, iy+6, 2, layout.InputH-12, rgba(s.theme.TitleColor))
	}
}

// ensurePanelBuffer 返回指定尺寸的离屏缓冲（尺寸不变时复用）
func (s *DialogRenderSystem) ensurePanelBuffer(w, h int) *ebiten.Image {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if s.panelBuffer != nil {
		bounds := s.panelBuffer.Bounds()
		if bounds.Dx() == w && bounds.Dy() == h {
			return s.panelBuffer
		}
		s.panelBuffer.Deallocate()
	}
	s.panelBuffer = ebiten.NewImage(w, h)
	return s.panelBuffer
}

// fillRect 绘制纯色矩形
func (s *DialogRenderSystem) fillRect(dst *ebiten.Image, x, y, w, h float64, c color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	dst.DrawImage(s.whitePixel, op)
}

// strokeRect 绘制矩形边框（四条边各一个矩形）
func (s *DialogRenderSystem) strokeRect(dst *ebiten.Image, x, y, w, h, thickness float64, c color.RGBA) {
	s.fillRect(dst, x, y, w, thickness, c)
	s.fillRect(dst, x, y+h-thickness, w, thickness, c)
	s.fillRect(dst, x, y, thickness, h, c)
	s.fillRect(dst, x+w-thickness, y, thickness, h, c)
}

// drawText 在指定位置绘制一行文字（左上角对齐）
func (s *DialogRenderSystem) drawText(dst *ebiten.Image, str string, x, y float64, c color.RGBA) {
	if str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.LineSpacing = dialogLineHeight
	text.Draw(dst, str, s.face, op)
}

// severityColor 返回提示级别对应的色条颜色
func (s *DialogRenderSystem) severityColor(severity dialog.Severity) color.RGBA {
	switch severity {
	case dialog.SeverityError:
		return rgba(s.theme.ErrorColor)
	case dialog.SeveritySuccess:
		return rgba(s.theme.SuccessColor)
	default:
		return rgba(s.theme.BorderColor)
	}
}

// rgba 将配置中的 [R, G, B, A] 四元组转换为 color.RGBA
func rgba(c [4]uint8) color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}
