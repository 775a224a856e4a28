package systems

import (
	"log"

	"github.com/atotto/clipboard"
	"github.com/decker502/dialogkit/pkg/config"
	"github.com/decker502/dialogkit/pkg/dialog"
	"github.com/decker502/dialogkit/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 光标闪烁周期（秒）
const caretBlinkInterval = 0.5

// DialogInputSystem 对话框交互系统
// 负责处理对话框的用户交互，把动作回报给序列器
//
// 职责：
//   - 检测按钮点击（鼠标/触摸），按布局命中检测后分发到序列器
//   - 检测 ESC 键（序列器内部保证仅 Active 状态生效）
//   - 输入对话框的文本编辑（字符输入、退格、Ctrl+V 粘贴、回车提交）
//   - "不再提示"勾选项的切换
//
// 实现 dialog.Presenter 接口：会话打开时初始化输入框文本，
// 会话关闭时清理编辑状态。
//
// 终结动作的去重不依赖本系统——同一帧内多个动作到达时，
// 序列器内部的门闩保证只有第一个生效。
//
// Story 20.3: 渲染层解耦
type DialogInputSystem struct {
	seq    *dialog.Sequencer
	labels config.DialogLabels

	windowWidth  int
	windowHeight int

	// 输入对话框的编辑状态
	textValue    string
	caretTimer   float64
	caretVisible bool
}

// NewDialogInputSystem 创建对话框交互系统
//
// 参数:
//   - seq: 序列器实例
//   - cfg: 对话框配置（布局计算需要勾选项文字）
//   - windowWidth, windowHeight: 逻辑屏幕尺寸
func NewDialogInputSystem(seq *dialog.Sequencer, cfg *config.DialogConfig, windowWidth, windowHeight int) *DialogInputSystem {
	return &DialogInputSystem{
		seq:          seq,
		labels:       cfg.Labels,
		windowWidth:  windowWidth,
		windowHeight: windowHeight,
	}
}

// Text 返回输入框的当前文本（渲染系统读取）
func (s *DialogInputSystem) Text() string {
	return s.textValue
}

// CaretVisible 返回光标当前是否可见（闪烁状态，渲染系统读取）
func (s *DialogInputSystem) CaretVisible() bool {
	return s.caretVisible
}

// SessionOpened 实现 dialog.Presenter
// 输入对话框打开时用默认值初始化编辑状态
func (s *DialogInputSystem) SessionOpened(session *dialog.Session) {
	if session.Kind() == dialog.KindInput {
		s.textValue = session.Request().Input.DefaultValue
		s.caretTimer = 0
		s.caretVisible = true
	}
}

// SessionClosed 实现 dialog.Presenter
// 清理编辑状态，避免残留到下一个输入对话框
func (s *DialogInputSystem) SessionClosed(session *dialog.Session, result dialog.Result) {
	s.textValue = ""
}

// Update 处理一帧的用户输入
// 参数:
//   - deltaTime: 距上一帧的时间间隔（秒）
//
// 注意：
//   - 过渡期间（Entering/Exiting）不做命中检测，输入被忽略
//   - ESC 不在这里做状态判断，序列器的 CancelKey 自行忽略非 Active 状态
func (s *DialogInputSystem) Update(deltaTime float64) {
	session := s.seq.ActiveSession()
	if session == nil {
		return
	}

	// ESC 键：合成类型对应的取消/关闭路径
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.seq.CancelKey()
	}

	if session.State() != dialog.StateActive {
		return
	}

	// 输入对话框的文本编辑
	if session.Kind() == dialog.KindInput {
		s.updateTextEditing(session, deltaTime)
	}

	// 指针点击：按布局命中检测
	if pressed, x, y := utils.IsPointerJustPressed(); pressed {
		s.handlePointerPress(session, x, y)
	}
}

// handlePointerPress 处理指针按下：命中按钮或勾选项时分发动作
func (s *DialogInputSystem) handlePointerPress(session *dialog.Session, x, y int) {
	layout := computeDialogLayout(session, s.labels, s.windowWidth, s.windowHeight)

	for _, btn := range layout.Buttons {
		if !utils.PointInRect(x, y, btn.X, btn.Y, btn.W, btn.H) {
			continue
		}
		switch btn.Action {
		case actionConfirm:
			s.seq.Confirm()
		case actionCancel:
			s.seq.Cancel()
		case actionSubmit:
			s.seq.SubmitInput(s.textValue)
		case actionDismiss:
			s.seq.Dismiss()
		case actionSelectOption:
			s.seq.SelectOption(btn.OptionIndex)
		}
		return
	}

	// "不再提示"勾选项（点击区域略放大，方便命中）
	if layout.HasCheckbox {
		pad := 4.0
		labelW := 120.0
		if utils.PointInRect(x, y,
			layout.CheckboxX-pad, layout.CheckboxY-pad,
			dialogCheckboxSize+labelW+2*pad, dialogCheckboxSize+2*pad) {
			s.seq.SetRememberChoice(!session.RememberChoice())
		}
	}

	// 点击面板外部不关闭对话框（模态语义）
}

// updateTextEditing 处理输入对话框的文本编辑
func (s *DialogInputSystem) updateTextEditing(session *dialog.Session, deltaTime float64) {
	// 光标闪烁
	s.caretTimer += deltaTime
	if s.caretTimer >= caretBlinkInterval {
		s.caretTimer = 0
		s.caretVisible = !s.caretVisible
	}

	// 1. 字符输入
	runes := ebiten.AppendInputChars(nil)
	if len(runes) > 0 {
		s.textValue += string(runes)
		s.resetCaretBlink()
	}

	// 2. 退格键（按住连续删除：第1帧立即响应，之后每隔3帧响应一次）
	backspaceDuration := inpututil.KeyPressDuration(ebiten.KeyBackspace)
	if backspaceDuration == 1 || (backspaceDuration >= 30 && backspaceDuration%3 == 0) {
		s.deleteLastChar()
		s.resetCaretBlink()
	}

	// 3. Ctrl+V 粘贴（桌面端）
	if ebiten.IsKeyPressed(ebiten.KeyControl) && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		pasted, err := clipboard.ReadAll()
		if err != nil {
			log.Printf("[DialogInput] Warning: clipboard read failed: %v", err)
		} else if pasted != "" {
			s.textValue += sanitizePasted(pasted)
			s.resetCaretBlink()
		}
	}

	// 4. 回车提交
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		s.seq.SubmitInput(s.textValue)
	}
}

// deleteLastChar 删除末尾一个字符（按 rune 删除，支持多字节字符）
func (s *DialogInputSystem) deleteLastChar() {
	if s.textValue == "" {
		return
	}
	runes := []rune(s.textValue)
	s.textValue = string(runes[:len(runes)-1])
}

// resetCaretBlink 重置光标闪烁（编辑时光标应该可见）
func (s *DialogInputSystem) resetCaretBlink() {
	s.caretTimer = 0
	s.caretVisible = true
}

// sanitizePasted 清理粘贴内容：去掉换行（输入框是单行的）
func sanitizePasted(str string) string {
	out := make([]rune, 0, len(str))
	for _, r := range str {
		if r == '\n' || r == '\r' {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
