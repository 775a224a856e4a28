// Package systems 提供对话框的渲染与交互系统（ebiten 渲染层）
//
// 该包是 pkg/dialog 状态机的渲染层实现：
//   - DialogRenderSystem 负责绘制遮罩、面板、按钮、输入框
//   - DialogInputSystem 负责指针/键盘交互，把用户动作回报给序列器
//
// 状态机本身不依赖本包，可以在无窗口环境下测试。
package systems

import (
	"strings"

	"github.com/decker502/dialogkit/pkg/config"
	"github.com/decker502/dialogkit/pkg/dialog"
)

// 面板布局常量（逻辑像素，相对 800x600 逻辑屏幕设计）
const (
	dialogPanelWidth   = 440.0
	dialogPadding      = 24.0
	dialogTitleHeight  = 30.0
	dialogLineHeight   = 22.0
	dialogButtonHeight = 40.0
	dialogButtonGap    = 16.0
	dialogOptionHeight = 44.0
	dialogOptionGap    = 10.0
	dialogInputHeight  = 36.0
	dialogCheckboxSize = 16.0
	dialogCheckboxRow  = 26.0
)

// buttonAction 按钮点击后要触发的动作
type buttonAction int

const (
	actionConfirm buttonAction = iota
	actionCancel
	actionSubmit
	actionDismiss
	actionSelectOption // 配合 optionIndex 使用
)

// dialogButton 布局后的单个按钮
type dialogButton struct {
	X, Y, W, H  float64
	Label       string
	Danger      bool // 危险按钮，使用警示配色
	Action      buttonAction
	OptionIndex int // 仅 actionSelectOption 有效
}

// dialogLayout 一帧的完整面板布局
//
// 布局按缩放系数 1.0 计算（即 Active 状态的最终位置）。
// 入场/出场过渡期间渲染层围绕面板中心整体缩放，
// 交互层不做命中检测（过渡期间本就不接受输入）。
type dialogLayout struct {
	PanelX, PanelY float64
	PanelW, PanelH float64

	Title        string
	MessageLines []string

	HasInput       bool
	InputX, InputY float64
	InputW, InputH float64
	Placeholder    string

	HasCheckbox          bool
	CheckboxX, CheckboxY float64
	CheckboxLabel        string

	Buttons []dialogButton
}

// computeDialogLayout 根据会话内容计算面板布局
//
// 参数：
//   - s: 当前会话
//   - labels: 配置中的默认文字（勾选项文字来源）
//   - windowWidth, windowHeight: 逻辑屏幕尺寸
func computeDialogLayout(s *dialog.Session, labels config.DialogLabels, windowWidth, windowHeight int) dialogLayout {
	req := s.Request()
	layout := dialogLayout{PanelW: dialogPanelWidth}

	var message string
	switch req.Kind {
	case dialog.KindConfirm:
		layout.Title = req.Confirm.Title
		message = req.Confirm.Message
	case dialog.KindInput:
		layout.Title = req.Input.Title
		layout.HasInput = true
		layout.Placeholder = req.Input.Placeholder
	case dialog.KindChoice:
		layout.Title = req.Choice.Title
		message = req.Choice.Message
	case dialog.KindAlert:
		layout.Title = req.Alert.Title
		message = req.Alert.Message
	}

	if message != "" {
		layout.MessageLines = strings.Split(message, "\n")
	}
	layout.HasCheckbox = req.SuppressKey != ""
	layout.CheckboxLabel = labels.Never

	// 自上而下累计内容高度，得到面板总高
	contentH := dialogPadding + dialogTitleHeight + dialogLineHeight/2
	contentH += float64(len(layout.MessageLines)) * dialogLineHeight
	if len(layout.MessageLines) > 0 {
		contentH += dialogLineHeight / 2
	}

	inputOffset := contentH
	if layout.HasInput {
		contentH += dialogInputHeight + dialogLineHeight/2
	}

	optionsOffset := contentH
	if req.Kind == dialog.KindChoice {
		contentH += float64(len(req.Choice.Options))*(dialogOptionHeight+dialogOptionGap) - dialogOptionGap
		contentH += dialogLineHeight / 2
	} else {
		contentH += dialogButtonHeight
	}

	if layout.HasCheckbox {
		contentH += dialogCheckboxRow
	}
	contentH += dialogPadding

	layout.PanelH = contentH
	layout.PanelX = (float64(windowWidth) - layout.PanelW) / 2.0
	layout.PanelY = (float64(windowHeight) - layout.PanelH) / 2.0

	if layout.HasInput {
		layout.InputX = layout.PanelX + dialogPadding
		layout.InputY = layout.PanelY + inputOffset
		layout.InputW = layout.PanelW - 2*dialogPadding
		layout.InputH = dialogInputHeight
	}

	// 按类型生成按钮
	switch req.Kind {
	case dialog.KindConfirm:
		layout.Buttons = twoButtonRow(&layout,
			req.Confirm.ConfirmLabel, actionConfirm, req.Confirm.Destructive,
			req.Confirm.CancelLabel, actionCancel)

	case dialog.KindInput:
		layout.Buttons = twoButtonRow(&layout,
			req.Input.SubmitLabel, actionSubmit, false,
			req.Input.CancelLabel, actionCancel)

	case dialog.KindChoice:
		y := layout.PanelY + optionsOffset
		for i, opt := range req.Choice.Options {
			layout.Buttons = append(layout.Buttons, dialogButton{
				X:           layout.PanelX + dialogPadding,
				Y:           y,
				W:           layout.PanelW - 2*dialogPadding,
				H:           dialogOptionHeight,
				Label:       opt.Label,
				Danger:      opt.Destructive,
				Action:      actionSelectOption,
				OptionIndex: i,
			})
			y += dialogOptionHeight + dialogOptionGap
		}

	case dialog.KindAlert:
		w := 160.0
		layout.Buttons = []dialogButton{{
			X:      layout.PanelX + (layout.PanelW-w)/2.0,
			Y:      layout.PanelY + layout.PanelH - dialogPadding - buttonAreaHeight(&layout),
			W:      w,
			H:      dialogButtonHeight,
			Label:  req.Alert.DismissLabel,
			Action: actionDismiss,
		}}
	}

	if layout.HasCheckbox {
		layout.CheckboxX = layout.PanelX + dialogPadding
		layout.CheckboxY = layout.PanelY + layout.PanelH - dialogPadding - dialogCheckboxSize
	}

	return layout
}

// buttonAreaHeight 底部按钮区高度（含勾选项行）
func buttonAreaHeight(layout *dialogLayout) float64 {
	h := dialogButtonHeight
	if layout.HasCheckbox {
		h += dialogCheckboxRow
	}
	return h
}

// twoButtonRow 生成左右并排的两个按钮（确认/取消、提交/取消）
func twoButtonRow(layout *dialogLayout, leftLabel string, leftAction buttonAction, leftDanger bool, rightLabel string, rightAction buttonAction) []dialogButton {
	w := (layout.PanelW - 3*dialogPadding) / 2.0
	y := layout.PanelY + layout.PanelH - dialogPadding - buttonAreaHeight(layout)

	return []dialogButton{
		{
			X:      layout.PanelX + dialogPadding,
			Y:      y,
			W:      w,
			H:      dialogButtonHeight,
			Label:  leftLabel,
			Danger: leftDanger,
			Action: leftAction,
		},
		{
			X:      layout.PanelX + 2*dialogPadding + w,
			Y:      y,
			W:      w,
			H:      dialogButtonHeight,
			Label:  rightLabel,
			Action: rightAction,
		},
	}
}
