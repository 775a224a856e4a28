package systems

import (
	"testing"

	"github.com/decker502/dialogkit/pkg/config"
	"github.com/decker502/dialogkit/pkg/dialog"
)

// layoutSession 用序列器生成指定类型的会话，返回会话与布局
func layoutSession(t *testing.T, show func(seq *dialog.Sequencer)) (*dialog.Session, dialogLayout) {
	t.Helper()
	seq := dialog.NewSequencer(dialog.DefaultOptions())
	show(seq)

	s := seq.ActiveSession()
	if s == nil {
		t.Fatal("Expected an active session")
	}
	labels := config.DefaultDialogConfig().Labels
	return s, computeDialogLayout(s, labels, config.WindowWidth, config.WindowHeight)
}

// TestComputeDialogLayout_ConfirmButtons 测试确认对话框的两按钮布局
func TestComputeDialogLayout_ConfirmButtons(t *testing.T) {
	_, layout := layoutSession(t, func(seq *dialog.Sequencer) {
		seq.ShowConfirm("退出游戏？", "未保存的进度将丢失", nil, nil)
	})

	if layout.Title != "退出游戏？" {
		t.Errorf("Expected title 退出游戏？, got %q", layout.Title)
	}
	if len(layout.Buttons) != 2 {
		t.Fatalf("Expected 2 buttons for confirm dialog, got %d", len(layout.Buttons))
	}
	if layout.Buttons[0].Action != actionConfirm {
		t.Error("Expected left button to confirm")
	}
	if layout.Buttons[1].Action != actionCancel {
		t.Error("Expected right button to cancel")
	}
	if layout.HasInput || layout.HasCheckbox {
		t.Error("Expected no input box or checkbox for plain confirm dialog")
	}

	// 两按钮并排不重叠
	left, right := layout.Buttons[0], layout.Buttons[1]
	if left.X+left.W > right.X {
		t.Errorf("Expected buttons side by side, left ends at %v, right starts at %v", left.X+left.W, right.X)
	}
}

// TestComputeDialogLayout_DestructiveConfirm 测试危险确认的警示按钮标记
func TestComputeDialogLayout_DestructiveConfirm(t *testing.T) {
	_, layout := layoutSession(t, func(seq *dialog.Sequencer) {
		seq.ShowDestructiveConfirm("删除存档？", "该操作不可撤销", nil, nil)
	})

	if !layout.Buttons[0].Danger {
		t.Error("Expected destructive confirm button marked Danger")
	}
	if layout.Buttons[1].Danger {
		t.Error("Expected cancel button not marked Danger")
	}
}

// TestComputeDialogLayout_ChoiceOptions 测试 k 个选项生成 k 个纵向堆叠按钮
func TestComputeDialogLayout_ChoiceOptions(t *testing.T) {
	options := []dialog.ChoiceOption{
		{Label: "存档 A"},
		{Label: "存档 B"},
		{Label: "删除全部", Destructive: true},
	}
	_, layout := layoutSession(t, func(seq *dialog.Sequencer) {
		seq.ShowChoice("选择存档", "", options, nil)
	})

	if len(layout.Buttons) != len(options) {
		t.Fatalf("Expected %d option buttons, got %d", len(options), len(layout.Buttons))
	}
	for i, btn := range layout.Buttons {
		if btn.Action != actionSelectOption {
			t.Errorf("Option %d: expected actionSelectOption", i)
		}
		if btn.OptionIndex != i {
			t.Errorf("Option %d: expected OptionIndex %d, got %d", i, i, btn.OptionIndex)
		}
		if btn.Label != options[i].Label {
			t.Errorf("Option %d: expected label %q, got %q", i, options[i].Label, btn.Label)
		}
	}
	if !layout.Buttons[2].Danger {
		t.Error("Expected destructive option marked Danger")
	}

	// 纵向堆叠：每个按钮都在前一个下方
	for i := 1; i < len(layout.Buttons); i++ {
		prev, cur := layout.Buttons[i-1], layout.Buttons[i]
		if cur.Y < prev.Y+prev.H {
			t.Errorf("Option %d overlaps option %d", i, i-1)
		}
	}
}

// TestComputeDialogLayout_InputBox 测试输入对话框的输入框布局
func TestComputeDialogLayout_InputBox(t *testing.T) {
	_, layout := layoutSession(t, func(seq *dialog.Sequencer) {
		seq.ShowInput("输入昵称", "最多 12 个字符", "", nil, nil)
	})

	if !layout.HasInput {
		t.Fatal("Expected input box for input dialog")
	}
	if layout.Placeholder != "最多 12 个字符" {
		t.Errorf("Expected placeholder passed through, got %q", layout.Placeholder)
	}
	if len(layout.Buttons) != 2 {
		t.Fatalf("Expected 2 buttons for input dialog, got %d", len(layout.Buttons))
	}
	if layout.Buttons[0].Action != actionSubmit {
		t.Error("Expected left button to submit")
	}

	// 输入框在面板内部
	if layout.InputX < layout.PanelX || layout.InputX+layout.InputW > layout.PanelX+layout.PanelW {
		t.Error("Expected input box horizontally inside panel")
	}
	if layout.InputY < layout.PanelY || layout.InputY+layout.InputH > layout.PanelY+layout.PanelH {
		t.Error("Expected input box vertically inside panel")
	}
}

// TestComputeDialogLayout_AlertSingleButton 测试提示对话框的单按钮居中
func TestComputeDialogLayout_AlertSingleButton(t *testing.T) {
	_, layout := layoutSession(t, func(seq *dialog.Sequencer) {
		seq.ShowAlert("购买成功", "金币 -500", nil)
	})

	if len(layout.Buttons) != 1 {
		t.Fatalf("Expected 1 button for alert dialog, got %d", len(layout.Buttons))
	}
	btn := layout.Buttons[0]
	if btn.Action != actionDismiss {
		t.Error("Expected alert button to dismiss")
	}

	panelCenter := layout.PanelX + layout.PanelW/2.0
	buttonCenter := btn.X + btn.W/2.0
	if buttonCenter != panelCenter {
		t.Errorf("Expected alert button centered, panel center %v, button center %v", panelCenter, buttonCenter)
	}
}

// TestComputeDialogLayout_CheckboxOnlyWithSuppressKey 测试勾选项只在带抑制键时出现
func TestComputeDialogLayout_CheckboxOnlyWithSuppressKey(t *testing.T) {
	_, plain := layoutSession(t, func(seq *dialog.Sequencer) {
		seq.ShowConfirm("提示", "", nil, nil)
	})
	if plain.HasCheckbox {
		t.Error("Expected no checkbox without suppress key")
	}

	_, once := layoutSession(t, func(seq *dialog.Sequencer) {
		seq.ShowConfirmOnce("tutorial.hint", "提示", "", nil, nil)
	})
	if !once.HasCheckbox {
		t.Fatal("Expected checkbox with suppress key")
	}
	if once.CheckboxLabel != "不再提示" {
		t.Errorf("Expected checkbox label 不再提示, got %q", once.CheckboxLabel)
	}
	if once.PanelH <= plain.PanelH {
		t.Error("Expected checkbox row to add panel height")
	}
}

// TestComputeDialogLayout_MultilineMessage 测试多行正文撑高面板
func TestComputeDialogLayout_MultilineMessage(t *testing.T) {
	_, oneLine := layoutSession(t, func(seq *dialog.Sequencer) {
		seq.ShowAlert("提示", "第一行", nil)
	})
	_, threeLines := layoutSession(t, func(seq *dialog.Sequencer) {
		seq.ShowAlert("提示", "第一行\n第二行\n第三行", nil)
	})

	if len(threeLines.MessageLines) != 3 {
		t.Errorf("Expected 3 message lines, got %d", len(threeLines.MessageLines))
	}
	wantDelta := 2 * dialogLineHeight
	if got := threeLines.PanelH - oneLine.PanelH; got != wantDelta {
		t.Errorf("Expected panel height to grow by %v for two extra lines, got %v", wantDelta, got)
	}
}

// TestComputeDialogLayout_PanelCentered 测试面板在逻辑屏幕上居中
func TestComputeDialogLayout_PanelCentered(t *testing.T) {
	_, layout := layoutSession(t, func(seq *dialog.Sequencer) {
		seq.ShowAlert("提示", "", nil)
	})

	if want := (float64(config.WindowWidth) - layout.PanelW) / 2.0; layout.PanelX != want {
		t.Errorf("Expected panel X %v, got %v", want, layout.PanelX)
	}
	if want := (float64(config.WindowHeight) - layout.PanelH) / 2.0; layout.PanelY != want {
		t.Errorf("Expected panel Y %v, got %v", want, layout.PanelY)
	}
}
