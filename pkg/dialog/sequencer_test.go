package dialog

import (
	"fmt"
	"testing"
)

// newTestSequencer 创建过渡时长各 0.1 秒的测试序列器
func newTestSequencer() *Sequencer {
	return NewSequencer(Options{
		EnterDuration: 0.1,
		ExitDuration:  0.1,
	})
}

// stepToActive 推进序列器直到当前会话进入 Active 状态
func stepToActive(t *testing.T, seq *Sequencer) {
	t.Helper()
	for i := 0; i < 100; i++ {
		s := seq.ActiveSession()
		if s == nil {
			t.Fatal("Expected an active session while stepping to Active")
		}
		if s.State() == StateActive {
			return
		}
		seq.Update(0.05)
	}
	t.Fatal("Session never reached Active state")
}

// stepToClosed 推进序列器直到指定会话销毁
func stepToClosed(t *testing.T, seq *Sequencer, current *Session) {
	t.Helper()
	for i := 0; i < 100; i++ {
		if seq.ActiveSession() != current {
			return
		}
		seq.Update(0.05)
	}
	t.Fatal("Session never closed")
}

// TestSequencer_FirstShownRestQueued 测试空闲时连续提交 N 个请求：
// 第一个立即显示（Entering），其余 N-1 个按提交顺序排队
func TestSequencer_FirstShownRestQueued(t *testing.T) {
	seq := newTestSequencer()

	for i := 0; i < 4; i++ {
		seq.ShowAlert(fmt.Sprintf("alert-%d", i), "", nil)
	}

	first := seq.ActiveSession()
	if first == nil || first.State() != StateEntering {
		t.Fatal("Expected first request promoted immediately to Entering")
	}
	if first.Request().Alert.Title != "alert-0" {
		t.Errorf("Expected first submission to be shown, got %q", first.Request().Alert.Title)
	}
	if seq.QueueLen() != 3 {
		t.Errorf("Expected 3 queued requests, got %d", seq.QueueLen())
	}

	// 依次走完所有会话，验证显示顺序与提交顺序一致
	for i := 0; i < 4; i++ {
		s := seq.ActiveSession()
		if s == nil {
			t.Fatalf("Expected session %d, got none", i)
		}
		want := fmt.Sprintf("alert-%d", i)
		if s.Request().Alert.Title != want {
			t.Errorf("Session %d: expected %q, got %q", i, want, s.Request().Alert.Title)
		}
		stepToActive(t, seq)
		seq.Dismiss()
		stepToClosed(t, seq, s)
	}

	if seq.IsDialogActive() {
		t.Error("Expected no active dialog after draining all requests")
	}
}

// TestSequencer_SingleSessionInvariant 测试任意时刻最多一个会话存在
func TestSequencer_SingleSessionInvariant(t *testing.T) {
	seq := newTestSequencer()

	opened := 0
	closed := 0
	live := 0
	seq.SetPresenter(&recordingPresenter{
		onOpened: func(s *Session) {
			opened++
			live++
			if live > 1 {
				t.Errorf("Expected at most one live session, got %d", live)
			}
		},
		onClosed: func(s *Session, r Result) {
			closed++
			live--
		},
	})

	seq.ShowAlert("a", "", nil)
	seq.ShowAlert("b", "", nil)
	seq.ShowAlert("c", "", nil)

	for i := 0; i < 3; i++ {
		s := seq.ActiveSession()
		stepToActive(t, seq)
		seq.Dismiss()
		stepToClosed(t, seq, s)
	}

	if opened != 3 || closed != 3 {
		t.Errorf("Expected 3 opened / 3 closed notifications, got %d / %d", opened, closed)
	}
}

// recordingPresenter 测试用 Presenter 实现
type recordingPresenter struct {
	onOpened func(*Session)
	onClosed func(*Session, Result)
}

func (p *recordingPresenter) SessionOpened(s *Session) {
	if p.onOpened != nil {
		p.onOpened(s)
	}
}

func (p *recordingPresenter) SessionClosed(s *Session, r Result) {
	if p.onClosed != nil {
		p.onClosed(s, r)
	}
}

// TestSequencer_DoubleTerminatingAction 测试同一会话的第二个终结动作是空操作
// （确认和 ESC 取消在同一 tick 内到达时，只有第一个生效）
func TestSequencer_DoubleTerminatingAction(t *testing.T) {
	seq := newTestSequencer()

	confirmCalls := 0
	cancelCalls := 0
	seq.ShowConfirm("quit?", "", func() { confirmCalls++ }, func() { cancelCalls++ })
	stepToActive(t, seq)

	seq.Confirm()
	seq.CancelKey() // 同一 tick 内的第二个终结动作

	if confirmCalls != 1 {
		t.Errorf("Expected confirm callback once, got %d", confirmCalls)
	}
	if cancelCalls != 0 {
		t.Errorf("Expected cancel callback never, got %d", cancelCalls)
	}

	s := seq.ActiveSession()
	if s.Result() != ResultConfirmed {
		t.Errorf("Expected result Confirmed, got %s", s.Result())
	}
}

// TestSequencer_PromotionAfterClose 测试会话关闭后自动提升下一个排队请求
func TestSequencer_PromotionAfterClose(t *testing.T) {
	seq := newTestSequencer()

	seq.ShowAlert("first", "", nil)
	seq.ShowAlert("second", "", nil)

	first := seq.ActiveSession()
	stepToActive(t, seq)
	seq.Dismiss()
	stepToClosed(t, seq, first)

	second := seq.ActiveSession()
	if second == nil {
		t.Fatal("Expected next queued request promoted after close")
	}
	if second.Request().Alert.Title != "second" {
		t.Errorf("Expected second request promoted, got %q", second.Request().Alert.Title)
	}
	if second.State() != StateEntering {
		t.Errorf("Expected promoted session in Entering, got %s", second.State())
	}
}

// TestSequencer_ClearQueueKeepsActiveSession 测试 ClearQueue 只清排队请求
func TestSequencer_ClearQueueKeepsActiveSession(t *testing.T) {
	seq := newTestSequencer()

	dismissed := false
	seq.ShowAlert("active", "", func() { dismissed = true })
	seq.ShowAlert("queued-1", "", nil)
	seq.ShowAlert("queued-2", "", nil)

	active := seq.ActiveSession()
	cleared := seq.ClearQueue()
	if cleared != 2 {
		t.Errorf("Expected 2 cleared requests, got %d", cleared)
	}

	// 活动会话不受影响，继续走完生命周期
	if seq.ActiveSession() != active {
		t.Error("Expected active session unaffected by ClearQueue")
	}
	stepToActive(t, seq)
	seq.Dismiss()
	stepToClosed(t, seq, active)

	if !dismissed {
		t.Error("Expected active session to complete normally after ClearQueue")
	}
	if seq.IsDialogActive() {
		t.Error("Expected no promotion after queue was cleared")
	}
}

// TestSequencer_CancelKeyGating 测试 ESC 键只在 Active 状态下生效
func TestSequencer_CancelKeyGating(t *testing.T) {
	seq := newTestSequencer()

	cancelCalls := 0
	seq.ShowConfirm("quit?", "", nil, func() { cancelCalls++ })

	// Entering 状态：忽略
	s := seq.ActiveSession()
	seq.CancelKey()
	if s.State() != StateEntering || cancelCalls != 0 {
		t.Error("Expected CancelKey ignored during Entering")
	}

	// Active 状态：合成类型对应的取消路径
	stepToActive(t, seq)
	seq.CancelKey()
	if cancelCalls != 1 {
		t.Errorf("Expected cancel callback once, got %d", cancelCalls)
	}
	if s.State() != StateExiting {
		t.Errorf("Expected Exiting after CancelKey in Active, got %s", s.State())
	}
	if s.Result() != ResultCancelled {
		t.Errorf("Expected result Cancelled, got %s", s.Result())
	}

	// Exiting 状态：忽略
	seq.CancelKey()
	if cancelCalls != 1 {
		t.Errorf("Expected no further cancel callback during Exiting, got %d", cancelCalls)
	}
}

// TestSequencer_CancelKeyDismissesAlert 测试 ESC 对 Alert 走 Dismissed 路径
func TestSequencer_CancelKeyDismissesAlert(t *testing.T) {
	seq := newTestSequencer()

	dismissCalls := 0
	seq.ShowAlert("notice", "", func() { dismissCalls++ })
	stepToActive(t, seq)

	seq.CancelKey()
	s := seq.ActiveSession()
	if dismissCalls != 1 {
		t.Errorf("Expected dismiss callback once, got %d", dismissCalls)
	}
	if s.Result() != ResultDismissed {
		t.Errorf("Expected result Dismissed for alert, got %s", s.Result())
	}
}

// TestSequencer_ForceCloseDuringEntering 测试 ForceClose 在入场过渡期间也生效
func TestSequencer_ForceCloseDuringEntering(t *testing.T) {
	seq := newTestSequencer()

	cancelCalls := 0
	seq.ShowConfirm("quit?", "", nil, func() { cancelCalls++ })

	s := seq.ActiveSession()
	if s.State() != StateEntering {
		t.Fatalf("Expected Entering, got %s", s.State())
	}

	seq.ForceClose()
	if s.State() != StateExiting {
		t.Errorf("Expected Exiting after ForceClose during Entering, got %s", s.State())
	}
	if cancelCalls != 1 {
		t.Errorf("Expected cancel callback once, got %d", cancelCalls)
	}
	if s.Result() != ResultCancelled {
		t.Errorf("Expected result Cancelled, got %s", s.Result())
	}
}

// TestSequencer_ChoiceCallbacksIsolated 测试 k 个选项各自独立触发
func TestSequencer_ChoiceCallbacksIsolated(t *testing.T) {
	const k = 3

	for selected := 0; selected < k; selected++ {
		seq := newTestSequencer()

		calls := make([]int, k)
		options := make([]ChoiceOption, k)
		for i := 0; i < k; i++ {
			i := i
			options[i] = ChoiceOption{
				Label:    fmt.Sprintf("option-%d", i),
				OnSelect: func() { calls[i]++ },
			}
		}

		seq.ShowChoice("pick", "", options, nil)
		stepToActive(t, seq)

		s := seq.ActiveSession()
		if got := len(s.Request().Choice.Options); got != k {
			t.Fatalf("Expected %d options, got %d", k, got)
		}

		seq.SelectOption(selected)
		if s.Result() != ResultOptionSelected {
			t.Errorf("Expected result OptionSelected, got %s", s.Result())
		}
		for i := 0; i < k; i++ {
			want := 0
			if i == selected {
				want = 1
			}
			if calls[i] != want {
				t.Errorf("Option %d: expected %d calls, got %d (selected %d)", i, want, calls[i], selected)
			}
		}
	}
}

// TestSequencer_SelectOptionOutOfRange 测试选项索引越界时忽略
func TestSequencer_SelectOptionOutOfRange(t *testing.T) {
	seq := newTestSequencer()

	seq.ShowTwoChoice("pick", "", "a", "b", nil, nil)
	stepToActive(t, seq)

	s := seq.ActiveSession()
	seq.SelectOption(5)
	seq.SelectOption(-1)
	if s.State() != StateActive {
		t.Errorf("Expected session to stay Active after out-of-range selection, got %s", s.State())
	}
}

// TestSequencer_OnClosedEvents 测试关闭事件按会话触发并携带结果标签
func TestSequencer_OnClosedEvents(t *testing.T) {
	seq := newTestSequencer()

	var events []string
	seq.OnClosed(func(kind Kind, result Result) {
		events = append(events, fmt.Sprintf("%s/%s", kind, result))
	})

	seq.ShowConfirm("a", "", nil, nil)
	seq.ShowAlert("b", "", nil)

	first := seq.ActiveSession()
	stepToActive(t, seq)
	seq.Confirm()
	stepToClosed(t, seq, first)

	second := seq.ActiveSession()
	stepToActive(t, seq)
	seq.CancelKey()
	stepToClosed(t, seq, second)

	want := []string{"Confirm/Confirmed", "Alert/Dismissed"}
	if len(events) != len(want) {
		t.Fatalf("Expected %d closed events, got %d", len(want), len(events))
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("Event %d: expected %q, got %q", i, want[i], events[i])
		}
	}
}

// TestSequencer_SubmitFromClosedHandler 测试关闭事件回调中提交的请求
// 优先于队列中的请求（回调先提升，队列不重复提升）
func TestSequencer_SubmitFromClosedHandler(t *testing.T) {
	seq := newTestSequencer()

	resubmitted := false
	seq.OnClosed(func(kind Kind, result Result) {
		if !resubmitted {
			resubmitted = true
			seq.ShowAlert("from-handler", "", nil)
		}
	})

	seq.ShowAlert("first", "", nil)
	first := seq.ActiveSession()
	stepToActive(t, seq)
	seq.Dismiss()
	stepToClosed(t, seq, first)

	s := seq.ActiveSession()
	if s == nil || s.Request().Alert.Title != "from-handler" {
		t.Fatal("Expected handler-submitted request to become the next session")
	}
}

// fakeSuppressionStore 测试用内存抑制键存储
type fakeSuppressionStore struct {
	keys map[string]bool
}

func (f *fakeSuppressionStore) IsSuppressed(key string) bool { return f.keys[key] }
func (f *fakeSuppressionStore) Suppress(key string)          { f.keys[key] = true }

// TestSequencer_Suppression 测试"不再提示"完整流程：
// 勾选并确认后持久化抑制键，后续同键请求跳过显示直接走确认路径
func TestSequencer_Suppression(t *testing.T) {
	seq := newTestSequencer()
	store := &fakeSuppressionStore{keys: make(map[string]bool)}
	seq.SetSuppressionStore(store)

	confirmCalls := 0
	show := func() {
		seq.ShowConfirmOnce("hint.tutorial", "Hint", "", func() { confirmCalls++ }, nil)
	}

	// 第一次：正常显示，勾选"不再提示"后确认
	show()
	s := seq.ActiveSession()
	stepToActive(t, seq)
	seq.SetRememberChoice(true)
	seq.Confirm()
	stepToClosed(t, seq, s)

	if confirmCalls != 1 {
		t.Fatalf("Expected confirm callback once, got %d", confirmCalls)
	}
	if !store.IsSuppressed("hint.tutorial") {
		t.Fatal("Expected suppress key persisted after remembered confirm")
	}

	// 第二次：被抑制，不显示，直接走确认回调
	var closedEvents int
	seq.OnClosed(func(kind Kind, result Result) { closedEvents++ })
	show()

	if seq.IsDialogActive() {
		t.Error("Expected suppressed request to skip display")
	}
	if confirmCalls != 2 {
		t.Errorf("Expected auto-confirm callback for suppressed request, got %d calls", confirmCalls)
	}
	if closedEvents != 1 {
		t.Errorf("Expected closed event for suppressed request, got %d", closedEvents)
	}
}

// TestSequencer_SuppressionNotRemembered 测试不勾选时不持久化抑制键
func TestSequencer_SuppressionNotRemembered(t *testing.T) {
	seq := newTestSequencer()
	store := &fakeSuppressionStore{keys: make(map[string]bool)}
	seq.SetSuppressionStore(store)

	seq.ShowConfirmOnce("hint.other", "Hint", "", nil, nil)
	s := seq.ActiveSession()
	stepToActive(t, seq)
	seq.Confirm()
	stepToClosed(t, seq, s)

	if store.IsSuppressed("hint.other") {
		t.Error("Expected suppress key not persisted without remember checkbox")
	}

	// 再次提交仍然正常显示
	seq.ShowConfirmOnce("hint.other", "Hint", "", nil, nil)
	if !seq.IsDialogActive() {
		t.Error("Expected non-suppressed request to display normally")
	}
}

// TestSequencer_WrongKindActionsIgnored 测试动作与类型不匹配时忽略
func TestSequencer_WrongKindActionsIgnored(t *testing.T) {
	seq := newTestSequencer()

	seq.ShowAlert("notice", "", nil)
	stepToActive(t, seq)

	s := seq.ActiveSession()
	seq.Confirm()        // Alert 没有确认路径
	seq.SubmitInput("x") // Alert 没有输入框
	seq.SelectOption(0)  // Alert 没有选项
	if s.State() != StateActive {
		t.Errorf("Expected mismatched actions ignored, got state %s", s.State())
	}

	seq.Dismiss()
	if s.State() != StateExiting {
		t.Errorf("Expected Dismiss to work for alert, got %s", s.State())
	}
}

// TestSequencer_FreeTextSubmit 测试自由文本提交原样传给回调
func TestSequencer_FreeTextSubmit(t *testing.T) {
	seq := newTestSequencer()

	var submitted []string
	seq.ShowInput("rename", "", "Player1", func(value string) { submitted = append(submitted, value) }, nil)
	stepToActive(t, seq)

	s := seq.ActiveSession()
	if s.Request().Input.DefaultValue != "Player1" {
		t.Errorf("Expected default value Player1, got %q", s.Request().Input.DefaultValue)
	}

	seq.SubmitInput("新名字 with spaces")
	if len(submitted) != 1 || submitted[0] != "新名字 with spaces" {
		t.Fatalf("Expected value passed through unchanged, got %v", submitted)
	}
	if s.Result() != ResultConfirmed {
		t.Errorf("Expected result Confirmed, got %s", s.Result())
	}
}

// TestSequencer_NumberInputClamped 测试数字输入的范围限制
func TestSequencer_NumberInputClamped(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected float64
	}{
		{"范围内原样通过", "7", 7},
		{"超过上限钳制到 max", "15", 10},
		{"低于下限钳制到 min", "-3", 0},
		{"小数解析", "2.5", 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := newTestSequencer()

			var submitted []float64
			seq.ShowNumberInput("wager", "", 0, 10, 5,
				func(v float64) { submitted = append(submitted, v) }, nil)
			stepToActive(t, seq)

			seq.SubmitInput(tt.value)
			if len(submitted) != 1 {
				t.Fatalf("Expected exactly one callback, got %d", len(submitted))
			}
			if submitted[0] != tt.expected {
				t.Errorf("SubmitInput(%q): expected %v, got %v", tt.value, tt.expected, submitted[0])
			}
		})
	}
}

// TestSequencer_NumberInputMalformed 测试非法数字输入被丢弃：
// 回调不触发，对话框仍按 Confirmed 关闭。
// NaN/Inf 能通过 ParseFloat 但无法钳制到 [min, max]，同样视为非法
func TestSequencer_NumberInputMalformed(t *testing.T) {
	values := []string{"abc", "", "1.2.3", "NaN", "+Inf", "-Inf", "nan"}

	for _, value := range values {
		t.Run(value, func(t *testing.T) {
			seq := newTestSequencer()

			var submitted []float64
			seq.ShowNumberInput("wager", "", 0, 10, 5,
				func(v float64) { submitted = append(submitted, v) }, nil)
			stepToActive(t, seq)

			s := seq.ActiveSession()
			seq.SubmitInput(value)
			if len(submitted) != 0 {
				t.Errorf("SubmitInput(%q): expected no callback, got %v", value, submitted)
			}
			if s.State() != StateExiting {
				t.Errorf("SubmitInput(%q): expected dialog to close, got state %s", value, s.State())
			}
			if s.Result() != ResultConfirmed {
				t.Errorf("SubmitInput(%q): expected result Confirmed, got %s", value, s.Result())
			}
		})
	}
}
