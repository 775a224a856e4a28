package dialog

import (
	"log"
	"math"
	"strconv"
	"time"
)

// Options 序列器配置
//
// 时长为零或负值、标签为空字符串时使用默认值，
// 因此零值 Options 可以直接使用。
type Options struct {
	// EnterDuration 入场过渡时长（秒）
	EnterDuration float64
	// ExitDuration 出场过渡时长（秒），与入场时长独立
	ExitDuration float64

	// 各类按钮的默认文字（Show* 便捷方法使用）
	ConfirmLabel string
	CancelLabel  string
	SubmitLabel  string
	DismissLabel string
}

// DefaultOptions 返回默认配置
func DefaultOptions() Options {
	return Options{
		EnterDuration: 0.25,
		ExitDuration:  0.18,
		ConfirmLabel:  "确定",
		CancelLabel:   "取消",
		SubmitLabel:   "提交",
		DismissLabel:  "确定",
	}
}

// normalize 用默认值填充未设置的字段
func (o Options) normalize() Options {
	def := DefaultOptions()
	if o.EnterDuration <= 0 {
		o.EnterDuration = def.EnterDuration
	}
	if o.ExitDuration <= 0 {
		o.ExitDuration = def.ExitDuration
	}
	if o.ConfirmLabel == "" {
		o.ConfirmLabel = def.ConfirmLabel
	}
	if o.CancelLabel == "" {
		o.CancelLabel = def.CancelLabel
	}
	if o.SubmitLabel == "" {
		o.SubmitLabel = def.SubmitLabel
	}
	if o.DismissLabel == "" {
		o.DismissLabel = def.DismissLabel
	}
	return o
}

// Sequencer 模态对话框序列器
//
// 负责请求的准入控制与会话的生命周期推进：
//   - 空闲时提交的请求立即提升为会话（Entering），否则进入 FIFO 队列
//   - 每个 tick 调用一次 Update 推进入场/出场过渡
//   - 会话销毁后自动提升下一个排队请求
//
// 单线程协作式模型（每帧一个 tick），不存在并行，无需加锁。
// Sequencer 是显式实例——不提供全局单例，由需要弹对话框的
// 调用方注入（便于测试，也避免进程级隐藏状态）。
//
// Story 20.1: 模态对话框系统
type Sequencer struct {
	opts        Options
	queue       *RequestQueue
	session     *Session
	presenter   Presenter        // 可为 nil（无头模式）
	suppression SuppressionStore // 可为 nil（不启用"不再提示"）

	// 会话关闭事件订阅者
	closedHandlers []func(kind Kind, result Result)
}

// NewSequencer 创建新的序列器实例
func NewSequencer(opts Options) *Sequencer {
	return &Sequencer{
		opts:  opts.normalize(),
		queue: NewRequestQueue(),
	}
}

// SetPresenter 设置渲染层
// 传 nil 表示无头模式（仅状态机，不渲染）
func (sq *Sequencer) SetPresenter(p Presenter) {
	sq.presenter = p
}

// SetSuppressionStore 设置"不再提示"抑制键存储
// 传 nil 表示不启用抑制功能
func (sq *Sequencer) SetSuppressionStore(store SuppressionStore) {
	sq.suppression = store
}

// OnClosed 订阅会话关闭事件
// 每次会话销毁（含被抑制而跳过显示的请求）时回调一次
func (sq *Sequencer) OnClosed(handler func(kind Kind, result Result)) {
	sq.closedHandlers = append(sq.closedHandlers, handler)
}

// ============================================================================
// 提交 API
// ============================================================================

// Submit 提交一个对话框请求
//
// 准入规则：
//   - 没有活动会话时，请求立即提升为新会话（跳过队列）
//   - 有活动会话时，追加到队尾
//
// 永远成功，没有错误路径，也没有背压（按设计，队列无上限）。
//
// 带 SuppressKey 的 Confirm/Alert 请求，如果该键已被抑制，
// 则不显示，直接走确认/关闭回调并触发关闭事件。
func (sq *Sequencer) Submit(req *Request) {
	if req == nil {
		return
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}

	// "不再提示"检查：已抑制的请求直接自动确认
	if req.SuppressKey != "" && sq.suppression != nil && sq.suppression.IsSuppressed(req.SuppressKey) {
		sq.autoResolveSuppressed(req)
		return
	}

	if sq.session == nil {
		sq.promote(req)
		return
	}

	sq.queue.Push(req)
	log.Printf("[Sequencer] Queued %s dialog: %q (queue length: %d)", req.Kind, req.title(), sq.queue.Len())
}

// autoResolveSuppressed 处理已被抑制的请求：跳过显示，直接走确认/关闭路径
// 仅 Confirm 和 Alert 支持抑制（Input/Choice 需要用户输入，无法自动决定）
func (sq *Sequencer) autoResolveSuppressed(req *Request) {
	var result Result
	var callback func()

	switch req.Kind {
	case KindConfirm:
		result = ResultConfirmed
		callback = req.Confirm.OnConfirm
	case KindAlert:
		result = ResultDismissed
		callback = req.Alert.OnDismiss
	default:
		// Input/Choice 不支持抑制，照常显示
		req.SuppressKey = ""
		sq.Submit(req)
		return
	}

	log.Printf("[Sequencer] Suppressed %s dialog: %q (key=%s)", req.Kind, req.title(), req.SuppressKey)
	if callback != nil {
		callback()
	}
	sq.fireClosed(req.Kind, result)
}

// ShowConfirm 显示确认对话框（使用默认按钮文字）
func (sq *Sequencer) ShowConfirm(title, message string, onConfirm, onCancel func()) {
	sq.ShowConfirmLabeled(title, message, sq.opts.ConfirmLabel, sq.opts.CancelLabel, onConfirm, onCancel)
}

// ShowConfirmLabeled 显示确认对话框（自定义按钮文字）
func (sq *Sequencer) ShowConfirmLabeled(title, message, confirmLabel, cancelLabel string, onConfirm, onCancel func()) {
	sq.Submit(&Request{
		Kind: KindConfirm,
		Confirm: &ConfirmData{
			Title:        title,
			Message:      message,
			ConfirmLabel: confirmLabel,
			CancelLabel:  cancelLabel,
			OnConfirm:    onConfirm,
			OnCancel:     onCancel,
		},
	})
}

// ShowDestructiveConfirm 显示危险操作确认对话框
// 与 ShowConfirm 相同，但确认按钮使用警示配色
func (sq *Sequencer) ShowDestructiveConfirm(title, message string, onConfirm, onCancel func()) {
	sq.Submit(&Request{
		Kind: KindConfirm,
		Confirm: &ConfirmData{
			Title:        title,
			Message:      message,
			ConfirmLabel: sq.opts.ConfirmLabel,
			CancelLabel:  sq.opts.CancelLabel,
			Destructive:  true,
			OnConfirm:    onConfirm,
			OnCancel:     onCancel,
		},
	})
}

// ShowConfirmOnce 显示带"不再提示"选项的确认对话框
//
// 参数：
//   - key: 抑制键。用户勾选"不再提示"并确认后，后续同 key 的请求
//     不再显示，直接走确认回调
func (sq *Sequencer) ShowConfirmOnce(key, title, message string, onConfirm, onCancel func()) {
	sq.Submit(&Request{
		Kind: KindConfirm,
		Confirm: &ConfirmData{
			Title:        title,
			Message:      message,
			ConfirmLabel: sq.opts.ConfirmLabel,
			CancelLabel:  sq.opts.CancelLabel,
			OnConfirm:    onConfirm,
			OnCancel:     onCancel,
		},
		SuppressKey: key,
	})
}

// ShowInput 显示文本输入对话框
func (sq *Sequencer) ShowInput(title, placeholder, defaultValue string, onSubmit func(string), onCancel func()) {
	sq.Submit(&Request{
		Kind: KindInput,
		Input: &InputData{
			Title:        title,
			Placeholder:  placeholder,
			DefaultValue: defaultValue,
			SubmitLabel:  sq.opts.SubmitLabel,
			CancelLabel:  sq.opts.CancelLabel,
			Validation:   ValidationFreeText,
			OnSubmit:     onSubmit,
			OnCancel:     onCancel,
		},
	})
}

// ShowNumberInput 显示数字输入对话框
//
// 提交时解析为浮点数并限制在 [min, max] 范围内；
// 解析失败时回调不会被调用，对话框按 Confirmed 关闭
// （与原版行为一致：错误被吞掉，不向调用方反馈）。
func (sq *Sequencer) ShowNumberInput(title, placeholder string, min, max, defaultValue float64, onSubmit func(float64), onCancel func()) {
	sq.Submit(&Request{
		Kind: KindInput,
		Input: &InputData{
			Title:          title,
			Placeholder:    placeholder,
			DefaultValue:   strconv.FormatFloat(defaultValue, 'f', -1, 64),
			SubmitLabel:    sq.opts.SubmitLabel,
			CancelLabel:    sq.opts.CancelLabel,
			Validation:     ValidationNumeric,
			Min:            min,
			Max:            max,
			OnSubmitNumber: onSubmit,
			OnCancel:       onCancel,
		},
	})
}

// ShowChoice 显示多选项对话框
// 每个选项有独立的回调；onCancel 在 ESC 取消时触发（可为 nil）
func (sq *Sequencer) ShowChoice(title, message string, options []ChoiceOption, onCancel func()) {
	sq.Submit(&Request{
		Kind: KindChoice,
		Choice: &ChoiceData{
			Title:    title,
			Message:  message,
			Options:  options,
			OnCancel: onCancel,
		},
	})
}

// ShowTwoChoice 显示两个选项的对话框（常见场景的便捷方法）
func (sq *Sequencer) ShowTwoChoice(title, message, label1, label2 string, cb1, cb2 func()) {
	sq.ShowChoice(title, message, []ChoiceOption{
		{Label: label1, OnSelect: cb1},
		{Label: label2, OnSelect: cb2},
	}, nil)
}

// ShowAlert 显示普通提示对话框
func (sq *Sequencer) ShowAlert(title, message string, onDismiss func()) {
	sq.showAlert(title, message, SeverityInfo, "", onDismiss)
}

// ShowAlertOnce 显示带"不再提示"选项的提示对话框
func (sq *Sequencer) ShowAlertOnce(key, title, message string, onDismiss func()) {
	sq.showAlert(title, message, SeverityInfo, key, onDismiss)
}

// ShowError 显示错误提示对话框
func (sq *Sequencer) ShowError(title, message string, onDismiss func()) {
	sq.showAlert(title, message, SeverityError, "", onDismiss)
}

// ShowSuccess 显示成功提示对话框
func (sq *Sequencer) ShowSuccess(title, message string, onDismiss func()) {
	sq.showAlert(title, message, SeveritySuccess, "", onDismiss)
}

// showAlert 提示对话框的内部公共实现
func (sq *Sequencer) showAlert(title, message string, severity Severity, suppressKey string, onDismiss func()) {
	sq.Submit(&Request{
		Kind: KindAlert,
		Alert: &AlertData{
			Title:        title,
			Message:      message,
			DismissLabel: sq.opts.DismissLabel,
			Severity:     severity,
			OnDismiss:    onDismiss,
		},
		SuppressKey: suppressKey,
	})
}

// ============================================================================
// 状态查询
// ============================================================================

// IsDialogActive 是否有对话框正在显示（含入场/出场过渡中）
func (sq *Sequencer) IsDialogActive() bool {
	return sq.session != nil
}

// ActiveSession 返回当前活动会话
// 渲染层每帧通过它读取状态与过渡进度；没有活动会话时返回 nil
func (sq *Sequencer) ActiveSession() *Session {
	return sq.session
}

// QueueLen 返回排队中（尚未显示）的请求数量
func (sq *Sequencer) QueueLen() int {
	return sq.queue.Len()
}

// ClearQueue 丢弃所有排队中的请求
// 不影响当前活动会话——它会正常走完自己的生命周期
func (sq *Sequencer) ClearQueue() int {
	n := sq.queue.Clear()
	if n > 0 {
		log.Printf("[Sequencer] Cleared %d queued request(s)", n)
	}
	return n
}

// ============================================================================
// 用户动作（由渲染层回报）
// ============================================================================

// Confirm 确认当前对话框（Confirm 类型专用）
// 仅在 Active 状态下生效；重复触发是空操作
func (sq *Sequencer) Confirm() {
	s := sq.session
	if s == nil || s.state != StateActive || s.request.Kind != KindConfirm {
		return
	}
	if s.resolve(ResultConfirmed, s.request.Confirm.OnConfirm) {
		log.Printf("[Sequencer] Confirmed: %q", s.request.title())
	}
}

// Cancel 取消当前对话框
// 按类型走对应的取消/关闭回调；仅在 Active 状态下生效
func (sq *Sequencer) Cancel() {
	s := sq.session
	if s == nil || s.state != StateActive {
		return
	}
	sq.resolveCancelPath(s)
}

// SelectOption 选中多选项对话框的第 index 个选项（Choice 类型专用）
// index 越界时忽略；仅在 Active 状态下生效
func (sq *Sequencer) SelectOption(index int) {
	s := sq.session
	if s == nil || s.state != StateActive || s.request.Kind != KindChoice {
		return
	}
	options := s.request.Choice.Options
	if index < 0 || index >= len(options) {
		log.Printf("[Sequencer] Warning: option index %d out of range (0-%d)", index, len(options)-1)
		return
	}
	if s.resolve(ResultOptionSelected, options[index].OnSelect) {
		log.Printf("[Sequencer] Option selected: %q -> %q", s.request.title(), options[index].Label)
	}
}

// SubmitInput 提交输入对话框的内容（Input 类型专用）
//
// 自由文本模式：原样传给 OnSubmit 回调。
// 数字模式：解析为浮点数并限制在 [Min, Max] 范围内后传给
// OnSubmitNumber；解析失败时不调用回调，对话框按 Confirmed 关闭。
func (sq *Sequencer) SubmitInput(value string) {
	s := sq.session
	if s == nil || s.state != StateActive || s.request.Kind != KindInput {
		return
	}
	data := s.request.Input

	switch data.Validation {
	case ValidationNumeric:
		// ParseFloat 接受 "NaN"/"Inf"，但它们无法被限制在 [Min, Max] 内，
		// 与解析失败同样按非法输入处理
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			// 非法输入：吞掉提交，回调不触发，对话框照常关闭
			log.Printf("[Sequencer] Warning: invalid numeric input %q, submission dropped", value)
			s.resolve(ResultConfirmed, nil)
			return
		}
		clamped := clampFloat(parsed, data.Min, data.Max)
		var callback func()
		if data.OnSubmitNumber != nil {
			callback = func() { data.OnSubmitNumber(clamped) }
		}
		if s.resolve(ResultConfirmed, callback) {
			log.Printf("[Sequencer] Number submitted: %q -> %v", s.request.title(), clamped)
		}

	default:
		var callback func()
		if data.OnSubmit != nil {
			callback = func() { data.OnSubmit(value) }
		}
		if s.resolve(ResultConfirmed, callback) {
			log.Printf("[Sequencer] Input submitted: %q", s.request.title())
		}
	}
}

// Dismiss 关闭提示对话框（Alert 类型专用）
// 仅在 Active 状态下生效
func (sq *Sequencer) Dismiss() {
	s := sq.session
	if s == nil || s.state != StateActive || s.request.Kind != KindAlert {
		return
	}
	if s.resolve(ResultDismissed, s.request.Alert.OnDismiss) {
		log.Printf("[Sequencer] Dismissed: %q", s.request.title())
	}
}

// CancelKey 处理取消键（ESC）
//
// 仅在 Active 状态下生效——入场/出场过渡期间取消键被忽略。
// 生效时合成与对话框类型匹配的取消/关闭路径。
func (sq *Sequencer) CancelKey() {
	s := sq.session
	if s == nil || s.state != StateActive {
		return
	}
	sq.resolveCancelPath(s)
}

// ForceClose 强制关闭当前对话框
//
// 与取消键不同，Entering 状态下也生效（Active 同样生效）。
// 走类型对应的取消/关闭路径，出场动画仍会完整播放——
// 美术连贯性优先于立即消失（刻意的设计选择）。
func (sq *Sequencer) ForceClose() {
	s := sq.session
	if s == nil {
		return
	}
	if s.state != StateEntering && s.state != StateActive {
		return
	}
	log.Printf("[Sequencer] Force closing %s dialog: %q", s.request.Kind, s.request.title())
	sq.resolveCancelPath(s)
}

// SetRememberChoice 设置当前会话的"不再提示"勾选状态
// 没有活动会话或请求不带 SuppressKey 时忽略
func (sq *Sequencer) SetRememberChoice(remember bool) {
	s := sq.session
	if s == nil || s.request.SuppressKey == "" {
		return
	}
	s.SetRememberChoice(remember)
}

// resolveCancelPath 按对话框类型执行取消/关闭路径（穷尽匹配四种类型）
func (sq *Sequencer) resolveCancelPath(s *Session) {
	var result Result
	var callback func()

	switch s.request.Kind {
	case KindConfirm:
		result = ResultCancelled
		callback = s.request.Confirm.OnCancel
	case KindInput:
		result = ResultCancelled
		callback = s.request.Input.OnCancel
	case KindChoice:
		result = ResultCancelled
		callback = s.request.Choice.OnCancel
	case KindAlert:
		result = ResultDismissed
		callback = s.request.Alert.OnDismiss
	default:
		return
	}

	if s.resolve(result, callback) {
		log.Printf("[Sequencer] Cancelled: %q (result=%s)", s.request.title(), result)
	}
}

// ============================================================================
// 生命周期推进
// ============================================================================

// Update 推进序列器状态（每个 tick 调用一次）
//
// 参数：
//   - deltaTime: 距上个 tick 的时间（秒）
//
// 职责：
//   - 推进当前会话的入场/出场过渡
//   - 出场完成时销毁会话、持久化"不再提示"、触发关闭事件
//   - 销毁后立即提升下一个排队请求（同一个 tick 内完成）
func (sq *Sequencer) Update(deltaTime float64) {
	if sq.session == nil {
		return
	}

	if !sq.session.update(deltaTime) {
		return
	}

	// 出场动画播放完毕，销毁会话
	closed := sq.session
	result := closed.result
	sq.session = nil
	log.Printf("[Sequencer] Session closed: %q (result=%s, lifetime=%v)",
		closed.request.title(), result, time.Since(closed.startedAt))

	// "不再提示"勾选时持久化抑制键
	if closed.rememberChoice && closed.request.SuppressKey != "" && sq.suppression != nil {
		sq.suppression.Suppress(closed.request.SuppressKey)
		log.Printf("[Sequencer] Suppress key remembered: %s", closed.request.SuppressKey)
	}

	if sq.presenter != nil {
		sq.presenter.SessionClosed(closed, result)
	}
	sq.fireClosed(closed.request.Kind, result)

	// 提升下一个排队请求。关闭事件的回调可能已经自己提交并提升了
	// 新请求，此时保持它，不从队列重复提升
	if sq.session == nil {
		if next, ok := sq.queue.PopNext(); ok {
			sq.promote(next)
		}
	}
}

// promote 将请求提升为新的活动会话（进入 Entering 状态）
func (sq *Sequencer) promote(req *Request) {
	sq.session = newSession(req, sq.opts.EnterDuration, sq.opts.ExitDuration)
	log.Printf("[Sequencer] Promoted %s dialog: %q", req.Kind, req.title())
	if sq.presenter != nil {
		sq.presenter.SessionOpened(sq.session)
	}
}

// fireClosed 触发所有关闭事件订阅者
func (sq *Sequencer) fireClosed(kind Kind, result Result) {
	for _, handler := range sq.closedHandlers {
		if handler != nil {
			handler(kind, result)
		}
	}
}

// clampFloat 将数值限制在 [min, max] 范围内
func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
