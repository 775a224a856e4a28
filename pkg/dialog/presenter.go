package dialog

// Presenter 渲染层契约
//
// Sequencer 从不直接接触渲染原语，只通过该接口通知渲染层
// 会话的打开与关闭。渲染层每帧通过 Sequencer.ActiveSession()
// 读取会话状态与过渡进度，用户动作通过 Sequencer 上的
// 类型化方法（Confirm/Cancel/SelectOption/SubmitInput/Dismiss）
// 回报给状态机。
//
// Presenter 为 nil 时 Sequencer 照常工作（无头模式，用于测试
// 和 cmd/verify_sequence）。
//
// Story 20.3: 渲染层解耦
type Presenter interface {
	// SessionOpened 在请求被提升为新会话（进入 Entering 状态）时调用
	SessionOpened(s *Session)

	// SessionClosed 在会话销毁（出场动画播放完毕）后调用
	SessionClosed(s *Session, result Result)
}

// SuppressionStore "不再提示"抑制键的持久化存储契约
// 由 pkg/prefs 提供基于 gdata 的实现，测试中可用内存假实现替代
type SuppressionStore interface {
	// IsSuppressed 查询某个抑制键是否已被记住
	IsSuppressed(key string) bool

	// Suppress 记住某个抑制键（实现负责持久化）
	Suppress(key string)
}
