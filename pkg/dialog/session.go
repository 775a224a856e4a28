package dialog

import (
	"time"

	"github.com/decker502/dialogkit/pkg/utils"
)

// State 会话生命周期状态
//
// 状态只能沿 Entering → Active → Exiting 单向前进，
// 退出动画播放完毕后会话被销毁。
type State int

const (
	// StateEntering 入场过渡中（遮罩淡入、面板缩放），不接受输入
	StateEntering State = iota
	// StateActive 等待用户的终结动作（确认/取消/选择/关闭）
	StateActive
	// StateExiting 退场过渡中，不接受输入
	StateExiting
)

// String 返回状态的可读名称（用于日志）
func (s State) String() string {
	switch s {
	case StateEntering:
		return "Entering"
	case StateActive:
		return "Active"
	case StateExiting:
		return "Exiting"
	default:
		return "Unknown"
	}
}

// Session 当前正在显示的对话框会话
//
// 同一时刻最多存在一个 Session，由 Sequencer 独占持有：
// 请求被提升（promotion）时创建，退场动画结束时销毁。
//
// 终结动作的"只触发一次"保证在 Session 内部实现（resolved 标志），
// 不依赖渲染层的控件禁用时序——同一帧内确认和 ESC 取消同时到达时，
// 只有第一个生效。
//
// Story 20.2: 会话状态机
type Session struct {
	request   *Request
	state     State
	startedAt time.Time

	// 当前状态已经过的时间（秒），进入新状态时清零
	elapsed float64

	// 入场/出场过渡时长（秒），两者独立配置
	enterDuration float64
	exitDuration  float64

	// 终结动作门闩：一旦置位，后续所有终结动作都是空操作
	resolved bool
	result   Result

	// "不再提示"勾选状态（仅在请求带 SuppressKey 时有意义）
	rememberChoice bool
}

// newSession 创建处于 Entering 状态的新会话
func newSession(req *Request, enterDuration, exitDuration float64) *Session {
	return &Session{
		request:       req,
		state:         StateEntering,
		startedAt:     time.Now(),
		enterDuration: enterDuration,
		exitDuration:  exitDuration,
	}
}

// Request 返回会话对应的请求
func (s *Session) Request() *Request {
	return s.request
}

// Kind 返回会话的对话框类型
func (s *Session) Kind() Kind {
	return s.request.Kind
}

// State 返回当前生命周期状态
func (s *Session) State() State {
	return s.state
}

// StartedAt 返回会话创建时间
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// Result 返回终结结果标签
// 仅在会话已被终结（Exiting 及之后）时有意义
func (s *Session) Result() Result {
	return s.result
}

// RememberChoice 返回"不再提示"勾选状态
func (s *Session) RememberChoice() bool {
	return s.rememberChoice
}

// SetRememberChoice 设置"不再提示"勾选状态
// 只在 Active 状态下生效（过渡期间控件不可交互）
func (s *Session) SetRememberChoice(remember bool) {
	if s.state != StateActive {
		return
	}
	s.rememberChoice = remember
}

// Progress 返回当前过渡的进度 [0, 1]
//
// Entering/Exiting 状态下按已经过时间计算，Active 状态恒为 1。
// 过渡时长配置为 0 时视为瞬时完成（进度直接为 1）。
func (s *Session) Progress() float64 {
	var duration float64
	switch s.state {
	case StateEntering:
		duration = s.enterDuration
	case StateExiting:
		duration = s.exitDuration
	default:
		return 1.0
	}

	if duration <= 0 {
		return 1.0
	}
	p := s.elapsed / duration
	if p > 1.0 {
		p = 1.0
	}
	return p
}

// PanelScale 返回面板当前的缩放系数
//
// 入场使用回弹曲线（EaseOutBack，轻微超出 1.0 再回落），
// 出场使用缓入缓出曲线反向收缩——两条曲线刻意不对称，
// 入场活泼、出场利落。
func (s *Session) PanelScale() float64 {
	switch s.state {
	case StateEntering:
		return utils.EaseOutBack(s.Progress())
	case StateExiting:
		return 1.0 - utils.EaseInOutCubic(s.Progress())
	default:
		return 1.0
	}
}

// BackdropAlpha 返回遮罩当前的不透明度系数 [0, 1]
// 实际遮罩 alpha = 该系数 × 配置的目标遮罩不透明度
func (s *Session) BackdropAlpha() float64 {
	switch s.state {
	case StateEntering:
		return utils.EaseOutQuad(s.Progress())
	case StateExiting:
		return 1.0 - utils.EaseInOutCubic(s.Progress())
	default:
		return 1.0
	}
}

// resolve 执行终结动作（内部方法，由 Sequencer 调用）
//
// 通过 resolved 门闩保证每个会话只终结一次：第二个及以后的
// 终结动作返回 false 且不产生任何效果。回调在置位门闩之后、
// 切换到 Exiting 之前同步执行一次。
//
// 返回：
//   - bool: 本次调用是否真正终结了会话
func (s *Session) resolve(result Result, callback func()) bool {
	if s.resolved {
		return false
	}
	s.resolved = true
	s.result = result

	if callback != nil {
		callback()
	}

	// 取消/强制关闭不允许跳过出场动画，始终完整播放
	s.state = StateExiting
	s.elapsed = 0
	return true
}

// update 推进会话状态（内部方法，每个 tick 调用一次）
//
// 参数：
//   - deltaTime: 距上个 tick 的时间（秒）
//
// 返回：
//   - bool: 出场动画是否播放完毕（true 表示会话可以销毁）
func (s *Session) update(deltaTime float64) bool {
	switch s.state {
	case StateEntering:
		s.elapsed += deltaTime
		if s.elapsed >= s.enterDuration {
			s.state = StateActive
			s.elapsed = 0
		}

	case StateActive:
		// 无超时策略：没有用户输入时无限等待

	case StateExiting:
		s.elapsed += deltaTime
		if s.elapsed >= s.exitDuration {
			return true
		}
	}
	return false
}
