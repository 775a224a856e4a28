// Package dialog 提供模态对话框排队与生命周期管理
//
// 该包是纯状态机，不涉及任何渲染逻辑。渲染由 Presenter 接口的实现负责
// （参见 pkg/systems），状态机本身可以在无窗口环境下完整测试。
//
// Story 20.1: 模态对话框系统
package dialog

import "time"

// Kind 对话框类型
type Kind int

const (
	// KindConfirm 确认对话框（确认/取消两个按钮）
	KindConfirm Kind = iota
	// KindInput 输入对话框（文本框 + 提交/取消按钮）
	KindInput
	// KindChoice 多选项对话框（纵向排列的选项按钮）
	KindChoice
	// KindAlert 提示对话框（单个关闭按钮）
	KindAlert
)

// String 返回类型的可读名称（用于日志）
func (k Kind) String() string {
	switch k {
	case KindConfirm:
		return "Confirm"
	case KindInput:
		return "Input"
	case KindChoice:
		return "Choice"
	case KindAlert:
		return "Alert"
	default:
		return "Unknown"
	}
}

// Result 会话结束时的结果标签
type Result int

const (
	// ResultConfirmed 用户确认（或输入提交）
	ResultConfirmed Result = iota
	// ResultCancelled 用户取消（取消按钮、ESC 键或 ForceClose）
	ResultCancelled
	// ResultDismissed 提示对话框被关闭
	ResultDismissed
	// ResultOptionSelected 多选项对话框中某个选项被选中
	ResultOptionSelected
)

// String 返回结果标签的可读名称（用于日志）
func (r Result) String() string {
	switch r {
	case ResultConfirmed:
		return "Confirmed"
	case ResultCancelled:
		return "Cancelled"
	case ResultDismissed:
		return "Dismissed"
	case ResultOptionSelected:
		return "OptionSelected"
	default:
		return "Unknown"
	}
}

// Severity 提示对话框的级别，决定渲染时的配色
type Severity int

const (
	// SeverityInfo 普通提示
	SeverityInfo Severity = iota
	// SeverityError 错误提示
	SeverityError
	// SeveritySuccess 成功提示
	SeveritySuccess
)

// ValidationMode 输入对话框的校验模式
type ValidationMode int

const (
	// ValidationFreeText 自由文本，不做校验
	ValidationFreeText ValidationMode = iota
	// ValidationNumeric 数字输入，解析后限制在 [Min, Max] 范围内
	ValidationNumeric
)

// ConfirmData 确认对话框数据
type ConfirmData struct {
	Title        string
	Message      string
	ConfirmLabel string // 确认按钮文字
	CancelLabel  string // 取消按钮文字
	Destructive  bool   // 危险操作标志（渲染时确认按钮使用警示配色）
	OnConfirm    func() // 确认回调（可为 nil）
	OnCancel     func() // 取消回调（可为 nil）
}

// InputData 输入对话框数据
type InputData struct {
	Title        string
	Placeholder  string
	DefaultValue string
	SubmitLabel  string
	CancelLabel  string
	Validation   ValidationMode

	// Min/Max 仅在 ValidationNumeric 模式下生效，
	// 解析出的数值会被限制在该范围内
	Min float64
	Max float64

	OnSubmit       func(value string)  // 自由文本提交回调
	OnSubmitNumber func(value float64) // 数字提交回调（数字模式）
	OnCancel       func()              // 取消回调（可为 nil）
}

// ChoiceOption 多选项对话框中的单个选项
type ChoiceOption struct {
	Label       string
	Destructive bool   // 危险选项标志
	OnSelect    func() // 选中回调
}

// ChoiceData 多选项对话框数据
type ChoiceData struct {
	Title    string
	Message  string
	Options  []ChoiceOption
	OnCancel func() // 取消回调（ESC 键触发，可为 nil）
}

// AlertData 提示对话框数据
type AlertData struct {
	Title        string
	Message      string
	DismissLabel string
	Severity     Severity
	OnDismiss    func() // 关闭回调（可为 nil）
}

// Request 一次对话框显示请求
//
// Request 是四种对话框类型的标签联合：Kind 指明类型，
// 对应的数据指针非 nil，其余为 nil。入队后不可修改。
//
// SuppressKey 为可选的"不再提示"抑制键：
//   - 提交时如果该键已被抑制，请求不会显示，直接走确认/关闭路径
//   - 会话结束时如果 RememberChoice 被勾选，该键会被持久化抑制
type Request struct {
	Kind        Kind
	Confirm     *ConfirmData
	Input       *InputData
	Choice      *ChoiceData
	Alert       *AlertData
	SuppressKey string
	CreatedAt   time.Time
}

// title 返回请求的标题（用于日志，穷尽匹配四种类型）
func (r *Request) title() string {
	switch r.Kind {
	case KindConfirm:
		return r.Confirm.Title
	case KindInput:
		return r.Input.Title
	case KindChoice:
		return r.Choice.Title
	case KindAlert:
		return r.Alert.Title
	default:
		return ""
	}
}
