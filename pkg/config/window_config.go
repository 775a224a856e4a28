package config

// 逻辑屏幕尺寸
// 布局常量相对该尺寸设计，实际窗口缩放由 Ebitengine 处理
const (
	WindowWidth  = 800
	WindowHeight = 600
)
