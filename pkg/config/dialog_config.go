// Package config 提供对话框系统的可调参数配置
//
// 配置以 YAML 格式加载，所有字段都有合理默认值——
// 加载失败或文件缺失时直接使用默认配置，不视为致命错误。
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DialogTimings 过渡动画时长配置
// 入场和出场时长刻意独立：入场带回弹需要稍长，出场利落收尾
type DialogTimings struct {
	EnterDuration float64 `yaml:"enterDuration"` // 入场过渡时长（秒）
	ExitDuration  float64 `yaml:"exitDuration"`  // 出场过渡时长（秒）
}

// DialogLabels 各类按钮的默认文字
type DialogLabels struct {
	Confirm string `yaml:"confirm"` // 确认按钮
	Cancel  string `yaml:"cancel"`  // 取消按钮
	Submit  string `yaml:"submit"`  // 提交按钮（输入对话框）
	Dismiss string `yaml:"dismiss"` // 关闭按钮（提示对话框）
	Never   string `yaml:"never"`   // "不再提示" 勾选项文字
}

// DialogTheme 渲染配色配置
// 颜色为 [R, G, B, A] 四元组，取值 0~255
type DialogTheme struct {
	BackdropAlpha float64  `yaml:"backdropAlpha"` // 遮罩目标不透明度 0.0 ~ 1.0
	PanelColor    [4]uint8 `yaml:"panelColor"`    // 面板背景色
	BorderColor   [4]uint8 `yaml:"borderColor"`   // 面板边框色
	TitleColor    [4]uint8 `yaml:"titleColor"`    // 标题文字色
	MessageColor  [4]uint8 `yaml:"messageColor"`  // 正文文字色
	ButtonColor   [4]uint8 `yaml:"buttonColor"`   // 普通按钮背景色
	DangerColor   [4]uint8 `yaml:"dangerColor"`   // 危险按钮背景色（Destructive 标志）
	ErrorColor    [4]uint8 `yaml:"errorColor"`    // 错误提示标题条颜色
	SuccessColor  [4]uint8 `yaml:"successColor"`  // 成功提示标题条颜色
	InputBgColor  [4]uint8 `yaml:"inputBgColor"`  // 输入框背景色
}

// DialogConfig 对话框系统完整配置
type DialogConfig struct {
	Timings DialogTimings `yaml:"timings"`
	Labels  DialogLabels  `yaml:"labels"`
	Theme   DialogTheme   `yaml:"theme"`
}

// DefaultDialogConfig 返回默认配置
func DefaultDialogConfig() *DialogConfig {
	return &DialogConfig{
		Timings: DialogTimings{
			EnterDuration: 0.25,
			ExitDuration:  0.18,
		},
		Labels: DialogLabels{
			Confirm: "确定",
			Cancel:  "取消",
			Submit:  "提交",
			Dismiss: "确定",
			Never:   "不再提示",
		},
		Theme: DialogTheme{
			BackdropAlpha: 0.6,
			PanelColor:    [4]uint8{42, 38, 34, 255},
			BorderColor:   [4]uint8{148, 120, 72, 255},
			TitleColor:    [4]uint8{255, 236, 160, 255},
			MessageColor:  [4]uint8{230, 225, 215, 255},
			ButtonColor:   [4]uint8{88, 74, 52, 255},
			DangerColor:   [4]uint8{150, 48, 40, 255},
			ErrorColor:    [4]uint8{150, 48, 40, 255},
			SuccessColor:  [4]uint8{64, 128, 56, 255},
			InputBgColor:  [4]uint8{24, 22, 20, 255},
		},
	}
}

// LoadDialogConfig 从 YAML 数据加载配置
//
// 以默认配置为基础，YAML 中出现的字段覆盖默认值，
// 未出现的字段保持默认——允许只写需要调整的部分。
//
// 返回：
//   - *DialogConfig: 加载后的配置
//   - error: YAML 解析失败时返回错误（此时返回的配置为默认值）
func LoadDialogConfig(data []byte) (*DialogConfig, error) {
	cfg := DefaultDialogConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return DefaultDialogConfig(), fmt.Errorf("failed to unmarshal dialog config: %w", err)
	}
	cfg.sanitize()
	return cfg, nil
}

// LoadDialogConfigFile 从文件加载配置
// 文件不存在时返回默认配置，不报错（与存档管理器的降级行为一致）
func LoadDialogConfigFile(path string) (*DialogConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultDialogConfig(), nil
		}
		return DefaultDialogConfig(), fmt.Errorf("failed to read dialog config %s: %w", path, err)
	}
	return LoadDialogConfig(data)
}

// sanitize 将越界字段拉回合法范围
func (c *DialogConfig) sanitize() {
	def := DefaultDialogConfig()
	if c.Timings.EnterDuration <= 0 {
		c.Timings.EnterDuration = def.Timings.EnterDuration
	}
	if c.Timings.ExitDuration <= 0 {
		c.Timings.ExitDuration = def.Timings.ExitDuration
	}
	if c.Theme.BackdropAlpha < 0 {
		c.Theme.BackdropAlpha = 0
	}
	if c.Theme.BackdropAlpha > 1 {
		c.Theme.BackdropAlpha = 1
	}
	if c.Labels.Confirm == "" {
		c.Labels.Confirm = def.Labels.Confirm
	}
	if c.Labels.Cancel == "" {
		c.Labels.Cancel = def.Labels.Cancel
	}
	if c.Labels.Submit == "" {
		c.Labels.Submit = def.Labels.Submit
	}
	if c.Labels.Dismiss == "" {
		c.Labels.Dismiss = def.Labels.Dismiss
	}
	if c.Labels.Never == "" {
		c.Labels.Never = def.Labels.Never
	}
}
