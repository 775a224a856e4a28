// Package prefs 提供对话框偏好的跨平台持久化
//
// 目前唯一的偏好是"不再提示"抑制键集合：用户在带勾选项的
// 对话框中勾选"不再提示"后，对应的抑制键被记住，后续同键
// 请求不再弹出。
package prefs

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// suppressedKeys 持久化的数据结构
type suppressedKeys struct {
	Keys []string `yaml:"keys"` // 已抑制的键列表
}

// SuppressManager "不再提示"抑制键管理器
// 负责抑制键的加载、保存和内存管理
//
// 实现 dialog.SuppressionStore 接口。
//
// Story 21.1: 对话框偏好持久化
type SuppressManager struct {
	gdataManager *gdata.Manager  // gdata 跨平台存储管理器，可为 nil（降级模式，仅内存）
	keys         map[string]bool // 已抑制的键集合
}

// 存储路径常量
const (
	prefsObject      = "dialog_prefs"
	suppressProperty = "suppressed"
)

// NewSuppressManager 创建新的抑制键管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存记忆）
//
// 返回：
//   - *SuppressManager: 管理器实例
//   - error: 如果加载已保存数据失败返回错误（不影响创建）
func NewSuppressManager(gdataManager *gdata.Manager) (*SuppressManager, error) {
	sm := &SuppressManager{
		gdataManager: gdataManager,
		keys:         make(map[string]bool),
	}

	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，从空集合开始
		log.Printf("[SuppressManager] Warning: Failed to load suppressed keys: %v (starting empty)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载抑制键集合
//
// 如果 gdataManager 为 nil 或数据不存在，从空集合开始
//
// 返回：
//   - error: 如果反序列化失败返回错误
func (sm *SuppressManager) Load() error {
	sm.keys = make(map[string]bool)

	// 降级模式：无法持久化
	if sm.gdataManager == nil {
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(prefsObject, suppressProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(prefsObject, suppressProperty)
	if err != nil {
		return fmt.Errorf("failed to load suppressed keys: %w", err)
	}

	var stored suppressedKeys
	if err := yaml.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("failed to unmarshal suppressed keys: %w", err)
	}

	for _, key := range stored.Keys {
		sm.keys[key] = true
	}
	log.Printf("[SuppressManager] Loaded %d suppressed key(s)", len(sm.keys))
	return nil
}

// Save 保存抑制键集合到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
//
// 返回：
//   - error: 如果序列化或保存失败返回错误
func (sm *SuppressManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	stored := suppressedKeys{Keys: make([]string, 0, len(sm.keys))}
	for key := range sm.keys {
		stored.Keys = append(stored.Keys, key)
	}

	data, err := yaml.Marshal(&stored)
	if err != nil {
		return fmt.Errorf("failed to marshal suppressed keys: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(prefsObject, suppressProperty, data); err != nil {
		return fmt.Errorf("failed to save suppressed keys: %w", err)
	}

	return nil
}

// IsSuppressed 查询某个抑制键是否已被记住
func (sm *SuppressManager) IsSuppressed(key string) bool {
	return sm.keys[key]
}

// Suppress 记住一个抑制键并立即持久化
// 持久化失败只记录警告——抑制在本次会话内仍然生效
func (sm *SuppressManager) Suppress(key string) {
	if key == "" {
		return
	}
	if sm.keys[key] {
		return
	}
	sm.keys[key] = true

	if err := sm.Save(); err != nil {
		log.Printf("[SuppressManager] Warning: Failed to persist suppress key %q: %v", key, err)
	}
}

// Reset 清空所有抑制键并持久化
// 用于设置面板中的"恢复所有提示"功能
func (sm *SuppressManager) Reset() error {
	sm.keys = make(map[string]bool)
	if err := sm.Save(); err != nil {
		return fmt.Errorf("failed to reset suppressed keys: %w", err)
	}
	log.Printf("[SuppressManager] All suppressed keys cleared")
	return nil
}

// Count 返回已抑制的键数量
func (sm *SuppressManager) Count() int {
	return len(sm.keys)
}
