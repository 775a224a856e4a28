// Package utils 提供通用工具函数
package utils

import "math"

// Easing Functions (缓动函数)
//
// 缓动函数用于控制过渡动画的速度曲线，使动画看起来更自然。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值。
// 除 EaseOutBack 外返回值均在 [0, 1] 内（EaseOutBack 会轻微超出 1.0）。
//
// 参考：https://easings.net/

// EaseLinear 线性缓动（无缓动）
// 返回值 = 输入值（匀速运动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutQuad 二次方缓出
// 特点：开始较快，结束慢（适合遮罩淡入）
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInOutCubic 三次方缓入缓出
// 特点：开始慢，中间快，结束慢（适合出场收缩动画）
// 公式：
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutBack 回弹缓出
// 特点：冲过目标值（约超出 10%）后回落，适合对话框"弹出"入场
// 公式：f(t) = 1 + c3·(t-1)³ + c1·(t-1)²，其中 c1=1.70158, c3=c1+1
func EaseOutBack(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1

	u := t - 1
	return 1 + c3*u*u*u + c1*u*u
}

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
