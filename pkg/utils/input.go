package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 指针输入辅助函数
// 统一处理鼠标点击和触摸输入（桌面 + 移动端），
// 对话框交互系统只关心"指针刚刚按下在哪里"这一件事。

// IsPointerJustPressed 检查是否刚刚按下指针（触摸或鼠标）
// 返回是否按下以及按下位置
func IsPointerJustPressed() (bool, int, int) {
	// 优先检查触摸输入（移动设备）
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	// 其次检查鼠标输入（桌面设备）
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// GetPointerPosition 获取当前指针位置（触摸或鼠标）
// 优先返回触摸位置，如果没有触摸则返回鼠标位置
// 用于按钮悬停检测
func GetPointerPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}

	return ebiten.CursorPosition()
}

// PointInRect 判断点 (x, y) 是否落在矩形内
// 矩形由左上角坐标和宽高描述
func PointInRect(x, y int, rectX, rectY, rectW, rectH float64) bool {
	fx, fy := float64(x), float64(y)
	return fx >= rectX && fx < rectX+rectW && fy >= rectY && fy < rectY+rectH
}
