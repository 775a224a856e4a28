package utils

import "testing"

// TestPointInRect 测试点与矩形的命中判定
func TestPointInRect(t *testing.T) {
	tests := []struct {
		name     string
		x, y     int
		rx, ry   float64
		rw, rh   float64
		expected bool
	}{
		{"内部", 50, 50, 0, 0, 100, 100, true},
		{"左上角", 0, 0, 0, 0, 100, 100, true},
		{"右边界外", 100, 50, 0, 0, 100, 100, false},
		{"下边界外", 50, 100, 0, 0, 100, 100, false},
		{"左侧外", -1, 50, 0, 0, 100, 100, false},
		{"偏移矩形内部", 120, 220, 100, 200, 50, 50, true},
		{"偏移矩形外部", 99, 220, 100, 200, 50, 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PointInRect(tt.x, tt.y, tt.rx, tt.ry, tt.rw, tt.rh)
			if result != tt.expected {
				t.Errorf("PointInRect(%d, %d, %v, %v, %v, %v) = %v, 期望 %v",
					tt.x, tt.y, tt.rx, tt.ry, tt.rw, tt.rh, result, tt.expected)
			}
		})
	}
}
