package dialog

import "testing"

// TestRequestQueue_FIFO 测试队列保持提交顺序
func TestRequestQueue_FIFO(t *testing.T) {
	q := NewRequestQueue()

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		q.Push(&Request{
			Kind:  KindAlert,
			Alert: &AlertData{Title: title},
		})
	}

	if q.Len() != 3 {
		t.Fatalf("Expected queue length 3, got %d", q.Len())
	}

	for i, want := range titles {
		req, ok := q.PopNext()
		if !ok {
			t.Fatalf("Expected request at position %d, queue was empty", i)
		}
		if req.Alert.Title != want {
			t.Errorf("Position %d: expected %q, got %q", i, want, req.Alert.Title)
		}
	}

	if _, ok := q.PopNext(); ok {
		t.Error("Expected PopNext to report empty after draining the queue")
	}
}

// TestRequestQueue_PopEmpty 测试空队列的 PopNext
func TestRequestQueue_PopEmpty(t *testing.T) {
	q := NewRequestQueue()

	req, ok := q.PopNext()
	if ok {
		t.Error("Expected ok=false on empty queue")
	}
	if req != nil {
		t.Error("Expected nil request on empty queue")
	}
}

// TestRequestQueue_Clear 测试清空队列
func TestRequestQueue_Clear(t *testing.T) {
	q := NewRequestQueue()
	q.Push(&Request{Kind: KindAlert, Alert: &AlertData{Title: "a"}})
	q.Push(&Request{Kind: KindAlert, Alert: &AlertData{Title: "b"}})

	cleared := q.Clear()
	if cleared != 2 {
		t.Errorf("Expected Clear to report 2 discarded requests, got %d", cleared)
	}
	if q.Len() != 0 {
		t.Errorf("Expected empty queue after Clear, got length %d", q.Len())
	}

	// 清空后仍然可以正常入队
	q.Push(&Request{Kind: KindAlert, Alert: &AlertData{Title: "c"}})
	if q.Len() != 1 {
		t.Errorf("Expected queue to accept requests after Clear, got length %d", q.Len())
	}
}
