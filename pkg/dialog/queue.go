package dialog

// RequestQueue 对话框请求队列
//
// 先进先出，保持提交顺序，无优先级、无去重、无容量上限
// （调用方负责不要无限制地灌入请求）。
//
// 队列只保存"尚未显示"的请求；当前正在显示的会话不在队列中，
// 由 Sequencer 单独持有。
//
// Story 20.1: 模态对话框系统
type RequestQueue struct {
	pending []*Request
}

// NewRequestQueue 创建空队列
func NewRequestQueue() *RequestQueue {
	return &RequestQueue{
		pending: make([]*Request, 0, 4),
	}
}

// Push 将请求追加到队尾
// 永远成功，不做任何校验或拒绝
func (q *RequestQueue) Push(req *Request) {
	q.pending = append(q.pending, req)
}

// PopNext 取出并移除队首请求
//
// 返回：
//   - *Request: 队首请求，队列为空时为 nil
//   - bool: 队列非空时为 true
func (q *RequestQueue) PopNext() (*Request, bool) {
	if len(q.pending) == 0 {
		return nil, false
	}
	req := q.pending[0]
	q.pending = q.pending[1:]
	return req, true
}

// Clear 丢弃所有排队中的请求
//
// 只影响尚未显示的请求，不影响当前活动会话。
//
// 返回：
//   - int: 被丢弃的请求数量
func (q *RequestQueue) Clear() int {
	n := len(q.pending)
	q.pending = q.pending[:0]
	return n
}

// Len 返回排队中的请求数量
func (q *RequestQueue) Len() int {
	return len(q.pending)
}
