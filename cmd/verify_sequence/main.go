// 对话框序列器无头验证工具
//
// 不开窗口，直接驱动序列器走一遍完整场景：
//   - 连续提交三个请求，验证第一个立即显示、其余按序排队
//   - 入场过渡期间 ESC 无效、ForceClose 有效
//   - Active 状态下重复终结动作只生效一次
//   - 会话关闭后自动提升下一个排队请求
//   - 数字输入的钳制与非法输入丢弃
//
// 用法：go run ./cmd/verify_sequence
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/dialogkit/pkg/dialog"
)

var verbose = flag.Bool("verbose", false, "显示序列器内部日志")

// tick 模拟时长（秒），与 60FPS 对应
const tickDelta = 1.0 / 60.0

var failures int

// check 记录一条验证结果
func check(name string, ok bool) {
	if ok {
		fmt.Printf("  ✅ %s\n", name)
	} else {
		failures++
		fmt.Printf("  ❌ %s\n", name)
	}
}

// stepUntilActive 推进序列器直到当前会话进入 Active 状态
func stepUntilActive(seq *dialog.Sequencer) {
	for i := 0; i < 600; i++ {
		s := seq.ActiveSession()
		if s == nil || s.State() == dialog.StateActive {
			return
		}
		seq.Update(tickDelta)
	}
}

// stepUntilClosed 推进序列器直到当前会话销毁（或被下一个会话替换）
func stepUntilClosed(seq *dialog.Sequencer, current *dialog.Session) {
	for i := 0; i < 600; i++ {
		if seq.ActiveSession() != current {
			return
		}
		seq.Update(tickDelta)
	}
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	seq := dialog.NewSequencer(dialog.Options{
		EnterDuration: 0.1,
		ExitDuration:  0.1,
	})

	var closeLog []string
	seq.OnClosed(func(kind dialog.Kind, result dialog.Result) {
		closeLog = append(closeLog, fmt.Sprintf("%s/%s", kind, result))
	})

	// --- 场景 1：提交顺序与排队 ---
	fmt.Println("场景 1: 提交顺序与排队")
	confirmed := false
	seq.ShowConfirm("first", "", func() { confirmed = true }, nil)
	seq.ShowAlert("second", "", nil)
	seq.ShowAlert("third", "", nil)

	first := seq.ActiveSession()
	check("第一个请求立即提升为会话", first != nil && first.State() == dialog.StateEntering)
	check("其余两个请求排队", seq.QueueLen() == 2)

	// --- 场景 2：入场过渡期间的输入 ---
	fmt.Println("场景 2: 入场过渡期间的输入")
	seq.CancelKey()
	check("Entering 状态下 ESC 无效", seq.ActiveSession() == first && first.State() == dialog.StateEntering)

	stepUntilActive(seq)
	check("入场过渡完成后进入 Active", first.State() == dialog.StateActive)

	// --- 场景 3：终结动作只生效一次 ---
	fmt.Println("场景 3: 终结动作只生效一次")
	seq.Confirm()
	check("确认后进入 Exiting", first.State() == dialog.StateExiting)
	check("确认回调被调用", confirmed)

	resultBefore := first.Result()
	seq.CancelKey() // 第二个终结动作应当是空操作
	check("重复终结动作不改变结果", first.Result() == resultBefore && first.Result() == dialog.ResultConfirmed)

	// --- 场景 4：关闭后自动提升 ---
	fmt.Println("场景 4: 关闭后自动提升")
	stepUntilClosed(seq, first)
	second := seq.ActiveSession()
	check("关闭事件已触发", len(closeLog) == 1 && closeLog[0] == "Confirm/Confirmed")
	check("下一个排队请求被提升", second != nil && second.Request().Alert.Title == "second")
	check("队列剩余一个请求", seq.QueueLen() == 1)

	// --- 场景 5：ForceClose 在 Entering 状态下生效 ---
	fmt.Println("场景 5: ForceClose")
	seq.ForceClose()
	check("Entering 状态下 ForceClose 生效", second.State() == dialog.StateExiting)
	check("Alert 的取消路径结果为 Dismissed", second.Result() == dialog.ResultDismissed)

	stepUntilClosed(seq, second)
	third := seq.ActiveSession()
	check("第三个请求被提升", third != nil && third.Request().Alert.Title == "third")

	// --- 场景 6：ClearQueue 不影响活动会话 ---
	fmt.Println("场景 6: ClearQueue")
	seq.ShowAlert("queued-1", "", nil)
	seq.ShowAlert("queued-2", "", nil)
	cleared := seq.ClearQueue()
	check("清空两个排队请求", cleared == 2 && seq.QueueLen() == 0)
	check("活动会话不受影响", seq.ActiveSession() == third)

	stepUntilActive(seq)
	seq.Dismiss()
	stepUntilClosed(seq, third)
	check("队列清空后没有新会话", seq.ActiveSession() == nil)

	// --- 场景 7：数字输入 ---
	fmt.Println("场景 7: 数字输入")
	var submitted []float64
	seq.ShowNumberInput("wager", "", 0, 10, 5, func(v float64) { submitted = append(submitted, v) }, nil)
	stepUntilActive(seq)
	numberSession := seq.ActiveSession()
	seq.SubmitInput("15")
	stepUntilClosed(seq, numberSession)
	check("超出范围的输入被钳制到 10", len(submitted) == 1 && submitted[0] == 10)

	seq.ShowNumberInput("wager", "", 0, 10, 5, func(v float64) { submitted = append(submitted, v) }, nil)
	stepUntilActive(seq)
	numberSession = seq.ActiveSession()
	seq.SubmitInput("abc")
	check("非法输入不触发回调", len(submitted) == 1)
	check("非法输入后对话框按 Confirmed 关闭", numberSession.Result() == dialog.ResultConfirmed)
	stepUntilClosed(seq, numberSession)

	// --- 汇总 ---
	fmt.Println()
	if failures > 0 {
		fmt.Printf("验证失败: %d 项未通过\n", failures)
		os.Exit(1)
	}
	fmt.Println("全部验证通过 ✅")
}
