// Package app 提供演示应用的核心包装器
//
// 该包把对话框系统的完整装配（配置加载、偏好存储、序列器、
// 渲染与交互系统）从 main 包提取出来，演示库的推荐接线方式。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/dialogkit/pkg/config"
	"github.com/decker502/dialogkit/pkg/dialog"
	"github.com/decker502/dialogkit/pkg/prefs"
	"github.com/decker502/dialogkit/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/quasilyte/gdata/v2"
	"golang.org/x/image/font/basicfont"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 对话框配置文件路径（YAML），为空则使用默认配置
	ConfigPath string
	// AppName gdata 存储使用的应用名，为空则禁用"不再提示"持久化
	AppName string
}

// App 是演示应用的核心包装器，实现 ebiten.Game 接口
//
// 序列器是显式实例，由 App 创建并注入各系统——
// 不存在全局单例，测试时可以为每个用例创建独立实例。
type App struct {
	seq          *dialog.Sequencer
	inputSystem  *systems.DialogInputSystem
	renderSystem *systems.DialogRenderSystem
	face         text.Face

	// 最近一次关闭事件的描述（演示界面显示用）
	lastClosed string
	// 数字输入的最近提交值（演示界面显示用）
	lastNumber string
}

// NewApp 创建并初始化演示应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 加载对话框配置（文件缺失时降级到默认值）
	dialogCfg, err := config.LoadDialogConfigFile(cfg.ConfigPath)
	if err != nil {
		log.Printf("[App] Warning: %v (using default dialog config)", err)
	}

	// 演示内置的是 ASCII 字体（basicfont），默认的中文按钮文字
	// 渲染不出来，这里换成英文。实际项目注入自己的字体后无需覆盖。
	dialogCfg.Labels = config.DialogLabels{
		Confirm: "OK",
		Cancel:  "Cancel",
		Submit:  "Submit",
		Dismiss: "OK",
		Never:   "Don't show again",
	}

	// 初始化"不再提示"偏好存储（gdata 打开失败时降级为仅内存）
	var suppressStore *prefs.SuppressManager
	if cfg.AppName != "" {
		gdataManager, err := gdata.Open(gdata.Config{AppName: cfg.AppName})
		if err != nil {
			log.Printf("[App] Warning: gdata unavailable: %v (suppression is memory-only)", err)
			gdataManager = nil
		}
		suppressStore, err = prefs.NewSuppressManager(gdataManager)
		if err != nil {
			log.Printf("[App] Warning: %v", err)
		}
	}

	// 创建序列器并接线
	seq := dialog.NewSequencer(dialog.Options{
		EnterDuration: dialogCfg.Timings.EnterDuration,
		ExitDuration:  dialogCfg.Timings.ExitDuration,
		ConfirmLabel:  dialogCfg.Labels.Confirm,
		CancelLabel:   dialogCfg.Labels.Cancel,
		SubmitLabel:   dialogCfg.Labels.Submit,
		DismissLabel:  dialogCfg.Labels.Dismiss,
	})
	if suppressStore != nil {
		seq.SetSuppressionStore(suppressStore)
	}

	face := text.NewGoXFace(basicfont.Face7x13)
	inputSystem := systems.NewDialogInputSystem(seq, dialogCfg, config.WindowWidth, config.WindowHeight)
	renderSystem := systems.NewDialogRenderSystem(seq, inputSystem, dialogCfg, face, config.WindowWidth, config.WindowHeight)
	seq.SetPresenter(inputSystem)

	app := &App{
		seq:          seq,
		inputSystem:  inputSystem,
		renderSystem: renderSystem,
		face:         face,
	}

	// 关闭事件订阅：记录最近一次结果供演示界面显示
	seq.OnClosed(func(kind dialog.Kind, result dialog.Result) {
		app.lastClosed = fmt.Sprintf("%s -> %s", kind, result)
	})

	log.Printf("[App] Dialog system initialized (enter=%.2fs exit=%.2fs)",
		dialogCfg.Timings.EnterDuration, dialogCfg.Timings.ExitDuration)
	return app, nil
}

// Update 更新应用逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	deltaTime := 1.0 / 60.0

	a.inputSystem.Update(deltaTime)
	a.seq.Update(deltaTime)

	// 演示触发键（对话框显示期间屏蔽，避免误触发排队一堆请求）
	if !a.seq.IsDialogActive() {
		a.handleDemoKeys()
	} else if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		// F 键演示 ForceClose（Entering/Active 状态下都生效）
		a.seq.ForceClose()
	}

	return nil
}

// handleDemoKeys 处理演示触发键
func (a *App) handleDemoKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		a.seq.ShowConfirm("Delete save?", "The save file will be removed.",
			func() { log.Printf("[Demo] confirmed") },
			func() { log.Printf("[Demo] cancelled") })

	case inpututil.IsKeyJustPressed(ebiten.Key2):
		a.seq.ShowDestructiveConfirm("Abandon run?", "All progress in this run will be lost.",
			func() { log.Printf("[Demo] abandoned") }, nil)

	case inpututil.IsKeyJustPressed(ebiten.Key3):
		a.seq.ShowInput("Rename profile", "enter a name", "Player1",
			func(value string) { log.Printf("[Demo] renamed to %q", value) }, nil)

	case inpututil.IsKeyJustPressed(ebiten.Key4):
		a.seq.ShowNumberInput("Wager amount", "0 - 100", 0, 100, 25,
			func(value float64) {
				a.lastNumber = fmt.Sprintf("%.0f", value)
				log.Printf("[Demo] wagered %v", value)
			}, nil)

	case inpututil.IsKeyJustPressed(ebiten.Key5):
		a.seq.ShowChoice("Difficulty", "Pick a difficulty for the next run.",
			[]dialog.ChoiceOption{
				{Label: "Casual", OnSelect: func() { log.Printf("[Demo] casual") }},
				{Label: "Normal", OnSelect: func() { log.Printf("[Demo] normal") }},
				{Label: "Brutal", Destructive: true, OnSelect: func() { log.Printf("[Demo] brutal") }},
			}, nil)

	case inpututil.IsKeyJustPressed(ebiten.Key6):
		a.seq.ShowError("Connection lost", "Could not reach the server.", nil)

	case inpututil.IsKeyJustPressed(ebiten.Key7):
		a.seq.ShowSuccess("Saved", "Your progress has been saved.", nil)

	case inpututil.IsKeyJustPressed(ebiten.Key8):
		a.seq.ShowConfirmOnce("demo.tutorial-hint", "Tutorial hint",
			"Check the remember box, confirm, and press 8 again.",
			func() { log.Printf("[Demo] hint acknowledged") }, nil)

	case inpututil.IsKeyJustPressed(ebiten.KeyQ):
		// 连续提交三个请求：第一个立即显示，其余排队
		a.seq.ShowAlert("First", "Shown immediately.", nil)
		a.seq.ShowAlert("Second", "Was queued behind the first.", nil)
		a.seq.ShowAlert("Third", "Was queued behind the second.", nil)
	}
}

// Draw 绘制应用画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 34, G: 40, B: 38, A: 255})

	a.drawLine(screen, 24, 24, "dialogkit demo", color.RGBA{R: 255, G: 236, B: 160, A: 255})
	lines := []string{
		"1: confirm   2: destructive confirm   3: text input   4: number input",
		"5: choice    6: error alert           7: success alert 8: confirm-once",
		"Q: queue three alerts   F: force close while a dialog is up   ESC: cancel",
	}
	y := 52.0
	for _, line := range lines {
		a.drawLine(screen, 24, y, line, color.RGBA{R: 200, G: 200, B: 195, A: 255})
		y += 18
	}

	status := fmt.Sprintf("active: %v   queued: %d", a.seq.IsDialogActive(), a.seq.QueueLen())
	if session := a.seq.ActiveSession(); session != nil {
		status = fmt.Sprintf("active: %s (%s)   queued: %d", session.Kind(), session.State(), a.seq.QueueLen())
	}
	a.drawLine(screen, 24, y+10, status, color.RGBA{R: 160, G: 200, B: 255, A: 255})
	if a.lastClosed != "" {
		a.drawLine(screen, 24, y+30, "last closed: "+a.lastClosed, color.RGBA{R: 160, G: 255, B: 180, A: 255})
	}
	if a.lastNumber != "" {
		a.drawLine(screen, 24, y+50, "last number: "+a.lastNumber, color.RGBA{R: 160, G: 255, B: 180, A: 255})
	}

	// 对话框最后绘制，覆盖在演示界面之上
	a.renderSystem.Draw(screen)
}

// drawLine 绘制一行演示文字
func (a *App) drawLine(screen *ebiten.Image, x, y float64, str string, c color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, str, a.face, op)
}

// Layout 返回应用的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// Sequencer 返回序列器实例（测试与外部接线用）
func (a *App) Sequencer() *dialog.Sequencer {
	return a.seq
}
