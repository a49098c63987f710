package chart

import (
	"fmt"
	"html"
	"sync"
)

const (
	TooltipOffsetX = 15
	TooltipOffsetY = -40
)

// TooltipState 浮层当前状态，X/Y 为浮层左上角
type TooltipState struct {
	Visible bool    `json:"visible"`
	HTML    string  `json:"html"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// TooltipController 全局唯一的悬浮提示
type TooltipController struct {
	mu    sync.Mutex
	state TooltipState
}

// NewTooltipController 创建独立的提示控制器（测试或离屏渲染使用）
func NewTooltipController() *TooltipController {
	return &TooltipController{}
}

var (
	sharedTooltip     *TooltipController
	sharedTooltipOnce sync.Once
)

// SharedTooltip 进程内共享的提示控制器，首次调用时创建
func SharedTooltip() *TooltipController {
	sharedTooltipOnce.Do(func() {
		sharedTooltip = NewTooltipController()
	})
	return sharedTooltip
}

// Show 显示内容并定位到指针附近
func (t *TooltipController) Show(content string, x, y float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = TooltipState{
		Visible: true,
		HTML:    content,
		X:       x + TooltipOffsetX,
		Y:       y + TooltipOffsetY,
	}
}

// Move 跟随指针
func (t *TooltipController) Move(x, y float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.X = x + TooltipOffsetX
	t.state.Y = y + TooltipOffsetY
}

// Hide 隐藏，保留最后的内容
func (t *TooltipController) Hide() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Visible = false
}

// State 当前状态快照
func (t *TooltipController) State() TooltipState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// TooltipHTML 年份 + 序列名 + 分组后的数值
func TooltipHTML(year, label, color string, value float64) string {
	return fmt.Sprintf(
		`<div style="font-weight: bold; margin-bottom: 4px;">Año: %s</div><div style="color: %s">● %s: %s</div>`,
		html.EscapeString(year), color, html.EscapeString(label), FormatValue(value),
	)
}
