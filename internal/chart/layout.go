package chart

// Margin 绘图区外边距
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Layout 图表尺寸与动画时长
type Layout struct {
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	Margin         Margin  `json:"margin"`
	BarDurationMs  int     `json:"barDurationMs"`
	LineDurationMs int     `json:"lineDurationMs"`
}

// DefaultLayout 800x400，底部留出旋转后的年份标签
func DefaultLayout() Layout {
	return Layout{
		Width:          800,
		Height:         400,
		Margin:         Margin{Top: 40, Right: 30, Bottom: 80, Left: 70},
		BarDurationMs:  1000,
		LineDurationMs: 1500,
	}
}

// NewLayout 按外部尺寸创建布局，非正值使用默认值
func NewLayout(width, height, barMs, lineMs int) Layout {
	l := DefaultLayout()
	if width > 0 {
		l.Width = float64(width)
	}
	if height > 0 {
		l.Height = float64(height)
	}
	if barMs > 0 {
		l.BarDurationMs = barMs
	}
	if lineMs > 0 {
		l.LineDurationMs = lineMs
	}
	return l
}

// InnerWidth 绘图区宽度
func (l Layout) InnerWidth() float64 {
	return l.Width - l.Margin.Left - l.Margin.Right
}

// InnerHeight 绘图区高度
func (l Layout) InnerHeight() float64 {
	return l.Height - l.Margin.Top - l.Margin.Bottom
}

func (l Layout) usable() bool {
	return l.InnerWidth() > 0 && l.InnerHeight() > 0
}

const (
	// ColorA 第一组序列颜色
	ColorA = "#4f46e5"
	// ColorB 第二组序列颜色
	ColorB = "#ef4444"
)

func seriesColor(series string) string {
	if series == "B" {
		return ColorB
	}
	return ColorA
}
