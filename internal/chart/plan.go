package chart

import "github.com/esmerado/demographic-analysis-madrid/internal/model"

// MarkKind 图元类型
type MarkKind string

const (
	MarkRect   MarkKind = "rect"
	MarkPath   MarkKind = "path"
	MarkCircle MarkKind = "circle"
)

// Vec 绘图区坐标
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment 三次 Bézier 段
type Segment struct {
	From Vec `json:"from"`
	C1   Vec `json:"c1"`
	C2   Vec `json:"c2"`
	To   Vec `json:"to"`
}

// Mark 一个图元的最终几何与交互信息
//
// 坐标相对于绘图区（已扣除 Margin）。带动画的属性在这里记录终值，起始值见 Animations。
type Mark struct {
	ID     string   `json:"id"`
	Kind   MarkKind `json:"kind"`
	Series string   `json:"series"`
	Label  string   `json:"label"`
	Year   string   `json:"year,omitempty"`
	Value  float64  `json:"value"`

	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`

	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	CX float64 `json:"cx,omitempty"`
	CY float64 `json:"cy,omitempty"`
	R  float64 `json:"r,omitempty"`

	D        string    `json:"d,omitempty"`
	Length   float64   `json:"length,omitempty"`
	Points   []Vec     `json:"points,omitempty"`
	Segments []Segment `json:"segments,omitempty"`

	// HoverOpacity 悬停时的透明度，0 表示悬停不改变透明度
	HoverOpacity float64     `json:"hoverOpacity,omitempty"`
	Tooltip      string      `json:"tooltip,omitempty"`
	Animations   []Animation `json:"animations,omitempty"`
}

// attrs 终态属性
func (m Mark) attrs() map[string]float64 {
	switch m.Kind {
	case MarkRect:
		return map[string]float64{"x": m.X, "y": m.Y, "width": m.Width, "height": m.Height, "opacity": 1}
	case MarkCircle:
		return map[string]float64{"cx": m.CX, "cy": m.CY, "r": m.R, "opacity": 1}
	case MarkPath:
		return map[string]float64{"stroke-dashoffset": 0, "opacity": 1}
	}
	return map[string]float64{"opacity": 1}
}

// Tick 坐标轴刻度
type Tick struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
	Pos   float64 `json:"pos"`
}

// AxisOrient 坐标轴方向
type AxisOrient string

const (
	AxisBottom AxisOrient = "bottom"
	AxisLeft   AxisOrient = "left"
)

// Axis 坐标轴
type Axis struct {
	Orient      AxisOrient `json:"orient"`
	Length      float64    `json:"length"`
	Offset      float64    `json:"offset"`
	Ticks       []Tick     `json:"ticks"`
	LabelRotate float64    `json:"labelRotate,omitempty"`
}

// LegendEntry 图例项
type LegendEntry struct {
	Series string `json:"series"`
	Label  string `json:"label"`
	Color  string `json:"color"`
	Symbol string `json:"symbol"`
}

// DrawPlan 一次渲染的完整几何描述，不依赖任何绘图后端
type DrawPlan struct {
	Type        model.ChartType `json:"type"`
	Title       string          `json:"title"`
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
	Margin      Margin          `json:"margin"`
	InnerWidth  float64         `json:"innerWidth"`
	InnerHeight float64         `json:"innerHeight"`
	MaxValue    float64         `json:"maxValue"`
	Domain      []string        `json:"domain"`
	Axes        []Axis          `json:"axes"`
	Marks       []Mark          `json:"marks"`
	Legend      []LegendEntry   `json:"legend,omitempty"`
}

// MarkByID 按 id 查找图元
func (p *DrawPlan) MarkByID(id string) (Mark, bool) {
	if p == nil {
		return Mark{}, false
	}
	for _, m := range p.Marks {
		if m.ID == id {
			return m, true
		}
	}
	return Mark{}, false
}

// MarksOf 返回指定类型与序列的图元，保持绘制顺序
func (p *DrawPlan) MarksOf(kind MarkKind, series string) []Mark {
	if p == nil {
		return nil
	}
	var out []Mark
	for _, m := range p.Marks {
		if m.Kind == kind && (series == "" || m.Series == series) {
			out = append(out, m)
		}
	}
	return out
}

func newPlan(t model.ChartType, title string, layout Layout) *DrawPlan {
	return &DrawPlan{
		Type:        t,
		Title:       title,
		Width:       layout.Width,
		Height:      layout.Height,
		Margin:      layout.Margin,
		InnerWidth:  layout.InnerWidth(),
		InnerHeight: layout.InnerHeight(),
	}
}

func seriesLabel(in model.ChartInput, series string) string {
	if series == "B" {
		if in.LabelB != "" {
			return in.LabelB
		}
		return "Serie B"
	}
	if in.LabelA != "" {
		return in.LabelA
	}
	return "Serie A"
}
