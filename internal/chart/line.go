package chart

import (
	"fmt"
	"math"
	"sort"

	"github.com/esmerado/demographic-analysis-madrid/internal/model"
	"github.com/esmerado/demographic-analysis-madrid/internal/parser"
)

const (
	lineStrokeWidth = 3
	dotRadius       = 5
	lineTicks       = 10
)

type yearPoint struct {
	year  int
	label string
	value float64
}

type lineSeries struct {
	key    string
	points []yearPoint
}

// numericSeries 解析年份并按年份升序稳定排序，无法解析的行被跳过
func numericSeries(s model.Series) []yearPoint {
	out := make([]yearPoint, 0, len(s))
	for _, p := range s {
		y, ok := parser.ParseYear(p.Year)
		if !ok {
			continue
		}
		out = append(out, yearPoint{year: y, label: p.Year, value: p.Value})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].year < out[j].year })
	return out
}

// ComputeLinePlan 多序列折线图
//
// X 轴范围只取自 SeriesA 的年份，Y 轴覆盖两个序列的最大值。
func ComputeLinePlan(in model.ChartInput, layout Layout) (*DrawPlan, error) {
	if len(in.SeriesA) == 0 || !layout.usable() {
		return nil, model.ErrRenderSkipped
	}
	a := numericSeries(in.SeriesA)
	if len(a) == 0 {
		return nil, model.ErrRenderSkipped
	}
	series := []lineSeries{{key: "A", points: a}}
	if in.IsComparison() {
		series = append(series, lineSeries{key: "B", points: numericSeries(in.SeriesB)})
	}

	minYear, maxYear := a[0].year, a[len(a)-1].year
	maxValue := 0.0
	for _, s := range series {
		for _, p := range s.points {
			maxValue = math.Max(maxValue, p.value)
		}
	}

	w, h := layout.InnerWidth(), layout.InnerHeight()
	x := NewLinearScale(float64(minYear), float64(maxYear), 0, w)
	y := NewLinearScale(0, maxValue, h, 0).Nice(lineTicks)

	plan := newPlan(model.ChartTypeLine, in.Title, layout)
	plan.MaxValue = maxValue
	for _, p := range a {
		plan.Domain = append(plan.Domain, p.label)
	}

	for _, s := range series {
		label := seriesLabel(in, s.key)
		color := seriesColor(s.key)

		pts := make([]Vec, 0, len(s.points))
		for _, p := range s.points {
			pts = append(pts, Vec{X: x.Map(float64(p.year)), Y: y.Map(p.value)})
		}
		segs := MonotoneX(pts)
		length := PathLength(segs)
		duration := layout.LineDurationMs
		if length == 0 {
			duration = 0
		}
		plan.Marks = append(plan.Marks, Mark{
			ID:          "line-" + s.key,
			Kind:        MarkPath,
			Series:      s.key,
			Label:       label,
			Stroke:      color,
			StrokeWidth: lineStrokeWidth,
			D:           PathD(pts, segs),
			Length:      length,
			Points:      pts,
			Segments:    segs,
			Animations: []Animation{
				{Attr: "stroke-dashoffset", From: length, To: 0, DurationMs: duration, Easing: EaseCubicInOut},
			},
		})
		for i, p := range s.points {
			plan.Marks = append(plan.Marks, Mark{
				ID:          fmt.Sprintf("dot-%s-%d", s.key, i),
				Kind:        MarkCircle,
				Series:      s.key,
				Label:       label,
				Year:        p.label,
				Value:       p.value,
				Fill:        color,
				Stroke:      "#ffffff",
				StrokeWidth: 2,
				CX:          pts[i].X,
				CY:          pts[i].Y,
				R:           dotRadius,
				Tooltip:     TooltipHTML(p.label, label, color, p.value),
			})
		}
	}

	bottom := Axis{Orient: AxisBottom, Length: w, Offset: h}
	seen := make(map[float64]bool)
	for _, v := range x.Ticks(lineTicks) {
		v = math.Round(v)
		if seen[v] || v < float64(minYear) || v > float64(maxYear) {
			continue
		}
		seen[v] = true
		bottom.Ticks = append(bottom.Ticks, Tick{Value: v, Label: FormatYear(v), Pos: x.Map(v)})
	}
	plan.Axes = append(plan.Axes, bottom, valueAxis(y, h, lineTicks))

	for _, s := range series {
		plan.Legend = append(plan.Legend, LegendEntry{
			Series: s.key, Label: seriesLabel(in, s.key), Color: seriesColor(s.key), Symbol: "━",
		})
	}
	return plan, nil
}
