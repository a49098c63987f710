package chart

import (
	"fmt"

	"github.com/esmerado/demographic-analysis-madrid/internal/model"
)

const (
	barOuterPadding = 0.2
	barInnerPadding = 0.05
	barHoverOpacity = 0.8
	barYTicks       = 8
	yearLabelRotate = -40
)

type barBucket struct {
	year   string
	values map[string]float64
}

// ComputeBarPlan 分组柱状图：每个年份一组，组内每个序列一根柱
//
// 年份只取自 SeriesA，SeriesB 独有的年份被丢弃；同一年份出现多次时取第一条。
func ComputeBarPlan(in model.ChartInput, layout Layout) (*DrawPlan, error) {
	if len(in.SeriesA) == 0 || !layout.usable() {
		return nil, model.ErrRenderSkipped
	}

	years := distinctYears(in.SeriesA)
	types := []string{"A"}
	if in.IsComparison() {
		types = append(types, "B")
	}

	buckets := make([]barBucket, 0, len(years))
	maxValue := 0.0
	for _, y := range years {
		b := barBucket{year: y, values: map[string]float64{"A": firstValue(in.SeriesA, y)}}
		if in.IsComparison() {
			b.values["B"] = firstValue(in.SeriesB, y)
		}
		for _, v := range b.values {
			if v > maxValue {
				maxValue = v
			}
		}
		buckets = append(buckets, b)
	}

	w, h := layout.InnerWidth(), layout.InnerHeight()
	x0 := NewBandScale(years, 0, w, barOuterPadding)
	x1 := NewBandScale(types, 0, x0.Bandwidth(), barInnerPadding)
	y := NewLinearScale(0, maxValue, h, 0).Nice(10)

	plan := newPlan(model.ChartTypeBar, in.Title, layout)
	plan.MaxValue = maxValue
	plan.Domain = x0.Domain()

	for i, b := range buckets {
		gx, _ := x0.Position(b.year)
		for _, t := range types {
			v := b.values[t]
			ix, _ := x1.Position(t)
			top := y.Map(v)
			height := h - top
			label := seriesLabel(in, t)
			color := seriesColor(t)
			plan.Marks = append(plan.Marks, Mark{
				ID:           fmt.Sprintf("bar-%d-%s", i, t),
				Kind:         MarkRect,
				Series:       t,
				Label:        label,
				Year:         b.year,
				Value:        v,
				Fill:         color,
				X:            gx + ix,
				Y:            top,
				Width:        x1.Bandwidth(),
				Height:       height,
				HoverOpacity: barHoverOpacity,
				Tooltip:      TooltipHTML(b.year, label, color, v),
				Animations: []Animation{
					{Attr: "y", From: h, To: top, DurationMs: layout.BarDurationMs, Easing: EaseCubicInOut},
					{Attr: "height", From: 0, To: height, DurationMs: layout.BarDurationMs, Easing: EaseCubicInOut},
				},
			})
		}
	}

	bottom := Axis{Orient: AxisBottom, Length: w, Offset: h, LabelRotate: yearLabelRotate}
	for _, yr := range years {
		pos, _ := x0.Position(yr)
		bottom.Ticks = append(bottom.Ticks, Tick{Label: yr, Pos: pos + x0.Bandwidth()/2})
	}
	plan.Axes = append(plan.Axes, bottom, valueAxis(y, h, barYTicks))

	if in.IsComparison() {
		plan.Legend = []LegendEntry{
			{Series: "A", Label: seriesLabel(in, "A"), Color: ColorA, Symbol: "■"},
			{Series: "B", Label: seriesLabel(in, "B"), Color: ColorB, Symbol: "■"},
		}
	}
	return plan, nil
}

func valueAxis(y *LinearScale, h float64, count int) Axis {
	axis := Axis{Orient: AxisLeft, Length: h}
	for _, v := range y.Ticks(count) {
		axis.Ticks = append(axis.Ticks, Tick{Value: v, Label: FormatValue(v), Pos: y.Map(v)})
	}
	return axis
}

func distinctYears(s model.Series) []string {
	seen := make(map[string]bool, len(s))
	var out []string
	for _, p := range s {
		if seen[p.Year] {
			continue
		}
		seen[p.Year] = true
		out = append(out, p.Year)
	}
	return out
}

func firstValue(s model.Series, year string) float64 {
	for _, p := range s {
		if p.Year == year {
			return p.Value
		}
	}
	return 0
}
