package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/esmerado/demographic-analysis-madrid/internal/model"
	"github.com/esmerado/demographic-analysis-madrid/internal/parser"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var errNoPlan = errors.New("no draw plan")

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// WritePNG 输出终态（动画结束后）的 PNG 快照
func WritePNG(w io.Writer, plan *DrawPlan) error {
	if plan == nil {
		return fmt.Errorf("write png: %w", errNoPlan)
	}
	var err error
	if plan.Type == model.ChartTypeLine {
		err = renderLinePNG(w, plan)
	} else {
		err = renderBarPNG(w, plan)
	}
	if err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

func valueRange(plan *DrawPlan) *chart.ContinuousRange {
	maxY := plan.MaxValue
	for _, a := range plan.Axes {
		if a.Orient == AxisLeft && len(a.Ticks) > 0 {
			maxY = math.Max(maxY, a.Ticks[len(a.Ticks)-1].Value)
		}
	}
	if maxY <= 0 {
		maxY = 1
	}
	return &chart.ContinuousRange{Min: 0, Max: maxY}
}

func valueTicks(plan *DrawPlan) []chart.Tick {
	var out []chart.Tick
	for _, a := range plan.Axes {
		if a.Orient != AxisLeft {
			continue
		}
		for _, t := range a.Ticks {
			out = append(out, chart.Tick{Value: t.Value, Label: t.Label})
		}
	}
	if len(out) < 2 {
		return nil
	}
	return out
}

func padding(plan *DrawPlan) chart.Box {
	return chart.Box{
		Top:    int(plan.Margin.Top),
		Left:   16,
		Right:  int(plan.Margin.Right),
		Bottom: 24,
	}
}

func renderBarPNG(w io.Writer, plan *DrawPlan) error {
	rects := plan.MarksOf(MarkRect, "")
	if len(rects) == 0 {
		return errNoPlan
	}
	perGroup := 1
	if len(plan.Legend) > 1 {
		perGroup = len(plan.Legend)
	}
	bars := make([]chart.Value, 0, len(rects))
	for i, m := range rects {
		label := ""
		if i%perGroup == 0 {
			label = m.Year
		}
		col := hexColor(m.Fill)
		bars = append(bars, chart.Value{
			Value: m.Value,
			Label: label,
			Style: chart.Style{FillColor: col, StrokeColor: col, StrokeWidth: 1},
		})
	}
	width := int(plan.Width)
	slot := float64(width-int(plan.Margin.Left)-int(plan.Margin.Right)) / float64(len(bars))
	barWidth := int(math.Max(1, math.Floor(slot*0.75)))
	spacing := int(math.Max(1, math.Floor(slot*0.25)))

	bc := chart.BarChart{
		Title:      plan.Title,
		Width:      width,
		Height:     int(plan.Height),
		BarWidth:   barWidth,
		BarSpacing: spacing,
		Background: chart.Style{Padding: padding(plan)},
		XAxis:      chart.Style{FontSize: 7},
		YAxis: chart.YAxis{
			Range: valueRange(plan),
			Ticks: valueTicks(plan),
		},
		Bars: bars,
	}
	return bc.Render(chart.PNG, w)
}

func renderLinePNG(w io.Writer, plan *DrawPlan) error {
	var series []chart.Series
	for _, e := range plan.Legend {
		var xs, ys []float64
		for _, m := range plan.MarksOf(MarkCircle, e.Series) {
			y, ok := parser.ParseYear(m.Year)
			if !ok {
				continue
			}
			xs = append(xs, float64(y))
			ys = append(ys, m.Value)
		}
		if len(xs) == 0 {
			continue
		}
		if len(xs) == 1 {
			xs = append(xs, xs[0]+1)
			ys = append(ys, ys[0])
		}
		col := hexColor(e.Color)
		series = append(series, chart.ContinuousSeries{
			Name:    e.Label,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: col,
				StrokeWidth: lineStrokeWidth,
				DotColor:    col,
				DotWidth:    4,
			},
		})
	}
	if len(series) == 0 {
		return errNoPlan
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, x := range s.(chart.ContinuousSeries).XValues {
			minX = math.Min(minX, x)
			maxX = math.Max(maxX, x)
		}
	}
	var xTicks []chart.Tick
	for _, a := range plan.Axes {
		if a.Orient != AxisBottom {
			continue
		}
		for _, t := range a.Ticks {
			xTicks = append(xTicks, chart.Tick{Value: t.Value, Label: t.Label})
		}
	}
	if len(xTicks) < 2 {
		// 单个年份时补一个空刻度，保证 X 轴跨度非零
		xTicks = append(xTicks, chart.Tick{Value: maxX, Label: ""})
	}

	ch := chart.Chart{
		Title:      plan.Title,
		Width:      int(plan.Width),
		Height:     int(plan.Height),
		Background: chart.Style{Padding: padding(plan)},
		XAxis:      chart.XAxis{Ticks: xTicks, Range: &chart.ContinuousRange{Min: minX, Max: maxX}},
		YAxis:      chart.YAxis{Range: valueRange(plan), Ticks: valueTicks(plan)},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}
