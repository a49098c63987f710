package exporter

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/esmerado/demographic-analysis-madrid/internal/chart"
	"github.com/esmerado/demographic-analysis-madrid/internal/model"
)

// RenderHTML 把绘图计划输出为可独立打开的 ECharts 页面
func RenderHTML(w io.Writer, plan *chart.DrawPlan) error {
	if plan == nil {
		return fmt.Errorf("render html: no draw plan")
	}
	page := components.NewPage()
	page.PageTitle = plan.Title
	if plan.Type == model.ChartTypeLine {
		page.AddCharts(lineChart(plan))
	} else {
		page.AddCharts(barChart(plan))
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func globalOptions(plan *chart.DrawPlan, rotate float64) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{
			Title: plan.Title,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:   opts.Bool(len(plan.Legend) > 1),
			Bottom: "0",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Año",
			Type: "category",
			AxisLabel: &opts.AxisLabel{
				Rotate: rotate,
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
		}),
		charts.WithGridOpts(opts.Grid{
			Left:   "10%",
			Right:  "5%",
			Bottom: "20%",
			Top:    "60",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: plan.Title,
			Width:     fmt.Sprintf("%.0fpx", plan.Width),
			Height:    fmt.Sprintf("%.0fpx", plan.Height),
		}),
	}
}

// seriesOrder 按首次出现顺序返回序列键与名称
func seriesOrder(plan *chart.DrawPlan, kind chart.MarkKind) ([]string, map[string]string) {
	var keys []string
	names := make(map[string]string)
	for _, m := range plan.Marks {
		if m.Kind != kind {
			continue
		}
		if _, ok := names[m.Series]; !ok {
			keys = append(keys, m.Series)
			names[m.Series] = m.Label
		}
	}
	return keys, names
}

func barChart(plan *chart.DrawPlan) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOptions(plan, 40)...)
	bar.SetXAxis(plan.Domain)

	keys, names := seriesOrder(plan, chart.MarkRect)
	for _, k := range keys {
		data := make([]opts.BarData, 0, len(plan.Domain))
		for _, m := range plan.MarksOf(chart.MarkRect, k) {
			data = append(data, opts.BarData{Value: m.Value})
		}
		color := chart.ColorA
		if k == "B" {
			color = chart.ColorB
		}
		bar.AddSeries(names[k], data,
			charts.WithBarChartOpts(opts.BarChart{
				BarGap: "5%",
			}),
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: color,
			}),
		)
	}
	return bar
}

func lineChart(plan *chart.DrawPlan) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(globalOptions(plan, 0)...)

	// X 轴沿用 A 序列的年份，B 序列按年份对齐，缺失处留空
	line.SetXAxis(plan.Domain)
	keys, names := seriesOrder(plan, chart.MarkCircle)
	for _, k := range keys {
		byYear := make(map[string]float64)
		for _, m := range plan.MarksOf(chart.MarkCircle, k) {
			if _, ok := byYear[m.Year]; !ok {
				byYear[m.Year] = m.Value
			}
		}
		data := make([]opts.LineData, 0, len(plan.Domain))
		for _, y := range plan.Domain {
			if v, ok := byYear[y]; ok {
				data = append(data, opts.LineData{Value: v})
			} else {
				data = append(data, opts.LineData{Value: "-"})
			}
		}
		color := chart.ColorA
		if k == "B" {
			color = chart.ColorB
		}
		line.AddSeries(names[k], data,
			charts.WithLineChartOpts(opts.LineChart{
				Smooth:     opts.Bool(true),
				ShowSymbol: opts.Bool(true),
			}),
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: color,
			}),
			charts.WithLineStyleOpts(opts.LineStyle{
				Width: 3,
			}),
		)
	}
	return line
}
