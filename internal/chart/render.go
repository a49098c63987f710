package chart

import (
	"github.com/esmerado/demographic-analysis-madrid/internal/model"
)

// ComputePlan 按图表类型计算几何，未知类型按柱状图处理
func ComputePlan(t model.ChartType, in model.ChartInput, layout Layout) (*DrawPlan, error) {
	if t == model.ChartTypeLine {
		return ComputeLinePlan(in, layout)
	}
	return ComputeBarPlan(in, layout)
}

// RenderBarChart 在绘图面上绘制分组柱状图
func RenderBarChart(s *Surface, in model.ChartInput) (*DrawPlan, error) {
	return Render(s, model.ChartTypeBar, in)
}

// RenderLineChart 在绘图面上绘制折线图
func RenderLineChart(s *Surface, in model.ChartInput) (*DrawPlan, error) {
	return Render(s, model.ChartTypeLine, in)
}

// Render 替换绘图面上的图表并返回本次写入的计划；无法绘制时清空绘图面并返回 ErrRenderSkipped
//
// 返回值与写入在同一临界区内确定，并发调用者各自拿到自己的计划。
func Render(s *Surface, t model.ChartType, in model.ChartInput) (*DrawPlan, error) {
	if s == nil {
		return nil, model.ErrRenderSkipped
	}
	plan, err := ComputePlan(t, in, s.Layout())
	if err != nil {
		s.Clear()
		return nil, err
	}
	return s.Apply(plan), nil
}
