package model

// ChartType 图表类型
type ChartType string

const (
	ChartTypeBar  ChartType = "barChart"
	ChartTypeLine ChartType = "lineChart"
)

// ParseChartType falls back to the bar chart for unknown names.
func ParseChartType(s string) ChartType {
	if ChartType(s) == ChartTypeLine {
		return ChartTypeLine
	}
	return ChartTypeBar
}

// ChartInput 渲染器的唯一输入契约
type ChartInput struct {
	Title   string `json:"title"`
	LabelA  string `json:"labelA"`
	LabelB  string `json:"labelB,omitempty"`
	SeriesA Series `json:"seriesA"`
	SeriesB Series `json:"seriesB,omitempty"`
}

// IsComparison reports whether a second, non-empty series is present.
func (in ChartInput) IsComparison() bool {
	return len(in.SeriesB) > 0
}
