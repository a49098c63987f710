package exporter

// Stage 导出阶段
type Stage string

const (
	StagePrepare Stage = "prepare"
	StageData    Stage = "data"
	StageChart   Stage = "chart"
	StageRecords Stage = "records"
	StageSource  Stage = "source"
	StageDone    Stage = "done"
)

var stageInfo = map[Stage]struct {
	percent int
	message string
}{
	StagePrepare: {0, "准备工作簿"},
	StageData:    {40, "写入对比表"},
	StageChart:   {60, "生成图表"},
	StageRecords: {80, "写入原始记录"},
	StageSource:  {90, "写入数据来源"},
	StageDone:    {100, "完成"},
}

// ProgressEvent 导出进度事件，Percent 随阶段单调递增
type ProgressEvent struct {
	Stage   Stage  `json:"stage"`
	Percent int    `json:"percent"`
	Message string `json:"message"`
}

type progressFunc func(ProgressEvent)

func (f progressFunc) report(s Stage) {
	if f == nil {
		return
	}
	info := stageInfo[s]
	f(ProgressEvent{Stage: s, Percent: info.percent, Message: info.message})
}
