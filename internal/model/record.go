package model

// Record 规范化后的单行数据
//
// Year 保留原始文本：柱状图把年份当作类别标签，折线图在需要时再解析为整数。
type Record struct {
	Concept string  `json:"concept"`
	Name    string  `json:"name"`
	Year    string  `json:"year"`
	Value   float64 `json:"value"`
}

// ConceptGroup 同一 concept 的全部记录
type ConceptGroup struct {
	Concept string   `json:"concept"`
	Records []Record `json:"records"`
}

// Point 时间序列中的一个点
type Point struct {
	Year  string  `json:"year"`
	Value float64 `json:"value"`
}

// Series 有序的年份/数值序列，不按年份去重
type Series []Point

// SeriesFromRecords converts records to a series keeping their order.
func SeriesFromRecords(records []Record) Series {
	if len(records) == 0 {
		return nil
	}
	out := make(Series, 0, len(records))
	for _, r := range records {
		out = append(out, Point{Year: r.Year, Value: r.Value})
	}
	return out
}
