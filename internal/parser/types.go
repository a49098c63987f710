package parser

import "time"

// Field 原始记录中的一列（列名可能带有编码残留）
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RawRecord 解码后的一行，字段顺序与表头一致
type RawRecord []Field

// Names 返回列名（保持表头顺序）
func (r RawRecord) Names() []string {
	out := make([]string, len(r))
	for i, f := range r {
		out[i] = f.Name
	}
	return out
}

// LogicalField 逻辑字段
type LogicalField string

const (
	FieldConcept   LogicalField = "concept"
	FieldTerritory LogicalField = "territory"
	FieldYear      LogicalField = "year"
	FieldValue     LogicalField = "value"
)

// FieldMapping 逻辑字段与实际列的映射结果
type FieldMapping struct {
	ColumnIndex int          `json:"columnIndex"` // 列索引
	ColumnName  string       `json:"columnName"`  // 实际列名
	Field       LogicalField `json:"field"`       // 逻辑字段
	Fragment    string       `json:"fragment"`    // 匹配用的片段
}

// NormalizeStats 行规范化统计
type NormalizeStats struct {
	TotalRows    int `json:"totalRows"`
	KeptRows     int `json:"keptRows"`
	DroppedTotal int `json:"droppedTotal"` // 汇总行（Total）
	DroppedEmpty int `json:"droppedEmpty"` // 名称为空
	ZeroValues   int `json:"zeroValues"`   // 数值无法解析，按 0 处理
}

// LoadReport 数据集加载报告
type LoadReport struct {
	Source   string         `json:"source"`
	Encoding string         `json:"encoding"`
	Bytes    int64          `json:"bytes"`
	Columns  []string       `json:"columns"`
	Missing  []LogicalField `json:"missing,omitempty"`
	Stats    NormalizeStats `json:"stats"`
	Concepts int            `json:"concepts"`
	Duration time.Duration  `json:"duration"`
}
