package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/esmerado/demographic-analysis-madrid/internal/model"
)

const (
	// UnknownLabel 无法解析 concept/territorio 时的默认值
	UnknownLabel = "Unknown"
	// TotalMarker 预先汇总的行，保留会与明细行重复计算
	TotalMarker = "Total"
)

// Normalize 把原始记录转换为规范化记录，并丢弃汇总行与空名称行
func Normalize(raws []RawRecord) ([]model.Record, NormalizeStats) {
	stats := NormalizeStats{TotalRows: len(raws)}
	if len(raws) == 0 {
		return nil, stats
	}

	cols := MapColumns(raws[0].Names())
	out := make([]model.Record, 0, len(raws))
	for _, raw := range raws {
		concept, ok := cols.Lookup(raw, FieldConcept)
		concept = strings.TrimSpace(concept)
		if !ok || concept == "" {
			concept = UnknownLabel
		}

		name, ok := cols.Lookup(raw, FieldTerritory)
		if ok {
			name = strings.TrimSpace(name)
		} else {
			name = UnknownLabel
		}

		year, _ := cols.Lookup(raw, FieldYear)

		valueText, _ := cols.Lookup(raw, FieldValue)
		value, parsed := ParseValue(valueText)
		if !parsed {
			stats.ZeroValues++
		}

		if name == "" {
			stats.DroppedEmpty++
			continue
		}
		if name == TotalMarker {
			stats.DroppedTotal++
			continue
		}

		out = append(out, model.Record{
			Concept: concept,
			Name:    name,
			Year:    strings.TrimSpace(year),
			Value:   value,
		})
	}
	stats.KeptRows = len(out)
	return out, stats
}

// ParseValue 解析数值单元格，失败、非有限值或负数时返回 0 且 ok=false
func ParseValue(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}
