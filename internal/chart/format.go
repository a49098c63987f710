package chart

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// FormatValue 千分位分组，最多保留三位小数（"1,234"、"1,234.5"）
func FormatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	r := math.Round(v*1000) / 1000
	if r == 0 {
		return "0"
	}
	return humanize.Commaf(r)
}

// FormatYear 年份刻度不分组
func FormatYear(v float64) string {
	return strconv.FormatFloat(math.Round(v), 'f', -1, 64)
}

// fmtNum SVG 坐标保留三位小数
func fmtNum(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	r := math.Round(v*1000) / 1000
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
