package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	yearPattern  = regexp.MustCompile(`\d{4}`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// ParseYear 从年份标签中提取四位数字年份
// 支持格式: "2020" / " 2020 " / "2020 (P)" / "Año 2020"
func ParseYear(label string) (int, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0, false
	}
	if y, err := strconv.Atoi(label); err == nil {
		return y, true
	}
	m := yearPattern.FindString(label)
	if m == "" {
		return 0, false
	}
	y, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return y, true
}

// NormalizeColumnName 规范化列名，去除换行、制表符并压缩空白
func NormalizeColumnName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\n", " ")
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.ReplaceAll(name, "\t", " ")
	return spacePattern.ReplaceAllString(name, " ")
}

// ContainsAny 检查字符串是否包含任意一个关键词（折叠后比较）
func ContainsAny(text string, keywords []string) bool {
	folded := FoldKey(text)
	for _, kw := range keywords {
		if strings.Contains(folded, FoldKey(kw)) {
			return true
		}
	}
	return false
}
