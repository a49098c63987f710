package model

import (
	"sort"
	"strings"
)

// Dataset 按 concept 分组后的数据集，顺序为首次出现的顺序
type Dataset []ConceptGroup

// FindByConcept 按 concept 精确查找，未命中时返回空切片而不是 nil
func (d Dataset) FindByConcept(name string) []Record {
	for i := range d {
		if d[i].Concept == name {
			return d[i].Records
		}
	}
	return []Record{}
}

// Concepts 返回去除空值后按字母排序的 concept 列表
func (d Dataset) Concepts() []string {
	out := make([]string, 0, len(d))
	for _, g := range d {
		if strings.TrimSpace(g.Concept) == "" {
			continue
		}
		out = append(out, g.Concept)
	}
	sort.Strings(out)
	return out
}

// RecordCount 记录总数
func (d Dataset) RecordCount() int {
	n := 0
	for _, g := range d {
		n += len(g.Records)
	}
	return n
}
