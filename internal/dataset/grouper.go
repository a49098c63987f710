package dataset

import "github.com/esmerado/demographic-analysis-madrid/internal/model"

// GroupByConcept 按 concept 精确分组，保持首次出现顺序与组内解码顺序
func GroupByConcept(records []model.Record) model.Dataset {
	out := model.Dataset{}
	index := make(map[string]int)
	for _, r := range records {
		i, ok := index[r.Concept]
		if !ok {
			i = len(out)
			index[r.Concept] = i
			out = append(out, model.ConceptGroup{Concept: r.Concept})
		}
		out[i].Records = append(out[i].Records, r)
	}
	return out
}

// FindByConcept 在分组数据集中按 concept 精确查找，未命中返回空切片
func FindByConcept(groups model.Dataset, name string) []model.Record {
	return groups.FindByConcept(name)
}
