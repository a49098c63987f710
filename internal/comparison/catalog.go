package comparison

import (
	"fmt"
	"strings"

	"github.com/esmerado/demographic-analysis-madrid/internal/config"
	"github.com/esmerado/demographic-analysis-madrid/internal/model"
)

// Option 选择器中的一项对比
//
// ConceptB 为空表示单序列图表。
type Option struct {
	ID        string          `json:"id"`
	Label     string          `json:"label"`
	Title     string          `json:"title"`
	ConceptA  string          `json:"conceptA"`
	ConceptB  string          `json:"conceptB,omitempty"`
	LabelA    string          `json:"labelA"`
	LabelB    string          `json:"labelB,omitempty"`
	ChartType model.ChartType `json:"chartType"`
}

// Input 从数据集中取出两组记录并组装渲染输入
func (o Option) Input(ds model.Dataset) model.ChartInput {
	in := model.ChartInput{
		Title:   o.Title,
		LabelA:  o.LabelA,
		LabelB:  o.LabelB,
		SeriesA: model.SeriesFromRecords(ds.FindByConcept(o.ConceptA)),
	}
	if o.ConceptB != "" {
		in.SeriesB = model.SeriesFromRecords(ds.FindByConcept(o.ConceptB))
	}
	return in
}

// Catalog 有序的对比项列表
type Catalog struct {
	options []Option
	byID    map[string]int
}

const (
	conceptBirthsMen       = "Nacimientos de hombres residentes"
	conceptBirthsWomen     = "Nacimientos de mujeres residentes"
	conceptBirthsTotal     = "Total nacimientos de residentes"
	conceptDeathsTotal     = "Total defunciones de residentes"
	conceptDeathsMen       = "Defunciones de residentes hombres"
	conceptDeathsWomen     = "Defunciones de residentes mujeres"
	conceptMarriagesMixed  = "Matrimonios de residentes de distinto sexo que fijan su residencia en la Comunidad de Madrid"
	conceptMarriagesSameSx = "Matrimonios de residentes del mismo sexo que fijan su residencia en la Comunidad de Madrid"
)

// DefaultID 默认选中项
const DefaultID = "Nacimientos por género"

// DefaultCatalog 仪表盘内置的六个对比
func DefaultCatalog() *Catalog {
	c, _ := NewCatalog([]Option{
		{
			ID:        DefaultID,
			Title:     "Comparativa: Nacimientos Hombres vs Mujeres",
			ConceptA:  conceptBirthsMen,
			ConceptB:  conceptBirthsWomen,
			LabelA:    "Hombres",
			LabelB:    "Mujeres",
			ChartType: model.ChartTypeBar,
		},
		{
			ID:        "Nuevos matrimonios de distinto género residentes",
			Title:     "Nuevos matrimonios de distinto género residentes",
			ConceptA:  conceptMarriagesMixed,
			LabelA:    "Matrimonios",
			ChartType: model.ChartTypeBar,
		},
		{
			ID:        "Nacimientos vs Defunciones",
			Title:     "Saldo Vegetativo: Total Nacimientos vs Defunciones",
			ConceptA:  conceptBirthsTotal,
			ConceptB:  conceptDeathsTotal,
			LabelA:    "Nacimientos",
			LabelB:    "Defunciones",
			ChartType: model.ChartTypeLine,
		},
		{
			ID:        "Nacimientos vs Defunciones en Hombres",
			Title:     "Nacimientos vs Defunciones: Hombres",
			ConceptA:  conceptBirthsMen,
			ConceptB:  conceptDeathsMen,
			LabelA:    "Nacimientos",
			LabelB:    "Defunciones",
			ChartType: model.ChartTypeLine,
		},
		{
			ID:        "Nacimientos vs Defunciones en Mujeres",
			Title:     "Nacimientos vs Defunciones: Mujeres",
			ConceptA:  conceptBirthsWomen,
			ConceptB:  conceptDeathsWomen,
			LabelA:    "Nacimientos",
			LabelB:    "Defunciones",
			ChartType: model.ChartTypeLine,
		},
		{
			ID:        "Matrimonios de distinto sexo vs Matrimonios del mismo sexo",
			Title:     "Matrimonios de distinto sexo vs Matrimonios del mismo sexo",
			ConceptA:  conceptMarriagesMixed,
			ConceptB:  conceptMarriagesSameSx,
			LabelA:    "Matrimonios de distinto sexo",
			LabelB:    "Matrimonios del mismo sexo",
			ChartType: model.ChartTypeLine,
		},
	})
	return c
}

// NewCatalog 校验并创建目录：ID 与 ConceptA 必填，ID 不可重复
func NewCatalog(options []Option) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]int, len(options))}
	for i, o := range options {
		o.ID = strings.TrimSpace(o.ID)
		if o.ID == "" {
			return nil, fmt.Errorf("comparison %d: missing id", i)
		}
		if strings.TrimSpace(o.ConceptA) == "" {
			return nil, fmt.Errorf("comparison %q: missing concept_a", o.ID)
		}
		if _, dup := c.byID[o.ID]; dup {
			return nil, fmt.Errorf("comparison %q: duplicate id", o.ID)
		}
		if o.Label == "" {
			o.Label = o.ID
		}
		if o.Title == "" {
			o.Title = o.Label
		}
		if o.ChartType == "" {
			o.ChartType = model.ChartTypeBar
		}
		c.byID[o.ID] = len(c.options)
		c.options = append(c.options, o)
	}
	return c, nil
}

// FromConfig 使用配置中的 [[comparisons]]，未配置时返回内置目录
func FromConfig(items []config.ComparisonConfig) (*Catalog, error) {
	if len(items) == 0 {
		return DefaultCatalog(), nil
	}
	options := make([]Option, 0, len(items))
	for _, it := range items {
		options = append(options, Option{
			ID:        it.ID,
			Title:     it.Title,
			ConceptA:  it.ConceptA,
			ConceptB:  it.ConceptB,
			LabelA:    it.LabelA,
			LabelB:    it.LabelB,
			ChartType: model.ParseChartType(it.ChartType),
		})
	}
	return NewCatalog(options)
}

// Options 全部对比项，按展示顺序
func (c *Catalog) Options() []Option {
	out := make([]Option, len(c.options))
	copy(out, c.options)
	return out
}

// Get 按 ID 查找
func (c *Catalog) Get(id string) (Option, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Option{}, false
	}
	return c.options[i], true
}

// Default 首个对比项；目录为空时 ok 为 false
func (c *Catalog) Default() (Option, bool) {
	if len(c.options) == 0 {
		return Option{}, false
	}
	if o, ok := c.Get(DefaultID); ok {
		return o, true
	}
	return c.options[0], true
}

// Resolve 把选中的对比映射为渲染输入；未知 ID 返回 false
func (c *Catalog) Resolve(ds model.Dataset, id string) (model.ChartInput, model.ChartType, bool) {
	o, ok := c.Get(id)
	if !ok {
		return model.ChartInput{}, "", false
	}
	return o.Input(ds), o.ChartType, true
}
