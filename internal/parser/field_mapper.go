package parser

// 逻辑字段对应的列名片段（按数据门户的西班牙语表头）
var fieldFragments = []struct {
	field    LogicalField
	fragment string
}{
	{FieldConcept, "concepto"},
	{FieldTerritory, "territorio"},
	{FieldYear, "año"},
	{FieldValue, "valor"},
}

// ColumnMap 一次性解析表头得到的逻辑字段映射
type ColumnMap struct {
	mappings map[LogicalField]FieldMapping
}

// MapColumns 根据表头列名建立映射
func MapColumns(columnNames []string) *ColumnMap {
	m := &ColumnMap{mappings: make(map[LogicalField]FieldMapping, len(fieldFragments))}
	for _, ff := range fieldFragments {
		idx := findField(columnNames, ff.fragment)
		if idx < 0 {
			continue
		}
		m.mappings[ff.field] = FieldMapping{
			ColumnIndex: idx,
			ColumnName:  columnNames[idx],
			Field:       ff.field,
			Fragment:    ff.fragment,
		}
	}
	return m
}

// Mapping 返回逻辑字段的映射
func (m *ColumnMap) Mapping(field LogicalField) (FieldMapping, bool) {
	mp, ok := m.mappings[field]
	return mp, ok
}

// Missing 返回未能匹配的逻辑字段（按固定顺序）
func (m *ColumnMap) Missing() []LogicalField {
	var out []LogicalField
	for _, ff := range fieldFragments {
		if _, ok := m.mappings[ff.field]; !ok {
			out = append(out, ff.field)
		}
	}
	return out
}

// Lookup 取记录中逻辑字段的值
//
// 记录与建图时的表头一致时直接按索引读取，否则退回逐列匹配。
func (m *ColumnMap) Lookup(rec RawRecord, field LogicalField) (string, bool) {
	if mp, ok := m.mappings[field]; ok {
		if mp.ColumnIndex < len(rec) && rec[mp.ColumnIndex].Name == mp.ColumnName {
			return rec[mp.ColumnIndex].Value, true
		}
	}
	for _, ff := range fieldFragments {
		if ff.field == field {
			return Resolve(rec, ff.fragment)
		}
	}
	return "", false
}
