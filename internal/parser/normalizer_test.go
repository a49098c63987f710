package parser

import "testing"

func row(concept, name, year, value string) RawRecord {
	return RawRecord{
		{Name: "Concepto", Value: concept},
		{Name: "Territorio", Value: name},
		{Name: "Año", Value: year},
		{Name: "Valor", Value: value},
	}
}

func TestNormalize_ExcludesTotalAndEmptyNames(t *testing.T) {
	t.Parallel()

	raws := []RawRecord{
		row("Nacimientos", "Madrid", "2020", "10"),
		row("Nacimientos", "Total", "2020", "100"),
		row("Nacimientos", "  ", "2020", "5"),
		row("Defunciones", "Getafe", "2021", "7"),
	}
	recs, stats := Normalize(raws)
	if len(recs) != 2 {
		t.Fatalf("kept=%d, want 2", len(recs))
	}
	for _, r := range recs {
		if r.Name == TotalMarker || r.Name == "" {
			t.Fatalf("unexpected record %+v", r)
		}
	}
	if stats.DroppedTotal != 1 || stats.DroppedEmpty != 1 || stats.KeptRows != 2 || stats.TotalRows != 4 {
		t.Fatalf("stats=%+v", stats)
	}
}

func TestNormalize_Defaults(t *testing.T) {
	t.Parallel()

	raws := []RawRecord{
		{{Name: "Año", Value: "2020"}, {Name: "Valor", Value: "abc"}},
	}
	recs, stats := Normalize(raws)
	if len(recs) != 1 {
		t.Fatalf("records=%d", len(recs))
	}
	r := recs[0]
	if r.Concept != UnknownLabel || r.Name != UnknownLabel {
		t.Fatalf("defaults not applied: %+v", r)
	}
	if r.Value != 0 || stats.ZeroValues != 1 {
		t.Fatalf("value=%v zero=%d", r.Value, stats.ZeroValues)
	}
	if r.Year != "2020" {
		t.Fatalf("year=%q", r.Year)
	}
}

func TestParseValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1234", 1234, true},
		{" 12.5 ", 12.5, true},
		{"", 0, false},
		{"n/d", 0, false},
		{"-3", 0, false},
		{"NaN", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseValue(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("ParseValue(%q)=%v,%v want %v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}
