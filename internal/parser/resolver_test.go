package parser

import "testing"

func TestResolve_CaseAndAccentInsensitive(t *testing.T) {
	t.Parallel()

	rec := RawRecord{
		{Name: "CONCEPTO", Value: "Nacimientos"},
		{Name: "Año", Value: "2021"},
	}
	if v, ok := Resolve(rec, "concepto"); !ok || v != "Nacimientos" {
		t.Fatalf("concepto=%q ok=%v", v, ok)
	}
	if v, ok := Resolve(rec, "año"); !ok || v != "2021" {
		t.Fatalf("año=%q ok=%v", v, ok)
	}
	if v, ok := Resolve(rec, "ano"); !ok || v != "2021" {
		t.Fatalf("ano=%q ok=%v", v, ok)
	}
}

func TestResolve_DoubleEncodedKey(t *testing.T) {
	t.Parallel()

	rec := RawRecord{{Name: "AÃ±o", Value: "2019"}}
	v, ok := Resolve(rec, "año")
	if !ok || v != "2019" {
		t.Fatalf("got %q ok=%v", v, ok)
	}
}

func TestResolve_FirstMatchWins(t *testing.T) {
	t.Parallel()

	rec := RawRecord{
		{Name: "Valor provisional", Value: "1"},
		{Name: "Valor", Value: "2"},
	}
	if v, _ := Resolve(rec, "valor"); v != "1" {
		t.Fatalf("got %q, want first column", v)
	}
}

func TestResolve_Missing(t *testing.T) {
	t.Parallel()

	rec := RawRecord{{Name: "Concepto", Value: "x"}}
	if _, ok := Resolve(rec, "territorio"); ok {
		t.Fatalf("expected miss")
	}
	if _, ok := Resolve(rec, ""); ok {
		t.Fatalf("empty fragment must not match")
	}
}

func TestRepairMojibake(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"AÃ±o":       "Año",
		"Año":        "Año",
		"Territorio": "Territorio",
		"Ã":          "Ã",
	}
	for in, want := range cases {
		if got := RepairMojibake(in); got != want {
			t.Fatalf("RepairMojibake(%q)=%q, want %q", in, got, want)
		}
	}
}

func TestMapColumns_Missing(t *testing.T) {
	t.Parallel()

	m := MapColumns([]string{"Concepto", "Periodo", "Valor"})
	missing := m.Missing()
	if len(missing) != 2 || missing[0] != FieldTerritory || missing[1] != FieldYear {
		t.Fatalf("missing=%v", missing)
	}
	mp, ok := m.Mapping(FieldValue)
	if !ok || mp.ColumnIndex != 2 {
		t.Fatalf("value mapping=%+v ok=%v", mp, ok)
	}
}
