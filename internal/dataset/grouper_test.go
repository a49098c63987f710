package dataset

import (
	"testing"

	"github.com/esmerado/demographic-analysis-madrid/internal/model"
)

func sampleRecords() []model.Record {
	return []model.Record{
		{Concept: "Nacimientos de hombres residentes", Name: "Madrid", Year: "2020", Value: 10},
		{Concept: "Nacimientos de mujeres residentes", Name: "Madrid", Year: "2020", Value: 9},
		{Concept: "Nacimientos de hombres residentes", Name: "Madrid", Year: "2021", Value: 12},
		{Concept: "Total defunciones de residentes", Name: "Madrid", Year: "2020", Value: 40},
		{Concept: "Nacimientos de mujeres residentes", Name: "Madrid", Year: "2021", Value: 11},
	}
}

func TestGroupByConcept_FirstSeenOrder(t *testing.T) {
	t.Parallel()

	groups := GroupByConcept(sampleRecords())
	want := []string{
		"Nacimientos de hombres residentes",
		"Nacimientos de mujeres residentes",
		"Total defunciones de residentes",
	}
	if len(groups) != len(want) {
		t.Fatalf("groups=%d, want %d", len(groups), len(want))
	}
	for i, w := range want {
		if groups[i].Concept != w {
			t.Fatalf("groups[%d]=%q, want %q", i, groups[i].Concept, w)
		}
	}
	hombres := groups[0].Records
	if len(hombres) != 2 || hombres[0].Year != "2020" || hombres[1].Year != "2021" {
		t.Fatalf("decoding order not preserved: %+v", hombres)
	}
}

func TestGroupByConcept_IsPartition(t *testing.T) {
	t.Parallel()

	in := sampleRecords()
	groups := GroupByConcept(in)

	seen := 0
	for _, g := range groups {
		for _, r := range g.Records {
			if r.Concept != g.Concept {
				t.Fatalf("record %+v in group %q", r, g.Concept)
			}
			seen++
		}
	}
	if seen != len(in) || groups.RecordCount() != len(in) {
		t.Fatalf("seen=%d count=%d, want %d", seen, groups.RecordCount(), len(in))
	}
}

func TestFindByConcept_StableAndTotal(t *testing.T) {
	t.Parallel()

	groups := GroupByConcept(sampleRecords())
	for _, g := range groups {
		got := FindByConcept(groups, g.Concept)
		if len(got) != len(g.Records) || (len(got) > 0 && &got[0] != &g.Records[0]) {
			t.Fatalf("lookup for %q does not return the group's records", g.Concept)
		}
	}

	missing := FindByConcept(groups, "Nacimientos")
	if missing == nil || len(missing) != 0 {
		t.Fatalf("missing concept must return empty non-nil slice, got %#v", missing)
	}
	if got := FindByConcept(nil, "x"); got == nil || len(got) != 0 {
		t.Fatalf("nil dataset lookup=%#v", got)
	}
}

func TestGroupByConcept_Empty(t *testing.T) {
	t.Parallel()

	groups := GroupByConcept(nil)
	if groups == nil || len(groups) != 0 {
		t.Fatalf("groups=%#v", groups)
	}
}

func TestConcepts_SortedAndNonBlank(t *testing.T) {
	t.Parallel()

	groups := GroupByConcept(append(sampleRecords(), model.Record{Concept: " ", Name: "x"}))
	concepts := groups.Concepts()
	if len(concepts) != 3 || concepts[0] != "Nacimientos de hombres residentes" || concepts[2] != "Total defunciones de residentes" {
		t.Fatalf("concepts=%v", concepts)
	}
}
