package comparison

import (
	"testing"

	"github.com/esmerado/demographic-analysis-madrid/internal/config"
	"github.com/esmerado/demographic-analysis-madrid/internal/model"
)

func sampleDataset() model.Dataset {
	return model.Dataset{
		{Concept: conceptBirthsMen, Records: []model.Record{
			{Concept: conceptBirthsMen, Name: "Madrid", Year: "2021", Value: 20},
			{Concept: conceptBirthsMen, Name: "Madrid", Year: "2020", Value: 10},
		}},
		{Concept: conceptBirthsWomen, Records: []model.Record{
			{Concept: conceptBirthsWomen, Name: "Madrid", Year: "2020", Value: 5},
		}},
	}
}

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	c := DefaultCatalog()
	opts := c.Options()
	if len(opts) != 6 {
		t.Fatalf("expected 6 comparisons, got %d", len(opts))
	}
	def, ok := c.Default()
	if !ok || def.ID != "Nacimientos por género" || def.ChartType != model.ChartTypeBar {
		t.Fatalf("unexpected default: %+v", def)
	}
	single, ok := c.Get("Nuevos matrimonios de distinto género residentes")
	if !ok || single.ConceptB != "" {
		t.Fatalf("marriages comparison should be single-series: %+v", single)
	}
	lines := 0
	for _, o := range opts {
		if o.ChartType == model.ChartTypeLine {
			lines++
		}
	}
	if lines != 4 {
		t.Fatalf("expected 4 line comparisons, got %d", lines)
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	c := DefaultCatalog()
	in, ct, ok := c.Resolve(sampleDataset(), DefaultID)
	if !ok || ct != model.ChartTypeBar {
		t.Fatalf("resolve failed: ok=%v type=%s", ok, ct)
	}
	if len(in.SeriesA) != 2 || in.SeriesA[0].Year != "2021" {
		t.Fatalf("series A should keep record order, got %+v", in.SeriesA)
	}
	if len(in.SeriesB) != 1 || in.LabelA != "Hombres" || in.LabelB != "Mujeres" {
		t.Fatalf("unexpected input: %+v", in)
	}

	in, _, ok = c.Resolve(sampleDataset(), "Nacimientos vs Defunciones")
	if !ok || len(in.SeriesA) != 0 || in.IsComparison() {
		t.Fatalf("missing concepts should resolve to empty series, got %+v", in)
	}

	if _, _, ok := c.Resolve(sampleDataset(), "desconocido"); ok {
		t.Fatalf("unknown id must not resolve")
	}
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	c, err := FromConfig(nil)
	if err != nil || len(c.Options()) != 6 {
		t.Fatalf("empty config should give the built-in catalog")
	}

	c, err = FromConfig([]config.ComparisonConfig{
		{ID: "hombres", ConceptA: conceptBirthsMen, ChartType: "lineChart"},
	})
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	o, ok := c.Default()
	if !ok || o.ID != "hombres" || o.Title != "hombres" || o.ChartType != model.ChartTypeLine {
		t.Fatalf("unexpected option: %+v", o)
	}

	if _, err := FromConfig([]config.ComparisonConfig{{ID: "x"}}); err == nil {
		t.Fatalf("missing concept_a should fail")
	}
	if _, err := FromConfig([]config.ComparisonConfig{
		{ID: "x", ConceptA: "a"}, {ID: "x", ConceptA: "b"},
	}); err == nil {
		t.Fatalf("duplicate id should fail")
	}
}
