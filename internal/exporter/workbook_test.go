package exporter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/esmerado/demographic-analysis-madrid/internal/chart"
	"github.com/esmerado/demographic-analysis-madrid/internal/comparison"
	"github.com/esmerado/demographic-analysis-madrid/internal/model"
	"github.com/esmerado/demographic-analysis-madrid/internal/parser"
)

func sampleOption() comparison.Option {
	return comparison.Option{
		ID:        "nacimientos",
		Title:     "Comparativa",
		ConceptA:  "Nacimientos de hombres residentes",
		ConceptB:  "Nacimientos de mujeres residentes",
		LabelA:    "Hombres",
		LabelB:    "Mujeres",
		ChartType: model.ChartTypeBar,
	}
}

func sampleDataset() model.Dataset {
	return model.Dataset{
		{Concept: "Nacimientos de hombres residentes", Records: []model.Record{
			{Concept: "Nacimientos de hombres residentes", Name: "Madrid", Year: "2020", Value: 10},
			{Concept: "Nacimientos de hombres residentes", Name: "Madrid", Year: "2021", Value: 20},
		}},
		{Concept: "Nacimientos de mujeres residentes", Records: []model.Record{
			{Concept: "Nacimientos de mujeres residentes", Name: "Madrid", Year: "2020", Value: 5},
			{Concept: "Nacimientos de mujeres residentes", Name: "Madrid", Year: "2022", Value: 7},
		}},
	}
}

func TestExportWorkbook(t *testing.T) {
	t.Parallel()

	var stages []ProgressEvent
	e := NewExporter()
	e.now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }
	f, err := e.Export(ExportOptions{
		Option:   sampleOption(),
		Dataset:  sampleDataset(),
		Report:   &parser.LoadReport{Source: "data/migration-data-madrid.csv", Encoding: "iso-8859-1", Concepts: 2},
		Progress: func(ev ProgressEvent) { stages = append(stages, ev) },
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	sheets := strings.Join(f.GetSheetList(), ",")
	if sheets != "Datos,Registros,Origen" {
		t.Fatalf("unexpected sheets: %s", sheets)
	}

	cases := map[string]string{
		"A1": "Año",
		"B1": "Hombres",
		"C1": "Mujeres",
		"A2": "2020",
		"B2": "10",
		"C2": "5",
		"A3": "2021",
		"C3": "",
		"A4": "2022",
		"C4": "7",
	}
	for cell, want := range cases {
		got, err := f.GetCellValue(SheetData, cell)
		if err != nil {
			t.Fatalf("GetCellValue %s: %v", cell, err)
		}
		if got != want {
			t.Fatalf("%s: expected %q, got %q", cell, want, got)
		}
	}

	rows, err := f.GetRows(SheetRecords)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected header + 4 records, got %d rows", len(rows))
	}

	src, _ := f.GetCellValue(SheetSource, "B3")
	if src != "data/migration-data-madrid.csv" {
		t.Fatalf("unexpected source cell: %q", src)
	}

	if len(stages) == 0 || stages[len(stages)-1].Percent != 100 || stages[len(stages)-1].Stage != StageDone {
		t.Fatalf("progress should end at 100, got %+v", stages)
	}
	for i := 1; i < len(stages); i++ {
		if stages[i].Percent < stages[i-1].Percent {
			t.Fatalf("progress went backwards: %+v", stages)
		}
	}
}

func TestExportWorkbookMissingConcepts(t *testing.T) {
	t.Parallel()

	f, err := NewExporter().Export(ExportOptions{Option: sampleOption()})
	if err != nil {
		t.Fatalf("Export with empty dataset: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	rows, _ := f.GetRows(SheetData)
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	in := sampleOption().Input(sampleDataset())
	for _, ct := range []model.ChartType{model.ChartTypeBar, model.ChartTypeLine} {
		plan, err := chart.ComputePlan(ct, in, chart.DefaultLayout())
		if err != nil {
			t.Fatalf("%s: ComputePlan: %v", ct, err)
		}
		var buf bytes.Buffer
		if err := RenderHTML(&buf, plan); err != nil {
			t.Fatalf("%s: RenderHTML: %v", ct, err)
		}
		out := buf.String()
		if !strings.Contains(out, "echarts") || !strings.Contains(out, "Comparativa") {
			t.Fatalf("%s: unexpected html output", ct)
		}
		if !strings.Contains(out, "Hombres") || !strings.Contains(out, "Mujeres") {
			t.Fatalf("%s: series names missing", ct)
		}
	}
	if err := RenderHTML(&bytes.Buffer{}, nil); err == nil {
		t.Fatalf("nil plan should fail")
	}
}

func TestASCIIFilename(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Nacimientos por género.xlsx":    "nacimientos-por-genero.xlsx",
		"Inmigración vs Emigración.svg":  "inmigracion-vs-emigracion.svg",
		"¿?.png":                         "export.png",
		"Matrimonios (Total) 2024 .html": "matrimonios-total-2024.html",
	}
	for in, want := range cases {
		if got := ASCIIFilename(in); got != want {
			t.Fatalf("ASCIIFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
