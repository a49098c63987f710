package exporter

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/esmerado/demographic-analysis-madrid/internal/comparison"
	"github.com/esmerado/demographic-analysis-madrid/internal/model"
	"github.com/esmerado/demographic-analysis-madrid/internal/parser"
)

const (
	SheetData    = "Datos"
	SheetRecords = "Registros"
	SheetSource  = "Origen"
)

// Exporter 对比数据导出为 Excel 工作簿
//
// 工作簿包含：按年份对齐的对比表（附原生图表）、两个 concept 的原始记录、数据来源信息。
type Exporter struct {
	now func() time.Time
}

// NewExporter 创建导出器
func NewExporter() *Exporter {
	return &Exporter{now: time.Now}
}

// ExportOptions 导出选项
type ExportOptions struct {
	Option   comparison.Option
	Dataset  model.Dataset
	Report   *parser.LoadReport
	Progress func(ProgressEvent)
}

// Export 生成工作簿，调用方负责 Close
func (e *Exporter) Export(opts ExportOptions) (*excelize.File, error) {
	progress := progressFunc(opts.Progress)
	f := excelize.NewFile()
	progress.report(StagePrepare)

	if err := f.SetSheetName("Sheet1", SheetData); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("重命名工作表失败: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4F46E5"}},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("创建样式失败: %w", err)
	}
	number, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("创建样式失败: %w", err)
	}

	in := opts.Option.Input(opts.Dataset)
	rows := alignByYear(in)
	if err := writeDataSheet(f, opts.Option, rows, header, number); err != nil {
		_ = f.Close()
		return nil, err
	}
	progress.report(StageData)

	if len(rows) > 0 {
		if err := addNativeChart(f, opts.Option, len(rows)); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	progress.report(StageChart)

	if err := writeRecordsSheet(f, opts.Option, opts.Dataset, header, number); err != nil {
		_ = f.Close()
		return nil, err
	}
	progress.report(StageRecords)

	if err := e.writeSourceSheet(f, opts.Report, header); err != nil {
		_ = f.Close()
		return nil, err
	}
	progress.report(StageSource)

	f.SetActiveSheet(0)
	progress.report(StageDone)
	return f, nil
}

type alignedRow struct {
	year string
	a    float64
	b    *float64
}

// alignByYear 按年份对齐两个序列：先 A 的年份（首条为准），再追加 B 独有的年份
func alignByYear(in model.ChartInput) []alignedRow {
	index := make(map[string]int)
	var rows []alignedRow
	for _, p := range in.SeriesA {
		if _, ok := index[p.Year]; ok {
			continue
		}
		index[p.Year] = len(rows)
		rows = append(rows, alignedRow{year: p.Year, a: p.Value})
	}
	for _, p := range in.SeriesB {
		v := p.Value
		if i, ok := index[p.Year]; ok {
			if rows[i].b == nil {
				rows[i].b = &v
			}
			continue
		}
		index[p.Year] = len(rows)
		rows = append(rows, alignedRow{year: p.Year, b: &v})
	}
	return rows
}

func writeDataSheet(f *excelize.File, o comparison.Option, rows []alignedRow, header, number int) error {
	heads := []interface{}{"Año", labelOr(o.LabelA, "Serie A")}
	if o.ConceptB != "" {
		heads = append(heads, labelOr(o.LabelB, "Serie B"))
	}
	if err := f.SetSheetRow(SheetData, "A1", &heads); err != nil {
		return fmt.Errorf("写入表头失败: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(heads), 1)
	if err := f.SetCellStyle(SheetData, "A1", last, header); err != nil {
		return fmt.Errorf("设置表头样式失败: %w", err)
	}

	for i, r := range rows {
		row := []interface{}{r.year, r.a}
		if o.ConceptB != "" {
			if r.b != nil {
				row = append(row, *r.b)
			} else {
				row = append(row, nil)
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetData, cell, &row); err != nil {
			return fmt.Errorf("写入第 %d 行失败: %w", i+2, err)
		}
	}
	if len(rows) > 0 {
		end, _ := excelize.CoordinatesToCellName(len(heads), len(rows)+1)
		if err := f.SetCellStyle(SheetData, "B2", end, number); err != nil {
			return fmt.Errorf("设置数值格式失败: %w", err)
		}
	}
	return f.SetColWidth(SheetData, "A", "C", 22)
}

func addNativeChart(f *excelize.File, o comparison.Option, n int) error {
	kind := excelize.Col
	if o.ChartType == model.ChartTypeLine {
		kind = excelize.Line
	}
	categories := fmt.Sprintf("%s!$A$2:$A$%d", SheetData, n+1)
	series := []excelize.ChartSeries{{
		Name:       fmt.Sprintf("%s!$B$1", SheetData),
		Categories: categories,
		Values:     fmt.Sprintf("%s!$B$2:$B$%d", SheetData, n+1),
	}}
	if o.ConceptB != "" {
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$C$1", SheetData),
			Categories: categories,
			Values:     fmt.Sprintf("%s!$C$2:$C$%d", SheetData, n+1),
		})
	}
	err := f.AddChart(SheetData, "E2", &excelize.Chart{
		Type:   kind,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: o.Title}},
		Legend: excelize.ChartLegend{Position: "bottom"},
		Dimension: excelize.ChartDimension{
			Width:  800,
			Height: 400,
		},
	})
	if err != nil {
		return fmt.Errorf("添加图表失败: %w", err)
	}
	return nil
}

func writeRecordsSheet(f *excelize.File, o comparison.Option, ds model.Dataset, header, number int) error {
	if _, err := f.NewSheet(SheetRecords); err != nil {
		return fmt.Errorf("创建工作表失败: %w", err)
	}
	heads := []interface{}{"Concepto", "Territorio", "Año", "Valor"}
	if err := f.SetSheetRow(SheetRecords, "A1", &heads); err != nil {
		return fmt.Errorf("写入表头失败: %w", err)
	}
	if err := f.SetCellStyle(SheetRecords, "A1", "D1", header); err != nil {
		return fmt.Errorf("设置表头样式失败: %w", err)
	}

	concepts := []string{o.ConceptA}
	if o.ConceptB != "" && o.ConceptB != o.ConceptA {
		concepts = append(concepts, o.ConceptB)
	}
	row := 2
	for _, c := range concepts {
		for _, r := range ds.FindByConcept(c) {
			cell, _ := excelize.CoordinatesToCellName(1, row)
			values := []interface{}{r.Concept, r.Name, r.Year, r.Value}
			if err := f.SetSheetRow(SheetRecords, cell, &values); err != nil {
				return fmt.Errorf("写入第 %d 行失败: %w", row, err)
			}
			row++
		}
	}
	if row > 2 {
		if err := f.SetCellStyle(SheetRecords, "D2", fmt.Sprintf("D%d", row-1), number); err != nil {
			return fmt.Errorf("设置数值格式失败: %w", err)
		}
	}
	if err := f.SetColWidth(SheetRecords, "A", "A", 60); err != nil {
		return err
	}
	return f.SetColWidth(SheetRecords, "B", "D", 18)
}

func (e *Exporter) writeSourceSheet(f *excelize.File, rep *parser.LoadReport, header int) error {
	if _, err := f.NewSheet(SheetSource); err != nil {
		return fmt.Errorf("创建工作表失败: %w", err)
	}
	rows := [][]interface{}{
		{"Campo", "Valor"},
		{"Generado", e.now().Format(time.RFC3339)},
	}
	if rep != nil {
		rows = append(rows,
			[]interface{}{"Fuente", rep.Source},
			[]interface{}{"Codificación", rep.Encoding},
			[]interface{}{"Bytes", rep.Bytes},
			[]interface{}{"Filas leídas", rep.Stats.TotalRows},
			[]interface{}{"Filas conservadas", rep.Stats.KeptRows},
			[]interface{}{"Filas descartadas", rep.Stats.DroppedTotal + rep.Stats.DroppedEmpty},
			[]interface{}{"Conceptos", rep.Concepts},
		)
	}
	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SheetSource, cell, &rows[i]); err != nil {
			return fmt.Errorf("写入来源信息失败: %w", err)
		}
	}
	if err := f.SetCellStyle(SheetSource, "A1", "B1", header); err != nil {
		return fmt.Errorf("设置表头样式失败: %w", err)
	}
	return f.SetColWidth(SheetSource, "A", "B", 28)
}

func labelOr(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return label
}
