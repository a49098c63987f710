package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/esmerado/demographic-analysis-madrid/internal/chart"
	"github.com/esmerado/demographic-analysis-madrid/internal/comparison"
	"github.com/esmerado/demographic-analysis-madrid/internal/config"
	"github.com/esmerado/demographic-analysis-madrid/internal/dataset"
	"github.com/esmerado/demographic-analysis-madrid/internal/exporter"
	"github.com/esmerado/demographic-analysis-madrid/internal/model"
	"github.com/esmerado/demographic-analysis-madrid/internal/parser"
)

var (
	source  = flag.String("dataset", "", "CSV 数据集路径或 http(s) 地址 (默认使用配置文件)")
	outDir  = flag.String("out", "", "输出目录 (默认为数据目录下的 snapshots/)")
	only    = flag.String("id", "", "只导出指定的对比项")
	timeout = flag.Duration("timeout", 2*time.Minute, "数据集下载超时")
)

func main() {
	flag.Parse()

	cfg, _, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Printf("加载配置失败，使用默认配置: %v", err)
		cfg = config.DefaultConfig()
	}
	src := config.ResolvePath(cfg.Data.Dataset)
	if *source != "" {
		src = *source
	}

	catalog, err := comparison.FromConfig(cfg.Comparisons)
	if err != nil {
		log.Fatalf("加载对比配置失败: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	ds, report, err := dataset.LoadDataset(ctx, src, dataset.LoadOptions{Encoding: cfg.Data.Encoding})
	if err != nil {
		log.Fatalf("加载数据集失败: %v", err)
	}
	fmt.Printf("已加载 %s: %d 个概念, %d 行\n", report.Source, report.Concepts, report.Stats.KeptRows)

	if *outDir == "" {
		dataDir, err := config.EnsureDataDir(cfg)
		if err != nil {
			log.Fatalf("创建数据目录失败: %v", err)
		}
		*outDir = filepath.Join(dataDir, "snapshots")
	}
	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("创建输出目录失败: %v", err)
	}

	layout := chart.NewLayout(cfg.Chart.Width, cfg.Chart.Height, cfg.Chart.BarDurationMs, cfg.Chart.LineDurationMs)
	written := 0
	for _, o := range catalog.Options() {
		if *only != "" && o.ID != *only {
			continue
		}
		n, err := snapshot(o, ds, report, layout)
		if err != nil {
			log.Printf("[%s] 导出失败: %v", o.ID, err)
			continue
		}
		written += n
	}
	fmt.Printf("完成: 写入 %d 个文件到 %s\n", written, *outDir)
}

// snapshot 为单个对比项写出 svg/png/html/xlsx，无数据时跳过图表只写工作簿
func snapshot(o comparison.Option, ds model.Dataset, report *parser.LoadReport, layout chart.Layout) (int, error) {
	base := exporter.ASCIIFilename(o.ID)
	written := 0

	plan, err := chart.ComputePlan(o.ChartType, o.Input(ds), layout)
	switch {
	case errors.Is(err, model.ErrRenderSkipped):
		log.Printf("[%s] 无数据，跳过图表", o.ID)
	case err != nil:
		return 0, err
	default:
		writers := []struct {
			ext   string
			write func(io.Writer, *chart.DrawPlan) error
		}{
			{".svg", chart.WriteSVG},
			{".png", chart.WritePNG},
			{".html", exporter.RenderHTML},
		}
		for _, wr := range writers {
			var buf bytes.Buffer
			if err := wr.write(&buf, plan); err != nil {
				return written, fmt.Errorf("%s: %w", wr.ext, err)
			}
			if err := os.WriteFile(filepath.Join(*outDir, base+wr.ext), buf.Bytes(), 0644); err != nil {
				return written, err
			}
			written++
		}
	}

	f, err := exporter.NewExporter().Export(exporter.ExportOptions{Option: o, Dataset: ds, Report: report})
	if err != nil {
		return written, err
	}
	defer f.Close()
	if err := f.SaveAs(filepath.Join(*outDir, base+".xlsx")); err != nil {
		return written, err
	}
	return written + 1, nil
}
