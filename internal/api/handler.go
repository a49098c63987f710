package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/esmerado/demographic-analysis-madrid/internal/chart"
	"github.com/esmerado/demographic-analysis-madrid/internal/comparison"
	"github.com/esmerado/demographic-analysis-madrid/internal/dataset"
	"github.com/esmerado/demographic-analysis-madrid/internal/exporter"
	"github.com/esmerado/demographic-analysis-madrid/internal/model"
	"github.com/esmerado/demographic-analysis-madrid/internal/store"
)

// Deps 处理器依赖
type Deps struct {
	Store       *store.Store
	Datasets    *dataset.MemoryStore
	Coordinator *dataset.Coordinator
	Catalog     *comparison.Catalog
	Surface     *chart.Surface
	Source      dataset.Options // 重新加载时使用的数据源
	ExportDir   string          // 为空时使用系统临时目录
}

// Handler API 处理器
type Handler struct {
	store     *store.Store
	datasets  *dataset.MemoryStore
	coord     *dataset.Coordinator
	catalog   *comparison.Catalog
	surface   *chart.Surface
	exporter  *exporter.Exporter
	downloads *exportDownloadStore
	source    dataset.Options
	exportDir string
}

// NewHandler 创建 API 处理器
func NewHandler(d Deps) *Handler {
	if d.Datasets == nil {
		d.Datasets = dataset.NewMemoryStore()
	}
	if d.Coordinator == nil {
		d.Coordinator = dataset.NewCoordinator(d.Store, d.Datasets, nil)
	}
	if d.Catalog == nil {
		d.Catalog = comparison.DefaultCatalog()
	}
	if d.Surface == nil {
		d.Surface = chart.NewSurface(chart.DefaultLayout(), nil)
	}
	return &Handler{
		store:     d.Store,
		datasets:  d.Datasets,
		coord:     d.Coordinator,
		catalog:   d.Catalog,
		surface:   d.Surface,
		exporter:  exporter.NewExporter(),
		downloads: newExportDownloadStore(),
		source:    d.Source,
		exportDir: d.ExportDir,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 数据集
	router.POST("/reload", h.Reload)
	router.GET("/concepts", h.ListConcepts)
	router.GET("/concepts/records", h.GetConceptRecords)
	router.GET("/imports", h.ListImports)

	// 对比选择
	router.GET("/comparisons", h.ListComparisons)
	router.POST("/comparisons/select", h.SelectComparison)

	// 图表
	router.GET("/charts/:id", h.GetChart)
	router.GET("/charts/:id/svg", h.GetChartSVG)
	router.GET("/charts/:id/png", h.GetChartPNG)
	router.GET("/charts/:id/html", h.GetChartHTML)
	router.GET("/surface", h.GetSurface)
	router.POST("/surface/pointer", h.Pointer)

	// 导出
	router.POST("/charts/:id/export", h.ExportChart)
	router.GET("/export/download/:token", h.DownloadExport)
}

// requireDataset 数据集尚未加载时返回 503
func (h *Handler) requireDataset(c *gin.Context) (model.Dataset, bool) {
	if !h.datasets.Loaded() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "数据集尚未加载"})
		return nil, false
	}
	return h.datasets.Dataset(), true
}

// errorStatus 领域错误到 HTTP 状态码
func errorStatus(err error) int {
	var de *model.DecodeError
	var fe *model.FetchError
	switch {
	case errors.As(err, &de):
		return http.StatusUnprocessableEntity
	case errors.As(err, &fe):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
