package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/esmerado/demographic-analysis-madrid/internal/api"
	"github.com/esmerado/demographic-analysis-madrid/internal/chart"
	"github.com/esmerado/demographic-analysis-madrid/internal/comparison"
	"github.com/esmerado/demographic-analysis-madrid/internal/config"
	"github.com/esmerado/demographic-analysis-madrid/internal/dataset"
	"github.com/esmerado/demographic-analysis-madrid/internal/parser"
	"github.com/esmerado/demographic-analysis-madrid/internal/store"
)

//go:embed web
var staticFiles embed.FS

// Server HTTP服务器
type Server struct {
	router   *gin.Engine
	http     *http.Server
	store    *store.Store
	api      *api.Handler
	datasets *dataset.MemoryStore
	source   dataset.Options
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) (*Server, error) {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("创建数据目录失败: %w", err)
	}

	// 导入日志库：未配置时仅保存在内存中
	dbPath := cfg.Data.ImportDB
	if dbPath != "" && !filepath.IsAbs(dbPath) {
		dbPath = filepath.Join(dataDir, dbPath)
	}
	st, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("初始化导入日志库失败: %w", err)
	}

	catalog, err := comparison.FromConfig(cfg.Comparisons)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("加载对比配置失败: %w", err)
	}

	source := dataset.Options{
		Source:   config.ResolvePath(cfg.Data.Dataset),
		Encoding: cfg.Data.Encoding,
	}
	datasets := dataset.NewMemoryStore()
	layout := chart.NewLayout(cfg.Chart.Width, cfg.Chart.Height, cfg.Chart.BarDurationMs, cfg.Chart.LineDurationMs)

	handler := api.NewHandler(api.Deps{
		Store:       st,
		Datasets:    datasets,
		Coordinator: dataset.NewCoordinator(st, datasets, nil),
		Catalog:     catalog,
		Surface:     chart.NewSurface(layout, chart.SharedTooltip()),
		Source:      source,
		ExportDir:   filepath.Join(dataDir, "exports"),
	})

	var router *gin.Engine
	if devMode {
		router = gin.Default()
	} else {
		router = gin.New()
		router.Use(gin.Recovery())
	}

	s := &Server{
		router:   router,
		store:    st,
		api:      handler,
		datasets: datasets,
		source:   source,
	}
	s.setupRoutes()
	return s, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		s.api.RegisterRoutes(api)
	}

	sub, _ := fs.Sub(staticFiles, "web")
	index := func(c *gin.Context) {
		data, err := fs.ReadFile(sub, "index.html")
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	}
	s.router.GET("/", index)
	s.router.NoRoute(index)
}

// LoadInitial 启动时加载配置的数据集；失败只记录日志，服务继续可用
func (s *Server) LoadInitial(ctx context.Context) (*parser.LoadReport, error) {
	if s.source.Source == "" {
		return nil, errors.New("未配置数据集")
	}
	return s.api.Coordinator().LoadSync(ctx, s.source)
}

// Handler 返回 HTTP 处理器（用于测试）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 启动服务器，Shutdown 之后返回 nil
func (s *Server) Run(addr string) error {
	s.http = &http.Server{Addr: addr, Handler: s.router}
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 优雅关闭并释放导入日志库
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.http != nil {
		err = s.http.Shutdown(ctx)
	}
	if cerr := s.store.Close(); cerr != nil {
		log.Printf("关闭导入日志库失败: %v", cerr)
	}
	return err
}

// GetStore 会话存储（导入日志、当前选择）
func (s *Server) GetStore() *store.Store {
	return s.store
}
