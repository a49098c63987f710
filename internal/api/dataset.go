package api

import (
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/esmerado/demographic-analysis-madrid/internal/dataset"
	"github.com/esmerado/demographic-analysis-madrid/internal/parser"
)

// ReloadRequest 重新加载请求；数据源只取启动配置，编码为空时沿用配置
type ReloadRequest struct {
	Encoding string `json:"encoding"`
}

// Reload 重新加载数据集 (SSE 流式响应；wait=1 时同步返回加载报告)
// POST /api/reload
func (h *Handler) Reload(c *gin.Context) {
	var req ReloadRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
			return
		}
	}
	opts := h.source
	if e := strings.TrimSpace(req.Encoding); e != "" {
		opts.Encoding = e
	}
	if opts.Source == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未配置数据源"})
		return
	}

	if c.Query("wait") == "1" {
		report, err := h.coord.LoadSync(c.Request.Context(), opts)
		if err != nil {
			c.JSON(errorStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, report)
		return
	}

	send, ok := startSSE(c)
	if !ok {
		return
	}
	for event := range h.coord.Load(c.Request.Context(), opts) {
		send(event)
	}
}

// ConceptSummary 分组概要
type ConceptSummary struct {
	Concept string `json:"concept"`
	Records int    `json:"records"`
}

// ListConcepts 列出所有 concept，q 按关键词过滤（逗号分隔，忽略大小写与重音）
// GET /api/concepts
func (h *Handler) ListConcepts(c *gin.Context) {
	ds, ok := h.requireDataset(c)
	if !ok {
		return
	}
	var keywords []string
	for _, kw := range strings.Split(c.Query("q"), ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}

	items := make([]ConceptSummary, 0, len(ds))
	for _, g := range ds {
		if len(keywords) > 0 && !parser.ContainsAny(g.Concept, keywords) {
			continue
		}
		items = append(items, ConceptSummary{Concept: g.Concept, Records: len(g.Records)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Concept < items[j].Concept })
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

// GetConceptRecords 按名称精确查找，不存在时返回空数组
// GET /api/concepts/records?name=
func (h *Handler) GetConceptRecords(c *gin.Context) {
	if _, ok := h.requireDataset(c); !ok {
		return
	}
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 name 参数"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"concept": name,
		"records": h.datasets.FindByConcept(name),
	})
}

// ListImports 本次会话的加载记录
// GET /api/imports?limit=
func (h *Handler) ListImports(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusOK, gin.H{"items": []any{}})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	logs, err := h.store.ListImportLogs(limit)
	if err != nil {
		log.Printf("读取导入日志失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取导入日志失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": logs})
}

// Coordinator 暴露给启动流程做首次加载
func (h *Handler) Coordinator() *dataset.Coordinator { return h.coord }
