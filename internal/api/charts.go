package api

import (
	"bytes"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/esmerado/demographic-analysis-madrid/internal/chart"
	"github.com/esmerado/demographic-analysis-madrid/internal/comparison"
	"github.com/esmerado/demographic-analysis-madrid/internal/exporter"
	"github.com/esmerado/demographic-analysis-madrid/internal/model"
)

// resolveOption 解析路径中的对比 ID，"selected" 表示当前选择
func (h *Handler) resolveOption(c *gin.Context) (comparison.Option, model.Dataset, bool) {
	id := c.Param("id")
	if id == "selected" {
		id = h.selectedID()
	}
	o, ok := h.catalog.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "未知的对比项"})
		return comparison.Option{}, nil, false
	}
	ds, ok := h.requireDataset(c)
	if !ok {
		return comparison.Option{}, nil, false
	}
	return o, ds, true
}

// renderToSurface 在共享绘图面上渲染；无数据时写 204 并返回 false
func (h *Handler) renderToSurface(c *gin.Context) (*chart.DrawPlan, bool) {
	o, ds, ok := h.resolveOption(c)
	if !ok {
		return nil, false
	}
	plan, err := chart.Render(h.surface, o.ChartType, o.Input(ds))
	if err != nil {
		if errors.Is(err, model.ErrRenderSkipped) {
			c.Status(http.StatusNoContent)
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return plan, true
}

// computePlan 离屏计算，不影响共享绘图面
func (h *Handler) computePlan(c *gin.Context) (*chart.DrawPlan, comparison.Option, bool) {
	o, ds, ok := h.resolveOption(c)
	if !ok {
		return nil, o, false
	}
	plan, err := chart.ComputePlan(o.ChartType, o.Input(ds), h.surface.Layout())
	if err != nil {
		if errors.Is(err, model.ErrRenderSkipped) {
			c.Status(http.StatusNoContent)
			return nil, o, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, o, false
	}
	return plan, o, true
}

// GetChart 渲染对比并返回绘图计划
// GET /api/charts/:id
func (h *Handler) GetChart(c *gin.Context) {
	plan, ok := h.renderToSurface(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, plan)
}

// GetChartSVG 渲染对比并返回 SVG
// GET /api/charts/:id/svg
func (h *Handler) GetChartSVG(c *gin.Context) {
	plan, ok := h.renderToSurface(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := chart.WriteSVG(&buf, plan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/svg+xml; charset=utf-8", buf.Bytes())
}

// GetChartPNG 终态 PNG 快照
// GET /api/charts/:id/png
func (h *Handler) GetChartPNG(c *gin.Context) {
	plan, _, ok := h.computePlan(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := chart.WritePNG(&buf, plan); err != nil {
		log.Printf("生成 PNG 失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成 PNG 失败"})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// GetChartHTML 独立 ECharts 页面
// GET /api/charts/:id/html
func (h *Handler) GetChartHTML(c *gin.Context) {
	plan, _, ok := h.computePlan(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := exporter.RenderHTML(&buf, plan); err != nil {
		log.Printf("生成 HTML 失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成 HTML 失败"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// SurfaceResponse 当前绘图面
type SurfaceResponse struct {
	Generation uint64             `json:"generation"`
	Marks      int                `json:"marks"`
	Plan       *chart.DrawPlan    `json:"plan"`
	Tooltip    chart.TooltipState `json:"tooltip"`
}

// GetSurface 当前绘图面状态
// GET /api/surface
func (h *Handler) GetSurface(c *gin.Context) {
	c.JSON(http.StatusOK, SurfaceResponse{
		Generation: h.surface.Generation(),
		Marks:      h.surface.MarkCount(),
		Plan:       h.surface.Plan(),
		Tooltip:    h.surface.Tooltip().State(),
	})
}

// PointerRequest 指针事件
type PointerRequest struct {
	Kind   string  `json:"kind" binding:"required"` // enter/move/leave
	MarkID string  `json:"markId" binding:"required"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

var pointerKinds = map[string]chart.PointerKind{
	"enter": chart.PointerEnter,
	"move":  chart.PointerMove,
	"leave": chart.PointerLeave,
}

// Pointer 把指针事件派发到绘图面，返回提示状态
// POST /api/surface/pointer
func (h *Handler) Pointer(c *gin.Context) {
	var req PointerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}
	kind, ok := pointerKinds[req.Kind]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未知的事件类型"})
		return
	}
	handled := h.surface.Dispatch(chart.PointerEvent{Kind: kind, MarkID: req.MarkID, PageX: req.X, PageY: req.Y})
	c.JSON(http.StatusOK, gin.H{
		"handled": handled,
		"tooltip": h.surface.Tooltip().State(),
	})
}
