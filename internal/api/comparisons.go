package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListComparisons 对比选项
// GET /api/comparisons
func (h *Handler) ListComparisons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items":    h.catalog.Options(),
		"selected": h.selectedID(),
	})
}

// SelectComparisonRequest 选择对比请求
type SelectComparisonRequest struct {
	ID string `json:"id" binding:"required"`
}

// SelectComparison 记录当前选择
// POST /api/comparisons/select
func (h *Handler) SelectComparison(c *gin.Context) {
	var req SelectComparisonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}
	if _, ok := h.catalog.Get(req.ID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "未知的对比项"})
		return
	}
	if h.store != nil {
		if err := h.store.SetSelectedComparison(req.ID); err != nil {
			log.Printf("保存选择失败: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "保存选择失败"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"selected": req.ID})
}
