package api

import (
	"log"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/esmerado/demographic-analysis-madrid/internal/store"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Loaded     bool             `json:"loaded"`     // 是否已加载数据集
	Source     string           `json:"source"`     // 数据源
	Encoding   string           `json:"encoding"`   // 使用的编码
	Size       string           `json:"size"`       // 数据源大小（可读）
	Concepts   int              `json:"concepts"`   // 分组数
	Records    int              `json:"records"`    // 记录总数
	Selected   string           `json:"selected"`   // 当前选中的对比
	LastImport *store.ImportLog `json:"lastImport"` // 最近一次加载
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		Loaded: h.datasets.Loaded(),
		Source: h.source.Source,
	}
	ds := h.datasets.Dataset()
	resp.Concepts = len(ds)
	resp.Records = ds.RecordCount()
	if rep := h.datasets.Report(); rep != nil {
		resp.Source = rep.Source
		resp.Encoding = rep.Encoding
		resp.Size = humanize.Bytes(uint64(rep.Bytes))
	}

	resp.Selected = h.selectedID()
	if h.store != nil {
		last, err := h.store.LastImportLog()
		if err != nil {
			log.Printf("读取导入日志失败: %v", err)
		}
		resp.LastImport = last
	}

	c.JSON(http.StatusOK, resp)
}

// selectedID 已记录的选择，没有记录或已不在目录中时回落到默认项
func (h *Handler) selectedID() string {
	if h.store != nil {
		if id, err := h.store.GetSelectedComparison(); err == nil && id != "" {
			if _, ok := h.catalog.Get(id); ok {
				return id
			}
		}
	}
	if o, ok := h.catalog.Default(); ok {
		return o.ID
	}
	return ""
}
