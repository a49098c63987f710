package api

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/esmerado/demographic-analysis-madrid/internal/exporter"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	downloadTTL     = 10 * time.Minute
)

// ExportChart 导出对比工作簿，返回一次性下载地址
// POST /api/charts/:id/export
func (h *Handler) ExportChart(c *gin.Context) {
	o, ds, ok := h.resolveOption(c)
	if !ok {
		return
	}

	var stages []exporter.ProgressEvent
	file, err := h.exporter.Export(exporter.ExportOptions{
		Option:   o,
		Dataset:  ds,
		Report:   h.datasets.Report(),
		Progress: func(p exporter.ProgressEvent) { stages = append(stages, p) },
	})
	if err != nil {
		log.Printf("导出失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "导出失败: " + err.Error()})
		return
	}
	defer file.Close()

	dir := h.exportDir
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, fmt.Sprintf("demografia_export_%s.xlsx", uuid.NewString()))
	if err := file.SaveAs(path); err != nil {
		_ = os.Remove(path)
		log.Printf("写入导出文件失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "写入导出文件失败"})
		return
	}

	filename := o.Label + ".xlsx"
	token := h.downloads.put(path, filename, downloadTTL)
	c.JSON(http.StatusOK, gin.H{
		"token":       token,
		"filename":    filename,
		"downloadUrl": "/api/export/download/" + token,
		"stages":      stages,
	})
}

// DownloadExport 下载导出的 Excel 文件（一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接已失效"})
		return
	}
	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "导出文件不存在"})
		return
	}

	c.Header("Content-Disposition", buildExportContentDisposition(item.filename))
	c.Header("Content-Type", xlsxContentType)
	c.File(item.filePath)

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}

// buildExportContentDisposition ASCII 文件名作为回退，原始名称放在 filename*
func buildExportContentDisposition(filename string) string {
	return fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s",
		exporter.ASCIIFilename(filename), url.PathEscape(filename))
}
