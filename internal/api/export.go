package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/nguyenxuanhoa493/check-cert/internal/exporter"
	"github.com/nguyenxuanhoa493/check-cert/internal/filter"
)

type exportRequest struct {
	// Mode filtered 或 summary
	Mode string `json:"mode"`
}

// Export 生成导出文件，返回一次性下载 token
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Yêu cầu không hợp lệ"})
		return
	}

	ds := h.session.Dataset()
	if ds == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoFile})
		return
	}

	var (
		file     *excelize.File
		filename string
		err      error
	)
	switch req.Mode {
	case "summary":
		// 三分类从完整数据集出，不受当前筛选影响
		file, err = exporter.Summary(ds, h.cfg.Reconcile.SuccessStatus)
		filename = exporter.SummaryFilename
	case "filtered", "":
		file, err = exporter.Filtered(ds, filter.Apply(ds.Rows, h.session.Filter()))
		filename = exporter.FilteredFilename
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Chế độ export không hợp lệ"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Tạo file Excel thất bại"})
		return
	}
	defer file.Close()

	tempPath := filepath.Join(os.TempDir(), fmt.Sprintf("check_cert_export_%d_%d.xlsx", time.Now().UnixNano(), os.Getpid()))
	if err := file.SaveAs(tempPath); err != nil {
		_ = os.Remove(tempPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ghi file export thất bại"})
		return
	}

	token := h.downloads.put(tempPath, filename, 10*time.Minute)
	c.JSON(http.StatusOK, gin.H{
		"token":       token,
		"filename":    filename,
		"downloadUrl": "/api/export/download/" + token,
	})
}

// DownloadExport 下载导出文件（一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Thiếu token"})
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link tải đã hết hạn"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "File export không tồn tại"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+item.filename+`"`)
	c.Header("Content-Type", exporter.XLSXContentType)
	c.File(item.filePath)

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}
