package api

import (
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nguyenxuanhoa493/check-cert/internal/model"
	"github.com/nguyenxuanhoa493/check-cert/internal/parser"
	"github.com/nguyenxuanhoa493/check-cert/internal/reconcile"
	"github.com/nguyenxuanhoa493/check-cert/internal/store"
)

// resolveLayout 确定本次上传的列布局
//
// 优先级：显式 layout 参数 > columns 列名探测 > 上次记住的选择 > 旧版。
// 显式选择会记住，下次上传不用再传。
func (h *Handler) resolveLayout(c *gin.Context) model.Layout {
	switch c.PostForm("layout") {
	case string(model.LayoutLegacy):
		_ = h.store.SetSetting(store.SettingLayoutOverride, string(model.LayoutLegacy))
		return model.LayoutLegacy
	case string(model.LayoutV2):
		_ = h.store.SetSetting(store.SettingLayoutOverride, string(model.LayoutV2))
		return model.LayoutV2
	}

	if cols := c.PostForm("columns"); cols != "" {
		return parser.DetectLayout(strings.Split(cols, ","))
	}

	if v := h.store.GetSettingDefault(store.SettingLayoutOverride, ""); v != "" {
		return model.Layout(v)
	}
	return model.LayoutLegacy
}

// UploadLMS 上传 LMS Excel 并对账
// POST /api/upload/lms
func (h *Handler) UploadLMS(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Không tìm thấy file upload"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không đọc được file upload"})
		return
	}
	defer f.Close()

	ds, err := parser.ParseLMS(f, parser.Options{
		Layout:   h.resolveLayout(c),
		SkipRows: h.cfg.Reconcile.SkipRows,
	})
	if err != nil {
		log.Printf("parse lms %q: %v", fileHeader.Filename, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "File Excel không hợp lệ"})
		return
	}

	reconcile.Reconcile(ds, h.session.Reference())
	h.session.SetDataset(ds, fileHeader.Filename)

	synced := syncedCount(ds)
	if _, err := h.store.CreateUploadLog(uuid.New().String(), "lms", fileHeader.Filename, len(ds.Rows), synced); err != nil {
		log.Printf("upload log: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"layout":         ds.Layout,
		"rowCount":       len(ds.Rows),
		"syncedCount":    synced,
		"decodeFailures": ds.DecodeFailures,
	})
}

// UploadDMS 上传 DMS 参考文件（CSV），已有数据集时立即重新对账
// POST /api/upload/dms
func (h *Handler) UploadDMS(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Không tìm thấy file upload"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không đọc được file upload"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không đọc được file upload"})
		return
	}

	ref, err := parser.ParseDMS(data)
	if err != nil {
		log.Printf("parse dms %q: %v", fileHeader.Filename, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "File CSV không hợp lệ"})
		return
	}

	h.session.SetReference(ref, fileHeader.Filename)

	synced := 0
	if ds := h.session.Dataset(); ds != nil {
		reconcile.Reconcile(ds, ref)
		synced = syncedCount(ds)
	}

	if _, err := h.store.CreateUploadLog(uuid.New().String(), "dms", fileHeader.Filename, len(ref.Rows), synced); err != nil {
		log.Printf("upload log: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"columns":     ref.Columns,
		"rowCount":    len(ref.Rows),
		"syncedCount": synced,
	})
}

func syncedCount(ds *model.Dataset) int {
	n := 0
	for _, r := range ds.Rows {
		if r.SyncDone {
			n++
		}
	}
	return n
}
