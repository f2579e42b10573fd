package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nguyenxuanhoa493/check-cert/internal/snapshot"
)

// CreateShare 把完整（未筛选）数据集存为快照，返回分享标识
// POST /api/share
func (h *Handler) CreateShare(c *gin.Context) {
	ds := h.session.Dataset()
	if ds == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoFile})
		return
	}

	id, err := h.shareStore().Put(ds.Rows)
	if err != nil {
		if errors.Is(err, snapshot.ErrUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Chưa cấu hình token chia sẻ"})
			return
		}
		log.Printf("share put: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Tạo link chia sẻ thất bại"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":  id,
		"url": "?share=" + id,
	})
}

// LoadShare 按标识载入快照，替换当前会话数据集
// GET /api/share/:id
//
// 走这条路时不经过解析/对账：快照里已经是对账完的行。
func (h *Handler) LoadShare(c *gin.Context) {
	id := c.Param("id")

	rows, err := h.shareStore().Get(id)
	if err != nil {
		if errors.Is(err, snapshot.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy dữ liệu chia sẻ"})
			return
		}
		log.Printf("share get %s: %v", id, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Không tải được dữ liệu chia sẻ"})
		return
	}

	ds := snapshot.Restore(rows)
	h.session.SetDataset(ds, "share:"+id)

	c.JSON(http.StatusOK, gin.H{
		"id":       id,
		"layout":   ds.Layout,
		"rowCount": len(ds.Rows),
	})
}
