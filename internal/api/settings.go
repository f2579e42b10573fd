package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nguyenxuanhoa493/check-cert/internal/store"
)

type settingsRequest struct {
	ShareBackend string `json:"shareBackend"`
}

func (h *Handler) currentSettings() gin.H {
	return gin.H{
		"shareBackend":   h.store.GetSettingDefault(store.SettingShareBackend, h.cfg.Share.Backend),
		"layoutOverride": h.store.GetSettingDefault(store.SettingLayoutOverride, ""),
	}
}

// GetSettings 当前生效的设置
// GET /api/settings
func (h *Handler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.currentSettings())
}

// UpdateSettings 修改设置
// POST /api/settings
//
// 快照后端的选择会持久化，重启后仍然生效；当前进程里也立即切换，
// 之后的分享走新后端（已创建的快照留在旧后端里）。
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Yêu cầu không hợp lệ"})
		return
	}

	if req.ShareBackend != "" {
		if req.ShareBackend != "local" && req.ShareBackend != "gist" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Backend chia sẻ không hợp lệ"})
			return
		}
		if err := h.store.SetSetting(store.SettingShareBackend, req.ShareBackend); err != nil {
			log.Printf("persist share backend: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Lưu cài đặt thất bại"})
			return
		}
		h.mu.Lock()
		h.shares = h.buildShareStore(req.ShareBackend)
		h.mu.Unlock()
	}

	c.JSON(http.StatusOK, h.currentSettings())
}
