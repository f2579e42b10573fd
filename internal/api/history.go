package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetHistory 最近的上传历史
// GET /api/history
func (h *Handler) GetHistory(c *gin.Context) {
	logs, err := h.store.ListUploadLogs(20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": logs})
}
