package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nguyenxuanhoa493/check-cert/internal/filter"
	"github.com/nguyenxuanhoa493/check-cert/internal/model"
)

type filterRequest struct {
	Status string           `json:"status"`
	Sync   model.SyncFilter `json:"sync"`
}

// SetFilter 设置筛选条件
// POST /api/filter
//
// 交叉表的单元格快捷方式也走这里：点单元格就是一次带 (status, sync)
// 的完整设置；点行合计就是 (status, all)。
func (h *Handler) SetFilter(c *gin.Context) {
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Yêu cầu không hợp lệ"})
		return
	}

	if req.Status == "" {
		req.Status = model.StatusAll
	}
	if req.Sync == "" {
		req.Sync = model.SyncAll
	}
	if !req.Sync.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Giá trị sync không hợp lệ"})
		return
	}

	state := model.FilterState{Status: req.Status, Sync: req.Sync}
	h.session.SetFilter(state)

	rowCount := 0
	if ds := h.session.Dataset(); ds != nil {
		rowCount = len(filter.Apply(ds.Rows, state))
	}

	c.JSON(http.StatusOK, gin.H{
		"filter":   state,
		"rowCount": rowCount,
	})
}

// ResetFilter 重置为全部/全部
// POST /api/filter/reset
func (h *Handler) ResetFilter(c *gin.Context) {
	h.session.ResetFilter()

	rowCount := 0
	if ds := h.session.Dataset(); ds != nil {
		rowCount = len(ds.Rows)
	}

	c.JSON(http.StatusOK, gin.H{
		"filter":   h.session.Filter(),
		"rowCount": rowCount,
	})
}
