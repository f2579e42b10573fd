package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nguyenxuanhoa493/check-cert/internal/aggregate"
	"github.com/nguyenxuanhoa493/check-cert/internal/filter"
)

// msgNoFile 未上传时的提示。这是初始空闲态，不是错误。
const msgNoFile = "Chưa upload file Excel"

// GetRows 当前筛选视图
// GET /api/rows
func (h *Handler) GetRows(c *gin.Context) {
	ds := h.session.Dataset()
	if ds == nil {
		c.JSON(http.StatusOK, gin.H{"loaded": false, "message": msgNoFile})
		return
	}

	state := h.session.Filter()
	filtered := filter.Apply(ds.Rows, state)

	cols := ds.Columns()
	rows := make([][]string, len(filtered))
	for i, r := range filtered {
		rows[i] = ds.RowValues(r)
	}

	c.JSON(http.StatusOK, gin.H{
		"loaded":   true,
		"columns":  cols,
		"rows":     rows,
		"rowCount": len(rows),
		"colCount": len(cols),
		"filter":   state,
	})
}

// GetSummary status × sync 交叉表
// GET /api/summary
func (h *Handler) GetSummary(c *gin.Context) {
	ds := h.session.Dataset()
	if ds == nil {
		c.JSON(http.StatusOK, gin.H{"loaded": false, "message": msgNoFile})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"loaded":  true,
		"summary": aggregate.Build(ds.Rows),
	})
}
