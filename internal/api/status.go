package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nguyenxuanhoa493/check-cert/internal/model"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Loaded         bool              `json:"loaded"`         // 是否已有数据集
	LMSFile        string            `json:"lmsFile"`        // 最近上传的 LMS 文件名
	DMSFile        string            `json:"dmsFile"`        // 最近上传的 DMS 文件名
	RowCount       int               `json:"rowCount"`       // 数据集行数
	ReferenceCount int               `json:"referenceCount"` // 参考文件行数
	DecodeFailures int               `json:"decodeFailures"` // payload 解析失败行数
	Filter         model.FilterState `json:"filter"`         // 当前筛选条件
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{Filter: h.session.Filter()}
	resp.LMSFile, resp.DMSFile = h.session.Files()

	if ds := h.session.Dataset(); ds != nil {
		resp.Loaded = true
		resp.RowCount = len(ds.Rows)
		resp.DecodeFailures = ds.DecodeFailures
	}
	if ref := h.session.Reference(); ref != nil {
		resp.ReferenceCount = len(ref.Rows)
	}

	c.JSON(http.StatusOK, resp)
}
