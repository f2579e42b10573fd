package api

import (
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/nguyenxuanhoa493/check-cert/internal/config"
	"github.com/nguyenxuanhoa493/check-cert/internal/session"
	"github.com/nguyenxuanhoa493/check-cert/internal/snapshot"
	"github.com/nguyenxuanhoa493/check-cert/internal/store"
)

// Handler API 处理器
type Handler struct {
	cfg       *config.AppConfig
	store     *store.Store
	session   *session.Session
	shareDir  string
	downloads *exportDownloadStore

	mu     sync.RWMutex
	shares snapshot.Store
}

// NewHandler 创建 API 处理器
//
// 快照后端按设置项里记住的选择构建（没有记住过则用配置默认），
// 之后可以通过设置接口切换。
func NewHandler(cfg *config.AppConfig, st *store.Store, sess *session.Session, shareDir string) *Handler {
	h := &Handler{
		cfg:       cfg,
		store:     st,
		session:   sess,
		shareDir:  shareDir,
		downloads: newExportDownloadStore(),
	}
	h.shares = h.buildShareStore(st.GetSettingDefault(store.SettingShareBackend, cfg.Share.Backend))
	return h
}

func (h *Handler) buildShareStore(backend string) snapshot.Store {
	if backend == "gist" {
		return snapshot.NewGist(h.cfg.Share.Token)
	}
	return snapshot.NewLocal(h.shareDir)
}

func (h *Handler) shareStore() snapshot.Store {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.shares
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 文件上传
	router.POST("/upload/lms", h.UploadLMS)
	router.POST("/upload/dms", h.UploadDMS)

	// 数据查询
	router.GET("/summary", h.GetSummary)
	router.GET("/rows", h.GetRows)

	// 筛选
	router.POST("/filter", h.SetFilter)
	router.POST("/filter/reset", h.ResetFilter)

	// 导出
	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)

	// 分享快照
	router.POST("/share", h.CreateShare)
	router.GET("/share/:id", h.LoadShare)

	// 设置
	router.GET("/settings", h.GetSettings)
	router.POST("/settings", h.UpdateSettings)

	// 上传历史
	router.GET("/history", h.GetHistory)
}
