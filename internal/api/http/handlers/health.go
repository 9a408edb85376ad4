package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apitypes "github.com/masaun/ZK-trap-grid/internal/api/http/types"
	logiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/log"
	storageiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/storage"
)

// Version 服务版本号，构建时通过ldflags注入
var Version = "dev"

// HealthHandlers 健康检查处理器
//
// 三类探针：
//   - /health/live   进程存活（永远200，除非进程挂了）
//   - /health/ready  就绪检查（存储可用才算就绪）
//   - /health        完整报告（各组件状态汇总）
type HealthHandlers struct {
	storage   storageiface.BadgerStore
	logger    logiface.Logger
	startTime time.Time
}

// NewHealthHandlers 创建健康检查处理器
func NewHealthHandlers(storage storageiface.BadgerStore, logger logiface.Logger) *HealthHandlers {
	return &HealthHandlers{
		storage:   storage,
		logger:    logger,
		startTime: time.Now(),
	}
}

// RegisterRoutes 注册健康检查路由（根路径，不带API版本前缀）
func (h *HealthHandlers) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)
	router.GET("/health/live", h.Liveness)
	router.GET("/health/ready", h.Readiness)
}

// Liveness 存活探针
func (h *HealthHandlers) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Readiness 就绪探针
func (h *HealthHandlers) Readiness(c *gin.Context) {
	if err := h.checkStorage(c); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "reason": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Health 完整健康报告
func (h *HealthHandlers) Health(c *gin.Context) {
	components := make(map[string]interface{})
	status := "healthy"
	readiness := "ready"

	if err := h.checkStorage(c); err != nil {
		components["storage"] = gin.H{"status": "unhealthy", "error": err.Error()}
		status = "unhealthy"
		readiness = "not_ready"
	} else {
		components["storage"] = gin.H{"status": "healthy"}
	}

	resp := &apitypes.HealthResponse{
		Status:     status,
		Liveness:   "alive",
		Readiness:  readiness,
		Version:    Version,
		Uptime:     time.Since(h.startTime).Round(time.Second).String(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Components: components,
	}

	httpStatus := http.StatusOK
	if status != "healthy" {
		httpStatus = http.StatusServiceUnavailable
	}
	c.JSON(httpStatus, resp)
}

// checkStorage 用一次探针读验证存储可用性
func (h *HealthHandlers) checkStorage(c *gin.Context) error {
	_, err := h.storage.Exists(c.Request.Context(), []byte("health:probe"))
	return err
}
