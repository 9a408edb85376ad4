package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	logiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/log"
	"go.uber.org/zap"
)

// AccessLog 访问日志中间件
//
// 每个请求完成后输出一条结构化访问记录，级别随响应状态提升
// （5xx为Error，4xx为Warn，其余Info）。记录内含请求追踪ID，
// 与响应信封里的requestId互相对照
type AccessLog struct {
	logger logiface.Logger
}

// NewAccessLog 创建访问日志中间件
func NewAccessLog(logger logiface.Logger) *AccessLog {
	return &AccessLog{logger: logger}
}

// Middleware 返回Gin中间件
func (m *AccessLog) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		elapsed := time.Since(start)

		zl := m.logger.GetZapLogger()
		if zl == nil {
			// 无底层zap记录器时退回文本格式
			m.emitText(c, status, elapsed)
			return
		}

		fields := []zap.Field{
			zap.String("request_id", GetRequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", c.FullPath()),
			zap.Int("status", status),
			zap.Int("bytes", c.Writer.Size()),
			zap.Duration("elapsed", elapsed),
			zap.String("client_ip", c.ClientIP()),
		}
		if query := c.Request.URL.RawQuery; query != "" {
			fields = append(fields, zap.String("query", query))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			zl.Error("HTTP访问", fields...)
		case status >= 400:
			zl.Warn("HTTP访问", fields...)
		default:
			zl.Info("HTTP访问", fields...)
		}
	}
}

func (m *AccessLog) emitText(c *gin.Context, status int, elapsed time.Duration) {
	msg := fmt.Sprintf("%s %s -> %d (%s) id=%s ip=%s",
		c.Request.Method, c.Request.URL.Path, status, elapsed, GetRequestID(c), c.ClientIP())
	switch {
	case status >= 500:
		m.logger.Error(msg)
	case status >= 400:
		m.logger.Warn(msg)
	default:
		m.logger.Info(msg)
	}
}
