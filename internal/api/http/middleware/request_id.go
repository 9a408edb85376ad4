package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// 请求追踪标识在gin上下文与HTTP头部中使用的键
const (
	requestIDContextKey = "trapgrid_request_id"
	requestIDHeader     = "X-Request-ID"
)

// RequestID 请求追踪中间件
//
// 每个请求携带一个追踪ID贯穿访问日志、指标与响应信封：
// 调用方已提供X-Request-ID时沿用（便于跨服务关联同一局操作），
// 否则生成新的UUID。中间件同时把ID回写到响应头
type RequestID struct{}

// NewRequestID 创建请求追踪中间件
func NewRequestID() *RequestID {
	return &RequestID{}
}

// Middleware 返回Gin中间件
func (m *RequestID) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(requestIDContextKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// GetRequestID 读取当前请求的追踪ID
//
// 请求未经过RequestID中间件时退回头部取值，仍可能为空串
func GetRequestID(c *gin.Context) string {
	if v, ok := c.Get(requestIDContextKey); ok {
		if id, ok := v.(string); ok && id != "" {
			return id
		}
	}
	return c.GetHeader(requestIDHeader)
}
