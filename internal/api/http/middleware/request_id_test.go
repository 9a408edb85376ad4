package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequestIDRouter(captured *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(NewRequestID().Middleware())
	router.GET("/ping", func(c *gin.Context) {
		*captured = GetRequestID(c)
		c.Status(http.StatusNoContent)
	})
	return router
}

// 测试未携带追踪ID的请求会分配新UUID并回写响应头
func TestRequestIDGenerated(t *testing.T) {
	var captured string
	router := newRequestIDRouter(&captured)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	header := w.Header().Get("X-Request-ID")
	require.NotEmpty(t, header)
	assert.Equal(t, header, captured, "上下文与响应头中的追踪ID应一致")

	_, err := uuid.Parse(header)
	assert.NoError(t, err)
}

// 测试调用方提供的追踪ID被沿用
func TestRequestIDPropagated(t *testing.T) {
	var captured string
	router := newRequestIDRouter(&captured)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "upstream-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "upstream-42", captured)
	assert.Equal(t, "upstream-42", w.Header().Get("X-Request-ID"))
}
