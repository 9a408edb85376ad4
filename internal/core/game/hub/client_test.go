package hub

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	hubconfig "github.com/masaun/ZK-trap-grid/internal/config/hub"
	logiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// 模拟Logger接口
type mockLogger struct{}

func (m *mockLogger) Debug(msg string)                          {}
func (m *mockLogger) Debugf(format string, args ...interface{}) {}
func (m *mockLogger) Info(msg string)                           {}
func (m *mockLogger) Infof(format string, args ...interface{})  {}
func (m *mockLogger) Warn(msg string)                           {}
func (m *mockLogger) Warnf(format string, args ...interface{})  {}
func (m *mockLogger) Error(msg string)                          {}
func (m *mockLogger) Errorf(format string, args ...interface{}) {}
func (m *mockLogger) Fatal(msg string)                          {}
func (m *mockLogger) Fatalf(format string, args ...interface{}) {}
func (m *mockLogger) With(args ...interface{}) logiface.Logger  { return m }
func (m *mockLogger) Sync() error                               { return nil }
func (m *mockLogger) GetZapLogger() *zap.Logger                 { return nil }

func newTestClient(endpoint string, retries int) *Client {
	options := &hubconfig.HubOptions{
		Endpoint:      endpoint,
		GameAddress:   "trapgrid-test",
		Timeout:       5 * time.Second,
		RetryAttempts: retries,
	}
	return NewClient(options, &mockLogger{})
}

// 测试会话登记请求的路径与请求体
func TestBeginSession(t *testing.T) {
	var received beginSessionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/sessions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)
	err := client.BeginSession(context.Background(), 7, "trapgrid-test", "GDEFENDER", "GATTACKER", 500, 300)
	require.NoError(t, err)

	assert.Equal(t, uint32(7), received.SessionID)
	assert.Equal(t, "trapgrid-test", received.GameAddress)
	assert.Equal(t, "GDEFENDER", received.Defender)
	assert.Equal(t, int64(500), received.DefenderStake)
}

// 测试会话结算请求
func TestConcludeSession(t *testing.T) {
	var received concludeSessionRequest
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)
	err := client.ConcludeSession(context.Background(), 7, true)
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/sessions/7/conclude", path)
	assert.True(t, received.DefenderWon)
}

// 测试5xx响应触发重试并最终成功
func TestRetryOn5xx(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 2)
	err := client.ConcludeSession(context.Background(), 1, false)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

// 测试4xx响应不重试
func TestNoRetryOn4xx(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusConflict)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)
	err := client.BeginSession(context.Background(), 1, "g", "d", "a", 1, 1)
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "4xx不应触发重试")
}

// 测试重试耗尽后返回最后一次错误
func TestRetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 1)
	err := client.ConcludeSession(context.Background(), 1, true)
	assert.Error(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

// 测试上下文取消中断重试等待
func TestRetryContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newTestClient(server.URL, 5)
	err := client.ConcludeSession(ctx, 1, true)
	assert.ErrorIs(t, err, context.Canceled)
}
