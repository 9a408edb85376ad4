// Package hub 实现Game Hub注册表的客户端与本地注册表服务
//
// 🌐 **Hub协作层 (Game Hub Integration)**
//
// 两个角色：
// - Client：向外部Hub服务上报会话的开始与结果（HTTP REST）
// - Registry：本地Hub模式下的登记存储（badger持久化，自增ID）
//
// Hub调用在会话核心的临界路径上：失败必须让触发它的操作中止，
// 因此客户端只做有限次重试，不做异步补偿。
package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	hubconfig "github.com/masaun/ZK-trap-grid/internal/config/hub"
	gameiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/game"
	logiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/log"
)

// Client Hub服务HTTP客户端
type Client struct {
	options    *hubconfig.HubOptions
	httpClient *http.Client
	logger     logiface.Logger
}

var _ gameiface.HubClient = (*Client)(nil)

// NewClient 创建Hub客户端
func NewClient(options *hubconfig.HubOptions, logger logiface.Logger) *Client {
	return &Client{
		options: options,
		httpClient: &http.Client{
			Timeout: options.Timeout,
		},
		logger: logger,
	}
}

// beginSessionRequest 会话登记请求体
type beginSessionRequest struct {
	SessionID     uint32 `json:"session_id"`
	GameAddress   string `json:"game_address"`
	Defender      string `json:"defender"`
	Attacker      string `json:"attacker"`
	DefenderStake int64  `json:"defender_stake"`
	AttackerStake int64  `json:"attacker_stake"`
}

// concludeSessionRequest 会话结算请求体
type concludeSessionRequest struct {
	DefenderWon bool `json:"defender_won"`
}

// BeginSession 登记一局新会话
func (c *Client) BeginSession(ctx context.Context, sessionID uint32, gameAddress, defender, attacker string, defenderStake, attackerStake int64) error {
	body := &beginSessionRequest{
		SessionID:     sessionID,
		GameAddress:   gameAddress,
		Defender:      defender,
		Attacker:      attacker,
		DefenderStake: defenderStake,
		AttackerStake: attackerStake,
	}
	url := fmt.Sprintf("%s/api/v1/sessions", c.options.Endpoint)
	return c.post(ctx, url, body)
}

// ConcludeSession 上报会话结果
func (c *Client) ConcludeSession(ctx context.Context, sessionID uint32, defenderWon bool) error {
	body := &concludeSessionRequest{DefenderWon: defenderWon}
	url := fmt.Sprintf("%s/api/v1/sessions/%d/conclude", c.options.Endpoint, sessionID)
	return c.post(ctx, url, body)
}

// post 发送JSON请求，失败时按配置重试
//
// 只重试传输层错误与5xx响应；4xx表示请求本身有问题，重试无意义
func (c *Client) post(ctx context.Context, url string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("编码请求体失败: %w", err)
	}

	var lastErr error
	attempts := c.options.RetryAttempts + 1
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			// 线性退避，避免在Hub刚恢复时立即压满
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
			c.logger.Debugf("Hub调用重试 %d/%d: %s", attempt, c.options.RetryAttempts, url)
		}

		lastErr = c.doPost(ctx, url, payload)
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

func (c *Client) doPost(ctx context.Context, url string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("构造请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &transportError{err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	err = fmt.Errorf("Hub返回状态 %d: %s", resp.StatusCode, string(respBody))
	if resp.StatusCode >= 500 {
		return &transportError{err: err}
	}
	return err
}

// transportError 可重试的传输层错误
type transportError struct {
	err error
}

func (e *transportError) Error() string { return e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

func isRetryable(err error) bool {
	_, ok := err.(*transportError)
	return ok
}
