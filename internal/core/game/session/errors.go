package session

import (
	"errors"
	"fmt"
)

// 🎯 对局领域错误分类
//
// 每类错误对应一种明确的失败语义，供API层映射为响应码：
//   - ErrGameNotFound      会话不存在（或已过保留期被清理）
//   - ErrSelfPlay          防守方与进攻方地址相同
//   - ErrGameNotStarted    会话尚未进入对局状态
//   - ErrGameAlreadyEnded  会话已有终局结果
//   - ErrGameAlreadyExists 会话标识已被占用
//   - ErrInvalidMove       坐标超出网格范围
//   - ErrMoveAlreadyMade   坐标已被此前的落子占用
//   - ErrInvalidCommitment 承诺长度不合法
//   - ErrProofRejected     预言机判定证明无效（非终态，可携带修正后的证明重试）
//   - ErrHubUnavailable    枢纽注册调用失败，操作整体中止
//
// ErrProofRejected 是唯一可对同一坐标原样重试的失败：它不改变任何状态。
var (
	ErrGameNotFound      = errors.New("game not found")
	ErrSelfPlay          = errors.New("defender and attacker must be different")
	ErrGameNotStarted    = errors.New("game not started")
	ErrGameAlreadyEnded  = errors.New("game already ended")
	ErrGameAlreadyExists = errors.New("game already exists")
	ErrInvalidMove       = errors.New("move coordinates out of range")
	ErrMoveAlreadyMade   = errors.New("move already made at this position")
	ErrInvalidCommitment = errors.New("invalid commitment")
	ErrProofRejected     = errors.New("proof rejected")
	ErrHubUnavailable    = errors.New("hub unavailable")
)

// HubError 包装枢纽调用失败的底层原因，errors.Is(err, ErrHubUnavailable) 成立
type HubError struct {
	Op  string // begin_session / conclude_session
	Err error
}

func (e *HubError) Error() string {
	return fmt.Sprintf("hub %s failed: %v", e.Op, e.Err)
}

func (e *HubError) Unwrap() error { return ErrHubUnavailable }

// Cause 返回底层传输错误
func (e *HubError) Cause() error { return e.Err }
