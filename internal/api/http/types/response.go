// Package types provides HTTP response type definitions.
package types

// SuccessResponse 统一成功响应格式
type SuccessResponse struct {
	Data      interface{} `json:"data"`
	RequestID string      `json:"requestId,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"`
}

// NewSuccessResponse 创建成功响应
func NewSuccessResponse(data interface{}) *SuccessResponse {
	return &SuccessResponse{
		Data: data,
	}
}

// WithRequestID 添加请求ID
func (r *SuccessResponse) WithRequestID(requestID string) *SuccessResponse {
	r.RequestID = requestID
	return r
}

// WithTimestamp 添加时间戳
func (r *SuccessResponse) WithTimestamp(timestamp string) *SuccessResponse {
	r.Timestamp = timestamp
	return r
}

// GameResponse 会话状态响应
type GameResponse struct {
	SessionID     uint32 `json:"sessionId"`
	Defender      string `json:"defender"`
	Attacker      string `json:"attacker"`
	DefenderStake int64  `json:"defenderStake"`
	AttackerStake int64  `json:"attackerStake"`
	Commitment    string `json:"commitment"` // 十六进制编码
	MovesMade     uint32 `json:"movesMade"`
	Hits          uint32 `json:"hits"`
	Misses        uint32 `json:"misses"`
	GameStarted   bool   `json:"gameStarted"`
	GameEnded     bool   `json:"gameEnded"`
	Winner        string `json:"winner,omitempty"`
}

// MoveResponse 单次移动响应
type MoveResponse struct {
	X        uint32 `json:"x"`
	Y        uint32 `json:"y"`
	IsHit    bool   `json:"isHit"`
	Verified bool   `json:"verified"`
}

// MoveResultResponse 移动提交结果响应
type MoveResultResponse struct {
	ProofValid bool   `json:"proofValid"`
	MovesMade  uint32 `json:"movesMade,omitempty"`
	GameEnded  bool   `json:"gameEnded,omitempty"`
	Winner     string `json:"winner,omitempty"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status     string                 `json:"status"` // healthy, degraded, unhealthy
	Liveness   string                 `json:"liveness"`
	Readiness  string                 `json:"readiness"`
	Version    string                 `json:"version"`
	Uptime     string                 `json:"uptime"`
	Timestamp  string                 `json:"timestamp"`
	Components map[string]interface{} `json:"components"`
}
