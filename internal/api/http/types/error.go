// Package types provides HTTP error type definitions.
package types

// ErrorResponse 统一错误响应格式
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	Code      string      `json:"code"`                // 错误码
	Message   string      `json:"message"`             // 错误消息
	Details   interface{} `json:"details,omitempty"`   // 详细信息
	RequestID string      `json:"requestId,omitempty"` // 请求ID
	Timestamp string      `json:"timestamp,omitempty"` // 时间戳
}

// 对局服务错误码常量
const (
	// 通用错误码（400-499）
	ErrInvalidArgument  = "INVALID_ARGUMENT"
	ErrUnauthenticated  = "UNAUTHENTICATED"
	ErrPermissionDenied = "PERMISSION_DENIED"
	ErrNotFound         = "NOT_FOUND"

	// 会话错误码（1000-1099）
	ErrGameNotFound      = "GAME_NOT_FOUND"
	ErrGameAlreadyExists = "GAME_ALREADY_EXISTS"
	ErrGameNotStarted    = "GAME_NOT_STARTED"
	ErrGameAlreadyEnded  = "GAME_ALREADY_ENDED"
	ErrSelfPlay          = "SELF_PLAY"

	// 移动错误码（2000-2099）
	ErrInvalidMove     = "INVALID_MOVE"
	ErrMoveAlreadyMade = "MOVE_ALREADY_MADE"
	ErrProofRejected   = "PROOF_REJECTED"

	// 授权/凭据错误码（3000-3099）
	ErrInvalidVoucher    = "INVALID_VOUCHER"
	ErrInvalidCommitment = "INVALID_COMMITMENT"

	// 外部依赖错误码（4000-4099）
	ErrHubUnavailable = "HUB_UNAVAILABLE"

	// 服务器错误码（500-599）
	ErrInternal           = "INTERNAL"
	ErrServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// NewErrorResponse 创建错误响应
func NewErrorResponse(code, message string, details interface{}) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// WithRequestID 添加请求ID
func (e *ErrorResponse) WithRequestID(requestID string) *ErrorResponse {
	e.Error.RequestID = requestID
	return e
}

// WithTimestamp 添加时间戳
func (e *ErrorResponse) WithTimestamp(timestamp string) *ErrorResponse {
	e.Error.Timestamp = timestamp
	return e
}

// ErrGameNotFoundResponse 会话不存在错误
func ErrGameNotFoundResponse(sessionID interface{}) *ErrorResponse {
	return NewErrorResponse(
		ErrGameNotFound,
		"Game not found",
		map[string]interface{}{
			"sessionId": sessionID,
		},
	)
}

// ErrHubUnavailableResponse Hub不可用错误
func ErrHubUnavailableResponse(reason string) *ErrorResponse {
	return NewErrorResponse(
		ErrHubUnavailable,
		"Game hub unavailable, operation aborted",
		map[string]interface{}{
			"reason": reason,
		},
	)
}

// ErrInvalidVoucherResponse 凭据无效错误
func ErrInvalidVoucherResponse(player, reason string) *ErrorResponse {
	return NewErrorResponse(
		ErrInvalidVoucher,
		"Invalid session voucher",
		map[string]interface{}{
			"player": player,
			"reason": reason,
		},
	)
}
