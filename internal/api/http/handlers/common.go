// Package handlers provides HTTP request handlers for the trap grid API.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/masaun/ZK-trap-grid/internal/api/http/middleware"
	apitypes "github.com/masaun/ZK-trap-grid/internal/api/http/types"
	"github.com/masaun/ZK-trap-grid/internal/core/game/session"
)

// respondSuccess 写入统一成功响应
func respondSuccess(c *gin.Context, status int, data interface{}) {
	resp := apitypes.NewSuccessResponse(data).
		WithRequestID(middleware.GetRequestID(c)).
		WithTimestamp(time.Now().UTC().Format(time.RFC3339))
	c.JSON(status, resp)
}

// respondError 写入统一错误响应
func respondError(c *gin.Context, status int, code, message string, details interface{}) {
	resp := apitypes.NewErrorResponse(code, message, details).
		WithRequestID(middleware.GetRequestID(c)).
		WithTimestamp(time.Now().UTC().Format(time.RFC3339))
	c.JSON(status, resp)
}

// respondDomainError 把会话领域错误映射为HTTP响应
//
// 映射关系：
//   - 不存在        → 404 GAME_NOT_FOUND
//   - 参数/状态冲突 → 4xx 对应错误码
//   - Hub不可用     → 502 HUB_UNAVAILABLE
//   - 其余          → 500 INTERNAL
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrGameNotFound):
		respondError(c, http.StatusNotFound, apitypes.ErrGameNotFound, err.Error(), nil)
	case errors.Is(err, session.ErrGameAlreadyExists):
		respondError(c, http.StatusConflict, apitypes.ErrGameAlreadyExists, err.Error(), nil)
	case errors.Is(err, session.ErrSelfPlay):
		respondError(c, http.StatusBadRequest, apitypes.ErrSelfPlay, err.Error(), nil)
	case errors.Is(err, session.ErrInvalidCommitment):
		respondError(c, http.StatusBadRequest, apitypes.ErrInvalidCommitment, err.Error(), nil)
	case errors.Is(err, session.ErrGameNotStarted):
		respondError(c, http.StatusConflict, apitypes.ErrGameNotStarted, err.Error(), nil)
	case errors.Is(err, session.ErrGameAlreadyEnded):
		respondError(c, http.StatusConflict, apitypes.ErrGameAlreadyEnded, err.Error(), nil)
	case errors.Is(err, session.ErrInvalidMove):
		respondError(c, http.StatusBadRequest, apitypes.ErrInvalidMove, err.Error(), nil)
	case errors.Is(err, session.ErrMoveAlreadyMade):
		respondError(c, http.StatusConflict, apitypes.ErrMoveAlreadyMade, err.Error(), nil)
	case errors.Is(err, session.ErrProofRejected):
		respondError(c, http.StatusUnprocessableEntity, apitypes.ErrProofRejected, err.Error(), nil)
	case errors.Is(err, session.ErrHubUnavailable):
		respondError(c, http.StatusBadGateway, apitypes.ErrHubUnavailable, err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, apitypes.ErrInternal, "internal error", nil)
	}
}
