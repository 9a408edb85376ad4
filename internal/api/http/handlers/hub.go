package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apitypes "github.com/masaun/ZK-trap-grid/internal/api/http/types"
	gameiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/game"
	logiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/log"
	"github.com/masaun/ZK-trap-grid/pkg/types"
)

// HubHandlers 本地Hub注册表处理器
type HubHandlers struct {
	registry gameiface.HubRegistry
	logger   logiface.Logger
}

// NewHubHandlers 创建注册表处理器
func NewHubHandlers(registry gameiface.HubRegistry, logger logiface.Logger) *HubHandlers {
	return &HubHandlers{registry: registry, logger: logger}
}

// RegisterRoutes 注册Hub路由
//
// 会话上报端点挂在v1根下，与Hub客户端的出站路径一致：
// 把hub.endpoint指向本节点即可在开发环境里自托管Hub
func (h *HubHandlers) RegisterRoutes(v1 *gin.RouterGroup) {
	hub := v1.Group("/hub")
	hub.POST("/games", h.RegisterGame)
	hub.GET("/games", h.AllGames)
	hub.GET("/games/count", h.GameCount)
	hub.GET("/games/:gameID", h.GetGame)
	hub.POST("/games/:gameID/deactivate", h.DeactivateGame)

	v1.POST("/sessions", h.BeginSession)
	v1.POST("/sessions/:sessionID/conclude", h.ConcludeSession)
	v1.GET("/sessions/:sessionID", h.GetSession)
}

// RegisterGameRequest 游戏服务登记请求
type RegisterGameRequest struct {
	GameContract string `json:"gameContract" binding:"required"`
	Name         string `json:"name" binding:"required"`
}

// RegisterGame 登记游戏服务
// POST /api/v1/hub/games
func (h *HubHandlers) RegisterGame(c *gin.Context) {
	var req RegisterGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, apitypes.ErrInvalidArgument, err.Error(), nil)
		return
	}

	gameID, err := h.registry.RegisterGame(c.Request.Context(), req.GameContract, req.Name)
	if err != nil {
		respondError(c, http.StatusInternalServerError, apitypes.ErrInternal, "register failed", nil)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"gameId": gameID})
}

// GetGame 查询登记信息
// GET /api/v1/hub/games/:gameID
func (h *HubHandlers) GetGame(c *gin.Context) {
	gameID, ok := parseGameID(c)
	if !ok {
		return
	}

	info, err := h.registry.GetGame(c.Request.Context(), gameID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, apitypes.ErrInternal, "query failed", nil)
		return
	}
	if info == nil {
		respondError(c, http.StatusNotFound, apitypes.ErrNotFound, "game not registered", gin.H{"gameId": gameID})
		return
	}
	respondSuccess(c, http.StatusOK, info)
}

// AllGames 列出全部登记记录
// GET /api/v1/hub/games
func (h *HubHandlers) AllGames(c *gin.Context) {
	games, err := h.registry.AllGames(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, apitypes.ErrInternal, "query failed", nil)
		return
	}
	respondSuccess(c, http.StatusOK, games)
}

// GameCount 返回登记总数
// GET /api/v1/hub/games/count
func (h *HubHandlers) GameCount(c *gin.Context) {
	count, err := h.registry.GameCount(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, apitypes.ErrInternal, "query failed", nil)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"count": count})
}

// DeactivateGame 停用登记记录
// POST /api/v1/hub/games/:gameID/deactivate
func (h *HubHandlers) DeactivateGame(c *gin.Context) {
	gameID, ok := parseGameID(c)
	if !ok {
		return
	}

	found, err := h.registry.DeactivateGame(c.Request.Context(), gameID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, apitypes.ErrInternal, "deactivate failed", nil)
		return
	}
	if !found {
		respondError(c, http.StatusNotFound, apitypes.ErrNotFound, "game not registered", gin.H{"gameId": gameID})
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"gameId": gameID, "active": false})
}

// BeginSessionRequest 会话登记请求（字段与游戏服务端的出站上报对齐）
type BeginSessionRequest struct {
	SessionID     uint32 `json:"session_id"`
	GameAddress   string `json:"game_address" binding:"required"`
	Defender      string `json:"defender" binding:"required"`
	Attacker      string `json:"attacker" binding:"required"`
	DefenderStake int64  `json:"defender_stake"`
	AttackerStake int64  `json:"attacker_stake"`
}

// ConcludeSessionRequest 会话结算请求
type ConcludeSessionRequest struct {
	DefenderWon bool `json:"defender_won"`
}

// BeginSession 受理会话登记上报
// POST /api/v1/sessions
func (h *HubHandlers) BeginSession(c *gin.Context) {
	var req BeginSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, apitypes.ErrInvalidArgument, err.Error(), nil)
		return
	}

	info := &types.HubSessionInfo{
		SessionID:     req.SessionID,
		GameContract:  req.GameAddress,
		Defender:      req.Defender,
		Attacker:      req.Attacker,
		DefenderStake: req.DefenderStake,
		AttackerStake: req.AttackerStake,
	}
	if err := h.registry.RecordSessionBegin(c.Request.Context(), info); err != nil {
		respondError(c, http.StatusConflict, apitypes.ErrGameAlreadyEnded, err.Error(), gin.H{"sessionId": req.SessionID})
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"sessionId": req.SessionID})
}

// ConcludeSession 受理会话结算上报
// POST /api/v1/sessions/:sessionID/conclude
func (h *HubHandlers) ConcludeSession(c *gin.Context) {
	sessionID, ok := parseHubSessionID(c)
	if !ok {
		return
	}
	var req ConcludeSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, apitypes.ErrInvalidArgument, err.Error(), nil)
		return
	}

	found, err := h.registry.RecordSessionConclusion(c.Request.Context(), sessionID, req.DefenderWon)
	if err != nil {
		respondError(c, http.StatusInternalServerError, apitypes.ErrInternal, "conclude failed", nil)
		return
	}
	if !found {
		respondError(c, http.StatusNotFound, apitypes.ErrNotFound, "session not registered", gin.H{"sessionId": sessionID})
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"sessionId": sessionID, "defenderWon": req.DefenderWon})
}

// GetSession 查询会话登记记录
// GET /api/v1/sessions/:sessionID
func (h *HubHandlers) GetSession(c *gin.Context) {
	sessionID, ok := parseHubSessionID(c)
	if !ok {
		return
	}

	info, err := h.registry.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, apitypes.ErrInternal, "query failed", nil)
		return
	}
	if info == nil {
		respondError(c, http.StatusNotFound, apitypes.ErrNotFound, "session not registered", gin.H{"sessionId": sessionID})
		return
	}
	respondSuccess(c, http.StatusOK, info)
}

func parseHubSessionID(c *gin.Context) (uint32, bool) {
	raw := c.Param("sessionID")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, apitypes.ErrInvalidArgument, "invalid session id", gin.H{"sessionId": raw})
		return 0, false
	}
	return uint32(id), true
}

func parseGameID(c *gin.Context) (uint64, bool) {
	raw := c.Param("gameID")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, apitypes.ErrInvalidArgument, "invalid game id", gin.H{"gameId": raw})
		return 0, false
	}
	return id, true
}
