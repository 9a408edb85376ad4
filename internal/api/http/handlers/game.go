package handlers

import (
	"encoding/hex"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apitypes "github.com/masaun/ZK-trap-grid/internal/api/http/types"
	gameiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/game"
	logiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/log"
	"github.com/masaun/ZK-trap-grid/pkg/types"
)

// GameHandlers 会话操作处理器
//
// 🎮 对局会话的HTTP入口：创建、落子、提前结束、状态与账本查询。
// 授权凭据在这一层校验，核心状态机只看到已授权的请求。
type GameHandlers struct {
	service    gameiface.GameService
	authorizer gameiface.SessionAuthorizer
	logger     logiface.Logger
}

// NewGameHandlers 创建会话操作处理器
func NewGameHandlers(service gameiface.GameService, authorizer gameiface.SessionAuthorizer, logger logiface.Logger) *GameHandlers {
	return &GameHandlers{
		service:    service,
		authorizer: authorizer,
		logger:     logger,
	}
}

// RegisterRoutes 注册会话路由
func (h *GameHandlers) RegisterRoutes(v1 *gin.RouterGroup) {
	games := v1.Group("/games")
	games.POST("", h.StartGame)
	games.GET("/:sessionID", h.GetGame)
	games.GET("/:sessionID/moves", h.GetMoves)
	games.POST("/:sessionID/moves", h.MakeMove)
	games.POST("/:sessionID/end", h.EndGame)
}

// StartGameRequest 创建会话请求
//
// 二进制字段（承诺、凭据）按JSON惯例使用base64编码
type StartGameRequest struct {
	SessionID       uint32 `json:"sessionId"`
	Defender        string `json:"defender" binding:"required"`
	Attacker        string `json:"attacker" binding:"required"`
	Commitment      []byte `json:"commitment" binding:"required"`
	DefenderStake   int64  `json:"defenderStake"`
	AttackerStake   int64  `json:"attackerStake"`
	DefenderVoucher []byte `json:"defenderVoucher" binding:"required"`
	AttackerVoucher []byte `json:"attackerVoucher" binding:"required"`
}

// StartGame 创建新会话
// POST /api/v1/games
func (h *GameHandlers) StartGame(c *gin.Context) {
	var req StartGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, apitypes.ErrInvalidArgument, err.Error(), nil)
		return
	}

	// 双方都必须对(会话ID, 本方押注)完成签名授权
	if err := h.authorizer.VerifyVoucher(req.Defender, req.SessionID, req.DefenderStake, req.DefenderVoucher); err != nil {
		c.JSON(http.StatusUnauthorized, apitypes.ErrInvalidVoucherResponse(req.Defender, err.Error()))
		return
	}
	if err := h.authorizer.VerifyVoucher(req.Attacker, req.SessionID, req.AttackerStake, req.AttackerVoucher); err != nil {
		c.JSON(http.StatusUnauthorized, apitypes.ErrInvalidVoucherResponse(req.Attacker, err.Error()))
		return
	}

	err := h.service.StartGame(c.Request.Context(), req.SessionID, req.Defender, req.Attacker, req.Commitment, req.DefenderStake, req.AttackerStake)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, gin.H{"sessionId": req.SessionID})
}

// MakeMoveRequest 落子请求
type MakeMoveRequest struct {
	X            uint32 `json:"x"`
	Y            uint32 `json:"y"`
	IsHit        bool   `json:"isHit"`
	Proof        []byte `json:"proof" binding:"required"`
	PublicInputs []byte `json:"publicInputs"`
}

// MakeMove 提交一次探测
// POST /api/v1/games/:sessionID/moves
func (h *GameHandlers) MakeMove(c *gin.Context) {
	sessionID, ok := parseSessionID(c)
	if !ok {
		return
	}

	var req MakeMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, apitypes.ErrInvalidArgument, err.Error(), nil)
		return
	}

	valid, err := h.service.MakeMove(c.Request.Context(), sessionID, req.X, req.Y, req.IsHit, req.Proof, req.PublicInputs)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	// 附带最新会话状态，调用方能直接看到终局
	result := &apitypes.MoveResultResponse{ProofValid: valid}
	game, err := h.service.GetGame(c.Request.Context(), sessionID)
	if err == nil {
		result.MovesMade = game.MovesMade
		result.GameEnded = game.GameEnded
		result.Winner = game.Winner
	}
	respondSuccess(c, http.StatusOK, result)
}

// EndGame 提前结束会话
// POST /api/v1/games/:sessionID/end
func (h *GameHandlers) EndGame(c *gin.Context) {
	sessionID, ok := parseSessionID(c)
	if !ok {
		return
	}

	if err := h.service.EndGame(c.Request.Context(), sessionID); err != nil {
		respondDomainError(c, err)
		return
	}

	game, err := h.service.GetGame(c.Request.Context(), sessionID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"winner": game.Winner})
}

// GetGame 查询会话状态
// GET /api/v1/games/:sessionID
func (h *GameHandlers) GetGame(c *gin.Context) {
	sessionID, ok := parseSessionID(c)
	if !ok {
		return
	}

	game, err := h.service.GetGame(c.Request.Context(), sessionID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, toGameResponse(sessionID, game))
}

// GetMoves 查询移动账本
// GET /api/v1/games/:sessionID/moves
func (h *GameHandlers) GetMoves(c *gin.Context) {
	sessionID, ok := parseSessionID(c)
	if !ok {
		return
	}

	moves, err := h.service.GetMoves(c.Request.Context(), sessionID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	result := make([]apitypes.MoveResponse, 0, len(moves))
	for _, m := range moves {
		result = append(result, apitypes.MoveResponse{X: m.X, Y: m.Y, IsHit: m.IsHit, Verified: m.Verified})
	}
	respondSuccess(c, http.StatusOK, result)
}

func parseSessionID(c *gin.Context) (uint32, bool) {
	raw := c.Param("sessionID")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, apitypes.ErrInvalidArgument, "invalid session id", gin.H{"sessionId": raw})
		return 0, false
	}
	return uint32(id), true
}

func toGameResponse(sessionID uint32, game *types.Game) *apitypes.GameResponse {
	return &apitypes.GameResponse{
		SessionID:     sessionID,
		Defender:      game.Defender,
		Attacker:      game.Attacker,
		DefenderStake: game.DefenderStake,
		AttackerStake: game.AttackerStake,
		Commitment:    hex.EncodeToString(game.Commitment),
		MovesMade:     game.MovesMade,
		Hits:          game.Hits,
		Misses:        game.Misses,
		GameStarted:   game.GameStarted,
		GameEnded:     game.GameEnded,
		Winner:        game.Winner,
	}
}
