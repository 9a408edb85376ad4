package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/masaun/ZK-trap-grid/internal/core/game/session"
	logiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/log"
	"github.com/masaun/ZK-trap-grid/pkg/types"
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

// stubGameService 可编程的会话服务桩
type stubGameService struct {
	startErr   error
	moveValid  bool
	moveErr    error
	endErr     error
	game       *types.Game
	gameErr    error
	moves      []types.Move
	lastStart  []interface{}
	lastSessID uint32
}

func (s *stubGameService) StartGame(ctx context.Context, sessionID uint32, defender, attacker string, commitment []byte, defenderStake, attackerStake int64) error {
	s.lastStart = []interface{}{sessionID, defender, attacker, commitment, defenderStake, attackerStake}
	return s.startErr
}

func (s *stubGameService) MakeMove(ctx context.Context, sessionID uint32, x, y uint32, isHit bool, proof, publicInputs []byte) (bool, error) {
	s.lastSessID = sessionID
	return s.moveValid, s.moveErr
}

func (s *stubGameService) EndGame(ctx context.Context, sessionID uint32) error {
	return s.endErr
}

func (s *stubGameService) GetGame(ctx context.Context, sessionID uint32) (*types.Game, error) {
	return s.game, s.gameErr
}

func (s *stubGameService) GetMoves(ctx context.Context, sessionID uint32) ([]types.Move, error) {
	return s.moves, nil
}

// stubAuthorizer 可编程的授权桩
type stubAuthorizer struct {
	err error
}

func (a *stubAuthorizer) VerifyVoucher(player string, sessionID uint32, stake int64, voucher []byte) error {
	return a.err
}

func newTestRouter(service *stubGameService, authorizer *stubAuthorizer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	v1 := router.Group("/api/v1")
	NewGameHandlers(service, authorizer, &mockLogger{}).RegisterRoutes(v1)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validStartRequest() *StartGameRequest {
	return &StartGameRequest{
		SessionID:       1,
		Defender:        "defender-pubkey",
		Attacker:        "attacker-pubkey",
		Commitment:      make([]byte, types.CommitmentSize),
		DefenderStake:   500,
		AttackerStake:   300,
		DefenderVoucher: []byte("voucher-d"),
		AttackerVoucher: []byte("voucher-a"),
	}
}

// 测试创建会话成功路径
func TestStartGameHandler(t *testing.T) {
	service := &stubGameService{}
	router := newTestRouter(service, &stubAuthorizer{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/games", validStartRequest())
	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, service.lastStart)
	assert.Equal(t, uint32(1), service.lastStart[0])
}

// 测试凭据校验失败返回401且不触达核心
func TestStartGameHandlerInvalidVoucher(t *testing.T) {
	service := &stubGameService{}
	router := newTestRouter(service, &stubAuthorizer{err: assert.AnError})

	w := doJSON(t, router, http.MethodPost, "/api/v1/games", validStartRequest())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, service.lastStart, "凭据无效不应触达核心服务")
	assert.Contains(t, w.Body.String(), "INVALID_VOUCHER")
}

// 测试领域错误到HTTP状态码的映射
func TestStartGameHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		domainErr  error
		wantStatus int
		wantCode   string
	}{
		{"self_play", session.ErrSelfPlay, http.StatusBadRequest, "SELF_PLAY"},
		{"already_exists", session.ErrGameAlreadyExists, http.StatusConflict, "GAME_ALREADY_EXISTS"},
		{"hub_down", &session.HubError{Op: "begin_session", Err: assert.AnError}, http.StatusBadGateway, "HUB_UNAVAILABLE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service := &stubGameService{startErr: tc.domainErr}
			router := newTestRouter(service, &stubAuthorizer{})

			w := doJSON(t, router, http.MethodPost, "/api/v1/games", validStartRequest())
			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tc.wantCode)
		})
	}
}

// 测试落子接受与拒绝两种正常结果
func TestMakeMoveHandler(t *testing.T) {
	service := &stubGameService{
		moveValid: true,
		game:      &types.Game{MovesMade: 1, GameStarted: true},
	}
	router := newTestRouter(service, &stubAuthorizer{})

	body := &MakeMoveRequest{X: 3, Y: 4, IsHit: true, Proof: []byte("proof")}
	w := doJSON(t, router, http.MethodPost, "/api/v1/games/1/moves", body)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"proofValid":true`)

	// 证明被拒绝：非终态失败，422 PROOF_REJECTED
	service.moveValid = false
	service.moveErr = session.ErrProofRejected
	w = doJSON(t, router, http.MethodPost, "/api/v1/games/1/moves", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "PROOF_REJECTED")
}

// 测试重复坐标返回409
func TestMakeMoveHandlerConflict(t *testing.T) {
	service := &stubGameService{moveErr: session.ErrMoveAlreadyMade}
	router := newTestRouter(service, &stubAuthorizer{})

	body := &MakeMoveRequest{X: 3, Y: 4, Proof: []byte("proof")}
	w := doJSON(t, router, http.MethodPost, "/api/v1/games/1/moves", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "MOVE_ALREADY_MADE")
}

// 测试非法会话ID参数
func TestInvalidSessionIDParam(t *testing.T) {
	router := newTestRouter(&stubGameService{}, &stubAuthorizer{})

	w := doJSON(t, router, http.MethodGet, "/api/v1/games/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ARGUMENT")
}

// 测试不存在的会话返回404
func TestGetGameHandlerNotFound(t *testing.T) {
	service := &stubGameService{gameErr: session.ErrGameNotFound}
	router := newTestRouter(service, &stubAuthorizer{})

	w := doJSON(t, router, http.MethodGet, "/api/v1/games/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "GAME_NOT_FOUND")
}

// 测试账本查询
func TestGetMovesHandler(t *testing.T) {
	service := &stubGameService{
		moves: []types.Move{
			{X: 3, Y: 4, IsHit: true, Verified: true},
			{X: 5, Y: 5, IsHit: false, Verified: true},
		},
	}
	router := newTestRouter(service, &stubAuthorizer{})

	w := doJSON(t, router, http.MethodGet, "/api/v1/games/1/moves", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []MoveEcho `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, uint32(3), resp.Data[0].X)
	assert.True(t, resp.Data[0].IsHit)
}

// MoveEcho 账本响应的反序列化形态
type MoveEcho struct {
	X        uint32 `json:"x"`
	Y        uint32 `json:"y"`
	IsHit    bool   `json:"isHit"`
	Verified bool   `json:"verified"`
}

// 测试提前结束会话
func TestEndGameHandler(t *testing.T) {
	service := &stubGameService{
		game: &types.Game{GameStarted: true, GameEnded: true, Winner: "defender-pubkey", Defender: "defender-pubkey"},
	}
	router := newTestRouter(service, &stubAuthorizer{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/games/1/end", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "defender-pubkey")

	// 已结束的会话返回409
	service.endErr = session.ErrGameAlreadyEnded
	w = doJSON(t, router, http.MethodPost, "/api/v1/games/1/end", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "GAME_ALREADY_ENDED")
}
