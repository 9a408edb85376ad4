// Package session 实现两方对抗会话的核心状态机
//
// 🎮 **会话状态机 (Game Session State Machine)**
//
// 状态流转：Uninitialized → Started → Ended（终态）。
// 每个写操作遵循同一模式：按会话加锁 → 读取并校验 → 调用外部
// 协作者（证明预言机 / Hub）→ 在单个badger事务内持久化。
//
// 🎯 **核心语义**
// - 证明被拒绝是非终态失败：MakeMove返回ErrProofRejected且不发生任何状态变更
// - Hub调用失败使整个操作中止：Begin失败不创建会话，Conclude失败不落终局
// - 账本只追加：已接受的移动永不被修改或删除
// - 终局判定不对称：打满全格对比总格数的一半，提前结束对比已提交数的一半
package session

import (
	"context"

	gameconfig "github.com/masaun/ZK-trap-grid/internal/config/game"
	hubconfig "github.com/masaun/ZK-trap-grid/internal/config/hub"
	gameiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/game"
	logiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/log"
	storageiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/storage"
	"github.com/masaun/ZK-trap-grid/pkg/types"
)

// Service 会话状态机实现
type Service struct {
	store    storageiface.BadgerStore
	hub      gameiface.HubClient
	verifier gameiface.ProofVerifier
	rules    *gameconfig.GameOptions
	hubOpts  *hubconfig.HubOptions
	logger   logiface.Logger
	locks    *sessionLocks
}

var _ gameiface.GameService = (*Service)(nil)

// NewService 创建会话状态机
func NewService(
	store storageiface.BadgerStore,
	hub gameiface.HubClient,
	verifier gameiface.ProofVerifier,
	rules *gameconfig.GameOptions,
	hubOpts *hubconfig.HubOptions,
	logger logiface.Logger,
) *Service {
	return &Service{
		store:    store,
		hub:      hub,
		verifier: verifier,
		rules:    rules,
		hubOpts:  hubOpts,
		logger:   logger,
		locks:    newSessionLocks(),
	}
}

// StartGame 创建新会话
//
// Hub登记在持久化之前完成：登记失败时本地不留下任何痕迹。
// 反向的悬挂（Hub登记成功但本地写入失败）由Hub侧的幂等登记语义兜底。
func (s *Service) StartGame(ctx context.Context, sessionID uint32, defender, attacker string, commitment []byte, defenderStake, attackerStake int64) error {
	if defender == attacker {
		return ErrSelfPlay
	}
	if len(commitment) != types.CommitmentSize {
		return ErrInvalidCommitment
	}

	lock := s.locks.acquire(sessionID)
	lock.Lock()
	defer lock.Unlock()

	exists, err := s.store.Exists(ctx, gameKey(sessionID))
	if err != nil {
		return err
	}
	if exists {
		return ErrGameAlreadyExists
	}

	// Hub登记先于本地创建
	if err := s.hub.BeginSession(ctx, sessionID, s.hubOpts.GameAddress, defender, attacker, defenderStake, attackerStake); err != nil {
		s.logger.Warnf("会话 %d Hub登记失败: %v", sessionID, err)
		return &HubError{Op: "begin_session", Err: err}
	}

	game := &types.Game{
		Defender:      defender,
		Attacker:      attacker,
		DefenderStake: defenderStake,
		AttackerStake: attackerStake,
		Commitment:    append([]byte(nil), commitment...),
		GameStarted:   true,
	}

	// 会话状态与空账本一起落库，两键的保留期从创建起对齐
	if err := s.persist(ctx, sessionID, game, []types.Move{}); err != nil {
		return err
	}

	s.logger.Infof("会话 %d 已创建: defender=%s attacker=%s", sessionID, defender, attacker)
	return nil
}

// MakeMove 处理一次探测提交
//
// 校验顺序固定：存在性 → 已开始 → 未结束 → 坐标范围 → 坐标唯一性 → 证明。
// 证明被拒绝时返回ErrProofRejected，会话与账本保持原状。
// 接受后若恰好打满全格则在同一调用内完成终局：先向Hub上报，再持久化。
func (s *Service) MakeMove(ctx context.Context, sessionID uint32, x, y uint32, isHit bool, proof, publicInputs []byte) (bool, error) {
	lock := s.locks.acquire(sessionID)
	lock.Lock()
	defer lock.Unlock()

	data, err := s.store.Get(ctx, gameKey(sessionID))
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, ErrGameNotFound
	}
	game, err := decodeGame(data)
	if err != nil {
		return false, err
	}

	if !game.GameStarted {
		return false, ErrGameNotStarted
	}
	if game.GameEnded {
		return false, ErrGameAlreadyEnded
	}
	if x >= s.rules.GridSize || y >= s.rules.GridSize {
		return false, ErrInvalidMove
	}

	movesData, err := s.store.Get(ctx, movesKey(sessionID))
	if err != nil {
		return false, err
	}
	moves, err := decodeMoves(movesData)
	if err != nil {
		return false, err
	}
	for i := range moves {
		if moves[i].X == x && moves[i].Y == y {
			return false, ErrMoveAlreadyMade
		}
	}

	// 承诺作为公开输入的前缀传给预言机，把证明绑定到本局的陷阱布局
	inputs := make([]byte, 0, len(game.Commitment)+len(publicInputs))
	inputs = append(inputs, game.Commitment...)
	inputs = append(inputs, publicInputs...)

	valid, err := s.verifier.Verify(ctx, proof, inputs)
	if err != nil {
		return false, err
	}
	if !valid {
		// 不变更任何状态，同一坐标可携带修正后的证明重试
		s.logger.Debugf("会话 %d 坐标(%d,%d)的证明被拒绝", sessionID, x, y)
		return false, ErrProofRejected
	}

	moves = append(moves, types.Move{X: x, Y: y, IsHit: isHit, Verified: true})
	game.MovesMade++
	if isHit {
		game.Hits++
	} else {
		game.Misses++
	}

	// 打满全格即终局：命中数过半则进攻方胜
	totalCells := s.rules.TotalCells()
	if game.MovesMade == totalCells {
		defenderWon := game.Hits <= totalCells/2
		if err := s.hub.ConcludeSession(ctx, sessionID, defenderWon); err != nil {
			s.logger.Warnf("会话 %d Hub结算失败: %v", sessionID, err)
			return false, &HubError{Op: "conclude_session", Err: err}
		}
		game.GameEnded = true
		if defenderWon {
			game.Winner = game.Defender
		} else {
			game.Winner = game.Attacker
		}
		s.logger.Infof("会话 %d 打满全格终局: hits=%d winner=%s", sessionID, game.Hits, game.Winner)
	}

	if err := s.persist(ctx, sessionID, game, moves); err != nil {
		return false, err
	}
	return true, nil
}

// EndGame 提前结束会话
//
// 胜负对比已提交移动数的一半：零移动时防守方直接获胜。
func (s *Service) EndGame(ctx context.Context, sessionID uint32) error {
	lock := s.locks.acquire(sessionID)
	lock.Lock()
	defer lock.Unlock()

	data, err := s.store.Get(ctx, gameKey(sessionID))
	if err != nil {
		return err
	}
	if data == nil {
		return ErrGameNotFound
	}
	game, err := decodeGame(data)
	if err != nil {
		return err
	}

	if !game.GameStarted {
		return ErrGameNotStarted
	}
	if game.GameEnded {
		return ErrGameAlreadyEnded
	}

	defenderWon := game.Hits <= game.MovesMade/2
	if err := s.hub.ConcludeSession(ctx, sessionID, defenderWon); err != nil {
		s.logger.Warnf("会话 %d Hub结算失败: %v", sessionID, err)
		return &HubError{Op: "conclude_session", Err: err}
	}

	game.GameEnded = true
	if defenderWon {
		game.Winner = game.Defender
	} else {
		game.Winner = game.Attacker
	}

	movesData, err := s.store.Get(ctx, movesKey(sessionID))
	if err != nil {
		return err
	}
	moves, err := decodeMoves(movesData)
	if err != nil {
		return err
	}
	if err := s.persist(ctx, sessionID, game, moves); err != nil {
		return err
	}

	s.logger.Infof("会话 %d 提前终局: moves=%d hits=%d winner=%s", sessionID, game.MovesMade, game.Hits, game.Winner)
	return nil
}

// GetGame 读取会话状态
func (s *Service) GetGame(ctx context.Context, sessionID uint32) (*types.Game, error) {
	data, err := s.store.Get(ctx, gameKey(sessionID))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrGameNotFound
	}
	return decodeGame(data)
}

// GetMoves 读取移动账本，按提交顺序返回
func (s *Service) GetMoves(ctx context.Context, sessionID uint32) ([]types.Move, error) {
	data, err := s.store.Get(ctx, movesKey(sessionID))
	if err != nil {
		return nil, err
	}
	moves, err := decodeMoves(data)
	if err != nil {
		return nil, err
	}
	if moves == nil {
		moves = []types.Move{}
	}
	return moves, nil
}

// persist 在单个badger事务内写入会话状态与账本，两键同时续期保留窗口
func (s *Service) persist(ctx context.Context, sessionID uint32, game *types.Game, moves []types.Move) error {
	gameData, err := encodeGame(game)
	if err != nil {
		return err
	}
	movesData, err := encodeMoves(moves)
	if err != nil {
		return err
	}
	return s.store.RunInTransaction(ctx, func(tx storageiface.BadgerTransaction) error {
		if err := tx.SetWithTTL(gameKey(sessionID), gameData, s.rules.Retention); err != nil {
			return err
		}
		return tx.SetWithTTL(movesKey(sessionID), movesData, s.rules.Retention)
	})
}
