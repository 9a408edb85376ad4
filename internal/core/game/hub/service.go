package hub

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	gameiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/game"
	logiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/log"
	storageiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/storage"
	"github.com/masaun/ZK-trap-grid/pkg/types"
)

// 💾 注册表键空间布局：
//   hub:count              已登记游戏总数（8字节大端序计数器）
//   hub:game:<id>          登记记录（types.HubGameInfo 的 JSON 编码）
//   hub:contract:<addr>    游戏服务地址到ID的反查索引
//   hub:session:<id>       会话登记记录（types.HubSessionInfo 的 JSON 编码）

var hubCountKey = []byte("hub:count")

func hubGameKey(gameID uint64) []byte {
	return []byte(fmt.Sprintf("hub:game:%d", gameID))
}

func hubContractKey(gameContract string) []byte {
	return []byte("hub:contract:" + gameContract)
}

func hubSessionKey(sessionID uint32) []byte {
	return []byte(fmt.Sprintf("hub:session:%d", sessionID))
}

// Registry 本地Hub注册表服务
//
// ID从1开始自增，0保留为"未登记"。登记记录不设TTL：
// 注册表是长期目录，不同于有保留窗口的会话记录。
type Registry struct {
	store  storageiface.BadgerStore
	logger logiface.Logger
}

var _ gameiface.HubRegistry = (*Registry)(nil)

// NewRegistry 创建注册表服务
func NewRegistry(store storageiface.BadgerStore, logger logiface.Logger) *Registry {
	return &Registry{store: store, logger: logger}
}

// RegisterGame 登记一个游戏服务，返回分配的自增ID
//
// 同一地址重复登记返回已分配的ID，不产生新记录
func (r *Registry) RegisterGame(ctx context.Context, gameContract, name string) (uint64, error) {
	if gameContract == "" {
		return 0, fmt.Errorf("游戏服务地址为空")
	}

	var gameID uint64
	err := r.store.RunInTransaction(ctx, func(tx storageiface.BadgerTransaction) error {
		// 幂等：已登记的地址直接返回原ID
		existing, err := tx.Get(hubContractKey(gameContract))
		if err != nil {
			return err
		}
		if existing != nil {
			gameID = binary.BigEndian.Uint64(existing)
			return nil
		}

		count, err := readCount(tx)
		if err != nil {
			return err
		}
		gameID = count + 1

		info := &types.HubGameInfo{
			GameID:       gameID,
			GameContract: gameContract,
			Name:         name,
			Active:       true,
		}
		data, err := json.Marshal(info)
		if err != nil {
			return fmt.Errorf("编码登记记录失败: %w", err)
		}

		idBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(idBytes, gameID)

		if err := tx.Set(hubGameKey(gameID), data); err != nil {
			return err
		}
		if err := tx.Set(hubContractKey(gameContract), idBytes); err != nil {
			return err
		}
		return tx.Set(hubCountKey, idBytes)
	})
	if err != nil {
		return 0, err
	}

	r.logger.Infof("游戏服务已登记: id=%d contract=%s name=%s", gameID, gameContract, name)
	return gameID, nil
}

// GetGame 按ID查询登记信息，不存在时返回nil
func (r *Registry) GetGame(ctx context.Context, gameID uint64) (*types.HubGameInfo, error) {
	data, err := r.store.Get(ctx, hubGameKey(gameID))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	var info types.HubGameInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("解码登记记录失败: %w", err)
	}
	return &info, nil
}

// GetGameByContract 按游戏服务地址反查ID，不存在时返回0
func (r *Registry) GetGameByContract(ctx context.Context, gameContract string) (uint64, error) {
	data, err := r.store.Get(ctx, hubContractKey(gameContract))
	if err != nil {
		return 0, err
	}
	if data == nil {
		return 0, nil
	}
	return binary.BigEndian.Uint64(data), nil
}

// GameCount 返回已登记游戏总数
func (r *Registry) GameCount(ctx context.Context) (uint64, error) {
	data, err := r.store.Get(ctx, hubCountKey)
	if err != nil {
		return 0, err
	}
	if data == nil {
		return 0, nil
	}
	return binary.BigEndian.Uint64(data), nil
}

// AllGames 返回全部登记记录（按ID升序）
func (r *Registry) AllGames(ctx context.Context) ([]types.HubGameInfo, error) {
	count, err := r.GameCount(ctx)
	if err != nil {
		return nil, err
	}

	games := make([]types.HubGameInfo, 0, count)
	for id := uint64(1); id <= count; id++ {
		info, err := r.GetGame(ctx, id)
		if err != nil {
			return nil, err
		}
		if info != nil {
			games = append(games, *info)
		}
	}
	return games, nil
}

// DeactivateGame 将登记记录标记为不活跃，返回是否存在
func (r *Registry) DeactivateGame(ctx context.Context, gameID uint64) (bool, error) {
	found := false
	err := r.store.RunInTransaction(ctx, func(tx storageiface.BadgerTransaction) error {
		data, err := tx.Get(hubGameKey(gameID))
		if err != nil {
			return err
		}
		if data == nil {
			return nil
		}
		var info types.HubGameInfo
		if err := json.Unmarshal(data, &info); err != nil {
			return fmt.Errorf("解码登记记录失败: %w", err)
		}
		info.Active = false
		updated, err := json.Marshal(&info)
		if err != nil {
			return fmt.Errorf("编码登记记录失败: %w", err)
		}
		found = true
		return tx.Set(hubGameKey(gameID), updated)
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// RecordSessionBegin 登记一条会话记录
//
// 游戏服务端在本地写入失败后可能对同一会话重发Begin，因此
// 未结算的重复登记直接覆盖；已结算的会话拒绝重新登记
func (r *Registry) RecordSessionBegin(ctx context.Context, info *types.HubSessionInfo) error {
	if info == nil {
		return fmt.Errorf("会话登记记录为空")
	}
	return r.store.RunInTransaction(ctx, func(tx storageiface.BadgerTransaction) error {
		existing, err := tx.Get(hubSessionKey(info.SessionID))
		if err != nil {
			return err
		}
		if existing != nil {
			var prev types.HubSessionInfo
			if err := json.Unmarshal(existing, &prev); err != nil {
				return fmt.Errorf("解码会话记录失败: %w", err)
			}
			if prev.Concluded {
				return fmt.Errorf("会话 %d 已结算，不可重新登记", info.SessionID)
			}
		}

		record := *info
		record.Concluded = false
		record.DefenderWon = false
		data, err := json.Marshal(&record)
		if err != nil {
			return fmt.Errorf("编码会话记录失败: %w", err)
		}
		return tx.Set(hubSessionKey(info.SessionID), data)
	})
}

// RecordSessionConclusion 记录会话结果，返回会话是否已登记
func (r *Registry) RecordSessionConclusion(ctx context.Context, sessionID uint32, defenderWon bool) (bool, error) {
	found := false
	err := r.store.RunInTransaction(ctx, func(tx storageiface.BadgerTransaction) error {
		data, err := tx.Get(hubSessionKey(sessionID))
		if err != nil {
			return err
		}
		if data == nil {
			return nil
		}
		var info types.HubSessionInfo
		if err := json.Unmarshal(data, &info); err != nil {
			return fmt.Errorf("解码会话记录失败: %w", err)
		}
		info.Concluded = true
		info.DefenderWon = defenderWon
		updated, err := json.Marshal(&info)
		if err != nil {
			return fmt.Errorf("编码会话记录失败: %w", err)
		}
		found = true
		return tx.Set(hubSessionKey(sessionID), updated)
	})
	if err != nil {
		return false, err
	}
	if found {
		r.logger.Infof("Hub会话 %d 已结算: defenderWon=%v", sessionID, defenderWon)
	}
	return found, nil
}

// GetSession 按ID查询会话登记记录，不存在时返回nil
func (r *Registry) GetSession(ctx context.Context, sessionID uint32) (*types.HubSessionInfo, error) {
	data, err := r.store.Get(ctx, hubSessionKey(sessionID))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	var info types.HubSessionInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("解码会话记录失败: %w", err)
	}
	return &info, nil
}

func readCount(tx storageiface.BadgerTransaction) (uint64, error) {
	data, err := tx.Get(hubCountKey)
	if err != nil {
		return 0, err
	}
	if data == nil {
		return 0, nil
	}
	return binary.BigEndian.Uint64(data), nil
}
