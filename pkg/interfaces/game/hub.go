package game

import (
	"context"

	"github.com/masaun/ZK-trap-grid/pkg/types"
)

// HubClient Game Hub注册表客户端
//
// 两个调用都是同步的：失败必须使触发它的核心操作中止，
// 不存在"尽力而为"的通知语义。
type HubClient interface {
	// BeginSession 登记一局新会话（双方身份与押注）
	// 在会话创建前调用，失败则会话不被创建
	BeginSession(ctx context.Context, sessionID uint32, gameAddress, defender, attacker string, defenderStake, attackerStake int64) error

	// ConcludeSession 上报会话结果
	// defenderWon 表示防守方是否获胜
	// 必须在会话被持久化标记为已结束之前成功返回
	ConcludeSession(ctx context.Context, sessionID uint32, defenderWon bool) error
}

// HubRegistry Game Hub注册表服务（本地Hub模式）
//
// 对应注册表的CRUD面：按自增ID登记游戏服务并跟踪其活跃状态。
// 这是独立于会话核心的简单组件。
type HubRegistry interface {
	// RegisterGame 登记一个游戏服务，返回分配的自增ID
	RegisterGame(ctx context.Context, gameContract, name string) (uint64, error)

	// GetGame 按ID查询登记信息，不存在时返回nil
	GetGame(ctx context.Context, gameID uint64) (*types.HubGameInfo, error)

	// GetGameByContract 按游戏服务地址反查ID，不存在时返回0
	GetGameByContract(ctx context.Context, gameContract string) (uint64, error)

	// GameCount 返回已登记游戏总数
	GameCount(ctx context.Context) (uint64, error)

	// AllGames 返回全部登记记录（按ID升序）
	AllGames(ctx context.Context) ([]types.HubGameInfo, error)

	// DeactivateGame 将登记记录标记为不活跃，返回是否存在
	DeactivateGame(ctx context.Context, gameID uint64) (bool, error)

	// RecordSessionBegin 登记一条会话记录（Hub服务端，Begin上报的受理方）
	// 同一会话重复登记是幂等的；已结算的会话不可重新登记
	RecordSessionBegin(ctx context.Context, info *types.HubSessionInfo) error

	// RecordSessionConclusion 记录会话结果，返回会话是否已登记
	RecordSessionConclusion(ctx context.Context, sessionID uint32, defenderWon bool) (bool, error)

	// GetSession 按ID查询会话登记记录，不存在时返回nil
	GetSession(ctx context.Context, sessionID uint32) (*types.HubSessionInfo, error)
}
