// Package game 提供Trap Grid系统的游戏领域接口定义
//
// 🎮 **游戏会话服务 (Game Session Service)**
//
// 本文件定义了两方对抗会话的核心接口，专注于：
// - 会话生命周期：创建、移动提交、提前结束
// - 状态读取：会话状态与移动账本查询
// - 外部协作者契约：证明验证、Hub登记、授权校验
//
// 🎯 **核心功能**
// - GameService：会话状态机接口，系统的核心
// - ProofVerifier：零知识证明验证预言机（外部，可替换为测试桩）
// - HubClient：会话登记与结算的外部注册表客户端
//
// 🏧 **设计原则**
// - 显式依赖：所有协作者以接口注入，不使用全局可变状态
// - 原子语义：每个操作要么完整生效（含外部副作用），要么无状态变更
// - 对抗环境：不信任任何一方，证明验证失败是正常结果而非异常
package game

import (
	"context"

	"github.com/masaun/ZK-trap-grid/pkg/types"
)

// GameService 会话状态机接口
//
// 状态流转：Uninitialized → Started → Ended，Ended为终态。
// 同一会话的两个写操作（MakeMove / EndGame）相互串行化，
// 锁的作用域仅限单个会话标识。
type GameService interface {
	// StartGame 创建新会话
	//
	// 前置条件：defender != attacker；双方已对(会话ID, 各自押注)完成授权
	// （授权校验由API层完成，核心将其视为已满足的前置条件）。
	// Hub登记失败时会话不会被创建。
	StartGame(ctx context.Context, sessionID uint32, defender, attacker string, commitment []byte, defenderStake, attackerStake int64) error

	// MakeMove 进攻方提交一次探测，防守方附带结果声明与证明
	//
	// 验证顺序：会话存在性 → 状态 → 坐标范围 → 坐标唯一性 → 证明。
	// 拒绝路径均以错误形式返回；其中证明被预言机判为无效时返回
	// ProofRejected类错误，不发生任何状态变更，同一坐标可携带
	// 修正后的证明重试。成功路径上布尔返回值恒为true。
	MakeMove(ctx context.Context, sessionID uint32, x, y uint32, isHit bool, proof, publicInputs []byte) (bool, error)

	// EndGame 提前结束会话
	//
	// 胜负以当前命中数对比已提交移动数的一半判定
	// （与打满全格时对比总格数一半的阈值不同，两条路径刻意不对称）。
	EndGame(ctx context.Context, sessionID uint32) error

	// GetGame 读取会话状态，不存在时返回GAME_NOT_FOUND错误
	GetGame(ctx context.Context, sessionID uint32) (*types.Game, error)

	// GetMoves 读取移动账本，按提交顺序返回；会话或账本不存在时返回空切片
	GetMoves(ctx context.Context, sessionID uint32) ([]types.Move, error)
}

// ProofVerifier 零知识证明验证预言机
//
// 预期语义：证明佐证"坐标(x,y)在承诺的陷阱网格下确为声明的命中/未命中结果"，
// 且不泄露其他格子的状态。本接口对证明体系本身保持不可知。
type ProofVerifier interface {
	// Verify 验证证明
	//
	// 验证失败返回(false, nil)——这是正常结果，不是系统错误；
	// 只有在验证过程本身无法完成时才返回非nil错误。
	// 调用可能较慢（依赖外部验证服务），调用方不应在此期间持有跨会话的锁。
	Verify(ctx context.Context, proof, publicInputs []byte) (bool, error)
}
