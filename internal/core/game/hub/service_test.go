package hub

import (
	"context"
	"testing"

	badgerconfig "github.com/masaun/ZK-trap-grid/internal/config/storage/badger"
	badgerstore "github.com/masaun/ZK-trap-grid/internal/core/infrastructure/storage/badger"
	"github.com/masaun/ZK-trap-grid/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	storeCfg := badgerconfig.NewFromOptions(&badgerconfig.BadgerOptions{InMemory: true})
	store, err := badgerstore.New(storeCfg, &mockLogger{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return NewRegistry(store, &mockLogger{})
}

// 测试登记与按ID查询
func TestRegisterAndGetGame(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()

	id, err := registry.RegisterGame(ctx, "trapgrid-main", "ZK Trap Grid")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	info, err := registry.GetGame(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, uint64(1), info.GameID)
	assert.Equal(t, "trapgrid-main", info.GameContract)
	assert.Equal(t, "ZK Trap Grid", info.Name)
	assert.True(t, info.Active)

	// 不存在的ID返回nil
	missing, err := registry.GetGame(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// 测试ID自增与总数统计
func TestRegisterAssignsSequentialIDs(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()

	id1, err := registry.RegisterGame(ctx, "game-a", "A")
	require.NoError(t, err)
	id2, err := registry.RegisterGame(ctx, "game-b", "B")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id1)
	assert.Equal(t, uint64(2), id2)

	count, err := registry.GameCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)
}

// 测试同一地址重复登记的幂等性
func TestRegisterIdempotent(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()

	id1, err := registry.RegisterGame(ctx, "game-a", "A")
	require.NoError(t, err)
	id2, err := registry.RegisterGame(ctx, "game-a", "A again")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	count, err := registry.GameCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count, "重复登记不应产生新记录")
}

// 测试按地址反查
func TestGetGameByContract(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()

	id, err := registry.RegisterGame(ctx, "game-a", "A")
	require.NoError(t, err)

	found, err := registry.GetGameByContract(ctx, "game-a")
	require.NoError(t, err)
	assert.Equal(t, id, found)

	missing, err := registry.GetGameByContract(ctx, "unknown")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), missing)
}

// 测试全量列表按ID升序
func TestAllGames(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()

	_, err := registry.RegisterGame(ctx, "game-a", "A")
	require.NoError(t, err)
	_, err = registry.RegisterGame(ctx, "game-b", "B")
	require.NoError(t, err)

	games, err := registry.AllGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, uint64(1), games[0].GameID)
	assert.Equal(t, uint64(2), games[1].GameID)
}

// 测试停用登记记录
func TestDeactivateGame(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()

	id, err := registry.RegisterGame(ctx, "game-a", "A")
	require.NoError(t, err)

	found, err := registry.DeactivateGame(ctx, id)
	require.NoError(t, err)
	assert.True(t, found)

	info, err := registry.GetGame(ctx, id)
	require.NoError(t, err)
	assert.False(t, info.Active)

	// 不存在的记录返回false
	found, err = registry.DeactivateGame(ctx, 99)
	require.NoError(t, err)
	assert.False(t, found)
}

func sampleSession(sessionID uint32) *types.HubSessionInfo {
	return &types.HubSessionInfo{
		SessionID:     sessionID,
		GameContract:  "trapgrid-main",
		Defender:      "GDEFENDER",
		Attacker:      "GATTACKER",
		DefenderStake: 100,
		AttackerStake: 100,
	}
}

// 测试会话登记与查询
func TestRecordSessionBegin(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, registry.RecordSessionBegin(ctx, sampleSession(7)))

	info, err := registry.GetSession(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, uint32(7), info.SessionID)
	assert.Equal(t, "GDEFENDER", info.Defender)
	assert.False(t, info.Concluded)

	// 不存在的会话返回nil
	missing, err := registry.GetSession(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// 测试未结算会话的重复登记是幂等的
func TestRecordSessionBeginIdempotent(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, registry.RecordSessionBegin(ctx, sampleSession(7)))
	require.NoError(t, registry.RecordSessionBegin(ctx, sampleSession(7)))

	info, err := registry.GetSession(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.False(t, info.Concluded)
}

// 测试会话结算与已结算会话的登记拒绝
func TestRecordSessionConclusion(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, registry.RecordSessionBegin(ctx, sampleSession(7)))

	found, err := registry.RecordSessionConclusion(ctx, 7, true)
	require.NoError(t, err)
	assert.True(t, found)

	info, err := registry.GetSession(ctx, 7)
	require.NoError(t, err)
	assert.True(t, info.Concluded)
	assert.True(t, info.DefenderWon)

	// 已结算的会话不可重新登记
	err = registry.RecordSessionBegin(ctx, sampleSession(7))
	assert.Error(t, err)

	// 未登记的会话结算返回false
	found, err = registry.RecordSessionConclusion(ctx, 99, false)
	require.NoError(t, err)
	assert.False(t, found)
}
