package badger

import (
	"context"
	"testing"
	"time"

	badgerconfig "github.com/masaun/ZK-trap-grid/internal/config/storage/badger"
	logiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/log"
	storageiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/storage"
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

// 初始化测试环境
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	options := &badgerconfig.BadgerOptions{
		Path:         t.TempDir(),
		SyncWrites:   false,
		MemTableSize: 1 << 20, // 1MB，ValueThreshold在New中随之压低
	}
	cfg := badgerconfig.NewFromOptions(options)

	store, err := New(cfg, &mockLogger{})
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// 测试基本的键值操作
func TestBasicKeyValueOperations(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	key := []byte("game:1")
	value := []byte(`{"moves_made":0}`)

	// 设置键值
	err := store.Set(ctx, key, value)
	require.NoError(t, err)

	// 读取键值
	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, value, got)

	// 存在性检查
	exists, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	// 删除
	err = store.Delete(ctx, key)
	require.NoError(t, err)

	exists, err = store.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

// 测试不存在的键返回nil值和nil错误
func TestGetMissingKey(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	got, err := store.Get(ctx, []byte("missing"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

// 测试带TTL的键值在过期后被清理
func TestSetWithTTLExpires(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	key := []byte("session:expiring")
	err := store.SetWithTTL(ctx, key, []byte("v"), 500*time.Millisecond)
	require.NoError(t, err)

	exists, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	time.Sleep(time.Second)

	exists, err = store.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists, "过期键应不可见")
}

// 测试前缀扫描
func TestPrefixScan(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, []byte("hub:game:1"), []byte("a")))
	require.NoError(t, store.Set(ctx, []byte("hub:game:2"), []byte("b")))
	require.NoError(t, store.Set(ctx, []byte("other:1"), []byte("c")))

	result, err := store.PrefixScan(ctx, []byte("hub:game:"))
	require.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, []byte("a"), result["hub:game:1"])
	assert.Equal(t, []byte("b"), result["hub:game:2"])
}

// 测试事务的原子性：回滚后所有写入不可见
func TestTransactionRollback(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	var _ storageiface.BadgerStore = store

	err := store.RunInTransaction(ctx, func(tx storageiface.BadgerTransaction) error {
		if err := tx.Set([]byte("a"), []byte("1")); err != nil {
			return err
		}
		if err := tx.Set([]byte("b"), []byte("2")); err != nil {
			return err
		}
		return assert.AnError
	})
	require.Error(t, err)

	exists, err := store.Exists(ctx, []byte("a"))
	require.NoError(t, err)
	assert.False(t, exists, "事务回滚后写入应不可见")
}

// 测试事务的提交：事务内读到未提交写入，提交后全部可见
func TestTransactionCommit(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	err := store.RunInTransaction(ctx, func(tx storageiface.BadgerTransaction) error {
		if err := tx.Set([]byte("a"), []byte("1")); err != nil {
			return err
		}

		// 事务内可见自身写入
		val, err := tx.Get([]byte("a"))
		if err != nil {
			return err
		}
		assert.Equal(t, []byte("1"), val)

		return tx.SetWithTTL([]byte("b"), []byte("2"), time.Hour)
	})
	require.NoError(t, err)

	got, err := store.Get(ctx, []byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)

	got, err = store.Get(ctx, []byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), got)
}

// 测试小memtable配置下磁盘DB仍能打开并写入
// （BadgerDB要求ValueThreshold不超过MemTableSize的15%，由New保证）
func TestOpenWithSmallMemTable(t *testing.T) {
	options := &badgerconfig.BadgerOptions{
		Path:         t.TempDir(),
		MemTableSize: 1 << 20,
	}
	store, err := New(badgerconfig.NewFromOptions(options), &mockLogger{})
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(context.Background(), []byte("k"), []byte("v")))

	got, err := store.Get(context.Background(), []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

// 测试内存模式
func TestInMemoryMode(t *testing.T) {
	options := &badgerconfig.BadgerOptions{InMemory: true}
	cfg := badgerconfig.NewFromOptions(options)

	store, err := New(cfg, &mockLogger{})
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, []byte("k"), []byte("v")))

	got, err := store.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}
