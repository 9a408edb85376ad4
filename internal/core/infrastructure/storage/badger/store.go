// Package badger 提供基于BadgerDB的存储实现
package badger

import (
	"context"
	"fmt"
	"os"
	"time"

	badgerdb "github.com/dgraph-io/badger/v3"
	badgerconfig "github.com/masaun/ZK-trap-grid/internal/config/storage/badger"
	logiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/log"
	interfaces "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/storage"
)

// 确保 Store 实现了 interfaces.BadgerStore 接口
var _ interfaces.BadgerStore = (*Store)(nil)

// Store 实现BadgerStore接口
type Store struct {
	db     *badgerdb.DB
	config *badgerconfig.Config
	logger logiface.Logger
}

// New 创建新的BadgerStore实例
func New(config *badgerconfig.Config, logger logiface.Logger) (*Store, error) {
	var opts badgerdb.Options

	if config.IsInMemory() {
		// 纯内存模式：测试专用，数据不持久化
		opts = badgerdb.DefaultOptions("").WithInMemory(true)
	} else {
		dataDir := config.GetPath()
		if dataDir == "" {
			dataDir = "./data/badger"
			logger.Warnf("BadgerDB数据目录路径未配置，使用默认路径: %s", dataDir)
		}

		if err := os.MkdirAll(dataDir, 0o700); err != nil {
			return nil, fmt.Errorf("无法创建BadgerDB数据目录: %w", err)
		}

		opts = badgerdb.DefaultOptions(dataDir)
		opts.SyncWrites = config.IsSyncWritesEnabled()
		opts.MemTableSize = config.GetMemTableSize()

		// BadgerDB约束：ValueThreshold不得超过最大批量写入（MemTableSize的15%），
		// 否则Open直接失败；小memtable配置下随上限压低阈值
		if maxBatch := (15 * opts.MemTableSize) / 100; opts.ValueThreshold > maxBatch {
			opts.ValueThreshold = maxBatch
		}

		logger.Infof("初始化BadgerDB存储，数据目录: %s", dataDir)
	}

	// 会话数据量小，压低缓存避免不必要的RSS占用
	opts.BlockCacheSize = 32 << 20
	opts.IndexCacheSize = 32 << 20
	opts.NumMemtables = 2

	// 复用统一日志接口，抑制Badger默认的标准库日志输出
	opts.Logger = newBadgerLogger(logger)

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("无法打开BadgerDB: %w", err)
	}

	logger.Info("BadgerDB存储初始化完成")

	return &Store{
		db:     db,
		config: config,
		logger: logger,
	}, nil
}

// Close 关闭BadgerDB数据库连接
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	s.logger.Info("正在关闭BadgerDB存储...")
	return s.db.Close()
}

// Get 获取指定键的值
// 键不存在时返回nil值和nil错误，与"存在但为空"区分
func (s *Store) Get(ctx context.Context, key []byte) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if err == badgerdb.ErrKeyNotFound {
				return nil
			}
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("读取键值失败: %w", err)
	}
	return value, nil
}

// Set 设置键值对
func (s *Store) Set(ctx context.Context, key, value []byte) error {
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set(key, value)
	})
	if err != nil {
		return fmt.Errorf("设置键值失败: %w", err)
	}
	return nil
}

// SetWithTTL 设置键值对并指定过期时间
func (s *Store) SetWithTTL(ctx context.Context, key, value []byte, ttl time.Duration) error {
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		if ttl <= 0 {
			return txn.Set(key, value)
		}
		entry := badgerdb.NewEntry(key, value).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("设置带TTL的键值失败: %w", err)
	}
	return nil
}

// Delete 删除指定键的值
func (s *Store) Delete(ctx context.Context, key []byte) error {
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Delete(key)
	})
	if err != nil {
		return fmt.Errorf("删除键值失败: %w", err)
	}
	return nil
}

// Exists 检查键是否存在
func (s *Store) Exists(ctx context.Context, key []byte) (bool, error) {
	exists := false
	err := s.db.View(func(txn *badgerdb.Txn) error {
		_, err := txn.Get(key)
		if err != nil {
			if err == badgerdb.ErrKeyNotFound {
				return nil
			}
			return err
		}
		exists = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("检查键存在性失败: %w", err)
	}
	return exists, nil
}

// PrefixScan 按前缀扫描键值对
func (s *Store) PrefixScan(ctx context.Context, prefix []byte) (map[string][]byte, error) {
	result := make(map[string][]byte)
	err := s.db.View(func(txn *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			result[string(item.KeyCopy(nil))] = value
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("前缀扫描失败: %w", err)
	}
	return result, nil
}

// RunInTransaction 在事务中执行操作
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx interfaces.BadgerTransaction) error) error {
	return s.db.Update(func(txn *badgerdb.Txn) error {
		return fn(&Transaction{txn: txn})
	})
}
