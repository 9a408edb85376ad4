// Package badger 提供基于BadgerDB的存储实现
package badger

import (
	"fmt"
	"time"

	badgerdb "github.com/dgraph-io/badger/v3"
	"github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/storage"
)

// 确保 Transaction 实现了 interfaces.BadgerTransaction 接口
var _ storage.BadgerTransaction = (*Transaction)(nil)

// Transaction 实现BadgerTransaction接口
type Transaction struct {
	txn *badgerdb.Txn
}

// Get 获取指定键的值
func (t *Transaction) Get(key []byte) ([]byte, error) {
	item, err := t.txn.Get(key)
	if err != nil {
		if err == badgerdb.ErrKeyNotFound {
			return nil, nil // 键不存在时返回nil值和nil错误
		}
		return nil, err
	}

	val, err := item.ValueCopy(nil)
	if err != nil {
		return nil, fmt.Errorf("复制键值失败: %w", err)
	}
	return val, nil
}

// Set 设置键值对
func (t *Transaction) Set(key, value []byte) error {
	if err := t.txn.Set(key, value); err != nil {
		return fmt.Errorf("设置键值失败: %w", err)
	}
	return nil
}

// SetWithTTL 设置键值对并指定过期时间
func (t *Transaction) SetWithTTL(key, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return t.Set(key, value)
	}
	entry := badgerdb.NewEntry(key, value).WithTTL(ttl)
	if err := t.txn.SetEntry(entry); err != nil {
		return fmt.Errorf("设置带TTL的键值失败: %w", err)
	}
	return nil
}

// Delete 删除指定键的值
func (t *Transaction) Delete(key []byte) error {
	if err := t.txn.Delete(key); err != nil {
		return fmt.Errorf("删除键值失败: %w", err)
	}
	return nil
}

// Exists 检查键是否存在
func (t *Transaction) Exists(key []byte) (bool, error) {
	_, err := t.txn.Get(key)
	if err == badgerdb.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
