package session

import "sync"

// 🔐 按会话分段的互斥锁
//
// 单个会话上的读取-校验-验证-写入序列必须互斥执行，否则两个并发
// 落子可能基于同一份旧状态各自通过重复检查。不同会话之间完全
// 并行，证明验证（最耗时的步骤）只阻塞同一会话的操作。
type sessionLocks struct {
	mu    sync.Mutex
	locks map[uint32]*sync.Mutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{
		locks: make(map[uint32]*sync.Mutex),
	}
}

// acquire 返回指定会话的互斥锁，按需创建
//
// 锁条目不回收：会话标识为uint32，条目是一把裸互斥锁，
// 长期运行的内存占用可以忽略。
func (s *sessionLocks) acquire(sessionID uint32) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	return lock
}
