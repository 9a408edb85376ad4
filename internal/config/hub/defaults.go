package hub

import "time"

// Game Hub配置默认值
const (
	// defaultTimeout 单次Hub调用超时设为10秒
	// 原因：Begin/Conclude都在核心操作的临界路径上，
	// 超时过长会放大单个会话锁的持有时间
	defaultTimeout = 10 * time.Second

	// defaultRetryAttempts 失败重试2次
	// 原因：Hub调用失败会中止核心操作，适度重试吸收瞬时网络抖动
	defaultRetryAttempts = 2

	// defaultGameAddress 本服务在Hub登记时的默认地址标识
	defaultGameAddress = "zk-trap-grid"
)
