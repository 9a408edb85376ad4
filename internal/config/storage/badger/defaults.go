package badger

// BadgerDB配置默认值
const (
	// defaultPath 默认数据库存储路径
	defaultPath = "./data/badger"

	// defaultSyncWrites 默认关闭同步写入
	// 原因：会话数据量小且每次写入都在事务内提交，
	// 异步写入在单机场景下的吞吐收益大于崩溃窗口风险
	defaultSyncWrites = false

	// defaultMemTableSize 内存表大小设为8MB
	// 原因：单局会话及其账本远小于1KB，8MB足以容纳全部活跃会话
	defaultMemTableSize = 8 << 20
)
