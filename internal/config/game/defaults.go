package game

import "time"

// 游戏规则默认值
const (
	// DefaultGridSize 默认网格边长为8（8x8共64格）
	DefaultGridSize uint32 = 8

	// maxGridSize 网格边长上限
	// 原因：总格数为边长的平方，65535是平方仍在uint32内的最大边长
	maxGridSize uint32 = 65535

	// defaultRetention 会话记录默认保留30天
	// 原因：足以覆盖一局对抗的完整生命周期与事后查证窗口，
	// 过期后由存储层自动清理
	defaultRetention = 30 * 24 * time.Hour
)
