package game

import (
	"time"

	configtypes "github.com/masaun/ZK-trap-grid/pkg/types"
)

// GameOptions 游戏规则配置选项
//
// 网格尺寸与保留窗口是全局配置常量，不是每局会话的参数
type GameOptions struct {
	GridSize  uint32        `json:"grid_size"` // 网格边长，总格数为其平方
	Retention time.Duration `json:"retention"` // 会话记录保留窗口，每次变更后续期
}

// Config 游戏规则配置实现
type Config struct {
	options *GameOptions
}

// New 创建游戏规则配置实现
func New(userConfig interface{}) *Config {
	defaultOptions := &GameOptions{
		GridSize:  DefaultGridSize,
		Retention: defaultRetention,
	}

	if gameConfig, ok := userConfig.(*configtypes.UserGameConfig); ok && gameConfig != nil {
		// 超出上限的边长会使总格数的平方计算溢出uint32，按无效值忽略
		if gameConfig.GridSize != nil && *gameConfig.GridSize > 0 && *gameConfig.GridSize <= maxGridSize {
			defaultOptions.GridSize = *gameConfig.GridSize
		}
		if gameConfig.RetentionSeconds != nil && *gameConfig.RetentionSeconds > 0 {
			defaultOptions.Retention = time.Duration(*gameConfig.RetentionSeconds) * time.Second
		}
	}

	return &Config{options: defaultOptions}
}

// GetOptions 获取完整的游戏规则配置选项
func (c *Config) GetOptions() *GameOptions {
	return c.options
}

// TotalCells 网格总格数
func (o *GameOptions) TotalCells() uint32 {
	return o.GridSize * o.GridSize
}
