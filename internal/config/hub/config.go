package hub

import (
	"time"

	configtypes "github.com/masaun/ZK-trap-grid/pkg/types"
)

// HubOptions Game Hub配置选项
//
// Endpoint没有默认值：未配置Hub地址属于不可恢复的启动期错误，
// 由应用装配阶段校验并终止启动，而不是在每局会话操作中兜底
type HubOptions struct {
	Endpoint      string        `json:"endpoint"`       // Hub服务HTTP端点
	GameAddress   string        `json:"game_address"`   // 本服务在Hub登记时使用的地址标识
	Timeout       time.Duration `json:"timeout"`        // 单次调用超时
	RetryAttempts int           `json:"retry_attempts"` // 失败重试次数
}

// Config Game Hub配置实现
type Config struct {
	options *HubOptions
}

// New 创建Game Hub配置实现
func New(userConfig interface{}) *Config {
	defaultOptions := &HubOptions{
		GameAddress:   defaultGameAddress,
		Timeout:       defaultTimeout,
		RetryAttempts: defaultRetryAttempts,
	}

	if hubConfig, ok := userConfig.(*configtypes.UserHubConfig); ok && hubConfig != nil {
		if hubConfig.Endpoint != nil {
			defaultOptions.Endpoint = *hubConfig.Endpoint
		}
		if hubConfig.GameAddress != nil && *hubConfig.GameAddress != "" {
			defaultOptions.GameAddress = *hubConfig.GameAddress
		}
		if hubConfig.TimeoutSeconds != nil && *hubConfig.TimeoutSeconds > 0 {
			defaultOptions.Timeout = time.Duration(*hubConfig.TimeoutSeconds) * time.Second
		}
		if hubConfig.RetryAttempts != nil && *hubConfig.RetryAttempts >= 0 {
			defaultOptions.RetryAttempts = *hubConfig.RetryAttempts
		}
	}

	return &Config{options: defaultOptions}
}

// GetOptions 获取完整的Game Hub配置选项
func (c *Config) GetOptions() *HubOptions {
	return c.options
}
