package zk

import (
	configtypes "github.com/masaun/ZK-trap-grid/pkg/types"
)

// ZKOptions 证明验证配置选项
type ZKOptions struct {
	// VerifyingKeyPath Groth16验证密钥文件路径
	// 未配置时属于不可恢复的启动期错误（与Hub端点同等对待）
	VerifyingKeyPath string `json:"verifying_key_path"`

	// Curve 椭圆曲线标识 (bn254, bls12-381)
	Curve string `json:"curve"`
}

// Config 证明验证配置实现
type Config struct {
	options *ZKOptions
}

// New 创建证明验证配置实现
func New(userConfig interface{}) *Config {
	defaultOptions := &ZKOptions{
		Curve: defaultCurve,
	}

	if zkConfig, ok := userConfig.(*configtypes.UserZKConfig); ok && zkConfig != nil {
		if zkConfig.VerifyingKeyPath != nil {
			defaultOptions.VerifyingKeyPath = *zkConfig.VerifyingKeyPath
		}
		if zkConfig.Curve != nil {
			defaultOptions.Curve = *zkConfig.Curve
		}
	}

	return &Config{options: defaultOptions}
}

// GetOptions 获取完整的证明验证配置选项
func (c *Config) GetOptions() *ZKOptions {
	return c.options
}
