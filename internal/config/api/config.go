package api

import (
	configtypes "github.com/masaun/ZK-trap-grid/pkg/types"
)

// APIOptions API服务配置选项
type APIOptions struct {
	Host string `json:"host"` // HTTP监听地址
	Port int    `json:"port"` // HTTP监听端口
}

// Config API配置实现
type Config struct {
	options *APIOptions
}

// New 创建API配置实现
func New(userConfig interface{}) *Config {
	defaultOptions := &APIOptions{
		Host: defaultHost,
		Port: defaultPort,
	}

	if apiConfig, ok := userConfig.(*configtypes.UserAPIConfig); ok && apiConfig != nil {
		if apiConfig.Host != nil {
			defaultOptions.Host = *apiConfig.Host
		}
		if apiConfig.Port != nil {
			defaultOptions.Port = *apiConfig.Port
		}
	}

	return &Config{options: defaultOptions}
}

// GetOptions 获取完整的API配置选项
func (c *Config) GetOptions() *APIOptions {
	return c.options
}
