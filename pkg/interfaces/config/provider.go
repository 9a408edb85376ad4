// Package config provides configuration provider interfaces.
package config

import (
	apiconfig "github.com/masaun/ZK-trap-grid/internal/config/api"
	gameconfig "github.com/masaun/ZK-trap-grid/internal/config/game"
	hubconfig "github.com/masaun/ZK-trap-grid/internal/config/hub"
	logconfig "github.com/masaun/ZK-trap-grid/internal/config/log"
	badgerconfig "github.com/masaun/ZK-trap-grid/internal/config/storage/badger"
	zkconfig "github.com/masaun/ZK-trap-grid/internal/config/zk"
)

// Provider 配置提供者接口
type Provider interface {
	// GetAPI 获取API服务配置
	GetAPI() *apiconfig.APIOptions

	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions

	// GetBadger 获取BadgerDB存储配置
	GetBadger() *badgerconfig.BadgerOptions

	// GetGame 获取游戏规则配置（网格尺寸、保留窗口）
	GetGame() *gameconfig.GameOptions

	// GetHub 获取Game Hub配置
	GetHub() *hubconfig.HubOptions

	// GetZK 获取证明验证配置
	GetZK() *zkconfig.ZKOptions
}
