// Package config 提供配置装配与分发
//
// 每个配置域（日志、存储、API、游戏规则、Hub、ZK）都有独立的子包，
// 各自负责默认值与用户覆盖的合并；Provider只做分发，不做解释。
package config

import (
	apiconfig "github.com/masaun/ZK-trap-grid/internal/config/api"
	gameconfig "github.com/masaun/ZK-trap-grid/internal/config/game"
	hubconfig "github.com/masaun/ZK-trap-grid/internal/config/hub"
	logconfig "github.com/masaun/ZK-trap-grid/internal/config/log"
	badgerconfig "github.com/masaun/ZK-trap-grid/internal/config/storage/badger"
	zkconfig "github.com/masaun/ZK-trap-grid/internal/config/zk"
	"github.com/masaun/ZK-trap-grid/pkg/interfaces/config"
	"github.com/masaun/ZK-trap-grid/pkg/types"
)

// Provider 实现配置提供者接口
type Provider struct {
	appConfig *types.AppConfig
}

// NewProvider 创建配置提供者
func NewProvider(appConfig *types.AppConfig) config.Provider {
	return &Provider{
		appConfig: appConfig,
	}
}

// GetAPI 获取API服务配置
func (p *Provider) GetAPI() *apiconfig.APIOptions {
	var userAPIConfig *types.UserAPIConfig
	if p.appConfig != nil && p.appConfig.API != nil {
		userAPIConfig = p.appConfig.API
	}
	return apiconfig.New(userAPIConfig).GetOptions()
}

// GetLog 获取日志配置
func (p *Provider) GetLog() *logconfig.LogOptions {
	var userLogConfig *types.UserLogConfig
	if p.appConfig != nil && p.appConfig.Log != nil {
		userLogConfig = p.appConfig.Log
	}
	return logconfig.New(userLogConfig).GetOptions()
}

// GetBadger 获取BadgerDB存储配置
func (p *Provider) GetBadger() *badgerconfig.BadgerOptions {
	var userStorageConfig *types.UserStorageConfig
	if p.appConfig != nil && p.appConfig.Storage != nil {
		userStorageConfig = p.appConfig.Storage
	}
	return badgerconfig.New(userStorageConfig).GetOptions()
}

// GetGame 获取游戏规则配置
func (p *Provider) GetGame() *gameconfig.GameOptions {
	var userGameConfig *types.UserGameConfig
	if p.appConfig != nil && p.appConfig.Game != nil {
		userGameConfig = p.appConfig.Game
	}
	return gameconfig.New(userGameConfig).GetOptions()
}

// GetHub 获取Game Hub配置
func (p *Provider) GetHub() *hubconfig.HubOptions {
	var userHubConfig *types.UserHubConfig
	if p.appConfig != nil && p.appConfig.Hub != nil {
		userHubConfig = p.appConfig.Hub
	}
	return hubconfig.New(userHubConfig).GetOptions()
}

// GetZK 获取证明验证配置
func (p *Provider) GetZK() *zkconfig.ZKOptions {
	var userZKConfig *types.UserZKConfig
	if p.appConfig != nil && p.appConfig.ZK != nil {
		userZKConfig = p.appConfig.ZK
	}
	return zkconfig.New(userZKConfig).GetOptions()
}
