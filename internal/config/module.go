package config

import (
	configiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/config"
	"go.uber.org/fx"
)

// Module 返回配置模块
func Module() fx.Option {
	return fx.Module("config",
		fx.Provide(func(appOptions configiface.AppOptions) configiface.Provider {
			return NewProvider(appOptions.GetAppConfig())
		}),
	)
}
