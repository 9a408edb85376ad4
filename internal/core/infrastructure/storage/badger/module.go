// Package badger 提供基于BadgerDB的存储实现
package badger

import (
	"context"

	badgerconfig "github.com/masaun/ZK-trap-grid/internal/config/storage/badger"
	configiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/config"
	logiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/log"
	storageiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/storage"
	"go.uber.org/fx"
)

// Module 返回存储模块
func Module() fx.Option {
	return fx.Module("storage",
		fx.Provide(func(provider configiface.Provider, logger logiface.Logger) (storageiface.BadgerStore, error) {
			cfg := badgerconfig.NewFromOptions(provider.GetBadger())
			return New(cfg, logger)
		}),

		// 添加生命周期钩子确保在应用停止时关闭数据库
		fx.Invoke(func(lc fx.Lifecycle, store storageiface.BadgerStore, logger logiface.Logger) {
			lc.Append(fx.Hook{
				OnStop: func(ctx context.Context) error {
					if err := store.Close(); err != nil {
						logger.Errorf("关闭BadgerDB存储失败: %v", err)
						return err
					}
					logger.Info("BadgerDB存储已关闭")
					return nil
				},
			})
		}),
	)
}
