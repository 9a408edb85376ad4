package log

import (
	"context"

	logconfig "github.com/masaun/ZK-trap-grid/internal/config/log"
	configiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/config"
	logiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/log"
	"go.uber.org/fx"
)

// Module 返回日志模块
func Module() fx.Option {
	return fx.Module("log",
		fx.Provide(func(provider configiface.Provider) (logiface.Logger, error) {
			logger, err := New(logconfig.NewFromOptions(provider.GetLog()))
			if err != nil {
				return nil, err
			}
			SetLogger(logger)
			return logger, nil
		}),

		fx.Invoke(func(lc fx.Lifecycle, logger logiface.Logger) {
			lc.Append(fx.Hook{
				OnStop: func(ctx context.Context) error {
					// stdout的Sync在部分平台会报错，忽略即可
					_ = logger.Sync()
					return nil
				},
			})
		}),
	)
}
