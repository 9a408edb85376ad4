package http

import (
	logiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/log"
	"go.uber.org/fx"
)

// Module 返回HTTP服务模块
func Module() fx.Option {
	return fx.Options(
		fx.Provide(NewServer),

		// 强制实例化：Server只通过lifecycle钩子产生副作用，
		// 没有下游消费者，必须用Invoke触发构造
		fx.Invoke(func(server *Server, logger logiface.Logger) {
			logger.Info("HTTP API模块加载")
		}),
	)
}
