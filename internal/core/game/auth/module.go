package auth

import (
	gameiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/game"
	logiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/log"
	"go.uber.org/fx"
)

// Module 授权校验fx模块
func Module() fx.Option {
	return fx.Module("game-auth",
		fx.Provide(
			fx.Annotate(
				func(logger logiface.Logger) *Authorizer {
					return New(logger)
				},
				fx.As(new(gameiface.SessionAuthorizer)),
			),
		),
	)
}
