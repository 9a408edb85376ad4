package zkproof

import (
	configiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/config"
	gameiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/game"
	logiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/log"
	"go.uber.org/fx"
)

// Module 证明验证预言机fx模块
func Module() fx.Option {
	return fx.Module("zkproof",
		fx.Provide(
			fx.Annotate(
				func(provider configiface.Provider, logger logiface.Logger) (*Verifier, error) {
					return New(provider.GetZK(), logger)
				},
				fx.As(new(gameiface.ProofVerifier)),
			),
		),
	)
}
