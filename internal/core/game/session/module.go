package session

import (
	configiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/config"
	gameiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/game"
	logiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/log"
	storageiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/storage"
	"go.uber.org/fx"
)

// Module 会话状态机fx模块
func Module() fx.Option {
	return fx.Module("game-session",
		fx.Provide(
			fx.Annotate(
				func(
					store storageiface.BadgerStore,
					hub gameiface.HubClient,
					verifier gameiface.ProofVerifier,
					provider configiface.Provider,
					logger logiface.Logger,
				) *Service {
					return NewService(store, hub, verifier, provider.GetGame(), provider.GetHub(), logger)
				},
				fx.As(new(gameiface.GameService)),
			),
		),
	)
}
