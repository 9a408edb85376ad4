package hub

import (
	configiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/config"
	gameiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/game"
	logiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/log"
	storageiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/storage"
	"go.uber.org/fx"
)

// Module Hub协作层fx模块
func Module() fx.Option {
	return fx.Module("game-hub",
		fx.Provide(
			fx.Annotate(
				func(provider configiface.Provider, logger logiface.Logger) *Client {
					return NewClient(provider.GetHub(), logger)
				},
				fx.As(new(gameiface.HubClient)),
			),
			fx.Annotate(
				func(store storageiface.BadgerStore, logger logiface.Logger) *Registry {
					return NewRegistry(store, logger)
				},
				fx.As(new(gameiface.HubRegistry)),
			),
		),
	)
}
