package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/kashieternal/rewardsgate/internal/config"
	"github.com/kashieternal/rewardsgate/internal/session"
)

// Module wires PostgreSQL storage and the session repository adapter.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) session.Repository { return s.Sessions() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
