package session

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/kashieternal/rewardsgate/internal/config"
	"github.com/kashieternal/rewardsgate/internal/pkg/auth"
)

// Module wires the session store into the fx graph.
var Module = fx.Provide(newStore)

type storeParams struct {
	fx.In

	Repo     Repository
	Upstream ProfileSource
	Cipher   auth.TokenCipher
	Config   *config.Config
	Logger   *slog.Logger
}

func newStore(p storeParams) *Store {
	opts := Options{
		TTL: p.Config.SessionTTL,
		OnExpired: func(id string) {
			p.Logger.Info("session expired upstream", slog.String("session_id", id))
		},
	}
	return NewStore(p.Repo, p.Upstream, p.Cipher, opts, p.Logger)
}
