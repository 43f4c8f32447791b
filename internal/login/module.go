package login

import (
	"go.uber.org/fx"

	"github.com/kashieternal/rewardsgate/internal/config"
)

// Module wires the login attempt registry into the fx graph.
var Module = fx.Provide(newRegistry)

type registryParams struct {
	fx.In

	Auth   Authenticator
	Config *config.Config
}

func newRegistry(p registryParams) *Registry {
	return NewRegistry(func() *Flow {
		return NewFlow(p.Auth, Options{
			ResendCooldown: p.Config.ResendCooldown,
			VerifyDebounce: p.Config.VerifyDebounce,
		})
	})
}
