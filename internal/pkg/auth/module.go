package auth

import (
	"github.com/kashieternal/rewardsgate/internal/config"
	"go.uber.org/fx"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newTokenStrategy),
	fx.Provide(newTokenCipher),
)

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	return NewHMACStrategy(p.Config.SessionSecret, Options{TTL: p.Config.SessionTTL})
}

func newTokenCipher(p strategyParams) (TokenCipher, error) {
	return NewXChaChaCipher(p.Config.SessionSecret)
}
