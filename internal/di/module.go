package di

import (
	"go.uber.org/fx"

	"github.com/kashieternal/rewardsgate/internal/adapter/loyaltyapi"
	"github.com/kashieternal/rewardsgate/internal/app"
	"github.com/kashieternal/rewardsgate/internal/config"
	"github.com/kashieternal/rewardsgate/internal/login"
	"github.com/kashieternal/rewardsgate/internal/logger"
	"github.com/kashieternal/rewardsgate/internal/pkg/auth"
	"github.com/kashieternal/rewardsgate/internal/server/http/handlers"
	"github.com/kashieternal/rewardsgate/internal/server/http/router"
	"github.com/kashieternal/rewardsgate/internal/session"
	"github.com/kashieternal/rewardsgate/internal/storage/postgres"
)

// Module assembles the full application graph. Options passed in override or
// extend the defaults, which tests use to substitute stubs.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		loyaltyapi.Module,
		fx.Provide(
			func(client loyaltyapi.Client) session.ProfileSource { return client },
			func(client loyaltyapi.Client) login.Authenticator { return app.NewOTPAuthenticator(client) },
			func(facade *app.GateFacade) handlers.GateFacade { return facade },
		),
		session.Module,
		login.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
