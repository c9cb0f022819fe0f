package main

import (
	"context"
	"log/slog"
	"os"

	"warden/config"
	"warden/internal/delivery"
	"warden/internal/delivery/api"
	"warden/internal/delivery/api/middleware"
	"warden/internal/delivery/api/router/handler"
	"warden/internal/domain/repository"
	"warden/internal/infra/auth"
	rediscache "warden/internal/infra/cache/redis"
	logs "warden/internal/infra/log"
	"warden/internal/infra/metrics"
	"warden/internal/infra/persistence/memory"
	"warden/internal/infra/persistence/postgres"
	"warden/internal/infra/pubsub"
	"warden/internal/usecase"
	"warden/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

type bootstrapParams struct {
	fx.In
	fx.Lifecycle

	Config       *config.Config
	Logger       *slog.Logger
	CredentialUC usecase.CredentialUsecase
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			bootstrapAdmins,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		metrics.NewRecorder,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newIdentityRepository,
		),
	)
}

// newIdentityRepository picks the identity store named by storage.driver.
func newIdentityRepository(params postgres.Params) (repository.IdentityRepository, error) {
	if params.Config.Storage.Driver == config.StorageDriverMemory {
		params.Logger.Warn("Using in-memory identity store, identities are lost on restart")

		return memory.NewIdentityRepository(), nil
	}

	db, err := postgres.New(params)
	if err != nil {
		return nil, err
	}

	return postgres.NewIdentityRepository(db), nil
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTIssuer,
			auth.NewTokenIssuer,
			auth.NewTokenValidator,
			rediscache.New,
			pubsub.NewEventPublisher,
			metrics.NewCredentialMetrics,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewCredentialService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewCredentialHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// bootstrapAdmins grants the admin role to auth.adminEmails once the stores are up.
func bootstrapAdmins(params bootstrapParams) {
	emails := params.Config.Auth.AdminEmails
	if len(emails) == 0 {
		return
	}

	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			assigned := impl.BootstrapAdmins(ctx, params.CredentialUC, emails, params.Logger)
			params.Logger.Info("Admin bootstrap finished",
				slog.Int("configured", len(emails)),
				slog.Int("assigned", assigned),
			)

			return nil
		},
	})
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
