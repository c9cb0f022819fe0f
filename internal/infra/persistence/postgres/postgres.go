// Package postgres implements the identity store on PostgreSQL through GORM.
package postgres

import (
	"context"
	"log/slog"
	"time"

	"warden/config"
	"warden/internal/errors"
	"warden/internal/infra/metrics"
	"warden/internal/infra/persistence/model"

	"github.com/prometheus/client_golang/prometheus/collectors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const pingTimeout = 5 * time.Second

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config   *config.Config
	Logger   *slog.Logger
	Recorder *metrics.Recorder `optional:"true"`
}

// New opens the connection pool. Ping and optional migration run on start,
// the pool is closed on stop.
func New(params Params) (*gorm.DB, error) {
	if params.Config.Postgres == nil {
		return nil, errors.New("postgres config is required for the postgres storage driver")
	}

	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	db = db.Session(&gorm.Session{
		// Every write here is a single statement.
		SkipDefaultTransaction: true,
		Logger:                 newQueryLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	if params.Recorder != nil {
		if err := params.Recorder.Register(collectors.NewDBStatsCollector(sqlDB, "identities")); err != nil {
			return nil, errors.Wrap(err, "failed to register pool metrics")
		}
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, pingTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}
			params.Logger.Info("PostgreSQL identity store ready")

			if !params.Config.Storage.AutoMigrate {
				return nil
			}

			return Migrate(ctx, db)
		},
		OnStop: func(_ context.Context) error {
			return errors.WithStack(sqlDB.Close())
		},
	})

	return db, nil
}

// Migrate creates or updates the identities table and its unique email index.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&model.IdentityModel{}); err != nil {
		return errors.Wrap(err, "failed to migrate identities table")
	}

	return nil
}
