package kvstore

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/gormdb"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// StoreParams contains dependencies for creating the durable store
type StoreParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewStore creates the durable store selected by store.driver
func NewStore(params StoreParams) (repository.KVStore, error) {
	driver := params.Config.Store.Driver

	var (
		store repository.KVStore
		err   error
	)

	switch driver {
	case constants.StoreDriverMemory, "":
		store = NewMemoryStore()
	case constants.StoreDriverFile:
		store, err = NewFileStore(params.Config.Store.Path)
	case constants.StoreDriverSQLite, constants.StoreDriverPostgres:
		db, openErr := gormdb.Open(params.Lifecycle, params.Config, params.Logger)
		if openErr != nil {
			return nil, openErr
		}
		store, err = gormdb.NewKVStore(db)
	case constants.StoreDriverRedis:
		store, err = newRedisStoreFromConfig(params.Config)
	default:
		return nil, errors.Errorf("unsupported store driver: %s", driver)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %s store", driver)
	}

	params.Logger.Info("Durable store ready", slog.String("driver", driver))

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return store.Close()
		},
	})

	return store, nil
}

func newRedisStoreFromConfig(cfg *config.Config) (repository.KVStore, error) {
	if cfg.Redis == nil {
		return nil, errors.New("redis store selected without redis configuration")
	}

	return NewRedisStore(context.Background(), &redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, cfg.Redis.KeyPrefix)
}
