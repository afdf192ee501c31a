package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jcmexdev/storefront/internal/config"
	"github.com/jcmexdev/storefront/internal/coordinator/journal"
	"github.com/jcmexdev/storefront/internal/pkg/cache"
	"github.com/jcmexdev/storefront/internal/storefront/core/catalog"
	"github.com/jcmexdev/storefront/internal/storefront/core/ports"
	"github.com/jcmexdev/storefront/internal/storefront/infra/adapters/postgrest"
	"github.com/jcmexdev/storefront/internal/storefront/infra/adapters/sqlstore"
)

// backend is everything serve needs to reach storage.
type backend struct {
	remote  ports.RemoteStore
	journal journal.Repository // nil when disabled
	cache   cache.Cache
	closers []func() error
}

func (b *backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			slog.Warn("close failed", "error", err)
		}
	}
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	b := &backend{}

	if cfg.SQLRemote() {
		store, err := openSQLStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, store.Close)
		b.remote = store
		if cfg.Journal.Enabled {
			b.journal = store
		}
	} else {
		b.remote = postgrest.New(cfg.Remote.URL, cfg.Remote.AnonKey)
		if cfg.Journal.Enabled && cfg.Journal.Path != "" {
			store, err := sqlstore.OpenSQLite(cfg.Journal.Path)
			if err != nil {
				b.Close()
				return nil, err
			}
			b.closers = append(b.closers, store.Close)
			if err := store.MigrateJournal(ctx); err != nil {
				b.Close()
				return nil, err
			}
			b.journal = store
		}
	}

	switch cfg.Cache.Driver {
	case config.CacheRedis:
		b.cache = cache.NewRedisCache(cfg.Cache.RedisAddr, cfg.Telemetry.ServiceName, cfg.Cache.TTL)
		if err := b.cache.Ping(ctx); err != nil {
			slog.WarnContext(ctx, "redis not reachable yet", "addr", cfg.Cache.RedisAddr, "error", err)
		}
	default:
		b.cache = cache.NewMemoryCache()
	}
	b.closers = append(b.closers, b.cache.Close)

	return b, nil
}

// openSQLStore opens the configured SQL remote store. The embedded SQLite
// store is migrated and seeded on open; Postgres is left to "migrate".
func openSQLStore(ctx context.Context, cfg *config.Config) (*sqlstore.Store, error) {
	switch cfg.Remote.Driver {
	case config.RemoteSQLite:
		store, err := sqlstore.OpenSQLite(cfg.Remote.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := migrate(ctx, store, true); err != nil {
			_ = store.Close()
			return nil, err
		}
		return store, nil
	case config.RemotePostgres:
		return sqlstore.OpenPostgres(ctx, cfg.Remote.PostgresDSN)
	default:
		return nil, errors.New("remote.driver must be sqlite or postgres for this command")
	}
}

func migrate(ctx context.Context, store *sqlstore.Store, seed bool) error {
	if err := store.Migrate(ctx); err != nil {
		return err
	}
	if !seed {
		return nil
	}
	if err := store.SeedProducts(ctx, catalog.Static); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	return nil
}
