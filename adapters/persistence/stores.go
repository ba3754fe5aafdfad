package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/skillsync/internal/config"
	"github.com/khoahotran/skillsync/internal/domain/profile"
	"github.com/khoahotran/skillsync/pkg/logger"
)

// Stores is the profile store selected by store.driver plus the connection
// behind it. Postgres is set only for the postgres driver.
type Stores struct {
	Profile  profile.Store
	Postgres *PostgresStore

	redis *redis.Client
	pool  *pgxpool.Pool
}

func OpenStores(ctx context.Context, cfg config.Config, log logger.Logger) (*Stores, error) {
	s := &Stores{}

	switch cfg.Store.Driver {
	case config.StoreDriverRedis:
		rdb, err := NewRedisClient(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		s.redis = rdb
		s.Profile = NewRedisStore(rdb, cfg.Session.TTL)

	case config.StoreDriverPostgres:
		if err := RunMigrations(cfg.DB.DSN, log); err != nil {
			return nil, err
		}
		pool, err := NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		s.pool = pool
		s.Postgres = NewPostgresStore(pool, cfg.Session.TTL)
		s.Profile = s.Postgres

	case config.StoreDriverMemory:
		s.Profile = NewMemoryStore()

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	log.Info("Profile store ready", zap.String("driver", cfg.Store.Driver))
	return s, nil
}

func (s *Stores) Close() {
	if s.redis != nil {
		s.redis.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
}
