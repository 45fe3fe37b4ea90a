package factory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/posts-feed/internal/storage"
	"github.com/DjordjeVuckovic/posts-feed/internal/storage/es"
	"github.com/DjordjeVuckovic/posts-feed/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/posts-feed/internal/storage/pg"
	pkgserver "github.com/DjordjeVuckovic/posts-feed/pkg/server"
)

// Backend bundles a store with its health checker and the function releasing it.
type Backend struct {
	Store  storage.Store
	Health pkgserver.HealthChecker
	Close  func()
}

// NewBackend creates the storage.Store selected by cfg.Type
func NewBackend(ctx context.Context, cfg StorageConfig) (*Backend, error) {
	slog.Info("Creating storage backend", "type", cfg.Type)

	switch cfg.Type {
	case storage.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL configuration")
		}

		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}

		store, err := pg.NewStore(pool)
		if err != nil {
			pool.Close()
			return nil, err
		}

		return &Backend{Store: store, Health: pg.NewHealthChecker(pool), Close: pool.Close}, nil

	case storage.ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("missing Elasticsearch configuration")
		}

		store, err := es.NewStore(ctx, *cfg.Es)
		if err != nil {
			return nil, err
		}

		return &Backend{Store: store, Health: store, Close: func() {}}, nil

	case storage.InMem:
		return &Backend{Store: in_mem.NewStore(), Health: pkgserver.NewOkHealthChecker(), Close: func() {}}, nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}
}
