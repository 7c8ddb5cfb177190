package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scaledesk/scaledesk/internal/platform/db"
	"github.com/scaledesk/scaledesk/internal/platform/docstore"
	"github.com/scaledesk/scaledesk/internal/product"
	"github.com/scaledesk/scaledesk/internal/serial"
)

// Stores holds the repositories selected by STORE_DRIVER.
type Stores struct {
	Serials  serial.Repository
	Products product.Repository
	// Pool is set only for the postgres driver.
	Pool *pgxpool.Pool

	closers []func(context.Context) error
}

// OpenStores connects the configured backend and prepares its schema.
func OpenStores(ctx context.Context, cfg *Config, logger *slog.Logger) (*Stores, error) {
	switch cfg.StoreDriver {
	case DriverPostgres:
		pool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		logger.Info("store ready", slog.String("driver", DriverPostgres))
		return &Stores{
			Serials:  serial.NewPostgresRepository(pool),
			Products: product.NewPostgresRepository(pool),
			Pool:     pool,
			closers: []func(context.Context) error{func(context.Context) error {
				pool.Close()
				return nil
			}},
		}, nil
	case DriverMongo:
		client, database, err := docstore.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		logger.Info("store ready", slog.String("driver", DriverMongo), slog.String("database", cfg.MongoDatabase))
		return &Stores{
			Serials:  serial.NewMongoRepository(database),
			Products: product.NewMongoRepository(database),
			closers: []func(context.Context) error{func(ctx context.Context) error {
				return docstore.Disconnect(ctx, client)
			}},
		}, nil
	case DriverMemory:
		logger.Warn("store is in-memory, data will not survive a restart")
		return MemoryStores(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// MemoryStores returns empty in-process repositories.
func MemoryStores() *Stores {
	return &Stores{
		Serials:  serial.NewMemoryRepository(),
		Products: product.NewMemoryRepository(),
	}
}

// Close releases backend connections.
func (s *Stores) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}
	var first error
	for _, c := range s.closers {
		if err := c(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}
