package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cppla/askboard/config"
	"github.com/cppla/askboard/models"
	"github.com/cppla/askboard/similarity"
	"github.com/cppla/askboard/storage"
	"github.com/cppla/askboard/store"
	"github.com/cppla/askboard/utils"
)

// openPersister builds the configured storage backend. The returned close
// func releases its connections.
func openPersister(ctx context.Context, cfg config.AppConfig) (store.Persister, func() error, error) {
	noop := func() error { return nil }
	switch cfg.StorageBackend {
	case config.StorageMemory:
		return storage.NewMemory(), noop, nil
	case config.StorageFile:
		return storage.NewFile(cfg.StoragePath), noop, nil
	case config.StorageRedis:
		client, err := utils.NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return storage.NewRedis(client, cfg.StorageKey), client.Close, nil
	case config.StorageMySQL:
		db, err := config.InitDatabase(cfg, &models.KVEntry{})
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return storage.NewSQL(db, cfg.StorageKey), sqlDB.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}

// openStore loads the corpus from the configured backend.
func openStore(ctx context.Context, cfg config.AppConfig, logger *zap.Logger) (*store.Store, func() error, error) {
	p, closeFn, err := openPersister(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	s, err := store.Open(ctx, p,
		store.WithLogger(logger),
		store.WithSimilarity(similarity.Options{
			Limit:           cfg.SimilarLimit,
			DedupTitleWords: cfg.SimilarDedupTitleWords,
		}),
	)
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	return s, closeFn, nil
}
