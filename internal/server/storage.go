package server

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"storefront-backend/internal/config"
	"storefront-backend/internal/database"
	"storefront-backend/internal/mongodb"
	"storefront-backend/internal/storage"
)

// ImageRoute is where blob-backed image stores are served from.
const ImageRoute = "/api/images"

// OpenStorage opens the record and image stores selected by STORAGE_DRIVER.
// With seed set, empty collections are filled with the default records before
// the read-only wrapper (if configured) is applied. The caller owns the
// returned store and must Close it.
func OpenStorage(ctx context.Context, cfg *config.Config, seed bool) (storage.Store, storage.ImageStore, error) {
	st, images, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	if seed {
		if err := storage.Seed(ctx, st); err != nil {
			st.Close(ctx)
			return nil, nil, err
		}
	}
	if cfg.ReadOnly {
		log.Info().Msg("storage opened read-only, mutations will answer 501")
		return storage.ReadOnly(st), storage.ReadOnlyImages(images), nil
	}
	return st, images, nil
}

func openBackend(ctx context.Context, cfg *config.Config) (storage.Store, storage.ImageStore, error) {
	logger := log.With().Str("driver", cfg.StorageDriver).Logger()

	switch cfg.StorageDriver {
	case config.DriverFile, config.DriverMemory:
		images, err := storage.NewDiskImages(cfg.UploadDir, "/uploads")
		if err != nil {
			return nil, nil, err
		}
		if cfg.StorageDriver == config.DriverMemory {
			logger.Info().Msg("using in-memory storage")
			return storage.NewMemoryStore(), images, nil
		}
		st, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Str("dir", cfg.DataDir).Msg("using json file storage")
		return st, images, nil

	case config.DriverMongo:
		client, err := mongodb.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		st, err := mongodb.NewStore(ctx, client, db)
		if err != nil {
			client.Disconnect(ctx)
			return nil, nil, err
		}
		images, err := mongodb.NewGridFSImages(db, cfg.ImageBucket, ImageRoute)
		if err != nil {
			st.Close(ctx)
			return nil, nil, err
		}
		logger.Info().Str("database", cfg.MongoDatabase).Msg("using mongodb storage")
		return st, images, nil

	case config.DriverPostgres, config.DriverSQLite:
		db, err := database.Open(cfg.StorageDriver, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Msg("using sql storage")
		return database.NewStore(db), database.NewImages(db, ImageRoute), nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
