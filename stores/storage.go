package stores

import (
	"context"
	"fmt"

	"globetrotter/config"
	"globetrotter/core"
	"globetrotter/stores/aws"
	"globetrotter/stores/filesystem"
	"globetrotter/stores/memory"
	"globetrotter/stores/postgres"
	"globetrotter/stores/redis"
	"globetrotter/stores/sqlite"

	"github.com/sirupsen/logrus"
)

// Store is a key-value medium that owns resources to release on shutdown.
type Store interface {
	core.KVStore
	Close() error
}

// GetStore builds the medium selected by cfg.StorageType and wraps it with
// operation metrics.
func GetStore(ctx context.Context, cfg *config.Config) (Store, error) {
	var (
		store Store
		err   error
	)

	storageField := logrus.Fields{
		"storageType": cfg.StorageType,
	}

	switch cfg.StorageType {
	case config.StorageFilesystem:
		storageField["basePath"] = cfg.LocalStoragePath
		store, err = filesystem.NewStore(cfg.LocalStoragePath)
	case config.StorageSQLite:
		storageField["dataSourceName"] = cfg.DataSourceName
		store, err = sqlite.NewStore(cfg.DataSourceName)
	case config.StorageS3:
		storageField["bucketName"] = cfg.S3BucketName
		storageField["prefix"] = cfg.S3Prefix
		store, err = aws.NewStore(ctx, cfg.S3BucketName, cfg.S3Prefix)
	case config.StorageRedis:
		storageField["addr"] = cfg.RedisAddr
		storageField["db"] = cfg.RedisDB
		store, err = redis.NewStore(ctx, redis.Options{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.RedisKeyPrefix,
			TTL:       cfg.RedisTTL,
		})
	case config.StoragePostgres:
		store, err = postgres.NewStore(ctx, cfg.DatabaseURL)
	case config.StorageMemory, "":
		storageField["storageType"] = "in-memory"
		storageField["quotaBytes"] = cfg.MemoryQuotaBytes
		store = memory.NewStore(memory.WithQuota(cfg.MemoryQuotaBytes))
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.StorageType)
	}
	if err != nil {
		logrus.WithFields(storageField).WithError(err).Error("Failed to open storage")
		return nil, fmt.Errorf("open %s storage: %w", cfg.StorageType, err)
	}

	logrus.WithFields(storageField).Info("Use storage")
	return WithMetrics(store, fmt.Sprint(storageField["storageType"])), nil
}
