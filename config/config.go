package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Storage backends accepted in STORAGE_TYPE.
const (
	StorageMemory     = "memory"
	StorageFilesystem = "filesystem"
	StorageSQLite     = "sqlite"
	StorageS3         = "s3"
	StorageRedis      = "redis"
	StoragePostgres   = "postgres"
)

// Config holds the process configuration read from the environment.
type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":3002"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`

	StorageType      string `env:"STORAGE_TYPE" envDefault:"memory"`
	MemoryQuotaBytes int64  `env:"MEMORY_QUOTA_BYTES" envDefault:"0"`
	LocalStoragePath string `env:"LOCAL_STORAGE_PATH" envDefault:"./data"`
	DataSourceName   string `env:"DATA_SOURCE_NAME" envDefault:"globetrotter.db"`
	S3BucketName     string `env:"S3_BUCKET_NAME"`
	S3Prefix         string `env:"S3_PREFIX"`

	RedisAddr      string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword  string        `env:"REDIS_PASSWORD"`
	RedisDB        int           `env:"REDIS_DB" envDefault:"0"`
	RedisKeyPrefix string        `env:"REDIS_KEY_PREFIX"`
	RedisTTL       time.Duration `env:"REDIS_TTL" envDefault:"0s"`

	DatabaseURL string `env:"DATABASE_URL"`

	JWTSecret          string   `env:"JWT_SECRET"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Load parses the environment into a Config and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings required by the selected storage
// backend are present.
func (c *Config) Validate() error {
	c.StorageType = strings.ToLower(strings.TrimSpace(c.StorageType))
	if c.StorageType == "" {
		c.StorageType = StorageMemory
	}

	switch c.StorageType {
	case StorageMemory:
		if c.MemoryQuotaBytes < 0 {
			return fmt.Errorf("MEMORY_QUOTA_BYTES must not be negative")
		}
	case StorageFilesystem:
		if c.LocalStoragePath == "" {
			return fmt.Errorf("LOCAL_STORAGE_PATH must be set for filesystem storage")
		}
	case StorageSQLite:
		if c.DataSourceName == "" {
			return fmt.Errorf("DATA_SOURCE_NAME must be set for sqlite storage")
		}
	case StorageS3:
		if c.S3BucketName == "" {
			return fmt.Errorf("S3_BUCKET_NAME must be set for s3 storage")
		}
	case StorageRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR must be set for redis storage")
		}
		if c.RedisTTL < 0 {
			return fmt.Errorf("REDIS_TTL must not be negative")
		}
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must be set for postgres storage")
		}
	default:
		return fmt.Errorf("unknown STORAGE_TYPE %q", c.StorageType)
	}
	return nil
}
