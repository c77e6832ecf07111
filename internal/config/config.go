package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	DefaultAdminPassword = "admin123"
	defaultPostgresDSN   = "host=localhost user=postgres password=postgres dbname=storefront port=5432 sslmode=disable"
	defaultSQLiteDSN     = "storefront.db"
)

type Config struct {
	HTTPPort          string
	AdminPassword     string
	AdminPasswordHash string // bcrypt hash; takes precedence over AdminPassword
	StorageDriver     string
	ReadOnly          bool
	DataDir           string
	UploadDir         string // disk image store, served under /uploads
	PublicDir         string
	MongoURI          string
	MongoDatabase     string
	ImageBucket       string
	DatabaseDSN       string
	LogLevel          string
	LogFormat         string
	MaxUploadMB       int
	CORSOrigins       string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := &Config{
		HTTPPort:          getEnv("HTTP_PORT", getEnv("PORT", "3000")),
		AdminPassword:     getEnv("ADMIN_PASSWORD", DefaultAdminPassword),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		StorageDriver:     strings.ToLower(getEnv("STORAGE_DRIVER", DriverFile)),
		DataDir:           getEnv("DATA_DIR", "./data"),
		UploadDir:         getEnv("UPLOAD_DIR", "./uploads"),
		PublicDir:         getEnv("PUBLIC_DIR", "./public"),
		MongoURI:          getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:     getEnv("MONGODB_DATABASE", "storefront"),
		ImageBucket:       getEnv("IMAGE_BUCKET", "images"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "console"),
		CORSOrigins:       getEnv("CORS_ALLOWED_ORIGINS", "*"),
	}

	switch cfg.StorageDriver {
	case DriverFile, DriverMemory, DriverMongo:
	case DriverPostgres:
		cfg.DatabaseDSN = getEnv("DATABASE_DSN", defaultPostgresDSN)
	case DriverSQLite:
		cfg.DatabaseDSN = getEnv("DATABASE_DSN", defaultSQLiteDSN)
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	var err error
	if cfg.ReadOnly, err = getBool("STORAGE_READONLY", false); err != nil {
		return nil, err
	}
	if cfg.MaxUploadMB, err = getInt("MAX_UPLOAD_MB", 10); err != nil {
		return nil, err
	}
	if cfg.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", cfg.MaxUploadMB)
	}

	return cfg, nil
}

// Warn logs the settings that are fine for development but not for production.
// It runs after the logger is configured.
func (c *Config) Warn() {
	if c.AdminPasswordHash == "" && c.AdminPassword == DefaultAdminPassword {
		log.Warn().Msg("ADMIN_PASSWORD is the built-in default, set your own secret for production")
	}
	if c.StorageDriver == DriverPostgres && c.DatabaseDSN == defaultPostgresDSN {
		log.Warn().Msg("DATABASE_DSN is the default local postgres DSN")
	}
	if c.StorageDriver == DriverMemory && !c.ReadOnly {
		log.Warn().Msg("memory storage loses every change on restart")
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}
