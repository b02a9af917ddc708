package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string
	MaxRetries int

	RedisAddr   string
	KafkaBroker string

	JWTSecret string

	StorageDir    string
	PublicBaseURL string

	CurrencyCode   string
	Locale         string
	CasbinModel    string
	AssetCacheTTL  time.Duration
	OutboxInterval time.Duration
	OutboxBatch    int
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:           getenv("PORT", "3000"),
		DBHost:         os.Getenv("DB_HOST"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBPort:         getenv("DB_PORT", "5432"),
		DBSSLMode:      getenv("DB_SSLMODE", "disable"),
		RedisAddr:      getenv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker:    os.Getenv("KAFKA_BROKER"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		StorageDir:     getenv("DOCUMENT_STORAGE_DIR", filepath.Join("storage", "documents")),
		PublicBaseURL:  getenv("PUBLIC_BASE_URL", "/files"),
		CurrencyCode:   getenv("CURRENCY_CODE", "KES"),
		Locale:         getenv("LOCALE", "en-KE"),
		CasbinModel:    getenv("CASBIN_MODEL_PATH", filepath.Join("internal", "rbac", "infra", "model.conf")),
		AssetCacheTTL:  24 * time.Hour,
		OutboxInterval: 3 * time.Second,
	}

	var err error
	if cfg.MaxRetries, err = atoi("DB_MAX_RETRIES", 5); err != nil {
		return Config{}, err
	}
	if cfg.AssetCacheTTL, err = duration("ASSET_CACHE_TTL", cfg.AssetCacheTTL); err != nil {
		return Config{}, err
	}
	if cfg.OutboxInterval, err = duration("OUTBOX_POLL_INTERVAL", cfg.OutboxInterval); err != nil {
		return Config{}, err
	}
	if cfg.OutboxBatch, err = atoi("OUTBOX_BATCH_SIZE", 50); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) RequireKafka() error {
	if c.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func atoi(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func duration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
