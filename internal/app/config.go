package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// StorageDriver определяет, где сервис хранит каталог и заказы.
type StorageDriver string

const (
	StorageDriverMemory   StorageDriver = "memory"
	StorageDriverPostgres StorageDriver = "postgres"
)

// Config описывает настройки запуска checkout-сервиса.
type Config struct {
	MetricsAddr string

	StorageDriver       StorageDriver
	PostgresDSN         string
	PostgresAutoMigrate bool

	// KafkaBrokers — список брокеров через запятую; пустая строка
	// отключает публикацию событий.
	KafkaBrokers string

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxAttempts  int
	OutboxRetryDelay   time.Duration
}

// DefaultConfig возвращает конфигурацию для локального запуска:
// in-memory хранилище, без Kafka.
func DefaultConfig() Config {
	return Config{
		MetricsAddr:         ":9090",
		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,
		OutboxPollInterval:  time.Second,
		OutboxBatchSize:     100,
		OutboxMaxAttempts:   3,
		OutboxRetryDelay:    100 * time.Millisecond,
	}
}

// LoadConfigFromEnv строит конфигурацию из переменных окружения STOREFRONT_*.
// Незаданные переменные оставляют значения по умолчанию.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(os.Getenv("STOREFRONT_METRICS_ADDR")); v != "" {
		cfg.MetricsAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("STOREFRONT_STORAGE_DRIVER")); v != "" {
		driver := StorageDriver(strings.ToLower(v))
		if driver != StorageDriverMemory && driver != StorageDriverPostgres {
			return Config{}, fmt.Errorf("unsupported STOREFRONT_STORAGE_DRIVER: %s", v)
		}
		cfg.StorageDriver = driver
	}
	if v := strings.TrimSpace(os.Getenv("STOREFRONT_POSTGRES_DSN")); v != "" {
		cfg.PostgresDSN = v
		// Заданный DSN без явного драйвера означает postgres.
		if strings.TrimSpace(os.Getenv("STOREFRONT_STORAGE_DRIVER")) == "" {
			cfg.StorageDriver = StorageDriverPostgres
		}
	}
	if v := strings.TrimSpace(os.Getenv("STOREFRONT_POSTGRES_AUTO_MIGRATE")); v != "" {
		autoMigrate, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse STOREFRONT_POSTGRES_AUTO_MIGRATE: %w", err)
		}
		cfg.PostgresAutoMigrate = autoMigrate
	}
	if v := strings.TrimSpace(os.Getenv("STOREFRONT_KAFKA_BROKERS")); v != "" {
		cfg.KafkaBrokers = v
	}

	var err error
	if cfg.OutboxPollInterval, err = envDuration("STOREFRONT_OUTBOX_POLL_INTERVAL", cfg.OutboxPollInterval); err != nil {
		return Config{}, err
	}
	if cfg.OutboxBatchSize, err = envInt("STOREFRONT_OUTBOX_BATCH_SIZE", cfg.OutboxBatchSize); err != nil {
		return Config{}, err
	}
	if cfg.OutboxMaxAttempts, err = envInt("STOREFRONT_OUTBOX_MAX_ATTEMPTS", cfg.OutboxMaxAttempts); err != nil {
		return Config{}, err
	}
	if cfg.OutboxRetryDelay, err = envDuration("STOREFRONT_OUTBOX_RETRY_DELAY", cfg.OutboxRetryDelay); err != nil {
		return Config{}, err
	}

	if cfg.StorageDriver == StorageDriverPostgres && cfg.PostgresDSN == "" {
		return Config{}, fmt.Errorf("STOREFRONT_POSTGRES_DSN is required for postgres storage driver")
	}

	return cfg, nil
}

func envDuration(name string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", name, v)
	}
	return d, nil
}

func envInt(name string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", name, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", name, v)
	}
	return n, nil
}
