package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreOracle   = "oracle"
	StoreSQLite   = "sqlite"
	StoreGorm     = "gorm"
)

type Config struct {
	ServerPort string
	ServerHost string
	LogLevel   string

	StoreDriver string
	DBDSN       string
	SeedData    bool

	MockLatency          time.Duration
	TopTechnologiesLimit int
	DeleteMissing        string
	ModeFallback         bool
}

func Load() (*Config, error) {
	port := getEnvOrDefault("SERVER_PORT", "8080")
	host := getEnvOrDefault("SERVER_HOST", "localhost")
	logLevel := getEnvOrDefault("LOG_LEVEL", "info")

	driver := getEnvOrDefault("STORE_DRIVER", StoreMemory)
	switch driver {
	case StoreMemory, StorePostgres, StoreOracle, StoreSQLite, StoreGorm:
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER %q: expected memory, postgres, oracle, sqlite or gorm", driver)
	}

	dsn := os.Getenv("DB_DSN")
	if driver != StoreMemory && dsn == "" {
		return nil, fmt.Errorf("DB_DSN environment variable is required for the %s store", driver)
	}

	seedData, err := strconv.ParseBool(getEnvOrDefault("SEED_DATA", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_DATA: %w", err)
	}

	latency, err := time.ParseDuration(getEnvOrDefault("MOCK_LATENCY", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid MOCK_LATENCY: %w", err)
	}
	if latency < 0 {
		return nil, fmt.Errorf("invalid MOCK_LATENCY: %s is negative", latency)
	}

	topN, err := strconv.Atoi(getEnvOrDefault("TOP_TECHNOLOGIES_LIMIT", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOP_TECHNOLOGIES_LIMIT: %w", err)
	}

	deleteMissing := getEnvOrDefault("DELETE_MISSING", "strict")
	if deleteMissing != "strict" && deleteMissing != "idempotent" {
		return nil, fmt.Errorf("invalid DELETE_MISSING %q: expected strict or idempotent", deleteMissing)
	}

	// The id parity fallback only makes sense for the mock dataset.
	modeFallback, err := strconv.ParseBool(getEnvOrDefault("MODE_FALLBACK", strconv.FormatBool(driver == StoreMemory)))
	if err != nil {
		return nil, fmt.Errorf("invalid MODE_FALLBACK: %w", err)
	}

	return &Config{
		ServerPort:           port,
		ServerHost:           host,
		LogLevel:             logLevel,
		StoreDriver:          driver,
		DBDSN:                dsn,
		SeedData:             seedData,
		MockLatency:          latency,
		TopTechnologiesLimit: topN,
		DeleteMissing:        deleteMissing,
		ModeFallback:         modeFallback,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
