package config

import (
	"fmt"
	"strconv"
	"time"

	"blog-backend/internal/infrastructure/database"
)

// LoadDatabaseConfig đọc pool/retry settings từ env và trả về DBConfig
func LoadDatabaseConfig(base DatabaseConfig) (*database.DBConfig, error) {
	maxRetries, err := strconv.Atoi(getEnv("DB_MAX_RETRIES", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_RETRIES: %w", err)
	}

	durations := map[string]string{
		"DB_MAX_CONN_LIFETIME":   "5m",
		"DB_MAX_CONN_IDLE_TIME":  "1m",
		"DB_HEALTH_CHECK_PERIOD": "1m",
		"DB_RETRY_DELAY":         "1s",
		"DB_CONNECT_TIMEOUT":     "10s",
	}
	parsed := make(map[string]time.Duration, len(durations))
	for key, def := range durations {
		d, err := time.ParseDuration(getEnv(key, def))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
		parsed[key] = d
	}

	return &database.DBConfig{
		Host:              base.Host,
		Port:              base.Port,
		Username:          base.User,
		Password:          base.Password,
		DBName:            base.Database,
		SSLMode:           base.SSLMode,
		MaxConns:          int32(base.MaxConns),
		MinConns:          int32(base.MinConns),
		MaxConnLifetime:   parsed["DB_MAX_CONN_LIFETIME"],
		MaxConnIdleTime:   parsed["DB_MAX_CONN_IDLE_TIME"],
		HealthCheckPeriod: parsed["DB_HEALTH_CHECK_PERIOD"],
		MaxRetries:        maxRetries,
		RetryDelay:        parsed["DB_RETRY_DELAY"],
		ConnectTimeout:    parsed["DB_CONNECT_TIMEOUT"],
	}, nil
}
