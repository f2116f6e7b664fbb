package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config chứa toàn bộ application configuration.
// Build một lần lúc start (Load) rồi truyền cho các collaborator.
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	MinIO     MinIOConfig
	SMTP      SMTPConfig
	Identity  IdentityConfig
	RateLimit RateLimitConfig
	Jobs      JobConfig
}

type AppConfig struct {
	Name           string
	Environment    string // development, staging, production
	Port           string
	Version        string
	LogLevel       string
	AllowedOrigins []string // CORS allow-list (SPA origins, auth callback URLs)
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

// DSN dùng cho golang-migrate (database/sql + lib/pq)
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Database, d.SSLMode)
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret             string
	Issuer             string
	AccessTokenExpiry  int // minutes
	RefreshTokenExpiry int // hours
}

func (j JWTConfig) AccessTTL() time.Duration {
	return time.Duration(j.AccessTokenExpiry) * time.Minute
}

func (j JWTConfig) RefreshTTL() time.Duration {
	return time.Duration(j.RefreshTokenExpiry) * time.Hour
}

type MinIOConfig struct {
	Endpoint      string // localhost:9000
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string // base URL for public object links; empty → derived from endpoint
}

type SMTPConfig struct {
	Host string
	Port string
	From string
}

// IdentityConfig mô tả user pool và groups.
type IdentityConfig struct {
	UserPoolID      string
	ReaderGroup     string
	AuthorGroup     string
	CodeTTL         time.Duration
	MaxLoginAttempt int
	LockoutDuration time.Duration
	// AllowGuestCategoryCreate bật rule "guest → create" cho Category. Mặc định tắt.
	AllowGuestCategoryCreate bool
}

type RateLimitConfig struct {
	AuthRequestsPerSecond int
	AuthBurst             int
}

// JobConfig chứa cron spec của các scheduled job + worker settings
type JobConfig struct {
	CleanupExpiredCodesCron string
	WorkerConcurrency       int
	WorkerHealthPort        string
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:           getEnv("APP_NAME", "Blog API"),
			Environment:    getEnv("APP_ENV", "development"),
			Port:           getEnv("APP_PORT", "8080"),
			Version:        getEnv("APP_VERSION", "1.0.0"),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "blog"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", defaultJWTSecret),
			Issuer:             getEnv("JWT_ISSUER", "blog-backend"),
			AccessTokenExpiry:  getEnvInt("JWT_ACCESS_EXPIRY", 60),  // 1 hour
			RefreshTokenExpiry: getEnvInt("JWT_REFRESH_EXPIRY", 720), // 30 days
		},
		MinIO: MinIOConfig{
			Endpoint:      getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey:     getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey:     getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:        getEnv("MINIO_BUCKET", "blog-media"),
			UseSSL:        getEnvBool("MINIO_USE_SSL", false),
			PublicBaseURL: getEnv("MINIO_PUBLIC_BASE_URL", ""),
		},
		SMTP: SMTPConfig{
			Host: getEnv("SMTP_HOST", "localhost"),
			Port: getEnv("SMTP_PORT", "1025"),
			From: getEnv("SMTP_FROM", "noreply@blog.dev"),
		},
		Identity: IdentityConfig{
			UserPoolID:               getEnv("IDENTITY_USER_POOL_ID", "local_blog_pool"),
			ReaderGroup:              getEnv("IDENTITY_READER_GROUP", "READERS"),
			AuthorGroup:              getEnv("IDENTITY_AUTHOR_GROUP", "AUTHORS"),
			CodeTTL:                  getEnvDuration("IDENTITY_CODE_TTL", 24*time.Hour),
			MaxLoginAttempt:          getEnvInt("IDENTITY_MAX_LOGIN_ATTEMPTS", 5),
			LockoutDuration:          getEnvDuration("IDENTITY_LOCKOUT_DURATION", 15*time.Minute),
			AllowGuestCategoryCreate: getEnvBool("IDENTITY_ALLOW_GUEST_CATEGORY_CREATE", false),
		},
		RateLimit: RateLimitConfig{
			AuthRequestsPerSecond: getEnvInt("RATE_LIMIT_AUTH_RPS", 5),
			AuthBurst:             getEnvInt("RATE_LIMIT_AUTH_BURST", 10),
		},
		Jobs: JobConfig{
			CleanupExpiredCodesCron: getEnv("JOB_CLEANUP_CODES_CRON", "0 3 * * *"),
			WorkerConcurrency:       getEnvInt("WORKER_CONCURRENCY", 10),
			WorkerHealthPort:        getEnv("WORKER_HEALTH_PORT", "9999"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.Identity.UserPoolID == "" {
		return fmt.Errorf("IDENTITY_USER_POOL_ID must not be empty")
	}
	if c.Identity.ReaderGroup == "" || c.Identity.AuthorGroup == "" {
		return fmt.Errorf("reader and author group names must not be empty")
	}
	if c.Identity.ReaderGroup == c.Identity.AuthorGroup {
		return fmt.Errorf("reader and author groups must differ")
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
