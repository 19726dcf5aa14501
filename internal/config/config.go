package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Session      SessionConfig
	Upload       UploadConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines credential and token parameters.
type AuthConfig struct {
	BcryptCost              int
	PasswordResetTTLMinutes int
	DownloadTokenSecret     string
	DownloadTokenTTLMinutes int
}

// SessionConfig defines the server-side session layer. The backend is
// resolved once at startup; "redis" is the production store, "memory" exists
// for local development without a Redis instance.
type SessionConfig struct {
	Backend    string
	CookieName string
	TTLMinutes int
	Secure     bool
}

// UploadConfig bounds case attachment uploads.
type UploadConfig struct {
	Dir           string
	MaxFiles      int
	MaxFileMB     int64
	MaxCombinedMB int64
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "justiceconnect"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "4000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			BcryptCost:              getEnvAsInt("AUTH_BCRYPT_COST", 12),
			PasswordResetTTLMinutes: getEnvAsInt("AUTH_PASSWORD_RESET_TTL_MINUTES", 30),
			DownloadTokenSecret:     getEnv("AUTH_DOWNLOAD_TOKEN_SECRET", "dev-secret"),
			DownloadTokenTTLMinutes: getEnvAsInt("AUTH_DOWNLOAD_TOKEN_TTL_MINUTES", 15),
		},
		Session: SessionConfig{
			Backend:    getEnv("SESSION_BACKEND", "redis"),
			CookieName: getEnv("SESSION_COOKIE_NAME", "jc_session"),
			TTLMinutes: getEnvAsInt("SESSION_TTL_MINUTES", 720),
			Secure:     getEnvAsBool("SESSION_COOKIE_SECURE", false),
		},
		Upload: UploadConfig{
			Dir:           getEnv("UPLOAD_DIR", "uploads"),
			MaxFiles:      getEnvAsInt("UPLOAD_MAX_FILES", 5),
			MaxFileMB:     int64(getEnvAsInt("UPLOAD_MAX_FILE_MB", 10)),
			MaxCombinedMB: int64(getEnvAsInt("UPLOAD_MAX_COMBINED_MB", 25)),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// TTL returns the session lifetime.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLMinutes <= 0 {
		return 12 * time.Hour
	}
	return time.Duration(s.TTLMinutes) * time.Minute
}

// MaxFileBytes returns the per-file upload cap in bytes.
func (u UploadConfig) MaxFileBytes() int64 {
	return u.MaxFileMB * 1024 * 1024
}

// MaxCombinedBytes returns the total upload cap in bytes.
func (u UploadConfig) MaxCombinedBytes() int64 {
	return u.MaxCombinedMB * 1024 * 1024
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
