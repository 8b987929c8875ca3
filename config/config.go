// Package config loads process configuration once at startup. All components
// receive the resulting struct by reference; nothing reads the environment
// after Load returns.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime knob for the service.
type Config struct {
	Port           string
	AllowedOrigins string
	BodyLimitBytes int

	RateLimitMax    int
	RateLimitWindow time.Duration

	// Database
	DatabaseURL    string
	PoolMaxOpen    int
	PoolMaxIdle    int
	ConnMaxLife    time.Duration
	ConnectTimeout time.Duration

	// Auth
	JWTSecret     []byte
	TokenLifetime time.Duration

	// Document storage
	StorageDriver string // "local" or "s3"
	UploadDir     string
	S3Bucket      string
	S3Region      string
	S3Endpoint    string
	S3AccessKey   string
	S3SecretKey   string

	// Outbound providers (unused stubs, configuration only)
	MailServer   string
	MailFrom     string
	TwilioSID    string
	TwilioNumber string
}

// Load reads .env (if present) and the environment into a Config.
func Load() (*Config, error) {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Port:            envStr("PORT", "8080"),
		AllowedOrigins:  envStr("ALLOWED_ORIGINS", "*"),
		BodyLimitBytes:  envInt("BODY_LIMIT_BYTES", 0),
		RateLimitMax:    envInt("RATE_LIMIT_MAX", 60),
		RateLimitWindow: time.Duration(envInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,

		DatabaseURL:    envStr("DATABASE_URL", ""),
		PoolMaxOpen:    envInt("DB_POOL_MAX_OPEN", 15),
		PoolMaxIdle:    envInt("DB_POOL_MAX_IDLE", 5),
		ConnMaxLife:    time.Duration(envInt("DB_CONN_MAX_LIFE_SECONDS", 300)) * time.Second,
		ConnectTimeout: time.Duration(envInt("DB_CONNECT_TIMEOUT_SECONDS", 10)) * time.Second,

		TokenLifetime: time.Duration(envInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,

		StorageDriver: envStr("STORAGE_DRIVER", "local"),
		UploadDir:     envStr("UPLOAD_DIR", "uploads"),
		S3Bucket:      envStr("S3_BUCKET", ""),
		S3Region:      envStr("S3_REGION", ""),
		S3Endpoint:    envStr("S3_ENDPOINT", ""),
		S3AccessKey:   envStr("S3_ACCESS_KEY", ""),
		S3SecretKey:   envStr("S3_SECRET_KEY", ""),

		MailServer:   envStr("MAIL_SERVER", ""),
		MailFrom:     envStr("MAIL_FROM", ""),
		TwilioSID:    envStr("TWILIO_ACCOUNT_SID", ""),
		TwilioNumber: envStr("TWILIO_PHONE_NUMBER", ""),
	}

	if cfg.BodyLimitBytes <= 0 {
		cfg.BodyLimitBytes = envInt("BODY_LIMIT_MB", 4) * 1024 * 1024
	}

	// Prefer JWT_SECRET_KEY, fallback to JWT_SECRET.
	sec := os.Getenv("JWT_SECRET_KEY")
	if strings.TrimSpace(sec) == "" {
		sec = os.Getenv("JWT_SECRET")
	}
	if strings.TrimSpace(sec) == "" {
		return nil, errors.New("JWT secret not configured (set JWT_SECRET_KEY or JWT_SECRET)")
	}
	cfg.JWTSecret = []byte(sec)

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL not configured")
	}
	return cfg, nil
}

func envStr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt reads an int env var with a default fallback.
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
