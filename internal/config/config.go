// Package config loads gateway configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage driver names.
const (
	DriverS3    = "s3"
	DriverMinio = "minio"
)

// Config holds all runtime configuration for the gateway.
type Config struct {
	Port        string
	Environment string

	// Object storage (S3-compatible; AWS SDK or MinIO client)
	StorageDriver    string // "s3" or "minio"
	StorageBucket    string
	StorageEndpoint  string
	StorageAccessKey string
	StorageSecretKey string
	StorageRegion    string
	StoragePathStyle bool
	StorageUseSSL    bool

	// Key derivation and disposition policy
	KeyPrefix         string
	AllowedExtensions []string
	InlineExtensions  []string
	UploadExpiry      time.Duration
	DownloadExpiry    time.Duration

	// Rate limiting
	RateLimitWindow time.Duration
	RateLimitMax    int
	RateLimitSweep  time.Duration

	// Access control
	SessionCookieName string
	OracleEndpoint    string
	OracleTimeout     time.Duration
	JWTSecret         string

	// Observability and transport
	SentryDSN       string
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

// defaultInlineExtensions are rendered inline on download; everything else
// is served as an attachment.
var defaultInlineExtensions = "jpg,jpeg,png,gif,webp,svg,mp3,wav,ogg,mp4,webm,pdf,txt"

// Load reads configuration from a .env file (if present) and environment
// variables.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading from environment")
	}

	return &Config{
		Port:        getEnv("PORT", "8090"),
		Environment: getEnv("APP_ENV", "development"),

		StorageDriver:    getEnv("STORAGE_DRIVER", DriverS3),
		StorageBucket:    getEnv("STORAGE_BUCKET", ""),
		StorageEndpoint:  getEnv("STORAGE_ENDPOINT", ""),
		StorageAccessKey: getEnv("STORAGE_ACCESS_KEY", ""),
		StorageSecretKey: getEnv("STORAGE_SECRET_KEY", ""),
		StorageRegion:    getEnv("STORAGE_REGION", ""),
		StoragePathStyle: getBool("STORAGE_PATH_STYLE", false),
		StorageUseSSL:    getBool("STORAGE_USE_SSL", true),

		KeyPrefix:         getEnv("KEY_PREFIX", "media/"),
		AllowedExtensions: getCSV("ALLOWED_EXTENSIONS", ""),
		InlineExtensions:  getCSV("INLINE_EXTENSIONS", defaultInlineExtensions),
		UploadExpiry:      getSeconds("UPLOAD_EXPIRY_SECONDS", 15*time.Minute),
		DownloadExpiry:    getSeconds("DOWNLOAD_EXPIRY_SECONDS", 5*time.Minute),

		RateLimitWindow: getSeconds("RATE_LIMIT_WINDOW_SECONDS", time.Minute),
		RateLimitMax:    getInt("RATE_LIMIT_MAX", 30),
		RateLimitSweep:  getSeconds("RATE_LIMIT_SWEEP_SECONDS", 5*time.Minute),

		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "express_sid"),
		OracleEndpoint:    getEnv("ORACLE_ENDPOINT", ""),
		OracleTimeout:     getSeconds("ORACLE_TIMEOUT_SECONDS", 5*time.Second),
		JWTSecret:         getEnv("JWT_SECRET", ""),

		SentryDSN:       getEnv("SENTRY_DSN", ""),
		CORSOrigins:     getCSV("CORS_ORIGINS", ""),
		ShutdownTimeout: getSeconds("SHUTDOWN_TIMEOUT_SECONDS", 30*time.Second),
	}
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v == "true" || v == "1"
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getSeconds(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return time.Duration(n) * time.Second
}

func getCSV(key, fallback string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = fallback
	}
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
