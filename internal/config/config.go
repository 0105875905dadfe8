// Package config load runtime configuration from environment variables.
// A .env file in working directory is loaded automatically.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	// Load .env file to environments
	_ "github.com/joho/godotenv/autoload"
)

// Config is every setting the service read at startup
type Config struct {
	Port        int
	AllowOrigin []string

	DB      DatabaseConfig
	Google  GoogleConfig
	Storage StorageConfig
	Redis   RedisConfig

	RabbitMQURL string
	SecretKey   string

	RateLimit      uint
	RateLimitEvery time.Duration

	LogLevel    string
	LogFormat   string
	AuthLogging bool
	AuthLogPath string
}

// DatabaseConfig holds parameters for connecting to postgres
type DatabaseConfig struct {
	Host          string
	Port          string
	User          string
	Password      string
	Name          string
	ConnString    string
	UseConnString bool
}

// GoogleConfig is OAuth client registered at google cloud console
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// StorageConfig point to GCS bucket holding resumes and logos
type StorageConfig struct {
	Bucket string
}

// RedisConfig is empty Addr when redis is not used
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// DSN return postgres connection string
func (d DatabaseConfig) DSN() (string, error) {
	if d.UseConnString {
		if d.ConnString == "" {
			return "", fmt.Errorf("DB_CONNECTION_STR is empty")
		}
		return d.ConnString, nil
	}
	if d.Host == "" || d.Port == "" || d.User == "" || d.Password == "" || d.Name == "" {
		return "", fmt.Errorf("database configuration is incomplete")
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", d.User, d.Password, d.Host, d.Port, d.Name), nil
}

// Load read Config from environment
func Load() (*Config, error) {
	port, err := intEnv("PORT", 8080)
	if err != nil {
		return nil, err
	}
	useConn, err := boolEnv("USE_CONNECTION_STR", false)
	if err != nil {
		return nil, err
	}
	redisDB, err := intEnv("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	limit, err := intEnv("RATE_LIMIT", 20)
	if err != nil {
		return nil, err
	}
	if limit < 1 {
		return nil, fmt.Errorf("RATE_LIMIT must be positive, got %d", limit)
	}
	every, err := durationEnv("RATE_LIMIT_EVERY", time.Second)
	if err != nil {
		return nil, err
	}
	authLogging, err := boolEnv("LOGGING", false)
	if err != nil {
		return nil, err
	}
	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		return nil, fmt.Errorf("SECRET_KEY environment variable is required")
	}

	return &Config{
		Port:        port,
		AllowOrigin: splitList(os.Getenv("ALLOW_ORIGIN")),
		DB: DatabaseConfig{
			Host:          os.Getenv("DB_HOST"),
			Port:          os.Getenv("DB_PORT"),
			User:          os.Getenv("DB_USERNAME"),
			Password:      os.Getenv("DB_PASSWORD"),
			Name:          os.Getenv("DB_DATABASE"),
			ConnString:    os.Getenv("DB_CONNECTION_STR"),
			UseConnString: useConn,
		},
		Google: GoogleConfig{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  stringEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/v1/auth/google/callback"),
		},
		Storage: StorageConfig{
			Bucket: os.Getenv("BUCKET_NAME"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		RabbitMQURL:    os.Getenv("RABBITMQ_URL"),
		SecretKey:      secret,
		RateLimit:      uint(limit),
		RateLimitEvery: every,
		LogLevel:       stringEnv("LOG_LEVEL", "info"),
		LogFormat:      stringEnv("LOG_FORMAT", "text"),
		AuthLogging:    authLogging,
		AuthLogPath:    stringEnv("AUTH_LOG_PATH", filepath.Join("log", "auth.log")),
	}, nil
}

func stringEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s environment variable is invalid: %w", key, err)
	}
	return n, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s environment variable is invalid: %w", key, err)
	}
	return b, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s environment variable is invalid: %w", key, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
