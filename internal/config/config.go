package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageSQLite = "sqlite"
	StorageMySQL  = "mysql"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

var ErrMissingBackend = errors.New("missing backend configuration")

type Config struct {
	AppPort string

	// Hosted backend: both are required.
	BackendURL     string
	BackendAnonKey string
	HTTPTimeout    time.Duration

	SessionKeyPrefix string
	StorageDriver    string
	StoragePath      string
	DbHost           string
	DbPort           string
	DbUser           string
	DbPassword       string
	DbName           string
	DbParams         string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int

	NotificationsEnabled bool
	NotifyInterval       time.Duration
	NotifyInitialDelay   time.Duration
	DailyDigest          bool
	Location             *time.Location

	TranslationFolder string
	TrustedProxies    []string
}

// LoadConfig reads the environment (and a .env file when present). It fails
// when the backend endpoint or its public key is missing.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppPort:              getEnv("APP_PORT", "8080"),
		BackendURL:           strings.TrimRight(strings.TrimSpace(os.Getenv("SUPABASE_URL")), "/"),
		BackendAnonKey:       strings.TrimSpace(os.Getenv("SUPABASE_ANON_KEY")),
		HTTPTimeout:          getDuration("BACKEND_TIMEOUT", 15*time.Second),
		SessionKeyPrefix:     getEnv("SESSION_KEY_PREFIX", "supabase.auth"),
		StorageDriver:        getEnv("LOCAL_STORAGE_DRIVER", StorageSQLite),
		StoragePath:          getEnv("LOCAL_STORAGE_PATH", "taskboard.db"),
		DbHost:               getEnv("MYSQL_HOST", "127.0.0.1"),
		DbPort:               getEnv("MYSQL_PORT", "3306"),
		DbUser:               getEnv("MYSQL_USER", "taskboard"),
		DbPassword:           getEnv("MYSQL_PASSWORD", "taskboard"),
		DbName:               getEnv("MYSQL_DATABASE", "taskboard"),
		DbParams:             getEnv("MYSQL_PARAMS", "parseTime=true"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		RedisDB:              getInt("REDIS_DB", 0),
		NotificationsEnabled: getBool("NOTIFICATIONS_ENABLED", true),
		NotifyInterval:       getDuration("NOTIFY_INTERVAL", time.Hour),
		NotifyInitialDelay:   getDuration("NOTIFY_INITIAL_DELAY", time.Second),
		DailyDigest:          getBool("NOTIFY_DAILY_DIGEST", true),
		TranslationFolder:    getEnv("TRANSLATION_FOLDER", "pkg/translator/translation"),
		TrustedProxies:       parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),
	}

	var missing []string
	if cfg.BackendURL == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if cfg.BackendAnonKey == "" {
		missing = append(missing, "SUPABASE_ANON_KEY")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingBackend, strings.Join(missing, ", "))
	}

	switch cfg.StorageDriver {
	case StorageSQLite, StorageMySQL, StorageRedis, StorageMemory:
	default:
		return nil, fmt.Errorf("unsupported LOCAL_STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	location, err := time.LoadLocation(getEnv("TZ_LOCATION", "Local"))
	if err != nil {
		return nil, fmt.Errorf("invalid TZ_LOCATION: %w", err)
	}
	cfg.Location = location

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func getInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
