// Package config loads application settings from the environment.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers understood by StoreConfig.Driver.
const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Activity ActivityConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int
	Environment string
	StaticDir   string
	CORSOrigins string
}

// StoreConfig selects and configures the persistence backend. Modules given
// the same StoreConfig share one connection, so ":memory:" is a single
// database for the whole process.
type StoreConfig struct {
	Driver        string
	SQLitePath    string
	Debug         bool
	MongoURI      string
	MongoDatabase string
}

// CacheConfig configures the optional Redis cache. An empty RedisAddr
// disables caching.
type CacheConfig struct {
	RedisAddr     string
	RedisPassword string
	Prefix        string
	TTL           time.Duration
}

// Enabled reports whether a Redis address was configured.
func (c CacheConfig) Enabled() bool {
	return c.RedisAddr != ""
}

// AuthConfig holds credential and token settings.
type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	TokenTTL    time.Duration
	BcryptCost  int
	RequireAuth bool
}

// ActivityConfig sizes the in-memory activity feed.
type ActivityConfig struct {
	FeedSize int
}

// Load reads a .env file when present and builds the configuration from
// environment variables, falling back to development defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] Warning: failed to load .env: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:        getEnvInt("PORT", 3000),
			Environment: getEnv("APP_ENV", "development"),
			StaticDir:   getEnv("STATIC_DIR", ""),
			CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		},
		Store: StoreConfig{
			Driver:        strings.ToLower(getEnv("STORE_DRIVER", DriverSQLite)),
			SQLitePath:    getEnv("DB_PATH", "studenthustle.db"),
			Debug:         getEnvBool("DB_DEBUG", false),
			MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			MongoDatabase: getEnv("MONGO_DATABASE", "studenthustle"),
		},
		Cache: CacheConfig{
			RedisAddr:     getEnv("REDIS_ADDR", ""),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			Prefix:        getEnv("CACHE_PREFIX", "studenthustle:"),
			TTL:           getEnvDuration("CACHE_TTL", time.Minute),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", "studenthustle_dev_secret_change_later"),
			JWTIssuer:   getEnv("JWT_ISSUER", "studenthustle"),
			TokenTTL:    getEnvDuration("TOKEN_TTL", 7*24*time.Hour),
			BcryptCost:  getEnvInt("BCRYPT_COST", 10),
			RequireAuth: getEnvBool("REQUIRE_AUTH", false),
		},
		Activity: ActivityConfig{
			FeedSize: getEnvInt("ACTIVITY_FEED_SIZE", 50),
		},
	}
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvBool returns environment variable as bool or default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
		log.Printf("Warning: invalid bool value for %s: %s, using default: %t", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
