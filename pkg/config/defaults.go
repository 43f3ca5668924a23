// Package config provides centralized default values for the Monster widget host
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// DefaultBreakerImageURL is the landscape test image used by the breaker text.
const DefaultBreakerImageURL = "http://wpthemetestdata.files.wordpress.com/2008/09/test-image-landscape-900.jpg"

// LocalBreakerImagePath is where the HTTP server exposes the generated substitute image.
const LocalBreakerImagePath = "/media/test-image-landscape-900.jpg"

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		// godotenv.Load never overrides variables that are already set.
		if err := godotenv.Load(); err == nil {
			log.Println("Loaded configuration overrides from .env file")
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvSecret(key string) string {
	return os.Getenv(key)
}

func getEnvBool(key string, defaultValue bool) bool {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.ParseBool(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%t (default: %t)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration
	CORSOrigins        []string

	// Database
	SQLitePath         string
	TursoDatabaseURL   string
	TursoAuthToken     string
	DBMaxOpenConns     int
	DBMaxIdleConns     int
	SlowQueryThreshold time.Duration
	SeedSampleMenus    bool

	// Widget host
	SidebarsFile      string
	TranslationsFile  string
	Language          string
	BreakerImageURL   string
	LocalBreakerImage bool
	EnableLinksWidget bool
	ContentCacheTTL   time.Duration

	// Cache cleanup
	CacheCleanupInterval time.Duration
	CacheCleanupVerbose  bool

	// Admin
	JWTSecret         string
	AdminPassword     string
	AdminPasswordHash string

	// Logging
	LogLevel     string
	LogJSON      bool
	LogToFile    bool
	LogDirectory string
)

func init() {
	Load()
}

// Load (re)reads every setting from the environment.
func Load() {
	loadEnvFile()

	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)
	CORSOrigins = getEnvList("CORS_ORIGINS", []string{
		"http://localhost:3000",
		"http://localhost:8080",
		"http://127.0.0.1:8080",
	})

	SQLitePath = getEnvString("SQLITE_PATH", "data/monster-widget.db")
	TursoDatabaseURL = getEnvString("TURSO_DATABASE_URL", "")
	TursoAuthToken = getEnvSecret("TURSO_AUTH_TOKEN")
	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 3)
	SlowQueryThreshold = getEnvDuration("SLOW_QUERY_THRESHOLD", 100*time.Millisecond)
	SeedSampleMenus = getEnvBool("SEED_SAMPLE_MENUS", true)

	SidebarsFile = getEnvString("SIDEBARS_FILE", "config/sidebars.yaml")
	TranslationsFile = getEnvString("TRANSLATIONS_FILE", "config/translations.yaml")
	Language = getEnvString("LANGUAGE", "en")
	BreakerImageURL = getEnvString("BREAKER_IMAGE_URL", DefaultBreakerImageURL)
	LocalBreakerImage = getEnvBool("LOCAL_BREAKER_IMAGE", false)
	EnableLinksWidget = getEnvBool("ENABLE_LINKS_WIDGET", false)
	ContentCacheTTL = getEnvDuration("CONTENT_CACHE_TTL", 5*time.Minute)
	CacheCleanupInterval = getEnvDuration("CACHE_CLEANUP_INTERVAL", time.Minute)
	CacheCleanupVerbose = getEnvBool("CACHE_CLEANUP_VERBOSE", false)

	JWTSecret = getEnvSecret("JWT_SECRET")
	AdminPassword = getEnvSecret("ADMIN_PASSWORD")
	AdminPasswordHash = getEnvSecret("ADMIN_PASSWORD_HASH")

	LogLevel = getEnvString("LOG_LEVEL", "info")
	LogJSON = getEnvBool("LOG_JSON", true)
	LogToFile = getEnvBool("LOG_TO_FILE", false)
	LogDirectory = getEnvString("LOG_DIRECTORY", "logs")

	if LocalBreakerImage {
		BreakerImageURL = LocalBreakerImagePath
	}
}
