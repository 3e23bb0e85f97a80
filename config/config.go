package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends
const (
	StoreBackendWorkbook = "workbook"
	StoreBackendSQLite   = "sqlite"
	StoreBackendMemory   = "memory"
)

type Config struct {
	ServerPort  string
	Environment string
	LogLevel    string
	// Table store
	StoreBackend     string
	DBPath           string
	TursoDatabaseURL string
	TursoAuthToken   string
	WorkbookKey      string
	UploadDir        string
	CacheTTL         time.Duration
	// Cloudflare R2 Storage (workbook blob)
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string
	// Jobs
	JobsEnabled        bool
	InactivitySchedule string
	Timezone           string
	// Other
	AllowedOrigins []string
	WriteRateLimit int
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		StoreBackend:       strings.ToLower(getEnv("STORE_BACKEND", StoreBackendWorkbook)),
		DBPath:             getEnv("DB_PATH", "db/juris.db"),
		TursoDatabaseURL:   getEnv("TURSO_DATABASE_URL", ""),
		TursoAuthToken:     getEnv("TURSO_AUTH_TOKEN", ""),
		WorkbookKey:        getEnv("WORKBOOK_KEY", "juris_control.xlsx"),
		UploadDir:          getEnv("UPLOAD_DIR", "data"),
		CacheTTL:           getEnvDuration("CACHE_TTL", 60*time.Second),
		R2AccountID:        getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:      getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey:  getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:       getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:        getEnv("R2_PUBLIC_URL", ""),
		JobsEnabled:        getEnvBool("JOBS_ENABLED", true),
		InactivitySchedule: getEnv("INACTIVITY_SCHEDULE", "0 8 * * *"),
		Timezone:           getEnv("TIMEZONE", "America/Sao_Paulo"),
		AllowedOrigins:     strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		WriteRateLimit:     getEnvInt("WRITE_RATE_LIMIT", 60),
	}
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreBackendWorkbook, StoreBackendSQLite, StoreBackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.StoreBackend == StoreBackendWorkbook && c.WorkbookKey == "" {
		return fmt.Errorf("WORKBOOK_KEY is required for the workbook backend")
	}
	if c.TursoDatabaseURL != "" && c.TursoAuthToken == "" {
		return fmt.Errorf("TURSO_AUTH_TOKEN is required when TURSO_DATABASE_URL is set")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return nil
}

// R2Configured reports whether every R2 credential is set.
func (c *Config) R2Configured() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" && c.R2BucketName != ""
}

// Location returns the configured timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[WARNING] %s=%q is not an integer, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

// getEnvDuration accepts Go durations ("90s", "5m") or a bare number of
// seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("[WARNING] %s=%q is not a duration, using %s", key, value, defaultValue)
	return defaultValue
}
