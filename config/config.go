package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// App config
const APP_ENV_PROD = "prod"
const APP_ENV_DEV = "dev"
const SERVER_ADDRESS = ":8080"

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Schedule source config
const DATA_MODE_EXCEL_URL = "excel_url"
const DATA_MODE_EXCEL_LOCAL = "excel_local"
const SCHEDULE_DEFAULT_DATA_MODE = DATA_MODE_EXCEL_LOCAL
const SCHEDULE_DEFAULT_LOCAL_FILE = "schedule.xlsx"

// Schedule refresher config, also the workbook cache TTL
const SCHEDULE_REFRESH_INTERVAL_SECONDS = 600
const SCHEDULE_FETCH_TIMEOUT_SECONDS = 30

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"

// Config is the runtime configuration, read once at startup.
type Config struct {
	AppEnv          string
	ServerAddr      string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	DataMode        string
	XLSXURL         string
	LocalPath       string
	SheetName       string
	LayoutFile      string
	RefreshInterval time.Duration
	FetchTimeout    time.Duration
}

// Load reads an optional .env file, then the environment, and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[Config] Could not load .env file: %v", err)
	}

	cfg := &Config{
		AppEnv:          getEnvOrDefault("APP_ENV", APP_ENV_DEV),
		ServerAddr:      getEnvOrDefault("SERVER_ADDR", SERVER_ADDRESS),
		RedisAddr:       getEnvOrDefault("REDIS_ADDR", REDIS_DB_ADDRESS),
		RedisPassword:   getEnvOrDefault("REDIS_PASSWORD", REDIS_DB_PASSWORD),
		RedisDB:         getEnvIntOrDefault("REDIS_DB", REDIS_DB),
		DataMode:        getEnvOrDefault("SCHEDULE_DATA_MODE", SCHEDULE_DEFAULT_DATA_MODE),
		XLSXURL:         getEnvOrDefault("SCHEDULE_XLSX_URL", ""),
		LocalPath:       getEnvOrDefault("SCHEDULE_LOCAL_PATH", GetResourcePath(SCHEDULE_DEFAULT_LOCAL_FILE)),
		SheetName:       getEnvOrDefault("SCHEDULE_SHEET_NAME", ""),
		LayoutFile:      getEnvOrDefault("SCHEDULE_LAYOUT_FILE", ""),
		RefreshInterval: getEnvDurationOrDefault("SCHEDULE_REFRESH_INTERVAL", SCHEDULE_REFRESH_INTERVAL_SECONDS*time.Second),
		FetchTimeout:    getEnvDurationOrDefault("SCHEDULE_FETCH_TIMEOUT", SCHEDULE_FETCH_TIMEOUT_SECONDS*time.Second),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.DataMode {
	case DATA_MODE_EXCEL_URL:
		if c.XLSXURL == "" {
			return fmt.Errorf("SCHEDULE_XLSX_URL is required when SCHEDULE_DATA_MODE=%s", DATA_MODE_EXCEL_URL)
		}
	case DATA_MODE_EXCEL_LOCAL:
		if c.LocalPath == "" {
			return fmt.Errorf("SCHEDULE_LOCAL_PATH is required when SCHEDULE_DATA_MODE=%s", DATA_MODE_EXCEL_LOCAL)
		}
	default:
		return fmt.Errorf("SCHEDULE_DATA_MODE must be %q or %q, got %q", DATA_MODE_EXCEL_URL, DATA_MODE_EXCEL_LOCAL, c.DataMode)
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("SCHEDULE_REFRESH_INTERVAL must be positive, got %s", c.RefreshInterval)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("SCHEDULE_FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout)
	}
	return nil
}

// CacheTTL is how long a fetched workbook stays cached. It ends a fetch
// timeout before the next periodic refresh so every tick fetches again,
// and never drops below half the interval.
func (c *Config) CacheTTL() time.Duration {
	ttl := c.RefreshInterval - c.FetchTimeout
	if ttl < c.RefreshInterval/2 {
		ttl = c.RefreshInterval / 2
	}
	return ttl
}

// IsProd reports whether the server talks to real Redis.
func (c *Config) IsProd() bool {
	return c.AppEnv == APP_ENV_PROD
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resourceFile string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resourceFile)
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDurationOrDefault accepts Go durations ("10m") or plain seconds ("600").
func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}
