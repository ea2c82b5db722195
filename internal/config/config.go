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

// Config holds all configuration for the application
type Config struct {
	AppMode   string
	Port      string
	Database  DatabaseConfig
	Session   SessionConfig
	Snapshot  SnapshotConfig
	Scheduler SchedulerConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// SessionConfig holds the session token settings
type SessionConfig struct {
	Secret        string
	LifetimeHours int
}

// SnapshotConfig holds the local snapshot database settings
type SnapshotConfig struct {
	Path string
}

// SchedulerConfig holds the cron schedules of the background jobs
type SchedulerConfig struct {
	Refresh      string
	Alerts       string
	Cleanup      string
	ExpiryDays   int
	InitTimeout  time.Duration
	ShutdownWait time.Duration
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	// Build config based on APP_MODE
	config := &Config{
		AppMode:   appMode,
		Port:      getEnv("PORT", "3000"),
		Database:  loadDatabaseConfig(appMode),
		Session:   loadSessionConfig(appMode),
		Snapshot:  loadSnapshotConfig(appMode),
		Scheduler: loadSchedulerConfig(),
	}

	if config.IsProd() && config.Session.Secret == defaultSecret {
		return nil, fmt.Errorf("PROD_JWT_SECRET must be set in prod mode")
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

const defaultSecret = "default_secret"

func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := modePrefix(mode)

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "rx_nexus"),
	}
}

// loadSessionConfig loads session token config based on mode
func loadSessionConfig(mode string) SessionConfig {
	prefix := modePrefix(mode)

	return SessionConfig{
		Secret:        getEnv(prefix+"JWT_SECRET", defaultSecret),
		LifetimeHours: getEnvInt("SESSION_HOURS", 12),
	}
}

// loadSnapshotConfig loads the snapshot path based on mode
func loadSnapshotConfig(mode string) SnapshotConfig {
	return SnapshotConfig{
		Path: getEnv(modePrefix(mode)+"SNAPSHOT_PATH", "data/snapshot.db"),
	}
}

// loadSchedulerConfig loads the background job schedules
func loadSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Refresh:      getEnv("SCHEDULE_REFRESH", "@every 15m"),
		Alerts:       getEnv("SCHEDULE_ALERTS", "@every 30m"),
		Cleanup:      getEnv("SCHEDULE_SESSION_CLEANUP", "@daily"),
		ExpiryDays:   getEnvInt("ALERT_EXPIRY_DAYS", 30),
		InitTimeout:  time.Duration(getEnvInt("INIT_TIMEOUT_SECONDS", 60)) * time.Second,
		ShutdownWait: time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable, falling back to
// defaultValue when unset or malformed
func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return n
}

// SessionLifetime returns the session token lifetime
func (c *Config) SessionLifetime() time.Duration {
	return time.Duration(c.Session.LifetimeHours) * time.Hour
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		// Default production origins
		return "https://pharmacy.rxnexus.com"
	}
	return origins
}
