// Package config loads escrow service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Provider modes
const (
	ProviderModeSimulated = "simulated"
	ProviderModeLive      = "live"
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Database  DatabaseConfig
	Engine    EngineConfig
	Providers ProvidersConfig
	Orders    OrdersConfig
	Telemetry TelemetryConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	SQLitePath      string
	ConnMaxLifetime time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
}

// EngineConfig holds the escrow engine's timing and currency settings
type EngineConfig struct {
	Currency        string
	ProviderTimeout time.Duration
	LeaseTTL        time.Duration
	LeaseWait       time.Duration
	SweepInterval   time.Duration
	SweepBatchSize  int
	IdempotencyTTL  time.Duration
}

// ProvidersConfig selects and tunes the payment provider adapters
type ProvidersConfig struct {
	Mode         string
	File         string
	FailureRate  float64
	TimeoutRate  float64
	MinLatencyMS int
	MaxLatencyMS int
}

// OrdersConfig points at the order collaborator
type OrdersConfig struct {
	BaseURL string
	Timeout time.Duration
}

// TelemetryConfig holds OpenTelemetry exporter settings
type TelemetryConfig struct {
	ServiceName string
	Environment string
	Endpoint    string
	Insecure    bool
}

// Enabled reports whether traces should be exported
func (c *TelemetryConfig) Enabled() bool {
	return c.Endpoint != ""
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level      string // debug, info, warn, error
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Load loads configuration from environment variables with sensible defaults.
// A .env file in the working directory, when present, seeds the environment.
func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env is optional

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", "15s"),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", "30s"),
			IdleTimeout:     getEnvAsDuration("SERVER_IDLE_TIMEOUT", "60s"),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", "30s"),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", DriverPostgres),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			DBName:          getEnv("DB_NAME", "escrow"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			SQLitePath:      getEnv("DB_SQLITE_PATH", "escrow.db"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", "5m"),
		},
		Engine: EngineConfig{
			Currency:        getEnv("ESCROW_CURRENCY", "GHS"),
			ProviderTimeout: getEnvAsDuration("ENGINE_PROVIDER_TIMEOUT", "10s"),
			LeaseTTL:        getEnvAsDuration("ENGINE_LEASE_TTL", "45s"),
			LeaseWait:       getEnvAsDuration("ENGINE_LEASE_WAIT", "5s"),
			SweepInterval:   getEnvAsDuration("SWEEP_INTERVAL", "1m"),
			SweepBatchSize:  getEnvAsInt("SWEEP_BATCH_SIZE", 100),
			IdempotencyTTL:  getEnvAsDuration("IDEMPOTENCY_KEY_TTL", "24h"),
		},
		Providers: ProvidersConfig{
			Mode:         getEnv("PROVIDER_MODE", ProviderModeSimulated),
			File:         getEnv("PROVIDERS_FILE", ""),
			FailureRate:  getEnvAsFloat("SIM_FAILURE_RATE", 0),
			TimeoutRate:  getEnvAsFloat("SIM_TIMEOUT_RATE", 0),
			MinLatencyMS: getEnvAsInt("SIM_MIN_LATENCY_MS", 50),
			MaxLatencyMS: getEnvAsInt("SIM_MAX_LATENCY_MS", 500),
		},
		Orders: OrdersConfig{
			BaseURL: getEnv("ORDERS_API_URL", ""),
			Timeout: getEnvAsDuration("ORDERS_API_TIMEOUT", "5s"),
		},
		Telemetry: TelemetryConfig{
			ServiceName: getEnv("OTEL_SERVICE_NAME", "escrow"),
			Environment: getEnv("APP_ENV", "development"),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Insecure:    getEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		},
		Logger: LoggerConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 28),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host cannot be empty")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database name cannot be empty")
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("sqlite path cannot be empty")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s (must be postgres or sqlite)", c.Database.Driver)
	}

	if !currencyPattern.MatchString(c.Engine.Currency) {
		return fmt.Errorf("currency must be a 3-letter ISO code, got %q", c.Engine.Currency)
	}
	if c.Engine.ProviderTimeout <= 0 {
		return fmt.Errorf("provider timeout must be positive")
	}
	if c.Engine.LeaseTTL <= c.Engine.ProviderTimeout {
		return fmt.Errorf("lease ttl (%s) must exceed provider timeout (%s)", c.Engine.LeaseTTL, c.Engine.ProviderTimeout)
	}
	if c.Engine.LeaseWait <= 0 {
		return fmt.Errorf("lease wait must be positive")
	}
	if c.Engine.SweepInterval <= 0 {
		return fmt.Errorf("sweep interval must be positive")
	}
	if c.Engine.SweepBatchSize <= 0 {
		return fmt.Errorf("sweep batch size must be positive")
	}
	if c.Engine.IdempotencyTTL <= 0 {
		return fmt.Errorf("idempotency key ttl must be positive")
	}

	if c.Providers.Mode != ProviderModeSimulated && c.Providers.Mode != ProviderModeLive {
		return fmt.Errorf("invalid provider mode: %s (must be simulated or live)", c.Providers.Mode)
	}
	if c.Providers.Mode == ProviderModeLive && c.Providers.File == "" {
		return fmt.Errorf("live provider mode requires PROVIDERS_FILE")
	}
	if c.Providers.FailureRate < 0 || c.Providers.FailureRate > 1 {
		return fmt.Errorf("failure rate must be between 0 and 1, got %f", c.Providers.FailureRate)
	}
	if c.Providers.TimeoutRate < 0 || c.Providers.TimeoutRate > 1 {
		return fmt.Errorf("timeout rate must be between 0 and 1, got %f", c.Providers.TimeoutRate)
	}
	if c.Providers.MinLatencyMS < 0 {
		return fmt.Errorf("min latency cannot be negative")
	}
	if c.Providers.MaxLatencyMS < c.Providers.MinLatencyMS {
		return fmt.Errorf("max latency (%d) must be >= min latency (%d)", c.Providers.MaxLatencyMS, c.Providers.MinLatencyMS)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	return nil
}

// DSN returns the connection string for the configured driver
func (c *DatabaseConfig) DSN() string {
	if c.Driver == DriverSQLite {
		return c.SQLitePath
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to parsing the default if provided value is invalid
		duration, err = time.ParseDuration(defaultValue)
		if err != nil {
			return 0
		}
	}
	return duration
}
