package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"workclock/internal/logging"
)

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

// Check-in policies for a second check-in on the same day.
const (
	CheckInPolicyReject    = "reject"
	CheckInPolicyOverwrite = "overwrite"
)

// Auth modes.
const (
	AuthModeNone   = "none"
	AuthModeStatic = "static"
	AuthModeRemote = "remote"
)

// Config holds all configuration options for workclock
type Config struct {
	Storage     StorageConfig
	Server      ServerConfig
	Time        TimeConfig
	Targets     TargetsConfig
	Ledger      LedgerConfig
	Auth        AuthConfig
	Application ApplicationConfig
}

// StorageConfig selects and configures the key-value backend
type StorageConfig struct {
	Backend         string        `env:"WC_STORAGE_BACKEND"`
	Dir             string        `env:"WC_DB_DIR"`
	Filename        string        `env:"WC_DB_FILENAME"`
	DirPermissions  uint32        `env:"WC_DB_DIR_PERMISSIONS"`
	PostgresDSN     string        `env:"WC_POSTGRES_DSN"`
	MongoURI        string        `env:"WC_MONGO_URI"`
	MongoDatabase   string        `env:"WC_MONGO_DATABASE"`
	MongoCollection string        `env:"WC_MONGO_COLLECTION"`
	QueryTimeout    time.Duration `env:"WC_DB_QUERY_TIMEOUT"`
	WriteTimeout    time.Duration `env:"WC_DB_WRITE_TIMEOUT"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string        `env:"WC_HTTP_ADDR"`
	Mode            string        `env:"WC_HTTP_MODE"`
	ReadTimeout     time.Duration `env:"WC_HTTP_READ_TIMEOUT"`
	WriteTimeout    time.Duration `env:"WC_HTTP_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `env:"WC_HTTP_SHUTDOWN_TIMEOUT"`
}

// TimeConfig holds day bucketing and display configuration
type TimeConfig struct {
	Timezone      string `env:"WC_TIMEZONE"`
	Locale        string `env:"WC_LOCALE"`
	DisplayFormat string `env:"WC_TIME_DISPLAY_FORMAT"`
}

// TargetsConfig holds the thresholds the analytics are measured against
type TargetsConfig struct {
	WeeklyHours       float64 `env:"WC_TARGET_WEEKLY_HOURS"`
	MonthlyHours      float64 `env:"WC_TARGET_MONTHLY_HOURS"`
	CompleteDayHours  float64 `env:"WC_TARGET_COMPLETE_DAY_HOURS"`
	WorkdaysPerWeek   int     `env:"WC_TARGET_WORKDAYS_PER_WEEK"`
	PunctualityCutoff string  `env:"WC_PUNCTUALITY_CUTOFF"`
}

// LedgerConfig holds check-in/check-out rules
type LedgerConfig struct {
	CheckInPolicy string `env:"WC_CHECKIN_POLICY"`
}

// AuthConfig holds bearer authentication configuration
type AuthConfig struct {
	Mode          string        `env:"WC_AUTH_MODE"`
	Required      bool          `env:"WC_AUTH_REQUIRED"`
	StaticTokens  string        `env:"WC_AUTH_STATIC_TOKENS"`
	RemoteURL     string        `env:"WC_AUTH_REMOTE_URL"`
	RemoteTimeout time.Duration `env:"WC_AUTH_REMOTE_TIMEOUT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Env           string        `env:"WC_ENV"`
	LogLevel      string        `env:"WC_LOG_LEVEL"`
	Timeout       time.Duration `env:"WC_APP_TIMEOUT"`
	DefaultUserID string        `env:"WC_DEFAULT_USER_ID"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".workclock")

	return &Config{
		Storage: StorageConfig{
			Backend:         BackendSQLite,
			Dir:             defaultDBDir,
			Filename:        "workclock.db",
			DirPermissions:  0755,
			MongoDatabase:   "workclock",
			MongoCollection: "kv_store",
			QueryTimeout:    10 * time.Second,
			WriteTimeout:    5 * time.Second,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			Mode:            "release",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Time: TimeConfig{
			Timezone:      "Local",
			Locale:        "es",
			DisplayFormat: "2006-01-02 15:04",
		},
		Targets: TargetsConfig{
			WeeklyHours:       40,
			MonthlyHours:      160,
			CompleteDayHours:  7,
			WorkdaysPerWeek:   5,
			PunctualityCutoff: "09:30",
		},
		Ledger: LedgerConfig{
			CheckInPolicy: CheckInPolicyReject,
		},
		Auth: AuthConfig{
			Mode:          AuthModeNone,
			RemoteTimeout: 5 * time.Second,
		},
		Application: ApplicationConfig{
			Env:           "development",
			LogLevel:      "info",
			Timeout:       60 * time.Second,
			DefaultUserID: "default",
		},
	}
}

// GetDatabasePath returns the full path to the SQLite database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Storage.Dir, c.Storage.Filename)
}

// GetQueryTimeout returns the storage query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Storage.QueryTimeout
}

// GetWriteTimeout returns the storage write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Storage.WriteTimeout
}

// PunctualityCutoffMinutes returns the cutoff as minutes after local midnight.
func (c *Config) PunctualityCutoffMinutes() (int, error) {
	return ParseClockMinutes(c.Targets.PunctualityCutoff)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Storage configuration
	if v := os.Getenv("WC_STORAGE_BACKEND"); v != "" {
		c.Storage.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("WC_DB_DIR"); v != "" {
		c.Storage.Dir = v
	}
	if v := os.Getenv("WC_DB_FILENAME"); v != "" {
		c.Storage.Filename = v
	}
	if v := os.Getenv("WC_DB_DIR_PERMISSIONS"); v != "" {
		c.Storage.DirPermissions = ParseUint32WithFallback(v, 8, c.Storage.DirPermissions)
	}
	if v := os.Getenv("WC_POSTGRES_DSN"); v != "" {
		c.Storage.PostgresDSN = v
	}
	if v := os.Getenv("WC_MONGO_URI"); v != "" {
		c.Storage.MongoURI = v
	}
	if v := os.Getenv("WC_MONGO_DATABASE"); v != "" {
		c.Storage.MongoDatabase = v
	}
	if v := os.Getenv("WC_MONGO_COLLECTION"); v != "" {
		c.Storage.MongoCollection = v
	}
	if v := os.Getenv("WC_DB_QUERY_TIMEOUT"); v != "" {
		c.Storage.QueryTimeout = ParseDurationWithFallback(v, c.Storage.QueryTimeout)
	}
	if v := os.Getenv("WC_DB_WRITE_TIMEOUT"); v != "" {
		c.Storage.WriteTimeout = ParseDurationWithFallback(v, c.Storage.WriteTimeout)
	}

	// Server configuration
	if v := os.Getenv("WC_HTTP_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("WC_HTTP_MODE"); v != "" {
		c.Server.Mode = v
	}
	if v := os.Getenv("WC_HTTP_READ_TIMEOUT"); v != "" {
		c.Server.ReadTimeout = ParseDurationWithFallback(v, c.Server.ReadTimeout)
	}
	if v := os.Getenv("WC_HTTP_WRITE_TIMEOUT"); v != "" {
		c.Server.WriteTimeout = ParseDurationWithFallback(v, c.Server.WriteTimeout)
	}
	if v := os.Getenv("WC_HTTP_SHUTDOWN_TIMEOUT"); v != "" {
		c.Server.ShutdownTimeout = ParseDurationWithFallback(v, c.Server.ShutdownTimeout)
	}

	// Time configuration
	if v := os.Getenv("WC_TIMEZONE"); v != "" {
		c.Time.Timezone = v
	}
	if v := os.Getenv("WC_LOCALE"); v != "" {
		c.Time.Locale = v
	}
	if v := os.Getenv("WC_TIME_DISPLAY_FORMAT"); v != "" {
		c.Time.DisplayFormat = v
	}

	// Targets configuration
	if v := os.Getenv("WC_TARGET_WEEKLY_HOURS"); v != "" {
		c.Targets.WeeklyHours = ParseFloatWithFallback(v, c.Targets.WeeklyHours)
	}
	if v := os.Getenv("WC_TARGET_MONTHLY_HOURS"); v != "" {
		c.Targets.MonthlyHours = ParseFloatWithFallback(v, c.Targets.MonthlyHours)
	}
	if v := os.Getenv("WC_TARGET_COMPLETE_DAY_HOURS"); v != "" {
		c.Targets.CompleteDayHours = ParseFloatWithFallback(v, c.Targets.CompleteDayHours)
	}
	if v := os.Getenv("WC_TARGET_WORKDAYS_PER_WEEK"); v != "" {
		c.Targets.WorkdaysPerWeek = ParseIntWithFallback(v, c.Targets.WorkdaysPerWeek)
	}
	if v := os.Getenv("WC_PUNCTUALITY_CUTOFF"); v != "" {
		c.Targets.PunctualityCutoff = v
	}

	// Ledger configuration
	if v := os.Getenv("WC_CHECKIN_POLICY"); v != "" {
		c.Ledger.CheckInPolicy = strings.ToLower(v)
	}

	// Auth configuration
	if v := os.Getenv("WC_AUTH_MODE"); v != "" {
		c.Auth.Mode = strings.ToLower(v)
	}
	if v := os.Getenv("WC_AUTH_REQUIRED"); v != "" {
		c.Auth.Required = ParseBoolWithFallback(v, c.Auth.Required)
	}
	if v := os.Getenv("WC_AUTH_STATIC_TOKENS"); v != "" {
		c.Auth.StaticTokens = v
	}
	if v := os.Getenv("WC_AUTH_REMOTE_URL"); v != "" {
		c.Auth.RemoteURL = v
	}
	if v := os.Getenv("WC_AUTH_REMOTE_TIMEOUT"); v != "" {
		c.Auth.RemoteTimeout = ParseDurationWithFallback(v, c.Auth.RemoteTimeout)
	}

	// Application configuration
	if v := os.Getenv("WC_ENV"); v != "" {
		c.Application.Env = v
	}
	if v := os.Getenv("WC_LOG_LEVEL"); v != "" {
		c.Application.LogLevel = v
	}
	if v := os.Getenv("WC_APP_TIMEOUT"); v != "" {
		c.Application.Timeout = ParseDurationWithFallback(v, c.Application.Timeout)
	}
	if v := os.Getenv("WC_DEFAULT_USER_ID"); v != "" {
		c.Application.DefaultUserID = v
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate storage configuration
	switch c.Storage.Backend {
	case BackendMemory:
	case BackendSQLite:
		if c.Storage.Dir == "" {
			return &ConfigError{Field: "storage.dir", Message: "database directory cannot be empty"}
		}
		if c.Storage.Filename == "" {
			return &ConfigError{Field: "storage.filename", Message: "database filename cannot be empty"}
		}
	case BackendPostgres:
		if c.Storage.PostgresDSN == "" {
			return &ConfigError{Field: "storage.postgres_dsn", Message: "postgres DSN is required for the postgres backend"}
		}
	case BackendMongo:
		if c.Storage.MongoURI == "" {
			return &ConfigError{Field: "storage.mongo_uri", Message: "mongo URI is required for the mongo backend"}
		}
		if c.Storage.MongoDatabase == "" {
			return &ConfigError{Field: "storage.mongo_database", Message: "mongo database cannot be empty"}
		}
	default:
		return &ConfigError{Field: "storage.backend", Message: fmt.Sprintf("unknown backend %q", c.Storage.Backend)}
	}
	if c.Storage.QueryTimeout <= 0 {
		return &ConfigError{Field: "storage.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Storage.WriteTimeout <= 0 {
		return &ConfigError{Field: "storage.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate server configuration
	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "listen address cannot be empty"}
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return &ConfigError{Field: "server.mode", Message: "mode must be debug, release or test"}
	}
	if c.Server.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"}
	}

	// Validate time configuration
	if c.Time.Timezone != "" && c.Time.Timezone != "Local" {
		if _, err := time.LoadLocation(c.Time.Timezone); err != nil {
			return &ConfigError{Field: "time.timezone", Message: fmt.Sprintf("unknown timezone %q", c.Time.Timezone)}
		}
	}
	if c.Time.DisplayFormat == "" {
		return &ConfigError{Field: "time.display_format", Message: "display format cannot be empty"}
	}

	// Validate targets configuration
	if c.Targets.WeeklyHours <= 0 {
		return &ConfigError{Field: "targets.weekly_hours", Message: "weekly target must be positive"}
	}
	if c.Targets.MonthlyHours <= 0 {
		return &ConfigError{Field: "targets.monthly_hours", Message: "monthly target must be positive"}
	}
	if c.Targets.CompleteDayHours <= 0 || c.Targets.CompleteDayHours > 24 {
		return &ConfigError{Field: "targets.complete_day_hours", Message: "complete day threshold must be between 0 and 24 hours"}
	}
	if c.Targets.WorkdaysPerWeek < 1 || c.Targets.WorkdaysPerWeek > 7 {
		return &ConfigError{Field: "targets.workdays_per_week", Message: "workdays per week must be between 1 and 7"}
	}
	if _, err := ParseClockMinutes(c.Targets.PunctualityCutoff); err != nil {
		return &ConfigError{Field: "targets.punctuality_cutoff", Message: err.Error()}
	}

	// Validate ledger configuration
	if c.Ledger.CheckInPolicy != CheckInPolicyReject && c.Ledger.CheckInPolicy != CheckInPolicyOverwrite {
		return &ConfigError{Field: "ledger.checkin_policy", Message: "policy must be reject or overwrite"}
	}

	// Validate auth configuration
	switch c.Auth.Mode {
	case AuthModeNone:
		if c.Auth.Required {
			return &ConfigError{Field: "auth.required", Message: "authentication cannot be required when auth mode is none"}
		}
	case AuthModeStatic:
		if c.Auth.StaticTokens == "" {
			return &ConfigError{Field: "auth.static_tokens", Message: "static auth needs at least one token"}
		}
	case AuthModeRemote:
		if c.Auth.RemoteURL == "" {
			return &ConfigError{Field: "auth.remote_url", Message: "remote auth needs a verification URL"}
		}
		if c.Auth.RemoteTimeout <= 0 {
			return &ConfigError{Field: "auth.remote_timeout", Message: "remote auth timeout must be positive"}
		}
	default:
		return &ConfigError{Field: "auth.mode", Message: fmt.Sprintf("unknown auth mode %q", c.Auth.Mode)}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	if _, err := logging.ParseLevel(c.Application.LogLevel); err != nil {
		return &ConfigError{Field: "application.log_level", Message: fmt.Sprintf("unknown log level %q", c.Application.LogLevel)}
	}
	if c.Application.DefaultUserID == "" {
		return &ConfigError{Field: "application.default_user_id", Message: "default user id cannot be empty"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
