package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with environment variables
// 3. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(l.config, overrides)
	}

	// Validate once, after flags, so a flag can repair a bad environment value
	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Storage overrides
	Backend        *string
	DBDir          *string
	DBFilename     *string
	DBQueryTimeout *time.Duration
	DBWriteTimeout *time.Duration
	PostgresDSN    *string
	MongoURI       *string

	// Server overrides
	Addr *string

	// Time overrides
	Timezone   *string
	Locale     *string
	TimeFormat *string

	// Ledger overrides
	CheckInPolicy *string

	// Auth overrides
	AuthMode *string

	// Application overrides
	Env      *string
	LogLevel *string
	Timeout  *time.Duration
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	// Storage overrides
	if overrides.Backend != nil {
		config.Storage.Backend = strings.ToLower(*overrides.Backend)
	}
	if overrides.DBDir != nil {
		config.Storage.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Storage.Filename = *overrides.DBFilename
	}
	if overrides.DBQueryTimeout != nil {
		config.Storage.QueryTimeout = *overrides.DBQueryTimeout
	}
	if overrides.DBWriteTimeout != nil {
		config.Storage.WriteTimeout = *overrides.DBWriteTimeout
	}
	if overrides.PostgresDSN != nil {
		config.Storage.PostgresDSN = *overrides.PostgresDSN
	}
	if overrides.MongoURI != nil {
		config.Storage.MongoURI = *overrides.MongoURI
	}

	// Server overrides
	if overrides.Addr != nil {
		config.Server.Addr = *overrides.Addr
	}

	// Time overrides
	if overrides.Timezone != nil {
		config.Time.Timezone = *overrides.Timezone
	}
	if overrides.Locale != nil {
		config.Time.Locale = *overrides.Locale
	}
	if overrides.TimeFormat != nil {
		config.Time.DisplayFormat = *overrides.TimeFormat
	}

	// Ledger overrides
	if overrides.CheckInPolicy != nil {
		config.Ledger.CheckInPolicy = strings.ToLower(*overrides.CheckInPolicy)
	}

	// Auth overrides
	if overrides.AuthMode != nil {
		config.Auth.Mode = strings.ToLower(*overrides.AuthMode)
	}

	// Application overrides
	if overrides.Env != nil {
		config.Application.Env = *overrides.Env
	}
	if overrides.LogLevel != nil {
		config.Application.LogLevel = *overrides.LogLevel
	}
	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseFloatWithFallback parses a float string with a fallback value
func ParseFloatWithFallback(s string, fallback float64) float64 {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}

// ParseClockMinutes parses an "HH:MM" wall-clock time into minutes after
// midnight.
func ParseClockMinutes(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}
