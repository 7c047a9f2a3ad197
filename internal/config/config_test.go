package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "workclock.db", cfg.Storage.Filename)
	assert.Equal(t, 40.0, cfg.Targets.WeeklyHours)
	assert.Equal(t, 160.0, cfg.Targets.MonthlyHours)
	assert.Equal(t, 7.0, cfg.Targets.CompleteDayHours)
	assert.Equal(t, 5, cfg.Targets.WorkdaysPerWeek)
	assert.Equal(t, CheckInPolicyReject, cfg.Ledger.CheckInPolicy)
	assert.Equal(t, AuthModeNone, cfg.Auth.Mode)
	assert.Equal(t, "es", cfg.Time.Locale)
	assert.Equal(t, "default", cfg.Application.DefaultUserID)
	require.NoError(t, cfg.Validate())

	minutes, err := cfg.PunctualityCutoffMinutes()
	require.NoError(t, err)
	assert.Equal(t, 9*60+30, minutes)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("WC_STORAGE_BACKEND", "MEMORY")
	t.Setenv("WC_TIMEZONE", "Europe/Madrid")
	t.Setenv("WC_TARGET_WEEKLY_HOURS", "37.5")
	t.Setenv("WC_TARGET_WORKDAYS_PER_WEEK", "not-a-number")
	t.Setenv("WC_CHECKIN_POLICY", "Overwrite")
	t.Setenv("WC_DB_QUERY_TIMEOUT", "3s")
	t.Setenv("WC_AUTH_REQUIRED", "true")
	t.Setenv("WC_AUTH_MODE", "static")
	t.Setenv("WC_AUTH_STATIC_TOKENS", "secret:u1")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, "Europe/Madrid", cfg.Time.Timezone)
	assert.Equal(t, 37.5, cfg.Targets.WeeklyHours)
	assert.Equal(t, 5, cfg.Targets.WorkdaysPerWeek, "unparseable values keep the default")
	assert.Equal(t, CheckInPolicyOverwrite, cfg.Ledger.CheckInPolicy)
	assert.Equal(t, 3*time.Second, cfg.Storage.QueryTimeout)
	assert.True(t, cfg.Auth.Required)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"unknown backend", func(c *Config) { c.Storage.Backend = "redis" }, "storage.backend"},
		{"postgres without dsn", func(c *Config) { c.Storage.Backend = BackendPostgres }, "storage.postgres_dsn"},
		{"mongo without uri", func(c *Config) { c.Storage.Backend = BackendMongo }, "storage.mongo_uri"},
		{"empty sqlite dir", func(c *Config) { c.Storage.Dir = "" }, "storage.dir"},
		{"bad server mode", func(c *Config) { c.Server.Mode = "loud" }, "server.mode"},
		{"unknown timezone", func(c *Config) { c.Time.Timezone = "Mars/Olympus_Mons" }, "time.timezone"},
		{"zero weekly target", func(c *Config) { c.Targets.WeeklyHours = 0 }, "targets.weekly_hours"},
		{"eight workdays", func(c *Config) { c.Targets.WorkdaysPerWeek = 8 }, "targets.workdays_per_week"},
		{"bad cutoff", func(c *Config) { c.Targets.PunctualityCutoff = "9.30am" }, "targets.punctuality_cutoff"},
		{"bad policy", func(c *Config) { c.Ledger.CheckInPolicy = "merge" }, "ledger.checkin_policy"},
		{"required without auth", func(c *Config) { c.Auth.Required = true }, "auth.required"},
		{"static without tokens", func(c *Config) { c.Auth.Mode = AuthModeStatic }, "auth.static_tokens"},
		{"remote without url", func(c *Config) { c.Auth.Mode = AuthModeRemote }, "auth.remote_url"},
		{"bad log level", func(c *Config) { c.Application.LogLevel = "chatty" }, "application.log_level"},
		{"empty default user", func(c *Config) { c.Application.DefaultUserID = "" }, "application.default_user_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			var configErr *ConfigError
			require.ErrorAs(t, err, &configErr)
			assert.Equal(t, tt.field, configErr.Field)
		})
	}
}

func TestLoadWithOverrides(t *testing.T) {
	t.Setenv("WC_CHECKIN_POLICY", "bogus")

	backend := BackendMemory
	policy := CheckInPolicyOverwrite
	locale := "en"
	addr := ":9090"

	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{
		Backend:       &backend,
		CheckInPolicy: &policy,
		Locale:        &locale,
		Addr:          &addr,
	})

	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, CheckInPolicyOverwrite, cfg.Ledger.CheckInPolicy)
	assert.Equal(t, "en", cfg.Time.Locale)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	t.Setenv("WC_CHECKIN_POLICY", "bogus")

	_, err := NewLoader().Load()

	assert.Error(t, err)
}

func TestParseClockMinutes(t *testing.T) {
	minutes, err := ParseClockMinutes("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)

	minutes, err = ParseClockMinutes(" 23:59 ")
	require.NoError(t, err)
	assert.Equal(t, 1439, minutes)

	_, err = ParseClockMinutes("24:00")
	assert.Error(t, err)
}

func TestParseWithFallback(t *testing.T) {
	assert.Equal(t, 2*time.Second, ParseDurationWithFallback("2s", time.Second))
	assert.Equal(t, time.Second, ParseDurationWithFallback("soon", time.Second))
	assert.Equal(t, 3, ParseIntWithFallback("3", 1))
	assert.Equal(t, 1.5, ParseFloatWithFallback("1.5", 2))
	assert.Equal(t, 2.0, ParseFloatWithFallback("x", 2))
	assert.True(t, ParseBoolWithFallback("yes", true))
	assert.Equal(t, uint32(0700), ParseUint32WithFallback("700", 8, 0755))
}
