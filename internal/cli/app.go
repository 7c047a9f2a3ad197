package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"workclock/internal/api"
	"workclock/internal/clock"
	"workclock/internal/config"
	"workclock/internal/logging"
	"workclock/internal/services"
	"workclock/internal/storage"
	"workclock/internal/validation"
)

// App carries what the command handlers need
type App struct {
	businessAPI api.BusinessAPI
	config      *config.Config
	clock       clock.Clock
	location    *time.Location
	out         io.Writer
	logger      *zap.Logger
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(businessAPI api.BusinessAPI, cfg *config.Config, clk clock.Clock, loc *time.Location, out io.Writer, logger *zap.Logger) *App {
	if loc == nil {
		loc = time.Local
	}
	return &App{
		businessAPI: businessAPI,
		config:      cfg,
		clock:       clk,
		location:    loc,
		out:         out,
		logger:      logging.OrNop(logger),
	}
}

// appFactory builds an App for one command run. The returned func releases
// whatever the App holds open.
type appFactory func(ctx context.Context, cfg *config.Config, out io.Writer) (*App, func() error, error)

// NewAppFromConfig wires the storage backend, the services and the business
// API selected by cfg.
func NewAppFromConfig(ctx context.Context, cfg *config.Config, out io.Writer) (*App, func() error, error) {
	logger, err := logging.New(cfg.Application.Env, cfg.Application.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	bucketer, err := clock.NewBucketerForZone(cfg.Time.Timezone)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load timezone: %w", err)
	}

	opts, err := serviceOptions(cfg)
	if err != nil {
		return nil, nil, err
	}

	store, err := config.CreateStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("storage ready", zap.String("backend", cfg.Storage.Backend))

	clk := clock.SystemClock{}
	container := services.NewServiceContainer(store, clk, bucketer, opts, logger)
	businessAPI := api.NewBusinessAPI(container, validation.NewValidator(bucketer), cfg.Application.DefaultUserID, logger.Named("api"))

	app := NewApp(businessAPI, cfg, clk, bucketer.Location(), out, logger)
	return app, closer(store, logger), nil
}

func closer(store storage.Store, logger *zap.Logger) func() error {
	return func() error {
		_ = logger.Sync()
		return store.Close()
	}
}

// serviceOptions maps configuration onto the service options.
func serviceOptions(cfg *config.Config) (services.Options, error) {
	cutoff, err := cfg.PunctualityCutoffMinutes()
	if err != nil {
		return services.Options{}, &config.ConfigError{Field: "targets.punctuality_cutoff", Message: err.Error()}
	}
	return services.Options{
		Policy: services.CheckInPolicy(cfg.Ledger.CheckInPolicy),
		Targets: services.Targets{
			WeeklyHours:       cfg.Targets.WeeklyHours,
			MonthlyHours:      cfg.Targets.MonthlyHours,
			CompleteDayHours:  cfg.Targets.CompleteDayHours,
			WorkdaysPerWeek:   cfg.Targets.WorkdaysPerWeek,
			PunctualityCutoff: cutoff,
		},
		Locale: cfg.Time.Locale,
	}, nil
}

// printf writes to the command output
func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// timeout returns the per-command deadline
func (a *App) timeout() time.Duration {
	if a.config != nil && a.config.Application.Timeout > 0 {
		return a.config.Application.Timeout
	}
	return 60 * time.Second
}

// displayFormat returns the layout used for instants
func (a *App) displayFormat() string {
	if a.config != nil && a.config.Time.DisplayFormat != "" {
		return a.config.Time.DisplayFormat
	}
	return "2006-01-02 15:04"
}
