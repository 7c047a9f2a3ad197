package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"workclock/internal/config"
	"workclock/internal/validation"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	loader *config.Loader
	config *config.Config
	out    io.Writer
	newApp appFactory
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(loader *config.Loader, out io.Writer) *RootCommand {
	return newRootCommand(loader, out, NewAppFromConfig)
}

func newRootCommand(loader *config.Loader, out io.Writer, factory appFactory) *RootCommand {
	root := &RootCommand{
		loader: loader,
		out:    out,
		newApp: factory,
	}

	root.cmd = &cobra.Command{
		Use:   "workclock",
		Short: "Employee check-in/check-out time tracking",
		Long: `workclock records one check-in and one check-out per employee per day and
derives history, calendar and analytics views from them.

EXAMPLES:
  workclock serve                                  # Run the HTTP API
  workclock checkin --user ana                     # Open today's entry
  workclock checkout --user ana                    # Close today's entry
  workclock today --user ana                       # Show today's entry
  workclock history --user ana --limit 10          # Latest entries and summary
  workclock calendar --start 2024-01-01 --end 2024-01-31 --fill
  workclock analytics                              # Weekly and monthly rollups

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

  Storage:
    WC_STORAGE_BACKEND                     memory, sqlite, postgres or mongo (default: sqlite)
    WC_DB_DIR / WC_DB_FILENAME             SQLite location (default: ~/.workclock/workclock.db)
    WC_POSTGRES_DSN                        Postgres connection string
    WC_MONGO_URI                           MongoDB connection string

  Time:
    WC_TIMEZONE                            Zone days are bucketed in (default: Local)
    WC_LOCALE                              Weekday label locale, es or en (default: es)

  Server:
    WC_HTTP_ADDR                           Listen address (default: :8080)
    WC_AUTH_MODE                           none, static or remote (default: none)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig()
		},
	}
	root.cmd.SetOut(out)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// ExecuteContext runs the root command with ctx available to subcommands
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs overrides the process arguments
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Storage configuration
	flags.String("backend", "", "Storage backend (overrides WC_STORAGE_BACKEND)")
	flags.String("db-dir", "", "Database directory (overrides WC_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides WC_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Storage query timeout (overrides WC_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Storage write timeout (overrides WC_DB_WRITE_TIMEOUT)")
	flags.String("postgres-dsn", "", "Postgres connection string (overrides WC_POSTGRES_DSN)")
	flags.String("mongo-uri", "", "MongoDB connection string (overrides WC_MONGO_URI)")

	// Server configuration
	flags.String("addr", "", "HTTP listen address (overrides WC_HTTP_ADDR)")

	// Time configuration
	flags.String("timezone", "", "Timezone days are bucketed in (overrides WC_TIMEZONE)")
	flags.String("locale", "", "Weekday label locale (overrides WC_LOCALE)")
	flags.String("time-format", "", "Time display format (overrides WC_TIME_DISPLAY_FORMAT)")

	// Ledger configuration
	flags.String("checkin-policy", "", "Second check-in behaviour, reject or overwrite (overrides WC_CHECKIN_POLICY)")

	// Auth configuration
	flags.String("auth-mode", "", "Authentication mode (overrides WC_AUTH_MODE)")

	// Application configuration
	flags.String("env", "", "Environment name (overrides WC_ENV)")
	flags.String("log-level", "", "Log level (overrides WC_LOG_LEVEL)")
	flags.Duration("app-timeout", 0, "Per-command timeout (overrides WC_APP_TIMEOUT)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long:  "Serve the workclock HTTP API until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(app *App) error {
				return NewServeCommand(app).Execute(cmd.Context())
			})
		},
	}

	checkInCmd := &cobra.Command{
		Use:   "checkin",
		Short: "Check in for today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withTimeout(cmd, func(ctx context.Context, app *App) error {
				return NewCheckInCommand(app).Execute(ctx, userFlag(cmd))
			})
		},
	}

	checkOutCmd := &cobra.Command{
		Use:   "checkout",
		Short: "Check out for today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withTimeout(cmd, func(ctx context.Context, app *App) error {
				return NewCheckOutCommand(app).Execute(ctx, userFlag(cmd))
			})
		},
	}

	todayCmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withTimeout(cmd, func(ctx context.Context, app *App) error {
				return NewTodayCommand(app).Execute(ctx, userFlag(cmd))
			})
		},
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List entries, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return r.withTimeout(cmd, func(ctx context.Context, app *App) error {
				return NewHistoryCommand(app).Execute(ctx, userFlag(cmd), limit)
			})
		},
	}
	historyCmd.Flags().Int("limit", 0, "Show at most this many entries")

	calendarCmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show the calendar projection of a date range",
		Long: `Show one line per day of a date range.

Bounds are YYYY-MM-DD days or RFC 3339 instants. Either bound may be left
open. --fill lists days without an entry as absent and needs both bounds.

Examples:
  workclock calendar --start 2024-01-01 --end 2024-01-31
  workclock calendar --start 2024-01-01 --end 2024-01-31 --fill`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")
			fill, _ := cmd.Flags().GetBool("fill")
			query := validation.CalendarQuery{UserID: userFlag(cmd), Start: start, End: end, Fill: fill}
			return r.withTimeout(cmd, func(ctx context.Context, app *App) error {
				return NewCalendarCommand(app).Execute(ctx, query)
			})
		},
	}
	calendarCmd.Flags().String("start", "", "First day of the range")
	calendarCmd.Flags().String("end", "", "Last day of the range")
	calendarCmd.Flags().Bool("fill", false, "Include days without an entry")

	analyticsCmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show weekly and monthly rollups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withTimeout(cmd, func(ctx context.Context, app *App) error {
				return NewAnalyticsCommand(app).Execute(ctx, userFlag(cmd))
			})
		},
	}

	for _, c := range []*cobra.Command{checkInCmd, checkOutCmd, todayCmd, historyCmd, calendarCmd, analyticsCmd} {
		c.Flags().String("user", "", "User id (defaults to WC_DEFAULT_USER_ID)")
	}

	r.cmd.AddCommand(
		serveCmd,
		checkInCmd,
		checkOutCmd,
		todayCmd,
		historyCmd,
		calendarCmd,
		analyticsCmd,
	)
}

func userFlag(cmd *cobra.Command) string {
	user, _ := cmd.Flags().GetString("user")
	return user
}

// withApp builds the App for one run and releases it afterwards
func (r *RootCommand) withApp(cmd *cobra.Command, run func(app *App) error) error {
	app, closeApp, err := r.newApp(cmd.Context(), r.config, r.out)
	if err != nil {
		return err
	}
	defer closeApp()
	return run(app)
}

// withTimeout is withApp under the configured per-command deadline
func (r *RootCommand) withTimeout(cmd *cobra.Command, run func(ctx context.Context, app *App) error) error {
	return r.withApp(cmd, func(app *App) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), app.timeout())
		defer cancel()
		return run(ctx, app)
	})
}

// loadConfig loads configuration with the flags that were set on the command line
func (r *RootCommand) loadConfig() error {
	if r.loader == nil {
		return fmt.Errorf("configuration not initialized")
	}

	cfg, err := r.loader.LoadWithOverrides(r.overridesFromFlags())
	if err != nil {
		return err
	}
	r.config = cfg
	return nil
}

// overridesFromFlags collects the global flags that were explicitly set
func (r *RootCommand) overridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	durationFlag := func(name string) *time.Duration {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetDuration(name)
		return &v
	}

	// Storage configuration
	overrides.Backend = stringFlag("backend")
	overrides.DBDir = stringFlag("db-dir")
	overrides.DBFilename = stringFlag("db-filename")
	overrides.DBQueryTimeout = durationFlag("db-query-timeout")
	overrides.DBWriteTimeout = durationFlag("db-write-timeout")
	overrides.PostgresDSN = stringFlag("postgres-dsn")
	overrides.MongoURI = stringFlag("mongo-uri")

	// Server configuration
	overrides.Addr = stringFlag("addr")

	// Time configuration
	overrides.Timezone = stringFlag("timezone")
	overrides.Locale = stringFlag("locale")
	overrides.TimeFormat = stringFlag("time-format")

	// Ledger configuration
	overrides.CheckInPolicy = stringFlag("checkin-policy")

	// Auth configuration
	overrides.AuthMode = stringFlag("auth-mode")

	// Application configuration
	overrides.Env = stringFlag("env")
	overrides.LogLevel = stringFlag("log-level")
	overrides.Timeout = durationFlag("app-timeout")

	return overrides
}
