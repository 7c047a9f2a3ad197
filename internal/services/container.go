package services

import (
	"go.uber.org/zap"

	"workclock/internal/clock"
	"workclock/internal/storage"
)

// Targets are the goals rollups are measured against.
type Targets struct {
	WeeklyHours      float64
	MonthlyHours     float64
	CompleteDayHours float64
	WorkdaysPerWeek  int
	// PunctualityCutoff is minutes after local midnight.
	PunctualityCutoff int
}

// DefaultTargets returns a 40h week, a 160h month, 7h complete days, five
// workdays and a 09:30 punctuality cutoff.
func DefaultTargets() Targets {
	return Targets{
		WeeklyHours:       40,
		MonthlyHours:      160,
		CompleteDayHours:  7,
		WorkdaysPerWeek:   5,
		PunctualityCutoff: 9*60 + 30,
	}
}

// Options configures the services. Zero fields take their defaults.
type Options struct {
	Policy  CheckInPolicy
	Targets Targets
	Locale  string
}

func (o Options) withDefaults() Options {
	defaults := DefaultTargets()
	if o.Policy == "" {
		o.Policy = CheckInReject
	}
	if o.Targets.WeeklyHours <= 0 {
		o.Targets.WeeklyHours = defaults.WeeklyHours
	}
	if o.Targets.MonthlyHours <= 0 {
		o.Targets.MonthlyHours = defaults.MonthlyHours
	}
	if o.Targets.CompleteDayHours <= 0 {
		o.Targets.CompleteDayHours = defaults.CompleteDayHours
	}
	if o.Targets.WorkdaysPerWeek <= 0 {
		o.Targets.WorkdaysPerWeek = defaults.WorkdaysPerWeek
	}
	if o.Targets.PunctualityCutoff <= 0 {
		o.Targets.PunctualityCutoff = defaults.PunctualityCutoff
	}
	if !clock.SupportedLocale(o.Locale) {
		o.Locale = clock.DefaultLocale
	}
	return o
}

// NewServiceContainer wires every service onto one store
func NewServiceContainer(store storage.Store, clk clock.Clock, bucketer *clock.Bucketer, opts Options, logger *zap.Logger) *ServiceContainer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ServiceContainer{
		Ledger:    NewLedgerService(store, clk, bucketer, opts, logger.Named("ledger")),
		Calendar:  NewCalendarService(store, bucketer, logger.Named("calendar")),
		Analytics: NewAnalyticsService(store, clk, bucketer, opts, logger.Named("analytics")),
		UserData:  NewUserDataService(store, logger.Named("userdata")),
	}
}
