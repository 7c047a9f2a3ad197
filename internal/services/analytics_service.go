package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"workclock/internal/clock"
	"workclock/internal/domain"
	"workclock/internal/storage"
)

// Window lengths in calendar days.
const (
	WeekDays  = 7
	MonthDays = 30
)

// analyticsServiceImpl implements the AnalyticsService interface
type analyticsServiceImpl struct {
	store    storage.Store
	clock    clock.Clock
	bucketer *clock.Bucketer
	targets  Targets
	locale   string
	logger   *zap.Logger
}

// NewAnalyticsService creates a new AnalyticsService instance
func NewAnalyticsService(store storage.Store, clk clock.Clock, bucketer *clock.Bucketer, opts Options, logger *zap.Logger) AnalyticsService {
	opts = opts.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &analyticsServiceImpl{
		store:    store,
		clock:    clk,
		bucketer: bucketer,
		targets:  opts.Targets,
		locale:   opts.Locale,
		logger:   logger,
	}
}

// ledgerTotals is one pass over a user's entries.
type ledgerTotals struct {
	hours      map[string]float64
	completed  []domain.ClosedEntry
	totalHours float64
	punctual   int
}

func (s *analyticsServiceImpl) collect(ctx context.Context, userID string) (*ledgerTotals, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	entries, err := loadEntries(ctx, s.store, s.logger, userID)
	if err != nil {
		return nil, err
	}

	totals := &ledgerTotals{hours: hoursByDate(entries)}
	all := make([]float64, 0, len(entries))
	for _, e := range entries {
		closed, ok := e.(domain.ClosedEntry)
		if !ok {
			continue
		}
		totals.completed = append(totals.completed, closed)
		all = append(all, closed.TotalHours)
		if s.punctual(closed.CheckIn) {
			totals.punctual++
		}
	}
	totals.totalHours = clock.SumHours(all...)
	return totals, nil
}

// punctual reports whether checkIn is at or before the cutoff on its local day.
func (s *analyticsServiceImpl) punctual(checkIn time.Time) bool {
	local := checkIn.In(s.bucketer.Location())
	year, month, day := local.Date()
	cutoff := time.Date(year, month, day, 0, s.targets.PunctualityCutoff, 0, 0, s.bucketer.Location())
	return !local.After(cutoff)
}

func (t *ledgerTotals) punctualityScore() int {
	return clock.Percent(float64(t.punctual), float64(len(t.completed)))
}

// sum totals the completed hours of days.
func (t *ledgerTotals) sum(days []string) float64 {
	values := make([]float64, 0, len(days))
	for _, d := range days {
		values = append(values, t.hours[d])
	}
	return clock.SumHours(values...)
}

// streak counts consecutive completed days ending today, or yesterday when
// today is not completed yet.
func (s *analyticsServiceImpl) streak(t *ledgerTotals, today string) (int, error) {
	done := make(map[string]bool, len(t.completed))
	for _, c := range t.completed {
		done[c.Date] = true
	}

	day := today
	if !done[day] {
		prev, err := s.bucketer.AddDays(day, -1)
		if err != nil {
			return 0, err
		}
		day = prev
	}

	count := 0
	for done[day] {
		count++
		prev, err := s.bucketer.AddDays(day, -1)
		if err != nil {
			return 0, err
		}
		day = prev
	}
	return count, nil
}

// periods returns the current and previous window of n days ending today.
func (s *analyticsServiceImpl) periods(today string, n int) ([]string, []string, error) {
	current, err := s.bucketer.Window(today, n)
	if err != nil {
		return nil, nil, err
	}
	prevEnd, err := s.bucketer.AddDays(today, -n)
	if err != nil {
		return nil, nil, err
	}
	previous, err := s.bucketer.Window(prevEnd, n)
	if err != nil {
		return nil, nil, err
	}
	return current, previous, nil
}

func compare(current, previous, target float64) PeriodComparison {
	change := clock.SumHours(current, -previous)
	return PeriodComparison{
		Hours:             clock.Round(current, clock.RollupPlaces),
		PreviousHours:     clock.Round(previous, clock.RollupPlaces),
		Change:            clock.Round(change, clock.RollupPlaces),
		ChangePercent:     clock.Percent(change, previous),
		Target:            target,
		CompletionPercent: clock.Percent(current, target),
	}
}

// Snapshot computes the analytics dashboard for userID
func (s *analyticsServiceImpl) Snapshot(ctx context.Context, userID string) (*AnalyticsSnapshot, error) {
	totals, err := s.collect(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	today := s.bucketer.DayKey(now)

	week, prevWeek, err := s.periods(today, WeekDays)
	if err != nil {
		return nil, err
	}
	month, prevMonth, err := s.periods(today, MonthDays)
	if err != nil {
		return nil, err
	}

	weekly := compare(totals.sum(week), totals.sum(prevWeek), s.targets.WeeklyHours)
	monthly := compare(totals.sum(month), totals.sum(prevMonth), s.targets.MonthlyHours)

	series := make([]DailyStat, 0, len(week))
	completeDays := 0
	for _, day := range week {
		wd, err := s.bucketer.Weekday(day)
		if err != nil {
			return nil, err
		}
		hours := totals.hours[day]
		if hours >= s.targets.CompleteDayHours {
			completeDays++
		}
		series = append(series, DailyStat{
			Date:  day,
			Day:   clock.ShortWeekday(s.locale, wd),
			Hours: hours,
		})
	}

	streak, err := s.streak(totals, today)
	if err != nil {
		return nil, err
	}

	return &AnalyticsSnapshot{
		WeeklyHours:       weekly.Hours,
		MonthlyHours:      monthly.Hours,
		Weekly:            weekly,
		Monthly:           monthly,
		DailyStats:        series,
		CompleteDays:      completeDays,
		AverageDailyHours: clock.Round(totals.sum(week)/float64(s.targets.WorkdaysPerWeek), clock.RollupPlaces),
		TotalEntries:      len(totals.completed),
		PunctualityScore:  totals.punctualityScore(),
		CurrentStreak:     streak,
		Achievements: evaluateAchievements(achievementState{
			totalHours: totals.totalHours,
			daysWorked: len(totals.completed),
			streak:     streak,
		}, s.locale, now),
	}, nil
}

// ProfileStats computes lifetime totals for userID
func (s *analyticsServiceImpl) ProfileStats(ctx context.Context, userID string) (*ProfileStats, error) {
	totals, err := s.collect(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	streak, err := s.streak(totals, s.bucketer.DayKey(now))
	if err != nil {
		return nil, err
	}

	days := len(totals.completed)
	stats := &ProfileStats{
		TotalHours:       clock.Round(totals.totalHours, clock.RollupPlaces),
		DaysWorked:       days,
		PunctualityScore: totals.punctualityScore(),
		CurrentStreak:    streak,
		Achievements: evaluateAchievements(achievementState{
			totalHours: totals.totalHours,
			daysWorked: days,
			streak:     streak,
		}, s.locale, now),
	}
	if days > 0 {
		stats.AverageDaily = clock.Round(totals.totalHours/float64(days), clock.RollupPlaces)
	}
	return stats, nil
}
