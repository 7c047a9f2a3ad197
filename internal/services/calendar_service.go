package services

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"workclock/internal/clock"
	"workclock/internal/domain"
	"workclock/internal/errors"
	"workclock/internal/storage"
)

// MaxFillDays bounds how many days FillRange synthesizes.
const MaxFillDays = 366

// calendarServiceImpl implements the CalendarService interface
type calendarServiceImpl struct {
	store    storage.Store
	bucketer *clock.Bucketer
	logger   *zap.Logger
}

// NewCalendarService creates a new CalendarService instance
func NewCalendarService(store storage.Store, bucketer *clock.Bucketer, logger *zap.Logger) CalendarService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &calendarServiceImpl{store: store, bucketer: bucketer, logger: logger}
}

// CalendarView returns the recorded days of userID within r, oldest first.
// Days without an entry are not synthesized here; see FillRange.
func (s *calendarServiceImpl) CalendarView(ctx context.Context, userID string, r DateRange) ([]domain.CalendarDay, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	if err := s.validateRange(r); err != nil {
		return nil, err
	}

	entries, err := loadEntries(ctx, s.store, s.logger, userID)
	if err != nil {
		return nil, err
	}

	views := make([]domain.CalendarDay, 0, len(entries))
	for _, e := range entries {
		if r.Contains(e.Header().Date) {
			views = append(views, domain.CalendarDayFor(e))
		}
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Date < views[j].Date
	})
	return views, nil
}

// FillRange returns one view per day of r, oldest first. Days missing from
// views are absent.
func (s *calendarServiceImpl) FillRange(views []domain.CalendarDay, r DateRange) ([]domain.CalendarDay, error) {
	if !r.Bounded() {
		return nil, errors.NewValidationError("filling a calendar range requires both start and end", nil)
	}
	if err := s.validateRange(r); err != nil {
		return nil, err
	}

	days, err := s.bucketer.DaysBetween(r.Start, r.End)
	if err != nil {
		return nil, err
	}
	if len(days) > MaxFillDays {
		return nil, errors.NewValidationError("calendar range is too long to fill", nil).
			WithContext("days", len(days)).
			WithContext("max_days", MaxFillDays)
	}

	byDate := make(map[string]domain.CalendarDay, len(views))
	for _, v := range views {
		byDate[v.Date] = v
	}

	filled := make([]domain.CalendarDay, len(days))
	for i, day := range days {
		if v, ok := byDate[day]; ok {
			filled[i] = v
			continue
		}
		filled[i] = domain.AbsentDay(day)
	}
	return filled, nil
}

// Stats summarizes views. TotalDays counts the days of r when it is bounded
// and the views themselves otherwise.
func (s *calendarServiceImpl) Stats(views []domain.CalendarDay, r DateRange) (domain.CalendarStats, error) {
	var stats domain.CalendarStats

	if r.Bounded() {
		if err := s.validateRange(r); err != nil {
			return stats, err
		}
		days, err := s.bucketer.DaysBetween(r.Start, r.End)
		if err != nil {
			return stats, err
		}
		stats.TotalDays = len(days)
	} else {
		stats.TotalDays = len(views)
	}

	hours := make([]float64, 0, len(views))
	for _, v := range views {
		switch v.Status {
		case domain.DayCompleted:
			stats.WorkDays++
			stats.CompleteDays++
			hours = append(hours, v.Hours())
		case domain.DayIncomplete:
			stats.WorkDays++
		}
	}

	total := clock.SumHours(hours...)
	stats.TotalHours = clock.Round(total, clock.RollupPlaces)
	if stats.CompleteDays > 0 {
		stats.AverageHours = clock.Round(total/float64(stats.CompleteDays), clock.RollupPlaces)
	}
	return stats, nil
}

func (s *calendarServiceImpl) validateRange(r DateRange) error {
	for field, key := range map[string]string{"start": r.Start, "end": r.End} {
		if key != "" && !s.bucketer.IsDayKey(key) {
			return errors.NewInvalidInputError(field, key, "expected YYYY-MM-DD")
		}
	}
	if r.Bounded() && r.Start > r.End {
		return errors.NewValidationError("start must not be after end", nil).
			WithContext("start", r.Start).
			WithContext("end", r.End)
	}
	return nil
}
