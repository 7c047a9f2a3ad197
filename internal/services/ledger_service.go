package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"workclock/internal/clock"
	"workclock/internal/domain"
	"workclock/internal/errors"
	"workclock/internal/storage"
)

// ledgerServiceImpl implements the LedgerService interface
type ledgerServiceImpl struct {
	store    storage.Store
	clock    clock.Clock
	bucketer *clock.Bucketer
	policy   CheckInPolicy
	targets  Targets
	logger   *zap.Logger
	locks    *keyLocks
}

// NewLedgerService creates a new LedgerService instance
func NewLedgerService(store storage.Store, clk clock.Clock, bucketer *clock.Bucketer, opts Options, logger *zap.Logger) LedgerService {
	opts = opts.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ledgerServiceImpl{
		store:    store,
		clock:    clk,
		bucketer: bucketer,
		policy:   opts.Policy,
		targets:  opts.Targets,
		logger:   logger,
		locks:    newKeyLocks(),
	}
}

// now is truncated to milliseconds, the precision entries are persisted with.
func (s *ledgerServiceImpl) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Millisecond)
}

// CheckIn opens today's entry for userID
func (s *ledgerServiceImpl) CheckIn(ctx context.Context, userID string) (domain.TimeEntry, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}

	now := s.now()
	today := s.bucketer.DayKey(now)
	key := domain.EntryKey(userID, today)

	unlock := s.locks.Lock(key)
	defer unlock()

	existing, err := loadEntry(ctx, s.store, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if s.policy != CheckInOverwrite {
			return nil, errors.NewAlreadyCheckedInError(userID, today)
		}
		s.logger.Warn("overwriting existing time entry",
			zap.String("user_id", userID),
			zap.String("date", today),
			zap.String("status", string(existing.Status())))
	}

	entry := domain.NewOpenEntry(userID, today, now)
	if err := saveEntry(ctx, s.store, entry); err != nil {
		return nil, err
	}

	s.logger.Debug("checked in", zap.String("user_id", userID), zap.String("date", today))
	return entry, nil
}

// CheckOut closes today's open entry for userID
func (s *ledgerServiceImpl) CheckOut(ctx context.Context, userID string) (domain.TimeEntry, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}

	now := s.now()
	today := s.bucketer.DayKey(now)
	key := domain.EntryKey(userID, today)

	unlock := s.locks.Lock(key)
	defer unlock()

	existing, err := loadEntry(ctx, s.store, key)
	if err != nil {
		return nil, err
	}

	var open domain.OpenEntry
	switch e := existing.(type) {
	case nil:
		return nil, errors.NewNoCheckInError(userID, today)
	case domain.ClosedEntry:
		return nil, errors.NewAlreadyCheckedOutError(userID, today)
	case domain.OpenEntry:
		open = e
	}

	closed, err := open.Close(now)
	if err != nil {
		return nil, err
	}
	if err := saveEntry(ctx, s.store, closed); err != nil {
		return nil, err
	}

	s.logger.Debug("checked out",
		zap.String("user_id", userID),
		zap.String("date", today),
		zap.Float64("total_hours", closed.TotalHours))
	return closed, nil
}

// GetToday returns today's entry for userID, or nil
func (s *ledgerServiceImpl) GetToday(ctx context.Context, userID string) (domain.TimeEntry, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	today := s.bucketer.Today(s.clock)
	return loadEntry(ctx, s.store, domain.EntryKey(userID, today))
}

// GetHistory returns all entries for userID, most recent first
func (s *ledgerServiceImpl) GetHistory(ctx context.Context, userID string) ([]domain.TimeEntry, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	entries, err := loadEntries(ctx, s.store, s.logger, userID)
	if err != nil {
		return nil, err
	}
	sortByDateDesc(entries)
	return entries, nil
}

// SummarizeHistory totals completed entries the way the history page shows
// them. Compliance is measured against one nominal week.
func (s *ledgerServiceImpl) SummarizeHistory(entries []domain.TimeEntry) HistorySummary {
	hours := make([]float64, 0, len(entries))
	for _, e := range entries {
		if closed, ok := e.(domain.ClosedEntry); ok {
			hours = append(hours, closed.TotalHours)
		}
	}

	total := clock.SumHours(hours...)
	summary := HistorySummary{
		TotalHours:   clock.Round(total, clock.RollupPlaces),
		CompleteDays: len(hours),
		Compliance:   clock.Percent(total, s.targets.WeeklyHours),
	}
	if len(hours) > 0 {
		summary.AverageDaily = clock.Round(total/float64(len(hours)), clock.RollupPlaces)
	}
	return summary
}

func requireUserID(userID string) error {
	if userID == "" {
		return errors.NewValidationError("userId is required", nil)
	}
	return nil
}
