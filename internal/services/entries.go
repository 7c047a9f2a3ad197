package services

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"workclock/internal/domain"
	"workclock/internal/errors"
	"workclock/internal/storage"
)

// loadEntries scans the user's entry prefix and decodes every record.
// Malformed records, and records owned by another user whose id happens to
// extend userID, are skipped.
func loadEntries(ctx context.Context, store storage.Store, logger *zap.Logger, userID string) ([]domain.TimeEntry, error) {
	records, err := store.GetByPrefix(ctx, domain.EntryPrefix(userID))
	if err != nil {
		return nil, err
	}

	entries := make([]domain.TimeEntry, 0, len(records))
	for _, rec := range records {
		entry, err := domain.DecodeEntry(rec.Value)
		if err != nil {
			logger.Warn("skipping malformed time entry", zap.String("key", rec.Key), zap.Error(err))
			continue
		}
		if entry.Header().UserID != userID {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// loadEntry reads one entry. A missing key yields nil, nil.
func loadEntry(ctx context.Context, store storage.Store, key string) (domain.TimeEntry, error) {
	data, err := store.Get(ctx, key)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	entry, err := domain.DecodeEntry(data)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeStorage, "stored time entry is malformed").
			WithContext("key", key)
	}
	return entry, nil
}

func saveEntry(ctx context.Context, store storage.Store, entry domain.TimeEntry) error {
	data, err := domain.EncodeEntry(entry)
	if err != nil {
		return err
	}
	h := entry.Header()
	return store.Set(ctx, domain.EntryKey(h.UserID, h.Date), data)
}

// sortByDateDesc orders entries most recent first. The sort is stable so
// equal dates keep their key order.
func sortByDateDesc(entries []domain.TimeEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Header().Date > entries[j].Header().Date
	})
}

// hoursByDate maps each day key to the hours of its completed entry.
func hoursByDate(entries []domain.TimeEntry) map[string]float64 {
	hours := make(map[string]float64, len(entries))
	for _, e := range entries {
		if closed, ok := e.(domain.ClosedEntry); ok {
			hours[closed.Date] += closed.TotalHours
		}
	}
	return hours
}
