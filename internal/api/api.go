package api

import (
	"context"
	"encoding/json"

	"workclock/internal/domain"
	"workclock/internal/services"
	"workclock/internal/validation"
)

// HistoryView is a user's full history with its summary.
type HistoryView struct {
	Entries []domain.TimeEntry      `json:"entries"`
	Summary services.HistorySummary `json:"summary"`
}

// CalendarView is the calendar projection of a range with its stats.
type CalendarView struct {
	Range   services.DateRange   `json:"range"`
	Entries []domain.CalendarDay `json:"entries"`
	Stats   domain.CalendarStats `json:"stats"`
}

// BusinessAPI is the use-case surface shared by the HTTP server and the CLI.
// An empty userID resolves to the configured default user.
type BusinessAPI interface {
	// RecordAction validates req and dispatches it to CheckIn or CheckOut.
	RecordAction(ctx context.Context, req validation.TimeEntryRequest) (domain.TimeEntry, error)
	CheckIn(ctx context.Context, userID string) (domain.TimeEntry, error)
	CheckOut(ctx context.Context, userID string) (domain.TimeEntry, error)

	// Today returns nil without error when the user has no entry today.
	Today(ctx context.Context, userID string) (domain.TimeEntry, error)
	History(ctx context.Context, userID string) (*HistoryView, error)
	Calendar(ctx context.Context, query validation.CalendarQuery) (*CalendarView, error)

	Analytics(ctx context.Context, userID string) (*services.AnalyticsSnapshot, error)
	ProfileStats(ctx context.Context, userID string) (*services.ProfileStats, error)

	Settings(ctx context.Context, userID string) (json.RawMessage, error)
	SaveSettings(ctx context.Context, req validation.SettingsRequest) error
	Profile(ctx context.Context, userID string) (json.RawMessage, error)
	SaveProfile(ctx context.Context, req validation.ProfileRequest) error

	// ResolveUserID applies the default user and validates the result.
	ResolveUserID(userID string) (string, error)
}
