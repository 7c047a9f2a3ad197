package services

import (
	"context"
	"encoding/json"
	"time"

	"workclock/internal/domain"
)

// CheckInPolicy decides what a second check-in on the same day does.
type CheckInPolicy string

const (
	// CheckInReject refuses the second check-in and keeps the first entry.
	CheckInReject CheckInPolicy = "reject"
	// CheckInOverwrite replaces the existing entry with a fresh open one.
	CheckInOverwrite CheckInPolicy = "overwrite"
)

// DateRange is an inclusive range of day keys. An empty bound is open.
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// Bounded reports whether both ends are set.
func (r DateRange) Bounded() bool {
	return r.Start != "" && r.End != ""
}

// Contains reports whether date falls inside the range. Day keys compare
// lexically in chronological order.
func (r DateRange) Contains(date string) bool {
	if r.Start != "" && date < r.Start {
		return false
	}
	if r.End != "" && date > r.End {
		return false
	}
	return true
}

// HistorySummary condenses a list of entries for the history view.
type HistorySummary struct {
	TotalHours   float64 `json:"totalHours"`
	CompleteDays int     `json:"completeDays"`
	AverageDaily float64 `json:"averageDaily"`
	Compliance   int     `json:"compliance"`
}

// DailyStat is one point of the seven-day chart series.
type DailyStat struct {
	Date  string  `json:"date"`
	Day   string  `json:"day"`
	Hours float64 `json:"hours"`
}

// Achievement is a badge derived from the current aggregates.
type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	EarnedDate  time.Time `json:"earnedDate"`
}

// PeriodComparison compares a window with the window of equal length
// immediately before it.
type PeriodComparison struct {
	Hours             float64 `json:"hours"`
	PreviousHours     float64 `json:"previousHours"`
	Change            float64 `json:"change"`
	ChangePercent     int     `json:"changePercent"`
	Target            float64 `json:"target"`
	CompletionPercent int     `json:"completionPercent"`
}

// AnalyticsSnapshot is the aggregate view behind the analytics dashboard.
type AnalyticsSnapshot struct {
	WeeklyHours       float64          `json:"weeklyHours"`
	MonthlyHours      float64          `json:"monthlyHours"`
	Weekly            PeriodComparison `json:"weekly"`
	Monthly           PeriodComparison `json:"monthly"`
	DailyStats        []DailyStat      `json:"dailyStats"`
	CompleteDays      int              `json:"completeDays"`
	AverageDailyHours float64          `json:"averageDailyHours"`
	TotalEntries      int              `json:"totalEntries"`
	PunctualityScore  int              `json:"punctualityScore"`
	CurrentStreak     int              `json:"currentStreak"`
	Achievements      []Achievement    `json:"achievements"`
}

// ProfileStats is the lifetime summary shown on the profile page.
type ProfileStats struct {
	TotalHours       float64       `json:"totalHours"`
	DaysWorked       int           `json:"daysWorked"`
	AverageDaily     float64       `json:"averageDaily"`
	PunctualityScore int           `json:"punctualityScore"`
	CurrentStreak    int           `json:"currentStreak"`
	Achievements     []Achievement `json:"achievements"`
}

// LedgerService records check-ins and check-outs, one entry per user per day
type LedgerService interface {
	CheckIn(ctx context.Context, userID string) (domain.TimeEntry, error)
	CheckOut(ctx context.Context, userID string) (domain.TimeEntry, error)

	// GetToday returns nil without error when there is no entry today.
	GetToday(ctx context.Context, userID string) (domain.TimeEntry, error)
	// GetHistory returns every entry of the user, most recent first.
	GetHistory(ctx context.Context, userID string) ([]domain.TimeEntry, error)

	SummarizeHistory(entries []domain.TimeEntry) HistorySummary
}

// CalendarService projects entries onto calendar days
type CalendarService interface {
	// CalendarView returns the days in r that have an entry, oldest first.
	CalendarView(ctx context.Context, userID string, r DateRange) ([]domain.CalendarDay, error)
	// FillRange returns one view per day of r, absent where views has none.
	FillRange(views []domain.CalendarDay, r DateRange) ([]domain.CalendarDay, error)
	Stats(views []domain.CalendarDay, r DateRange) (domain.CalendarStats, error)
}

// AnalyticsService computes rollups over a user's entries
type AnalyticsService interface {
	Snapshot(ctx context.Context, userID string) (*AnalyticsSnapshot, error)
	ProfileStats(ctx context.Context, userID string) (*ProfileStats, error)
}

// UserDataService stores the opaque settings and profile documents
type UserDataService interface {
	// GetSettings returns nil without error when nothing is stored.
	GetSettings(ctx context.Context, userID string) (json.RawMessage, error)
	SaveSettings(ctx context.Context, userID string, settings json.RawMessage) error
	// GetProfile returns nil without error when nothing is stored.
	GetProfile(ctx context.Context, userID string) (json.RawMessage, error)
	SaveProfile(ctx context.Context, userID string, profile json.RawMessage) error
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	Ledger    LedgerService
	Calendar  CalendarService
	Analytics AnalyticsService
	UserData  UserDataService
}
