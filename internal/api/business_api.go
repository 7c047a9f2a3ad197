package api

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"workclock/internal/domain"
	"workclock/internal/errors"
	"workclock/internal/services"
	"workclock/internal/validation"
)

// businessAPIImpl implements BusinessAPI on top of the service container
type businessAPIImpl struct {
	services      *services.ServiceContainer
	validator     *validation.Validator
	defaultUserID string
	logger        *zap.Logger
}

// NewBusinessAPI creates a new BusinessAPI instance
func NewBusinessAPI(container *services.ServiceContainer, validator *validation.Validator, defaultUserID string, logger *zap.Logger) BusinessAPI {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &businessAPIImpl{
		services:      container,
		validator:     validator,
		defaultUserID: defaultUserID,
		logger:        logger,
	}
}

func (b *businessAPIImpl) ResolveUserID(userID string) (string, error) {
	if userID == "" {
		userID = b.defaultUserID
	}
	if !b.validator.IsValidUserID(userID) {
		return "", errors.NewInvalidInputError("userId", userID, "user ids use letters, digits and @.:+-_")
	}
	return userID, nil
}

func (b *businessAPIImpl) RecordAction(ctx context.Context, req validation.TimeEntryRequest) (domain.TimeEntry, error) {
	if err := b.validator.Check(req); err != nil {
		return nil, err
	}
	b.logger.Debug("recording time entry action", zap.String("action", req.Action), zap.String("user_id", req.UserID))
	switch req.Action {
	case validation.ActionCheckIn:
		return b.CheckIn(ctx, req.UserID)
	default:
		return b.CheckOut(ctx, req.UserID)
	}
}

func (b *businessAPIImpl) CheckIn(ctx context.Context, userID string) (domain.TimeEntry, error) {
	userID, err := b.ResolveUserID(userID)
	if err != nil {
		return nil, err
	}
	return b.services.Ledger.CheckIn(ctx, userID)
}

func (b *businessAPIImpl) CheckOut(ctx context.Context, userID string) (domain.TimeEntry, error) {
	userID, err := b.ResolveUserID(userID)
	if err != nil {
		return nil, err
	}
	return b.services.Ledger.CheckOut(ctx, userID)
}

func (b *businessAPIImpl) Today(ctx context.Context, userID string) (domain.TimeEntry, error) {
	userID, err := b.ResolveUserID(userID)
	if err != nil {
		return nil, err
	}
	return b.services.Ledger.GetToday(ctx, userID)
}

func (b *businessAPIImpl) History(ctx context.Context, userID string) (*HistoryView, error) {
	userID, err := b.ResolveUserID(userID)
	if err != nil {
		return nil, err
	}
	entries, err := b.services.Ledger.GetHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &HistoryView{
		Entries: entries,
		Summary: b.services.Ledger.SummarizeHistory(entries),
	}, nil
}

// Calendar projects the query range. With Fill set every day of the range
// is returned, absent days included.
func (b *businessAPIImpl) Calendar(ctx context.Context, query validation.CalendarQuery) (*CalendarView, error) {
	userID, err := b.ResolveUserID(query.UserID)
	if err != nil {
		return nil, err
	}
	r, err := b.validator.CalendarRange(query)
	if err != nil {
		return nil, err
	}

	views, err := b.services.Calendar.CalendarView(ctx, userID, r)
	if err != nil {
		return nil, err
	}
	stats, err := b.services.Calendar.Stats(views, r)
	if err != nil {
		return nil, err
	}
	if query.Fill {
		if views, err = b.services.Calendar.FillRange(views, r); err != nil {
			return nil, err
		}
	}
	return &CalendarView{Range: r, Entries: views, Stats: stats}, nil
}

func (b *businessAPIImpl) Analytics(ctx context.Context, userID string) (*services.AnalyticsSnapshot, error) {
	userID, err := b.ResolveUserID(userID)
	if err != nil {
		return nil, err
	}
	return b.services.Analytics.Snapshot(ctx, userID)
}

func (b *businessAPIImpl) ProfileStats(ctx context.Context, userID string) (*services.ProfileStats, error) {
	userID, err := b.ResolveUserID(userID)
	if err != nil {
		return nil, err
	}
	return b.services.Analytics.ProfileStats(ctx, userID)
}

func (b *businessAPIImpl) Settings(ctx context.Context, userID string) (json.RawMessage, error) {
	userID, err := b.ResolveUserID(userID)
	if err != nil {
		return nil, err
	}
	return b.services.UserData.GetSettings(ctx, userID)
}

func (b *businessAPIImpl) SaveSettings(ctx context.Context, req validation.SettingsRequest) error {
	if err := b.validator.Check(req); err != nil {
		return err
	}
	userID, err := b.ResolveUserID(req.UserID)
	if err != nil {
		return err
	}
	return b.services.UserData.SaveSettings(ctx, userID, req.Settings)
}

func (b *businessAPIImpl) Profile(ctx context.Context, userID string) (json.RawMessage, error) {
	userID, err := b.ResolveUserID(userID)
	if err != nil {
		return nil, err
	}
	return b.services.UserData.GetProfile(ctx, userID)
}

func (b *businessAPIImpl) SaveProfile(ctx context.Context, req validation.ProfileRequest) error {
	if err := b.validator.Check(req); err != nil {
		return err
	}
	userID, err := b.ResolveUserID(req.UserID)
	if err != nil {
		return err
	}
	return b.services.UserData.SaveProfile(ctx, userID, req.Profile)
}
