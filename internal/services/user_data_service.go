package services

import (
	"bytes"
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"workclock/internal/domain"
	"workclock/internal/errors"
	"workclock/internal/storage"
)

// userDataServiceImpl implements the UserDataService interface
type userDataServiceImpl struct {
	store  storage.Store
	logger *zap.Logger
}

// NewUserDataService creates a new UserDataService instance
func NewUserDataService(store storage.Store, logger *zap.Logger) UserDataService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &userDataServiceImpl{store: store, logger: logger}
}

func (s *userDataServiceImpl) GetSettings(ctx context.Context, userID string) (json.RawMessage, error) {
	return s.get(ctx, userID, domain.SettingsKey(userID))
}

func (s *userDataServiceImpl) SaveSettings(ctx context.Context, userID string, settings json.RawMessage) error {
	return s.save(ctx, userID, domain.SettingsKey(userID), "settings", settings)
}

func (s *userDataServiceImpl) GetProfile(ctx context.Context, userID string) (json.RawMessage, error) {
	return s.get(ctx, userID, domain.ProfileKey(userID))
}

func (s *userDataServiceImpl) SaveProfile(ctx context.Context, userID string, profile json.RawMessage) error {
	return s.save(ctx, userID, domain.ProfileKey(userID), "profile", profile)
}

func (s *userDataServiceImpl) get(ctx context.Context, userID, key string) (json.RawMessage, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	data, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return json.RawMessage(data), nil
}

func (s *userDataServiceImpl) save(ctx context.Context, userID, key, field string, doc json.RawMessage) error {
	if err := requireUserID(userID); err != nil {
		return err
	}
	if !isJSONObject(doc) {
		return errors.NewValidationError(field+" must be a JSON object", nil).
			WithContext("field", field)
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, doc); err != nil {
		return errors.NewValidationError(field+" is not valid JSON", err)
	}
	if err := s.store.Set(ctx, key, compact.Bytes()); err != nil {
		return err
	}
	s.logger.Debug("saved user document", zap.String("user_id", userID), zap.String("kind", field))
	return nil
}

func isJSONObject(doc json.RawMessage) bool {
	trimmed := bytes.TrimSpace(doc)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false
	}
	return json.Valid(trimmed)
}
