// Package auth verifies bearer credentials and maps them to user identities.
package auth

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"workclock/internal/config"
	"workclock/internal/errors"
)

// Identity is the user behind a verified credential.
type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
}

// Provider verifies a bearer token. Invalid tokens yield an unauthorized
// AppError.
type Provider interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// NewProvider builds the provider for cfg.Mode. Mode none returns nil, which
// callers treat as authentication switched off.
func NewProvider(cfg config.AuthConfig, logger *zap.Logger) (Provider, error) {
	switch cfg.Mode {
	case "", config.AuthModeNone:
		return nil, nil
	case config.AuthModeStatic:
		p, err := NewStaticProvider(cfg.StaticTokens)
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.AuthModeRemote:
		p, err := NewRemoteProvider(cfg.RemoteURL, cfg.RemoteTimeout, logger)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, &config.ConfigError{Field: "auth.mode", Message: "unknown auth mode: " + cfg.Mode}
	}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func invalidToken() error {
	return errors.NewUnauthorizedError("invalid or expired token")
}
