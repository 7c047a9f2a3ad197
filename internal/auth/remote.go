package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"workclock/internal/config"
	"workclock/internal/errors"
)

// maxVerifyBody caps how much of a verify response is read.
const maxVerifyBody = 1 << 20

// RemoteProvider asks an external identity service to verify tokens. The
// service answers GET requests carrying the bearer token with 200 and a JSON
// body holding the user, either bare or under "user".
type RemoteProvider struct {
	url    string
	base   *http.Client
	logger *zap.Logger
}

// NewRemoteProvider creates a provider verifying against url.
func NewRemoteProvider(url string, timeout time.Duration, logger *zap.Logger) (*RemoteProvider, error) {
	if url == "" {
		return nil, &config.ConfigError{Field: "auth.remote_url", Message: "remote auth requires a verify URL"}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RemoteProvider{
		url:    url,
		base:   &http.Client{Timeout: timeout},
		logger: logger,
	}, nil
}

type verifyResponse struct {
	User *Identity `json:"user"`
	Identity
}

func (p *RemoteProvider) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, invalidToken()
	}

	// oauth2.NewClient attaches the token as an Authorization header and uses
	// the base client found in the context for transport and timeout.
	client := oauth2.NewClient(
		context.WithValue(ctx, oauth2.HTTPClient, p.base),
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, errors.NewInternalError("build verify request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		p.logger.Warn("token verification failed", zap.String("url", p.url), zap.Error(err))
		return nil, errors.NewInternalError("verify token", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, invalidToken()
	case resp.StatusCode != http.StatusOK:
		return nil, errors.NewInternalError(fmt.Sprintf("verify token: unexpected status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxVerifyBody))
	if err != nil {
		return nil, errors.NewInternalError("read verify response", err)
	}
	var decoded verifyResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, errors.NewInternalError("decode verify response", err)
	}

	identity := decoded.User
	if identity == nil {
		identity = &decoded.Identity
	}
	if identity.UserID == "" {
		return nil, invalidToken()
	}
	return identity, nil
}
