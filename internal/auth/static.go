package auth

import (
	"context"
	"crypto/subtle"
	"strings"

	"workclock/internal/config"
)

// StaticProvider accepts a fixed set of tokens, each bound to one user.
type StaticProvider struct {
	tokens map[string]string
}

// NewStaticProvider parses pairs, a comma separated list of token:user pairs.
func NewStaticProvider(pairs string) (*StaticProvider, error) {
	tokens, err := ParseStaticTokens(pairs)
	if err != nil {
		return nil, err
	}
	return &StaticProvider{tokens: tokens}, nil
}

// ParseStaticTokens parses "token:user,token2:user2".
func ParseStaticTokens(pairs string) (map[string]string, error) {
	tokens := make(map[string]string)
	for _, pair := range strings.Split(pairs, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		token, user, ok := strings.Cut(pair, ":")
		token, user = strings.TrimSpace(token), strings.TrimSpace(user)
		if !ok || token == "" || user == "" {
			return nil, &config.ConfigError{Field: "auth.static_tokens", Message: "expected token:user pairs"}
		}
		tokens[token] = user
	}
	if len(tokens) == 0 {
		return nil, &config.ConfigError{Field: "auth.static_tokens", Message: "no tokens configured"}
	}
	return tokens, nil
}

func (p *StaticProvider) Verify(_ context.Context, token string) (*Identity, error) {
	for known, user := range p.tokens {
		if subtle.ConstantTimeCompare([]byte(known), []byte(token)) == 1 {
			return &Identity{UserID: user}, nil
		}
	}
	return nil, invalidToken()
}
